package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validModel() *Model {
	m := NewModel()
	m.Render.Program = "prog.vm"
	m.Outputs = []*Output{FileOutput("main", "out.pgm", DefaultFormat)}
	return m
}

func TestValidate_AcceptsDefaults(t *testing.T) {
	t.Parallel()

	require.NoError(t, validModel().Validate())
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	m := validModel()
	m.Render.Program = " "
	m.Render.Size = 0
	m.Render.Workers = 0
	m.Render.ChunkSize = -1
	m.Outputs = append(m.Outputs, FileOutput("main", "again.pgm", DefaultFormat))

	// --- Act ---
	err := m.Validate()

	// --- Assert ---
	require.Error(t, err)
	for _, want := range []string{
		"program path is required",
		"size must be between 1 and 16384, got 0",
		"workers must be at least 1",
		"chunk_size must be at least 1",
		"duplicate output 'file.main'",
	} {
		require.Contains(t, err.Error(), want)
	}
}

func TestValidate_RequiresOutput(t *testing.T) {
	t.Parallel()

	m := validModel()
	m.Outputs = nil
	require.ErrorContains(t, m.Validate(), "at least one output is required")
}

func TestParseArgTag(t *testing.T) {
	t.Parallel()

	name, optional := ParseArgTag("path")
	require.Equal(t, "path", name)
	require.False(t, optional)

	name, optional = ParseArgTag("format,optional")
	require.Equal(t, "format", name)
	require.True(t, optional)

	name, _ = ParseArgTag("-")
	require.Empty(t, name)
}
