package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Defaults applied when neither the job file nor the command line sets a value.
const (
	DefaultSize      = 1024
	DefaultChunkSize = 4096
	DefaultOutput    = "out.pgm"
	DefaultFormat    = "pgm"
	MaxSize          = 16384
)

// ArgTag is the struct tag that names a sink input field: `arg:"name"` or
// `arg:"name,optional"`.
const ArgTag = "arg"

// Model is the unified, format-agnostic representation of one render job.
type Model struct {
	Render  *Render
	Outputs []*Output
}

// Render holds the evaluation settings.
type Render struct {
	Program   string
	Size      int
	Workers   int
	ChunkSize int
}

// Output is one destination for the finished image. Arguments are already
// evaluated; a Converter binds them to the sink's input struct.
type Output struct {
	Kind      string
	Name      string
	Arguments map[string]cty.Value
}

// Address returns the "kind.name" identifier of the output.
func (o *Output) Address() string {
	return o.Kind + "." + o.Name
}

// NewModel returns a model with default render settings and no outputs.
func NewModel() *Model {
	return &Model{
		Render: &Render{
			Size:      DefaultSize,
			Workers:   runtime.NumCPU(),
			ChunkSize: DefaultChunkSize,
		},
	}
}

// FileOutput returns a `file` output writing path in format.
func FileOutput(name, path, format string) *Output {
	return &Output{
		Kind: "file",
		Name: name,
		Arguments: map[string]cty.Value{
			"path":   cty.StringVal(path),
			"format": cty.StringVal(format),
		},
	}
}

// Validate checks the model for settings the application cannot run with.
func (m *Model) Validate() error {
	var errs []error
	if m.Render == nil {
		return errors.New("render settings are missing")
	}
	r := m.Render
	if strings.TrimSpace(r.Program) == "" {
		errs = append(errs, errors.New("program path is required"))
	}
	if r.Size < 1 || r.Size > MaxSize {
		errs = append(errs, fmt.Errorf("size must be between 1 and %d, got %d", MaxSize, r.Size))
	}
	if r.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", r.Workers))
	}
	if r.ChunkSize < 1 {
		errs = append(errs, fmt.Errorf("chunk_size must be at least 1, got %d", r.ChunkSize))
	}
	if len(m.Outputs) == 0 {
		errs = append(errs, errors.New("at least one output is required"))
	}
	seen := make(map[string]struct{}, len(m.Outputs))
	for _, o := range m.Outputs {
		addr := o.Address()
		if _, dup := seen[addr]; dup {
			errs = append(errs, fmt.Errorf("duplicate output '%s'", addr))
		}
		seen[addr] = struct{}{}
	}
	return errors.Join(errs...)
}

// ParseArgTag splits an `arg` tag into its argument name and whether the
// argument may be omitted. An empty name means the field is not an argument.
func ParseArgTag(tag string) (name string, optional bool) {
	parts := strings.Split(tag, ",")
	name = parts[0]
	if name == "-" {
		return "", false
	}
	for _, opt := range parts[1:] {
		if opt == "optional" {
			optional = true
		}
	}
	return name, optional
}
