package raster

import (
	"context"
	"math"
	"testing"

	"github.com/specialistvlad/gridvm/internal/field"
	"github.com/specialistvlad/gridvm/internal/vm"
	"github.com/stretchr/testify/require"
)

func TestThreshold(t *testing.T) {
	t.Parallel()

	require.Equal(t, Foreground, Threshold(-0.001))
	require.Equal(t, Foreground, Threshold(math.Inf(-1)))
	require.Equal(t, Background, Threshold(0))
	require.Equal(t, Background, Threshold(math.Copysign(0, -1)), "negative zero is not < 0")
	require.Equal(t, Background, Threshold(2))
	require.Equal(t, Background, Threshold(math.NaN()))
}

func TestFromField_RowMajorTopFirst(t *testing.T) {
	t.Parallel()

	f, err := field.FromSamples(2, []float64{-1, 1, math.NaN(), -0.5})
	require.NoError(t, err)

	img := FromField(f)

	require.Equal(t, 2, img.Size)
	require.Equal(t, []uint8{255, 0}, img.Row(0))
	require.Equal(t, []uint8{0, 255}, img.Row(1))
	require.Equal(t, 2, img.ForegroundCount())
}

func TestFromField_EndToEndProgram(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	prog, err := vm.Parse("a var-x\nb const 0.5\nc sub a b\nd neg c")
	require.NoError(t, err)
	x, y := field.Grid(3)

	// --- Act ---
	out, err := vm.Evaluate(context.Background(), prog, x, y)
	require.NoError(t, err)
	img := FromField(out)

	// --- Assert ---
	// Only the right column (x = 1) lies beyond x = 0.5.
	for r := 0; r < 3; r++ {
		require.Equal(t, []uint8{0, 0, 255}, img.Row(r))
	}
}
