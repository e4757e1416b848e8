package field

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromSamples_RejectsWrongLength(t *testing.T) {
	t.Parallel()

	_, err := FromSamples(2, []float64{1, 2, 3})
	require.Error(t, err)
	require.Contains(t, err.Error(), "needs 4 samples, got 3")
}

func TestFromSamples_RowMajorLayout(t *testing.T) {
	t.Parallel()

	f, err := FromSamples(2, []float64{1, 2, 3, 4})
	require.NoError(t, err)

	require.Equal(t, 2.0, f.At(0, 1))
	require.Equal(t, 3.0, f.At(1, 0))
	require.Equal(t, 4, f.Len())
}

func TestConstant(t *testing.T) {
	t.Parallel()

	f := Constant(3, 0.5)
	for i := 0; i < f.Len(); i++ {
		require.Equal(t, 0.5, f.Sample(i))
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()

	a := Constant(2, 1)
	b := Constant(2, 1)
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(Constant(3, 1)), "different sizes")
	require.False(t, a.Equal(Constant(2, 2)))

	nan := Constant(2, math.NaN())
	require.False(t, nan.Equal(nan), "NaN never equals NaN")
}

func TestSame(t *testing.T) {
	t.Parallel()

	x, _ := Grid(4)
	alias := x
	require.True(t, x.Same(alias))
	require.False(t, x.Same(Constant(4, 0)))
}
