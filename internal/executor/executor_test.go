package executor

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMap_VisitsEveryIndexExactlyOnce(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		workers   int
		chunkSize int
		n         int
	}{
		{"sequential", 1, 16, 1000},
		{"parallel even chunks", 4, 10, 1000},
		{"parallel ragged tail", 3, 7, 1001},
		{"more workers than chunks", 64, 100, 250},
		{"single chunk", 8, 4096, 9},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			exec := New(tc.workers, tc.chunkSize)
			visits := make([]int32, tc.n)

			// --- Act ---
			err := exec.Map(context.Background(), tc.n, func(lo, hi int) {
				for i := lo; i < hi; i++ {
					atomic.AddInt32(&visits[i], 1)
				}
			})

			// --- Assert ---
			require.NoError(t, err)
			for i, v := range visits {
				require.Equal(t, int32(1), v, "index %d", i)
			}
		})
	}
}

func TestMap_EmptyRange(t *testing.T) {
	t.Parallel()

	called := false
	err := New(4, 8).Map(context.Background(), 0, func(lo, hi int) { called = true })

	require.NoError(t, err)
	require.False(t, called)
}

func TestMap_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	for _, exec := range []*Executor{Sequential(), New(4, 8)} {
		err := exec.Map(ctx, 1000, func(lo, hi int) { calls.Add(1) })
		require.ErrorIs(t, err, context.Canceled)
	}
	require.Zero(t, calls.Load(), "no chunk runs after cancellation")
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	exec := New(0, 0)
	require.GreaterOrEqual(t, exec.Workers(), 1)
	require.Equal(t, DefaultChunkSize, exec.ChunkSize())

	require.Equal(t, 1, Sequential().Workers())
}
