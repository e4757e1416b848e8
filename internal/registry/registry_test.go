package registry

import (
	"context"
	"io"
	"reflect"
	"testing"

	"github.com/specialistvlad/gridvm/internal/config"
	"github.com/specialistvlad/gridvm/internal/raster"
	"github.com/stretchr/testify/require"
)

type nopEncoder struct{}

func (nopEncoder) Encode(io.Writer, *raster.Image) error { return nil }
func (nopEncoder) Extension() string { return ".nop" }

func nopSink(_ context.Context, _ Encoders, _ *raster.Image, _ any) error { return nil }

func sinkFor[T any]() *RegisteredSink {
	return &RegisteredSink{
		NewInput:  func() any { return new(T) },
		InputType: reflect.TypeOf(*new(T)),
		Fn:        nopSink,
	}
}

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	r := New()
	r.RegisterEncoder("b", nopEncoder{})
	r.RegisterEncoder("a", nopEncoder{})
	r.RegisterSink("file", sinkFor[struct {
		Path string `arg:"path"`
	}]())

	// --- Act ---
	enc, encErr := r.Encoder("a")
	_, missingEncErr := r.Encoder("gif")
	sink, sinkErr := r.Sink("file")
	_, missingSinkErr := r.Sink("ftp")

	// --- Assert ---
	require.NoError(t, encErr)
	require.Equal(t, ".nop", enc.Extension())
	require.EqualError(t, missingEncErr, "unknown image format 'gif' (known: [a b])")
	require.NoError(t, sinkErr)
	require.NotNil(t, sink.Fn)
	require.EqualError(t, missingSinkErr, "unknown output kind 'ftp' (known: [file])")
	require.Equal(t, []string{"a", "b"}, r.EncoderNames())
}

func TestRegistry_DuplicateRegistrationPanics(t *testing.T) {
	t.Parallel()

	r := New()
	r.RegisterEncoder("pgm", nopEncoder{})
	r.RegisterSink("file", sinkFor[struct{}]())

	require.PanicsWithValue(t, "encoder for format 'pgm' already registered", func() {
		r.RegisterEncoder("pgm", nopEncoder{})
	})
	require.PanicsWithValue(t, "sink for kind 'file' already registered", func() {
		r.RegisterSink("file", sinkFor[struct{}]())
	})
}

func TestValidateRegistry(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		sink    *RegisteredSink
		wantErr string
	}{
		{
			name: "valid",
			sink: sinkFor[struct {
				Path     string  `arg:"path"`
				Mode     *string `arg:"mode,optional"`
				internal int
				Ignored  string
			}](),
		},
		{
			name:    "missing handler",
			sink:    &RegisteredSink{NewInput: func() any { return new(struct{}) }, InputType: reflect.TypeOf(struct{}{})},
			wantErr: "sink 'test': no handler function",
		},
		{
			name:    "missing input",
			sink:    &RegisteredSink{Fn: nopSink},
			wantErr: "sink 'test': no input struct",
		},
		{
			name:    "input is not a struct",
			sink:    &RegisteredSink{NewInput: func() any { return new(string) }, InputType: reflect.TypeOf(""), Fn: nopSink},
			wantErr: "is not a struct",
		},
		{
			name: "duplicate argument",
			sink: sinkFor[struct {
				A string `arg:"path"`
				B string `arg:"path,optional"`
			}](),
			wantErr: "argument 'path' is declared by both A and B",
		},
		{
			name: "unsupported type",
			sink: sinkFor[struct {
				C chan int `arg:"events"`
			}](),
			wantErr: "argument 'events' has unsupported Go type chan int",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			r := New()
			r.RegisterSink("test", tc.sink)

			// --- Act ---
			err := r.ValidateRegistry(context.Background())

			// --- Assert ---
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestValidateModel(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	r := New()
	r.RegisterSink("file", sinkFor[struct{}]())
	model := config.NewModel()
	model.Outputs = []*config.Output{
		config.FileOutput("main", "out.pgm", "pgm"),
		{Kind: "ftp", Name: "backup"},
	}

	// --- Act ---
	err := r.ValidateModel(context.Background(), model)

	// --- Assert ---
	require.ErrorContains(t, err, "output 'ftp.backup': unknown kind 'ftp' (known: [file])")

	model.Outputs = model.Outputs[:1]
	require.NoError(t, r.ValidateModel(context.Background(), model))
}
