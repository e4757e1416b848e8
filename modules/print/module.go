package print

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"reflect"
	"unicode/utf8"

	"github.com/specialistvlad/gridvm/internal/ctxlog"
	"github.com/specialistvlad/gridvm/internal/raster"
	"github.com/specialistvlad/gridvm/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// stdout is where previews go.
var stdout io.Writer = os.Stdout

const defaultWidth = 64

// Input defines the arguments of an `output "print"` block.
type Input struct {
	Width      int    `arg:"width,optional"`
	Foreground string `arg:"foreground,optional"`
	Background string `arg:"background,optional"`
}

// Preview writes img as text, one character per cell. Images wider than width
// are sampled down to width columns; rows are sampled at twice the column
// step because terminal cells are roughly twice as tall as wide.
func Preview(w io.Writer, img *raster.Image, width int, fg, bg rune) error {
	if width <= 0 {
		return fmt.Errorf("width must be positive, got %d", width)
	}
	step := 1
	if img.Size > width {
		step = (img.Size + width - 1) / width
	}

	bw := bufio.NewWriter(w)
	line := make([]byte, 0, width*utf8.UTFMax+1)
	for r := 0; r < img.Size; r += 2 * step {
		line = line[:0]
		row := img.Row(r)
		for c := 0; c < img.Size; c += step {
			ch := bg
			if row[c] == raster.Foreground {
				ch = fg
			}
			line = utf8.AppendRune(line, ch)
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// single returns the only rune of s, or def when s is empty.
func single(s string, def rune) (rune, error) {
	if s == "" {
		return def, nil
	}
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || n != len(s) {
		return 0, fmt.Errorf("%q must be a single character", s)
	}
	return r, nil
}

// Print is the handler for the `print` sink.
func Print(ctx context.Context, _ registry.Encoders, img *raster.Image, input any) error {
	in := input.(*Input)
	width := in.Width
	if width == 0 {
		width = defaultWidth
	}
	fg, err := single(in.Foreground, '#')
	if err != nil {
		return fmt.Errorf("invalid foreground: %w", err)
	}
	bg, err := single(in.Background, '.')
	if err != nil {
		return fmt.Errorf("invalid background: %w", err)
	}

	ctxlog.FromContext(ctx).Info("Printing image preview.", "size", img.Size, "width", width)
	return Preview(stdout, img, width, fg, bg)
}

// Register registers the sink with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterSink("print", &registry.RegisteredSink{
		NewInput:  func() any { return new(Input) },
		InputType: reflect.TypeOf(Input{}),
		Fn:        Print,
	})
}
