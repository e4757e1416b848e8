// Package file provides the `file` output sink, which encodes the image and
// writes it to disk.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"

	"github.com/specialistvlad/gridvm/internal/config"
	"github.com/specialistvlad/gridvm/internal/ctxlog"
	"github.com/specialistvlad/gridvm/internal/raster"
	"github.com/specialistvlad/gridvm/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments of an `output "file"` block.
type Input struct {
	Path   string `arg:"path"`
	Format string `arg:"format,optional"`
	Mode   string `arg:"mode,optional"`
}

// WriteFile is the handler for the `file` sink. The image is written to a
// temporary file next to Path and renamed into place, so readers never see a
// partial image.
func WriteFile(ctx context.Context, enc registry.Encoders, img *raster.Image, input any) error {
	in := input.(*Input)
	format := in.Format
	if format == "" {
		format = config.DefaultFormat
	}
	logger := ctxlog.FromContext(ctx).With("sink", "file", "path", in.Path, "format", format)

	perm := os.FileMode(0644)
	if in.Mode != "" {
		m, err := strconv.ParseUint(in.Mode, 8, 32)
		if err != nil {
			return fmt.Errorf("invalid file mode %q: %w", in.Mode, err)
		}
		perm = os.FileMode(m).Perm()
	}

	encoder, err := enc.Encoder(format)
	if err != nil {
		return err
	}

	dir := filepath.Dir(in.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory '%s': %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(in.Path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := encoder.Encode(tmp, img); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode %s image: %w", format, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Rename(tmp.Name(), in.Path); err != nil {
		return fmt.Errorf("failed to move image into place: %w", err)
	}

	logger.Info("Image written.", "size", img.Size, "foreground", img.ForegroundCount())
	return nil
}

// Register registers the sink with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterSink("file", &registry.RegisteredSink{
		NewInput:  func() any { return new(Input) },
		InputType: reflect.TypeOf(Input{}),
		Fn:        WriteFile,
	})
}
