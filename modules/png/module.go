// Package png encodes rasters as 8-bit grayscale PNG images.
package png

import (
	"image"
	stdpng "image/png"
	"io"

	"github.com/specialistvlad/gridvm/internal/raster"
	"github.com/specialistvlad/gridvm/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Encoder writes PNG images.
type Encoder struct {
	Level stdpng.CompressionLevel
}

// Encode implements raster.Encoder.
func (e Encoder) Encode(w io.Writer, img *raster.Image) error {
	gray := &image.Gray{
		Pix:    img.Pix,
		Stride: img.Size,
		Rect:   image.Rect(0, 0, img.Size, img.Size),
	}
	enc := stdpng.Encoder{CompressionLevel: e.Level}
	return enc.Encode(w, gray)
}

// Extension implements raster.Encoder.
func (Encoder) Extension() string { return ".png" }

// Register registers the encoder with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterEncoder("png", Encoder{Level: stdpng.BestSpeed})
}
