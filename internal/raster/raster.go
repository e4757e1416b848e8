// Package raster turns a VM result field into a two-level image and defines
// the Encoder contract implemented by the image format modules.
package raster

import (
	"io"

	"github.com/specialistvlad/gridvm/internal/field"
)

// Pixel intensities of the two levels.
const (
	Foreground uint8 = 255
	Background uint8 = 0
)

// Image is a square two-level raster stored row-major, top row first.
type Image struct {
	Size int
	Pix  []uint8
}

// Encoder serializes an Image into a concrete file format.
type Encoder interface {
	Encode(w io.Writer, img *Image) error
	// Extension is the conventional file extension, including the dot.
	Extension() string
}

// Threshold maps one sample to its pixel: negative values are inside the
// shape. Zero, positive and NaN samples are background.
func Threshold(v float64) uint8 {
	if v < 0 {
		return Foreground
	}
	return Background
}

// FromField thresholds every sample of f.
func FromField(f field.Field) *Image {
	pix := make([]uint8, f.Len())
	for i := range pix {
		pix[i] = Threshold(f.Sample(i))
	}
	return &Image{Size: f.Size(), Pix: pix}
}

// Row returns the pixels of one row without copying.
func (img *Image) Row(r int) []uint8 {
	return img.Pix[r*img.Size : (r+1)*img.Size]
}

// ForegroundCount returns the number of inside pixels.
func (img *Image) ForegroundCount() int {
	n := 0
	for _, p := range img.Pix {
		if p == Foreground {
			n++
		}
	}
	return n
}
