// Package pgm encodes rasters as Netpbm graymaps: binary P5 under the
// "pgm" format and plain-text P2 under "pgm-ascii".
package pgm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/specialistvlad/gridvm/internal/raster"
	"github.com/specialistvlad/gridvm/internal/registry"
)

// MaxVal is the maximum gray value written in the header.
const MaxVal = 255

// Module implements the registry.Module interface for this package.
type Module struct{}

// Binary writes P5 graymaps.
type Binary struct{}

// ASCII writes P2 graymaps, one text line per image row.
type ASCII struct{}

func writeHeader(w io.Writer, magic string, size int) error {
	_, err := fmt.Fprintf(w, "%s\n%d %d\n%d\n", magic, size, size, MaxVal)
	return err
}

// Encode implements raster.Encoder.
func (Binary) Encode(w io.Writer, img *raster.Image) error {
	bw := bufio.NewWriter(w)
	if err := writeHeader(bw, "P5", img.Size); err != nil {
		return err
	}
	if _, err := bw.Write(img.Pix); err != nil {
		return err
	}
	return bw.Flush()
}

// Extension implements raster.Encoder.
func (Binary) Extension() string { return ".pgm" }

// Encode implements raster.Encoder.
func (ASCII) Encode(w io.Writer, img *raster.Image) error {
	bw := bufio.NewWriter(w)
	if err := writeHeader(bw, "P2", img.Size); err != nil {
		return err
	}
	buf := make([]byte, 0, 4*img.Size)
	for r := 0; r < img.Size; r++ {
		buf = buf[:0]
		for c, p := range img.Row(r) {
			if c > 0 {
				buf = append(buf, ' ')
			}
			buf = strconv.AppendUint(buf, uint64(p), 10)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Extension implements raster.Encoder.
func (ASCII) Extension() string { return ".pgm" }

// Register registers both encoders with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterEncoder("pgm", Binary{})
	r.RegisterEncoder("pgm-ascii", ASCII{})
}
