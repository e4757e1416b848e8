package png

import (
	"bytes"
	"image"
	stdpng "image/png"
	"testing"

	"github.com/specialistvlad/gridvm/internal/raster"
	"github.com/stretchr/testify/require"
)

func TestEncoder_RoundTrip(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	img := &raster.Image{Size: 3, Pix: []uint8{
		255, 0, 0,
		0, 255, 0,
		0, 0, 255,
	}}
	var buf bytes.Buffer

	// --- Act ---
	require.NoError(t, Encoder{}.Encode(&buf, img))
	decoded, err := stdpng.Decode(&buf)

	// --- Assert ---
	require.NoError(t, err)
	gray, ok := decoded.(*image.Gray)
	require.True(t, ok, "decoded image is %T", decoded)
	require.Equal(t, image.Rect(0, 0, 3, 3), gray.Bounds())
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			require.Equal(t, img.Pix[y*3+x], gray.GrayAt(x, y).Y)
		}
	}
}
