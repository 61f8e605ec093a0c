package images

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestFitScalesDownPreservingRatio(t *testing.T) {
	data := encodePNG(t, 800, 600)

	res, err := Fit(data, Bound{MaxWidth: 300, MaxHeight: 300})
	require.NoError(t, err)

	assert.Equal(t, 300, res.Width)
	assert.Equal(t, 225, res.Height)

	decoded, _, err := image.Decode(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, 300, decoded.Bounds().Dx())
	assert.Equal(t, 225, decoded.Bounds().Dy())
}

func TestFitNeverUpscales(t *testing.T) {
	data := encodePNG(t, 200, 100)

	res, err := Fit(data, Bound{MaxWidth: 300, MaxHeight: 300})
	require.NoError(t, err)

	assert.Equal(t, 200, res.Width)
	assert.Equal(t, 100, res.Height)
	// Untouched bytes when already inside the bound.
	assert.Equal(t, data, res.Data)
}

func TestFitTallImage(t *testing.T) {
	data := encodePNG(t, 100, 400)

	res, err := Fit(data, Bound{MaxWidth: 300, MaxHeight: 200})
	require.NoError(t, err)

	assert.Equal(t, 50, res.Width)
	assert.Equal(t, 200, res.Height)
}

func TestFitKeepsJPEGFormat(t *testing.T) {
	data := encodeJPEG(t, 600, 600)

	res, err := Fit(data, Bound{MaxWidth: 300, MaxHeight: 300})
	require.NoError(t, err)

	_, format, err := image.Decode(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 300, res.Width)
	assert.Equal(t, 300, res.Height)
}

func TestFitRejectsGarbage(t *testing.T) {
	_, err := Fit([]byte("not an image"), Bound{MaxWidth: 300, MaxHeight: 300})
	assert.Error(t, err)
}

func TestFitRejectsInvalidBound(t *testing.T) {
	data := encodePNG(t, 10, 10)

	_, err := Fit(data, Bound{MaxWidth: 0, MaxHeight: 300})
	assert.Error(t, err)
}
