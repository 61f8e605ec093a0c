// Package images scales thumbnails down to fit a pixel bound while
// preserving aspect ratio. Images already inside the bound pass through
// untouched; the scraper never upscales.
package images

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"math"

	"golang.org/x/image/draw"
)

// Bound is the maximum width and height a resized image may occupy.
type Bound struct {
	MaxWidth  int
	MaxHeight int
}

// Result carries the resized bytes and final dimensions.
type Result struct {
	Data   []byte
	Width  int
	Height int
}

// Fit decodes the image and scales it so neither dimension exceeds the
// bound. The scale factor is min(maxW/w, maxH/h), clamped at 1.
func Fit(data []byte, bound Bound) (Result, error) {
	if bound.MaxWidth <= 0 || bound.MaxHeight <= 0 {
		return Result{}, fmt.Errorf("invalid bound %dx%d", bound.MaxWidth, bound.MaxHeight)
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("failed to decode image: %w", err)
	}

	srcBounds := src.Bounds()
	w, h := srcBounds.Dx(), srcBounds.Dy()
	if w == 0 || h == 0 {
		return Result{}, fmt.Errorf("image has zero dimension %dx%d", w, h)
	}

	scale := math.Min(float64(bound.MaxWidth)/float64(w), float64(bound.MaxHeight)/float64(h))
	if scale >= 1 {
		// Already within the bound
		return Result{Data: data, Width: w, Height: h}, nil
	}

	newW := int(math.Round(float64(w) * scale))
	newH := int(math.Round(float64(h) * scale))
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, srcBounds, draw.Over, nil)

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 90})
	case "gif":
		err = gif.Encode(&buf, dst, nil)
	default:
		err = png.Encode(&buf, dst)
	}
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode resized image: %w", err)
	}

	return Result{Data: buf.Bytes(), Width: newW, Height: newH}, nil
}
