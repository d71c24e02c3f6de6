// Package imaging turns source photos into the thumbnail and large JPEG
// variants the gallery serves.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	// ThumbMax is the side of the square thumbnail canvas.
	ThumbMax = 720
	// LargeMax caps the longest edge of the lightbox variant.
	LargeMax = 2200
	// Quality is the JPEG encoder quality for both variants.
	Quality = 82
)

// PageBackground matches the site's page color; transparent sources are
// flattened onto it so they don't get a jarring white halo.
var PageBackground = color.NRGBA{R: 11, G: 15, B: 23, A: 255}

// ThumbBackground is the letterbox fill around non-square thumbnails.
var ThumbBackground = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// Exts lists the source extensions the build picks up, lowercase with dot.
var Exts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".tif":  true,
	".tiff": true,
}

var (
	whitespace = regexp.MustCompile(`\s+`)
	unsafe     = regexp.MustCompile(`[^A-Za-z0-9_-]+`)
)

// OutputName maps a source filename to its generated variant name: the stem
// with whitespace collapsed to hyphens and unsafe runes stripped, as .jpg.
func OutputName(filename string) string {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	stem = whitespace.ReplaceAllString(strings.TrimSpace(stem), "-")
	stem = unsafe.ReplaceAllString(stem, "")
	if stem == "" {
		stem = "img"
	}
	return stem + ".jpg"
}

// Decode reads an image file, decoding any supported format and applying the
// EXIF orientation so the result is upright.
func Decode(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	return applyOrientation(img, readOrientation(bytes.NewReader(data))), nil
}

// FitWithin scales the image down proportionally so its longest edge is at
// most maxPx. Images already within the bound are returned untouched; nothing
// is ever upscaled.
func FitWithin(img image.Image, maxPx int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	m := w
	if h > m {
		m = h
	}
	if m <= maxPx {
		return img
	}

	scale := float64(maxPx) / float64(m)
	nw := int(float64(w) * scale)
	nh := int(float64(h) * scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// Thumbnail fits the image within a ThumbMax square and centers it on a
// ThumbBackground canvas, so every card in the project grid is the same size
// without cropping anything.
func Thumbnail(img image.Image) image.Image {
	fitted := FitWithin(flatten(img, PageBackground), ThumbMax)
	fb := fitted.Bounds()

	canvas := image.NewNRGBA(image.Rect(0, 0, ThumbMax, ThumbMax))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(ThumbBackground), image.Point{}, draw.Src)

	offset := image.Pt((ThumbMax-fb.Dx())/2, (ThumbMax-fb.Dy())/2)
	draw.Draw(canvas, fb.Sub(fb.Min).Add(offset), fitted, fb.Min, draw.Over)
	return canvas
}

// Large produces the lightbox variant: downscaled to LargeMax and flattened.
func Large(img image.Image) image.Image {
	return flatten(FitWithin(img, LargeMax), PageBackground)
}

// SaveJPEG encodes the image at the fixed gallery quality, creating parent
// directories as needed.
func SaveJPEG(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: Quality}); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

// flatten composites the image over an opaque background, dropping any alpha
// channel before JPEG encoding.
func flatten(img image.Image, bg color.NRGBA) image.Image {
	if opaque(img) {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}

func opaque(img image.Image) bool {
	type opaquer interface{ Opaque() bool }
	if o, ok := img.(opaquer); ok {
		return o.Opaque()
	}
	return false
}
