// Package raster converts vector icons to fixed-size PNG previews. The
// output is always an exact square: the icon is scaled to fit inside it
// with aspect ratio preserved and the remainder padded with transparency.
package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// ConvertSVG rasterizes SVG content into a size×size RGBA image.
func ConvertSVG(svg []byte, size int) (image.Image, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid raster size: %d", size)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse svg: %w", err)
	}

	vbW, vbH := icon.ViewBox.W, icon.ViewBox.H
	if vbW <= 0 || vbH <= 0 {
		return nil, fmt.Errorf("svg has empty viewbox (%gx%g)", vbW, vbH)
	}

	// Fit inside the square, centered. The untouched pixels stay fully
	// transparent because NewRGBA zeroes the buffer.
	scale := float64(size) / vbW
	if vbH > vbW {
		scale = float64(size) / vbH
	}
	targetW := vbW * scale
	targetH := vbH * scale
	icon.SetTarget((float64(size)-targetW)/2, (float64(size)-targetH)/2, targetW, targetH)

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1.0)

	return img, nil
}

// ConvertFile rasterizes the SVG at path and writes the PNG artifact next
// to it (<base>.png). Returns the artifact path.
func ConvertFile(path string, size int) (string, error) {
	svg, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read svg %s: %w", path, err)
	}

	img, err := ConvertSVG(svg, size)
	if err != nil {
		return "", fmt.Errorf("failed to convert %s: %w", path, err)
	}

	out := strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
	f, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", out, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", out, err)
	}
	return out, nil
}

// PreparePreview loads an existing raster and re-encodes it as the
// canonical size×size PNG payload sent to the model: fit inside the
// square, centered on a transparent canvas.
func PreparePreview(path string, size int) ([]byte, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open raster %s: %w", path, err)
	}

	fitted := imaging.Fit(img, size, size, imaging.Lanczos)
	canvas := imaging.New(size, size, color.NRGBA{})
	canvas = imaging.PasteCenter(canvas, fitted)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}
	return buf.Bytes(), nil
}
