// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging produces resized variants of media images.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"net/http"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // registers the WebP decoder
)

// MIME types of the formats Resize reads and writes.
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
	MimeTypeGIF  = "image/gif"
	MimeTypeWebP = "image/webp"
)

// MaxPixels bounds the decoded size of a source image, so a small file
// declaring huge dimensions is refused before any pixel memory is allocated.
const MaxPixels = 40_000_000

var (
	// ErrUnsupportedFormat is returned for data that is not a JPEG, PNG, GIF
	// or WebP image. TIFF is refused on purpose: the decoder behind
	// disintegration/imaging is affected by CVE-2023-36308.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrTooManyPixels is returned for images larger than MaxPixels.
	ErrTooManyPixels = errors.New("image dimensions too large")
)

// sourceFormat describes how a sniffed input format is written back out.
type sourceFormat struct {
	out     imaging.Format
	mime    string
	hasExif bool
}

// sourceFormats is keyed by the sniffed Content-Type. WebP is written as
// JPEG since no pure Go WebP encoder exists.
var sourceFormats = map[string]sourceFormat{
	MimeTypeJPEG: {out: imaging.JPEG, mime: MimeTypeJPEG, hasExif: true},
	MimeTypePNG:  {out: imaging.PNG, mime: MimeTypePNG},
	MimeTypeGIF:  {out: imaging.GIF, mime: MimeTypeGIF},
	MimeTypeWebP: {out: imaging.JPEG, mime: MimeTypeJPEG},
}

// Variant is a named bounding box an image is scaled down into.
type Variant struct {
	Name    string
	Width   int
	Height  int
	Quality int
}

// Standard variants served under /media/{variant}/.
var (
	VariantThumb  = Variant{Name: "thumb", Width: 400, Height: 400, Quality: 80}
	VariantMedium = Variant{Name: "medium", Width: 800, Height: 800, Quality: 85}
	VariantLarge  = Variant{Name: "large", Width: 1600, Height: 1600, Quality: 85}
)

// Variants lists the standard variants from smallest to largest.
var Variants = []Variant{VariantThumb, VariantMedium, VariantLarge}

// LookupVariant returns the standard variant with the given name.
func LookupVariant(name string) (Variant, bool) {
	for _, v := range Variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// Result is an encoded variant.
type Result struct {
	Data        []byte `json:"data"`
	ContentType string `json:"contentType"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

// Resize decodes data, undoes the camera rotation recorded in EXIF and fits
// the image into the variant's box keeping its aspect ratio. Images already
// inside the box are re-encoded at their own size.
func Resize(data []byte, v Variant) (*Result, error) {
	sf, ok := sourceFormats[http.DetectContentType(data)]
	if !ok {
		return nil, ErrUnsupportedFormat
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("reading image header: %w", err)
	}
	if cfg.Width*cfg.Height > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	if sf.hasExif {
		img = orient(img, exifOrientation(data))
	}
	if b := img.Bounds(); b.Dx() > v.Width || b.Dy() > v.Height {
		img = imaging.Fit(img, v.Width, v.Height, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, sf.out, imaging.JPEGQuality(v.Quality)); err != nil {
		return nil, fmt.Errorf("encoding %s variant: %w", v.Name, err)
	}
	b := img.Bounds()
	return &Result{Data: buf.Bytes(), ContentType: sf.mime, Width: b.Dx(), Height: b.Dy()}, nil
}

// exifOrientation returns the EXIF orientation tag, or 1 (upright) when the
// data carries none.
func exifOrientation(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	if o, err := tag.Int(0); err == nil {
		return o
	}
	return 1
}

// orientations maps EXIF orientations 2 to 8 onto the transform that
// turns the stored pixels upright.
var orientations = map[int]func(image.Image) *image.NRGBA{
	2: imaging.FlipH,
	3: imaging.Rotate180,
	4: imaging.FlipV,
	5: imaging.Transpose,
	6: imaging.Rotate270,
	7: imaging.Transverse,
	8: imaging.Rotate90,
}

func orient(img image.Image, orientation int) image.Image {
	if fix, ok := orientations[orientation]; ok {
		return fix(img)
	}
	return img
}
