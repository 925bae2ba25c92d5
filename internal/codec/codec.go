// internal/codec/codec.go
package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	imgdraw "image/draw"
	"image/jpeg"
	"image/png"
	"math"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

// Format identifies a supported image encoding
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
)

// Options configures a single re-encode operation
type Options struct {
	// Quality controls the size/fidelity tradeoff (1-100)
	// JPEG: passed to the encoder directly
	// PNG: mapped onto the encoder's compression level (PNG is lossless)
	Quality int

	// MaxWidth/MaxHeight bound the output dimensions (0 = no scaling)
	// Images larger than the bounds are downscaled preserving aspect ratio
	MaxWidth  int
	MaxHeight int
}

// FormatForPath maps a file extension to a Format
// Returns false for extensions outside {jpg, jpeg, png} (case-insensitive)
func FormatForPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return FormatJPEG, true
	case ".png":
		return FormatPNG, true
	default:
		return "", false
	}
}

// DetectFormat identifies the image format from magic bytes
func DetectFormat(data []byte) (Format, error) {
	if len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return FormatJPEG, nil
	}
	if len(data) >= 8 && string(data[:8]) == "\x89PNG\r\n\x1a\n" {
		return FormatPNG, nil
	}
	return "", fmt.Errorf("unrecognized image format")
}

// Recode decodes data, optionally downscales it to fit the configured bounds,
// and re-encodes it in its own format at the requested quality.
// The output format follows the actual content, not the file extension.
func Recode(data []byte, opts Options) ([]byte, Format, error) {
	format, err := DetectFormat(data)
	if err != nil {
		return nil, "", err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, format, fmt.Errorf("decode image: %w", err)
	}

	if opts.MaxWidth > 0 || opts.MaxHeight > 0 {
		img = scaleToFit(img, opts.MaxWidth, opts.MaxHeight)
	}

	out, err := Encode(img, format, opts.Quality)
	if err != nil {
		return nil, format, err
	}
	return out, format, nil
}

// Encode writes img in the given format at the given quality
func Encode(img image.Image, format Format, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case FormatJPEG:
		// JPEG has no alpha channel; composite transparent images onto white
		if !isOpaque(img) {
			img = flattenOnWhite(img)
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	case FormatPNG:
		enc := png.Encoder{CompressionLevel: pngLevel(quality)}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	return buf.Bytes(), nil
}

// pngLevel maps the 1-100 quality knob onto png compression levels.
// Lower quality requests harder compression.
func pngLevel(quality int) png.CompressionLevel {
	if quality <= 50 {
		return png.BestCompression
	}
	return png.DefaultCompression
}

func isOpaque(img image.Image) bool {
	type opaquer interface{ Opaque() bool }
	if o, ok := img.(opaquer); ok {
		return o.Opaque()
	}
	return false
}

func flattenOnWhite(img image.Image) image.Image {
	bounds := img.Bounds()
	dst := image.NewRGBA(bounds)
	imgdraw.Draw(dst, bounds, image.NewUniform(color.White), image.Point{}, imgdraw.Src)
	imgdraw.Draw(dst, bounds, img, bounds.Min, imgdraw.Over)
	return dst
}

// scaleToFit downscales img to fit within maxW x maxH preserving aspect ratio.
// Zero bounds are treated as unbounded; images that already fit are returned as-is.
func scaleToFit(img image.Image, maxW, maxH int) image.Image {
	bounds := img.Bounds()
	origW := bounds.Dx()
	origH := bounds.Dy()

	newW, newH := fitDimensions(origW, origH, maxW, maxH)
	if newW == origW && newH == origH {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func fitDimensions(origW, origH, maxW, maxH int) (int, int) {
	if maxW <= 0 {
		maxW = origW
	}
	if maxH <= 0 {
		maxH = origH
	}
	if origW <= maxW && origH <= maxH {
		return origW, origH
	}

	ratioW := float64(maxW) / float64(origW)
	ratioH := float64(maxH) / float64(origH)
	ratio := ratioW
	if ratioH < ratioW {
		ratio = ratioH
	}

	newW := int(math.Round(float64(origW) * ratio))
	newH := int(math.Round(float64(origH) * ratio))

	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	return newW, newH
}
