package utils

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// SupportedImageExtensions lists supported file extensions for loading.
var SupportedImageExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".tif", ".tiff"}

// IsSupportedImage reports whether the path has a supported image extension.
func IsSupportedImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range SupportedImageExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// ImageMetadata captures lightweight file and pixel information.
type ImageMetadata struct {
	Path      string
	Format    string
	SizeBytes int64
	Width     int
	Height    int
}

// LoadImage opens and decodes an image file, returning the image and metadata.
func LoadImage(path string) (image.Image, ImageMetadata, error) {
	if path == "" {
		return nil, ImageMetadata{}, errors.New("empty image path")
	}
	if !IsSupportedImage(path) {
		return nil, ImageMetadata{}, fmt.Errorf("unsupported image format: %s", filepath.Ext(path))
	}

	f, err := os.Open(path) //nolint:gosec // G304: reading user-provided image file path is expected
	if err != nil {
		return nil, ImageMetadata{}, fmt.Errorf("open image: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "Error closing image file: %v\n", cerr)
		}
	}()

	fi, err := f.Stat()
	if err != nil {
		return nil, ImageMetadata{}, fmt.Errorf("stat image: %w", err)
	}

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, ImageMetadata{}, fmt.Errorf("decode image %s: %w", path, err)
	}

	b := img.Bounds()
	meta := ImageMetadata{
		Path:      path,
		Format:    format,
		SizeBytes: fi.Size(),
		Width:     b.Dx(),
		Height:    b.Dy(),
	}
	return img, meta, nil
}

// ScaleToFit scales the image down so its longest side does not exceed
// maxDim, preserving aspect ratio. It returns the (possibly original) image
// and the applied scale factor (1.0 when unscaled). Images are never scaled
// up.
func ScaleToFit(img image.Image, maxDim int) (image.Image, float64) {
	if img == nil || maxDim <= 0 {
		return img, 1.0
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	longest := w
	if h > longest {
		longest = h
	}
	if longest <= maxDim {
		return img, 1.0
	}
	factor := float64(maxDim) / float64(longest)
	nw := int(float64(w)*factor + 0.5)
	nh := int(float64(h)*factor + 0.5)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return imaging.Resize(img, nw, nh, imaging.Lanczos), factor
}

// EncodePNG serializes an image to PNG bytes for handing off to the engine.
func EncodePNG(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, errors.New("nil image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
