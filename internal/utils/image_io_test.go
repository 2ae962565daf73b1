package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestIsSupportedImage(t *testing.T) {
	assert.True(t, IsSupportedImage("photo.jpg"))
	assert.True(t, IsSupportedImage("photo.JPEG"))
	assert.True(t, IsSupportedImage("scan.png"))
	assert.True(t, IsSupportedImage("scan.tiff"))
	assert.True(t, IsSupportedImage("scan.bmp"))
	assert.False(t, IsSupportedImage("doc.pdf"))
	assert.False(t, IsSupportedImage("noext"))
}

func TestLoadImage(t *testing.T) {
	path := writeTestPNG(t, t.TempDir(), "sample.png", 12, 8)

	img, meta, err := LoadImage(path)
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, path, meta.Path)
	assert.Equal(t, "png", meta.Format)
	assert.Equal(t, 12, meta.Width)
	assert.Equal(t, 8, meta.Height)
	assert.Positive(t, meta.SizeBytes)
}

func TestLoadImageErrors(t *testing.T) {
	_, _, err := LoadImage("")
	assert.Error(t, err)

	_, _, err = LoadImage("document.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported image format")

	_, _, err = LoadImage(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestLoadImageCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.png")
	require.NoError(t, os.WriteFile(path, []byte("not a png"), 0o600))

	_, _, err := LoadImage(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode image")
}

func TestScaleToFit(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))

	scaled, factor := ScaleToFit(img, 50)
	assert.InDelta(t, 0.5, factor, 1e-9)
	assert.Equal(t, 50, scaled.Bounds().Dx())
	assert.Equal(t, 25, scaled.Bounds().Dy())
}

func TestScaleToFitNoUpscale(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 30, 20))

	scaled, factor := ScaleToFit(img, 100)
	assert.InDelta(t, 1.0, factor, 1e-9)
	assert.Equal(t, 30, scaled.Bounds().Dx())
}

func TestScaleToFitDisabled(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 300, 200))

	scaled, factor := ScaleToFit(img, 0)
	assert.InDelta(t, 1.0, factor, 1e-9)
	assert.Equal(t, 300, scaled.Bounds().Dx())
}

func TestEncodePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	data, err := EncodePNG(img)
	require.NoError(t, err)

	decoded, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 4, decoded.Bounds().Dx())

	_, err = EncodePNG(nil)
	assert.Error(t, err)
}
