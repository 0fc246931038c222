package utils

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.bin")
	require.NoError(t, WriteFile(path, []byte("xyz")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("xyz"), data)
}

func TestPaletteSwatch(t *testing.T) {
	_, err := PaletteSwatch(nil, 8)
	assert.Error(t, err)

	img, err := PaletteSwatch([]color.Color{color.NRGBA{255, 0, 0, 255}, color.NRGBA{0, 0, 255, 255}}, 0)
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, img.NRGBAAt(10, 10))
	assert.Equal(t, color.NRGBA{0, 0, 255, 255}, img.NRGBAAt(100, 10))

	path := filepath.Join(t.TempDir(), "swatch", "p.png")
	require.NoError(t, SaveImage(img, path))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}
