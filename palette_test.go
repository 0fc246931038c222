package assetforge

import (
	"image"
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setanarut/assetforge/utils"
)

func twoTone() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for y := range 40 {
		for x := range 40 {
			c := color.NRGBA{230, 220, 40, 255}
			if x < 20 {
				c = color.NRGBA{20, 30, 120, 255}
			}
			if y < 5 {
				c = color.NRGBA{255, 0, 0, 0}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestDominantPalette(t *testing.T) {
	for _, method := range []utils.PaletteMethod{utils.PaletteMethodDominantColor, utils.PaletteMethodKMeans} {
		pal := DominantPalette(twoTone(), 2, method)
		require.NotEmpty(t, pal, method.String())
		assert.LessOrEqual(t, len(pal), 2, method.String())

		prev := -1.0
		for _, c := range pal {
			assert.Equal(t, uint8(255), c.A)
			l, _, _ := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Lab()
			assert.GreaterOrEqual(t, l+0.5, prev, method.String())
			prev = l
		}
	}
}

func TestDominantPaletteTransparent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	assert.Empty(t, DominantPalette(img, 3, utils.PaletteMethodDominantColor))
	assert.Empty(t, DominantPalette(twoTone(), 0, utils.PaletteMethodKMeans))
}
