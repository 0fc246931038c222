package assetforge

import (
	"image"

	"github.com/setanarut/assetforge/utils"
)

// DominantPalette returns up to k colors representative of the opaque
// pixels of img, darkest first.
func DominantPalette(img image.Image, k int, method utils.PaletteMethod) []RGBAColor {
	cols := utils.ExtractPalette(img, k, method)
	utils.SortPaletteByBrightness(cols)
	out := make([]RGBAColor, 0, len(cols))
	for _, c := range cols {
		r, g, b := c.Clamped().RGB255()
		out = append(out, RGBAColor{R: r, G: g, B: b, A: 255})
	}
	return out
}
