package assetforge

import (
	"image"
	"image/color"

	"github.com/ericpauley/go-quantize/quantize"
)

const maxPaletteSize = 256

// palettize converts img to a paletted frame. With transparent set, palette
// index 0 is the fully transparent color and alpha is thresholded at 128;
// otherwise every pixel is flattened over black. Frames with few enough
// distinct colors keep them exactly, the rest go through median cut.
func palettize(img *image.NRGBA, transparent bool) *image.Paletted {
	pix := prepareGIFPixels(img.Pix, transparent)
	prepared := &image.NRGBA{Pix: pix, Stride: img.Stride, Rect: img.Rect}

	pal := make(color.Palette, 0, maxPaletteSize)
	offset := 0
	if transparent {
		pal = append(pal, color.NRGBA{})
		offset = 1
	}
	if exact, ok := distinctColors(pix, maxPaletteSize-offset); ok {
		pal = append(pal, exact...)
	} else {
		pal = quantize.MedianCutQuantizer{}.Quantize(pal, prepared)
	}
	if len(pal) == 0 {
		pal = append(pal, color.NRGBA{A: 255})
	}

	out := image.NewPaletted(img.Rect, pal)
	opaque := pal[offset:]
	cache := make(map[uint32]uint8)
	for i, j := 0, 0; i < len(pix); i, j = i+4, j+1 {
		if transparent && pix[i+3] == 0 {
			out.Pix[j] = 0
			continue
		}
		key := uint32(pix[i])<<16 | uint32(pix[i+1])<<8 | uint32(pix[i+2])
		idx, ok := cache[key]
		if !ok {
			idx = uint8(opaque.Index(color.NRGBA{R: pix[i], G: pix[i+1], B: pix[i+2], A: 255}) + offset)
			cache[key] = idx
		}
		out.Pix[j] = idx
	}
	return out
}

// prepareGIFPixels returns a copy of pix with binary alpha. Transparent
// pixels become (0,0,0,0) when keeping transparency; without it every
// pixel is composited over black.
func prepareGIFPixels(pix []uint8, transparent bool) []uint8 {
	out := make([]uint8, len(pix))
	for i := 0; i < len(pix); i += 4 {
		a := pix[i+3]
		if transparent {
			if a < 128 {
				continue
			}
			out[i], out[i+1], out[i+2], out[i+3] = pix[i], pix[i+1], pix[i+2], 255
			continue
		}
		out[i] = uint8(uint32(pix[i]) * uint32(a) / 255)
		out[i+1] = uint8(uint32(pix[i+1]) * uint32(a) / 255)
		out[i+2] = uint8(uint32(pix[i+2]) * uint32(a) / 255)
		out[i+3] = 255
	}
	return out
}

// distinctColors lists the opaque colors of pix in first-seen order, or
// reports false once there are more than limit of them.
func distinctColors(pix []uint8, limit int) (color.Palette, bool) {
	seen := make(map[uint32]struct{})
	var out color.Palette
	for i := 0; i < len(pix); i += 4 {
		if pix[i+3] == 0 {
			continue
		}
		key := uint32(pix[i])<<16 | uint32(pix[i+1])<<8 | uint32(pix[i+2])
		if _, ok := seen[key]; ok {
			continue
		}
		if len(seen) == limit {
			return nil, false
		}
		seen[key] = struct{}{}
		out = append(out, color.NRGBA{R: pix[i], G: pix[i+1], B: pix[i+2], A: 255})
	}
	return out, true
}
