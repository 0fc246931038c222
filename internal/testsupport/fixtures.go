package testsupport

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"
)

// Fixture colors used by CircleGIF.
var (
	CircleBackground = color.RGBA{0, 0, 0, 255}
	CircleFill       = color.RGBA{255, 255, 255, 255}
	CircleAccent     = color.RGBA{200, 40, 40, 255}
)

// CircleGIF encodes an animation of frames size x size frames on a black
// background with a white circle of the given radius centered on every
// frame. Frame i carries a red accent square at (i*4, 0) so frames differ.
func CircleGIF(t testing.TB, size, frames, radius int) []byte {
	t.Helper()

	pal := color.Palette{CircleBackground, CircleFill, CircleAccent}
	anim := &gif.GIF{LoopCount: 0}
	c := size / 2
	for i := range frames {
		img := image.NewPaletted(image.Rect(0, 0, size, size), pal)
		for y := range size {
			for x := range size {
				dx, dy := x-c, y-c
				if dx*dx+dy*dy <= radius*radius {
					img.SetColorIndex(x, y, 1)
				}
			}
		}
		for y := 0; y < 3 && y < size; y++ {
			for x := i * 4; x < i*4+3 && x < size; x++ {
				img.SetColorIndex(x, y, 2)
			}
		}
		anim.Image = append(anim.Image, img)
		anim.Delay = append(anim.Delay, 10)
		anim.Disposal = append(anim.Disposal, gif.DisposalNone)
	}
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		t.Fatalf("encode circle gif: %v", err)
	}
	return buf.Bytes()
}

// InCircle reports whether (x, y) lies inside the circle drawn by CircleGIF.
func InCircle(size, radius, x, y int) bool {
	c := size / 2
	dx, dy := x-c, y-c
	return dx*dx+dy*dy <= radius*radius
}

// LineArt returns an opaque w x h image on a white background with a dark
// diagonal, a mid gray anti-diagonal and a light horizontal line.
func LineArt(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			v := uint8(255)
			switch {
			case x == y:
				v = 40
			case x == w-1-y:
				v = 120
			case y == h/2:
				v = 200
			}
			img.SetNRGBA(x, y, color.NRGBA{v, v, v, 255})
		}
	}
	return img
}

// PNG encodes img.
func PNG(t testing.TB, img image.Image) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// Solid returns a w x h image filled with c.
func Solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}
