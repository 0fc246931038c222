package assetforge

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setanarut/assetforge/internal/testsupport"
)

func solidFrame(w, h int, c color.NRGBA) image.Image {
	return testsupport.Solid(w, h, c)
}

func decodeAll(t *testing.T, data []byte) *gif.GIF {
	t.Helper()
	anim, err := gif.DecodeAll(bytes.NewReader(data))
	require.NoError(t, err)
	return anim
}

func TestDecodeGIF(t *testing.T) {
	data := testsupport.CircleGIF(t, 30, 3, 10)

	decoded, err := DecodeGIF(data, nil)
	require.NoError(t, err)
	assert.Equal(t, 30, decoded.Width)
	assert.Equal(t, 30, decoded.Height)
	assert.Equal(t, 0, decoded.LoopCount)
	require.Len(t, decoded.Frames, 3)
	for _, f := range decoded.Frames {
		assert.Equal(t, image.Rect(0, 0, 30, 30), f.Image.Bounds())
		assert.Equal(t, 100*time.Millisecond, f.Delay)
	}

	center := decoded.Frames[0].Image.NRGBAAt(15, 15)
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, center)
	corner := decoded.Frames[0].Image.NRGBAAt(29, 29)
	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, corner)
}

func TestDecodeGIFFramesOwnBuffers(t *testing.T) {
	decoded, err := DecodeGIF(testsupport.CircleGIF(t, 20, 2, 5), nil)
	require.NoError(t, err)

	decoded.Frames[0].Image.Pix[0] = 42
	assert.NotEqual(t, uint8(42), decoded.Frames[1].Image.Pix[0])
}

func TestDecodeGIFChromaKey(t *testing.T) {
	data := testsupport.CircleGIF(t, 30, 2, 10)
	key := &ChromaKey{Tolerance: DefaultBlackTolerance, Color: RGBAColor{0, 255, 0, 255}}

	decoded, err := DecodeGIF(data, key)
	require.NoError(t, err)
	for _, f := range decoded.Frames {
		for y := range 30 {
			for x := range 30 {
				got := f.Image.NRGBAAt(x, y)
				if testsupport.InCircle(30, 10, x, y) {
					require.Equal(t, color.NRGBA{255, 255, 255, 255}, got)
				} else if y >= 3 {
					require.Equal(t, color.NRGBA{0, 255, 0, 255}, got)
				}
			}
		}
	}
}

func TestChromaKeyTotal(t *testing.T) {
	pix := make([]uint8, 0, 4*64)
	for v := 0; v < 64; v++ {
		pix = append(pix, uint8(v), uint8(v/2), uint8(v*3), uint8(200+v%50))
	}
	orig := append([]uint8(nil), pix...)
	key := ChromaKey{Tolerance: 27, Color: RGBAColor{9, 8, 7, 6}}
	key.apply(pix)

	for i := 0; i < len(pix); i += 4 {
		if orig[i] <= 27 && orig[i+1] <= 27 && orig[i+2] <= 27 {
			assert.Equal(t, []uint8{9, 8, 7, 6}, pix[i:i+4])
		} else {
			assert.Equal(t, orig[i:i+4], pix[i:i+4])
		}
	}
}

func TestDecodeGIFDisposalBackground(t *testing.T) {
	pal := color.Palette{color.Transparent, color.RGBA{255, 0, 0, 255}}
	full := image.NewPaletted(image.Rect(0, 0, 4, 4), pal)
	for i := range full.Pix {
		full.Pix[i] = 1
	}
	patch := image.NewPaletted(image.Rect(0, 0, 1, 1), pal)
	anim := &gif.GIF{
		Image:    []*image.Paletted{full, patch},
		Delay:    []int{5, 5},
		Disposal: []byte{gif.DisposalBackground, gif.DisposalNone},
		Config:   image.Config{Width: 4, Height: 4, ColorModel: pal},
	}
	var buf bytes.Buffer
	require.NoError(t, gif.EncodeAll(&buf, anim))

	decoded, err := DecodeGIF(buf.Bytes(), nil)
	require.NoError(t, err)
	require.Len(t, decoded.Frames, 2)
	assert.Equal(t, uint8(255), decoded.Frames[0].Image.NRGBAAt(3, 3).A)
	assert.Equal(t, uint8(0), decoded.Frames[1].Image.NRGBAAt(3, 3).A, "first frame was disposed")
}

func TestDecodeGIFErrors(t *testing.T) {
	_, err := DecodeGIF(nil, nil)
	assert.ErrorIs(t, err, ErrDecode)

	_, err = DecodeGIF([]byte("GIF89a garbage"), nil)
	assert.ErrorIs(t, err, ErrDecode)

	png := testsupport.PNG(t, testsupport.Solid(2, 2, color.NRGBA{1, 2, 3, 255}))
	_, err = DecodeGIF(png, nil)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestEncodeGIFRoundTrip(t *testing.T) {
	colors := []color.NRGBA{{255, 0, 0, 255}, {0, 128, 0, 255}, {10, 20, 30, 255}, {250, 250, 250, 255}}
	frames := make([]image.Image, len(colors))
	for i, c := range colors {
		frames[i] = solidFrame(6, 5, c)
	}

	data, err := EncodeGIF(frames, DefaultEncodeOptions())
	require.NoError(t, err)

	decoded, err := DecodeGIF(data, nil)
	require.NoError(t, err)
	require.Len(t, decoded.Frames, len(frames))
	assert.Equal(t, 6, decoded.Width)
	assert.Equal(t, 5, decoded.Height)
	for i, f := range decoded.Frames {
		assert.Equal(t, colors[i], f.Image.NRGBAAt(2, 2), "few colors survive exactly")
		assert.Equal(t, DefaultFrameDelay, f.Delay)
	}
}

func TestEncodeGIFManyColors(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := range 64 {
		for x := range 64 {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 4), uint8(y * 4), uint8(x + y), 255})
		}
	}
	data, err := EncodeGIF([]image.Image{img, img}, DefaultEncodeOptions())
	require.NoError(t, err)

	anim := decodeAll(t, data)
	require.Len(t, anim.Image, 2)
	assert.LessOrEqual(t, len(anim.Image[0].Palette), 256)
}

func TestEncodeGIFLoopCount(t *testing.T) {
	frames := []image.Image{solidFrame(2, 2, color.NRGBA{A: 255}), solidFrame(2, 2, color.NRGBA{R: 9, A: 255})}

	data, err := EncodeGIF(frames, EncodeOptions{Delay: 40 * time.Millisecond, Repeat: true})
	require.NoError(t, err)
	anim := decodeAll(t, data)
	assert.Equal(t, 0, anim.LoopCount)
	assert.Equal(t, []int{4, 4}, anim.Delay)

	data, err = EncodeGIF(frames, EncodeOptions{Delay: 40 * time.Millisecond})
	require.NoError(t, err)
	assert.Equal(t, -1, decodeAll(t, data).LoopCount)
}

func TestEncodeGIFTransparentIndex(t *testing.T) {
	img := testsupport.Solid(4, 4, color.NRGBA{200, 100, 50, 255})
	img.SetNRGBA(0, 0, color.NRGBA{})
	img.SetNRGBA(1, 0, color.NRGBA{R: 90, A: 60})

	data, err := EncodeGIF([]image.Image{img}, EncodeOptions{Delay: DefaultFrameDelay, Transparent: true, Repeat: true})
	require.NoError(t, err)

	anim := decodeAll(t, data)
	frame := anim.Image[0]
	_, _, _, a := frame.Palette[0].RGBA()
	assert.Zero(t, a, "index 0 is transparent")
	assert.Equal(t, uint8(0), frame.ColorIndexAt(0, 0))
	assert.Equal(t, uint8(0), frame.ColorIndexAt(1, 0), "alpha below 128")
	assert.NotEqual(t, uint8(0), frame.ColorIndexAt(2, 2))
	assert.Equal(t, byte(gif.DisposalBackground), anim.Disposal[0])
}

func TestEncodeGIFFlattensOverBlack(t *testing.T) {
	img := testsupport.Solid(2, 2, color.NRGBA{200, 100, 50, 0})

	data, err := EncodeGIF([]image.Image{img}, DefaultEncodeOptions())
	require.NoError(t, err)

	decoded, err := DecodeGIF(data, nil)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, decoded.Frames[0].Image.NRGBAAt(1, 1))
}

func TestEncodeGIFErrors(t *testing.T) {
	opts := DefaultEncodeOptions()

	_, err := EncodeGIF(nil, opts)
	assert.ErrorIs(t, err, ErrEncode)

	_, err = EncodeGIF([]image.Image{solidFrame(2, 2, color.NRGBA{A: 255}), solidFrame(3, 2, color.NRGBA{A: 255})}, opts)
	assert.ErrorIs(t, err, ErrEncode)

	_, err = EncodeGIF([]image.Image{solidFrame(2, 2, color.NRGBA{A: 255}), nil}, opts)
	assert.ErrorIs(t, err, ErrEncode)

	_, err = EncodeGIF([]image.Image{image.NewNRGBA(image.Rectangle{})}, opts)
	assert.ErrorIs(t, err, ErrEncode)

	_, err = EncodeGIF([]image.Image{solidFrame(2, 2, color.NRGBA{A: 255})}, EncodeOptions{Delay: -time.Second})
	assert.ErrorIs(t, err, ErrEncode)
}

func TestEncodePNGFrames(t *testing.T) {
	a := testsupport.PNG(t, testsupport.Solid(3, 3, color.NRGBA{255, 0, 0, 255}))
	b := testsupport.PNG(t, testsupport.Solid(3, 3, color.NRGBA{0, 0, 255, 255}))

	data, err := EncodePNGFrames([][]byte{a, b}, DefaultEncodeOptions())
	require.NoError(t, err)
	assert.Len(t, decodeAll(t, data).Image, 2)

	_, err = EncodePNGFrames([][]byte{a, []byte("junk")}, DefaultEncodeOptions())
	assert.ErrorIs(t, err, ErrEncode)
}
