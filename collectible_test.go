package assetforge

import (
	"bytes"
	"image/gif"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setanarut/assetforge/internal/testsupport"
)

const (
	circleSize   = 100
	circleRadius = 40
)

func TestDeriveCircle(t *testing.T) {
	src := testsupport.CircleGIF(t, circleSize, 4, circleRadius)

	assets, err := Derive(src, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, assets.FrameCount)

	anim, err := gif.DecodeAll(bytes.NewReader(assets.TransparentGIF))
	require.NoError(t, err)
	assert.Len(t, anim.Image, 4)
	assert.Equal(t, 0, anim.LoopCount)

	keyed, err := DecodeGIF(assets.TransparentGIF, nil)
	require.NoError(t, err)
	for i, f := range keyed.Frames {
		for y := 3; y < circleSize; y++ {
			for x := range circleSize {
				a := f.Image.NRGBAAt(x, y).A
				if testsupport.InCircle(circleSize, circleRadius, x, y) {
					require.Equal(t, uint8(255), a, "frame %d (%d,%d)", i, x, y)
				} else {
					require.Equal(t, uint8(0), a, "frame %d (%d,%d)", i, x, y)
				}
			}
		}
	}

	main, err := DecodeRaster(assets.SilhouetteMain)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), main.NRGBAAt(5, 50).A)
	assert.Equal(t, uint8(255), main.NRGBAAt(50, 50).A)
	// Frame 2 carries its accent at x=8.
	assert.Equal(t, uint8(255), main.NRGBAAt(9, 1).A)

	for name, tc := range map[string]struct {
		data []byte
		want uint8
	}{
		"black": {assets.SilhouetteBlack, 0},
		"white": {assets.SilhouetteWhite, 255},
	} {
		img, err := DecodeRaster(tc.data)
		require.NoError(t, err, name)
		assert.Equal(t, main.Bounds(), img.Bounds(), name)
		for i := 0; i < len(img.Pix); i += 4 {
			if img.Pix[i+3] == 0 {
				continue
			}
			require.Equal(t, []uint8{tc.want, tc.want, tc.want}, img.Pix[i:i+3], "%s offset %d", name, i)
		}
		assert.Equal(t, uint8(255), img.NRGBAAt(50, 50).A, name)
	}

	assert.NotEmpty(t, assets.Palette)
	for _, c := range assets.Palette {
		assert.Equal(t, uint8(255), c.A)
	}
}

func TestDeriveIndexOutOfRange(t *testing.T) {
	src := testsupport.CircleGIF(t, 20, 4, 6)
	for _, index := range []int{-1, 4, 100} {
		assets, err := Derive(src, index)
		assert.Nil(t, assets)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "index %d", index)
	}
}

func TestDeriveDecodeError(t *testing.T) {
	_, err := Derive([]byte("not a gif"), 0)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestDeriverOptions(t *testing.T) {
	d := NewDeriver()
	d.PaletteSize = 0
	d.ReducePixelation = false
	d.Delay = 50 * time.Millisecond

	assets, err := d.Derive(testsupport.CircleGIF(t, 24, 2, 8), 1)
	require.NoError(t, err)
	assert.Empty(t, assets.Palette)

	anim, err := gif.DecodeAll(bytes.NewReader(assets.TransparentGIF))
	require.NoError(t, err)
	assert.Equal(t, []int{5, 5}, anim.Delay)
}
