package assetforge

import (
	"bytes"
	"image"
	"math"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// DecodeRaster decodes a still image (PNG, JPEG, GIF, BMP, TIFF or WebP)
// into a tightly packed NRGBA buffer with its origin at (0, 0).
func DecodeRaster(data []byte) (*image.NRGBA, error) {
	if len(data) == 0 {
		return nil, newError("decode raster", ErrDecode, errEmptyInput)
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, newError("decode raster", ErrDecode, err)
	}
	return imaging.Clone(img), nil
}

// EncodePNG serializes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, newError("encode png", ErrEncode, err)
	}
	return buf.Bytes(), nil
}

// upscale doubles both dimensions of img.
func upscale(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	return imaging.Resize(img, b.Dx()*2, b.Dy()*2, imaging.Linear)
}

func resizeTo(img *image.NRGBA, w, h int) *image.NRGBA {
	if b := img.Bounds(); b.Dx() == w && b.Dy() == h {
		return img
	}
	return imaging.Resize(img, w, h, imaging.Linear)
}

func clampByte(v float64) uint8 {
	return uint8(max(0, min(255, math.Round(v))))
}

// isBackground reports whether the pixel at offset i of pix is within tol
// of pure white on each of R, G and B. Alpha is not compared.
func isBackground(pix []uint8, i int, tol uint8) bool {
	return 255-pix[i] <= tol && 255-pix[i+1] <= tol && 255-pix[i+2] <= tol
}
