package assetforge

import (
	"image"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"
)

// Recolor decodes src, recolors its non-white pixels with the color of spec
// and returns the result as PNG.
func Recolor(src []byte, spec ColorSpec, opts RecolorOptions) ([]byte, error) {
	target, err := spec.Resolve()
	if err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	img, err := DecodeRaster(src)
	if err != nil {
		return nil, err
	}
	out, err := RecolorImage(img, target, opts)
	if err != nil {
		return nil, err
	}
	return EncodePNG(out)
}

// RecolorImage paints the lines of a line-art image with target while
// keeping its white background and, depending on opts.Contrast, its
// shading.
//
// Two layers are built from the source: a flat one where every foreground
// pixel is blended toward target by its own alpha, and a contrast-preserving
// one where target is scaled by the histogram-equalized intensity of the
// pixel. The second is laid over the first with opacity opts.Contrast.
func RecolorImage(img image.Image, target RGBAColor, opts RecolorOptions) (*image.NRGBA, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	src := imaging.Clone(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	if opts.ReducePixelation {
		src = upscale(src)
	}

	base := make([]uint8, len(src.Pix))
	shaded := make([]uint8, len(src.Pix))
	var g errgroup.Group
	g.Go(func() error {
		flatLayer(base, src.Pix, target, opts.Tolerance)
		return nil
	})
	g.Go(func() error {
		contrastLayer(shaded, src.Pix, target, opts.Tolerance)
		return nil
	})
	_ = g.Wait()

	blendForeground(base, shaded, src.Pix, opts.Tolerance, opts.Contrast)

	out := &image.NRGBA{Pix: base, Stride: src.Stride, Rect: src.Rect}
	if opts.ReducePixelation {
		out = resizeTo(out, w, h)
	}
	return out, nil
}

// UniformRecolor tints every pixel of src with spec, ignoring background
// detection, and returns PNG bytes.
func UniformRecolor(src []byte, spec ColorSpec, reducePixelation bool) ([]byte, error) {
	target, err := spec.Resolve()
	if err != nil {
		return nil, err
	}
	img, err := DecodeRaster(src)
	if err != nil {
		return nil, err
	}
	return EncodePNG(UniformRecolorImage(img, target, reducePixelation))
}

// UniformRecolorImage blends target over every pixel using the pixel's own
// alpha as weight. Opaque pixels become exactly target; alpha is kept.
func UniformRecolorImage(img image.Image, target RGBAColor, reducePixelation bool) *image.NRGBA {
	src := imaging.Clone(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	if reducePixelation {
		src = upscale(src)
	}
	pix := make([]uint8, len(src.Pix))
	for i := 0; i < len(pix); i += 4 {
		tint(pix, src.Pix, i, target)
	}
	out := &image.NRGBA{Pix: pix, Stride: src.Stride, Rect: src.Rect}
	if reducePixelation {
		out = resizeTo(out, w, h)
		// Resampling mixes tinted pixels with transparent ones whose color
		// channels were never tinted; force the channels back.
		fillColor(out.Pix, target)
	}
	return out
}

// flatLayer writes into dst the source pixels with every foreground pixel
// tinted toward target.
func flatLayer(dst, src []uint8, target RGBAColor, tol uint8) {
	copy(dst, src)
	for i := 0; i < len(src); i += 4 {
		if isBackground(src, i, tol) {
			continue
		}
		tint(dst, src, i, target)
	}
}

// contrastLayer writes into dst the source pixels with every foreground
// pixel replaced by target scaled by equalized/raw red intensity.
func contrastLayer(dst, src []uint8, target RGBAColor, tol uint8) {
	copy(dst, src)
	lut := equalizationLUT(foregroundHistogram(src, tol))
	for i := 0; i < len(src); i += 4 {
		if isBackground(src, i, tol) {
			continue
		}
		raw := src[i]
		ratio := 1.0
		if raw != 0 {
			ratio = (float64(lut[raw]) / 255) / (float64(raw) / 255)
		}
		dst[i] = clampByte(ratio * float64(target.R))
		dst[i+1] = clampByte(ratio * float64(target.G))
		dst[i+2] = clampByte(ratio * float64(target.B))
	}
}

// blendForeground composites layer over dst (source-over) with the given
// opacity, for the foreground pixels of orig only.
func blendForeground(dst, layer, orig []uint8, tol uint8, opacity float64) {
	for i := 0; i < len(dst); i += 4 {
		if isBackground(orig, i, tol) {
			continue
		}
		sa := float64(layer[i+3]) / 255 * opacity
		da := float64(dst[i+3]) / 255
		oa := sa + da*(1-sa)
		if oa == 0 {
			continue
		}
		for c := 0; c < 3; c++ {
			v := (float64(layer[i+c])*sa + float64(dst[i+c])*da*(1-sa)) / oa
			dst[i+c] = clampByte(v)
		}
		dst[i+3] = clampByte(oa * 255)
	}
}

// tint blends target over the pixel at offset i of src, weighted by the
// pixel alpha, and stores the result in dst.
func tint(dst, src []uint8, i int, target RGBAColor) {
	a := float64(src[i+3]) / 255
	dst[i] = clampByte((1-a)*float64(src[i]) + a*float64(target.R))
	dst[i+1] = clampByte((1-a)*float64(src[i+1]) + a*float64(target.G))
	dst[i+2] = clampByte((1-a)*float64(src[i+2]) + a*float64(target.B))
	dst[i+3] = src[i+3]
}

// fillColor sets the color channels of every non-transparent pixel to c.
func fillColor(pix []uint8, c RGBAColor) {
	for i := 0; i < len(pix); i += 4 {
		if pix[i+3] == 0 {
			continue
		}
		pix[i], pix[i+1], pix[i+2] = c.R, c.G, c.B
	}
}
