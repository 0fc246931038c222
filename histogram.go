package assetforge

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// foregroundHistogram counts red channel intensities of the pixels that are
// not background.
func foregroundHistogram(pix []uint8, tol uint8) []float64 {
	hist := make([]float64, 256)
	for i := 0; i < len(pix); i += 4 {
		if isBackground(pix, i, tol) {
			continue
		}
		hist[pix[i]]++
	}
	return hist
}

// equalizationLUT maps each intensity to its normalized cumulative
// frequency. A flat CDF (no foreground, or a single intensity bucket
// spanning everything) maps every intensity to itself.
func equalizationLUT(hist []float64) [256]uint8 {
	var lut [256]uint8
	cdf := floats.CumSum(make([]float64, len(hist)), hist)
	lo, hi := floats.Min(cdf), floats.Max(cdf)
	if hi == lo {
		for i := range lut {
			lut[i] = uint8(i)
		}
		return lut
	}
	for i, v := range cdf {
		lut[i] = uint8(math.Round((v - lo) / (hi - lo) * 255))
	}
	return lut
}
