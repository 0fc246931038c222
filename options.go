package assetforge

import (
	"fmt"
	"math"
	"time"
)

const (
	// DefaultTolerance is how far (per channel, 0-255) a pixel may be from
	// pure white and still count as background during recoloring.
	// Useful range: 20-40. Too low merges lines, too high leaves lines
	// uncolored.
	DefaultTolerance uint8 = 34
	// DefaultContrast is the opacity (0-1) of the contrast-preserving layer.
	// Below ~0.35 the result is flat, above ~0.65 dark lines go black.
	DefaultContrast = 0.55
	// DefaultBlackTolerance is the per channel ceiling (0-255) under which a
	// GIF pixel counts as near-black background for chroma keying.
	DefaultBlackTolerance uint8 = 27
	// DefaultFrameDelay is the delay used when re-encoding animations.
	DefaultFrameDelay = 100 * time.Millisecond
	// MaxFrameDelay is the longest delay a GIF frame can store.
	MaxFrameDelay = math.MaxUint16 * 10 * time.Millisecond
	// DefaultSilhouetteIndex is the frame callers usually pick for
	// silhouettes: turned to the side, but not fully.
	DefaultSilhouetteIndex = 3
)

// RecolorOptions tunes RecolorImage.
type RecolorOptions struct {
	// Tolerance, 0-255. See DefaultTolerance.
	Tolerance uint8
	// Contrast, 0-1. 0 yields the flat target color, 1 keeps the shading
	// of the source. Values outside the range are rejected.
	Contrast float64
	// ReducePixelation processes the image at twice its size and scales it
	// back down afterwards. Smoother edges, about twice as slow.
	ReducePixelation bool
}

func DefaultRecolorOptions() RecolorOptions {
	return RecolorOptions{
		Tolerance: DefaultTolerance,
		Contrast:  DefaultContrast,
	}
}

// Validate rejects a contrast outside [0, 1].
func (o RecolorOptions) Validate() error {
	if math.IsNaN(o.Contrast) || o.Contrast < 0 || o.Contrast > 1 {
		return newError("recolor options", ErrInvalidOptions, fmt.Errorf("contrast %v must be between 0 and 1", o.Contrast))
	}
	return nil
}
