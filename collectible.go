package assetforge

import (
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/setanarut/assetforge/utils"
)

// CollectibleAssets is the bundle derived from one source animation.
type CollectibleAssets struct {
	// TransparentGIF is the source animation with its black background
	// keyed out.
	TransparentGIF []byte
	// SilhouetteMain is the keyed silhouette frame as PNG.
	SilhouetteMain []byte
	// SilhouetteBlack and SilhouetteWhite are the same frame painted fully
	// black or white, alpha untouched.
	SilhouetteBlack []byte
	SilhouetteWhite []byte
	FrameCount      int
	// Palette holds the dominant colors of the silhouette frame, darkest
	// first.
	Palette []RGBAColor
}

// Deriver builds CollectibleAssets. The zero value is not useful; start
// from NewDeriver.
//
// Sources are expected to be rendered on a pure black background. Any
// near-black pixel, including ones inside the object, is keyed out, so
// objects with black parts come out with holes.
type Deriver struct {
	// BlackTolerance, 0-255, see DefaultBlackTolerance.
	BlackTolerance uint8
	Delay          time.Duration
	// ReducePixelation smooths the black and white silhouettes.
	ReducePixelation bool
	// PaletteSize is the number of palette colors; 0 skips extraction.
	PaletteSize   int
	PaletteMethod utils.PaletteMethod
	Logger        *slog.Logger
}

func NewDeriver() *Deriver {
	return &Deriver{
		BlackTolerance:   DefaultBlackTolerance,
		Delay:            DefaultFrameDelay,
		ReducePixelation: true,
		PaletteSize:      5,
		PaletteMethod:    utils.PaletteMethodDominantColor,
	}
}

// Derive runs NewDeriver().Derive.
func Derive(gif []byte, silhouetteIndex int) (*CollectibleAssets, error) {
	return NewDeriver().Derive(gif, silhouetteIndex)
}

// Derive keys the black background out of gif, re-encodes it as a
// transparent looping animation and renders the frame at silhouetteIndex
// as the three silhouettes.
func (d *Deriver) Derive(gif []byte, silhouetteIndex int) (*CollectibleAssets, error) {
	start := time.Now()
	logger := loggerOrDiscard(d.Logger).With("component", "collectible")

	decoded, err := DecodeGIF(gif, TransparentKey(d.BlackTolerance))
	if err != nil {
		return nil, err
	}
	n := len(decoded.Frames)
	if silhouetteIndex < 0 || silhouetteIndex >= n {
		return nil, newError("derive collectible", ErrIndexOutOfRange,
			fmt.Errorf("silhouette index %d, animation has %d frames", silhouetteIndex, n))
	}
	frame := decoded.Frames[silhouetteIndex].Image

	assets := &CollectibleAssets{FrameCount: n}
	var g errgroup.Group
	g.Go(func() error {
		out, err := EncodeGIF(decoded.Images(), EncodeOptions{Delay: d.Delay, Transparent: true, Repeat: true})
		assets.TransparentGIF = out
		return err
	})
	g.Go(func() error {
		out, err := EncodePNG(frame)
		assets.SilhouetteMain = out
		return err
	})
	g.Go(func() error {
		out, err := EncodePNG(UniformRecolorImage(frame, Black, d.ReducePixelation))
		assets.SilhouetteBlack = out
		return err
	})
	g.Go(func() error {
		out, err := EncodePNG(UniformRecolorImage(frame, White, d.ReducePixelation))
		assets.SilhouetteWhite = out
		return err
	})
	if d.PaletteSize > 0 {
		g.Go(func() error {
			assets.Palette = DominantPalette(frame, d.PaletteSize, d.PaletteMethod)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Debug("collectible derived",
		"frames", n,
		"silhouette_index", silhouetteIndex,
		"duration", time.Since(start),
	)
	return assets, nil
}

func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}
