package assetforge

import (
	"fmt"
	"image"
	"log/slog"
	"math"
	"math/rand/v2"
	"runtime"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultWatermarkWidth and DefaultWatermarkHeight are the 70x54 mark
	// asset scaled by 1.1, the largest size before it looks pixelated.
	DefaultWatermarkWidth  = 77
	DefaultWatermarkHeight = 59
)

// Anchor is a watermark position as fractions of the frame size.
type Anchor struct {
	Name string
	X, Y float64
}

var DefaultAnchors = []Anchor{
	{Name: "bottom-left", X: 0.08, Y: 0.70},
	{Name: "middle-left", X: 0.08, Y: 0.55},
	{Name: "top-right", X: 0.70, Y: 0.14},
	{Name: "bottom-right", X: 0.70, Y: 0.70},
}

// Point returns the absolute position of a in a w by h frame.
func (a Anchor) Point(w, h int) image.Point {
	return image.Pt(int(math.Round(float64(w)*a.X)), int(math.Round(float64(h)*a.Y)))
}

// Watermarker stamps a mark onto every frame of an animation.
type Watermarker struct {
	Mark image.Image
	// Width and Height are the size the mark is resized to.
	Width, Height int
	// Anchors are the candidate positions, one is picked per call.
	Anchors []Anchor
	Delay   time.Duration
	// BlackTolerance drives the background keying done before stamping.
	BlackTolerance uint8
	// Rand picks the anchor. Nil uses the global source. Draws are
	// serialized, so one Watermarker may serve concurrent callers.
	Rand   *rand.Rand
	Logger *slog.Logger

	randMu sync.Mutex
}

// LoadWatermark decodes a watermark asset.
func LoadWatermark(data []byte) (image.Image, error) {
	img, err := DecodeRaster(data)
	if err != nil {
		return nil, newError("load watermark", ErrAssetLoad, err)
	}
	return img, nil
}

// NewWatermarker decodes mark and returns a Watermarker with the default
// size, anchors and delay.
func NewWatermarker(mark []byte) (*Watermarker, error) {
	img, err := LoadWatermark(mark)
	if err != nil {
		return nil, err
	}
	return &Watermarker{
		Mark:           img,
		Width:          DefaultWatermarkWidth,
		Height:         DefaultWatermarkHeight,
		Anchors:        DefaultAnchors,
		Delay:          DefaultFrameDelay,
		BlackTolerance: DefaultBlackTolerance,
	}, nil
}

// Watermark stamps mark onto gif at a random default anchor.
func Watermark(gif, mark []byte) ([]byte, error) {
	w, err := NewWatermarker(mark)
	if err != nil {
		return nil, err
	}
	return w.Watermark(gif)
}

// Watermark stamps the mark at one randomly chosen anchor, the same for
// every frame, and re-encodes the animation.
func (w *Watermarker) Watermark(gif []byte) ([]byte, error) {
	if len(w.Anchors) == 0 {
		return nil, newError("watermark", ErrInvalidOptions, fmt.Errorf("no anchors"))
	}
	return w.WatermarkWithAnchor(gif, w.pickAnchor())
}

// WatermarkWithAnchor is Watermark with a fixed anchor.
func (w *Watermarker) WatermarkWithAnchor(gif []byte, anchor Anchor) ([]byte, error) {
	start := time.Now()
	if w.Mark == nil {
		return nil, newError("watermark", ErrAssetLoad, fmt.Errorf("no watermark image"))
	}
	if w.Width <= 0 || w.Height <= 0 {
		return nil, newError("watermark", ErrInvalidOptions, fmt.Errorf("watermark size %dx%d", w.Width, w.Height))
	}

	// The background is keyed to transparent rather than to a color: edges
	// of the mark alias against a solid replacement color.
	decoded, err := DecodeGIF(gif, TransparentKey(w.BlackTolerance))
	if err != nil {
		return nil, err
	}

	mark := imaging.Resize(w.Mark, w.Width, w.Height, imaging.Lanczos)
	at := anchor.Point(decoded.Width, decoded.Height)
	target := image.Rectangle{Min: at, Max: at.Add(mark.Bounds().Size())}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range decoded.Frames {
		dst := decoded.Frames[i].Image
		g.Go(func() error {
			draw.Draw(dst, target, mark, image.Point{}, draw.Over)
			return nil
		})
	}
	_ = g.Wait()

	out, err := EncodeGIF(decoded.Images(), EncodeOptions{Delay: w.Delay, Repeat: true})
	if err != nil {
		return nil, err
	}
	loggerOrDiscard(w.Logger).Debug("watermark applied",
		"component", "watermark",
		"anchor", anchor.Name,
		"frames", len(decoded.Frames),
		"duration", time.Since(start),
	)
	return out, nil
}

func (w *Watermarker) pickAnchor() Anchor {
	if w.Rand != nil {
		w.randMu.Lock()
		defer w.randMu.Unlock()
		return w.Anchors[w.Rand.IntN(len(w.Anchors))]
	}
	return w.Anchors[rand.IntN(len(w.Anchors))]
}
