package assetforge

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"math"
	"runtime"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"
)

// ChromaKey replaces near-black pixels while decoding: any pixel whose R, G
// and B are all <= Tolerance becomes Color.
type ChromaKey struct {
	Tolerance uint8
	Color     RGBAColor
}

// TransparentKey keys near-black pixels out to fully transparent.
func TransparentKey(tolerance uint8) *ChromaKey {
	return &ChromaKey{Tolerance: tolerance, Color: Transparent}
}

func (k ChromaKey) apply(pix []uint8) {
	for i := 0; i < len(pix); i += 4 {
		if pix[i] <= k.Tolerance && pix[i+1] <= k.Tolerance && pix[i+2] <= k.Tolerance {
			pix[i], pix[i+1], pix[i+2], pix[i+3] = k.Color.R, k.Color.G, k.Color.B, k.Color.A
		}
	}
}

// Frame is one fully composited animation frame. Image is owned by the
// frame and always has the size of the animation.
type Frame struct {
	Image    *image.NRGBA
	Delay    time.Duration
	Disposal byte
	// Offset is where the frame's own sub-image sat on the canvas.
	Offset image.Point
}

type DecodedGIF struct {
	Width, Height int
	// LoopCount follows image/gif: 0 loops forever, -1 plays once.
	LoopCount int
	Frames    []Frame
}

// Images returns the frame buffers in display order.
func (d *DecodedGIF) Images() []image.Image {
	out := make([]image.Image, len(d.Frames))
	for i := range d.Frames {
		out[i] = d.Frames[i].Image
	}
	return out
}

// DecodeGIF decodes every frame of data into its own RGBA buffer. Frames are
// blitted onto a shared canvas the way a GIF player would, honoring each
// frame's disposal method, and the canvas is copied out after every frame.
// When key is non-nil it is applied to the copies, never to the canvas.
func DecodeGIF(data []byte, key *ChromaKey) (*DecodedGIF, error) {
	if len(data) == 0 {
		return nil, newError("decode gif", ErrDecode, errEmptyInput)
	}
	anim, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, newError("decode gif", ErrDecode, err)
	}
	if len(anim.Image) == 0 {
		return nil, newError("decode gif", ErrDecode, fmt.Errorf("gif contains no frames"))
	}

	w, h := anim.Config.Width, anim.Config.Height
	bounds := image.Rect(0, 0, w, h)
	canvas := image.NewRGBA(bounds)
	out := &DecodedGIF{
		Width:     w,
		Height:    h,
		LoopCount: anim.LoopCount,
		Frames:    make([]Frame, len(anim.Image)),
	}

	for i, frame := range anim.Image {
		disposal := byte(0)
		if i < len(anim.Disposal) {
			disposal = anim.Disposal[i]
		}
		var previous []uint8
		if disposal == gif.DisposalPrevious {
			previous = append([]uint8(nil), canvas.Pix...)
		}

		fb := frame.Bounds()
		draw.Draw(canvas, fb, frame, fb.Min, draw.Over)
		out.Frames[i] = Frame{
			Image:    imaging.Clone(canvas),
			Delay:    frameDelay(anim, i),
			Disposal: disposal,
			Offset:   fb.Min,
		}

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, fb, image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			copy(canvas.Pix, previous)
		}
	}

	if key != nil {
		var g errgroup.Group
		g.SetLimit(runtime.GOMAXPROCS(0))
		for i := range out.Frames {
			pix := out.Frames[i].Image.Pix
			g.Go(func() error {
				key.apply(pix)
				return nil
			})
		}
		_ = g.Wait()
	}
	return out, nil
}

func frameDelay(anim *gif.GIF, i int) time.Duration {
	if i >= len(anim.Delay) {
		return 0
	}
	return time.Duration(anim.Delay[i]) * 10 * time.Millisecond
}

// EncodeOptions controls EncodeGIF.
type EncodeOptions struct {
	// Delay between frames, stored with centisecond precision.
	Delay time.Duration
	// Transparent reserves palette index 0 as the transparent color. Pixels
	// with alpha below 128 map to it. Otherwise every pixel is flattened
	// over black.
	Transparent bool
	// Repeat loops the animation forever. Otherwise it plays once.
	Repeat bool
}

func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{Delay: DefaultFrameDelay, Repeat: true}
}

// EncodeGIF encodes frames, which must all share the size of the first
// one, into an animated GIF. Every frame gets its own palette.
func EncodeGIF(frames []image.Image, opts EncodeOptions) ([]byte, error) {
	if len(frames) == 0 {
		return nil, newError("encode gif", ErrEncode, fmt.Errorf("no frames"))
	}
	if opts.Delay < 0 || opts.Delay > MaxFrameDelay {
		return nil, newError("encode gif", ErrEncode, fmt.Errorf("delay %v out of range", opts.Delay))
	}
	size := frames[0].Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return nil, newError("encode gif", ErrEncode, fmt.Errorf("empty first frame"))
	}
	for i, f := range frames {
		if f == nil {
			return nil, newError("encode gif", ErrEncode, fmt.Errorf("frame %d is nil", i))
		}
		if got := f.Bounds().Size(); got != size {
			return nil, newError("encode gif", ErrEncode,
				fmt.Errorf("frame %d is %dx%d, want %dx%d", i, got.X, got.Y, size.X, size.Y))
		}
	}

	n := len(frames)
	delay := int(math.Round(float64(opts.Delay) / float64(10*time.Millisecond)))
	anim := &gif.GIF{
		Image:    make([]*image.Paletted, n),
		Delay:    make([]int, n),
		Disposal: make([]byte, n),
		Config:   image.Config{Width: size.X, Height: size.Y},
	}
	if opts.Repeat {
		anim.LoopCount = 0
	} else {
		anim.LoopCount = -1
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, f := range frames {
		anim.Delay[i] = delay
		if opts.Transparent {
			// Clear each frame before drawing the next so keyed areas do not
			// show earlier frames through.
			anim.Disposal[i] = gif.DisposalBackground
		}
		g.Go(func() error {
			anim.Image[i] = palettize(imaging.Clone(f), opts.Transparent)
			return nil
		})
	}
	_ = g.Wait()

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return nil, newError("encode gif", ErrEncode, err)
	}
	return buf.Bytes(), nil
}

// EncodePNGFrames is EncodeGIF for frames that are already encoded images.
func EncodePNGFrames(frames [][]byte, opts EncodeOptions) ([]byte, error) {
	images := make([]image.Image, len(frames))
	for i, data := range frames {
		img, err := DecodeRaster(data)
		if err != nil {
			return nil, newError(fmt.Sprintf("encode gif: frame %d", i), ErrEncode, err)
		}
		images[i] = img
	}
	return EncodeGIF(images, opts)
}
