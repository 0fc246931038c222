package utils

import (
	"image"
	"image/color"
	"log/slog"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

// ParsePaletteMethod accepts the names returned by String. Unknown names
// fall back to the dominant color method.
func ParsePaletteMethod(name string) PaletteMethod {
	if name == PaletteMethodKMeans.String() {
		return PaletteMethodKMeans
	}
	return PaletteMethodDominantColor
}

// maxSamples caps how many opaque pixels feed a palette search.
const maxSamples = 12000

type weightedColor struct {
	Col    colorful.Color
	Weight float64
}

// SortPaletteByBrightness orders colors from darkest to brightest by linear
// luminance.
func SortPaletteByBrightness(palette []colorful.Color) {
	slices.SortFunc(palette, func(a, b colorful.Color) int {
		ri, gi, bi := a.LinearRgb()
		rj, gj, bj := b.LinearRgb()
		yi := 0.2126*ri + 0.7152*gi + 0.0722*bi
		yj := 0.2126*rj + 0.7152*gj + 0.0722*bj
		if yi < yj {
			return -1
		}
		if yi > yj {
			return 1
		}
		return 0
	})
}

// ExtractPalette returns up to k representative colors of the opaque pixels
// of img (alpha >= 128). Transparent pixels never contribute, so keyed-out
// backgrounds do not show up as black. An image without opaque pixels has
// no palette.
func ExtractPalette(img image.Image, k int, method PaletteMethod) []colorful.Color {
	if k <= 0 {
		return nil
	}
	samples := opaqueSamples(img)
	if len(samples) == 0 {
		return nil
	}
	switch method {
	case PaletteMethodKMeans:
		if p := kmeansPalette(samples, k); len(p) != 0 {
			return p
		}
		slog.Debug("kmeans returned an empty palette, falling back to dominantcolor", "component", "palette")
		return dominantPalette(samples, k)
	default:
		return dominantPalette(samples, k)
	}
}

// opaqueSamples collects the opaque pixels of img, subsampled with a fixed
// stride when there are more than maxSamples of them.
func opaqueSamples(img image.Image) []color.NRGBA {
	b := img.Bounds()
	if b.Empty() {
		return nil
	}
	step := 1
	if n := b.Dx() * b.Dy(); n > maxSamples {
		step = int(math.Sqrt(float64(n)/float64(maxSamples))) + 1
	}
	var out []color.NRGBA
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A < 128 {
				continue
			}
			c.A = 255
			out = append(out, c)
		}
	}
	return out
}

// sampleImage packs samples into a square opaque image. The tail of the
// last row repeats samples from the start so no foreign color is added.
func sampleImage(samples []color.NRGBA) *image.NRGBA {
	side := int(math.Ceil(math.Sqrt(float64(len(samples)))))
	img := image.NewNRGBA(image.Rect(0, 0, side, side))
	for i := 0; i < side*side; i++ {
		img.SetNRGBA(i%side, i/side, samples[i%len(samples)])
	}
	return img
}

func dominantPalette(samples []color.NRGBA, k int) []colorful.Color {
	nCandidates := max(24, k*8)
	candidates := dominantcolor.FindWeight(sampleImage(samples), nCandidates)
	if len(candidates) == 0 {
		c := samples[0]
		candidates = append(candidates, dominantcolor.Color{
			RGBA:   color.RGBA{R: c.R, G: c.G, B: c.B, A: 255},
			Weight: 1.0,
		})
	}

	weighted := make([]weightedColor, 0, len(candidates))
	for _, c := range candidates {
		col, _ := colorful.MakeColor(c.RGBA)
		weighted = append(weighted, weightedColor{Col: col.Clamped(), Weight: c.Weight})
	}
	return selectDiverseWeightedColors(weighted, k)
}

func kmeansPalette(samples []color.NRGBA, k int) []colorful.Color {
	dataset := make(clusters.Observations, 0, len(samples))
	for _, c := range samples {
		dataset = append(dataset, clusters.Coordinates{
			float64(c.R) / 255.0,
			float64(c.G) / 255.0,
			float64(c.B) / 255.0,
		})
	}

	workK := min(max(k*4, k+2), len(dataset))
	km := kmeans.New()
	cc, err := km.Partition(dataset, workK)
	if err != nil || len(cc) == 0 {
		return nil
	}

	weighted := make([]weightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 || len(c.Observations) == 0 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		weighted = append(weighted, weightedColor{Col: col, Weight: float64(len(c.Observations))})
	}
	return selectDiverseWeightedColors(weighted, k)
}

// selectDiverseWeightedColors greedily picks k colors, starting from the
// heaviest one and then favoring colors far (in Lab) from those already
// picked, scaled by their weight.
func selectDiverseWeightedColors(cands []weightedColor, k int) []colorful.Color {
	if k <= 0 || len(cands) == 0 {
		return nil
	}
	type item struct {
		col colorful.Color
		lab [3]float64
		w   float64
	}
	items := make([]item, 0, len(cands))
	maxW := 0.0
	for _, c := range cands {
		col := c.Col.Clamped()
		l, a, b := col.Lab()
		w := c.Weight
		if w <= 0 {
			w = 1e-6
		}
		maxW = max(maxW, w)
		items = append(items, item{col: col, lab: [3]float64{l, a, b}, w: w})
	}
	k = min(k, len(items))

	selectedIdx := make([]int, 0, k)
	selected := make([]bool, len(items))

	seed := 0
	for i := 1; i < len(items); i++ {
		if items[i].w > items[seed].w {
			seed = i
		}
	}
	selectedIdx = append(selectedIdx, seed)
	selected[seed] = true

	for len(selectedIdx) < k {
		bestIdx := -1
		bestScore := -1.0
		for i := range items {
			if selected[i] {
				continue
			}
			minD2 := math.MaxFloat64
			for _, s := range selectedIdx {
				d0 := items[i].lab[0] - items[s].lab[0]
				d1 := items[i].lab[1] - items[s].lab[1]
				d2 := items[i].lab[2] - items[s].lab[2]
				minD2 = min(minD2, d0*d0+d1*d1+d2*d2)
			}
			score := math.Sqrt(minD2) * (0.55 + 0.45*math.Sqrt(items[i].w/maxW))
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}
		selected[bestIdx] = true
		selectedIdx = append(selectedIdx, bestIdx)
	}

	out := make([]colorful.Color, 0, len(selectedIdx))
	for _, idx := range selectedIdx {
		out = append(out, items[idx].col)
	}
	return out
}
