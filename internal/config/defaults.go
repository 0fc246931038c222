package config

import "github.com/setanarut/assetforge"

// MaxSilhouetteIndex is the largest frame index accepted for silhouettes.
const MaxSilhouetteIndex = 19

const (
	defaultFrameDelayMS         = 100
	defaultSilhouetteIndex      = assetforge.DefaultSilhouetteIndex
	defaultPaletteSize          = 5
	defaultPaletteMethod        = "dominantcolor"
	defaultWatermarkPath        = "~/.config/assetforge/watermark.png"
	defaultServerBind           = "127.0.0.1:7490"
	defaultServerMaxUploadMB    = 20
	defaultServerWorkers        = 4
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultCollectibleSmoothing = true
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Recolor: Recolor{
			Tolerance: int(assetforge.DefaultTolerance),
			Contrast:  assetforge.DefaultContrast,
		},
		GIF: GIF{
			FrameDelayMS:   defaultFrameDelayMS,
			BlackTolerance: int(assetforge.DefaultBlackTolerance),
		},
		Collectible: Collectible{
			SilhouetteIndex:  defaultSilhouetteIndex,
			ReducePixelation: defaultCollectibleSmoothing,
			PaletteSize:      defaultPaletteSize,
			PaletteMethod:    defaultPaletteMethod,
		},
		Watermark: Watermark{
			Path:   defaultWatermarkPath,
			Width:  assetforge.DefaultWatermarkWidth,
			Height: assetforge.DefaultWatermarkHeight,
		},
		Server: Server{
			Bind:        defaultServerBind,
			MaxUploadMB: defaultServerMaxUploadMB,
			Workers:     defaultServerWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
