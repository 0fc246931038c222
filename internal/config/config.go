package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/setanarut/assetforge"
	"github.com/setanarut/assetforge/utils"
)

//go:embed sample_config.toml
var sampleConfig string

// Recolor holds the defaults applied to recolor requests.
type Recolor struct {
	Tolerance        int     `toml:"tolerance"`
	Contrast         float64 `toml:"contrast"`
	ReducePixelation bool    `toml:"reduce_pixelation"`
}

// GIF holds animation encoding and keying settings.
type GIF struct {
	FrameDelayMS   int `toml:"frame_delay_ms"`
	BlackTolerance int `toml:"black_tolerance"`
}

// Collectible holds collectible derivation settings.
type Collectible struct {
	SilhouetteIndex  int    `toml:"silhouette_index"`
	ReducePixelation bool   `toml:"reduce_pixelation"`
	PaletteSize      int    `toml:"palette_size"`
	PaletteMethod    string `toml:"palette_method"`
}

// Watermark locates and sizes the watermark asset.
type Watermark struct {
	Path   string `toml:"path"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// Server contains HTTP server settings.
type Server struct {
	Bind        string `toml:"bind"`
	MaxUploadMB int    `toml:"max_upload_mb"`
	Workers     int    `toml:"workers"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for assetforge.
type Config struct {
	Recolor     Recolor     `toml:"recolor"`
	GIF         GIF         `toml:"gif"`
	Collectible Collectible `toml:"collectible"`
	Watermark   Watermark   `toml:"watermark"`
	Server      Server      `toml:"server"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/assetforge/config.toml")
}

// Load locates, parses, and validates a configuration file. A missing file
// is not an error: defaults are returned and exists is false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", false, err
		}
		path = defaultPath
	}
	expanded, err := ExpandPath(path)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %q is a directory", expanded)
	}
	return expanded, true, nil
}

// ExpandPath resolves a leading ~ and returns an absolute, cleaned path.
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// RecolorOptions returns the configured recolor defaults.
func (c *Config) RecolorOptions() assetforge.RecolorOptions {
	return assetforge.RecolorOptions{
		Tolerance:        uint8(c.Recolor.Tolerance),
		Contrast:         c.Recolor.Contrast,
		ReducePixelation: c.Recolor.ReducePixelation,
	}
}

// FrameDelay returns the configured re-encoding delay.
func (c *Config) FrameDelay() time.Duration {
	return time.Duration(c.GIF.FrameDelayMS) * time.Millisecond
}

// Deriver returns a collectible deriver configured from c.
func (c *Config) Deriver() *assetforge.Deriver {
	d := assetforge.NewDeriver()
	d.BlackTolerance = uint8(c.GIF.BlackTolerance)
	d.Delay = c.FrameDelay()
	d.ReducePixelation = c.Collectible.ReducePixelation
	d.PaletteSize = c.Collectible.PaletteSize
	d.PaletteMethod = utils.ParsePaletteMethod(c.Collectible.PaletteMethod)
	return d
}

// Watermarker loads the configured watermark asset.
func (c *Config) Watermarker() (*assetforge.Watermarker, error) {
	data, err := os.ReadFile(c.Watermark.Path)
	if err != nil {
		return nil, &assetforge.Error{Op: "load watermark", Kind: assetforge.ErrAssetLoad, Err: err}
	}
	w, err := assetforge.NewWatermarker(data)
	if err != nil {
		return nil, err
	}
	w.Width = c.Watermark.Width
	w.Height = c.Watermark.Height
	w.Delay = c.FrameDelay()
	w.BlackTolerance = uint8(c.GIF.BlackTolerance)
	return w, nil
}
