package config

import (
	"errors"
	"fmt"
	"math"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRecolor(); err != nil {
		return err
	}
	if err := c.validateGIF(); err != nil {
		return err
	}
	if err := c.validateCollectible(); err != nil {
		return err
	}
	if err := c.validateWatermark(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateRecolor() error {
	if err := ensureByte("recolor.tolerance", c.Recolor.Tolerance); err != nil {
		return err
	}
	if math.IsNaN(c.Recolor.Contrast) || c.Recolor.Contrast < 0 || c.Recolor.Contrast > 1 {
		return errors.New("recolor.contrast must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateGIF() error {
	if c.GIF.FrameDelayMS < 0 || c.GIF.FrameDelayMS > 655350 {
		return errors.New("gif.frame_delay_ms must be between 0 and 655350")
	}
	return ensureByte("gif.black_tolerance", c.GIF.BlackTolerance)
}

func (c *Config) validateCollectible() error {
	if c.Collectible.SilhouetteIndex < 0 || c.Collectible.SilhouetteIndex > MaxSilhouetteIndex {
		return fmt.Errorf("collectible.silhouette_index must be between 0 and %d", MaxSilhouetteIndex)
	}
	if c.Collectible.PaletteSize < 0 {
		return errors.New("collectible.palette_size must be >= 0")
	}
	switch c.Collectible.PaletteMethod {
	case "dominantcolor", "kmeans":
	default:
		return fmt.Errorf("collectible.palette_method: unsupported value %q", c.Collectible.PaletteMethod)
	}
	return nil
}

func (c *Config) validateWatermark() error {
	if c.Watermark.Width <= 0 {
		return errors.New("watermark.width must be positive")
	}
	if c.Watermark.Height <= 0 {
		return errors.New("watermark.height must be positive")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Bind == "" {
		return errors.New("server.bind must be set")
	}
	if c.Server.MaxUploadMB <= 0 {
		return errors.New("server.max_upload_mb must be positive")
	}
	if c.Server.Workers <= 0 {
		return errors.New("server.workers must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func ensureByte(key string, v int) error {
	if v < 0 || v > 255 {
		return fmt.Errorf("%s must be between 0 and 255", key)
	}
	return nil
}
