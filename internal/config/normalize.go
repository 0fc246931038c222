package config

import (
	"os"
	"strings"
)

// WatermarkEnv overrides watermark.path when set.
const WatermarkEnv = "ASSETFORGE_WATERMARK"

func (c *Config) normalize() error {
	if value, ok := os.LookupEnv(WatermarkEnv); ok && strings.TrimSpace(value) != "" {
		c.Watermark.Path = strings.TrimSpace(value)
	}
	path, err := ExpandPath(strings.TrimSpace(c.Watermark.Path))
	if err != nil {
		return err
	}
	c.Watermark.Path = path

	c.Collectible.PaletteMethod = strings.ToLower(strings.TrimSpace(c.Collectible.PaletteMethod))
	if c.Collectible.PaletteMethod == "" {
		c.Collectible.PaletteMethod = defaultPaletteMethod
	}
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}
