package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Default widget colors.
const (
	DefaultLeftCloudColor  = "#B0B0B0"
	DefaultRightCloudColor = "#DFDFDF"
	DefaultDropColor       = "#80B9C5"
)

// ColorsConfig holds the widget colors as hex strings (#RRGGBB or #AARRGGBB).
type ColorsConfig struct {
	LeftCloud  string `yaml:"left_cloud"`
	RightCloud string `yaml:"right_cloud"`
	Drop       string `yaml:"drop"`
}

// Palette is a parsed ColorsConfig.
type Palette struct {
	LeftCloud  color.RGBA
	RightCloud color.RGBA
	Drop       color.RGBA
}

// DefaultPalette returns the stock colors.
func DefaultPalette() Palette {
	p, _ := ColorsConfig{
		LeftCloud:  DefaultLeftCloudColor,
		RightCloud: DefaultRightCloudColor,
		Drop:       DefaultDropColor,
	}.Parse()
	return p
}

// Parse converts the hex strings into colors. Empty entries use the defaults.
func (c ColorsConfig) Parse() (Palette, error) {
	var p Palette
	var err error
	if p.LeftCloud, err = ParseColor(orDefault(c.LeftCloud, DefaultLeftCloudColor)); err != nil {
		return p, fmt.Errorf("left_cloud: %w", err)
	}
	if p.RightCloud, err = ParseColor(orDefault(c.RightCloud, DefaultRightCloudColor)); err != nil {
		return p, fmt.Errorf("right_cloud: %w", err)
	}
	if p.Drop, err = ParseColor(orDefault(c.Drop, DefaultDropColor)); err != nil {
		return p, fmt.Errorf("drop: %w", err)
	}
	return p, nil
}

// ParseColor parses #RRGGBB or #AARRGGBB.
func ParseColor(s string) (color.RGBA, error) {
	alpha := uint8(0xff)
	if len(s) == 9 && strings.HasPrefix(s, "#") {
		a, err := strconv.ParseUint(s[1:3], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid alpha in %q: %w", s, err)
		}
		alpha = uint8(a)
		s = "#" + s[3:]
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: alpha}, nil
}

// FormatColor renders a color back to hex, dropping an opaque alpha.
func FormatColor(c color.RGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.A, c.R, c.G, c.B)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
