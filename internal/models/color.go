package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an opaque RGB color. Alpha is always 1.0 and is never persisted.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// ParseColor reads a 6-hex-digit RGB string. The leading "#" is optional and
// case is ignored on read; Hex normalizes on write.
func ParseColor(hex string) (Color, error) {
	cleaned := strings.ToUpper(strings.TrimSpace(hex))
	cleaned = strings.TrimPrefix(cleaned, "#")
	if len(cleaned) != 6 {
		return Color{}, fmt.Errorf("invalid color %q: want 6 hex digits", hex)
	}
	rgb, err := strconv.ParseUint(cleaned, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return Color{
		R: uint8(rgb >> 16),
		G: uint8(rgb >> 8),
		B: uint8(rgb),
	}, nil
}

// Hex renders the color in the persisted form: "#RRGGBB", uppercase.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Palette is the selection offered by the tracker creation form.
var Palette = func() []Color {
	hexes := []string{
		"#FD4C49", "#FF881E", "#007BFA", "#6E44FE", "#33CF69", "#E66DD4",
		"#F9D4D4", "#34A7FE", "#46E69D", "#35347C", "#FF674D", "#FF99CC",
		"#F6C48B", "#7994F5", "#832CF1", "#AD56DA", "#8D72E3", "#2FD058",
	}
	palette := make([]Color, 0, len(hexes))
	for _, h := range hexes {
		c, err := ParseColor(h)
		if err != nil {
			panic("models: bad palette entry " + h)
		}
		palette = append(palette, c)
	}
	return palette
}()
