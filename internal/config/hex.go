package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Hex is a color written as "#rrggbb" or "#rrggbbaa".
type Hex color.NRGBA

// ParseHex parses a hex color. A missing alpha means opaque.
func ParseHex(s string) (Hex, error) {
	digits := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(digits) == 6 {
		digits += "ff"
	}
	if len(digits) != 8 {
		return Hex{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return Hex{}, fmt.Errorf("color %q: %w", s, err)
	}
	return Hex{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// NRGBA returns the color value.
func (h Hex) NRGBA() color.NRGBA { return color.NRGBA(h) }

func (h Hex) String() string {
	if h.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", h.R, h.G, h.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", h.R, h.G, h.B, h.A)
}

func (h *Hex) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseHex(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

func (h Hex) MarshalYAML() (any, error) { return h.String(), nil }
