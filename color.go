package flightpath

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/solarlune/flightpath/math32"
	"gopkg.in/yaml.v3"
)

// A Color represents a color, containing R, G, B, and A components, each expected to range from 0 to 1.
// In tuning files a Color is written as a hex string ("#87CEEB", "#ff9cf7cc").
type Color struct {
	R, G, B, A float32
}

// NewColor returns a new Color, with the provided R, G, B, and A components expected to range from 0 to 1.
func NewColor(r, g, b, a float32) Color {
	return Color{r, g, b, a}
}

// NewColorFromHexString parses a color from a "#RRGGBB" or "#RRGGBBAA" string; the leading # is optional.
func NewColorFromHexString(hex string) (Color, error) {

	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")

	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("color %q: expected 6 or 8 hex digits", hex)
	}

	if len(hex) == 6 {
		hex += "ff"
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", hex, err)
	}

	return Color{
		R: float32((v>>24)&0xff) / 255,
		G: float32((v>>16)&0xff) / 255,
		B: float32((v>>8)&0xff) / 255,
		A: float32(v&0xff) / 255,
	}, nil

}

// Lerp returns a copy of the Color blended toward other by the percentage given, which is clamped to 0 to 1.
func (c Color) Lerp(other Color, percentage float32) Color {
	p := math32.Clamp01(percentage)
	return Color{
		R: math32.Lerp(c.R, other.R, p),
		G: math32.Lerp(c.G, other.G, p),
		B: math32.Lerp(c.B, other.B, p),
		A: math32.Lerp(c.A, other.A, p),
	}
}

// Equals returns true if every channel of the two Colors is within 1/512 of the other.
func (c Color) Equals(other Color) bool {
	const eps = 1.0 / 512
	return math32.Abs(c.R-other.R) <= eps &&
		math32.Abs(c.G-other.G) <= eps &&
		math32.Abs(c.B-other.B) <= eps &&
		math32.Abs(c.A-other.A) <= eps
}

// ToNRGBA64 converts the Color to an image/color value that ebiten's Fill and drawing functions accept.
func (c Color) ToNRGBA64() color.NRGBA64 {
	return color.NRGBA64{
		R: uint16(math32.Clamp01(c.R) * 0xffff),
		G: uint16(math32.Clamp01(c.G) * 0xffff),
		B: uint16(math32.Clamp01(c.B) * 0xffff),
		A: uint16(math32.Clamp01(c.A) * 0xffff),
	}
}

// Hex returns the Color as a "#rrggbbaa" string.
func (c Color) Hex() string {
	ch := func(v float32) uint8 { return uint8(math32.Round(math32.Clamp01(v) * 255)) }
	return fmt.Sprintf("#%02x%02x%02x%02x", ch(c.R), ch(c.G), ch(c.B), ch(c.A))
}

func (c Color) String() string {
	return c.Hex()
}

// UnmarshalYAML reads a Color from a hex string scalar.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := NewColorFromHexString(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML writes the Color as a hex string.
func (c Color) MarshalYAML() (any, error) {
	return c.Hex(), nil
}
