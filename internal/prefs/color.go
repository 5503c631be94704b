// ABOUTME: Display color validation and derived glow effect
// ABOUTME: Glow is a three layer shadow derived from the text color
package prefs

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultColor is the accent color of the clock digits
const DefaultColor = "#FF8C00"

// Palette is the color cycle offered by hosts without a color picker
var Palette = []string{
	DefaultColor,
	"#00FF9C",
	"#00BFFF",
	"#FF3B3B",
	"#B388FF",
	"#FFFFFF",
}

var glowBlurs = []int{5, 15, 30}
var defaultGlowAlpha = []float64{0.8, 0.6, 0.4}

// GlowLayer is one shadow layer of the glow
type GlowLayer struct {
	Blur  int // px
	Color string
}

// Glow is a compound text shadow
type Glow []GlowLayer

// CSS renders the glow as a text-shadow value
func (g Glow) CSS() string {
	parts := make([]string, len(g))
	for i, l := range g {
		parts[i] = fmt.Sprintf("0 0 %dpx %s", l.Blur, l.Color)
	}
	return strings.Join(parts, ", ")
}

// GlowFor derives a glow that repeats color on every layer
func GlowFor(color string) Glow {
	g := make(Glow, len(glowBlurs))
	for i, blur := range glowBlurs {
		g[i] = GlowLayer{Blur: blur, Color: color}
	}
	return g
}

// DefaultGlow is the glow of the default color with fading alpha per layer
func DefaultGlow() Glow {
	c, _ := colorful.Hex(DefaultColor)
	r, gr, b := c.RGB255()

	g := make(Glow, len(glowBlurs))
	for i, blur := range glowBlurs {
		g[i] = GlowLayer{
			Blur:  blur,
			Color: fmt.Sprintf("rgba(%d, %d, %d, %.1f)", r, gr, b, defaultGlowAlpha[i]),
		}
	}
	return g
}

// ValidColor reports whether s is a hex color the display can render
func ValidColor(s string) bool {
	_, err := colorful.Hex(s)
	return err == nil
}

// NextColor returns the palette color after color, wrapping around
func NextColor(color string) string {
	for i, c := range Palette {
		if strings.EqualFold(c, color) {
			return Palette[(i+1)%len(Palette)]
		}
	}
	return Palette[0]
}
