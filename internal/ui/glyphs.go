// ABOUTME: Large pixel glyphs for rendering the time in a terminal
// ABOUTME: Each registered font maps to its own pixel character
package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/twtime/twclock/internal/prefs"
)

const glyphRows = 5

// Digit bitmaps, '#' marks a lit pixel
var glyphs = map[rune][glyphRows]string{
	'0': {"###", "# #", "# #", "# #", "###"},
	'1': {" # ", "## ", " # ", " # ", "###"},
	'2': {"###", "  #", "###", "#  ", "###"},
	'3': {"###", "  #", "###", "  #", "###"},
	'4': {"# #", "# #", "###", "  #", "  #"},
	'5': {"###", "#  ", "###", "  #", "###"},
	'6': {"###", "#  ", "###", "# #", "###"},
	'7': {"###", "  #", "  #", "  #", "  #"},
	'8': {"###", "# #", "###", "# #", "###"},
	'9': {"###", "# #", "###", "  #", "###"},
	':': {" ", "#", " ", "#", " "},
}

// Pixel characters per font
var pixels = map[string]string{
	"Major Mono Display": "█",
	"Sixtyfour":          "▓",
	"Orbitron":           "▒",
	"Share Tech Mono":    "█",
	"VT323":              "#",
}

func pixelFor(fontID string) string {
	if p, ok := pixels[fontID]; ok {
		return p
	}
	return "█"
}

// pixelWidth maps a viewport size rule to terminal cells per pixel
func pixelWidth(size prefs.SizeRule) int {
	w := int(math.Round(size.Value / 7.5))
	if w < 1 {
		return 1
	}
	return w
}

// bigText renders text as glyph rows. Unknown runes are skipped.
// Lit pixels use lit; unlit cells inside a glyph use dim when it is set.
func bigText(text, pixel string, width int, lit, dim *lipgloss.Style) []string {
	rows := make([]string, glyphRows)

	first := true
	for _, r := range text {
		if r == '：' {
			r = ':'
		}
		g, ok := glyphs[r]
		if !ok {
			continue
		}

		for i := 0; i < glyphRows; i++ {
			var b strings.Builder
			if !first {
				b.WriteString(strings.Repeat(" ", width))
			}
			for _, c := range g[i] {
				cell := strings.Repeat(pixel, width)
				switch {
				case c == '#':
					b.WriteString(lit.Render(cell))
				case dim != nil:
					b.WriteString(dim.Render(strings.Repeat("░", width)))
				default:
					b.WriteString(strings.Repeat(" ", width))
				}
			}
			rows[i] += b.String()
		}
		first = false
	}

	return rows
}
