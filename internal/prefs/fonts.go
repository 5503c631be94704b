// ABOUTME: Registry of clock fonts and their size rules
// ABOUTME: Maps a font identifier to its CSS family and display size
package prefs

import "strconv"

// SizeRule is a viewport-relative font size
type SizeRule struct {
	Value float64
	Unit  string
}

// CSS renders the rule as a CSS length, e.g. "15vw"
func (s SizeRule) CSS() string {
	return strconv.FormatFloat(s.Value, 'f', -1, 64) + s.Unit
}

var (
	// SizeRegular is the size of every font except the wide ones
	SizeRegular = SizeRule{Value: 15, Unit: "vw"}
	// SizeWide is the reduced size for fonts with wide glyphs
	SizeWide = SizeRule{Value: 10, Unit: "vw"}
)

// Font is one selectable clock typeface
type Font struct {
	ID     string
	Family string
	Size   SizeRule
}

// Fonts lists the registered fonts in picker order; the first is the default
var Fonts = []Font{
	{ID: "Major Mono Display", Family: "'Major Mono Display', monospace", Size: SizeRegular},
	{ID: "Sixtyfour", Family: "'Sixtyfour', monospace", Size: SizeWide},
	{ID: "Orbitron", Family: "'Orbitron', sans-serif", Size: SizeRegular},
	{ID: "Share Tech Mono", Family: "'Share Tech Mono', monospace", Size: SizeRegular},
	{ID: "VT323", Family: "'VT323', monospace", Size: SizeRegular},
}

// DefaultFont returns the font used when none is chosen
func DefaultFont() Font {
	return Fonts[0]
}

// LookupFont resolves a font by identifier or CSS family string.
// An unregistered name becomes a font of that family at the regular size.
func LookupFont(name string) (Font, bool) {
	for _, f := range Fonts {
		if f.ID == name || f.Family == name {
			return f, true
		}
	}
	return Font{ID: name, Family: name, Size: SizeRegular}, false
}

// NextFont returns the registered font after name, wrapping around
func NextFont(name string) Font {
	for i, f := range Fonts {
		if f.ID == name || f.Family == name {
			return Fonts[(i+1)%len(Fonts)]
		}
	}
	return Fonts[0]
}
