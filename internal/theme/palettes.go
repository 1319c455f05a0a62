// Package theme holds the named color palettes users pick from in settings.
package theme

import (
	"fmt"
	"strings"
)

// Mode selects the light or dark half of a palette
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// ParseMode accepts "light" or "dark" in any case
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	}
	return "", fmt.Errorf("unknown theme %q (want light or dark)", s)
}

// Palette is a named set of hex colors
type Palette struct {
	Name      string
	BG        string
	FG        string
	DarkBG    string
	DarkFG    string
	Accent    string
	SecAccent string
}

// Colors is a palette resolved for one mode
type Colors struct {
	Background string
	Foreground string
	Accent     string
	SecAccent  string
}

// DefaultPalette is used when nothing else is configured
const DefaultPalette = "Mandarina"

var palettes = []Palette{
	{Name: "Mandarina", BG: "#ffffff", FG: "#394d46", DarkBG: "#2a292d", DarkFG: "#8bb39a", Accent: "#ff8f1f", SecAccent: "#1fc271"},
	{Name: "Olive Yards", BG: "#DCD7C9", FG: "#252220", DarkBG: "#252220", DarkFG: "#DCD7C9", Accent: "#5F6F52", SecAccent: "#A27B5C"},
	{Name: "Peach Dreams", BG: "#fff0e1", FG: "#8c6d88", DarkBG: "#2b262c", DarkFG: "#d3adce", Accent: "#f599a6", SecAccent: "#9ab0a7"},
	{Name: "Coffee Espresso", BG: "#F8F4E1", FG: "#543310", DarkBG: "#1e1b1a", DarkFG: "#F8F4E1", Accent: "#74512D", SecAccent: "#AF8F6F"},
	{Name: "Cherry Blossom", BG: "#ebe8de", FG: "#6d303b", DarkBG: "#2a2627", DarkFG: "#92b6a4", Accent: "#ff405a", SecAccent: "#1fb551"},
	{Name: "Blueberry Sparks", BG: "#eeecf9", FG: "#4a4561", DarkBG: "#2d2b36", DarkFG: "#bcb5d8", Accent: "#826fd7", SecAccent: "#4ea771"},
	{Name: "Blackberry Fusion", BG: "#f9feff", FG: "#2D336B", DarkBG: "#23242e", DarkFG: "#f9feff", Accent: "#2a48d0", SecAccent: "#7886C7"},
}

// Names lists the palettes in display order
func Names() []string {
	names := make([]string, len(palettes))
	for i, p := range palettes {
		names[i] = p.Name
	}
	return names
}

// All returns a copy of every palette
func All() []Palette {
	out := make([]Palette, len(palettes))
	copy(out, palettes)
	return out
}

// Lookup finds a palette by name, ignoring case
func Lookup(name string) (Palette, bool) {
	for _, p := range palettes {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, true
		}
	}
	return Palette{}, false
}

// MustLookup returns the named palette or the default one
func MustLookup(name string) Palette {
	if p, ok := Lookup(name); ok {
		return p
	}
	p, _ := Lookup(DefaultPalette)
	return p
}

// Colors resolves the palette for mode
func (p Palette) Colors(mode Mode) Colors {
	if mode == Dark {
		return Colors{Background: p.DarkBG, Foreground: p.DarkFG, Accent: p.Accent, SecAccent: p.SecAccent}
	}
	return Colors{Background: p.BG, Foreground: p.FG, Accent: p.Accent, SecAccent: p.SecAccent}
}
