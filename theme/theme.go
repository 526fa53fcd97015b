package theme

import "strings"

// Theme carries the journal palette handed to rendering as an explicit
// value. Rendering stays a pure function of (document, theme); nothing in
// this package is package-level mutable state.
type Theme struct {
	Background string
	White      string
	Dim        string
	Dimmer     string

	// Accent is the fallback color used wherever a category or callout
	// provides no color of its own.
	Accent string

	CategoryColors map[string]string
	CalloutColors  map[string]string

	// GradientStart and GradientEnd are the default thumbnail gradient pair.
	GradientStart string
	GradientEnd   string
}

// Palette anchors used by the default theme.
const (
	ColorOrange = "#FF6B00"
	ColorPink   = "#FF2D78"
	ColorBlue   = "#00D4FF"
	ColorPurple = "#9B59FF"
	ColorGold   = "#FFD700"
	ColorGreen  = "#00C48C"
)

// Default returns the stock VibeCircle Journal theme.
func Default() Theme {
	return Theme{
		Background: "#05050A",
		White:      "#FFFFFF",
		Dim:        "rgba(255,255,255,.48)",
		Dimmer:     "rgba(255,255,255,.22)",
		Accent:     ColorOrange,
		CategoryColors: map[string]string{
			"incaseyoumissedit":    ColorOrange,
			"city enegy":           ColorPink,
			"vibe theory":          ColorBlue,
			"trend lab":            ColorPurple,
			"digital anthropology": ColorGold,
		},
		CalloutColors: map[string]string{
			"info":    ColorBlue,
			"warning": ColorOrange,
			"tip":     ColorGreen,
			"stat":    ColorPink,
		},
		GradientStart: ColorOrange,
		GradientEnd:   ColorPink,
	}
}

// CategoryColor resolves a category title to its accent color, falling back
// to the theme accent for unknown categories.
func (t Theme) CategoryColor(category string) string {
	if color, ok := t.CategoryColors[strings.ToLower(strings.TrimSpace(category))]; ok && color != "" {
		return color
	}
	return t.Accent
}

// CalloutColor resolves a callout kind to its accent color. Unrecognized
// kinds fall back to the supplied category accent, then the theme accent.
func (t Theme) CalloutColor(kind, categoryColor string) string {
	if color, ok := t.CalloutColors[strings.ToLower(strings.TrimSpace(kind))]; ok && color != "" {
		return color
	}
	if categoryColor != "" {
		return categoryColor
	}
	return t.Accent
}
