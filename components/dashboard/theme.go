package dashboard

import "strings"

// PaletteTokens holds the CSS tokens for one card color.
type PaletteTokens struct {
	Background string
	Border     string
	Icon       string
}

var cardPalettes = map[string]PaletteTokens{
	"blue":   {Background: "#e8f1fb", Border: "#b3d2f2", Icon: "#1c64b0"},
	"green":  {Background: "#e9f7ee", Border: "#b8e3c6", Icon: "#1f8a4c"},
	"amber":  {Background: "#fdf4e3", Border: "#f4dba8", Icon: "#b07a1c"},
	"purple": {Background: "#f2ecfb", Border: "#d6c5f0", Icon: "#6b3fb0"},
	"red":    {Background: "#fceceb", Border: "#f1bcb8", Icon: "#b0281c"},
	"gray":   {Background: "#f2f4f6", Border: "#d5dade", Icon: "#51606c"},
}

const defaultPalette = "gray"

// Palette returns the tokens for a color name, falling back to the neutral
// palette for unknown names.
func Palette(color string) PaletteTokens {
	if tokens, ok := cardPalettes[strings.ToLower(strings.TrimSpace(color))]; ok {
		return tokens
	}
	return cardPalettes[defaultPalette]
}

// PaletteNames lists the supported card colors.
func PaletteNames() []string {
	names := make([]string, 0, len(cardPalettes))
	for name := range cardPalettes {
		names = append(names, name)
	}
	return names
}

// CSSVariables normalizes the palette into CSS custom properties.
func (p PaletteTokens) CSSVariables() map[string]string {
	return map[string]string{
		"--card-bg":     p.Background,
		"--card-border": p.Border,
		"--card-icon":   p.Icon,
	}
}

// CSSVariablesInline renders the palette as an inline style string.
func (p PaletteTokens) CSSVariablesInline() string {
	var builder strings.Builder
	for _, pair := range []struct{ name, value string }{
		{"--card-bg", p.Background},
		{"--card-border", p.Border},
		{"--card-icon", p.Icon},
	} {
		if pair.value == "" {
			continue
		}
		builder.WriteString(pair.name)
		builder.WriteString(": ")
		builder.WriteString(pair.value)
		builder.WriteString("; ")
	}
	return strings.TrimSpace(builder.String())
}
