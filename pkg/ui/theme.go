package ui

import (
	"os"

	"github.com/vanderheijden86/archguide/pkg/catalog"
	"github.com/vanderheijden86/archguide/pkg/content"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Danger    lipgloss.AdaptiveColor
	Success   lipgloss.AdaptiveColor

	// Styles
	Header     lipgloss.Style
	Tab        lipgloss.Style
	ActiveTab  lipgloss.Style
	Kicker     lipgloss.Style
	Title      lipgloss.Style
	Body       lipgloss.Style
	Hint       lipgloss.Style
	Caption    lipgloss.Style
	Panel      lipgloss.Style
	Callout    lipgloss.Style
	Question   lipgloss.Style
	Cursor     lipgloss.Style
	StatusOK   lipgloss.Style
	StatusErr  lipgloss.Style
	MutedText  lipgloss.Style
	FooterText lipgloss.Style

	tokens map[catalog.Color]lipgloss.Style
}

func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer:  r,
		Primary:   ColorPrimary,
		Secondary: ColorSecondary,
		Subtext:   ColorSubtext,
		Muted:     ColorMuted,
		Border:    ColorBgHighlight,
		Highlight: ColorBgHighlight,
		Danger:    ColorDanger,
		Success:   ColorSuccess,
	}

	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Padding(0, 1)
	t.Tab = r.NewStyle().Foreground(t.Subtext).Padding(0, 1)
	t.ActiveTab = r.NewStyle().
		Foreground(t.Primary).
		Bold(true).
		Underline(true).
		Padding(0, 1)

	t.Kicker = r.NewStyle().Foreground(ColorDanger).Bold(true)
	t.Title = r.NewStyle().Foreground(ColorText).Bold(true)
	t.Body = r.NewStyle().Foreground(ColorText)
	t.Hint = r.NewStyle().Foreground(t.Muted).Italic(true)
	t.Caption = r.NewStyle().Foreground(t.Subtext).Italic(true)
	t.Panel = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1)
	t.Callout = r.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorWarning).
		PaddingLeft(1).
		Foreground(ColorText)
	t.Question = r.NewStyle().Foreground(ColorText).Bold(true)
	t.Cursor = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.StatusOK = r.NewStyle().Foreground(t.Success)
	t.StatusErr = r.NewStyle().Foreground(t.Danger).Bold(true)
	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.FooterText = r.NewStyle().Foreground(t.Subtext)

	t.tokens = make(map[catalog.Color]lipgloss.Style)
	for _, c := range content.Colors() {
		t.tokens[c] = r.NewStyle().Foreground(t.TokenColor(c))
	}
	return t
}

// TokenColor maps a semantic color token to a terminal color. Text and the
// grey tokens adapt to the background; the hues keep their guide hex.
func (t Theme) TokenColor(c catalog.Color) lipgloss.TerminalColor {
	switch c {
	case catalog.ColorText, "":
		return ColorText
	case catalog.ColorMuted:
		return ColorMuted
	case catalog.ColorBorder:
		return ColorSecondary
	}
	return ThemeFg(content.Hex(c))
}

// TokenStyle returns the foreground style of a color token.
func (t Theme) TokenStyle(c catalog.Color) lipgloss.Style {
	if s, ok := t.tokens[c]; ok {
		return s
	}
	return t.Renderer.NewStyle().Foreground(t.TokenColor(c))
}

// TestTheme returns a theme suitable for use in tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
