package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// ══════════════════════════════════════════════════════════════════════════════
// DESIGN TOKENS - Consistent spacing, colors, and visual language
// ══════════════════════════════════════════════════════════════════════════════

// Spacing constants for consistent layout (in characters)
const (
	SpaceXS = 1
	SpaceSM = 2
	SpaceMD = 3
	SpaceLG = 4
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Adaptive colors for light and dark terminals
// Light mode colors tuned for WCAG AA compliance (contrast ratio >= 4.5:1)
// ══════════════════════════════════════════════════════════════════════════════

var (
	// Base colors
	ColorBg          = lipgloss.AdaptiveColor{Light: "#FAFAF7", Dark: "#282A36"}
	ColorBgSubtle    = lipgloss.AdaptiveColor{Light: "#F5F3EE", Dark: "#363949"}
	ColorBgHighlight = lipgloss.AdaptiveColor{Light: "#E2DFD6", Dark: "#44475A"}
	ColorText        = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	ColorSubtext     = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"}
	ColorMuted       = lipgloss.AdaptiveColor{Light: "#6B6B6B", Dark: "#6272A4"}

	// Accent colors
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#D03027", Dark: "#FF6E67"}
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#6272A4"}
	ColorInfo      = lipgloss.AdaptiveColor{Light: "#1A6FB5", Dark: "#8BE9FD"}
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#1B7A4A", Dark: "#50FA7B"}
	ColorWarning   = lipgloss.AdaptiveColor{Light: "#C67A2E", Dark: "#FFB86C"}
	ColorDanger    = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}
)

// ══════════════════════════════════════════════════════════════════════════════
// PANEL STYLES
// ══════════════════════════════════════════════════════════════════════════════

var (
	// PanelStyle is the default style for unfocused panels
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBgHighlight)

	// FocusedPanelStyle is the style for focused panels
	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary)
)

// RenderDimensionCard renders one tradeoff dimension as a small bordered card.
func RenderDimensionCard(t Theme, label, hint string, color lipgloss.TerminalColor, width int) string {
	title := t.Renderer.NewStyle().Foreground(color).Bold(true).Render(label)
	body := t.Hint.Render(hint)
	return t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Width(width).
		Render(title + "\n" + body)
}
