package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/cbmo4ers/coinpulse/internal/types"
)

// Style definitions.
var (
	// TitleStyle for the dashboard header.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for the key binding hints.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ConnectedStyle for the liveness indicator when the backend answers.
	ConnectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	// DisconnectedStyle for the liveness indicator when it does not.
	DisconnectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	// SectionStyle for widget captions above each table and banner.
	SectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

	// BannerStyle frames the scrolling ticker lines.
	BannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))

	// FallbackStyle marks widgets still showing demo data.
	FallbackStyle = lipgloss.NewStyle().Faint(true).Italic(true)
)

// badgeStyles maps each badge to its display color.
var badgeStyles = map[types.Badge]lipgloss.Style{
	types.BadgeStrongHigh: lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true),
	types.BadgeStrong:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	types.BadgeModerate:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	types.BadgeHighVol:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
	types.BadgeLowVol:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

// BadgeStyle returns the style for a badge, falling back to moderate.
func BadgeStyle(badge types.Badge) lipgloss.Style {
	if style, ok := badgeStyles[badge]; ok {
		return style
	}

	return badgeStyles[types.BadgeModerate]
}
