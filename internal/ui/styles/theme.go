// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the chat TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// =============================================================================
// COLOR PALETTE
// =============================================================================

var (
	colorPrimary   = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7D79F6"}
	colorSecondary = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00B8D9"}
	colorMuted     = lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#8A8A8A"}
	colorUser      = lipgloss.AdaptiveColor{Light: "#005F87", Dark: "#5FD7FF"}
	colorAssistant = lipgloss.AdaptiveColor{Light: "#1C1C1C", Dark: "#E4E4E4"}
	colorError     = lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}
	colorBorder    = lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#444444"}
)

// =============================================================================
// THEME
// =============================================================================

// Theme holds the styled components for the chat interface.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// Header
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style

	// Message bubbles
	UserLabel       lipgloss.Style
	UserBubble      lipgloss.Style
	AssistantLabel  lipgloss.Style
	AssistantBubble lipgloss.Style

	// Typing indicator
	Pending lipgloss.Style

	// Input area
	InputContainer lipgloss.Style
	InputDisabled  lipgloss.Style

	// Status bar
	StatusBar   lipgloss.Style
	StatusKey   lipgloss.Style
	StatusError lipgloss.Style
}

// MarkdownStyle returns the glamour standard style matching the detected
// terminal: "notty" when the terminal renders no color at all, otherwise
// "dark" or "light" to match the background.
func (t *Theme) MarkdownStyle() string {
	if t.ColorProfile == termenv.Ascii {
		return "notty"
	}
	if t.IsDark {
		return "dark"
	}
	return "light"
}

// NewTheme builds the default theme. lipgloss adapts colors to the
// terminal's background automatically.
func NewTheme() *Theme {
	return &Theme{
		IsDark:       termenv.HasDarkBackground(),
		ColorProfile: termenv.ColorProfile(),

		Header: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colorBorder).
			Padding(0, 1),
		HeaderTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary),

		UserLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorUser),
		UserBubble: lipgloss.NewStyle().
			Foreground(colorAssistant).
			PaddingLeft(2),
		AssistantLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSecondary),
		AssistantBubble: lipgloss.NewStyle().
			Foreground(colorAssistant).
			PaddingLeft(2),

		Pending: lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true).
			PaddingLeft(2),

		InputContainer: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),
		InputDisabled: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Foreground(colorMuted).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSecondary),
		StatusError: lipgloss.NewStyle().
			Foreground(colorError),
	}
}
