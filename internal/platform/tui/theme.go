package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains all configurable visual styles for the replay viewer.
type Theme struct {
	// Course glyphs
	Road     lipgloss.Style
	Lights   lipgloss.Style
	Junction lipgloss.Style
	Finish   lipgloss.Style
	Edge     lipgloss.Style
	Conflict lipgloss.Style // Edge crossed both ways
	Empty    lipgloss.Style
	Car      lipgloss.Style

	// HUD styles
	HUDTitle     lipgloss.Style
	HUDValue     lipgloss.Style
	HUDSeparator lipgloss.Style
	HUDControls  lipgloss.Style

	// Result styles
	Solved   lipgloss.Style
	Unsolved lipgloss.Style

	// Menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Road:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Lights:   lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),  // Lime green
		Junction: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true), // Bright yellow
		Finish:   lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true), // Hot pink
		Edge:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),            // Dim gray
		Conflict: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),            // Orange
		Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
		Car:      lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true), // Bright cyan

		HUDTitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		HUDValue:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		HUDSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		HUDControls:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		Solved:   lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		Unsolved: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// MonochromeTheme returns a grayscale theme.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.Lights = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.Junction = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true)
	theme.Finish = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Underline(true)
	theme.Conflict = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	theme.Car = lipgloss.NewStyle().Reverse(true)
	theme.Solved = lipgloss.NewStyle().Bold(true)
	theme.Unsolved = lipgloss.NewStyle().Underline(true)
	return theme
}

// ThemeByName returns a named theme, falling back to the default.
func ThemeByName(name string) Theme {
	switch name {
	case "mono", "monochrome":
		return MonochromeTheme()
	default:
		return DefaultTheme()
	}
}
