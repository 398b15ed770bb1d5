package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/horizon/internal/models"
)

// Color constants for horizon TUI theme
const (
	// Base Colors
	ColorCardBackground = "#1B1530" // Dark purple
	ColorBorder         = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2"
	ColorSecondaryText = "#B1B8C7"
	ColorDisabledText  = "#6D7383"
	ColorHelpText      = "240"

	// Accent Colors (Purple theme)
	ColorAccentMain   = "#7C3AED" // Active column border, logo
	ColorAccentBright = "#A78BFA" // Selected card

	// State Colors
	ColorError   = "#EF4444"
	ColorSuccess = "#22C55E"
	ColorWarning = "#F59E0B"

	// Bucket Colors
	ColorMonthly = "#60A5FA"
	ColorWeekly  = "#F472B6"
	ColorDaily   = "#FBBF24"
)

// bucketColor is the header color of a column
func bucketColor(t models.Type) lipgloss.Color {
	switch t {
	case models.TypeMonthly:
		return lipgloss.Color(ColorMonthly)
	case models.TypeWeekly:
		return lipgloss.Color(ColorWeekly)
	case models.TypeDaily:
		return lipgloss.Color(ColorDaily)
	default:
		return lipgloss.Color(ColorSecondaryText)
	}
}

func statusColor(s models.Status) lipgloss.Color {
	if s == models.StatusCompleted {
		return lipgloss.Color(ColorSuccess)
	}
	return lipgloss.Color(ColorSecondaryText)
}
