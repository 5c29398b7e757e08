package feed

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette (Ayu-ish, adaptive).
var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#0053a6", Dark: "#59c2ff"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#2e7d32", Dark: "#aad94c"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#b26a00", Dark: "#ffb454"}
	colorError   = lipgloss.AdaptiveColor{Light: "#c62828", Dark: "#f07178"}
	colorDim     = lipgloss.AdaptiveColor{Light: "#8a9199", Dark: "#565b66"}
)

// Styles for the feed TUI.
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Padding(0, 1)

	runStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	gaugeFullStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	gaugeEmptyStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	streamPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)

	timestampStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	actorStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)

	pausedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWarning)

	kindReleaseStyle  = lipgloss.NewStyle().Foreground(colorPrimary)
	kindReturnStyle   = lipgloss.NewStyle().Foreground(colorSuccess)
	kindRaidWinStyle  = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	kindRaidLossStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	kindRecoveryStyle = lipgloss.NewStyle().Foreground(colorWarning)
	kindShutdownStyle = lipgloss.NewStyle().Foreground(colorDim)
)
