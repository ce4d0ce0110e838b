package theme

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizladder/internal/quiz"
)

// Palette. Tuned for dark terminals.
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#0EA5E9") // Sky
	Accent    = lipgloss.Color("#F59E0B") // Amber, points
	Success   = lipgloss.Color("#10B981") // Emerald, passed / completed
	Error     = lipgloss.Color("#EF4444") // Red, failed
	Warning   = lipgloss.Color("#FB923C") // Orange, low time / notices
	Text      = lipgloss.Color("#E5E7EB")
	TextDim   = lipgloss.Color("#9CA3AF")
	BgCard    = lipgloss.Color("#1F2937")
	Border    = lipgloss.Color("#374151")
)

// Text styles.
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error)
)

// Card frames dialogs such as the leave-set confirmation.
var Card = lipgloss.NewStyle().
	Background(BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Border).
	Padding(1, 2)

// Row styles for menus and option lists.
var (
	Selected   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = lipgloss.NewStyle().Foreground(Text)
	Chosen     = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	Locked     = lipgloss.NewStyle().Foreground(TextDim)
)

// Buttons.
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)

// StateStyle colors a set row by its unlock state.
func StateStyle(s quiz.UnlockState) lipgloss.Style {
	switch s {
	case quiz.Completed:
		return lipgloss.NewStyle().Foreground(Success)
	case quiz.Unlocked:
		return lipgloss.NewStyle().Foreground(Secondary)
	default:
		return Locked
	}
}

// OutcomeStyle colors a score by whether it passed.
func OutcomeStyle(passed bool) lipgloss.Style {
	if passed {
		return lipgloss.NewStyle().Foreground(Success)
	}
	return lipgloss.NewStyle().Foreground(Error)
}
