package result

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizladder/internal/quiz"
	"github.com/abhisek/quizladder/internal/router"
	"github.com/abhisek/quizladder/internal/screen"
	"github.com/abhisek/quizladder/internal/session"
	"github.com/abhisek/quizladder/internal/ui/components"
	"github.com/abhisek/quizladder/internal/ui/layout"
	"github.com/abhisek/quizladder/internal/ui/theme"
)

// ResultScreen displays the outcome of a finished attempt.
type ResultScreen struct {
	outcome session.Outcome
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a new ResultScreen.
func New(outcome session.Outcome) *ResultScreen {
	return &ResultScreen{outcome: outcome}
}

func (s *ResultScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultScreen) Title() string {
	return "Result"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Back to sets"},
		{Key: "Esc", Description: "Back to sets"},
	}
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *ResultScreen) View(width, height int) string {
	out := s.outcome
	cw := layout.ContentWidth(width)
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text) + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")

	if out.Expired {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Warning), "⏱ Time's up!"))
		b.WriteString("\n")
	}

	b.WriteString(center(theme.OutcomeStyle(out.Result.Passed).Bold(true), out.Headline()))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text), out.Score()))
	b.WriteString("\n")

	bar := components.ProgressBar{
		Percent:     out.Result.Percentage / 100,
		ShowPercent: true,
		Width:       cw,
		Marker:      out.Threshold / 100,
		Fill:        theme.OutcomeStyle(out.Result.Passed).GetForeground(),
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text), out.Message()))

	if out.PointsAwarded > 0 {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
			fmt.Sprintf("+%d points", out.PointsAwarded)))
	} else if out.Result.Passed && !out.NewlyCompleted {
		b.WriteString(center(theme.Hint, "Already completed, no new points."))
	}
	b.WriteString("\n")

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("Time: %s   Total: %d points", quiz.FormatClock(out.Elapsed), out.Progress.TotalPoints)))

	if out.Result.Passed && out.NextSet != nil {
		next := out.NextSet.Title
		if next == "" {
			next = out.NextSet.ID
		}
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Secondary), "Up next: "+next))
	}

	return b.String()
}
