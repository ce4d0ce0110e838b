package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizladder/internal/quiz"
	"github.com/abhisek/quizladder/internal/router"
	"github.com/abhisek/quizladder/internal/screen"
	"github.com/abhisek/quizladder/internal/store"
	"github.com/abhisek/quizladder/internal/ui/layout"
	"github.com/abhisek/quizladder/internal/ui/theme"
)

// historyLimit caps how many attempts are listed.
const historyLimit = 50

type historyLoadedMsg struct {
	Attempts []store.AttemptEventRecord
	Stats    store.AttemptStats
	Err      error
}

// HistoryScreen displays the user's finished attempts, newest first.
type HistoryScreen struct {
	eventRepo store.EventRepo
	userKey   string
	attempts  []store.AttemptEventRecord
	stats     store.AttemptStats
	selected  int
	loaded    bool
	errMsg    string
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

// New creates a new HistoryScreen for userKey.
func New(eventRepo store.EventRepo, userKey string) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		userKey:   userKey,
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo, userKey := s.eventRepo, s.userKey
	return func() tea.Msg {
		ctx := context.Background()

		attempts, err := repo.QueryAttemptEvents(ctx, store.QueryOpts{
			Limit:   historyLimit,
			UserKey: userKey,
			Actions: []string{store.ActionFinish, store.ActionExpire},
		})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		stats, err := repo.AttemptStats(ctx, userKey)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Attempts: attempts, Stats: stats}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
			s.stats = msg.Stats
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
			return s, nil
		}
	}
	return s, nil
}

// notice renders a single centered status line.
func notice(width int, style lipgloss.Style, text string) string {
	return "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(text))
}

func (s *HistoryScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return notice(width, theme.ErrorText, "Could not load history: "+s.errMsg)
	case !s.loaded:
		return notice(width, theme.Hint, "Loading history...")
	case len(s.attempts) == 0:
		return notice(width, theme.Hint, "No attempts yet. Pick a topic and start a set!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Subtitle.Render(
		fmt.Sprintf("%d attempts · %d passed · %d timed out",
			s.stats.Attempts, s.stats.Passed, s.stats.Expired))))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Hint.Render(formatRow("", "WHEN", "TOPIC", "SET", "SCORE", "TIME", ""))))
	b.WriteString("\n")

	// Keep the selected row inside the visible window.
	rows := max(height-5, 1)
	start := max(s.selected-rows+1, 0)
	end := min(start+rows, len(s.attempts))

	for i := start; i < end; i++ {
		a := s.attempts[i]
		style, cursor := theme.OutcomeStyle(a.Passed), " "
		if i == s.selected {
			style, cursor = theme.Selected, "›"
		}
		line := formatRow(cursor,
			a.Timestamp.Local().Format("Jan 02 15:04"),
			a.Topic,
			a.SetID,
			fmt.Sprintf("%d/%d %3.0f%%", a.CorrectCount, a.Total, a.Percentage),
			quiz.FormatClock(time.Duration(a.DurationMs)*time.Millisecond),
			outcomeMark(a),
		)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func formatRow(cursor, when, topic, set, score, clock, mark string) string {
	return fmt.Sprintf("%1s %-12s  %-10s  %-16s  %-9s  %5s  %-2s",
		cursor, when, topic, set, score, clock, mark)
}

func outcomeMark(a store.AttemptEventRecord) string {
	switch {
	case a.Action == store.ActionExpire:
		return "⏱"
	case a.Passed:
		return "✓"
	default:
		return "✗"
	}
}
