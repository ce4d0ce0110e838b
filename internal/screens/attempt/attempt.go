package attempt

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
	"github.com/abhisek/quizladder/internal/screens/result"
	"github.com/abhisek/quizladder/internal/session"
	"github.com/abhisek/quizladder/internal/ui/components"
	"github.com/abhisek/quizladder/internal/ui/layout"
	"github.com/abhisek/quizladder/internal/ui/theme"
)

// lowTime is when the countdown turns to the warning color.
const lowTime = time.Minute

// tickMsg is sent every second to update the countdown.
type tickMsg time.Time

// AttemptScreen runs one attempt: question display, answer selection,
// navigation and the countdown.
type AttemptScreen struct {
	sess        *session.Session
	attempt     quiz.Attempt
	choice      components.MultiChoice
	startWrite  session.Write
	now         func() time.Time
	confirmQuit bool
	done        bool
}

var _ screen.Screen = (*AttemptScreen)(nil)
var _ screen.KeyHintProvider = (*AttemptScreen)(nil)
var _ screen.EscapeHandler = (*AttemptScreen)(nil)

// New creates a AttemptScreen for an attempt already started on sess. write
// persists the start event and runs when the screen initializes.
func New(sess *session.Session, attempt quiz.Attempt, write session.Write) *AttemptScreen {
	s := &AttemptScreen{
		sess:       sess,
		attempt:    attempt,
		startWrite: write,
		now:        time.Now,
	}
	s.syncChoice()
	return s
}

func (s *AttemptScreen) Init() tea.Cmd {
	return tea.Batch(persist(s.startWrite), tickCmd())
}

func (s *AttemptScreen) Title() string {
	if s.attempt.Set.Title != "" {
		return s.attempt.Set.Title
	}
	return s.attempt.Set.ID
}

func (s *AttemptScreen) HandlesEscape() bool {
	return true
}

func (s *AttemptScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave set"},
			{Key: "N", Description: "Keep going"},
		}
	}
	next := "Next"
	if s.attempt.IsLast() {
		next = "Finish"
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: "←/p", Description: "Previous"},
		{Key: "→/n", Description: next},
		{Key: "Esc", Description: "Leave"},
	}
}

func (s *AttemptScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.done {
		return s, nil
	}

	switch msg := msg.(type) {
	case tickMsg:
		out, write, expired := s.sess.Tick(time.Time(msg))
		if expired {
			return s, s.finished(out, write)
		}
		return s, tickCmd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *AttemptScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.done = true
			s.sess.Abandon()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "n", "right", "l":
		if s.attempt.IsLast() {
			return s, s.finish()
		}
		return s, s.navigate(quiz.Next)
	case "p", "left", "h":
		return s, s.navigate(quiz.Previous)
	}

	var picked int
	s.choice, picked = s.choice.Update(msg)
	if picked >= 0 {
		attempt, err := s.sess.Select(picked)
		if err != nil {
			return s, nil
		}
		s.attempt = attempt
		s.syncChoice()
	}
	return s, nil
}

func (s *AttemptScreen) navigate(dir quiz.Direction) tea.Cmd {
	attempt, err := s.sess.Navigate(dir)
	if err != nil {
		return nil
	}
	s.attempt = attempt
	s.syncChoice()
	return nil
}

func (s *AttemptScreen) finish() tea.Cmd {
	out, write, err := s.sess.Finish(s.now())
	if err != nil {
		return nil
	}
	return s.finished(out, write)
}

func (s *AttemptScreen) finished(out session.Outcome, write session.Write) tea.Cmd {
	s.done = true
	next := result.New(out)
	return tea.Batch(
		persist(write),
		func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} },
	)
}

// syncChoice rebuilds the option selector for the current question.
func (s *AttemptScreen) syncChoice() {
	q := s.attempt.Current()
	chosen := -1
	if opt, ok := s.attempt.Answer(q.ID); ok {
		chosen = opt
	}
	s.choice = components.NewMultiChoice(q.Text, q.Options, chosen)
}

func (s *AttemptScreen) View(width, height int) string {
	if s.confirmQuit {
		return renderQuitConfirm(width, height)
	}

	cw := layout.ContentWidth(width)
	var b strings.Builder
	b.WriteString("\n")

	total := len(s.attempt.Set.Questions)
	counter := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Question %d/%d", s.attempt.Index+1, total))

	remaining := s.attempt.Remaining(s.now())
	clockColor := theme.Accent
	if remaining <= lowTime {
		clockColor = theme.Warning
	}
	clock := lipgloss.NewStyle().Foreground(clockColor).Bold(true).
		Render("⏱ " + quiz.FormatClock(remaining))

	gap := cw - lipgloss.Width(counter) - lipgloss.Width(clock)
	if gap < 1 {
		gap = 1
	}
	b.WriteString(counter + strings.Repeat(" ", gap) + clock)
	b.WriteString("\n")

	answered := float64(s.attempt.AnsweredCount()) / float64(total)
	b.WriteString(components.NewProgressBar("Answered", answered, false, cw).View())
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Width(cw).Render(s.choice.View()))
	b.WriteString("\n")

	prev := components.NewButton("Previous", "p", !s.attempt.IsFirst())
	nextLabel := "Next"
	if s.attempt.IsLast() {
		nextLabel = "Finish"
	}
	next := components.NewButton(nextLabel, "n", true)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, prev.View(), "  ", next.View()))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(b.String()))
}

func renderQuitConfirm(width, height int) string {
	box := theme.Card.Render(
		theme.Body.Bold(true).Render("Leave this set?") + "\n\n" +
			theme.Hint.Render("Your answers will not be scored.") + "\n\n" +
			lipgloss.NewStyle().Foreground(theme.Text).Render("[Y] Leave   [N] Keep going"),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func persist(w session.Write) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		w(context.Background())
		return nil
	}
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
