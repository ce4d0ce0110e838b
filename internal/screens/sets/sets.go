package sets

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizladder/internal/quiz"
	"github.com/abhisek/quizladder/internal/router"
	"github.com/abhisek/quizladder/internal/screen"
	"github.com/abhisek/quizladder/internal/screens/attempt"
	"github.com/abhisek/quizladder/internal/session"
	"github.com/abhisek/quizladder/internal/ui/components"
	"github.com/abhisek/quizladder/internal/ui/layout"
	"github.com/abhisek/quizladder/internal/ui/theme"
)

// SetsScreen shows the current topic's sets as an unlock ladder.
type SetsScreen struct {
	sess   *session.Session
	menu   components.Menu
	notice string
}

var _ screen.Screen = (*SetsScreen)(nil)
var _ screen.KeyHintProvider = (*SetsScreen)(nil)
var _ screen.Reentrant = (*SetsScreen)(nil)

// New creates a SetsScreen for the session's current topic.
func New(sess *session.Session) *SetsScreen {
	s := &SetsScreen{sess: sess}
	s.rebuild()
	return s
}

func (s *SetsScreen) Init() tea.Cmd {
	return nil
}

// Resume refreshes unlock states after an attempt, moving the highlight to
// the first set that is unlocked but not yet completed.
func (s *SetsScreen) Resume() tea.Cmd {
	s.notice = ""
	s.rebuild()
	for i, st := range s.sess.Sets() {
		if st.State == quiz.Unlocked {
			s.menu.Selected = i
			break
		}
	}
	return nil
}

func (s *SetsScreen) Title() string {
	if b := s.sess.Bundle(); b != nil {
		return b.Topic
	}
	return "Sets"
}

func (s *SetsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Topics"},
	}
}

func (s *SetsScreen) rebuild() {
	selected := s.menu.Selected
	statuses := s.sess.Sets()
	items := make([]components.MenuItem, len(statuses))
	for i, st := range statuses {
		setID := st.Set.ID
		title := st.Set.Title
		if title == "" {
			title = setID
		}
		detail := fmt.Sprintf("%d questions · %s", len(st.Set.Questions),
			theme.StateStyle(st.State).Render(st.State.String()))
		items[i] = components.MenuItem{
			Label:    fmt.Sprintf("%s  %s", st.State.Icon(), title),
			Detail:   detail,
			Disabled: !st.State.Selectable(),
			Action:   func() tea.Cmd { return s.start(setID) },
		}
	}
	s.menu = components.NewMenu(items)
	if selected < len(items) {
		s.menu.Selected = selected
	}
}

func (s *SetsScreen) start(setID string) tea.Cmd {
	a, write, err := s.sess.Start(setID)
	switch {
	case errors.Is(err, quiz.ErrSetLocked):
		s.notice = "Complete the previous set to unlock this one."
		return nil
	case errors.Is(err, quiz.ErrInvalidSet):
		s.notice = "This set has no questions yet."
		return nil
	case err != nil:
		s.notice = err.Error()
		return nil
	}

	next := attempt.New(s.sess, a, write)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *SetsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if kmsg.String() == "enter" {
		if item, ok := s.menu.Current(); ok && item.Disabled {
			s.notice = "Complete the previous set to unlock this one."
			return s, nil
		}
	}

	s.notice = ""
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *SetsScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	var b strings.Builder

	b.WriteString("\n")
	bundle := s.sess.Bundle()
	if bundle == nil || len(bundle.Sets) == 0 {
		b.WriteString(theme.Hint.Render("  This topic has no question sets yet."))
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Width(cw).Render(b.String()))
	}

	statuses := s.sess.Sets()
	done := 0
	for _, st := range statuses {
		if st.State == quiz.Completed {
			done++
		}
	}

	b.WriteString(theme.Title.Width(cw).Render(bundle.Topic))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(cw).Render(fmt.Sprintf(
		"Pass a set with %s%% to unlock the next one", trimFloat(s.sess.Config().PassThreshold))))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("Ladder", float64(done)/float64(len(statuses)), true, cw)
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	b.WriteString(s.menu.ViewWindow(height - 8))

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Render("  " + s.notice))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(b.String()))
}

func trimFloat(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.1f", v), "0"), ".")
}
