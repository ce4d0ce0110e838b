package topics

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizladder/internal/content"
	"github.com/abhisek/quizladder/internal/quiz"
	"github.com/abhisek/quizladder/internal/router"
	"github.com/abhisek/quizladder/internal/screen"
	"github.com/abhisek/quizladder/internal/screens/history"
	"github.com/abhisek/quizladder/internal/screens/placeholder"
	"github.com/abhisek/quizladder/internal/screens/sets"
	"github.com/abhisek/quizladder/internal/session"
	"github.com/abhisek/quizladder/internal/store"
	"github.com/abhisek/quizladder/internal/ui/components"
	"github.com/abhisek/quizladder/internal/ui/layout"
	"github.com/abhisek/quizladder/internal/ui/theme"
)

// Source provides topic listings and bundles.
type Source interface {
	quiz.ContentStore
	content.TopicLister
}

type topicsLoadedMsg struct {
	Topics []content.TopicInfo
	Err    error
}

type topicLoadedMsg struct {
	TopicID string
	Bundle  *quiz.TopicBundle
	Err     error
}

// TopicsScreen lists catalog topics grouped by domain, with a filter.
type TopicsScreen struct {
	sess   *session.Session
	source Source
	events store.EventRepo

	topics    []content.TopicInfo
	visible   []content.TopicInfo // parallel to menu.Items
	menu      components.Menu
	filter    components.TextInput
	filtering bool

	loaded  bool
	loading string // topic being fetched
	errMsg  string
}

var _ screen.Screen = (*TopicsScreen)(nil)
var _ screen.KeyHintProvider = (*TopicsScreen)(nil)
var _ screen.EscapeHandler = (*TopicsScreen)(nil)

// New creates a TopicsScreen. events may be nil, which disables history.
func New(sess *session.Session, source Source, events store.EventRepo) *TopicsScreen {
	return &TopicsScreen{
		sess:   sess,
		source: source,
		events: events,
		filter: components.NewTextInput("filter topics", 40),
	}
}

func (s *TopicsScreen) Init() tea.Cmd {
	source := s.source
	return func() tea.Msg {
		topics, err := source.Topics(context.Background())
		return topicsLoadedMsg{Topics: topics, Err: err}
	}
}

func (s *TopicsScreen) Title() string {
	return "Topics"
}

func (s *TopicsScreen) HandlesEscape() bool {
	return s.filtering || s.filter.Active()
}

func (s *TopicsScreen) KeyHints() []layout.KeyHint {
	if s.filtering {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Clear"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "/", Description: "Filter"},
	}
	if s.events != nil {
		hints = append(hints, layout.KeyHint{Key: "h", Description: "History"})
	}
	return append(hints, layout.KeyHint{Key: "q", Description: "Quit"})
}

func (s *TopicsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case topicsLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.topics = msg.Topics
		s.rebuild()
		return s, nil

	case topicLoadedMsg:
		return s.handleTopicLoaded(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.filtering {
		var cmd tea.Cmd
		s.filter, cmd = s.filter.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *TopicsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.filtering {
		switch key {
		case "enter":
			s.filtering = false
			return s, nil
		case "esc":
			s.filtering = false
			s.filter.Clear()
			s.rebuild()
			return s, nil
		case "up", "down":
			s.menu, _ = s.menu.Update(msg)
			return s, nil
		}
		var cmd tea.Cmd
		s.filter, cmd = s.filter.Update(msg)
		s.rebuild()
		return s, cmd
	}

	if s.loading != "" {
		return s, nil
	}
	s.errMsg = ""

	switch key {
	case "/":
		s.filtering = true
		return s, s.filter.Init()
	case "esc":
		s.filter.Clear()
		s.rebuild()
		return s, nil
	case "h":
		if s.events == nil {
			return s, nil
		}
		hist := history.New(s.events, s.sess.UserKey())
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: hist} }
	case "q":
		return s, tea.Quit
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

// rebuild recomputes the visible topics from the filter, keeping the
// highlighted topic when it is still visible.
func (s *TopicsScreen) rebuild() {
	current := ""
	if s.menu.Selected < len(s.visible) {
		current = s.visible[s.menu.Selected].ID
	}

	s.visible = s.visible[:0]
	var items []components.MenuItem
	for _, t := range s.topics {
		if !s.filter.Matches(t.ID, t.Domain.DisplayName()) {
			continue
		}
		detail := t.Domain.DisplayName()
		if !t.Available {
			detail += " · coming soon"
		}
		id := t.ID
		s.visible = append(s.visible, t)
		items = append(items, components.MenuItem{
			Label:  id,
			Detail: detail,
			Action: func() tea.Cmd { return s.open(id) },
		})
	}

	s.menu = components.NewMenu(items)
	for i, t := range s.visible {
		if t.ID == current {
			s.menu.Selected = i
		}
	}
}

func (s *TopicsScreen) open(topicID string) tea.Cmd {
	s.loading = topicID
	sess, source := s.sess, s.source
	return func() tea.Msg {
		bundle, err := sess.Fetch(context.Background(), source, topicID)
		return topicLoadedMsg{TopicID: topicID, Bundle: bundle, Err: err}
	}
}

func (s *TopicsScreen) handleTopicLoaded(msg topicLoadedMsg) (screen.Screen, tea.Cmd) {
	s.loading = ""
	switch {
	case errors.Is(msg.Err, quiz.ErrNotFound):
		ph := placeholder.New(msg.TopicID)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: ph} }
	case msg.Err != nil:
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	s.sess.SetTopic(msg.TopicID, msg.Bundle)
	next := sets.New(s.sess)
	return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *TopicsScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading topics...")
	}

	cw := layout.ContentWidth(width)
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(cw).Render("Pick a topic"))
	b.WriteString("\n")

	progress := s.sess.Progress()
	b.WriteString(theme.Subtitle.Width(cw).Render(fmt.Sprintf(
		"%d points · %d sets completed", progress.TotalPoints, len(progress.CompletedSets))))
	b.WriteString("\n\n")

	if s.filtering || s.filter.Active() {
		b.WriteString(s.filter.View())
		b.WriteString("\n\n")
	}

	if len(s.visible) == 0 {
		b.WriteString(theme.Hint.Render("  No topics match."))
		b.WriteString("\n")
	} else {
		rows := height - 8
		if s.filtering || s.filter.Active() {
			rows -= 2
		}
		b.WriteString(s.menu.ViewWindow(rows))
	}

	switch {
	case s.loading != "":
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  Loading %s...", s.loading)))
	case s.errMsg != "":
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render("  Error: " + s.errMsg))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(b.String()))
}
