package attempt

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizladder/internal/quiz"
	"github.com/abhisek/quizladder/internal/router"
	"github.com/abhisek/quizladder/internal/screens/result"
	"github.com/abhisek/quizladder/internal/session"
)

var t0 = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

// memProgress implements session.ProgressStore in memory.
type memProgress struct{ saves int }

func (m *memProgress) Load(context.Context, string) (quiz.Progress, error) {
	return quiz.Progress{}, nil
}

func (m *memProgress) Save(context.Context, string, quiz.Progress) error {
	m.saves++
	return nil
}

func newTestScreen(t *testing.T, questions int) (*AttemptScreen, *session.Session) {
	t.Helper()
	set := quiz.QuestionSet{ID: "java-1", Title: "Basics"}
	for i := 0; i < questions; i++ {
		set.Questions = append(set.Questions, quiz.Question{
			ID:      quiz.ID(fmt.Sprintf("q%d", i+1)),
			Text:    fmt.Sprintf("Question %d?", i+1),
			Options: []string{"alpha", "beta", "gamma"},
			Correct: 1,
		})
	}

	engine := quiz.NewEngine(quiz.DefaultConfig())
	engine.SetClock(func() time.Time { return t0 })
	sess := session.New(session.Deps{Engine: engine, Progress: &memProgress{}, UserKey: "ana"}, quiz.Progress{})
	sess.SetTopic("java", &quiz.TopicBundle{Topic: "Java", Sets: []quiz.QuestionSet{set}})

	a, write, err := sess.Start("java-1")
	if err != nil {
		t.Fatal(err)
	}
	s := New(sess, a, write)
	s.now = func() time.Time { return t0.Add(30 * time.Second) }
	return s, sess
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// replaced runs cmd, which may be a batch, and returns the result screen it
// replaces the attempt with.
func replaced(t *testing.T, cmd tea.Cmd) *result.ResultScreen {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	var msgs []tea.Msg
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			if c != nil {
				msgs = append(msgs, c())
			}
		}
	default:
		msgs = append(msgs, msg)
	}
	for _, msg := range msgs {
		if rep, ok := msg.(router.ReplaceScreenMsg); ok {
			rs, ok := rep.Screen.(*result.ResultScreen)
			if !ok {
				t.Fatalf("replaced with %T, want *result.ResultScreen", rep.Screen)
			}
			return rs
		}
	}
	t.Fatal("expected ReplaceScreenMsg")
	return nil
}

func TestAttemptView(t *testing.T) {
	s, _ := newTestScreen(t, 3)
	if s.Title() != "Basics" {
		t.Errorf("Title = %q, want Basics", s.Title())
	}

	view := s.View(100, 30)
	for _, want := range []string{"Question 1/3", "Question 1?", "1) alpha", "⏱ 9:30", "[n] Next"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestAttemptSelectAndNavigate(t *testing.T) {
	s, sess := newTestScreen(t, 3)

	s.Update(key('2'))
	a, _ := sess.Attempt()
	if opt, ok := a.Answer("q1"); !ok || opt != 1 {
		t.Errorf("answer for q1 = %d, %v; want 1", opt, ok)
	}

	s.Update(key('n'))
	if s.attempt.Index != 1 {
		t.Fatalf("Index = %d, want 1", s.attempt.Index)
	}
	if s.choice.Chosen != -1 {
		t.Error("second question should start unanswered")
	}

	s.Update(key('p'))
	if s.attempt.Index != 0 {
		t.Fatalf("Index = %d, want 0", s.attempt.Index)
	}
	if s.choice.Chosen != 1 {
		t.Errorf("previous answer should be restored, got %d", s.choice.Chosen)
	}
}

func TestAttemptFinishOnLastQuestion(t *testing.T) {
	s, sess := newTestScreen(t, 2)

	s.Update(key('2'))
	s.Update(key('n'))
	s.Update(key('2'))
	if !strings.Contains(s.View(100, 30), "[n] Finish") {
		t.Error("last question should offer Finish")
	}

	_, cmd := s.Update(key('n'))
	rs := replaced(t, cmd)
	view := rs.View(100, 30)
	if !strings.Contains(view, "You scored 2 / 2") {
		t.Errorf("result view missing score:\n%s", view)
	}
	if sess.Progress().TotalPoints != 20 {
		t.Errorf("TotalPoints = %d, want 20", sess.Progress().TotalPoints)
	}
	if _, ok := sess.Attempt(); ok {
		t.Error("attempt should be over")
	}

	if _, cmd := s.Update(key('n')); cmd != nil {
		t.Error("a finished screen should ignore input")
	}
}

func TestAttemptExpiresOnTick(t *testing.T) {
	s, sess := newTestScreen(t, 5)
	s.Update(key('2'))

	_, cmd := s.Update(tickMsg(t0.Add(5 * time.Minute)))
	if cmd == nil {
		t.Fatal("expected the countdown to continue")
	}
	if _, ok := sess.Attempt(); !ok {
		t.Fatal("attempt should still be active before the deadline")
	}

	_, cmd = s.Update(tickMsg(t0.Add(600 * time.Second)))
	rs := replaced(t, cmd)
	view := rs.View(100, 30)
	if !strings.Contains(view, "You scored 1 / 5") {
		t.Errorf("expired attempt should be scored with recorded answers:\n%s", view)
	}
	if !strings.Contains(view, "Time's up") {
		t.Errorf("expected the time-up notice:\n%s", view)
	}
}

func TestAttemptQuitConfirm(t *testing.T) {
	s, sess := newTestScreen(t, 3)
	if !s.HandlesEscape() {
		t.Error("attempt screen should handle escape")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if !strings.Contains(s.View(100, 30), "Leave this set?") {
		t.Fatal("expected quit confirmation")
	}

	s.Update(key('n'))
	if s.confirmQuit {
		t.Fatal("'n' should dismiss the confirmation")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	_, cmd := s.Update(key('y'))
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
	if _, ok := sess.Attempt(); ok {
		t.Error("attempt should be abandoned")
	}
}

func TestAttemptLowTimeWarning(t *testing.T) {
	s, _ := newTestScreen(t, 1)
	s.now = func() time.Time { return t0.Add(9*time.Minute + 15*time.Second) }
	if !strings.Contains(s.View(100, 30), "⏱ 0:45") {
		t.Error("expected the remaining time under a minute")
	}
}
