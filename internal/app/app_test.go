package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizladder/internal/content"
	"github.com/abhisek/quizladder/internal/quiz"
	"github.com/abhisek/quizladder/internal/router"
	"github.com/abhisek/quizladder/internal/screen"
	"github.com/abhisek/quizladder/internal/screens/topics"
	"github.com/abhisek/quizladder/internal/screens/welcome"
	"github.com/abhisek/quizladder/internal/session"
	"github.com/abhisek/quizladder/internal/ui/layout"
)

type memProgress struct{}

func (memProgress) Load(context.Context, string) (quiz.Progress, error)  { return quiz.Progress{}, nil }
func (memProgress) Save(context.Context, string, quiz.Progress) error { return nil }

// escScreen records the keys it receives.
type escScreen struct {
	handles bool
	keys    []string
}

func (s *escScreen) Init() tea.Cmd { return nil }
func (s *escScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		s.keys = append(s.keys, k.String())
	}
	return s, nil
}
func (s *escScreen) View(int, int) string { return "esc screen" }
func (s *escScreen) Title() string        { return "Esc" }
func (s *escScreen) HandlesEscape() bool  { return s.handles }
func (s *escScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Leave"}}
}

func testOptions(skip bool) Options {
	sess := session.New(session.Deps{
		Engine:   quiz.NewEngine(quiz.DefaultConfig()),
		Progress: memProgress{},
		UserKey:  "ana",
	}, quiz.Progress{TotalPoints: 40, CompletedSets: []string{"java-1"}})
	return Options{
		Session:     sess,
		Source:      content.NewEmbeddedStore(),
		SkipWelcome: skip,
	}
}

var keyEscape = tea.KeyPressMsg{Code: tea.KeyEscape}

func TestNewAppModelRoot(t *testing.T) {
	if _, ok := newAppModel(testOptions(false)).router.Active().(*welcome.WelcomeScreen); !ok {
		t.Error("expected the welcome screen at the root")
	}
	if _, ok := newAppModel(testOptions(true)).router.Active().(*topics.TopicsScreen); !ok {
		t.Error("expected the topics screen when the splash is skipped")
	}
}

func TestEscapePopsScreensWithoutHandler(t *testing.T) {
	m := newAppModel(testOptions(true))
	m.router.Push(&escScreen{})

	_, cmd := m.Update(keyEscape)
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestEscapeForwardedToHandler(t *testing.T) {
	m := newAppModel(testOptions(true))
	s := &escScreen{handles: true}
	m.router.Push(s)

	_, cmd := m.Update(keyEscape)
	if cmd != nil {
		t.Error("app should not pop a screen that handles escape")
	}
	if len(s.keys) != 1 || s.keys[0] != "esc" {
		t.Errorf("screen keys = %v, want [esc]", s.keys)
	}
}

func TestEscapeAtRootIsIgnored(t *testing.T) {
	m := newAppModel(testOptions(true))
	if _, cmd := m.Update(keyEscape); cmd != nil {
		t.Error("escape on the root screen should do nothing")
	}
}

func TestViewShowsProgressInHeader(t *testing.T) {
	m := newAppModel(testOptions(true))
	model, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = model.(AppModel)
	m.router.Push(&escScreen{})

	view := m.render()
	for _, want := range []string{"★ 40 pts", "✓ 1 set", "Esc", "Leave", "Ctrl+C"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestWarningBufferFlush(t *testing.T) {
	b := &warningBuffer{}
	b.Write([]byte("warning: disk full\n"))

	var out bytes.Buffer
	b.flush(&out)
	if out.String() != "warning: disk full\n" {
		t.Errorf("flushed %q", out.String())
	}
}

// slowFailingProgress fails every save after a delay.
type slowFailingProgress struct{ delay time.Duration }

func (slowFailingProgress) Load(context.Context, string) (quiz.Progress, error) {
	return quiz.Progress{}, nil
}

func (p slowFailingProgress) Save(context.Context, string, quiz.Progress) error {
	time.Sleep(p.delay)
	return errors.New("disk full")
}

func TestSettleWaitsForInFlightWrites(t *testing.T) {
	warnings := &warningBuffer{}
	var outer bytes.Buffer
	prev := session.SetWarningOutput(warnings)
	t.Cleanup(func() { session.SetWarningOutput(prev) })

	sess := session.New(session.Deps{
		Engine:   quiz.NewEngine(quiz.DefaultConfig()),
		Progress: slowFailingProgress{delay: 50 * time.Millisecond},
		UserKey:  "ana",
	}, quiz.Progress{})
	sess.SetTopic("java", &quiz.TopicBundle{
		Topic: "Java",
		Sets: []quiz.QuestionSet{{
			ID:        "java-1",
			Title:     "Basics",
			Questions: []quiz.Question{{ID: "q1", Text: "?", Options: []string{"a", "b"}, Correct: 1}},
		}},
	})
	_, start, err := sess.Start("java-1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	start(context.Background())
	if _, err := sess.Select(1); err != nil {
		t.Fatalf("select: %v", err)
	}
	_, write, err := sess.Finish(time.Now())
	if err != nil {
		t.Fatalf("finish: %v", err)
	}

	// The write is still running when the program exits.
	go write(context.Background())

	settle(sess, warnings, &outer, &outer, time.Second)
	if !strings.Contains(outer.String(), "failed to save progress for ana") {
		t.Errorf("expected the late warning to be flushed, got %q", outer.String())
	}
}

func TestSettleReportsTimeout(t *testing.T) {
	warnings := &warningBuffer{}
	var out bytes.Buffer

	sess := session.New(session.Deps{
		Engine:   quiz.NewEngine(quiz.DefaultConfig()),
		Progress: memProgress{},
		UserKey:  "ana",
	}, quiz.Progress{})
	sess.SetTopic("java", &quiz.TopicBundle{
		Topic: "Java",
		Sets: []quiz.QuestionSet{{
			ID:        "java-1",
			Questions: []quiz.Question{{ID: "q1", Text: "?", Options: []string{"a", "b"}}},
		}},
	})
	if _, _, err := sess.Start("java-1"); err != nil {
		t.Fatalf("start: %v", err)
	}

	settle(sess, warnings, session.SetWarningOutput(warnings), &out, 10*time.Millisecond)
	if !strings.Contains(out.String(), "progress may not have been saved") {
		t.Errorf("expected a timeout warning, got %q", out.String())
	}
}
