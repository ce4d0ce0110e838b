package placeholder

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizladder/internal/router"
)

func TestPlaceholderView(t *testing.T) {
	p := New("rust")
	if p.Title() != "rust" {
		t.Errorf("Title = %q, want %q", p.Title(), "rust")
	}
	view := p.View(80, 20)
	for _, want := range []string{"Coming Soon", "Questions for rust are being written.", "Pick another topic"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestPlaceholderEnterPops(t *testing.T) {
	p := New("rust")
	_, cmd := p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on enter")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}

	_, cmd = p.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if cmd != nil {
		t.Error("other keys should be ignored")
	}
}

func TestPlaceholderKeyHints(t *testing.T) {
	hints := New("rust").KeyHints()
	if len(hints) == 0 || hints[0].Key != "Enter" {
		t.Errorf("unexpected hints: %+v", hints)
	}
}
