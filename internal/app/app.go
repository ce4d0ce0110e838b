package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizladder/internal/router"
	"github.com/abhisek/quizladder/internal/screen"
	"github.com/abhisek/quizladder/internal/screens/topics"
	"github.com/abhisek/quizladder/internal/screens/welcome"
	"github.com/abhisek/quizladder/internal/session"
	"github.com/abhisek/quizladder/internal/store"
	"github.com/abhisek/quizladder/internal/ui/layout"
)

// Options holds the dependencies the TUI is built from.
type Options struct {
	Session *session.Session
	Source  topics.Source
	Events  store.EventRepo // optional, enables the history screen

	// SkipWelcome starts directly on the topics screen.
	SkipWelcome bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	sess   *session.Session
	width  int
	height int
}

// newAppModel creates a new AppModel rooted at the welcome splash, which
// hands over to the topics screen.
func newAppModel(opts Options) AppModel {
	next := func() screen.Screen {
		return topics.New(opts.Session, opts.Source, opts.Events)
	}

	var root screen.Screen
	if opts.SkipWelcome {
		root = next()
	} else {
		root = welcome.New(next)
	}
	return AppModel{
		router: router.New(root),
		sess:   opts.Session,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	progress := m.sess.Progress()
	header := layout.RenderHeader(title, progress.TotalPoints, len(progress.CompletedSets), m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Any key", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// drainTimeout bounds how long Run waits for persistence after quitting.
const drainTimeout = 3 * time.Second

// Run starts the Bubble Tea program. Persistence warnings raised while the
// alternate screen is active are held back and printed to stderr on exit,
// once in-flight writes have finished.
func Run(opts Options) error {
	warnings := &warningBuffer{}
	prev := session.SetWarningOutput(warnings)
	defer settle(opts.Session, warnings, prev, os.Stderr, drainTimeout)

	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}

// settle waits up to timeout for the session's writes, then restores the
// previous warning writer and flushes held-back warnings to out.
func settle(sess *session.Session, warnings *warningBuffer, prev, out io.Writer, timeout time.Duration) {
	if sess != nil {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		if err := sess.Drain(ctx); err != nil {
			fmt.Fprintln(warnings, "warning: progress may not have been saved:", err)
		}
		cancel()
	}
	session.SetWarningOutput(prev)
	warnings.flush(out)
}

// warningBuffer collects warnings written from command goroutines.
type warningBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *warningBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *warningBuffer) flush(w io.Writer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = b.buf.WriteTo(w)
}
