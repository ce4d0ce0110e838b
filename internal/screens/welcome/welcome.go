package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizladder/internal/router"
	"github.com/abhisek/quizladder/internal/screen"
	"github.com/abhisek/quizladder/internal/ui/layout"
	"github.com/abhisek/quizladder/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	rungInterval = 300 * time.Millisecond
	totalDur     = 2400 * time.Millisecond
)

const ladderRungs = 5

type tickMsg time.Time

// WelcomeScreen shows a short splash, a ladder filling rung by rung, before
// handing over to the topics screen. Any key skips it.
type WelcomeScreen struct {
	nextFactory  func() screen.Screen
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by nextFactory.
func New(nextFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		nextFactory: nextFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
			return w, tick()
		}
		return w, nil

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.nextFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

// rungsLit returns how many ladder rungs are lit at the current time.
func (w *WelcomeScreen) rungsLit() int {
	n := int(w.elapsed / rungInterval)
	if n > ladderRungs {
		n = ladderRungs
	}
	return n
}

func renderLadder(lit int) string {
	on := lipgloss.NewStyle().Foreground(theme.Success)
	off := lipgloss.NewStyle().Foreground(theme.Border)

	lines := make([]string, 0, ladderRungs*2+1)
	for i := ladderRungs - 1; i >= 0; i-- {
		icon := "🔒"
		style := off
		if i < lit {
			icon = "✅"
			style = on
		}
		lines = append(lines, style.Render("  ║      ║"))
		lines = append(lines, style.Render("  ╠══════╣ ")+icon)
	}
	lines = append(lines, off.Render("  ║      ║"))
	return strings.Join(lines, "\n")
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string
	done := w.elapsed >= totalDur
	if !done || !layout.IsCompactHeight(height) {
		sections = append(sections, renderLadder(w.rungsLit()), "")
	}

	if done {
		sections = append(sections,
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
				Render("Climb one set at a time."),
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("press any key to continue"),
		)
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
