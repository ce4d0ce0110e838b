package placeholder

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizladder/internal/router"
	"github.com/abhisek/quizladder/internal/screen"
	"github.com/abhisek/quizladder/internal/ui/layout"
	"github.com/abhisek/quizladder/internal/ui/theme"
)

// ComingSoonScreen stands in for a catalog topic with no question bundle.
type ComingSoonScreen struct {
	topicID string
}

var (
	_ screen.Screen          = (*ComingSoonScreen)(nil)
	_ screen.KeyHintProvider = (*ComingSoonScreen)(nil)
)

// New returns the coming-soon screen for topicID.
func New(topicID string) *ComingSoonScreen {
	return &ComingSoonScreen{topicID: topicID}
}

func (c *ComingSoonScreen) Init() tea.Cmd { return nil }

func (c *ComingSoonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "enter" {
		return c, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return c, nil
}

func (c *ComingSoonScreen) View(width, height int) string {
	card := theme.Card.Width(min(layout.ContentWidth(width), 48)).Align(lipgloss.Center).Render(
		theme.Title.Render("Coming Soon") + "\n\n" +
			theme.Body.Render(fmt.Sprintf("Questions for %s are being written.", c.topicID)) + "\n" +
			theme.Hint.Render("Pick another topic for now."),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (c *ComingSoonScreen) Title() string {
	return c.topicID
}

func (c *ComingSoonScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Back to topics"},
		{Key: "Esc", Description: "Back"},
	}
}
