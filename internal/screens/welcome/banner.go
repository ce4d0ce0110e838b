package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizladder/internal/ui/theme"
)

const bannerArt = `
  ___  _   _ ___ ____  _        _    ____  ____  _____ ____
 / _ \| | | |_ _|_  / | |      / \  |  _ \|  _ \| ____|  _ \
| | | | | | || |  / /  | |     / _ \ | | | | | | |  _| | |_) |
| |_| | |_| || | / /_  | |___ / ___ \| |_| | |_| | |___|  _ <
 \__\_\\___/|___/____| |_____/_/   \_\____/|____/|_____|_| \_\`

const bannerCompact = "Q U I Z L A D D E R"

// RenderBanner returns the QUIZLADDER banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 66 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 66 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
