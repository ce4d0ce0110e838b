package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizladder/internal/ui/theme"
)

// ProgressBar is a one-line bar of block glyphs. Marker draws a tick at a
// fraction of the bar, such as the pass threshold.
type ProgressBar struct {
	Label       string
	Percent     float64 // 0..1
	ShowPercent bool
	Width       int
	Marker      float64 // 0..1, 0 for none
	Fill        color.Color
}

// NewProgressBar creates a progress bar filled in the secondary color.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

func clamp01(f float64) float64 {
	return max(0, min(f, 1))
}

func (p ProgressBar) View() string {
	pct := clamp01(p.Percent)

	var prefix, suffix string
	if p.Label != "" {
		prefix = theme.Body.Render(p.Label) + "  "
	}
	if p.ShowPercent {
		suffix = lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf(" %3d%%", int(pct*100)))
	}

	n := max(p.Width-lipgloss.Width(prefix)-lipgloss.Width(suffix), 4)
	filled := int(float64(n) * pct)
	tick := -1
	if m := clamp01(p.Marker); m > 0 && m < 1 {
		tick = int(float64(n) * m)
	}

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	on := lipgloss.NewStyle().Foreground(fill)
	off := lipgloss.NewStyle().Foreground(theme.Border)
	mark := lipgloss.NewStyle().Foreground(theme.Accent)

	var bar strings.Builder
	for i := 0; i < n; i++ {
		switch {
		case i == tick:
			bar.WriteString(mark.Render("│"))
		case i < filled:
			bar.WriteString(on.Render("█"))
		default:
			bar.WriteString(off.Render("░"))
		}
	}
	return prefix + bar.String() + suffix
}
