package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/mnordin/planverk/internal/ui/theme"
)

// ProgressBar shows how much of the year plan has generated material:
// a label, a filled track, and the percentage.
type ProgressBar struct {
	Label   string
	Percent float64
	Width   int
}

func NewProgressBar(label string, percent float64, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, Width: width}
}

func (p ProgressBar) View() string {
	label := ""
	if p.Label != "" {
		label = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}
	pct := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))

	track := p.Width - lipgloss.Width(label) - lipgloss.Width(pct)
	if track < 4 {
		track = 4
	}

	filled := clampInt(int(float64(track)*p.Percent), 0, track)
	return label +
		theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", track-filled)) +
		pct
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
