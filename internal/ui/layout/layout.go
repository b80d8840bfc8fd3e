package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/mnordin/planverk/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// bar wraps header/footer content in the shared bordered strip.
func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderHeader draws the top bar: app name left, screen title centered,
// active model right.
func RenderHeader(title, model string, width int) string {
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  Planverk")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := ""
	if model != "" {
		right = lipgloss.NewStyle().Foreground(theme.Accent).Render("⌘ " + model)
	}

	// Center the title against the full bar, then pad the right edge.
	inner := max(width-4, 0)
	pre := max((inner-lipgloss.Width(center))/2-lipgloss.Width(name), 1)
	post := max(inner-lipgloss.Width(name)-pre-lipgloss.Width(center)-lipgloss.Width(right), 1)

	return bar(name+strings.Repeat(" ", pre)+center+strings.Repeat(" ", post)+right, width)
}

// RenderFooter draws the key-hint strip.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key)+" "+
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description))
	}
	return bar("  "+strings.Join(parts, "   "), width)
}

// RenderFrame stacks header, content stretched to the leftover height,
// and footer.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	middle := lipgloss.NewStyle().Width(width).Height(body).Render(content)
	return header + "\n" + middle + "\n" + footer
}
