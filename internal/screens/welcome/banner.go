package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/mnordin/planverk/internal/ui/theme"
)

const bannerArt = `
 ██████╗ ██╗      █████╗ ███╗   ██╗██╗   ██╗███████╗██████╗ ██╗  ██╗
 ██╔══██╗██║     ██╔══██╗████╗  ██║██║   ██║██╔════╝██╔══██╗██║ ██╔╝
 ██████╔╝██║     ███████║██╔██╗ ██║██║   ██║█████╗  ██████╔╝█████╔╝
 ██╔═══╝ ██║     ██╔══██║██║╚██╗██║╚██╗ ██╔╝██╔══╝  ██╔══██╗██╔═██╗
 ██║     ███████╗██║  ██║██║ ╚████║ ╚████╔╝ ███████╗██║  ██║██║  ██╗
 ╚═╝     ╚══════╝╚═╝  ╚═╝╚═╝  ╚═══╝  ╚═══╝  ╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝`

const bannerCompact = "P L A N V E R K"

// RenderBanner returns the PLANVERK banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 72 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 72 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
