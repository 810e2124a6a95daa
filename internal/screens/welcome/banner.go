package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shardhunt/internal/ui/theme"
)

const bannerArt = `
 ███████╗██╗  ██╗ █████╗ ██████╗ ██████╗
 ██╔════╝██║  ██║██╔══██╗██╔══██╗██╔══██╗
 ███████╗███████║███████║██████╔╝██║  ██║
 ╚════██║██╔══██║██╔══██║██╔══██╗██║  ██║
 ███████║██║  ██║██║  ██║██║  ██║██████╔╝
 ╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝
     ██╗  ██╗██╗   ██╗███╗   ██╗████████╗
     ██║  ██║██║   ██║████╗  ██║╚══██╔══╝
     ███████║██║   ██║██╔██╗ ██║   ██║
     ██╔══██║██║   ██║██║╚██╗██║   ██║
     ██║  ██║╚██████╔╝██║ ╚████║   ██║
     ╚═╝  ╚═╝ ╚═════╝ ╚═╝  ╚═══╝   ╚═╝`

const bannerCompact = "S H A R D H U N T"

// RenderBanner returns the SHARDHUNT banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 44 columns or
// shorter than the stacked art needs.
func RenderBanner(width, height int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 44 || height < 28 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
