package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shardhunt/internal/ui/theme"
)

// MascotVariant selects which crystal art to display.
type MascotVariant int

const (
	MascotIdle     MascotVariant = iota // Dim crystal
	MascotGlowing                       // Rewards waiting in the wallet
	MascotComplete                      // Every task completed at least once
)

const mascotIdle = `   /\
  /  \
 / ◇  \
 \    /
  \  /
   \/`

const mascotGlowing = ` ✦ /\ ✦
  /  \
 / ◆  \
 \    /
  \  /
 ✦ \/ ✦`

const mascotComplete = `  ★/\★
  /◆◆\
 /◆◆◆◆\
 \◆◆◆◆/
  \◆◆/
   \/`

// RenderMascot returns the crystal art for the given variant.
func RenderMascot(variant ...MascotVariant) string {
	v := MascotIdle
	if len(variant) > 0 {
		v = variant[0]
	}

	var art string
	var fg = theme.Primary

	switch v {
	case MascotGlowing:
		art = mascotGlowing
		fg = theme.ArcadeCyan
	case MascotComplete:
		art = mascotComplete
		fg = theme.ArcadeYellow
	default:
		art = mascotIdle
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}

// mascotFor picks the variant from the wallet and completion state.
func mascotFor(pending int, allCompleted bool) MascotVariant {
	switch {
	case allCompleted:
		return MascotComplete
	case pending > 0:
		return MascotGlowing
	default:
		return MascotIdle
	}
}
