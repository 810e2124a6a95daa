// Package avatar stores the player's cosmetic name and icon.
package avatar

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/shardhunt/internal/store"
)

// Icon identifies one of the selectable avatar images.
type Icon string

const (
	IconOne   Icon = "avatar-one"
	IconTwo   Icon = "avatar-two"
	IconThree Icon = "avatar-three"
	IconFour  Icon = "avatar-four"
)

// DefaultIcon is used until the player picks one.
const DefaultIcon = IconOne

// MaxNameLen caps the stored name length in runes.
const MaxNameLen = 32

// ErrUnknownIcon is returned by SetIcon for an icon outside Icons().
var ErrUnknownIcon = errors.New("unknown avatar icon")

// Icons returns the selectable icons in display order.
func Icons() []Icon {
	return []Icon{IconOne, IconTwo, IconThree, IconFour}
}

// ParseIcon validates s as an icon.
func ParseIcon(s string) (Icon, bool) {
	for _, i := range Icons() {
		if string(i) == s {
			return i, true
		}
	}
	return "", false
}

// Glyph returns the terminal rendering of the icon.
func (i Icon) Glyph() string {
	switch i {
	case IconOne:
		return "🧙"
	case IconTwo:
		return "🧝"
	case IconThree:
		return "🥷"
	case IconFour:
		return "🧚"
	default:
		return "👤"
	}
}

// Profile is the player's cosmetic identity.
type Profile struct {
	Name string `json:"name"`
	Icon Icon   `json:"icon"`
}

// DisplayName returns the name, or a placeholder when unset.
func (p Profile) DisplayName() string {
	if p.Name == "" {
		return "Explorer"
	}
	return p.Name
}

// Load reads the profile. An absent or unrecognized icon reads as
// DefaultIcon.
func Load(ctx context.Context, kv store.KV) (Profile, error) {
	name, _, err := kv.Get(ctx, store.KeyAvatarName)
	if err != nil {
		return Profile{}, fmt.Errorf("read avatar name: %w", err)
	}
	raw, _, err := kv.Get(ctx, store.KeyAvatarIcon)
	if err != nil {
		return Profile{}, fmt.Errorf("read avatar icon: %w", err)
	}
	icon, ok := ParseIcon(raw)
	if !ok {
		icon = DefaultIcon
	}
	return Profile{Name: name, Icon: icon}, nil
}

// SetName stores name, trimmed and capped at MaxNameLen runes.
func SetName(ctx context.Context, kv store.KV, name string) (string, error) {
	name = strings.TrimSpace(name)
	if r := []rune(name); len(r) > MaxNameLen {
		name = string(r[:MaxNameLen])
	}
	if err := kv.Set(ctx, store.KeyAvatarName, name); err != nil {
		return "", fmt.Errorf("write avatar name: %w", err)
	}
	return name, nil
}

// SetIcon stores icon if it is one of Icons().
func SetIcon(ctx context.Context, kv store.KV, icon Icon) error {
	if _, ok := ParseIcon(string(icon)); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownIcon, icon)
	}
	if err := kv.Set(ctx, store.KeyAvatarIcon, string(icon)); err != nil {
		return fmt.Errorf("write avatar icon: %w", err)
	}
	return nil
}
