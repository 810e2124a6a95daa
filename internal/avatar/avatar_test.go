package avatar

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/shardhunt/internal/store"
)

func TestLoad_Defaults(t *testing.T) {
	kv := store.NewMemoryKV()
	p, err := Load(context.Background(), kv)
	require.NoError(t, err)
	assert.Equal(t, Profile{Icon: IconOne}, p)
	assert.Equal(t, "Explorer", p.DisplayName())
}

func TestSetAndLoad(t *testing.T) {
	kv := store.NewMemoryKV()
	ctx := context.Background()

	name, err := SetName(ctx, kv, "  Nova  ")
	require.NoError(t, err)
	assert.Equal(t, "Nova", name)
	require.NoError(t, SetIcon(ctx, kv, IconThree))

	p, err := Load(ctx, kv)
	require.NoError(t, err)
	assert.Equal(t, Profile{Name: "Nova", Icon: IconThree}, p)

	snap := kv.Snapshot()
	assert.Equal(t, "Nova", snap["avatar_name"])
	assert.Equal(t, "avatar-three", snap["avatar_icon"])
}

func TestSetName_LastWriteWins(t *testing.T) {
	kv := store.NewMemoryKV()
	ctx := context.Background()
	_, _ = SetName(ctx, kv, "First")
	_, _ = SetName(ctx, kv, "Second")

	p, err := Load(ctx, kv)
	require.NoError(t, err)
	assert.Equal(t, "Second", p.Name)
}

func TestSetName_Truncates(t *testing.T) {
	kv := store.NewMemoryKV()
	name, err := SetName(context.Background(), kv, strings.Repeat("é", MaxNameLen+5))
	require.NoError(t, err)
	assert.Len(t, []rune(name), MaxNameLen)
}

func TestSetIcon_Unknown(t *testing.T) {
	kv := store.NewMemoryKV()
	err := SetIcon(context.Background(), kv, Icon("avatar-five"))
	assert.True(t, errors.Is(err, ErrUnknownIcon), "err = %v", err)
	assert.Empty(t, kv.Snapshot())
}

func TestLoad_UnknownStoredIcon(t *testing.T) {
	kv := store.NewMemoryKV()
	ctx := context.Background()
	_ = kv.Set(ctx, store.KeyAvatarIcon, "/avatar-one.png")

	p, err := Load(ctx, kv)
	require.NoError(t, err)
	assert.Equal(t, DefaultIcon, p.Icon)
}
