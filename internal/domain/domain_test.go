package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDisplayName(t *testing.T) {
	assert.Equal(t, "Userabcdef", DefaultDisplayName("abcdef123456"))
	assert.Equal(t, "Userab", DefaultDisplayName("ab"))
	assert.Equal(t, "User", DefaultDisplayName(""))
}

func TestNormalizeDisplayName(t *testing.T) {
	name, err := NormalizeDisplayName("  Alice ")
	require.NoError(t, err)
	assert.Equal(t, "Alice", name)

	_, err = NormalizeDisplayName("   ")
	assert.ErrorIs(t, err, ErrDisplayNameEmpty)

	_, err = NormalizeDisplayName(strings.Repeat("x", MaxDisplayNameLen+1))
	assert.ErrorIs(t, err, ErrDisplayNameTooLong)

	// length is counted in runes, not bytes
	name, err = NormalizeDisplayName(strings.Repeat("é", MaxDisplayNameLen))
	require.NoError(t, err)
	assert.Equal(t, MaxDisplayNameLen, len([]rune(name)))
}

func TestParseRoomName(t *testing.T) {
	name, err := ParseRoomName(" lobby ")
	require.NoError(t, err)
	assert.Equal(t, RoomName("lobby"), name)

	_, err = ParseRoomName("")
	assert.ErrorIs(t, err, ErrRoomNameEmpty)

	_, err = ParseRoomName(strings.Repeat("r", MaxRoomNameLen+1))
	assert.ErrorIs(t, err, ErrRoomNameTooLong)
}

func TestNewMember(t *testing.T) {
	now := time.Unix(1700000000, 0)

	m := NewMember("0123456789", "", now)
	assert.Equal(t, "User012345", m.DisplayName)
	assert.Equal(t, MediaState{Video: true, Audio: true}, m.Media)
	assert.Equal(t, now, m.JoinedAt)

	m = NewMember("0123456789", "Bob", now)
	assert.Equal(t, "Bob", m.DisplayName)
}
