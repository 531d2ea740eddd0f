package app

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dkeye/Meet/internal/core"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() *Registry {
	r := NewRegistry()
	var tick int64
	var mu sync.Mutex
	r.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		tick++
		return time.Unix(1700000000+tick, 0)
	}
	return r
}

func ids(members []core.MemberDTO) []core.SessionID {
	out := make([]core.SessionID, 0, len(members))
	for _, m := range members {
		out = append(out, m.ID)
	}
	return out
}

func TestJoinRoomExcludesSelfFromSnapshot(t *testing.T) {
	r := newTestRegistry()

	res := r.JoinRoom("lobby", "a", "Alice")
	assert.Empty(t, res.Members)
	assert.Empty(t, res.Left)
	assert.Equal(t, core.SessionID("a"), res.Self.ID)
	assert.Equal(t, "Alice", res.Self.DisplayName)

	res = r.JoinRoom("lobby", "b", "")
	assert.Equal(t, []core.SessionID{"a"}, ids(res.Members))
	assert.Equal(t, domain.DefaultDisplayName("b"), res.Self.DisplayName)

	snap, ok := r.Snapshot("lobby")
	require.True(t, ok)
	assert.Equal(t, []core.SessionID{"a", "b"}, ids(snap.Members))
}

func TestJoinRoomMovesBetweenRooms(t *testing.T) {
	r := newTestRegistry()
	r.JoinRoom("a-room", "x", "")
	r.JoinRoom("a-room", "y", "")

	res := r.JoinRoom("b-room", "x", "")
	assert.Equal(t, []domain.RoomName{"a-room"}, res.Left)
	assert.Equal(t, []domain.RoomName{"b-room"}, r.RoomsContaining("x"))
	assert.False(t, r.IsMember("a-room", "x"))
	assert.Equal(t, []core.SessionID{"y"}, r.Recipients("a-room", ""))

	// y moving away empties a-room, which must disappear
	res = r.JoinRoom("b-room", "y", "")
	assert.Equal(t, []domain.RoomName{"a-room"}, res.Left)
	_, ok := r.Snapshot("a-room")
	assert.False(t, ok)
	assert.Equal(t, []core.RoomInfo{{Name: "b-room", MemberCount: 2}}, r.List())
}

func TestJoinSameRoomOverwritesMember(t *testing.T) {
	r := newTestRegistry()
	r.JoinRoom("lobby", "a", "Old")
	r.UpdateMedia("lobby", "a", domain.MediaState{Video: false, Audio: false})

	res := r.JoinRoom("lobby", "a", "New")
	assert.Empty(t, res.Left)
	m, ok := r.Member("lobby", "a")
	require.True(t, ok)
	assert.Equal(t, "New", m.DisplayName)
	assert.True(t, m.Video)
	assert.Equal(t, []core.RoomInfo{{Name: "lobby", MemberCount: 1}}, r.List())
}

func TestLeaveIsIdempotentAndDeletesEmptyRooms(t *testing.T) {
	r := newTestRegistry()
	r.JoinRoom("lobby", "a", "")
	r.JoinRoom("lobby", "b", "")

	removed, remaining := r.Leave("lobby", "zzz")
	assert.False(t, removed)
	assert.True(t, remaining)
	assert.Equal(t, []core.RoomInfo{{Name: "lobby", MemberCount: 2}}, r.List())

	removed, remaining = r.Leave("nowhere", "a")
	assert.False(t, removed)
	assert.False(t, remaining)

	removed, remaining = r.Leave("lobby", "a")
	assert.True(t, removed)
	assert.True(t, remaining)

	removed, remaining = r.Leave("lobby", "a")
	assert.False(t, removed)
	assert.True(t, remaining)

	removed, remaining = r.Leave("lobby", "b")
	assert.True(t, removed)
	assert.False(t, remaining)
	assert.Empty(t, r.List())
}

func TestUpdateDisplayNameNeverCreatesMember(t *testing.T) {
	r := newTestRegistry()
	assert.False(t, r.UpdateDisplayName("lobby", "a", "Ghost"))
	assert.Empty(t, r.List())

	r.JoinRoom("lobby", "a", "Alice")
	assert.False(t, r.UpdateDisplayName("other", "a", "Ghost"))
	assert.True(t, r.UpdateDisplayName("lobby", "a", "Alicia"))
	m, _ := r.Member("lobby", "a")
	assert.Equal(t, "Alicia", m.DisplayName)
}

func TestUpdateMediaIsBestEffort(t *testing.T) {
	r := newTestRegistry()
	r.UpdateMedia("lobby", "a", domain.MediaState{Video: true})
	assert.Empty(t, r.List())

	r.JoinRoom("lobby", "a", "")
	r.UpdateMedia("lobby", "a", domain.MediaState{Video: false, Audio: true})
	m, _ := r.Member("lobby", "a")
	assert.False(t, m.Video)
	assert.True(t, m.Audio)
}

func TestRoomsContainingUnknownSession(t *testing.T) {
	r := newTestRegistry()
	r.JoinRoom("lobby", "a", "")
	assert.Empty(t, r.RoomsContaining("nobody"))
}

func TestJoinRepairsSessionFoundInSeveralRooms(t *testing.T) {
	r := newTestRegistry()
	r.JoinRoom("one", "a", "")
	r.JoinRoom("one", "b", "")
	// force an inconsistent state
	r.rooms["two"] = &room{name: "two", members: map[core.SessionID]*domain.Member{
		"a": domain.NewMember("a", "", time.Now()),
		"c": domain.NewMember("c", "", time.Now()),
	}}

	res := r.JoinRoom("three", "a", "")
	assert.Equal(t, []domain.RoomName{"one", "two"}, res.Left)
	assert.Equal(t, []domain.RoomName{"three"}, r.RoomsContaining("a"))
}

func TestRegistryConcurrentJoinLeave(t *testing.T) {
	r := newTestRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sid := core.SessionID(fmt.Sprintf("s%02d", i))
			room := domain.RoomName(fmt.Sprintf("room-%d", i%3))
			r.JoinRoom(room, sid, "")
			r.JoinRoom("shared", sid, "")
			if i%2 == 0 {
				r.Leave("shared", sid)
			}
		}(i)
	}
	wg.Wait()

	// only odd sessions remain, and only in the shared room
	assert.Equal(t, []core.RoomInfo{{Name: "shared", MemberCount: 25}}, r.List())
	for _, info := range r.List() {
		assert.Positive(t, info.MemberCount)
	}
}
