package app

import (
	"sort"
	"sync"
	"time"

	"github.com/dkeye/Meet/internal/core"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/rs/zerolog/log"
)

type room struct {
	name    domain.RoomName
	members map[core.SessionID]*domain.Member
}

// Registry owns every room and member. A room exists only while it has at
// least one member, and a session is a member of at most one room.
type Registry struct {
	mu    sync.RWMutex
	rooms map[domain.RoomName]*room
	now   func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[domain.RoomName]*room),
		now:   time.Now,
	}
}

// JoinResult describes what JoinRoom changed.
type JoinResult struct {
	// Left lists rooms the session was removed from to make the join possible.
	Left []domain.RoomName
	// Members is the room as seen by the joiner, without the joiner itself.
	Members []core.MemberDTO
	Self    core.MemberDTO
}

// JoinRoom moves sid into name, creating the room when needed. An empty
// displayName falls back to domain.DefaultDisplayName. Joining the room the
// session is already in overwrites its member entry.
func (r *Registry) JoinRoom(name domain.RoomName, sid core.SessionID, displayName string) JoinResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	var res JoinResult
	for other := range r.rooms {
		if other == name {
			continue
		}
		if r.removeLocked(other, sid) {
			res.Left = append(res.Left, other)
		}
	}
	if len(res.Left) > 1 {
		log.Warn().Str("module", "app.registry").Str("sid", string(sid)).
			Int("rooms", len(res.Left)).Msg("session was in several rooms, removed from all")
	}
	sortRoomNames(res.Left)

	rm, ok := r.rooms[name]
	if !ok {
		rm = &room{name: name, members: make(map[core.SessionID]*domain.Member)}
		r.rooms[name] = rm
		log.Info().Str("module", "app.registry").Str("room", string(name)).Msg("room created")
	}
	m := domain.NewMember(string(sid), displayName, r.now())
	rm.members[sid] = m

	res.Self = core.NewMemberDTO(m)
	res.Members = snapshotLocked(rm, sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("room", string(name)).
		Str("display_name", m.DisplayName).Int("members", len(rm.members)).Msg("member joined")
	return res
}

// Leave removes sid from name. It reports whether sid was a member and
// whether the room still exists afterwards. Leaving a room the session is not
// in changes nothing.
func (r *Registry) Leave(name domain.RoomName, sid core.SessionID) (removed, remaining bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed = r.removeLocked(name, sid)
	_, remaining = r.rooms[name]
	return removed, remaining
}

func (r *Registry) removeLocked(name domain.RoomName, sid core.SessionID) bool {
	rm, ok := r.rooms[name]
	if !ok {
		return false
	}
	if _, ok := rm.members[sid]; !ok {
		return false
	}
	delete(rm.members, sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("room", string(name)).Msg("member removed")
	if len(rm.members) == 0 {
		delete(r.rooms, name)
		log.Info().Str("module", "app.registry").Str("room", string(name)).Msg("room deleted (empty)")
	}
	return true
}

// UpdateDisplayName renames an existing member. It never creates one.
func (r *Registry) UpdateDisplayName(name domain.RoomName, sid core.SessionID, displayName string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.memberLocked(name, sid)
	if !ok {
		return false
	}
	m.DisplayName = displayName
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("display_name", displayName).Msg("updated display name")
	return true
}

// UpdateMedia records the media state of a member if it exists.
func (r *Registry) UpdateMedia(name domain.RoomName, sid core.SessionID, media domain.MediaState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.memberLocked(name, sid); ok {
		m.Media = media
	}
}

// RoomsContaining sweeps every room for sid.
func (r *Registry) RoomsContaining(sid core.SessionID) []domain.RoomName {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.RoomName
	for name, rm := range r.rooms {
		if _, ok := rm.members[sid]; ok {
			out = append(out, name)
		}
	}
	sortRoomNames(out)
	return out
}

// Recipients returns every member of name except exclude.
func (r *Registry) Recipients(name domain.RoomName, exclude core.SessionID) []core.SessionID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rm, ok := r.rooms[name]
	if !ok {
		return nil
	}
	out := make([]core.SessionID, 0, len(rm.members))
	for sid := range rm.members {
		if sid != exclude {
			out = append(out, sid)
		}
	}
	return out
}

func (r *Registry) IsMember(name domain.RoomName, sid core.SessionID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.memberLocked(name, sid)
	return ok
}

func (r *Registry) Member(name domain.RoomName, sid core.SessionID) (core.MemberDTO, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.memberLocked(name, sid)
	if !ok {
		return core.MemberDTO{}, false
	}
	return core.NewMemberDTO(m), true
}

// Snapshot returns all members of name, ordered by join time.
func (r *Registry) Snapshot(name domain.RoomName) (core.RoomSnapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rm, ok := r.rooms[name]
	if !ok {
		return core.RoomSnapshot{}, false
	}
	return core.RoomSnapshot{Name: name, Members: snapshotLocked(rm, "")}, true
}

func (r *Registry) List() []core.RoomInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.RoomInfo, 0, len(r.rooms))
	for name, rm := range r.rooms {
		out = append(out, core.RoomInfo{Name: name, MemberCount: len(rm.members)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *Registry) memberLocked(name domain.RoomName, sid core.SessionID) (*domain.Member, bool) {
	rm, ok := r.rooms[name]
	if !ok {
		return nil, false
	}
	m, ok := rm.members[sid]
	return m, ok
}

func snapshotLocked(rm *room, exclude core.SessionID) []core.MemberDTO {
	out := make([]core.MemberDTO, 0, len(rm.members))
	for sid, m := range rm.members {
		if sid == exclude {
			continue
		}
		out = append(out, core.NewMemberDTO(m))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].JoinedAt.Equal(out[j].JoinedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].JoinedAt.Before(out[j].JoinedAt)
	})
	return out
}

func sortRoomNames(names []domain.RoomName) {
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
}
