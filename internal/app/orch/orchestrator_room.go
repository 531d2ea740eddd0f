package orch

import (
	"fmt"

	"github.com/dkeye/Meet/internal/core"
	"github.com/rs/zerolog/log"
)

// Join moves sid into the requested room. Rooms the session had to leave are
// told about the departure before the new room hears about the arrival.
func (o *Orchestrator) Join(sid core.SessionID, ev core.JoinRoom) error {
	room, displayName, err := ev.Validate()
	if err != nil {
		return fmt.Errorf("%s: %w", core.TypeJoinRoom, err)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	res := o.Registry.JoinRoom(room, sid, displayName)
	for _, left := range res.Left {
		log.Info().Str("module", "orch").Str("sid", string(sid)).Str("from_room", string(left)).Msg("left previous room")
		o.broadcastRoom(left, sid, core.UserDisconnected{ID: sid})
	}

	o.sendTo(sid, core.RoomJoined{Room: room, Members: res.Members, Self: res.Self})
	o.broadcastRoom(room, sid, core.UserConnected{ID: sid, DisplayName: res.Self.DisplayName})
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(room)).Int("others", len(res.Members)).Msg("added to room")
	return nil
}

// Leave removes sid from the room. Leaving a room the session is not in does
// nothing.
func (o *Orchestrator) Leave(sid core.SessionID, ev core.LeaveRoom) error {
	room, err := ev.Validate()
	if err != nil {
		return fmt.Errorf("%s: %w", core.TypeLeaveRoom, err)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if removed, _ := o.Registry.Leave(room, sid); removed {
		o.broadcastRoom(room, sid, core.UserDisconnected{ID: sid})
	}
	return nil
}

// Disconnect removes sid from every room it is found in. It is safe to call
// for a session that never joined or was already cleaned up.
func (o *Orchestrator) Disconnect(sid core.SessionID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	rooms := o.Registry.RoomsContaining(sid)
	if len(rooms) > 1 {
		log.Warn().Str("module", "orch").Str("sid", string(sid)).Int("rooms", len(rooms)).Msg("disconnecting session found in several rooms")
	}
	for _, room := range rooms {
		if removed, _ := o.Registry.Leave(room, sid); removed {
			o.broadcastRoom(room, sid, core.UserDisconnected{ID: sid})
		}
	}
	log.Info().Str("module", "orch").Str("sid", string(sid)).Int("rooms", len(rooms)).Msg("disconnected")
}
