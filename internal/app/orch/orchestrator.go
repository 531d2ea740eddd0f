// Package orch routes inbound signaling events to the room registry and fans
// the resulting messages out to the affected connections.
package orch

import (
	"errors"
	"sync"

	"github.com/dkeye/Meet/internal/app"
	"github.com/dkeye/Meet/internal/core"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/rs/zerolog/log"
)

// Orchestrator holds no membership state of its own. Every recipient set is
// read from the Registry when the message is dispatched.
//
// mu is held across a room change and the messages it produces, so presence
// messages reach every connection in registry order. Sends never block while
// it is held.
type Orchestrator struct {
	Registry *app.Registry
	Sessions *app.Sessions
	Policy   app.Policy

	mu sync.Mutex
}

func New(reg *app.Registry, sessions *app.Sessions, policy app.Policy) *Orchestrator {
	return &Orchestrator{Registry: reg, Sessions: sessions, Policy: policy}
}

// sendTo delivers msg to one session. A missing session is not an error.
func (o *Orchestrator) sendTo(sid core.SessionID, msg core.Message) bool {
	conn, ok := o.Sessions.Get(sid)
	if !ok {
		log.Debug().Str("module", "orch").Str("sid", string(sid)).Str("type", string(msg.Type())).Msg("no session, message dropped")
		return false
	}
	err := conn.TrySend(msg)
	if err == nil {
		return true
	}
	if errors.Is(err, core.ErrBackpressure) && o.Policy != nil {
		action := o.Policy.OnBackPressure(sid, msg)
		log.Warn().Str("module", "orch").Str("sid", string(sid)).Str("type", string(msg.Type())).
			Str("action", action.String()).Msg("slow consumer")
		switch action {
		case app.KickMember:
			o.Sessions.Cancel(sid)
		case app.DropFrame, app.NoAction:
		}
		return false
	}
	log.Debug().Err(err).Str("module", "orch").Str("sid", string(sid)).Str("type", string(msg.Type())).Msg("send failed")
	return false
}

// broadcastRoom sends msg to every current member of room except from.
func (o *Orchestrator) broadcastRoom(room domain.RoomName, from core.SessionID, msg core.Message) int {
	recipients := o.Registry.Recipients(room, from)
	sent := 0
	for _, sid := range recipients {
		if o.sendTo(sid, msg) {
			sent++
		}
	}
	log.Debug().Str("module", "orch").Str("room", string(room)).Str("from", string(from)).
		Str("type", string(msg.Type())).Int("sent_to", sent).Int("recipients", len(recipients)).Msg("broadcast result")
	return sent
}

// Send delivers a direct reply produced outside the router, such as pong.
func (o *Orchestrator) Send(sid core.SessionID, msg core.Message) bool {
	return o.sendTo(sid, msg)
}

func (o *Orchestrator) WhoAmI(sid core.SessionID) core.WhoAmI {
	rooms := o.Registry.RoomsContaining(sid)
	if rooms == nil {
		rooms = []domain.RoomName{}
	}
	return core.WhoAmI{ID: sid, Rooms: rooms}
}
