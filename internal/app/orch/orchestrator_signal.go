package orch

import (
	"fmt"

	"github.com/dkeye/Meet/internal/core"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/rs/zerolog/log"
)

// Relay forwards an offer, answer or ice-candidate to its target untouched.
// An unknown target is dropped without telling the sender.
func (o *Orchestrator) Relay(sid core.SessionID, ev core.Signal) error {
	if err := ev.Validate(); err != nil {
		return fmt.Errorf("%s: %w", ev.Kind, err)
	}
	if ev.To == sid {
		log.Debug().Str("module", "orch").Str("sid", string(sid)).Str("type", string(ev.Kind)).Msg("signal addressed to self, dropped")
		return nil
	}
	log.Debug().Str("module", "orch").Str("from", string(sid)).Str("to", string(ev.To)).
		Str("room", ev.Room).Str("type", string(ev.Kind)).Msg("relay")
	o.sendTo(ev.To, core.Relayed{Kind: ev.Kind, Payload: ev.Payload, From: sid})
	return nil
}

// Chat broadcasts a text message to the sender's room mates. When the client
// omits its name the registered display name is used.
func (o *Orchestrator) Chat(sid core.SessionID, ev core.Chat) error {
	room, name, err := ev.Validate()
	if err != nil {
		return fmt.Errorf("%s: %w", core.TypeChatMessage, err)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	self, ok := o.Registry.Member(room, sid)
	if !ok {
		log.Debug().Str("module", "orch").Str("sid", string(sid)).Str("room", string(room)).Msg("chat: not a member")
		return nil
	}
	if name == "" {
		name = self.DisplayName
	}
	o.broadcastRoom(room, sid, core.ChatBroadcast{Message: ev.Message, From: sid, SenderName: name})
	return nil
}

// UpdateMedia records the new media state if the sender is a member and
// broadcasts it either way.
func (o *Orchestrator) UpdateMedia(sid core.SessionID, ev core.MediaUpdate) error {
	room, err := ev.Validate()
	if err != nil {
		return fmt.Errorf("%s: %w", core.TypeUserMediaUpdate, err)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Registry.UpdateMedia(room, sid, domain.MediaState{Video: ev.Video, Audio: ev.Audio})
	o.broadcastRoom(room, sid, core.MediaBroadcast{ID: sid, Video: ev.Video, Audio: ev.Audio})
	return nil
}

// Rename changes the sender's display name in its room and tells the others.
func (o *Orchestrator) Rename(sid core.SessionID, ev core.DisplayNameUpdate) error {
	room, name, err := ev.Validate()
	if err != nil {
		return fmt.Errorf("%s: %w", core.TypeUpdateDisplayName, err)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.Registry.UpdateDisplayName(room, sid, name) {
		log.Debug().Str("module", "orch").Str("sid", string(sid)).Str("room", string(room)).Msg("rename: not a member")
		return nil
	}
	o.broadcastRoom(room, sid, core.DisplayNameBroadcast{ID: sid, DisplayName: name})
	return nil
}
