package signal

import (
	"errors"

	"github.com/dkeye/Meet/internal/core"
	"github.com/rs/zerolog/log"
)

var errRateLimited = errors.New("rate limited")

func (ctl *SignalWSController) allow(sid core.SessionID) bool {
	return ctl.Limiter == nil || ctl.Limiter.Allow(sid)
}

func (ctl *SignalWSController) handleJoin(sid core.SessionID, raw []byte) error {
	var p core.JoinRoom
	if err := decodePayload(raw, &p); err != nil {
		return err
	}
	if !ctl.allow(sid) {
		return errRateLimited
	}
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room", p.Room).Msg("join")
	return ctl.Orch.Join(sid, p)
}

// handleLeave leaves the room; the connection itself stays open.
func (ctl *SignalWSController) handleLeave(sid core.SessionID, raw []byte) error {
	var p core.LeaveRoom
	if err := decodePayload(raw, &p); err != nil {
		return err
	}
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room", p.Room).Msg("leave")
	return ctl.Orch.Leave(sid, p)
}

func (ctl *SignalWSController) handleChat(sid core.SessionID, raw []byte) error {
	var p core.Chat
	if err := decodePayload(raw, &p); err != nil {
		return err
	}
	if !ctl.allow(sid) {
		return errRateLimited
	}
	return ctl.Orch.Chat(sid, p)
}
