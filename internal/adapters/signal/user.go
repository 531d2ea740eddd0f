package signal

import (
	"github.com/dkeye/Meet/internal/core"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleRename(sid core.SessionID, raw []byte) error {
	var p core.DisplayNameUpdate
	if err := decodePayload(raw, &p); err != nil {
		return err
	}
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("name", p.DisplayName).Msg("rename")
	return ctl.Orch.Rename(sid, p)
}

func (ctl *SignalWSController) handleMediaUpdate(sid core.SessionID, raw []byte) error {
	var p core.MediaUpdate
	if err := decodePayload(raw, &p); err != nil {
		return err
	}
	return ctl.Orch.UpdateMedia(sid, p)
}

func (ctl *SignalWSController) handleWhoAmI(sid core.SessionID) {
	ctl.Orch.Send(sid, ctl.Orch.WhoAmI(sid))
}
