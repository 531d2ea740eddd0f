package signal

import "github.com/dkeye/Meet/internal/core"

func (ctl *SignalWSController) handlePing(sid core.SessionID) {
	ctl.Orch.Send(sid, core.Pong{})
}
