package signal

import "github.com/dkeye/Meet/internal/core"

// handleRelay forwards offer, answer and ice-candidate payloads. The payload
// field is kept as raw bytes and never inspected.
func (ctl *SignalWSController) handleRelay(sid core.SessionID, kind core.MessageType, raw []byte) error {
	var p core.Signal
	if err := decodePayload(raw, &p); err != nil {
		return err
	}
	p.Kind = kind
	return ctl.Orch.Relay(sid, p)
}
