package app

import "github.com/dkeye/Meet/internal/core"

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	KickMember
	DropFrame
)

func (a BackpressureAction) String() string {
	switch a {
	case KickMember:
		return "kick"
	case DropFrame:
		return "drop"
	default:
		return "none"
	}
}

// Policy decides what to do with a connection whose outbound queue is full.
type Policy interface {
	OnBackPressure(sid core.SessionID, msg core.Message) BackpressureAction
}

// SimplePolicy kicks any slow consumer.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(core.SessionID, core.Message) BackpressureAction {
	return KickMember
}

// LenientPolicy drops the message and keeps the connection.
type LenientPolicy struct{}

func (LenientPolicy) OnBackPressure(core.SessionID, core.Message) BackpressureAction {
	return DropFrame
}

// PolicyByName maps a config value to a Policy. Unknown names yield SimplePolicy.
func PolicyByName(name string) Policy {
	switch name {
	case "drop":
		return LenientPolicy{}
	default:
		return SimplePolicy{}
	}
}
