package app

import (
	"fmt"

	"github.com/dkeye/Party/internal/core"
	"github.com/dkeye/Party/internal/domain"
)

type BackpressureAction int

const (
	DropFrame BackpressureAction = iota
	KickMember
)

type Policy interface {
	OnBackPressure(room domain.RoomCode, member core.SignalConnection) BackpressureAction
}

// SimplePolicy applies the same action to every slow member.
type SimplePolicy struct {
	Action BackpressureAction
}

func (p SimplePolicy) OnBackPressure(domain.RoomCode, core.SignalConnection) BackpressureAction {
	return p.Action
}

// ParseBackpressure maps the configuration value to an action.
func ParseBackpressure(s string) (BackpressureAction, error) {
	switch s {
	case "", "drop":
		return DropFrame, nil
	case "kick":
		return KickMember, nil
	}
	return DropFrame, fmt.Errorf("unknown backpressure action %q", s)
}
