// Package orch drives room presence and message routing. Every event is
// handled under one mutex, so handlers see the registry as if dispatch were
// single-threaded.
package orch

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/dkeye/Party/internal/app"
	"github.com/dkeye/Party/internal/core"
	"github.com/dkeye/Party/internal/domain"
	"github.com/rs/zerolog/log"
)

type Orchestrator struct {
	Rooms  *core.Registry
	Groups *app.Groups
	Policy app.Policy

	// StrictRoles drops messages whose sender does not hold the role the
	// message type is meant for. Off by default.
	StrictRoles bool

	mu sync.Mutex
}

func New(policy app.Policy, strictRoles bool) *Orchestrator {
	return &Orchestrator{
		Rooms:       core.NewRegistry(),
		Groups:      app.NewGroups(),
		Policy:      policy,
		StrictRoles: strictRoles,
	}
}

// Admit runs the admission check for a connection that has not been
// upgraded yet.
func (o *Orchestrator) Admit(req app.AdmissionRequest) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return app.Admit(o.Rooms, req)
}

// Stats renders the whole registry for the diagnostic endpoint.
func (o *Orchestrator) Stats() ([]byte, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return json.MarshalIndent(o.Rooms.All(), "", "    ")
}

func (o *Orchestrator) RoomCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.Rooms.Len()
}

// publish must be called with o.mu held.
func (o *Orchestrator) publish(code domain.RoomCode, data core.Frame, exclude core.ConnID) {
	res := o.Groups.Publish(code, data, exclude)
	o.onDropped(code, res.Dropped...)
}

// sendDirect must be called with o.mu held.
func (o *Orchestrator) sendDirect(code domain.RoomCode, conn core.SignalConnection, data core.Frame) {
	err := o.Groups.SendDirect(conn, data)
	switch {
	case err == nil:
	case errors.Is(err, core.ErrBackpressure):
		o.onDropped(code, conn)
	default:
		log.Debug().Err(err).Str("module", "orch").Str("room", string(code)).Str("conn", string(conn.ID())).Msg("direct send failed")
	}
}

func (o *Orchestrator) onDropped(code domain.RoomCode, slow ...core.SignalConnection) {
	if o.Policy == nil {
		return
	}
	for _, m := range slow {
		switch o.Policy.OnBackPressure(code, m) {
		case app.KickMember:
			log.Warn().Str("module", "orch").Str("room", string(code)).Str("conn", string(m.ID())).Msg("kicking slow member")
			// The transport reports the close back through OnClose.
			m.Close()
		case app.DropFrame:
			log.Debug().Str("module", "orch").Str("room", string(code)).Str("conn", string(m.ID())).Msg("frame dropped")
		}
	}
}
