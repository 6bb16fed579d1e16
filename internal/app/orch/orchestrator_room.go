package orch

import (
	"github.com/dkeye/Party/internal/core"
	"github.com/dkeye/Party/internal/domain"
	"github.com/rs/zerolog/log"
)

// OnOpen registers a freshly upgraded connection in its room.
func (o *Orchestrator) OnOpen(s core.MemberSession) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.Groups.Subscribe(s.Room, s.Signal)

	room, created := o.Rooms.GetOrCreate(s.Room)
	if created {
		log.Info().Str("module", "orch").Str("room", string(s.Room)).Msg("room created")
	}

	if s.Identity.IsHost() {
		// A second host silently takes over.
		room.SetHost(s.Signal)
	} else {
		room.UpsertPlayer(s.Identity.Name(), s.Signal)
	}
	log.Info().Str("module", "orch").Str("room", string(s.Room)).Str("member", s.Identity.String()).Str("conn", string(s.Signal.ID())).Msg("joined")

	o.publishSnapshot(room)
}

// OnClose releases a connection reported closed by the transport.
func (o *Orchestrator) OnClose(s core.MemberSession) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.Groups.Unsubscribe(s.Room, s.Signal)

	room, ok := o.Rooms.Get(s.Room)
	if !ok {
		return
	}

	if s.Identity.IsHost() {
		room.ClearHost(s.Signal)
	} else if p, ok := room.Player(s.Identity.Name()); ok && p.Signal().ID() == s.Signal.ID() {
		// Before the game starts nobody can reconnect, so the name is freed.
		if room.Status == domain.StatusLobby {
			room.RemovePlayer(p.Name)
		} else {
			p.Status = domain.PlayerOffline
		}
	}
	log.Info().Str("module", "orch").Str("room", string(s.Room)).Str("member", s.Identity.String()).Str("conn", string(s.Signal.ID())).Msg("left")

	if room.Vacant() {
		o.Rooms.Delete(s.Room)
		log.Info().Str("module", "orch").Str("room", string(s.Room)).Msg("room deleted")
		return
	}
	o.publishSnapshot(room)
}
