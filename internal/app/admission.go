package app

import (
	"github.com/dkeye/Party/internal/core"
	"github.com/dkeye/Party/internal/domain"
)

// AdmissionRequest is what a client asks for before its connection is upgraded.
type AdmissionRequest struct {
	Room      domain.RoomCode
	Identity  domain.Identity
	Preflight bool
}

// Admit validates req against the current registry state. It has no side
// effects: an unknown room is fine for a real join since the join creates it.
func Admit(rooms *core.Registry, req AdmissionRequest) error {
	room, exists := rooms.Get(req.Room)
	if req.Preflight && !exists {
		return domain.ErrRoomNotFound
	}
	if req.Identity.IsHost() || !exists {
		return nil
	}
	// Outside the lobby the entry may be an offline player coming back.
	if _, taken := room.Player(req.Identity.Name()); taken && room.Status == domain.StatusLobby {
		return domain.ErrNameTaken
	}
	return nil
}
