package core

import "github.com/dkeye/Party/internal/domain"

// Registry holds the live rooms keyed by normalized code.
// It is not safe for concurrent use; the orchestrator serializes access.
type Registry struct {
	rooms map[domain.RoomCode]*Room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[domain.RoomCode]*Room)}
}

func (rm *Registry) Get(code domain.RoomCode) (*Room, bool) {
	r, ok := rm.rooms[code]
	return r, ok
}

func (rm *Registry) GetOrCreate(code domain.RoomCode) (room *Room, created bool) {
	if r, ok := rm.rooms[code]; ok {
		return r, false
	}
	r := NewRoom(code)
	rm.rooms[code] = r
	return r, true
}

func (rm *Registry) Delete(code domain.RoomCode) {
	delete(rm.rooms, code)
}

func (rm *Registry) Len() int { return len(rm.rooms) }

// All returns the registry contents keyed by code. The rooms are shared,
// not copied.
func (rm *Registry) All() map[domain.RoomCode]*Room {
	out := make(map[domain.RoomCode]*Room, len(rm.rooms))
	for code, r := range rm.rooms {
		out[code] = r
	}
	return out
}
