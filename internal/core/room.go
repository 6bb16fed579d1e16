package core

import (
	"encoding/json"

	"github.com/dkeye/Party/internal/domain"
)

type PlayerEntry struct {
	Name   string              `json:"name"`
	Status domain.PlayerStatus `json:"status"`
	conn   SignalConnection
}

func (p *PlayerEntry) Signal() SignalConnection { return p.conn }

// Room is the live state of one room. It never closes the connections it
// references.
type Room struct {
	Code    domain.RoomCode
	Status  domain.RoomStatus
	Mode    domain.RoomMode
	host    SignalConnection
	players map[string]*PlayerEntry
}

func NewRoom(code domain.RoomCode) *Room {
	return &Room{
		Code:    code,
		Status:  domain.StatusLobby,
		players: make(map[string]*PlayerEntry),
	}
}

func (r *Room) Host() SignalConnection { return r.host }

func (r *Room) SetHost(conn SignalConnection) { r.host = conn }

// ClearHost drops the host reference only if it still points at conn.
func (r *Room) ClearHost(conn SignalConnection) bool {
	if r.host == nil || r.host.ID() != conn.ID() {
		return false
	}
	r.host = nil
	return true
}

func (r *Room) HasHost() bool { return r.host != nil }

func (r *Room) Player(name string) (*PlayerEntry, bool) {
	p, ok := r.players[name]
	return p, ok
}

// UpsertPlayer registers name as online on conn, replacing any previous
// entry under the same name.
func (r *Room) UpsertPlayer(name string, conn SignalConnection) *PlayerEntry {
	p := &PlayerEntry{Name: name, Status: domain.PlayerOnline, conn: conn}
	r.players[name] = p
	return p
}

func (r *Room) RemovePlayer(name string) { delete(r.players, name) }

func (r *Room) PlayerCount() int { return len(r.players) }

// AllOffline is vacuously true for a room without players.
func (r *Room) AllOffline() bool {
	for _, p := range r.players {
		if p.Status != domain.PlayerOffline {
			return false
		}
	}
	return true
}

// Vacant reports whether the room should be dropped from the registry.
func (r *Room) Vacant() bool {
	return !r.HasHost() && r.AllOffline()
}

type roomRecord struct {
	Status  domain.RoomStatus       `json:"status"`
	Mode    domain.RoomMode         `json:"mode,omitempty"`
	Host    ConnID                  `json:"host,omitempty"`
	Players map[string]*PlayerEntry `json:"players"`
}

// MarshalJSON renders the record sent in snapshots and diagnostics.
// Connections are represented by their id only.
func (r *Room) MarshalJSON() ([]byte, error) {
	rec := roomRecord{
		Status:  r.Status,
		Mode:    r.Mode,
		Players: r.players,
	}
	if r.host != nil {
		rec.Host = r.host.ID()
	}
	return json.Marshal(rec)
}
