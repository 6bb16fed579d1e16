package domain

import "strings"

type (
	RoomCode   string
	RoomStatus string
	RoomMode   string
)

const (
	StatusLobby    RoomStatus = "lobby"
	StatusWelcome  RoomStatus = "welcome"
	StatusPlaying  RoomStatus = "playing"
	StatusFinished RoomStatus = "finished"
)

// Mode is part of the room shape on the wire but nothing assigns it yet.
const (
	ModeLocal  RoomMode = "local"
	ModeRemote RoomMode = "remote"
)

// NormalizeRoomCode makes room codes case-insensitive.
func NormalizeRoomCode(raw string) RoomCode {
	return RoomCode(strings.ToLower(raw))
}
