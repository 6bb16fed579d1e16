package core

import "github.com/dkeye/Party/internal/domain"

// MemberSession binds the identity captured at admission to its transport
// endpoint. It is handed to every presence and routing call for the
// lifetime of the connection.
type MemberSession struct {
	Room     domain.RoomCode
	Identity domain.Identity
	Signal   SignalConnection
}

// PublishResult reports delivery stats/backpressure to the orchestrator.
type PublishResult struct {
	SendTo  int
	Dropped []SignalConnection
}
