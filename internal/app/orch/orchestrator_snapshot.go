package orch

import (
	"encoding/json"

	"github.com/dkeye/Party/internal/core"
	"github.com/dkeye/Party/internal/domain"
	"github.com/rs/zerolog/log"
)

type snapshotMessage struct {
	Type domain.MessageType `json:"type"`
	Data *core.Room         `json:"data"`
}

// publishSnapshot sends the full room record to every member, the
// triggering one included. Must be called with o.mu held.
func (o *Orchestrator) publishSnapshot(room *core.Room) {
	data, err := json.Marshal(snapshotMessage{Type: domain.MsgUpdate, Data: room})
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Str("room", string(room.Code)).Msg("snapshot marshal")
		return
	}
	o.publish(room.Code, data, "")
}
