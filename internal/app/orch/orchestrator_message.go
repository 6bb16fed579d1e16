package orch

import (
	"encoding/json"

	"github.com/dkeye/Party/internal/core"
	"github.com/dkeye/Party/internal/domain"
	"github.com/rs/zerolog/log"
)

type delivery int

const (
	toOthers delivery = iota
	toAll
	toHost
)

type senderRole int

const (
	anySender senderRole = iota
	playerSender
	hostSender
)

type route struct {
	deliver delivery
	sender  senderRole
}

func (r route) allows(id domain.Identity) bool {
	switch r.sender {
	case playerSender:
		return !id.IsHost()
	case hostSender:
		return id.IsHost()
	}
	return true
}

var routes = map[domain.MessageType]route{
	domain.MsgRequestOnAvatarUpdate: {deliver: toOthers},

	domain.MsgWelcome:  {deliver: toAll},
	domain.MsgPlaying:  {deliver: toAll},
	domain.MsgFinished: {deliver: toAll},

	domain.MsgUpdateCommonProperties: {deliver: toAll},

	domain.MsgUpdateGamePropertiesForHost:        {deliver: toHost, sender: playerSender},
	domain.MsgUpdateSecretGamePropertiesForHost:  {deliver: toHost, sender: playerSender},
	domain.MsgUpdateSpecialGamePropertiesForHost: {deliver: toHost, sender: playerSender},

	domain.MsgShowNextGameToggle:            {deliver: toOthers, sender: hostSender},
	domain.MsgShowFinalScoreToggle:          {deliver: toOthers, sender: hostSender},
	domain.MsgUpdateGamePropertiesForPlayer: {deliver: toOthers, sender: hostSender},
}

type envelope struct {
	Type domain.MessageType `json:"type"`
}

// OnMessage routes one inbound text payload. The payload is relayed as
// received; only its type tag is inspected.
func (o *Orchestrator) OnMessage(s core.MemberSession, data core.Frame) {
	if string(data) == domain.PingPayload {
		if err := o.Groups.SendDirect(s.Signal, core.Frame(domain.PongPayload)); err != nil {
			log.Debug().Err(err).Str("module", "orch").Str("conn", string(s.Signal.ID())).Msg("pong not sent")
		}
		return
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Debug().Err(err).Str("module", "orch").Str("room", string(s.Room)).Msg("malformed payload dropped")
		return
	}
	rt, ok := routes[env.Type]
	if !ok {
		log.Debug().Str("module", "orch").Str("room", string(s.Room)).Str("type", string(env.Type)).Msg("unknown message type dropped")
		return
	}
	if o.StrictRoles && !rt.allows(s.Identity) {
		log.Warn().Str("module", "orch").Str("room", string(s.Room)).Str("member", s.Identity.String()).Str("type", string(env.Type)).Msg("message from wrong role dropped")
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	room, ok := o.Rooms.Get(s.Room)
	if !ok {
		return
	}
	if status, ok := env.Type.Transition(); ok {
		room.Status = status
		log.Info().Str("module", "orch").Str("room", string(s.Room)).Str("status", string(status)).Str("member", s.Identity.String()).Msg("status changed")
	}

	switch rt.deliver {
	case toOthers:
		o.publish(s.Room, data, s.Signal.ID())
	case toAll:
		o.publish(s.Room, data, "")
	case toHost:
		host := room.Host()
		if host == nil {
			log.Debug().Str("module", "orch").Str("room", string(s.Room)).Str("type", string(env.Type)).Msg("no host, message dropped")
			return
		}
		o.sendDirect(s.Room, host, data)
	}
}
