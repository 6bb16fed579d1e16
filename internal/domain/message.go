package domain

type MessageType string

const (
	MsgRequestOnAvatarUpdate MessageType = "requestOnAvatarUpdate"

	MsgWelcome  MessageType = "welcome"
	MsgPlaying  MessageType = "playing"
	MsgFinished MessageType = "finished"

	MsgUpdateCommonProperties MessageType = "updateCommonProperties"

	MsgUpdateGamePropertiesForHost        MessageType = "updateGamePropertiesForHost"
	MsgUpdateSecretGamePropertiesForHost  MessageType = "updateSecretGamePropertiesForHost"
	MsgUpdateSpecialGamePropertiesForHost MessageType = "updateSpecialGamePropertiesForHost"

	MsgShowNextGameToggle            MessageType = "showNextGameToggle"
	MsgShowFinalScoreToggle          MessageType = "showFinalScoreToggle"
	MsgUpdateGamePropertiesForPlayer MessageType = "updateGamePropertiesForPlayer"

	MsgUpdate MessageType = "update"
)

// Keepalive sentinels exchanged as raw text, outside the JSON protocol.
const (
	PingPayload = "ping"
	PongPayload = "pong"
)

// Transition returns the status a transition tag moves the room to.
func (t MessageType) Transition() (RoomStatus, bool) {
	switch t {
	case MsgWelcome:
		return StatusWelcome, true
	case MsgPlaying:
		return StatusPlaying, true
	case MsgFinished:
		return StatusFinished, true
	}
	return "", false
}
