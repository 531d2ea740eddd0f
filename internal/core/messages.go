package core

import (
	"encoding/json"

	"github.com/dkeye/Meet/internal/domain"
	"github.com/pion/webrtc/v4"
)

// MessageType is the "type" field of every signaling envelope.
type MessageType string

const (
	TypeJoinRoom          MessageType = "join-room"
	TypeLeaveRoom         MessageType = "leave-room"
	TypeOffer             MessageType = "offer"
	TypeAnswer            MessageType = "answer"
	TypeICECandidate      MessageType = "ice-candidate"
	TypeChatMessage       MessageType = "chat-message"
	TypeUserMediaUpdate   MessageType = "user-media-update"
	TypeUpdateDisplayName MessageType = "update-display-name"
	TypePing              MessageType = "ping"
	TypeWhoAmI            MessageType = "whoami"

	TypeWelcome          MessageType = "welcome"
	TypeRoomJoined       MessageType = "room-joined"
	TypeUserConnected    MessageType = "user-connected"
	TypeUserDisconnected MessageType = "user-disconnected"
	TypePong             MessageType = "pong"
	TypeError            MessageType = "error"
)

// Message is anything the relay sends to a connection.
type Message interface {
	Type() MessageType
}

type Welcome struct {
	ID         SessionID          `json:"id"`
	ICEServers []webrtc.ICEServer `json:"iceServers"`
}

func (Welcome) Type() MessageType { return TypeWelcome }

// RoomJoined is sent to the joining connection only. Members never contains
// the joiner itself; Self carries the joiner's own view.
type RoomJoined struct {
	Room    domain.RoomName `json:"room"`
	Members []MemberDTO     `json:"members"`
	Self    MemberDTO       `json:"self"`
}

func (RoomJoined) Type() MessageType { return TypeRoomJoined }

type UserConnected struct {
	ID          SessionID `json:"id"`
	DisplayName string    `json:"displayName"`
}

func (UserConnected) Type() MessageType { return TypeUserConnected }

type UserDisconnected struct {
	ID SessionID `json:"id"`
}

func (UserDisconnected) Type() MessageType { return TypeUserDisconnected }

// Relayed is an offer, answer or ice-candidate on its way to the target.
type Relayed struct {
	Kind    MessageType     `json:"-"`
	Payload json.RawMessage `json:"payload"`
	From    SessionID       `json:"from"`
}

func (r Relayed) Type() MessageType { return r.Kind }

type ChatBroadcast struct {
	Message    string    `json:"message"`
	From       SessionID `json:"from"`
	SenderName string    `json:"senderName"`
}

func (ChatBroadcast) Type() MessageType { return TypeChatMessage }

type MediaBroadcast struct {
	ID    SessionID `json:"id"`
	Video bool      `json:"video"`
	Audio bool      `json:"audio"`
}

func (MediaBroadcast) Type() MessageType { return TypeUserMediaUpdate }

type DisplayNameBroadcast struct {
	ID          SessionID `json:"id"`
	DisplayName string    `json:"displayName"`
}

func (DisplayNameBroadcast) Type() MessageType { return TypeUpdateDisplayName }

type Pong struct{}

func (Pong) Type() MessageType { return TypePong }

type WhoAmI struct {
	ID    SessionID         `json:"id"`
	Rooms []domain.RoomName `json:"rooms"`
}

func (WhoAmI) Type() MessageType { return TypeWhoAmI }

type Error struct {
	Message string `json:"message"`
}

func (Error) Type() MessageType { return TypeError }
