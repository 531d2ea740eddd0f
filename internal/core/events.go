package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dkeye/Meet/internal/domain"
)

const MaxChatMessageLen = 4096

var (
	ErrUnknownSignal   = errors.New("unknown signal kind")
	ErrMissingTarget   = errors.New("missing target")
	ErrMissingPayload  = errors.New("missing payload")
	ErrEmptyMessage    = errors.New("empty chat message")
	ErrMessageTooLong  = errors.New("chat message too long")
	ErrMissingRoomName = errors.New("missing room")
)

// Inbound events as decoded from a connection. Validate reports a malformed
// event without touching any state.

type JoinRoom struct {
	Room        string `json:"room"`
	DisplayName string `json:"displayName,omitempty"`
}

// Validate returns the room name and the display name to store. An empty
// display name is returned as "" so the registry applies the default.
func (e JoinRoom) Validate() (domain.RoomName, string, error) {
	room, err := parseRoom(e.Room)
	if err != nil {
		return "", "", err
	}
	name, err := domain.NormalizeDisplayName(e.DisplayName)
	switch {
	case errors.Is(err, domain.ErrDisplayNameEmpty):
		return room, "", nil
	case err != nil:
		return "", "", err
	}
	return room, name, nil
}

type LeaveRoom struct {
	Room string `json:"room"`
}

func (e LeaveRoom) Validate() (domain.RoomName, error) {
	return parseRoom(e.Room)
}

// Signal carries an opaque offer, answer or ice-candidate payload for one
// target connection. Room is informational only.
type Signal struct {
	Kind    MessageType     `json:"-"`
	Payload json.RawMessage `json:"payload"`
	To      SessionID       `json:"to"`
	Room    string          `json:"room,omitempty"`
}

func (e Signal) Validate() error {
	switch e.Kind {
	case TypeOffer, TypeAnswer, TypeICECandidate:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSignal, e.Kind)
	}
	if strings.TrimSpace(string(e.To)) == "" {
		return ErrMissingTarget
	}
	p := bytes.TrimSpace(e.Payload)
	if len(p) == 0 || bytes.Equal(p, []byte("null")) {
		return ErrMissingPayload
	}
	return nil
}

type Chat struct {
	Room       string `json:"room"`
	Message    string `json:"message"`
	SenderName string `json:"senderName"`
}

// Validate returns the room and the sender name to forward. An empty sender
// name is returned as "" so the router can use the registered one.
func (e Chat) Validate() (domain.RoomName, string, error) {
	room, err := parseRoom(e.Room)
	if err != nil {
		return "", "", err
	}
	if strings.TrimSpace(e.Message) == "" {
		return "", "", ErrEmptyMessage
	}
	if utf8.RuneCountInString(e.Message) > MaxChatMessageLen {
		return "", "", ErrMessageTooLong
	}
	name, err := domain.NormalizeDisplayName(e.SenderName)
	switch {
	case errors.Is(err, domain.ErrDisplayNameEmpty):
		return room, "", nil
	case err != nil:
		return "", "", err
	}
	return room, name, nil
}

type MediaUpdate struct {
	Room  string `json:"room"`
	Video bool   `json:"video"`
	Audio bool   `json:"audio"`
}

func (e MediaUpdate) Validate() (domain.RoomName, error) {
	return parseRoom(e.Room)
}

type DisplayNameUpdate struct {
	Room        string `json:"room"`
	DisplayName string `json:"displayName"`
}

func (e DisplayNameUpdate) Validate() (domain.RoomName, string, error) {
	room, err := parseRoom(e.Room)
	if err != nil {
		return "", "", err
	}
	name, err := domain.NormalizeDisplayName(e.DisplayName)
	if err != nil {
		return "", "", err
	}
	return room, name, nil
}

func parseRoom(raw string) (domain.RoomName, error) {
	room, err := domain.ParseRoomName(raw)
	if errors.Is(err, domain.ErrRoomNameEmpty) {
		return "", ErrMissingRoomName
	}
	return room, err
}
