package domain

import (
	"github.com/pkg/errors"
)

var (
	ErrConnectionClosed = errors.New("connection closed")
	ErrEmptyMessage     = errors.New("empty message")
)

const (
	ClientUuidHeader = "X-Client-Key"
)

type messageType string

const (
	Welcome = messageType("welcome")
	State   = messageType("state")
	Pointer = messageType("pointer")
)

type Message struct {
	Type    messageType `json:"type"`
	Payload any         `json:"payload"`
}

type WelcomePayload struct {
	SessionID string   `json:"session_id"`
	Seat      int      `json:"seat"`
	Snapshot  Snapshot `json:"snapshot"`
}

type StatePayload struct {
	Snapshot Snapshot `json:"snapshot"`
}

type PointerPayload struct {
	Input Input `json:"input"`
}

type Client interface {
	WriteMessage(msg Message) error
	ReadMessage() (Message, error)
	Uuid() string
	Close()
}
