package notifications

import "encoding/json"

// Envelope is the frame written to websocket clients.
type Envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Encode marshals a frame of the given type.
func Encode(typ string, payload any) ([]byte, error) {
	return json.Marshal(Envelope{Type: typ, Payload: payload})
}

type errorPayload struct {
	Message string `json:"message"`
}

var pongFrame = []byte(`{"type":"pong"}`)

var droppedNotice = []byte(`{"type":"messages_dropped","payload":{"reason":"buffer_full"}}`)
