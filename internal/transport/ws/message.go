package ws

import (
	"encoding/json"
	"realitycheck/internal/model"
	"realitycheck/internal/service"

	"github.com/go-kratos/kratos/v2/errors"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Server message types
const (
	MsgAnalysisStarted MessageType = "analysis_started"
	MsgAnalysisResult  MessageType = "analysis_result"
	MsgError           MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func newMessage(t MessageType, payload interface{}) []byte {
	msg := Message{Type: t}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err == nil {
			msg.Payload = data
		}
	}
	out, _ := json.Marshal(msg)
	return out
}

func errorMessage(err error) []byte {
	e := errors.FromError(err)
	if e.Reason == "" {
		e = service.ErrGeneric
	}
	return newMessage(MsgError, model.ErrorResponse{Error: e.Message, Code: e.Reason})
}
