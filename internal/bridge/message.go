package bridge

import (
	"encoding/json"
	"fmt"
)

type MessageType string

const (
	TypeGetPageData    MessageType = "GET_PAGE_DATA"
	TypeHighlightIssue MessageType = "HIGHLIGHT_ISSUE"
)

// Message is one request or response on the bridge. A response carries the
// id of its request and either a payload or an error.
type Message struct {
	ID      string          `json:"id"`
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// RemoteError is an error reported by the page side.
type RemoteError struct {
	Type    MessageType
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("bridge: %s failed on page: %s", e.Type, e.Message)
}
