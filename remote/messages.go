// Package remote serves live form sessions over HTTP and WebSocket. A
// session binds one remote-facing control per attribute, so edits coming
// off the wire flow through the same binding engine as local controls,
// and model changes made elsewhere are pushed back to every connected
// client.
package remote

import "encoding/json"

// ── Client → Server messages ────────────────────────────────────────────────

// ClientMessage is the envelope for all client-to-server WebSocket messages.
type ClientMessage struct {
	Type string          `json:"type"` // "set", "invoke", "ping"
	ID   string          `json:"id"`   // Client-assigned request ID
	Data json.RawMessage `json:"data,omitempty"`
}

// SetData is the payload for "set" messages. Attr is an attribute name,
// or "action.arg" for an action argument.
type SetData struct {
	Attr  string          `json:"attr"`
	Value json.RawMessage `json:"value"`
}

// InvokeData is the payload for "invoke" messages.
type InvokeData struct {
	Action string `json:"action"`
}

// ── Server → Client messages ────────────────────────────────────────────────

// ServerMessage is the envelope for all server-to-client WebSocket messages.
type ServerMessage struct {
	Type      string `json:"type"`                 // "session", "init", "changed", "done", "error", "pong"
	RequestID string `json:"request_id,omitempty"` // Echoes client ID
	Data      any    `json:"data,omitempty"`
}

// SessionData carries session information.
type SessionData struct {
	SessionID string `json:"session_id"`
	Model     string `json:"model"`
}

// InitData carries the full encoded value snapshot sent on connect.
type InitData struct {
	Values map[string]any `json:"values"`
}

// ChangedData announces a single attribute change.
type ChangedData struct {
	Attr  string `json:"attr"`
	Value any    `json:"value"`
}

// ErrorData carries an error message.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
