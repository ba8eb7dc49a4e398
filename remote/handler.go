package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"

	"github.com/propform/propform/serialize"
)

// Handler serves form schemas, documents, and live sync sessions for a
// set of models.
type Handler struct {
	models *ModelSet
}

// NewHandler creates a handler over the given model set.
func NewHandler(models *ModelSet) *Handler {
	return &Handler{models: models}
}

// RegisterRoutes mounts the form API under /api/forms.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/forms", func(r chi.Router) {
		r.Get("/models", h.listModels)
		r.Get("/{model}/schema", h.getSchema)
		r.Get("/{model}/doc", h.getDoc)
		r.Get("/{model}/ws", h.serveWS)
	})
}

func (h *Handler) listModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"models": h.models.Names()})
}

func (h *Handler) getSchema(w http.ResponseWriter, r *http.Request) {
	m, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, Schema(m.Name, m.Def))
}

// getDoc returns the model's current state as a document, in the same
// textual form the document store persists.
func (h *Handler) getDoc(w http.ResponseWriter, r *http.Request) {
	m, ok := h.lookup(w, r)
	if !ok {
		return
	}
	data, err := serialize.MarshalDocument(m.Def, m.Instance, serialize.Options{})
	if err != nil {
		log.Printf("forms: marshal %s: %v", m.Name, err)
	}
	if data == nil {
		writeError(w, http.StatusInternalServerError, "ENCODE_ERROR", "document could not be encoded")
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// serveWS upgrades to WebSocket and runs a sync session until the
// client disconnects.
func (h *Handler) serveWS(w http.ResponseWriter, r *http.Request) {
	m, ok := h.lookup(w, r)
	if !ok {
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Printf("forms: websocket accept: %v", err)
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	sess := NewSession(m, func(path string, encoded any) {
		h.send(ctx, conn, ServerMessage{
			Type: "changed",
			Data: ChangedData{Attr: path, Value: encoded},
		})
	})
	defer sess.Close()

	h.send(ctx, conn, ServerMessage{
		Type: "session",
		Data: SessionData{SessionID: sess.ID, Model: m.Name},
	})
	h.send(ctx, conn, ServerMessage{
		Type: "init",
		Data: InitData{Values: sess.Values()},
	})

	for {
		var msg ClientMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			if websocket.CloseStatus(err) != -1 {
				log.Printf("forms: connection closed: %v", websocket.CloseStatus(err))
			}
			return
		}

		switch msg.Type {
		case "set":
			h.handleSet(ctx, conn, sess, msg)
		case "invoke":
			h.handleInvoke(ctx, conn, sess, msg)
		case "ping":
			h.send(ctx, conn, ServerMessage{Type: "pong", RequestID: msg.ID})
		default:
			h.sendError(ctx, conn, msg.ID, "unknown_type", fmt.Sprintf("unknown message type: %s", msg.Type))
		}
	}
}

func (h *Handler) handleSet(ctx context.Context, conn *websocket.Conn, sess *Session, msg ClientMessage) {
	var data SetData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		h.sendError(ctx, conn, msg.ID, "invalid_data", "invalid set data")
		return
	}
	var raw any
	if err := json.Unmarshal(data.Value, &raw); err != nil {
		h.sendError(ctx, conn, msg.ID, "invalid_data", "invalid value")
		return
	}
	if err := sess.Set(data.Attr, raw); err != nil {
		h.sendError(ctx, conn, msg.ID, "set_error", err.Error())
	}
}

func (h *Handler) handleInvoke(ctx context.Context, conn *websocket.Conn, sess *Session, msg ClientMessage) {
	var data InvokeData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		h.sendError(ctx, conn, msg.ID, "invalid_data", "invalid invoke data")
		return
	}
	if err := sess.Invoke(data.Action); err != nil {
		h.sendError(ctx, conn, msg.ID, "invoke_error", err.Error())
		return
	}
	h.send(ctx, conn, ServerMessage{Type: "done", RequestID: msg.ID})
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*Model, bool) {
	name := chi.URLParam(r, "model")
	m, ok := h.models.Get(name)
	if !ok {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "unknown model: "+name)
		return nil, false
	}
	return m, true
}

func (h *Handler) send(ctx context.Context, conn *websocket.Conn, msg ServerMessage) {
	if err := wsjson.Write(ctx, conn, msg); err != nil {
		log.Printf("forms: write error: %v", err)
	}
}

func (h *Handler) sendError(ctx context.Context, conn *websocket.Conn, requestID, code, message string) {
	h.send(ctx, conn, ServerMessage{
		Type:      "error",
		RequestID: requestID,
		Data:      ErrorData{Code: code, Message: message},
	})
}
