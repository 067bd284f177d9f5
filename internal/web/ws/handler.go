// Package ws serves the session over a websocket: events out, commands in.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"github.com/mcoot/teamdraft/internal/model"
	"github.com/mcoot/teamdraft/internal/web/sse"
)

const writeTimeout = 3 * time.Second

// Session is the part of the session controller the socket can drive
type Session interface {
	Snapshot() model.Session
	Draw(ctx context.Context, mode model.DrawMode) (model.DraftState, error)
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	CallToss(ctx context.Context, face model.CoinFace) (model.TossState, error)
	ChooseSide(ctx context.Context, side model.Side) (model.TossState, error)
}

// Command types accepted from clients
const (
	CommandDraw   = "draw"
	CommandPause  = "pause"
	CommandResume = "resume"
	CommandCall   = "call"
	CommandChoose = "choose"
)

// ClientMessage is a command sent by a client
type ClientMessage struct {
	Type string `json:"type"`
	Mode string `json:"mode,omitempty"`
	Call string `json:"call,omitempty"`
	Side string `json:"side,omitempty"`
}

// ServerMessage is a non-event frame sent to a client
type ServerMessage struct {
	Type    string         `json:"type"`
	Session *model.Session `json:"session,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// Handler upgrades the request and relays events from hub until either side disconnects
type Handler struct {
	session Session
	hub     *sse.Hub
	logger  *slog.Logger
}

// NewHandler creates a websocket Handler
func NewHandler(session Session, hub *sse.Hub, logger *slog.Logger) *Handler {
	return &Handler{
		session: session,
		hub:     hub,
		logger:  logger.With(slog.String("component", "ws")),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket accept failed", slog.Any("error", err))
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	client := sse.NewClient()
	if !h.hub.Register(client) {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}
	defer h.hub.Unregister(client)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	snapshot := h.session.Snapshot()
	if err := writeJSON(ctx, conn, ServerMessage{Type: "snapshot", Session: &snapshot}); err != nil {
		return
	}

	// Writer goroutine
	go func() {
		defer cancel()
		for {
			select {
			case msg, ok := <-client.Messages():
				if !ok {
					conn.Close(websocket.StatusGoingAway, "stream closed")
					return
				}
				wctx, wcancel := context.WithTimeout(ctx, writeTimeout)
				err := conn.Write(wctx, websocket.MessageText, msg)
				wcancel()
				if err != nil {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	// Reader loop
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			default:
				if !errors.Is(err, context.Canceled) {
					h.logger.Debug("websocket read ended", slog.String("client_id", client.ID()), slog.Any("error", err))
				}
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			_ = writeJSON(ctx, conn, ServerMessage{Type: "error", Error: "bad json"})
			continue
		}

		if err := h.dispatch(ctx, msg); err != nil {
			_ = writeJSON(ctx, conn, ServerMessage{Type: "error", Error: err.Error()})
		}
	}
}

// errUnknownCommand is reported to clients for unrecognised message types
var errUnknownCommand = errors.New("unknown command")

func (h *Handler) dispatch(ctx context.Context, msg ClientMessage) error {
	switch msg.Type {
	case CommandDraw:
		mode, err := model.ParseDrawMode(msg.Mode)
		if err != nil {
			return err
		}
		_, err = h.session.Draw(ctx, mode)
		return err
	case CommandPause:
		return h.session.Pause(ctx)
	case CommandResume:
		return h.session.Resume(ctx)
	case CommandCall:
		face, err := model.ParseCoinFace(msg.Call)
		if err != nil {
			return err
		}
		_, err = h.session.CallToss(ctx, face)
		return err
	case CommandChoose:
		side, err := model.ParseSide(msg.Side)
		if err != nil {
			return err
		}
		_, err = h.session.ChooseSide(ctx, side)
		return err
	}
	return errUnknownCommand
}

func writeJSON(ctx context.Context, conn *websocket.Conn, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(wctx, websocket.MessageText, payload)
}
