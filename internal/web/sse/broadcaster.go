package sse

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mcoot/teamdraft/internal/model"
)

// Broadcaster publishes session events to the SSE stream and, if set, to websocket clients
type Broadcaster struct {
	events   *Hub
	sockets  *Hub
	renderer *Renderer
	logger   *slog.Logger
}

// NewBroadcaster creates a Broadcaster. sockets may be nil.
func NewBroadcaster(events, sockets *Hub, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		events:   events,
		sockets:  sockets,
		renderer: NewRenderer(),
		logger:   logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Publish sends each event as JSON, then one HTML fragment for the batch.
// Progress-only batches refresh the wheel; anything else refreshes the whole board.
func (b *Broadcaster) Publish(events []model.Event, snapshot model.Session) {
	if len(events) == 0 {
		return
	}

	progressOnly := true
	for _, ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			b.logger.Error("failed to encode event",
				slog.String("type", string(ev.Type)),
				slog.Any("error", err))
			continue
		}
		b.events.BroadcastEvent(string(ev.Type), string(data))
		if b.sockets != nil {
			b.sockets.Broadcast(data)
		}
		if ev.Type != model.EventPickProgress {
			progressOnly = false
		}
	}

	ctx := context.Background()
	if progressOnly {
		html, err := b.renderer.RenderWheel(ctx, snapshot.Draft.Spin)
		if err != nil {
			b.logger.Error("failed to render wheel", slog.Any("error", err))
			return
		}
		b.events.BroadcastEvent(EventWheel, html)
		return
	}

	html, err := b.renderer.RenderBoard(ctx, snapshot)
	if err != nil {
		b.logger.Error("failed to render board", slog.Any("error", err))
		return
	}
	b.events.BroadcastEvent(EventBoard, html)
}

// InitialBoard returns the SSE frame a new subscriber gets before live events
func (b *Broadcaster) InitialBoard(ctx context.Context, snapshot model.Session) []byte {
	html, err := b.renderer.RenderBoard(ctx, snapshot)
	if err != nil {
		b.logger.Error("failed to render board", slog.Any("error", err))
		return nil
	}
	return formatSSEMessage(EventBoard, html)
}
