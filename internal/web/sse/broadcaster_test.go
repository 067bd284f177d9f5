package sse

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/teamdraft/internal/model"
	"github.com/mcoot/teamdraft/internal/testutil"
)

func TestWrapForOOBSwap(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		html     string
		expected string
	}{
		{
			name:     "simple content",
			id:       "board",
			html:     "<p>Hello</p>",
			expected: `<div id="board" hx-swap-oob="true"><p>Hello</p></div>`,
		},
		{
			name:     "empty content",
			id:       "wheel",
			html:     "",
			expected: `<div id="wheel" hx-swap-oob="true"></div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, WrapForOOBSwap(tt.id, tt.html))
		})
	}
}

type broadcasterFixture struct {
	broadcaster *Broadcaster
	stream      *Client
	socket      *Client
}

func newBroadcasterFixture(t *testing.T) broadcasterFixture {
	t.Helper()
	events := startHub(t)
	sockets := startHub(t)

	f := broadcasterFixture{
		broadcaster: NewBroadcaster(events, sockets, testutil.NopLogger()),
		stream:      NewClient(),
		socket:      NewClient(),
	}
	events.Register(f.stream)
	sockets.Register(f.socket)
	require.Eventually(t, func() bool {
		return events.ClientCount() == 1 && sockets.ClientCount() == 1
	}, time.Second, time.Millisecond)
	return f
}

func testSession() model.Session {
	return model.Session{
		Roster: []string{"A", "B"},
		Draft: model.DraftState{
			Status: model.DraftStatusSpinning,
			Teams:  model.Teams{Team1: []string{}, Team2: []string{}},
			Spin:   &model.SpinView{Pool: []string{"A", "B"}, SegmentWidth: 180, Highlight: "B"},
		},
		Toss:     model.TossState{Phase: model.TossPhaseIdle},
		Settings: model.Settings{MapCount: 3},
	}
}

func TestBroadcaster_PublishSendsJSONThenBoard(t *testing.T) {
	f := newBroadcasterFixture(t)

	ev := model.Event{
		Type:       model.EventPickResolved,
		DraftID:    "d1",
		Generation: 2,
		Payload:    model.PickResolvedPayload{Player: "B", Team: model.Team1, PickNumber: 1, Remaining: 1},
	}
	f.broadcaster.Publish([]model.Event{ev}, testSession())

	first := receive(t, f.stream)
	assert.True(t, strings.HasPrefix(first, "event: pick_resolved\n"))
	assert.Contains(t, first, `"player":"B"`)

	board := receive(t, f.stream)
	assert.True(t, strings.HasPrefix(board, "event: board\n"))
	assert.Contains(t, board, `id="board" hx-swap-oob="true"`)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(receive(t, f.socket)), &decoded))
	assert.Equal(t, "pick_resolved", decoded["type"])
	assert.Equal(t, "d1", decoded["draft_id"])
}

func TestBroadcaster_ProgressRefreshesWheelOnly(t *testing.T) {
	f := newBroadcasterFixture(t)

	ev := model.Event{Type: model.EventPickProgress, Payload: model.PickProgressPayload{Position: 10, Highlight: "B"}}
	f.broadcaster.Publish([]model.Event{ev}, testSession())

	assert.True(t, strings.HasPrefix(receive(t, f.stream), "event: pick_progress\n"))
	wheel := receive(t, f.stream)
	assert.True(t, strings.HasPrefix(wheel, "event: wheel\n"))
	assert.Contains(t, wheel, `id="wheel" hx-swap-oob="true"`)
	assert.Contains(t, wheel, "highlight")
}

func TestBroadcaster_PublishNothing(t *testing.T) {
	f := newBroadcasterFixture(t)

	f.broadcaster.Publish(nil, testSession())

	select {
	case msg := <-f.stream.Messages():
		t.Fatalf("unexpected message %q", msg)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestBroadcaster_InitialBoard(t *testing.T) {
	f := newBroadcasterFixture(t)

	frame := string(f.broadcaster.InitialBoard(context.Background(), testSession()))

	assert.True(t, strings.HasPrefix(frame, "event: board\n"))
	assert.Contains(t, frame, "segment")
}
