package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/teamdraft/internal/model"
	"github.com/mcoot/teamdraft/internal/testutil"
	"github.com/mcoot/teamdraft/internal/web/sse"
)

type fakeSession struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeSession) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeSession) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeSession) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeSession) Snapshot() model.Session {
	return model.Session{Roster: []string{"A", "B"}, Draft: model.DraftState{Status: model.DraftStatusIdle}}
}

func (f *fakeSession) Draw(_ context.Context, mode model.DrawMode) (model.DraftState, error) {
	return model.DraftState{}, f.record("draw:" + string(mode))
}

func (f *fakeSession) Pause(context.Context) error { return f.record("pause") }

func (f *fakeSession) Resume(context.Context) error { return f.record("resume") }

func (f *fakeSession) CallToss(_ context.Context, face model.CoinFace) (model.TossState, error) {
	return model.TossState{}, f.record("call:" + string(face))
}

func (f *fakeSession) ChooseSide(_ context.Context, side model.Side) (model.TossState, error) {
	return model.TossState{}, f.record("choose:" + string(side))
}

type HandlerSuite struct {
	suite.Suite
	session *fakeSession
	hub     *sse.Hub
	server  *httptest.Server
	conn    *websocket.Conn
	ctx     context.Context
	cancel  context.CancelFunc
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.session = &fakeSession{}
	s.hub = sse.NewHub("ws", testutil.NopLogger())
	go s.hub.Run()
	s.server = httptest.NewServer(NewHandler(s.session, s.hub, testutil.NopLogger()))
	s.ctx, s.cancel = context.WithTimeout(context.Background(), 5*time.Second)

	url := "ws" + strings.TrimPrefix(s.server.URL, "http")
	conn, _, err := websocket.Dial(s.ctx, url, nil)
	s.Require().NoError(err)
	s.conn = conn
}

func (s *HandlerSuite) TearDownTest() {
	s.conn.Close(websocket.StatusNormalClosure, "")
	s.server.Close()
	s.hub.Close()
	s.cancel()
}

func (s *HandlerSuite) read() map[string]any {
	_, data, err := s.conn.Read(s.ctx)
	s.Require().NoError(err)
	var out map[string]any
	s.Require().NoError(json.Unmarshal(data, &out))
	return out
}

func (s *HandlerSuite) send(msg ClientMessage) {
	data, err := json.Marshal(msg)
	s.Require().NoError(err)
	s.Require().NoError(s.conn.Write(s.ctx, websocket.MessageText, data))
}

func (s *HandlerSuite) TestSnapshotOnConnect() {
	msg := s.read()
	s.Equal("snapshot", msg["type"])
	session := msg["session"].(map[string]any)
	s.Equal([]any{"A", "B"}, session["roster"])
}

func (s *HandlerSuite) TestRelaysHubMessages() {
	s.read()
	s.Require().Eventually(func() bool { return s.hub.ClientCount() == 1 }, time.Second, time.Millisecond)

	s.hub.Broadcast([]byte(`{"type":"teams_ready"}`))

	s.Equal("teams_ready", s.read()["type"])
}

func (s *HandlerSuite) TestCommandsReachSession() {
	s.read()

	s.send(ClientMessage{Type: CommandDraw, Mode: "sequential"})
	s.send(ClientMessage{Type: CommandPause})
	s.send(ClientMessage{Type: CommandResume})
	s.send(ClientMessage{Type: CommandCall, Call: "heads"})
	s.send(ClientMessage{Type: CommandChoose, Side: "defense"})

	s.Eventually(func() bool { return len(s.session.Calls()) == 5 }, time.Second, time.Millisecond)
	s.Equal([]string{"draw:sequential", "pause", "resume", "call:heads", "choose:defense"}, s.session.Calls())
}

func (s *HandlerSuite) TestInvalidCommands() {
	s.read()

	s.Require().NoError(s.conn.Write(s.ctx, websocket.MessageText, []byte("{oops")))
	s.Equal("bad json", s.read()["error"])

	s.send(ClientMessage{Type: "shout"})
	s.Equal("unknown command", s.read()["error"])

	s.send(ClientMessage{Type: CommandCall, Call: "edge"})
	s.Equal(model.ErrInvalidCoinFace.Error(), s.read()["error"])
	s.Empty(s.session.Calls())
}

func (s *HandlerSuite) TestSessionErrorsAreReported() {
	s.read()
	s.session.fail(model.ErrNothingToPause)

	s.send(ClientMessage{Type: CommandPause})

	msg := s.read()
	s.Equal("error", msg["type"])
	s.Equal(model.ErrNothingToPause.Error(), msg["error"])
}
