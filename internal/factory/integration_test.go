package factory

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/mcoot/teamdraft/internal/model"
	"github.com/mcoot/teamdraft/internal/storage"
	"github.com/mcoot/teamdraft/internal/storage/memory"
	"github.com/mcoot/teamdraft/internal/testutil"
	"github.com/mcoot/teamdraft/internal/web/sse"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) addPlayers(names ...string) {
	for _, n := range names {
		s.Require().True(s.app.Controller.AddPlayer(s.ctx, n))
	}
}

// Test: sequential draft through to side decision, driven only by ticks
func (s *IntegrationSuite) TestCompleteDraftFlow() {
	s.addPlayers("A", "B", "C", "D")

	_, err := s.app.Controller.Draw(s.ctx, model.DrawModeSequential)
	s.Require().NoError(err)

	for i := 0; i < 400 && s.app.Controller.Snapshot().Draft.Status != model.DraftStatusComplete; i++ {
		s.app.Advance(50 * time.Millisecond)
	}

	snap := s.app.Controller.Snapshot()
	s.Require().Equal(model.DraftStatusComplete, snap.Draft.Status)
	s.Len(snap.Draft.Teams.Team1, 2)
	s.Len(snap.Draft.Teams.Team2, 2)
	s.Len(snap.Draft.Assignments, 4)

	// Team 1 calls heads; the flip lands tails
	_, err = s.app.Controller.StartToss(s.ctx, model.SideModeCoin, "")
	s.Require().NoError(err)
	s.app.MockRandom.QueueIntn(1)
	_, err = s.app.Controller.CallToss(s.ctx, model.Heads)
	s.Require().NoError(err)

	for i := 0; i < 100 && s.app.Controller.Snapshot().Toss.Phase == model.TossPhaseFlipping; i++ {
		s.app.Advance(50 * time.Millisecond)
	}
	toss := s.app.Controller.Snapshot().Toss
	s.Require().Equal(model.TossPhaseResult, toss.Phase)
	s.Equal(model.Tails, toss.Outcome)
	s.Equal(model.Team2, toss.Winner)

	toss, err = s.app.Controller.ChooseSide(s.ctx, model.SideDefense)
	s.Require().NoError(err)
	s.Equal(model.TossPhaseComplete, toss.Phase)
	s.Equal(model.Team1, toss.AttackingTeam)

	text, err := s.app.Controller.ExportText()
	s.Require().NoError(err)
	s.Contains(text, "** Team 1 ** (Attack)")
	s.Contains(text, "** Team 2 ** (Defense)")
}

// Test: roster and settings survive a restart over the same store
func (s *IntegrationSuite) TestSessionIsRestoredFromStorage() {
	store := memory.New()
	first := NewTestAppWithStorage(store)
	first.Controller.AddPlayers(s.ctx, "A\nB\nC")
	s.Require().NoError(first.Controller.SetMapCount(s.ctx, 5))

	second := NewTestAppWithStorage(store)

	snap := second.Controller.Snapshot()
	s.Equal([]string{"A", "B", "C"}, snap.Roster)
	s.Equal(model.MapCount(5), snap.Settings.MapCount)
}

// Test: a store written by an older client is sanitised on load
func (s *IntegrationSuite) TestRestoreSanitisesRoster() {
	store := memory.New()
	s.Require().NoError(storage.Save(s.ctx, store, storage.KeyRoster,
		[]string{" A ", "A", "", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K"}))

	app := NewTestAppWithStorage(store)

	roster := app.Controller.Snapshot().Roster
	s.Len(roster, model.MaxRosterSize)
	s.Equal("A", roster[0])
	s.Equal("B", roster[1])
}

// Test: events reach SSE subscribers once the app is started
func (s *IntegrationSuite) TestEventsReachSubscribers() {
	s.app.Start()
	defer s.app.Close()

	client := sse.NewClient()
	s.Require().True(s.app.Events.Register(client))
	s.Require().Eventually(func() bool { return s.app.Events.ClientCount() == 1 }, time.Second, time.Millisecond)

	s.app.Controller.AddPlayer(s.ctx, "A")

	select {
	case msg := <-client.Messages():
		frame := string(msg)
		s.True(strings.HasPrefix(frame, "event: roster_updated\n"))
		data := strings.TrimPrefix(strings.SplitN(frame, "\n", 3)[1], "data: ")
		var ev model.Event
		s.Require().NoError(json.Unmarshal([]byte(data), &ev))
		s.Equal(model.EventRosterUpdated, ev.Type)
	case <-time.After(time.Second):
		s.Fail("no event received")
	}
}

func TestNew_SeedReplaysDraw(t *testing.T) {
	draw := func() model.DraftState {
		app, err := New(Config{Seed: "scrim-night"})
		if err != nil {
			t.Fatal(err)
		}
		defer app.Close()

		ctx := context.Background()
		app.Controller.AddPlayers(ctx, "A\nB\nC\nD\nE\nF")
		state, err := app.Controller.Draw(ctx, model.DrawModeInstant)
		if err != nil {
			t.Fatal(err)
		}
		return state
	}

	first, second := draw(), draw()
	assert.Equal(t, first.Teams, second.Teams)
	assert.Len(t, first.ID, 12)
	assert.Equal(t, first.ID, second.ID)
}

func TestNew_RecordsIntoConfiguredMeterProvider(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	app, err := New(Config{MeterProvider: sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))})
	if err != nil {
		t.Fatal(err)
	}
	defer app.Close()

	ctx := context.Background()
	app.Controller.AddPlayers(ctx, "A\nB")
	if _, err := app.Controller.Draw(ctx, model.DrawModeInstant); err != nil {
		t.Fatal(err)
	}

	totals, err := testutil.CounterTotals(ctx, reader, "teamdraft.draws", "mode")
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, map[string]int64{"instant": 1}, totals)
}

func TestApp_CloseTwice(t *testing.T) {
	app, err := New(Config{})
	if err != nil {
		t.Fatal(err)
	}
	app.Start()

	app.Close()
	app.Close()
}

func TestNew_StorageTypes(t *testing.T) {
	app, err := New(Config{})
	if err != nil {
		t.Fatalf("memory: %v", err)
	}
	app.Close()

	app, err = New(Config{StorageType: StorageTypeSQLite})
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	app.Close()

	if _, err := New(Config{StorageType: StorageTypeRedis}); err == nil {
		t.Error("redis without config should fail")
	}
	if _, err := New(Config{StorageType: StorageTypePostgres}); err == nil {
		t.Error("postgres without DSN should fail")
	}
	if _, err := New(Config{StorageType: "mongo"}); err == nil {
		t.Error("unknown storage type should fail")
	}
}
