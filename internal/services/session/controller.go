// Package session owns the single team-draft session: roster, draft, toss and settings.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/mcoot/teamdraft/internal/dependencies/clock"
	"github.com/mcoot/teamdraft/internal/dependencies/random"
	"github.com/mcoot/teamdraft/internal/model"
	"github.com/mcoot/teamdraft/internal/services/draft"
	"github.com/mcoot/teamdraft/internal/services/export"
	"github.com/mcoot/teamdraft/internal/services/roster"
	"github.com/mcoot/teamdraft/internal/services/toss"
	"github.com/mcoot/teamdraft/internal/storage"
)

// Publisher receives events in commit order together with the session they produced.
// It is called with the controller lock held and must not call back into the controller.
type Publisher interface {
	Publish(events []model.Event, snapshot model.Session)
}

type nopPublisher struct{}

func (nopPublisher) Publish([]model.Event, model.Session) {}

// Cancellation reasons carried by draft_cancelled and side_toss_reset
const (
	ReasonNewDraw       = "new draw"
	ReasonRosterChanged = "roster changed"
	ReasonReset         = "reset"
	ReasonManual        = "manual"
)

// Draft IDs come from the injected Random, so a seeded source replays them too
const (
	DraftIDLength   = 12
	DraftIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Controller is the session state machine. Every operation runs under one mutex.
type Controller struct {
	mu sync.Mutex

	storage   storage.Storage
	clock     clock.Clock
	random    random.Random
	publisher Publisher
	logger    *slog.Logger
	metrics   *metrics

	roster   *roster.Roster
	settings model.Settings

	// generation increases on every draw and cancellation
	generation uint64
	draftID    model.DraftID
	mode       model.DrawMode
	startedAt  time.Time
	teams      model.Teams
	seq        *draft.Sequencer

	toss *toss.Protocol
}

// Option configures a Controller
type Option func(*options)

type options struct {
	meterProvider metric.MeterProvider
}

// WithMeterProvider records the session counters against mp instead of the global provider
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		o.meterProvider = mp
	}
}

// NewController creates a Controller with an empty roster and default settings
func NewController(
	store storage.Storage,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
	opts ...Option,
) (*Controller, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.meterProvider == nil {
		o.meterProvider = otel.GetMeterProvider()
	}

	m, err := newMetrics(o.meterProvider)
	if err != nil {
		return nil, err
	}
	return &Controller{
		storage:   store,
		clock:     clock,
		random:    random,
		publisher: nopPublisher{},
		logger:    logger.With(slog.String("component", "session")),
		metrics:   m,
		roster:    roster.New(nil),
		settings:  model.Settings{MapCount: model.DefaultMapCount},
		teams:     model.Teams{Team1: []string{}, Team2: []string{}},
		toss:      toss.New(random),
	}, nil
}

// SetPublisher installs the event sink
func (c *Controller) SetPublisher(p Publisher) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p == nil {
		p = nopPublisher{}
	}
	c.publisher = p
}

// Restore reads the persisted roster and map count. Missing or corrupt values fall back to defaults.
func (c *Controller) Restore(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := storage.Load(ctx, c.storage, c.logger, storage.KeyRoster, []string{})
	c.roster = roster.New(names)

	count := storage.Load(ctx, c.storage, c.logger, storage.KeyMapCount, model.DefaultMapCount)
	if !count.Valid() {
		c.logger.Debug("stored map count is invalid, using default", slog.Int("map_count", int(count)))
		count = model.DefaultMapCount
	}
	c.settings.MapCount = count

	c.logger.Info("session restored",
		slog.Int("player_count", c.roster.Len()),
		slog.Int("map_count", int(count)),
	)
}

// Snapshot returns a copy of the whole session
func (c *Controller) Snapshot() model.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() model.Session {
	return model.Session{
		Roster:   c.roster.Names(),
		Draft:    c.draftStateLocked(),
		Toss:     c.toss.State(),
		Settings: c.settings,
	}
}

func (c *Controller) draftStateLocked() model.DraftState {
	if c.seq != nil {
		return c.seq.State()
	}
	if !c.teams.Empty() {
		return model.DraftState{
			ID:          c.draftID,
			Generation:  c.generation,
			Mode:        c.mode,
			Status:      model.DraftStatusComplete,
			Assignments: draft.Assignments(c.teams),
			Teams:       c.teams.Clone(),
			StartedAt:   c.startedAt,
		}
	}
	return model.DraftState{
		Generation:  c.generation,
		Status:      model.DraftStatusIdle,
		Assignments: model.Assignment{},
		Teams:       model.Teams{Team1: []string{}, Team2: []string{}},
	}
}

func (c *Controller) publishLocked(events []model.Event) {
	if len(events) == 0 {
		return
	}
	c.publisher.Publish(events, c.snapshotLocked())
}

func (c *Controller) event(t model.EventType, now time.Time, payload any) model.Event {
	return model.Event{
		Type:       t,
		Timestamp:  now,
		DraftID:    c.draftID,
		Generation: c.generation,
		Payload:    payload,
	}
}

// stamp attaches the current draft identity to toss events
func (c *Controller) stamp(events []model.Event) []model.Event {
	for i := range events {
		events[i].DraftID = c.draftID
		events[i].Generation = c.generation
	}
	return events
}

// invalidateLocked abandons any draft and returns the toss to idle
func (c *Controller) invalidateLocked(ctx context.Context, reason string, now time.Time) []model.Event {
	var events []model.Event

	if c.seq != nil || !c.teams.Empty() {
		events = append(events, c.event(model.EventDraftCancelled, now, model.DraftCancelledPayload{Reason: reason}))
		if c.seq != nil && !c.seq.Done() {
			c.metrics.cancellations.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
			c.logger.Info("draft cancelled",
				slog.String("draft_id", string(c.draftID)),
				slog.String("reason", reason),
			)
		}
		c.generation++
		c.seq = nil
		c.draftID = ""
		c.mode = ""
		c.startedAt = time.Time{}
		c.teams = model.Teams{Team1: []string{}, Team2: []string{}}
	}

	if ev := c.toss.Reset(reason, now); ev != nil {
		events = append(events, c.stamp([]model.Event{*ev})...)
	}
	return events
}

// Roster operations

// Roster returns the current roster
func (c *Controller) Roster() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roster.Names()
}

// AddPlayer adds one player. Invalid names are ignored and reported as not added.
func (c *Controller) AddPlayer(ctx context.Context, name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.roster.Add(name); err != nil {
		c.logger.Debug("player not added",
			slog.String("name", name),
			slog.String("reason", err.Error()),
		)
		return false
	}
	c.rosterChangedLocked(ctx)
	return true
}

// AddPlayers adds one player per line and returns the names that were added
func (c *Controller) AddPlayers(ctx context.Context, text string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	added := c.roster.AddBulk(text)
	if len(added) > 0 {
		c.rosterChangedLocked(ctx)
	}
	return added
}

// RemovePlayer removes a player from the roster
func (c *Controller) RemovePlayer(ctx context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.roster.Remove(name); err != nil {
		return err
	}
	c.rosterChangedLocked(ctx)
	return nil
}

// ClearRoster removes every player, reporting whether anything changed
func (c *Controller) ClearRoster(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.roster.Clear() {
		return false
	}
	c.rosterChangedLocked(ctx)
	return true
}

func (c *Controller) rosterChangedLocked(ctx context.Context) {
	now := c.clock.Now()
	names := c.roster.Names()
	c.saveLocked(ctx, storage.KeyRoster, names)

	events := c.invalidateLocked(ctx, ReasonRosterChanged, now)
	events = append(events, c.event(model.EventRosterUpdated, now, model.RosterUpdatedPayload{Roster: names}))
	c.publishLocked(events)
}

func (c *Controller) saveLocked(ctx context.Context, key string, value any) {
	if err := storage.Save(ctx, c.storage, key, value); err != nil {
		c.logger.Warn("failed to persist value",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

// Draft operations

// Draw cancels any current draft and starts a new one
func (c *Controller) Draw(ctx context.Context, mode model.DrawMode) (model.DraftState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.roster.Len() < 2 {
		return model.DraftState{}, model.ErrNotEnoughPlayers
	}
	if mode != model.DrawModeInstant && mode != model.DrawModeSequential {
		return model.DraftState{}, model.ErrInvalidDrawMode
	}

	now := c.clock.Now()
	events := c.invalidateLocked(ctx, ReasonNewDraw, now)

	c.generation++
	c.draftID = model.DraftID(c.random.String(DraftIDLength, DraftIDAlphabet))
	c.mode = mode
	c.startedAt = now
	names := c.roster.Names()

	switch mode {
	case model.DrawModeInstant:
		c.teams = draft.Instant(c.random, names)
		events = append(events, c.event(model.EventTeamsReady, now, model.TeamsReadyPayload{
			Mode:      mode,
			Team1:     c.teams.Team1,
			Team2:     c.teams.Team2,
			Celebrate: true,
		}))
	case model.DrawModeSequential:
		c.seq = draft.NewSequencer(c.draftID, c.generation, names, c.random)
		started := c.seq.Start(now)
		c.countPicks(ctx, started)
		events = append(events, started...)
	}

	c.metrics.draws.Add(ctx, 1, metric.WithAttributes(attribute.String("mode", string(mode))))
	c.logger.Info("draw started",
		slog.String("draft_id", string(c.draftID)),
		slog.String("mode", string(mode)),
		slog.Int("player_count", len(names)),
	)

	c.publishLocked(events)
	return c.draftStateLocked(), nil
}

// Pause freezes the running draft
func (c *Controller) Pause(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.seq == nil || c.seq.Done() {
		return model.ErrNothingToPause
	}
	ev, err := c.seq.Pause(c.clock.Now())
	if err != nil {
		return err
	}
	if ev != nil {
		c.publishLocked([]model.Event{*ev})
	}
	return nil
}

// Resume continues a paused draft
func (c *Controller) Resume(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.seq == nil || c.seq.Done() {
		return model.ErrNothingToPause
	}
	ev, err := c.seq.Resume(c.clock.Now())
	if err != nil {
		return err
	}
	if ev != nil {
		c.publishLocked([]model.Event{*ev})
	}
	return nil
}

// Reset clears the roster, cancels the draft and resets the toss
func (c *Controller) Reset(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	c.roster.Clear()
	c.saveLocked(ctx, storage.KeyRoster, []string{})

	events := c.invalidateLocked(ctx, ReasonReset, now)
	events = append(events, c.event(model.EventRosterUpdated, now, model.RosterUpdatedPayload{Roster: []string{}}))
	c.logger.Info("session reset")
	c.publishLocked(events)
}

// Tick advances every pending deadline to now. The scheduler calls it periodically.
func (c *Controller) Tick(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx := context.Background()
	var events []model.Event

	if c.seq != nil && c.seq.Generation() == c.generation && !c.seq.Done() {
		stepped := c.seq.Tick(now)
		c.countPicks(ctx, stepped)
		if c.seq.Done() {
			c.teams = c.seq.State().Teams
			c.logger.Info("draft complete",
				slog.String("draft_id", string(c.draftID)),
				slog.Int("team1_size", len(c.teams.Team1)),
				slog.Int("team2_size", len(c.teams.Team2)),
			)
		}
		events = append(events, stepped...)
	}

	tossEvents := c.stamp(c.toss.Tick(now))
	c.recordToss(ctx, tossEvents)
	events = append(events, tossEvents...)

	c.publishLocked(events)
}

func (c *Controller) countPicks(ctx context.Context, events []model.Event) {
	for _, ev := range events {
		if ev.Type == model.EventPickResolved {
			c.metrics.picks.Add(ctx, 1)
		}
	}
}

// Toss operations

// StartToss begins the side decision. Teams must have been drawn.
func (c *Controller) StartToss(ctx context.Context, mode model.SideMode, preferred model.Side) (model.TossState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.teams.Empty() {
		return c.toss.State(), model.ErrNoTeams
	}
	events, err := c.toss.Start(mode, preferred, c.clock.Now())
	if err != nil {
		return c.toss.State(), err
	}
	c.logger.Info("side toss started", slog.String("mode", string(c.toss.State().Mode)))
	c.publishLocked(c.stamp(events))
	return c.toss.State(), nil
}

// CallToss submits Team 1's call
func (c *Controller) CallToss(ctx context.Context, face model.CoinFace) (model.TossState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	events, err := c.toss.Call(face, c.clock.Now())
	if err != nil {
		return c.toss.State(), err
	}
	c.publishLocked(c.stamp(events))
	return c.toss.State(), nil
}

// ChooseSide submits the toss winner's starting side
func (c *Controller) ChooseSide(ctx context.Context, side model.Side) (model.TossState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	events, err := c.toss.Choose(side, c.clock.Now())
	if err != nil {
		return c.toss.State(), err
	}
	c.recordToss(ctx, events)
	c.publishLocked(c.stamp(events))
	return c.toss.State(), nil
}

// ResetToss returns the toss to idle without touching the teams
func (c *Controller) ResetToss(ctx context.Context) model.TossState {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ev := c.toss.Reset(ReasonManual, c.clock.Now()); ev != nil {
		c.publishLocked(c.stamp([]model.Event{*ev}))
	}
	return c.toss.State()
}

func (c *Controller) recordToss(ctx context.Context, events []model.Event) {
	for _, ev := range events {
		switch p := ev.Payload.(type) {
		case model.SideTossResultPayload:
			c.metrics.tosses.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", string(p.Outcome))))
			c.logger.Info("side toss revealed",
				slog.String("outcome", string(p.Outcome)),
				slog.String("winner", p.Winner.String()),
			)
		case model.SideCompletePayload:
			c.metrics.sides.Add(ctx, 1, metric.WithAttributes(attribute.String("side", string(p.Side))))
		}
	}
}

// Settings

// Settings returns the current preferences
func (c *Controller) Settings() model.Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// SetMapCount stores the preferred series length
func (c *Controller) SetMapCount(ctx context.Context, count model.MapCount) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !count.Valid() {
		return model.ErrInvalidMapCount
	}
	c.settings.MapCount = count
	c.saveLocked(ctx, storage.KeyMapCount, count)
	c.publishLocked([]model.Event{c.event(model.EventSettingsUpdated, c.clock.Now(), model.SettingsUpdatedPayload{Settings: c.settings})})
	return nil
}

// ExportText renders the drawn teams for pasting into Discord
func (c *Controller) ExportText() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.teams.Empty() {
		return "", model.ErrNoTeams
	}
	return export.Discord(c.teams, c.toss.State()), nil
}
