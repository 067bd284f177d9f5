package factory

import (
	"time"

	"github.com/mcoot/teamdraft/internal/dependencies/mocks"
	"github.com/mcoot/teamdraft/internal/storage"
	"github.com/mcoot/teamdraft/internal/storage/memory"
	"github.com/mcoot/teamdraft/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	return NewTestAppWithStorage(memory.New())
}

// NewTestAppWithStorage is NewTestApp over a pre-populated store, for restore tests
func NewTestAppWithStorage(store storage.Storage) *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app, err := newWithDependencies(store, mockClock, mockRandom, 0, nil, testutil.NopLogger())
	if err != nil {
		panic(err)
	}

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// Advance moves the mock clock and ticks the engine once, as the scheduler would
func (t *TestApp) Advance(d time.Duration) {
	t.MockClock.Advance(d)
	t.Controller.Tick(t.MockClock.Now())
}
