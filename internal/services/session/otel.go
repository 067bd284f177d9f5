package session

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/mcoot/teamdraft/internal/services/session"

// metrics are recorded against the provider passed to NewController, or the
// global one, which is a no-op unless cmd/server installs the SDK provider.
type metrics struct {
	draws         metric.Int64Counter
	picks         metric.Int64Counter
	cancellations metric.Int64Counter
	tosses        metric.Int64Counter
	sides         metric.Int64Counter
}

func newMetrics(mp metric.MeterProvider) (*metrics, error) {
	m := mp.Meter(instrumentationName)
	out := &metrics{}
	var err error

	out.draws, err = m.Int64Counter(
		"teamdraft.draws",
		metric.WithDescription("Draws started, by mode"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating draws counter: %w", err)
	}

	out.picks, err = m.Int64Counter(
		"teamdraft.picks",
		metric.WithDescription("Players revealed by the wheel"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating picks counter: %w", err)
	}

	out.cancellations, err = m.Int64Counter(
		"teamdraft.draft.cancellations",
		metric.WithDescription("Drafts abandoned before completion, by reason"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating cancellations counter: %w", err)
	}

	out.tosses, err = m.Int64Counter(
		"teamdraft.tosses",
		metric.WithDescription("Coin tosses revealed, by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating tosses counter: %w", err)
	}

	out.sides, err = m.Int64Counter(
		"teamdraft.sides",
		metric.WithDescription("Side decisions completed, by chosen side"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sides counter: %w", err)
	}

	return out, nil
}
