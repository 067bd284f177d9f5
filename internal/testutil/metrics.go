package testutil

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// CounterTotals collects reader and returns the named int64 counter's
// cumulative values keyed by the attr attribute. Points without attr are
// keyed by "". A counter that was never incremented returns an empty map.
func CounterTotals(ctx context.Context, reader sdkmetric.Reader, name, attr string) (map[string]int64, error) {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return nil, err
	}

	out := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				return nil, fmt.Errorf("%s is %T, not an int64 sum", name, m.Data)
			}
			for _, dp := range sum.DataPoints {
				key := ""
				if v, ok := dp.Attributes.Value(attribute.Key(attr)); ok {
					key = v.Emit()
				}
				out[key] += dp.Value
			}
		}
	}
	return out, nil
}
