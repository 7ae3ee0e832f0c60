package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

type manualMeter struct {
	reader   *sdkmetric.ManualReader
	provider *sdkmetric.MeterProvider
}

func newManualMeter(t *testing.T) *manualMeter {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return &manualMeter{reader: reader, provider: provider}
}

func (m *manualMeter) collect(t *testing.T) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, m.reader.Collect(context.Background(), &rm))
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) (metricdata.Metrics, bool) {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m, true
			}
		}
	}
	return metricdata.Metrics{}, false
}

// counterValue sums the int64 data points of name whose attributes include attrs
func counterValue(rm metricdata.ResourceMetrics, name string, attrs ...attribute.KeyValue) int64 {
	m, ok := findMetric(rm, name)
	if !ok {
		return 0
	}
	sum, ok := m.Data.(metricdata.Sum[int64])
	if !ok {
		return 0
	}

	var total int64
	for _, dp := range sum.DataPoints {
		matches := true
		for _, kv := range attrs {
			v, found := dp.Attributes.Value(kv.Key)
			if !found || v != kv.Value {
				matches = false
				break
			}
		}
		if matches {
			total += dp.Value
		}
	}
	return total
}

func gaugeValue(rm metricdata.ResourceMetrics, name string, attrs ...attribute.KeyValue) (int64, bool) {
	m, ok := findMetric(rm, name)
	if !ok {
		return 0, false
	}
	gauge, ok := m.Data.(metricdata.Gauge[int64])
	if !ok {
		return 0, false
	}
	for _, dp := range gauge.DataPoints {
		matches := true
		for _, kv := range attrs {
			v, found := dp.Attributes.Value(kv.Key)
			if !found || v != kv.Value {
				matches = false
			}
		}
		if matches {
			return dp.Value, true
		}
	}
	return 0, false
}
