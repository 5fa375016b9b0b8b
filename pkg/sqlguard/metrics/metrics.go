// Package metrics registers and records the instruments sqlguard reports, on top of an OpenTelemetry
// meter exported in Prometheus format.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/sllt/sqlguard/pkg/sqlguard/logging"
)

var (
	errMetricAlreadyRegistered = errors.New("metric already registered")
	errMetricNotRegistered     = errors.New("metric not registered")
	errOddLabels               = errors.New("labels must be key/value pairs")
)

// Manager registers instruments by name and records values against them.
type Manager interface {
	NewCounter(name, desc string)
	NewHistogram(name, desc string, buckets ...float64)
	NewGauge(name, desc string)
	IncrementCounter(ctx context.Context, name string, labels ...string)
	RecordHistogram(ctx context.Context, name string, value float64, labels ...string)
	SetGauge(name string, value float64, labels ...string)
}

type metricsManager struct {
	meter  metric.Meter
	logger logging.Logger

	mu         sync.RWMutex
	counters   map[string]metric.Int64Counter
	histograms map[string]metric.Float64Histogram
	gauges     map[string]metric.Float64Gauge
}

// NewMetricsManager creates a Manager on meter. Registration and recording problems are logged, never returned.
func NewMetricsManager(meter metric.Meter, logger logging.Logger) Manager {
	return &metricsManager{
		meter:      meter,
		logger:     logger,
		counters:   make(map[string]metric.Int64Counter),
		histograms: make(map[string]metric.Float64Histogram),
		gauges:     make(map[string]metric.Float64Gauge),
	}
}

func (m *metricsManager) NewCounter(name, desc string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.counters[name]; ok {
		m.logger.Warnf("%v: %s", errMetricAlreadyRegistered, name)
		return
	}

	c, err := m.meter.Int64Counter(name, metric.WithDescription(desc))
	if err != nil {
		m.logger.Errorf("error while registering counter %s: %v", name, err)
		return
	}

	m.counters[name] = c
}

func (m *metricsManager) NewHistogram(name, desc string, buckets ...float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.histograms[name]; ok {
		m.logger.Warnf("%v: %s", errMetricAlreadyRegistered, name)
		return
	}

	opts := []metric.Float64HistogramOption{metric.WithDescription(desc)}
	if len(buckets) > 0 {
		opts = append(opts, metric.WithExplicitBucketBoundaries(buckets...))
	}

	h, err := m.meter.Float64Histogram(name, opts...)
	if err != nil {
		m.logger.Errorf("error while registering histogram %s: %v", name, err)
		return
	}

	m.histograms[name] = h
}

func (m *metricsManager) NewGauge(name, desc string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.gauges[name]; ok {
		m.logger.Warnf("%v: %s", errMetricAlreadyRegistered, name)
		return
	}

	g, err := m.meter.Float64Gauge(name, metric.WithDescription(desc))
	if err != nil {
		m.logger.Errorf("error while registering gauge %s: %v", name, err)
		return
	}

	m.gauges[name] = g
}

func (m *metricsManager) IncrementCounter(ctx context.Context, name string, labels ...string) {
	m.mu.RLock()
	c, ok := m.counters[name]
	m.mu.RUnlock()

	if !ok {
		m.logger.Errorf("%v: %s", errMetricNotRegistered, name)
		return
	}

	attrs, err := toAttributes(labels)
	if err != nil {
		m.logger.Errorf("counter %s: %v", name, err)
		return
	}

	c.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func (m *metricsManager) RecordHistogram(ctx context.Context, name string, value float64, labels ...string) {
	m.mu.RLock()
	h, ok := m.histograms[name]
	m.mu.RUnlock()

	if !ok {
		m.logger.Errorf("%v: %s", errMetricNotRegistered, name)
		return
	}

	attrs, err := toAttributes(labels)
	if err != nil {
		m.logger.Errorf("histogram %s: %v", name, err)
		return
	}

	h.Record(ctx, value, metric.WithAttributes(attrs...))
}

func toAttributes(labels []string) ([]attribute.KeyValue, error) {
	if len(labels)%2 != 0 {
		return nil, fmt.Errorf("%w: got %d values", errOddLabels, len(labels))
	}

	attrs := make([]attribute.KeyValue, 0, len(labels)/2)
	for i := 0; i < len(labels); i += 2 {
		attrs = append(attrs, attribute.String(labels[i], labels[i+1]))
	}

	return attrs, nil
}

// SetGauge records the current value of a gauge.
func (m *metricsManager) SetGauge(name string, value float64, labels ...string) {
	m.mu.RLock()
	g, ok := m.gauges[name]
	m.mu.RUnlock()

	if !ok {
		m.logger.Errorf("%v: %s", errMetricNotRegistered, name)
		return
	}

	attrs, err := toAttributes(labels)
	if err != nil {
		m.logger.Errorf("gauge %s: %v", name, err)
		return
	}

	g.Record(context.Background(), value, metric.WithAttributes(attrs...))
}
