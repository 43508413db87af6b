// Metrics collection for the delta kinematics tools
//
// Provides Prometheus-compatible metrics collection with support for:
// - Counter: Monotonically increasing values
// - Gauge: Values that can go up and down
// - Histogram: Distribution of observations in buckets
//
// Series are written sorted by label set so output is stable between runs.
//
// Copyright (C) 2026 Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package metrics

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// MetricType represents the type of metric
type MetricType int

const (
	TypeCounter MetricType = iota
	TypeGauge
	TypeHistogram
)

func (t MetricType) String() string {
	switch t {
	case TypeCounter:
		return "counter"
	case TypeGauge:
		return "gauge"
	case TypeHistogram:
		return "histogram"
	default:
		return "unknown"
	}
}

// Labels represents metric labels as key-value pairs
type Labels map[string]string

// Key generates a unique key for a label set
func (l Labels) Key() string {
	keys := l.sortedKeys()
	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(l[k])
	}
	return sb.String()
}

// String returns labels in Prometheus format
func (l Labels) String() string {
	if len(l) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range l.sortedKeys() {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(k)
		sb.WriteString("=\"")
		sb.WriteString(escapeLabel(l[k]))
		sb.WriteByte('"')
	}
	sb.WriteByte('}')
	return sb.String()
}

// With returns a copy of the labels with one extra pair
func (l Labels) With(key, value string) Labels {
	result := l.clone()
	result[key] = value
	return result
}

func (l Labels) clone() Labels {
	result := make(Labels, len(l)+1)
	for k, v := range l {
		result[k] = v
	}
	return result
}

func (l Labels) sortedKeys() []string {
	keys := make([]string, 0, len(l))
	for k := range l {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// escapeLabel escapes special characters in label values
func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

// formatFloat formats a float64 for Prometheus output
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Metric is the interface for all metric types
type Metric interface {
	Name() string
	Help() string
	Type() MetricType
	Write(sb *strings.Builder)
}

// series is the label-keyed storage shared by all metric types.
type series[V any] struct {
	mu     sync.Mutex
	values map[string]*entry[V]
}

type entry[V any] struct {
	labels Labels
	value  V
}

// update runs fn on the value for labels, creating it with init if absent.
func (s *series[V]) update(labels Labels, init func() V, fn func(*V)) {
	key := labels.Key()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]*entry[V])
	}
	e, ok := s.values[key]
	if !ok {
		e = &entry[V]{labels: labels.clone(), value: init()}
		s.values[key] = e
	}
	fn(&e.value)
}

// get returns a copy of the value for labels.
func (s *series[V]) get(labels Labels) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.values[labels.Key()]
	if !ok {
		var zero V
		return zero, false
	}
	return e.value, true
}

// read runs fn on the value for labels while holding the lock.
func (s *series[V]) read(labels Labels, fn func(V)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.values[labels.Key()]
	if ok {
		fn(e.value)
	}
	return ok
}

// each visits every series in label key order while holding the lock.
func (s *series[V]) each(fn func(Labels, V)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fn(s.values[k].labels, s.values[k].value)
	}
}

func writeHeader(sb *strings.Builder, name, help string, t MetricType) {
	fmt.Fprintf(sb, "# HELP %s %s\n# TYPE %s %s\n", name, help, name, t)
}

// Counter is a monotonically increasing metric
type Counter struct {
	name   string
	help   string
	values series[uint64]
}

// NewCounter creates a new counter metric
func NewCounter(name, help string) *Counter {
	return &Counter{name: name, help: help}
}

func (c *Counter) Name() string     { return c.name }
func (c *Counter) Help() string     { return c.help }
func (c *Counter) Type() MetricType { return TypeCounter }

// Inc increments the counter by 1
func (c *Counter) Inc(labels Labels) {
	c.Add(labels, 1)
}

// Add increments the counter by the given value
func (c *Counter) Add(labels Labels, delta uint64) {
	c.values.update(labels, func() uint64 { return 0 }, func(v *uint64) { *v += delta })
}

// Get returns the current counter value for labels
func (c *Counter) Get(labels Labels) uint64 {
	v, _ := c.values.get(labels)
	return v
}

func (c *Counter) Write(sb *strings.Builder) {
	writeHeader(sb, c.name, c.help, TypeCounter)
	c.values.each(func(l Labels, v uint64) {
		fmt.Fprintf(sb, "%s%s %d\n", c.name, l, v)
	})
}

// Gauge is a metric that can go up and down
type Gauge struct {
	name   string
	help   string
	values series[float64]
}

// NewGauge creates a new gauge metric
func NewGauge(name, help string) *Gauge {
	return &Gauge{name: name, help: help}
}

func (g *Gauge) Name() string     { return g.name }
func (g *Gauge) Help() string     { return g.help }
func (g *Gauge) Type() MetricType { return TypeGauge }

// Set sets the gauge to the given value
func (g *Gauge) Set(labels Labels, value float64) {
	g.values.update(labels, func() float64 { return 0 }, func(v *float64) { *v = value })
}

// Add adds the given value to the gauge
func (g *Gauge) Add(labels Labels, delta float64) {
	g.values.update(labels, func() float64 { return 0 }, func(v *float64) { *v += delta })
}

// Get returns the current gauge value for labels
func (g *Gauge) Get(labels Labels) float64 {
	v, _ := g.values.get(labels)
	return v
}

func (g *Gauge) Write(sb *strings.Builder) {
	writeHeader(sb, g.name, g.help, TypeGauge)
	g.values.each(func(l Labels, v float64) {
		fmt.Fprintf(sb, "%s%s %s\n", g.name, l, formatFloat(v))
	})
}

// Histogram tracks the distribution of observations
type Histogram struct {
	name    string
	help    string
	buckets []float64
	values  series[histogramValue]
}

type histogramValue struct {
	count   uint64
	sum     float64
	buckets []uint64 // non-cumulative
}

// NewHistogram creates a new histogram metric with the given buckets
func NewHistogram(name, help string, buckets []float64) *Histogram {
	sorted := make([]float64, len(buckets))
	copy(sorted, buckets)
	sort.Float64s(sorted)
	return &Histogram{name: name, help: help, buckets: sorted}
}

// DefaultBuckets returns default histogram buckets for latency metrics
func DefaultBuckets() []float64 {
	return []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
}

// ExponentialBuckets creates count buckets starting at start with factor multiplier
func ExponentialBuckets(start, factor float64, count int) []float64 {
	buckets := make([]float64, count)
	for i := 0; i < count; i++ {
		buckets[i] = start
		start *= factor
	}
	return buckets
}

func (h *Histogram) Name() string     { return h.name }
func (h *Histogram) Help() string     { return h.help }
func (h *Histogram) Type() MetricType { return TypeHistogram }

// Observe records a value in the histogram
func (h *Histogram) Observe(labels Labels, value float64) {
	init := func() histogramValue {
		return histogramValue{buckets: make([]uint64, len(h.buckets))}
	}
	h.values.update(labels, init, func(hv *histogramValue) {
		hv.count++
		hv.sum += value
		if i := sort.SearchFloat64s(h.buckets, value); i < len(h.buckets) {
			hv.buckets[i]++
		}
	})
}

// Timer returns a function that records the elapsed time when called
func (h *Histogram) Timer(labels Labels) func() {
	start := time.Now()
	return func() {
		h.Observe(labels, time.Since(start).Seconds())
	}
}

// HistogramSnapshot contains a point-in-time snapshot of histogram values
type HistogramSnapshot struct {
	Count   uint64
	Sum     float64
	Buckets map[float64]uint64 // cumulative, keyed by upper bound
}

// GetSnapshot returns a snapshot of histogram values for the given labels
func (h *Histogram) GetSnapshot(labels Labels) HistogramSnapshot {
	snap := HistogramSnapshot{Buckets: make(map[float64]uint64, len(h.buckets))}
	h.values.read(labels, func(hv histogramValue) {
		snap.Count, snap.Sum = hv.count, hv.sum
		var cumulative uint64
		for i, bound := range h.buckets {
			cumulative += hv.buckets[i]
			snap.Buckets[bound] = cumulative
		}
	})
	return snap
}

func (h *Histogram) Write(sb *strings.Builder) {
	writeHeader(sb, h.name, h.help, TypeHistogram)
	h.values.each(func(l Labels, hv histogramValue) {
		var cumulative uint64
		for i, bound := range h.buckets {
			cumulative += hv.buckets[i]
			fmt.Fprintf(sb, "%s_bucket%s %d\n", h.name, l.With("le", formatFloat(bound)), cumulative)
		}
		fmt.Fprintf(sb, "%s_bucket%s %d\n", h.name, l.With("le", "+Inf"), hv.count)
		fmt.Fprintf(sb, "%s_sum%s %s\n", h.name, l, formatFloat(hv.sum))
		fmt.Fprintf(sb, "%s_count%s %d\n", h.name, l, hv.count)
	})
}

// Registry holds all registered metrics
type Registry struct {
	mu      sync.RWMutex
	metrics map[string]Metric
	order   []string // Preserve registration order
}

// NewRegistry creates a new metrics registry
func NewRegistry() *Registry {
	return &Registry{
		metrics: make(map[string]Metric),
	}
}

// Register adds a metric to the registry
func (r *Registry) Register(metric Metric) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := metric.Name()
	if _, exists := r.metrics[name]; exists {
		return fmt.Errorf("metric %q already registered", name)
	}
	r.metrics[name] = metric
	r.order = append(r.order, name)
	return nil
}

// MustRegister adds a metric and panics on error
func (r *Registry) MustRegister(metric Metric) {
	if err := r.Register(metric); err != nil {
		panic(err)
	}
}

// Get returns a metric by name
func (r *Registry) Get(name string) Metric {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.metrics[name]
}

// Gather collects all metrics in Prometheus text format
func (r *Registry) Gather() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sb strings.Builder
	for _, name := range r.order {
		r.metrics[name].Write(&sb)
	}
	return sb.String()
}
