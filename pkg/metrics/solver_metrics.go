// Solver metrics definitions
//
// Defines the metrics recorded by the batch runner and the workspace scan:
// - solve outcomes per operation
// - failures per error code
// - forward trilateration branch usage
// - per-pose solve latency
// - reachable workspace fraction per height
//
// Copyright (C) 2026 Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package metrics

import (
	"strconv"
	"sync"
	"time"
)

// Operation labels
const (
	OpInverse = "ik"
	OpForward = "fk"
)

// Result labels
const (
	ResultOK      = "ok"
	ResultFailed  = "failed"
	ResultSkipped = "skipped"
)

// SolverMetrics holds all kinematics metrics
type SolverMetrics struct {
	Solves        *Counter
	Failures      *Counter
	Branches      *Counter
	SolveDuration *Histogram
	Reachable     *Gauge

	registry *Registry
}

// NewSolverMetrics creates and registers all solver metrics
func NewSolverMetrics() *SolverMetrics {
	m := &SolverMetrics{registry: NewRegistry()}

	m.Solves = NewCounter("deltakin_solves_total",
		"Poses processed by operation and result")
	m.Failures = NewCounter("deltakin_failures_total",
		"Failed poses by operation and error code")
	m.Branches = NewCounter("deltakin_fk_branch_total",
		"Forward solutions by trilateration branch")
	m.SolveDuration = NewHistogram("deltakin_solve_duration_seconds",
		"Time spent solving a single pose", ExponentialBuckets(1e-6, 4, 8))
	m.Reachable = NewGauge("deltakin_workspace_reachable_ratio",
		"Fraction of scanned grid points the platform can reach")

	for _, metric := range []Metric{m.Solves, m.Failures, m.Branches, m.SolveDuration, m.Reachable} {
		m.registry.MustRegister(metric)
	}
	return m
}

// RecordSolve records one pose. An empty code means success.
func (m *SolverMetrics) RecordSolve(op, code string, elapsed time.Duration) {
	if code == "" {
		m.Solves.Inc(Labels{"op": op, "result": ResultOK})
	} else {
		m.Solves.Inc(Labels{"op": op, "result": ResultFailed})
		m.Failures.Inc(Labels{"op": op, "code": code})
	}
	m.SolveDuration.Observe(Labels{"op": op}, elapsed.Seconds())
}

// RecordSkipped records poses abandoned because the run was cancelled
func (m *SolverMetrics) RecordSkipped(op string, n int) {
	if n > 0 {
		m.Solves.Add(Labels{"op": op, "result": ResultSkipped}, uint64(n))
	}
}

// RecordBranch records which trilateration branch produced a forward result
func (m *SolverMetrics) RecordBranch(branch string) {
	m.Branches.Inc(Labels{"branch": branch})
}

// SetReachable records the reachable fraction of a workspace slice at height z
func (m *SolverMetrics) SetReachable(z, ratio float64) {
	m.Reachable.Set(Labels{"z": strconv.FormatFloat(z, 'f', -1, 64)}, ratio)
}

// Gather returns all metrics in Prometheus text format
func (m *SolverMetrics) Gather() string {
	return m.registry.Gather()
}

// Registry returns the internal registry
func (m *SolverMetrics) Registry() *Registry {
	return m.registry
}

var (
	globalMetrics     *SolverMetrics
	globalMetricsOnce sync.Once
)

// GlobalMetrics returns the process wide solver metrics instance
func GlobalMetrics() *SolverMetrics {
	globalMetricsOnce.Do(func() {
		globalMetrics = NewSolverMetrics()
	})
	return globalMetrics
}
