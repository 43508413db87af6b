// Tests for the solver metrics bundle
//
// Copyright (C) 2026 Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package metrics

import (
	"strings"
	"testing"
	"time"
)

func TestNewSolverMetrics(t *testing.T) {
	m := NewSolverMetrics()

	for _, name := range []string{
		"deltakin_solves_total",
		"deltakin_failures_total",
		"deltakin_fk_branch_total",
		"deltakin_solve_duration_seconds",
		"deltakin_workspace_reachable_ratio",
	} {
		if m.Registry().Get(name) == nil {
			t.Errorf("expected %s to be registered", name)
		}
	}
}

func TestRecordSolve(t *testing.T) {
	m := NewSolverMetrics()

	m.RecordSolve(OpInverse, "", 10*time.Microsecond)
	m.RecordSolve(OpInverse, "", 20*time.Microsecond)
	m.RecordSolve(OpInverse, "MAX_NEGATIVE_ANGLE", 5*time.Microsecond)
	m.RecordSkipped(OpInverse, 3)
	m.RecordSkipped(OpInverse, 0)

	if v := m.Solves.Get(Labels{"op": OpInverse, "result": ResultOK}); v != 2 {
		t.Errorf("expected 2 ok, got %d", v)
	}
	if v := m.Solves.Get(Labels{"op": OpInverse, "result": ResultFailed}); v != 1 {
		t.Errorf("expected 1 failed, got %d", v)
	}
	if v := m.Solves.Get(Labels{"op": OpInverse, "result": ResultSkipped}); v != 3 {
		t.Errorf("expected 3 skipped, got %d", v)
	}
	if v := m.Failures.Get(Labels{"op": OpInverse, "code": "MAX_NEGATIVE_ANGLE"}); v != 1 {
		t.Errorf("expected 1 failure, got %d", v)
	}
	if snap := m.SolveDuration.GetSnapshot(Labels{"op": OpInverse}); snap.Count != 3 {
		t.Errorf("expected 3 latency samples, got %d", snap.Count)
	}
}

func TestRecordBranchAndReachable(t *testing.T) {
	m := NewSolverMetrics()
	m.RecordBranch("general")
	m.RecordBranch("general")
	m.RecordBranch("degenerate")
	m.SetReachable(-500, 0.75)

	output := m.Gather()
	for _, want := range []string{
		`deltakin_fk_branch_total{branch="degenerate"} 1`,
		`deltakin_fk_branch_total{branch="general"} 2`,
		`deltakin_workspace_reachable_ratio{z="-500"} 0.75`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("missing %q in:\n%s", want, output)
		}
	}
}

func TestGlobalMetrics(t *testing.T) {
	if GlobalMetrics() != GlobalMetrics() {
		t.Error("expected a single global instance")
	}
}
