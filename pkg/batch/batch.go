// Package batch solves pose buffers in parallel with one status per pose.
//
// The kinematics engine stops a batch at the first failing pose. Runner
// instead solves every pose independently on a bounded worker group, so one
// unreachable target does not hide the results of the others. Each pose is
// still solved in place with the engine's single-pose semantics.
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package batch

import (
	"context"
	"errors"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	derrors "github.com/byq77/DeltaKinematics/pkg/errors"
	"github.com/byq77/DeltaKinematics/pkg/kinematics"
	"github.com/byq77/DeltaKinematics/pkg/log"
	"github.com/byq77/DeltaKinematics/pkg/metrics"
)

// Status is the outcome of one pose.
type Status int

const (
	// StatusSkipped means the pose was never attempted (cancelled run)
	StatusSkipped Status = iota
	// StatusOK means the pose was solved
	StatusOK
	// StatusFailed means the solver rejected the pose
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusFailed:
		return "failed"
	default:
		return "skipped"
	}
}

// Result describes one pose of a batch.
type Result struct {
	Index   int
	Status  Status
	Err     error
	Branch  kinematics.Branch // forward runs only
	Elapsed time.Duration
}

// Report summarises a batch run.
type Report struct {
	Op      string
	Results []Result
	Solved  int
	Failed  int
	Skipped int
	Elapsed time.Duration
}

// Status maps the report to the 0/1 convention of the engine: 0 only when
// every pose was solved.
func (r Report) Status() int {
	if r.Failed > 0 || r.Skipped > 0 {
		return 1
	}
	return 0
}

// Err joins the per-pose errors, or returns nil when none failed.
func (r Report) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return errors.Join(errs...)
}

// Options configures a Runner.
type Options struct {
	// Workers bounds the number of poses solved concurrently; zero or less
	// uses GOMAXPROCS.
	Workers int

	// Logger receives per-pose failures at debug level and a summary at
	// info level. Nil uses the default logger.
	Logger *log.Logger

	// Metrics records outcomes and latency. Nil disables recording.
	Metrics *metrics.SolverMetrics
}

// Runner solves batches with a shared engine. The engine is immutable, so
// a Runner is safe for concurrent use.
type Runner[T kinematics.Float] struct {
	engine  *kinematics.Engine[T]
	workers int
	log     *log.Logger
	metrics *metrics.SolverMetrics
}

// New creates a runner for engine.
func New[T kinematics.Float](engine *kinematics.Engine[T], opts Options) *Runner[T] {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.GetLogger("batch")
	}
	return &Runner[T]{
		engine:  engine,
		workers: workers,
		log:     logger,
		metrics: opts.Metrics,
	}
}

// InverseAll writes the joint angles of every pose. The returned error is
// non-nil only when ctx ends the run early; pose failures are in the report.
func (r *Runner[T]) InverseAll(ctx context.Context, poses []kinematics.Pose[T]) (Report, error) {
	return r.run(ctx, metrics.OpInverse, len(poses), func(i int) (kinematics.Branch, error) {
		return kinematics.BranchNone, r.engine.InversePose(&poses[i])
	})
}

// ForwardAll writes the cartesian position of every pose. Error semantics
// match InverseAll.
func (r *Runner[T]) ForwardAll(ctx context.Context, poses []kinematics.Pose[T]) (Report, error) {
	return r.run(ctx, metrics.OpForward, len(poses), func(i int) (kinematics.Branch, error) {
		return r.engine.ForwardPose(&poses[i])
	})
}

func (r *Runner[T]) run(ctx context.Context, op string, n int, solve func(int) (kinematics.Branch, error)) (Report, error) {
	start := time.Now()
	rep := Report{Op: op, Results: make([]Result, n)}
	for i := range rep.Results {
		rep.Results[i].Index = i
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := &rep.Results[i]
			t0 := time.Now()
			res.Branch, res.Err = solve(i)
			res.Elapsed = time.Since(t0)
			if res.Err != nil {
				res.Status = StatusFailed
				var de *derrors.DeltaError
				if errors.As(res.Err, &de) {
					de.SetPose(i)
				}
			} else {
				res.Status = StatusOK
			}
			return nil
		})
	}
	// pose failures stay in the results; only cancellation reaches Wait
	waitErr := g.Wait()

	for _, res := range rep.Results {
		switch res.Status {
		case StatusOK:
			rep.Solved++
		case StatusFailed:
			rep.Failed++
			r.log.WithFields(log.Fields{
				"op":   op,
				"pose": res.Index,
				"code": string(derrors.CodeOf(res.Err)),
			}).Debug(res.Err.Error())
		default:
			rep.Skipped++
		}
		r.record(op, res)
	}
	if r.metrics != nil {
		r.metrics.RecordSkipped(op, rep.Skipped)
	}
	rep.Elapsed = time.Since(start)

	r.log.WithFields(log.Fields{
		"op":      op,
		"poses":   n,
		"solved":  rep.Solved,
		"failed":  rep.Failed,
		"skipped": rep.Skipped,
		"workers": r.workers,
	}).Infof("batch finished in %s", rep.Elapsed.Round(time.Microsecond))

	if waitErr != nil {
		return rep, waitErr
	}
	if rep.Skipped > 0 {
		return rep, ctx.Err()
	}
	return rep, nil
}

func (r *Runner[T]) record(op string, res Result) {
	if r.metrics == nil || res.Status == StatusSkipped {
		return
	}
	r.metrics.RecordSolve(op, string(derrors.CodeOf(res.Err)), res.Elapsed)
	if res.Status == StatusOK && op == metrics.OpForward {
		r.metrics.RecordBranch(res.Branch.String())
	}
}
