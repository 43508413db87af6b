// Package workspace scans the reachable workspace of a delta robot.
//
// A scan solves inverse kinematics on a square XY grid at a fixed height and
// records which grid points satisfy every leg constraint. The grid is laid out
// symmetrically around the origin so mirrored points are solved from exactly
// mirrored coordinates.
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package workspace

import (
	"context"
	"fmt"
	"math"

	"github.com/byq77/DeltaKinematics/pkg/batch"
	"github.com/byq77/DeltaKinematics/pkg/kinematics"
	"github.com/byq77/DeltaKinematics/pkg/log"
	"github.com/byq77/DeltaKinematics/pkg/metrics"
	"github.com/byq77/DeltaKinematics/pkg/pool"
)

// maxPoints bounds the grid size of a single scan.
const maxPoints = 4_000_000

// Options configures a scan.
type Options struct {
	// Z is the platform height of the slice [mm].
	Z float64

	// Step is the grid spacing [mm]; must be positive.
	Step float64

	// Extent is the half width of the square grid [mm]. Zero uses the
	// horizontal reach of the arms, upper plus lower arm length.
	Extent float64

	Workers int
	Logger  *log.Logger
	Metrics *metrics.SolverMetrics
}

// Point is one grid sample.
type Point struct {
	X, Y      float64
	Reachable bool
}

// Slice is the result of a scan at one height.
type Slice struct {
	Z         float64
	Step      float64
	Extent    float64
	Points    []Point
	Reachable int
}

// Ratio returns the share of grid points that are reachable.
func (s *Slice) Ratio() float64 {
	if len(s.Points) == 0 {
		return 0
	}
	return float64(s.Reachable) / float64(len(s.Points))
}

// Bounds returns the bounding box of the reachable points. ok is false when
// nothing is reachable.
func (s *Slice) Bounds() (minX, maxX, minY, maxY float64, ok bool) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range s.Points {
		if !p.Reachable {
			continue
		}
		ok = true
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return minX, maxX, minY, maxY, ok
}

// Scanner scans slices of one robot. Pose buffers are pooled, so scanning
// many heights with one Scanner allocates little beyond the returned points.
// A Scanner is safe for concurrent use.
type Scanner[T kinematics.Float] struct {
	engine  *kinematics.Engine[T]
	runner  *batch.Runner[T]
	log     *log.Logger
	metrics *metrics.SolverMetrics
	poses   pool.Slices[kinematics.Pose[T]]
}

// NewScanner creates a scanner for engine. Only the Workers, Logger and
// Metrics fields of opts are used.
func NewScanner[T kinematics.Float](engine *kinematics.Engine[T], opts Options) *Scanner[T] {
	logger := opts.Logger
	if logger == nil {
		logger = log.GetLogger("workspace")
	}
	return &Scanner[T]{
		engine: engine,
		runner: batch.New(engine, batch.Options{
			Workers: opts.Workers,
			Logger:  logger,
			Metrics: opts.Metrics,
		}),
		log:     logger,
		metrics: opts.Metrics,
	}
}

// Scan solves every grid point of the slice described by opts.
func Scan[T kinematics.Float](ctx context.Context, engine *kinematics.Engine[T], opts Options) (*Slice, error) {
	return NewScanner(engine, opts).Scan(ctx, opts.Z, opts.Step, opts.Extent)
}

// Scan solves the grid at height z with the given spacing. A zero extent
// uses the horizontal reach of the arms, upper plus lower arm length.
func (s *Scanner[T]) Scan(ctx context.Context, z, step, extent float64) (*Slice, error) {
	if !(step > 0) {
		return nil, fmt.Errorf("workspace: step must be positive, got %v", step)
	}
	if extent == 0 {
		dim := s.engine.Dimensions()
		extent = float64(dim.UpperArm + dim.LowerArm)
	}
	if !(extent > 0) {
		return nil, fmt.Errorf("workspace: extent must be positive, got %v", extent)
	}

	// bound the half count in floating point so the int conversion and the
	// point count below cannot overflow
	half := math.Floor(extent / step)
	if half > (math.Sqrt(maxPoints)-1)/2 {
		return nil, fmt.Errorf("workspace: grid of %[1]gx%[1]g points is too large, increase the step", 2*half+1)
	}
	n := int(half)
	side := 2*n + 1

	poses := s.poses.Get(side * side)
	defer s.poses.Put(poses)
	points := make([]Point, 0, side*side)
	for j := -n; j <= n; j++ {
		y := float64(j) * step
		for i := -n; i <= n; i++ {
			x := float64(i) * step
			k := len(points)
			points = append(points, Point{X: x, Y: y})
			poses[k] = kinematics.Pose[T]{X: T(x), Y: T(y), Z: T(z)}
		}
	}

	rep, err := s.runner.InverseAll(ctx, poses)
	if err != nil {
		return nil, fmt.Errorf("workspace: scan at z=%g: %w", z, err)
	}

	slice := &Slice{Z: z, Step: step, Extent: extent, Points: points}
	for i, res := range rep.Results {
		if res.Status == batch.StatusOK {
			slice.Points[i].Reachable = true
			slice.Reachable++
		}
	}

	if s.metrics != nil {
		s.metrics.SetReachable(z, slice.Ratio())
	}
	s.log.WithFields(log.Fields{
		"z":         z,
		"step":      step,
		"points":    len(points),
		"reachable": slice.Reachable,
	}).Infof("workspace slice %.1f%% reachable", 100*slice.Ratio())

	return slice, nil
}
