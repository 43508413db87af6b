// Package kinematics provides closed-form position kinematics for a
// three-leg delta parallel robot with revolute inputs and parallelogram
// lower legs.
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package kinematics

import (
	"math"
)

// Float is the set of floating point types the engine can be instantiated with.
type Float interface {
	~float32 | ~float64
}

const (
	deg2rad = math.Pi / 180.0
	rad2deg = 180.0 / math.Pi
)

var (
	sqrt3  = math.Sqrt(3.0)
	hsqrt3 = math.Sqrt(3.0) / 2.0
)

// Branch identifies which trilateration solver produced a forward solution.
type Branch int

const (
	// BranchNone means no solver ran to completion
	BranchNone Branch = iota
	// BranchGeneral is the solver for distinct knee heights
	BranchGeneral
	// BranchDegenerate is the solver for equal knee heights
	BranchDegenerate
)

// String returns the branch name used in logs and metric labels
func (b Branch) String() string {
	switch b {
	case BranchGeneral:
		return "general"
	case BranchDegenerate:
		return "degenerate"
	default:
		return "none"
	}
}

// Status maps the result of SolveIK or SolveFK to the 0/1 status convention:
// 0 when every pose was solved, 1 otherwise.
func Status(err error) int {
	if err != nil {
		return 1
	}
	return 0
}

func sqrt[T Float](v T) T { return T(math.Sqrt(float64(v))) }

func abs[T Float](v T) T { return T(math.Abs(float64(v))) }

func sinDeg[T Float](deg T) T { return T(math.Sin(deg2rad * float64(deg))) }

func cosDeg[T Float](deg T) T { return T(math.Cos(deg2rad * float64(deg))) }

func atanDeg[T Float](v T) T { return T(rad2deg * math.Atan(float64(v))) }

func atan2Deg[T Float](y, x T) T { return T(rad2deg * math.Atan2(float64(y), float64(x))) }

func acosDeg[T Float](v T) T { return T(rad2deg * math.Acos(float64(v))) }
