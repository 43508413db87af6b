// Inverse position kinematics.
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package kinematics

import (
	"errors"

	derrors "github.com/byq77/DeltaKinematics/pkg/errors"
)

// Engine computes inverse and forward position kinematics for one robot.
// It holds only immutable geometry and is safe for concurrent use.
type Engine[T Float] struct {
	geo geometry[T]
}

// New builds an engine for the given dimensions. It never fails; dimensions
// inconsistent with a requested pose surface as solve errors.
func New[T Float](dim Dimensions[T]) *Engine[T] {
	return &Engine[T]{geo: newGeometry(dim)}
}

// Dimensions returns the dimensions the engine was built with.
func (e *Engine[T]) Dimensions() Dimensions[T] {
	return e.geo.dim
}

// SolveIK writes Phi1..Phi3 of every pose from its X, Y, Z. It stops at the
// first failing leg and returns its error; angles written before the failure
// (earlier poses and earlier legs of the failing pose) stay written.
func (e *Engine[T]) SolveIK(poses []Pose[T]) error {
	for i := range poses {
		if err := e.InversePose(&poses[i]); err != nil {
			return withPose(err, i)
		}
	}
	return nil
}

// InversePose solves a single pose in place with the same partial-write rule
// as SolveIK.
func (e *Engine[T]) InversePose(p *Pose[T]) error {
	g := &e.geo
	b := g.baseVertices[0]
	pp := g.platformJoints[0]
	tcp := vec3[T]{p.X, p.Y, p.Z}

	phi, err := g.solveLegAngle(b, tcp.add(pp))
	if err != nil {
		return withLeg(err, 1)
	}
	p.Phi1 = phi

	phi, err = g.solveLegAngle(b, rotate(rotZMinus120, tcp).add(pp))
	if err != nil {
		return withLeg(err, 2)
	}
	p.Phi2 = phi

	phi, err = g.solveLegAngle(b, rotate(rotZ120, tcp).add(pp))
	if err != nil {
		return withLeg(err, 3)
	}
	p.Phi3 = phi

	return nil
}

// reachable reports whether every leg constraint holds at the position,
// without touching any caller buffer.
func (e *Engine[T]) reachable(pos vec3[T]) bool {
	candidate := Pose[T]{X: pos[0], Y: pos[1], Z: pos[2]}
	return e.InversePose(&candidate) == nil
}

func withLeg(err error, leg int) error {
	var de *derrors.DeltaError
	if errors.As(err, &de) {
		de.SetLeg(leg)
	}
	return err
}

func withPose(err error, index int) error {
	var de *derrors.DeltaError
	if errors.As(err, &de) {
		de.SetPose(index)
	}
	return err
}
