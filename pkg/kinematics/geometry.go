// Fixed anchor geometry derived from the robot dimensions.
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package kinematics

import (
	"fmt"
)

// Dimensions are the geometric features and constraints of a delta robot.
type Dimensions[T Float] struct {
	BaseSide              T // base equilateral triangle side [mm]
	PlatformSide          T // platform equilateral triangle side [mm]
	UpperArm              T // upper leg length [mm]
	LowerArm              T // lower leg parallelogram length [mm]
	ParallelogramWidth    T // lower leg parallelogram width [mm], stored only
	MaxNegativeAngle      T // most negative joint angle, knee above the base plane [deg]
	MinParallelogramAngle T // universal joint limit [deg]
}

// Validate checks that every length is strictly positive. The engine itself
// accepts any dimensions and fails lazily at solve time.
func (d Dimensions[T]) Validate() error {
	lengths := []struct {
		name  string
		value T
	}{
		{"base side", d.BaseSide},
		{"platform side", d.PlatformSide},
		{"upper arm", d.UpperArm},
		{"lower arm", d.LowerArm},
		{"parallelogram width", d.ParallelogramWidth},
	}
	for _, l := range lengths {
		if !(l.value > 0) {
			return fmt.Errorf("kinematics: %s must be positive, got %g", l.name, l.value)
		}
	}
	return nil
}

type vec3[T Float] [3]T

func (v vec3[T]) add(o vec3[T]) vec3[T] {
	return vec3[T]{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

func (v vec3[T]) norm2() T {
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
}

// geometry holds the anchors computed once from Dimensions.
type geometry[T Float] struct {
	dim Dimensions[T]

	wb T // planar distance from base frame to near base side
	ub T // planar distance from base frame to a base vertex
	wp T // planar distance from platform frame to near platform side
	up T // planar distance from platform frame to a platform vertex

	platformJoints [3]vec3[T] // platform-fixed U-joint virtual connections
	baseRevolute   [3]vec3[T] // base-fixed revolute joint points
	baseVertices   [3]vec3[T] // base-fixed vertices
}

func newGeometry[T Float](dim Dimensions[T]) geometry[T] {
	g := geometry[T]{dim: dim}
	sb, sp := dim.BaseSide, dim.PlatformSide

	g.wb = T(sqrt3/6) * sb
	g.ub = T(sqrt3/3) * sb
	g.wp = T(sqrt3/6) * sp
	g.up = T(sqrt3/3) * sp

	g.baseRevolute = [3]vec3[T]{
		{0, -g.wb, 0},
		{T(hsqrt3) * g.wb, g.wb / 2, 0},
		{-T(hsqrt3) * g.wb, g.wb / 2, 0},
	}
	g.platformJoints = [3]vec3[T]{
		{0, -g.up, 0},
		{sp / 2, -g.wp, 0},
		{-sp / 2, -g.wp, 0},
	}
	g.baseVertices = [3]vec3[T]{
		{sb / 2, -g.wb, 0},
		{0, -g.ub, 0},
		{-sb / 2, -g.wb, 0},
	}
	return g
}

// knees returns the three knee points for the given joint angles, each
// shifted by its platform joint offset so that the TCP lies at distance
// LowerArm from all three.
func (g *geometry[T]) knees(phi1, phi2, phi3 T) [3]vec3[T] {
	L := g.dim.UpperArm
	hsp := g.dim.PlatformSide / 2
	r2 := g.wb + L*cosDeg(phi2)
	r3 := g.wb + L*cosDeg(phi3)
	return [3]vec3[T]{
		{0, -g.wb - L*cosDeg(phi1) + g.up, -L * sinDeg(phi1)},
		{T(hsqrt3)*r2 - hsp, r2/2 - g.wp, -L * sinDeg(phi2)},
		{-T(hsqrt3)*r3 + hsp, r3/2 - g.wp, -L * sinDeg(phi3)},
	}
}
