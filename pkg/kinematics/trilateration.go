// Three sphere intersection for forward kinematics.
//
// Every sphere has its centre at a (platform shifted) knee point and radius
// LowerArm. Two real intersections exist in general; the one below the base
// whose legs satisfy every inverse constraint is the physical pose.
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package kinematics

import (
	derrors "github.com/byq77/DeltaKinematics/pkg/errors"
)

func (e *Engine[T]) intersectGeneral(a [3]vec3[T]) (vec3[T], error) {
	c, err := e.geo.generalCandidates(a)
	if err != nil {
		return vec3[T]{}, err
	}
	return e.pickCandidate(c)
}

func (e *Engine[T]) intersectLevel(a [3]vec3[T]) (vec3[T], error) {
	c, err := e.geo.levelCandidates(a)
	if err != nil {
		return vec3[T]{}, err
	}
	return e.pickCandidate(c)
}

// pickCandidate returns the first candidate that lies below the base and
// passes a full inverse solve.
func (e *Engine[T]) pickCandidate(c [2]vec3[T]) (vec3[T], error) {
	for _, p := range c {
		if p[2] < 0 && e.reachable(p) {
			return p, nil
		}
	}
	return vec3[T]{}, derrors.SingularConfigurationError()
}

// generalCandidates handles distinct knee heights. Subtracting sphere 1 and
// sphere 2 from sphere 3 gives two planes whose intersection is the line
// x = a4*y + a5, z = a6*y + a7; substituting into sphere 1 yields a quadratic
// in y. The +sqrt root comes first.
func (g *geometry[T]) generalCandidates(a [3]vec3[T]) ([2]vec3[T], error) {
	A1, A2, A3 := a[0], a[1], a[2]

	a11 := 2 * (A3[0] - A1[0])
	a12 := 2 * (A3[1] - A1[1])
	a13 := 2 * (A3[2] - A1[2])
	if a13 == 0 {
		return [2]vec3[T]{}, derrors.DegenerateGeometryError("elimination of sphere 1")
	}
	a21 := 2 * (A3[0] - A2[0])
	a22 := 2 * (A3[1] - A2[1])
	a23 := 2 * (A3[2] - A2[2])
	if a23 == 0 {
		return [2]vec3[T]{}, derrors.DegenerateGeometryError("elimination of sphere 2")
	}

	a3sq := A3.norm2()
	b1 := a3sq - A1.norm2()
	b2 := a3sq - A2.norm2()

	k1 := a11/a13 - a21/a23
	k2 := a12/a13 - a22/a23
	k3 := b2/a23 - b1/a13
	if k1 == 0 {
		return [2]vec3[T]{}, derrors.DegenerateGeometryError("plane intersection")
	}
	a4 := -k2 / k1
	a5 := -k3 / k1
	a6 := (-a21*a4 - a22) / a23
	a7 := (b2 - a21*a5) / a23

	qa := a4*a4 + 1 + a6*a6
	if qa == 0 {
		return [2]vec3[T]{}, derrors.DegenerateGeometryError("quadratic in y")
	}
	qb := 2*a4*(a5-A1[0]) - 2*A1[1] + 2*a6*(a7-A1[2])
	qc := a5*(a5-2*A1[0]) + a7*(a7-2*A1[2]) + A1.norm2() - g.dim.LowerArm*g.dim.LowerArm

	delta := qb*qb - 4*qa*qc
	if delta < 0 {
		return [2]vec3[T]{}, derrors.NoRealSolutionError(float64(delta))
	}
	sd := sqrt(delta)

	var c [2]vec3[T]
	for i, y := range [2]T{(-qb + sd) / (2 * qa), (-qb - sd) / (2 * qa)} {
		c[i] = vec3[T]{a4*y + a5, y, a6*y + a7}
	}
	return c, nil
}

// levelCandidates handles equal knee heights zn. The radical lines of the
// three circles fix (x, y); z then solves z^2 - 2*zn*z + C = 0, +sqrt root
// first.
func (g *geometry[T]) levelCandidates(a [3]vec3[T]) ([2]vec3[T], error) {
	A1, A2, A3 := a[0], a[1], a[2]
	zn := A1[2]

	m11 := 2 * (A3[0] - A1[0])
	m12 := 2 * (A3[1] - A1[1])
	m21 := 2 * (A3[0] - A2[0])
	m22 := 2 * (A3[1] - A2[1])
	a3sq := A3[0]*A3[0] + A3[1]*A3[1]
	r1 := a3sq - A1[0]*A1[0] - A1[1]*A1[1]
	r2 := a3sq - A2[0]*A2[0] - A2[1]*A2[1]

	det := m11*m22 - m12*m21
	if det == 0 {
		return [2]vec3[T]{}, derrors.DegenerateGeometryError("planar system")
	}
	x := (r1*m22 - m12*r2) / det
	y := (m11*r2 - r1*m21) / det

	qb := -2 * zn
	dx, dy := x-A1[0], y-A1[1]
	qc := zn*zn - g.dim.LowerArm*g.dim.LowerArm + dx*dx + dy*dy

	delta := qb*qb - 4*qc
	if delta < 0 {
		return [2]vec3[T]{}, derrors.NoRealSolutionError(float64(delta))
	}
	sd := sqrt(delta)

	return [2]vec3[T]{
		{x, y, (-qb + sd) / 2},
		{x, y, (-qb - sd) / 2},
	}, nil
}
