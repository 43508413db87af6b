// Frame rotations exploiting the three-fold symmetry of the legs.
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package kinematics

import (
	"gonum.org/v1/gonum/spatial/r3"
)

const sin120 = 0.866025403784439

var (
	// rotZ120 rotates by +120 degrees about the vertical axis.
	rotZ120 = r3.NewMat([]float64{
		-0.5, -sin120, 0,
		sin120, -0.5, 0,
		0, 0, 1,
	})

	// rotZMinus120 rotates by -120 degrees about the vertical axis.
	rotZMinus120 = r3.NewMat([]float64{
		-0.5, sin120, 0,
		-sin120, -0.5, 0,
		0, 0, 1,
	})
)

// rotate applies one of the fixed rotation matrices to p.
func rotate[T Float](m *r3.Mat, p vec3[T]) vec3[T] {
	v := m.MulVec(r3.Vec{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])})
	return vec3[T]{T(v.X), T(v.Y), T(v.Z)}
}
