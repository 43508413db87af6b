// Single leg inverse solver.
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package kinematics

import (
	derrors "github.com/byq77/DeltaKinematics/pkg/errors"
)

// solveLegAngle returns the joint angle that places the knee so that the
// parallelogram bridges base anchor b and platform joint p. Both points are
// expressed in the leg 1 frame, where the parallelogram offset axis is X.
func (g *geometry[T]) solveLegAngle(b, p vec3[T]) (T, error) {
	l := g.dim.LowerArm
	L := g.dim.UpperArm

	// projection of the parallelogram on the YZ plane
	lyz := l*l - p[0]*p[0]
	if lyz <= 0 {
		return 0, derrors.LegUnreachableError("parallelogram cannot bridge lateral offset")
	}
	lyz = sqrt(lyz)

	if p[0] != 0 {
		gamma := atanDeg(lyz / abs(p[0]))
		if gamma < g.dim.MinParallelogramAngle {
			return 0, derrors.UniversalJointLimitError(float64(gamma), float64(g.dim.MinParallelogramAngle))
		}
	}

	vy := p[1] - b[1]
	vz := p[2] - b[2]
	if vz >= 0 {
		return 0, derrors.DirectionConstraintError(float64(vz))
	}

	d := sqrt(vz*vz + vy*vy)
	if d >= lyz+L || d <= abs(lyz-L) {
		return 0, derrors.LegUnreachableError("upper arm and parallelogram cannot close")
	}

	alpha := 180 + atan2Deg(vz, vy)
	beta := acosDeg((L*L + d*d - lyz*lyz) / (2 * L * d))

	phi := alpha - beta
	if phi < g.dim.MaxNegativeAngle {
		return 0, derrors.MaxNegativeAngleError(float64(phi), float64(g.dim.MaxNegativeAngle))
	}
	return phi, nil
}
