// Forward position kinematics.
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package kinematics

// SolveFK writes X, Y, Z of every pose from its joint angles. It stops at the
// first pose that has no valid solution; that pose and the ones after it are
// left untouched.
func (e *Engine[T]) SolveFK(poses []Pose[T]) error {
	for i := range poses {
		if _, err := e.ForwardPose(&poses[i]); err != nil {
			return withPose(err, i)
		}
	}
	return nil
}

// ForwardPose solves a single pose in place and reports which trilateration
// branch produced the answer. The pose is only written on success.
func (e *Engine[T]) ForwardPose(p *Pose[T]) (Branch, error) {
	a := e.geo.knees(p.Phi1, p.Phi2, p.Phi3)

	var (
		pos    vec3[T]
		err    error
		branch Branch
	)
	if a[0][2] == a[1][2] && a[1][2] == a[2][2] {
		branch = BranchDegenerate
		pos, err = e.intersectLevel(a)
	} else {
		branch = BranchGeneral
		pos, err = e.intersectGeneral(a)
	}
	if err != nil {
		return branch, err
	}

	p.X, p.Y, p.Z = pos[0], pos[1], pos[2]
	return branch, nil
}
