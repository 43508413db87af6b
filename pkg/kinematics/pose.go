// Pose and trajectory buffers shared by the inverse and forward solvers.
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package kinematics

import "fmt"

// Pose holds a TCP position and the three joint angles.
// Inverse kinematics reads X, Y, Z and writes the angles; forward kinematics
// reads the angles and writes X, Y, Z. The other triple is never touched.
type Pose[T Float] struct {
	X    T // cartesian position in base reference frame
	Y    T // cartesian position in base reference frame
	Z    T // cartesian position in base reference frame
	Phi1 T // joint 1 angle [deg], negative above the base plane
	Phi2 T // joint 2 angle [deg], negative above the base plane
	Phi3 T // joint 3 angle [deg], negative above the base plane
}

// Clear zeroes all six fields.
func (p *Pose[T]) Clear() {
	*p = Pose[T]{}
}

// Position returns the cartesian triple.
func (p Pose[T]) Position() (x, y, z T) {
	return p.X, p.Y, p.Z
}

// Angles returns the joint triple.
func (p Pose[T]) Angles() (phi1, phi2, phi3 T) {
	return p.Phi1, p.Phi2, p.Phi3
}

// String renders the pose on two lines, position first.
func (p Pose[T]) String() string {
	return fmt.Sprintf("x = %g y = %g z = %g\nphi1 = %g phi2 = %g phi3 = %g",
		p.X, p.Y, p.Z, p.Phi1, p.Phi2, p.Phi3)
}

// Trajectory is one sample of a time history. Velocity and acceleration are
// carried as data; nothing in this package computes them.
type Trajectory[T Float] struct {
	Pos   Pose[T] // tcp position
	Vel   Pose[T] // tcp velocity
	Accel Pose[T] // tcp acceleration
}
