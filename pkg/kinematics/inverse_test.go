// Inverse kinematics tests
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package kinematics

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "github.com/byq77/DeltaKinematics/pkg/errors"
)

const symmetricPhi = 23.326853817341657

func TestSolveIKSymmetricPose(t *testing.T) {
	e := New(testDimensions())
	poses := []Pose[float64]{{Z: -500}}

	require.NoError(t, e.SolveIK(poses))

	p := poses[0]
	assert.InDelta(t, symmetricPhi, p.Phi1, 1e-9)
	assert.Equal(t, p.Phi1, p.Phi2)
	assert.Equal(t, p.Phi1, p.Phi3)
	assert.Equal(t, -500.0, p.Z, "cartesian fields must not change")
}

func TestSolveIKKnownPoses(t *testing.T) {
	e := New(testDimensions())

	tests := []struct {
		x, y, z          float64
		phi1, phi2, phi3 float64
	}{
		{50, 30, -450, 18.303224379568363, 0.04716873954185985, 17.96993970383795},
		{-80, 20, -520, 33.260855266316796, 39.687509992548954, 15.71995023425879},
		{120, -60, -600, 42.70264978731949, 40.387283217296236, 71.62805727878842},
		{0, 0, -700, 81.2442997198148, 81.2442997198148, 81.2442997198148},
	}

	for _, tt := range tests {
		p := Pose[float64]{X: tt.x, Y: tt.y, Z: tt.z}
		require.NoError(t, e.InversePose(&p), "pose (%g, %g, %g)", tt.x, tt.y, tt.z)
		assert.InDelta(t, tt.phi1, p.Phi1, 1e-9)
		assert.InDelta(t, tt.phi2, p.Phi2, 1e-9)
		assert.InDelta(t, tt.phi3, p.Phi3, 1e-9)
	}
}

func TestSolveIKPartialWrite(t *testing.T) {
	e := New(testDimensions())

	// leg 1 reaches, leg 2 would need a joint angle below -5 degrees
	poses := []Pose[float64]{{X: 0, Y: 100, Z: -400, Phi1: 111, Phi2: 222, Phi3: 333}}
	err := e.SolveIK(poses)

	require.Error(t, err)
	assert.Equal(t, 1, Status(err))
	assert.InDelta(t, 23.414409073091008, poses[0].Phi1, 1e-9)
	assert.Equal(t, 222.0, poses[0].Phi2)
	assert.Equal(t, 333.0, poses[0].Phi3)

	var de *derrors.DeltaError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, derrors.ErrMaxNegativeAngle, de.Code)
	assert.Equal(t, 2, de.Leg)
	assert.Equal(t, 0, de.Pose)
}

func TestSolveIKStopsAtFirstFailingPose(t *testing.T) {
	e := New(testDimensions())
	poses := []Pose[float64]{
		{Z: -500},
		{Z: 100},
		{Z: -450, Phi1: 7, Phi2: 8, Phi3: 9},
	}

	err := e.SolveIK(poses)
	require.Error(t, err)

	var de *derrors.DeltaError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 1, de.Pose)
	assert.Equal(t, 1, de.Leg)
	assert.Equal(t, derrors.ErrDirectionConstraint, de.Code)

	assert.InDelta(t, symmetricPhi, poses[0].Phi1, 1e-9)
	assert.Equal(t, Pose[float64]{Z: -450, Phi1: 7, Phi2: 8, Phi3: 9}, poses[2])
}

func TestSolveIKIdempotent(t *testing.T) {
	e := New(testDimensions())
	first := []Pose[float64]{{X: 50, Y: 30, Z: -450}, {X: -80, Y: 20, Z: -520}}
	require.NoError(t, e.SolveIK(first))

	second := make([]Pose[float64], len(first))
	copy(second, first)
	require.NoError(t, e.SolveIK(second))

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated solve changed the result (-first +second):\n%s", diff)
	}
}

func TestSolveIKEmptyBatch(t *testing.T) {
	e := New(testDimensions())
	assert.NoError(t, e.SolveIK(nil))
	assert.Equal(t, 0, Status(e.SolveIK([]Pose[float64]{})))
}

func TestSolveIKLegFailureCodes(t *testing.T) {
	e := New(testDimensions())

	tests := []struct {
		name string
		pose Pose[float64]
		code derrors.ErrorCode
		leg  int
	}{
		{"above base", Pose[float64]{Z: 10}, derrors.ErrDirectionConstraint, 1},
		{"too close to base", Pose[float64]{Z: -300}, derrors.ErrMaxNegativeAngle, 1},
		{"out of reach", Pose[float64]{Z: -1000}, derrors.ErrLegUnreachable, 1},
		{"far sideways", Pose[float64]{X: 600, Z: -300}, derrors.ErrLegUnreachable, 1},
		{"beyond joint limit", Pose[float64]{X: 400, Z: -400}, derrors.ErrUniversalJointLimit, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.pose
			err := e.InversePose(&p)
			require.Error(t, err)

			var de *derrors.DeltaError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tt.code, de.Code)
			assert.Equal(t, tt.leg, de.Leg)
			assert.True(t, derrors.IsInverse(err))
		})
	}
}
