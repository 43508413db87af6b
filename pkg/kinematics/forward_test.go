// Forward kinematics tests
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package kinematics

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	derrors "github.com/byq77/DeltaKinematics/pkg/errors"
)

func toR3(v vec3[float64]) r3.Vec {
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}
}

func TestRoundTrip(t *testing.T) {
	e := New(testDimensions())

	tests := []struct {
		name    string
		x, y, z float64
	}{
		{"centre", 0, 0, -500},
		{"centre low", 0, 0, -700},
		{"off axis", 50, 30, -450},
		{"negative x", -80, 20, -520},
		{"small offset", 10, 0, -500},
		{"second root", 120, -60, -600},
		{"wide x", 200, 0, -500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poses := []Pose[float64]{{X: tt.x, Y: tt.y, Z: tt.z}}
			require.NoError(t, e.SolveIK(poses))

			want := poses[0]
			poses[0].X, poses[0].Y, poses[0].Z = 0, 0, 0
			require.NoError(t, e.SolveFK(poses))

			if diff := cmp.Diff(want, poses[0], cmpopts.EquateApprox(1e-6, 1e-6)); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSolveFKSymmetricPoseUsesDegenerateBranch(t *testing.T) {
	e := New(testDimensions())
	p := Pose[float64]{Z: -500}
	require.NoError(t, e.InversePose(&p))

	knees := e.geo.knees(p.Phi1, p.Phi2, p.Phi3)
	require.Equal(t, knees[0][2], knees[1][2])
	require.Equal(t, knees[1][2], knees[2][2])

	p.Z = 0
	branch, err := e.ForwardPose(&p)
	require.NoError(t, err)
	assert.Equal(t, BranchDegenerate, branch)
	assert.InDelta(t, 0, p.X, 1e-9)
	assert.InDelta(t, 0, p.Y, 1e-9)
	assert.InDelta(t, -500, p.Z, 1e-9)
}

func TestSolveFKOffAxisUsesGeneralBranch(t *testing.T) {
	e := New(testDimensions())
	p := Pose[float64]{X: 50, Y: 30, Z: -450}
	require.NoError(t, e.InversePose(&p))

	branch, err := e.ForwardPose(&p)
	require.NoError(t, err)
	assert.Equal(t, BranchGeneral, branch)
	assert.Equal(t, "general", branch.String())
}

func TestGeneralCandidatesDisambiguation(t *testing.T) {
	e := New(testDimensions())
	p := Pose[float64]{X: 120, Y: -60, Z: -600}
	require.NoError(t, e.InversePose(&p))

	knees := e.geo.knees(p.Phi1, p.Phi2, p.Phi3)
	c, err := e.geo.generalCandidates(knees)
	require.NoError(t, err)

	// both candidates lie on all three spheres
	for _, cand := range c {
		for _, k := range knees {
			assert.InDelta(t, 530, r3.Norm(r3.Sub(toR3(cand), toR3(k))), 1e-6)
		}
	}

	// the +sqrt root sits above the base and must be rejected
	require.Greater(t, c[0][2], 0.0)
	require.Less(t, c[1][2], 0.0)

	got, err := e.pickCandidate(c)
	require.NoError(t, err)
	assert.Equal(t, c[1], got)

	survivor := []Pose[float64]{{X: got[0], Y: got[1], Z: got[2]}}
	require.NoError(t, e.SolveIK(survivor))
	assert.InDelta(t, p.Phi1, survivor[0].Phi1, 1e-6)
	assert.InDelta(t, p.Phi2, survivor[0].Phi2, 1e-6)
	assert.InDelta(t, p.Phi3, survivor[0].Phi3, 1e-6)
}

func TestPickCandidateRejectsNonNegativeZ(t *testing.T) {
	e := New(testDimensions())

	// the mirror image of a valid pose through the base plane satisfies
	// the same distances to level knees but must never be chosen
	c := [2]vec3[float64]{{0, 0, 500}, {0, 0, 0}}
	_, err := e.pickCandidate(c)
	require.Error(t, err)
	assert.True(t, derrors.Is(err, derrors.ErrSingularConfiguration))

	c = [2]vec3[float64]{{0, 0, 500}, {0, 0, -500}}
	got, err := e.pickCandidate(c)
	require.NoError(t, err)
	assert.Equal(t, vec3[float64]{0, 0, -500}, got)
}

func TestSolveFKFailures(t *testing.T) {
	short := testDimensions()
	short.LowerArm = 100

	tests := []struct {
		name   string
		dim    Dimensions[float64]
		angles [3]float64
		code   derrors.ErrorCode
		branch Branch
	}{
		{"two equal knee heights", testDimensions(), [3]float64{-30, 0, 0}, derrors.ErrDegenerateGeometry, BranchGeneral},
		{"lower candidate violates joint limit", testDimensions(), [3]float64{-40, -40, -40}, derrors.ErrSingularConfiguration, BranchDegenerate},
		{"spheres apart, level knees", short, [3]float64{0, 0, 0}, derrors.ErrNoRealSolution, BranchDegenerate},
		{"spheres apart", short, [3]float64{10, 20, 30}, derrors.ErrNoRealSolution, BranchGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(tt.dim)
			p := Pose[float64]{X: 1, Y: 2, Z: 3, Phi1: tt.angles[0], Phi2: tt.angles[1], Phi3: tt.angles[2]}
			before := p

			branch, err := e.ForwardPose(&p)
			require.Error(t, err)
			assert.Equal(t, tt.branch, branch)
			assert.True(t, derrors.Is(err, tt.code), "expected %s, got %v", tt.code, err)
			assert.True(t, derrors.IsForward(err))
			assert.Equal(t, before, p, "failed pose must stay untouched")
		})
	}
}

func TestSolveFKBatchStatus(t *testing.T) {
	e := New(testDimensions())
	poses := []Pose[float64]{
		{Phi1: 10, Phi2: 20, Phi3: 30},
		{Phi1: -40, Phi2: -40, Phi3: -40},
		{Phi1: 90, Phi2: 90, Phi3: 90},
	}

	err := e.SolveFK(poses)
	assert.Equal(t, 1, Status(err))
	assert.InDelta(t, -482.11819874593107, poses[0].Z, 1e-6)
	assert.Equal(t, 0.0, poses[2].Z, "poses after the failure are not solved")
}

func TestSolveFKIdempotent(t *testing.T) {
	e := New(testDimensions())
	a := []Pose[float64]{{Phi1: 10, Phi2: 20, Phi3: 30}, {Phi1: 90, Phi2: 90, Phi3: 90}}
	require.NoError(t, e.SolveFK(a))

	b := []Pose[float64]{{Phi1: 10, Phi2: 20, Phi3: 30}, {Phi1: 90, Phi2: 90, Phi3: 90}}
	require.NoError(t, e.SolveFK(b))
	require.NoError(t, e.SolveFK(b))

	assert.Equal(t, a, b)
}

func TestEngineFloat32(t *testing.T) {
	e := New(Dimensions[float32]{
		BaseSide:              660,
		PlatformSide:          90,
		UpperArm:              200,
		LowerArm:              530,
		ParallelogramWidth:    70,
		MaxNegativeAngle:      -5,
		MinParallelogramAngle: 55,
	})

	poses := []Pose[float32]{{Z: -500}}
	require.NoError(t, e.SolveIK(poses))
	assert.InDelta(t, symmetricPhi, float64(poses[0].Phi1), 1e-3)
	assert.Equal(t, poses[0].Phi1, poses[0].Phi3)

	poses[0].Z = 0
	branch, err := e.ForwardPose(&poses[0])
	require.NoError(t, err)
	assert.Equal(t, BranchDegenerate, branch)
	assert.InDelta(t, -500, float64(poses[0].Z), 0.05)
}

func TestEngineConcurrentUse(t *testing.T) {
	e := New(testDimensions())
	want := Pose[float64]{X: 50, Y: 30, Z: -450}
	require.NoError(t, e.InversePose(&want))

	var wg sync.WaitGroup
	results := make([]Pose[float64], 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := Pose[float64]{Phi1: want.Phi1, Phi2: want.Phi2, Phi3: want.Phi3}
			if _, err := e.ForwardPose(&p); err == nil {
				results[i] = p
			}
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
			t.Errorf("goroutine %d (-want +got):\n%s", i, diff)
		}
	}
}
