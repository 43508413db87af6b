// Delta robot specific loaders.
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package config

import (
	"strings"

	"github.com/byq77/DeltaKinematics/pkg/kinematics"
)

const (
	// RobotSection holds the robot dimensions.
	RobotSection = "delta_robot"

	// PosePrefix starts every named pose section, e.g. [pose home].
	PosePrefix = "pose"

	DefaultMaxNegativeAngle      = -5.0
	DefaultMinParallelogramAngle = 55.0
)

// NamedPose is a pose read from a [pose <name>] section.
type NamedPose struct {
	Name string
	Pose kinematics.Pose[float64]
}

// LoadDimensions reads the [delta_robot] section. All five lengths are
// required and must be above zero; both angle limits have defaults.
func LoadDimensions(cfg *Config) (kinematics.Dimensions[float64], error) {
	var dim kinematics.Dimensions[float64]

	sec, err := cfg.GetSection(RobotSection)
	if err != nil {
		return dim, err
	}

	lengths := []struct {
		option string
		dst    *float64
	}{
		{"base_side", &dim.BaseSide},
		{"platform_side", &dim.PlatformSide},
		{"upper_arm_length", &dim.UpperArm},
		{"lower_arm_length", &dim.LowerArm},
		{"parallelogram_width", &dim.ParallelogramWidth},
	}
	for _, l := range lengths {
		if *l.dst, err = sec.GetFloatWithBounds(l.option, Above(0)); err != nil {
			return dim, err
		}
	}

	if dim.MaxNegativeAngle, err = sec.GetFloatWithBounds("max_negative_angle",
		Between(-90, 90), DefaultMaxNegativeAngle); err != nil {
		return dim, err
	}
	if dim.MinParallelogramAngle, err = sec.GetFloatWithBounds("min_parallelogram_angle",
		Between(0, 90), DefaultMinParallelogramAngle); err != nil {
		return dim, err
	}
	return dim, nil
}

// LoadPoses reads every [pose <name>] section in file order. Missing
// coordinates default to zero, so a section can describe a cartesian target
// (x, y, z) or a joint target (phi1, phi2, phi3).
func LoadPoses(cfg *Config) ([]NamedPose, error) {
	var poses []NamedPose
	for _, sec := range cfg.GetPrefixSections(PosePrefix + " ") {
		np := NamedPose{Name: strings.TrimSpace(strings.TrimPrefix(sec.GetName(), PosePrefix))}
		fields := []struct {
			option string
			dst    *float64
		}{
			{"x", &np.Pose.X},
			{"y", &np.Pose.Y},
			{"z", &np.Pose.Z},
			{"phi1", &np.Pose.Phi1},
			{"phi2", &np.Pose.Phi2},
			{"phi3", &np.Pose.Phi3},
		}
		for _, f := range fields {
			v, err := sec.GetFloat(f.option, 0)
			if err != nil {
				return nil, err
			}
			*f.dst = v
		}
		poses = append(poses, np)
	}
	return poses, nil
}

// Poses strips the names, keeping order.
func Poses(named []NamedPose) []kinematics.Pose[float64] {
	out := make([]kinematics.Pose[float64], len(named))
	for i, np := range named {
		out[i] = np.Pose
	}
	return out
}
