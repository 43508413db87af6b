// ik and fk commands
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/byq77/DeltaKinematics/pkg/batch"
	"github.com/byq77/DeltaKinematics/pkg/config"
	"github.com/byq77/DeltaKinematics/pkg/kinematics"
	"github.com/byq77/DeltaKinematics/pkg/metrics"
)

func (a *app) ikCommand() *cobra.Command {
	var target kinematics.Pose[float64]

	cmd := &cobra.Command{
		Use:   "ik",
		Short: "Solve joint angles for cartesian targets",
		Long: `Solve the three joint angles for one or more platform positions.

With --x/--y/--z a single target is solved. Otherwise every [pose <name>]
section of the --config file is solved, each pose independently, and one
row per pose is printed. The command fails if any pose is unreachable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			explicit := anyChanged(cmd, "x", "y", "z")
			return a.runSolve(cmd, metrics.OpInverse, target, explicit)
		},
	}

	cmd.Flags().Float64Var(&target.X, "x", 0, "platform x [mm]")
	cmd.Flags().Float64Var(&target.Y, "y", 0, "platform y [mm]")
	cmd.Flags().Float64Var(&target.Z, "z", -500, "platform z [mm], negative below the base")

	return cmd
}

func (a *app) fkCommand() *cobra.Command {
	var target kinematics.Pose[float64]

	cmd := &cobra.Command{
		Use:   "fk",
		Short: "Solve the platform position for joint angles",
		Long: `Solve the platform position for one or more sets of joint angles.

With --phi1/--phi2/--phi3 a single set is solved. Otherwise every
[pose <name>] section of the --config file is solved from its phi values.
The trilateration branch used for each pose is reported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			explicit := anyChanged(cmd, "phi1", "phi2", "phi3")
			return a.runSolve(cmd, metrics.OpForward, target, explicit)
		},
	}

	cmd.Flags().Float64Var(&target.Phi1, "phi1", 0, "joint 1 angle [deg]")
	cmd.Flags().Float64Var(&target.Phi2, "phi2", 0, "joint 2 angle [deg]")
	cmd.Flags().Float64Var(&target.Phi3, "phi3", 0, "joint 3 angle [deg]")

	return cmd
}

func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// runSolve solves the flag pose, or the config poses when no pose flag was
// given and the config has some.
func (a *app) runSolve(cmd *cobra.Command, op string, flagPose kinematics.Pose[float64], explicit bool) error {
	engine, named, err := a.loadRobot()
	if err != nil {
		return err
	}
	if explicit || len(named) == 0 {
		named = []config.NamedPose{{Name: "-", Pose: flagPose}}
	}

	poses := config.Poses(named)
	runner := a.newRunner(engine)

	var rep batch.Report
	if op == metrics.OpInverse {
		rep, err = runner.InverseAll(cmd.Context(), poses)
	} else {
		rep, err = runner.ForwardAll(cmd.Context(), poses)
	}
	if err != nil {
		return err
	}

	names := make([]string, len(named))
	for i, np := range named {
		names[i] = np.Name
	}
	fmt.Fprintln(cmd.OutOrStdout(), resultTable(op, names, poses, rep))

	if rep.Failed > 0 {
		return fmt.Errorf("%d of %d poses failed: %w", rep.Failed, len(poses), rep.Err())
	}
	return nil
}
