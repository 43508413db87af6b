// demo command
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	derrors "github.com/byq77/DeltaKinematics/pkg/errors"
	"github.com/byq77/DeltaKinematics/pkg/kinematics"
	"github.com/byq77/DeltaKinematics/pkg/metrics"
)

func (a *app) demoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Solve IK of (0, 0, -500) and FK back from the joint angles",
		Long: `Run the reference round trip on a one-pose buffer:

  1. inverse kinematics of the platform position (0, 0, -500)
  2. clear the position, keeping the joint angles
  3. forward kinematics from the joint angles

Both steps print the pose and their 0/1 status. The symmetric target makes
every knee the same height, so the forward step uses the level-knee branch.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runDemo(cmd)
		},
	}
}

func (a *app) runDemo(cmd *cobra.Command) error {
	engine, _, err := a.loadRobot()
	if err != nil {
		return err
	}

	poses := []kinematics.Pose[float64]{{Z: -500}}

	start := time.Now()
	ikErr := engine.SolveIK(poses)
	a.metrics.RecordSolve(metrics.OpInverse, string(derrors.CodeOf(ikErr)), time.Since(start))
	ik := poses[0]

	var fkErr error
	branch := kinematics.BranchNone
	if ikErr == nil {
		poses[0].X, poses[0].Y, poses[0].Z = 0, 0, 0
		start = time.Now()
		branch, fkErr = engine.ForwardPose(&poses[0])
		a.metrics.RecordSolve(metrics.OpForward, string(derrors.CodeOf(fkErr)), time.Since(start))
		if fkErr == nil {
			a.metrics.RecordBranch(branch.String())
		}
	}
	fk := poses[0]

	rows := [][]string{
		demoRow("inverse", ik, ikErr),
	}
	if ikErr == nil {
		row := demoRow("forward", fk, fkErr)
		row[len(row)-2] = branch.String()
		rows = append(rows, row)
	}
	headers := []string{"step", "x", "y", "z", "phi1", "phi2", "phi3", "branch", "status"}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, len(headers)-1))

	if ikErr != nil {
		return fmt.Errorf("inverse step: %w", ikErr)
	}
	if fkErr != nil {
		return fmt.Errorf("forward step: %w", fkErr)
	}
	return nil
}

func demoRow(step string, p kinematics.Pose[float64], err error) []string {
	status := strconv.Itoa(kinematics.Status(err))
	if code := derrors.CodeOf(err); code != "" {
		status += " " + string(code)
	}
	row := append([]string{step}, positionCells(p)...)
	row = append(row, angleCells(p)...)
	return append(row, missing, status)
}
