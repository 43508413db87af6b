// workspace command
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/byq77/DeltaKinematics/pkg/workspace"
)

func (a *app) workspaceCommand() *cobra.Command {
	var (
		heights []float64
		step    float64
		extent  float64
		out     string
	)

	cmd := &cobra.Command{
		Use:   "workspace",
		Short: "Scan the reachable XY slice at fixed heights",
		Long: `Solve inverse kinematics on a square grid centred on the origin at each
height given with --z and report how much of it the platform can reach.

The grid spans +/- --extent in x and y (default: upper plus lower arm length)
with --step spacing. With --out every slice is also plotted; the image format
follows the file extension (.png, .svg, .pdf). When several heights are
scanned the height is appended to the file name, e.g. slice_z-500.png.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, _, err := a.loadRobot()
			if err != nil {
				return err
			}

			scanner := workspace.NewScanner(engine, workspace.Options{
				Workers: a.workers,
				Logger:  a.log.WithPrefix("workspace"),
				Metrics: a.metrics,
			})

			var rows [][]string
			for _, z := range heights {
				slice, err := scanner.Scan(cmd.Context(), z, step, extent)
				if err != nil {
					return err
				}
				rows = append(rows, sliceRow(slice))

				if out == "" {
					continue
				}
				path := out
				if len(heights) > 1 {
					path = plotPath(out, z)
				}
				if err := slice.SavePlot(path); err != nil {
					return err
				}
				a.log.WithField("path", path).Info("workspace plot written")
			}

			headers := []string{"z", "step", "points", "reachable", "percent", "x range", "y range"}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, -1))
			return nil
		},
	}

	cmd.Flags().Float64SliceVar(&heights, "z", []float64{-500}, "slice heights [mm], repeat or comma separate")
	cmd.Flags().Float64Var(&step, "step", 10, "grid spacing [mm]")
	cmd.Flags().Float64Var(&extent, "extent", 0, "grid half width [mm] (default: arm reach)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "plot file (.png, .svg, .pdf)")

	return cmd
}

func sliceRow(s *workspace.Slice) []string {
	row := []string{num(s.Z), num(s.Step), strconv.Itoa(len(s.Points)),
		strconv.Itoa(s.Reachable), strconv.FormatFloat(100*s.Ratio(), 'f', 2, 64)}
	if minX, maxX, minY, maxY, ok := s.Bounds(); ok {
		return append(row, num(minX)+" .. "+num(maxX), num(minY)+" .. "+num(maxY))
	}
	return append(row, missing, missing)
}

// plotPath inserts the height before the extension: slice.png -> slice_z-500.png
func plotPath(out string, z float64) string {
	ext := filepath.Ext(out)
	return strings.TrimSuffix(out, ext) + "_z" + strconv.FormatFloat(z, 'f', -1, 64) + ext
}
