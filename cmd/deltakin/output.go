// Terminal tables
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package main

import (
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/byq77/DeltaKinematics/pkg/batch"
	derrors "github.com/byq77/DeltaKinematics/pkg/errors"
	"github.com/byq77/DeltaKinematics/pkg/kinematics"
	"github.com/byq77/DeltaKinematics/pkg/metrics"
)

var (
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")

	headerStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	okStyle     = cellStyle.Foreground(colorGreen)
	failStyle   = cellStyle.Foreground(colorRed)
)

// missing fills cells a failed pose has no value for.
const missing = "-"

// num formats a length or angle to 4 decimals without a negative zero.
func num(v float64) string {
	if math.Abs(v) < 5e-5 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func renderTable(headers []string, rows [][]string, statusCol int) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == statusCol && row >= 0 && row < len(rows) {
				if v := rows[row][col]; v == "ok" || v == "0" {
					return okStyle
				}
				return failStyle
			}
			return cellStyle
		})
	return t.Render()
}

// resultTable renders one row per pose. Failed rows show the error code in
// place of the solved values.
func resultTable(op string, names []string, poses []kinematics.Pose[float64], rep batch.Report) string {
	headers := []string{"pose", "x", "y", "z", "phi1", "phi2", "phi3"}
	if op == metrics.OpForward {
		headers = append(headers, "branch")
	}
	headers = append(headers, "status")

	rows := make([][]string, 0, len(poses))
	for i, p := range poses {
		res := rep.Results[i]
		row := []string{names[i]}

		switch {
		case res.Status == batch.StatusOK:
			row = append(append(row, positionCells(p)...), angleCells(p)...)
		case op == metrics.OpInverse:
			row = append(append(row, positionCells(p)...), missing, missing, missing)
		default:
			row = append(append(row, missing, missing, missing), angleCells(p)...)
		}
		if op == metrics.OpForward {
			if res.Status == batch.StatusOK {
				row = append(row, res.Branch.String())
			} else {
				row = append(row, missing)
			}
		}

		switch res.Status {
		case batch.StatusOK:
			row = append(row, "ok")
		case batch.StatusFailed:
			row = append(row, string(derrors.CodeOf(res.Err)))
		default:
			row = append(row, res.Status.String())
		}
		rows = append(rows, row)
	}
	return renderTable(headers, rows, len(headers)-1)
}

func positionCells(p kinematics.Pose[float64]) []string {
	x, y, z := p.Position()
	return []string{num(x), num(y), num(z)}
}

func angleCells(p kinematics.Pose[float64]) []string {
	phi1, phi2, phi3 := p.Angles()
	return []string{num(phi1), num(phi2), num(phi3)}
}
