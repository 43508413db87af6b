// Workspace slice plotting
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package workspace

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	reachableColor   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	unreachableColor = color.RGBA{R: 210, G: 210, B: 210, A: 255}
)

// PlotSize is the edge length of the square output image.
const PlotSize = 8 * vg.Inch

// SavePlot writes a scatter plot of the slice. The image format follows the
// file extension (.png, .svg, .pdf, ...).
func (s *Slice) SavePlot(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Reachable workspace at z = %g mm (%.1f%%)", s.Z, 100*s.Ratio())
	p.X.Label.Text = "X (mm)"
	p.Y.Label.Text = "Y (mm)"
	p.X.Min, p.X.Max = -s.Extent, s.Extent
	p.Y.Min, p.Y.Max = -s.Extent, s.Extent
	p.Add(plotter.NewGrid())

	reachable := make(plotter.XYs, 0, s.Reachable)
	unreachable := make(plotter.XYs, 0, len(s.Points)-s.Reachable)
	for _, pt := range s.Points {
		if pt.Reachable {
			reachable = append(reachable, plotter.XY{X: pt.X, Y: pt.Y})
		} else {
			unreachable = append(unreachable, plotter.XY{X: pt.X, Y: pt.Y})
		}
	}

	radius := vg.Points(1)
	for _, set := range []struct {
		name  string
		pts   plotter.XYs
		color color.Color
	}{
		{"unreachable", unreachable, unreachableColor},
		{"reachable", reachable, reachableColor},
	} {
		if len(set.pts) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(set.pts)
		if err != nil {
			return fmt.Errorf("failed to create %s scatter: %w", set.name, err)
		}
		sc.GlyphStyle.Color = set.color
		sc.GlyphStyle.Radius = radius
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(sc)
		p.Legend.Add(set.name, sc)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if err := p.Save(PlotSize, PlotSize, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}
