//----------------------------------------------------------------------
// This file is part of antgen.
// Copyright (C) 2024-present Bernd Fix >Y<,  DO3YQ
//
// antgen is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License,
// or (at your option) any later version.
//
// antgen is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.
//
// SPDX-License-Identifier: AGPL3.0-or-later
//----------------------------------------------------------------------

package lib

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Grid implements gonum's plotter.GridXYZ over a ReceiverGrid, so the
// dBm matrix can be fed straight into plotter.NewHeatMap.
type Grid struct {
	rg *ReceiverGrid
}

// NewGrid wraps a ReceiverGrid for heatmap plotting.
func NewGrid(rg *ReceiverGrid) *Grid {
	return &Grid{rg: rg}
}

// Dims returns the grid dimensions (columns, rows).
func (g *Grid) Dims() (c, r int) {
	return g.rg.Resolution, g.rg.Resolution
}

// X returns the x-axis value (meters) at column c.
func (g *Grid) X(c int) float64 {
	return (float64(c) + 0.5) * g.rg.CellW
}

// Y returns the y-axis value (meters) at row r.
func (g *Grid) Y(r int) float64 {
	return (float64(r) + 0.5) * g.rg.CellH
}

// Z returns the dBm value at column c, row r.
func (g *Grid) Z(c, r int) float64 {
	return g.rg.Power[r][c]
}

// PlotHeatmap renders the coverage matrix as a blue-red heatmap with
// a legend, in the teacher's moreland-palette style.
func PlotHeatmap(rg *ReceiverGrid, title string) (p *plot.Plot, err error) {
	g := NewGrid(rg)
	pal := moreland.SmoothBlueRed().Palette(30)
	hm := plotter.NewHeatMap(g, pal)

	p = plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"
	p.Add(hm)

	thumbs := plotter.PaletteThumbnailers(pal)
	for i := len(thumbs) - 1; i >= 0; i-- {
		t := thumbs[i]
		if i != 0 && i != len(thumbs)-1 {
			p.Legend.Add("", t)
			continue
		}
		var val float64
		switch i {
		case 0:
			val = hm.Min
		case len(thumbs) - 1:
			val = hm.Max
		}
		p.Legend.Add(fmt.Sprintf("%.2g dBm", val), t)
	}
	return
}

// SaveHeatmap renders and writes the coverage heatmap to fname; the
// image format is derived from the file extension (png, svg, pdf).
func SaveHeatmap(rg *ReceiverGrid, title, fname string, width, height vg.Length) error {
	p, err := PlotHeatmap(rg, title)
	if err != nil {
		return err
	}
	return p.Save(width, height, fname)
}
