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

package main

import (
	"log"
	"os"

	"github.com/dl3kv/raycov/lib"
	svg "github.com/twpayne/go-svg"
	"github.com/twpayne/go-svg/svgpath"
)

// walls2SVG writes a wall list out as an SVG floor plan: one <path>
// per wall, scale-converted from meters to mm (round-trips with
// lib.ImportWalls, whose "M x,y L x,y" path grammar this emits).
func walls2SVG(walls []lib.Wall, fOut string) (err error) {
	f := 1000.0 // meters -> mm
	bb := lib.NewBoundingBox()
	for _, w := range walls {
		bb.Include(w.A)
		bb.Include(w.B)
	}
	var elems []svg.Element
	for _, w := range walls {
		path := svgpath.New()
		path.MoveToAbs([]float64{f * w.A.X, f * w.A.Y})
		path.LineToAbs([]float64{f * w.B.X, f * w.B.Y})
		style := svg.String("stroke:#000000;stroke-opacity:1;stroke-width:2;stroke-dasharray:none")
		elems = append(elems, svg.Path().Style(style).Fill("none").D(path))
	}

	graph := svg.New()
	w, h := f*(bb.Xmax-bb.Xmin), f*(bb.Ymax-bb.Ymin)
	log.Printf("Width= %.3fmm, Height=%.3fmm", w, h)
	graph.WidthHeight(w, h, svg.MM)
	graph.ViewBox(f*bb.Xmin, f*bb.Ymin, w, h)
	graph.AppendChildren(elems...)

	var fp *os.File
	if fp, err = os.Create(fOut); err != nil {
		return
	}
	if _, err = graph.WriteToIndent(fp, "", "  "); err != nil {
		return
	}
	err = fp.Close()
	return
}
