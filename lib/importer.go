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
	"encoding/xml"
	"io"
	"strconv"
	"strings"
)

//----------------------------------------------------------------------
// SVG floor-plan importer
//----------------------------------------------------------------------
//
// Floor plans are ordinary SVG: a <line> per wall, or a <path> whose
// "d" attribute is a sequence of absolute move/line commands (the
// exact subset cmd/convert/svg.go emits: "M x,y L x,y L x,y ..."). A
// material preset name may be attached via a "data-material"
// attribute; walls without one get DefaultMaterial.

// svgDoc mirrors just the elements the importer understands; unknown
// elements and attributes are ignored by encoding/xml.
type svgDoc struct {
	Lines []svgLine `xml:"line"`
	Paths []svgPath `xml:"path"`
	Gs    []svgDoc  `xml:"g"`
}

type svgLine struct {
	X1       float64 `xml:"x1,attr"`
	Y1       float64 `xml:"y1,attr"`
	X2       float64 `xml:"x2,attr"`
	Y2       float64 `xml:"y2,attr"`
	Material string  `xml:"data-material,attr"`
}

type svgPath struct {
	D        string `xml:"d,attr"`
	Material string `xml:"data-material,attr"`
}

// ImportWalls parses an SVG floor plan from r, scaling every
// coordinate by scale (meters per source unit), and returns the
// resulting walls. Elements without a data-material attribute get
// DefaultMaterial; an unrecognized data-material value is an error.
func ImportWalls(r io.Reader, scale float64) ([]Wall, error) {
	var doc svgDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, newError(InvalidGeometry, "parsing SVG floor plan: %v", err)
	}
	var walls []Wall
	if err := collectWalls(&doc, scale, &walls); err != nil {
		return nil, err
	}
	return walls, nil
}

func collectWalls(doc *svgDoc, scale float64, out *[]Wall) error {
	for _, l := range doc.Lines {
		mat, err := materialFor(l.Material)
		if err != nil {
			return err
		}
		a := Vec2{l.X1 * scale, l.Y1 * scale}
		b := Vec2{l.X2 * scale, l.Y2 * scale}
		w, err := NewWall(a, b, mat)
		if err != nil {
			return err
		}
		*out = append(*out, w)
	}
	for _, p := range doc.Paths {
		mat, err := materialFor(p.Material)
		if err != nil {
			return err
		}
		pts, err := parsePathPoints(p.D)
		if err != nil {
			return err
		}
		for i := 1; i < len(pts); i++ {
			a := pts[i-1].Mult(scale)
			b := pts[i].Mult(scale)
			w, err := NewWall(a, b, mat)
			if err != nil {
				return err
			}
			*out = append(*out, w)
		}
	}
	for i := range doc.Gs {
		if err := collectWalls(&doc.Gs[i], scale, out); err != nil {
			return err
		}
	}
	return nil
}

func materialFor(tag string) (Material, error) {
	if tag == "" {
		return DefaultMaterial, nil
	}
	return NamedMaterial(tag)
}

// parsePathPoints parses the "M x,y L x,y L x,y ..." subset of SVG
// path data (absolute moveto/lineto only, the only commands this
// codebase's own exporter ever writes).
func parsePathPoints(d string) (pts []Vec2, err error) {
	fields := strings.Fields(d)
	for _, f := range fields {
		switch f {
		case "M", "L":
			continue
		}
		coord := f
		if f[0] == 'M' || f[0] == 'L' {
			coord = f[1:]
		}
		x, y, err := parseCoordPair(coord)
		if err != nil {
			return nil, newError(InvalidGeometry, "malformed path data '%s': %v", d, err)
		}
		pts = append(pts, Vec2{x, y})
	}
	return pts, nil
}

func parseCoordPair(s string) (x, y float64, err error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return 0, 0, newError(InvalidGeometry, "expected 'x,y' pair, got '%s'", s)
	}
	if x, err = strconv.ParseFloat(parts[0], 64); err != nil {
		return
	}
	y, err = strconv.ParseFloat(parts[1], 64)
	return
}
