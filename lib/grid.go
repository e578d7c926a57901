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

// dBmFloor is the value stored when no ray crosses a cell: exactly
// what the aggregation formula yields with P_cell = 0.
const dBmFloor = -120

// nearTxDBm is the fixed value assigned to cells within the
// near-transmitter guard radius.
const nearTxDBm = -30

// ReceiverGrid is a regular R×R tiling of the environment; each cell
// stores one received-power estimate in dBm. Row j indexes y, column
// i indexes x, matching the coordinate linspaces x∈[0,W], y∈[0,H].
type ReceiverGrid struct {
	Width, Height float64
	Resolution    int
	CellW, CellH  float64
	Power         [][]float64 // [R][R] dBm
}

// NewReceiverGrid constructs a grid spanning (width,height) split into
// resolution×resolution cells, initialized to the dBm floor.
func NewReceiverGrid(width, height float64, resolution int) (*ReceiverGrid, error) {
	if resolution < 1 {
		return nil, newError(InvalidBudget, "resolution must be >= 1, got %d", resolution)
	}
	power := make([][]float64, resolution)
	for j := range power {
		row := make([]float64, resolution)
		for i := range row {
			row[i] = dBmFloor
		}
		power[j] = row
	}
	return &ReceiverGrid{
		Width: width, Height: height,
		Resolution: resolution,
		CellW:      width / float64(resolution),
		CellH:      height / float64(resolution),
		Power:      power,
	}, nil
}

// Center returns the center point of cell (i,j).
func (g *ReceiverGrid) Center(i, j int) Vec2 {
	return Vec2{
		X: (float64(i) + 0.5) * g.CellW,
		Y: (float64(j) + 0.5) * g.CellH,
	}
}

// BoundingBox returns the axis-aligned bounding box of cell (i,j).
func (g *ReceiverGrid) BoundingBox(i, j int) BoundingBox {
	x0, y0 := float64(i)*g.CellW, float64(j)*g.CellH
	return BoundingBox{Xmin: x0, Xmax: x0 + g.CellW, Ymin: y0, Ymax: y0 + g.CellH}
}

// CellOf returns the (i,j) indices of the cell containing p, clamped
// to the grid's valid range.
func (g *ReceiverGrid) CellOf(p Vec2) (i, j int) {
	i = int(p.X / g.CellW)
	j = int(p.Y / g.CellH)
	if i < 0 {
		i = 0
	}
	if i >= g.Resolution {
		i = g.Resolution - 1
	}
	if j < 0 {
		j = 0
	}
	if j >= g.Resolution {
		j = g.Resolution - 1
	}
	return
}

// nearTransmitter reports whether cell (i,j) lies within txZoneRadius
// cells of the cell containing the transmitter. A radius below 1
// affects only the containing cell, matching §9's exact-preservation
// note.
func (g *ReceiverGrid) nearTransmitter(i, j, txI, txJ int, txZoneRadius float64) bool {
	di, dj := float64(i-txI), float64(j-txJ)
	return di*di+dj*dj <= txZoneRadius*txZoneRadius
}
