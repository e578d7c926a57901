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
	"math"
)

// Vec2 is a 2D vector (point or direction) in the floor plane.
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new 2D vector
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// String returns a human-readable vector
func (v Vec2) String() string {
	return fmt.Sprintf("(%f,%f)", v.X, v.Y)
}

// Length of the vector
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Norm returns a normalized (unit-length) vector
func (v Vec2) Norm() Vec2 {
	l := v.Length()
	if IsNull(l) {
		return v
	}
	return v.Mult(1 / l)
}

// Add two vectors
func (v Vec2) Add(u Vec2) Vec2 {
	return Vec2{v.X + u.X, v.Y + u.Y}
}

// Sub (subtract) two vectors
func (v Vec2) Sub(u Vec2) Vec2 {
	return Vec2{v.X - u.X, v.Y - u.Y}
}

// Mult returns the vector scaled by k
func (v Vec2) Mult(k float64) Vec2 {
	return Vec2{v.X * k, v.Y * k}
}

// Neg returns the negated vector
func (v Vec2) Neg() Vec2 {
	return Vec2{-v.X, -v.Y}
}

// Dot returns the dot product between two vectors
func (v Vec2) Dot(u Vec2) float64 {
	return v.X*u.X + v.Y*u.Y
}

// Cross returns the (scalar) 2D cross product between two vectors
func (v Vec2) Cross(u Vec2) float64 {
	return v.X*u.Y - v.Y*u.X
}

// Reflect returns the direction vector reflected off a surface with
// (not necessarily normalized) normal n: d' = d - 2(d·n)n
func (v Vec2) Reflect(n Vec2) Vec2 {
	n = n.Norm()
	return v.Sub(n.Mult(2 * v.Dot(n)))
}

// Equals returns true if two vectors are equal (within tolerance)
func (v Vec2) Equals(u Vec2) bool {
	return IsNull(v.Sub(u).Length())
}

// Finite reports whether both components are finite (no NaN or Inf).
func (v Vec2) Finite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Polar returns a unit vector for the given angle (radians)
func Polar(angle float64) Vec2 {
	return Vec2{math.Cos(angle), math.Sin(angle)}
}

// BoundingBox of a 2D region
type BoundingBox struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// NewBoundingBox returns an empty (inverted) bounding box
func NewBoundingBox() *BoundingBox {
	limit := math.MaxFloat32
	return &BoundingBox{
		Xmin: limit,
		Xmax: -limit,
		Ymin: limit,
		Ymax: -limit,
	}
}

// Include a point in the bounding box
func (b *BoundingBox) Include(v Vec2) {
	b.Xmin = min(v.X, b.Xmin)
	b.Xmax = max(v.X, b.Xmax)
	b.Ymin = min(v.Y, b.Ymin)
	b.Ymax = max(v.Y, b.Ymax)
}
