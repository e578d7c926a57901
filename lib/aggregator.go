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
	"context"
	"math"
	"math/cmplx"
)

// Aggregate fills g.Power from the terminated ray set, converting
// per-ray contributions to a received-power estimate in dBm per cell
// (§4.4). wavelength and txZoneRadius come from the owning Antenna
// and Budgets; tx is the transmitter location used by the
// near-transmitter guard. calib, when non-nil, replaces the idealized
// free-space path-loss formula with a fitted log-distance model
// (lib/calibrate.go) for the distance-correction step.
func Aggregate(ctx context.Context, g *ReceiverGrid, rays []Ray, tx Vec2, wavelength, txZoneRadius float64, calib *Calibration, progress ProgressFunc) error {
	txI, txJ := g.CellOf(tx)
	total := g.Resolution * g.Resolution
	done := 0

	for j := 0; j < g.Resolution; j++ {
		for i := 0; i < g.Resolution; i++ {
			if err := ctx.Err(); err != nil {
				return newError(Cancelled, "aggregation cancelled at cell (%d,%d)", i, j)
			}
			done++
			if g.nearTransmitter(i, j, txI, txJ, txZoneRadius) {
				g.Power[j][i] = nearTxDBm
				reportProgress(progress, "aggregate", done, total)
				continue
			}
			center := g.Center(i, j)
			box := g.BoundingBox(i, j)

			var pCell float64
			for _, r := range rays {
				if r.EndPoint == nil || len(r.Path) == 0 {
					continue
				}
				start := r.Origin
				end := *r.EndPoint
				if !segmentIntersectsBox(start, end, box) {
					continue
				}
				dCorr := end.Sub(center).Length()
				dEff := r.Distance - dCorr
				pl := pathLossFor(dEff, wavelength, calib)
				if pl <= 0 || math.IsInf(pl, 0) || math.IsNaN(pl) {
					continue
				}
				pCell += r.Power * cmplx.Abs(r.Amplitude)*cmplx.Abs(r.Amplitude) / pl
			}
			g.Power[j][i] = toDBm(pCell)
			reportProgress(progress, "aggregate", done, total)
		}
	}
	return nil
}

// toDBm converts a linear watt value to dBm, matching the floor
// formula exactly when pCell is zero.
func toDBm(pCell float64) float64 {
	return 10 * math.Log10(pCell/1e-3+1e-12)
}

// segmentIntersectsBox reports whether segment [a,b] intersects the
// axis-aligned rectangle box: true if either endpoint lies inside, or
// the segment crosses any of the four rectangle edges.
func segmentIntersectsBox(a, b Vec2, box BoundingBox) bool {
	if pointInBox(a, box) || pointInBox(b, box) {
		return true
	}
	corners := [4]Vec2{
		{box.Xmin, box.Ymin}, {box.Xmax, box.Ymin},
		{box.Xmax, box.Ymax}, {box.Xmin, box.Ymax},
	}
	for k := 0; k < 4; k++ {
		c1, c2 := corners[k], corners[(k+1)%4]
		if segmentsIntersect(a, b, c1, c2) {
			return true
		}
	}
	return false
}

func pointInBox(p Vec2, box BoundingBox) bool {
	return p.X >= box.Xmin && p.X <= box.Xmax && p.Y >= box.Ymin && p.Y <= box.Ymax
}

// segmentsIntersect is the standard segment/segment test via signed
// areas, with the same eps tolerance used for ray/wall intersection.
func segmentsIntersect(p1, p2, p3, p4 Vec2) bool {
	d1 := cross(p3, p4, p1)
	d2 := cross(p3, p4, p2)
	d3 := cross(p1, p2, p3)
	d4 := cross(p1, p2, p4)
	if ((d1 > eps && d2 < -eps) || (d1 < -eps && d2 > eps)) &&
		((d3 > eps && d4 < -eps) || (d3 < -eps && d4 > eps)) {
		return true
	}
	if IsNull(d1) && pointOnSegment(p3, p4, p1) {
		return true
	}
	if IsNull(d2) && pointOnSegment(p3, p4, p2) {
		return true
	}
	if IsNull(d3) && pointOnSegment(p1, p2, p3) {
		return true
	}
	if IsNull(d4) && pointOnSegment(p1, p2, p4) {
		return true
	}
	return false
}

func cross(a, b, p Vec2) float64 {
	return b.Sub(a).Cross(p.Sub(a))
}

func pointOnSegment(a, b, p Vec2) bool {
	if p.X < math.Min(a.X, b.X)-eps || p.X > math.Max(a.X, b.X)+eps {
		return false
	}
	if p.Y < math.Min(a.Y, b.Y)-eps || p.Y > math.Max(a.Y, b.Y)+eps {
		return false
	}
	return true
}
