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
	"testing"
)

// A reflected ray's Path holds its whole lineage back to the antenna,
// but Aggregate must test cells against the ray's local hop
// (Origin->EndPoint), not the chord from the lineage root to the end
// point. This ray's full-lineage chord passes straight through cell
// (0,0), while its actual local hop never comes near it.
func TestAggregateUsesLocalHopNotLineageRoot(t *testing.T) {
	g, err := NewReceiverGrid(10, 10, 10)
	if err != nil {
		t.Fatalf("NewReceiverGrid: %v", err)
	}
	end := Vec2{9, 9}
	ray := Ray{
		Origin:    Vec2{9, 1}, // the reflection point: true local hop start
		Path:      []Vec2{{0, 0}, {9, 1}, end}, // antenna -> reflection -> end
		EndPoint:  &end,
		Distance:  8,
		Amplitude: complex(1, 0),
		Power:     1e-3,
	}
	tx := Vec2{9, 1}
	if err := Aggregate(context.Background(), g, []Ray{ray}, tx, 0.125, 0, nil, nil); err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if got := g.Power[0][0]; got != dBmFloor {
		t.Fatalf("cell (0,0) power = %v, want floor %v (aggregator must use the ray's local hop, not its full lineage chord)", got, dBmFloor)
	}
}
