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
	"strings"
	"testing"
)

func TestImportWallsLinesAndGroups(t *testing.T) {
	doc := `<svg xmlns="http://www.w3.org/2000/svg">
  <line x1="0" y1="0" x2="10" y2="0" data-material="concrete"/>
  <g>
    <line x1="10" y1="0" x2="10" y2="5"/>
  </g>
</svg>`
	walls, err := ImportWalls(strings.NewReader(doc), 1.0)
	if err != nil {
		t.Fatalf("ImportWalls: %v", err)
	}
	if len(walls) != 2 {
		t.Fatalf("got %d walls, want 2", len(walls))
	}
	if walls[0].Material.Name != "concrete" {
		t.Fatalf("first wall material = %s, want concrete", walls[0].Material.Name)
	}
	if walls[1].Material.Name != DefaultMaterial.Name {
		t.Fatalf("second wall material = %s, want default", walls[1].Material.Name)
	}
	if walls[0].B.X != 10 || walls[0].B.Y != 0 {
		t.Fatalf("first wall endpoint = %v, want (10,0)", walls[0].B)
	}
}

func TestImportWallsScalesCoordinates(t *testing.T) {
	doc := `<svg><line x1="0" y1="0" x2="1" y2="0"/></svg>`
	walls, err := ImportWalls(strings.NewReader(doc), 1000)
	if err != nil {
		t.Fatalf("ImportWalls: %v", err)
	}
	if walls[0].B.X != 1000 {
		t.Fatalf("scaled endpoint X = %v, want 1000", walls[0].B.X)
	}
}

func TestImportWallsPathSubset(t *testing.T) {
	doc := `<svg><path d="M 0,0 L 5,0 L 5,5"/></svg>`
	walls, err := ImportWalls(strings.NewReader(doc), 1.0)
	if err != nil {
		t.Fatalf("ImportWalls: %v", err)
	}
	if len(walls) != 2 {
		t.Fatalf("got %d walls from a 3-point path, want 2", len(walls))
	}
	if walls[0].A.X != 0 || walls[0].B.X != 5 {
		t.Fatalf("first path segment = %v -> %v, want (0,0)->(5,0)", walls[0].A, walls[0].B)
	}
	if walls[1].B.Y != 5 {
		t.Fatalf("second path segment end Y = %v, want 5", walls[1].B.Y)
	}
}

func TestImportWallsUnknownMaterialErrors(t *testing.T) {
	doc := `<svg><line x1="0" y1="0" x2="1" y2="0" data-material="unobtanium"/></svg>`
	if _, err := ImportWalls(strings.NewReader(doc), 1.0); err == nil {
		t.Fatal("expected error for unknown material tag")
	} else if kind, ok := KindOf(err); !ok || kind != InvalidGeometry {
		t.Fatalf("expected InvalidGeometry error kind, got %v", err)
	}
}
