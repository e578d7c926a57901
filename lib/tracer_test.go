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

func basicBudgets(numRays, maxRefl, maxTrans int) Budgets {
	b := DefaultBudgets()
	b.NumRays = numRays
	b.MaxReflections = maxRefl
	b.MaxTransmissions = maxTrans
	b.MaxPathLoss = 1e12
	return b
}

// E2E-1: free space, single ray travels to the boundary and is
// stored exactly once.
func TestTraceFreeSpaceSingleRay(t *testing.T) {
	env, err := NewEnvironment(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	ant, err := NewAntenna(Vec2{5, 5}, 1, 2.4e9)
	if err != nil {
		t.Fatal(err)
	}
	tracer, err := NewRayTracer(env, ant, basicBudgets(1, 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	rays, _, err := tracer.Trace(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(rays) != 1 {
		t.Fatalf("expected exactly one terminated ray, got %d", len(rays))
	}
	r := rays[0]
	if r.EndPoint == nil || len(r.Path) < 2 {
		t.Fatalf("ray must have an end point and a path of at least 2 vertices, got %+v", r)
	}
}

// E2E-2: one wall at normal incidence, transmission budget 0 so only
// the reflected child is spawned; two rays stored total (parent +
// reflected child, since the refracted child is never created).
func TestTraceNormalIncidenceWallReflectionOnly(t *testing.T) {
	env, err := NewEnvironment(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	mat := DefaultMaterial
	wall, err := NewWall(Vec2{5, 0}, Vec2{5, 10}, mat)
	if err != nil {
		t.Fatal(err)
	}
	env.AddWall(wall)
	ant, err := NewAntenna(Vec2{2, 5}, 1, 2.4e9)
	if err != nil {
		t.Fatal(err)
	}
	b := basicBudgets(1, 1, 0)
	b.Polarization = TE
	tracer, err := NewRayTracer(env, ant, b)
	if err != nil {
		t.Fatal(err)
	}
	rays, _, err := tracer.Trace(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(rays) != 2 {
		t.Fatalf("expected 2 stored rays (parent + reflected child), got %d", len(rays))
	}
	var reflected *Ray
	for i := range rays {
		if rays[i].NumReflections == 1 {
			reflected = &rays[i]
		}
	}
	if reflected == nil {
		t.Fatal("no reflected ray found")
	}
	if reflected.Direction.X >= 0 {
		t.Errorf("reflected direction should point back toward -x, got %v", reflected.Direction)
	}
}

// E2E-5: budget enforcement caps reflections at max+1.
func TestTraceBudgetEnforcement(t *testing.T) {
	env, err := NewEnvironment(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	for _, w := range [][2]Vec2{
		{{0, 0}, {10, 0}}, {{10, 0}, {10, 10}},
		{{10, 10}, {0, 10}}, {{0, 10}, {0, 0}},
	} {
		wall, err := NewWall(w[0], w[1], DefaultMaterial)
		if err != nil {
			t.Fatal(err)
		}
		env.AddWall(wall)
	}
	ant, err := NewAntenna(Vec2{5, 5}, 1, 2.4e9)
	if err != nil {
		t.Fatal(err)
	}
	b := basicBudgets(8, 2, 0)
	tracer, err := NewRayTracer(env, ant, b)
	if err != nil {
		t.Fatal(err)
	}
	rays, _, err := tracer.Trace(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range rays {
		if r.NumReflections > b.MaxReflections+1 {
			t.Errorf("ray exceeded reflection budget: %d > %d", r.NumReflections, b.MaxReflections+1)
		}
	}
}

// Invariant 7: a ray grazing a wall must not produce NaN amplitudes.
func TestTraceGrazingIncidenceNoNaN(t *testing.T) {
	env, err := NewEnvironment(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	wall, err := NewWall(Vec2{0, 5}, Vec2{10, 5}, DefaultMaterial)
	if err != nil {
		t.Fatal(err)
	}
	env.AddWall(wall)
	ant, err := NewAntenna(Vec2{0, 5}, 1, 2.4e9)
	if err != nil {
		t.Fatal(err)
	}
	tracer, err := NewRayTracer(env, ant, basicBudgets(4, 1, 1))
	if err != nil {
		t.Fatal(err)
	}
	rays, _, err := tracer.Trace(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range rays {
		re, im := real(r.Amplitude), imag(r.Amplitude)
		if re != re || im != im { // NaN check without importing math
			t.Errorf("ray amplitude is NaN: %v", r.Amplitude)
		}
	}
}
