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
	"testing"
)

// E2E-1: free space, single ray, resolution 1 -> the only cell
// contains the transmitter, so the near-transmitter guard applies.
func TestRunFreeSpaceSingleCellGuard(t *testing.T) {
	env, err := NewEnvironment(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	ant, err := NewAntenna(Vec2{5, 5}, 1, 2.4e9)
	if err != nil {
		t.Fatal(err)
	}
	b := basicBudgets(1, 0, 0)
	b.Resolution = 1
	res, err := Run(context.Background(), env, ant, b, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Grid.Power[0][0] != nearTxDBm {
		t.Errorf("expected %v dBm, got %v", nearTxDBm, res.Grid.Power[0][0])
	}
}

// E2E-6: the cell containing the transmitter always holds -30 dBm.
func TestRunNearTransmitterGuardAlwaysApplies(t *testing.T) {
	env, err := NewEnvironment(20, 20)
	if err != nil {
		t.Fatal(err)
	}
	wall, err := NewWall(Vec2{8, 0}, Vec2{8, 20}, DefaultMaterial)
	if err != nil {
		t.Fatal(err)
	}
	env.AddWall(wall)
	ant, err := NewAntenna(Vec2{10, 10}, 1, 2.4e9)
	if err != nil {
		t.Fatal(err)
	}
	b := basicBudgets(16, 2, 1)
	b.Resolution = 20
	res, err := Run(context.Background(), env, ant, b, nil)
	if err != nil {
		t.Fatal(err)
	}
	i, j := res.Grid.CellOf(ant.Location)
	if res.Grid.Power[j][i] != nearTxDBm {
		t.Errorf("transmitter cell should be %v dBm, got %v", nearTxDBm, res.Grid.Power[j][i])
	}
}

// Invariant 3: every cell is finite and within the energy-conservation
// bound around tx_power.
func TestRunPowerWithinBounds(t *testing.T) {
	env, err := NewEnvironment(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	ant, err := NewAntenna(Vec2{5, 5}, 1, 2.4e9)
	if err != nil {
		t.Fatal(err)
	}
	b := basicBudgets(32, 2, 1)
	b.Resolution = 8
	res, err := Run(context.Background(), env, ant, b, nil)
	if err != nil {
		t.Fatal(err)
	}
	upper := 10*math.Log10(ant.TxPower/1e-3) + 40 // generous numerical margin
	for j := range res.Grid.Power {
		for i := range res.Grid.Power[j] {
			v := res.Grid.Power[j][i]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("cell (%d,%d) is non-finite", i, j)
			}
			if v < dBmFloor-1e-6 {
				t.Errorf("cell (%d,%d) below floor: %f", i, j, v)
			}
			if v > upper {
				t.Errorf("cell (%d,%d) exceeds energy bound: %f > %f", i, j, v, upper)
			}
		}
	}
}

// E2E-4: identical inputs under the single-threaded path yield
// bitwise identical results.
func TestRunDeterministic(t *testing.T) {
	build := func() (*Environment, *Antenna) {
		env, _ := NewEnvironment(10, 10)
		for _, w := range [][2]Vec2{
			{{0, 0}, {10, 0}}, {{10, 0}, {10, 10}},
			{{10, 10}, {0, 10}}, {{0, 10}, {0, 0}},
		} {
			wall, _ := NewWall(w[0], w[1], DefaultMaterial)
			env.AddWall(wall)
		}
		ant, _ := NewAntenna(Vec2{5, 5}, 1, 2.4e9)
		return env, ant
	}
	b := basicBudgets(24, 2, 1)
	b.Resolution = 6

	env1, ant1 := build()
	res1, err := Run(context.Background(), env1, ant1, b, nil)
	if err != nil {
		t.Fatal(err)
	}
	env2, ant2 := build()
	res2, err := Run(context.Background(), env2, ant2, b, nil)
	if err != nil {
		t.Fatal(err)
	}
	for j := range res1.Grid.Power {
		for i := range res1.Grid.Power[j] {
			if res1.Grid.Power[j][i] != res2.Grid.Power[j][i] {
				t.Errorf("non-deterministic cell (%d,%d): %f vs %f", i, j, res1.Grid.Power[j][i], res2.Grid.Power[j][i])
			}
		}
	}
}

func TestRunParallelMatchesSingleThreaded(t *testing.T) {
	env, err := NewEnvironment(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	wall, err := NewWall(Vec2{5, 0}, Vec2{5, 10}, DefaultMaterial)
	if err != nil {
		t.Fatal(err)
	}
	env.AddWall(wall)
	ant, err := NewAntenna(Vec2{2, 5}, 1, 2.4e9)
	if err != nil {
		t.Fatal(err)
	}
	b := basicBudgets(20, 2, 1)
	b.Resolution = 5

	single, err := Run(context.Background(), env, ant, b, nil)
	if err != nil {
		t.Fatal(err)
	}
	parallel, err := RunParallel(context.Background(), env, ant, b, 4, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(single.Rays) != len(parallel.Rays) {
		t.Errorf("ray count mismatch: %d single vs %d parallel", len(single.Rays), len(parallel.Rays))
	}
	for j := range single.Grid.Power {
		for i := range single.Grid.Power[j] {
			if math.Abs(single.Grid.Power[j][i]-parallel.Grid.Power[j][i]) > 1e-9 {
				t.Errorf("cell (%d,%d) differs: %f single vs %f parallel", i, j, single.Grid.Power[j][i], parallel.Grid.Power[j][i])
			}
		}
	}
}

func TestRunRejectsInvalidBudgets(t *testing.T) {
	env, _ := NewEnvironment(10, 10)
	ant, _ := NewAntenna(Vec2{5, 5}, 1, 2.4e9)
	b := basicBudgets(0, 0, 0)
	if _, err := Run(context.Background(), env, ant, b, nil); err == nil {
		t.Fatal("expected error for num_rays = 0")
	} else if kind, ok := KindOf(err); !ok || kind != InvalidBudget {
		t.Errorf("expected InvalidBudget, got %v", err)
	}
}

func TestRunCancellation(t *testing.T) {
	env, _ := NewEnvironment(10, 10)
	ant, _ := NewAntenna(Vec2{5, 5}, 1, 2.4e9)
	b := basicBudgets(1000, 2, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, env, ant, b, nil)
	if err == nil {
		t.Fatal("expected cancellation error")
	}
	if kind, ok := KindOf(err); !ok || kind != Cancelled {
		t.Errorf("expected Cancelled, got %v", err)
	}
}
