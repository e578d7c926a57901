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
	"sync"
	"sync/atomic"
)

// Result bundles everything the façade returns from one run: the
// filled receiver grid, every terminated ray, the wall list that
// generated them, and pruning diagnostics (§4.5, §6).
type Result struct {
	Grid        *ReceiverGrid
	Rays        []Ray
	Walls       []Wall
	Diagnostics Diagnostics
}

// Run executes the single-threaded reference path: launch phase then
// grid-fill phase, reporting progress through the same callback for
// both phases distinguished by phase name ("launch", "aggregate").
func Run(ctx context.Context, env *Environment, antenna *Antenna, budgets Budgets, progress ProgressFunc) (*Result, error) {
	tracer, err := NewRayTracer(env, antenna, budgets)
	if err != nil {
		return nil, err
	}
	rays, diag, err := tracer.Trace(ctx, progress)
	if err != nil {
		return nil, err
	}
	return finish(ctx, env, antenna, budgets, rays, diag, progress)
}

// RunParallel partitions the primary rays across workers goroutines,
// each accumulating into its own thread-local result slice that is
// merged at the end (§5 "parallel threads is the preferred production
// model"), in the teacher's goroutine + channel idiom. workers <= 1
// behaves exactly like Run.
func RunParallel(ctx context.Context, env *Environment, antenna *Antenna, budgets Budgets, workers int, progress ProgressFunc) (*Result, error) {
	if workers <= 1 {
		return Run(ctx, env, antenna, budgets, progress)
	}
	if err := budgets.Validate(); err != nil {
		return nil, err
	}

	n := budgets.NumRays
	if workers > n {
		workers = n
	}

	type partial struct {
		rays []Ray
		diag Diagnostics
		err  error
	}
	out := make(chan partial, workers)
	var done atomic.Int64
	var wg sync.WaitGroup

	chunk := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo, hi := w*chunk, min((w+1)*chunk, n)
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			tracer, err := NewRayTracer(env, antenna, budgets)
			if err != nil {
				out <- partial{err: err}
				return
			}
			indices := make([]int, hi-lo)
			for k := range indices {
				indices[k] = lo + k
			}
			rays, diag, err := tracer.TraceIndices(ctx, indices)
			d := done.Add(int64(hi - lo))
			reportProgress(progress, "launch", int(d), n)
			out <- partial{rays: rays, diag: diag, err: err}
		}(lo, hi)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	var allRays []Ray
	var total Diagnostics
	for p := range out {
		if p.err != nil {
			return nil, p.err
		}
		allRays = append(allRays, p.rays...)
		total.PrunedByReflection += p.diag.PrunedByReflection
		total.PrunedByTransmission += p.diag.PrunedByTransmission
		total.PrunedByPathLoss += p.diag.PrunedByPathLoss
		total.PrunedNonFinite += p.diag.PrunedNonFinite
	}
	return finish(ctx, env, antenna, budgets, allRays, total, progress)
}

// finish runs the aggregation phase shared by Run and RunParallel.
func finish(ctx context.Context, env *Environment, antenna *Antenna, budgets Budgets, rays []Ray, diag Diagnostics, progress ProgressFunc) (*Result, error) {
	grid, err := NewReceiverGrid(env.Width, env.Height, budgets.Resolution)
	if err != nil {
		return nil, err
	}
	if err := Aggregate(ctx, grid, rays, antenna.Location, antenna.Wavelength(), budgets.TxZoneRadius, budgets.Calibration, progress); err != nil {
		return nil, err
	}
	return &Result{Grid: grid, Rays: rays, Walls: env.Walls, Diagnostics: diag}, nil
}
