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

// Budgets bounds a ray-tracing run and selects the open-question
// policies documented in DESIGN.md.
type Budgets struct {
	NumRays          int
	MaxReflections   int
	MaxTransmissions int
	MaxPathLoss      float64
	Polarization     Polarization
	Resolution       int
	TxZoneRadius     float64

	// LegacyFixedCoefficients multiplies amplitude by the constants
	// 0.8 (reflection) / 0.6 (transmission) observed in the source
	// instead of the Fresnel magnitudes |Γ|, |Τ|. Default true.
	LegacyFixedCoefficients bool
	// RefractOnlyOnDirectPath spawns a refracted child only when the
	// parent ray has zero reflections so far. Default true.
	RefractOnlyOnDirectPath bool
	// ApplySnellOnTransmission rotates the refracted direction by
	// θ_t instead of keeping the incident direction. Default false.
	ApplySnellOnTransmission bool

	// GainHook overrides the isotropic-antenna assumption (lib/gainhook.go)
	// by scaling each primary ray's launch amplitude with Gain(angle).
	// nil keeps every primary ray at unit amplitude (isotropic).
	GainHook GainHook
	// Calibration replaces the idealized free-space path-loss formula
	// with a fitted log-distance model (lib/calibrate.go) when set.
	Calibration *Calibration
}

// Validate checks the InvalidBudget error kind's conditions.
func (b Budgets) Validate() error {
	if b.NumRays < 1 {
		return newError(InvalidBudget, "num_rays must be >= 1")
	}
	if b.Resolution < 1 {
		return newError(InvalidBudget, "resolution must be >= 1")
	}
	if !IsFinitePositive(b.MaxPathLoss) {
		return newError(InvalidBudget, "max_path_loss must be finite and >= 0")
	}
	if b.MaxReflections < 0 || b.MaxTransmissions < 0 {
		return newError(InvalidBudget, "max_reflections/max_transmissions must be >= 0")
	}
	return nil
}

// DefaultBudgets returns a Budgets value with the parity-preserving
// policy defaults from the open questions in DESIGN.md.
func DefaultBudgets() Budgets {
	return Budgets{
		NumRays:                  360,
		MaxReflections:           3,
		MaxTransmissions:         2,
		MaxPathLoss:              1e7,
		Polarization:             TE,
		Resolution:               50,
		TxZoneRadius:             0.1,
		LegacyFixedCoefficients:  true,
		RefractOnlyOnDirectPath:  true,
		ApplySnellOnTransmission: false,
	}
}

// Diagnostics counts rays dropped by each budget, supplementing the
// result bundle without perturbing the dBm matrix (§7).
type Diagnostics struct {
	PrunedByReflection   int
	PrunedByTransmission int
	PrunedByPathLoss     int
	PrunedNonFinite      int
}

// ProgressFunc is invoked with a phase name and completed/total unit
// counts. Callers should treat calls as best-effort and non-blocking;
// the tracer and simulator may coalesce calls to roughly 1% steps.
type ProgressFunc func(phase string, done, total int)

// RayTracer launches and recursively propagates rays through an
// Environment for one Antenna, per the given Budgets.
type RayTracer struct {
	env         *Environment
	antenna     *Antenna
	budgets     Budgets
	wavelength  float64
	launchPower float64
	maxLen      float64

	arena       []rayNode
	results     []Ray
	diagnostics Diagnostics
}

// NewRayTracer constructs a tracer bound to one environment/antenna
// pair and a validated set of budgets.
func NewRayTracer(env *Environment, antenna *Antenna, budgets Budgets) (*RayTracer, error) {
	if err := budgets.Validate(); err != nil {
		return nil, err
	}
	return &RayTracer{
		env:         env,
		antenna:     antenna,
		budgets:     budgets,
		wavelength:  antenna.Wavelength(),
		launchPower: antenna.TxPower / float64(budgets.NumRays),
		maxLen:      env.Extent() * 2,
	}, nil
}

// push appends a node to the arena and returns its index.
func (tr *RayTracer) push(n rayNode) int {
	tr.arena = append(tr.arena, n)
	return len(tr.arena) - 1
}

// Trace emits NumRays primary rays and recursively propagates each to
// termination, returning the flattened terminal-ray set. ctx is
// polled between primary rays (§5 cancellation).
func (tr *RayTracer) Trace(ctx context.Context, progress ProgressFunc) ([]Ray, Diagnostics, error) {
	n := tr.budgets.NumRays
	tr.arena = tr.arena[:0]
	tr.results = tr.results[:0]
	tr.diagnostics = Diagnostics{}

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, tr.diagnostics, newError(Cancelled, "trace cancelled during ray launch")
		}
		tr.launchOne(i)
		reportProgress(progress, "launch", i+1, n)
	}
	return tr.results, tr.diagnostics, nil
}

// launchOne emits primary ray i (of NumRays, fixing the angle step to
// the full budget regardless of which subset this tracer handles) and
// propagates its whole lineage to completion.
func (tr *RayTracer) launchOne(i int) {
	angle := 2 * math.Pi * float64(i) / float64(tr.budgets.NumRays)
	origin := tr.antenna.Location
	amp := complex(1, 0)
	if tr.budgets.GainHook != nil {
		amp = complex(tr.budgets.GainHook.Gain(angle), 0)
	}
	root := tr.push(rayNode{
		parent: -1,
		kind:   kindRoot,
		origin: origin,
		dir:    Polar(angle),
		amp:    amp,
		pol:    tr.budgets.Polarization,
		vertex: origin,
	})
	stack := []int{root}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stack = append(stack, tr.step(idx)...)
	}
}

// TraceIndices propagates only the primary rays named by indices
// (each in [0,NumRays)), for use by a parallel partition over workers;
// the angle step is still derived from the full NumRays budget so
// results are identical to a single-threaded Trace over the same
// index set.
func (tr *RayTracer) TraceIndices(ctx context.Context, indices []int) ([]Ray, Diagnostics, error) {
	tr.arena = tr.arena[:0]
	tr.results = tr.results[:0]
	tr.diagnostics = Diagnostics{}
	for _, i := range indices {
		if err := ctx.Err(); err != nil {
			return nil, tr.diagnostics, newError(Cancelled, "trace cancelled during ray launch")
		}
		tr.launchOne(i)
	}
	return tr.results, tr.diagnostics, nil
}

// step advances one arena node by one collision (or terminates it)
// and returns the indices of any children that still need processing.
func (tr *RayTracer) step(idx int) []int {
	n := tr.arena[idx]
	b := tr.budgets

	if n.numRefl > b.MaxReflections {
		tr.diagnostics.PrunedByReflection++
		tr.finish(idx, n.vertex)
		return nil
	}
	if n.numTrns > b.MaxTransmissions {
		tr.diagnostics.PrunedByTransmission++
		tr.finish(idx, n.vertex)
		return nil
	}
	if n.pathLoss > b.MaxPathLoss {
		tr.diagnostics.PrunedByPathLoss++
		tr.finish(idx, n.vertex)
		return nil
	}

	hit, wallIdx, ok := ClosestHit(n.vertex, n.dir, tr.env.Walls)
	if !ok {
		end := n.vertex.Add(n.dir.Mult(tr.maxLen))
		tr.finish(idx, end)
		return nil
	}

	wall := tr.env.Walls[wallIdx]
	distance := n.distance + hit.T
	pathLoss := tr.pathLossAt(distance)
	if pathLoss > b.MaxPathLoss {
		tr.diagnostics.PrunedByPathLoss++
		tr.finishAt(idx, hit.Point, distance, pathLoss)
		return nil
	}

	cosI := Clamp(n.dir.Dot(wall.Normal), -1, 1)
	thetaI := math.Acos(cosI)
	gamma, tau, thetaT := Coefficients(thetaI, wall.Material, tr.antenna.Frequency, n.pol)
	if cmplx.IsNaN(gamma) || cmplx.IsNaN(tau) || cmplx.IsInf(gamma) || cmplx.IsInf(tau) {
		tr.diagnostics.PrunedNonFinite++
		tr.finishAt(idx, hit.Point, distance, pathLoss)
		return nil
	}

	var children []int

	reflAmp := n.amp * reflectionFactor(gamma, b)
	reflDir := n.dir.Reflect(wall.Normal)
	children = append(children, tr.push(rayNode{
		parent: idx, kind: kindReflected,
		origin: hit.Point, dir: reflDir, amp: reflAmp, pol: n.pol,
		distance: distance, pathLoss: pathLoss,
		numRefl: n.numRefl + 1, numTrns: n.numTrns,
		vertex: hit.Point,
	}))

	refract := !b.RefractOnlyOnDirectPath || n.numRefl == 0
	if refract && n.numTrns >= b.MaxTransmissions {
		// the transmission budget suppresses the refracted child
		tr.diagnostics.PrunedByTransmission++
		refract = false
	}
	if refract {
		transAmp := n.amp * transmissionFactor(tau, b)
		transDir := n.dir
		if b.ApplySnellOnTransmission {
			transDir = rotateToward(n.dir, wall.Normal, thetaT)
		}
		children = append(children, tr.push(rayNode{
			parent: idx, kind: kindRefracted,
			origin: hit.Point, dir: transDir, amp: transAmp, pol: n.pol,
			distance: distance, pathLoss: pathLoss,
			numRefl: n.numRefl, numTrns: n.numTrns + 1,
			vertex: hit.Point,
		}))
	}

	tr.finishAt(idx, hit.Point, distance, pathLoss)
	return children
}

// finish terminates node idx at an end point without a further
// collision (budget exhaustion or leaving the environment).
func (tr *RayTracer) finish(idx int, end Vec2) {
	tr.results = append(tr.results, tr.toRay(idx, end))
}

// finishAt terminates node idx at a wall collision, first recording
// the collision's updated distance/pathLoss onto the node so toRay
// reports the values as of termination.
func (tr *RayTracer) finishAt(idx int, end Vec2, distance, pl float64) {
	tr.arena[idx].distance = distance
	tr.arena[idx].pathLoss = pl
	tr.results = append(tr.results, tr.toRay(idx, end))
}

// pathLoss is the free-space path-loss formula (4π·d/λ)².
func pathLoss(distance, wavelength float64) float64 {
	x := 4 * math.Pi * distance / wavelength
	return x * x
}

// pathLossFor is pathLoss, superseded by a fitted calibration's
// log-distance model (lib/calibrate.go) whenever calib is non-nil.
func pathLossFor(distance, wavelength float64, calib *Calibration) float64 {
	if calib != nil {
		return math.Pow(10, calib.Predict(distance)/10)
	}
	return pathLoss(distance, wavelength)
}

// pathLossAt applies the tracer's Budgets.Calibration, if any, to the
// free-space path-loss formula.
func (tr *RayTracer) pathLossAt(distance float64) float64 {
	return pathLossFor(distance, tr.wavelength, tr.budgets.Calibration)
}

// reflectionFactor returns the amplitude multiplier applied on
// reflection, per Budgets.LegacyFixedCoefficients.
func reflectionFactor(gamma complex128, b Budgets) complex128 {
	if b.LegacyFixedCoefficients {
		return complex(0.8, 0)
	}
	return complex(cmplx.Abs(gamma), 0)
}

// transmissionFactor returns the amplitude multiplier applied on
// transmission, per Budgets.LegacyFixedCoefficients.
func transmissionFactor(tau complex128, b Budgets) complex128 {
	if b.LegacyFixedCoefficients {
		return complex(0.6, 0)
	}
	return complex(cmplx.Abs(tau), 0)
}

// rotateToward rotates d around the interface so the angle between
// -normal and the result is thetaT (Snell's law), preserving d's side
// of the wall. Only used when ApplySnellOnTransmission is set.
func rotateToward(d, normal Vec2, thetaT float64) Vec2 {
	tangent := Vec2{-normal.Y, normal.X}
	if d.Dot(tangent) < 0 {
		tangent = tangent.Neg()
	}
	return normal.Neg().Mult(math.Cos(thetaT)).Add(tangent.Mult(math.Sin(thetaT))).Norm()
}

// reportProgress calls progress at most once per whole-percent change
// (or always when total is small), matching §9's "aggregate before
// invoking at most once per ~1% change" guidance.
func reportProgress(progress ProgressFunc, phase string, done, total int) {
	if progress == nil {
		return
	}
	if total <= 100 || done == total || done%(total/100) == 0 {
		progress(phase, done, total)
	}
}
