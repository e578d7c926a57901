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
	"math"

	"gonum.org/v1/gonum/mat"
)

// CalibrationSample is one field measurement used to fit the model's
// distance-dependence to an on-site survey: PathLossDB observed at
// Distance meters from the transmitter.
type CalibrationSample struct {
	Distance   float64 `json:"distance"`
	PathLossDB float64 `json:"path_loss_db"`
}

// Calibration is a fitted log-distance path-loss model:
//
//	PathLossDB(d) = InterceptDB + 10*Exponent*log10(d)
type Calibration struct {
	Exponent   float64 // path-loss exponent n (2.0 in free space)
	InterceptDB float64 // path loss at d=1m
	ResidualSS float64 // sum of squared residuals (dB^2)
}

// Predict returns the modeled path loss (dB) at the given distance.
func (c Calibration) Predict(distance float64) float64 {
	return c.InterceptDB + 10*c.Exponent*math.Log10(distance)
}

// FitPathLossExponent least-squares-fits a log-distance model to a
// set of field calibration samples.
func FitPathLossExponent(samples []CalibrationSample) (Calibration, error) {
	num := len(samples)
	if num < 2 {
		return Calibration{}, newError(InvalidGeometry, "calibration requires at least 2 samples, got %d", num)
	}
	aVal := make([]float64, 2*num)
	fVal := make([]float64, num)
	for i, s := range samples {
		if s.Distance <= 0 {
			return Calibration{}, newError(InvalidGeometry, "calibration sample %d: distance must be > 0, got %f", i, s.Distance)
		}
		aVal[2*i] = math.Log10(s.Distance)
		aVal[2*i+1] = 1
		fVal[i] = s.PathLossDB
	}
	A := mat.NewDense(num, 2, aVal)
	f := mat.NewVecDense(num, fVal)

	var x mat.VecDense
	if err := x.SolveVec(A, f); err != nil {
		return Calibration{}, newError(NumericFailure, "path-loss exponent fit failed to converge: %v", err)
	}

	c := Calibration{Exponent: x.At(0, 0) / 10, InterceptDB: x.At(1, 0)}
	for _, s := range samples {
		c.ResidualSS += Sqr(c.Predict(s.Distance) - s.PathLossDB)
	}
	return c, nil
}
