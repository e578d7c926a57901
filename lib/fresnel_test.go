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
	"math/cmplx"
	"testing"
)

func TestFresnelNormalIncidence(t *testing.T) {
	mat, _ := NamedMaterial("concrete")
	gamma, tau, thetaT := Coefficients(0, mat, 2.4e9, TE)
	t.Logf("Γ=%s, Τ=%s, θ_t=%f", FormatComplex(gamma, 5), FormatComplex(tau, 5), thetaT)
	if cmplx.Abs(gamma) >= 1 {
		t.Errorf("|Γ| should be < 1 at normal incidence, got %f", cmplx.Abs(gamma))
	}
	if !IsNull(thetaT) {
		t.Errorf("θ_t should be ~0 at normal incidence, got %f", thetaT)
	}
}

func TestFresnelGrazingIncidence(t *testing.T) {
	mat, _ := NamedMaterial("glass")
	for _, pol := range []Polarization{TE, TM} {
		gamma, tau, _ := Coefficients(RectAng-1e-13, mat, 2.4e9, pol)
		if cmplx.IsNaN(gamma) || cmplx.IsInf(gamma) {
			t.Errorf("Γ is non-finite at grazing incidence (pol=%v)", pol)
		}
		if cmplx.IsNaN(tau) || cmplx.IsInf(tau) {
			t.Errorf("Τ is non-finite at grazing incidence (pol=%v)", pol)
		}
	}
}

func TestFresnelBothPolarizations(t *testing.T) {
	mat, _ := NamedMaterial("drywall")
	for _, pol := range []Polarization{TE, TM} {
		for _, deg := range []float64{0, 15, 30, 45, 60, 75} {
			theta := deg * math.Pi / 180
			gamma, _, thetaT := Coefficients(theta, mat, 5.8e9, pol)
			if cmplx.Abs(gamma) > 1+1e-9 {
				t.Errorf("pol=%v theta=%f: |Γ|=%f > 1", pol, deg, cmplx.Abs(gamma))
			}
			if math.Abs(thetaT) > RectAng+1e-9 {
				t.Errorf("pol=%v theta=%f: θ_t=%f out of range", pol, deg, thetaT)
			}
		}
	}
}
