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
)

// Polarization of a ray
type Polarization int

const (
	TE Polarization = iota // transverse electric
	TM                     // transverse magnetic
)

// grazingEps bounds cos(θ_i) away from zero (§4.3 numerical guards)
const grazingEps = 1e-12

// Coefficients computes the complex Fresnel reflection (Γ) and
// transmission (Τ) coefficients, and the refracted angle θ_t, for a
// plane wave hitting a dielectric interface at incidence angle
// thetaI. ε̂ = ε_r - j·σ/(2π·f·ε0) is the complex relative
// permittivity of the material at the given frequency.
func Coefficients(thetaI float64, mat Material, freq float64, pol Polarization) (gamma, tau complex128, thetaT float64) {
	cosI := clampGrazing(math.Cos(thetaI))
	sinI := math.Sin(thetaI)

	epsHat := complex(mat.Permittivity, -mat.Conductivity/(CircAng*freq*Eps_0))

	// √(ε̂ - sin²θ_i), principal branch
	root := cmplx.Sqrt(epsHat - complex(sinI*sinI, 0))

	switch pol {
	case TM:
		num := epsHat*complex(cosI, 0) - root
		den := epsHat*complex(cosI, 0) + root
		gamma = num / den
		tau = (2 * epsHat * complex(cosI, 0)) / den
	default: // TE
		num := complex(cosI, 0) - root
		den := complex(cosI, 0) + root
		gamma = num / den
		tau = (2 * complex(cosI, 0)) / den
	}

	// refracted angle: sinθ_t = sin θ_i / √Re(ε̂), clamped to [-1,1]
	sinT := Clamp(sinI/math.Sqrt(math.Abs(real(epsHat))), -1, 1)
	thetaT = math.Asin(sinT)

	// thickness-induced phase: k = 2π f √ε̂ / c; Τ *= exp(-jkd cosθ_t)
	k := complex(CircAng*freq, 0) * cmplx.Sqrt(epsHat) / complex(C, 0)
	cosT := math.Sqrt(math.Max(0, 1-sinT*sinT))
	phase := cmplx.Exp(complex(0, -1) * k * complex(mat.Thickness*cosT, 0))
	tau *= phase
	return
}

// clampGrazing pushes cos(θ_i) away from zero when it falls within
// grazingEps of it, so division in Coefficients never blows up.
func clampGrazing(cosI float64) float64 {
	if cosI >= 0 && cosI < grazingEps {
		return grazingEps
	}
	if cosI < 0 && cosI > -grazingEps {
		return -grazingEps
	}
	return cosI
}
