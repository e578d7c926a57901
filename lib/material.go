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

// Material is a dielectric wall material. Immutable once constructed.
type Material struct {
	Name         string  // label
	Permittivity float64 // relative permittivity ε_r > 0
	Conductivity float64 // conductivity σ ≥ 0 (S/m)
	Thickness    float64 // wall thickness d > 0 (m)
}

// NewMaterial validates and returns a Material
func NewMaterial(name string, epsR, sigma, thickness float64) (Material, error) {
	if epsR <= 0 {
		return Material{}, newError(InvalidGeometry, "material '%s': permittivity must be > 0", name)
	}
	if sigma < 0 {
		return Material{}, newError(InvalidGeometry, "material '%s': conductivity must be >= 0", name)
	}
	if thickness <= 0 {
		return Material{}, newError(InvalidGeometry, "material '%s': thickness must be > 0", name)
	}
	return Material{Name: name, Permittivity: epsR, Conductivity: sigma, Thickness: thickness}, nil
}

// DefaultMaterial is applied by the geometry importer (lib/importer.go)
// to any wall whose source feature does not carry a material tag.
var DefaultMaterial = Material{Name: "default", Permittivity: 2.8, Conductivity: 1e-4, Thickness: 0.15}

// material is the table of known building materials, in the same
// map-literal style as the teacher's wire-material table.
var material = map[string]Material{
	"concrete": {"concrete", 5.31, 2.14e-2, 0.20},
	"drywall":  {"drywall", 2.94, 1.17e-2, 0.012},
	"glass":    {"glass", 6.27, 4.84e-4, 0.006},
	"wood":     {"wood", 2.13, 4.23e-3, 0.04},
	"brick":    {"brick", 3.75, 3.8e-2, 0.10},
	"default":  DefaultMaterial,
}

// NamedMaterial returns a known material preset by label.
func NamedMaterial(label string) (Material, error) {
	m, ok := material[label]
	if !ok {
		return Material{}, newError(InvalidGeometry, "unknown material '%s'", label)
	}
	return m, nil
}

// MaterialNames returns the labels of all known material presets.
func MaterialNames() (names []string) {
	for name := range material {
		names = append(names, name)
	}
	return
}

// RegisterMaterial adds or overrides a named material preset, used by
// ReadConfig to merge in site-specific materials.
func RegisterMaterial(m Material) {
	material[m.Name] = m
}
