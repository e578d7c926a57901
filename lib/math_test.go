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

import "testing"

func TestIsNull(t *testing.T) {
	if !IsNull(1e-12) {
		t.Error("1e-12 should be null")
	}
	if IsNull(1e-6) {
		t.Error("1e-6 should not be null")
	}
}

func TestInRange(t *testing.T) {
	if !InRange(0.5, 0, 1) {
		t.Error("0.5 should be in [0,1]")
	}
	if InRange(1.5, 0, 1) {
		t.Error("1.5 should not be in [0,1]")
	}
}

func TestClamp(t *testing.T) {
	if v := Clamp(5, 0, 1); v != 1 {
		t.Errorf("Clamp(5,0,1) = %f, want 1", v)
	}
	if v := Clamp(-5, 0, 1); v != 0 {
		t.Errorf("Clamp(-5,0,1) = %f, want 0", v)
	}
	if v := Clamp(0.5, 0, 1); v != 0.5 {
		t.Errorf("Clamp(0.5,0,1) = %f, want 0.5", v)
	}
}
