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
	"encoding/json"
	"os"
)

// RenderConfig for rendering-related settings
type RenderConfig struct {
	Canvas string `json:"canvas"` // render engine/canvas ("svg" or "sdl")
	Width  int    `json:"width"`  // width of canvas (pixels)
	Height int    `json:"height"` // height of canvas (pixels)
	Scale  float64 `json:"scale"` // meters-to-pixels scale factor
}

// Config holds the process-wide defaults: propagation budgets, extra
// named materials, rendering options, and gain-hook plugin paths.
type Config struct {
	Budgets   Budgets           `json:"budgets"`
	Materials map[string]Material `json:"materials"`
	Render    *RenderConfig     `json:"render"`
	Plugins   map[string]string `json:"plugins"`
}

// Cfg is the globally-accessible configuration (pre-set with the
// parity-preserving budget defaults).
var Cfg = &Config{
	Budgets:   DefaultBudgets(),
	Materials: make(map[string]Material),
	Render: &RenderConfig{
		Canvas: "svg",
		Width:  1024,
		Height: 768,
		Scale:  40,
	},
	Plugins: make(map[string]string),
}

// ReadConfig loads Cfg from a JSON file, then registers any extra
// named materials into the package material table.
func ReadConfig(fname string) (err error) {
	var data []byte
	if data, err = os.ReadFile(fname); err != nil {
		return
	}
	if err = json.Unmarshal(data, &Cfg); err != nil {
		return
	}
	for name, m := range Cfg.Materials {
		m.Name = name
		RegisterMaterial(m)
	}
	return
}
