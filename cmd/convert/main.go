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

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dl3kv/raycov/lib"
)

// wallRecord is the on-disk JSON shape for a wall list.
type wallRecord struct {
	A        lib.Vec2 `json:"a"`
	B        lib.Vec2 `json:"b"`
	Material string   `json:"material"`
}

// convert floor-plan geometry between SVG and a wall-list JSON file.
func main() {
	var (
		mode     string
		fIn      string
		fOut     string
		geoScale float64
	)
	flag.StringVar(&mode, "mode", "import", "conversion mode [import,export]")
	flag.StringVar(&fIn, "in", "", "input file (SVG for import, JSON for export)")
	flag.StringVar(&fOut, "out", "", "output file")
	flag.Float64Var(&geoScale, "geo-scale", 1.0, "meters per floor-plan unit (import only)")
	flag.Parse()

	if len(fIn) == 0 {
		flag.Usage()
		log.Fatal("missing input filename")
	}
	if len(fOut) == 0 {
		fOut = fIn + ".out"
	}

	var err error
	switch mode {
	case "import":
		err = importSVG(fIn, fOut, geoScale)
	case "export":
		err = exportSVG(fIn, fOut)
	default:
		err = fmt.Errorf("unknown conversion mode '%s'", mode)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// importSVG reads an SVG floor plan and writes its walls as JSON.
func importSVG(fIn, fOut string, scale float64) error {
	f, err := os.Open(fIn)
	if err != nil {
		return err
	}
	defer f.Close()
	walls, err := lib.ImportWalls(f, scale)
	if err != nil {
		return err
	}
	recs := make([]wallRecord, len(walls))
	for i, w := range walls {
		recs[i] = wallRecord{A: w.A, B: w.B, Material: w.Material.Name}
	}
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return err
	}
	log.Printf("imported %d walls from %s", len(walls), fIn)
	return os.WriteFile(fOut, data, 0o644)
}

// exportSVG reads a wall-list JSON file and writes it back out as SVG.
func exportSVG(fIn, fOut string) error {
	body, err := os.ReadFile(fIn)
	if err != nil {
		return err
	}
	var recs []wallRecord
	if err := json.Unmarshal(body, &recs); err != nil {
		return err
	}
	var walls []lib.Wall
	for _, r := range recs {
		mat, err := lib.NamedMaterial(r.Material)
		if err != nil {
			mat = lib.DefaultMaterial
		}
		w, err := lib.NewWall(r.A, r.B, mat)
		if err != nil {
			return err
		}
		walls = append(walls, w)
	}
	return walls2SVG(walls, fOut)
}
