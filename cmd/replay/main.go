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
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sync/atomic"

	"github.com/dl3kv/raycov/lib"
)

// Frame-by-frame replay of a coverage run: rays are re-traced exactly
// as lib.Run produces them (tracing is deterministic, §5) and added
// to the SDL canvas one per frame in result order (frame n draws the
// first n+1 terminated rays), with (p)revious/
// (n)ext keys stepping the frame index, mirroring the teacher's
// geometry-browser navigation.
func main() {
	var (
		widthS, heightS string
		txS             string
		freqS, powS     string
		geoFile         string
		geoScale        float64
		numRays         int
		maxRefl         int
		maxTrans        int
		err             error
	)
	flag.StringVar(&widthS, "width", "20", "environment width (m)")
	flag.StringVar(&heightS, "height", "20", "environment height (m)")
	flag.StringVar(&txS, "tx", "1,1", "transmitter location x,y (m)")
	flag.StringVar(&freqS, "freq", "2.4G", "transmitter frequency (Hz)")
	flag.StringVar(&powS, "power", "0.1", "transmitter tx power (W)")
	flag.StringVar(&geoFile, "geo", "", "SVG floor plan to import (walls)")
	flag.Float64Var(&geoScale, "geo-scale", 1.0, "meters per floor-plan unit")
	flag.IntVar(&numRays, "rays", 36, "number of launched rays")
	flag.IntVar(&maxRefl, "max-reflections", lib.DefaultBudgets().MaxReflections, "reflection budget")
	flag.IntVar(&maxTrans, "max-transmissions", lib.DefaultBudgets().MaxTransmissions, "transmission budget")
	flag.Parse()

	width, err := lib.ParseNumber(widthS)
	if err != nil {
		log.Fatalf("width: %s", err)
	}
	height, err := lib.ParseNumber(heightS)
	if err != nil {
		log.Fatalf("height: %s", err)
	}
	env, err := lib.NewEnvironment(width, height)
	if err != nil {
		log.Fatal(err)
	}
	if len(geoFile) > 0 {
		f, err := os.Open(geoFile)
		if err != nil {
			log.Fatalf("opening floor plan: %s", err)
		}
		walls, err := lib.ImportWalls(f, geoScale)
		f.Close()
		if err != nil {
			log.Fatalf("importing floor plan: %s", err)
		}
		for _, w := range walls {
			env.AddWall(w)
		}
	}

	var x, y float64
	if _, err = fmt.Sscanf(txS, "%f,%f", &x, &y); err != nil {
		log.Fatalf("tx: expected 'x,y', got '%s'", txS)
	}
	freq, err := lib.ParseNumber(freqS)
	if err != nil {
		log.Fatalf("freq: %s", err)
	}
	pow, err := lib.ParseNumber(powS)
	if err != nil {
		log.Fatalf("power: %s", err)
	}
	antenna, err := lib.NewAntenna(lib.Vec2{X: x, Y: y}, pow, freq)
	if err != nil {
		log.Fatal(err)
	}

	budgets := lib.DefaultBudgets()
	budgets.NumRays = numRays
	budgets.MaxReflections = maxRefl
	budgets.MaxTransmissions = maxTrans

	res, err := lib.Run(context.Background(), env, antenna, budgets, nil)
	if err != nil {
		log.Fatal(err)
	}
	if len(res.Rays) == 0 {
		log.Fatal("no rays traced")
	}

	render, err := lib.NewSDLCanvas(1024, 768, env.Extent())
	if err != nil {
		log.Fatal(err)
	}
	render.SetHint("Keys: (p)revious, (n)ext")

	var pos atomic.Int32
	pos.Store(0)
	cont := make(chan int)

	go func() {
		for {
			n := int(pos.Load())
			render.Show(res.Walls, res.Rays[:n+1], fmt.Sprintf("ray #%d/%d", n+1, len(res.Rays)))
			if rc := <-cont; rc < 0 {
				break
			}
		}
		render.Close()
	}()

	render.Run(func(_ int, key rune) (rc bool) {
		switch key {
		case 'P':
			if p := pos.Load(); p > 0 {
				pos.Store(p - 1)
				rc = true
				cont <- 0
			}
		case 'N', '\n':
			if int(pos.Load()) < len(res.Rays)-1 {
				pos.Add(1)
				rc = true
				cont <- 0
			}
		}
		return
	})
}
