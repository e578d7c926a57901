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
	_ "embed"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/dl3kv/raycov/lib"
	"gonum.org/v1/plot/vg"
)

//go:generate sh -c "printf %s $(git describe --tags) > _version"
//go:embed _version
var Version string

//go:generate sh -c "printf %s $(date +%F) > _date"
//go:embed _date
var Date string

// RF coverage simulation:
//
// Launch a fan of rays from a point transmitter ('-tx') into a 2D
// floor plan ('-geo', an SVG floor plan imported via lib.ImportWalls),
// trace reflection/transmission through
// dielectric walls up to a reflection/transmission/path-loss budget,
// and aggregate received power onto a receiver grid ('-res' cells per
// side). Results are rendered as a heatmap ('-heatmap'), an SVG ray
// overlay ('-svg'), and/or persisted under a run tag in a SQLite
// store ('-store'/'-tag').

func main() {
	var (
		config string

		widthS, heightS string
		txS             string
		freqS, powS     string

		geoFile   string
		geoScale  float64
		numRays   int
		maxRefl   int
		maxTrans  int
		maxLossS  string
		resol     int
		txZone    float64
		workers   int

		gainLua    string
		gainPlugin string
		calibFile  string

		heatmapFile string
		svgFile     string
		storeFile   string
		tag         string

		err error
	)
	flag.StringVar(&config, "config", "", "configuration file")
	flag.StringVar(&widthS, "width", "20", "environment width (m)")
	flag.StringVar(&heightS, "height", "20", "environment height (m)")
	flag.StringVar(&txS, "tx", "1,1", "transmitter location x,y (m)")
	flag.StringVar(&freqS, "freq", "2.4G", "transmitter frequency (Hz)")
	flag.StringVar(&powS, "power", "0.1", "transmitter tx power (W)")

	flag.StringVar(&geoFile, "geo", "", "SVG floor plan to import (walls)")
	flag.Float64Var(&geoScale, "geo-scale", 1.0, "meters per floor-plan unit")

	flag.IntVar(&numRays, "rays", lib.DefaultBudgets().NumRays, "number of launched rays")
	flag.IntVar(&maxRefl, "max-reflections", lib.DefaultBudgets().MaxReflections, "reflection budget")
	flag.IntVar(&maxTrans, "max-transmissions", lib.DefaultBudgets().MaxTransmissions, "transmission budget")
	flag.StringVar(&maxLossS, "max-path-loss", "1e7", "path-loss budget (linear)")
	flag.IntVar(&resol, "res", lib.DefaultBudgets().Resolution, "receiver grid cells per side")
	flag.Float64Var(&txZone, "tx-zone-radius", lib.DefaultBudgets().TxZoneRadius, "near-transmitter guard radius (cells)")
	flag.IntVar(&workers, "workers", 1, "parallel tracer workers")

	flag.StringVar(&gainLua, "gain-lua", "", "LUA script overriding the isotropic antenna gain")
	flag.StringVar(&gainPlugin, "gain-plugin", "", "compiled Go plugin (.so) overriding the isotropic antenna gain")
	flag.StringVar(&calibFile, "calibrate", "", "JSON file of {distance,path_loss_db} field samples to fit a path-loss correction")

	flag.StringVar(&heatmapFile, "heatmap", "", "write coverage heatmap to file (png/svg/pdf)")
	flag.StringVar(&svgFile, "svg", "", "write ray-path SVG overlay to file")
	flag.StringVar(&storeFile, "store", "", "persist the run to this SQLite database")
	flag.StringVar(&tag, "tag", "", "run tag for -store (default: derived from -tx)")
	flag.Parse()

	if len(config) > 0 {
		if err = lib.ReadConfig(config); err != nil {
			log.Fatal(err)
		}
	}

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
		log.Printf("imported %d walls from %s", len(walls), geoFile)
	}

	tx, err := parsePoint(txS)
	if err != nil {
		log.Fatalf("tx: %s", err)
	}
	freq, err := lib.ParseNumber(freqS)
	if err != nil {
		log.Fatalf("freq: %s", err)
	}
	pow, err := lib.ParseNumber(powS)
	if err != nil {
		log.Fatalf("power: %s", err)
	}
	antenna, err := lib.NewAntenna(tx, pow, freq)
	if err != nil {
		log.Fatal(err)
	}

	maxLoss, err := lib.ParseNumber(maxLossS)
	if err != nil {
		log.Fatalf("max-path-loss: %s", err)
	}
	budgets := lib.DefaultBudgets()
	budgets.NumRays = numRays
	budgets.MaxReflections = maxRefl
	budgets.MaxTransmissions = maxTrans
	budgets.MaxPathLoss = maxLoss
	budgets.Resolution = resol
	budgets.TxZoneRadius = txZone

	switch {
	case len(gainLua) > 0:
		hook, err := lib.NewLuaGainHook(gainLua)
		if err != nil {
			log.Fatalf("loading gain script: %s", err)
		}
		budgets.GainHook = hook
	case len(gainPlugin) > 0:
		hook, err := lib.NewPluginGainHook(gainPlugin)
		if err != nil {
			log.Fatalf("loading gain plugin: %s", err)
		}
		budgets.GainHook = hook
	}

	if len(calibFile) > 0 {
		calib, err := loadCalibration(calibFile)
		if err != nil {
			log.Fatalf("calibration: %s", err)
		}
		budgets.Calibration = &calib
		log.Printf("calibration: exponent=%.3f intercept=%.3fdB residual=%.3fdB^2",
			calib.Exponent, calib.InterceptDB, calib.ResidualSS)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	progress := func(phase string, done, total int) {
		log.Printf("%s: %d/%d", phase, done, total)
	}

	var res *lib.Result
	if workers > 1 {
		res, err = lib.RunParallel(ctx, env, antenna, budgets, workers, progress)
	} else {
		res, err = lib.Run(ctx, env, antenna, budgets, progress)
	}
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("traced %d rays (pruned: %d reflection, %d transmission, %d path-loss, %d non-finite)",
		len(res.Rays), res.Diagnostics.PrunedByReflection, res.Diagnostics.PrunedByTransmission,
		res.Diagnostics.PrunedByPathLoss, res.Diagnostics.PrunedNonFinite)

	if len(heatmapFile) > 0 {
		title := fmt.Sprintf("RF coverage %s (%s) - %s", Version, Date, tag)
		if err := lib.SaveHeatmap(res.Grid, title, heatmapFile, 8*vg.Inch, 6*vg.Inch); err != nil {
			log.Fatalf("writing heatmap: %s", err)
		}
	}

	if len(svgFile) > 0 {
		c, err := lib.NewSVGCanvas(0, 0, 0)
		if err != nil {
			log.Fatalf("creating SVG canvas: %s", err)
		}
		c.Show(res.Walls, res.Rays, tag)
		if err := c.Dump(svgFile); err != nil {
			log.Fatalf("writing SVG overlay: %s", err)
		}
		c.Close()
	}

	if len(storeFile) > 0 {
		st, err := lib.OpenStore(storeFile)
		if err != nil {
			log.Fatalf("opening store: %s", err)
		}
		defer st.Close()
		if len(tag) == 0 {
			tag = fmt.Sprintf("%s", txS)
		}
		if err := st.Save(tag, env, antenna, budgets, res); err != nil {
			log.Fatalf("saving run: %s", err)
		}
		log.Printf("saved run '%s' to %s", tag, storeFile)
	}
}

func parsePoint(s string) (lib.Vec2, error) {
	var x, y float64
	if _, err := fmt.Sscanf(s, "%f,%f", &x, &y); err != nil {
		return lib.Vec2{}, fmt.Errorf("expected 'x,y', got '%s'", s)
	}
	return lib.Vec2{X: x, Y: y}, nil
}

// loadCalibration reads a JSON array of field-measured (distance,
// path_loss_db) samples and fits a log-distance path-loss model.
func loadCalibration(fname string) (lib.Calibration, error) {
	body, err := os.ReadFile(fname)
	if err != nil {
		return lib.Calibration{}, err
	}
	var samples []lib.CalibrationSample
	if err := json.Unmarshal(body, &samples); err != nil {
		return lib.Calibration{}, fmt.Errorf("parsing calibration samples: %w", err)
	}
	return lib.FitPathLossExponent(samples)
}
