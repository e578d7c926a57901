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
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// initialization statement for the run-result table.
var storeIni = `
create table run (
    id        integer primary key,
    tag       varchar(127) not null,  -- free-form run tag (building/floor/etc)
    freq      real not null,          -- antenna frequency (Hz)
    tx_power  real not null,          -- antenna tx power (W)
    tx_x      real not null,
    tx_y      real not null,
    num_rays  integer not null,
    max_refl  integer not null,
    max_trans integer not null,
    resolution integer not null,
    num_rays_stored integer not null,
    pruned_refl  integer not null,
    pruned_trans integer not null,
    pruned_loss  integer not null,
    pruned_nonfinite integer not null,
    power_json text not null          -- R×R dBm matrix, json-encoded
);
create unique index idx_run_tag on run(tag);
`

// Store is a SQLite-backed sink for simulation Results, the spec's
// "result sink" collaborator (§6).
type Store struct {
	inst *sql.DB
}

// OpenStore opens (or creates) a SQLite3 database at fname.
func OpenStore(fname string) (st *Store, err error) {
	st = new(Store)
	if st.inst, err = sql.Open("sqlite3", fname); err != nil {
		return nil, err
	}
	var num int64
	row := st.inst.QueryRow("select count(*) from run")
	if err = row.Scan(&num); err != nil {
		_, err = st.inst.Exec(storeIni)
	}
	return
}

// Close the store.
func (st *Store) Close() error {
	if st.inst == nil {
		return errors.New("store not opened")
	}
	return st.inst.Close()
}

// Save persists a Result under the given run tag, replacing any prior
// run with the same tag.
func (st *Store) Save(tag string, env *Environment, antenna *Antenna, budgets Budgets, res *Result) error {
	power, err := json.Marshal(res.Grid.Power)
	if err != nil {
		return err
	}
	stmt := "replace into run(tag,freq,tx_power,tx_x,tx_y,num_rays,max_refl,max_trans," +
		"resolution,num_rays_stored,pruned_refl,pruned_trans,pruned_loss,pruned_nonfinite,power_json)" +
		" values(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)"
	_, err = st.inst.Exec(stmt,
		tag, antenna.Frequency, antenna.TxPower, antenna.Location.X, antenna.Location.Y,
		budgets.NumRays, budgets.MaxReflections, budgets.MaxTransmissions, budgets.Resolution,
		len(res.Rays), res.Diagnostics.PrunedByReflection, res.Diagnostics.PrunedByTransmission,
		res.Diagnostics.PrunedByPathLoss, res.Diagnostics.PrunedNonFinite, string(power),
	)
	return err
}

// RunSummary is the metadata row for one persisted run, without the
// full power matrix.
type RunSummary struct {
	Tag            string
	Frequency      float64
	TxPower        float64
	Resolution     int
	NumRaysStored  int
	Diagnostics    Diagnostics
}

// Load fetches one run's power matrix and summary by tag.
func (st *Store) Load(tag string) (power [][]float64, summary RunSummary, err error) {
	row := st.inst.QueryRow(
		"select tag,freq,tx_power,resolution,num_rays_stored,pruned_refl,pruned_trans,pruned_loss,pruned_nonfinite,power_json"+
			" from run where tag=?", tag)
	var powerJSON string
	if err = row.Scan(&summary.Tag, &summary.Frequency, &summary.TxPower, &summary.Resolution,
		&summary.NumRaysStored, &summary.Diagnostics.PrunedByReflection,
		&summary.Diagnostics.PrunedByTransmission, &summary.Diagnostics.PrunedByPathLoss,
		&summary.Diagnostics.PrunedNonFinite, &powerJSON); err != nil {
		return nil, summary, fmt.Errorf("run '%s' not found: %w", tag, err)
	}
	err = json.Unmarshal([]byte(powerJSON), &power)
	return
}

// Tags lists every persisted run tag.
func (st *Store) Tags() (tags []string, err error) {
	rows, err := st.inst.Query("select tag from run order by tag asc")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var tag string
		if err = rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return
}
