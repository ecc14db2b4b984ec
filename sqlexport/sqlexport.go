/*
 * sqlexport.go, part of refchem.
 *
 * Copyright 2024 The refchem authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package sqlexport writes a loaded reference database to SQLite, so the
// reference sets can be queried without the YAML records.
package sqlexport

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rmera/refchem/quantity"
	"github.com/rmera/refchem/reference"
	"github.com/rmera/refchem/thermo"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS species (
		set_name TEXT NOT NULL,
		idx INTEGER,
		label TEXT,
		smiles TEXT NOT NULL,
		formula TEXT,
		cas_number TEXT,
		preferred_reference TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS reference_data (
		set_name TEXT NOT NULL,
		idx INTEGER,
		source TEXT NOT NULL,
		h298_j_mol REAL,
		h298_unc_j_mol REAL,
		h298_unc_factor REAL,
		atct_id TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS calculated_data (
		set_name TEXT NOT NULL,
		idx INTEGER,
		model_chemistry TEXT NOT NULL,
		h298_j_mol REAL,
		t1_diagnostic REAL,
		fod REAL
	)`,
}

// Tables are the tables written by Export.
var Tables = []string{"species", "reference_data", "calculated_data"}

// Open opens, or creates, the SQLite database in path.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return db, nil
}

// Export replaces the contents of the species, reference_data and
// calculated_data tables of db with the sets loaded in src, in a single
// transaction.
func Export(ctx context.Context, db *sql.DB, src *reference.Database) (retErr error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	for _, table := range Tables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	for _, set := range src.Sets() {
		species, err := src.Set(set)
		if err != nil {
			return err
		}
		for _, s := range species {
			if err := insertSpecies(ctx, tx, set, s); err != nil {
				return fmt.Errorf("species %s in set %s: %w", s, set, err)
			}
		}
	}
	return tx.Commit()
}

func insertSpecies(ctx context.Context, tx *sql.Tx, set string, s *reference.ReferenceSpecies) error {
	var idx sql.NullInt64
	if s.Index != nil {
		idx = sql.NullInt64{Int64: int64(*s.Index), Valid: true}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO species (set_name, idx, label, smiles, formula, cas_number, preferred_reference) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		set, idx, s.Label, s.SMILES, s.Formula, s.CASNumber, s.PreferredReference); err != nil {
		return err
	}
	for _, e := range s.ReferenceData() {
		h, unc, factor, err := enthalpy(e.Entry.ThermoData())
		if err != nil {
			return fmt.Errorf("source %s: %w", e.Source, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO reference_data (set_name, idx, source, h298_j_mol, h298_unc_j_mol, h298_unc_factor, atct_id) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			set, idx, e.Source, h, unc, factor, e.Entry.ATcTID()); err != nil {
			return err
		}
	}
	for _, e := range s.CalculatedData() {
		h, _, _, err := enthalpy(e.Entry.ThermoData())
		if err != nil {
			return fmt.Errorf("model chemistry %s: %w", e.ModelChemistry, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO calculated_data (set_name, idx, model_chemistry, h298_j_mol, t1_diagnostic, fod) VALUES (?, ?, ?, ?, ?, ?)`,
			set, idx, e.ModelChemistry, h, nullFloat(e.Entry.T1Diagnostic()), nullFloat(e.Entry.FOD())); err != nil {
			return err
		}
	}
	return nil
}

// enthalpy returns the H298 of td in J/mol and its uncertainty. An
// additive uncertainty comes back in J/mol as unc, a multiplicative one
// as the dimensionless factor.
func enthalpy(td *thermo.Data) (h, unc, factor sql.NullFloat64, err error) {
	if td == nil || td.H298 == nil {
		return h, unc, factor, nil
	}
	v, err := td.H298.ValueSI()
	if err != nil {
		return h, unc, factor, err
	}
	h = sql.NullFloat64{Float64: v, Valid: true}
	if td.H298.UncertaintyType == quantity.Multiplicative {
		return h, unc, sql.NullFloat64{Float64: td.H298.Uncertainty, Valid: true}, nil
	}
	u, err := td.H298.UncertaintySI()
	if err != nil {
		return h, unc, factor, err
	}
	return h, sql.NullFloat64{Float64: u, Valid: true}, factor, nil
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
