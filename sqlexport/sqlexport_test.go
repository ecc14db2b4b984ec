/*
 * sqlexport_test.go, part of refchem.
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

package sqlexport

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rmera/refchem/quantity"
	"github.com/rmera/refchem/reference"
	"github.com/rmera/refchem/thermo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mc = "b3lyp_6-31g(d)"

func saveSpecies(t *testing.T, dir, smiles string, index int, withCalc bool) {
	t.Helper()
	ref, err := reference.NewReferenceDataEntry(&thermo.Data{H298: quantity.NewScalar(-80, "kJ/mol", 0.5)}, "x*0")
	require.NoError(t, err)
	fod := 0.003
	calc, err := reference.NewCalculatedDataEntry(nil, &thermo.Data{H298: quantity.NewScalar(-75, "kJ/mol", 0)}, nil, &fod)
	require.NoError(t, err)
	opts := []reference.Option{reference.WithIndex(index),
		reference.WithReferenceData(reference.SourceEntry{Source: "ATcT", Entry: ref})}
	if withCalc {
		opts = append(opts, reference.WithCalculatedData(reference.ModelEntry{ModelChemistry: mc, Entry: calc}))
	}
	s, err := reference.NewReferenceSpecies(reference.Identity{SMILES: smiles}, opts...)
	require.NoError(t, err)
	require.NoError(t, s.SaveYAML(filepath.Join(dir, smiles+".yml")))
}

func loadDatabase(t *testing.T) *reference.Database {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "main")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	saveSpecies(t, dir, "C", 0, true)
	saveSpecies(t, dir, "CC", 1, true)
	saveSpecies(t, dir, "CCC", 2, false)
	db := reference.NewDatabase()
	require.NoError(t, db.Load(dir))
	return db
}

func TestExport(t *testing.T) {
	src := loadDatabase(t)
	path := filepath.Join(t.TempDir(), "out", "refs.db")
	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	// twice, to check that the tables are replaced
	require.NoError(t, Export(ctx, db, src))
	require.NoError(t, Export(ctx, db, src))

	set, err := src.Set("main")
	require.NoError(t, err)
	var nref, ncalc int
	for _, s := range set {
		nref += len(s.ReferenceData())
		ncalc += len(s.CalculatedData())
	}
	want := map[string]int{"species": len(set), "reference_data": nref, "calculated_data": ncalc}
	for table, n := range want {
		var got int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&got))
		assert.Equal(t, n, got, table)
	}
	assert.Equal(t, 2, want["species"])

	var h, unc float64
	var atct string
	require.NoError(t, db.QueryRowContext(ctx,
		"SELECT h298_j_mol, h298_unc_j_mol, atct_id FROM reference_data WHERE idx = 1").Scan(&h, &unc, &atct))
	assert.InDelta(t, -80000, h, 1e-6)
	assert.InDelta(t, 500, unc, 1e-6)
	assert.Equal(t, "x*0", atct)

	var fod float64
	var t1 *float64
	require.NoError(t, db.QueryRowContext(ctx,
		"SELECT fod, t1_diagnostic FROM calculated_data WHERE idx = 0 AND model_chemistry = ?", mc).Scan(&fod, &t1))
	assert.Equal(t, 0.003, fod)
	assert.Nil(t, t1)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestExportMultiplicativeUncertainty(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "main")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	h := &quantity.Scalar{Value: -238.9, Units: "kJ/mol", Uncertainty: 1.2, UncertaintyType: quantity.Multiplicative}
	ref, err := reference.NewReferenceDataEntry(&thermo.Data{H298: h}, "")
	require.NoError(t, err)
	calc, err := reference.NewCalculatedDataEntry(nil, &thermo.Data{H298: quantity.NewScalar(-230, "kJ/mol", 0)}, nil, nil)
	require.NoError(t, err)
	s, err := reference.NewReferenceSpecies(reference.Identity{SMILES: "CO"}, reference.WithIndex(0),
		reference.WithReferenceData(reference.SourceEntry{Source: "NIST", Entry: ref}),
		reference.WithCalculatedData(reference.ModelEntry{ModelChemistry: mc, Entry: calc}))
	require.NoError(t, err)
	require.NoError(t, s.SaveYAML(filepath.Join(dir, "0.yml")))
	src := reference.NewDatabase()
	require.NoError(t, src.Load(dir))

	db, err := Open(filepath.Join(t.TempDir(), "refs.db"))
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()
	require.NoError(t, Export(ctx, db, src))

	var unc *float64
	var factor float64
	require.NoError(t, db.QueryRowContext(ctx,
		"SELECT h298_unc_j_mol, h298_unc_factor FROM reference_data WHERE source = 'NIST'").Scan(&unc, &factor))
	assert.Nil(t, unc)
	assert.Equal(t, 1.2, factor)

	var additive *float64
	require.NoError(t, Export(ctx, db, loadDatabase(t)))
	require.NoError(t, db.QueryRowContext(ctx,
		"SELECT h298_unc_factor FROM reference_data WHERE idx = 1").Scan(&additive))
	assert.Nil(t, additive)
}
