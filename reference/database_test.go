/*
 * database_test.go, part of refchem.
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

package reference

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// writeSet saves every species in files, keyed by file name, to the
// directory dir/name and returns its path.
func writeSet(t *testing.T, dir, name string, files map[string]*ReferenceSpecies) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(path, 0o755))
	for f, s := range files {
		require.NoError(t, s.SaveYAML(filepath.Join(path, f)))
	}
	return path
}

func mainSet(t *testing.T, dir string) string {
	t.Helper()
	incomplete, err := NewReferenceSpecies(Identity{SMILES: "CCC"}, WithIndex(3),
		WithReferenceData(SourceEntry{Source: "ATcT", Entry: refEntry(t, -104.7, 0.5)}))
	require.NoError(t, err)
	path := writeSet(t, dir, "main", map[string]*ReferenceSpecies{
		"0.yml":     complete(t, "C", WithIndex(0), WithLabel("methane")),
		"1.yml":     complete(t, "CC", WithIndex(1), WithLabel("ethane")),
		"2.yml":     complete(t, "C", WithIndex(2), WithLabel("methane again")),
		"3.yml":     incomplete,
		"10.yml.gz": complete(t, "C=C", WithIndex(10), WithLabel("ethene")),
		".5.yml":    complete(t, "O", WithIndex(5)),
	})
	require.NoError(t, os.WriteFile(filepath.Join(path, "README.txt"), []byte("not a record\n"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(path, "6.yml"), 0o755))
	return path
}

func labels(species []*ReferenceSpecies) []string {
	ret := make([]string, len(species))
	for i, s := range species {
		ret[i] = s.Label
	}
	return ret
}

func TestRecordFiles(t *testing.T) {
	for name, want := range map[string]bool{"1.yml": true, "1.yaml": true, "1.yml.gz": true, "x.yaml.zst": true,
		".1.yml": false, "1.json": false, "1.yml.bz2": false, "yml": false} {
		assert.Equal(t, want, isRecordFile(name), name)
	}
	files, err := recordFiles(mainSet(t, t.TempDir()))
	require.NoError(t, err)
	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	assert.Equal(t, []string{"0.yml", "1.yml", "2.yml", "3.yml", "10.yml.gz"}, names)

	_, err = recordFiles(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := mainSet(t, dir)
	core, logs := observer.New(zapcore.WarnLevel)
	reg := prometheus.NewRegistry()
	db := NewDatabase(WithLogger(zap.New(core)), WithRegisterer(reg), WithParallelism(3))
	require.NoError(t, db.Load(path))

	assert.Equal(t, []string{"main"}, db.Sets())
	set, err := db.Set("main")
	require.NoError(t, err)
	assert.Equal(t, []string{"methane", "ethane", "ethene"}, labels(set))

	dups := logs.FilterField(zap.String("reason", skipDuplicate))
	require.Equal(t, 1, dups.Len())
	assert.Equal(t, "2.yml", dups.All()[0].ContextMap()["file"])
	assert.Equal(t, zapcore.WarnLevel, dups.All()[0].Level)
	incomplete := logs.FilterField(zap.String("reason", skipIncomplete))
	require.Equal(t, 1, incomplete.Len())
	assert.Equal(t, "3.yml", incomplete.All()[0].ContextMap()["file"])
	assert.Equal(t, "main", incomplete.All()[0].ContextMap()["set"])

	assert.Equal(t, 3.0, testutil.ToFloat64(db.metrics.loaded))
	assert.Equal(t, 1.0, testutil.ToFloat64(db.metrics.skipped.WithLabelValues(skipDuplicate)))
	assert.Equal(t, 1.0, testutil.ToFloat64(db.metrics.skipped.WithLabelValues(skipIncomplete)))
	assert.Equal(t, 1.0, testutil.ToFloat64(db.metrics.sets))
	n, err := testutil.GatherAndCount(reg, "refchem_species_skipped_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	expected := `
# HELP refchem_reference_sets Number of loaded reference sets
# TYPE refchem_reference_sets gauge
refchem_reference_sets 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "refchem_reference_sets"))
}

func TestLoadDefaultDirectory(t *testing.T) {
	dir := t.TempDir()
	mainSet(t, filepath.Join(dir, "reference_sets"))
	db := NewDatabase(WithDatabaseDirectory(dir))
	assert.Equal(t, dir, db.Directory())
	require.NoError(t, db.Load())
	assert.Equal(t, []string{"main"}, db.Sets())

	assert.ErrorIs(t, NewDatabase(WithDatabaseDirectory(t.TempDir())).Load(), ErrNotFound)
	assert.Equal(t, DefaultDatabaseDirectory, NewDatabase().Directory())
}

func TestLoadSets(t *testing.T) {
	dir := t.TempDir()
	main := mainSet(t, dir)
	extra := writeSet(t, dir, "extra", map[string]*ReferenceSpecies{
		"0.yml": complete(t, "CC", WithIndex(0), WithLabel("ethane, again")),
		"1.yml": complete(t, "CO", WithIndex(1), WithLabel("methanol")),
	})
	db := NewDatabase()
	require.NoError(t, db.Load(main, extra))
	assert.Equal(t, []string{"main", "extra"}, db.Sets())
	set, err := db.Set("extra")
	require.NoError(t, err)
	assert.Equal(t, []string{"methanol"}, labels(set))

	// duplicates are only looked for within a Load call
	require.NoError(t, db.Load(extra))
	assert.Equal(t, []string{"main", "extra"}, db.Sets())
	set, err = db.Set("extra")
	require.NoError(t, err)
	assert.Equal(t, []string{"ethane, again", "methanol"}, labels(set))

	_, err = db.Set("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadFailure(t *testing.T) {
	dir := t.TempDir()
	path := mainSet(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(path, "4.yml"), []byte("class: ThermoData\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(path, "7.yml"), []byte("smiles: [\n"), 0o644))
	for _, n := range []int{1, 4} {
		db := NewDatabase(WithParallelism(n))
		err := db.Load(path)
		require.ErrorIs(t, err, ErrSchemaMismatch, "parallelism %d", n)
		assert.Contains(t, err.Error(), "4.yml")
		assert.Empty(t, db.Sets())
		_, err = db.Set("main")
		assert.ErrorIs(t, err, ErrNotFound)
	}
}

func TestExtractModelChemistry(t *testing.T) {
	dir := t.TempDir()
	other, err := NewReferenceSpecies(Identity{SMILES: "CO"}, WithIndex(1),
		WithReferenceData(SourceEntry{Source: "ATcT", Entry: refEntry(t, -200.9, 0.2)}),
		WithCalculatedData(ModelEntry{ModelChemistry: "hf_sto-3g", Entry: calcEntry(t, -190)}))
	require.NoError(t, err)
	db := NewDatabase()
	require.NoError(t, db.Load(mainSet(t, dir), writeSet(t, dir, "extra", map[string]*ReferenceSpecies{"1.yml": other})))

	chems, err := db.ListAvailableChemistry()
	require.NoError(t, err)
	assert.Equal(t, []string{testChemistry, "hf_sto-3g"}, chems)
	chems, err = db.ListAvailableChemistry("extra")
	require.NoError(t, err)
	assert.Equal(t, []string{"hf_sto-3g"}, chems)

	ecs, err := db.ExtractModelChemistry(testChemistry)
	require.NoError(t, err)
	require.Len(t, ecs, 3)
	assert.Equal(t, "C", ecs[0].Molecule.String())
	for _, e := range ecs {
		assert.Equal(t, testChemistry, e.ModelChemistry)
		assert.Equal(t, "ATcT", e.Source)
		assert.False(t, e.IsTarget())
	}
	species, err := db.ReferenceSpeciesFor("hf_sto-3g")
	require.NoError(t, err)
	require.Len(t, species, 1)
	assert.Equal(t, "CH4O", species[0].Formula)

	ecs, err = db.ExtractModelChemistry(testChemistry, "extra")
	require.NoError(t, err)
	assert.Empty(t, ecs)
	_, err = db.ExtractModelChemistry(testChemistry, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = db.ListAvailableChemistry("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSpeciesLookup(t *testing.T) {
	db := NewDatabase()
	require.NoError(t, db.Load(mainSet(t, t.TempDir())))

	got, err := db.SpeciesByIndex("main", 10, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"ethene", "ethane"}, labels(got))
	got, err = db.SpeciesByIndex("", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"methane"}, labels(got))

	_, err = db.SpeciesByIndex("main", 99)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "99")
	assert.Contains(t, err.Error(), "main")
	_, err = db.SpeciesByIndex("nope", 0)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err = db.SpeciesByLabel("", "ethane", "methane")
	require.NoError(t, err)
	assert.Equal(t, []string{"CC", "C"}, []string{got[0].SMILES, got[1].SMILES})
	_, err = db.SpeciesByLabel("main", "propane")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "propane")

	idx, err := ParseIndices([]string{"3", " 1"})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, idx)
	_, err = ParseIndices([]string{"three"})
	assert.ErrorIs(t, err, ErrValidation)
}
