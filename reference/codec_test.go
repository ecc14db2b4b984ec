/*
 * codec_test.go, part of refchem.
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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func readFixture(t *testing.T, name string) *ReferenceSpecies {
	t.Helper()
	s := new(ReferenceSpecies)
	require.NoError(t, s.LoadYAML(filepath.Join("testdata", name)))
	return s
}

func TestDecodeFixture(t *testing.T) {
	s := readFixture(t, "methane.yml")
	assert.Equal(t, "methane", s.Label)
	assert.Equal(t, "C", s.SMILES)
	assert.Equal(t, "CH4", s.Formula)
	assert.Equal(t, "InChI=1S/CH4/h1H4", s.InChI)
	assert.Equal(t, 16.04, s.MolecularWeight.Value)
	assert.Equal(t, 12, s.SymmetryNumber)
	require.NotNil(t, s.Index)
	assert.Equal(t, 0, *s.Index)
	assert.Equal(t, "74-82-8", s.CASNumber)
	assert.Equal(t, "<ReferenceSpecies C(0)>", s.String())

	refs := s.ReferenceData()
	require.Len(t, refs, 2)
	assert.Equal(t, "ATcT", refs[0].Source)
	assert.Equal(t, "NIST", refs[1].Source)
	assert.Equal(t, "74-82-8*0", refs[0].Entry.ATcTID())

	calc := s.CalculatedEntry("wb97m-v_def2-tzvpd")
	require.NotNil(t, calc)
	assert.Equal(t, 0.01, *calc.T1Diagnostic())
	assert.Equal(t, 0.0, *calc.FOD())
	require.NotNil(t, calc.Conformer())
	assert.Len(t, calc.Conformer().Modes, 3)

	h, err := s.ResolveReferenceEnthalpy("")
	require.NoError(t, err)
	assert.Equal(t, "ATcT", h.Source)
	assert.Equal(t, -74.52, h.H298.Value)
}

func TestRoundTrip(t *testing.T) {
	s := readFixture(t, "methane.yml")
	out, err := s.EncodeYAML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "class: ReferenceSpecies")
	assert.Contains(t, string(out), "adjacency_list: |")

	back := new(ReferenceSpecies)
	require.NoError(t, back.DecodeYAML(out))
	assert.Equal(t, s.Label, back.Label)
	assert.Equal(t, s.SMILES, back.SMILES)
	assert.Equal(t, s.AdjacencyList, back.AdjacencyList)
	assert.Equal(t, s.InChI, back.InChI)
	assert.Equal(t, s.Formula, back.Formula)
	assert.Equal(t, s.MolecularWeight, back.MolecularWeight)
	assert.Equal(t, s.SymmetryNumber, back.SymmetryNumber)
	assert.Equal(t, s.Index, back.Index)
	assert.Equal(t, s.CASNumber, back.CASNumber)
	assert.Equal(t, s.PreferredReference, back.PreferredReference)
	assert.Equal(t, s.DefaultXYZChemistry, back.DefaultXYZChemistry)
	assert.Equal(t, s.ReferenceData(), back.ReferenceData())
	assert.Equal(t, s.CalculatedData(), back.CalculatedData())
	assert.True(t, s.Molecule.IsIsomorphic(back.Molecule))

	ecs, err := back.ToErrorCancelingSpecies("wb97m-v_def2-tzvpd", "")
	require.NoError(t, err)
	assert.Equal(t, -70.1, ecs.LowLevelHf298.Value)
	assert.Equal(t, -74.52, ecs.HighLevelHf298.Value)

	// a species with no data keeps both collections
	bare, err := NewReferenceSpecies(Identity{SMILES: "O"})
	require.NoError(t, err)
	out, err = bare.EncodeYAML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "reference_data: {}")
	back = new(ReferenceSpecies)
	require.NoError(t, back.DecodeYAML(out))
	assert.Empty(t, back.ReferenceData())
	assert.Nil(t, back.Index)
}

func TestYAMLInterfaces(t *testing.T) {
	s := readFixture(t, "methane.yml")
	out, err := yaml.Marshal(s)
	require.NoError(t, err)
	back := new(ReferenceSpecies)
	require.NoError(t, yaml.Unmarshal(out, back))
	assert.Equal(t, s.CalculatedData(), back.CalculatedData())

	v, err := classes.Decode(mustNode(t, out))
	require.NoError(t, err)
	assert.IsType(t, &ReferenceSpecies{}, v)
	assert.Contains(t, Classes(), "HinderedRotor")
	assert.Len(t, Classes(), 14)
}

func mustNode(t *testing.T, data []byte) *yaml.Node {
	t.Helper()
	var n yaml.Node
	require.NoError(t, yaml.Unmarshal(data, &n))
	return &n
}

func TestDecodeErrors(t *testing.T) {
	var s ReferenceSpecies
	err := s.DecodeYAML([]byte("class: ThermoData\nH298: {class: ScalarQuantity, value: 1, units: kJ/mol}\n"))
	assert.ErrorIs(t, err, ErrSchemaMismatch)
	err = s.DecodeYAML([]byte("smiles: C\n"))
	assert.ErrorIs(t, err, ErrSchemaMismatch)
	err = s.DecodeYAML([]byte("- class: ReferenceSpecies\n"))
	assert.ErrorIs(t, err, ErrSchemaMismatch)
	err = s.DecodeYAML([]byte("class: ReferenceSpecies\nsmiles: [\n"))
	assert.ErrorIs(t, err, ErrValidation)
	err = s.DecodeYAML([]byte("class: ReferenceSpecies\n"))
	assert.ErrorIs(t, err, ErrValidation)

	err = s.LoadYAML(filepath.Join("testdata", "unknown_mode.yml"))
	assert.ErrorIs(t, err, ErrUnknownClass)
	assert.ErrorIs(t, err, ErrSchemaMismatch)
	assert.Contains(t, err.Error(), "Vibrator")

	err = s.LoadYAML(filepath.Join("testdata", "sequence_data.yml"))
	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrSchemaMismatch)

	err = s.DecodeYAML([]byte("class: ReferenceSpecies\nsmiles: C\nreference_data:\n  '': {class: ReferenceDataEntry}\n"))
	assert.ErrorIs(t, err, ErrValidation)
	err = s.DecodeYAML([]byte("class: ReferenceSpecies\nsmiles: C\nreference_data:\n  ATcT:\n"))
	assert.ErrorIs(t, err, ErrValidation)
	err = s.DecodeYAML([]byte("class: ReferenceSpecies\nsmiles: C\nreference_data:\n  ATcT: {class: ReferenceDataEntry}\n  ATcT: {class: ReferenceDataEntry}\n"))
	assert.ErrorIs(t, err, ErrValidation)
	err = s.DecodeYAML([]byte("class: ReferenceSpecies\nsmiles: C\ncalculated_data:\n  hf_sto-3g: {class: CalculatedDataEntry, t1_diagnostic: -1}\n"))
	assert.ErrorIs(t, err, ErrValidation)

	err = s.LoadYAML(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIdentityFallback(t *testing.T) {
	var s ReferenceSpecies
	require.NoError(t, s.DecodeYAML([]byte("class: ReferenceSpecies\ninchi: InChI=1S/CH4/h1H4\n")))
	assert.Equal(t, "C", s.SMILES)
	assert.Equal(t, "InChI=1S/CH4/h1H4", s.InChI)

	// the adjacency list wins over the SMILES for the structure
	adj := "class: ReferenceSpecies\nsmiles: CC\nadjacency_list: |\n  1 O u0 p2 c0 {2,S} {3,S}\n  2 H u0 p0 c0 {1,S}\n  3 H u0 p0 c0 {1,S}\n"
	require.NoError(t, s.DecodeYAML([]byte(adj)))
	assert.Equal(t, "H2O", s.Molecule.Formula())
}

// RMG-database records spell the length units in the plural.
func TestPluralAngstroms(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "methane.yml"))
	require.NoError(t, err)
	src := strings.ReplaceAll(string(data), "units: angstrom\n", "units: angstroms\n")
	src = strings.ReplaceAll(src, "amu*angstrom^2", "amu*angstroms^2")
	require.Contains(t, src, "units: angstroms\n")
	require.Contains(t, src, "amu*angstroms^2")

	s := new(ReferenceSpecies)
	require.NoError(t, s.DecodeYAML([]byte(src)))
	geo, err := s.DefaultGeometry()
	require.NoError(t, err)
	assert.InDelta(t, 0.629, geo.Coords.At(1, 0), 1e-9)
	assert.InDelta(t, -0.629, geo.Coords.At(4, 2), 1e-9)
	require.NoError(t, s.CheckGeometry())

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0.yml"), []byte(src), 0o644))
	db := NewDatabase()
	require.NoError(t, db.Load(dir))
	set, err := db.Set(filepath.Base(dir))
	require.NoError(t, err)
	assert.Len(t, set, 1)
}

func TestCompressedFiles(t *testing.T) {
	s := readFixture(t, "methane.yml")
	dir := t.TempDir()
	for _, name := range []string{"0.yml", "0.yml.gz", "0.yaml.zst"} {
		path := filepath.Join(dir, name)
		require.NoError(t, s.SaveYAML(path), name)
		back := new(ReferenceSpecies)
		require.NoError(t, back.LoadYAML(path), name)
		assert.Equal(t, s.SMILES, back.SMILES, name)
		assert.Equal(t, s.ReferenceData(), back.ReferenceData(), name)
	}
	plain, err := os.ReadFile(filepath.Join(dir, "0.yml"))
	require.NoError(t, err)
	gz, err := os.ReadFile(filepath.Join(dir, "0.yml.gz"))
	require.NoError(t, err)
	assert.NotEqual(t, plain, gz)
	assert.Equal(t, []byte{0x1f, 0x8b}, gz[:2])

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yml.gz"), plain, 0o644))
	assert.ErrorIs(t, new(ReferenceSpecies).LoadYAML(filepath.Join(dir, "bad.yml.gz")), ErrValidation)
}
