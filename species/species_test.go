/*
 * species_test.go, part of refchem.
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

package species

import (
	"testing"

	chem "github.com/rmera/refchem"
	"github.com/rmera/refchem/quantity"
	"github.com/rmera/refchem/statmech"
	"github.com/rmera/refchem/thermo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	mol, err := chem.FromSMILES("C=C")
	require.NoError(t, err)
	ids := map[string]Identity{
		"molecule": {Molecule: mol},
		"smiles":   {SMILES: "C=C"},
		"adjlist":  {AdjacencyList: mol.AdjacencyList()},
		"inchi":    {InChI: "InChI=1S/C2H4/c1-2/h1-2H2"},
	}
	for name, id := range ids {
		r, err := NewRecord(id, "ethene")
		require.NoError(t, err, name)
		assert.Equal(t, "C=C", r.SMILES, name)
		assert.Equal(t, "C2H4", r.Formula, name)
		assert.Equal(t, 1, r.Multiplicity, name)
		assert.Equal(t, 1, r.SymmetryNumber, name)
		assert.Equal(t, "amu", r.MolecularWeight.Units, name)
		assert.InDelta(t, 28.05, r.MolecularWeight.Value, 0.01, name)
		assert.True(t, r.Molecule.IsIsomorphic(mol), name)
	}
	r, err := NewRecord(Identity{InChI: "InChI=1S/C2H4/c1-2/h1-2H2"}, "")
	require.NoError(t, err)
	assert.Equal(t, "InChI=1S/C2H4/c1-2/h1-2H2", r.InChI)
	assert.Equal(t, "C=C", r.String())
}

func TestIdentityErrors(t *testing.T) {
	_, err := NewRecord(Identity{}, "")
	assert.ErrorIs(t, err, ErrIdentity)
	_, err = NewRecord(Identity{SMILES: "C", InChI: "InChI=1S/CH4/h1H4"}, "")
	assert.ErrorIs(t, err, ErrIdentity)
	_, err = NewRecord(Identity{SMILES: "C(C"}, "")
	assert.ErrorIs(t, err, chem.ErrParse)
	assert.Equal(t, 0, Identity{SMILES: "   "}.Sources())
}

func TestMoleculeIsCopied(t *testing.T) {
	mol, err := chem.FromSMILES("[CH3]")
	require.NoError(t, err)
	r, err := NewRecord(Identity{Molecule: mol}, "methyl")
	require.NoError(t, err)
	mol.Atoms[0].Radicals = 0
	assert.Equal(t, 1, r.Molecule.Atoms[0].Radicals)
	assert.Equal(t, 2, r.Multiplicity)
	assert.Equal(t, "methyl ([CH3])", r.String())
}

func TestValidate(t *testing.T) {
	r, err := NewRecord(Identity{SMILES: "C"}, "methane")
	require.NoError(t, err)
	require.NoError(t, r.Validate())
	r.ThermoData = &thermo.Data{H298: quantity.NewScalar(-74.5, "K", 0)}
	assert.ErrorIs(t, r.Validate(), ErrInvalid)
	r.ThermoData = nil
	r.Conformer = &statmech.Conformer{SpinMultiplicity: -1}
	assert.ErrorIs(t, r.Validate(), ErrInvalid)
}
