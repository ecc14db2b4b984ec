/*
 * isodesmic_test.go, part of refchem.
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

package isodesmic

import (
	"strings"
	"testing"

	chem "github.com/rmera/refchem"
	"github.com/rmera/refchem/quantity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mol(t *testing.T, smiles string) *chem.Molecule {
	t.Helper()
	m, err := chem.FromSMILES(smiles)
	require.NoError(t, err)
	return m
}

func TestNewErrorCancelingSpecies(t *testing.T) {
	low := quantity.Plain{Value: -70, Units: "kJ/mol"}
	high := quantity.Plain{Value: -74.52, Units: "kJ/mol"}
	s, err := NewErrorCancelingSpecies(mol(t, "C"), low, "wb97m-v_def2-tzvpd", high, "ATcT")
	require.NoError(t, err)
	assert.False(t, s.IsTarget())
	assert.Equal(t, "ATcT", s.Source)
	assert.Equal(t, "<ErrorCancelingSpecies C>", s.String())

	target, err := NewErrorCancelingSpecies(mol(t, "CC"), low, "wb97m-v_def2-tzvpd", quantity.Plain{}, "")
	require.NoError(t, err)
	assert.True(t, target.IsTarget())

	_, err = NewErrorCancelingSpecies(nil, low, "mc", high, "")
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = NewErrorCancelingSpecies(mol(t, "C"), low, "", high, "")
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = NewErrorCancelingSpecies(mol(t, "C"), quantity.Plain{Value: 1, Units: "K"}, "mc", high, "")
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = NewErrorCancelingSpecies(mol(t, "C"), low, "mc", quantity.Plain{Value: 1, Units: "amu"}, "")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestReaction(t *testing.T) {
	mc := "b3lyp_6-31g(d)"
	target, err := NewErrorCancelingSpecies(mol(t, "CCC"), quantity.Plain{Value: -80, Units: "kJ/mol"}, mc, quantity.Plain{}, "")
	require.NoError(t, err)
	a, err := NewErrorCancelingSpecies(mol(t, "CC"), quantity.Plain{Value: -70, Units: "kJ/mol"}, mc, quantity.Plain{Value: -74, Units: "kJ/mol"}, "ATcT")
	require.NoError(t, err)
	b, err := NewErrorCancelingSpecies(mol(t, "C"), quantity.Plain{Value: -60, Units: "kJ/mol"}, mc, quantity.Plain{Value: -62, Units: "kJ/mol"}, "ATcT")
	require.NoError(t, err)

	rxn, err := NewReaction(target, map[*ErrorCancelingSpecies]int{a: 1, b: -1})
	require.NoError(t, err)
	h, err := rxn.TargetHf298()
	require.NoError(t, err)
	assert.Equal(t, "J/mol", h.Units)
	assert.InDelta(t, -82000, h.Value, 1e-6)
	assert.True(t, strings.HasPrefix(rxn.String(), "[1*CCC 1*C] <=> [1*CC]"), rxn.String())

	other, err := NewErrorCancelingSpecies(mol(t, "C"), quantity.Plain{Value: -60, Units: "kJ/mol"}, "hf_sto-3g", quantity.Plain{Value: -62, Units: "kJ/mol"}, "")
	require.NoError(t, err)
	_, err = NewReaction(target, map[*ErrorCancelingSpecies]int{other: 1})
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = NewReaction(target, map[*ErrorCancelingSpecies]int{a: 0})
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = NewReaction(target, map[*ErrorCancelingSpecies]int{target: 1})
	assert.ErrorIs(t, err, ErrInvalid)
}
