/*
 * quantity_test.go, part of refchem.
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

package quantity

import (
	"errors"
	"testing"

	"github.com/rmera/refchem/chemyaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestReduceKeepsValueAndUnits(t *testing.T) {
	s := NewScalar(-74.52, "kJ/mol", 0.057)
	p := s.Reduce()
	assert.Equal(t, -74.52, p.Value)
	assert.Equal(t, "kJ/mol", p.Units)
	assert.Equal(t, "-74.52 kJ/mol", p.String())
}

func TestSIConversions(t *testing.T) {
	s := NewScalar(-17.8, "kcal/mol", 0.1)
	v, err := s.ValueSI()
	require.NoError(t, err)
	assert.InDelta(t, -74475.2, v, 1e-6)
	u, err := s.UncertaintySI()
	require.NoError(t, err)
	assert.InDelta(t, 418.4, u, 1e-9)

	m := &Scalar{Value: 1, Units: "kJ/mol", Uncertainty: 1.5, UncertaintyType: Multiplicative}
	u, err = m.UncertaintySI()
	require.NoError(t, err)
	assert.Equal(t, 1.5, u)

	_, err = (&Scalar{Value: 1, Units: "furlong"}).ValueSI()
	assert.True(t, errors.Is(err, ErrUnknownUnits))

	c, err := Convert(1, "angstrom", "bohr")
	require.NoError(t, err)
	assert.InDelta(t, 1.8897261, c, 1e-6)
	f, err := Factor("angstroms")
	require.NoError(t, err)
	assert.Equal(t, Angstrom, f)
	assert.True(t, IsEnergyPerMole("kcal/mol"))
	assert.False(t, IsEnergyPerMole("J/(mol*K)"))
}

func TestScalarValidate(t *testing.T) {
	assert.NoError(t, NewScalar(1, "K", 0).Validate())
	assert.True(t, errors.Is((&Scalar{Units: "K", UncertaintyType: "~"}).Validate(), ErrUncertaintyType))
	assert.True(t, errors.Is((&Scalar{Units: "K", Uncertainty: -1}).Validate(), ErrNegativeUncertainty))
}

func TestArrayShape(t *testing.T) {
	a, err := NewArray2D("angstrom", [][]float64{{0, 0, 0}, {1, 0, 0}})
	require.NoError(t, err)
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, [][]float64{{0, 0, 0}, {1, 0, 0}}, a.Rows())
	si, err := a.ValueSI()
	require.NoError(t, err)
	assert.InDelta(t, 1e-10, si[3], 1e-22)

	_, err = NewArray2D("m", [][]float64{{1, 2}, {3}})
	assert.True(t, errors.Is(err, ErrRagged))
}

func TestScalarYAML(t *testing.T) {
	type holder struct {
		H298 *Scalar `yaml:"H298"`
	}
	in := holder{NewScalar(-74.52, "kJ/mol", 0.057)}
	out, err := yaml.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(out), "class: ScalarQuantity")

	var back holder
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, in, back)

	err = yaml.Unmarshal([]byte("H298: {class: ArrayQuantity, value: [1]}\n"), &back)
	assert.True(t, errors.Is(err, chemyaml.ErrClassMismatch))
}

func TestArrayYAML(t *testing.T) {
	var a Array
	src := "{class: ArrayQuantity, units: angstrom, value: [[0, 0, 0.1], [1, 2, 3]]}"
	require.NoError(t, yaml.Unmarshal([]byte(src), &a))
	assert.Equal(t, 3, a.Cols)
	assert.Equal(t, []float64{0, 0, 0.1, 1, 2, 3}, a.Value)

	var b Array
	require.NoError(t, yaml.Unmarshal([]byte("{class: ArrayQuantity, value: [6, 1, 1, 1, 1]}"), &b))
	assert.Equal(t, 0, b.Cols)
	assert.Equal(t, 5, b.Len())

	out, err := yaml.Marshal(&a)
	require.NoError(t, err)
	var c Array
	require.NoError(t, yaml.Unmarshal(out, &c))
	assert.Equal(t, a, c)
}

func TestRegister(t *testing.T) {
	r := chemyaml.NewRegistry()
	Register(r)
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("{class: ScalarQuantity, value: 298.15, units: K}"), &doc))
	v, err := r.Decode(doc.Content[0])
	require.NoError(t, err)
	assert.Equal(t, &Scalar{Value: 298.15, Units: "K"}, v)
}
