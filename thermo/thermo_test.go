/*
 * thermo_test.go, part of refchem.
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

package thermo

import (
	"testing"

	"github.com/rmera/refchem/chemyaml"
	"github.com/rmera/refchem/quantity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func methane() *Data {
	return &Data{
		H298:   quantity.NewScalar(-74.52, "kJ/mol", 0.057),
		S298:   quantity.NewScalar(186.3, "J/(mol*K)", 0),
		Tdata:  quantity.NewArray("K", 300, 400, 500),
		Cpdata: quantity.NewArray("J/(mol*K)", 35.7, 40.5, 46.3),
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, methane().Validate())
	require.NoError(t, (&Data{}).Validate())

	cases := map[string]func(d *Data){
		"H298 in K":          func(d *Data) { d.H298.Units = "K" },
		"unknown units":      func(d *Data) { d.S298.Units = "furlongs" },
		"lonely Tdata":       func(d *Data) { d.Cpdata = nil },
		"short Cpdata":       func(d *Data) { d.Cpdata.Value = d.Cpdata.Value[:2] },
		"negative T":         func(d *Data) { d.Tdata.Value[0] = -1 },
		"bad uncertainty":    func(d *Data) { d.H298.UncertaintyType = "~" },
		"Tmin above Tmax":    func(d *Data) { d.Tmin = quantity.NewScalar(1000, "K", 0); d.Tmax = quantity.NewScalar(300, "K", 0) },
		"2D heat capacities": func(d *Data) { d.Cpdata.Cols = 1 },
	}
	for name, mod := range cases {
		d := methane()
		mod(d)
		assert.ErrorIs(t, d.Validate(), ErrInvalid, name)
	}
	var nilData *Data
	assert.ErrorIs(t, nilData.Validate(), ErrInvalid)
}

func TestCopy(t *testing.T) {
	d := methane()
	c := d.Copy()
	assert.Equal(t, d, c)
	c.H298.Value = 0
	c.Tdata.Value[0] = 1
	assert.Equal(t, -74.52, d.H298.Value)
	assert.Equal(t, 300.0, d.Tdata.Value[0])
	assert.Nil(t, (*Data)(nil).Copy())
}

func TestYAML(t *testing.T) {
	d := methane()
	d.Comment = "ATcT 1.122"
	out, err := yaml.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(out), "class: ThermoData")
	assert.Contains(t, string(out), "H298: {class: ScalarQuantity")

	back := new(Data)
	require.NoError(t, yaml.Unmarshal(out, back))
	assert.Equal(t, d, back)

	err = yaml.Unmarshal([]byte("class: Conformer\nH298: {class: ScalarQuantity, value: 1}\n"), new(Data))
	assert.ErrorIs(t, err, chemyaml.ErrClassMismatch)

	r := chemyaml.NewRegistry()
	Register(r)
	quantity.Register(r)
	var n yaml.Node
	require.NoError(t, yaml.Unmarshal(out, &n))
	require.NoError(t, r.Validate(&n))
	v, err := r.Decode(&n)
	require.NoError(t, err)
	assert.Equal(t, d, v)
}

func TestString(t *testing.T) {
	assert.Equal(t, "ThermoData(H298=-74.52 +|- 0.057 kJ/mol)", methane().String())
	assert.Equal(t, "ThermoData()", (&Data{}).String())
}
