/*
 * yaml.go, part of refchem.
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
	"github.com/rmera/refchem/chemyaml"
	"gopkg.in/yaml.v3"
)

// Class tags of the quantity records.
const (
	ScalarClass = "ScalarQuantity"
	ArrayClass  = "ArrayQuantity"
)

// Register adds the quantity classes to r.
func Register(r *chemyaml.Registry) {
	r.Register(ScalarClass, func(n *yaml.Node) (interface{}, error) {
		s := new(Scalar)
		return s, n.Decode(s)
	})
	r.Register(ArrayClass, func(n *yaml.Node) (interface{}, error) {
		a := new(Array)
		return a, n.Decode(a)
	})
}

// UnmarshalYAML reads a ScalarQuantity record.
func (S *Scalar) UnmarshalYAML(n *yaml.Node) error {
	m, err := chemyaml.Expect(n, ScalarClass)
	if err != nil {
		return err
	}
	type plain Scalar
	var p plain
	if err := m.Decode(&p); err != nil {
		return err
	}
	*S = Scalar(p)
	return nil
}

// MarshalYAML writes S as a flow-style ScalarQuantity record.
func (S *Scalar) MarshalYAML() (interface{}, error) {
	type plain Scalar
	n, err := chemyaml.Tagged(ScalarClass, (*plain)(S))
	if err != nil {
		return nil, err
	}
	return chemyaml.Flow(n), nil
}

type arrayRecord struct {
	Units string    `yaml:"units,omitempty"`
	Value yaml.Node `yaml:"value"`
}

// UnmarshalYAML reads an ArrayQuantity record. The value may be a list
// of numbers or a list of equally long lists of numbers.
func (A *Array) UnmarshalYAML(n *yaml.Node) error {
	m, err := chemyaml.Expect(n, ArrayClass)
	if err != nil {
		return err
	}
	var r arrayRecord
	if err := m.Decode(&r); err != nil {
		return err
	}
	ret := Array{Units: r.Units}
	if r.Value.Kind == yaml.SequenceNode && len(r.Value.Content) > 0 && r.Value.Content[0].Kind == yaml.SequenceNode {
		var rows [][]float64
		if err := r.Value.Decode(&rows); err != nil {
			return err
		}
		a, err := NewArray2D(r.Units, rows)
		if err != nil {
			return errDecorate(err, "Array.UnmarshalYAML")
		}
		ret = *a
	} else if r.Value.Kind != 0 {
		if err := r.Value.Decode(&ret.Value); err != nil {
			return err
		}
	}
	*A = ret
	return nil
}

// MarshalYAML writes A as a flow-style ArrayQuantity record.
func (A *Array) MarshalYAML() (interface{}, error) {
	r := struct {
		Units string      `yaml:"units,omitempty"`
		Value interface{} `yaml:"value"`
	}{Units: A.Units}
	if A.Cols > 0 {
		r.Value = A.Rows()
	} else {
		v := A.Value
		if v == nil {
			v = []float64{}
		}
		r.Value = v
	}
	n, err := chemyaml.Tagged(ArrayClass, r)
	if err != nil {
		return nil, err
	}
	return chemyaml.Flow(n), nil
}
