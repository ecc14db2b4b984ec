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

package thermo

import (
	"github.com/rmera/refchem/chemyaml"
	"gopkg.in/yaml.v3"
)

// Class is the class tag of a thermo record.
const Class = "ThermoData"

// Register adds the thermo classes to r.
func Register(r *chemyaml.Registry) {
	r.Register(Class, func(n *yaml.Node) (interface{}, error) {
		d := new(Data)
		return d, n.Decode(d)
	})
}

// UnmarshalYAML reads a ThermoData record. The record is not validated.
func (D *Data) UnmarshalYAML(n *yaml.Node) error {
	m, err := chemyaml.Expect(n, Class)
	if err != nil {
		return err
	}
	type plain Data
	var p plain
	if err := m.Decode(&p); err != nil {
		return err
	}
	*D = Data(p)
	return nil
}

// MarshalYAML writes D as a ThermoData record.
func (D *Data) MarshalYAML() (interface{}, error) {
	type plain Data
	return chemyaml.Tagged(Class, (*plain)(D))
}
