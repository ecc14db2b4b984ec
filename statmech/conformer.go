/*
 * conformer.go, part of refchem.
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

// Package statmech holds the conformer records of reference species:
// geometry, masses and the list of degrees of freedom computed for a
// species at some level of theory. Partition functions are not
// evaluated here.
package statmech

import (
	"fmt"
	"math"

	"github.com/rmera/refchem/chemyaml"
	"github.com/rmera/refchem/quantity"
	v3 "github.com/rmera/refchem/v3"
	"gopkg.in/yaml.v3"
)

// Class is the class tag of a conformer record.
const Class = "Conformer"

// Conformer is a molecular geometry with its energy and modes.
// Number holds the atomic numbers, Coordinates is an Nx3 array.
type Conformer struct {
	E0               *quantity.Scalar
	Modes            []Mode
	SpinMultiplicity int
	OpticalIsomers   int
	Number           *quantity.Array
	Mass             *quantity.Array
	Coordinates      *quantity.Array
}

// AtomicNumbers returns the atomic numbers of the atoms of C.
func (C *Conformer) AtomicNumbers() ([]int, error) {
	if C.Number == nil {
		return nil, newError(ErrMissing, "AtomicNumbers", "no atomic numbers")
	}
	ret := make([]int, len(C.Number.Value))
	for i, v := range C.Number.Value {
		n := math.Round(v)
		if n < 1 || math.Abs(n-v) > 1e-6 {
			return nil, newError(ErrInvalid, "AtomicNumbers", "%g is not an atomic number", v)
		}
		ret[i] = int(n)
	}
	return ret, nil
}

// CoordinatesSI returns the coordinates of C in meters.
func (C *Conformer) CoordinatesSI() (*v3.Matrix, error) {
	if C.Coordinates == nil {
		return nil, newError(ErrMissing, "CoordinatesSI", "no coordinates")
	}
	if C.Coordinates.Cols != 3 {
		return nil, newError(ErrInvalid, "CoordinatesSI", "coordinates with %d columns", C.Coordinates.Cols)
	}
	si, err := C.Coordinates.ValueSI()
	if err != nil {
		return nil, newError(ErrInvalid, "CoordinatesSI", "%s", err)
	}
	ret, err := v3.NewMatrix(si)
	if err != nil {
		return nil, newError(ErrInvalid, "CoordinatesSI", "%s", err)
	}
	return ret, nil
}

// Validate checks the modes of C and that its per-atom arrays agree in size.
func (C *Conformer) Validate() error {
	if C.E0 != nil {
		if err := C.E0.Validate(); err != nil {
			return newError(ErrInvalid, "Conformer.Validate", "E0: %s", err)
		}
	}
	if C.SpinMultiplicity < 0 || C.OpticalIsomers < 0 {
		return newError(ErrInvalid, "Conformer.Validate", "spin multiplicity %d, optical isomers %d", C.SpinMultiplicity, C.OpticalIsomers)
	}
	for i, m := range C.Modes {
		if m == nil {
			return newError(ErrInvalid, "Conformer.Validate", "mode %d is empty", i)
		}
		if err := m.Validate(); err != nil {
			return newError(ErrInvalid, "Conformer.Validate", "mode %d: %s", i, err)
		}
	}
	natoms := -1
	for name, a := range map[string]*quantity.Array{"number": C.Number, "mass": C.Mass} {
		if a == nil {
			continue
		}
		if err := a.Validate(); err != nil {
			return newError(ErrInvalid, "Conformer.Validate", "%s: %s", name, err)
		}
		if natoms >= 0 && a.Len() != natoms {
			return newError(ErrInvalid, "Conformer.Validate", "%d atomic numbers for %d masses", C.Number.Len(), C.Mass.Len())
		}
		natoms = a.Len()
	}
	if C.Number != nil {
		if _, err := C.AtomicNumbers(); err != nil {
			return newError(ErrInvalid, "Conformer.Validate", "%s", err)
		}
	}
	if C.Coordinates != nil {
		if err := C.Coordinates.Validate(); err != nil {
			return newError(ErrInvalid, "Conformer.Validate", "coordinates: %s", err)
		}
		if C.Coordinates.Cols != 3 {
			return newError(ErrInvalid, "Conformer.Validate", "coordinates must have 3 columns, not %d", C.Coordinates.Cols)
		}
		if natoms >= 0 && C.Coordinates.Len() != natoms {
			return newError(ErrInvalid, "Conformer.Validate", "%d positions for %d atoms", C.Coordinates.Len(), natoms)
		}
	}
	return nil
}

func (C *Conformer) String() string {
	n := 0
	if C.Number != nil {
		n = C.Number.Len()
	}
	return fmt.Sprintf("Conformer(%d atoms, %d modes, multiplicity %d)", n, len(C.Modes), C.SpinMultiplicity)
}

type conformerRecord struct {
	E0               *quantity.Scalar `yaml:"E0,omitempty"`
	Modes            []yaml.Node      `yaml:"modes,omitempty"`
	SpinMultiplicity int              `yaml:"spin_multiplicity,omitempty"`
	OpticalIsomers   int              `yaml:"optical_isomers,omitempty"`
	Number           *quantity.Array  `yaml:"number,omitempty"`
	Mass             *quantity.Array  `yaml:"mass,omitempty"`
	Coordinates      *quantity.Array  `yaml:"coordinates,omitempty"`
}

// UnmarshalYAML reads a Conformer record and its tagged modes.
func (C *Conformer) UnmarshalYAML(n *yaml.Node) error {
	m, err := chemyaml.Expect(n, Class)
	if err != nil {
		return err
	}
	var r conformerRecord
	if err := m.Decode(&r); err != nil {
		return err
	}
	ret := Conformer{E0: r.E0, SpinMultiplicity: r.SpinMultiplicity, OpticalIsomers: r.OpticalIsomers,
		Number: r.Number, Mass: r.Mass, Coordinates: r.Coordinates}
	for i := range r.Modes {
		mode, err := DecodeMode(&r.Modes[i])
		if err != nil {
			return err
		}
		ret.Modes = append(ret.Modes, mode)
	}
	*C = ret
	return nil
}

// MarshalYAML writes C as a Conformer record.
func (C *Conformer) MarshalYAML() (interface{}, error) {
	r := conformerRecord{E0: C.E0, SpinMultiplicity: C.SpinMultiplicity, OpticalIsomers: C.OpticalIsomers,
		Number: C.Number, Mass: C.Mass, Coordinates: C.Coordinates}
	for _, m := range C.Modes {
		n, err := EncodeMode(m)
		if err != nil {
			return nil, err
		}
		r.Modes = append(r.Modes, *n)
	}
	return chemyaml.Tagged(Class, r)
}

// Register adds the conformer and mode classes to r.
func Register(r *chemyaml.Registry) {
	r.Register(Class, func(n *yaml.Node) (interface{}, error) {
		c := new(Conformer)
		return c, n.Decode(c)
	})
	r.Merge(modes)
}
