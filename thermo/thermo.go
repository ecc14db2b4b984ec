/*
 * thermo.go, part of refchem.
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

// Package thermo holds the thermochemistry records attached to reference
// species. The records are data only: heat capacity fitting and the
// evaluation of thermodynamic functions are left to other programs.
package thermo

import (
	"fmt"

	"github.com/rmera/refchem/quantity"
)

// Data is a set of thermochemical data for a species. Tdata and Cpdata,
// when given, are the temperatures and heat capacities of a tabulated
// Cp(T). Any field may be nil.
type Data struct {
	Tdata   *quantity.Array  `yaml:"Tdata,omitempty"`
	Cpdata  *quantity.Array  `yaml:"Cpdata,omitempty"`
	H298    *quantity.Scalar `yaml:"H298,omitempty"`
	S298    *quantity.Scalar `yaml:"S298,omitempty"`
	Cp0     *quantity.Scalar `yaml:"Cp0,omitempty"`
	CpInf   *quantity.Scalar `yaml:"CpInf,omitempty"`
	Tmin    *quantity.Scalar `yaml:"Tmin,omitempty"`
	Tmax    *quantity.Scalar `yaml:"Tmax,omitempty"`
	E0      *quantity.Scalar `yaml:"E0,omitempty"`
	Comment string           `yaml:"comment,omitempty"`
}

// Validate checks the units and shapes of the fields of D.
func (D *Data) Validate() error {
	if D == nil {
		return newError(ErrInvalid, "Validate", "nil thermo data")
	}
	energies := map[string]*quantity.Scalar{"H298": D.H298, "E0": D.E0}
	for name, q := range energies {
		if q == nil {
			continue
		}
		if err := q.Validate(); err != nil {
			return newError(ErrInvalid, "Validate", "%s: %s", name, err)
		}
		if !quantity.IsEnergyPerMole(q.Units) {
			return newError(ErrInvalid, "Validate", "%s in %q, expected an energy per mole", name, q.Units)
		}
	}
	others := map[string]*quantity.Scalar{"S298": D.S298, "Cp0": D.Cp0, "CpInf": D.CpInf, "Tmin": D.Tmin, "Tmax": D.Tmax}
	for name, q := range others {
		if q == nil {
			continue
		}
		if err := q.Validate(); err != nil {
			return newError(ErrInvalid, "Validate", "%s: %s", name, err)
		}
	}
	if (D.Tdata == nil) != (D.Cpdata == nil) {
		return newError(ErrInvalid, "Validate", "Tdata and Cpdata must be given together")
	}
	if D.Tdata != nil {
		for name, a := range map[string]*quantity.Array{"Tdata": D.Tdata, "Cpdata": D.Cpdata} {
			if err := a.Validate(); err != nil {
				return newError(ErrInvalid, "Validate", "%s: %s", name, err)
			}
			if a.Cols != 0 {
				return newError(ErrInvalid, "Validate", "%s must be one-dimensional", name)
			}
		}
		if D.Tdata.Len() != D.Cpdata.Len() {
			return newError(ErrInvalid, "Validate", "%d temperatures for %d heat capacities", D.Tdata.Len(), D.Cpdata.Len())
		}
		for _, t := range D.Tdata.Value {
			if t <= 0 {
				return newError(ErrInvalid, "Validate", "non-positive temperature %g in Tdata", t)
			}
		}
	}
	if D.Tmin != nil && D.Tmax != nil {
		tmin, err1 := D.Tmin.ValueSI()
		tmax, err2 := D.Tmax.ValueSI()
		if err1 == nil && err2 == nil && tmin > tmax {
			return newError(ErrInvalid, "Validate", "Tmin (%g K) above Tmax (%g K)", tmin, tmax)
		}
	}
	return nil
}

// Copy returns a deep copy of D.
func (D *Data) Copy() *Data {
	if D == nil {
		return nil
	}
	ret := &Data{Comment: D.Comment}
	ret.Tdata = copyArray(D.Tdata)
	ret.Cpdata = copyArray(D.Cpdata)
	ret.H298 = copyScalar(D.H298)
	ret.S298 = copyScalar(D.S298)
	ret.Cp0 = copyScalar(D.Cp0)
	ret.CpInf = copyScalar(D.CpInf)
	ret.Tmin = copyScalar(D.Tmin)
	ret.Tmax = copyScalar(D.Tmax)
	ret.E0 = copyScalar(D.E0)
	return ret
}

func copyScalar(s *quantity.Scalar) *quantity.Scalar {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func copyArray(a *quantity.Array) *quantity.Array {
	if a == nil {
		return nil
	}
	return &quantity.Array{Value: append([]float64(nil), a.Value...), Units: a.Units, Cols: a.Cols}
}

func (D *Data) String() string {
	if D.H298 == nil {
		return "ThermoData()"
	}
	return fmt.Sprintf("ThermoData(H298=%s)", D.H298)
}
