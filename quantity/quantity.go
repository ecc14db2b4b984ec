/*
 * quantity.go, part of refchem.
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

// Package quantity holds the physical quantities stored in reference
// records: a value with its units and, for scalars, an uncertainty.
// The package knows the SI factors of the units found in those records
// and nothing else about unit algebra.
package quantity

import (
	"fmt"
	"strconv"
)

// Uncertainty types.
const (
	Additive       = "+|-"
	Multiplicative = "*|/"
)

// Plain is a bare value with its units, with no uncertainty attached.
type Plain struct {
	Value float64
	Units string
}

// String returns the value followed by the units.
func (p Plain) String() string {
	if p.Units == "" {
		return strconv.FormatFloat(p.Value, 'g', -1, 64)
	}
	return strconv.FormatFloat(p.Value, 'g', -1, 64) + " " + p.Units
}

// SI returns the value of p in SI units.
func (p Plain) SI() (float64, error) {
	f, err := Factor(p.Units)
	if err != nil {
		return 0, errDecorate(err, "Plain.SI")
	}
	return p.Value * f, nil
}

// Scalar is a single value with units and an optional uncertainty.
type Scalar struct {
	Value           float64 `yaml:"value"`
	Units           string  `yaml:"units,omitempty"`
	Uncertainty     float64 `yaml:"uncertainty,omitempty"`
	UncertaintyType string  `yaml:"uncertainty_type,omitempty"`
}

// NewScalar returns a Scalar with an additive uncertainty.
func NewScalar(value float64, units string, uncertainty float64) *Scalar {
	s := &Scalar{Value: value, Units: units, Uncertainty: uncertainty}
	if uncertainty != 0 {
		s.UncertaintyType = Additive
	}
	return s
}

// Reduce unwraps S into a Plain with exactly the same value and units.
func (S *Scalar) Reduce() Plain {
	return Plain{Value: S.Value, Units: S.Units}
}

// ValueSI returns the value of S in SI units.
func (S *Scalar) ValueSI() (float64, error) {
	f, err := Factor(S.Units)
	if err != nil {
		return 0, errDecorate(err, "ValueSI")
	}
	return S.Value * f, nil
}

// UncertaintySI returns the uncertainty of S in SI units. A multiplicative
// uncertainty is dimensionless and is returned unchanged.
func (S *Scalar) UncertaintySI() (float64, error) {
	switch S.UncertaintyType {
	case Multiplicative:
		return S.Uncertainty, nil
	case Additive, "":
		f, err := Factor(S.Units)
		if err != nil {
			return 0, errDecorate(err, "UncertaintySI")
		}
		return S.Uncertainty * f, nil
	default:
		return 0, newError(ErrUncertaintyType, "UncertaintySI", "%q", S.UncertaintyType)
	}
}

// Validate checks that the units of S are known and that its uncertainty
// type makes sense.
func (S *Scalar) Validate() error {
	if _, err := Factor(S.Units); err != nil {
		return errDecorate(err, "Scalar.Validate")
	}
	switch S.UncertaintyType {
	case "", Additive, Multiplicative:
	default:
		return newError(ErrUncertaintyType, "Scalar.Validate", "%q", S.UncertaintyType)
	}
	if S.Uncertainty < 0 {
		return newError(ErrNegativeUncertainty, "Scalar.Validate", "%g", S.Uncertainty)
	}
	return nil
}

func (S *Scalar) String() string {
	if S.Uncertainty == 0 {
		return S.Reduce().String()
	}
	return fmt.Sprintf("%g %s %g %s", S.Value, S.UncertaintyType, S.Uncertainty, S.Units)
}

// Array is a one or two dimensional array of values sharing the same units.
// Values are stored flat, in row-major order. Cols is 0 for 1-D arrays.
type Array struct {
	Value []float64
	Units string
	Cols  int
}

// NewArray returns a 1-D array.
func NewArray(units string, values ...float64) *Array {
	return &Array{Value: values, Units: units}
}

// NewArray2D returns a 2-D array from its rows, which must all have the same length.
func NewArray2D(units string, rows [][]float64) (*Array, error) {
	A := &Array{Units: units}
	for i, r := range rows {
		if i == 0 {
			A.Cols = len(r)
		}
		if len(r) != A.Cols || A.Cols == 0 {
			return nil, newError(ErrRagged, "NewArray2D", "row %d has %d elements, expected %d", i, len(r), A.Cols)
		}
		A.Value = append(A.Value, r...)
	}
	return A, nil
}

// Len returns the number of rows of a 2-D array, or the number of
// elements of a 1-D one.
func (A *Array) Len() int {
	if A.Cols == 0 {
		return len(A.Value)
	}
	return len(A.Value) / A.Cols
}

// Rows returns a copy of the array as a slice of rows. A 1-D array gives
// a single row.
func (A *Array) Rows() [][]float64 {
	if A.Cols == 0 {
		return [][]float64{append([]float64(nil), A.Value...)}
	}
	ret := make([][]float64, 0, A.Len())
	for i := 0; i < len(A.Value); i += A.Cols {
		ret = append(ret, append([]float64(nil), A.Value[i:i+A.Cols]...))
	}
	return ret
}

// ValueSI returns a copy of the flat values in SI units.
func (A *Array) ValueSI() ([]float64, error) {
	f, err := Factor(A.Units)
	if err != nil {
		return nil, errDecorate(err, "Array.ValueSI")
	}
	ret := make([]float64, len(A.Value))
	for i, v := range A.Value {
		ret[i] = v * f
	}
	return ret, nil
}

// Validate checks the units and the shape of A.
func (A *Array) Validate() error {
	if _, err := Factor(A.Units); err != nil {
		return errDecorate(err, "Array.Validate")
	}
	if A.Cols < 0 || (A.Cols > 0 && len(A.Value)%A.Cols != 0) {
		return newError(ErrRagged, "Array.Validate", "%d values in rows of %d", len(A.Value), A.Cols)
	}
	return nil
}
