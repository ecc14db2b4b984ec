/*
 * v3.go, part of refchem.
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

package v3

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

const cols int = 3

// Matrix is a set of vectors in 3D space. Within the package a "vector"
// is a row vector, i.e. the cartesian coordinates of one point.
type Matrix struct {
	*mat.Dense
}

// Dense2Matrix wraps A, which must have 3 columns.
func Dense2Matrix(A *mat.Dense) *Matrix {
	if _, c := A.Dims(); c != cols {
		panic(ErrNotXx3Matrix)
	}
	return &Matrix{A}
}

// NewMatrix generates and returns a Matrix with 3 columns from data.
// data is used directly, not copied.
func NewMatrix(data []float64) (*Matrix, error) {
	l := len(data)
	if l == 0 || l%cols != 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d", l, cols), []string{"NewMatrix"}, true}
	}
	return &Matrix{mat.NewDense(l/cols, cols, data)}, nil
}

// FromRows builds a Matrix from a slice of 3-element rows.
func FromRows(rows [][]float64) (*Matrix, error) {
	data := make([]float64, 0, len(rows)*cols)
	for i, r := range rows {
		if len(r) != cols {
			return nil, Error{fmt.Sprintf("Row %d has %d elements, expected %d", i, len(r), cols), []string{"FromRows"}, true}
		}
		data = append(data, r...)
	}
	return NewMatrix(data)
}

// Zeros returns a zero-filled Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	return &Matrix{mat.NewDense(vecs, cols, make([]float64, cols*vecs))}
}

// NVecs returns the number of vectors in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != cols {
		panic(ErrNotXx3Matrix)
	}
	return r
}

// VecView returns a view of the ith vector of the matrix.
// Changes in the view are reflected in F and vice-versa.
func (F *Matrix) VecView(i int) *Matrix {
	if i >= F.NVecs() || i < 0 {
		panic(ErrIndexOutOfRange)
	}
	return &Matrix{F.Dense.Slice(i, i+1, 0, cols).(*mat.Dense)}
}

// Vec returns a copy of the ith vector as a slice.
func (F *Matrix) Vec(i int) []float64 {
	if i >= F.NVecs() || i < 0 {
		panic(ErrIndexOutOfRange)
	}
	return mat.Row(nil, i, F.Dense)
}

// Rows returns a copy of the contents of F as one slice per vector.
func (F *Matrix) Rows() [][]float64 {
	n := F.NVecs()
	ret := make([][]float64, n)
	for i := 0; i < n; i++ {
		ret[i] = F.Vec(i)
	}
	return ret
}

// Copy returns a deep copy of F.
func (F *Matrix) Copy() *Matrix {
	return &Matrix{mat.DenseCopyOf(F.Dense)}
}

// Scaled returns a new matrix with every element of F multiplied by f.
// F is not modified.
func (F *Matrix) Scaled(f float64) *Matrix {
	r := Zeros(F.NVecs())
	r.Scale(f, F.Dense)
	return r
}

// Dist returns the euclidean distance between the vectors i and j of F.
func (F *Matrix) Dist(i, j int) float64 {
	a := F.Vec(i)
	b := F.Vec(j)
	var s float64
	for k := range a {
		d := a[k] - b[k]
		s += d * d
	}
	return math.Sqrt(s)
}

// String returns a neat string representation of a Matrix
func (F *Matrix) String() string {
	r := F.NVecs()
	v := make([]string, 0, r+2)
	v = append(v, "[")
	for i := 0; i < r; i++ {
		row := F.Vec(i)
		v = append(v, fmt.Sprintf(" %10.6f %10.6f %10.6f", row[0], row[1], row[2]))
	}
	v = append(v, " ]")
	return strings.Join(v, "\n")
}

//Errors

// Error is the error type for the v3 package. It carries a decoration
// trail of the functions the error went through.
type Error struct {
	message  string
	deco     []string
	critical bool
}

// Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Critical return whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

// PanicMsg is a message used for panics, even though it does satisfy the error interface.
// for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix    = PanicMsg("refchem/v3: A Matrix should have 3 columns")
	ErrShape           = PanicMsg("refchem/v3: Dimension mismatch")
	ErrIndexOutOfRange = PanicMsg("refchem/v3: index out of range")
)
