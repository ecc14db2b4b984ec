/*
 * v3_test.go, part of refchem.
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
	"math"
	"strings"
	"testing"
)

func TestNewMatrix(Te *testing.T) {
	if _, err := NewMatrix([]float64{1, 2, 3, 4}); err == nil {
		Te.Error("expected an error for a slice not divisible by 3")
	}
	A, err := NewMatrix([]float64{0, 0, 0, 1, 0, 0, 0, 2, 0})
	if err != nil {
		Te.Fatal(err)
	}
	if A.NVecs() != 3 {
		Te.Errorf("want 3 vectors, got %d", A.NVecs())
	}
	if d := A.Dist(1, 2); math.Abs(d-math.Sqrt(5)) > 1e-12 {
		Te.Errorf("wrong distance %f", d)
	}
}

func TestVecView(Te *testing.T) {
	A, _ := FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	v := A.VecView(1)
	v.Set(0, 0, 40)
	if A.At(1, 0) != 40 {
		Te.Error("VecView should share data with its parent")
	}
	c := A.Copy()
	c.Set(0, 0, -1)
	if A.At(0, 0) != 1 {
		Te.Error("Copy should not share data")
	}
	defer func() {
		if r := recover(); r != ErrIndexOutOfRange {
			Te.Errorf("expected ErrIndexOutOfRange panic, got %v", r)
		}
	}()
	A.VecView(2)
}

func TestScaled(Te *testing.T) {
	A, _ := FromRows([][]float64{{1e-10, 0, -2e-10}})
	B := A.Scaled(1e10)
	want := []float64{1, 0, -2}
	for i, w := range B.Vec(0) {
		if math.Abs(w-want[i]) > 1e-12 {
			Te.Errorf("element %d: want %f got %f", i, want[i], w)
		}
	}
	if A.At(0, 0) != 1e-10 {
		Te.Error("Scaled modified its receiver")
	}
	if !strings.Contains(B.String(), "-2.000000") {
		Te.Errorf("unexpected String output %q", B.String())
	}
}

func TestFromRowsError(Te *testing.T) {
	_, err := FromRows([][]float64{{1, 2}})
	if err == nil {
		Te.Fatal("expected an error")
	}
	e, ok := err.(Error)
	if !ok {
		Te.Fatalf("unexpected error type %T", err)
	}
	if deco := e.Decorate("TestFromRowsError"); len(deco) != 2 {
		Te.Errorf("unexpected decoration %v", deco)
	}
}
