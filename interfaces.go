/*
 * interfaces.go, part of refchem.
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

package chem

import (
	"errors"
	"fmt"
)

// Atomer is the basic interface for a molecular graph.
type Atomer interface {

	//Atom returns the Atom corresponding to the index i
	//of the Atom slice in the Molecule. Should panic if
	//out of range.
	Atom(i int) *Atom

	Len() int
}

// Masser can return a slice with the masses of each atom in the reference.
type Masser interface {

	//Returns a slice with the masses of all atoms
	Masses() ([]float64, error)
}

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call returns the "decoration" slice of strings resulting from the current call. If passed an empty string, it should just return the current value, not add the empty string to the slice.
}

var (
	// ErrParse means a string representation of a molecule is malformed.
	ErrParse = errors.New("parse error")
	// ErrUnsupported means the input is valid but uses a feature this package does not implement.
	ErrUnsupported = errors.New("unsupported")
)

// CError is the error type of the chem package. It wraps ErrParse or ErrUnsupported.
type CError struct {
	msg  string
	deco []string
	kind error
}

func newCError(kind error, caller, format string, args ...interface{}) *CError {
	return &CError{msg: fmt.Sprintf(format, args...), deco: []string{caller}, kind: kind}
}

func (err *CError) Error() string { return fmt.Sprintf("chem: %s: %s", err.kind, err.msg) }

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Unwrap returns ErrParse or ErrUnsupported.
func (err *CError) Unwrap() error { return err.kind }

// errDecorate is a helper function that decorates the error with the caller's name before returning it,
// if the error implements Error.
func errDecorate(err error, caller string) error {
	if err2, ok := err.(Error); ok {
		err2.Decorate(caller)
	}
	return err
}
