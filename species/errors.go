/*
 * errors.go, part of refchem.
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

package species

import (
	"errors"
	"fmt"

	chem "github.com/rmera/refchem"
)

var (
	// ErrIdentity means the structure of a species can't be determined.
	ErrIdentity = errors.New("bad species identity")
	// ErrInvalid means the computed data of a species does not validate.
	ErrInvalid = errors.New("invalid species data")
)

// Error is the error type of the package.
type Error struct {
	message string
	deco    []string
	kind    error
}

func newError(kind error, caller, format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...), kind: kind, deco: []string{caller}}
}

func (err *Error) Error() string {
	return fmt.Sprintf("species: %s: %s", err.kind, err.message)
}

// Decorate adds dec to the decoration slice of the error, and returns the result.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func (err *Error) Unwrap() error { return err.kind }

// errDecorate decorates err, when it can be decorated, with caller.
func errDecorate(err error, caller string) error {
	if e, ok := err.(chem.Error); ok {
		e.Decorate(caller)
	}
	return err
}
