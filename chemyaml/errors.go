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

package chemyaml

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownClass means a class tag is not in the registry.
	ErrUnknownClass = errors.New("unknown class")
	// ErrMissingClass means a mapping that should be tagged is not.
	ErrMissingClass = errors.New("missing class tag")
	// ErrClassMismatch means a mapping is tagged with the wrong class.
	ErrClassMismatch = errors.New("class mismatch")
	// ErrNotMapping means a node that should be a mapping is something else.
	ErrNotMapping = errors.New("not a mapping")
)

// Error is the error type of the package. It keeps the offending line
// of the YAML input, when known, and the chain of functions the error
// went through.
type Error struct {
	message string
	line    int
	deco    []string
	kind    error
}

func newError(kind error, n *yaml.Node, caller, format string, args ...interface{}) *Error {
	e := &Error{message: fmt.Sprintf(format, args...), kind: kind, deco: []string{caller}}
	if n != nil {
		e.line = n.Line
	}
	return e
}

func (err *Error) Error() string {
	if err.line > 0 {
		return fmt.Sprintf("%s: %s (line %d)", err.kind, err.message, err.line)
	}
	return fmt.Sprintf("%s: %s", err.kind, err.message)
}

// Decorate adds dec to the decoration slice of the error, and returns the result.
// An empty dec just returns the current decoration.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Unwrap returns the sentinel error for the kind of failure.
func (err *Error) Unwrap() error { return err.kind }

// Line returns the line of the YAML input the error refers to, or 0.
func (err *Error) Line() int { return err.line }

func errDecorate(err error, caller string) error {
	if e, ok := err.(*Error); ok {
		e.Decorate(caller)
	}
	return err
}
