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

package reference

import (
	"errors"
	"fmt"

	chem "github.com/rmera/refchem"
	"github.com/rmera/refchem/chemyaml"
)

var (
	// ErrValidation means a species or data entry was built from invalid data.
	ErrValidation = errors.New("validation error")
	// ErrSchemaMismatch means a record is not a ReferenceSpecies record.
	ErrSchemaMismatch = errors.New("schema mismatch")
	// ErrUnknownClass means a nested record carries a class tag with no decoder.
	ErrUnknownClass = fmt.Errorf("unknown class: %w", ErrSchemaMismatch)
	// ErrNotFound means a requested model chemistry, source, index, label or set is absent.
	ErrNotFound = errors.New("not found")
	// ErrNoData means the data needed for an operation is missing.
	ErrNoData = errors.New("no data")
	// ErrNotConfigured means a species lacks a setting an operation needs.
	ErrNotConfigured = errors.New("not configured")
)

// Error is the error type of the package. It wraps one of the sentinel
// errors above and, when there is one, the error that caused it.
type Error struct {
	message string
	deco    []string
	kind    error
	cause   error
}

func newError(kind error, caller, format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...), kind: kind, deco: []string{caller}}
}

// causedBy sets the underlying error of err.
func (err *Error) causedBy(cause error) *Error {
	err.cause = cause
	return err
}

func (err *Error) Error() string {
	if err.cause != nil {
		return fmt.Sprintf("reference: %s: %s: %s", err.kind, err.message, err.cause)
	}
	return fmt.Sprintf("reference: %s: %s", err.kind, err.message)
}

// Decorate adds dec to the decoration slice of the error, and returns the result.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Unwrap returns the sentinel kind of err and its cause.
func (err *Error) Unwrap() []error {
	if err.cause == nil {
		return []error{err.kind}
	}
	return []error{err.kind, err.cause}
}

func errDecorate(err error, caller string) error {
	if e, ok := err.(chem.Error); ok {
		e.Decorate(caller)
	}
	return err
}

// decodeError classifies an error found while decoding nested records.
func decodeError(caller, what string, err error) error {
	if e, ok := err.(*Error); ok {
		e.Decorate(caller)
		return e
	}
	if errors.Is(err, chemyaml.ErrUnknownClass) {
		return newError(ErrUnknownClass, caller, "%s", what).causedBy(err)
	}
	return newError(ErrValidation, caller, "%s", what).causedBy(err)
}
