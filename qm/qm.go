/*
 * qm.go, part of refchem.
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
 *
 */

package qm

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmpty means a model chemistry without a method.
var ErrEmpty = errors.New("empty model chemistry")

// ModelChemistry is the level of theory of a calculation. Only the
// method is mandatory: composite methods such as CBS-QB3 have no
// separate basis.
type ModelChemistry struct {
	Method string
	Basis  string
}

// Parse reads a model chemistry key like "wb97m-v_def2-tzvpd". The
// method goes up to the first underscore, the basis is the rest.
// Keys are case-insensitive and stored in lower case.
func Parse(key string) (ModelChemistry, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return ModelChemistry{}, ErrEmpty
	}
	method, basis, _ := strings.Cut(key, "_")
	if method == "" {
		return ModelChemistry{}, fmt.Errorf("qm: %w: no method in %q", ErrEmpty, key)
	}
	return ModelChemistry{Method: method, Basis: basis}, nil
}

// IsZero returns true if Q names no calculation.
func (Q ModelChemistry) IsZero() bool {
	return Q.Method == "" && Q.Basis == ""
}

// String returns the key of Q, as used in the calculated data of the
// reference species. The zero value gives "".
func (Q ModelChemistry) String() string {
	m := strings.ToLower(Q.Method)
	if Q.Basis == "" {
		return m
	}
	return m + "_" + strings.ToLower(Q.Basis)
}

// MarshalYAML writes Q as its key.
func (Q ModelChemistry) MarshalYAML() (interface{}, error) {
	return Q.String(), nil
}

// UnmarshalYAML reads Q from its key.
func (Q *ModelChemistry) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	mc, err := Parse(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*Q = mc
	return nil
}
