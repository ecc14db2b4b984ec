/*
 * modes.go, part of refchem.
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

package statmech

import (
	"github.com/rmera/refchem/chemyaml"
	"github.com/rmera/refchem/quantity"
	"gopkg.in/yaml.v3"
)

// Mode is a degree of freedom of a conformer, as stored in the records.
type Mode interface {
	Class() string
	Validate() error
}

// IdealGasTranslation is the translational mode of a molecule.
type IdealGasTranslation struct {
	Mass *quantity.Scalar `yaml:"mass,omitempty"`
}

func (m *IdealGasTranslation) Class() string { return "IdealGasTranslation" }

func (m *IdealGasTranslation) Validate() error {
	return validateQuantities(m.Class(), 0, m.Mass)
}

// NonlinearRotor holds the three principal moments of inertia of a
// nonlinear molecule.
type NonlinearRotor struct {
	Inertia  *quantity.Array `yaml:"inertia,omitempty"`
	Symmetry int             `yaml:"symmetry,omitempty"`
}

func (m *NonlinearRotor) Class() string { return "NonlinearRotor" }

func (m *NonlinearRotor) Validate() error {
	if err := validateQuantities(m.Class(), m.Symmetry); err != nil {
		return err
	}
	if m.Inertia != nil {
		if err := m.Inertia.Validate(); err != nil {
			return newError(ErrInvalid, "NonlinearRotor.Validate", "inertia: %s", err)
		}
		if len(m.Inertia.Value) != 3 {
			return newError(ErrInvalid, "NonlinearRotor.Validate", "%d moments of inertia, expected 3", len(m.Inertia.Value))
		}
	}
	return nil
}

// LinearRotor is the rotation of a linear molecule.
type LinearRotor struct {
	Inertia  *quantity.Scalar `yaml:"inertia,omitempty"`
	Symmetry int              `yaml:"symmetry,omitempty"`
}

func (m *LinearRotor) Class() string { return "LinearRotor" }

func (m *LinearRotor) Validate() error {
	return validateQuantities(m.Class(), m.Symmetry, m.Inertia)
}

// KRotor is the active K-rotor of a symmetric top.
type KRotor struct {
	Inertia  *quantity.Scalar `yaml:"inertia,omitempty"`
	Symmetry int              `yaml:"symmetry,omitempty"`
}

func (m *KRotor) Class() string { return "KRotor" }

func (m *KRotor) Validate() error {
	return validateQuantities(m.Class(), m.Symmetry, m.Inertia)
}

// SphericalTopRotor is the rotation of a molecule with three equal
// moments of inertia.
type SphericalTopRotor struct {
	Inertia  *quantity.Scalar `yaml:"inertia,omitempty"`
	Symmetry int              `yaml:"symmetry,omitempty"`
}

func (m *SphericalTopRotor) Class() string { return "SphericalTopRotor" }

func (m *SphericalTopRotor) Validate() error {
	return validateQuantities(m.Class(), m.Symmetry, m.Inertia)
}

// HarmonicOscillator is a set of vibrational frequencies.
type HarmonicOscillator struct {
	Frequencies *quantity.Array `yaml:"frequencies,omitempty"`
}

func (m *HarmonicOscillator) Class() string { return "HarmonicOscillator" }

func (m *HarmonicOscillator) Validate() error {
	if m.Frequencies == nil {
		return nil
	}
	if err := m.Frequencies.Validate(); err != nil {
		return newError(ErrInvalid, "HarmonicOscillator.Validate", "frequencies: %s", err)
	}
	return nil
}

// HinderedRotor is a one-dimensional torsion, described either by a
// cosine barrier or by Fourier coefficients.
type HinderedRotor struct {
	Inertia       *quantity.Scalar `yaml:"inertia,omitempty"`
	Symmetry      int              `yaml:"symmetry,omitempty"`
	Barrier       *quantity.Scalar `yaml:"barrier,omitempty"`
	Fourier       *quantity.Array  `yaml:"fourier,omitempty"`
	Frequency     *quantity.Scalar `yaml:"frequency,omitempty"`
	Semiclassical bool             `yaml:"semiclassical,omitempty"`
}

func (m *HinderedRotor) Class() string { return "HinderedRotor" }

func (m *HinderedRotor) Validate() error {
	if err := validateQuantities(m.Class(), m.Symmetry, m.Inertia, m.Barrier, m.Frequency); err != nil {
		return err
	}
	if m.Fourier != nil {
		if err := m.Fourier.Validate(); err != nil {
			return newError(ErrInvalid, "HinderedRotor.Validate", "fourier: %s", err)
		}
	}
	return nil
}

func validateQuantities(class string, symmetry int, qs ...*quantity.Scalar) error {
	if symmetry < 0 {
		return newError(ErrInvalid, class+".Validate", "negative symmetry number %d", symmetry)
	}
	for _, q := range qs {
		if q == nil {
			continue
		}
		if err := q.Validate(); err != nil {
			return newError(ErrInvalid, class+".Validate", "%s", err)
		}
	}
	return nil
}

// modeTypes builds an empty mode for each class.
var modeTypes = map[string]func() Mode{
	"IdealGasTranslation": func() Mode { return new(IdealGasTranslation) },
	"NonlinearRotor":      func() Mode { return new(NonlinearRotor) },
	"LinearRotor":         func() Mode { return new(LinearRotor) },
	"KRotor":              func() Mode { return new(KRotor) },
	"SphericalTopRotor":   func() Mode { return new(SphericalTopRotor) },
	"HarmonicOscillator":  func() Mode { return new(HarmonicOscillator) },
	"HinderedRotor":       func() Mode { return new(HinderedRotor) },
}

// modes is the registry used to decode the mode list of a conformer.
var modes = func() *chemyaml.Registry {
	r := chemyaml.NewRegistry()
	for class, f := range modeTypes {
		class, f := class, f
		r.Register(class, func(n *yaml.Node) (interface{}, error) {
			m, err := chemyaml.Expect(n, class)
			if err != nil {
				return nil, err
			}
			mode := f()
			return mode, m.Decode(mode)
		})
	}
	return r
}()

// DecodeMode reads a tagged mode record.
func DecodeMode(n *yaml.Node) (Mode, error) {
	v, err := modes.Decode(n)
	if err != nil {
		return nil, err
	}
	return v.(Mode), nil
}

// EncodeMode returns the tagged record for m.
func EncodeMode(m Mode) (*yaml.Node, error) {
	return chemyaml.Tagged(m.Class(), m)
}
