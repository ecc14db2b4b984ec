/*
 * isodesmic.go, part of refchem.
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

// Package isodesmic holds the species and reactions of error-canceling
// schemes. A species carries the enthalpy of formation computed at a low
// level of theory and a reference (high level) value. A reaction that
// conserves bond types lets the low level errors cancel, so the unknown
// high level enthalpy of a target follows from those of the others.
package isodesmic

import (
	"fmt"
	"sort"

	chem "github.com/rmera/refchem"
	"github.com/rmera/refchem/quantity"
)

// ErrorCancelingSpecies is a species usable in an error-canceling
// reaction. For the target species HighLevelHf298 is the zero value.
type ErrorCancelingSpecies struct {
	Molecule       *chem.Molecule
	LowLevelHf298  quantity.Plain
	ModelChemistry string
	HighLevelHf298 quantity.Plain
	Source         string
}

// NewErrorCancelingSpecies returns a species for error-canceling
// reactions. Both enthalpies must be energies per mole, except for a
// high level value with empty units, which marks a target species.
func NewErrorCancelingSpecies(mol *chem.Molecule, lowH298 quantity.Plain, modelChemistry string, highH298 quantity.Plain, source string) (*ErrorCancelingSpecies, error) {
	if mol == nil || mol.Len() == 0 {
		return nil, newError(ErrInvalid, "NewErrorCancelingSpecies", "no molecule")
	}
	if modelChemistry == "" {
		return nil, newError(ErrInvalid, "NewErrorCancelingSpecies", "empty model chemistry for %s", mol)
	}
	if !quantity.IsEnergyPerMole(lowH298.Units) {
		return nil, newError(ErrInvalid, "NewErrorCancelingSpecies", "low level H298 in %q is not an energy per mole", lowH298.Units)
	}
	if highH298.Units != "" && !quantity.IsEnergyPerMole(highH298.Units) {
		return nil, newError(ErrInvalid, "NewErrorCancelingSpecies", "high level H298 in %q is not an energy per mole", highH298.Units)
	}
	return &ErrorCancelingSpecies{Molecule: mol, LowLevelHf298: lowH298, ModelChemistry: modelChemistry,
		HighLevelHf298: highH298, Source: source}, nil
}

// IsTarget returns true if S has no high level enthalpy.
func (S *ErrorCancelingSpecies) IsTarget() bool { return S.HighLevelHf298.Units == "" }

func (S *ErrorCancelingSpecies) String() string {
	return fmt.Sprintf("<ErrorCancelingSpecies %s>", S.Molecule)
}

// Reaction is an error-canceling reaction for a target species. The
// target is a reactant with coefficient -1, and Species maps the other
// species to their coefficients: positive for products, negative for
// reactants.
type Reaction struct {
	Target         *ErrorCancelingSpecies
	Species        map[*ErrorCancelingSpecies]int
	ModelChemistry string
}

// NewReaction checks that every species shares the model chemistry of
// the target and has a high level enthalpy.
func NewReaction(target *ErrorCancelingSpecies, species map[*ErrorCancelingSpecies]int) (*Reaction, error) {
	if target == nil {
		return nil, newError(ErrInvalid, "NewReaction", "no target")
	}
	for s, nu := range species {
		if s.ModelChemistry != target.ModelChemistry {
			return nil, newError(ErrInvalid, "NewReaction", "%s is at %s, the target at %s", s, s.ModelChemistry, target.ModelChemistry)
		}
		if s.IsTarget() {
			return nil, newError(ErrInvalid, "NewReaction", "%s has no high level enthalpy", s)
		}
		if nu == 0 {
			return nil, newError(ErrInvalid, "NewReaction", "zero coefficient for %s", s)
		}
	}
	return &Reaction{Target: target, Species: species, ModelChemistry: target.ModelChemistry}, nil
}

// TargetHf298 returns the high level enthalpy of formation of the target,
// in J/mol. The low level enthalpy of reaction is taken as exact and the
// high level enthalpies of the other species close the cycle.
func (R *Reaction) TargetHf298() (quantity.Plain, error) {
	tlow, err := R.Target.LowLevelHf298.SI()
	if err != nil {
		return quantity.Plain{}, newError(ErrInvalid, "TargetHf298", "%s", err)
	}
	lowRxn := -tlow
	var high float64
	for s, nu := range R.Species {
		low, err := s.LowLevelHf298.SI()
		if err != nil {
			return quantity.Plain{}, newError(ErrInvalid, "TargetHf298", "%s", err)
		}
		h, err := s.HighLevelHf298.SI()
		if err != nil {
			return quantity.Plain{}, newError(ErrInvalid, "TargetHf298", "%s", err)
		}
		lowRxn += float64(nu) * low
		high += float64(nu) * h
	}
	return quantity.Plain{Value: high - lowRxn, Units: "J/mol"}, nil
}

func (R *Reaction) String() string {
	var reactants, products []string
	for s, nu := range R.Species {
		term := fmt.Sprintf("%d*%s", abs(nu), s.Molecule)
		if nu < 0 {
			reactants = append(reactants, term)
		} else {
			products = append(products, term)
		}
	}
	sort.Strings(reactants)
	sort.Strings(products)
	reactants = append([]string{"1*" + R.Target.Molecule.String()}, reactants...)
	return fmt.Sprintf("%v <=> %v", reactants, products)
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
