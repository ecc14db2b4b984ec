/*
 * species.go, part of refchem.
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

// Package species implements the generic species record: the identity of
// a chemical species together with the results of a calculation on it.
// Reference species build on this record.
package species

import (
	"fmt"
	"strings"

	chem "github.com/rmera/refchem"
	"github.com/rmera/refchem/qm"
	"github.com/rmera/refchem/quantity"
	"github.com/rmera/refchem/statmech"
	"github.com/rmera/refchem/thermo"
)

// Identity names a species. Exactly one of the fields must be set.
type Identity struct {
	Molecule      *chem.Molecule
	SMILES        string
	AdjacencyList string
	InChI         string
}

// Sources returns the number of fields of id that are set.
func (id Identity) Sources() int {
	n := 0
	if id.Molecule != nil {
		n++
	}
	for _, s := range []string{id.SMILES, id.AdjacencyList, id.InChI} {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	return n
}

// Build returns the molecule named by id. The Molecule field, if set,
// is copied.
func (id Identity) Build() (*chem.Molecule, error) {
	if n := id.Sources(); n != 1 {
		return nil, newError(ErrIdentity, "Build", "exactly one of molecule, SMILES, adjacency list or InChI is needed, got %d", n)
	}
	var mol *chem.Molecule
	var err error
	switch {
	case id.Molecule != nil:
		mol = id.Molecule.Copy()
	case strings.TrimSpace(id.AdjacencyList) != "":
		mol, err = chem.FromAdjacencyList(id.AdjacencyList)
	case strings.TrimSpace(id.SMILES) != "":
		mol, err = chem.FromSMILES(id.SMILES)
	default:
		mol, err = chem.FromInChI(id.InChI)
	}
	if err != nil {
		return nil, errDecorate(err, "Build")
	}
	return mol, nil
}

// Record is a chemical species with the derived properties of its
// structure and, optionally, the conformer and thermochemistry obtained
// at some level of theory.
type Record struct {
	Label           string
	Molecule        *chem.Molecule
	SMILES          string
	AdjacencyList   string
	InChI           string
	Formula         string
	MolecularWeight *quantity.Scalar
	Multiplicity    int
	Charge          int
	SymmetryNumber  int

	Conformer     *statmech.Conformer
	ThermoData    *thermo.Data
	LevelOfTheory qm.ModelChemistry
}

// NewRecord builds a Record from its identity. The label may be empty.
func NewRecord(id Identity, label string) (*Record, error) {
	mol, err := id.Build()
	if err != nil {
		return nil, errDecorate(err, "NewRecord")
	}
	R := &Record{Label: label, InChI: strings.TrimSpace(id.InChI)}
	if err := R.SetMolecule(mol); err != nil {
		return nil, errDecorate(err, "NewRecord")
	}
	return R, nil
}

// SetMolecule replaces the structure of R and updates every property
// derived from it. The InChI is kept, as it can't be written.
func (R *Record) SetMolecule(mol *chem.Molecule) error {
	if mol == nil || mol.Len() == 0 {
		return newError(ErrIdentity, "SetMolecule", "empty molecule")
	}
	smiles, err := mol.SMILES()
	if err != nil {
		return errDecorate(err, "SetMolecule")
	}
	mw, err := mol.MolecularWeight()
	if err != nil {
		return errDecorate(err, "SetMolecule")
	}
	R.Molecule = mol
	R.SMILES = smiles
	R.AdjacencyList = mol.AdjacencyList()
	R.Formula = mol.Formula()
	R.MolecularWeight = &quantity.Scalar{Value: mw, Units: "amu"}
	R.Multiplicity = mol.Multiplicity()
	R.Charge = mol.Charge()
	R.SymmetryNumber = mol.SymmetryNumber()
	return nil
}

// Validate checks the computed data of R.
func (R *Record) Validate() error {
	if R.Conformer != nil {
		if err := R.Conformer.Validate(); err != nil {
			return newError(ErrInvalid, "Validate", "conformer: %s", err)
		}
	}
	if R.ThermoData != nil {
		if err := R.ThermoData.Validate(); err != nil {
			return newError(ErrInvalid, "Validate", "thermo data: %s", err)
		}
	}
	return nil
}

func (R *Record) String() string {
	if R.Label != "" {
		return fmt.Sprintf("%s (%s)", R.Label, R.SMILES)
	}
	return R.SMILES
}
