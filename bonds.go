/*
 * bonds.go, part of refchem.
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
	"fmt"
	"sort"

	v3 "github.com/rmera/refchem/v3"
)

// constants from DOI:10.1186/1758-2946-3-33
const (
	tooclose = 0.63
	bondtol  = 0.45
)

// FromGeometry builds a Molecule from atomic numbers and cartesian
// coordinates in Å. Bonds are perceived with AssignBonds and all have
// order 1.
func FromGeometry(numbers []int, coord *v3.Matrix) (*Molecule, error) {
	if coord.NVecs() != len(numbers) {
		return nil, newCError(ErrParse, "FromGeometry", "%d atomic numbers for %d positions", len(numbers), coord.NVecs())
	}
	mol := NewMolecule()
	for _, z := range numbers {
		s, err := SymbolFromNumber(z)
		if err != nil {
			return nil, errDecorate(err, "FromGeometry")
		}
		mol.AddAtom(s)
	}
	if err := AssignBonds(coord, mol); err != nil {
		return nil, errDecorate(err, "FromGeometry")
	}
	return mol, nil
}

// AssignBonds assigns single bonds to a molecule based on a simple distance
// criterium, similar to that described in DOI:10.1186/1758-2946-3-33
// Coordinates are in Å. Bonds already in mol are kept.
func AssignBonds(coord *v3.Matrix, mol *Molecule) error {
	// might get slow for
	//large systems. It's really not thought
	//for proteins or macromolecules.
	tot := mol.Len()
	if coord.NVecs() != tot {
		return newCError(ErrParse, "AssignBonds", "%d positions for %d atoms", coord.NVecs(), tot)
	}
	for i := 0; i < tot; i++ {
		at1 := mol.Atom(i)
		cov1 := symbolCovrad[at1.Symbol]
		if cov1 == 0 {
			return newCError(ErrUnsupported, "AssignBonds", "Couldn't find the covalent radii  for %s %d", at1.Symbol, i)
		}
		for j := i + 1; j < tot; j++ {
			at2 := mol.Atom(j)
			cov2 := symbolCovrad[at2.Symbol]
			if cov2 == 0 {
				return newCError(ErrUnsupported, "AssignBonds", "Couldn't find the covalent radii  for %s %d", at2.Symbol, j)
			}
			d := coord.Dist(i, j)
			if d < cov1+cov2+bondtol && d > tooclose && mol.Bond(i, j) == nil {
				b, err := mol.AddBond(i, j, 1)
				if err != nil {
					return errDecorate(err, "AssignBonds")
				}
				b.Dist = d
			}
		}
	}

	//Now we check that no atom has too many bonds.
	for i := 0; i < tot; i++ {
		at := mol.Atom(i)
		max := symbolMaxBonds[at.Symbol]
		if max == 0 { //means there is not a specified number of bonds for this atom.
			continue
		}
		//remove the longest bonds until len(at.Bonds) is not greater than max.
		for len(at.Bonds) > max {
			sort.Slice(at.Bonds, func(i, j int) bool { return at.Bonds[i].Dist < at.Bonds[j].Dist })
			mol.RemoveBond(at.Bonds[len(at.Bonds)-1])
		}
	}
	return nil
}

// BondSummary returns a short description of the bonds of M, for error messages.
func (M *Molecule) BondSummary() string {
	ret := ""
	for _, b := range M.Bonds {
		ret += fmt.Sprintf("%s%d-%s%d ", b.At1.Symbol, b.At1.Index+1, b.At2.Symbol, b.At2.Index+1)
	}
	return ret
}
