/*
 * chem.go, part of refchem.
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

/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package chem

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

/**Note: Many functions here panic instead of returning errors. This is because they are "fundamental"
 * functions. If something goes wrong here, the program is most likely wrong and should
 * crash. Most panics are related to using the function on a nil object or trying to access out-of bounds
 * fields**/

// Atom is a vertex of the molecular graph.
type Atom struct {
	Symbol    string
	Index     int //position in the Molecule
	Radicals  int //unpaired electrons
	LonePairs int
	Charge    int    //formal charge
	Label     string //e.g. "*1" in adjacency lists
	Bonds     []*Bond
}

// Copy returns a copy of the Atom, without its bonds.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	return &Atom{Symbol: A.Symbol, Index: A.Index, Radicals: A.Radicals,
		LonePairs: A.LonePairs, Charge: A.Charge, Label: A.Label}
}

// IsHydrogen returns true if A is a hydrogen atom.
func (A *Atom) IsHydrogen() bool { return A.Symbol == "H" }

// Degree returns the number of bonds of A.
func (A *Atom) Degree() int { return len(A.Bonds) }

// BondOrderSum returns the sum of the orders of the bonds of A.
func (A *Atom) BondOrderSum() float64 {
	var s float64
	for _, b := range A.Bonds {
		s += b.Order
	}
	return s
}

// Neighbors returns the atoms bonded to A, in bond order.
func (A *Atom) Neighbors() []*Atom {
	ret := make([]*Atom, 0, len(A.Bonds))
	for _, b := range A.Bonds {
		ret = append(ret, b.Cross(A))
	}
	return ret
}

// Hydrogens returns the number of hydrogen atoms bonded to A.
func (A *Atom) Hydrogens() int {
	var n int
	for _, b := range A.Bonds {
		if b.Cross(A).IsHydrogen() {
			n++
		}
	}
	return n
}

// Bond is an edge of the molecular graph. Order is 1, 2, 3 or 4 for single,
// double, triple and quadruple bonds and 1.5 for aromatic ones. Dist is only
// filled for bonds perceived from a geometry.
type Bond struct {
	Index int
	At1   *Atom
	At2   *Atom
	Dist  float64
	Order float64
}

// Cross returns the atom at the other end of B from origin.
func (B *Bond) Cross(origin *Atom) *Atom {
	if origin == B.At1 {
		return B.At2
	}
	if origin == B.At2 {
		return B.At1
	}
	panic("Trying to cross a bond: The origin atom given is not present in the bond!") //I think this got to be a programming error, so a panic is warranted.
}

// Molecule is a molecular graph. The zero value is an empty molecule.
type Molecule struct {
	Atoms        []*Atom
	Bonds        []*Bond
	multiplicity int //0 means derive it from the radicals
}

// NewMolecule returns an empty Molecule.
func NewMolecule() *Molecule {
	return &Molecule{}
}

// Len returns the number of atoms in M.
func (M *Molecule) Len() int { return len(M.Atoms) }

// Atom returns the ith atom of M. It panics if i is out of range.
func (M *Molecule) Atom(i int) *Atom {
	if i < 0 || i >= len(M.Atoms) {
		panic(fmt.Sprintf("chem: atom %d requested from a molecule with %d atoms", i, len(M.Atoms)))
	}
	return M.Atoms[i]
}

// AddAtom appends a new neutral, closed-shell atom of the given element to M.
func (M *Molecule) AddAtom(symbol string) *Atom {
	at := &Atom{Symbol: symbol, Index: len(M.Atoms)}
	M.Atoms = append(M.Atoms, at)
	return at
}

// AddBond bonds the atoms i and j of M with the given order.
func (M *Molecule) AddBond(i, j int, order float64) (*Bond, error) {
	if i == j || i < 0 || j < 0 || i >= len(M.Atoms) || j >= len(M.Atoms) {
		return nil, newCError(ErrParse, "AddBond", "invalid bond %d-%d in a molecule with %d atoms", i, j, len(M.Atoms))
	}
	if M.Bond(i, j) != nil {
		return nil, newCError(ErrParse, "AddBond", "atoms %d and %d are already bonded", i, j)
	}
	at1, at2 := M.Atoms[i], M.Atoms[j]
	b := &Bond{Index: len(M.Bonds), At1: at1, At2: at2, Order: order}
	at1.Bonds = append(at1.Bonds, b)
	at2.Bonds = append(at2.Bonds, b)
	M.Bonds = append(M.Bonds, b)
	return b, nil
}

// Bond returns the bond between the atoms i and j of M, or nil.
func (M *Molecule) Bond(i, j int) *Bond {
	at := M.Atom(i)
	for _, b := range at.Bonds {
		if b.Cross(at).Index == j {
			return b
		}
	}
	return nil
}

// RemoveBond deletes b from M.
func (M *Molecule) RemoveBond(b *Bond) {
	b.At1.Bonds = takefromslice(b.At1.Bonds, b)
	b.At2.Bonds = takefromslice(b.At2.Bonds, b)
	M.Bonds = takefromslice(M.Bonds, b)
	for i, v := range M.Bonds {
		v.Index = i
	}
}

// return a new *Bond slice with the element b removed
func takefromslice(bonds []*Bond, b *Bond) []*Bond {
	newb := make([]*Bond, 0, len(bonds))
	for _, v := range bonds {
		if v != b {
			newb = append(newb, v)
		}
	}
	return newb
}

// Copy returns a deep copy of M.
func (M *Molecule) Copy() *Molecule {
	ret := &Molecule{multiplicity: M.multiplicity}
	ret.Atoms = make([]*Atom, len(M.Atoms))
	for i, at := range M.Atoms {
		ret.Atoms[i] = at.Copy()
		ret.Atoms[i].Index = i
	}
	for _, b := range M.Bonds {
		nb, err := ret.AddBond(b.At1.Index, b.At2.Index, b.Order)
		if err != nil {
			panic("chem: corrupted molecule: " + err.Error())
		}
		nb.Dist = b.Dist
	}
	return ret
}

// Charge returns the total formal charge of M.
func (M *Molecule) Charge() int {
	var c int
	for _, at := range M.Atoms {
		c += at.Charge
	}
	return c
}

// Radicals returns the number of unpaired electrons in M.
func (M *Molecule) Radicals() int {
	var r int
	for _, at := range M.Atoms {
		r += at.Radicals
	}
	return r
}

// Multiplicity returns the spin multiplicity of M. Unless it was set
// explicitly, it is the number of unpaired electrons plus one.
func (M *Molecule) Multiplicity() int {
	if M.multiplicity > 0 {
		return M.multiplicity
	}
	return M.Radicals() + 1
}

// SetMultiplicity sets the spin multiplicity of M. A value of 0 goes
// back to deriving it from the radicals.
func (M *Molecule) SetMultiplicity(m int) { M.multiplicity = m }

// Formula returns the molecular formula of M in Hill order: carbon, then
// hydrogen, then every other element alphabetically. Without carbon all
// elements, hydrogen included, are sorted alphabetically.
func (M *Molecule) Formula() string {
	counts := M.elementCounts()
	syms := make([]string, 0, len(counts))
	for s := range counts {
		syms = append(syms, s)
	}
	sort.Strings(syms)
	if _, ok := counts["C"]; ok {
		rest := make([]string, 0, len(syms))
		rest = append(rest, "C")
		if _, ok := counts["H"]; ok {
			rest = append(rest, "H")
		}
		for _, s := range syms {
			if s != "C" && s != "H" {
				rest = append(rest, s)
			}
		}
		syms = rest
	}
	var b strings.Builder
	for _, s := range syms {
		b.WriteString(s)
		if counts[s] > 1 {
			fmt.Fprintf(&b, "%d", counts[s])
		}
	}
	return b.String()
}

func (M *Molecule) elementCounts() map[string]int {
	counts := make(map[string]int)
	for _, at := range M.Atoms {
		counts[at.Symbol]++
	}
	return counts
}

// Masses returns a slice with the masses of each atom in M, in amu.
func (M *Molecule) Masses() ([]float64, error) {
	ret := make([]float64, len(M.Atoms))
	for i, at := range M.Atoms {
		m, ok := symbolMass[at.Symbol]
		if !ok {
			return nil, newCError(ErrUnsupported, "Masses", "no mass for element %s", at.Symbol)
		}
		ret[i] = m
	}
	return ret, nil
}

// MolecularWeight returns the mass of M in amu.
func (M *Molecule) MolecularWeight() (float64, error) {
	masses, err := M.Masses()
	if err != nil {
		return 0, errDecorate(err, "MolecularWeight")
	}
	var w float64
	for _, m := range masses {
		w += m
	}
	return w, nil
}

// SymmetryNumber returns the external symmetry number of M. It can't be
// derived from the connectivity alone, so the structural default is 1 and
// records are expected to override it.
func (M *Molecule) SymmetryNumber() int { return 1 }

// String returns the SMILES representation of M.
func (M *Molecule) String() string {
	s, err := M.SMILES()
	if err != nil {
		return M.Formula()
	}
	return s
}

// UpdateLonePairs sets the lone pairs of every atom from its valence
// electrons, charge, radicals and bonds.
func (M *Molecule) UpdateLonePairs() {
	for _, at := range M.Atoms {
		at.LonePairs = defaultLonePairs(at)
	}
}

func defaultLonePairs(at *Atom) int {
	ve, ok := symbolValenceElectrons[at.Symbol]
	if !ok || at.Symbol == "H" {
		return 0
	}
	free := float64(ve-at.Charge-at.Radicals) - at.BondOrderSum()
	lp := int(math.Floor(free/2 + 1e-9))
	if lp < 0 {
		return 0
	}
	return lp
}
