/*
 * inchi.go, part of refchem.
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
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var formulaRe = regexp.MustCompile(`([A-Z][a-z]?)(\d*)`)

// FromInChI builds a Molecule from a standard InChI string. Only the main
// layers are read: the formula, the connections (/c) and the fixed
// hydrogens (/h). Stereo and isotope layers are ignored. Bond orders and
// radicals are not part of those layers: they are assigned by saturating
// the free valences of bonded atoms, and whatever valence is left becomes
// radical electrons. Charged species (/q, /p), mobile hydrogens and
// multi-component InChIs give an error wrapping ErrUnsupported.
func FromInChI(inchi string) (*Molecule, error) {
	inchi = strings.TrimSpace(inchi)
	if !strings.HasPrefix(inchi, "InChI=") {
		return nil, newCError(ErrParse, "FromInChI", "%q lacks the InChI= prefix", inchi)
	}
	layers := strings.Split(inchi, "/")
	if len(layers) < 2 || layers[1] == "" {
		return nil, newCError(ErrParse, "FromInChI", "%q has no formula layer", inchi)
	}
	formula := layers[1]
	if strings.Contains(formula, ".") {
		return nil, newCError(ErrUnsupported, "FromInChI", "multi-component InChI %q", inchi)
	}
	var conn, hyd string
	for _, l := range layers[2:] {
		if l == "" {
			continue
		}
		switch l[0] {
		case 'c':
			conn = l[1:]
		case 'h':
			hyd = l[1:]
		case 'q', 'p':
			if l[1:] != "" && l[1:] != "+0" && l[1:] != "0" {
				return nil, newCError(ErrUnsupported, "FromInChI", "charge layer /%s", l)
			}
		}
	}
	mol := NewMolecule()
	var hTotal int
	matches := formulaRe.FindAllStringSubmatch(formula, -1)
	if formulaRe.ReplaceAllString(formula, "") != "" {
		return nil, newCError(ErrParse, "FromInChI", "bad formula %q", formula)
	}
	//heavy atoms are numbered in formula order
	for _, m := range matches {
		n := 1
		if m[2] != "" {
			n, _ = strconv.Atoi(m[2])
		}
		if m[1] == "H" {
			hTotal = n
			continue
		}
		if _, ok := symbolValenceElectrons[m[1]]; !ok {
			return nil, newCError(ErrUnsupported, "FromInChI", "element %q", m[1])
		}
		for i := 0; i < n; i++ {
			mol.AddAtom(m[1])
		}
	}
	heavy := mol.Len()
	if heavy == 0 {
		//H atom or H2
		return hydrogenInChI(hTotal)
	}
	if err := inchiConnections(mol, conn); err != nil {
		return nil, errDecorate(err, "FromInChI")
	}
	hcount, err := inchiHydrogens(hyd, heavy)
	if err != nil {
		return nil, errDecorate(err, "FromInChI")
	}
	sum := 0
	for _, h := range hcount {
		sum += h
	}
	if sum != hTotal {
		return nil, newCError(ErrParse, "FromInChI", "formula has %d hydrogens but the /h layer gives %d", hTotal, sum)
	}
	for i := 0; i < heavy; i++ {
		for k := 0; k < hcount[i]; k++ {
			h := mol.AddAtom("H")
			mol.AddBond(i, h.Index, 1)
		}
	}
	saturate(mol)
	mol.UpdateLonePairs()
	mol.perceiveAromaticity()
	return mol, nil
}

func hydrogenInChI(n int) (*Molecule, error) {
	mol := NewMolecule()
	switch n {
	case 1:
		mol.AddAtom("H").Radicals = 1
	case 2:
		mol.AddAtom("H")
		mol.AddAtom("H")
		mol.AddBond(0, 1, 1)
	default:
		return nil, newCError(ErrUnsupported, "FromInChI", "hydrogen-only formula with %d atoms", n)
	}
	return mol, nil
}

// inchiConnections reads the /c layer. Numbers are atoms, '-' chains them,
// parentheses open branches and commas separate branches from the same atom.
func inchiConnections(mol *Molecule, conn string) error {
	prev := -1
	var stack []int
	i := 0
	for i < len(conn) {
		c := conn[i]
		switch {
		case c >= '0' && c <= '9':
			j := i
			for j < len(conn) && conn[j] >= '0' && conn[j] <= '9' {
				j++
			}
			n, _ := strconv.Atoi(conn[i:j])
			i = j
			if n < 1 || n > mol.Len() {
				return newCError(ErrParse, "inchiConnections", "atom %d out of range", n)
			}
			if prev >= 0 && mol.Bond(prev, n-1) == nil {
				if _, err := mol.AddBond(prev, n-1, 1); err != nil {
					return errDecorate(err, "inchiConnections")
				}
			}
			prev = n - 1
			continue
		case c == '-':
		case c == '(':
			stack = append(stack, prev)
		case c == ',':
			if len(stack) == 0 {
				return newCError(ErrParse, "inchiConnections", "comma outside a branch in %q", conn)
			}
			prev = stack[len(stack)-1]
		case c == ')':
			if len(stack) == 0 {
				return newCError(ErrParse, "inchiConnections", "unbalanced parenthesis in %q", conn)
			}
			prev = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		case c == ';' || c == '*':
			return newCError(ErrUnsupported, "inchiConnections", "multi-component connections %q", conn)
		default:
			return newCError(ErrParse, "inchiConnections", "unexpected %q in %q", c, conn)
		}
		i++
	}
	if len(stack) != 0 {
		return newCError(ErrParse, "inchiConnections", "unbalanced parenthesis in %q", conn)
	}
	return nil
}

// inchiHydrogens reads the /h layer, e.g. "1-2H3,3H2" and returns the
// hydrogens on each heavy atom.
func inchiHydrogens(hyd string, heavy int) ([]int, error) {
	ret := make([]int, heavy)
	if hyd == "" {
		return ret, nil
	}
	if strings.ContainsAny(hyd, "()") {
		return nil, newCError(ErrUnsupported, "inchiHydrogens", "mobile hydrogens in %q", hyd)
	}
	var atoms []int
	i := 0
	readInt := func() int {
		j := i
		for j < len(hyd) && hyd[j] >= '0' && hyd[j] <= '9' {
			j++
		}
		n, _ := strconv.Atoi(hyd[i:j])
		i = j
		return n
	}
	for i < len(hyd) {
		c := hyd[i]
		switch {
		case c >= '0' && c <= '9':
			from := readInt()
			to := from
			if i < len(hyd) && hyd[i] == '-' {
				i++
				to = readInt()
			}
			if from < 1 || to > heavy || to < from {
				return nil, newCError(ErrParse, "inchiHydrogens", "bad atom range %d-%d in %q", from, to, hyd)
			}
			for a := from; a <= to; a++ {
				atoms = append(atoms, a-1)
			}
		case c == ',':
			i++
		case c == 'H':
			i++
			n := 1
			if i < len(hyd) && hyd[i] >= '0' && hyd[i] <= '9' {
				n = readInt()
			}
			if len(atoms) == 0 {
				return nil, newCError(ErrParse, "inchiHydrogens", "H without atoms in %q", hyd)
			}
			for _, a := range atoms {
				ret[a] += n
			}
			atoms = atoms[:0]
		default:
			return nil, newCError(ErrParse, "inchiHydrogens", "unexpected %q in %q", c, hyd)
		}
	}
	if len(atoms) != 0 {
		return nil, newCError(ErrParse, "inchiHydrogens", "atoms without H count in %q", hyd)
	}
	return ret, nil
}

// saturate raises bond orders between atoms with free valence. Atoms with
// the fewest unsaturated neighbors go first, which resolves chains and
// Kekulé rings without backtracking. Free valence left at the end becomes
// radical electrons.
func saturate(mol *Molecule) {
	free := make([]int, mol.Len())
	for _, at := range mol.Atoms {
		used := at.BondOrderSum()
		v := valenceFor(at.Symbol, at.Charge, used)
		if v > 0 {
			free[at.Index] = v - int(used)
		}
	}
	unsatNeighbors := func(at *Atom) []*Atom {
		var ret []*Atom
		for _, n := range at.Neighbors() {
			if free[n.Index] > 0 {
				ret = append(ret, n)
			}
		}
		return ret
	}
	for {
		var cands []*Atom
		for _, at := range mol.Atoms {
			if free[at.Index] > 0 && len(unsatNeighbors(at)) > 0 {
				cands = append(cands, at)
			}
		}
		if len(cands) == 0 {
			break
		}
		sort.SliceStable(cands, func(i, j int) bool {
			return len(unsatNeighbors(cands[i])) < len(unsatNeighbors(cands[j]))
		})
		at := cands[0]
		ns := unsatNeighbors(at)
		sort.SliceStable(ns, func(i, j int) bool {
			return len(unsatNeighbors(ns[i])) < len(unsatNeighbors(ns[j]))
		})
		n := ns[0]
		mol.Bond(at.Index, n.Index).Order++
		free[at.Index]--
		free[n.Index]--
	}
	for _, at := range mol.Atoms {
		at.Radicals = free[at.Index]
	}
}
