/*
 * smiles.go, part of refchem.
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
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Elements that can be written without brackets.
var organicSubset = map[string]bool{
	"B": true, "C": true, "N": true, "O": true, "P": true, "S": true,
	"F": true, "Cl": true, "Br": true, "I": true,
}

// Elements that have an aromatic (lowercase) form.
var aromaticSubset = map[string]bool{
	"B": true, "C": true, "N": true, "O": true, "P": true, "S": true, "Se": true,
}

type ringOpening struct {
	atom  int
	order float64
}

type smilesParser struct {
	s        string
	pos      int
	mol      *Molecule
	aromatic []bool
	hcount   []int //-1 for atoms outside brackets
	rings    map[int]ringOpening
}

// FromSMILES builds a Molecule from a SMILES string, with explicit hydrogens.
// Stereochemistry marks and isotopes are read and ignored. Aromatic input
// gives aromatic (1.5) bonds, and so do Kekulé benzene-like rings.
func FromSMILES(smiles string) (*Molecule, error) {
	smiles = strings.TrimSpace(smiles)
	if smiles == "" {
		return nil, newCError(ErrParse, "FromSMILES", "empty SMILES")
	}
	p := &smilesParser{s: smiles, mol: NewMolecule(), rings: make(map[int]ringOpening)}
	if err := p.parse(); err != nil {
		return nil, errDecorate(err, "FromSMILES")
	}
	if len(p.rings) > 0 {
		return nil, newCError(ErrParse, "FromSMILES", "unclosed ring in %q", smiles)
	}
	p.fillHydrogens()
	p.mol.UpdateLonePairs()
	p.mol.perceiveAromaticity()
	return p.mol, nil
}

func (p *smilesParser) errorf(format string, args ...interface{}) error {
	return newCError(ErrParse, "smilesParser", "%s at position %d of %q", fmt.Sprintf(format, args...), p.pos, p.s)
}

func (p *smilesParser) parse() error {
	prev := -1
	var stack []int
	var order float64 //0 means no explicit bond
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		switch {
		case c == '(':
			if prev < 0 {
				return p.errorf("branch without an atom")
			}
			stack = append(stack, prev)
			p.pos++
		case c == ')':
			if len(stack) == 0 {
				return p.errorf("unbalanced parenthesis")
			}
			prev = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			p.pos++
		case c == '.':
			prev = -1
			p.pos++
		case strings.IndexByte("-=#$:/\\", c) >= 0:
			order = map[byte]float64{'-': 1, '=': 2, '#': 3, '$': 4, ':': 1.5, '/': 1, '\\': 1}[c]
			p.pos++
		case c == '%' || (c >= '0' && c <= '9'):
			if prev < 0 {
				return p.errorf("ring closure without an atom")
			}
			r, err := p.ringNumber()
			if err != nil {
				return err
			}
			if err := p.ring(prev, r, order); err != nil {
				return err
			}
			order = 0
		default:
			at, err := p.atom()
			if err != nil {
				return err
			}
			if prev >= 0 {
				if order == 0 {
					order = p.defaultOrder(prev, at)
				}
				if _, err := p.mol.AddBond(prev, at, order); err != nil {
					return err
				}
			}
			prev = at
			order = 0
		}
	}
	if len(stack) > 0 {
		return p.errorf("unbalanced parenthesis")
	}
	return nil
}

func (p *smilesParser) ringNumber() (int, error) {
	if p.s[p.pos] == '%' {
		if p.pos+3 > len(p.s) {
			return 0, p.errorf("truncated ring number")
		}
		r, err := strconv.Atoi(p.s[p.pos+1 : p.pos+3])
		if err != nil {
			return 0, p.errorf("bad ring number")
		}
		p.pos += 3
		return r, nil
	}
	r := int(p.s[p.pos] - '0')
	p.pos++
	return r, nil
}

func (p *smilesParser) ring(at, r int, order float64) error {
	open, ok := p.rings[r]
	if !ok {
		p.rings[r] = ringOpening{atom: at, order: order}
		return nil
	}
	delete(p.rings, r)
	if order == 0 {
		order = open.order
	}
	if order == 0 {
		order = p.defaultOrder(open.atom, at)
	}
	_, err := p.mol.AddBond(open.atom, at, order)
	return err
}

func (p *smilesParser) defaultOrder(i, j int) float64 {
	if p.aromatic[i] && p.aromatic[j] {
		return 1.5
	}
	return 1
}

func (p *smilesParser) addAtom(symbol string, aromatic bool, hcount int) int {
	at := p.mol.AddAtom(symbol)
	p.aromatic = append(p.aromatic, aromatic)
	p.hcount = append(p.hcount, hcount)
	return at.Index
}

// atom reads an atom outside or inside brackets.
func (p *smilesParser) atom() (int, error) {
	if p.s[p.pos] == '[' {
		return p.bracketAtom()
	}
	rest := p.s[p.pos:]
	for _, two := range []string{"Cl", "Br"} {
		if strings.HasPrefix(rest, two) {
			p.pos += 2
			return p.addAtom(two, false, -1), nil
		}
	}
	c := rest[0]
	sym := strings.ToUpper(string(c))
	switch {
	case unicode.IsUpper(rune(c)) && organicSubset[sym]:
		p.pos++
		return p.addAtom(sym, false, -1), nil
	case unicode.IsLower(rune(c)) && aromaticSubset[sym] && organicSubset[sym]:
		p.pos++
		return p.addAtom(sym, true, -1), nil
	}
	return 0, p.errorf("unexpected character %q", c)
}

func (p *smilesParser) bracketAtom() (int, error) {
	end := strings.IndexByte(p.s[p.pos:], ']')
	if end < 0 {
		return 0, p.errorf("unclosed bracket")
	}
	body := p.s[p.pos+1 : p.pos+end]
	p.pos += end + 1
	i := 0
	for i < len(body) && body[i] >= '0' && body[i] <= '9' {
		i++ //isotope
	}
	if i >= len(body) {
		return 0, p.errorf("no element in [%s]", body)
	}
	var sym string
	aromatic := false
	switch {
	case strings.HasPrefix(body[i:], "se"):
		sym, aromatic = "Se", true
		i += 2
	case unicode.IsLower(rune(body[i])):
		sym, aromatic = strings.ToUpper(body[i:i+1]), true
		if !aromaticSubset[sym] {
			return 0, p.errorf("%q can't be aromatic", body[i:i+1])
		}
		i++
	default:
		sym = body[i : i+1]
		i++
		if i < len(body) && unicode.IsLower(rune(body[i])) {
			if _, ok := symbolValenceElectrons[sym+body[i:i+1]]; ok {
				sym += body[i : i+1]
				i++
			}
		}
	}
	if _, ok := symbolValenceElectrons[sym]; !ok {
		return 0, newCError(ErrUnsupported, "bracketAtom", "element %q", sym)
	}
	for i < len(body) && body[i] == '@' {
		i++ //chirality
	}
	h := 0
	if i < len(body) && body[i] == 'H' {
		i++
		h = 1
		j := i
		for j < len(body) && body[j] >= '0' && body[j] <= '9' {
			j++
		}
		if j > i {
			h, _ = strconv.Atoi(body[i:j])
		}
		i = j
	}
	charge := 0
	for i < len(body) && (body[i] == '+' || body[i] == '-') {
		sign := 1
		if body[i] == '-' {
			sign = -1
		}
		i++
		j := i
		for j < len(body) && body[j] >= '0' && body[j] <= '9' {
			j++
		}
		if j > i {
			n, _ := strconv.Atoi(body[i:j])
			charge += sign * n
		} else {
			charge += sign
		}
		i = j
	}
	if i < len(body) && body[i] == ':' {
		i = len(body) //atom class
	}
	if i != len(body) {
		return 0, p.errorf("can't parse bracket atom [%s]", body)
	}
	idx := p.addAtom(sym, aromatic, h)
	p.mol.Atoms[idx].Charge = charge
	return idx, nil
}

// fillHydrogens adds the hydrogens of every heavy atom and assigns the
// radicals of bracket atoms.
func (p *smilesParser) fillHydrogens() {
	heavy := p.mol.Len()
	for i := 0; i < heavy; i++ {
		at := p.mol.Atoms[i]
		used := at.BondOrderSum()
		var h int
		if p.hcount[i] >= 0 {
			h = p.hcount[i]
			if !p.aromatic[i] {
				if v := valenceFor(at.Symbol, at.Charge, used+float64(h)); v >= 0 {
					at.Radicals = v - int(math.Ceil(used-1e-9)) - h
				}
			}
		} else {
			h = implicitHydrogens(at, p.aromatic[i])
		}
		for k := 0; k < h; k++ {
			hat := p.mol.AddAtom("H")
			p.mol.AddBond(i, hat.Index, 1)
		}
	}
}

// implicitHydrogens returns the hydrogens an atom written outside brackets
// carries, given its bonds to other heavy atoms.
func implicitHydrogens(at *Atom, aromatic bool) int {
	used := at.BondOrderSum()
	if aromatic {
		switch at.Symbol {
		case "O", "S", "Se":
			return 0
		}
		//each aromatic bond is a sigma bond, and the atom gives one pi bond to the ring.
		k := 0
		for _, b := range at.Bonds {
			if b.Order == 1.5 {
				k++
			}
		}
		used = used - 1.5*float64(k) + float64(k) + 1
	}
	v := valenceFor(at.Symbol, 0, used)
	if v < 0 {
		return 0
	}
	h := v - int(math.Ceil(used-1e-9))
	if h < 0 {
		return 0
	}
	return h
}

type smilesWriter struct {
	mol       *Molecule
	written   []bool //atoms that get their own token
	aromatic  []bool
	hcount    []int
	visited   []bool
	children  [][]*Bond
	ringBonds map[*Bond]bool
	ringAt    [][]*Bond
	ringNum   map[*Bond]int
	inUse     map[int]bool
	b         strings.Builder
}

// SMILES returns a SMILES string for M. Hydrogens are folded into their
// heavy atoms whenever possible. The string is not canonical: two
// isomorphic molecules with different atom orders may give different
// strings, but reading the string back always gives a molecule isomorphic
// to M (up to the spin state of carbenes, which SMILES can't express).
func (M *Molecule) SMILES() (string, error) {
	if M.Len() == 0 {
		return "", newCError(ErrParse, "SMILES", "empty molecule")
	}
	w := &smilesWriter{
		mol:       M,
		written:   make([]bool, M.Len()),
		aromatic:  make([]bool, M.Len()),
		hcount:    make([]int, M.Len()),
		visited:   make([]bool, M.Len()),
		children:  make([][]*Bond, M.Len()),
		ringAt:    make([][]*Bond, M.Len()),
		ringBonds: make(map[*Bond]bool),
		ringNum:   make(map[*Bond]int),
		inUse:     make(map[int]bool),
	}
	for _, at := range M.Atoms {
		if _, ok := symbolValenceElectrons[at.Symbol]; !ok {
			return "", newCError(ErrUnsupported, "SMILES", "element %q", at.Symbol)
		}
		w.written[at.Index] = !w.foldable(at)
		for _, b := range at.Bonds {
			if b.Order == 1.5 && aromaticSubset[at.Symbol] {
				w.aromatic[at.Index] = true
			}
		}
	}
	for _, at := range M.Atoms {
		if !w.written[at.Index] {
			w.hcount[at.Bonds[0].Cross(at).Index]++
		}
	}
	first := true
	for _, frag := range M.Fragments() {
		start := -1
		for _, i := range frag {
			if w.written[i] {
				start = i
				break
			}
		}
		if start < 0 {
			continue
		}
		if !first {
			w.b.WriteString(".")
		}
		first = false
		w.dfs(start, nil)
		w.write(start)
	}
	return w.b.String(), nil
}

// foldable returns true for hydrogens that can be written as part of
// the H count of their heavy neighbor.
func (w *smilesWriter) foldable(at *Atom) bool {
	if !at.IsHydrogen() || at.Charge != 0 || at.Radicals != 0 || len(at.Bonds) != 1 {
		return false
	}
	n := at.Bonds[0].Cross(at)
	return !n.IsHydrogen() && at.Bonds[0].Order == 1
}

func (w *smilesWriter) sortedBonds(at *Atom) []*Bond {
	bonds := make([]*Bond, 0, len(at.Bonds))
	for _, b := range at.Bonds {
		if w.written[b.Cross(at).Index] {
			bonds = append(bonds, b)
		}
	}
	sort.Slice(bonds, func(i, j int) bool { return bonds[i].Cross(at).Index < bonds[j].Cross(at).Index })
	return bonds
}

// dfs builds the spanning tree and finds the ring closures.
func (w *smilesWriter) dfs(i int, from *Bond) {
	w.visited[i] = true
	at := w.mol.Atoms[i]
	for _, b := range w.sortedBonds(at) {
		if b == from || w.ringBonds[b] {
			continue
		}
		n := b.Cross(at).Index
		if w.visited[n] {
			w.ringBonds[b] = true
			w.ringAt[n] = append(w.ringAt[n], b)
			w.ringAt[i] = append(w.ringAt[i], b)
			continue
		}
		w.children[i] = append(w.children[i], b)
		w.dfs(n, b)
	}
}

func (w *smilesWriter) write(i int) {
	at := w.mol.Atoms[i]
	w.b.WriteString(w.atomToken(at))
	for _, b := range w.ringAt[i] {
		if r, ok := w.ringNum[b]; ok {
			w.b.WriteString(ringLabel(r))
			delete(w.inUse, r)
			continue
		}
		r := 1
		for w.inUse[r] {
			r++
		}
		w.inUse[r] = true
		w.ringNum[b] = r
		w.b.WriteString(w.bondToken(b))
		w.b.WriteString(ringLabel(r))
	}
	for k, b := range w.children[i] {
		n := b.Cross(at).Index
		last := k == len(w.children[i])-1
		if !last {
			w.b.WriteString("(")
		}
		w.b.WriteString(w.bondToken(b))
		w.write(n)
		if !last {
			w.b.WriteString(")")
		}
	}
}

func ringLabel(r int) string {
	if r < 10 {
		return strconv.Itoa(r)
	}
	return fmt.Sprintf("%%%02d", r)
}

func (w *smilesWriter) bondToken(b *Bond) string {
	arom := w.aromatic[b.At1.Index] && w.aromatic[b.At2.Index]
	switch b.Order {
	case 1:
		if arom {
			return "-"
		}
		return ""
	case 1.5:
		if arom {
			return ""
		}
		return ":"
	case 2:
		return "="
	case 3:
		return "#"
	case 4:
		return "$"
	}
	return ""
}

func (w *smilesWriter) atomToken(at *Atom) string {
	sym := at.Symbol
	arom := w.aromatic[at.Index]
	if arom {
		sym = strings.ToLower(sym)
	}
	h := w.hcount[at.Index]
	if organicSubset[at.Symbol] && at.Charge == 0 && at.Radicals == 0 {
		//check that the atom would get back the same hydrogens.
		heavy := &Atom{Symbol: at.Symbol}
		for _, b := range at.Bonds {
			if w.written[b.Cross(at).Index] {
				heavy.Bonds = append(heavy.Bonds, b)
			}
		}
		if implicitHydrogens(heavy, arom) == h {
			return sym
		}
	}
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(sym)
	if h > 0 {
		b.WriteString("H")
		if h > 1 {
			b.WriteString(strconv.Itoa(h))
		}
	}
	switch {
	case at.Charge == 1:
		b.WriteString("+")
	case at.Charge == -1:
		b.WriteString("-")
	case at.Charge > 1:
		fmt.Fprintf(&b, "+%d", at.Charge)
	case at.Charge < -1:
		fmt.Fprintf(&b, "%d", at.Charge)
	}
	b.WriteString("]")
	return b.String()
}
