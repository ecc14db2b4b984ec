/*
 * adjlist.go, part of refchem.
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
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var bondOrders = map[string]float64{
	"S": 1,
	"D": 2,
	"T": 3,
	"Q": 4,
	"B": 1.5,
}

func orderSymbol(o float64) string {
	switch o {
	case 1:
		return "S"
	case 2:
		return "D"
	case 3:
		return "T"
	case 4:
		return "Q"
	case 1.5:
		return "B"
	}
	return "S"
}

var adjBondRe = regexp.MustCompile(`\{\s*(\d+)\s*,\s*([^}\s]+)\s*\}`)

type pendingBond struct {
	order    float64
	mentions int
}

// FromAdjacencyList builds a Molecule from an RMG adjacency list. Both the
// current format ("1 C u0 p0 c0 {2,S}") and the old one ("1 C 0 {2,S}") are
// accepted. An optional name line and a "multiplicity" line may precede
// the atoms.
func FromAdjacencyList(adjlist string) (*Molecule, error) {
	mol := NewMolecule()
	bonds := make(map[[2]int]*pendingBond)
	lonePairsGiven := true
	first := true
	for n, line := range strings.Split(adjlist, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		fields := strings.Fields(line)
		if fields[0] == "multiplicity" {
			if len(fields) != 2 {
				return nil, newCError(ErrParse, "FromAdjacencyList", "line %d: bad multiplicity line %q", n+1, line)
			}
			m, err := strconv.Atoi(fields[1])
			if err != nil || m < 1 {
				return nil, newCError(ErrUnsupported, "FromAdjacencyList", "line %d: multiplicity %q", n+1, fields[1])
			}
			mol.SetMultiplicity(m)
			first = false
			continue
		}
		idx, err := strconv.Atoi(fields[0])
		if err != nil {
			if first && mol.Len() == 0 {
				//a species name
				first = false
				continue
			}
			return nil, newCError(ErrParse, "FromAdjacencyList", "line %d: expected an atom index, got %q", n+1, fields[0])
		}
		first = false
		if idx != mol.Len()+1 {
			return nil, newCError(ErrParse, "FromAdjacencyList", "line %d: atom %d out of sequence", n+1, idx)
		}
		at, lp, err := parseAdjAtom(mol, fields[1:], line)
		if err != nil {
			return nil, errDecorate(err, fmt.Sprintf("FromAdjacencyList: line %d", n+1))
		}
		if !lp {
			lonePairsGiven = false
			at.LonePairs = -1
		}
		for _, m := range adjBondRe.FindAllStringSubmatch(line, -1) {
			j, _ := strconv.Atoi(m[1])
			order, ok := bondOrders[m[2]]
			if !ok {
				return nil, newCError(ErrUnsupported, "FromAdjacencyList", "line %d: bond order %q", n+1, m[2])
			}
			if j == idx {
				return nil, newCError(ErrParse, "FromAdjacencyList", "line %d: atom %d bonded to itself", n+1, idx)
			}
			key := [2]int{idx, j}
			if j < idx {
				key = [2]int{j, idx}
			}
			pb, ok := bonds[key]
			if !ok {
				bonds[key] = &pendingBond{order: order, mentions: 1}
				continue
			}
			if pb.order != order {
				return nil, newCError(ErrParse, "FromAdjacencyList", "inconsistent order for bond %d-%d", key[0], key[1])
			}
			pb.mentions++
		}
	}
	if mol.Len() == 0 {
		return nil, newCError(ErrParse, "FromAdjacencyList", "no atoms")
	}
	keys := make([][2]int, 0, len(bonds))
	for k := range bonds {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})
	for _, k := range keys {
		pb := bonds[k]
		if k[1] > mol.Len() {
			return nil, newCError(ErrParse, "FromAdjacencyList", "bond %d-%d refers to a missing atom", k[0], k[1])
		}
		if pb.mentions != 2 {
			return nil, newCError(ErrParse, "FromAdjacencyList", "bond %d-%d is listed by only one of its atoms", k[0], k[1])
		}
		if _, err := mol.AddBond(k[0]-1, k[1]-1, pb.order); err != nil {
			return nil, errDecorate(err, "FromAdjacencyList")
		}
	}
	if !lonePairsGiven {
		for _, at := range mol.Atoms {
			if at.LonePairs < 0 {
				at.LonePairs = defaultLonePairs(at)
			}
		}
	}
	return mol, nil
}

// parseAdjAtom reads the label, element and electronic state of an atom
// line, without the index. It returns whether the lone pairs were given.
func parseAdjAtom(mol *Molecule, fields []string, line string) (*Atom, bool, error) {
	var label string
	if len(fields) > 0 && strings.HasPrefix(fields[0], "*") {
		label = fields[0]
		fields = fields[1:]
	}
	if len(fields) == 0 || strings.HasPrefix(fields[0], "{") {
		return nil, false, newCError(ErrParse, "parseAdjAtom", "no element in %q", line)
	}
	symbol := fields[0]
	if _, ok := symbolValenceElectrons[symbol]; !ok {
		return nil, false, newCError(ErrUnsupported, "parseAdjAtom", "element %q", symbol)
	}
	at := mol.AddAtom(symbol)
	at.Label = label
	lpGiven := false
	oldRadicals := false
	for _, f := range fields[1:] {
		if strings.HasPrefix(f, "{") {
			break
		}
		var err error
		switch {
		case strings.HasPrefix(f, "u"):
			at.Radicals, err = adjInt(f[1:])
		case strings.HasPrefix(f, "p"):
			at.LonePairs, err = adjInt(f[1:])
			lpGiven = true
		case strings.HasPrefix(f, "c"):
			at.Charge, err = adjInt(f[1:])
		case f[0] >= '0' && f[0] <= '9' && !oldRadicals:
			//old format: radical electrons, possibly with a spin state suffix (2S, 2T).
			oldRadicals = true
			at.Radicals, err = adjInt(f[:1])
			if strings.HasSuffix(f, "S") {
				at.Radicals = 0
			}
		default:
			err = newCError(ErrParse, "parseAdjAtom", "unknown atom property %q", f)
		}
		if err != nil {
			return nil, false, errDecorate(err, "parseAdjAtom")
		}
	}
	return at, lpGiven, nil
}

func adjInt(s string) (int, error) {
	if strings.HasPrefix(s, "[") {
		return 0, newCError(ErrUnsupported, "adjInt", "atom groups (%s) are not molecules", s)
	}
	i, err := strconv.Atoi(strings.TrimPrefix(s, "+"))
	if err != nil {
		return 0, newCError(ErrParse, "adjInt", "bad integer %q", s)
	}
	return i, nil
}

// AdjacencyList returns the RMG adjacency list of M, in the current format.
func (M *Molecule) AdjacencyList() string {
	var b strings.Builder
	if m := M.Multiplicity(); m != 1 {
		fmt.Fprintf(&b, "multiplicity %d\n", m)
	}
	width := len(strconv.Itoa(M.Len()))
	for _, at := range M.Atoms {
		fmt.Fprintf(&b, "%-*d ", width, at.Index+1)
		if at.Label != "" {
			b.WriteString(at.Label + " ")
		}
		charge := "c0"
		if at.Charge > 0 {
			charge = fmt.Sprintf("c+%d", at.Charge)
		} else if at.Charge < 0 {
			charge = fmt.Sprintf("c%d", at.Charge)
		}
		fmt.Fprintf(&b, "%s u%d p%d %s", at.Symbol, at.Radicals, at.LonePairs, charge)
		nb := make([]*Bond, len(at.Bonds))
		copy(nb, at.Bonds)
		sort.Slice(nb, func(i, j int) bool { return nb[i].Cross(at).Index < nb[j].Cross(at).Index })
		for _, bond := range nb {
			fmt.Fprintf(&b, " {%d,%s}", bond.Cross(at).Index+1, orderSymbol(bond.Order))
		}
		b.WriteString("\n")
	}
	return b.String()
}
