/*
 * isomorphism.go, part of refchem.
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
	"strings"

	"gonum.org/v1/gonum/graph/simple"
)

// IsIsomorphic returns true if M and other are the same species: there is
// a one-to-one map between their atoms that keeps elements, radicals,
// formal charges, lone pairs, bonds and bond orders. Atom order and labels
// don't matter.
func (M *Molecule) IsIsomorphic(other *Molecule) bool {
	return isomorphic(M, other, true)
}

// IsSkeletonIsomorphic is like IsIsomorphic but it compares only elements
// and connectivity. Bond orders and electronic states are ignored, which
// is what can be checked against a geometry.
func (M *Molecule) IsSkeletonIsomorphic(other *Molecule) bool {
	return isomorphic(M, other, false)
}

type matcher struct {
	strict       bool
	g1, g2       *simple.WeightedUndirectedGraph
	nb1, nb2     [][]int
	color1       []int
	color2       []int
	core1, core2 []int //-1 means unmapped
	order        []int
}

func isomorphic(m1, m2 *Molecule, strict bool) bool {
	if m1 == nil || m2 == nil {
		return m1 == m2
	}
	if m1.Len() != m2.Len() || len(m1.Bonds) != len(m2.Bonds) {
		return false
	}
	if m1.Formula() != m2.Formula() {
		return false
	}
	if strict && (m1.Multiplicity() != m2.Multiplicity() || m1.Charge() != m2.Charge()) {
		return false
	}
	if m1.RingCount() != m2.RingCount() {
		return false
	}
	c1, c2 := refineColors(m1, m2, strict)
	if !sameMultiset(c1, c2) {
		return false
	}
	mt := &matcher{strict: strict, g1: m1.Graph(), g2: m2.Graph(), color1: c1, color2: c2}
	mt.nb1 = neighborLists(mt.g1, m1.Len())
	mt.nb2 = neighborLists(mt.g2, m2.Len())
	mt.core1 = make([]int, m1.Len())
	mt.core2 = make([]int, m2.Len())
	for i := range mt.core1 {
		mt.core1[i] = -1
		mt.core2[i] = -1
	}
	mt.order = matchOrder(mt.nb1, c1)
	return mt.match(0)
}

func neighborLists(g *simple.WeightedUndirectedGraph, n int) [][]int {
	ret := make([][]int, n)
	for i := 0; i < n; i++ {
		it := g.From(int64(i))
		for it.Next() {
			ret[i] = append(ret[i], int(it.Node().ID()))
		}
		sort.Ints(ret[i])
	}
	return ret
}

// matchOrder returns the atoms of the first molecule in breadth-first
// order, each fragment starting from its atom with the rarest color, so
// that every atom after the first of a fragment has a mapped neighbor.
func matchOrder(nb [][]int, colors []int) []int {
	freq := make(map[int]int)
	for _, c := range colors {
		freq[c]++
	}
	n := len(nb)
	seen := make([]bool, n)
	order := make([]int, 0, n)
	for len(order) < n {
		start := -1
		for i := 0; i < n; i++ {
			if !seen[i] && (start < 0 || freq[colors[i]] < freq[colors[start]]) {
				start = i
			}
		}
		queue := []int{start}
		seen[start] = true
		for len(queue) > 0 {
			a := queue[0]
			queue = queue[1:]
			order = append(order, a)
			for _, b := range nb[a] {
				if !seen[b] {
					seen[b] = true
					queue = append(queue, b)
				}
			}
		}
	}
	return order
}

func (mt *matcher) match(k int) bool {
	if k == len(mt.order) {
		return true
	}
	a := mt.order[k]
	for b := range mt.core2 {
		if mt.core2[b] >= 0 || mt.color1[a] != mt.color2[b] || !mt.feasible(a, b) {
			continue
		}
		mt.core1[a], mt.core2[b] = b, a
		if mt.match(k + 1) {
			return true
		}
		mt.core1[a], mt.core2[b] = -1, -1
	}
	return false
}

// feasible checks that mapping a to b keeps every bond between a and the
// atoms already mapped, and adds no bond that is missing in the first molecule.
func (mt *matcher) feasible(a, b int) bool {
	mapped1 := 0
	for _, na := range mt.nb1[a] {
		nb := mt.core1[na]
		if nb < 0 {
			continue
		}
		mapped1++
		if !mt.g2.HasEdgeBetween(int64(b), int64(nb)) {
			return false
		}
		if mt.strict {
			w1, _ := mt.g1.Weight(int64(a), int64(na))
			w2, _ := mt.g2.Weight(int64(b), int64(nb))
			if w1 != w2 {
				return false
			}
		}
	}
	mapped2 := 0
	for _, nb := range mt.nb2[b] {
		if mt.core2[nb] >= 0 {
			mapped2++
		}
	}
	return mapped1 == mapped2
}

// refineColors gives each atom of both molecules an integer color that
// summarizes its environment. Colors are refined from the atom invariants
// by looking at the neighbors' colors until the number of classes stops
// growing. Isomorphic atoms always get the same color.
func refineColors(m1, m2 *Molecule, strict bool) ([]int, []int) {
	mols := [2]*Molecule{m1, m2}
	var keys [2][]string
	for k, m := range mols {
		keys[k] = make([]string, m.Len())
		for i, at := range m.Atoms {
			if strict {
				keys[k][i] = fmt.Sprintf("%s|%d|%d|%d|%d", at.Symbol, len(at.Bonds), at.Radicals, at.Charge, at.LonePairs)
			} else {
				keys[k][i] = fmt.Sprintf("%s|%d", at.Symbol, len(at.Bonds))
			}
		}
	}
	colors, classes := intern(keys)
	for round := 0; round < m1.Len(); round++ {
		for k, m := range mols {
			for i, at := range m.Atoms {
				nk := make([]string, 0, len(at.Bonds))
				for _, b := range at.Bonds {
					n := b.Cross(at).Index
					if strict {
						nk = append(nk, fmt.Sprintf("%d:%g", colors[k][n], b.Order))
					} else {
						nk = append(nk, fmt.Sprintf("%d", colors[k][n]))
					}
				}
				sort.Strings(nk)
				keys[k][i] = fmt.Sprintf("%d[%s]", colors[k][i], strings.Join(nk, ","))
			}
		}
		newColors, newClasses := intern(keys)
		colors = newColors
		if newClasses == classes {
			break
		}
		classes = newClasses
	}
	return colors[0], colors[1]
}

// intern maps the keys of both molecules to integers with a shared dictionary.
func intern(keys [2][]string) ([2][]int, int) {
	dict := make(map[string]int)
	var ret [2][]int
	for k := range keys {
		ret[k] = make([]int, len(keys[k]))
		for i, key := range keys[k] {
			c, ok := dict[key]
			if !ok {
				c = len(dict)
				dict[key] = c
			}
			ret[k][i] = c
		}
	}
	return ret, len(dict)
}

func sameMultiset(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	count := make(map[int]int)
	for _, v := range a {
		count[v]++
	}
	for _, v := range b {
		count[v]--
		if count[v] < 0 {
			return false
		}
	}
	return true
}
