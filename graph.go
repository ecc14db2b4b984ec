/*
 * graph.go, part of refchem.
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
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Graph returns a gonum view of M. Node IDs are atom indexes and edge
// weights are bond orders. The view is a copy: later changes to M are not
// reflected in it.
func (M *Molecule) Graph() *simple.WeightedUndirectedGraph {
	g := simple.NewWeightedUndirectedGraph(0, 0)
	for _, at := range M.Atoms {
		g.AddNode(simple.Node(at.Index))
	}
	for _, b := range M.Bonds {
		g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(b.At1.Index), T: simple.Node(b.At2.Index), W: b.Order})
	}
	return g
}

// Fragments returns the atom indexes of each connected component of M.
// Indexes within a fragment are sorted, and fragments are sorted by their
// first index.
func (M *Molecule) Fragments() [][]int {
	cc := topo.ConnectedComponents(M.Graph())
	ret := make([][]int, 0, len(cc))
	for _, c := range cc {
		ret = append(ret, nodeIndexes(c))
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i][0] < ret[j][0] })
	return ret
}

// RingCount returns the number of independent rings (the cyclomatic
// number) of M.
func (M *Molecule) RingCount() int {
	return len(topo.UndirectedCyclesIn(M.Graph()))
}

// Rings returns a cycle basis of M, each ring as the list of its atom
// indexes in ring order.
func (M *Molecule) Rings() [][]int {
	cycles := topo.UndirectedCyclesIn(M.Graph())
	ret := make([][]int, 0, len(cycles))
	for _, c := range cycles {
		//the first node is repeated at the end of the cycle.
		ids := make([]int, 0, len(c))
		for _, n := range c[:len(c)-1] {
			ids = append(ids, int(n.ID()))
		}
		ret = append(ret, ids)
	}
	return ret
}

func nodeIndexes(nodes []graph.Node) []int {
	ret := make([]int, 0, len(nodes))
	for _, n := range nodes {
		ret = append(ret, int(n.ID()))
	}
	sort.Ints(ret)
	return ret
}

// perceiveAromaticity marks as aromatic (order 1.5) the bonds of the
// six-membered rings of C and N atoms that alternate single and double bonds.
func (M *Molecule) perceiveAromaticity() {
	for _, ring := range M.Rings() {
		if len(ring) != 6 {
			continue
		}
		bonds := make([]*Bond, 6)
		ok := true
		for i := range ring {
			at := M.Atoms[ring[i]]
			if at.Symbol != "C" && at.Symbol != "N" {
				ok = false
				break
			}
			bonds[i] = M.Bond(ring[i], ring[(i+1)%6])
			if bonds[i] == nil {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		doubles := 0
		for i, b := range bonds {
			next := bonds[(i+1)%6]
			if b.Order == 2 {
				doubles++
			}
			if (b.Order != 1 && b.Order != 2 && b.Order != 1.5) || (b.Order != 1.5 && b.Order == next.Order) {
				ok = false
				break
			}
		}
		if !ok || doubles == 0 {
			continue
		}
		for _, b := range bonds {
			b.Order = 1.5
		}
	}
}
