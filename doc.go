/*
 * doc.go, part of refchem.
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

/*
Package chem is the main package of the refchem library. It provides atom and molecule structures
for reference species, facilities for reading and writing the string representations used
by thermochemistry databases, and a graph isomorphism test.

	**chem Capabilities**

	Reads/writes RMG adjacency lists, in the current and the old format.

	Reads/writes SMILES strings (organic subset, bracket atoms, rings, branches
	and aromatic atoms). Written SMILES are not canonical.

	Reads standard InChI strings for neutral, single-component species.
	Bond orders and radicals are assigned from the free valences.

	Tests whether two molecules are the same species, regardless of the atom order.
	A weaker test compares only elements and connectivity.

	Perceives bonds from cartesian coordinates and reads/writes XYZ files.

	Provides gonum graph views of a molecule, its fragments and its rings.

The sub-package v3 holds the Nx3 coordinate matrices.
*/
package chem
