/*
 * atomicdata.go, part of refchem.
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

// Element data. Only elements that can appear in reference species are
// present.

// A map for assigning standard atomic weights (IUPAC 2013, abridged) to elements.
var symbolMass = map[string]float64{
	"H":  1.008,
	"He": 4.0026,
	"Li": 6.94,
	"Be": 9.0122,
	"B":  10.81,
	"C":  12.011,
	"N":  14.007,
	"O":  15.999,
	"F":  18.998,
	"Ne": 20.180,
	"Na": 22.990,
	"Mg": 24.305,
	"Al": 26.982,
	"Si": 28.085,
	"P":  30.974,
	"S":  32.06,
	"Cl": 35.45,
	"Ar": 39.948,
	"K":  39.098,
	"Ca": 40.078,
	"Ge": 72.630,
	"Se": 78.971,
	"Br": 79.904,
	"Kr": 83.798,
	"I":  126.90,
	"Xe": 131.29,
}

var symbolNumber = map[string]int{
	"H": 1, "He": 2, "Li": 3, "Be": 4, "B": 5, "C": 6, "N": 7, "O": 8, "F": 9, "Ne": 10,
	"Na": 11, "Mg": 12, "Al": 13, "Si": 14, "P": 15, "S": 16, "Cl": 17, "Ar": 18,
	"K": 19, "Ca": 20, "Ge": 32, "Se": 34, "Br": 35, "Kr": 36, "I": 53, "Xe": 54,
}

var numberSymbol = func() map[int]string {
	ret := make(map[int]string, len(symbolNumber))
	for k, v := range symbolNumber {
		ret[v] = k
	}
	return ret
}()

// A map for assigning covalent radii to elements
// Values from Cordero et al., 2008 (DOI:10.1039/B801115J)
var symbolCovrad = map[string]float64{
	"H":  0.4, // 0.31 altered. Since H always has only one bond, it doesn't matter if the radius is longer, the extra bonds will get eliminated later.
	"He": 0.28,
	"Li": 1.28,
	"Be": 0.96,
	"B":  0.84,
	"C":  0.76, //the sp3 radius
	"N":  0.71,
	"O":  0.66,
	"F":  0.57,
	"Ne": 0.58,
	"Na": 1.66,
	"Mg": 1.41,
	"Al": 1.21,
	"Si": 1.11,
	"P":  1.07,
	"S":  1.05,
	"Cl": 1.02,
	"Ar": 1.06,
	"K":  2.03,
	"Ca": 1.76,
	"Ge": 1.20,
	"Se": 1.2,
	"Br": 1.2,
	"Kr": 1.16,
	"I":  1.39,
	"Xe": 1.40,
}

// A map for checking that atoms don't
// have too many bonds. A value of 0 means
// undefined, i.e. that this atom shouldn't
// be checked for max bonds.
var symbolMaxBonds = map[string]int{
	"H":  1, //this is the only one truly important.
	"C":  4,
	"O":  2,
	"F":  1,
	"Cl": 1,
	"Br": 1,
	"I":  1,
}

// Number of valence electrons of the main-group elements.
var symbolValenceElectrons = map[string]int{
	"H": 1, "He": 2, "Li": 1, "Be": 2, "B": 3, "C": 4, "N": 5, "O": 6, "F": 7, "Ne": 8,
	"Na": 1, "Mg": 2, "Al": 3, "Si": 4, "P": 5, "S": 6, "Cl": 7, "Ar": 8,
	"K": 1, "Ca": 2, "Ge": 4, "Se": 6, "Br": 7, "Kr": 8, "I": 7, "Xe": 8,
}

// Allowed valences of neutral atoms, smallest first. They are used to
// fill implicit hydrogens and to saturate bond orders.
var symbolValences = map[string][]int{
	"H":  {1},
	"He": {0},
	"Li": {1},
	"Be": {2},
	"B":  {3},
	"C":  {4},
	"N":  {3, 5},
	"O":  {2},
	"F":  {1},
	"Ne": {0},
	"Na": {1},
	"Mg": {2},
	"Al": {3},
	"Si": {4},
	"P":  {3, 5},
	"S":  {2, 4, 6},
	"Cl": {1},
	"Ar": {0},
	"K":  {1},
	"Ca": {2},
	"Ge": {4},
	"Se": {2, 4, 6},
	"Br": {1},
	"Kr": {0},
	"I":  {1, 3, 5},
	"Xe": {0},
}

// AtomicNumber returns the atomic number of the element symbol, or 0
// if the element is unknown.
func AtomicNumber(symbol string) int {
	return symbolNumber[symbol]
}

// SymbolFromNumber returns the symbol of the element with atomic number z.
func SymbolFromNumber(z int) (string, error) {
	s, ok := numberSymbol[z]
	if !ok {
		return "", newCError(ErrUnsupported, "SymbolFromNumber", "no element with atomic number %d", z)
	}
	return s, nil
}

// valenceFor returns the smallest allowed valence of at that is not below
// used, taking the formal charge into account. It returns -1 if there is none.
func valenceFor(symbol string, charge int, used float64) int {
	vals, ok := symbolValences[symbol]
	if !ok {
		return -1
	}
	for _, v := range vals {
		v = chargedValence(symbol, v, charge)
		if float64(v)+1e-9 >= used {
			return v
		}
	}
	return -1
}

// chargedValence shifts a neutral valence by the formal charge. Pnictogens
// and chalcogens gain a bond per positive charge (ammonium, hydronium),
// every other element loses a bond per unit of charge of either sign.
func chargedValence(symbol string, v, charge int) int {
	if charge == 0 {
		return v
	}
	switch symbol {
	case "N", "P", "O", "S", "Se":
		v += charge
	default:
		if charge < 0 {
			charge = -charge
		}
		v -= charge
	}
	if v < 0 {
		return 0
	}
	return v
}
