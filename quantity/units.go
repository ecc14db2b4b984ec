/*
 * units.go, part of refchem.
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

package quantity

import "strings"

// Physical constants, CODATA 2018.
const (
	Avogadro     = 6.02214076e23
	Hartree2Jmol = 2625499.6394799
	EV2Jmol      = 96485.33212331001
	Amu          = 1.66053906660e-27
	Bohr         = 5.29177210903e-11
	Angstrom     = 1e-10
	Cal          = 4.184
)

// siFactor maps a unit string to the factor that takes a value in those
// units to SI. Only the units found in reference records are here.
var siFactor = map[string]float64{
	"": 1,

	//energy per mole
	"J/mol":            1,
	"kJ/mol":           1e3,
	"cal/mol":          Cal,
	"kcal/mol":         Cal * 1e3,
	"eV/molecule":      EV2Jmol,
	"hartree/molecule": Hartree2Jmol,
	"Hartree/particle": Hartree2Jmol,
	"cm^-1":            100, //wavenumbers, to m^-1

	//heat capacity and entropy
	"J/(mol*K)":    1,
	"kJ/(mol*K)":   1e3,
	"cal/(mol*K)":  Cal,
	"kcal/(mol*K)": Cal * 1e3,

	//temperature
	"K": 1,

	//length
	"m":         1,
	"cm":        1e-2,
	"nm":        1e-9,
	"pm":        1e-12,
	"angstrom":  Angstrom,
	"angstroms": Angstrom,
	"bohr":      Bohr,

	//mass
	"kg":    1,
	"g":     1e-3,
	"amu":   Amu,
	"g/mol": 1e-3,

	//moment of inertia
	"amu*angstrom^2":  Amu * Angstrom * Angstrom,
	"amu*angstroms^2": Amu * Angstrom * Angstrom,
	"kg*m^2":          1,

	//frequency
	"s^-1": 1,
	"Hz":   1,
}

// energyPerMole lists the units that measure an energy per mole. The
// enthalpies handed to isodesmic schemes must be in one of these.
var energyPerMole = map[string]bool{
	"J/mol":            true,
	"kJ/mol":           true,
	"cal/mol":          true,
	"kcal/mol":         true,
	"eV/molecule":      true,
	"hartree/molecule": true,
	"Hartree/particle": true,
}

// Factor returns the factor that converts a value in units to SI.
func Factor(units string) (float64, error) {
	f, ok := siFactor[strings.TrimSpace(units)]
	if !ok {
		return 0, newError(ErrUnknownUnits, "Factor", "units %q", units)
	}
	return f, nil
}

// IsEnergyPerMole reports whether units measure an energy per mole.
func IsEnergyPerMole(units string) bool {
	return energyPerMole[strings.TrimSpace(units)]
}

// Convert takes value from the units from to the units to.
func Convert(value float64, from, to string) (float64, error) {
	f1, err := Factor(from)
	if err != nil {
		return 0, errDecorate(err, "Convert")
	}
	f2, err := Factor(to)
	if err != nil {
		return 0, errDecorate(err, "Convert")
	}
	return value * f1 / f2, nil
}
