/*
 * entries.go, part of refchem.
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

package reference

import (
	"math"
	"strings"

	"github.com/rmera/refchem/chemyaml"
	"github.com/rmera/refchem/statmech"
	"github.com/rmera/refchem/thermo"
	"gopkg.in/yaml.v3"
)

// Class tags of the records defined in this package.
const (
	SpeciesClass         = "ReferenceSpecies"
	ReferenceEntryClass  = "ReferenceDataEntry"
	CalculatedEntryClass = "CalculatedDataEntry"
)

// ReferenceDataEntry is the reference data for a species from a single
// source. It can't be changed after construction.
type ReferenceDataEntry struct {
	thermoData *thermo.Data
	atctID     string
}

// NewReferenceDataEntry returns an entry with the given thermochemistry,
// which may be nil, and Active Thermochemical Tables ID, which may be empty.
func NewReferenceDataEntry(td *thermo.Data, atctID string) (*ReferenceDataEntry, error) {
	if td != nil {
		if err := td.Validate(); err != nil {
			return nil, newError(ErrValidation, "NewReferenceDataEntry", "thermo data").causedBy(err)
		}
	}
	return &ReferenceDataEntry{thermoData: td, atctID: atctID}, nil
}

// ThermoData returns the thermochemistry of the entry, or nil.
func (E *ReferenceDataEntry) ThermoData() *thermo.Data { return E.thermoData }

// ATcTID returns the Active Thermochemical Tables ID of the entry, or "".
func (E *ReferenceDataEntry) ATcTID() string { return E.atctID }

type referenceEntryRecord struct {
	ThermoData *thermo.Data `yaml:"thermo_data,omitempty"`
	ATcTID     string       `yaml:"atct_id,omitempty"`
}

// UnmarshalYAML reads and validates a ReferenceDataEntry record.
func (E *ReferenceDataEntry) UnmarshalYAML(n *yaml.Node) error {
	m, err := chemyaml.Expect(n, ReferenceEntryClass)
	if err != nil {
		return decodeError("ReferenceDataEntry.UnmarshalYAML", "reference data entry", err)
	}
	var r referenceEntryRecord
	if err := m.Decode(&r); err != nil {
		return decodeError("ReferenceDataEntry.UnmarshalYAML", "reference data entry", err)
	}
	e, err := NewReferenceDataEntry(r.ThermoData, r.ATcTID)
	if err != nil {
		return errDecorate(err, "ReferenceDataEntry.UnmarshalYAML")
	}
	*E = *e
	return nil
}

// MarshalYAML writes E as a ReferenceDataEntry record.
func (E *ReferenceDataEntry) MarshalYAML() (interface{}, error) {
	return chemyaml.Tagged(ReferenceEntryClass, referenceEntryRecord{ThermoData: E.thermoData, ATcTID: E.atctID})
}

// String returns every field of E, as a one-line record.
func (E *ReferenceDataEntry) String() string {
	return dump(E)
}

// CalculatedDataEntry is the data computed for a species at a single
// model chemistry. It can't be changed after construction.
type CalculatedDataEntry struct {
	conformer    *statmech.Conformer
	thermoData   *thermo.Data
	t1Diagnostic *float64
	fod          *float64
}

// NewCalculatedDataEntry returns an entry with the given conformer,
// thermochemistry, T1 diagnostic and fractional occupation density. Any
// of them may be nil.
func NewCalculatedDataEntry(conf *statmech.Conformer, td *thermo.Data, t1, fod *float64) (*CalculatedDataEntry, error) {
	if conf != nil {
		if err := conf.Validate(); err != nil {
			return nil, newError(ErrValidation, "NewCalculatedDataEntry", "conformer").causedBy(err)
		}
	}
	if td != nil {
		if err := td.Validate(); err != nil {
			return nil, newError(ErrValidation, "NewCalculatedDataEntry", "thermo data").causedBy(err)
		}
	}
	for name, v := range map[string]*float64{"T1 diagnostic": t1, "FOD": fod} {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0) {
			return nil, newError(ErrValidation, "NewCalculatedDataEntry", "%s of %g", name, *v)
		}
	}
	return &CalculatedDataEntry{conformer: conf, thermoData: td, t1Diagnostic: copyFloat(t1), fod: copyFloat(fod)}, nil
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

// Conformer returns the conformer of the entry, or nil.
func (E *CalculatedDataEntry) Conformer() *statmech.Conformer { return E.conformer }

// ThermoData returns the thermochemistry of the entry, or nil.
func (E *CalculatedDataEntry) ThermoData() *thermo.Data { return E.thermoData }

// T1Diagnostic returns the T1 diagnostic of the entry, or nil.
func (E *CalculatedDataEntry) T1Diagnostic() *float64 { return copyFloat(E.t1Diagnostic) }

// FOD returns the fractional occupation density of the entry, or nil.
func (E *CalculatedDataEntry) FOD() *float64 { return copyFloat(E.fod) }

type calculatedEntryRecord struct {
	Conformer    *statmech.Conformer `yaml:"conformer,omitempty"`
	ThermoData   *thermo.Data        `yaml:"thermo_data,omitempty"`
	T1Diagnostic *float64            `yaml:"t1_diagnostic,omitempty"`
	FOD          *float64            `yaml:"fod,omitempty"`
}

// UnmarshalYAML reads and validates a CalculatedDataEntry record.
func (E *CalculatedDataEntry) UnmarshalYAML(n *yaml.Node) error {
	m, err := chemyaml.Expect(n, CalculatedEntryClass)
	if err != nil {
		return decodeError("CalculatedDataEntry.UnmarshalYAML", "calculated data entry", err)
	}
	var r calculatedEntryRecord
	if err := m.Decode(&r); err != nil {
		return decodeError("CalculatedDataEntry.UnmarshalYAML", "calculated data entry", err)
	}
	e, err := NewCalculatedDataEntry(r.Conformer, r.ThermoData, r.T1Diagnostic, r.FOD)
	if err != nil {
		return errDecorate(err, "CalculatedDataEntry.UnmarshalYAML")
	}
	*E = *e
	return nil
}

// MarshalYAML writes E as a CalculatedDataEntry record.
func (E *CalculatedDataEntry) MarshalYAML() (interface{}, error) {
	return chemyaml.Tagged(CalculatedEntryClass, calculatedEntryRecord{Conformer: E.conformer,
		ThermoData: E.thermoData, T1Diagnostic: E.t1Diagnostic, FOD: E.fod})
}

// String returns every field of E, as a one-line record.
func (E *CalculatedDataEntry) String() string {
	return dump(E)
}

func dump(m yaml.Marshaler) string {
	v, err := m.MarshalYAML()
	if err != nil {
		return "<" + err.Error() + ">"
	}
	n, ok := v.(*yaml.Node)
	if !ok {
		return "<unexpected record>"
	}
	out, err := yaml.Marshal(chemyaml.Flow(n))
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return strings.TrimSpace(string(out))
}
