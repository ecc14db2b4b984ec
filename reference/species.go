/*
 * species.go, part of refchem.
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
	"fmt"
	"math"

	chem "github.com/rmera/refchem"
	"github.com/rmera/refchem/isodesmic"
	"github.com/rmera/refchem/quantity"
	"github.com/rmera/refchem/species"
	v3 "github.com/rmera/refchem/v3"
)

// Identity names the structure of a species. Exactly one field must be set.
type Identity = species.Identity

// SourceEntry is the reference data from one source.
type SourceEntry struct {
	Source string
	Entry  *ReferenceDataEntry
}

// ModelEntry is the data computed at one model chemistry.
type ModelEntry struct {
	ModelChemistry string
	Entry          *CalculatedDataEntry
}

// ReferenceSpecies is a species with high level reference data, from one
// or more sources, and data computed at one or more model chemistries, to
// be used in isodesmic reactions. Both collections keep their insertion
// order and have unique keys.
type ReferenceSpecies struct {
	species.Record

	referenceData  []SourceEntry
	calculatedData []ModelEntry

	// Index is the position of the species in its reference set, when known.
	Index               *int
	CASNumber           string
	PreferredReference  string
	DefaultXYZChemistry string
}

type speciesOptions struct {
	referenceData       []SourceEntry
	calculatedData      []ModelEntry
	index               *int
	label               string
	casNumber           string
	preferredReference  string
	symmetryNumber      int
	defaultXYZChemistry string
}

// Option sets an optional field of a ReferenceSpecies.
type Option func(*speciesOptions)

// WithReferenceData sets the reference data of the species, in order.
func WithReferenceData(entries ...SourceEntry) Option {
	return func(o *speciesOptions) { o.referenceData = append(o.referenceData, entries...) }
}

// WithCalculatedData sets the computed data of the species, in order.
func WithCalculatedData(entries ...ModelEntry) Option {
	return func(o *speciesOptions) { o.calculatedData = append(o.calculatedData, entries...) }
}

// WithIndex sets the index of the species in its reference set.
func WithIndex(i int) Option {
	return func(o *speciesOptions) { o.index = &i }
}

// WithLabel sets the label of the species.
func WithLabel(label string) Option {
	return func(o *speciesOptions) { o.label = label }
}

// WithCASNumber sets the CAS registry number of the species.
func WithCASNumber(cas string) Option {
	return func(o *speciesOptions) { o.casNumber = cas }
}

// WithPreferredReference sets the default source of reference data.
func WithPreferredReference(source string) Option {
	return func(o *speciesOptions) { o.preferredReference = source }
}

// WithSymmetryNumber overrides the symmetry number derived from the
// structure. Zero keeps the derived value.
func WithSymmetryNumber(n int) Option {
	return func(o *speciesOptions) { o.symmetryNumber = n }
}

// WithDefaultXYZChemistry sets the model chemistry whose conformer holds
// the reference geometry of the species.
func WithDefaultXYZChemistry(mc string) Option {
	return func(o *speciesOptions) { o.defaultXYZChemistry = mc }
}

// NewReferenceSpecies builds a ReferenceSpecies from its identity and
// options. Every field is validated once, after all options are applied.
func NewReferenceSpecies(id Identity, opts ...Option) (*ReferenceSpecies, error) {
	var o speciesOptions
	for _, opt := range opts {
		opt(&o)
	}
	if n := id.Sources(); n != 1 {
		return nil, newError(ErrValidation, "NewReferenceSpecies", "exactly one of molecule, SMILES, adjacency list or InChI is needed, got %d", n)
	}
	if o.symmetryNumber < 0 {
		return nil, newError(ErrValidation, "NewReferenceSpecies", "negative symmetry number %d", o.symmetryNumber)
	}
	if err := validateReferenceData(o.referenceData); err != nil {
		return nil, errDecorate(err, "NewReferenceSpecies")
	}
	if err := validateCalculatedData(o.calculatedData); err != nil {
		return nil, errDecorate(err, "NewReferenceSpecies")
	}
	rec, err := species.NewRecord(id, o.label)
	if err != nil {
		return nil, newError(ErrValidation, "NewReferenceSpecies", "identity").causedBy(err)
	}
	R := &ReferenceSpecies{
		Record:              *rec,
		referenceData:       append([]SourceEntry{}, o.referenceData...),
		calculatedData:      append([]ModelEntry{}, o.calculatedData...),
		Index:               o.index,
		CASNumber:           o.casNumber,
		PreferredReference:  o.preferredReference,
		DefaultXYZChemistry: o.defaultXYZChemistry,
	}
	if o.symmetryNumber != 0 {
		R.SymmetryNumber = o.symmetryNumber
	}
	return R, nil
}

func validateReferenceData(entries []SourceEntry) error {
	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		if e.Source == "" {
			return newError(ErrValidation, "validateReferenceData", "reference data %d has an empty source name", i)
		}
		if seen[e.Source] {
			return newError(ErrValidation, "validateReferenceData", "source %q given twice", e.Source)
		}
		if e.Entry == nil {
			return newError(ErrValidation, "validateReferenceData", "source %q has no entry", e.Source)
		}
		seen[e.Source] = true
	}
	return nil
}

func validateCalculatedData(entries []ModelEntry) error {
	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		if e.ModelChemistry == "" {
			return newError(ErrValidation, "validateCalculatedData", "calculated data %d has an empty model chemistry", i)
		}
		if seen[e.ModelChemistry] {
			return newError(ErrValidation, "validateCalculatedData", "model chemistry %q given twice", e.ModelChemistry)
		}
		if e.Entry == nil {
			return newError(ErrValidation, "validateCalculatedData", "model chemistry %q has no entry", e.ModelChemistry)
		}
		seen[e.ModelChemistry] = true
	}
	return nil
}

// ReferenceData returns the reference data of R in order. The slice is
// a copy, the entries are shared.
func (R *ReferenceSpecies) ReferenceData() []SourceEntry {
	return append([]SourceEntry{}, R.referenceData...)
}

// CalculatedData returns the computed data of R in order. The slice is
// a copy, the entries are shared.
func (R *ReferenceSpecies) CalculatedData() []ModelEntry {
	return append([]ModelEntry{}, R.calculatedData...)
}

// ReferenceEntry returns the reference data from source, or nil.
func (R *ReferenceSpecies) ReferenceEntry(source string) *ReferenceDataEntry {
	for _, e := range R.referenceData {
		if e.Source == source {
			return e.Entry
		}
	}
	return nil
}

// CalculatedEntry returns the data computed at the model chemistry mc, or nil.
func (R *ReferenceSpecies) CalculatedEntry(mc string) *CalculatedDataEntry {
	for _, e := range R.calculatedData {
		if e.ModelChemistry == mc {
			return e.Entry
		}
	}
	return nil
}

// MergeComputedResult stores the conformer and thermochemistry of r as
// the computed data at the level of theory of r, replacing whatever was
// there for that model chemistry.
func (R *ReferenceSpecies) MergeComputedResult(r *species.Record) error {
	if r == nil {
		return newError(ErrValidation, "MergeComputedResult", "nil result")
	}
	key := r.LevelOfTheory.String()
	if key == "" {
		return newError(ErrValidation, "MergeComputedResult", "result for %s has no level of theory", r)
	}
	entry, err := NewCalculatedDataEntry(r.Conformer, r.ThermoData, nil, nil)
	if err != nil {
		return errDecorate(err, "MergeComputedResult")
	}
	for i, e := range R.calculatedData {
		if e.ModelChemistry == key {
			R.calculatedData[i].Entry = entry
			return nil
		}
	}
	R.calculatedData = append(R.calculatedData, ModelEntry{ModelChemistry: key, Entry: entry})
	return nil
}

// ReferenceEnthalpy is a high level enthalpy of formation and its source.
type ReferenceEnthalpy struct {
	H298   quantity.Plain
	Source string
}

// ResolveReferenceEnthalpy returns the reference H298 of R from source.
// With an empty source the preferred reference is used and, if there is
// none, the source with the smallest positive uncertainty. When no
// uncertainty is positive, the first source is used.
func (R *ReferenceSpecies) ResolveReferenceEnthalpy(source string) (ReferenceEnthalpy, error) {
	if len(R.referenceData) == 0 {
		return ReferenceEnthalpy{}, newError(ErrNoData, "ResolveReferenceEnthalpy", "no reference data for species %s", R)
	}
	chosen := source
	if chosen == "" {
		chosen = R.PreferredReference
	}
	if chosen == "" {
		chosen = R.referenceData[0].Source
		min := h298Uncertainty(R.referenceData[0].Entry)
		if min <= 0 {
			min = math.Inf(1)
		}
		for _, e := range R.referenceData {
			u := h298Uncertainty(e.Entry)
			if u > 0 && u < min {
				min = u
				chosen = e.Source
			}
		}
	}
	entry := R.ReferenceEntry(chosen)
	if entry == nil {
		return ReferenceEnthalpy{}, newError(ErrNotFound, "ResolveReferenceEnthalpy", "source %q not available for species %s", chosen, R)
	}
	if entry.ThermoData() == nil || entry.ThermoData().H298 == nil {
		return ReferenceEnthalpy{}, newError(ErrNoData, "ResolveReferenceEnthalpy", "source %q has no H298 for species %s", chosen, R)
	}
	return ReferenceEnthalpy{H298: entry.ThermoData().H298.Reduce(), Source: chosen}, nil
}

// h298Uncertainty returns the uncertainty of the H298 of e in SI units,
// or 0 when it is not available.
func h298Uncertainty(e *ReferenceDataEntry) float64 {
	if e == nil || e.ThermoData() == nil || e.ThermoData().H298 == nil {
		return 0
	}
	u, err := e.ThermoData().H298.UncertaintySI()
	if err != nil {
		return 0
	}
	return u
}

// ToErrorCancelingSpecies returns the error-canceling species for R with
// the low level data at the model chemistry mc and the high level data
// from source, chosen as in ResolveReferenceEnthalpy.
func (R *ReferenceSpecies) ToErrorCancelingSpecies(mc, source string) (*isodesmic.ErrorCancelingSpecies, error) {
	entry := R.CalculatedEntry(mc)
	if entry == nil {
		return nil, newError(ErrNotFound, "ToErrorCancelingSpecies", "model chemistry %q not available for species %s", mc, R)
	}
	mol, err := chem.FromSMILES(R.SMILES)
	if err != nil {
		return nil, newError(ErrValidation, "ToErrorCancelingSpecies", "SMILES of species %s", R).causedBy(err)
	}
	ref, err := R.ResolveReferenceEnthalpy(source)
	if err != nil {
		return nil, errDecorate(err, "ToErrorCancelingSpecies")
	}
	if entry.ThermoData() == nil || entry.ThermoData().H298 == nil {
		return nil, newError(ErrNoData, "ToErrorCancelingSpecies", "no H298 at %q for species %s", mc, R)
	}
	low := entry.ThermoData().H298.Reduce()
	ecs, err := isodesmic.NewErrorCancelingSpecies(mol, low, mc, ref.H298, ref.Source)
	if err != nil {
		return nil, newError(ErrValidation, "ToErrorCancelingSpecies", "species %s", R).causedBy(err)
	}
	return ecs, nil
}

// Geometry is a set of atomic numbers and coordinates in Å.
type Geometry struct {
	Numbers []int
	Coords  *v3.Matrix
}

// DefaultGeometry returns the geometry of the conformer computed at the
// default XYZ model chemistry of R.
func (R *ReferenceSpecies) DefaultGeometry() (Geometry, error) {
	if R.DefaultXYZChemistry == "" {
		return Geometry{}, newError(ErrNotConfigured, "DefaultGeometry", "no default XYZ model chemistry for species %s", R)
	}
	entry := R.CalculatedEntry(R.DefaultXYZChemistry)
	if entry == nil {
		return Geometry{}, newError(ErrNotFound, "DefaultGeometry", "model chemistry %q not available for species %s", R.DefaultXYZChemistry, R)
	}
	conf := entry.Conformer()
	if conf == nil {
		return Geometry{}, newError(ErrNotFound, "DefaultGeometry", "no conformer at %q for species %s", R.DefaultXYZChemistry, R)
	}
	numbers, err := conf.AtomicNumbers()
	if err != nil {
		return Geometry{}, newError(ErrNotFound, "DefaultGeometry", "atomic numbers of species %s", R).causedBy(err)
	}
	coords, err := conf.CoordinatesSI()
	if err != nil {
		return Geometry{}, newError(ErrNotFound, "DefaultGeometry", "coordinates of species %s", R).causedBy(err)
	}
	if coords.NVecs() != len(numbers) {
		return Geometry{}, newError(ErrValidation, "DefaultGeometry", "%d atomic numbers for %d positions in species %s", len(numbers), coords.NVecs(), R)
	}
	return Geometry{Numbers: numbers, Coords: coords.Scaled(1e10)}, nil
}

// CheckGeometry perceives the bonds of the default geometry of R and
// checks that they connect the same atoms as the structure of R. Bond
// orders are not compared.
func (R *ReferenceSpecies) CheckGeometry() error {
	geo, err := R.DefaultGeometry()
	if err != nil {
		return errDecorate(err, "CheckGeometry")
	}
	mol, err := chem.FromGeometry(geo.Numbers, geo.Coords)
	if err != nil {
		return newError(ErrValidation, "CheckGeometry", "bonds of species %s", R).causedBy(err)
	}
	if R.Molecule == nil || !mol.IsSkeletonIsomorphic(R.Molecule) {
		return newError(ErrValidation, "CheckGeometry", "geometry at %q of species %s has bonds %s", R.DefaultXYZChemistry, R, mol.BondSummary())
	}
	return nil
}

func (R *ReferenceSpecies) String() string {
	if R.Index != nil {
		return fmt.Sprintf("<ReferenceSpecies %s(%d)>", R.SMILES, *R.Index)
	}
	return fmt.Sprintf("<ReferenceSpecies %s>", R.SMILES)
}
