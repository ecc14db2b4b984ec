/*
 * codec.go, part of refchem.
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
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/rmera/refchem/chemyaml"
	"github.com/rmera/refchem/quantity"
	"github.com/rmera/refchem/statmech"
	"github.com/rmera/refchem/thermo"
	"gopkg.in/yaml.v3"
)

// classes knows every class tag that may appear in a species record.
var classes *chemyaml.Registry

func init() {
	classes = newRegistry()
}

func newRegistry() *chemyaml.Registry {
	r := chemyaml.NewRegistry()
	quantity.Register(r)
	thermo.Register(r)
	statmech.Register(r)
	Register(r)
	return r
}

// Register adds the classes of this package to r.
func Register(r *chemyaml.Registry) {
	r.Register(SpeciesClass, func(n *yaml.Node) (interface{}, error) {
		s := new(ReferenceSpecies)
		return s, s.UnmarshalYAML(n)
	})
	r.Register(ReferenceEntryClass, func(n *yaml.Node) (interface{}, error) {
		e := new(ReferenceDataEntry)
		return e, e.UnmarshalYAML(n)
	})
	r.Register(CalculatedEntryClass, func(n *yaml.Node) (interface{}, error) {
		e := new(CalculatedDataEntry)
		return e, e.UnmarshalYAML(n)
	})
}

// Classes returns the class tags a species record may contain, sorted.
func Classes() []string {
	return classes.Classes()
}

type speciesRecord struct {
	Label               string           `yaml:"label,omitempty"`
	SMILES              string           `yaml:"smiles,omitempty"`
	AdjacencyList       string           `yaml:"adjacency_list,omitempty"`
	InChI               string           `yaml:"inchi,omitempty"`
	Formula             string           `yaml:"formula,omitempty"`
	MolecularWeight     *quantity.Scalar `yaml:"molecular_weight,omitempty"`
	SymmetryNumber      int              `yaml:"symmetry_number,omitempty"`
	Index               *int             `yaml:"index,omitempty"`
	CASNumber           string           `yaml:"cas_number,omitempty"`
	PreferredReference  string           `yaml:"preferred_reference,omitempty"`
	DefaultXYZChemistry string           `yaml:"default_xyz_chemistry,omitempty"`
	ReferenceData       yaml.Node        `yaml:"reference_data,omitempty"`
	CalculatedData      yaml.Node        `yaml:"calculated_data,omitempty"`
}

// DecodeYAML fills R from a ReferenceSpecies record.
func (R *ReferenceSpecies) DecodeYAML(data []byte) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return newError(ErrValidation, "DecodeYAML", "malformed record").causedBy(err)
	}
	return errDecorate(R.decode(&doc), "DecodeYAML")
}

// UnmarshalYAML fills R from a ReferenceSpecies record.
func (R *ReferenceSpecies) UnmarshalYAML(n *yaml.Node) error {
	return errDecorate(R.decode(n), "ReferenceSpecies.UnmarshalYAML")
}

func (R *ReferenceSpecies) decode(n *yaml.Node) error {
	class, err := chemyaml.ClassOf(n)
	if err != nil {
		return newError(ErrSchemaMismatch, "decode", "not a %s record", SpeciesClass).causedBy(err)
	}
	if class != SpeciesClass {
		return newError(ErrSchemaMismatch, "decode", "expected class %q, got %q", SpeciesClass, class)
	}
	if err := classes.Validate(n); err != nil {
		return decodeError("decode", "species record", err)
	}
	m, err := chemyaml.Expect(n, SpeciesClass)
	if err != nil {
		return newError(ErrSchemaMismatch, "decode", "species record").causedBy(err)
	}
	var rec speciesRecord
	if err := m.Decode(&rec); err != nil {
		return decodeError("decode", "species record", err)
	}
	refs, err := decodeReferenceData(&rec.ReferenceData)
	if err != nil {
		return errDecorate(err, "decode")
	}
	calcs, err := decodeCalculatedData(&rec.CalculatedData)
	if err != nil {
		return errDecorate(err, "decode")
	}
	var id Identity
	switch {
	case rec.AdjacencyList != "":
		id.AdjacencyList = rec.AdjacencyList
	case rec.SMILES != "":
		id.SMILES = rec.SMILES
	default:
		id.InChI = rec.InChI
	}
	opts := []Option{WithReferenceData(refs...), WithCalculatedData(calcs...), WithLabel(rec.Label),
		WithCASNumber(rec.CASNumber), WithPreferredReference(rec.PreferredReference),
		WithSymmetryNumber(rec.SymmetryNumber), WithDefaultXYZChemistry(rec.DefaultXYZChemistry)}
	if rec.Index != nil {
		opts = append(opts, WithIndex(*rec.Index))
	}
	s, err := NewReferenceSpecies(id, opts...)
	if err != nil {
		return errDecorate(err, "decode")
	}
	//the stored values win over the ones derived from the structure.
	if rec.SMILES != "" {
		s.SMILES = rec.SMILES
	}
	if rec.InChI != "" {
		s.InChI = rec.InChI
	}
	if rec.Formula != "" {
		s.Formula = rec.Formula
	}
	if rec.MolecularWeight != nil {
		s.MolecularWeight = rec.MolecularWeight
	}
	*R = *s
	return nil
}

// entryPairs returns the key and value nodes of the mapping n.
func entryPairs(n *yaml.Node, field string) ([][2]*yaml.Node, error) {
	if n.Kind == 0 || n.Tag == "!!null" {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, newError(ErrValidation, "entryPairs", "%s must be a mapping (line %d)", field, n.Line)
	}
	ret := make([][2]*yaml.Node, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode || strings.TrimSpace(k.Value) == "" {
			return nil, newError(ErrValidation, "entryPairs", "empty key in %s (line %d)", field, k.Line)
		}
		if v.Tag == "!!null" {
			return nil, newError(ErrValidation, "entryPairs", "%s %q has no entry", field, k.Value)
		}
		ret = append(ret, [2]*yaml.Node{k, v})
	}
	return ret, nil
}

func decodeReferenceData(n *yaml.Node) ([]SourceEntry, error) {
	pairs, err := entryPairs(n, "reference_data")
	if err != nil {
		return nil, errDecorate(err, "decodeReferenceData")
	}
	ret := make([]SourceEntry, 0, len(pairs))
	for _, p := range pairs {
		e := new(ReferenceDataEntry)
		if err := p[1].Decode(e); err != nil {
			return nil, decodeError("decodeReferenceData", "source "+p[0].Value, err)
		}
		ret = append(ret, SourceEntry{Source: p[0].Value, Entry: e})
	}
	return ret, nil
}

func decodeCalculatedData(n *yaml.Node) ([]ModelEntry, error) {
	pairs, err := entryPairs(n, "calculated_data")
	if err != nil {
		return nil, errDecorate(err, "decodeCalculatedData")
	}
	ret := make([]ModelEntry, 0, len(pairs))
	for _, p := range pairs {
		e := new(CalculatedDataEntry)
		if err := p[1].Decode(e); err != nil {
			return nil, decodeError("decodeCalculatedData", "model chemistry "+p[0].Value, err)
		}
		ret = append(ret, ModelEntry{ModelChemistry: p[0].Value, Entry: e})
	}
	return ret, nil
}

func mapping() yaml.Node {
	return yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func appendEntry(m *yaml.Node, key string, e yaml.Marshaler) error {
	v, err := e.MarshalYAML()
	if err != nil {
		return err
	}
	k := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
	val, ok := v.(*yaml.Node)
	if !ok {
		val = new(yaml.Node)
		if err := val.Encode(v); err != nil {
			return err
		}
	}
	m.Content = append(m.Content, k, val)
	return nil
}

// MarshalYAML writes R as a ReferenceSpecies record.
func (R *ReferenceSpecies) MarshalYAML() (interface{}, error) {
	rec := speciesRecord{
		Label:               R.Label,
		SMILES:              R.SMILES,
		AdjacencyList:       R.AdjacencyList,
		InChI:               R.InChI,
		Formula:             R.Formula,
		MolecularWeight:     R.MolecularWeight,
		SymmetryNumber:      R.SymmetryNumber,
		Index:               R.Index,
		CASNumber:           R.CASNumber,
		PreferredReference:  R.PreferredReference,
		DefaultXYZChemistry: R.DefaultXYZChemistry,
		ReferenceData:       mapping(),
		CalculatedData:      mapping(),
	}
	for _, e := range R.referenceData {
		if err := appendEntry(&rec.ReferenceData, e.Source, e.Entry); err != nil {
			return nil, errDecorate(err, "MarshalYAML")
		}
	}
	for _, e := range R.calculatedData {
		if err := appendEntry(&rec.CalculatedData, e.ModelChemistry, e.Entry); err != nil {
			return nil, errDecorate(err, "MarshalYAML")
		}
	}
	return chemyaml.Tagged(SpeciesClass, rec)
}

// EncodeYAML returns R as a ReferenceSpecies record.
func (R *ReferenceSpecies) EncodeYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(R); err != nil {
		return nil, newError(ErrValidation, "EncodeYAML", "species %s", R).causedBy(err)
	}
	if err := enc.Close(); err != nil {
		return nil, newError(ErrValidation, "EncodeYAML", "species %s", R).causedBy(err)
	}
	return buf.Bytes(), nil
}

// LoadYAML fills R from the record in the file path. Files ending in
// .gz or .zst are decompressed.
func (R *ReferenceSpecies) LoadYAML(path string) error {
	data, err := readRecordFile(path)
	if err != nil {
		return errDecorate(err, "LoadYAML")
	}
	if err := R.DecodeYAML(data); err != nil {
		return newError(errKind(err), "LoadYAML", "file %s", path).causedBy(err)
	}
	return nil
}

// SaveYAML writes R to the file path, compressed if the name ends in
// .gz or .zst.
func (R *ReferenceSpecies) SaveYAML(path string) error {
	data, err := R.EncodeYAML()
	if err != nil {
		return errDecorate(err, "SaveYAML")
	}
	return errDecorate(writeRecordFile(path, data), "SaveYAML")
}

// errKind returns the sentinel wrapped by err, ErrValidation if none is.
func errKind(err error) error {
	if e, ok := err.(*Error); ok {
		return e.kind
	}
	return ErrValidation
}

func readRecordFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newError(ErrNotFound, "readRecordFile", "file %s", path).causedBy(err)
	}
	defer f.Close()
	var r io.Reader = f
	switch filepath.Ext(path) {
	case ".gz":
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, newError(ErrValidation, "readRecordFile", "gzip file %s", path).causedBy(err)
		}
		defer gz.Close()
		r = gz
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, newError(ErrValidation, "readRecordFile", "zstd file %s", path).causedBy(err)
		}
		defer zr.Close()
		r = zr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, newError(ErrValidation, "readRecordFile", "file %s", path).causedBy(err)
	}
	return data, nil
}

func writeRecordFile(path string, data []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return newError(ErrValidation, "writeRecordFile", "file %s", path).causedBy(err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = newError(ErrValidation, "writeRecordFile", "file %s", path).causedBy(cerr)
		}
	}()
	var w io.WriteCloser
	switch filepath.Ext(path) {
	case ".gz":
		w = gzip.NewWriter(f)
	case ".zst":
		zw, err := zstd.NewWriter(f)
		if err != nil {
			return newError(ErrValidation, "writeRecordFile", "zstd file %s", path).causedBy(err)
		}
		w = zw
	default:
		_, err = f.Write(data)
		if err != nil {
			return newError(ErrValidation, "writeRecordFile", "file %s", path).causedBy(err)
		}
		return nil
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return newError(ErrValidation, "writeRecordFile", "file %s", path).causedBy(err)
	}
	if err := w.Close(); err != nil {
		return newError(ErrValidation, "writeRecordFile", "file %s", path).causedBy(err)
	}
	return nil
}
