/*
 * database.go, part of refchem.
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
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	chem "github.com/rmera/refchem"
	"github.com/rmera/refchem/isodesmic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultDatabaseDirectory is the root of the reference database when
// no other is given. Reference sets live under its reference_sets
// subdirectory.
const DefaultDatabaseDirectory = "RMG-database/input"

// MainSet is the name of the reference set used when none is given.
const MainSet = "main"

// Database holds reference sets: named, ordered collections of reference
// species. A Database is not safe for concurrent Load calls.
type Database struct {
	dir         string
	logger      *zap.Logger
	metrics     *loadMetrics
	parallelism int

	sets  map[string][]*ReferenceSpecies
	order []string
}

type databaseOptions struct {
	dir         string
	logger      *zap.Logger
	registerer  prometheus.Registerer
	parallelism int
}

// DatabaseOption sets an optional field of a Database.
type DatabaseOption func(*databaseOptions)

// WithDatabaseDirectory sets the root directory of the database.
func WithDatabaseDirectory(dir string) DatabaseOption {
	return func(o *databaseOptions) { o.dir = dir }
}

// WithLogger sets the logger of the database.
func WithLogger(l *zap.Logger) DatabaseOption {
	return func(o *databaseOptions) { o.logger = l }
}

// WithRegisterer registers the load metrics of the database with reg.
func WithRegisterer(reg prometheus.Registerer) DatabaseOption {
	return func(o *databaseOptions) { o.registerer = reg }
}

// WithParallelism sets the number of files parsed at once by Load.
// Values below 1 mean 1.
func WithParallelism(n int) DatabaseOption {
	return func(o *databaseOptions) { o.parallelism = n }
}

// NewDatabase returns an empty Database.
func NewDatabase(opts ...DatabaseOption) *Database {
	o := databaseOptions{dir: DefaultDatabaseDirectory, parallelism: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.parallelism < 1 {
		o.parallelism = 1
	}
	return &Database{
		dir:         o.dir,
		logger:      o.logger,
		metrics:     newLoadMetrics(o.registerer),
		parallelism: o.parallelism,
		sets:        make(map[string][]*ReferenceSpecies),
	}
}

// Directory returns the root directory of D.
func (D *Database) Directory() string { return D.dir }

// acceptedStructure is a structure already in the database, for the
// duplicate check in Load.
type acceptedStructure struct {
	formula string
	mol     *chem.Molecule
	set     string
}

// Load reads the reference sets in paths, each a directory with one
// species record per file. The name of each set is the base name of its
// directory. With no paths, the main set under the database directory is
// read. Species with no reference or calculated data, and species
// isomorphic to one already accepted in this call, are skipped. A set
// replaces any set loaded before under the same name. If a file can't be
// read, Load fails and the set in that path is not assigned.
func (D *Database) Load(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{filepath.Join(D.dir, "reference_sets", MainSet)}
	}
	var accepted []acceptedStructure
	for _, path := range paths {
		set := filepath.Base(path)
		files, err := recordFiles(path)
		if err != nil {
			return errDecorate(err, "Load")
		}
		parsed, err := D.parse(files)
		if err != nil {
			return errDecorate(err, "Load")
		}
		kept := make([]*ReferenceSpecies, 0, len(parsed))
		for i, s := range parsed {
			log := D.logger.With(zap.String("set", set), zap.String("file", filepath.Base(files[i])), zap.String("smiles", s.SMILES))
			if len(s.referenceData) == 0 || len(s.calculatedData) == 0 {
				log.Warn("skipping species without reference or calculated data", zap.String("reason", skipIncomplete))
				D.metrics.skipped.WithLabelValues(skipIncomplete).Inc()
				continue
			}
			formula := s.Molecule.Formula()
			var dup *acceptedStructure
			for j := range accepted {
				if accepted[j].formula == formula && accepted[j].mol.IsIsomorphic(s.Molecule) {
					dup = &accepted[j]
					break
				}
			}
			if dup != nil {
				log.Warn("skipping species isomorphic to one already loaded", zap.String("reason", skipDuplicate),
					zap.String("loaded_in", dup.set))
				D.metrics.skipped.WithLabelValues(skipDuplicate).Inc()
				continue
			}
			accepted = append(accepted, acceptedStructure{formula: formula, mol: s.Molecule, set: set})
			kept = append(kept, s)
			D.metrics.loaded.Inc()
		}
		if _, ok := D.sets[set]; !ok {
			D.order = append(D.order, set)
		}
		D.sets[set] = kept
		D.metrics.sets.Set(float64(len(D.order)))
		D.logger.Info("loaded reference set", zap.String("set", set), zap.Int("species", len(kept)),
			zap.Int("skipped", len(parsed)-len(kept)))
	}
	return nil
}

// parse reads every file in files, with up to D.parallelism at once.
// The species keep the order of files and, on failure, the error for
// the first file in that order is returned.
func (D *Database) parse(files []string) ([]*ReferenceSpecies, error) {
	parsed := make([]*ReferenceSpecies, len(files))
	errs := make([]error, len(files))
	var g errgroup.Group
	g.SetLimit(D.parallelism)
	for i, f := range files {
		g.Go(func() error {
			s := new(ReferenceSpecies)
			if err := s.LoadYAML(f); err != nil {
				errs[i] = err
				return err
			}
			parsed[i] = s
			return nil
		})
	}
	if g.Wait() != nil {
		for _, err := range errs {
			if err != nil {
				return nil, errDecorate(err, "parse")
			}
		}
	}
	return parsed, nil
}

// isRecordFile returns true if name looks like a species record: a
// .yml or .yaml file, maybe compressed with gzip or zstd.
func isRecordFile(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	name = strings.TrimSuffix(strings.TrimSuffix(name, ".gz"), ".zst")
	ext := filepath.Ext(name)
	return ext == ".yml" || ext == ".yaml"
}

// fileIndex returns the number before the first dot of name, if any.
func fileIndex(name string) (int, bool) {
	stem, _, _ := strings.Cut(name, ".")
	i, err := strconv.Atoi(stem)
	return i, err == nil
}

// recordFiles returns the record files in dir, ordered by their numeric
// index and then by name. Files with no index go last.
func recordFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, newError(ErrNotFound, "recordFiles", "reference set %s", dir).causedBy(err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || !isRecordFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Slice(names, func(i, j int) bool {
		a, aok := fileIndex(names[i])
		b, bok := fileIndex(names[j])
		switch {
		case aok && bok && a != b:
			return a < b
		case aok != bok:
			return aok
		}
		return names[i] < names[j]
	})
	ret := make([]string, len(names))
	for i, n := range names {
		ret[i] = filepath.Join(dir, n)
	}
	return ret, nil
}

// Sets returns the names of the loaded sets, in load order.
func (D *Database) Sets() []string {
	return append([]string{}, D.order...)
}

// Set returns the species of the set name, in file order.
func (D *Database) Set(name string) ([]*ReferenceSpecies, error) {
	s, ok := D.sets[name]
	if !ok {
		return nil, newError(ErrNotFound, "Set", "reference set %q not loaded", name)
	}
	return append([]*ReferenceSpecies{}, s...), nil
}

// selectSets returns the species of the named sets, or of every set in
// load order if none is named.
func (D *Database) selectSets(caller string, sets []string) ([]*ReferenceSpecies, error) {
	if len(sets) == 0 {
		sets = D.order
	}
	var ret []*ReferenceSpecies
	for _, name := range sets {
		s, ok := D.sets[name]
		if !ok {
			return nil, newError(ErrNotFound, caller, "reference set %q not loaded", name)
		}
		ret = append(ret, s...)
	}
	return ret, nil
}

// ReferenceSpeciesFor returns the species in sets with data computed at
// the model chemistry mc and some reference data. All sets are searched
// if none is given.
func (D *Database) ReferenceSpeciesFor(mc string, sets ...string) ([]*ReferenceSpecies, error) {
	all, err := D.selectSets("ReferenceSpeciesFor", sets)
	if err != nil {
		return nil, err
	}
	var ret []*ReferenceSpecies
	for _, s := range all {
		if s.CalculatedEntry(mc) != nil && len(s.referenceData) > 0 {
			ret = append(ret, s)
		}
	}
	return ret, nil
}

// ExtractModelChemistry returns, as error-canceling species, the species
// that ReferenceSpeciesFor returns. Each uses its default reference source.
func (D *Database) ExtractModelChemistry(mc string, sets ...string) ([]*isodesmic.ErrorCancelingSpecies, error) {
	species, err := D.ReferenceSpeciesFor(mc, sets...)
	if err != nil {
		return nil, errDecorate(err, "ExtractModelChemistry")
	}
	ret := make([]*isodesmic.ErrorCancelingSpecies, 0, len(species))
	for _, s := range species {
		ecs, err := s.ToErrorCancelingSpecies(mc, "")
		if err != nil {
			return nil, errDecorate(err, "ExtractModelChemistry")
		}
		ret = append(ret, ecs)
	}
	return ret, nil
}

// ListAvailableChemistry returns the model chemistries with data for
// some species in sets, sorted. All sets are searched if none is given.
func (D *Database) ListAvailableChemistry(sets ...string) ([]string, error) {
	all, err := D.selectSets("ListAvailableChemistry", sets)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var ret []string
	for _, s := range all {
		for _, e := range s.calculatedData {
			if !seen[e.ModelChemistry] {
				seen[e.ModelChemistry] = true
				ret = append(ret, e.ModelChemistry)
			}
		}
	}
	sort.Strings(ret)
	return ret, nil
}

// SpeciesByIndex returns the species of set with the given indices, in
// the order requested. An empty set name means the main set.
func (D *Database) SpeciesByIndex(set string, indices ...int) ([]*ReferenceSpecies, error) {
	if set == "" {
		set = MainSet
	}
	all, err := D.selectSets("SpeciesByIndex", []string{set})
	if err != nil {
		return nil, err
	}
	ret := make([]*ReferenceSpecies, 0, len(indices))
	for _, i := range indices {
		var found *ReferenceSpecies
		for _, s := range all {
			if s.Index != nil && *s.Index == i {
				found = s
				break
			}
		}
		if found == nil {
			return nil, newError(ErrNotFound, "SpeciesByIndex", "no species with index %d in reference set %q", i, set)
		}
		ret = append(ret, found)
	}
	return ret, nil
}

// SpeciesByLabel returns the species of set with the given labels, in
// the order requested. An empty set name means the main set.
func (D *Database) SpeciesByLabel(set string, labels ...string) ([]*ReferenceSpecies, error) {
	if set == "" {
		set = MainSet
	}
	all, err := D.selectSets("SpeciesByLabel", []string{set})
	if err != nil {
		return nil, err
	}
	ret := make([]*ReferenceSpecies, 0, len(labels))
	for _, l := range labels {
		var found *ReferenceSpecies
		for _, s := range all {
			if s.Label == l {
				found = s
				break
			}
		}
		if found == nil {
			return nil, newError(ErrNotFound, "SpeciesByLabel", "no species with label %q in reference set %q", l, set)
		}
		ret = append(ret, found)
	}
	return ret, nil
}

// ParseIndices converts the strings in s to species indices.
func ParseIndices(s []string) ([]int, error) {
	ret := make([]int, 0, len(s))
	for _, v := range s {
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, newError(ErrValidation, "ParseIndices", "index %q is not an integer", v).causedBy(err)
		}
		ret = append(ret, i)
	}
	return ret, nil
}
