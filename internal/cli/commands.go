/*
 * commands.go, part of refchem.
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

package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"text/tabwriter"

	chem "github.com/rmera/refchem"
	"github.com/rmera/refchem/quantity"
	"github.com/rmera/refchem/reference"
	"github.com/rmera/refchem/sqlexport"
	"github.com/spf13/cobra"
)

// firstSet returns the set used by the lookup commands: the first one
// configured, or the main set.
func firstSet(cmd *cobra.Command) string {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil || len(cliCtx.Config.Database.Sets) == 0 {
		return reference.MainSet
	}
	return filepath.Base(cliCtx.Config.Database.Sets[0])
}

func newChemistriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chemistries",
		Short: "List the model chemistries with computed data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(cmd)
			if err != nil {
				return err
			}
			chems, err := db.ListAvailableChemistry()
			if err != nil {
				return err
			}
			for _, c := range chems {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}

// inUnits renders p in units, or as stored when units is empty.
func inUnits(p quantity.Plain, units string) (string, error) {
	if units == "" {
		return p.String(), nil
	}
	v, err := quantity.Convert(p.Value, p.Units, units)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%.2f %s", v, units), nil
}

func newExtractCmd() *cobra.Command {
	var source, units string
	cmd := &cobra.Command{
		Use:   "extract <model-chemistry>",
		Short: "Print the error-canceling species available at a model chemistry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(cmd)
			if err != nil {
				return err
			}
			species, err := db.ReferenceSpeciesFor(args[0])
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "LABEL\tSMILES\tLOW H298\tHIGH H298\tSOURCE")
			for _, s := range species {
				ecs, err := s.ToErrorCancelingSpecies(args[0], source)
				if err != nil {
					return err
				}
				low, err := inUnits(ecs.LowLevelHf298, units)
				if err != nil {
					return err
				}
				high, err := inUnits(ecs.HighLevelHf298, units)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.Label, s.SMILES, low, high, ecs.Source)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "reference source to use instead of each species' default")
	cmd.Flags().StringVar(&units, "units", "", "print the enthalpies in these units, e.g. kcal/mol")
	return cmd
}

func newShowCmd() *cobra.Command {
	var indices, labels []string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print species records by index or label",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(indices) == 0 && len(labels) == 0 {
				return errors.New("either --index or --label must be provided")
			}
			db, err := openDatabase(cmd)
			if err != nil {
				return err
			}
			set := firstSet(cmd)
			var species []*reference.ReferenceSpecies
			if len(indices) > 0 {
				idx, err := reference.ParseIndices(indices)
				if err != nil {
					return err
				}
				found, err := db.SpeciesByIndex(set, idx...)
				if err != nil {
					return err
				}
				species = append(species, found...)
			}
			if len(labels) > 0 {
				found, err := db.SpeciesByLabel(set, labels...)
				if err != nil {
					return err
				}
				species = append(species, found...)
			}
			for i, s := range species {
				data, err := s.EncodeYAML()
				if err != nil {
					return err
				}
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "---")
				}
				cmd.OutOrStdout().Write(data)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&indices, "index", nil, "species index (repeatable)")
	cmd.Flags().StringSliceVar(&labels, "label", nil, "species label (repeatable)")
	return cmd
}

func newXYZCmd() *cobra.Command {
	var index int
	cmd := &cobra.Command{
		Use:   "xyz",
		Short: "Write the default geometry of a species in XYZ format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(cmd)
			if err != nil {
				return err
			}
			found, err := db.SpeciesByIndex(firstSet(cmd), index)
			if err != nil {
				return err
			}
			s := found[0]
			geo, err := s.DefaultGeometry()
			if err != nil {
				return err
			}
			symbols := make([]string, len(geo.Numbers))
			for i, z := range geo.Numbers {
				if symbols[i], err = chem.SymbolFromNumber(z); err != nil {
					return err
				}
			}
			return chem.XYZWrite(cmd.OutOrStdout(), symbols, geo.Coords, fmt.Sprintf("%s %s", s.SMILES, s.DefaultXYZChemistry))
		},
	}
	cmd.Flags().IntVar(&index, "index", 0, "species index")
	cmd.MarkFlagRequired("index")
	return cmd
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that the default geometry of every species matches its structure",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(cmd)
			if err != nil {
				return err
			}
			var bad, skipped int
			for _, set := range db.Sets() {
				species, err := db.Set(set)
				if err != nil {
					return err
				}
				for _, s := range species {
					err := s.CheckGeometry()
					switch {
					case err == nil:
					case errors.Is(err, reference.ErrNotConfigured), errors.Is(err, reference.ErrNotFound):
						skipped++
					default:
						bad++
						fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%v\n", set, s, err)
					}
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d mismatched, %d without geometry\n", bad, skipped)
			if bad > 0 {
				return fmt.Errorf("%d species have geometries that do not match their structure", bad)
			}
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the loaded reference sets to a SQLite database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(cmd)
			if err != nil {
				return err
			}
			sqlDB, err := sqlexport.Open(out)
			if err != nil {
				return err
			}
			defer sqlDB.Close()
			return sqlexport.Export(cmd.Context(), sqlDB, db)
		},
	}
	cmd.Flags().StringVar(&out, "sqlite", "", "output SQLite database")
	cmd.MarkFlagRequired("sqlite")
	return cmd
}
