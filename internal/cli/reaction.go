/*
 * reaction.go, part of refchem.
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
	"fmt"
	"os"
	"strconv"
	"strings"

	chem "github.com/rmera/refchem"
	"github.com/rmera/refchem/isodesmic"
	"github.com/rmera/refchem/quantity"
	"github.com/spf13/cobra"
)

func newIdentifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "identify <file.xyz>",
		Short: "Find the species whose structure matches the geometry in an XYZ file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			symbols, coords, _, err := chem.XYZRead(f)
			if err != nil {
				return err
			}
			numbers := make([]int, len(symbols))
			for i, s := range symbols {
				if numbers[i] = chem.AtomicNumber(s); numbers[i] == 0 {
					return fmt.Errorf("unknown element %q in %s", s, args[0])
				}
			}
			mol, err := chem.FromGeometry(numbers, coords)
			if err != nil {
				return err
			}
			db, err := openDatabase(cmd)
			if err != nil {
				return err
			}
			var found int
			for _, set := range db.Sets() {
				species, err := db.Set(set)
				if err != nil {
					return err
				}
				for _, s := range species {
					if s.Molecule.IsSkeletonIsomorphic(mol) {
						fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", set, s, s.Label)
						found++
					}
				}
			}
			if found == 0 {
				return fmt.Errorf("no species matches %s (%s)", args[0], mol.BondSummary())
			}
			return nil
		},
	}
}

// parseTerm splits a label=coefficient reaction term.
func parseTerm(term string) (string, int, error) {
	i := strings.LastIndex(term, "=")
	if i <= 0 {
		return "", 0, fmt.Errorf("reaction term %q is not label=coefficient", term)
	}
	nu, err := strconv.Atoi(strings.TrimSpace(term[i+1:]))
	if err != nil {
		return "", 0, fmt.Errorf("reaction term %q: %w", term, err)
	}
	return strings.TrimSpace(term[:i]), nu, nil
}

func newEstimateCmd() *cobra.Command {
	var target, lowUnits, units string
	var low float64
	var terms []string
	cmd := &cobra.Command{
		Use:   "estimate <model-chemistry>",
		Short: "Estimate the enthalpy of formation of a target species from an error-canceling reaction",
		Long: `Estimate the enthalpy of formation of a target species from an error-canceling reaction.
The target, with its low level H298 at the model chemistry, is the reactant with
coefficient -1. Every --ref term names a reference species by label and its
coefficient: positive for products, negative for reactants.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mc := args[0]
			mol, err := chem.FromSMILES(target)
			if err != nil {
				return err
			}
			tgt, err := isodesmic.NewErrorCancelingSpecies(mol, quantity.Plain{Value: low, Units: lowUnits}, mc, quantity.Plain{}, "")
			if err != nil {
				return err
			}
			db, err := openDatabase(cmd)
			if err != nil {
				return err
			}
			set := firstSet(cmd)
			species := make(map[*isodesmic.ErrorCancelingSpecies]int, len(terms))
			for _, term := range terms {
				label, nu, err := parseTerm(term)
				if err != nil {
					return err
				}
				found, err := db.SpeciesByLabel(set, label)
				if err != nil {
					return err
				}
				ecs, err := found[0].ToErrorCancelingSpecies(mc, "")
				if err != nil {
					return err
				}
				species[ecs] = nu
			}
			rxn, err := isodesmic.NewReaction(tgt, species)
			if err != nil {
				return err
			}
			h, err := rxn.TargetHf298()
			if err != nil {
				return err
			}
			hs, err := inUnits(h, units)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rxn)
			fmt.Fprintf(cmd.OutOrStdout(), "Hf298(%s) = %s\n", target, hs)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&target, "target", "", "SMILES of the target species")
	f.Float64Var(&low, "low", 0, "low level H298 of the target at the model chemistry")
	f.StringVar(&lowUnits, "low-units", "kJ/mol", "units of --low")
	f.StringArrayVar(&terms, "ref", nil, "reference species as label=coefficient (repeatable)")
	f.StringVar(&units, "units", "kJ/mol", "units of the estimate")
	cmd.MarkFlagRequired("target")
	cmd.MarkFlagRequired("low")
	cmd.MarkFlagRequired("ref")
	return cmd
}
