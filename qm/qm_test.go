/*
 * qm_test.go, part of refchem.
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

package qm

import (
	"errors"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParse(Te *testing.T) {
	cases := map[string]ModelChemistry{
		"wb97m-v_def2-tzvpd":          {Method: "wb97m-v", Basis: "def2-tzvpd"},
		"  B3LYP_6-31G(d) ":           {Method: "b3lyp", Basis: "6-31g(d)"},
		"cbs-qb3":                     {Method: "cbs-qb3"},
		"ccsd(t)-f12_cc-pvtz-f12_x2c": {Method: "ccsd(t)-f12", Basis: "cc-pvtz-f12_x2c"},
	}
	for key, want := range cases {
		got, err := Parse(key)
		if err != nil {
			Te.Fatal(err)
		}
		if got != want {
			Te.Errorf("%q: want %+v, got %+v", key, want, got)
		}
	}
	for _, bad := range []string{"", "   ", "_def2-svp"} {
		if _, err := Parse(bad); !errors.Is(err, ErrEmpty) {
			Te.Errorf("%q: expected ErrEmpty, got %v", bad, err)
		}
	}
}

func TestString(Te *testing.T) {
	mc := ModelChemistry{Method: "wB97M-V", Basis: "def2-TZVPD"}
	if mc.String() != "wb97m-v_def2-tzvpd" {
		Te.Errorf("unexpected key %s", mc)
	}
	if (ModelChemistry{}).String() != "" || !(ModelChemistry{}).IsZero() {
		Te.Error("the zero value should have an empty key")
	}
	back, err := Parse(mc.String())
	if err != nil || back.String() != mc.String() {
		Te.Errorf("round trip failed: %v %v", back, err)
	}
}

func TestYAML(Te *testing.T) {
	type rec struct {
		LOT ModelChemistry `yaml:"level_of_theory"`
	}
	out, err := yaml.Marshal(rec{ModelChemistry{Method: "m06-2x", Basis: "cc-pvtz"}})
	if err != nil {
		Te.Fatal(err)
	}
	if string(out) != "level_of_theory: m06-2x_cc-pvtz\n" {
		Te.Errorf("unexpected YAML %q", out)
	}
	var r rec
	if err := yaml.Unmarshal(out, &r); err != nil {
		Te.Fatal(err)
	}
	if r.LOT.Method != "m06-2x" || r.LOT.Basis != "cc-pvtz" {
		Te.Errorf("bad decode %+v", r.LOT)
	}
	if err := yaml.Unmarshal([]byte("level_of_theory: \"\"\n"), &r); !errors.Is(err, ErrEmpty) {
		Te.Errorf("expected ErrEmpty, got %v", err)
	}
}
