/*
 * files.go, part of refchem.
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

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	v3 "github.com/rmera/refchem/v3"
)

// XYZRead reads an xyz file from r. It returns the element symbols, the
// coordinates and the comment line.
func XYZRead(r io.Reader) ([]string, *v3.Matrix, string, error) {
	xyz := bufio.NewScanner(r)
	if !xyz.Scan() {
		return nil, nil, "", newCError(ErrParse, "XYZRead", "Ill formatted XYZ file: empty input")
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(xyz.Text()))
	if err != nil || natoms < 1 {
		return nil, nil, "", newCError(ErrParse, "XYZRead", "Ill formatted XYZ file: bad atom count %q", xyz.Text())
	}
	var comment string
	if xyz.Scan() {
		comment = strings.TrimSpace(xyz.Text())
	}
	symbols := make([]string, 0, natoms)
	coords := make([]float64, 0, natoms*3)
	for i := 0; i < natoms; i++ {
		if !xyz.Scan() {
			return nil, nil, "", newCError(ErrParse, "XYZRead", "expected %d atoms, found %d", natoms, i)
		}
		fields := strings.Fields(xyz.Text())
		if len(fields) < 4 {
			return nil, nil, "", newCError(ErrParse, "XYZRead", "Line number %d ill formed", i+3)
		}
		symbols = append(symbols, fields[0])
		for _, f := range fields[1:4] {
			c, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, nil, "", newCError(ErrParse, "XYZRead", "Line number %d: %s", i+3, err)
			}
			coords = append(coords, c)
		}
	}
	if err := xyz.Err(); err != nil {
		return nil, nil, "", err
	}
	mcoords, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, nil, "", err
	}
	return symbols, mcoords, comment, nil
}

// XYZWrite writes the symbols and coordinates (in Å) to out in XYZ format,
// with comment as the second line.
func XYZWrite(out io.Writer, symbols []string, coords *v3.Matrix, comment string) error {
	if len(symbols) != coords.NVecs() {
		return newCError(ErrParse, "XYZWrite", "%d symbols for %d positions", len(symbols), coords.NVecs())
	}
	if _, err := fmt.Fprintf(out, "%-4d\n%s\n", len(symbols), strings.ReplaceAll(comment, "\n", " ")); err != nil {
		return err
	}
	for i, s := range symbols {
		c := coords.Vec(i)
		if _, err := fmt.Fprintf(out, "%-2s  %12.6f%12.6f%12.6f \n", s, c[0], c[1], c[2]); err != nil {
			return err
		}
	}
	return nil
}
