/*
 * chemyaml_test.go, part of refchem.
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

package chemyaml

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func parse(t *testing.T, s string) *yaml.Node {
	t.Helper()
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(s), &doc))
	return doc.Content[0]
}

type point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func testRegistry() *Registry {
	r := NewRegistry()
	r.Register("Point", func(n *yaml.Node) (interface{}, error) {
		m, err := Expect(n, "Point")
		if err != nil {
			return nil, err
		}
		var p point
		err = m.Decode(&p)
		return p, err
	})
	r.Register("Box", func(n *yaml.Node) (interface{}, error) { return nil, nil })
	return r
}

func TestClassOf(t *testing.T) {
	c, err := ClassOf(parse(t, "class: Point\nx: 1\n"))
	require.NoError(t, err)
	assert.Equal(t, "Point", c)

	_, err = ClassOf(parse(t, "x: 1\n"))
	assert.True(t, errors.Is(err, ErrMissingClass))

	_, err = ClassOf(parse(t, "- 1\n- 2\n"))
	assert.True(t, errors.Is(err, ErrNotMapping))
}

func TestExpect(t *testing.T) {
	n := parse(t, "x: 1\nclass: Point\ny: 2\n")
	m, err := Expect(n, "Point")
	require.NoError(t, err)
	assert.Len(t, m.Content, 4)
	assert.Len(t, n.Content, 6, "Expect must not modify its input")

	_, err = Expect(n, "Box")
	assert.True(t, errors.Is(err, ErrClassMismatch))
	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, 1, e.Line())
	assert.Contains(t, e.Decorate(""), "Expect")
}

func TestRegistryDecode(t *testing.T) {
	r := testRegistry()
	v, err := r.Decode(parse(t, "class: Point\nx: 1.5\ny: -2\n"))
	require.NoError(t, err)
	assert.Equal(t, point{1.5, -2}, v)

	_, err = r.Decode(parse(t, "class: Circle\n"))
	assert.True(t, errors.Is(err, ErrUnknownClass))
	assert.Equal(t, []string{"Box", "Point"}, r.Classes())
}

func TestRegistryValidate(t *testing.T) {
	r := testRegistry()
	good := parse(t, `
class: Box
corners:
  - {class: Point, x: 0, y: 0}
  - {class: Point, x: 1, y: 1}
meta:
  note: untagged mappings are fine
`)
	assert.NoError(t, r.Validate(good))

	bad := parse(t, `
class: Box
corners:
  - {class: Point, x: 0, y: 0}
  - {class: Triangle}
`)
	err := r.Validate(bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownClass))
	assert.Contains(t, err.Error(), "Triangle")
}

func TestRegisterTwicePanics(t *testing.T) {
	r := testRegistry()
	assert.Panics(t, func() { r.Register("Point", nil) })
}

func TestTagged(t *testing.T) {
	n, err := Tagged("Point", point{1, 2})
	require.NoError(t, err)
	out, err := yaml.Marshal(Flow(n))
	require.NoError(t, err)
	// y is a YAML 1.1 boolean, so the encoder quotes it
	assert.Equal(t, "{class: Point, x: 1, \"y\": 2}\n", string(out))

	_, err = Tagged("Number", 3)
	assert.True(t, errors.Is(err, ErrNotMapping))
}
