/*
 * chemyaml.go, part of refchem.
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

// Package chemyaml implements the class-tagged YAML records used to
// persist reference species. Every record is a mapping whose "class" key
// names its type, and a Registry dispatches tagged nodes to decoders.
package chemyaml

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// ClassKey is the mapping key that carries the class tag of a record.
const ClassKey = "class"

// DecodeFunc builds a value of a given class from its (untagged) node.
type DecodeFunc func(n *yaml.Node) (interface{}, error)

// Registry maps class tags to decoder functions. The zero value is not
// usable, use NewRegistry.
type Registry struct {
	decoders map[string]DecodeFunc
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]DecodeFunc)}
}

// Register adds a decoder for class. Registering the same class twice
// is a programming error, and panics.
func (r *Registry) Register(class string, f DecodeFunc) {
	if _, ok := r.decoders[class]; ok {
		panic(fmt.Sprintf("chemyaml: class %q registered twice", class))
	}
	r.decoders[class] = f
}

// Merge adds every class of o to r.
func (r *Registry) Merge(o *Registry) {
	for k, v := range o.decoders {
		r.Register(k, v)
	}
}

// Known reports whether class has a decoder in r.
func (r *Registry) Known(class string) bool {
	_, ok := r.decoders[class]
	return ok
}

// Classes returns the registered class tags, sorted.
func (r *Registry) Classes() []string {
	ret := make([]string, 0, len(r.decoders))
	for k := range r.decoders {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// Decode dispatches n to the decoder registered for its class tag.
func (r *Registry) Decode(n *yaml.Node) (interface{}, error) {
	class, err := ClassOf(n)
	if err != nil {
		return nil, errDecorate(err, "Decode")
	}
	f, ok := r.decoders[class]
	if !ok {
		return nil, newError(ErrUnknownClass, n, "Decode", "class %q", class)
	}
	return f(n)
}

// Validate walks the tree under n and checks that every class tag it
// finds is known to r. Only mappings that carry a class key are checked.
func (r *Registry) Validate(n *yaml.Node) error {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, c := range n.Content {
			if err := r.Validate(c); err != nil {
				return err
			}
		}
	case yaml.AliasNode:
		return r.Validate(n.Alias)
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Value == ClassKey {
				if !r.Known(v.Value) {
					return newError(ErrUnknownClass, v, "Validate", "class %q", v.Value)
				}
				continue
			}
			if err := r.Validate(v); err != nil {
				return err
			}
		}
	}
	return nil
}

// ClassOf returns the class tag of the mapping n.
func ClassOf(n *yaml.Node) (string, error) {
	if n != nil && n.Kind == yaml.DocumentNode && len(n.Content) == 1 {
		n = n.Content[0]
	}
	if n == nil || n.Kind != yaml.MappingNode {
		return "", newError(ErrNotMapping, n, "ClassOf", "expected a mapping")
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == ClassKey {
			return n.Content[i+1].Value, nil
		}
	}
	return "", newError(ErrMissingClass, n, "ClassOf", "no %s key", ClassKey)
}

// Expect checks that n is a mapping tagged with want and returns a
// shallow copy of n with the class key removed.
func Expect(n *yaml.Node, want string) (*yaml.Node, error) {
	got, err := ClassOf(n)
	if err != nil {
		return nil, errDecorate(err, "Expect")
	}
	if got != want {
		return nil, newError(ErrClassMismatch, n, "Expect", "expected class %q, got %q", want, got)
	}
	if n.Kind == yaml.DocumentNode {
		n = n.Content[0]
	}
	ret := *n
	ret.Content = make([]*yaml.Node, 0, len(n.Content))
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == ClassKey {
			continue
		}
		ret.Content = append(ret.Content, n.Content[i], n.Content[i+1])
	}
	return &ret, nil
}

// Tagged encodes v, which must encode to a mapping, and puts the class
// key first in the result.
func Tagged(class string, v interface{}) (*yaml.Node, error) {
	n := new(yaml.Node)
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	if n.Kind != yaml.MappingNode {
		return nil, newError(ErrNotMapping, n, "Tagged", "class %q does not encode to a mapping", class)
	}
	key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: ClassKey}
	val := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: class}
	n.Content = append([]*yaml.Node{key, val}, n.Content...)
	return n, nil
}

// Flow sets the flow style on n, which the encoder propagates to every
// node under it.
func Flow(n *yaml.Node) *yaml.Node {
	n.Style = yaml.FlowStyle
	return n
}
