// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package tomlyaml renders a TOML document as YAML.
//
// Unlike the tagged JSON projection, the YAML rendering uses native YAML
// scalars: integers, floats, and Booleans are plain, and strings are quoted
// where YAML would otherwise read them as another type. Dates, times, and
// date-times are rendered as strings in TOML syntax. Tables are mappings in
// declaration order.
package tomlyaml

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/creachadair/tomltree/ast"
	"gopkg.in/yaml.v3"
)

// Marshal renders t as a YAML document.
func Marshal(t *ast.Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes t to w as a YAML document.
func Encode(w io.Writer, t *ast.Table) error { return EncodeNode(w, t) }

// EncodeNode writes n to w as a YAML document.
func EncodeNode(w io.Writer, n ast.Node) error {
	doc, err := toNode(n)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func toNode(n ast.Node) (*yaml.Node, error) {
	switch t := n.(type) {
	case *ast.Table:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range t.Keys() {
			val, err := toNode(t.Get(key))
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			out.Content = append(out.Content, scalar("!!str", key), val)
		}
		return out, nil

	case *ast.Array:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i := range t.Len() {
			elt, err := toNode(t.Index(i))
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out.Content = append(out.Content, elt)
		}
		return out, nil

	case *ast.Value:
		return valueNode(t)
	}
	return nil, fmt.Errorf("unexpected node %T", n)
}

func valueNode(v *ast.Value) (*yaml.Node, error) {
	switch v.Type() {
	case ast.TypeString:
		if s, ok := v.ToString(); ok {
			return scalar("!!str", s), nil
		}
	case ast.TypeInt:
		if z, ok := v.ToInt(); ok {
			return scalar("!!int", strconv.FormatInt(z, 10)), nil
		}
	case ast.TypeFloat:
		if f, ok := v.ToDouble(); ok {
			return scalar("!!float", formatFloat(f)), nil
		}
	case ast.TypeBool:
		if b, ok := v.ToBool(); ok {
			return scalar("!!bool", strconv.FormatBool(b)), nil
		}
	case ast.TypeDate, ast.TypeTime, ast.TypeTimestamp:
		if ts, ok := v.ToTimestamp(); ok {
			return scalar("!!str", ts.String()), nil
		}
	}
	return nil, fmt.Errorf("invalid value %q", v.Raw())
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
