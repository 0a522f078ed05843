// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package tomljson renders a TOML document as JSON in which every scalar is
// tagged with its TOML type.
//
// A table is rendered as a JSON object whose members are in declaration
// order. An array of tables is rendered as a JSON array of objects. Any other
// array is wrapped as
//
//	{"type":"array","value":[...]}
//
// and a scalar is rendered as
//
//	{"type":"<kind>","value":"<text>"}
//
// where kind is one of string, integer, bool, float, date, time, or datetime.
// The value is always a JSON string, whatever its kind. The kind of a scalar
// is found by trying conversions in a fixed order: string, integer, bool,
// float, and then timestamp.
//
// Booleans are "true" or "false", never "1" or "0". Floats use the shortest
// form that round-trips, so 3.0 is "3" and 1e6 is "1e+06". Fractional seconds
// are truncated to milliseconds and always printed with three digits, so
// 07:32:00.5 is "07:32:00.500". Tools that print Booleans as integers, or
// milliseconds without padding, will not match this output byte for byte.
//
// Keys and strings are escaped by replacing backspace, tab, newline, form
// feed, carriage return, double quotation marks and backslash with their
// two-character escapes. All other bytes are copied verbatim.
package tomljson

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/creachadair/tomltree"
	"github.com/creachadair/tomltree/ast"
	"github.com/creachadair/tomltree/internal/escape"
	"go4.org/mem"
)

// ErrUnknownType is the error wrapped by an *UnknownTypeError.
var ErrUnknownType = errors.New("unknown type")

// UnknownTypeError is the error reported when a scalar value cannot be
// converted to any of the types the projection supports. This indicates a bug
// in the parser, not a problem with the input.
type UnknownTypeError struct {
	Raw  string        // the undecoded text of the value
	Span tomltree.Span // the location of the value in the document
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("%v: %q at offset %d", ErrUnknownType, e.Raw, e.Span.Pos)
}

// Unwrap reports ErrUnknownType.
func (e *UnknownTypeError) Unwrap() error { return ErrUnknownType }

// Marshal renders t as JSON. In case of error, no output is returned.
func Marshal(t *ast.Table) ([]byte, error) { return appendNode(nil, t) }

// MustMarshal renders t as JSON, and panics if that fails.
func MustMarshal(t *ast.Table) []byte {
	out, err := Marshal(t)
	if err != nil {
		panic(err)
	}
	return out
}

// Encode writes the JSON rendering of t to w. If rendering fails, nothing is
// written to w.
func Encode(w io.Writer, t *ast.Table) error { return EncodeNode(w, t) }

// EncodeNode writes the JSON rendering of n to w. If rendering fails, nothing
// is written to w.
func EncodeNode(w io.Writer, n ast.Node) error {
	out, err := appendNode(nil, n)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func appendNode(buf []byte, n ast.Node) ([]byte, error) {
	switch t := n.(type) {
	case *ast.Table:
		return appendTable(buf, t)
	case *ast.Array:
		return appendArray(buf, t)
	case *ast.Value:
		return appendScalar(buf, t)
	}
	return nil, fmt.Errorf("unexpected node %T", n)
}

func appendTable(buf []byte, t *ast.Table) ([]byte, error) {
	buf = append(buf, '{')
	for i, key := range t.Keys() {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = appendString(buf, key)
		buf = append(buf, ':')

		var err error
		buf, err = appendNode(buf, t.Get(key))
		if err != nil {
			return nil, err
		}
	}
	return append(buf, '}'), nil
}

func appendArray(buf []byte, a *ast.Array) ([]byte, error) {
	wrap := a.Kind() != ast.KindTable
	if wrap {
		buf = append(buf, `{"type":"array","value":`...)
	}
	buf = append(buf, '[')
	for i := range a.Len() {
		if i > 0 {
			buf = append(buf, ',')
		}
		var err error
		buf, err = appendNode(buf, a.Index(i))
		if err != nil {
			return nil, err
		}
	}
	buf = append(buf, ']')
	if wrap {
		buf = append(buf, '}')
	}
	return buf, nil
}

// A scalar is the part of *ast.Value used by the projection.
type scalar interface {
	ToString() (string, bool)
	ToInt() (int64, bool)
	ToBool() (bool, bool)
	ToDouble() (float64, bool)
	ToTimestamp() (ast.Timestamp, bool)
	Raw() string
	Span() tomltree.Span
}

func appendScalar(buf []byte, v scalar) ([]byte, error) {
	if s, ok := v.ToString(); ok {
		return appendTagged(buf, "string", s), nil
	}
	if z, ok := v.ToInt(); ok {
		return appendTagged(buf, "integer", strconv.FormatInt(z, 10)), nil
	}
	if b, ok := v.ToBool(); ok {
		return appendTagged(buf, "bool", strconv.FormatBool(b)), nil
	}
	if f, ok := v.ToDouble(); ok {
		return appendTagged(buf, "float", formatFloat(f)), nil
	}
	if ts, ok := v.ToTimestamp(); ok {
		switch {
		case ts.IsDateTime():
			return appendTagged(buf, "datetime", ts.String()), nil
		case ts.IsDate():
			return appendTagged(buf, "date", ts.String()), nil
		case ts.IsTime():
			return appendTagged(buf, "time", ts.String()), nil
		}
	}
	return nil, &UnknownTypeError{Raw: v.Raw(), Span: v.Span()}
}

func appendTagged(buf []byte, kind, text string) []byte {
	buf = append(buf, `{"type":"`...)
	buf = append(buf, kind...)
	buf = append(buf, `","value":`...)
	buf = appendString(buf, text)
	return append(buf, '}')
}

func appendString(buf []byte, s string) []byte {
	buf = append(buf, '"')
	buf = escape.Quote(buf, mem.S(s))
	return append(buf, '"')
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
