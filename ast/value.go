// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast

import "github.com/creachadair/tomltree"

// A Value is a scalar value: a string, integer, float, Boolean, date, time,
// or date-time. A Value holds the raw text of its token, and each conversion
// method decodes that text afresh. A conversion reports false if the text is
// not of the requested type, so the type of a value can be found by probing.
type Value struct {
	st   *Store
	tok  tomltree.Token
	span tomltree.Span
}

func (*Value) isNode() {}

// Span satisfies the Node interface.
func (v *Value) Span() tomltree.Span { return v.span }

func (v *Value) raw() []byte {
	if v == nil {
		return nil
	}
	return v.st.text[v.span.Pos:v.span.End]
}

// Raw returns the undecoded source text of v.
func (v *Value) Raw() string { return string(v.raw()) }

// String returns the undecoded source text of v.
func (v *Value) String() string { return v.Raw() }

// Type reports the lexical type of v.
func (v *Value) Type() ValueType {
	if v == nil {
		return TypeUnknown
	}
	return valueType(v.tok)
}

// ToString reports whether v is a string, and if so returns its decoded text.
func (v *Value) ToString() (string, bool) {
	s, err := tomltree.ParseString(v.raw())
	return s, err == nil
}

// ToBool reports whether v is a Boolean, and if so returns its value.
func (v *Value) ToBool() (bool, bool) {
	b, err := tomltree.ParseBool(v.raw())
	return b, err == nil
}

// ToInt reports whether v is an integer representable as an int64, and if so
// returns its value.
func (v *Value) ToInt() (int64, bool) {
	z, err := tomltree.ParseInt(v.raw())
	if err != nil {
		return 0, false
	}
	return z, true
}

// ToDouble reports whether v is a float, and if so returns its value.
// Integers are not floats.
func (v *Value) ToDouble() (float64, bool) {
	f, err := tomltree.ParseFloat(v.raw())
	if err != nil {
		return 0, false
	}
	return f, true
}

// ToTimestamp reports whether v is a date, time, or date-time, and if so
// returns its value.
func (v *Value) ToTimestamp() (Timestamp, bool) {
	d, err := tomltree.ParseDatetime(v.raw())
	if err != nil {
		return Timestamp{}, false
	}
	return newTimestamp(d), true
}
