// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a read-only document tree for TOML, and a parser that
// constructs document trees from TOML source.
//
// A parsed document is a *Table. Tables, arrays, and scalar values are views
// into a shared Store that holds the document text; the store lives as long
// as any node derived from it.
//
// Lookups never panic. A missing key, a value of the wrong kind, or an index
// out of range is reported as a nil node or a false ok result, and the
// methods of a nil *Table, *Array, or *Value report the same, so lookups may
// be chained:
//
//	port, ok := doc.GetTable("server").GetInt("port")
package ast

import (
	"slices"

	"github.com/creachadair/tomltree"
)

// A Node is a *Table, an *Array, or a *Value.
type Node interface {
	Span() tomltree.Span

	isNode()
}

// An ArrayKind classifies the elements of an array.
type ArrayKind byte

// Constants defining the kinds of array elements.
const (
	KindTable ArrayKind = 't' // all elements are tables
	KindArray ArrayKind = 'a' // all elements are arrays
	KindValue ArrayKind = 'v' // all elements are scalar values, or none
	KindMixed ArrayKind = 'm' // elements of more than one kind
)

func (k ArrayKind) String() string {
	switch k {
	case KindTable:
		return "table"
	case KindArray:
		return "array"
	case KindValue:
		return "value"
	case KindMixed:
		return "mixed"
	}
	return "invalid"
}

// A ValueType is the lexical type of a scalar value.
type ValueType byte

// Constants defining the types of scalar values.
const (
	TypeInt       ValueType = 'i'
	TypeFloat     ValueType = 'd'
	TypeBool      ValueType = 'b'
	TypeString    ValueType = 's'
	TypeTime      ValueType = 't' // local time
	TypeDate      ValueType = 'D' // local date
	TypeTimestamp ValueType = 'T' // offset or local date-time
	TypeMixed     ValueType = 'm' // array elements of more than one type
	TypeUnknown   ValueType = '0' // empty array, or elements that are not values
)

func (v ValueType) String() string {
	switch v {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	case TypeTime:
		return "time"
	case TypeDate:
		return "date"
	case TypeTimestamp:
		return "timestamp"
	case TypeMixed:
		return "mixed"
	}
	return "unknown"
}

func valueType(tok tomltree.Token) ValueType {
	switch tok {
	case tomltree.Integer:
		return TypeInt
	case tomltree.Float:
		return TypeFloat
	case tomltree.Bool:
		return TypeBool
	case tomltree.OffsetDatetime, tomltree.LocalDatetime:
		return TypeTimestamp
	case tomltree.LocalDate:
		return TypeDate
	case tomltree.LocalTime:
		return TypeTime
	}
	if tok.IsString() {
		return TypeString
	}
	return TypeUnknown
}

// A Table is a collection of keyed members, in declaration order.
type Table struct {
	st   *Store
	id   int32
	span tomltree.Span
}

func (*Table) isNode() {}

// Span satisfies the Node interface.
func (t *Table) Span() tomltree.Span { return t.span }

func (t *Table) data() *tableData {
	if t == nil {
		return nil
	}
	return &t.st.tables[t.id]
}

// Store returns the store that holds t, or nil if t == nil.
func (t *Table) Store() *Store {
	if t == nil {
		return nil
	}
	return t.st
}

// Keys returns the keys of t in the order they were declared.
func (t *Table) Keys() []string {
	if td := t.data(); td != nil {
		return slices.Clone(td.keys)
	}
	return nil
}

// Len reports the number of members in t.
func (t *Table) Len() int {
	if td := t.data(); td != nil {
		return len(td.keys)
	}
	return 0
}

// Has reports whether t has a member with the given key.
func (t *Table) Has(key string) bool { return t.Get(key) != nil }

// Get returns the node for key in t, or nil if key is not present.
func (t *Table) Get(key string) Node {
	if t == nil {
		return nil
	}
	n, ok := t.st.lookup(t.id, key)
	if !ok {
		return nil
	}
	return t.st.wrap(n)
}

// GetTable returns the table for key in t, or nil if key is not present or
// its value is not a table.
func (t *Table) GetTable(key string) *Table { tab, _ := t.Get(key).(*Table); return tab }

// GetArray returns the array for key in t, or nil if key is not present or
// its value is not an array.
func (t *Table) GetArray(key string) *Array { arr, _ := t.Get(key).(*Array); return arr }

// GetValue returns the scalar value for key in t, or nil if key is not
// present or its value is not a scalar.
func (t *Table) GetValue(key string) *Value { v, _ := t.Get(key).(*Value); return v }

// GetString returns the string value of key in t. It reports false if the key
// is not present or its value is not a string.
func (t *Table) GetString(key string) (string, bool) { return t.GetValue(key).ToString() }

// GetBool returns the Boolean value of key in t. It reports false if the key
// is not present or its value is not a Boolean.
func (t *Table) GetBool(key string) (bool, bool) { return t.GetValue(key).ToBool() }

// GetInt returns the integer value of key in t. It reports false if the key
// is not present or its value is not an integer.
func (t *Table) GetInt(key string) (int64, bool) { return t.GetValue(key).ToInt() }

// GetDouble returns the floating-point value of key in t. It reports false if
// the key is not present or its value is not a float. Integers are not
// converted.
func (t *Table) GetDouble(key string) (float64, bool) { return t.GetValue(key).ToDouble() }

// GetTimestamp returns the timestamp value of key in t. It reports false if
// the key is not present or its value is not a date, time, or date-time.
func (t *Table) GetTimestamp(key string) (Timestamp, bool) { return t.GetValue(key).ToTimestamp() }

// An Array is a sequence of nodes.
//
// The indexed accessors of an Array report a nil node or a false ok result
// both when the index is out of range and when the element at that index has
// the wrong type. Use Len to tell these cases apart.
type Array struct {
	st   *Store
	id   int32
	span tomltree.Span
}

func (*Array) isNode() {}

// Span satisfies the Node interface.
func (a *Array) Span() tomltree.Span { return a.span }

func (a *Array) data() *arrayData {
	if a == nil {
		return nil
	}
	return &a.st.arrays[a.id]
}

// Kind reports the kind of the elements of a. An empty array has kind
// KindValue.
func (a *Array) Kind() ArrayKind {
	if ad := a.data(); ad != nil {
		return ad.kind
	}
	return KindValue
}

// Type reports the scalar type of the elements of a. The result is only
// meaningful when a.Kind() == KindValue; an empty array has type TypeUnknown.
func (a *Array) Type() ValueType {
	if ad := a.data(); ad != nil {
		return ad.vt
	}
	return TypeUnknown
}

// Len reports the number of elements in a.
func (a *Array) Len() int {
	if ad := a.data(); ad != nil {
		return len(ad.elems)
	}
	return 0
}

// Index returns the element of a at offset i, or nil if i is out of range.
func (a *Array) Index(i int) Node {
	ad := a.data()
	if ad == nil || i < 0 || i >= len(ad.elems) {
		return nil
	}
	return a.st.wrap(ad.elems[i])
}

// Nodes returns the elements of a in order.
func (a *Array) Nodes() []Node {
	out := make([]Node, a.Len())
	for i := range out {
		out[i] = a.Index(i)
	}
	return out
}

// GetTable returns the table at offset i of a, or nil.
func (a *Array) GetTable(i int) *Table { t, _ := a.Index(i).(*Table); return t }

// GetArray returns the array at offset i of a, or nil.
func (a *Array) GetArray(i int) *Array { arr, _ := a.Index(i).(*Array); return arr }

// GetValue returns the scalar value at offset i of a, or nil.
func (a *Array) GetValue(i int) *Value { v, _ := a.Index(i).(*Value); return v }

// GetString returns the string value at offset i of a.
func (a *Array) GetString(i int) (string, bool) { return a.GetValue(i).ToString() }

// GetBool returns the Boolean value at offset i of a.
func (a *Array) GetBool(i int) (bool, bool) { return a.GetValue(i).ToBool() }

// GetInt returns the integer value at offset i of a.
func (a *Array) GetInt(i int) (int64, bool) { return a.GetValue(i).ToInt() }

// GetDouble returns the floating-point value at offset i of a.
func (a *Array) GetDouble(i int) (float64, bool) { return a.GetValue(i).ToDouble() }

// GetTimestamp returns the timestamp value at offset i of a.
func (a *Array) GetTimestamp(i int) (Timestamp, bool) { return a.GetValue(i).ToTimestamp() }
