// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"errors"

	"github.com/creachadair/tomltree"
)

// ErrOutOfMemory is reported by a parse whose input and parsed structure
// exceed the limit set by Options.MaxBytes.
var ErrOutOfMemory = errors.New("out of memory")

// A Store owns the text of a parsed document and the arena of tables, arrays,
// and scalar spans parsed from it. Every node derived from a parse refers to
// the same Store, and the Store is reclaimed when the last such node is no
// longer reachable. A Store is not modified after parsing completes, so nodes
// may safely be shared among goroutines.
type Store struct {
	text   []byte
	tables []tableData
	arrays []arrayData
	used   int // bytes accounted to the arena, including text
}

// newStore returns a new store holding a copy of text. Subsequent changes to
// text do not affect the store.
func newStore(text []byte) *Store {
	return &Store{text: append([]byte(nil), text...), used: len(text)}
}

// Root returns the root table of the document.
func (s *Store) Root() *Table {
	return &Table{st: s, id: 0, span: tomltree.Span{End: len(s.text)}}
}

// Size reports the number of bytes accounted to s, including its text.
func (s *Store) Size() int { return s.used }

// Locate reports the line and column of offset pos in the source text.
func (s *Store) Locate(pos int) tomltree.LineCol { return tomltree.LineColAt(s.text, pos) }

type nodeKind byte

const (
	valueNode nodeKind = iota
	tableNode
	arrayNode
)

// A node is a reference to a table, array, or scalar in the arena. For a
// table or array, id is its index in the corresponding slice of the store.
type node struct {
	kind nodeKind
	id   int32
	tok  tomltree.Token // value token type, for valueNode
	span tomltree.Span
}

// nodeBytes is the arena cost charged for each node.
const nodeBytes = 48

// origin records how a table was created, which governs how it may be
// extended later in the document.
type origin byte

const (
	originHeader origin = iota // by a [header] or [[header]], possibly implicitly
	originDotted               // by a dotted key
	originInline               // by an inline table
)

type tableData struct {
	keys   []string
	nodes  []node
	index  map[string]int
	origin origin
}

type arrayData struct {
	elems []node
	kind  ArrayKind
	vt    ValueType
	aot   bool // created by [[header]]
}

func (s *Store) newTable(o origin) int32 {
	s.tables = append(s.tables, tableData{origin: o})
	s.used += nodeBytes
	return int32(len(s.tables) - 1)
}

func (s *Store) newArray(aot bool) int32 {
	s.arrays = append(s.arrays, arrayData{kind: KindValue, vt: TypeUnknown, aot: aot})
	s.used += nodeBytes
	return int32(len(s.arrays) - 1)
}

// lookup returns the node stored under key in table id, if any.
func (s *Store) lookup(id int32, key string) (node, bool) {
	td := &s.tables[id]
	if i, ok := td.index[key]; ok {
		return td.nodes[i], true
	}
	return node{}, false
}

// insert adds key to table id with value n. The caller must ensure key is not
// already present.
func (s *Store) insert(id int32, key string, n node) {
	td := &s.tables[id]
	if td.index == nil {
		td.index = make(map[string]int)
	}
	td.index[key] = len(td.keys)
	td.keys = append(td.keys, key)
	td.nodes = append(td.nodes, n)
	s.used += nodeBytes + len(key)
}

// appendElem adds n to the end of array id, and updates the element kind and
// scalar type of the array.
func (s *Store) appendElem(id int32, n node) {
	ad := &s.arrays[id]
	ek, vt := elemKind(n)
	if len(ad.elems) == 0 {
		ad.kind, ad.vt = ek, vt
	} else if ad.kind != ek {
		ad.kind, ad.vt = KindMixed, TypeMixed
	} else if ad.vt != vt {
		ad.vt = TypeMixed
	}
	ad.elems = append(ad.elems, n)
	s.used += nodeBytes
}

func elemKind(n node) (ArrayKind, ValueType) {
	switch n.kind {
	case tableNode:
		return KindTable, TypeUnknown
	case arrayNode:
		return KindArray, TypeUnknown
	default:
		return KindValue, valueType(n.tok)
	}
}

// wrap returns the exported wrapper for n.
func (s *Store) wrap(n node) Node {
	switch n.kind {
	case tableNode:
		return &Table{st: s, id: n.id, span: n.span}
	case arrayNode:
		return &Array{st: s, id: n.id, span: n.span}
	default:
		return &Value{st: s, tok: n.tok, span: n.span}
	}
}
