// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"errors"
	"fmt"
	"os"

	"github.com/creachadair/mds/mapset"
	"github.com/creachadair/tomltree"
)

// Options control the parsing of a document. A zero Options is ready for use
// and imposes no limits.
type Options struct {
	// If positive, MaxBytes limits the combined size of the document text and
	// its parsed structure. A parse that exceeds the limit fails with
	// ErrOutOfMemory.
	MaxBytes int
}

// Parse parses text as a TOML document and returns its root table.
func Parse(text string) (*Table, error) { return Options{}.Parse(text) }

// ParseBytes parses text as a TOML document and returns its root table. The
// document keeps a copy of text, so the caller may modify text afterward.
func ParseBytes(text []byte) (*Table, error) { return Options{}.ParseBytes(text) }

// ParseFile reads and parses the contents of the named file as a TOML
// document and returns its root table.
func ParseFile(path string) (*Table, error) { return Options{}.ParseFile(path) }

// Parse parses text as a TOML document using the settings in o.
func (o Options) Parse(text string) (*Table, error) { return o.ParseBytes([]byte(text)) }

// ParseFile reads and parses the named file using the settings in o.
func (o Options) ParseFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return o.ParseBytes(data)
}

// ParseBytes parses text as a TOML document using the settings in o. Exactly
// one of the results is non-nil. Syntax errors and violations of the TOML
// table rules are reported as *tomltree.SyntaxError values.
func (o Options) ParseBytes(text []byte) (*Table, error) {
	if o.MaxBytes > 0 && len(text) > o.MaxBytes {
		return nil, ErrOutOfMemory
	}
	st := newStore(text)
	b := &builder{st: st, max: o.MaxBytes, defined: mapset.New[int32]()}
	st.newTable(originHeader) // root
	if err := tomltree.NewStream(st.text).Parse(b); err != nil {
		return nil, parseError(err)
	}
	return st.Root(), nil
}

// parseError returns err, or an error with a placeholder message if err does
// not have one.
func parseError(err error) error {
	var serr *tomltree.SyntaxError
	if errors.As(err, &serr) && serr.Message == "" {
		serr.Message = "unknown error"
	} else if err.Error() == "" {
		return errors.New("unknown error")
	}
	return err
}

// A builder implements the tomltree.Handler interface to construct a
// document in a Store, and enforces the TOML rules for defining tables.
type builder struct {
	st      *Store
	max     int
	section int32   // the table named by the most recent header
	stk     []frame // open members, arrays, and inline tables

	// Tables that have been the target of a header.
	defined mapset.Set[int32]
}

type frameKind byte

const (
	memberFrame frameKind = iota
	arrayFrame
	inlineFrame
)

// A frame is an open construct. For a member, id is the table receiving the
// member and key is its final key component. For an array or inline table, id
// is the array or table under construction.
type frame struct {
	kind frameKind
	id   int32
	key  string
	pos  int
}

func (b *builder) push(f frame) { b.stk = append(b.stk, f) }

func (b *builder) pop() frame {
	f := b.stk[len(b.stk)-1]
	b.stk = b.stk[:len(b.stk)-1]
	return f
}

func (b *builder) checkSize() error {
	if b.max > 0 && b.st.used > b.max {
		return ErrOutOfMemory
	}
	return nil
}

// attach adds n to the innermost open member or array.
func (b *builder) attach(n node) error {
	top := b.stk[len(b.stk)-1]
	switch top.kind {
	case memberFrame:
		b.st.insert(top.id, top.key, n)
	case arrayFrame:
		b.st.appendElem(top.id, n)
	default:
		panic(fmt.Sprintf("attach to frame kind %d", top.kind))
	}
	return b.checkSize()
}

func errorf(loc tomltree.Anchor, msg string, args ...any) error {
	return &tomltree.SyntaxError{
		Location: loc.Location().First,
		Message:  fmt.Sprintf(msg, args...),
	}
}

func (b *builder) Header(loc tomltree.Anchor, key tomltree.Key, array bool) error {
	cur := int32(0)
	for i, k := range key {
		last := i == len(key)-1
		span := loc.Location().Span
		n, ok := b.st.lookup(cur, k)
		if !ok {
			if last && array {
				aid := b.st.newArray(true)
				b.st.insert(cur, k, node{kind: arrayNode, id: aid, span: span})
				cur = b.newElement(aid, span)
				break
			}
			tid := b.st.newTable(originHeader)
			b.st.insert(cur, k, node{kind: tableNode, id: tid, span: span})
			if last {
				b.defined.Add(tid)
			}
			cur = tid
			continue
		}

		switch n.kind {
		case tableNode:
			td := &b.st.tables[n.id]
			if td.origin == originInline {
				return errorf(loc, "cannot extend inline table %q", key[:i+1])
			} else if last && array {
				return errorf(loc, "key %q is not an array of tables", key)
			} else if last && (td.origin == originDotted || b.defined.Has(n.id)) {
				return errorf(loc, "table %q already defined", key)
			} else if last {
				b.defined.Add(n.id)
			}
			cur = n.id

		case arrayNode:
			ad := &b.st.arrays[n.id]
			if !ad.aot {
				return errorf(loc, "cannot extend static array %q", key[:i+1])
			} else if last && !array {
				return errorf(loc, "table %q already defined as an array of tables", key)
			} else if last {
				cur = b.newElement(n.id, span)
			} else {
				cur = ad.elems[len(ad.elems)-1].id
			}

		default:
			return errorf(loc, "key %q already has a value", key[:i+1])
		}
	}
	b.section = cur
	return b.checkSize()
}

// newElement appends a new table to the array of tables aid, and returns the
// ID of the new table.
func (b *builder) newElement(aid int32, span tomltree.Span) int32 {
	tid := b.st.newTable(originHeader)
	b.st.appendElem(aid, node{kind: tableNode, id: tid, span: span})
	b.defined.Add(tid)
	return tid
}

func (b *builder) BeginMember(loc tomltree.Anchor, key tomltree.Key) error {
	cur := b.section
	if len(b.stk) != 0 {
		cur = b.stk[len(b.stk)-1].id // the enclosing inline table
	}
	span := loc.Location().Span
	for i, k := range key[:len(key)-1] {
		n, ok := b.st.lookup(cur, k)
		if !ok {
			tid := b.st.newTable(originDotted)
			b.st.insert(cur, k, node{kind: tableNode, id: tid, span: span})
			cur = tid
		} else if n.kind == tableNode && b.st.tables[n.id].origin == originDotted {
			cur = n.id
		} else if n.kind == tableNode {
			return errorf(loc, "cannot extend table %q with a dotted key", key[:i+1])
		} else {
			return errorf(loc, "key %q already has a value", key[:i+1])
		}
	}
	last := key[len(key)-1]
	if _, ok := b.st.lookup(cur, last); ok {
		return errorf(loc, "duplicate key %q", key)
	}
	b.push(frame{kind: memberFrame, id: cur, key: last, pos: span.Pos})
	return b.checkSize()
}

func (b *builder) EndMember(loc tomltree.Anchor) error { b.pop(); return nil }

func (b *builder) BeginArray(loc tomltree.Anchor) error {
	b.push(frame{kind: arrayFrame, id: b.st.newArray(false), pos: loc.Location().Pos})
	return nil
}

func (b *builder) EndArray(loc tomltree.Anchor) error {
	f := b.pop()
	return b.attach(node{
		kind: arrayNode,
		id:   f.id,
		span: tomltree.Span{Pos: f.pos, End: loc.Location().End},
	})
}

func (b *builder) BeginInline(loc tomltree.Anchor) error {
	b.push(frame{kind: inlineFrame, id: b.st.newTable(originInline), pos: loc.Location().Pos})
	return nil
}

func (b *builder) EndInline(loc tomltree.Anchor) error {
	f := b.pop()
	return b.attach(node{
		kind: tableNode,
		id:   f.id,
		span: tomltree.Span{Pos: f.pos, End: loc.Location().End},
	})
}

func (b *builder) Value(loc tomltree.Anchor) error {
	return b.attach(node{kind: valueNode, tok: loc.Token(), span: loc.Location().Span})
}

func (b *builder) EndOfInput(loc tomltree.Anchor) {}
