// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"errors"
	"testing"

	"github.com/creachadair/mds/mapset"
	"github.com/creachadair/mds/mtest"
	"github.com/creachadair/tomltree"
)

func TestStoreAccounting(t *testing.T) {
	st := newStore([]byte("abc"))
	if got := st.Size(); got != 3 {
		t.Errorf("Size of new store: got %d, want 3", got)
	}
	root := st.newTable(originHeader)
	sub := st.newTable(originDotted)
	st.insert(root, "key", node{kind: tableNode, id: sub})
	if got, want := st.Size(), 3+3*nodeBytes+len("key"); got != want {
		t.Errorf("Size: got %d, want %d", got, want)
	}

	arr := st.newArray(false)
	st.appendElem(arr, node{kind: valueNode, tok: tomltree.Integer})
	st.appendElem(arr, node{kind: valueNode, tok: tomltree.Float})
	if ad := st.arrays[arr]; ad.kind != KindValue || ad.vt != TypeMixed {
		t.Errorf("Array shape: got %c %c, want v m", ad.kind, ad.vt)
	}
	st.appendElem(arr, node{kind: tableNode, id: sub})
	if ad := st.arrays[arr]; ad.kind != KindMixed || ad.vt != TypeMixed {
		t.Errorf("Array shape: got %c %c, want m m", ad.kind, ad.vt)
	}
}

func TestBuilderInvariant(t *testing.T) {
	st := newStore(nil)
	b := &builder{st: st, defined: mapset.New[int32]()}
	b.push(frame{kind: inlineFrame, id: st.newTable(originInline)})

	// Values are only attached to members and arrays.
	mtest.MustPanic(t, func() { b.attach(node{kind: valueNode}) })
}

func TestStoreLocate(t *testing.T) {
	st := newStore([]byte("a = 1\nb = 2\n"))
	if got, want := st.Locate(10), (tomltree.LineCol{Line: 2, Column: 4}); got != want {
		t.Errorf("Locate(10): got %v, want %v", got, want)
	}
}

func TestScalarCost(t *testing.T) {
	const text = "a = 1\nb = [2, 3]\n"
	doc, err := ParseBytes([]byte(text))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// One root table, two members, one array, and two elements.
	want := len(text) + nodeBytes + (nodeBytes + 1) + (nodeBytes + 1) + nodeBytes + 2*nodeBytes
	if got := doc.Store().Size(); got != want {
		t.Errorf("Size: got %d, want %d", got, want)
	}
}

func TestParseErrorMessage(t *testing.T) {
	if got := parseError(errors.New("")); got.Error() != "unknown error" {
		t.Errorf("parseError(empty): got %q, want %q", got, "unknown error")
	}

	serr := &tomltree.SyntaxError{Location: tomltree.LineCol{Line: 2, Column: 3}}
	if got, want := parseError(serr).Error(), "at 2:3: unknown error"; got != want {
		t.Errorf("parseError(syntax): got %q, want %q", got, want)
	}

	plain := errors.New("boom")
	if got := parseError(plain); got != plain {
		t.Errorf("parseError(plain): got %v, want %v", got, plain)
	}
}
