// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements traversal over the tree of a TOML document.
package cursor

import (
	"fmt"

	"github.com/creachadair/tomltree/ast"
)

// Path traverses a sequential path into the structure of n where path
// elements are as documented for the Cursor.Down method. This is a
// convenience wrapper for creating a cursor, applying path, and retrieving
// its value.
func Path[T ast.Node](n ast.Node, path ...any) (T, error) {
	c := New(n).Down(path...)
	var result T
	if err := c.Err(); err != nil {
		return result, err
	}
	v, ok := c.Node().(T)
	if !ok {
		return result, fmt.Errorf("wrong node type %T", c.Node())
	}
	return v, nil
}

// A Cursor is a pointer that navigates into the structure of an ast.Node.
type Cursor struct {
	org ast.Node
	stk []ast.Node
	err error
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin ast.Node) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin node of c.
func (c *Cursor) Origin() ast.Node { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Node reports the current node under the cursor.
func (c *Cursor) Node() ast.Node {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Path reports the complete sequence of nodes from the origin to the current
// location in c.
func (c *Cursor) Path() []ast.Node {
	return append([]ast.Node{c.org}, c.stk...)
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.err = nil }

// Down traverses a sequential path into the structure of c starting from the
// current node, where path elements are either strings (denoting table keys),
// integers (denoting offsets into arrays), or functions (see below). If the
// path is valid, the node reached is returned. If the path cannot be
// completely consumed, traversal stops and an error is recorded. Use Err to
// recover the error.
//
// If a path element is a string, the corresponding node must be a table, and
// the string resolves to the value of the member with that key.
//
// If a path element is an integer, the corresponding node must be an array,
// and the integer resolves to an index in the array. Negative indices count
// backward from the end (-1 is last, -2 second last). An error is reported if
// the index is out of bounds.
//
// If a path element is a function, the function is executed and its result
// becomes the next node in the sequence. The function must have a signature
//
//	func(ast.Node) (ast.Node, error)
//
// If the function reports an error, traversal stops and the error is recorded.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil // reset error
	cur := c.Node()
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			tab, ok := cur.(*ast.Table)
			if !ok {
				return c.setErrorf("cannot traverse %T with %q", cur, elt)
			}
			next := tab.Get(t)
			if next == nil {
				return c.setErrorf("key %q not found", t)
			}
			cur = c.push(next)

		case int:
			arr, ok := cur.(*ast.Array)
			if !ok {
				return c.setErrorf("cannot traverse %T with %v", cur, elt)
			}
			i, ok := fixArrayBound(arr.Len(), t)
			if !ok {
				return c.setErrorf("array index %d out of bounds (n=%d)", t, arr.Len())
			}
			cur = c.push(arr.Index(i))

		case func(ast.Node) (ast.Node, error):
			next, err := t(cur)
			if err != nil {
				c.err = err
				return c
			}
			cur = c.push(next)

		default:
			return c.setErrorf("invalid path element %T", elt)
		}
	}
	return c
}

func (c *Cursor) push(n ast.Node) ast.Node { c.stk = append(c.stk, n); return n }

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

func fixArrayBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
