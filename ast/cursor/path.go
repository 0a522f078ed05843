// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package cursor

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/creachadair/tomltree"
	"github.com/creachadair/tomltree/ast"
)

/*
Grammar:

  path = [key steps]
 steps = step [steps]
  step = "." key
  step = "[" INDEX "]"
   key = BARE | BASIC | LITERAL

 Keys are written as in TOML: bare keys, "basic" strings with escapes, or
 'literal' strings. INDEX is a decimal integer, possibly negative.
*/

// ParsePath parses s as a path of table keys and array indices, in a syntax
// resembling TOML dotted keys, and returns the path as a slice of string keys
// and int indices suitable for the Down method of a Cursor. For example:
//
//	servers.alpha."ip address"[0]
//
// yields []any{"servers", "alpha", "ip address", 0}. An empty string is an
// empty path.
func ParsePath(s string) ([]any, error) {
	sc := tomltree.NewScanner([]byte(s))
	var path []any
	needKey := true
	for {
		err := sc.NextKey()
		if err == io.EOF {
			if needKey && len(path) != 0 {
				return nil, errors.New("path ends with a dot")
			}
			return path, nil
		} else if err != nil {
			return nil, err
		}

		pos := sc.Span().Pos
		if needKey {
			key, err := pathKey(sc)
			if err != nil {
				return nil, fmt.Errorf("offset %d: %w", pos, err)
			}
			path = append(path, key)
			needKey = false
			continue
		}

		switch sc.Token() {
		case tomltree.Dot:
			needKey = true
		case tomltree.LSquare:
			idx, err := pathIndex(sc)
			if err != nil {
				return nil, fmt.Errorf("offset %d: %w", pos, err)
			}
			path = append(path, idx)
		default:
			return nil, fmt.Errorf("offset %d: unexpected %v", pos, sc.Token())
		}
	}
}

func pathKey(sc *tomltree.Scanner) (string, error) {
	switch sc.Token() {
	case tomltree.BareKey:
		return string(sc.Text()), nil
	case tomltree.BasicString, tomltree.LiteralString:
		return tomltree.ParseString(sc.Text())
	}
	return "", fmt.Errorf("expected key, got %v", sc.Token())
}

// pathIndex parses an index and its closing bracket.
// Precondition: the current token is LSquare.
func pathIndex(sc *tomltree.Scanner) (int, error) {
	if err := sc.NextKey(); err != nil || sc.Token() != tomltree.BareKey {
		return 0, errors.New("expected index")
	}
	idx, err := strconv.Atoi(string(sc.Text()))
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", sc.Text())
	}
	if err := sc.NextKey(); err != nil || sc.Token() != tomltree.RSquare {
		return 0, errors.New("missing close bracket")
	}
	return idx, nil
}

// Find parses path with ParsePath and traverses it from n.
func Find(n ast.Node, path string) (ast.Node, error) {
	elts, err := ParsePath(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}
	c := New(n).Down(elts...)
	if err := c.Err(); err != nil {
		return nil, err
	}
	return c.Node(), nil
}
