// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package tomltree implements a TOML scanner and stream parser.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for TOML. Construct a scanner
// from a byte slice and call its Next or NextKey method to iterate over the
// input. TOML bare words mean different things depending on where they occur,
// so the caller chooses the context: NextKey treats bare words as keys, and
// Next treats them as values (numbers, Booleans, dates and times).
//
//	s := tomltree.NewScanner(input)
//	for s.NextKey() == nil {
//	   log.Printf("Next token: %v %q", s.Token(), s.Text())
//	}
//
// Next and NextKey return io.EOF when the input has been fully consumed. Any
// other error indicates a lexical error in the input. Line breaks and comments
// are reported as tokens.
//
// The text of a token is a slice of the input, not a copy. The input must not
// be modified while the scanner is in use.
//
// # Streaming
//
// The Stream type implements an event-driven stream parser for TOML. The
// parser works by calling methods on a Handler value to report the structure
// of the input. In case of error, parsing is terminated and an error of
// concrete type *tomltree.SyntaxError is returned.
//
//	s := tomltree.NewStream(input)
//	if err := s.Parse(handler); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// # Handlers
//
// The Handler interface accepts parser events from a Stream. The methods of
// a handler correspond to the syntax of TOML:
//
//	TOML syntax  | Methods                   | Description
//	------------ | ------------------------- | -------------------------------
//	header       | Header                    | [a.b] or [[a.b]]
//	member       | BeginMember, EndMember    | a.b = value
//	array        | BeginArray, EndArray      | [ ... ]
//	inline table | BeginInline, EndInline    | { ... }
//	value        | Value                     | strings, numbers, bools, dates
//	--           | EndOfInput                | end of input
//
// Each method is passed an Anchor value that can be used to retrieve location
// and type information. The Anchor passed to a handler method is only valid
// for the duration of that method call; the handler must copy any data it
// needs to retain beyond the lifetime of the call.
//
// The Stream checks the syntax of the input and the lexical validity of each
// value. The semantic rules of TOML tables (no duplicate keys, no redefined
// tables) are enforced by the handler, since only the handler knows what has
// been defined. See package ast for a handler that builds a document tree.
//
// # Values
//
// The functions ParseString, ParseBool, ParseInt, ParseFloat, and
// ParseDatetime decode the raw text of a value token. Each reports an error if
// the text is not a valid instance of its type, so they may be used to probe
// the type of an undecoded token.
package tomltree
