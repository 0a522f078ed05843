// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package tomltree

import (
	"fmt"
	"io"
	"strings"
)

// An Anchor represents a location in source text. The methods of an Anchor
// will report the location, token type, and contents of the anchor.
type Anchor interface {
	Token() Token       // Returns the token type of the anchor
	Text() []byte       // Returns a view of the raw (undecoded) text of the anchor
	Copy() []byte       // Returns a copy of the raw text of the anchor
	Location() Location // Returns the full location of the anchor
}

// A Key is a sequence of decoded key components, as written in a dotted key
// or table header.
type Key []string

// String renders k in TOML syntax, quoting components that are not valid
// bare keys.
func (k Key) String() string {
	parts := make([]string, len(k))
	for i, p := range k {
		if isBareKey(p) {
			parts[i] = p
		} else {
			parts[i] = fmt.Sprintf("%q", p)
		}
	}
	return strings.Join(parts, ".")
}

func isBareKey(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isBareKeyByte(s[i]) {
			return false
		}
	}
	return true
}

// A Handler handles events from parsing a TOML document. If a method reports
// an error, parsing stops and that error is returned to the caller. The
// parser ensures arrays, inline tables, and members are correctly balanced.
//
// The Stream reports only the syntax of the document. Semantic rules such as
// the uniqueness of keys and tables are the responsibility of the handler.
//
// The Anchor argument to a Handler method is only valid for the duration of
// that method call. The text of an anchor is a view of the input buffer.
type Handler interface {
	// Header reports a table header "[key]" whose closing bracket is at loc,
	// or an array table header "[[key]]" if array is true.
	Header(loc Anchor, key Key, array bool) error

	// Begin a new key/value member, whose "=" separator is at loc. The key is
	// relative to the innermost open inline table, or to the table named by
	// the most recent header.
	BeginMember(loc Anchor, key Key) error

	// End the current member. The anchor is the last token of its value.
	EndMember(loc Anchor) error

	// Begin a new array, whose open bracket is at loc.
	BeginArray(loc Anchor) error

	// End the most-recently-opened array, whose close bracket is at loc.
	EndArray(loc Anchor) error

	// Begin a new inline table, whose open brace is at loc.
	BeginInline(loc Anchor) error

	// End the most-recently-opened inline table, whose close brace is at loc.
	EndInline(loc Anchor) error

	// Report a scalar value at the given location. The type of the value can
	// be recovered from the token. The text is undecoded, and has already been
	// checked for validity.
	Value(loc Anchor) error

	// EndOfInput reports the end of the input.
	EndOfInput(loc Anchor)
}

// Stream is a stream parser that consumes a TOML document and delivers events
// to a Handler corresponding with the structure of the input.
type Stream struct {
	s   *Scanner
	tok Token // the current token, or endOfInput
}

// NewStream constructs a new Stream that consumes input from text.
func NewStream(text []byte) *Stream { return &Stream{s: NewScanner(text)} }

// NewStreamWithScanner constructs a new Stream that consumes input from s.
func NewStreamWithScanner(s *Scanner) *Stream { return &Stream{s: s} }

func (s *Stream) recoverParseError(errp *error) {
	if serr := recover(); serr != nil {
		switch err := serr.(type) {
		case *SyntaxError:
			*errp = err
		case handlerError:
			*errp = err.error
		default:
			panic(serr)
		}
	}
}

// endOfInput is a pseudo-token reported by advance when the input is
// exhausted.
const endOfInput Token = 255

// Parse parses the input and delivers events to h until either an error
// occurs or the input is exhausted. In case of a syntax error, the returned
// error has type [*SyntaxError].
func (s *Stream) Parse(h Handler) (err error) {
	defer s.recoverParseError(&err)

	for {
		switch tok := s.advance(true); tok {
		case endOfInput:
			h.EndOfInput(s.s)
			return nil
		case Newline:
			continue
		case LSquare, LDouble:
			closer := RSquare
			if tok == LDouble {
				closer = RDouble
			}
			key := s.parseKey(s.advance(true))
			s.require(closer)
			s.checkError(h.Header(s.s, key, tok == LDouble))
			s.endLine()
		case BareKey, BasicString, LiteralString:
			s.parseMember(h, tok)
			s.endLine()
		default:
			s.syntaxError(nil, "%v", tokLabel([]Token{BareKey, LSquare}, tok))
		}
	}
}

// parseMember consumes a key = value member.
// Precondition: token is the first component of the key.
// Postcondition: token is the last token of the value.
func (s *Stream) parseMember(h Handler, tok Token) {
	key := s.parseKey(tok)
	s.require(Equals)
	s.checkError(h.BeginMember(s.s, key))
	s.parseValue(h, s.advance(false))
	s.checkError(h.EndMember(s.s))
}

// parseKey consumes a possibly-dotted key.
// Precondition: token is the first component of the key.
// Postcondition: token is the first token following the key.
func (s *Stream) parseKey(tok Token) Key {
	var key Key
	for {
		switch tok {
		case BareKey:
			key = append(key, string(s.s.Text()))
		case BasicString, LiteralString:
			k, err := ParseString(s.s.Text())
			if err != nil {
				s.syntaxError(err, "invalid key: %v", err)
			}
			key = append(key, k)
		default:
			s.syntaxError(nil, "%v", tokLabel([]Token{BareKey}, tok))
		}
		if s.advance(true) != Dot {
			return key
		}
		tok = s.advance(true)
	}
}

// parseValue consumes a single value of any type.
func (s *Stream) parseValue(h Handler, tok Token) {
	switch {
	case tok.IsValue():
		if err := checkValue(tok, s.s.Text()); err != nil {
			s.syntaxError(err, "invalid %v: %v", tok, err)
		}
		s.checkError(h.Value(s.s))
	case tok == LSquare:
		s.checkError(h.BeginArray(s.s))
		s.parseElements(h)
		s.checkError(h.EndArray(s.s))
	case tok == LBrace:
		s.checkError(h.BeginInline(s.s))
		s.parseInline(h)
		s.checkError(h.EndInline(s.s))
	default:
		s.syntaxError(nil, "expected value, got %v", tokName(tok))
	}
}

// parseElements consumes zero or more comma-separated array values, which
// may span multiple lines. A trailing comma is permitted.
// Precondition: token == LSquare.
// Postcondition: token == RSquare.
func (s *Stream) parseElements(h Handler) {
	tok := s.skipLines(false)
	for tok != RSquare {
		s.parseValue(h, tok)
		switch next := s.skipLines(false); next {
		case RSquare:
			return // end of array
		case Comma:
			tok = s.skipLines(false)
		default:
			s.syntaxError(nil, "%v", tokLabel([]Token{Comma, RSquare}, next))
		}
	}
}

// parseInline consumes the members of an inline table, which must all be on
// a single line. A trailing comma is not permitted.
// Precondition: token == LBrace.
// Postcondition: token == RBrace.
func (s *Stream) parseInline(h Handler) {
	tok := s.advance(true)
	if tok == RBrace {
		return // empty table
	}
	for {
		s.parseMember(h, tok)
		switch next := s.advance(true); next {
		case RBrace:
			return // end of table
		case Comma:
			tok = s.advance(true)
		default:
			s.syntaxError(nil, "%v", tokLabel([]Token{Comma, RBrace}, next))
		}
	}
}

// endLine requires that the current line ends after the current token,
// allowing for a comment.
func (s *Stream) endLine() {
	if tok := s.advance(true); tok != Newline && tok != endOfInput {
		s.syntaxError(nil, "expected end of line, got %v", tokName(tok))
	}
}

// skipLines advances past line breaks and comments, and returns the next
// token.
func (s *Stream) skipLines(key bool) Token {
	for {
		if tok := s.advance(key); tok != Newline {
			return tok
		}
	}
}

// advance scans the next non-comment token in the key context (if key is
// true) or the value context. It returns endOfInput at the end of the input.
func (s *Stream) advance(key bool) Token {
	for {
		var err error
		if key {
			err = s.s.NextKey()
		} else {
			err = s.s.Next()
		}
		if err == io.EOF {
			s.tok = endOfInput
			return s.tok
		} else if pe, ok := err.(posError); ok {
			s.syntaxError(err, "%v", pe.err)
		} else if err != nil {
			s.syntaxError(err, "%v", err)
		} else if s.s.Token() != Comment {
			s.tok = s.s.Token()
			return s.tok
		}
	}
}

func (s *Stream) require(token Token) {
	if s.tok != token {
		s.syntaxError(nil, "%v", tokLabel([]Token{token}, s.tok))
	}
}

func (s *Stream) syntaxError(err error, msg string, args ...any) {
	panic(&SyntaxError{
		Location: s.s.Location().First,
		Message:  fmt.Sprintf(msg, args...),
		err:      err,
	})
}

func (s *Stream) checkError(err error) {
	if err != nil {
		panic(handlerError{err})
	}
}

type handlerError struct{ error }

func (h handlerError) Unwrap() error { return h.error }

func tokName(tok Token) string {
	if tok == endOfInput {
		return "end of input"
	}
	return tok.String()
}

// tokLabel makes a human-readable summary string for the given token types.
func tokLabel(tokens []Token, got Token) string {
	var exp string
	if len(tokens) == 1 {
		exp = tokName(tokens[0])
	} else {
		last := len(tokens) - 1
		ss := make([]string, last)
		for i, tok := range tokens[:last] {
			ss[i] = tokName(tok)
		}
		exp = strings.Join(ss, ", ") + " or " + tokName(tokens[last])
	}
	return fmt.Sprintf("expected %s, got %s", exp, tokName(got))
}

// SyntaxError is the concrete type of errors reported by the stream parser.
type SyntaxError struct {
	Location LineCol
	Message  string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }
