// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package tomltree

import (
	"fmt"
	"io"
	"unicode/utf8"

	"go4.org/mem"
)

// Token is the type of a lexical token in the TOML grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid        Token = iota // invalid token
	LSquare                     // left square bracket "["
	RSquare                     // right square bracket "]"
	LDouble                     // array table open "[["
	RDouble                     // array table close "]]"
	LBrace                      // left brace "{"
	RBrace                      // right brace "}"
	Comma                       // comma ","
	Dot                         // key separator "."
	Equals                      // key/value separator "="
	Newline                     // end of line
	Comment                     // comment: # to end of line
	BareKey                     // unquoted key: A-Za-z0-9_-
	BasicString                 // quoted string: "..."
	LiteralString               // literal string: '...'
	MultiString                 // multi-line string: """..."""
	MultiLiteral                // multi-line literal string: '''...'''
	Integer                     // integer
	Float                       // floating-point number, inf, nan
	Bool                        // constant: true, false
	OffsetDatetime              // offset date-time
	LocalDatetime               // local date-time
	LocalDate                   // local date
	LocalTime                   // local time
)

var tokenStr = [...]string{
	Invalid:        "invalid token",
	LSquare:        `"["`,
	RSquare:        `"]"`,
	LDouble:        `"[["`,
	RDouble:        `"]]"`,
	LBrace:         `"{"`,
	RBrace:         `"}"`,
	Comma:          `","`,
	Dot:            `"."`,
	Equals:         `"="`,
	Newline:        "newline",
	Comment:        "comment",
	BareKey:        "key",
	BasicString:    "string",
	LiteralString:  "literal string",
	MultiString:    "multi-line string",
	MultiLiteral:   "multi-line literal string",
	Integer:        "integer",
	Float:          "float",
	Bool:           "bool",
	OffsetDatetime: "datetime",
	LocalDatetime:  "local datetime",
	LocalDate:      "local date",
	LocalTime:      "local time",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// IsString reports whether t is one of the four string token types.
func (t Token) IsString() bool {
	return t == BasicString || t == LiteralString || t == MultiString || t == MultiLiteral
}

// IsValue reports whether t is a scalar value token.
func (t Token) IsValue() bool { return t.IsString() || (t >= Integer && t <= LocalTime) }

// A Scanner reads lexical tokens from a TOML document held in memory. Each
// call to Next or NextKey advances the scanner to the next token, or reports
// an error.
//
// The text of each token is a slice of the input buffer, not a copy, so the
// caller must not modify the buffer while the scanner or any token text
// obtained from it is in use.
type Scanner struct {
	src []byte
	tok Token
	err error

	pos, end int // start and end offsets of current token

	// Apparent line and column offsets (0-based)
	pline, pcol int
	eline, ecol int
}

// NewScanner constructs a new lexical scanner that consumes input from text.
func NewScanner(text []byte) *Scanner { return &Scanner{src: text} }

// Next advances s to the next token of the input, interpreting bare words as
// values (numbers, Booleans, dates and times). At the end of the input, Next
// returns io.EOF.
func (s *Scanner) Next() error { return s.next(false) }

// NextKey advances s to the next token of the input, interpreting bare words
// as keys. This is the context for the start of a line, a table header, and
// the keys of an inline table. At the end of the input, NextKey returns
// io.EOF.
func (s *Scanner) NextKey() error { return s.next(true) }

func (s *Scanner) next(key bool) error {
	s.err = nil
	s.tok = Invalid

	// Discard horizontal whitespace. Line breaks are tokens in TOML.
	for s.end < len(s.src) && (s.src[s.end] == ' ' || s.src[s.end] == '\t') {
		s.advance(1)
	}
	s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol
	if s.end >= len(s.src) {
		return s.setErr(io.EOF)
	}

	switch ch := s.src[s.end]; ch {
	case '\n':
		s.advance(1)
		s.tok = Newline
		return nil
	case '\r':
		if s.peek(1) != '\n' {
			return s.failf("carriage return without line feed")
		}
		s.advance(2)
		s.tok = Newline
		return nil
	case '#':
		return s.scanComment()
	case '"':
		return s.scanBasic()
	case '\'':
		return s.scanLiteral()
	case '{':
		return s.punct(LBrace, 1)
	case '}':
		return s.punct(RBrace, 1)
	case ',':
		return s.punct(Comma, 1)
	case '[':
		if key && s.peek(1) == '[' {
			return s.punct(LDouble, 2)
		}
		return s.punct(LSquare, 1)
	case ']':
		if key && s.peek(1) == ']' {
			return s.punct(RDouble, 2)
		}
		return s.punct(RSquare, 1)
	}

	if key {
		switch ch := s.src[s.end]; {
		case ch == '.':
			return s.punct(Dot, 1)
		case ch == '=':
			return s.punct(Equals, 1)
		case isBareKeyByte(ch):
			s.advance(s.span(isBareKeyByte))
			s.tok = BareKey
			return nil
		}
	} else if isValueByte(s.src[s.end]) {
		return s.scanValue()
	}
	r, _ := utf8.DecodeRune(s.src[s.end:])
	return s.failf("unexpected %q", r)
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next or NextKey.
func (s *Scanner) Err() error { return s.err }

// Text returns the undecoded text of the current token. The return value is a
// view of the input buffer.
func (s *Scanner) Text() []byte { return s.src[s.pos:s.end] }

// Copy returns a copy of the undecoded text of the current token.
func (s *Scanner) Copy() []byte { return append([]byte(nil), s.Text()...) }

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: LineCol{Line: s.pline + 1, Column: s.pcol},
		Last:  LineCol{Line: s.eline + 1, Column: s.ecol},
	}
}

func (s *Scanner) punct(tok Token, n int) error {
	s.advance(n)
	s.tok = tok
	return nil
}

func (s *Scanner) scanComment() error {
	for s.end < len(s.src) {
		ch := s.src[s.end]
		if ch == '\n' || (ch == '\r' && s.peek(1) == '\n') {
			break
		} else if isControl(ch) {
			return s.failf("control %q in comment", ch)
		}
		s.advance(1)
	}
	return s.finish(Comment)
}

func (s *Scanner) scanBasic() error {
	if s.hasPrefix(`"""`) {
		return s.scanMulti('"', MultiString)
	}
	s.advance(1)
	var esc bool
	for s.end < len(s.src) {
		ch := s.src[s.end]
		if ch == '"' && !esc {
			s.advance(1)
			return s.finish(BasicString)
		} else if ch == '\n' || ch == '\r' {
			return s.failf("unterminated string")
		} else if isControl(ch) {
			return s.failf("unescaped control %q", ch)
		}
		esc = ch == '\\' && !esc
		s.advance(1)
	}
	return s.failf("unterminated string")
}

func (s *Scanner) scanLiteral() error {
	if s.hasPrefix(`'''`) {
		return s.scanMulti('\'', MultiLiteral)
	}
	s.advance(1)
	for s.end < len(s.src) {
		ch := s.src[s.end]
		if ch == '\'' {
			s.advance(1)
			return s.finish(LiteralString)
		} else if ch == '\n' || ch == '\r' {
			return s.failf("unterminated literal string")
		} else if isControl(ch) {
			return s.failf("control %q in literal string", ch)
		}
		s.advance(1)
	}
	return s.failf("unterminated literal string")
}

// scanMulti scans a multi-line string delimited by three copies of quote.
// Up to two additional quotes may directly precede the closing delimiter.
func (s *Scanner) scanMulti(quote byte, tok Token) error {
	s.advance(3)
	var esc bool
	for s.end < len(s.src) {
		ch := s.src[s.end]
		if ch == quote && !esc {
			n := 0
			for s.end+n < len(s.src) && s.src[s.end+n] == quote {
				n++
			}
			if n >= 3 {
				if n > 5 {
					return s.failf("too many quotation marks")
				}
				s.advance(n)
				return s.finish(tok)
			}
			s.advance(n)
			continue
		}
		if ch == '\r' && s.peek(1) != '\n' {
			return s.failf("carriage return without line feed")
		} else if ch != '\n' && ch != '\r' && isControl(ch) {
			return s.failf("unescaped control %q", ch)
		}
		esc = quote == '"' && ch == '\\' && !esc
		s.advance(1)
	}
	return s.failf("unterminated %v", tok)
}

// scanValue consumes a bare value: a number, Boolean, date, or time.
func (s *Scanner) scanValue() error {
	s.advance(s.span(isValueByte))

	// A date may be separated from its time by a single space, which would
	// otherwise end the token.
	if text := s.Text(); isDateShape(text) && len(text) == 10 &&
		s.peek(0) == ' ' && isDigit(s.peek(1)) && isDigit(s.peek(2)) && s.peek(3) == ':' {
		s.advance(1)
		s.advance(s.span(isValueByte))
	}
	s.tok = classify(s.Text())
	return nil
}

// span reports the length of the run of bytes matching f at the current
// offset.
func (s *Scanner) span(f func(byte) bool) int {
	n := 0
	for s.end+n < len(s.src) && f(s.src[s.end+n]) {
		n++
	}
	return n
}

// advance consumes n bytes of input, updating the line and column offsets.
func (s *Scanner) advance(n int) {
	for _, b := range s.src[s.end : s.end+n] {
		if b == '\n' {
			s.eline++
			s.ecol = 0
		} else {
			s.ecol++
		}
	}
	s.end += n
}

// peek returns the byte at offset i past the current position, or 0.
func (s *Scanner) peek(i int) byte {
	if s.end+i < len(s.src) {
		return s.src[s.end+i]
	}
	return 0
}

func (s *Scanner) hasPrefix(p string) bool {
	return mem.HasPrefix(mem.B(s.src[s.end:]), mem.S(p))
}

type posError struct {
	pos int
	err error
}

func (p posError) Error() string {
	return fmt.Sprintf("%s (offset %d)", p.err.Error(), p.pos)
}

func (p posError) Unwrap() error { return p.err }

func (s *Scanner) setErr(err error) error {
	s.err = err
	return err
}

// finish makes tok the current token, provided its text is valid UTF-8.
func (s *Scanner) finish(tok Token) error {
	if !utf8.Valid(s.Text()) {
		return s.failf("invalid UTF-8 in %v", tok)
	}
	s.tok = tok
	return nil
}

func (s *Scanner) failf(msg string, args ...any) error {
	return s.setErr(posError{s.end, fmt.Errorf(msg, args...)})
}

// classify reports the token type of a bare value from its shape. The value
// is not fully validated here; see checkValue.
func classify(text []byte) Token {
	m := mem.B(text)
	switch {
	case m.Equal(mem.S("true")), m.Equal(mem.S("false")):
		return Bool
	case isDateShape(text):
		if len(text) == 10 {
			return LocalDate
		} else if hasZone(text[10:]) {
			return OffsetDatetime
		}
		return LocalDatetime
	case len(text) >= 3 && isDigit(text[0]) && isDigit(text[1]) && text[2] == ':':
		return LocalTime
	}

	u := m
	if u.Len() != 0 && (u.At(0) == '+' || u.At(0) == '-') {
		u = u.SliceFrom(1)
	}
	switch {
	case u.Equal(mem.S("inf")), u.Equal(mem.S("nan")):
		return Float
	case mem.HasPrefix(m, mem.S("0x")), mem.HasPrefix(m, mem.S("0o")), mem.HasPrefix(m, mem.S("0b")):
		return Integer
	case containsAny(m, ".eE"):
		return Float
	}
	return Integer
}

// isDateShape reports whether text begins with YYYY-MM-DD.
func isDateShape(text []byte) bool {
	if len(text) < 10 || text[4] != '-' || text[7] != '-' {
		return false
	}
	for _, i := range []int{0, 1, 2, 3, 5, 6, 8, 9} {
		if !isDigit(text[i]) {
			return false
		}
	}
	return true
}

// hasZone reports whether the time portion of a date-time, beginning with
// its separator, carries a zone offset.
func hasZone(rest []byte) bool {
	if len(rest) < 2 {
		return false
	}
	last := rest[len(rest)-1]
	if last == 'Z' || last == 'z' {
		return true
	}
	return containsAny(mem.B(rest[1:]), "+-")
}

func containsAny(m mem.RO, chars string) bool {
	for i := 0; i < len(chars); i++ {
		if mem.IndexByte(m, chars[i]) >= 0 {
			return true
		}
	}
	return false
}

func isDigit(ch byte) bool { return '0' <= ch && ch <= '9' }

func isBareKeyByte(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '-'
}

func isValueByte(ch byte) bool {
	return isBareKeyByte(ch) || ch == '+' || ch == '.' || ch == ':'
}

// isControl reports whether ch is a control character not permitted in raw
// TOML text. Tab is permitted.
func isControl(ch byte) bool { return (ch < ' ' && ch != '\t') || ch == 0x7f }
