// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package tomltree_test

import (
	"errors"
	"io"
	"testing"

	"github.com/creachadair/tomltree"
	"github.com/google/go-cmp/cmp"
)

// scanAll scans input in the given context and returns the tokens and their
// text, stopping at the first error.
func scanAll(input string, key bool) ([]tomltree.Token, []string, error) {
	var toks []tomltree.Token
	var text []string
	s := tomltree.NewScanner([]byte(input))
	for {
		var err error
		if key {
			err = s.NextKey()
		} else {
			err = s.Next()
		}
		if err == io.EOF {
			return toks, text, nil
		} else if err != nil {
			return toks, text, err
		}
		toks = append(toks, s.Token())
		text = append(text, string(s.Text()))
	}
}

func TestScanner_keys(t *testing.T) {
	tests := []struct {
		input string
		want  []tomltree.Token
	}{
		// Empty inputs
		{"", nil},
		{"  \t ", nil},

		// Line breaks and comments
		{"\n\r\n", []tomltree.Token{tomltree.Newline, tomltree.Newline}},
		{"# comment\n", []tomltree.Token{tomltree.Comment, tomltree.Newline}},

		// Punctuation
		{"[ ] [[ ]] { } , . =", []tomltree.Token{
			tomltree.LSquare, tomltree.RSquare, tomltree.LDouble, tomltree.RDouble,
			tomltree.LBrace, tomltree.RBrace, tomltree.Comma, tomltree.Dot, tomltree.Equals,
		}},

		// Keys
		{`bare-key_1 "basic" 'literal' 1234`, []tomltree.Token{
			tomltree.BareKey, tomltree.BasicString, tomltree.LiteralString, tomltree.BareKey,
		}},
		{`a."b.c".'d'`, []tomltree.Token{
			tomltree.BareKey, tomltree.Dot, tomltree.BasicString, tomltree.Dot, tomltree.LiteralString,
		}},

		// Headers
		{"[a.b] # x\n[[c]]", []tomltree.Token{
			tomltree.LSquare, tomltree.BareKey, tomltree.Dot, tomltree.BareKey, tomltree.RSquare,
			tomltree.Comment, tomltree.Newline,
			tomltree.LDouble, tomltree.BareKey, tomltree.RDouble,
		}},
	}

	for _, test := range tests {
		got, _, err := scanAll(test.input, true)
		if err != nil {
			t.Errorf("NextKey failed: %v", err)
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestScanner_values(t *testing.T) {
	tests := []struct {
		input string
		want  []tomltree.Token
	}{
		// Strings
		{`"" "a b" "a\"b"`, []tomltree.Token{
			tomltree.BasicString, tomltree.BasicString, tomltree.BasicString,
		}},
		{`'' 'C:\x'`, []tomltree.Token{tomltree.LiteralString, tomltree.LiteralString}},
		{"\"\"\"a\nb\"\"\" '''c\nd'''", []tomltree.Token{tomltree.MultiString, tomltree.MultiLiteral}},
		{`"""a""""" '''b'''''`, []tomltree.Token{tomltree.MultiString, tomltree.MultiLiteral}},

		// Numbers
		{`0 -1 +5_139 0xff 0o7 0b1`, []tomltree.Token{
			tomltree.Integer, tomltree.Integer, tomltree.Integer,
			tomltree.Integer, tomltree.Integer, tomltree.Integer,
		}},
		{`2.5 5e+9 3.6E4 -inf +nan nan`, []tomltree.Token{
			tomltree.Float, tomltree.Float, tomltree.Float,
			tomltree.Float, tomltree.Float, tomltree.Float,
		}},

		// Booleans
		{`true false`, []tomltree.Token{tomltree.Bool, tomltree.Bool}},

		// Dates and times
		{`1979-05-27T07:32:00Z 1979-05-27 07:32:00-07:00`, []tomltree.Token{
			tomltree.OffsetDatetime, tomltree.OffsetDatetime,
		}},
		{`1979-05-27T07:32:00.999 1979-05-27 07:32:00`, []tomltree.Token{
			tomltree.LocalDatetime, tomltree.LocalDatetime,
		}},
		{`1979-05-27, 00:32:00.5`, []tomltree.Token{
			tomltree.LocalDate, tomltree.Comma, tomltree.LocalTime,
		}},

		// Structure
		{`[1, [2], {}]`, []tomltree.Token{
			tomltree.LSquare, tomltree.Integer, tomltree.Comma,
			tomltree.LSquare, tomltree.Integer, tomltree.RSquare, tomltree.Comma,
			tomltree.LBrace, tomltree.RBrace, tomltree.RSquare,
		}},
	}

	for _, test := range tests {
		got, _, err := scanAll(test.input, false)
		if err != nil {
			t.Errorf("Next failed: %v", err)
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestScanner_text(t *testing.T) {
	_, got, err := scanAll(`"a\tb" # note`+"\n"+`1979-05-27 07:32:00`, false)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	want := []string{`"a\tb"`, "# note", "\n", "1979-05-27 07:32:00"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Token text (-want, +got):\n%s", diff)
	}
}

func TestScanner_errors(t *testing.T) {
	tests := []struct {
		input string
		key   bool
	}{
		{`"unterminated`, false},
		{"\"line\nbreak\"", false},
		{`'unterminated`, false},
		{`"""unterminated`, false},
		{`'''x''''''`, false},
		{"\"ctl\x01\"", false},
		{"\"\xff\"", false},
		{"'a\xc3'", false},
		{"'''\xfe'''", false},
		{"# \xff\n", true},
		{"\r", true},
		{"@", true},
		{"!", false},
	}
	for _, test := range tests {
		_, _, err := scanAll(test.input, test.key)
		if err == nil {
			t.Errorf("Scan %#q: got nil error, want error", test.input)
		} else if errors.Is(err, io.EOF) {
			t.Errorf("Scan %#q: got EOF, want error", test.input)
		}
	}
}

func TestScanner_location(t *testing.T) {
	s := tomltree.NewScanner([]byte("a = 1\n  bcd = 'x'\n"))
	var got []tomltree.Location
	for s.NextKey() == nil {
		got = append(got, s.Location())
	}
	want := []tomltree.Location{
		{Span: tomltree.Span{Pos: 0, End: 1}, First: tomltree.LineCol{Line: 1, Column: 0}, Last: tomltree.LineCol{Line: 1, Column: 1}},
		{Span: tomltree.Span{Pos: 2, End: 3}, First: tomltree.LineCol{Line: 1, Column: 2}, Last: tomltree.LineCol{Line: 1, Column: 3}},
		{Span: tomltree.Span{Pos: 4, End: 5}, First: tomltree.LineCol{Line: 1, Column: 4}, Last: tomltree.LineCol{Line: 1, Column: 5}},
		{Span: tomltree.Span{Pos: 5, End: 6}, First: tomltree.LineCol{Line: 1, Column: 5}, Last: tomltree.LineCol{Line: 2, Column: 0}},
		{Span: tomltree.Span{Pos: 8, End: 11}, First: tomltree.LineCol{Line: 2, Column: 2}, Last: tomltree.LineCol{Line: 2, Column: 5}},
		{Span: tomltree.Span{Pos: 12, End: 13}, First: tomltree.LineCol{Line: 2, Column: 6}, Last: tomltree.LineCol{Line: 2, Column: 7}},
		{Span: tomltree.Span{Pos: 14, End: 17}, First: tomltree.LineCol{Line: 2, Column: 8}, Last: tomltree.LineCol{Line: 2, Column: 11}},
		{Span: tomltree.Span{Pos: 17, End: 18}, First: tomltree.LineCol{Line: 2, Column: 11}, Last: tomltree.LineCol{Line: 3, Column: 0}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Locations (-want, +got):\n%s", diff)
	}
}
