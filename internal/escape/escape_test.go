// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package escape_test

import (
	"testing"

	"github.com/creachadair/tomltree/internal/escape"
	"go4.org/mem"
)

func TestUnquote(t *testing.T) {
	tests := []struct {
		input     string
		multiline bool
		want      string
	}{
		{"", false, ""},
		{"plain text", false, "plain text"},
		{`a\"b\\c`, false, `a"b\c`},
		{`A\U0001F642`, false, "A🙂"},
		{`tab\there`, false, "tab\there"},
		{"x\\\n  y", true, "xy"},
		{"x \\ \t\r\n\n\t y", true, "x y"},
		{"end\\\n", true, "end"},
	}
	for _, test := range tests {
		got, err := escape.Unquote(mem.S(test.input), test.multiline)
		if err != nil {
			t.Errorf("Unquote(%#q, %v): unexpected error: %v", test.input, test.multiline, err)
		} else if string(got) != test.want {
			t.Errorf("Unquote(%#q, %v): got %q, want %q", test.input, test.multiline, got, test.want)
		}
	}
}

func TestUnquoteErrors(t *testing.T) {
	tests := []struct {
		input     string
		multiline bool
	}{
		{`\`, false},
		{`\q`, false},
		{`\u00`, false},
		{`\uDFFF`, false},
		{`\U00110000`, false},
		{`\u00G0`, false},
		{"x\\\ny", false},   // line continuation outside multi-line strings
		{"x\\  y\nz", true}, // backslash not at end of line
	}
	for _, test := range tests {
		if got, err := escape.Unquote(mem.S(test.input), test.multiline); err == nil {
			t.Errorf("Unquote(%#q, %v): got %q, want error", test.input, test.multiline, got)
		}
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", ""},
		{"abc", "abc"},
		{"a\"b\\c", `a\"b\\c`},
		{"\b\t\n\f\r", `\b\t\n\f\r`},
		{"\x01 é", "\x01 é"},
	}
	for _, test := range tests {
		got := escape.Quote([]byte("<"), mem.S(test.input))
		if want := "<" + test.want; string(got) != want {
			t.Errorf("Quote(%q): got %#q, want %#q", test.input, got, want)
		}
	}
}
