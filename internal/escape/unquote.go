// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles unquoting of TOML strings and quoting of text for
// the JSON projection.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes a byte slice containing the body of a TOML basic string.
// The input must have the enclosing quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents. Unquote
// reports an error for an unknown or incomplete escape sequence, or for a
// Unicode escape that does not denote a scalar value. If multiline is true, a
// backslash at the end of a line removes the line break and all whitespace
// up to the next non-whitespace character.
func Unquote(src mem.RO, multiline bool) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		dec = mem.Append(dec, src)
		return dec, nil
	}

	putByte := func(bs ...byte) { dec = append(dec, bs...) }
	putRune := func(r rune) { dec = utf8.AppendRune(dec, r) }
	for src.Len() != 0 {
		dec = mem.Append(dec, src.SliceTo(i))

		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}
		b := src.At(0)
		src = src.SliceFrom(1)
		switch b {
		case '"', '\\':
			putByte(b)
		case 'b':
			putByte('\b')
		case 'f':
			putByte('\f')
		case 'n':
			putByte('\n')
		case 'r':
			putByte('\r')
		case 't':
			putByte('\t')
		case 'u', 'U':
			n := 4
			if b == 'U' {
				n = 8
			}
			if src.Len() < n {
				return nil, errors.New("incomplete Unicode escape")
			}
			v, err := parseHex(src.SliceTo(n))
			if err != nil {
				return nil, err
			} else if v > utf8.MaxRune || !utf8.ValidRune(rune(v)) {
				return nil, fmt.Errorf("invalid Unicode scalar value %U", v)
			}
			putRune(rune(v))
			src = src.SliceFrom(n)
		case ' ', '\t', '\r', '\n':
			if !multiline {
				return nil, fmt.Errorf("invalid escape %q", b)
			}
			rest, ok := trimLineEnd(src, b)
			if !ok {
				return nil, errors.New("backslash must end the line")
			}
			src = rest
		default:
			return nil, fmt.Errorf("invalid escape %q", b)
		}

		// Look for the next escape sequence, and if one is not found we can blit
		// the rest of the input and go home.
		i = mem.IndexByte(src, '\\')
		if i < 0 {
			dec = mem.Append(dec, src)
			break
		}
	}
	return dec, nil
}

// trimLineEnd handles a line-ending backslash whose first following byte
// (already consumed) is first. It verifies that only whitespace remains on
// the line, and returns src with all whitespace and line breaks removed from
// the front.
func trimLineEnd(src mem.RO, first byte) (mem.RO, bool) {
	sawNL := first == '\n'
	for src.Len() != 0 {
		switch src.At(0) {
		case '\n':
			sawNL = true
		case ' ', '\t', '\r':
		default:
			return src, sawNL
		}
		src = src.SliceFrom(1)
	}
	return src, sawNL
}

func parseHex(data mem.RO) (int64, error) {
	var v int64
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		if '0' <= b && b <= '9' {
			v += int64(b - '0')
		} else if 'a' <= b && b <= 'f' {
			v += int64(b - 'a' + 10)
		} else if 'A' <= b && b <= 'F' {
			v += int64(b - 'A' + 10)
		} else {
			return 0, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, nil
}
