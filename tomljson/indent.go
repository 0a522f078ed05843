// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package tomljson

import (
	"fmt"

	"github.com/tailscale/hujson"
)

// Indent returns a copy of the JSON text data with one member or element per
// line, indented by nesting depth. Control characters that are left verbatim
// in a projection are escaped as \u00XX in the indented copy, so that the
// result is valid JSON.
func Indent(data []byte) ([]byte, error) {
	v, err := hujson.Parse(expand(data))
	if err != nil {
		return nil, fmt.Errorf("indent: %w", err)
	}
	v.Format()
	return v.Pack(), nil
}

// expand inserts line breaks after each open bracket and comma, and before
// each close bracket, outside of strings.
func expand(data []byte) []byte {
	out := make([]byte, 0, len(data)+len(data)/4)
	inString := false
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			switch {
			case c == '\\' && i+1 < len(data):
				out = append(out, c, data[i+1])
				i++
				continue
			case c == '"':
				inString = false
			case c < ' ':
				out = fmt.Appendf(out, `\u%04x`, c)
				continue
			}
			out = append(out, c)
			continue
		}
		switch c {
		case '"':
			inString = true
			out = append(out, c)
		case '{', '[':
			out = append(out, c, '\n')
		case '}', ']':
			out = append(out, '\n', c)
		case ',':
			out = append(out, c, '\n')
		default:
			out = append(out, c)
		}
	}
	return out
}
