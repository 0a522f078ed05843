// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import "go4.org/mem"

var controlEsc = [...]byte{
	'\b': 'b',
	'\t': 't',
	'\n': 'n',
	'\f': 'f',
	'\r': 'r',
	'"':  '"',
	'\\': '\\',
}

// Quote appends src to buf, escaping backspace, tab, newline, form feed,
// carriage return, double quotation marks and backslash with their
// two-character sequences. All other bytes are copied verbatim, including
// other control characters and non-ASCII text.
func Quote(buf []byte, src mem.RO) []byte {
	for i := 0; i < src.Len(); i++ {
		b := src.At(i)
		if int(b) < len(controlEsc) && controlEsc[b] != 0 {
			buf = append(buf, '\\', controlEsc[b])
		} else {
			buf = append(buf, b)
		}
	}
	return buf
}
