// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package tomltree

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/creachadair/tomltree/internal/escape"

	"go4.org/mem"
)

// ParseString decodes the raw text of a TOML string token in any of its four
// forms: basic, literal, multi-line basic, or multi-line literal. Escape
// sequences in basic strings are replaced by their unescaped equivalents. It
// reports an error if raw is not a string token.
func ParseString(raw []byte) (string, error) {
	m := mem.B(raw)
	switch {
	case hasDelims(m, `"""`):
		dec, err := escape.Unquote(trimFirstNewline(unwrap(m, 3)), true)
		if err != nil {
			return "", err
		}
		return string(dec), nil
	case hasDelims(m, `'''`):
		return trimFirstNewline(unwrap(m, 3)).StringCopy(), nil
	case hasDelims(m, `"`):
		dec, err := escape.Unquote(unwrap(m, 1), false)
		if err != nil {
			return "", err
		}
		return string(dec), nil
	case hasDelims(m, `'`):
		return unwrap(m, 1).StringCopy(), nil
	}
	return "", errors.New("not a string")
}

// ParseBool decodes the raw text of a TOML Boolean, which must be exactly
// "true" or "false".
func ParseBool(raw []byte) (bool, error) {
	switch m := mem.B(raw); {
	case m.Equal(mem.S("true")):
		return true, nil
	case m.Equal(mem.S("false")):
		return false, nil
	}
	return false, errors.New("not a bool")
}

// ParseInt decodes the raw text of a TOML integer as a signed 64-bit value.
// Decimal integers may have a sign; hexadecimal (0x), octal (0o) and binary
// (0b) integers may not. Underscores are permitted between digits.
func ParseInt(raw []byte) (int64, error) {
	m := mem.B(raw)
	if m.Len() == 0 {
		return 0, errors.New("empty integer")
	}
	if m.Len() > 2 && m.At(0) == '0' {
		var base int
		var ok func(byte) bool
		switch m.At(1) {
		case 'x':
			base, ok = 16, isHexDigit
		case 'o':
			base, ok = 8, isOctDigit
		case 'b':
			base, ok = 2, isBinDigit
		}
		if base != 0 {
			digits, err := stripUnderscores(m.SliceFrom(2), ok)
			if err != nil {
				return 0, err
			}
			return parseInt(digits, base)
		}
	}

	var sign string
	if b := m.At(0); b == '+' || b == '-' {
		sign, m = string(b), m.SliceFrom(1)
	}
	digits, err := stripUnderscores(m, isDigit)
	if err != nil {
		return 0, err
	} else if len(digits) > 1 && digits[0] == '0' {
		return 0, errors.New("leading zero in integer")
	}
	return parseInt(sign+digits, 10)
}

// parseInt wraps strconv.ParseInt, which reports a clamped value on overflow.
func parseInt(digits string, base int) (int64, error) {
	v, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return 0, err
	}
	return v, nil
}

// ParseFloat decodes the raw text of a TOML float as an IEEE 754 double. A
// float must have a fractional part, an exponent, or both, or be one of the
// special values inf and nan with an optional sign.
func ParseFloat(raw []byte) (float64, error) {
	m := mem.B(raw)
	var sign string
	if m.Len() != 0 && (m.At(0) == '+' || m.At(0) == '-') {
		sign, m = string(m.At(0)), m.SliceFrom(1)
	}
	switch {
	case m.Equal(mem.S("inf")):
		if sign == "-" {
			return math.Inf(-1), nil
		}
		return math.Inf(1), nil
	case m.Equal(mem.S("nan")):
		return math.NaN(), nil
	}

	var num strings.Builder
	num.WriteString(sign)

	whole, rest := cutDigits(m)
	digits, err := stripUnderscores(whole, isDigit)
	if err != nil {
		return 0, err
	} else if len(digits) > 1 && digits[0] == '0' {
		return 0, errors.New("leading zero in float")
	}
	num.WriteString(digits)

	var isFloat bool
	if rest.Len() != 0 && rest.At(0) == '.' {
		var frac mem.RO
		frac, rest = cutDigits(rest.SliceFrom(1))
		digits, err := stripUnderscores(frac, isDigit)
		if err != nil {
			return 0, fmt.Errorf("fraction: %w", err)
		}
		num.WriteByte('.')
		num.WriteString(digits)
		isFloat = true
	}
	if rest.Len() != 0 && (rest.At(0) == 'e' || rest.At(0) == 'E') {
		rest = rest.SliceFrom(1)
		num.WriteByte('e')
		if rest.Len() != 0 && (rest.At(0) == '+' || rest.At(0) == '-') {
			num.WriteByte(rest.At(0))
			rest = rest.SliceFrom(1)
		}
		var exp mem.RO
		exp, rest = cutDigits(rest)
		digits, err := stripUnderscores(exp, isDigit)
		if err != nil {
			return 0, fmt.Errorf("exponent: %w", err)
		}
		num.WriteString(digits)
		isFloat = true
	}
	if rest.Len() != 0 {
		return 0, fmt.Errorf("unexpected %q in float", rest.At(0))
	} else if !isFloat {
		return 0, errors.New("missing fraction or exponent")
	}
	v, err := strconv.ParseFloat(num.String(), 64)
	if err != nil {
		return 0, err // out of range
	}
	return v, nil
}

// checkValue reports whether text is a valid instance of the value token type
// tok, by decoding it.
func checkValue(tok Token, text []byte) error {
	var err error
	switch tok {
	case BasicString, LiteralString, MultiString, MultiLiteral:
		_, err = ParseString(text)
	case Integer:
		_, err = ParseInt(text)
	case Float:
		_, err = ParseFloat(text)
	case Bool:
		_, err = ParseBool(text)
	case OffsetDatetime, LocalDatetime, LocalDate, LocalTime:
		var d Datetime
		d, err = ParseDatetime(text)
		if err == nil && d.Token() != tok {
			err = fmt.Errorf("malformed %v", tok)
		}
	default:
		err = fmt.Errorf("unexpected %v", tok)
	}
	return err
}

func hasDelims(m mem.RO, q string) bool {
	return m.Len() >= 2*len(q) && mem.HasPrefix(m, mem.S(q)) && mem.HasSuffix(m, mem.S(q))
}

// unwrap removes n bytes from each end of m.
func unwrap(m mem.RO, n int) mem.RO { return m.SliceFrom(n).SliceTo(m.Len() - 2*n) }

// trimFirstNewline removes a line break directly following the opening
// delimiter of a multi-line string.
func trimFirstNewline(m mem.RO) mem.RO {
	if mem.HasPrefix(m, mem.S("\n")) {
		return m.SliceFrom(1)
	} else if mem.HasPrefix(m, mem.S("\r\n")) {
		return m.SliceFrom(2)
	}
	return m
}

// cutDigits splits m after its leading run of digits and underscores.
func cutDigits(m mem.RO) (digits, rest mem.RO) {
	i := 0
	for i < m.Len() && (isDigit(m.At(i)) || m.At(i) == '_') {
		i++
	}
	return m.SliceTo(i), m.SliceFrom(i)
}

// stripUnderscores returns the digits of m with underscores removed. Every
// byte must satisfy ok or be an underscore between two digits.
func stripUnderscores(m mem.RO, ok func(byte) bool) (string, error) {
	if m.Len() == 0 {
		return "", errors.New("missing digits")
	}
	var sb strings.Builder
	for i := 0; i < m.Len(); i++ {
		b := m.At(i)
		if b == '_' {
			if i == 0 || i == m.Len()-1 || !ok(m.At(i-1)) || !ok(m.At(i+1)) {
				return "", errors.New("underscore must be between digits")
			}
			continue
		} else if !ok(b) {
			return "", fmt.Errorf("invalid digit %q", b)
		}
		sb.WriteByte(b)
	}
	return sb.String(), nil
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isOctDigit(ch byte) bool { return ch >= '0' && ch <= '7' }
func isBinDigit(ch byte) bool { return ch == '0' || ch == '1' }
