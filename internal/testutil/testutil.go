// Package testutil defines support code for unit tests.
package testutil

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Sample is a TOML document that exercises most of the syntax of the
// language. Its timestamps avoid forms that an independent decoder cannot
// reproduce exactly (zero fractions and "-00:00" offsets).
const Sample = `# A sample document.
title = "TOML \"sample\""
literal = 'C:\Users\nodejs'
multi = """
Roses are red
Violets are blue"""
lines = '''
first line
  second line'''

[owner]
name = "Tom Preston-Werner"
dob = 1979-05-27T07:32:00-08:00

[database]
enabled = true
ports = [ 8000, 8001, 8002 ]
data = [ ["delta", "phi"], [3.14] ]
temp_targets = { cpu = 79.5, case = 72.0 }

[servers]

[servers.alpha]
ip = "10.0.0.1"
role = "frontend"

[servers.beta]
ip = "10.0.0.2"
role = "backend"

[numbers]
hex = 0xDEAD_beef
oct = 0o755
bin = 0b1101
big = 9_223_372_036_854_775_807
neg = -17
flt = 6.626e-34
exp = 1e06
inf = -inf

[times]
odt = 1979-05-27T00:32:00.999999-07:00
ldt = 1979-05-27T07:32:00
ld = 1979-05-27
lt = 00:32:00.5
space = 1979-05-27 07:32:00Z

[[products]]
name = "Hammer"
sku = 738594937

[[products]]  # empty table within the array

[[products]]
name = "Nail"
sku = 284758393
color = "gray"

[dotted]
site."google.com" = true
a.b.c = 1
a.b.d = 2
`

// Oracle decodes text with an independent TOML decoder, and returns the
// result in the form produced by Canon.
func Oracle(text string) (map[string]any, error) {
	var m map[string]any
	if _, err := toml.Decode(text, &m); err != nil {
		return nil, err
	}
	return Canon(m).(map[string]any), nil
}

// Canon converts v into a canonical form for comparison: tables become
// map[string]any, arrays become []any, and dates and times become strings in
// TOML syntax. Values that implement fmt.Stringer are replaced by their
// string form.
func Canon(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for key, val := range t {
			out[key] = Canon(val)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Canon(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Canon(val)
		}
		return out
	case time.Time:
		return canonTime(t)
	case fmt.Stringer:
		return t.String()
	}
	return v
}

func canonTime(t time.Time) string {
	var frac string
	if ns := t.Nanosecond(); ns != 0 {
		frac = fmt.Sprintf(".%03d", ns/int(time.Millisecond))
	}
	switch t.Location().String() {
	case "date-local":
		return t.Format("2006-01-02")
	case "time-local":
		return t.Format("15:04:05") + frac
	case "datetime-local":
		return t.Format("2006-01-02T15:04:05") + frac
	}
	return t.Format("2006-01-02T15:04:05") + frac + t.Format("Z07:00")
}
