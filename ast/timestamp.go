// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"
	"strings"
	"time"

	"github.com/creachadair/tomltree"
)

// A Timestamp is the value of a TOML date, time, or date-time. A field that
// is absent from the source has the value -1. Whether a timestamp is a date,
// a time, or both is determined by which fields are present.
type Timestamp struct {
	Year, Month, Day     int
	Hour, Minute, Second int
	Millisecond          int
	Zone                 string // as written, e.g., "Z" or "-07:00"; "" if local
}

func newTimestamp(d tomltree.Datetime) Timestamp {
	ts := Timestamp{
		Year: -1, Month: -1, Day: -1,
		Hour: -1, Minute: -1, Second: -1,
		Millisecond: -1,
		Zone:        d.Zone,
	}
	if d.HasDate {
		ts.Year, ts.Month, ts.Day = d.Year, d.Month, d.Day
	}
	if d.HasTime {
		ts.Hour, ts.Minute, ts.Second = d.Hour, d.Minute, d.Second
		if d.HasFraction {
			ts.Millisecond = d.Nanosecond / int(time.Millisecond)
		}
	}
	return ts
}

// IsDate reports whether ts has a date and no time.
func (ts Timestamp) IsDate() bool { return ts.Year != -1 && ts.Hour == -1 }

// IsTime reports whether ts has a time and no date.
func (ts Timestamp) IsTime() bool { return ts.Year == -1 && ts.Hour != -1 }

// IsDateTime reports whether ts has both a date and a time.
func (ts Timestamp) IsDateTime() bool { return ts.Year != -1 && ts.Hour != -1 }

// String renders ts in TOML syntax, with zero-padded fields. Milliseconds and
// the zone are included only if present.
func (ts Timestamp) String() string {
	var sb strings.Builder
	if ts.Year != -1 {
		fmt.Fprintf(&sb, "%04d-%02d-%02d", ts.Year, ts.Month, ts.Day)
	}
	if ts.Hour != -1 {
		if sb.Len() != 0 {
			sb.WriteByte('T')
		}
		fmt.Fprintf(&sb, "%02d:%02d:%02d", ts.Hour, ts.Minute, ts.Second)
		if ts.Millisecond != -1 {
			fmt.Fprintf(&sb, ".%03d", ts.Millisecond)
		}
		sb.WriteString(ts.Zone)
	}
	return sb.String()
}

// Time converts ts to a time.Time. It reports false if ts has no date. A
// missing time is midnight, and a timestamp without a zone is taken to be
// in UTC.
func (ts Timestamp) Time() (time.Time, bool) {
	if ts.Year == -1 {
		return time.Time{}, false
	}
	var hour, minute, sec, ms int
	if ts.Hour != -1 {
		hour, minute, sec = ts.Hour, ts.Minute, ts.Second
	}
	if ts.Millisecond != -1 {
		ms = ts.Millisecond
	}
	loc := time.UTC
	if len(ts.Zone) == 6 {
		off := ((int(ts.Zone[1]-'0')*10+int(ts.Zone[2]-'0'))*60 +
			int(ts.Zone[4]-'0')*10 + int(ts.Zone[5]-'0')) * 60
		if ts.Zone[0] == '-' {
			off = -off
		}
		loc = time.FixedZone(ts.Zone, off)
	}
	return time.Date(ts.Year, time.Month(ts.Month), ts.Day,
		hour, minute, sec, ms*int(time.Millisecond), loc), true
}
