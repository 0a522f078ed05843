// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package tomltree

import (
	"errors"
	"fmt"
)

// A Datetime is the decoded value of a TOML offset date-time, local
// date-time, local date, or local time. Which of these it is depends on
// which of HasDate, HasTime, and Zone are set.
type Datetime struct {
	HasDate          bool
	Year, Month, Day int

	HasTime              bool
	Hour, Minute, Second int
	HasFraction          bool // fractional seconds were present
	Nanosecond           int  // digits beyond nanoseconds are truncated

	Zone string // offset text as written ("Z", "-07:00"); "" if local
}

// Token reports the token type corresponding to the shape of d.
func (d Datetime) Token() Token {
	switch {
	case d.HasDate && d.HasTime && d.Zone != "":
		return OffsetDatetime
	case d.HasDate && d.HasTime:
		return LocalDatetime
	case d.HasDate:
		return LocalDate
	case d.HasTime:
		return LocalTime
	}
	return Invalid
}

// ParseDatetime decodes the raw text of a TOML date, time, or date-time. The
// date and time may be separated by "T", "t", or a single space. Seconds are
// required. An offset is only permitted when both a date and a time are
// present.
func ParseDatetime(raw []byte) (Datetime, error) {
	var d Datetime
	rest := string(raw)
	if isDateShape(raw) {
		d.HasDate = true
		d.Year, _ = atoi(rest[0:4])
		d.Month, _ = atoi(rest[5:7])
		d.Day, _ = atoi(rest[8:10])
		if d.Month < 1 || d.Month > 12 {
			return Datetime{}, fmt.Errorf("month %d out of range", d.Month)
		} else if d.Day < 1 || d.Day > daysIn(d.Year, d.Month) {
			return Datetime{}, fmt.Errorf("day %d out of range", d.Day)
		}
		rest = rest[10:]
		if rest == "" {
			return d, nil
		}
		switch rest[0] {
		case 'T', 't', ' ':
			rest = rest[1:]
		default:
			return Datetime{}, fmt.Errorf("unexpected %q after date", rest[0])
		}
	}

	if len(rest) < 8 || rest[2] != ':' || rest[5] != ':' {
		return Datetime{}, errors.New("malformed time")
	}
	var ok [3]bool
	d.Hour, ok[0] = atoi(rest[0:2])
	d.Minute, ok[1] = atoi(rest[3:5])
	d.Second, ok[2] = atoi(rest[6:8])
	if ok != [3]bool{true, true, true} {
		return Datetime{}, errors.New("malformed time")
	} else if d.Hour > 23 || d.Minute > 59 || d.Second > 60 {
		return Datetime{}, fmt.Errorf("time %s out of range", rest[:8])
	}
	d.HasTime = true
	rest = rest[8:]

	if rest != "" && rest[0] == '.' {
		n := 1
		for n < len(rest) && isDigit(rest[n]) {
			n++
		}
		if n == 1 {
			return Datetime{}, errors.New("missing fractional seconds")
		}
		d.HasFraction = true
		d.Nanosecond = fraction(rest[1:n])
		rest = rest[n:]
	}
	if rest == "" {
		return d, nil
	} else if !d.HasDate {
		return Datetime{}, errors.New("offset without a date")
	}
	if err := checkZone(rest); err != nil {
		return Datetime{}, err
	}
	d.Zone = rest
	return d, nil
}

func checkZone(z string) error {
	if z == "Z" || z == "z" {
		return nil
	}
	if len(z) != 6 || (z[0] != '+' && z[0] != '-') || z[3] != ':' {
		return fmt.Errorf("malformed offset %q", z)
	}
	h, hok := atoi(z[1:3])
	m, mok := atoi(z[4:6])
	if !hok || !mok || h > 23 || m > 59 {
		return fmt.Errorf("offset %q out of range", z)
	}
	return nil
}

// fraction converts a string of decimal digits following a decimal point to
// nanoseconds, ignoring digits past the ninth.
func fraction(digits string) int {
	var v, n int
	for n < 9 {
		v *= 10
		if n < len(digits) {
			v += int(digits[n] - '0')
		}
		n++
	}
	return v
}

func atoi(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	var v int
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return 0, false
		}
		v = v*10 + int(s[i]-'0')
	}
	return v, true
}

func daysIn(year, month int) int {
	switch month {
	case 2:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	}
	return 31
}
