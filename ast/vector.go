// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast

// The vector methods of an Array convert every element of the array to a
// single type. They succeed only if every element converts; otherwise they
// return nil, false. An empty array converts to an empty vector of any type.

// StringVector returns the elements of a as strings.
func (a *Array) StringVector() ([]string, bool) { return vector(a, (*Array).GetString) }

// BoolVector returns the elements of a as Booleans.
func (a *Array) BoolVector() ([]bool, bool) { return vector(a, (*Array).GetBool) }

// IntVector returns the elements of a as integers.
func (a *Array) IntVector() ([]int64, bool) { return vector(a, (*Array).GetInt) }

// DoubleVector returns the elements of a as floats.
func (a *Array) DoubleVector() ([]float64, bool) { return vector(a, (*Array).GetDouble) }

// TimestampVector returns the elements of a as timestamps.
func (a *Array) TimestampVector() ([]Timestamp, bool) { return vector(a, (*Array).GetTimestamp) }

// TableVector returns the elements of a as tables.
func (a *Array) TableVector() ([]*Table, bool) {
	return vector(a, func(a *Array, i int) (*Table, bool) {
		t := a.GetTable(i)
		return t, t != nil
	})
}

// ArrayVector returns the elements of a as arrays.
func (a *Array) ArrayVector() ([]*Array, bool) {
	return vector(a, func(a *Array, i int) (*Array, bool) {
		arr := a.GetArray(i)
		return arr, arr != nil
	})
}

func vector[T any](a *Array, get func(*Array, int) (T, bool)) ([]T, bool) {
	if a == nil {
		return nil, false
	}
	out := make([]T, a.Len())
	for i := range out {
		v, ok := get(a, i)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}
