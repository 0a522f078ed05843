// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast

// ToMap converts t into a map of plain Go values. Tables become
// map[string]any, arrays become []any, and scalars become string, int64,
// float64, bool, or Timestamp values according to their type.
func (t *Table) ToMap() map[string]any {
	if t == nil {
		return nil
	}
	out := make(map[string]any, t.Len())
	for _, key := range t.Keys() {
		out[key] = toAny(t.Get(key))
	}
	return out
}

func toAny(n Node) any {
	switch v := n.(type) {
	case *Table:
		return v.ToMap()
	case *Array:
		out := make([]any, v.Len())
		for i := range out {
			out[i] = toAny(v.Index(i))
		}
		return out
	case *Value:
		switch v.Type() {
		case TypeString:
			s, _ := v.ToString()
			return s
		case TypeInt:
			z, _ := v.ToInt()
			return z
		case TypeFloat:
			f, _ := v.ToDouble()
			return f
		case TypeBool:
			b, _ := v.ToBool()
			return b
		default:
			ts, _ := v.ToTimestamp()
			return ts
		}
	}
	return nil
}
