/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package filter

import (
	"strings"
	"time"
)

// Matches evaluates f against an entity whose attributes are read through get.
// get returns strings, float64 numbers, bools or time.Time values; a missing
// attribute fails every comparison that names it.
func (f Filter) Matches(get func(field string) (any, bool)) bool {
	for _, c := range f.conds {
		actual, ok := get(c.Field)
		if !ok || !c.matches(actual) {
			return false
		}
	}
	return true
}

func (c Condition) matches(actual any) bool {
	if c.Op == BeginsWith {
		s, ok := actual.(string)
		return ok && strings.HasPrefix(s, c.Value.s)
	}

	var cmp int
	switch c.Value.kind {
	case KindString:
		s, ok := actual.(string)
		if !ok {
			return false
		}
		cmp = strings.Compare(s, c.Value.s)
	case KindInt, KindFloat:
		n, ok := toFloat(actual)
		if !ok {
			return false
		}
		want := c.Value.f
		if c.Value.kind == KindInt {
			want = float64(c.Value.i)
		}
		cmp = compareFloat(n, want)
	case KindBool:
		b, ok := actual.(bool)
		if !ok {
			return false
		}
		switch c.Op {
		case Equal:
			return b == c.Value.b
		case NotEqual:
			return b != c.Value.b
		}
		return false
	case KindTime:
		t, ok := toTime(actual)
		if !ok {
			return false
		}
		cmp = t.Compare(c.Value.t)
	}

	switch c.Op {
	case Equal:
		return cmp == 0
	case NotEqual:
		return cmp != 0
	case GreaterThan:
		return cmp > 0
	case GreaterThanOrEqual:
		return cmp >= 0
	case LessThan:
		return cmp < 0
	case LessThanOrEqual:
		return cmp <= 0
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		return parsed, err == nil
	}
	return time.Time{}, false
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
