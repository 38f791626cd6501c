/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package filter

import (
	"strconv"
	"strings"
	"time"

	"github.com/suparena/tablestore/storagemodels"
)

// Op is a comparison operator.
type Op string

const (
	Equal              Op = "eq"
	NotEqual           Op = "ne"
	GreaterThan        Op = "gt"
	GreaterThanOrEqual Op = "ge"
	LessThan           Op = "lt"
	LessThanOrEqual    Op = "le"
	// BeginsWith matches string values with the given prefix.
	BeginsWith Op = "startswith"
)

// Kind identifies the literal type of a Value.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindTime
)

// Value is a typed literal on the right side of a comparison.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
	t    time.Time
}

func String(v string) Value  { return Value{kind: KindString, s: v} }
func Int(v int64) Value      { return Value{kind: KindInt, i: v} }
func Float(v float64) Value  { return Value{kind: KindFloat, f: v} }
func Bool(v bool) Value      { return Value{kind: KindBool, b: v} }
func Time(v time.Time) Value { return Value{kind: KindTime, t: v.UTC()} }

// Kind returns the literal type.
func (v Value) Kind() Kind { return v.kind }

// Interface returns the literal as a Go value. Times are returned in UTC.
func (v Value) Interface() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	case KindTime:
		return v.t
	}
	return v.s
}

// Literal renders v in the store's textual literal syntax.
func (v Value) Literal() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTime:
		return "datetime'" + v.t.Format(time.RFC3339Nano) + "'"
	}
	return quote(v.s)
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Condition is a single `field op value` comparison.
type Condition struct {
	Field string
	Op    Op
	Value Value
}

func (c Condition) String() string {
	terms := c.terms()
	if len(terms) == 1 {
		return terms[0]
	}
	return "(" + strings.Join(terms, ") and (") + ")"
}

// terms renders c as the comparisons it stands for. BeginsWith becomes a
// ge/lt range over the prefix.
func (c Condition) terms() []string {
	if c.Op != BeginsWith {
		return []string{c.Field + " " + string(c.Op) + " " + c.Value.Literal()}
	}
	lower := c.Field + " ge " + quote(c.Value.s)
	upper, ok := prefixUpperBound(c.Value.s)
	if !ok {
		return []string{lower}
	}
	return []string{lower, c.Field + " lt " + quote(upper)}
}

// Filter is an immutable conjunction of conditions.
// The zero Filter matches every entity.
type Filter struct {
	conds []Condition
}

// Compare builds a single comparison. It panics when field is empty.
func Compare(field string, op Op, value Value) Filter {
	if field == "" {
		panic("filter: empty field name")
	}
	switch op {
	case Equal, NotEqual, GreaterThan, GreaterThanOrEqual, LessThan, LessThanOrEqual:
	case BeginsWith:
		if value.kind != KindString {
			panic("filter: " + string(op) + " requires a string value")
		}
	default:
		panic("filter: unknown operator " + string(op))
	}
	return Filter{conds: []Condition{{Field: field, Op: op, Value: value}}}
}

// FieldEquals matches entities whose field equals the string value.
func FieldEquals(field, value string) Filter {
	return Compare(field, Equal, String(value))
}

// PartitionKeyEquals restricts a query to one partition.
func PartitionKeyEquals(partitionKey string) Filter {
	return Compare(storagemodels.AttrPartitionKey, Equal, String(partitionKey))
}

// RowKeyStartsWith matches the rows of one partition whose row key has the given prefix.
func RowKeyStartsWith(partitionKey, prefix string) Filter {
	return And(PartitionKeyEquals(partitionKey), Compare(storagemodels.AttrRowKey, BeginsWith, String(prefix)))
}

// And combines filters. Match-all operands are dropped.
func And(filters ...Filter) Filter {
	var n int
	for _, f := range filters {
		n += len(f.conds)
	}
	if n == 0 {
		return Filter{}
	}
	conds := make([]Condition, 0, n)
	for _, f := range filters {
		conds = append(conds, f.conds...)
	}
	return Filter{conds: conds}
}

// And returns f combined with others.
func (f Filter) And(others ...Filter) Filter {
	return And(append([]Filter{f}, others...)...)
}

// IsEmpty reports whether f matches every entity.
func (f Filter) IsEmpty() bool { return len(f.conds) == 0 }

// Conditions returns a copy of the conjunction's operands.
func (f Filter) Conditions() []Condition {
	out := make([]Condition, len(f.conds))
	copy(out, f.conds)
	return out
}

// PartitionKey returns the value of the first partition-key equality, if any.
func (f Filter) PartitionKey() (string, bool) {
	for _, c := range f.conds {
		if c.Field == storagemodels.AttrPartitionKey && c.Op == Equal && c.Value.kind == KindString {
			return c.Value.s, true
		}
	}
	return "", false
}

// String renders the filter in its textual form, e.g.
//
//	(PartitionKey eq 'hack') and (Category eq 'User')
func (f Filter) String() string {
	switch len(f.conds) {
	case 0:
		return ""
	case 1:
		return f.conds[0].String()
	}
	parts := make([]string, 0, len(f.conds))
	for _, c := range f.conds {
		for _, term := range c.terms() {
			parts = append(parts, "("+term+")")
		}
	}
	return strings.Join(parts, " and ")
}

// prefixUpperBound returns the smallest string greater than every string
// starting with prefix, by incrementing its last character.
func prefixUpperBound(prefix string) (string, bool) {
	r := []rune(prefix)
	for i := len(r) - 1; i >= 0; i-- {
		if r[i] < 0x10FFFF {
			r[i]++
			return string(r[:i+1]), true
		}
	}
	return "", false
}
