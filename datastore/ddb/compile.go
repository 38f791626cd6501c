/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"

	"github.com/suparena/tablestore/errors"
	"github.com/suparena/tablestore/filter"
	"github.com/suparena/tablestore/storagemodels"
)

// plan is a filter compiled for one Query or Scan request.
type plan struct {
	query bool
	expr  expression.Expression
	// empty is set when a Scan has nothing to filter on
	empty bool
}

// compile turns f into a key condition plus a filter expression. A filter
// with a partition-key equality runs as a Query: the equality and at most one
// row-key comparison form the key condition and every other comparison
// becomes the filter. Without one the whole filter is applied to a Scan.
func compile(f filter.Filter) (plan, error) {
	conds := f.Conditions()
	if len(conds) == 0 {
		return plan{empty: true}, nil
	}

	if _, ok := f.PartitionKey(); !ok {
		cond, err := conditionOf(conds)
		if err != nil {
			return plan{}, err
		}
		expr, err := expression.NewBuilder().WithFilter(cond).Build()
		if err != nil {
			return plan{}, fmt.Errorf("failed to build scan filter %q: %w", f.String(), err)
		}
		return plan{expr: expr}, nil
	}

	var (
		pkCond, rkCond *expression.KeyConditionBuilder
		rest           []filter.Condition
	)
	for _, c := range conds {
		switch c.Field {
		case storagemodels.AttrPartitionKey:
			if pkCond != nil || c.Op != filter.Equal {
				return plan{}, errors.NewValidationError(c.Field, "only a single equality is supported on the partition key: "+f.String())
			}
			kc := expression.Key(c.Field).Equal(expression.Value(literal(c.Value)))
			pkCond = &kc
		case storagemodels.AttrRowKey:
			if rkCond != nil {
				return plan{}, errors.NewValidationError(c.Field, "only one row-key comparison is supported per query: "+f.String())
			}
			kc, err := rowKeyCondition(c)
			if err != nil {
				return plan{}, err
			}
			rkCond = &kc
		default:
			rest = append(rest, c)
		}
	}

	keyCond := *pkCond
	if rkCond != nil {
		keyCond = expression.KeyAnd(keyCond, *rkCond)
	}
	builder := expression.NewBuilder().WithKeyCondition(keyCond)
	if len(rest) > 0 {
		cond, err := conditionOf(rest)
		if err != nil {
			return plan{}, err
		}
		builder = builder.WithFilter(cond)
	}
	expr, err := builder.Build()
	if err != nil {
		return plan{}, fmt.Errorf("failed to build query %q: %w", f.String(), err)
	}
	return plan{query: true, expr: expr}, nil
}

func rowKeyCondition(c filter.Condition) (expression.KeyConditionBuilder, error) {
	key := expression.Key(c.Field)
	v := expression.Value(literal(c.Value))
	switch c.Op {
	case filter.Equal:
		return key.Equal(v), nil
	case filter.GreaterThan:
		return key.GreaterThan(v), nil
	case filter.GreaterThanOrEqual:
		return key.GreaterThanEqual(v), nil
	case filter.LessThan:
		return key.LessThan(v), nil
	case filter.LessThanOrEqual:
		return key.LessThanEqual(v), nil
	case filter.BeginsWith:
		return key.BeginsWith(c.Value.Interface().(string)), nil
	}
	return expression.KeyConditionBuilder{}, errors.NewValidationError(c.Field, "operator "+string(c.Op)+" is not supported on the row key")
}

func conditionOf(conds []filter.Condition) (expression.ConditionBuilder, error) {
	builders := make([]expression.ConditionBuilder, 0, len(conds))
	for _, c := range conds {
		b, err := comparison(c)
		if err != nil {
			return expression.ConditionBuilder{}, err
		}
		builders = append(builders, b)
	}
	if len(builders) == 1 {
		return builders[0], nil
	}
	return expression.And(builders[0], builders[1], builders[2:]...), nil
}

func comparison(c filter.Condition) (expression.ConditionBuilder, error) {
	name := expression.Name(c.Field)
	v := expression.Value(literal(c.Value))
	switch c.Op {
	case filter.Equal:
		return name.Equal(v), nil
	case filter.NotEqual:
		return name.NotEqual(v), nil
	case filter.GreaterThan:
		return name.GreaterThan(v), nil
	case filter.GreaterThanOrEqual:
		return name.GreaterThanEqual(v), nil
	case filter.LessThan:
		return name.LessThan(v), nil
	case filter.LessThanOrEqual:
		return name.LessThanEqual(v), nil
	case filter.BeginsWith:
		return name.BeginsWith(c.Value.Interface().(string)), nil
	}
	return expression.ConditionBuilder{}, errors.NewValidationError(c.Field, "unsupported operator "+string(c.Op))
}

// literal converts a filter value to the Go value stored for it. Times are
// stored as RFC 3339 strings by the attribute marshaller.
func literal(v filter.Value) any {
	if t, ok := v.Interface().(time.Time); ok {
		return t.Format(time.RFC3339Nano)
	}
	return v.Interface()
}
