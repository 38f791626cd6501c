/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/tablestore/errors"
	"github.com/suparena/tablestore/filter"
	"github.com/suparena/tablestore/storagemodels"
)

func names(p plan) []string {
	var out []string
	for _, n := range p.expr.Names() {
		out = append(out, n)
	}
	return out
}

func TestCompile(t *testing.T) {
	t.Run("EmptyFilterScans", func(t *testing.T) {
		p, err := compile(filter.Filter{})
		require.NoError(t, err)
		assert.False(t, p.query)
		assert.True(t, p.empty)
	})

	t.Run("PartitionOnly", func(t *testing.T) {
		p, err := compile(filter.PartitionKeyEquals("hack"))
		require.NoError(t, err)
		assert.True(t, p.query)
		require.NotNil(t, p.expr.KeyCondition())
		assert.Nil(t, p.expr.Filter())
		assert.Equal(t, []string{storagemodels.AttrPartitionKey}, names(p))

		values := p.expr.Values()
		require.Len(t, values, 1)
		for _, v := range values {
			assert.Equal(t, &types.AttributeValueMemberS{Value: "hack"}, v)
		}
	})

	t.Run("RowKeyPrefixInKeyCondition", func(t *testing.T) {
		p, err := compile(filter.RowKeyStartsWith("hack", "team-"))
		require.NoError(t, err)
		assert.True(t, p.query)
		assert.Contains(t, *p.expr.KeyCondition(), "begins_with")
		assert.Nil(t, p.expr.Filter())
	})

	t.Run("OtherFieldsInFilter", func(t *testing.T) {
		f := filter.And(
			filter.PartitionKeyEquals("hack"),
			filter.FieldEquals("Category", "User"),
			filter.Compare("CreatedAt", filter.GreaterThan, filter.Time(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))),
		)
		p, err := compile(f)
		require.NoError(t, err)
		assert.True(t, p.query)
		require.NotNil(t, p.expr.Filter())
		assert.ElementsMatch(t, []string{storagemodels.AttrPartitionKey, "Category", "CreatedAt"}, names(p))

		var sawTime bool
		for _, v := range p.expr.Values() {
			if s, ok := v.(*types.AttributeValueMemberS); ok && s.Value == "2024-01-01T00:00:00Z" {
				sawTime = true
			}
		}
		assert.True(t, sawTime, "time literals compile to RFC 3339 strings")
	})

	t.Run("ScanKeepsKeyComparisonsInFilter", func(t *testing.T) {
		p, err := compile(filter.Compare(storagemodels.AttrRowKey, filter.GreaterThanOrEqual, filter.String("t05")))
		require.NoError(t, err)
		assert.False(t, p.query)
		assert.Nil(t, p.expr.KeyCondition())
		assert.NotNil(t, p.expr.Filter())
	})

	invalid := []struct {
		name string
		f    filter.Filter
	}{
		{"two partition equalities", filter.And(filter.PartitionKeyEquals("a"), filter.PartitionKeyEquals("b"))},
		{"partition inequality", filter.And(filter.PartitionKeyEquals("a"), filter.Compare(storagemodels.AttrPartitionKey, filter.NotEqual, filter.String("b")))},
		{"two row-key comparisons", filter.And(filter.RowKeyStartsWith("a", "x"), filter.Compare(storagemodels.AttrRowKey, filter.LessThan, filter.String("z")))},
		{"row-key not equal", filter.And(filter.PartitionKeyEquals("a"), filter.Compare(storagemodels.AttrRowKey, filter.NotEqual, filter.String("z")))},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compile(tt.f)
			assert.True(t, errors.IsValidationError(err), "got %v", err)
		})
	}
}

func TestBuildUpdateExpression(t *testing.T) {
	patch := storagemodels.Item{
		storagemodels.AttrPartitionKey: &types.AttributeValueMemberS{Value: "hack"},
		storagemodels.AttrRowKey:       &types.AttributeValueMemberS{Value: "a1"},
		"Name":                         &types.AttributeValueMemberS{Value: "Best"},
		"Description":                  &types.AttributeValueMemberS{Value: ""},
		"Quantity":                     &types.AttributeValueMemberN{Value: "2"},
	}

	expr, names, values, err := buildUpdateExpression(patch)
	require.NoError(t, err)
	assert.Equal(t, "SET #f0 = :v0, #f1 = :v1", expr)
	assert.Equal(t, map[string]string{"#f0": "Name", "#f1": "Quantity"}, names)
	assert.Len(t, values, 2)

	_, _, _, err = buildUpdateExpression(storagemodels.Item{
		storagemodels.AttrPartitionKey: &types.AttributeValueMemberS{Value: "hack"},
	})
	assert.Error(t, err)
}
