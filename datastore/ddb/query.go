/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/suparena/tablestore/datastore"
	"github.com/suparena/tablestore/filter"
	"github.com/suparena/tablestore/pagination"
	"github.com/suparena/tablestore/storagemodels"
)

// QueryPage runs one Query (or Scan, when f has no partition-key equality)
// request starting after page. The returned cursor carries the request's
// LastEvaluatedKey and is exhausted on the last page.
func (d *Table[T, P]) QueryPage(ctx context.Context, f filter.Filter, page pagination.Pagination, pageSize int) ([]P, pagination.Pagination, error) {
	p, err := compile(f)
	if err != nil {
		return nil, pagination.Pagination{}, err
	}
	if pageSize <= 0 {
		pageSize = d.pageSize
	}

	var startKey map[string]types.AttributeValue
	if !page.Exhausted() {
		startKey = keyAttributes(page.NP, page.NR)
	}

	var (
		items   []map[string]types.AttributeValue
		lastKey map[string]types.AttributeValue
	)
	if p.query {
		out, err := d.client.Query(ctx, &sdk.QueryInput{
			TableName:                 aws.String(d.tableName),
			KeyConditionExpression:    p.expr.KeyCondition(),
			FilterExpression:          p.expr.Filter(),
			ExpressionAttributeNames:  p.expr.Names(),
			ExpressionAttributeValues: p.expr.Values(),
			ExclusiveStartKey:         startKey,
			Limit:                     aws.Int32(int32(pageSize)),
		})
		if err != nil {
			return nil, pagination.Pagination{}, storageError("query", err)
		}
		items, lastKey = out.Items, out.LastEvaluatedKey
	} else {
		input := &sdk.ScanInput{
			TableName:         aws.String(d.tableName),
			ExclusiveStartKey: startKey,
			Limit:             aws.Int32(int32(pageSize)),
		}
		if !p.empty {
			input.FilterExpression = p.expr.Filter()
			input.ExpressionAttributeNames = p.expr.Names()
			input.ExpressionAttributeValues = p.expr.Values()
		}
		out, err := d.client.Scan(ctx, input)
		if err != nil {
			return nil, pagination.Pagination{}, storageError("scan", err)
		}
		items, lastKey = out.Items, out.LastEvaluatedKey
	}

	d.logger.Debug("query page",
		zap.Stringer("filter", f),
		zap.Bool("scan", !p.query),
		zap.Int("items", len(items)),
		zap.Bool("more", len(lastKey) > 0),
	)

	result := make([]P, 0, len(items))
	for _, item := range items {
		entity, err := storagemodels.UnmarshalItem[T, P](item)
		if err != nil {
			return nil, pagination.Pagination{}, err
		}
		result = append(result, entity)
	}
	return result, cursorOf(lastKey), nil
}

// QueryAll pages through f to exhaustion.
func (d *Table[T, P]) QueryAll(ctx context.Context, f filter.Filter) ([]P, error) {
	return datastore.QueryAll[P](ctx, d, f, d.pageSize)
}

// ForEach visits the matches of f, at most limit of them when limit > 0.
func (d *Table[T, P]) ForEach(ctx context.Context, f filter.Filter, visit datastore.Visitor[P], limit int) error {
	return datastore.ForEach[P](ctx, d, f, visit, limit, d.pageSize)
}

// ForEachParallel visits the matches of f with up to maxParallelism visits in
// flight. A bound below 1 falls back to the table's default parallelism.
func (d *Table[T, P]) ForEachParallel(ctx context.Context, f filter.Filter, visit datastore.Visitor[P], maxParallelism, limit int) error {
	if maxParallelism < 1 {
		maxParallelism = d.parallelism
	}
	return datastore.ForEachParallel[P](ctx, d, f, visit, maxParallelism, limit, d.pageSize)
}

// Stream performs a streaming query with configurable options
func (d *Table[T, P]) Stream(ctx context.Context, f filter.Filter, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[P] {
	return datastore.Stream[P](ctx, d, f, opts...)
}

// cursorOf splits a LastEvaluatedKey into the opaque cursor halves.
func cursorOf(lastKey map[string]types.AttributeValue) pagination.Pagination {
	if len(lastKey) == 0 {
		return pagination.Pagination{}
	}
	var next pagination.Pagination
	if pk, ok := lastKey[storagemodels.AttrPartitionKey].(*types.AttributeValueMemberS); ok {
		next.NP = pk.Value
	}
	if rk, ok := lastKey[storagemodels.AttrRowKey].(*types.AttributeValueMemberS); ok {
		next.NR = rk.Value
	}
	return next
}
