/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/suparena/tablestore/datastore"
	"github.com/suparena/tablestore/errors"
	"github.com/suparena/tablestore/storagemodels"
)

// Table implements datastore.Table[T, P] on a DynamoDB table keyed by
// PartitionKey (hash) and RowKey (range).
type Table[T any, P storagemodels.EntityPointer[T]] struct {
	client      API
	tableName   string
	logger      *zap.Logger
	now         func() time.Time
	pageSize    int
	parallelism int
}

// Option configures a Table
type Option func(*options)

type options struct {
	logger      *zap.Logger
	now         func() time.Time
	pageSize    int
	parallelism int
}

// WithLogger sets the logger used for request tracing
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock overrides the clock used for write timestamps
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithDefaultPageSize sets the page size used by QueryAll and ForEach
func WithDefaultPageSize(size int) Option {
	return func(o *options) {
		o.pageSize = size
	}
}

// WithDefaultParallelism sets the visits in flight used by ForEachParallel
// when the caller passes no bound
func WithDefaultParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// NewTable constructs a Table for records of type T stored in tableName.
func NewTable[T any, P storagemodels.EntityPointer[T]](client API, tableName string, opts ...Option) *Table[T, P] {
	o := options{
		logger:      zap.NewNop(),
		now:         func() time.Time { return time.Now().UTC() },
		pageSize:    100,
		parallelism: 1,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Table[T, P]{
		client:      client,
		tableName:   tableName,
		logger:      o.logger.With(zap.String("table", tableName)),
		now:         o.now,
		pageSize:    o.pageSize,
		parallelism: o.parallelism,
	}
}

var _ datastore.Table[storagemodels.TableEntity, *storagemodels.TableEntity] = (*Table[storagemodels.TableEntity, *storagemodels.TableEntity])(nil)

// Name returns the DynamoDB table name
func (d *Table[T, P]) Name() string { return d.tableName }

// Insert writes a new entity, failing with AlreadyExists when the keys are taken.
func (d *Table[T, P]) Insert(ctx context.Context, entity P) error {
	key := keyOf(entity)
	item, etag, ts, err := d.stampedItem(entity)
	if err != nil {
		return err
	}

	cond := expression.AttributeNotExists(expression.Name(storagemodels.AttrPartitionKey))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("failed to build insert condition: %w", err)
	}

	_, err = d.client.PutItem(ctx, &sdk.PutItemInput{
		TableName:                 aws.String(d.tableName),
		Item:                      item,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	d.logger.Debug("insert", zap.String("key", key), zap.Error(err))
	if err != nil {
		if isConditionalCheckFailed(err) {
			return errors.NewAlreadyExistsError(d.tableName, key)
		}
		return storageError("insert", err)
	}

	entity.SetETag(etag)
	entity.SetTimestamp(ts)
	return nil
}

// Merge updates the non-empty attributes of entity if its ETag is still current.
func (d *Table[T, P]) Merge(ctx context.Context, entity P) error {
	return d.update(ctx, entity, "merge", true)
}

// UpsertMerge merges entity into the stored row, creating it when missing.
func (d *Table[T, P]) UpsertMerge(ctx context.Context, entity P) error {
	return d.update(ctx, entity, "upsertMerge", false)
}

// Replace overwrites the stored row if entity's ETag is still current.
func (d *Table[T, P]) Replace(ctx context.Context, entity P) error {
	return d.put(ctx, entity, "replace", true)
}

// UpsertReplace overwrites the stored row unconditionally.
func (d *Table[T, P]) UpsertReplace(ctx context.Context, entity P) error {
	return d.put(ctx, entity, "upsertReplace", false)
}

func (d *Table[T, P]) update(ctx context.Context, entity P, op string, conditional bool) error {
	key := keyOf(entity)
	if entity.GetPartitionKey() == "" || entity.GetRowKey() == "" {
		return errors.NewValidationError("key", "PartitionKey and RowKey are required")
	}
	if conditional && entity.GetETag() == "" {
		return errors.NewValidationError(storagemodels.AttrETag, op+" requires the entity's current ETag")
	}

	patch, err := storagemodels.MarshalItem(entity)
	if err != nil {
		return err
	}
	etag, ts := uuid.NewString(), d.now()
	if err := storagemodels.StampItem(patch, etag, ts); err != nil {
		return err
	}

	updateExpr, names, values, err := buildUpdateExpression(patch)
	if err != nil {
		return fmt.Errorf("failed to build update expression: %w", err)
	}

	input := &sdk.UpdateItemInput{
		TableName:                 aws.String(d.tableName),
		Key:                       keyAttributes(entity.GetPartitionKey(), entity.GetRowKey()),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	}
	if conditional {
		expr, err := expression.NewBuilder().WithCondition(etagCondition(entity.GetETag())).Build()
		if err != nil {
			return fmt.Errorf("failed to build %s condition: %w", op, err)
		}
		input.ConditionExpression = expr.Condition()
		input.ReturnValuesOnConditionCheckFailure = types.ReturnValuesOnConditionCheckFailureAllOld
		for k, v := range expr.Names() {
			input.ExpressionAttributeNames[k] = v
		}
		for k, v := range expr.Values() {
			input.ExpressionAttributeValues[k] = v
		}
	}

	_, err = d.client.UpdateItem(ctx, input)
	d.logger.Debug(op, zap.String("key", key), zap.Error(err))
	if err != nil {
		if mapped := conditionFailure(op, d.tableName, key, err); mapped != nil {
			return mapped
		}
		return storageError(op, err)
	}

	entity.SetETag(etag)
	entity.SetTimestamp(ts)
	return nil
}

func (d *Table[T, P]) put(ctx context.Context, entity P, op string, conditional bool) error {
	key := keyOf(entity)
	if conditional && entity.GetETag() == "" {
		return errors.NewValidationError(storagemodels.AttrETag, op+" requires the entity's current ETag")
	}
	item, etag, ts, err := d.stampedItem(entity)
	if err != nil {
		return err
	}

	input := &sdk.PutItemInput{
		TableName: aws.String(d.tableName),
		Item:      item,
	}
	if conditional {
		expr, err := expression.NewBuilder().WithCondition(etagCondition(entity.GetETag())).Build()
		if err != nil {
			return fmt.Errorf("failed to build %s condition: %w", op, err)
		}
		input.ConditionExpression = expr.Condition()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
		input.ReturnValuesOnConditionCheckFailure = types.ReturnValuesOnConditionCheckFailureAllOld
	}

	_, err = d.client.PutItem(ctx, input)
	d.logger.Debug(op, zap.String("key", key), zap.Error(err))
	if err != nil {
		if mapped := conditionFailure(op, d.tableName, key, err); mapped != nil {
			return mapped
		}
		return storageError(op, err)
	}

	entity.SetETag(etag)
	entity.SetTimestamp(ts)
	return nil
}

// RetrieveAndMerge applies mutate to the current entity and merges it back.
// A missing entity is skipped without error.
func (d *Table[T, P]) RetrieveAndMerge(ctx context.Context, partitionKey, rowKey string, mutate func(P)) error {
	entity, err := d.Retrieve(ctx, partitionKey, rowKey)
	if err != nil {
		return err
	}
	if entity == nil {
		d.logger.Debug("retrieveAndMerge skipped missing entity", zap.String("key", storagemodels.KeyString(partitionKey, rowKey)))
		return nil
	}
	mutate(entity)
	return d.Merge(ctx, entity)
}

// Delete removes an entity. DeleteItem without a condition succeeds for a
// missing key, so deleting twice is not an error.
func (d *Table[T, P]) Delete(ctx context.Context, partitionKey, rowKey string) error {
	_, err := d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: aws.String(d.tableName),
		Key:       keyAttributes(partitionKey, rowKey),
	})
	d.logger.Debug("delete", zap.String("key", storagemodels.KeyString(partitionKey, rowKey)), zap.Error(err))
	return storageError("delete", err)
}

// Retrieve performs a consistent point read. It returns nil, nil when the
// entity does not exist.
func (d *Table[T, P]) Retrieve(ctx context.Context, partitionKey, rowKey string) (P, error) {
	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName:      aws.String(d.tableName),
		Key:            keyAttributes(partitionKey, rowKey),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, storageError("retrieve", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	return storagemodels.UnmarshalItem[T, P](out.Item)
}

func (d *Table[T, P]) stampedItem(entity P) (storagemodels.Item, string, time.Time, error) {
	if entity.GetPartitionKey() == "" || entity.GetRowKey() == "" {
		return nil, "", time.Time{}, errors.NewValidationError("key", "PartitionKey and RowKey are required")
	}
	item, err := storagemodels.MarshalItem(entity)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	etag, ts := uuid.NewString(), d.now()
	if err := storagemodels.StampItem(item, etag, ts); err != nil {
		return nil, "", time.Time{}, err
	}
	return item, etag, ts, nil
}

func etagCondition(etag string) expression.ConditionBuilder {
	return expression.And(
		expression.AttributeExists(expression.Name(storagemodels.AttrPartitionKey)),
		expression.Name(storagemodels.AttrETag).Equal(expression.Value(etag)),
	)
}

func keyOf(entity storagemodels.Entity) string {
	return storagemodels.KeyString(entity.GetPartitionKey(), entity.GetRowKey())
}

func keyAttributes(partitionKey, rowKey string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		storagemodels.AttrPartitionKey: &types.AttributeValueMemberS{Value: partitionKey},
		storagemodels.AttrRowKey:       &types.AttributeValueMemberS{Value: rowKey},
	}
}

// buildUpdateExpression transforms the non-empty, non-key attributes of patch into:
//   - an "update expression" (e.g., "SET #f0 = :v0, #f1 = :v1")
//   - a corresponding map of expression attribute names
//   - a corresponding map of expression attribute values
//
// Attribute names are sorted so the expression is stable.
func buildUpdateExpression(patch storagemodels.Item) (string, map[string]string, map[string]types.AttributeValue, error) {
	fields := make([]string, 0, len(patch))
	for field, v := range patch {
		if field == storagemodels.AttrPartitionKey || field == storagemodels.AttrRowKey {
			continue
		}
		if storagemodels.IsEmptyAttribute(v) {
			continue
		}
		fields = append(fields, field)
	}
	if len(fields) == 0 {
		return "", nil, nil, fmt.Errorf("no attributes to update")
	}
	sort.Strings(fields)

	setClauses := make([]string, 0, len(fields))
	exprAttrNames := make(map[string]string, len(fields))
	exprAttrValues := make(map[string]types.AttributeValue, len(fields))
	for i, field := range fields {
		placeholderName := fmt.Sprintf("#f%d", i)
		placeholderValue := fmt.Sprintf(":v%d", i)
		setClauses = append(setClauses, placeholderName+" = "+placeholderValue)
		exprAttrNames[placeholderName] = field
		exprAttrValues[placeholderValue] = patch[field]
	}

	return "SET " + strings.Join(setClauses, ", "), exprAttrNames, exprAttrValues, nil
}
