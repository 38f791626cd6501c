/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of datastore.Table for testing
package mock

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/suparena/tablestore/datastore"
	"github.com/suparena/tablestore/errors"
	"github.com/suparena/tablestore/filter"
	"github.com/suparena/tablestore/pagination"
	"github.com/suparena/tablestore/storagemodels"
)

type itemKey struct {
	pk, rk string
}

// Table is an in-memory datastore.Table. Entities are kept as attribute maps,
// so merges, filters and cursors behave like the DynamoDB backend.
type Table[T any, P storagemodels.EntityPointer[T]] struct {
	mu   sync.RWMutex
	name string
	data map[itemKey]storagemodels.Item
	now  func() time.Time

	insertFunc  func(ctx context.Context, entity P) error
	mergeError  error
	deleteError error
	queryError  error
}

// NewTable creates an empty in-memory table
func NewTable[T any, P storagemodels.EntityPointer[T]](name string) *Table[T, P] {
	return &Table[T, P]{
		name: name,
		data: make(map[itemKey]storagemodels.Item),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// WithInsertFunc runs f before every insert; a non-nil result fails the insert
func (m *Table[T, P]) WithInsertFunc(f func(ctx context.Context, entity P) error) *Table[T, P] {
	m.insertFunc = f
	return m
}

// WithMergeError makes Merge, Replace and the upserts return an error
func (m *Table[T, P]) WithMergeError(err error) *Table[T, P] {
	m.mergeError = err
	return m
}

// WithDeleteError makes Delete operations return an error
func (m *Table[T, P]) WithDeleteError(err error) *Table[T, P] {
	m.deleteError = err
	return m
}

// WithQueryError makes QueryPage and every scan built on it return an error
func (m *Table[T, P]) WithQueryError(err error) *Table[T, P] {
	m.queryError = err
	return m
}

// Name returns the table name
func (m *Table[T, P]) Name() string { return m.name }

// Insert stores a new entity
func (m *Table[T, P]) Insert(ctx context.Context, entity P) error {
	if m.insertFunc != nil {
		if err := m.insertFunc(ctx, entity); err != nil {
			return err
		}
	}
	item, key, err := m.marshal(entity)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[key]; exists {
		return errors.NewAlreadyExistsError(m.name, storagemodels.KeyString(key.pk, key.rk))
	}
	return m.store(key, item, entity)
}

// Merge updates the non-empty attributes of an entity whose ETag is current
func (m *Table[T, P]) Merge(ctx context.Context, entity P) error {
	return m.write(entity, "merge", true, true)
}

// Replace overwrites an entity whose ETag is current
func (m *Table[T, P]) Replace(ctx context.Context, entity P) error {
	return m.write(entity, "replace", true, false)
}

// UpsertMerge merges into the stored entity, creating it if needed
func (m *Table[T, P]) UpsertMerge(ctx context.Context, entity P) error {
	return m.write(entity, "upsertMerge", false, true)
}

// UpsertReplace stores the entity unconditionally
func (m *Table[T, P]) UpsertReplace(ctx context.Context, entity P) error {
	return m.write(entity, "upsertReplace", false, false)
}

func (m *Table[T, P]) write(entity P, op string, conditional, merge bool) error {
	if m.mergeError != nil {
		return m.mergeError
	}
	if conditional && entity.GetETag() == "" {
		return errors.NewValidationError("ETag", op+" requires the entity's current ETag")
	}
	item, key, err := m.marshal(entity)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored, exists := m.data[key]
	if conditional {
		if !exists {
			return errors.NewNotFoundError(m.name, storagemodels.KeyString(key.pk, key.rk))
		}
		if etag, _ := stored[storagemodels.AttrETag].(*types.AttributeValueMemberS); etag == nil || etag.Value != entity.GetETag() {
			return errors.NewPreconditionFailedError(op, storagemodels.KeyString(key.pk, key.rk))
		}
	}
	if merge && exists {
		item = storagemodels.MergeItem(stored, item)
	}
	return m.store(key, item, entity)
}

// RetrieveAndMerge applies mutate to the stored entity and merges it back.
// A missing entity is skipped without error.
func (m *Table[T, P]) RetrieveAndMerge(ctx context.Context, partitionKey, rowKey string, mutate func(P)) error {
	entity, err := m.Retrieve(ctx, partitionKey, rowKey)
	if err != nil || entity == nil {
		return err
	}
	mutate(entity)
	return m.Merge(ctx, entity)
}

// Delete removes an entity; deleting a missing entity succeeds
func (m *Table[T, P]) Delete(ctx context.Context, partitionKey, rowKey string) error {
	if m.deleteError != nil {
		if errors.IsNotFound(m.deleteError) {
			return nil
		}
		return m.deleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, itemKey{pk: partitionKey, rk: rowKey})
	return nil
}

// Retrieve returns the stored entity or nil
func (m *Table[T, P]) Retrieve(ctx context.Context, partitionKey, rowKey string) (P, error) {
	m.mu.RLock()
	item, ok := m.data[itemKey{pk: partitionKey, rk: rowKey}]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return storagemodels.UnmarshalItem[T, P](item)
}

// QueryPage returns up to pageSize matches after the page cursor, in
// (PartitionKey, RowKey) order. The returned cursor is exhausted when no
// further entity matches.
func (m *Table[T, P]) QueryPage(ctx context.Context, f filter.Filter, page pagination.Pagination, pageSize int) ([]P, pagination.Pagination, error) {
	if err := ctx.Err(); err != nil {
		return nil, pagination.Pagination{}, err
	}
	if m.queryError != nil {
		return nil, pagination.Pagination{}, m.queryError
	}
	if pageSize <= 0 {
		pageSize = pagination.DefaultTop
	}

	m.mu.RLock()
	keys := make([]itemKey, 0, len(m.data))
	for k := range m.data {
		if !page.Exhausted() && !after(k, page) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].pk != keys[j].pk {
			return keys[i].pk < keys[j].pk
		}
		return keys[i].rk < keys[j].rk
	})

	var matched []storagemodels.Item
	var next pagination.Pagination
	for _, k := range keys {
		item := m.data[k]
		if !f.Matches(attributeGetter(item)) {
			continue
		}
		if len(matched) == pageSize {
			last := matched[len(matched)-1]
			next = pagination.Pagination{NP: stringAttr(last, storagemodels.AttrPartitionKey), NR: stringAttr(last, storagemodels.AttrRowKey)}
			break
		}
		matched = append(matched, item)
	}
	m.mu.RUnlock()

	out := make([]P, 0, len(matched))
	for _, item := range matched {
		entity, err := storagemodels.UnmarshalItem[T, P](item)
		if err != nil {
			return nil, pagination.Pagination{}, err
		}
		out = append(out, entity)
	}
	return out, next, nil
}

// QueryAll returns every entity matching f
func (m *Table[T, P]) QueryAll(ctx context.Context, f filter.Filter) ([]P, error) {
	return datastore.QueryAll[P](ctx, m, f, pagination.DefaultTop)
}

// ForEach visits every entity matching f, up to limit
func (m *Table[T, P]) ForEach(ctx context.Context, f filter.Filter, visit datastore.Visitor[P], limit int) error {
	return datastore.ForEach[P](ctx, m, f, visit, limit, pagination.DefaultTop)
}

// ForEachParallel visits matches with up to maxParallelism visits in flight
func (m *Table[T, P]) ForEachParallel(ctx context.Context, f filter.Filter, visit datastore.Visitor[P], maxParallelism, limit int) error {
	return datastore.ForEachParallel[P](ctx, m, f, visit, maxParallelism, limit, pagination.DefaultTop)
}

// Stream delivers the entities matching f on a channel
func (m *Table[T, P]) Stream(ctx context.Context, f filter.Filter, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[P] {
	return datastore.Stream[P](ctx, m, f, opts...)
}

// Helper methods for testing

// Count returns the number of stored entities
func (m *Table[T, P]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Clear removes all data
func (m *Table[T, P]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[itemKey]storagemodels.Item)
}

func (m *Table[T, P]) marshal(entity P) (storagemodels.Item, itemKey, error) {
	key := itemKey{pk: entity.GetPartitionKey(), rk: entity.GetRowKey()}
	if key.pk == "" || key.rk == "" {
		return nil, key, errors.NewValidationError("key", "PartitionKey and RowKey are required")
	}
	item, err := storagemodels.MarshalItem(entity)
	if err != nil {
		return nil, key, err
	}
	return item, key, nil
}

// store must be called with mu held
func (m *Table[T, P]) store(key itemKey, item storagemodels.Item, entity P) error {
	etag := uuid.NewString()
	ts := m.now()
	item = storagemodels.CloneItem(item)
	if err := storagemodels.StampItem(item, etag, ts); err != nil {
		return fmt.Errorf("failed to stamp %s: %w", storagemodels.KeyString(key.pk, key.rk), err)
	}
	m.data[key] = item
	entity.SetETag(etag)
	entity.SetTimestamp(ts)
	return nil
}

func after(k itemKey, cursor pagination.Pagination) bool {
	if k.pk != cursor.NP {
		return k.pk > cursor.NP
	}
	return k.rk > cursor.NR
}

func stringAttr(item storagemodels.Item, name string) string {
	if s, ok := item[name].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func attributeGetter(item storagemodels.Item) func(string) (any, bool) {
	return func(field string) (any, bool) {
		switch v := item[field].(type) {
		case *types.AttributeValueMemberS:
			return v.Value, true
		case *types.AttributeValueMemberN:
			n, err := strconv.ParseFloat(v.Value, 64)
			return n, err == nil
		case *types.AttributeValueMemberBOOL:
			return v.Value, true
		case nil:
			return nil, false
		default:
			return v, true
		}
	}
}
