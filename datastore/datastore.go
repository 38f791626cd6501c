/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/tablestore/filter"
	"github.com/suparena/tablestore/pagination"
	"github.com/suparena/tablestore/storagemodels"
)

// Pager fetches one page of a filtered scan. It is the only primitive the
// scan helpers in this package need from a backend.
type Pager[P any] interface {
	QueryPage(ctx context.Context, f filter.Filter, page pagination.Pagination, pageSize int) ([]P, pagination.Pagination, error)
}

// Visitor is called once per scanned entity.
type Visitor[P any] func(ctx context.Context, entity P) error

// Table is a typed client for one logical table. P is *T.
type Table[T any, P storagemodels.EntityPointer[T]] interface {
	Pager[P]

	// Insert fails with AlreadyExists when the keys are taken.
	Insert(ctx context.Context, entity P) error

	// Merge updates the non-empty attributes of entity when its ETag is current.
	Merge(ctx context.Context, entity P) error

	// Replace overwrites the stored entity when its ETag is current.
	Replace(ctx context.Context, entity P) error

	UpsertMerge(ctx context.Context, entity P) error

	UpsertReplace(ctx context.Context, entity P) error

	// RetrieveAndMerge loads the entity, applies mutate and merges it back.
	// A missing entity is a no-op.
	RetrieveAndMerge(ctx context.Context, partitionKey, rowKey string, mutate func(P)) error

	// Delete is idempotent.
	Delete(ctx context.Context, partitionKey, rowKey string) error

	// Retrieve returns nil, nil when the entity does not exist.
	Retrieve(ctx context.Context, partitionKey, rowKey string) (P, error)

	QueryAll(ctx context.Context, f filter.Filter) ([]P, error)

	ForEach(ctx context.Context, f filter.Filter, visit Visitor[P], limit int) error

	ForEachParallel(ctx context.Context, f filter.Filter, visit Visitor[P], maxParallelism, limit int) error

	Stream(ctx context.Context, f filter.Filter, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[P]
}
