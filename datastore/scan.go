/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/suparena/tablestore/filter"
	"github.com/suparena/tablestore/pagination"
)

// QueryAll pages through f to exhaustion and returns every match.
func QueryAll[P any](ctx context.Context, pager Pager[P], f filter.Filter, pageSize int) ([]P, error) {
	var all []P
	err := ForEach(ctx, pager, f, func(_ context.Context, entity P) error {
		all = append(all, entity)
		return nil
	}, 0, pageSize)
	return all, err
}

// ForEach visits the entities matched by f in store order, fetching one
// page at a time. limit caps the total visited across pages; limit <= 0
// visits everything. A visitor error stops the scan and is returned.
func ForEach[P any](ctx context.Context, pager Pager[P], f filter.Filter, visit Visitor[P], limit, pageSize int) error {
	return scan(ctx, pager, f, limit, pageSize, func(entity P) error {
		return visit(ctx, entity)
	})
}

// ForEachParallel is ForEach with up to maxParallelism visits in flight.
// Dispatch blocks while the limit is reached, so pages are fetched no faster
// than visitors drain them. Visit order is not defined. The first visitor
// error cancels the context passed to the other visitors and is returned.
func ForEachParallel[P any](ctx context.Context, pager Pager[P], f filter.Filter, visit Visitor[P], maxParallelism, limit, pageSize int) error {
	if maxParallelism < 1 {
		maxParallelism = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelism)

	scanErr := scan(gctx, pager, f, limit, pageSize, func(entity P) error {
		g.Go(func() error {
			return visit(gctx, entity)
		})
		return nil
	})

	// a visitor failure cancels gctx, which also surfaces as scanErr
	if err := g.Wait(); err != nil {
		return err
	}
	if scanErr != nil {
		return scanErr
	}
	return ctx.Err()
}

func scan[P any](ctx context.Context, pager Pager[P], f filter.Filter, limit, pageSize int, emit func(P) error) error {
	if pageSize <= 0 {
		pageSize = pagination.DefaultTop
	}

	var (
		visited int
		page    pagination.Pagination
	)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		size := pageSize
		if limit > 0 && limit-visited < size {
			size = limit - visited
		}

		items, next, err := pager.QueryPage(ctx, f, page, size)
		if err != nil {
			return fmt.Errorf("failed to fetch page %q: %w", f.String(), err)
		}

		for _, item := range items {
			if limit > 0 && visited >= limit {
				return nil
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := emit(item); err != nil {
				return err
			}
			visited++
		}

		if next.Exhausted() || (limit > 0 && visited >= limit) {
			return nil
		}
		page = next
	}
}
