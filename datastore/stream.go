/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"
	"fmt"
	"time"

	"github.com/flowchartsman/retry"

	"github.com/suparena/tablestore/errors"
	"github.com/suparena/tablestore/filter"
	"github.com/suparena/tablestore/pagination"
	"github.com/suparena/tablestore/storagemodels"
)

// Stream scans f in the background and delivers each entity on the returned
// channel, which is closed when the scan ends. A page failure is delivered as
// a result with Error set, unless an ErrorHandler returns true for it, in which
// case the stream ends quietly and the error is recorded in the final progress
// report. Page fetches are retried on storage errors only when WithMaxRetries
// is given.
func Stream[P any](ctx context.Context, pager Pager[P], f filter.Filter, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[P] {
	options := storagemodels.DefaultStreamOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.BufferSize < 0 {
		options.BufferSize = 0
	}
	if options.PageSize <= 0 {
		options.PageSize = pagination.DefaultTop
	}

	resultCh := make(chan storagemodels.StreamResult[P], options.BufferSize)
	go streamWorker(ctx, pager, f, options, resultCh)
	return resultCh
}

func streamWorker[P any](
	ctx context.Context,
	pager Pager[P],
	f filter.Filter,
	options storagemodels.StreamOptions,
	resultCh chan<- storagemodels.StreamResult[P],
) {
	defer close(resultCh)

	var (
		itemIndex  int64
		pageNumber int
		errs       []error
		page       pagination.Pagination
	)
	startTime := time.Now()

	reportProgress := func(cursor pagination.Pagination) {
		if options.ProgressHandler == nil {
			return
		}
		progress := storagemodels.StreamProgress{
			ItemsProcessed: itemIndex,
			PagesProcessed: pageNumber,
			NP:             cursor.NP,
			NR:             cursor.NR,
			Errors:         errs,
			StartTime:      startTime,
		}
		if elapsed := time.Since(startTime).Seconds(); elapsed > 0 {
			progress.CurrentRate = float64(progress.ItemsProcessed) / elapsed
		}
		options.ProgressHandler(progress)
	}

	send := func(result storagemodels.StreamResult[P]) bool {
		select {
		case <-ctx.Done():
			return false
		case resultCh <- result:
			return true
		}
	}

	for {
		if ctx.Err() != nil {
			return
		}

		size := options.PageSize
		if options.Limit > 0 && options.Limit-int(itemIndex) < size {
			size = options.Limit - int(itemIndex)
		}

		items, next, err := fetchPage(ctx, pager, f, page, size, options)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			stop := options.ErrorHandler == nil || !options.ErrorHandler(err)
			if stop {
				send(storagemodels.StreamResult[P]{
					Error: fmt.Errorf("query failed: %w", err),
					Meta: storagemodels.StreamMeta{
						Index:      itemIndex,
						PageNumber: pageNumber,
						Timestamp:  time.Now(),
					},
				})
				return
			}
			// the cursor cannot advance past a failed page
			errs = append(errs, err)
			reportProgress(page)
			return
		}

		pageNumber++
		for _, item := range items {
			if options.Limit > 0 && int(itemIndex) >= options.Limit {
				break
			}
			ok := send(storagemodels.StreamResult[P]{
				Item: item,
				Meta: storagemodels.StreamMeta{
					Index:      itemIndex,
					PageNumber: pageNumber,
					Timestamp:  time.Now(),
				},
			})
			if !ok {
				return
			}
			itemIndex++
		}

		reportProgress(next)

		if next.Exhausted() || (options.Limit > 0 && int(itemIndex) >= options.Limit) {
			return
		}
		page = next
	}
}

func fetchPage[P any](
	ctx context.Context,
	pager Pager[P],
	f filter.Filter,
	page pagination.Pagination,
	size int,
	options storagemodels.StreamOptions,
) ([]P, pagination.Pagination, error) {
	if options.MaxRetries <= 0 {
		return pager.QueryPage(ctx, f, page, size)
	}

	var (
		items     []P
		next      pagination.Pagination
		permanent error
	)
	retrier := retry.NewRetrier(options.MaxRetries+1, options.RetryBackoff, 30*options.RetryBackoff)
	err := retrier.RunContext(ctx, func(ctx context.Context) error {
		var err error
		items, next, err = pager.QueryPage(ctx, f, page, size)
		if err != nil && !errors.IsStorageError(err) {
			permanent = err
			return nil
		}
		return err
	})
	if permanent != nil {
		return nil, pagination.Pagination{}, permanent
	}
	return items, next, err
}
