/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package activitylog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/suparena/tablestore/filter"
	"github.com/suparena/tablestore/pagination"
	"github.com/suparena/tablestore/storagemodels"
)

// QueryOptions selects the activities returned by List.
type QueryOptions struct {
	// HackathonName lists the hackathon's copies. Combined with UserID it
	// narrows them to one actor.
	HackathonName string
	// UserID lists the actor's copies when HackathonName is empty.
	UserID string
	// Since drops activities created before it.
	Since time.Time

	Pagination pagination.Pagination
}

// Filter returns the store filter for o.
// Without a hackathon or a user, every user-category copy matches.
func (o QueryOptions) Filter() filter.Filter {
	hackathon := strings.TrimSpace(o.HackathonName)
	user := strings.TrimSpace(o.UserID)

	var f filter.Filter
	switch {
	case hackathon != "":
		f = filter.And(
			filter.PartitionKeyEquals(hackathon),
			filter.FieldEquals("Category", string(CategoryHackathon)),
		)
		if user != "" {
			f = f.And(filter.FieldEquals("UserId", user))
		}
	case user != "":
		f = filter.And(
			filter.PartitionKeyEquals(user),
			filter.FieldEquals("Category", string(CategoryUser)),
		)
	default:
		f = filter.FieldEquals("Category", string(CategoryUser))
	}

	if !o.Since.IsZero() {
		// row keys of activities at or after Since sort below this bound
		f = f.And(filter.Compare(storagemodels.AttrRowKey, filter.LessThan, filter.String(InversedTimeKey(o.Since)+".")))
	}
	return f
}

// List returns one page of activities, newest first within a partition,
// and the cursor of the next page.
func (w *Writer) List(ctx context.Context, opts QueryOptions) ([]*Entity, pagination.Pagination, error) {
	f := opts.Filter()
	entities, next, err := w.table.QueryPage(ctx, f, opts.Pagination, opts.Pagination.PageSize(pagination.DefaultTop))
	if err != nil {
		return nil, pagination.Pagination{}, fmt.Errorf("failed to list activity logs %q: %w", f.String(), err)
	}
	return entities, opts.Pagination.WithCursor(next), nil
}
