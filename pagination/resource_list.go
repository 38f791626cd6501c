/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package pagination

// ResourceList is the list response envelope. NextLink is omitted on the last page.
type ResourceList[T any] struct {
	Value    []T     `json:"value"`
	NextLink *string `json:"nextLink,omitempty"`
}

// NewResourceList wraps one page of results with the link to the next page.
func NewResourceList[T any](value []T, request, next Pagination, params ...Param) ResourceList[T] {
	if value == nil {
		value = []T{}
	}
	list := ResourceList[T]{Value: value}
	if link := NextLink(request, next, params...); link != "" {
		list.NextLink = &link
	}
	return list
}
