/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package pagination

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/tablestore/errors"
)

func intPtr(n int) *int { return &n }

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		top     string
		np, nr  string
		want    Pagination
		wantErr bool
	}{
		{name: "all absent", want: Pagination{}},
		{name: "top only", top: "20", want: Pagination{Top: intPtr(20)}},
		{name: "full", top: "10", np: "np", nr: "nr", want: Pagination{Top: intPtr(10), NP: "np", NR: "nr"}},
		{name: "top not a number", top: "ten", wantErr: true},
		{name: "top zero", top: "0", wantErr: true},
		{name: "top too large", top: "1001", wantErr: true},
		{name: "np too long", np: strings.Repeat("p", 201), wantErr: true},
		{name: "nr too long", nr: strings.Repeat("r", 129), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.top, tt.np, tt.nr)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPageSize(t *testing.T) {
	assert.Equal(t, DefaultTop, Pagination{}.PageSize(DefaultTop))
	assert.Equal(t, 7, Pagination{Top: intPtr(7)}.PageSize(DefaultTop))
}

func TestContinuationRoundTrip(t *testing.T) {
	cursors := []Pagination{
		{NP: "np", NR: "nr"},
		{NP: "hack&name=1", NR: "row key/with?chars"},
		{NP: "", NR: "only-row"},
		{NP: "分区", NR: "行"},
	}

	for _, c := range cursors {
		token, ok := EncodeContinuation(c)
		require.True(t, ok)
		assert.NotContains(t, token, "&")
		assert.NotContains(t, token, "=")

		decoded, err := DecodeContinuation(token)
		require.NoError(t, err)
		assert.Equal(t, c, decoded)
	}
}

func TestContinuationExhausted(t *testing.T) {
	token, ok := EncodeContinuation(Pagination{Top: intPtr(10)})
	assert.False(t, ok)
	assert.Empty(t, token)

	p, err := DecodeContinuation("")
	require.NoError(t, err)
	assert.True(t, p.Exhausted())

	_, err = DecodeContinuation("no-separator")
	assert.True(t, errors.IsValidationError(err))
	_, err = DecodeContinuation("!!.??")
	assert.True(t, errors.IsValidationError(err))
}

func TestNextLink(t *testing.T) {
	tests := []struct {
		name    string
		request Pagination
		next    Pagination
		params  []Param
		want    string
	}{
		{
			name:    "top search and cursor",
			request: Pagination{Top: intPtr(10), NP: "np", NR: "nr"},
			next:    Pagination{NP: "np2", NR: "nr2"},
			params:  []Param{P("search", "abc")},
			want:    "&top=10&search=abc&np=np2&nr=nr2",
		},
		{
			name:    "no next page",
			request: Pagination{},
			next:    Pagination{},
			want:    "",
		},
		{
			name:    "exhausted at page boundary",
			request: Pagination{Top: intPtr(10)},
			next:    Pagination{},
			params:  []Param{P("search", "abc")},
			want:    "",
		},
		{
			name:    "declared order with empty params dropped",
			request: Pagination{Top: intPtr(10), NP: "np", NR: "nr"},
			next:    Pagination{NP: "np", NR: "nr"},
			params:  []Param{P("search", "search"), P("userId", ""), P("orderby", "updatedAt"), P("listType", "admin")},
			want:    "&top=10&search=search&orderby=updatedAt&listType=admin&np=np&nr=nr",
		},
		{
			name:    "top absent",
			request: Pagination{},
			next:    Pagination{NP: "p", NR: "r"},
			want:    "&np=p&nr=r",
		},
		{
			name:    "values escaped",
			request: Pagination{},
			next:    Pagination{NP: "a&b", NR: "c=d"},
			params:  []Param{P("search", "x y")},
			want:    "&search=x+y&np=a%26b&nr=c%3Dd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextLink(tt.request, tt.next, tt.params...))
		})
	}
}

func TestResourceList(t *testing.T) {
	list := NewResourceList([]string{"a"}, Pagination{Top: intPtr(1)}, Pagination{NP: "p", NR: "r"})
	require.NotNil(t, list.NextLink)
	assert.Equal(t, "&top=1&np=p&nr=r", *list.NextLink)

	last := NewResourceList[string](nil, Pagination{}, Pagination{})
	assert.Nil(t, last.NextLink)

	body, err := json.Marshal(last)
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":[]}`, string(body))
}
