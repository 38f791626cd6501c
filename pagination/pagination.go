/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package pagination

import (
	"encoding/base64"
	"net/url"
	"strconv"
	"strings"

	"github.com/suparena/tablestore/errors"
)

const (
	// DefaultTop is the page size used when a request does not carry one.
	DefaultTop = 100
	// MaxTop is the largest accepted page size.
	MaxTop = 1000

	maxNPLength = 200
	maxNRLength = 128
)

// Pagination is a page request on the way in and the resume cursor on the way out.
// NP and NR are opaque halves of the store's continuation token.
type Pagination struct {
	Top *int   `json:"top,omitempty"`
	NP  string `json:"np,omitempty"`
	NR  string `json:"nr,omitempty"`
}

// Exhausted reports whether the cursor carries no resume position.
func (p Pagination) Exhausted() bool {
	return p.NP == "" && p.NR == ""
}

// PageSize returns Top, or def when Top is not set.
func (p Pagination) PageSize(def int) int {
	if p.Top != nil && *p.Top > 0 {
		return *p.Top
	}
	return def
}

// WithCursor returns p with the cursor halves of next and p's Top.
func (p Pagination) WithCursor(next Pagination) Pagination {
	return Pagination{Top: p.Top, NP: next.NP, NR: next.NR}
}

// Decode builds a page request from the raw top, np and nr query parameters.
// Every parameter is optional.
func Decode(top, np, nr string) (Pagination, error) {
	var p Pagination
	if top != "" {
		n, err := strconv.Atoi(top)
		if err != nil {
			return Pagination{}, errors.NewValidationError("top", "must be an integer")
		}
		if n < 1 || n > MaxTop {
			return Pagination{}, errors.NewValidationError("top", "must be between 1 and 1000")
		}
		p.Top = &n
	}
	if len(np) > maxNPLength {
		return Pagination{}, errors.NewValidationError("np", "too long")
	}
	if len(nr) > maxNRLength {
		return Pagination{}, errors.NewValidationError("nr", "too long")
	}
	p.NP = np
	p.NR = nr
	return p, nil
}

// EncodeContinuation packs the cursor halves of p into a URL-safe token.
// It returns false when p is exhausted.
func EncodeContinuation(p Pagination) (string, bool) {
	if p.Exhausted() {
		return "", false
	}
	enc := base64.RawURLEncoding
	return enc.EncodeToString([]byte(p.NP)) + "." + enc.EncodeToString([]byte(p.NR)), true
}

// DecodeContinuation is the inverse of EncodeContinuation. An empty token
// yields an exhausted cursor.
func DecodeContinuation(token string) (Pagination, error) {
	if token == "" {
		return Pagination{}, nil
	}
	np, nr, ok := strings.Cut(token, ".")
	if !ok {
		return Pagination{}, errors.NewValidationError("continuationToken", "malformed token")
	}
	enc := base64.RawURLEncoding
	npb, err := enc.DecodeString(np)
	if err != nil {
		return Pagination{}, errors.NewValidationError("continuationToken", "malformed partition cursor")
	}
	nrb, err := enc.DecodeString(nr)
	if err != nil {
		return Pagination{}, errors.NewValidationError("continuationToken", "malformed row cursor")
	}
	return Pagination{NP: string(npb), NR: string(nrb)}, nil
}

// Param is one domain query parameter replayed into a next link.
type Param struct {
	Name  string
	Value string
}

// P is shorthand for a Param literal.
func P(name, value string) Param {
	return Param{Name: name, Value: value}
}

// NextLink builds the query-string fragment a client requests for the next page:
//
//	&top=<N>&<param>=<value>...&np=<np>&nr=<nr>
//
// top is present only when the request carried it; params keep their given
// order and are dropped when empty. The link is empty when next is exhausted.
func NextLink(request, next Pagination, params ...Param) string {
	if next.Exhausted() {
		return ""
	}

	var b strings.Builder
	if request.Top != nil {
		b.WriteString("&top=")
		b.WriteString(strconv.Itoa(*request.Top))
	}
	for _, p := range params {
		if p.Value == "" {
			continue
		}
		b.WriteString("&")
		b.WriteString(url.QueryEscape(p.Name))
		b.WriteString("=")
		b.WriteString(url.QueryEscape(p.Value))
	}
	b.WriteString("&np=")
	b.WriteString(url.QueryEscape(next.NP))
	b.WriteString("&nr=")
	b.WriteString(url.QueryEscape(next.NR))
	return b.String()
}
