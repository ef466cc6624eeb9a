package domain

import "strings"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageQuery selects a window of a newest-first listing, optionally filtered
// by a code or name substring.
type PageQuery struct {
	Page     int
	PageSize int
	Query    string
}

// Normalize clamps the window to sane values.
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	q.Query = strings.TrimSpace(q.Query)

	return q
}

func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

type Page[T any] struct {
	Items    []T   `json:"items"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}
