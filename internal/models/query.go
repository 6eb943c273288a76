package models

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ListQuery selects a page of an owner's entries, newest first.
type ListQuery struct {
	Page  int
	Limit int
	Kind  *Kind // nil lists both kinds
}

// Normalize fills in defaults for absent (non-positive) page and limit values.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	return q
}

// Offset is the number of rows skipped before the page starts. Pages past
// math.MaxInt rows clamp to math.MaxInt, which selects nothing.
func (q ListQuery) Offset() int {
	if q.Page <= 1 || q.Limit < 1 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.Limit {
		return math.MaxInt
	}
	return (q.Page - 1) * q.Limit
}

// Pagination describes where a page sits in the full result set.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NewPagination computes page metadata; Pages is ceil(total / limit).
func NewPagination(q ListQuery, total int) Pagination {
	pages := 0
	if q.Limit > 0 {
		pages = total / q.Limit
		if total%q.Limit != 0 {
			pages++
		}
	}
	return Pagination{
		Page:  q.Page,
		Limit: q.Limit,
		Total: total,
		Pages: pages,
	}
}

// EntryPage is one page of entries plus its pagination metadata.
type EntryPage struct {
	Entries    []LedgerEntry
	Pagination Pagination
}

// Summary aggregates an account's entries.
type Summary struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	Balance       decimal.Decimal
}
