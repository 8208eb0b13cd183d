// Package paging gives callers uniform pagination semantics over the
// upstream's page/per list endpoints.
//
// The upstream is page-based and does not reliably report a total, so HasMore
// is a best-effort heuristic: a page with exactly `per` items is treated as
// possibly non-final. An exact final page that coincidentally equals the page
// size over-reports by one empty follow-up page; there is no way to eliminate
// this without a probe request, which the adapter deliberately does not make.
package paging

import "github.com/stratuspay/payroll-mcp/internal/domain/entity"

const (
	// DefaultPer is the page size applied when the caller does not specify one.
	DefaultPer = 25
	// DefaultMaxPer caps the page size regardless of caller input.
	DefaultMaxPer = 100
)

// Params are the normalized pagination inputs of a list call.
type Params struct {
	// Page is 1-based.
	Page int
	// Per is the requested page size, already clamped to the configured maximum.
	Per int
}

// Normalize clamps the requested page size to [1, maxPer], applying DefaultPer
// when unspecified, and floors the page at 1. maxPer values <= 0 fall back to
// DefaultMaxPer.
func Normalize(page, per, maxPer int) Params {
	if maxPer <= 0 {
		maxPer = DefaultMaxPer
	}
	if per <= 0 {
		per = DefaultPer
	}
	if per > maxPer {
		per = maxPer
	}
	if page < 1 {
		page = 1
	}
	return Params{Page: page, Per: per}
}

// Page is the uniform paginated response shape. Count always equals
// len(Items); HasMore and NextPage are derived, never supplied by callers.
type Page struct {
	Items    []entity.Entity `json:"items"`
	Count    int             `json:"count"`
	Total    int             `json:"total,omitempty"`
	HasMore  bool            `json:"hasMore"`
	NextPage int             `json:"nextPage,omitempty"`
}

// NewPage wraps a fetched page of items. A full page (len == requested per)
// is assumed non-final and advertises the next page number; a short page is
// final.
func NewPage(items []entity.Entity, p Params) *Page {
	if items == nil {
		items = []entity.Entity{}
	}
	page := &Page{
		Items:   items,
		Count:   len(items),
		HasMore: len(items) == p.Per && p.Per > 0,
	}
	if page.HasMore {
		page.NextPage = p.Page + 1
	}
	return page
}
