// Package pagination slices ordered result sets into fixed-size, 1-based pages.
//
// Page numbers coming from the query string are forgiving: a missing or
// non-numeric value selects the first page, and values outside the valid range
// are clamped to the first or last page instead of failing.
package pagination

import (
	"strconv"
	"strings"
)

// DefaultPerPage is the page size used by every feed.
const DefaultPerPage = 10

// Page describes one page of a larger ordered set.
type Page struct {
	Number      int   `json:"number"`
	PerPage     int   `json:"per_page"`
	NumPages    int   `json:"num_pages"`
	Count       int64 `json:"count"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
	// Offset/Limit feed the repository query for this page.
	Offset int `json:"-"`
	Limit  int `json:"-"`
}

// NextNumber returns the next page number, or 0 when there is none.
func (p Page) NextNumber() int {
	if !p.HasNext {
		return 0
	}
	return p.Number + 1
}

// PreviousNumber returns the previous page number, or 0 when there is none.
func (p Page) PreviousNumber() int {
	if !p.HasPrevious {
		return 0
	}
	return p.Number - 1
}

// Paginator computes page metadata for Count items split PerPage at a time.
type Paginator struct {
	PerPage int
	Count   int64
}

func New(count int64, perPage int) Paginator {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if count < 0 {
		count = 0
	}
	return Paginator{PerPage: perPage, Count: count}
}

// NumPages is never less than 1: an empty set has a single empty page.
func (p Paginator) NumPages() int {
	if p.Count == 0 {
		return 1
	}
	return int((p.Count + int64(p.PerPage) - 1) / int64(p.PerPage))
}

// GetPage resolves a raw page parameter to a valid page.
func (p Paginator) GetPage(raw string) Page {
	return p.PageAt(ParseNumber(raw))
}

// PageAt clamps number into [1, NumPages] and returns that page.
func (p Paginator) PageAt(number int) Page {
	last := p.NumPages()
	if number < 1 {
		number = 1
	}
	if number > last {
		number = last
	}

	offset := (number - 1) * p.PerPage
	limit := p.PerPage
	if rest := int(p.Count) - offset; rest < limit {
		limit = rest
	}
	if limit < 0 {
		limit = 0
	}
	return Page{
		Number:      number,
		PerPage:     p.PerPage,
		NumPages:    last,
		Count:       p.Count,
		HasNext:     number < last,
		HasPrevious: number > 1,
		Offset:      offset,
		Limit:       limit,
	}
}

// ParseNumber reads a page query value, falling back to 1.
func ParseNumber(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return n
}

// Slice paginates an in-memory ordered sequence.
func Slice[T any](items []T, raw string, perPage int) (Page, []T) {
	page := New(int64(len(items)), perPage).GetPage(raw)
	return page, items[page.Offset : page.Offset+page.Limit]
}
