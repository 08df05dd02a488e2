// Package pagination provides the shared page envelope for list
// endpoints.
package pagination

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Params is a parsed page request.
type Params struct {
	Page  int
	Limit int
}

// Offset converts the page number to a row offset.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// FromContext reads page/page_size query parameters, clamping to sane
// bounds. page_size defaults to defaultLimit and is capped at 100.
func FromContext(c echo.Context, defaultLimit int) Params {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("page_size"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100
	}
	return Params{Page: page, Limit: limit}
}

// Page is the envelope returned by list endpoints.
type Page struct {
	Count      int64 `json:"count"`
	Page       int   `json:"page"`
	TotalPages int   `json:"total_pages"`
	Next       *int  `json:"next"`
	Previous   *int  `json:"previous"`
	Results    any   `json:"results"`
}

// NewPage wraps results in the page envelope, computing next/previous
// page markers from the total count.
func NewPage(results any, total int64, p Params) Page {
	totalPages := int(math.Ceil(float64(total) / float64(p.Limit)))

	page := Page{
		Count:      total,
		Page:       p.Page,
		TotalPages: totalPages,
		Results:    results,
	}
	if p.Page < totalPages {
		next := p.Page + 1
		page.Next = &next
	}
	if p.Page > 1 {
		previous := p.Page - 1
		page.Previous = &previous
	}
	return page
}
