package paginator

import "math"

const (
	defaultPage  = 1
	defaultLimit = 15
	maxLimit     = 100
)

// PaginateQuery carries the page selection parsed from a list request.
type PaginateQuery struct {
	Page  int   `json:"page" form:"page"`
	Limit int64 `json:"limit" form:"limit"`
}

// Adjust clamps the query so repositories never see a zero page or an
// oversized limit.
func (q *PaginateQuery) Adjust() {
	if q.Page < 1 {
		q.Page = defaultPage
	}
	switch {
	case q.Limit < 1:
		q.Limit = defaultLimit
	case q.Limit > maxLimit:
		q.Limit = maxLimit
	}
}

// Offset is the row offset matching the current page.
func (q *PaginateQuery) Offset() int64 {
	return int64(q.Page-1) * q.Limit
}

// Paginator describes one page of a query result.
type Paginator struct {
	Total       int64 `json:"total"`
	Count       int64 `json:"count"`
	PerPage     int64 `json:"per_page"`
	CurrentPage int   `json:"current_page"`
}

func (p Paginator) totalPages() int {
	if p.Total == 0 || p.PerPage == 0 {
		return 0
	}
	return int(math.Ceil(float64(p.Total) / float64(p.PerPage)))
}

// PaginatorResponse is the pagination block of a list response.
type PaginatorResponse struct {
	Total       int64 `json:"total"`
	Count       int64 `json:"count"`
	PerPage     int64 `json:"per_page"`
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// ToResponse derives the page navigation fields for the response envelope.
func (p Paginator) ToResponse() PaginatorResponse {
	pages := p.totalPages()
	return PaginatorResponse{
		Total:       p.Total,
		Count:       p.Count,
		PerPage:     p.PerPage,
		CurrentPage: p.CurrentPage,
		TotalPages:  pages,
		HasNext:     p.CurrentPage < pages,
		HasPrev:     p.CurrentPage > 1,
	}
}
