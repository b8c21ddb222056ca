// Package pagination carries page/per_page list parameters and the metadata
// returned with list responses.
package pagination

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Pagination represents pagination metadata returned with list responses
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// PaginationParams represents input parameters for pagination
type PaginationParams struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`
}

// New returns validated parameters for the requested page.
func New(page, perPage int) *PaginationParams {
	p := &PaginationParams{Page: page, PerPage: perPage}
	p.Validate()
	return p
}

// Validate clamps pagination parameters into their valid ranges
func (p *PaginationParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	switch {
	case p.PerPage < 1:
		p.PerPage = DefaultPerPage
	case p.PerPage > MaxPerPage:
		p.PerPage = MaxPerPage
	}
}

// Offset calculates the offset for SQL queries
func (p *PaginationParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// NewPagination creates a new Pagination response
func NewPagination(page, perPage int, total int64) *Pagination {
	if perPage < 1 {
		perPage = 1
	}
	totalPages := int((total + int64(perPage) - 1) / int64(perPage))

	return &Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

// PaginatedResult represents a page of items with pagination info
type PaginatedResult[T any] struct {
	Items      []T         `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

// NewPaginatedResult creates a new paginated result
func NewPaginatedResult[T any](items []T, pagination *Pagination) *PaginatedResult[T] {
	if items == nil {
		items = []T{}
	}
	return &PaginatedResult[T]{
		Items:      items,
		Pagination: pagination,
	}
}

// Paginate wraps one page of a list query that matched total rows. Nil params
// describe an unpaged query, reported as a single page.
func Paginate[T any](items []T, params *PaginationParams, total int64) *PaginatedResult[T] {
	if params == nil {
		return NewPaginatedResult(items, NewPagination(1, len(items), total))
	}
	return NewPaginatedResult(items, NewPagination(params.Page, params.PerPage, total))
}
