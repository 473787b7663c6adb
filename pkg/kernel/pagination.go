package kernel

// PaginationOptions carries the page window requested by a caller.
// Pages are 1-based.
type PaginationOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Normalized returns a copy with defaults applied and bounds enforced.
func (p PaginationOptions) Normalized() PaginationOptions {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
	return p
}

// Offset returns the row offset for the requested page.
func (p PaginationOptions) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Page describes the window of a paginated result.
type Page struct {
	Number int `json:"number"`
	Size   int `json:"size"`
	Total  int `json:"total"`
	Pages  int `json:"pages"`
}

// Paginated wraps a page of items with its window metadata.
type Paginated[T any] struct {
	Items []T  `json:"items"`
	Page  Page `json:"page"`
	Empty bool `json:"empty"`
}

// NewPaginated builds a Paginated from a page of items and the total count.
func NewPaginated[T any](items []T, page, pageSize, total int) *Paginated[T] {
	pages := 0
	if pageSize > 0 {
		pages = (total + pageSize - 1) / pageSize
	}
	return &Paginated[T]{
		Items: items,
		Page: Page{
			Number: page,
			Size:   pageSize,
			Total:  total,
			Pages:  pages,
		},
		Empty: len(items) == 0,
	}
}
