package store

// ListParams contains pagination, search, and sort parameters for listing queries.
type ListParams struct {
	Page     int    // 1-based page number (defaults to 1)
	PageSize int    // Items per page (defaults to 10, capped at 100)
	Query    string // Optional substring filter
	Filter   string // Named sort order; each listing defines its own set
}

// DefaultListParams returns sensible defaults.
func DefaultListParams() ListParams {
	return ListParams{
		Page:     1,
		PageSize: 10,
	}
}

// Normalize checks and corrects list parameters in place.
func (p *ListParams) Normalize() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = 10
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

// Offset returns the number of rows to skip for this page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Page contains one page of results plus paging metadata.
type Page[T any] struct {
	Items  []T  `json:"items"`
	Total  int  `json:"total"`
	IsNext bool `json:"is_next"` // True if more pages follow
}

// NewPage builds a result page, computing IsNext from the total count.
func NewPage[T any](items []T, total int, params ListParams) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:  items,
		Total:  total,
		IsNext: total > params.Offset()+len(items),
	}
}
