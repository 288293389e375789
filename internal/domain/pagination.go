package domain

// PaginationParams carries validated pagination values for list queries.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the number of documents to skip for the current page.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}
