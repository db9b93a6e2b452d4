package domain

// ListTodosParams contains parameters for listing todos with search and pagination.
//
// Common use cases:
//   - "Everything": zero value
//   - "Search": Search="milk" matches title OR description, case-insensitive
//   - Page 3 of 10: Limit=10, Offset=20, CountTotal=true
type ListTodosParams struct {
	// Search is a plain substring (not a pattern). Empty means no filter.
	Search string

	// Pagination (Limit 0 = return all matching records)
	Limit  int // Maximum number of records to return (page size)
	Offset int // Number of records to skip (for page N: offset = (N-1) * limit)

	// CountTotal asks the store to also count every matching record.
	CountTotal bool
}

// Paginated reports whether the params select a window of the result.
func (p ListTodosParams) Paginated() bool {
	return p.Limit > 0
}

// PagedResult contains todos matching the query parameters, newest first.
type PagedResult struct {
	Todos      []*Todo // Todos matching the ListTodosParams criteria
	TotalCount int     // Total matching todos across all pages (only when CountTotal)
}
