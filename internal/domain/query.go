package domain

import (
	"cmp"
	"slices"
	"strings"
)

// MatchesSearch reports whether title or description contains search,
// ignoring case. An empty search matches everything.
func (t *Todo) MatchesSearch(search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(t.Title), needle) ||
		strings.Contains(strings.ToLower(t.Description), needle)
}

// CompareNewestFirst orders todos by CreatedAt descending, then ID descending.
func CompareNewestFirst(a, b *Todo) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}

// ApplyListParams filters, orders and windows an unordered set of todos in memory.
// Stores without a query engine (filesystem, object storage) use it to honor
// the same contract as database-backed stores.
func ApplyListParams(todos []*Todo, params ListTodosParams) *PagedResult {
	matched := make([]*Todo, 0, len(todos))
	for _, t := range todos {
		if t.MatchesSearch(params.Search) {
			matched = append(matched, t)
		}
	}
	slices.SortFunc(matched, CompareNewestFirst)

	result := &PagedResult{Todos: matched}
	if params.CountTotal {
		result.TotalCount = len(matched)
	}

	if !params.Paginated() {
		return result
	}

	start := min(max(params.Offset, 0), len(matched))
	end := min(start+params.Limit, len(matched))
	result.Todos = matched[start:end]
	return result
}
