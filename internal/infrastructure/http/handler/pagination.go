package handler

import (
	"net/url"
	"strconv"

	"github.com/rezkam/todos/internal/application/todo"
)

// parsePage reads the page and limit query parameters.
// Pagination is engaged only when both are non-empty; otherwise nil is
// returned and the whole result set is listed. Values that do not parse
// are passed on as 0 and normalized by the service.
func parsePage(query url.Values) *todo.Page {
	if query.Get("page") == "" || query.Get("limit") == "" {
		return nil
	}

	return &todo.Page{
		Number: atoiOrZero(query.Get("page")),
		Size:   atoiOrZero(query.Get("limit")),
	}
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
