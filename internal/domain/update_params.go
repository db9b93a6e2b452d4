package domain

import "fmt"

// UpdateTodoParams replaces the mutable fields of an existing todo.
// Both fields are always written; CreatedAt and ID are never touched.
type UpdateTodoParams struct {
	ID          string
	Title       string
	Description string
}

// Validate rejects params that cannot address a record.
func (p UpdateTodoParams) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: empty id", ErrTodoNotFound)
	}
	return nil
}
