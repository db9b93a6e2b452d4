package postgres

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rezkam/todos/internal/domain"
)

// parseTodoID converts an API ID into a UUID.
// A malformed ID cannot address any row, so it is reported as not found
// while keeping the parse error in the chain.
func parseTodoID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w: %w", domain.ErrTodoNotFound, domain.ErrInvalidID, err)
	}
	return parsed, nil
}

// uuidToPgtype converts google/uuid.UUID to pgtype.UUID.
func uuidToPgtype(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

// pgtypeToUUIDString converts pgtype.UUID to string (empty if invalid).
func pgtypeToUUIDString(id pgtype.UUID) string {
	if !id.Valid {
		return ""
	}
	return uuid.UUID(id.Bytes).String()
}

// timeToPgtype converts time.Time to pgtype.Timestamptz.
func timeToPgtype(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

// pgtypeToTime converts pgtype.Timestamptz to time.Time (zero if invalid).
// Always returns time in UTC location for consistent timezone handling.
func pgtypeToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time.UTC()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching search literally anywhere.
func containsPattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}

// todoRow mirrors a row of the todos table.
type todoRow struct {
	ID          pgtype.UUID
	Title       string
	Description string
	CreatedAt   pgtype.Timestamptz
}

func (r todoRow) toDomain() *domain.Todo {
	return &domain.Todo{
		ID:          pgtypeToUUIDString(r.ID),
		Title:       r.Title,
		Description: r.Description,
		CreatedAt:   pgtypeToTime(r.CreatedAt),
	}
}
