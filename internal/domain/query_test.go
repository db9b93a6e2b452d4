package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodo_MatchesSearch(t *testing.T) {
	todo := &Todo{Title: "Buy Milk", Description: "<p>at the <b>corner</b> shop</p>"}

	tests := []struct {
		name   string
		search string
		want   bool
	}{
		{"empty matches everything", "", true},
		{"title exact case", "Milk", true},
		{"title different case", "mILK", true},
		{"description substring", "CORNER", true},
		{"markup is plain text", "<b>", true},
		{"no match", "bread", false},
		{"regex metacharacters are literal", "Buy.Milk", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, todo.MatchesSearch(tt.search))
		})
	}
}

func TestApplyListParams_OrdersNewestFirst(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	todos := []*Todo{
		{ID: "a", Title: "old", CreatedAt: base},
		{ID: "c", Title: "new", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "b", Title: "mid", CreatedAt: base.Add(time.Hour)},
	}

	result := ApplyListParams(todos, ListTodosParams{})

	require.Len(t, result.Todos, 3)
	assert.Equal(t, []string{"c", "b", "a"}, ids(result.Todos))
	assert.Zero(t, result.TotalCount, "total is only computed on request")
}

func TestApplyListParams_TieBreaksOnID(t *testing.T) {
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	todos := []*Todo{
		{ID: "0001", CreatedAt: at},
		{ID: "0003", CreatedAt: at},
		{ID: "0002", CreatedAt: at},
	}

	result := ApplyListParams(todos, ListTodosParams{})

	assert.Equal(t, []string{"0003", "0002", "0001"}, ids(result.Todos))
}

func TestApplyListParams_Pagination(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var todos []*Todo
	for i := range 5 {
		todos = append(todos, &Todo{
			ID:        string(rune('a' + i)),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	tests := []struct {
		name   string
		params ListTodosParams
		want   []string
		total  int
	}{
		{"first page", ListTodosParams{Limit: 2, CountTotal: true}, []string{"e", "d"}, 5},
		{"second page", ListTodosParams{Limit: 2, Offset: 2, CountTotal: true}, []string{"c", "b"}, 5},
		{"short last page", ListTodosParams{Limit: 2, Offset: 4, CountTotal: true}, []string{"a"}, 5},
		{"past the end", ListTodosParams{Limit: 2, Offset: 10, CountTotal: true}, []string{}, 5},
		{"negative offset clamps", ListTodosParams{Limit: 1, Offset: -3}, []string{"e"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ApplyListParams(todos, tt.params)
			assert.Equal(t, tt.want, ids(result.Todos))
			assert.Equal(t, tt.total, result.TotalCount)
		})
	}
}

func TestApplyListParams_SearchThenCount(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	todos := []*Todo{
		{ID: "1", Title: "Alpha", CreatedAt: now},
		{ID: "2", Title: "beta", Description: "ALPHA inside", CreatedAt: now.Add(time.Second)},
		{ID: "3", Title: "gamma", CreatedAt: now.Add(2 * time.Second)},
	}

	result := ApplyListParams(todos, ListTodosParams{Search: "alpha", Limit: 1, CountTotal: true})

	assert.Equal(t, 2, result.TotalCount)
	assert.Equal(t, []string{"2"}, ids(result.Todos))
}

func TestNewCreatedAt_UTCMillisecond(t *testing.T) {
	ts := NewCreatedAt()

	assert.Equal(t, time.UTC, ts.Location())
	assert.Zero(t, ts.Nanosecond()%int(time.Millisecond))
}

func TestUpdateTodoParams_Validate(t *testing.T) {
	assert.ErrorIs(t, UpdateTodoParams{}.Validate(), ErrTodoNotFound)
	assert.NoError(t, UpdateTodoParams{ID: "x"}.Validate())
}

func ids(todos []*Todo) []string {
	out := make([]string, 0, len(todos))
	for _, t := range todos {
		out = append(out, t.ID)
	}
	return out
}
