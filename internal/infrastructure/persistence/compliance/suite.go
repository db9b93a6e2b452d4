// Package compliance holds the behavioral contract every todo.Repository must satisfy.
package compliance

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/todos/internal/application/todo"
	"github.com/rezkam/todos/internal/domain"
)

// baseTime anchors created_at values so ordering assertions are deterministic.
var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// RunRepositoryComplianceTest runs a standard set of tests against a Repository implementation.
// setup is a function that returns a fresh (clean) Repository instance for the test.
// cleanup is called after the test to clean up resources (if any).
func RunRepositoryComplianceTest(t *testing.T, setup func() (todo.Repository, func())) {
	t.Run("CreateAssignsUniqueIDs", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		first := mustCreate(t, repo, "one", "", baseTime)
		second := mustCreate(t, repo, "two", "", baseTime)

		assert.NotEmpty(t, first.ID)
		assert.NotEmpty(t, second.ID)
		assert.NotEqual(t, first.ID, second.ID)

		result, err := repo.FindTodos(ctx, domain.ListTodosParams{})
		require.NoError(t, err)
		assert.Len(t, result.Todos, 2)
	})

	t.Run("CreatePreservesFields", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		created := mustCreate(t, repo, "Buy milk", "<p><b>2 litres</b></p>", baseTime)

		assert.Equal(t, "Buy milk", created.Title)
		assert.Equal(t, "<p><b>2 litres</b></p>", created.Description)
		assert.True(t, baseTime.Equal(created.CreatedAt), "created_at round-trips: got %v", created.CreatedAt)

		result, err := repo.FindTodos(ctx, domain.ListTodosParams{})
		require.NoError(t, err)
		require.Len(t, result.Todos, 1)
		fetched := result.Todos[0]
		assert.Equal(t, created.ID, fetched.ID)
		assert.Equal(t, created.Title, fetched.Title)
		assert.Equal(t, created.Description, fetched.Description)
		assert.True(t, created.CreatedAt.Equal(fetched.CreatedAt))
		assert.Equal(t, time.UTC, fetched.CreatedAt.Location())
	})

	t.Run("CreateAcceptsEmptyFields", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()

		created := mustCreate(t, repo, "", "", baseTime)

		assert.NotEmpty(t, created.ID)
		assert.Empty(t, created.Title)
		assert.Empty(t, created.Description)
	})

	t.Run("ListEmptyStore", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()

		result, err := repo.FindTodos(context.Background(), domain.ListTodosParams{CountTotal: true})
		require.NoError(t, err)
		assert.Empty(t, result.Todos)
		assert.Zero(t, result.TotalCount)
	})

	t.Run("ListNewestFirst", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()

		oldest := mustCreate(t, repo, "oldest", "", baseTime)
		newest := mustCreate(t, repo, "newest", "", baseTime.Add(2*time.Hour))
		middle := mustCreate(t, repo, "middle", "", baseTime.Add(time.Hour))

		result, err := repo.FindTodos(context.Background(), domain.ListTodosParams{})
		require.NoError(t, err)

		assert.Equal(t, []string{newest.ID, middle.ID, oldest.ID}, idsOf(result.Todos))
	})

	t.Run("SearchMatchesTitleOrDescriptionIgnoringCase", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()

		inTitle := mustCreate(t, repo, "Buy MILK", "", baseTime)
		inDescription := mustCreate(t, repo, "groceries", "<p>oat milk</p>", baseTime.Add(time.Minute))
		mustCreate(t, repo, "bread", "sourdough", baseTime.Add(2*time.Minute))

		result, err := repo.FindTodos(context.Background(), domain.ListTodosParams{Search: "Milk"})
		require.NoError(t, err)

		assert.Equal(t, []string{inDescription.ID, inTitle.ID}, idsOf(result.Todos))
	})

	t.Run("SearchNoMatch", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()

		mustCreate(t, repo, "alpha", "beta", baseTime)

		result, err := repo.FindTodos(context.Background(), domain.ListTodosParams{Search: "zzz", CountTotal: true})
		require.NoError(t, err)
		assert.Empty(t, result.Todos)
		assert.Zero(t, result.TotalCount)
	})

	t.Run("SearchTreatsQueryLanguageCharactersLiterally", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()

		percent := mustCreate(t, repo, "100% done", "", baseTime)
		dot := mustCreate(t, repo, "a.b", "", baseTime.Add(time.Minute))
		underscore := mustCreate(t, repo, "x_y", "", baseTime.Add(2*time.Minute))
		plain := mustCreate(t, repo, "plain words", "(parens) [brackets]", baseTime.Add(3*time.Minute))

		tests := []struct {
			search string
			want   []string
		}{
			{"%", []string{percent.ID}},
			{".", []string{dot.ID}},
			{"_", []string{underscore.ID}},
			{"a.b", []string{dot.ID}},
			{"(parens", []string{plain.ID}},
			{"[brackets]", []string{plain.ID}},
			{".*", []string{}},
			{`\`, []string{}},
		}

		for _, tt := range tests {
			t.Run(fmt.Sprintf("search %q", tt.search), func(t *testing.T) {
				result, err := repo.FindTodos(context.Background(), domain.ListTodosParams{Search: tt.search})
				require.NoError(t, err)
				assert.Equal(t, tt.want, idsOf(result.Todos))
			})
		}
	})

	t.Run("Pagination", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()

		var created []*domain.Todo
		for i := range 5 {
			created = append(created, mustCreate(t, repo, fmt.Sprintf("todo %d", i), "", baseTime.Add(time.Duration(i)*time.Minute)))
		}

		// Newest first: 4, 3, 2, 1, 0
		tests := []struct {
			name   string
			limit  int
			offset int
			want   []string
		}{
			{"first page", 2, 0, []string{created[4].ID, created[3].ID}},
			{"second page", 2, 2, []string{created[2].ID, created[1].ID}},
			{"last partial page", 2, 4, []string{created[0].ID}},
			{"beyond the end", 2, 6, []string{}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				result, err := repo.FindTodos(context.Background(), domain.ListTodosParams{
					Limit:      tt.limit,
					Offset:     tt.offset,
					CountTotal: true,
				})
				require.NoError(t, err)
				assert.Equal(t, tt.want, idsOf(result.Todos))
				assert.Equal(t, 5, result.TotalCount)
			})
		}
	})

	t.Run("PaginationCountsOnlyMatches", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()

		for i := range 4 {
			mustCreate(t, repo, fmt.Sprintf("report %d", i), "", baseTime.Add(time.Duration(i)*time.Minute))
		}
		mustCreate(t, repo, "unrelated", "", baseTime.Add(time.Hour))

		result, err := repo.FindTodos(context.Background(), domain.ListTodosParams{
			Search:     "REPORT",
			Limit:      3,
			CountTotal: true,
		})
		require.NoError(t, err)
		assert.Len(t, result.Todos, 3)
		assert.Equal(t, 4, result.TotalCount)
	})

	t.Run("UpdateReplacesFieldsAndKeepsCreatedAt", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		created := mustCreate(t, repo, "draft", "<p>old</p>", baseTime)

		updated, err := repo.UpdateTodo(ctx, domain.UpdateTodoParams{
			ID:          created.ID,
			Title:       "final",
			Description: "<p>new</p>",
		})
		require.NoError(t, err)

		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "final", updated.Title)
		assert.Equal(t, "<p>new</p>", updated.Description)
		assert.True(t, created.CreatedAt.Equal(updated.CreatedAt), "created_at must not change on update")

		result, err := repo.FindTodos(ctx, domain.ListTodosParams{})
		require.NoError(t, err)
		require.Len(t, result.Todos, 1)
		assert.Equal(t, "final", result.Todos[0].Title)
		assert.True(t, created.CreatedAt.Equal(result.Todos[0].CreatedAt))
	})

	t.Run("UpdateCanClearFields", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()

		created := mustCreate(t, repo, "title", "body", baseTime)

		updated, err := repo.UpdateTodo(context.Background(), domain.UpdateTodoParams{ID: created.ID})
		require.NoError(t, err)
		assert.Empty(t, updated.Title)
		assert.Empty(t, updated.Description)
	})

	t.Run("UpdateDeletedTodoNotFound", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		created := mustCreate(t, repo, "short lived", "", baseTime)
		require.NoError(t, repo.DeleteTodo(ctx, created.ID))

		_, err := repo.UpdateTodo(ctx, domain.UpdateTodoParams{ID: created.ID, Title: "x"})
		assert.ErrorIs(t, err, domain.ErrTodoNotFound)
	})

	t.Run("MalformedIDNotFound", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		for _, id := range []string{"not-an-id", "../../etc/passwd", "123"} {
			_, err := repo.UpdateTodo(ctx, domain.UpdateTodoParams{ID: id, Title: "x"})
			assert.ErrorIs(t, err, domain.ErrTodoNotFound, "update %q", id)

			err = repo.DeleteTodo(ctx, id)
			assert.ErrorIs(t, err, domain.ErrTodoNotFound, "delete %q", id)
		}
	})

	t.Run("DeleteTwiceNotFound", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		created := mustCreate(t, repo, "once", "", baseTime)

		require.NoError(t, repo.DeleteTodo(ctx, created.ID))
		assert.ErrorIs(t, repo.DeleteTodo(ctx, created.ID), domain.ErrTodoNotFound)
	})

	t.Run("DeleteMiddleKeepsOrder", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		a := mustCreate(t, repo, "a", "", baseTime)
		b := mustCreate(t, repo, "b", "", baseTime.Add(time.Minute))
		c := mustCreate(t, repo, "c", "", baseTime.Add(2*time.Minute))

		require.NoError(t, repo.DeleteTodo(ctx, b.ID))

		result, err := repo.FindTodos(ctx, domain.ListTodosParams{})
		require.NoError(t, err)
		assert.Equal(t, []string{c.ID, a.ID}, idsOf(result.Todos))
	})

	t.Run("ConcurrentCreates", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		const workers = 10
		var wg sync.WaitGroup
		ids := make([]string, workers)
		errs := make([]error, workers)

		for i := range workers {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				created, err := repo.CreateTodo(ctx, &domain.Todo{
					Title:     fmt.Sprintf("concurrent %d", i),
					CreatedAt: baseTime.Add(time.Duration(i) * time.Second),
				})
				errs[i] = err
				if err == nil {
					ids[i] = created.ID
				}
			}(i)
		}
		wg.Wait()

		seen := make(map[string]bool, workers)
		for i := range workers {
			require.NoError(t, errs[i])
			assert.False(t, seen[ids[i]], "duplicate id %s", ids[i])
			seen[ids[i]] = true
		}

		result, err := repo.FindTodos(ctx, domain.ListTodosParams{CountTotal: true})
		require.NoError(t, err)
		assert.Equal(t, workers, result.TotalCount)
	})
}

func mustCreate(t *testing.T, repo todo.Repository, title, description string, createdAt time.Time) *domain.Todo {
	t.Helper()
	created, err := repo.CreateTodo(context.Background(), &domain.Todo{
		Title:       title,
		Description: description,
		CreatedAt:   createdAt,
	})
	require.NoError(t, err)
	return created
}

func idsOf(todos []*domain.Todo) []string {
	out := make([]string, 0, len(todos))
	for _, t := range todos {
		out = append(out, t.ID)
	}
	return out
}
