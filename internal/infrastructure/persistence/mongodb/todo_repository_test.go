package mongodb

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rezkam/todos/internal/application/todo"
	"github.com/rezkam/todos/internal/config"
	"github.com/rezkam/todos/internal/domain"
	"github.com/rezkam/todos/internal/infrastructure/persistence/compliance"
)

func TestSearchFilter(t *testing.T) {
	t.Run("empty search matches everything", func(t *testing.T) {
		assert.Empty(t, searchFilter(""))
	})

	t.Run("regex metacharacters are quoted", func(t *testing.T) {
		filter := searchFilter("a.b*(c)")

		or, ok := filter["$or"].(bson.A)
		require.True(t, ok)
		require.Len(t, or, 2)

		title := or[0].(bson.M)["title"].(primitive.Regex)
		assert.Equal(t, regexp.QuoteMeta("a.b*(c)"), title.Pattern)
		assert.Equal(t, "i", title.Options)

		re := regexp.MustCompile("(?i)" + title.Pattern)
		assert.True(t, re.MatchString("xA.B*(C)y"))
		assert.False(t, re.MatchString("aXbbc"))

		desc := or[1].(bson.M)["description"].(primitive.Regex)
		assert.Equal(t, title, desc)
	})
}

func TestParseObjectID(t *testing.T) {
	oid := primitive.NewObjectID()

	got, err := parseObjectID(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, got)

	for _, bad := range []string{"", "not-an-id", "123", "../../etc/passwd"} {
		_, err := parseObjectID(bad)
		assert.ErrorIs(t, err, domain.ErrTodoNotFound, bad)
		assert.ErrorIs(t, err, domain.ErrInvalidID, bad)
	}
}

func TestMongoStore_Compliance(t *testing.T) {
	cfg, err := config.LoadTestConfig()
	require.NoError(t, err)
	if cfg.MongoURI == "" {
		t.Skip("TODOS_TEST_MONGO_URI not set, skipping MongoDB tests")
	}

	compliance.RunRepositoryComplianceTest(t, func() (todo.Repository, func()) {
		ctx := context.Background()
		store, err := NewStore(ctx, Config{
			URI:        cfg.MongoURI,
			Database:   "todos_test",
			Collection: fmt.Sprintf("todos_%d", time.Now().UnixNano()),
		})
		require.NoError(t, err)

		return store, func() {
			_ = store.Collection().Drop(context.Background())
			_ = store.Close()
		}
	})
}
