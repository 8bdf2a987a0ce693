package data

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/lk2023060901/ai-learning-backend/internal/pkg/database"
	"github.com/lk2023060901/ai-learning-backend/internal/pkg/logger"
	pkgredis "github.com/lk2023060901/ai-learning-backend/internal/pkg/redis"
	"github.com/lk2023060901/ai-learning-backend/internal/topic/types"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var topicColumns = []string{"id", "module_id", "title", "difficulty", "content", "created_at", "updated_at"}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	cfg := database.DefaultConfig()
	cfg.AutoMigrate = false
	db, err := database.Open(postgres.New(postgres.Config{Conn: sqlDB}), cfg, logger.NewNop())
	require.NoError(t, err)

	return db.GetDB(), mock
}

const selectTopic = `SELECT \* FROM "topics" WHERE module_id = \$1 AND title = \$2`

func TestTopicRepoFindByKey(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("hit", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(selectTopic).WillReturnRows(sqlmock.NewRows(topicColumns).
			AddRow("t1", "m1", "Closures", "beginner", []byte(`{"explanation":"x"}`), now, now))

		topic, err := NewTopicRepo(db).FindByKey(context.Background(), "m1", "Closures")
		require.NoError(t, err)
		require.NotNil(t, topic)
		assert.Equal(t, "t1", topic.ID)
		assert.True(t, topic.HasContent())
		assert.JSONEq(t, `{"explanation":"x"}`, string(topic.Content))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("null content", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(selectTopic).WillReturnRows(sqlmock.NewRows(topicColumns).
			AddRow("t1", "m1", "Closures", "beginner", nil, now, now))

		topic, err := NewTopicRepo(db).FindByKey(context.Background(), "m1", "Closures")
		require.NoError(t, err)
		require.NotNil(t, topic)
		assert.False(t, topic.HasContent())
	})

	t.Run("miss", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(selectTopic).WillReturnRows(sqlmock.NewRows(topicColumns))

		topic, err := NewTopicRepo(db).FindByKey(context.Background(), "m1", "Closures")
		require.NoError(t, err)
		assert.Nil(t, topic)
	})

	t.Run("error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(selectTopic).WillReturnError(errors.New("connection reset"))

		_, err := NewTopicRepo(db).FindByKey(context.Background(), "m1", "Closures")
		assert.ErrorContains(t, err, "connection reset")
	})
}

var upsertTopic = regexp.QuoteMeta(`INSERT INTO "topics"`) + `.*` +
	regexp.QuoteMeta(`ON CONFLICT ("module_id","title") DO UPDATE SET`) + `.*"content".*"updated_at".*` +
	regexp.QuoteMeta(`WHERE topics.content IS NULL OR topics.content = 'null'::jsonb OR topics.content = '{}'::jsonb`)

func TestTopicRepoUpsert(t *testing.T) {
	now := time.Now().UTC()
	topic := &types.Topic{
		ID:         "t1",
		ModuleID:   "m1",
		Title:      "Closures",
		Difficulty: "beginner",
		Content:    json.RawMessage(`{"explanation":"x"}`),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	tests := []struct {
		name       string
		result     error
		affected   int64
		wantStored bool
		wantErr    bool
	}{
		{name: "inserted or filled", affected: 1, wantStored: true},
		{name: "row already has content", affected: 0, wantStored: false},
		{name: "store error", result: errors.New("deadlock detected"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			exp := mock.ExpectExec(upsertTopic).
				WithArgs("t1", "m1", "Closures", "beginner", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg())
			if tt.result != nil {
				exp.WillReturnError(tt.result)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tt.affected))
			}

			stored, err := NewTopicRepo(db).Upsert(context.Background(), topic)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantStored, stored)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRoadmapRepoLatestByUser(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("with modules and topics", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT \* FROM "roadmaps" WHERE user_id = \$1 ORDER BY created_at DESC`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "goal", "created_at", "updated_at"}).
				AddRow("r1", "u1", "Go", "Backend developer", now, now))
		mock.ExpectQuery(`SELECT \* FROM "modules" WHERE roadmap_id = \$1 ORDER BY "order" ASC`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "roadmap_id", "title", "description", "order", "created_at", "updated_at"}).
				AddRow("m1", "r1", "Basics", "", 1, now, now).
				AddRow("m2", "r1", "Concurrency", "", 2, now, now))
		mock.ExpectQuery(`SELECT \* FROM "topics" WHERE module_id IN \(\$1,\$2\) ORDER BY created_at ASC`).
			WillReturnRows(sqlmock.NewRows(topicColumns).
				AddRow("t1", "m1", "Variables", "beginner", nil, now, now).
				AddRow("t2", "m1", "Closures", "beginner", []byte(`{"explanation":"x"}`), now, now))

		roadmap, err := NewRoadmapRepo(db).LatestByUser(context.Background(), "u1")
		require.NoError(t, err)
		require.NotNil(t, roadmap)
		assert.Equal(t, "r1", roadmap.ID)
		require.Len(t, roadmap.Modules, 2)
		assert.Equal(t, "Basics", roadmap.Modules[0].Title)
		assert.Len(t, roadmap.Modules[0].Topics, 2)
		assert.NotNil(t, roadmap.Modules[1].Topics)
		assert.Empty(t, roadmap.Modules[1].Topics)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no roadmap", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT \* FROM "roadmaps"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "goal", "created_at", "updated_at"}))

		roadmap, err := NewRoadmapRepo(db).LatestByUser(context.Background(), "u1")
		require.NoError(t, err)
		assert.Nil(t, roadmap)
	})
}

func TestKVStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := pkgredis.NewFromUniversal(goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1}), nil, logger.NewNop())
	store := NewKVStore(client)
	ctx := context.Background()

	_, found, err := store.Get(ctx, "roadmap:u1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "roadmap:u1", []byte(`{"title":"kv"}`), 0))
	value, found, err := store.Get(ctx, "roadmap:u1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"title":"kv"}`, string(value))

	mr.Close()
	_, _, err = store.Get(ctx, "roadmap:u1")
	assert.Error(t, err)
}
