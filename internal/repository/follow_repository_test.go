package repository

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/d60-Lab/postboard/internal/model"
)

func TestFollowRepository_CreateIsIdempotent(t *testing.T) {
	db := setupDB(t)
	repo := NewFollowRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	require.NoError(t, repo.Create(ctx(), alice.ID, bob.ID))
	require.NoError(t, repo.Create(ctx(), alice.ID, bob.ID))

	var cnt int64
	require.NoError(t, db.Model(&model.Follow{}).Count(&cnt).Error)
	assert.Equal(t, int64(1), cnt)

	ok, err := repo.Exists(ctx(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// 方向性：bob 并未关注 alice
	ok, err = repo.Exists(ctx(), bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

// 文件库 + 多连接，并发的相同关注请求只落一条记录
func TestFollowRepository_ConcurrentCreate(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "follow.db") + "?_busy_timeout=5000&_journal_mode=WAL"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(8)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, AutoMigrate(db))

	repo := NewFollowRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			errs <- repo.Create(ctx(), alice.ID, bob.ID)
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	var cnt int64
	require.NoError(t, db.Model(&model.Follow{}).Count(&cnt).Error)
	assert.Equal(t, int64(1), cnt)

	n, err := repo.CountFollowers(ctx(), bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestFollowRepository_DeleteAndCounts(t *testing.T) {
	db := setupDB(t)
	repo := NewFollowRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	require.NoError(t, repo.Create(ctx(), alice.ID, bob.ID))
	require.NoError(t, repo.Create(ctx(), carol.ID, bob.ID))

	followers, err := repo.CountFollowers(ctx(), bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), followers)

	followings, err := repo.CountFollowings(ctx(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), followings)

	deleted, err := repo.Delete(ctx(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestFollowRepository_ExistsQuery(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	dialector := postgres.New(postgres.Config{
		Conn:                 mockDB,
		DriverName:           "postgres",
		PreferSimpleProtocol: true,
	})
	db, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)
	repo := NewFollowRepository(db)

	tests := []struct {
		name     string
		count    int
		expected bool
	}{
		{name: "following", count: 1, expected: true},
		{name: "not following", count: 0, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock.ExpectQuery(`SELECT count\(\*\) FROM "follows"`).
				WithArgs("user1", "user2").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))

			ok, err := repo.Exists(ctx(), "user1", "user2")

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func BenchmarkFollowWrite(b *testing.B) {
	db := setupDB(b)
	repo := NewFollowRepository(db)
	users := make([]*model.User, 100)
	for i := range users {
		users[i] = seedUser(b, db, fmt.Sprintf("u%03d", i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		from := users[i%len(users)].ID
		to := users[(i*7+3)%len(users)].ID
		if from == to {
			continue
		}
		_ = repo.Create(ctx(), from, to)
	}
}
