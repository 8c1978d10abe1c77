package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/d60-Lab/postboard/internal/model"
)

func setupDB(tb testing.TB) *gorm.DB {
	tb.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(tb, err)
	sqlDB, err := db.DB()
	require.NoError(tb, err)
	// 每个连接都是独立的内存库，只保留一个
	sqlDB.SetMaxOpenConns(1)
	require.NoError(tb, AutoMigrate(db))
	tb.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func seedUser(tb testing.TB, db *gorm.DB, username string) *model.User {
	tb.Helper()
	u := &model.User{ID: uuid.New().String(), Username: username, Email: username + "@example.com", Password: "p"}
	require.NoError(tb, db.Create(u).Error)
	return u
}

func seedGroup(tb testing.TB, db *gorm.DB, slug string) *model.Group {
	tb.Helper()
	g := &model.Group{ID: uuid.New().String(), Title: "Group " + slug, Slug: slug}
	require.NoError(tb, db.Create(g).Error)
	return g
}

// seedPosts 创建 n 条帖子，创建时间逐条递增一秒
func seedPosts(tb testing.TB, db *gorm.DB, author *model.User, group *model.Group, n int, base time.Time) []*model.Post {
	tb.Helper()
	posts := make([]*model.Post, n)
	for i := 0; i < n; i++ {
		p := &model.Post{
			ID:        uuid.New().String(),
			Text:      fmt.Sprintf("post %d by %s", i, author.Username),
			AuthorID:  author.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		if group != nil {
			p.GroupID = &group.ID
		}
		require.NoError(tb, db.Create(p).Error)
		posts[i] = p
	}
	return posts
}

func ctx() context.Context { return context.Background() }
