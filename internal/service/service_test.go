package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/d60-Lab/postboard/internal/access"
	"github.com/d60-Lab/postboard/internal/model"
	"github.com/d60-Lab/postboard/internal/repository"
)

type fixture struct {
	db       *gorm.DB
	posts    repository.PostRepository
	groups   repository.GroupRepository
	users    repository.UserRepository
	follows  repository.FollowRepository
	comments repository.CommentRepository

	feed     FeedService
	post     PostService
	comment  CommentService
	relation RelationshipService
	user     UserService
	group    GroupService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, repository.AutoMigrate(db))
	t.Cleanup(func() { _ = sqlDB.Close() })

	f := &fixture{
		db:       db,
		posts:    repository.NewPostRepository(db),
		groups:   repository.NewGroupRepository(db),
		users:    repository.NewUserRepository(db),
		follows:  repository.NewFollowRepository(db),
		comments: repository.NewCommentRepository(db),
	}
	f.feed = NewFeedService(f.posts, f.groups, f.users, f.follows, 10)
	f.post = NewPostService(f.posts, f.groups, f.comments)
	f.comment = NewCommentService(f.posts, f.comments)
	f.relation = NewRelationshipService(f.follows, f.users)
	f.user = NewUserServiceWithCost(f.users, bcrypt.MinCost)
	f.group = NewGroupService(f.groups)
	return f
}

func (f *fixture) newUser(t *testing.T, username string) access.Caller {
	t.Helper()
	u := &model.User{ID: uuid.New().String(), Username: username, Password: "x"}
	require.NoError(t, f.users.Create(context.Background(), u))
	return access.Caller{UserID: u.ID, Username: u.Username}
}

func (f *fixture) newGroup(t *testing.T, slug string) *model.Group {
	t.Helper()
	g, err := f.group.Create(context.Background(), GroupInput{Title: "Group " + slug, Slug: slug})
	require.NoError(t, err)
	return g
}

// seed 直接写库，创建时间从 base 起逐条加一秒
func (f *fixture) seed(t *testing.T, author access.Caller, group *model.Group, n int, base time.Time) []*model.Post {
	t.Helper()
	out := make([]*model.Post, n)
	for i := 0; i < n; i++ {
		p := &model.Post{
			ID:        uuid.New().String(),
			Text:      fmt.Sprintf("%s #%d", author.Username, i),
			AuthorID:  author.UserID,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		if group != nil {
			p.GroupID = &group.ID
		}
		require.NoError(t, f.posts.Create(context.Background(), p))
		out[i] = p
	}
	return out
}

func ids(posts []*model.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func strPtr(s string) *string { return &s }

func repositoryAuthor(id string) repository.PostFilter { return repository.PostFilter{AuthorID: id} }
