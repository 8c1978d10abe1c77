package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/postboard/config"
	"github.com/d60-Lab/postboard/internal/access"
	"github.com/d60-Lab/postboard/internal/model"
	"github.com/d60-Lab/postboard/internal/repository"
	"github.com/d60-Lab/postboard/internal/service"
	"github.com/d60-Lab/postboard/pkg/database"
	"github.com/d60-Lab/postboard/pkg/logger"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func envInt(name string, def int) int {
	if s := os.Getenv(name); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

var groupSeeds = []service.GroupInput{
	{Title: "Cats", Slug: "cats", Description: "Everything about cats"},
	{Title: "Travel", Slug: "travel", Description: "Notes from the road"},
	{Title: "Go", Slug: "go", Description: "Gophers welcome"},
}

// 生成演示数据：USERS 个用户，每人 POSTS 条帖子，随机关注 FOLLOWS 人
func main() {
	cfg := must(config.Load())
	if err := logger.Init(cfg.Log.Level, "console", true); err != nil {
		panic(err)
	}
	defer logger.Sync()

	db := must(database.InitDB(cfg))
	defer func() { _ = database.Close(db) }()
	if err := repository.AutoMigrate(db); err != nil {
		panic(err)
	}

	users := envInt("USERS", 20)
	posts := envInt("POSTS", 15)
	follows := envInt("FOLLOWS", 5)
	conc := envInt("CONC", 4)
	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "postboard123"
	}

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	followRepo := repository.NewFollowRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	userSvc := service.NewUserService(userRepo)
	groupSvc := service.NewGroupService(groupRepo)
	postSvc := service.NewPostService(postRepo, groupRepo, commentRepo)
	relSvc := service.NewRelationshipService(followRepo, userRepo)

	ctx := context.Background()
	t0 := time.Now()

	groups := make([]*model.Group, 0, len(groupSeeds))
	for _, in := range groupSeeds {
		g, err := groupSvc.Create(ctx, in)
		if _, ok := service.IsValidation(err); ok {
			g = must(groupRepo.GetBySlug(ctx, in.Slug))
		} else if err != nil {
			panic(err)
		}
		groups = append(groups, g)
	}

	callers := make([]access.Caller, users)
	for i := 0; i < users; i++ {
		name := fmt.Sprintf("user%03d", i)
		u, err := userSvc.SignUp(ctx, service.SignUpInput{Username: name, Email: name + "@example.com", Password: password})
		if errors.Is(err, service.ErrUsernameTaken) {
			u = must(userRepo.GetByUsername(ctx, name))
		} else if err != nil {
			panic(err)
		}
		callers[i] = access.Caller{UserID: u.ID, Username: u.Username}
	}
	usersDur := time.Since(t0)

	// 帖子用 CONC 个 worker 并发写入
	t1 := time.Now()
	jobs := make(chan int, users*posts)
	for i := 0; i < users*posts; i++ {
		jobs <- i
	}
	close(jobs)
	errCh := make(chan error, conc)
	for w := 0; w < conc; w++ {
		go func(seed int64) {
			rnd := rand.New(rand.NewSource(seed))
			for i := range jobs {
				author := callers[i%users]
				in := service.PostInput{Text: fmt.Sprintf("Post #%d by %s", i/users, author.Username)}
				if n := rnd.Intn(len(groups) + 1); n < len(groups) {
					in.GroupID = &groups[n].ID
				}
				if _, err := postSvc.Create(ctx, author, in); err != nil {
					errCh <- err
					return
				}
			}
			errCh <- nil
		}(int64(w) + 1)
	}
	for w := 0; w < conc; w++ {
		if err := <-errCh; err != nil {
			panic(err)
		}
	}
	postsDur := time.Since(t1)

	t2 := time.Now()
	rnd := rand.New(rand.NewSource(42))
	edges := 0
	for _, c := range callers {
		for _, j := range rnd.Perm(users)[:min(follows, users)] {
			err := relSvc.Follow(ctx, c.UserID, callers[j].Username)
			if errors.Is(err, service.ErrFollowSelf) {
				continue
			}
			if err != nil {
				panic(err)
			}
			edges++
		}
	}
	followsDur := time.Since(t2)

	logger.Info("seed done",
		zap.Int("groups", len(groups)),
		zap.Int("users", users),
		zap.Int("posts", users*posts),
		zap.Int("follows", edges),
		zap.Duration("users_took", usersDur),
		zap.Duration("posts_took", postsDur),
		zap.Duration("follows_took", followsDur),
	)
	fmt.Printf("login as user000 / %s\n", password)
}
