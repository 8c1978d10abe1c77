package service

import (
	"context"
	"fmt"

	"github.com/d60-Lab/postboard/internal/access"
	"github.com/d60-Lab/postboard/internal/model"
	"github.com/d60-Lab/postboard/internal/repository"
	"github.com/d60-Lab/postboard/pkg/pagination"
)

// FeedPage 一页帖子（已按时间倒序）
type FeedPage struct {
	Page  pagination.Page `json:"page"`
	Posts []*model.Post   `json:"posts"`
}

type GroupFeed struct {
	FeedPage
	Group *model.Group `json:"group"`
}

type ProfileFeed struct {
	FeedPage
	Author         *model.User `json:"author"`
	Following      bool        `json:"following"`
	FollowersCount int64       `json:"followers_count"`
	FollowingCount int64       `json:"following_count"`
}

// FeedService 组装首页、分组、个人主页、关注四种信息流
type FeedService interface {
	Global(ctx context.Context, page string) (*FeedPage, error)
	Group(ctx context.Context, slug, page string) (*GroupFeed, error)
	Profile(ctx context.Context, caller access.Caller, username, page string) (*ProfileFeed, error)
	Follow(ctx context.Context, caller access.Caller, page string) (*FeedPage, error)
}

type feedService struct {
	postRepo   repository.PostRepository
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	relService RelationshipService
	perPage    int
}

func NewFeedService(postRepo repository.PostRepository, groupRepo repository.GroupRepository, userRepo repository.UserRepository, followRepo repository.FollowRepository, perPage int) FeedService {
	if perPage <= 0 {
		perPage = pagination.DefaultPerPage
	}
	return &feedService{
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
		relService: NewRelationshipService(followRepo, userRepo),
		perPage:    perPage,
	}
}

func (s *feedService) Global(ctx context.Context, page string) (*FeedPage, error) {
	return s.list(ctx, repository.PostFilter{}, page)
}

func (s *feedService) Group(ctx context.Context, slug, page string) (*GroupFeed, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, notFound(err, "group %q", slug)
	}
	fp, err := s.list(ctx, repository.PostFilter{GroupID: group.ID}, page)
	if err != nil {
		return nil, err
	}
	return &GroupFeed{FeedPage: *fp, Group: group}, nil
}

func (s *feedService) Profile(ctx context.Context, caller access.Caller, username, page string) (*ProfileFeed, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err, "user %q", username)
	}
	fp, err := s.list(ctx, repository.PostFilter{AuthorID: author.ID}, page)
	if err != nil {
		return nil, err
	}

	out := &ProfileFeed{FeedPage: *fp, Author: author}
	if out.Following, err = s.relService.IsFollowing(ctx, caller.UserID, author.ID); err != nil {
		return nil, fmt.Errorf("check follow: %w", err)
	}
	if out.FollowersCount, err = s.followRepo.CountFollowers(ctx, author.ID); err != nil {
		return nil, fmt.Errorf("count followers: %w", err)
	}
	if out.FollowingCount, err = s.followRepo.CountFollowings(ctx, author.ID); err != nil {
		return nil, fmt.Errorf("count followings: %w", err)
	}
	return out, nil
}

func (s *feedService) Follow(ctx context.Context, caller access.Caller, page string) (*FeedPage, error) {
	if !caller.Authenticated() {
		return nil, ErrAuthRequired
	}
	return s.list(ctx, repository.PostFilter{FollowerID: caller.UserID}, page)
}

func (s *feedService) list(ctx context.Context, filter repository.PostFilter, raw string) (*FeedPage, error) {
	total, err := s.postRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}
	page := pagination.New(total, s.perPage).GetPage(raw)
	posts, err := s.postRepo.List(ctx, filter, page.Offset, page.Limit)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return &FeedPage{Page: page, Posts: posts}, nil
}
