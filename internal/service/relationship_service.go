package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/d60-Lab/postboard/internal/repository"
)

// RelationshipService 关系链服务
type RelationshipService interface {
	// Follow 按用户名关注作者；自己关注自己返回 ErrFollowSelf，不落库
	Follow(ctx context.Context, followerID, username string) error
	// Unfollow 取消关注；关系不存在时返回 ErrNotFound
	Unfollow(ctx context.Context, followerID, username string) error
	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)
}

type relationshipService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewRelationshipService(followRepo repository.FollowRepository, userRepo repository.UserRepository) RelationshipService {
	return &relationshipService{followRepo: followRepo, userRepo: userRepo}
}

func (s *relationshipService) Follow(ctx context.Context, followerID, username string) error {
	if followerID == "" {
		return ErrAuthRequired
	}
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return notFound(err, "user %q", username)
	}
	if followerID == author.ID {
		return ErrFollowSelf
	}
	if err := s.followRepo.Create(ctx, followerID, author.ID); err != nil {
		return fmt.Errorf("create follow: %w", err)
	}
	return nil
}

func (s *relationshipService) Unfollow(ctx context.Context, followerID, username string) error {
	if followerID == "" {
		return ErrAuthRequired
	}
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return notFound(err, "user %q", username)
	}
	deleted, err := s.followRepo.Delete(ctx, followerID, author.ID)
	if err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	if !deleted {
		return fmt.Errorf("follow %s -> %s: %w", followerID, author.ID, ErrNotFound)
	}
	return nil
}

func (s *relationshipService) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	if followerID == "" || followerID == followeeID {
		return false, nil
	}
	return s.followRepo.Exists(ctx, followerID, followeeID)
}

// notFound 把 repository.ErrNotFound 转成带上下文的 ErrNotFound，其它错误原样包装
func notFound(err error, format string, args ...interface{}) error {
	what := fmt.Sprintf(format, args...)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("load %s: %w", what, err)
}
