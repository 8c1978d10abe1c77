package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/d60-Lab/postboard/internal/access"
	"github.com/d60-Lab/postboard/internal/model"
	"github.com/d60-Lab/postboard/internal/repository"
)

// PostInput 新建帖子；GroupID 为 nil 表示不属于任何分组
type PostInput struct {
	Text    string  `json:"text" validate:"required,max=10000"`
	GroupID *string `json:"group" validate:"omitempty,uuid"`
	Image   string  `json:"image" validate:"omitempty,max=255"`
}

// PostPatch 编辑帖子，nil 字段保持不变；GroupID 指向空串表示移出分组
type PostPatch struct {
	Text    *string `json:"text" validate:"omitempty,max=10000"`
	GroupID *string `json:"group"`
	Image   *string `json:"image" validate:"omitempty,max=255"`
}

// PostDetail 帖子详情页
type PostDetail struct {
	Post          *model.Post      `json:"post"`
	Author        *model.User      `json:"author"`
	Comments      []*model.Comment `json:"comments"`
	CommentsCount int              `json:"comments_count"`
	AuthorPosts   int64            `json:"author_posts_count"`
}

type PostService interface {
	Create(ctx context.Context, caller access.Caller, in PostInput) (*model.Post, error)
	Get(ctx context.Context, username, id string) (*PostDetail, error)
	// Lookup 仅按作者用户名 + ID 取帖子，供权限判断使用
	Lookup(ctx context.Context, username, id string) (*model.Post, error)
	Edit(ctx context.Context, caller access.Caller, username, id string, patch PostPatch) (*model.Post, error)
	FormGroups(ctx context.Context) ([]*model.Group, error)
}

type postService struct {
	postRepo    repository.PostRepository
	groupRepo   repository.GroupRepository
	commentRepo repository.CommentRepository
	now         func() time.Time
}

func NewPostService(postRepo repository.PostRepository, groupRepo repository.GroupRepository, commentRepo repository.CommentRepository) PostService {
	return &postService{postRepo: postRepo, groupRepo: groupRepo, commentRepo: commentRepo, now: time.Now}
}

func (s *postService) Create(ctx context.Context, caller access.Caller, in PostInput) (*model.Post, error) {
	if !caller.Authenticated() {
		return nil, ErrAuthRequired
	}
	in.Text = strings.TrimSpace(in.Text)
	if in.GroupID != nil && strings.TrimSpace(*in.GroupID) == "" {
		in.GroupID = nil
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if err := s.checkGroup(ctx, in.GroupID); err != nil {
		return nil, err
	}

	now := s.now()
	post := &model.Post{
		ID:        uuid.New().String(),
		Text:      in.Text,
		Image:     in.Image,
		GroupID:   in.GroupID,
		AuthorID:  caller.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

func (s *postService) Get(ctx context.Context, username, id string) (*PostDetail, error) {
	post, err := s.Lookup(ctx, username, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	authorPosts, err := s.postRepo.Count(ctx, repository.PostFilter{AuthorID: post.AuthorID})
	if err != nil {
		return nil, fmt.Errorf("count author posts: %w", err)
	}
	return &PostDetail{
		Post:          post,
		Author:        post.Author,
		Comments:      comments,
		CommentsCount: len(comments),
		AuthorPosts:   authorPosts,
	}, nil
}

func (s *postService) Lookup(ctx context.Context, username, id string) (*model.Post, error) {
	post, err := s.postRepo.GetByAuthor(ctx, username, id)
	if err != nil {
		return nil, notFound(err, "post %s/%s", username, id)
	}
	return post, nil
}

func (s *postService) Edit(ctx context.Context, caller access.Caller, username, id string, patch PostPatch) (*model.Post, error) {
	if !caller.Authenticated() {
		return nil, ErrAuthRequired
	}
	post, err := s.Lookup(ctx, username, id)
	if err != nil {
		return nil, err
	}
	if !caller.Is(post.AuthorID) {
		return nil, ErrNotAuthor
	}

	fields := make(map[string]interface{}, 3)
	if patch.Text != nil {
		text := strings.TrimSpace(*patch.Text)
		if text == "" {
			return nil, fieldError("text", "This field is required.", nil)
		}
		patch.Text = &text
		fields["text"] = text
	}
	if err := validateStruct(patch); err != nil {
		return nil, err
	}
	if patch.GroupID != nil {
		if gid := strings.TrimSpace(*patch.GroupID); gid == "" {
			fields["group_id"] = nil
		} else {
			if err := s.checkGroup(ctx, &gid); err != nil {
				return nil, err
			}
			fields["group_id"] = gid
		}
	}
	if patch.Image != nil {
		fields["image"] = *patch.Image
	}
	if len(fields) == 0 {
		return post, nil
	}
	fields["updated_at"] = s.now()

	if err := s.postRepo.Update(ctx, post.ID, fields); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	updated, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return nil, notFound(err, "post %s", post.ID)
	}
	return updated, nil
}

func (s *postService) FormGroups(ctx context.Context) ([]*model.Group, error) {
	return s.groupRepo.List(ctx)
}

func (s *postService) checkGroup(ctx context.Context, groupID *string) error {
	if groupID == nil {
		return nil
	}
	if _, err := s.groupRepo.GetByID(ctx, *groupID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fieldError("group", "Select a valid choice. That choice is not one of the available choices.", err)
		}
		return fmt.Errorf("load group: %w", err)
	}
	return nil
}
