package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/d60-Lab/postboard/internal/access"
	"github.com/d60-Lab/postboard/internal/model"
	"github.com/d60-Lab/postboard/internal/repository"
)

type CommentInput struct {
	Text string `json:"text" validate:"required,max=5000"`
}

type CommentService interface {
	// Add 匿名调用返回 ErrAuthRequired 且不写库
	Add(ctx context.Context, caller access.Caller, username, postID string, in CommentInput) (*model.Comment, error)
}

type commentService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

func NewCommentService(postRepo repository.PostRepository, commentRepo repository.CommentRepository) CommentService {
	return &commentService{postRepo: postRepo, commentRepo: commentRepo}
}

func (s *commentService) Add(ctx context.Context, caller access.Caller, username, postID string, in CommentInput) (*model.Comment, error) {
	if !caller.Authenticated() {
		return nil, ErrAuthRequired
	}
	post, err := s.postRepo.GetByAuthor(ctx, username, postID)
	if err != nil {
		return nil, notFound(err, "post %s/%s", username, postID)
	}
	in.Text = strings.TrimSpace(in.Text)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	c := &model.Comment{
		ID:       uuid.New().String(),
		PostID:   post.ID,
		AuthorID: caller.UserID,
		Text:     in.Text,
	}
	if err := s.commentRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return c, nil
}
