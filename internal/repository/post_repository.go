package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/postboard/internal/model"
)

// PostFilter 信息流过滤条件，空字段表示不过滤
type PostFilter struct {
	GroupID    string
	AuthorID   string
	FollowerID string // 只看 FollowerID 关注的作者
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	GetByAuthor(ctx context.Context, username, id string) (*model.Post, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Count(ctx context.Context, filter PostFilter) (int64, error)
	List(ctx context.Context, filter PostFilter, offset, limit int) ([]*model.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Where("id = ?", id).
		First(&post).Error
	if err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// GetByAuthor 按作者用户名 + 帖子 ID 查询，两者不匹配视为不存在
func (r *postRepository) GetByAuthor(ctx context.Context, username, id string) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).
		Select("posts.*").
		Joins("JOIN users ON users.id = posts.author_id").
		Where("users.username = ? AND posts.id = ?", username, id).
		Preload("Author").
		Preload("Group").
		Take(&post).Error
	if err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (r *postRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postRepository) Count(ctx context.Context, filter PostFilter) (int64, error) {
	var cnt int64
	err := r.scope(ctx, filter).Model(&model.Post{}).Count(&cnt).Error
	return cnt, err
}

// List 按 created_at DESC, id DESC 排序，保证分页稳定
func (r *postRepository) List(ctx context.Context, filter PostFilter, offset, limit int) ([]*model.Post, error) {
	if limit <= 0 {
		return []*model.Post{}, nil
	}
	res := make([]*model.Post, 0, limit)
	err := r.scope(ctx, filter).
		Preload("Author").
		Preload("Group").
		Order("posts.created_at DESC").
		Order("posts.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&res).Error
	return res, err
}

func (r *postRepository) scope(ctx context.Context, filter PostFilter) *gorm.DB {
	q := r.db.WithContext(ctx)
	if filter.GroupID != "" {
		q = q.Where("posts.group_id = ?", filter.GroupID)
	}
	if filter.AuthorID != "" {
		q = q.Where("posts.author_id = ?", filter.AuthorID)
	}
	if filter.FollowerID != "" {
		followees := r.db.WithContext(ctx).
			Model(&model.Follow{}).
			Select("followee_id").
			Where("follower_id = ?", filter.FollowerID)
		q = q.Where("posts.author_id IN (?)", followees)
	}
	return q
}
