package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/d60-Lab/postboard/config"
)

// ErrDisabled 未配置存储桶时上传被拒绝
var ErrDisabled = errors.New("image storage is not configured")

// ImageStore 保存帖子配图，返回可公开访问的 URL
type ImageStore interface {
	Upload(ctx context.Context, body io.ReadSeeker, filename, contentType string) (string, error)
}

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store 基于 aws-sdk-go-v2 的实现
type S3Store struct {
	client  putObjectAPI
	bucket  string
	region  string
	folder  string
	baseURL string
}

// NewS3Store 按配置创建；Bucket 为空时返回 nil, nil
func NewS3Store(ctx context.Context, cfg config.StorageConfig) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, nil
	}
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return newS3Store(s3.NewFromConfig(awsCfg), cfg), nil
}

func newS3Store(client putObjectAPI, cfg config.StorageConfig) *S3Store {
	folder := strings.Trim(cfg.Folder, "/")
	if folder == "" {
		folder = "posts"
	}
	return &S3Store{
		client:  client,
		bucket:  cfg.Bucket,
		region:  cfg.Region,
		folder:  folder,
		baseURL: fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region),
	}
}

func (s *S3Store) Upload(ctx context.Context, body io.ReadSeeker, filename, contentType string) (string, error) {
	if s == nil {
		return "", ErrDisabled
	}
	key := s.objectKey(filename)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}

// objectKey 用随机前缀避免同名文件互相覆盖
func (s *S3Store) objectKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return s.folder + "/" + uuid.New().String() + ext
}
