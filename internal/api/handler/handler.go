package handler

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/d60-Lab/postboard/config"
	"github.com/d60-Lab/postboard/internal/access"
	"github.com/d60-Lab/postboard/internal/api/middleware"
	"github.com/d60-Lab/postboard/internal/service"
	"github.com/d60-Lab/postboard/internal/storage"
	"github.com/d60-Lab/postboard/pkg/auth"
	"github.com/d60-Lab/postboard/pkg/response"
)

// Deps 构造 Handler 所需的依赖
type Deps struct {
	DB             *gorm.DB
	FeedService    service.FeedService
	PostService    service.PostService
	CommentService service.CommentService
	RelService     service.RelationshipService
	UserService    service.UserService
	Images         storage.ImageStore
	Tokens         *auth.Manager
	Auth           config.AuthConfig
}

type Handler struct {
	db             *gorm.DB
	feedService    service.FeedService
	postService    service.PostService
	commentService service.CommentService
	relService     service.RelationshipService
	userService    service.UserService
	images         storage.ImageStore
	tokens         *auth.Manager
	authCfg        config.AuthConfig
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		db:             d.DB,
		feedService:    d.FeedService,
		postService:    d.PostService,
		commentService: d.CommentService,
		relService:     d.RelService,
		userService:    d.UserService,
		images:         d.Images,
		tokens:         d.Tokens,
		authCfg:        d.Auth,
	}
}

func (h *Handler) caller(c *gin.Context) access.Caller { return middleware.Caller(c) }

// fail 把 service 层错误映射为响应
func (h *Handler) fail(c *gin.Context, err error) {
	if ve, ok := service.IsValidation(err); ok {
		response.ValidationFailed(c, ve.Fields)
		return
	}
	switch {
	case errors.Is(err, service.ErrNotFound):
		h.decide(c, access.Found(false))
	case errors.Is(err, service.ErrAuthRequired):
		// service 判定为未登录，按匿名调用者生成登录跳转
		h.decide(c, access.Create(access.Caller{}, c.Request.URL.RequestURI(), h.authCfg.LoginURL))
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}

// viewable 公开页面的访问判断
func (h *Handler) viewable(c *gin.Context) bool {
	return h.decide(c, access.View(h.caller(c)))
}

// decide 把访问判断写成响应；返回 false 时响应已写出
func (h *Handler) decide(c *gin.Context, d access.Decision) bool {
	switch d.Kind {
	case access.Allow:
		return true
	case access.Redirect:
		response.Redirect(c, d.Target)
	case access.NotFound:
		response.NotFound(c)
	default:
		response.InternalError(c, fmt.Errorf("unknown access decision %s", d.Kind))
	}
	return false
}
