package api

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/postboard/config"
	_ "github.com/d60-Lab/postboard/docs"
	"github.com/d60-Lab/postboard/internal/api/handler"
	"github.com/d60-Lab/postboard/internal/api/middleware"
	"github.com/d60-Lab/postboard/internal/cache"
	"github.com/d60-Lab/postboard/pkg/auth"
	"github.com/d60-Lab/postboard/pkg/response"
)

// IndexCacheKey 首页缓存键
const IndexCacheKey = "index_page"

// NewRouter 组装中间件与路由
func NewRouter(cfg *config.Config, h *handler.Handler, store cache.Store, tokens *auth.Manager) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(middleware.Recovery(), middleware.RequestLogger())
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimit(middleware.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)))
	}
	r.Use(middleware.OptionalAuth(tokens, cfg.Auth.CookieName))

	login := middleware.LoginRequired(cfg.Auth.LoginURL)
	indexCache := middleware.CachePage(store, middleware.PageCacheOptions{
		Key:        IndexCacheKey,
		TTL:        cfg.Cache.IndexTTL,
		VaryByPage: cfg.Cache.VaryByPage,
	})

	r.GET("/", indexCache, h.Index)
	r.GET("/group/:slug", h.GroupPosts)
	r.GET("/follow", login, h.FollowIndex)

	r.GET("/new", login, h.NewPostForm)
	r.POST("/new", login, h.CreatePost)

	profile := r.Group("/profile/:username")
	{
		profile.GET("", h.Profile)
		profile.GET("/follow", login, h.ProfileFollow)
		profile.GET("/unfollow", login, h.ProfileUnfollow)
	}

	posts := r.Group("/posts/:username/:post_id")
	{
		posts.GET("", h.PostView)
		posts.GET("/edit", login, h.EditPostForm)
		posts.POST("/edit", login, h.EditPost)
		posts.POST("/comment", login, h.AddComment)
	}

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", h.SignUp)
		authGroup.GET("/login", h.LoginForm)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", h.Logout)
		authGroup.GET("/contact", h.Contact)
	}

	r.GET("/about/author", h.AboutAuthor)
	r.GET("/about/tech", h.AboutTech)
	r.GET("/healthz", h.Healthz)

	if cfg.Server.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.NoRoute(response.NotFound)
	r.NoMethod(response.MethodNotAllowed)
	return r
}
