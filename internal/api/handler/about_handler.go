package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/postboard/pkg/response"
)

// AboutAuthor 静态页
// @Summary 关于作者
// @Tags 其他
// @Produce json
// @Success 200 {object} response.Response
// @Router /about/author [get]
func (h *Handler) AboutAuthor(c *gin.Context) {
	response.Success(c, gin.H{
		"title": "About the author",
		"text":  "Postboard is a small blogging platform: write posts, join groups, follow authors.",
	})
}

// AboutTech 静态页
// @Summary 技术栈
// @Tags 其他
// @Produce json
// @Success 200 {object} response.Response
// @Router /about/tech [get]
func (h *Handler) AboutTech(c *gin.Context) {
	response.Success(c, gin.H{
		"title": "Technologies",
		"stack": []string{"Go", "gin", "gorm", "PostgreSQL", "Redis", "zap", "viper"},
	})
}

// Healthz 数据库连通性
// @Summary 健康检查
// @Tags 其他
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /healthz [get]
func (h *Handler) Healthz(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, response.Response{Code: response.CodeInternal, Message: "database unavailable"})
		return
	}
	response.Success(c, gin.H{"status": "ok"})
}
