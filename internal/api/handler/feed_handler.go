package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/postboard/pkg/response"
)

// Index 首页信息流
// @Summary 全部帖子
// @Description 按发布时间倒序，每页 10 条，整页缓存 20 秒
// @Tags 信息流
// @Produce json
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response{data=service.FeedPage}
// @Router / [get]
func (h *Handler) Index(c *gin.Context) {
	if !h.viewable(c) {
		return
	}
	feed, err := h.feedService.Global(c.Request.Context(), c.DefaultQuery("page", "1"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, feed)
}

// GroupPosts 分组信息流
// @Summary 分组帖子
// @Tags 信息流
// @Produce json
// @Param slug path string true "分组 slug"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response{data=service.GroupFeed}
// @Failure 404 {object} response.Response
// @Router /group/{slug} [get]
func (h *Handler) GroupPosts(c *gin.Context) {
	if !h.viewable(c) {
		return
	}
	feed, err := h.feedService.Group(c.Request.Context(), c.Param("slug"), c.DefaultQuery("page", "1"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, feed)
}

// Profile 个人主页
// @Summary 作者主页
// @Tags 信息流
// @Produce json
// @Param username path string true "用户名"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response{data=service.ProfileFeed}
// @Failure 404 {object} response.Response
// @Router /profile/{username} [get]
func (h *Handler) Profile(c *gin.Context) {
	if !h.viewable(c) {
		return
	}
	feed, err := h.feedService.Profile(c.Request.Context(), h.caller(c), c.Param("username"), c.DefaultQuery("page", "1"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, feed)
}

// FollowIndex 关注的作者的帖子
// @Summary 关注信息流
// @Tags 信息流
// @Produce json
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response{data=service.FeedPage}
// @Success 302 {object} response.Response
// @Router /follow [get]
func (h *Handler) FollowIndex(c *gin.Context) {
	feed, err := h.feedService.Follow(c.Request.Context(), h.caller(c), c.DefaultQuery("page", "1"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, feed)
}
