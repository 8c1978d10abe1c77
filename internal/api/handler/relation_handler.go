package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/postboard/internal/access"
	"github.com/d60-Lab/postboard/internal/service"
	"github.com/d60-Lab/postboard/pkg/response"
)

// ProfileFollow 关注作者
// @Summary 关注作者
// @Description 重复关注幂等；关注自己不产生记录
// @Tags 关系链
// @Produce json
// @Param username path string true "作者用户名"
// @Success 302 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /profile/{username}/follow [get]
func (h *Handler) ProfileFollow(c *gin.Context) {
	username := c.Param("username")
	err := h.relService.Follow(c.Request.Context(), h.caller(c).UserID, username)
	if err != nil && !errors.Is(err, service.ErrFollowSelf) {
		h.fail(c, err)
		return
	}
	response.Redirect(c, access.ProfileURL(username))
}

// ProfileUnfollow 取消关注
// @Summary 取消关注
// @Tags 关系链
// @Produce json
// @Param username path string true "作者用户名"
// @Success 302 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /profile/{username}/unfollow [get]
func (h *Handler) ProfileUnfollow(c *gin.Context) {
	username := c.Param("username")
	if err := h.relService.Unfollow(c.Request.Context(), h.caller(c).UserID, username); err != nil {
		h.fail(c, err)
		return
	}
	response.Redirect(c, access.ProfileURL(username))
}
