package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/postboard/internal/access"
	"github.com/d60-Lab/postboard/internal/service"
	"github.com/d60-Lab/postboard/pkg/response"
)

type commentRequest struct {
	Text string `form:"text" json:"text"`
}

// AddComment 发表评论，成功后跳回帖子页
// @Summary 发表评论
// @Tags 评论
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param username path string true "作者用户名"
// @Param post_id path string true "帖子ID"
// @Param request body commentRequest true "评论内容"
// @Success 302 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /posts/{username}/{post_id}/comment [post]
func (h *Handler) AddComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	username, id := c.Param("username"), c.Param("post_id")
	if _, err := h.commentService.Add(c.Request.Context(), h.caller(c), username, id, service.CommentInput{Text: req.Text}); err != nil {
		h.fail(c, err)
		return
	}
	response.Redirect(c, access.PostURL(username, id))
}
