package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/postboard/internal/access"
	"github.com/d60-Lab/postboard/internal/model"
	"github.com/d60-Lab/postboard/internal/service"
	"github.com/d60-Lab/postboard/internal/storage"
	"github.com/d60-Lab/postboard/pkg/response"
)

var errBadUpload = errors.New("malformed multipart upload")

// postRequest 新建/编辑共用；未提交的字段为 nil
type postRequest struct {
	Text  *string `form:"text" json:"text"`
	Group *string `form:"group" json:"group"`
	Image *string `form:"image" json:"image"`
}

type postForm struct {
	Edit   bool           `json:"edit"`
	Post   *model.Post    `json:"post,omitempty"`
	Groups []*model.Group `json:"groups"`
}

type postView struct {
	*service.PostDetail
	CommentURL string `json:"comment_url"`
}

// PostView 帖子详情
// @Summary 帖子详情
// @Tags 帖子
// @Produce json
// @Param username path string true "作者用户名"
// @Param post_id path string true "帖子ID"
// @Success 200 {object} response.Response{data=service.PostDetail}
// @Failure 404 {object} response.Response
// @Router /posts/{username}/{post_id} [get]
func (h *Handler) PostView(c *gin.Context) {
	if !h.viewable(c) {
		return
	}
	username, id := c.Param("username"), c.Param("post_id")
	detail, err := h.postService.Get(c.Request.Context(), username, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, postView{PostDetail: detail, CommentURL: access.PostURL(username, id) + "/comment"})
}

// NewPostForm 新建帖子表单
// @Summary 新建帖子表单
// @Tags 帖子
// @Produce json
// @Success 200 {object} response.Response
// @Success 302 {object} response.Response
// @Router /new [get]
func (h *Handler) NewPostForm(c *gin.Context) {
	groups, err := h.postService.FormGroups(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, postForm{Groups: groups})
}

// CreatePost 新建帖子，成功后跳转首页
// @Summary 新建帖子
// @Tags 帖子
// @Accept json,mpfd,x-www-form-urlencoded
// @Produce json
// @Param request body postRequest true "帖子内容"
// @Success 302 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /new [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	image, err := h.upload(c)
	if err != nil {
		h.failUpload(c, err)
		return
	}
	in := service.PostInput{GroupID: req.Group}
	if req.Text != nil {
		in.Text = *req.Text
	}
	if image != "" {
		in.Image = image
	} else if req.Image != nil {
		in.Image = *req.Image
	}
	if _, err := h.postService.Create(c.Request.Context(), h.caller(c), in); err != nil {
		h.fail(c, err)
		return
	}
	response.Redirect(c, "/")
}

// EditPostForm 编辑表单，非作者跳回帖子页
// @Summary 编辑帖子表单
// @Tags 帖子
// @Produce json
// @Param username path string true "作者用户名"
// @Param post_id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Success 302 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /posts/{username}/{post_id}/edit [get]
func (h *Handler) EditPostForm(c *gin.Context) {
	post, ok := h.editable(c)
	if !ok {
		return
	}
	groups, err := h.postService.FormGroups(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, postForm{Edit: true, Post: post, Groups: groups})
}

// EditPost 保存编辑，只修改提交的字段
// @Summary 编辑帖子
// @Tags 帖子
// @Accept json,mpfd,x-www-form-urlencoded
// @Produce json
// @Param username path string true "作者用户名"
// @Param post_id path string true "帖子ID"
// @Param request body postRequest true "修改内容"
// @Success 302 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /posts/{username}/{post_id}/edit [post]
func (h *Handler) EditPost(c *gin.Context) {
	post, ok := h.editable(c)
	if !ok {
		return
	}
	var req postRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	image, err := h.upload(c)
	if err != nil {
		h.failUpload(c, err)
		return
	}
	patch := service.PostPatch{Text: req.Text, GroupID: req.Group, Image: req.Image}
	if image != "" {
		patch.Image = &image
	}

	username := c.Param("username")
	_, err = h.postService.Edit(c.Request.Context(), h.caller(c), username, post.ID, patch)
	if errors.Is(err, service.ErrNotAuthor) {
		response.Redirect(c, access.PostURL(username, post.ID))
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Redirect(c, access.PostURL(username, post.ID))
}

// editable 加载帖子并做作者校验；返回 false 时响应已写出
func (h *Handler) editable(c *gin.Context) (*model.Post, bool) {
	username, id := c.Param("username"), c.Param("post_id")
	post, err := h.postService.Lookup(c.Request.Context(), username, id)
	if err != nil && !errors.Is(err, service.ErrNotFound) {
		h.fail(c, err)
		return nil, false
	}
	if !h.decide(c, access.EditPost(h.caller(c), post, username, c.Request.URL.RequestURI(), h.authCfg.LoginURL)) {
		return nil, false
	}
	return post, true
}

// upload 处理 multipart 的 image 文件；没有文件时返回空串
func (h *Handler) upload(c *gin.Context) (string, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return "", nil
	}
	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", errBadUpload, err)
	}
	if h.images == nil {
		return "", storage.ErrDisabled
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	return h.images.Upload(c.Request.Context(), f, fh.Filename, fh.Header.Get("Content-Type"))
}

func (h *Handler) failUpload(c *gin.Context, err error) {
	if errors.Is(err, errBadUpload) {
		response.BadRequest(c, err.Error())
		return
	}
	if errors.Is(err, storage.ErrDisabled) {
		response.ValidationFailed(c, map[string]string{"image": "Image uploads are not enabled."})
		return
	}
	response.InternalError(c, err)
}
