package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/postboard/internal/access"
	"github.com/d60-Lab/postboard/internal/service"
	"github.com/d60-Lab/postboard/pkg/response"
)

type signUpRequest struct {
	Username  string `form:"username" json:"username"`
	Email     string `form:"email" json:"email"`
	Password  string `form:"password" json:"password"`
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
}

type loginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
	Next     string `form:"next" json:"next"`
}

// SignUp 注册，成功后跳转登录页
// @Summary 注册
// @Tags 用户
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body signUpRequest true "注册信息"
// @Success 302 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/signup [post]
func (h *Handler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	_, err := h.userService.SignUp(c.Request.Context(), service.SignUpInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Redirect(c, h.authCfg.LoginURL)
}

// LoginForm 登录页上下文
// @Summary 登录表单
// @Tags 用户
// @Produce json
// @Param next query string false "登录后跳转地址"
// @Success 200 {object} response.Response
// @Router /auth/login [get]
func (h *Handler) LoginForm(c *gin.Context) {
	response.Success(c, gin.H{"next": access.SafeNext(c.Query("next"))})
}

// contactFields 联系表单字段，只渲染不提交
var contactFields = []string{"name", "email", "subject", "body"}

// Contact 联系表单上下文
// @Summary 联系表单
// @Tags 用户
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/contact [get]
func (h *Handler) Contact(c *gin.Context) {
	form := make(gin.H, len(contactFields))
	for _, f := range contactFields {
		form[f] = ""
	}
	response.Success(c, gin.H{"form": form})
}

// Login 校验密码并写入 token cookie
// @Summary 登录
// @Tags 用户
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body loginRequest true "用户名与密码"
// @Success 302 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if req.Next == "" {
		req.Next = c.Query("next")
	}
	u, err := h.userService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	token, err := h.tokens.Generate(u.ID, u.Username)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.authCfg.CookieName, token, int(h.tokens.TTL().Seconds()), "/", "", false, true)
	c.Header("X-Auth-Token", token)
	response.Redirect(c, access.SafeNext(req.Next))
}

// Logout 清除 cookie
// @Summary 退出登录
// @Tags 用户
// @Produce json
// @Success 302 {object} response.Response
// @Router /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(h.authCfg.CookieName, "", -1, "/", "", false, true)
	response.Redirect(c, "/")
}
