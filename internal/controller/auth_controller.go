package controller

import (
	"sauticare_web/internal/backend"
	"sauticare_web/internal/service"
	"sauticare_web/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary 用户登录
// @Description 向远程后端验证凭据，成功后在本地建立会话
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "登录凭据"
// @Success 200 {object} util.Response{data=model.User} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "凭据无效"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.LoginWithPassword(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		renderError(ctx, err)
		return
	}

	util.Success(ctx, user)
}

// swagger:model SignupRequest
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Language string `json:"language"`
}

// Signup godoc
// @Summary 注册新账号
// @Description 在远程后端注册并用下发的令牌直接登录
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body SignupRequest true "注册信息"
// @Success 201 {object} util.Response{data=model.User} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Router /api/auth/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.Signup(ctx.Request.Context(), backend.SignupRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Language: req.Language,
	})
	if err != nil {
		renderError(ctx, err)
		return
	}

	util.Created(ctx, user)
}

// Me godoc
// @Summary 当前用户
// @Description 返回本地会话中的当前用户
// @Tags 认证
// @Produce  json
// @Success 200 {object} util.Response{data=model.User} "成功"
// @Failure 401 {object} util.Response "未登录"
// @Router /api/auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user := c.AuthService.CurrentUser()
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, user)
}

// Logout godoc
// @Summary 退出登录
// @Description 清除本地令牌与用户，总是成功
// @Tags 认证
// @Produce  json
// @Success 200 {object} util.Response "成功"
// @Router /api/auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	c.AuthService.Logout()
	util.Success(ctx, nil)
}

// SessionState godoc
// @Summary 会话状态
// @Description 返回认证状态机当前所处的状态
// @Tags 认证
// @Produce  json
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/auth/state [get]
func (c *AuthController) SessionState(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"state": c.AuthService.State(),
		"user":  c.AuthService.CurrentUser(),
	})
}
