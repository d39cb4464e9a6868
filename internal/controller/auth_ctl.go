package controller

import (
	"github.com/gin-gonic/gin"

	"edumall_v1_202608/internal/api/dto"
	"edumall_v1_202608/internal/middleware"
	"edumall_v1_202608/internal/service"
)

// ==================== AuthController 认证控制器 ====================

// AuthController 认证控制器
type AuthController struct {
	userService *service.UserService
}

// NewAuthController 创建认证控制器
func NewAuthController(userService *service.UserService) *AuthController {
	return &AuthController{userService: userService}
}

// Login 登录
// @Summary 登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} dto.AccountInfo
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /auth/login [post]
func (ctl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	account, token, err := ctl.userService.Login(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err)
		return
	}

	// 会话放 Cookie，响应体只带账号视图（不含密码字段）
	middleware.SetSessionCookie(c, token)
	OK(c, gin.H{"user": account})
}

// Register 注册
// 未登录时为公开自助注册（只能注册 subscriber），
// 带会话时按委托规则建号
// @Summary 注册
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "注册信息"
// @Success 201 {object} dto.AccountInfo
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /auth/register [post]
func (ctl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	// OptionalAuth 挂过之后这里可能有当前账号
	caller := middleware.CurrentAccount(c)

	account, err := ctl.userService.Register(c.Request.Context(), caller, &req)
	if err != nil {
		Fail(c, err)
		return
	}

	Created(c, account)
}

// Logout 登出，清除会话 Cookie
// @Summary 登出
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /auth/logout [post]
func (ctl *AuthController) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c)
	OK(c, nil)
}

// ChangePassword 修改密码
// @Summary 修改密码
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "密码信息"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /auth/change-password [post]
func (ctl *AuthController) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	account := middleware.CurrentAccount(c)
	if err := ctl.userService.ChangePassword(c.Request.Context(), account.ID, &req); err != nil {
		Fail(c, err)
		return
	}

	OK(c, nil)
}

// Profile 当前账号信息
// @Summary 当前账号信息
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.AccountInfo
// @Failure 401 {object} map[string]interface{}
// @Router /auth/profile [get]
func (ctl *AuthController) Profile(c *gin.Context) {
	account := middleware.CurrentAccount(c)

	info, err := ctl.userService.GetProfile(c.Request.Context(), account.ID)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, info)
}
