package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"edumall_v1_202608/internal/api/dto"
	"edumall_v1_202608/internal/middleware"
	"edumall_v1_202608/internal/service"
)

// ==================== UserController 账号管理控制器 ====================

// UserController 账号管理控制器（后台）
type UserController struct {
	userService *service.UserService
}

// NewUserController 创建账号管理控制器
func NewUserController(userService *service.UserService) *UserController {
	return &UserController{userService: userService}
}

// List 账号列表
// @Summary 账号列表
// @Tags Users
// @Produce json
// @Param keyword query string false "关键词"
// @Param role query string false "角色"
// @Success 200 {object} dto.AccountListResponse
// @Failure 403 {object} map[string]interface{}
// @Router /users [get]
func (ctl *UserController) List(c *gin.Context) {
	var req dto.AccountListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	caller := middleware.CurrentAccount(c)
	resp, err := ctl.userService.ListAccounts(c.Request.Context(), caller, &req)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, resp)
}

// Get 账号详情
// @Summary 账号详情
// @Tags Users
// @Produce json
// @Param id path int true "账号 ID"
// @Success 200 {object} dto.AccountInfo
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /users/{id} [get]
func (ctl *UserController) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "ID 不合法")
		return
	}

	caller := middleware.CurrentAccount(c)
	info, err := ctl.userService.GetAccount(c.Request.Context(), caller, id)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, info)
}

// Create 创建账号（委托建号，与公开注册同一套规则）
// @Summary 创建账号
// @Tags Users
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "账号信息"
// @Success 201 {object} dto.AccountInfo
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /users [post]
func (ctl *UserController) Create(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	caller := middleware.CurrentAccount(c)
	account, err := ctl.userService.Register(c.Request.Context(), caller, &req)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, account)
}

// Update 更新账号（仅管理员）
// @Summary 更新账号
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "账号 ID"
// @Param request body dto.UpdateAccountRequest true "更新字段"
// @Success 200 {object} dto.AccountInfo
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /users/{id} [put]
func (ctl *UserController) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "ID 不合法")
		return
	}

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	caller := middleware.CurrentAccount(c)
	account, err := ctl.userService.UpdateAccount(c.Request.Context(), caller, id, &req)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, account)
}

// Delete 删除账号（仅管理员）
// @Summary 删除账号
// @Tags Users
// @Produce json
// @Param id path int true "账号 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /users/{id} [delete]
func (ctl *UserController) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "ID 不合法")
		return
	}

	caller := middleware.CurrentAccount(c)
	if err := ctl.userService.DeleteAccount(c.Request.Context(), caller, id); err != nil {
		Fail(c, err)
		return
	}
	OK(c, nil)
}
