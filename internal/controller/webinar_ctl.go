package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"edumall_v1_202608/internal/api/dto"
	"edumall_v1_202608/internal/middleware"
	"edumall_v1_202608/internal/service"
)

// ==================== WebinarController 讲座控制器 ====================

// WebinarController 讲座控制器
type WebinarController struct {
	webinarService *service.WebinarService
}

// NewWebinarController 创建讲座控制器
func NewWebinarController(webinarService *service.WebinarService) *WebinarController {
	return &WebinarController{webinarService: webinarService}
}

// ==================== 公开接口 ====================

// List 讲座列表
// @Summary 讲座列表
// @Tags Webinars
// @Produce json
// @Param status query string false "状态"
// @Param upcoming query bool false "只看未开始"
// @Success 200 {object} dto.WebinarListResponse
// @Router /webinars [get]
func (ctl *WebinarController) List(c *gin.Context) {
	var req dto.WebinarListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	resp, err := ctl.webinarService.ListWebinars(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, resp)
}

// Get 讲座详情
// @Summary 讲座详情
// @Tags Webinars
// @Produce json
// @Param id path int true "讲座 ID"
// @Success 200 {object} dto.WebinarInfo
// @Failure 404 {object} map[string]interface{}
// @Router /webinars/{id} [get]
func (ctl *WebinarController) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "ID 不合法")
		return
	}

	info, err := ctl.webinarService.GetWebinar(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, info)
}

// ==================== 报名（登录） ====================

// Register 报名讲座
// @Summary 报名讲座
// @Tags Webinars
// @Accept json
// @Produce json
// @Param request body dto.WebinarRegisterRequest true "讲座 ID"
// @Success 201 {object} dto.WebinarRegistrationInfo
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /webinars/register [post]
func (ctl *WebinarController) Register(c *gin.Context) {
	var req dto.WebinarRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	account := middleware.CurrentAccount(c)
	info, err := ctl.webinarService.Register(c.Request.Context(), account.ID, req.WebinarID)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, info)
}

// MyRegistrations 我的讲座报名
// @Summary 我的讲座报名
// @Tags Webinars
// @Produce json
// @Success 200 {array} dto.WebinarRegistrationInfo
// @Failure 401 {object} map[string]interface{}
// @Router /webinars/my [get]
func (ctl *WebinarController) MyRegistrations(c *gin.Context) {
	account := middleware.CurrentAccount(c)

	items, err := ctl.webinarService.MyRegistrations(c.Request.Context(), account.ID)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, items)
}

// ==================== 后台维护（管理员） ====================

// Create 创建讲座
// @Summary 创建讲座
// @Tags Webinars
// @Accept json
// @Produce json
// @Param request body dto.SaveWebinarRequest true "讲座信息"
// @Success 201 {object} dto.WebinarInfo
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /admin/webinars [post]
func (ctl *WebinarController) Create(c *gin.Context) {
	var req dto.SaveWebinarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	info, err := ctl.webinarService.CreateWebinar(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, info)
}

// Update 更新讲座
// @Summary 更新讲座
// @Tags Webinars
// @Accept json
// @Produce json
// @Param id path int true "讲座 ID"
// @Param request body dto.SaveWebinarRequest true "讲座信息"
// @Success 200 {object} dto.WebinarInfo
// @Failure 404 {object} map[string]interface{}
// @Router /admin/webinars/{id} [put]
func (ctl *WebinarController) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "ID 不合法")
		return
	}

	var req dto.SaveWebinarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	info, err := ctl.webinarService.UpdateWebinar(c.Request.Context(), id, &req)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, info)
}

// Delete 删除讲座
// @Summary 删除讲座
// @Tags Webinars
// @Produce json
// @Param id path int true "讲座 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /admin/webinars/{id} [delete]
func (ctl *WebinarController) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "ID 不合法")
		return
	}

	if err := ctl.webinarService.DeleteWebinar(c.Request.Context(), id); err != nil {
		Fail(c, err)
		return
	}
	OK(c, nil)
}
