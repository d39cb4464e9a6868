package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"edumall_v1_202608/internal/api/dto"
	"edumall_v1_202608/internal/service"
)

// ==================== AnnouncementController 公告控制器 ====================

// AnnouncementController 公告控制器
type AnnouncementController struct {
	announcementService *service.AnnouncementService
}

// NewAnnouncementController 创建公告控制器
func NewAnnouncementController(announcementService *service.AnnouncementService) *AnnouncementController {
	return &AnnouncementController{announcementService: announcementService}
}

// ListVisible 当前可见公告（公开）
// @Summary 公告列表
// @Tags Announcements
// @Produce json
// @Success 200 {array} dto.AnnouncementInfo
// @Router /announcements [get]
func (ctl *AnnouncementController) ListVisible(c *gin.Context) {
	items, err := ctl.announcementService.ListVisible(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, items)
}

// ListAdmin 后台公告列表（含未发布）
// @Summary 后台公告列表
// @Tags Announcements
// @Produce json
// @Success 200 {array} dto.AnnouncementInfo
// @Failure 403 {object} map[string]interface{}
// @Router /admin/announcements [get]
func (ctl *AnnouncementController) ListAdmin(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	items, total, err := ctl.announcementService.ListAdmin(c.Request.Context(), page, pageSize)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"total": total, "items": items})
}

// Create 创建公告
// @Summary 创建公告
// @Tags Announcements
// @Accept json
// @Produce json
// @Param request body dto.SaveAnnouncementRequest true "公告信息"
// @Success 201 {object} dto.AnnouncementInfo
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /admin/announcements [post]
func (ctl *AnnouncementController) Create(c *gin.Context) {
	var req dto.SaveAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	info, err := ctl.announcementService.Create(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, info)
}

// Update 更新公告
// @Summary 更新公告
// @Tags Announcements
// @Accept json
// @Produce json
// @Param id path int true "公告 ID"
// @Param request body dto.SaveAnnouncementRequest true "公告信息"
// @Success 200 {object} dto.AnnouncementInfo
// @Failure 404 {object} map[string]interface{}
// @Router /admin/announcements/{id} [put]
func (ctl *AnnouncementController) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "ID 不合法")
		return
	}

	var req dto.SaveAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	info, err := ctl.announcementService.Update(c.Request.Context(), id, &req)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, info)
}

// Delete 删除公告
// @Summary 删除公告
// @Tags Announcements
// @Produce json
// @Param id path int true "公告 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /admin/announcements/{id} [delete]
func (ctl *AnnouncementController) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "ID 不合法")
		return
	}

	if err := ctl.announcementService.Delete(c.Request.Context(), id); err != nil {
		Fail(c, err)
		return
	}
	OK(c, nil)
}
