package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"edumall_v1_202608/internal/api/dto"
	"edumall_v1_202608/internal/middleware"
	"edumall_v1_202608/internal/service"
)

// ==================== CourseController 课程控制器 ====================

// CourseController 课程控制器
type CourseController struct {
	courseService *service.CourseService
}

// NewCourseController 创建课程控制器
func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// ==================== 公开接口 ====================

// List 课程列表（公开，只含已上架）
// @Summary 课程列表
// @Tags Courses
// @Produce json
// @Param q query string false "搜索词"
// @Param level query string false "难度"
// @Success 200 {object} dto.CourseListResponse
// @Router /courses [get]
func (ctl *CourseController) List(c *gin.Context) {
	var req dto.CourseListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	resp, err := ctl.courseService.ListCourses(c.Request.Context(), &req, true)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, resp)
}

// Get 课程详情（含课时）
// @Summary 课程详情
// @Tags Courses
// @Produce json
// @Param id path int true "课程 ID"
// @Success 200 {object} dto.CourseInfo
// @Failure 404 {object} map[string]interface{}
// @Router /courses/{id} [get]
func (ctl *CourseController) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "ID 不合法")
		return
	}

	info, err := ctl.courseService.GetCourse(c.Request.Context(), id, true)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, info)
}

// ==================== 报名（登录） ====================

// Enroll 报名课程
// @Summary 报名课程
// @Tags Courses
// @Accept json
// @Produce json
// @Param request body dto.EnrollRequest true "课程 ID"
// @Success 201 {object} dto.EnrollmentInfo
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /courses/enroll [post]
func (ctl *CourseController) Enroll(c *gin.Context) {
	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	account := middleware.CurrentAccount(c)
	info, err := ctl.courseService.Enroll(c.Request.Context(), account.ID, req.CourseID)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, info)
}

// MyEnrollments 我的报名
// @Summary 我的报名
// @Tags Courses
// @Produce json
// @Success 200 {array} dto.EnrollmentInfo
// @Failure 401 {object} map[string]interface{}
// @Router /courses/my [get]
func (ctl *CourseController) MyEnrollments(c *gin.Context) {
	account := middleware.CurrentAccount(c)

	items, err := ctl.courseService.MyEnrollments(c.Request.Context(), account.ID)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, items)
}

// ==================== 后台维护（管理员） ====================

// ListAdmin 后台课程列表（含未上架）
// @Summary 后台课程列表
// @Tags Courses
// @Produce json
// @Success 200 {object} dto.CourseListResponse
// @Failure 403 {object} map[string]interface{}
// @Router /admin/courses [get]
func (ctl *CourseController) ListAdmin(c *gin.Context) {
	var req dto.CourseListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	resp, err := ctl.courseService.ListCourses(c.Request.Context(), &req, false)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, resp)
}

// Create 创建课程
// @Summary 创建课程
// @Tags Courses
// @Accept json
// @Produce json
// @Param request body dto.SaveCourseRequest true "课程信息"
// @Success 201 {object} dto.CourseInfo
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /admin/courses [post]
func (ctl *CourseController) Create(c *gin.Context) {
	var req dto.SaveCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	info, err := ctl.courseService.CreateCourse(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, info)
}

// Update 更新课程（课时整组重建）
// @Summary 更新课程
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path int true "课程 ID"
// @Param request body dto.SaveCourseRequest true "课程信息"
// @Success 200 {object} dto.CourseInfo
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /admin/courses/{id} [put]
func (ctl *CourseController) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "ID 不合法")
		return
	}

	var req dto.SaveCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	info, err := ctl.courseService.UpdateCourse(c.Request.Context(), id, &req)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, info)
}

// Delete 删除课程
// @Summary 删除课程
// @Tags Courses
// @Produce json
// @Param id path int true "课程 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /admin/courses/{id} [delete]
func (ctl *CourseController) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "ID 不合法")
		return
	}

	if err := ctl.courseService.DeleteCourse(c.Request.Context(), id); err != nil {
		Fail(c, err)
		return
	}
	OK(c, nil)
}
