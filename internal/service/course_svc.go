package service

import (
	"context"
	"errors"

	"edumall_v1_202608/internal/api/dto"
	"edumall_v1_202608/internal/model"
	"edumall_v1_202608/internal/repository"
)

// ==================== CourseService 课程服务 ====================

// CourseService 课程服务：后台维护 + 报名
type CourseService struct {
	courseRepo     repository.CourseRepository
	enrollmentRepo repository.EnrollmentRepository
	linkChecker    LinkChecker
}

// NewCourseService 创建课程服务
func NewCourseService(courseRepo repository.CourseRepository, enrollmentRepo repository.EnrollmentRepository, linkChecker LinkChecker) *CourseService {
	return &CourseService{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		linkChecker:    linkChecker,
	}
}

// ==================== 后台维护 ====================

// CreateCourse 创建课程（连带课时）
func (s *CourseService) CreateCourse(ctx context.Context, req *dto.SaveCourseRequest) (*dto.CourseInfo, error) {
	if err := s.checkCourseLinks(ctx, req); err != nil {
		return nil, err
	}

	course := s.fromRequest(req)
	course.Lessons = buildLessons(req.Lessons)

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return s.GetCourse(ctx, course.ID, true)
}

// UpdateCourse 更新课程，课时整组重建（单事务内删旧插新）
func (s *CourseService) UpdateCourse(ctx context.Context, id int64, req *dto.SaveCourseRequest) (*dto.CourseInfo, error) {
	existing, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrCourseNotFound
	}

	if err := s.checkCourseLinks(ctx, req); err != nil {
		return nil, err
	}

	updated := s.fromRequest(req)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	if err := s.courseRepo.Update(ctx, updated); err != nil {
		return nil, err
	}
	if err := s.courseRepo.ReplaceLessons(ctx, id, buildLessons(req.Lessons)); err != nil {
		return nil, err
	}

	return s.GetCourse(ctx, id, true)
}

// DeleteCourse 删除课程
func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	existing, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCourseNotFound
	}
	return s.courseRepo.Delete(ctx, id)
}

// GetCourse 课程详情
// withLessons 为 false 时不带课时（列表页用不到）
func (s *CourseService) GetCourse(ctx context.Context, id int64, withLessons bool) (*dto.CourseInfo, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}
	info := s.toCourseInfo(course, withLessons)
	return info, nil
}

// ListCourses 课程列表
func (s *CourseService) ListCourses(ctx context.Context, req *dto.CourseListRequest, publishedOnly bool) (*dto.CourseListResponse, error) {
	filter := repository.CourseFilter{
		Keyword:       req.Keyword,
		Level:         req.Level,
		PublishedOnly: publishedOnly,
		Page:          req.Page,
		PageSize:      req.PageSize,
	}

	courses, total, err := s.courseRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.CourseInfo, 0, len(courses))
	for i := range courses {
		items = append(items, s.toCourseInfo(&courses[i], false))
	}

	return &dto.CourseListResponse{
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Items:    items,
	}, nil
}

// ==================== 报名 ====================

// Enroll 课程报名
// 重复报名视为冲突；未上架课程不可报名
func (s *CourseService) Enroll(ctx context.Context, accountID int64, courseID int64) (*dto.EnrollmentInfo, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}
	if !course.Published {
		return nil, ErrCourseNotPublished
	}

	exists, err := s.enrollmentRepo.Exists(ctx, accountID, courseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyEnrolled
	}

	enrollment := &model.Enrollment{
		AccountID: accountID,
		CourseID:  courseID,
	}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	return &dto.EnrollmentInfo{
		ID:         enrollment.ID,
		CourseID:   courseID,
		EnrolledAt: enrollment.CreatedAt,
	}, nil
}

// MyEnrollments 当前账号的全部报名
func (s *CourseService) MyEnrollments(ctx context.Context, accountID int64) ([]*dto.EnrollmentInfo, error) {
	enrollments, err := s.enrollmentRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.EnrollmentInfo, 0, len(enrollments))
	for i := range enrollments {
		e := &enrollments[i]
		info := &dto.EnrollmentInfo{
			ID:         e.ID,
			CourseID:   e.CourseID,
			EnrolledAt: e.CreatedAt,
		}
		if e.Course != nil {
			info.Course = s.toCourseInfo(e.Course, false)
		}
		items = append(items, info)
	}
	return items, nil
}

// ==================== 转换 ====================

// checkCourseLinks 探测封面 + 各课时视频外链
func (s *CourseService) checkCourseLinks(ctx context.Context, req *dto.SaveCourseRequest) error {
	urls := []string{req.CoverURL}
	for _, lesson := range req.Lessons {
		urls = append(urls, lesson.VideoURL)
	}
	return checkLinks(ctx, s.linkChecker, urls...)
}

// fromRequest 组装课程主体
func (s *CourseService) fromRequest(req *dto.SaveCourseRequest) *model.Course {
	level := req.Level
	if level == "" {
		level = "beginner"
	}
	return &model.Course{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Level:       level,
		Tags:        req.Tags,
		CoverURL:    req.CoverURL,
		Published:   req.Published,
	}
}

// buildLessons 组装课时，顺序即提交顺序
func buildLessons(inputs []dto.LessonInput) []model.Lesson {
	lessons := make([]model.Lesson, 0, len(inputs))
	for i, in := range inputs {
		lessons = append(lessons, model.Lesson{
			Title:    in.Title,
			Content:  in.Content,
			VideoURL: in.VideoURL,
			Position: i + 1,
		})
	}
	return lessons
}

// toCourseInfo 转换为 DTO
func (s *CourseService) toCourseInfo(course *model.Course, withLessons bool) *dto.CourseInfo {
	info := &dto.CourseInfo{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		Price:       course.Price,
		Level:       course.Level,
		Tags:        course.Tags,
		CoverURL:    course.CoverURL,
		Published:   course.Published,
		CreatedAt:   course.CreatedAt,
	}
	if withLessons {
		lessons := make([]dto.LessonInfo, 0, len(course.Lessons))
		for i := range course.Lessons {
			l := &course.Lessons[i]
			lessons = append(lessons, dto.LessonInfo{
				ID:       l.ID,
				Title:    l.Title,
				Content:  l.Content,
				VideoURL: l.VideoURL,
				Position: l.Position,
			})
		}
		info.Lessons = lessons
	}
	return info
}

// ==================== 错误定义 ====================

var (
	ErrCourseNotFound     = errors.New("课程不存在")
	ErrCourseNotPublished = errors.New("课程未上架")
	ErrAlreadyEnrolled    = errors.New("已报名该课程")
)
