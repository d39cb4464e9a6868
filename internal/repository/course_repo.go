package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"edumall_v1_202608/internal/model"
)

// ==================== 仓储接口 ====================

// CourseRepository 课程仓储接口
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id int64) (*model.Course, error)
	Update(ctx context.Context, course *model.Course) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter CourseFilter) ([]model.Course, int64, error)
	// ReplaceLessons 整组重建课时：删旧插新
	ReplaceLessons(ctx context.Context, courseID int64, lessons []model.Lesson) error
}

// EnrollmentRepository 报名仓储接口
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *model.Enrollment) error
	Exists(ctx context.Context, accountID, courseID int64) (bool, error)
	ListByAccount(ctx context.Context, accountID int64) ([]model.Enrollment, error)
}

// CourseFilter 课程筛选条件
type CourseFilter struct {
	Keyword       string
	Level         string
	PublishedOnly bool
	Page          int
	PageSize      int
}

// ==================== Course 仓储实现 ====================

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository 创建课程仓储
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

// Create 创建课程（连带课时）
func (r *courseRepository) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

// GetByID 根据 ID 获取课程，课时按顺序预加载
func (r *courseRepository) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&course, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &course, err
}

// Update 更新课程主体（不动课时）
func (r *courseRepository) Update(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Omit("Lessons").Save(course).Error
}

// Delete 删除课程及课时
func (r *courseRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", id).Delete(&model.Lesson{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Course{}, id).Error
	})
}

// List 课程列表
func (r *courseRepository) List(ctx context.Context, filter CourseFilter) ([]model.Course, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Course{})

	if filter.PublishedOnly {
		query = query.Where("published = ?", true)
	}
	if filter.Keyword != "" {
		keyword := "%" + filter.Keyword + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", keyword, keyword)
	}
	if filter.Level != "" {
		query = query.Where("level = ?", filter.Level)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	var courses []model.Course
	err := query.
		Order("id DESC").
		Offset(offset).
		Limit(filter.PageSize).
		Find(&courses).Error

	return courses, total, err
}

// ReplaceLessons 整组重建课时
// 源系统是裸的"先删后插"，中途失败会丢课时；这里收紧为单事务，
// 整组要么全部落库要么全部回滚
func (r *courseRepository) ReplaceLessons(ctx context.Context, courseID int64, lessons []model.Lesson) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("course_id = ?", courseID).
			Delete(&model.Lesson{}).Error; err != nil {
			return err
		}

		for i := range lessons {
			lessons[i].ID = 0
			lessons[i].CourseID = courseID
			lessons[i].Position = i + 1
		}
		if len(lessons) == 0 {
			return nil
		}
		return tx.Create(&lessons).Error
	})
}

// ==================== Enrollment 仓储实现 ====================

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository 创建报名仓储
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

// Create 创建报名记录，唯一索引兜底重复报名
func (r *enrollmentRepository) Create(ctx context.Context, enrollment *model.Enrollment) error {
	return r.db.WithContext(ctx).Create(enrollment).Error
}

// Exists 是否已报名
func (r *enrollmentRepository) Exists(ctx context.Context, accountID, courseID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Enrollment{}).
		Where("account_id = ? AND course_id = ?", accountID, courseID).
		Count(&count).Error
	return count > 0, err
}

// ListByAccount 某账号的全部报名，预加载课程
func (r *enrollmentRepository) ListByAccount(ctx context.Context, accountID int64) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("account_id = ?", accountID).
		Order("id DESC").
		Find(&enrollments).Error
	return enrollments, err
}
