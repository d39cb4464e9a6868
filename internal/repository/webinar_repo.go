package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"edumall_v1_202608/internal/model"
)

// ==================== WebinarRepository 讲座仓库 ====================

// WebinarRepository 讲座仓储接口
type WebinarRepository interface {
	Create(ctx context.Context, webinar *model.Webinar) error
	GetByID(ctx context.Context, id int64) (*model.Webinar, error)
	Update(ctx context.Context, webinar *model.Webinar) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter WebinarFilter) ([]model.Webinar, int64, error)

	// 状态巡检相关
	FindEnded(ctx context.Context, before time.Time) ([]*model.Webinar, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

// WebinarRegistrationRepository 讲座报名仓储接口
type WebinarRegistrationRepository interface {
	Create(ctx context.Context, registration *model.WebinarRegistration) error
	Exists(ctx context.Context, accountID, webinarID int64) (bool, error)
	CountByWebinar(ctx context.Context, webinarID int64) (int64, error)
	ListByAccount(ctx context.Context, accountID int64) ([]model.WebinarRegistration, error)
}

// WebinarFilter 讲座筛选条件
type WebinarFilter struct {
	Status       string
	UpcomingOnly bool
	Page         int
	PageSize     int
}

// ==================== Webinar 仓储实现 ====================

type webinarRepository struct {
	db *gorm.DB
}

// NewWebinarRepository 创建讲座仓储
func NewWebinarRepository(db *gorm.DB) WebinarRepository {
	return &webinarRepository{db: db}
}

// Create 创建讲座
func (r *webinarRepository) Create(ctx context.Context, webinar *model.Webinar) error {
	return r.db.WithContext(ctx).Create(webinar).Error
}

// GetByID 根据 ID 获取讲座
func (r *webinarRepository) GetByID(ctx context.Context, id int64) (*model.Webinar, error) {
	var webinar model.Webinar
	err := r.db.WithContext(ctx).First(&webinar, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &webinar, err
}

// Update 更新讲座
func (r *webinarRepository) Update(ctx context.Context, webinar *model.Webinar) error {
	return r.db.WithContext(ctx).Save(webinar).Error
}

// Delete 删除讲座
func (r *webinarRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Webinar{}, id).Error
}

// List 讲座列表
func (r *webinarRepository) List(ctx context.Context, filter WebinarFilter) ([]model.Webinar, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Webinar{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.UpcomingOnly {
		query = query.Where("starts_at > ?", time.Now())
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

	var webinars []model.Webinar
	err := query.
		Order("starts_at ASC").
		Offset(offset).
		Limit(filter.PageSize).
		Find(&webinars).Error

	return webinars, total, err
}

// FindEnded 找出已过结束时间但状态未收尾的讲座
func (r *webinarRepository) FindEnded(ctx context.Context, before time.Time) ([]*model.Webinar, error) {
	var webinars []*model.Webinar
	err := r.db.WithContext(ctx).
		Where("ends_at < ? AND status <> ?", before, model.WebinarCompleted).
		Find(&webinars).Error
	return webinars, err
}

// UpdateStatus 更新讲座状态
func (r *webinarRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	return r.db.WithContext(ctx).
		Model(&model.Webinar{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// ==================== 报名仓储实现 ====================

type webinarRegistrationRepository struct {
	db *gorm.DB
}

// NewWebinarRegistrationRepository 创建讲座报名仓储
func NewWebinarRegistrationRepository(db *gorm.DB) WebinarRegistrationRepository {
	return &webinarRegistrationRepository{db: db}
}

// Create 创建报名，唯一索引兜底重复报名
func (r *webinarRegistrationRepository) Create(ctx context.Context, registration *model.WebinarRegistration) error {
	return r.db.WithContext(ctx).Create(registration).Error
}

// Exists 是否已报名
func (r *webinarRegistrationRepository) Exists(ctx context.Context, accountID, webinarID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.WebinarRegistration{}).
		Where("account_id = ? AND webinar_id = ?", accountID, webinarID).
		Count(&count).Error
	return count > 0, err
}

// CountByWebinar 某讲座当前报名人数（名额校验用）
func (r *webinarRegistrationRepository) CountByWebinar(ctx context.Context, webinarID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.WebinarRegistration{}).
		Where("webinar_id = ?", webinarID).
		Count(&count).Error
	return count, err
}

// ListByAccount 某账号的全部讲座报名
func (r *webinarRegistrationRepository) ListByAccount(ctx context.Context, accountID int64) ([]model.WebinarRegistration, error) {
	var registrations []model.WebinarRegistration
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("id DESC").
		Find(&registrations).Error
	return registrations, err
}
