package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"edumall_v1_202608/internal/model"
)

// ==================== AnnouncementRepository 公告仓库 ====================

// AnnouncementRepository 公告仓储接口
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *model.Announcement) error
	GetByID(ctx context.Context, id int64) (*model.Announcement, error)
	Update(ctx context.Context, announcement *model.Announcement) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page, pageSize int) ([]model.Announcement, int64, error)
	// ListVisible 当前对外可见的公告（已发布且在展示窗口内）
	ListVisible(ctx context.Context, now time.Time) ([]model.Announcement, error)
	// FindExpired 已过期但仍标记发布的公告，巡检任务收尾用
	FindExpired(ctx context.Context, now time.Time) ([]*model.Announcement, error)
	Unpublish(ctx context.Context, id int64) error
}

// ==================== 实现 ====================

type announcementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository 创建公告仓储
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

// Create 创建公告
func (r *announcementRepository) Create(ctx context.Context, announcement *model.Announcement) error {
	return r.db.WithContext(ctx).Create(announcement).Error
}

// GetByID 根据 ID 获取公告
func (r *announcementRepository) GetByID(ctx context.Context, id int64) (*model.Announcement, error) {
	var announcement model.Announcement
	err := r.db.WithContext(ctx).First(&announcement, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &announcement, err
}

// Update 更新公告
func (r *announcementRepository) Update(ctx context.Context, announcement *model.Announcement) error {
	return r.db.WithContext(ctx).Save(announcement).Error
}

// Delete 删除公告
func (r *announcementRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Announcement{}, id).Error
}

// List 后台公告列表（含未发布）
func (r *announcementRepository) List(ctx context.Context, page, pageSize int) ([]model.Announcement, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Announcement{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	var announcements []model.Announcement
	err := query.
		Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&announcements).Error

	return announcements, total, err
}

// ListVisible 当前对外可见的公告
func (r *announcementRepository) ListVisible(ctx context.Context, now time.Time) ([]model.Announcement, error) {
	var announcements []model.Announcement
	err := r.db.WithContext(ctx).
		Where("published = ?", true).
		Where("publish_at IS NULL OR publish_at <= ?", now).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Order("id DESC").
		Find(&announcements).Error
	return announcements, err
}

// FindExpired 已过期仍标记发布的公告
func (r *announcementRepository) FindExpired(ctx context.Context, now time.Time) ([]*model.Announcement, error) {
	var announcements []*model.Announcement
	err := r.db.WithContext(ctx).
		Where("published = ? AND expires_at IS NOT NULL AND expires_at <= ?", true, now).
		Find(&announcements).Error
	return announcements, err
}

// Unpublish 下线公告
func (r *announcementRepository) Unpublish(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Announcement{}).
		Where("id = ?", id).
		Update("published", false).Error
}
