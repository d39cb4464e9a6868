package service

import (
	"context"
	"errors"
	"time"

	"edumall_v1_202608/internal/api/dto"
	"edumall_v1_202608/internal/model"
	"edumall_v1_202608/internal/repository"
)

// ==================== AnnouncementService 公告服务 ====================

// AnnouncementService 公告服务
type AnnouncementService struct {
	announcementRepo repository.AnnouncementRepository
}

// NewAnnouncementService 创建公告服务
func NewAnnouncementService(announcementRepo repository.AnnouncementRepository) *AnnouncementService {
	return &AnnouncementService{announcementRepo: announcementRepo}
}

// Create 创建公告
func (s *AnnouncementService) Create(ctx context.Context, req *dto.SaveAnnouncementRequest) (*dto.AnnouncementInfo, error) {
	if err := validateWindow(req); err != nil {
		return nil, err
	}

	announcement := &model.Announcement{
		Title:     req.Title,
		Body:      req.Body,
		Published: req.Published,
		PublishAt: req.PublishAt,
		ExpiresAt: req.ExpiresAt,
	}
	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		return nil, err
	}
	return s.toInfo(announcement), nil
}

// Update 更新公告
func (s *AnnouncementService) Update(ctx context.Context, id int64, req *dto.SaveAnnouncementRequest) (*dto.AnnouncementInfo, error) {
	announcement, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if announcement == nil {
		return nil, ErrAnnouncementNotFound
	}

	if err := validateWindow(req); err != nil {
		return nil, err
	}

	announcement.Title = req.Title
	announcement.Body = req.Body
	announcement.Published = req.Published
	announcement.PublishAt = req.PublishAt
	announcement.ExpiresAt = req.ExpiresAt

	if err := s.announcementRepo.Update(ctx, announcement); err != nil {
		return nil, err
	}
	return s.toInfo(announcement), nil
}

// Delete 删除公告
func (s *AnnouncementService) Delete(ctx context.Context, id int64) error {
	announcement, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if announcement == nil {
		return ErrAnnouncementNotFound
	}
	return s.announcementRepo.Delete(ctx, id)
}

// ListAdmin 后台列表（含未发布）
func (s *AnnouncementService) ListAdmin(ctx context.Context, page, pageSize int) ([]*dto.AnnouncementInfo, int64, error) {
	announcements, total, err := s.announcementRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*dto.AnnouncementInfo, 0, len(announcements))
	for i := range announcements {
		items = append(items, s.toInfo(&announcements[i]))
	}
	return items, total, nil
}

// ListVisible 当前对外可见的公告
func (s *AnnouncementService) ListVisible(ctx context.Context) ([]*dto.AnnouncementInfo, error) {
	announcements, err := s.announcementRepo.ListVisible(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	items := make([]*dto.AnnouncementInfo, 0, len(announcements))
	for i := range announcements {
		items = append(items, s.toInfo(&announcements[i]))
	}
	return items, nil
}

// SweepExpired 下线已过期公告，返回处理条数
// 由定时任务周期调用；查询侧本身也按窗口过滤，这里只是收尾落库
func (s *AnnouncementService) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	expired, err := s.announcementRepo.FindExpired(ctx, now)
	if err != nil {
		return 0, err
	}

	swept := 0
	for _, a := range expired {
		if err := s.announcementRepo.Unpublish(ctx, a.ID); err != nil {
			return swept, err
		}
		swept++
	}
	return swept, nil
}

// validateWindow 展示窗口自洽性校验
func validateWindow(req *dto.SaveAnnouncementRequest) error {
	if req.PublishAt != nil && req.ExpiresAt != nil && !req.ExpiresAt.After(*req.PublishAt) {
		return ErrInvalidWindow
	}
	return nil
}

// toInfo 转换为 DTO
func (s *AnnouncementService) toInfo(announcement *model.Announcement) *dto.AnnouncementInfo {
	return &dto.AnnouncementInfo{
		ID:        announcement.ID,
		Title:     announcement.Title,
		Body:      announcement.Body,
		Published: announcement.Published,
		PublishAt: announcement.PublishAt,
		ExpiresAt: announcement.ExpiresAt,
		CreatedAt: announcement.CreatedAt,
	}
}

// ==================== 错误定义 ====================

var (
	ErrAnnouncementNotFound = errors.New("公告不存在")
	ErrInvalidWindow        = errors.New("下线时间必须晚于发布时间")
)
