package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"edumall_v1_202608/internal/api/dto"
	"edumall_v1_202608/internal/model"
	"edumall_v1_202608/internal/repository"
)

// ==================== WebinarService 讲座服务 ====================

// WebinarService 讲座服务：后台维护 + 报名 + 状态收尾
type WebinarService struct {
	webinarRepo      repository.WebinarRepository
	registrationRepo repository.WebinarRegistrationRepository
	linkChecker      LinkChecker
}

// NewWebinarService 创建讲座服务
func NewWebinarService(webinarRepo repository.WebinarRepository, registrationRepo repository.WebinarRegistrationRepository, linkChecker LinkChecker) *WebinarService {
	return &WebinarService{
		webinarRepo:      webinarRepo,
		registrationRepo: registrationRepo,
		linkChecker:      linkChecker,
	}
}

// ==================== 后台维护 ====================

// CreateWebinar 创建讲座
func (s *WebinarService) CreateWebinar(ctx context.Context, req *dto.SaveWebinarRequest) (*dto.WebinarInfo, error) {
	if !req.EndsAt.After(req.StartsAt) {
		return nil, ErrInvalidTimeRange
	}
	if err := checkLinks(ctx, s.linkChecker, req.VideoURL); err != nil {
		return nil, err
	}

	webinar := &model.Webinar{
		Title:       req.Title,
		Description: req.Description,
		Presenter:   req.Presenter,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Capacity:    req.Capacity,
		Status:      model.WebinarScheduled,
		VideoURL:    req.VideoURL,
	}
	if err := s.webinarRepo.Create(ctx, webinar); err != nil {
		return nil, err
	}
	return s.toWebinarInfo(webinar), nil
}

// UpdateWebinar 更新讲座
func (s *WebinarService) UpdateWebinar(ctx context.Context, id int64, req *dto.SaveWebinarRequest) (*dto.WebinarInfo, error) {
	webinar, err := s.webinarRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if webinar == nil {
		return nil, ErrWebinarNotFound
	}

	if !req.EndsAt.After(req.StartsAt) {
		return nil, ErrInvalidTimeRange
	}
	if err := checkLinks(ctx, s.linkChecker, req.VideoURL); err != nil {
		return nil, err
	}

	webinar.Title = req.Title
	webinar.Description = req.Description
	webinar.Presenter = req.Presenter
	webinar.StartsAt = req.StartsAt
	webinar.EndsAt = req.EndsAt
	webinar.Capacity = req.Capacity
	webinar.VideoURL = req.VideoURL

	if err := s.webinarRepo.Update(ctx, webinar); err != nil {
		return nil, err
	}
	return s.toWebinarInfo(webinar), nil
}

// DeleteWebinar 删除讲座
func (s *WebinarService) DeleteWebinar(ctx context.Context, id int64) error {
	webinar, err := s.webinarRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if webinar == nil {
		return ErrWebinarNotFound
	}
	return s.webinarRepo.Delete(ctx, id)
}

// GetWebinar 讲座详情
func (s *WebinarService) GetWebinar(ctx context.Context, id int64) (*dto.WebinarInfo, error) {
	webinar, err := s.webinarRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if webinar == nil {
		return nil, ErrWebinarNotFound
	}
	return s.toWebinarInfo(webinar), nil
}

// ListWebinars 讲座列表
func (s *WebinarService) ListWebinars(ctx context.Context, req *dto.WebinarListRequest) (*dto.WebinarListResponse, error) {
	filter := repository.WebinarFilter{
		Status:       req.Status,
		UpcomingOnly: req.Upcoming,
		Page:         req.Page,
		PageSize:     req.PageSize,
	}

	webinars, total, err := s.webinarRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.WebinarInfo, 0, len(webinars))
	for i := range webinars {
		items = append(items, s.toWebinarInfo(&webinars[i]))
	}

	return &dto.WebinarListResponse{
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Items:    items,
	}, nil
}

// ==================== 报名 ====================

// Register 讲座报名
// 已结束的讲座、满员、重复报名都视为冲突类错误
func (s *WebinarService) Register(ctx context.Context, accountID int64, webinarID int64) (*dto.WebinarRegistrationInfo, error) {
	webinar, err := s.webinarRepo.GetByID(ctx, webinarID)
	if err != nil {
		return nil, err
	}
	if webinar == nil {
		return nil, ErrWebinarNotFound
	}
	if webinar.Status == model.WebinarCompleted {
		return nil, ErrWebinarEnded
	}

	exists, err := s.registrationRepo.Exists(ctx, accountID, webinarID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyRegistered
	}

	// 名额校验（Capacity 为 0 不限）
	if webinar.Capacity > 0 {
		count, err := s.registrationRepo.CountByWebinar(ctx, webinarID)
		if err != nil {
			return nil, err
		}
		if count >= int64(webinar.Capacity) {
			return nil, ErrWebinarFull
		}
	}

	registration := &model.WebinarRegistration{
		WebinarID:        webinarID,
		AccountID:        accountID,
		ConfirmationCode: uuid.NewString(),
	}
	if err := s.registrationRepo.Create(ctx, registration); err != nil {
		return nil, err
	}

	return &dto.WebinarRegistrationInfo{
		ID:               registration.ID,
		WebinarID:        webinarID,
		ConfirmationCode: registration.ConfirmationCode,
		RegisteredAt:     registration.CreatedAt,
	}, nil
}

// MyRegistrations 当前账号的讲座报名
func (s *WebinarService) MyRegistrations(ctx context.Context, accountID int64) ([]*dto.WebinarRegistrationInfo, error) {
	registrations, err := s.registrationRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.WebinarRegistrationInfo, 0, len(registrations))
	for i := range registrations {
		r := &registrations[i]
		items = append(items, &dto.WebinarRegistrationInfo{
			ID:               r.ID,
			WebinarID:        r.WebinarID,
			ConfirmationCode: r.ConfirmationCode,
			RegisteredAt:     r.CreatedAt,
		})
	}
	return items, nil
}

// ==================== 状态收尾 ====================

// SweepEnded 把已过结束时间的讲座标记为 completed，返回处理条数
// 由定时任务周期调用
func (s *WebinarService) SweepEnded(ctx context.Context, now time.Time) (int, error) {
	ended, err := s.webinarRepo.FindEnded(ctx, now)
	if err != nil {
		return 0, err
	}

	swept := 0
	for _, w := range ended {
		if err := s.webinarRepo.UpdateStatus(ctx, w.ID, model.WebinarCompleted); err != nil {
			return swept, err
		}
		swept++
	}
	return swept, nil
}

// toWebinarInfo 转换为 DTO
func (s *WebinarService) toWebinarInfo(webinar *model.Webinar) *dto.WebinarInfo {
	return &dto.WebinarInfo{
		ID:          webinar.ID,
		Title:       webinar.Title,
		Description: webinar.Description,
		Presenter:   webinar.Presenter,
		StartsAt:    webinar.StartsAt,
		EndsAt:      webinar.EndsAt,
		Capacity:    webinar.Capacity,
		Status:      webinar.Status,
		VideoURL:    webinar.VideoURL,
	}
}

// ==================== 错误定义 ====================

var (
	ErrWebinarNotFound   = errors.New("讲座不存在")
	ErrInvalidTimeRange  = errors.New("结束时间必须晚于开始时间")
	ErrWebinarEnded      = errors.New("讲座已结束")
	ErrWebinarFull       = errors.New("讲座名额已满")
	ErrAlreadyRegistered = errors.New("已报名该讲座")
)
