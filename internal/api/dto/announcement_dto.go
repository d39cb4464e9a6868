package dto

import "time"

// ==================== 公告维护（管理员） ====================

// SaveAnnouncementRequest 创建/更新公告请求
type SaveAnnouncementRequest struct {
	Title     string     `json:"title" binding:"required,max=255"`
	Body      string     `json:"body"`
	Published bool       `json:"published"`
	PublishAt *time.Time `json:"publish_at"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// AnnouncementInfo 公告视图
type AnnouncementInfo struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Published bool       `json:"published"`
	PublishAt *time.Time `json:"publish_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
