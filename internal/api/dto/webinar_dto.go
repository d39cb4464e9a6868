package dto

import "time"

// ==================== 讲座维护（管理员） ====================

// SaveWebinarRequest 创建/更新讲座请求
type SaveWebinarRequest struct {
	Title       string    `json:"title" binding:"required,max=255"`
	Description string    `json:"description"`
	Presenter   string    `json:"presenter" binding:"omitempty,max=100"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
	EndsAt      time.Time `json:"ends_at" binding:"required"`
	// Capacity 为 0 表示不限名额
	Capacity int    `json:"capacity" binding:"omitempty,min=0"`
	VideoURL string `json:"video_url" binding:"omitempty,url"`
}

// ==================== 讲座视图 ====================

// WebinarInfo 讲座视图
type WebinarInfo struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Presenter   string    `json:"presenter"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Capacity    int       `json:"capacity"`
	Status      string    `json:"status"`
	VideoURL    string    `json:"video_url,omitempty"`
}

// WebinarListRequest 讲座列表请求
type WebinarListRequest struct {
	Status   string `form:"status" binding:"omitempty,oneof=scheduled live completed"`
	Upcoming bool   `form:"upcoming"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=20"`
}

// WebinarListResponse 讲座列表响应
type WebinarListResponse struct {
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Items    []*WebinarInfo `json:"items"`
}

// ==================== 报名 ====================

// WebinarRegisterRequest 讲座报名请求
type WebinarRegisterRequest struct {
	WebinarID int64 `json:"webinar_id" binding:"required"`
}

// WebinarRegistrationInfo 报名视图
type WebinarRegistrationInfo struct {
	ID               int64     `json:"id"`
	WebinarID        int64     `json:"webinar_id"`
	ConfirmationCode string    `json:"confirmation_code"`
	RegisteredAt     time.Time `json:"registered_at"`
}
