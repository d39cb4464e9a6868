package dto

import "time"

// ==================== 登录/注册 ====================

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest 注册请求
// 公开注册只允许 subscriber，带会话的委托人/管理员可指定其他角色
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=100"`
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Role     string `json:"role" binding:"omitempty,oneof=admin manager subscriber"`
	ParentID *int64 `json:"parent_id"`
	// CanCreateSubAccounts 委托标记，只有 admin 能设置
	CanCreateSubAccounts bool `json:"can_create_sub_accounts"`
}

// AccountInfo 账号信息（对外视图，永不带密码）
type AccountInfo struct {
	ID                   int64     `json:"id"`
	Email                string    `json:"email"`
	Name                 string    `json:"name"`
	Role                 string    `json:"role"`
	ParentID             *int64    `json:"parent_id,omitempty"`
	CanCreateSubAccounts bool      `json:"can_create_sub_accounts"`
	IsActive             bool      `json:"is_active"`
	CreatedAt            time.Time `json:"created_at"`
}

// ==================== 密码修改 ====================

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6,max=100"`
}

// ==================== 账号管理 ====================

// UpdateAccountRequest 更新账号请求（管理员）
// Password 为空则保持原密码不变
type UpdateAccountRequest struct {
	Email                string `json:"email" binding:"omitempty,email"`
	Name                 string `json:"name" binding:"omitempty,max=100"`
	Role                 string `json:"role" binding:"omitempty,oneof=admin manager subscriber"`
	Password             string `json:"password" binding:"omitempty,min=6,max=100"`
	CanCreateSubAccounts *bool  `json:"can_create_sub_accounts"`
	IsActive             *bool  `json:"is_active"`
}

// AccountListRequest 账号列表请求
type AccountListRequest struct {
	Keyword  string `form:"keyword"`
	Role     string `form:"role" binding:"omitempty,oneof=admin manager subscriber"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=20"`
}

// AccountListResponse 账号列表响应
type AccountListResponse struct {
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Items    []*AccountInfo `json:"items"`
}
