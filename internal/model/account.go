package model

import "strings"

// ==================== 角色定义 ====================

// 系统级角色: admin (管理员), manager (运营), subscriber (普通订阅用户)
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleSubscriber Role = "subscriber"
)

// ValidRole 校验角色合法性
func ValidRole(r string) bool {
	switch Role(r) {
	case RoleAdmin, RoleManager, RoleSubscriber:
		return true
	}
	return false
}

// ==================== Account 平台账号 ====================

// Account 平台账号（后台用户 + 前台订阅用户统一存储）
type Account struct {
	BaseModel
	// 基础信息
	Email    string `gorm:"size:100;uniqueIndex;not null"`
	Password string `gorm:"size:255;not null" json:"-"` // 哈希密码，永不下发
	Name     string `gorm:"size:100;not null"`

	Role Role `gorm:"size:20;default:'subscriber';index"`

	// --- 委托关系 ---
	// ParentID 指向创建该账号的上级账号（委托人），自注册账号为空
	ParentID *int64   `gorm:"index"`
	Parent   *Account `gorm:"foreignKey:ParentID"`
	// CanCreateSubAccounts 委托标记：允许该账号创建/管理下级账号
	// admin 角色隐含全部委托权限，不看此标记
	CanCreateSubAccounts bool `gorm:"default:false"`

	IsActive bool `gorm:"default:true"`
}

func (Account) TableName() string {
	return "accounts"
}

// ==================== 权限判定 ====================

// IsAdmin 是否管理员
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanDelegate 是否有委托权限（创建下级账号）
func (a *Account) CanDelegate() bool {
	return a.Role == RoleAdmin || a.CanCreateSubAccounts
}

// CanManage 是否可管理目标账号
// admin 可管理任何账号；委托人只能管理 parent 指向自己的账号
func (a *Account) CanManage(target *Account) bool {
	if a.Role == RoleAdmin {
		return true
	}
	if !a.CanCreateSubAccounts || target == nil || target.ParentID == nil {
		return false
	}
	return *target.ParentID == a.ID
}

// NormalizeEmail 邮箱统一小写存储，保证大小写不敏感的唯一性
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
