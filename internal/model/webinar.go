package model

import "time"

// ==================== Webinar 在线讲座 ====================

// 讲座状态: scheduled (已排期), live (进行中), completed (已结束)
const (
	WebinarScheduled = "scheduled"
	WebinarLive      = "live"
	WebinarCompleted = "completed"
)

type Webinar struct {
	BaseModel

	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
	Presenter   string `gorm:"size:100"`

	StartsAt time.Time `gorm:"not null;index"`
	EndsAt   time.Time `gorm:"not null;index"`

	// Capacity 为 0 表示不限名额
	Capacity int    `gorm:"default:0"`
	Status   string `gorm:"size:20;default:'scheduled';index"`

	VideoURL string `gorm:"size:512"` // 回放/直播间地址

	Registrations []WebinarRegistration `gorm:"foreignKey:WebinarID"`
}

func (Webinar) TableName() string {
	return "webinars"
}

// ==================== WebinarRegistration 讲座报名 ====================

// WebinarRegistration (account, webinar) 组合唯一
type WebinarRegistration struct {
	BaseModel

	WebinarID int64    `gorm:"uniqueIndex:idx_account_webinar;not null"`
	Webinar   *Webinar `gorm:"foreignKey:WebinarID" json:"-"`
	AccountID int64    `gorm:"uniqueIndex:idx_account_webinar;not null"`
	Account   *Account `gorm:"foreignKey:AccountID" json:"-"`

	// ConfirmationCode 报名确认码，随报名邮件/页面展示
	ConfirmationCode string `gorm:"size:64;uniqueIndex"`
}

func (WebinarRegistration) TableName() string {
	return "webinar_registrations"
}
