package model

import "time"

// ==================== Announcement 公告 ====================

type Announcement struct {
	BaseModel

	Title string `gorm:"size:255;not null"`
	Body  string `gorm:"type:text"`

	Published bool `gorm:"default:false;index"`
	// PublishAt/ExpiresAt 控制展示窗口，为空表示不限
	PublishAt *time.Time `gorm:"index"`
	ExpiresAt *time.Time `gorm:"index"`
}

func (Announcement) TableName() string {
	return "announcements"
}

// VisibleAt 判断公告在给定时刻是否对外可见
func (a *Announcement) VisibleAt(now time.Time) bool {
	if !a.Published {
		return false
	}
	if a.PublishAt != nil && now.Before(*a.PublishAt) {
		return false
	}
	if a.ExpiresAt != nil && now.After(*a.ExpiresAt) {
		return false
	}
	return true
}
