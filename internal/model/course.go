package model

import "github.com/lib/pq"

// ==================== Course 课程 ====================

type Course struct {
	BaseModel

	Title       string `gorm:"size:255;not null;index"`
	Description string `gorm:"type:text"`
	// 价格单位为分，0 表示免费课程
	Price int64  `gorm:"default:0"`
	Level string `gorm:"size:20;default:'beginner'"` // beginner, intermediate, advanced

	Tags      pq.StringArray `gorm:"type:text[]"`
	CoverURL  string         `gorm:"size:512"`
	Published bool           `gorm:"default:false;index"`

	// --- 关联关系 ---
	Lessons []Lesson `gorm:"foreignKey:CourseID"`
}

func (Course) TableName() string {
	return "courses"
}

// ==================== Lesson 课时 ====================

type Lesson struct {
	BaseModel

	CourseID int64   `gorm:"index;not null"`
	Course   *Course `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Title    string `gorm:"size:255;not null"`
	Content  string `gorm:"type:text"`
	VideoURL string `gorm:"size:512"`
	// Position 课时顺序，保存课程时整组重建
	Position int `gorm:"not null;index"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// ==================== Enrollment 报名记录 ====================

// Enrollment 课程报名，(account, course) 组合唯一，重复报名视为冲突
type Enrollment struct {
	BaseModel

	AccountID int64    `gorm:"uniqueIndex:idx_account_course;not null"`
	Account   *Account `gorm:"foreignKey:AccountID" json:"-"`
	CourseID  int64    `gorm:"uniqueIndex:idx_account_course;not null"`
	Course    *Course  `gorm:"foreignKey:CourseID"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
