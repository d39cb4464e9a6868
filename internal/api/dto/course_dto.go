package dto

import "time"

// ==================== 课程维护（管理员） ====================

// LessonInput 课时输入，顺序即提交顺序
type LessonInput struct {
	Title    string `json:"title" binding:"required,max=255"`
	Content  string `json:"content"`
	VideoURL string `json:"video_url" binding:"omitempty,url"`
}

// SaveCourseRequest 创建/更新课程请求
// Lessons 整组提交，保存时删旧插新（单事务）
type SaveCourseRequest struct {
	Title       string        `json:"title" binding:"required,max=255"`
	Description string        `json:"description"`
	Price       int64         `json:"price" binding:"min=0"`
	Level       string        `json:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
	Tags        []string      `json:"tags"`
	CoverURL    string        `json:"cover_url" binding:"omitempty,url"`
	Published   bool          `json:"published"`
	Lessons     []LessonInput `json:"lessons"`
}

// ==================== 课程视图 ====================

// LessonInfo 课时视图
type LessonInfo struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	VideoURL string `json:"video_url,omitempty"`
	Position int    `json:"position"`
}

// CourseInfo 课程视图
type CourseInfo struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Price       int64        `json:"price"`
	Level       string       `json:"level"`
	Tags        []string     `json:"tags"`
	CoverURL    string       `json:"cover_url,omitempty"`
	Published   bool         `json:"published"`
	Lessons     []LessonInfo `json:"lessons,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// CourseListRequest 课程列表请求
type CourseListRequest struct {
	Keyword  string `form:"q"`
	Level    string `form:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=20"`
}

// CourseListResponse 课程列表响应
type CourseListResponse struct {
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Items    []*CourseInfo `json:"items"`
}

// ==================== 报名 ====================

// EnrollRequest 课程报名请求
type EnrollRequest struct {
	CourseID int64 `json:"course_id" binding:"required"`
}

// EnrollmentInfo 报名记录视图
type EnrollmentInfo struct {
	ID         int64       `json:"id"`
	CourseID   int64       `json:"course_id"`
	Course     *CourseInfo `json:"course,omitempty"`
	EnrolledAt time.Time   `json:"enrolled_at"`
}
