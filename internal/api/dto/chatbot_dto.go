package dto

// ==================== 聊天机器人 ====================

// ChatRequest 机器人提问
type ChatRequest struct {
	Message string `json:"message" binding:"required,max=500"`
}

// ChatResponse 机器人回答
type ChatResponse struct {
	Response string `json:"response"`
	// Matched 命中的规则名，未命中为空（前端不展示，排查用）
	Matched string `json:"matched,omitempty"`
}
