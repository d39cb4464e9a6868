package controller

import (
	"github.com/gin-gonic/gin"

	"edumall_v1_202608/internal/api/dto"
	"edumall_v1_202608/internal/service"
)

// ==================== ChatbotController 机器人控制器 ====================

// ChatbotController FAQ 机器人控制器
type ChatbotController struct {
	chatbotService *service.ChatbotService
}

// NewChatbotController 创建机器人控制器
func NewChatbotController(chatbotService *service.ChatbotService) *ChatbotController {
	return &ChatbotController{chatbotService: chatbotService}
}

// Chat 提问
// @Summary 机器人问答
// @Tags Chatbot
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "消息"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 429 {object} map[string]interface{}
// @Router /chatbot [post]
func (ctl *ChatbotController) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	// 纯内存规则匹配，不会失败
	resp := ctl.chatbotService.Reply(req.Message)
	OK(c, resp)
}
