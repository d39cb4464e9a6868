package service

import (
	"strings"

	"edumall_v1_202608/internal/api/dto"
)

// ==================== ChatbotService FAQ 机器人 ====================

// ChatRule 一条应答规则：命中任一关键词即回复
type ChatRule struct {
	Name     string
	Keywords []string
	Response string
}

// ChatbotService 关键词匹配 FAQ 机器人
// 纯固定规则表，按序匹配、先中先答，不接任何模型
type ChatbotService struct {
	rules    []ChatRule
	fallback string
}

// NewChatbotService 创建机器人，使用内置规则表
func NewChatbotService() *ChatbotService {
	return &ChatbotService{
		rules:    defaultRules(),
		fallback: "抱歉，我没理解您的问题。可以换个说法，或联系人工客服 support@edumall.local。",
	}
}

// Reply 回答一条消息
// 消息统一转小写后做子串匹配，规则顺序即优先级
func (s *ChatbotService) Reply(message string) *dto.ChatResponse {
	normalized := strings.ToLower(strings.TrimSpace(message))

	for _, rule := range s.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(normalized, keyword) {
				return &dto.ChatResponse{
					Response: rule.Response,
					Matched:  rule.Name,
				}
			}
		}
	}

	return &dto.ChatResponse{Response: s.fallback}
}

// defaultRules 内置规则表
// 顺序有意义：具体问题排前面，宽泛问候兜底在后
func defaultRules() []ChatRule {
	return []ChatRule{
		{
			Name:     "refund",
			Keywords: []string{"退款", "退货", "refund", "return"},
			Response: "已购课程 7 天内未学习超过一课时可申请全额退款，请在「我的订单」中发起。",
		},
		{
			Name:     "enroll",
			Keywords: []string{"报名", "怎么买", "enroll", "购买课程"},
			Response: "在课程详情页点击「立即报名」即可，免费课程报名后立刻可学。",
		},
		{
			Name:     "webinar",
			Keywords: []string{"讲座", "直播", "webinar"},
			Response: "讲座需提前报名，成功后会生成确认码，开播前请在「我的讲座」查看入口。",
		},
		{
			Name:     "price",
			Keywords: []string{"价格", "多少钱", "优惠", "price", "discount"},
			Response: "商品和课程价格以详情页为准，促销活动请关注平台公告。",
		},
		{
			Name:     "shipping",
			Keywords: []string{"发货", "物流", "快递", "shipping"},
			Response: "实体商品下单后 48 小时内发货，虚拟商品无需配送。",
		},
		{
			Name:     "account",
			Keywords: []string{"密码", "登录不了", "改密码", "password"},
			Response: "登录后在「账号设置」中可修改密码；忘记密码请联系管理员重置。",
		},
		{
			Name:     "greeting",
			Keywords: []string{"你好", "在吗", "hello", "hi"},
			Response: "您好！我是平台小助手，可以咨询课程报名、讲座、退款、物流等问题。",
		},
	}
}
