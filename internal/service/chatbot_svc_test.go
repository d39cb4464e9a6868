package service

import "testing"

// ==================== 单元测试 ====================

func TestChatbotService_KeywordMatch(t *testing.T) {
	svc := NewChatbotService()

	tests := []struct {
		message string
		matched string
	}{
		{"我想申请退款", "refund"},
		{"How do I get a REFUND?", "refund"}, // 大小写不敏感
		{"怎么报名课程", "enroll"},
		{"下一场讲座什么时候开始", "webinar"},
		{"这门课多少钱", "price"},
		{"发货要多久", "shipping"},
		{"我登录不了了", "account"},
		{"你好", "greeting"},
	}

	for _, tt := range tests {
		resp := svc.Reply(tt.message)
		if resp.Matched != tt.matched {
			t.Errorf("Reply(%q).Matched = %q, want %q", tt.message, resp.Matched, tt.matched)
		}
		if resp.Response == "" {
			t.Errorf("Reply(%q) 应返回非空回复", tt.message)
		}
	}
}

func TestChatbotService_RulePriority(t *testing.T) {
	svc := NewChatbotService()

	// 同时命中 refund 和 greeting 时，具体规则优先
	resp := svc.Reply("你好，我想退款")
	if resp.Matched != "refund" {
		t.Errorf("matched = %q, want refund", resp.Matched)
	}
}

func TestChatbotService_Fallback(t *testing.T) {
	svc := NewChatbotService()

	resp := svc.Reply("今天天气怎么样")
	if resp.Matched != "" {
		t.Errorf("matched = %q, want 空（兜底回复）", resp.Matched)
	}
	if resp.Response == "" {
		t.Error("兜底回复不应为空")
	}
}
