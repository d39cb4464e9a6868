package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"edumall_v1_202608/pkg/utils"
)

// ==================== ChatRateLimiter 聊天限流器 ====================

// ChatRateLimiter 按客户端 IP 的固定窗口限流
// 窗口状态放在进程内 TTL 缓存里，长期空闲的条目由定时清理任务回收
// 防止机器人接口被脚本刷，规则匹配本身很便宜，限的是垃圾流量
type ChatRateLimiter struct {
	name string // 缓存 key 命名空间
}

// windowEntry 窗口条目
type windowEntry struct {
	mu    sync.Mutex
	start time.Time
	count int
}

// NewChatRateLimiter 创建限流器，name 用于隔离缓存 key
func NewChatRateLimiter(name string) *ChatRateLimiter {
	return &ChatRateLimiter{name: name}
}

// 全局限流器实例
var chatLimiter = NewChatRateLimiter("chat")

// GetChatLimiter 获取全局限流器
func GetChatLimiter() *ChatRateLimiter {
	return chatLimiter
}

// CacheKey 窗口条目在共享缓存里的 key
func (r *ChatRateLimiter) CacheKey(key string) string {
	return "ratelimit:" + r.name + ":" + key
}

// Allow 检查窗口内是否还有配额，并占用一次
func (r *ChatRateLimiter) Allow(key string, limit int, window time.Duration) bool {
	cacheKey := r.CacheKey(key)

	// TTL 给两个窗口长度，活跃条目在窗口滚动时续期
	entry := utils.GetOrSetCache(cacheKey, &windowEntry{}, 2*window).(*windowEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	if entry.start.IsZero() || now.Sub(entry.start) >= window {
		// 窗口滚动，重新计数并续期
		entry.start = now
		entry.count = 0
		utils.SetCache(cacheKey, entry, 2*window)
	}

	if entry.count >= limit {
		return false
	}
	entry.count++
	return true
}

// ==================== Gin 中间件 ====================

// RateLimit 每个 IP 在 window 内最多 limit 次请求
func RateLimit(limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !chatLimiter.Allow(c.ClientIP(), limit, window) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "请求过于频繁，请稍后再试"})
			c.Abort()
			return
		}
		c.Next()
	}
}
