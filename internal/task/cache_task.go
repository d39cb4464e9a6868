package task

import (
	"log"

	"github.com/robfig/cron/v3"

	"edumall_v1_202608/pkg/utils"
)

// ==================== CachePurgeTask 缓存清理任务 ====================

// CachePurgeTask 定期清理进程内缓存里的过期条目
type CachePurgeTask struct {
	cron *cron.Cron
}

// NewCachePurgeTask 创建缓存清理任务
func NewCachePurgeTask() *CachePurgeTask {
	return &CachePurgeTask{
		cron: cron.New(cron.WithSeconds()),
	}
}

// Start 启动定时任务
func (t *CachePurgeTask) Start() {
	// 每小时清理一次
	_, _ = t.cron.AddFunc("0 0 * * * *", func() {
		n := utils.PurgeExpired()
		if n > 0 {
			log.Printf("[CachePurgeTask] 已清理 %d 个过期缓存条目", n)
		}
	})

	t.cron.Start()
	log.Println("[CachePurgeTask] 已启动 (每小时清理)")
}

// Stop 停止任务
func (t *CachePurgeTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	log.Println("[CachePurgeTask] 已停止")
}
