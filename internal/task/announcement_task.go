package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"edumall_v1_202608/internal/service"
)

// ==================== AnnouncementSweepTask 公告过期下线任务 ====================

// AnnouncementSweepTask 定期下线已过期的公告
// 巡检策略：每 10 分钟扫描一次 ExpiresAt 早于当前时间且仍处于发布状态的公告
type AnnouncementSweepTask struct {
	announcementService *service.AnnouncementService
	cron                *cron.Cron
}

// NewAnnouncementSweepTask 创建公告下线任务
func NewAnnouncementSweepTask(announcementService *service.AnnouncementService) *AnnouncementSweepTask {
	return &AnnouncementSweepTask{
		announcementService: announcementService,
		cron:                cron.New(cron.WithSeconds()),
	}
}

// Start 启动定时任务
func (t *AnnouncementSweepTask) Start() {
	// 每 10 分钟巡检一次
	_, _ = t.cron.AddFunc("0 */10 * * * *", func() {
		t.sweep()
	})

	t.cron.Start()
	log.Println("[AnnouncementSweepTask] 已启动 (每10分钟巡检)")
}

// Stop 停止任务
func (t *AnnouncementSweepTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	log.Println("[AnnouncementSweepTask] 已停止")
}

// SweepNow 手动触发一次巡检
func (t *AnnouncementSweepTask) SweepNow() {
	t.sweep()
}

func (t *AnnouncementSweepTask) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := t.announcementService.SweepExpired(ctx, time.Now())
	if err != nil {
		log.Printf("[AnnouncementSweepTask] 巡检失败: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[AnnouncementSweepTask] 已下线 %d 条过期公告", n)
	}
}
