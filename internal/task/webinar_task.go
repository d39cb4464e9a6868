package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"edumall_v1_202608/internal/service"
)

// ==================== WebinarSweepTask 讲座状态巡检任务 ====================

// WebinarSweepTask 定期把已结束的讲座标记为 completed
// 巡检策略：每 5 分钟扫描一次 EndsAt 早于当前时间的 live/scheduled 讲座
type WebinarSweepTask struct {
	webinarService *service.WebinarService
	cron           *cron.Cron
}

// NewWebinarSweepTask 创建讲座巡检任务
func NewWebinarSweepTask(webinarService *service.WebinarService) *WebinarSweepTask {
	return &WebinarSweepTask{
		webinarService: webinarService,
		cron:           cron.New(cron.WithSeconds()),
	}
}

// Start 启动定时任务
func (t *WebinarSweepTask) Start() {
	// 每 5 分钟巡检一次
	_, _ = t.cron.AddFunc("0 */5 * * * *", func() {
		t.sweep()
	})

	t.cron.Start()
	log.Println("[WebinarSweepTask] 已启动 (每5分钟巡检)")
}

// Stop 停止任务
func (t *WebinarSweepTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	log.Println("[WebinarSweepTask] 已停止")
}

// SweepNow 手动触发一次巡检
func (t *WebinarSweepTask) SweepNow() {
	t.sweep()
}

func (t *WebinarSweepTask) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := t.webinarService.SweepEnded(ctx, time.Now())
	if err != nil {
		log.Printf("[WebinarSweepTask] 巡检失败: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[WebinarSweepTask] 已标记 %d 场讲座为 completed", n)
	}
}
