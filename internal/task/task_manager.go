package task

import (
	"log"

	"edumall_v1_202608/internal/service"
)

// ==================== TaskManager 后台任务管理器 ====================

// TaskManager 统一管理后台定时任务
// 管理范围：讲座状态巡检、公告过期下线、缓存清理
type TaskManager struct {
	webinarTask      *WebinarSweepTask
	announcementTask *AnnouncementSweepTask
	cacheTask        *CachePurgeTask
}

// TaskManagerDeps 任务管理器依赖
type TaskManagerDeps struct {
	WebinarService      *service.WebinarService
	AnnouncementService *service.AnnouncementService
}

// TaskManagerConfig 任务管理器配置
type TaskManagerConfig struct {
	WebinarSweepEnabled      bool
	AnnouncementSweepEnabled bool
	CachePurgeEnabled        bool
}

// DefaultConfig 默认配置
func DefaultConfig() *TaskManagerConfig {
	return &TaskManagerConfig{
		WebinarSweepEnabled:      true,
		AnnouncementSweepEnabled: true,
		CachePurgeEnabled:        true,
	}
}

// NewTaskManager 创建任务管理器
func NewTaskManager(deps *TaskManagerDeps, cfg *TaskManagerConfig) *TaskManager {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	tm := &TaskManager{}

	if cfg.WebinarSweepEnabled && deps.WebinarService != nil {
		tm.webinarTask = NewWebinarSweepTask(deps.WebinarService)
	}

	if cfg.AnnouncementSweepEnabled && deps.AnnouncementService != nil {
		tm.announcementTask = NewAnnouncementSweepTask(deps.AnnouncementService)
	}

	if cfg.CachePurgeEnabled {
		tm.cacheTask = NewCachePurgeTask()
	}

	return tm
}

// ==================== 生命周期管理 ====================

// Start 启动所有任务
func (tm *TaskManager) Start() {
	log.Println("[TaskManager] 正在启动后台定时任务...")

	if tm.webinarTask != nil {
		tm.webinarTask.Start()
	}
	if tm.announcementTask != nil {
		tm.announcementTask.Start()
	}
	if tm.cacheTask != nil {
		tm.cacheTask.Start()
	}

	log.Println("[TaskManager] 后台定时任务已全部启动")
}

// Stop 停止所有任务
func (tm *TaskManager) Stop() {
	log.Println("[TaskManager] 正在停止后台定时任务...")

	if tm.webinarTask != nil {
		tm.webinarTask.Stop()
	}
	if tm.announcementTask != nil {
		tm.announcementTask.Stop()
	}
	if tm.cacheTask != nil {
		tm.cacheTask.Stop()
	}

	log.Println("[TaskManager] 后台定时任务已全部停止")
}

// ==================== 手动触发接口 ====================

// TriggerWebinarSweep 触发讲座巡检
func (tm *TaskManager) TriggerWebinarSweep() error {
	if tm.webinarTask == nil {
		return ErrTaskDisabled
	}
	tm.webinarTask.SweepNow()
	return nil
}

// TriggerAnnouncementSweep 触发公告巡检
func (tm *TaskManager) TriggerAnnouncementSweep() error {
	if tm.announcementTask == nil {
		return ErrTaskDisabled
	}
	tm.announcementTask.SweepNow()
	return nil
}

// ==================== 状态查询 ====================

// Status 获取任务状态
func (tm *TaskManager) Status() map[string]bool {
	return map[string]bool{
		"webinar_sweep":      tm.webinarTask != nil,
		"announcement_sweep": tm.announcementTask != nil,
		"cache_purge":        tm.cacheTask != nil,
	}
}

// ==================== 错误定义 ====================

type TaskError string

func (e TaskError) Error() string { return string(e) }

const (
	ErrTaskDisabled TaskError = "task is disabled"
)
