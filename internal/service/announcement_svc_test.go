package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"edumall_v1_202608/internal/api/dto"
	"edumall_v1_202608/internal/model"
	"edumall_v1_202608/internal/repository"
)

// ==================== 测试辅助 ====================

func newAnnouncementServiceForTest(t *testing.T) (*AnnouncementService, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Announcement{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return NewAnnouncementService(repository.NewAnnouncementRepository(db)), db
}

// ==================== 单元测试 ====================

func TestAnnouncementService_Create_InvalidWindow(t *testing.T) {
	svc, _ := newAnnouncementServiceForTest(t)

	publishAt := time.Now()
	expiresAt := publishAt.Add(-time.Hour)

	_, err := svc.Create(context.Background(), &dto.SaveAnnouncementRequest{
		Title:     "错误窗口",
		Published: true,
		PublishAt: &publishAt,
		ExpiresAt: &expiresAt,
	})
	if !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("err = %v, want ErrInvalidWindow", err)
	}
}

func TestAnnouncementService_ListVisible(t *testing.T) {
	svc, _ := newAnnouncementServiceForTest(t)
	ctx := context.Background()

	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	// 可见：已发布且在窗口内
	svc.Create(ctx, &dto.SaveAnnouncementRequest{Title: "可见", Published: true, PublishAt: &past, ExpiresAt: &future})
	// 不可见：未发布
	svc.Create(ctx, &dto.SaveAnnouncementRequest{Title: "草稿", Published: false})
	// 不可见：发布时间未到
	svc.Create(ctx, &dto.SaveAnnouncementRequest{Title: "预告", Published: true, PublishAt: &future})
	// 可见：无窗口限制
	svc.Create(ctx, &dto.SaveAnnouncementRequest{Title: "常驻", Published: true})

	items, err := svc.ListVisible(ctx)
	if err != nil {
		t.Fatalf("查询可见公告失败: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("visible = %d, want 2", len(items))
	}
	for _, item := range items {
		if item.Title != "可见" && item.Title != "常驻" {
			t.Errorf("不应出现公告: %s", item.Title)
		}
	}
}

func TestAnnouncementService_SweepExpired(t *testing.T) {
	svc, db := newAnnouncementServiceForTest(t)
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	expired, _ := svc.Create(ctx, &dto.SaveAnnouncementRequest{Title: "已过期", Published: true, ExpiresAt: &past})
	svc.Create(ctx, &dto.SaveAnnouncementRequest{Title: "未过期", Published: true, ExpiresAt: &future})

	swept, err := svc.SweepExpired(ctx, time.Now())
	if err != nil {
		t.Fatalf("巡检失败: %v", err)
	}
	if swept != 1 {
		t.Errorf("swept = %d, want 1", swept)
	}

	var found model.Announcement
	db.First(&found, expired.ID)
	if found.Published {
		t.Error("过期公告应被下线")
	}
}
