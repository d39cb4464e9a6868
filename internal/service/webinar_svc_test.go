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

func setupWebinarTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&model.Webinar{}, &model.WebinarRegistration{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func newWebinarServiceForTest(t *testing.T) (*WebinarService, *gorm.DB) {
	db := setupWebinarTestDB(t)
	svc := NewWebinarService(
		repository.NewWebinarRepository(db),
		repository.NewWebinarRegistrationRepository(db),
		nil,
	)
	return svc, db
}

func sampleWebinarRequest(capacity int) *dto.SaveWebinarRequest {
	start := time.Now().Add(24 * time.Hour)
	return &dto.SaveWebinarRequest{
		Title:     "Go 并发实战",
		Presenter: "张老师",
		StartsAt:  start,
		EndsAt:    start.Add(time.Hour),
		Capacity:  capacity,
	}
}

// ==================== 后台维护 ====================

func TestWebinarService_Create(t *testing.T) {
	svc, _ := newWebinarServiceForTest(t)

	info, err := svc.CreateWebinar(context.Background(), sampleWebinarRequest(0))
	if err != nil {
		t.Fatalf("创建讲座失败: %v", err)
	}
	if info.Status != model.WebinarScheduled {
		t.Errorf("status = %s, want scheduled", info.Status)
	}
}

func TestWebinarService_Create_InvalidTimeRange(t *testing.T) {
	svc, _ := newWebinarServiceForTest(t)

	req := sampleWebinarRequest(0)
	req.EndsAt = req.StartsAt.Add(-time.Hour)

	_, err := svc.CreateWebinar(context.Background(), req)
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Errorf("err = %v, want ErrInvalidTimeRange", err)
	}
}

// ==================== 报名 ====================

func TestWebinarService_Register(t *testing.T) {
	svc, _ := newWebinarServiceForTest(t)
	ctx := context.Background()

	info, _ := svc.CreateWebinar(ctx, sampleWebinarRequest(0))

	reg, err := svc.Register(ctx, 1, info.ID)
	if err != nil {
		t.Fatalf("报名失败: %v", err)
	}
	if reg.ConfirmationCode == "" {
		t.Error("报名应生成确认码")
	}

	// 确认码全局唯一
	reg2, err := svc.Register(ctx, 2, info.ID)
	if err != nil {
		t.Fatalf("第二个账号报名失败: %v", err)
	}
	if reg2.ConfirmationCode == reg.ConfirmationCode {
		t.Error("两次报名的确认码不应相同")
	}
}

func TestWebinarService_Register_Duplicate(t *testing.T) {
	svc, _ := newWebinarServiceForTest(t)
	ctx := context.Background()

	info, _ := svc.CreateWebinar(ctx, sampleWebinarRequest(0))
	svc.Register(ctx, 1, info.ID)

	_, err := svc.Register(ctx, 1, info.ID)
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Errorf("err = %v, want ErrAlreadyRegistered", err)
	}
}

func TestWebinarService_Register_Full(t *testing.T) {
	svc, _ := newWebinarServiceForTest(t)
	ctx := context.Background()

	// 名额 2
	info, _ := svc.CreateWebinar(ctx, sampleWebinarRequest(2))

	if _, err := svc.Register(ctx, 1, info.ID); err != nil {
		t.Fatalf("报名失败: %v", err)
	}
	if _, err := svc.Register(ctx, 2, info.ID); err != nil {
		t.Fatalf("报名失败: %v", err)
	}

	_, err := svc.Register(ctx, 3, info.ID)
	if !errors.Is(err, ErrWebinarFull) {
		t.Errorf("err = %v, want ErrWebinarFull", err)
	}
}

func TestWebinarService_Register_Ended(t *testing.T) {
	svc, db := newWebinarServiceForTest(t)
	ctx := context.Background()

	info, _ := svc.CreateWebinar(ctx, sampleWebinarRequest(0))
	db.Model(&model.Webinar{}).Where("id = ?", info.ID).Update("status", model.WebinarCompleted)

	_, err := svc.Register(ctx, 1, info.ID)
	if !errors.Is(err, ErrWebinarEnded) {
		t.Errorf("err = %v, want ErrWebinarEnded", err)
	}
}

// ==================== 状态收尾 ====================

func TestWebinarService_SweepEnded(t *testing.T) {
	svc, db := newWebinarServiceForTest(t)
	ctx := context.Background()

	// 一场已过结束时间，一场还没开始
	past := &model.Webinar{
		Title:    "已结束的讲座",
		StartsAt: time.Now().Add(-2 * time.Hour),
		EndsAt:   time.Now().Add(-time.Hour),
		Status:   model.WebinarScheduled,
	}
	db.Create(past)
	svc.CreateWebinar(ctx, sampleWebinarRequest(0))

	swept, err := svc.SweepEnded(ctx, time.Now())
	if err != nil {
		t.Fatalf("巡检失败: %v", err)
	}
	if swept != 1 {
		t.Errorf("swept = %d, want 1", swept)
	}

	var found model.Webinar
	db.First(&found, past.ID)
	if found.Status != model.WebinarCompleted {
		t.Errorf("status = %s, want completed", found.Status)
	}

	// 再跑一遍应无事可做
	swept, _ = svc.SweepEnded(ctx, time.Now())
	if swept != 0 {
		t.Errorf("第二次巡检 swept = %d, want 0", swept)
	}
}
