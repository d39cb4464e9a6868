package database

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"edumall_v1_202608/internal/model"
)

// SeedOptions 首次启动种子数据选项
type SeedOptions struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// SeedAdmin 确保系统至少存在一个管理员账号
// 已存在任意 admin 时跳过，幂等可重复执行
func SeedAdmin(ctx context.Context, db *gorm.DB, opts SeedOptions) error {
	if opts.AdminEmail == "" || opts.AdminPassword == "" {
		return errors.New("种子管理员邮箱/密码不能为空")
	}

	var count int64
	if err := db.WithContext(ctx).
		Model(&model.Account{}).
		Where("role = ?", model.RoleAdmin).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.Account{
		Email:    model.NormalizeEmail(opts.AdminEmail),
		Password: string(hashed),
		Name:     opts.AdminName,
		Role:     model.RoleAdmin,
		IsActive: true,
	}
	if err := db.WithContext(ctx).Create(admin).Error; err != nil {
		return err
	}

	log.Printf("已创建种子管理员账号: %s", admin.Email)
	return nil
}
