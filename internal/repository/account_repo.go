package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"edumall_v1_202608/internal/model"
)

// ==================== AccountRepository 账号仓库 ====================

// AccountRepository 账号仓库接口
type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	GetByID(ctx context.Context, id int64) (*model.Account, error)
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	Update(ctx context.Context, account *model.Account) error
	UpdatePassword(ctx context.Context, id int64, hashedPassword string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter AccountFilter) ([]model.Account, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountByRole(ctx context.Context, role model.Role) (int64, error)
}

// AccountFilter 账号筛选条件
type AccountFilter struct {
	Keyword  string
	Role     string
	ParentID *int64
	Page     int
	PageSize int
}

// ==================== 实现 ====================

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository 创建账号仓库
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Create 创建账号
func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// GetByID 根据 ID 获取账号
func (r *accountRepository) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).First(&account, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &account, err
}

// GetByEmail 根据邮箱获取账号（入库前已统一小写，查询同样归一化）
func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).
		Where("email = ?", model.NormalizeEmail(email)).
		First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &account, err
}

// Update 更新账号
func (r *accountRepository) Update(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}

// UpdatePassword 更新密码
func (r *accountRepository) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	return r.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("id = ?", id).
		Update("password", hashedPassword).Error
}

// Delete 删除账号（软删除）
func (r *accountRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Account{}, id).Error
}

// List 账号列表
func (r *accountRepository) List(ctx context.Context, filter AccountFilter) ([]model.Account, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Account{})

	// 关键词搜索
	if filter.Keyword != "" {
		keyword := "%" + filter.Keyword + "%"
		query = query.Where("email LIKE ? OR name LIKE ?", keyword, keyword)
	}

	// 角色筛选
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}

	// 上级筛选（委托人查自己名下账号）
	if filter.ParentID != nil {
		query = query.Where("parent_id = ?", *filter.ParentID)
	}

	// 统计总数
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分页
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	var accounts []model.Account
	err := query.
		Order("id DESC").
		Offset(offset).
		Limit(filter.PageSize).
		Find(&accounts).Error

	return accounts, total, err
}

// ExistsByEmail 检查邮箱是否存在（大小写不敏感）
// 含软删除账号：email 列上有唯一索引，软删行仍占用，放过会在插入时撞约束
func (r *accountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Unscoped().
		Model(&model.Account{}).
		Where("email = ?", model.NormalizeEmail(email)).
		Count(&count).Error
	return count > 0, err
}

// CountByRole 按角色统计账号数
func (r *accountRepository) CountByRole(ctx context.Context, role model.Role) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("role = ?", role).
		Count(&count).Error
	return count, err
}
