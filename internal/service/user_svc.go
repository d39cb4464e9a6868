package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"edumall_v1_202608/internal/api/dto"
	"edumall_v1_202608/internal/middleware"
	"edumall_v1_202608/internal/model"
	"edumall_v1_202608/internal/repository"
)

// MinPasswordLength 最短密码长度
const MinPasswordLength = 6

// ==================== UserService 账号服务 ====================

// UserService 账号服务：登录、注册、委托管理
type UserService struct {
	accountRepo repository.AccountRepository
}

// NewUserService 创建账号服务
func NewUserService(accountRepo repository.AccountRepository) *UserService {
	return &UserService{accountRepo: accountRepo}
}

// ==================== 认证相关 ====================

// Login 账号登录，成功返回账号视图 + 会话 Token
func (s *UserService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AccountInfo, string, error) {
	// 查找账号（邮箱大小写不敏感）
	account, err := s.accountRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", err
	}
	if account == nil {
		return nil, "", ErrInvalidCredentials
	}

	// 检查状态
	if !account.IsActive {
		return nil, "", ErrAccountDisabled
	}

	// 验证密码（bcrypt 自带恒定时间比较）
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	// 签发会话 Token
	token, err := middleware.IssueSessionToken(account.ID, account.Email, string(account.Role))
	if err != nil {
		return nil, "", err
	}

	return s.toAccountInfo(account), token, nil
}

// ChangePassword 修改自己的密码
func (s *UserService) ChangePassword(ctx context.Context, accountID int64, req *dto.ChangePasswordRequest) error {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account == nil {
		return ErrAccountNotFound
	}

	// 验证旧密码
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.CurrentPassword)); err != nil {
		return ErrInvalidOldPassword
	}

	if len(req.NewPassword) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	// 加密新密码
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.accountRepo.UpdatePassword(ctx, accountID, string(hashed))
}

// GetProfile 获取当前账号信息
func (s *UserService) GetProfile(ctx context.Context, accountID int64) (*dto.AccountInfo, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	return s.toAccountInfo(account), nil
}

// ==================== 注册 / 委托建号 ====================

// Register 创建账号
// caller 为 nil 表示公开自助注册，只允许 subscriber 角色；
// caller 非空时要求委托权限，非 admin 的委托人建出的账号 parent 固定指向自己
func (s *UserService) Register(ctx context.Context, caller *model.Account, req *dto.RegisterRequest) (*dto.AccountInfo, error) {
	// 1. 基础校验
	if len(req.Password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	role := model.Role(req.Role)
	if req.Role == "" {
		role = model.RoleSubscriber
	} else if !model.ValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	// 2. 权限裁决
	var parentID *int64
	switch {
	case caller == nil:
		// 公开注册只能建 subscriber
		if role != model.RoleSubscriber {
			return nil, ErrInvalidRole
		}
	case !caller.CanDelegate():
		return nil, ErrForbidden
	case caller.IsAdmin():
		// admin 可指定任意上级，但必须真实存在
		if req.ParentID != nil {
			parent, err := s.accountRepo.GetByID(ctx, *req.ParentID)
			if err != nil {
				return nil, err
			}
			if parent == nil {
				return nil, ErrParentNotFound
			}
			parentID = req.ParentID
		}
	default:
		// 委托人建出的账号挂在自己名下
		id := caller.ID
		parentID = &id
	}

	// 3. 邮箱冲突（大小写不敏感）
	exists, err := s.accountRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	// 4. 加密密码
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &model.Account{
		Email:    model.NormalizeEmail(req.Email),
		Password: string(hashed),
		Name:     req.Name,
		Role:     role,
		ParentID: parentID,
		IsActive: true,
	}
	// 委托标记只有 admin 能设置
	if caller != nil && caller.IsAdmin() {
		account.CanCreateSubAccounts = req.CanCreateSubAccounts
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return s.toAccountInfo(account), nil
}

// ==================== 账号管理 ====================

// GetAccount 查看单个账号
// admin 可看任何账号，委托人只能看自己名下的
func (s *UserService) GetAccount(ctx context.Context, caller *model.Account, targetID int64) (*dto.AccountInfo, error) {
	target, err := s.accountRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrAccountNotFound
	}
	if !caller.CanManage(target) {
		return nil, ErrForbidden
	}
	return s.toAccountInfo(target), nil
}

// UpdateAccount 更新账号（仅管理员）
// 密码为空时保持原哈希不变，只有提交了足够长的新密码才重新加密
func (s *UserService) UpdateAccount(ctx context.Context, caller *model.Account, targetID int64, req *dto.UpdateAccountRequest) (*dto.AccountInfo, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}

	account, err := s.accountRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	// 邮箱变更要排除与其他账号冲突
	if req.Email != "" && model.NormalizeEmail(req.Email) != account.Email {
		other, err := s.accountRepo.GetByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != account.ID {
			return nil, ErrEmailExists
		}
		account.Email = model.NormalizeEmail(req.Email)
	}

	if req.Name != "" {
		account.Name = req.Name
	}
	if req.Role != "" {
		if !model.ValidRole(req.Role) {
			return nil, ErrInvalidRole
		}
		account.Role = model.Role(req.Role)
	}
	if req.CanCreateSubAccounts != nil {
		account.CanCreateSubAccounts = *req.CanCreateSubAccounts
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	if req.Password != "" {
		if len(req.Password) < MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		account.Password = string(hashed)
	}

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}
	return s.toAccountInfo(account), nil
}

// ListAccounts 账号列表
// admin 看全量，委托人只看自己名下
func (s *UserService) ListAccounts(ctx context.Context, caller *model.Account, req *dto.AccountListRequest) (*dto.AccountListResponse, error) {
	if !caller.CanDelegate() {
		return nil, ErrForbidden
	}

	filter := repository.AccountFilter{
		Keyword:  req.Keyword,
		Role:     req.Role,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if !caller.IsAdmin() {
		id := caller.ID
		filter.ParentID = &id
	}

	accounts, total, err := s.accountRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.AccountInfo, 0, len(accounts))
	for i := range accounts {
		items = append(items, s.toAccountInfo(&accounts[i]))
	}

	return &dto.AccountListResponse{
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Items:    items,
	}, nil
}

// DeleteAccount 删除账号（仅管理员，软删除）
// 拒绝删掉最后一个 admin，避免系统失去管理入口
func (s *UserService) DeleteAccount(ctx context.Context, caller *model.Account, targetID int64) error {
	if !caller.IsAdmin() {
		return ErrForbidden
	}

	target, err := s.accountRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrAccountNotFound
	}

	if target.Role == model.RoleAdmin {
		count, err := s.accountRepo.CountByRole(ctx, model.RoleAdmin)
		if err != nil {
			return err
		}
		if count <= 1 {
			return ErrCannotDeleteAdmin
		}
	}

	return s.accountRepo.Delete(ctx, targetID)
}

// toAccountInfo 转换为 DTO（密码永不带出）
func (s *UserService) toAccountInfo(account *model.Account) *dto.AccountInfo {
	return &dto.AccountInfo{
		ID:                   account.ID,
		Email:                account.Email,
		Name:                 account.Name,
		Role:                 string(account.Role),
		ParentID:             account.ParentID,
		CanCreateSubAccounts: account.CanCreateSubAccounts,
		IsActive:             account.IsActive,
		CreatedAt:            account.CreatedAt,
	}
}

// SessionTTL 会话有效期（供控制器展示过期时间）
func SessionTTL() time.Duration {
	return middleware.GetSessionConfig().TTL
}

// ==================== 错误定义 ====================

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrAccountDisabled    = errors.New("账号已禁用")
	ErrAccountNotFound    = errors.New("账号不存在")
	ErrInvalidOldPassword = errors.New("当前密码错误")
	ErrPasswordTooShort   = errors.New("密码长度不足 6 位")
	ErrInvalidRole        = errors.New("角色不合法")
	ErrEmailExists        = errors.New("邮箱已被占用")
	ErrParentNotFound     = errors.New("上级账号不存在")
	ErrForbidden          = errors.New("无权限执行该操作")
	ErrCannotDeleteAdmin  = errors.New("不能删除最后一个管理员")
)
