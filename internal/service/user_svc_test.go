package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"edumall_v1_202608/internal/api/dto"
	"edumall_v1_202608/internal/model"
	"edumall_v1_202608/internal/repository"
)

// ==================== 测试辅助 ====================

func setupUserTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&model.Account{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func newUserServiceForTest(t *testing.T) (*UserService, *gorm.DB) {
	db := setupUserTestDB(t)
	return NewUserService(repository.NewAccountRepository(db)), db
}

func mustCreateAccount(t *testing.T, db *gorm.DB, email, password string, role model.Role) *model.Account {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("密码加密失败: %v", err)
	}
	account := &model.Account{
		Email:    model.NormalizeEmail(email),
		Password: string(hashed),
		Name:     "Test User",
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("创建测试账号失败: %v", err)
	}
	return account
}

// ==================== 登录 ====================

func TestUserService_Login(t *testing.T) {
	svc, db := newUserServiceForTest(t)
	ctx := context.Background()

	mustCreateAccount(t, db, "user@example.com", "secret123", model.RoleSubscriber)

	info, token, err := svc.Login(ctx, &dto.LoginRequest{
		Email:    "user@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if token == "" {
		t.Error("登录成功应返回会话 token")
	}
	if info.Email != "user@example.com" {
		t.Errorf("email = %s, want user@example.com", info.Email)
	}
}

func TestUserService_Login_EmailCaseInsensitive(t *testing.T) {
	svc, db := newUserServiceForTest(t)
	ctx := context.Background()

	mustCreateAccount(t, db, "user@example.com", "secret123", model.RoleSubscriber)

	// 大写邮箱也能登录
	_, _, err := svc.Login(ctx, &dto.LoginRequest{
		Email:    "USER@Example.COM",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("大写邮箱登录失败: %v", err)
	}
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	svc, db := newUserServiceForTest(t)
	ctx := context.Background()

	mustCreateAccount(t, db, "user@example.com", "secret123", model.RoleSubscriber)

	_, _, err := svc.Login(ctx, &dto.LoginRequest{
		Email:    "user@example.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	svc, _ := newUserServiceForTest(t)

	// 账号不存在和密码错误返回同一个错误，不泄露账号存在性
	_, _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestUserService_Login_DisabledAccount(t *testing.T) {
	svc, db := newUserServiceForTest(t)
	ctx := context.Background()

	account := mustCreateAccount(t, db, "user@example.com", "secret123", model.RoleSubscriber)
	db.Model(account).Update("is_active", false)

	_, _, err := svc.Login(ctx, &dto.LoginRequest{
		Email:    "user@example.com",
		Password: "secret123",
	})
	if !errors.Is(err, ErrAccountDisabled) {
		t.Errorf("err = %v, want ErrAccountDisabled", err)
	}
}

// ==================== 注册 / 委托建号 ====================

func TestUserService_Register_SelfService(t *testing.T) {
	svc, _ := newUserServiceForTest(t)
	ctx := context.Background()

	info, err := svc.Register(ctx, nil, &dto.RegisterRequest{
		Email:    "New@Example.com",
		Password: "secret123",
		Name:     "Newbie",
	})
	if err != nil {
		t.Fatalf("自助注册失败: %v", err)
	}
	if info.Role != string(model.RoleSubscriber) {
		t.Errorf("role = %s, want subscriber", info.Role)
	}
	// 邮箱统一小写存储
	if info.Email != "new@example.com" {
		t.Errorf("email = %s, want new@example.com", info.Email)
	}
	if info.ParentID != nil {
		t.Error("自助注册账号不应有上级")
	}
}

func TestUserService_Register_SelfServiceCannotPickRole(t *testing.T) {
	svc, _ := newUserServiceForTest(t)

	_, err := svc.Register(context.Background(), nil, &dto.RegisterRequest{
		Email:    "sneaky@example.com",
		Password: "secret123",
		Name:     "Sneaky",
		Role:     "admin",
	})
	if !errors.Is(err, ErrInvalidRole) {
		t.Errorf("err = %v, want ErrInvalidRole", err)
	}
}

func TestUserService_Register_DuplicateEmailCaseInsensitive(t *testing.T) {
	svc, db := newUserServiceForTest(t)
	ctx := context.Background()

	mustCreateAccount(t, db, "taken@example.com", "secret123", model.RoleSubscriber)

	_, err := svc.Register(ctx, nil, &dto.RegisterRequest{
		Email:    "TAKEN@example.com",
		Password: "secret123",
		Name:     "Dup",
	})
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("err = %v, want ErrEmailExists", err)
	}
}

func TestUserService_Register_SoftDeletedEmailStillConflicts(t *testing.T) {
	svc, db := newUserServiceForTest(t)
	ctx := context.Background()

	account := mustCreateAccount(t, db, "gone@example.com", "secret123", model.RoleSubscriber)
	if err := db.Delete(account).Error; err != nil {
		t.Fatalf("软删除失败: %v", err)
	}

	// 软删行仍占用唯一索引，注册要给 409 而不是撞约束
	_, err := svc.Register(ctx, nil, &dto.RegisterRequest{
		Email:    "gone@example.com",
		Password: "secret123",
		Name:     "Revenant",
	})
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("err = %v, want ErrEmailExists", err)
	}
}

func TestUserService_Register_PasswordTooShort(t *testing.T) {
	svc, _ := newUserServiceForTest(t)

	_, err := svc.Register(context.Background(), nil, &dto.RegisterRequest{
		Email:    "short@example.com",
		Password: "12345",
		Name:     "Short",
	})
	if !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("err = %v, want ErrPasswordTooShort", err)
	}
}

func TestUserService_Register_DelegatorCreatesChild(t *testing.T) {
	svc, db := newUserServiceForTest(t)
	ctx := context.Background()

	delegator := mustCreateAccount(t, db, "manager@example.com", "secret123", model.RoleManager)
	db.Model(delegator).Update("can_create_sub_accounts", true)
	delegator.CanCreateSubAccounts = true

	info, err := svc.Register(ctx, delegator, &dto.RegisterRequest{
		Email:    "child@example.com",
		Password: "secret123",
		Name:     "Child",
		Role:     "subscriber",
	})
	if err != nil {
		t.Fatalf("委托建号失败: %v", err)
	}
	// 委托人建出的账号 parent 固定指向自己
	if info.ParentID == nil || *info.ParentID != delegator.ID {
		t.Errorf("parentID = %v, want %d", info.ParentID, delegator.ID)
	}
}

func TestUserService_Register_NonDelegatorForbidden(t *testing.T) {
	svc, db := newUserServiceForTest(t)
	ctx := context.Background()

	plain := mustCreateAccount(t, db, "plain@example.com", "secret123", model.RoleSubscriber)

	_, err := svc.Register(ctx, plain, &dto.RegisterRequest{
		Email:    "child@example.com",
		Password: "secret123",
		Name:     "Child",
	})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestUserService_Register_OnlyAdminSetsDelegationFlag(t *testing.T) {
	svc, db := newUserServiceForTest(t)
	ctx := context.Background()

	delegator := mustCreateAccount(t, db, "manager@example.com", "secret123", model.RoleManager)
	db.Model(delegator).Update("can_create_sub_accounts", true)
	delegator.CanCreateSubAccounts = true

	// 非 admin 委托人尝试给下级授予委托权限，应被忽略
	info, err := svc.Register(ctx, delegator, &dto.RegisterRequest{
		Email:                "child@example.com",
		Password:             "secret123",
		Name:                 "Child",
		CanCreateSubAccounts: true,
	})
	if err != nil {
		t.Fatalf("委托建号失败: %v", err)
	}
	if info.CanCreateSubAccounts {
		t.Error("非 admin 不应能授予委托权限")
	}

	admin := mustCreateAccount(t, db, "admin@example.com", "secret123", model.RoleAdmin)
	info2, err := svc.Register(ctx, admin, &dto.RegisterRequest{
		Email:                "child2@example.com",
		Password:             "secret123",
		Name:                 "Child2",
		Role:                 "manager",
		CanCreateSubAccounts: true,
	})
	if err != nil {
		t.Fatalf("admin 建号失败: %v", err)
	}
	if !info2.CanCreateSubAccounts {
		t.Error("admin 应能授予委托权限")
	}
}

func TestUserService_Register_AdminWithMissingParent(t *testing.T) {
	svc, db := newUserServiceForTest(t)
	ctx := context.Background()

	admin := mustCreateAccount(t, db, "admin@example.com", "secret123", model.RoleAdmin)
	missing := int64(9999)

	_, err := svc.Register(ctx, admin, &dto.RegisterRequest{
		Email:    "orphan@example.com",
		Password: "secret123",
		Name:     "Orphan",
		ParentID: &missing,
	})
	if !errors.Is(err, ErrParentNotFound) {
		t.Errorf("err = %v, want ErrParentNotFound", err)
	}
}

// ==================== 账号管理 ====================

func TestUserService_GetAccount_DelegatorScope(t *testing.T) {
	svc, db := newUserServiceForTest(t)
	ctx := context.Background()

	delegator := mustCreateAccount(t, db, "manager@example.com", "secret123", model.RoleManager)
	db.Model(delegator).Update("can_create_sub_accounts", true)
	delegator.CanCreateSubAccounts = true

	child := mustCreateAccount(t, db, "child@example.com", "secret123", model.RoleSubscriber)
	db.Model(child).Update("parent_id", delegator.ID)

	outsider := mustCreateAccount(t, db, "other@example.com", "secret123", model.RoleSubscriber)

	// 自己名下的可见
	if _, err := svc.GetAccount(ctx, delegator, child.ID); err != nil {
		t.Errorf("委托人查看下级失败: %v", err)
	}

	// 别人名下的不可见
	if _, err := svc.GetAccount(ctx, delegator, outsider.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestUserService_ListAccounts_DelegatorScoped(t *testing.T) {
	svc, db := newUserServiceForTest(t)
	ctx := context.Background()

	delegator := mustCreateAccount(t, db, "manager@example.com", "secret123", model.RoleManager)
	db.Model(delegator).Update("can_create_sub_accounts", true)
	delegator.CanCreateSubAccounts = true

	child := mustCreateAccount(t, db, "child@example.com", "secret123", model.RoleSubscriber)
	db.Model(child).Update("parent_id", delegator.ID)
	mustCreateAccount(t, db, "other@example.com", "secret123", model.RoleSubscriber)

	resp, err := svc.ListAccounts(ctx, delegator, &dto.AccountListRequest{})
	if err != nil {
		t.Fatalf("账号列表失败: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("total = %d, want 1（只看自己名下）", resp.Total)
	}
}

func TestUserService_DeleteAccount_LastAdmin(t *testing.T) {
	svc, db := newUserServiceForTest(t)
	ctx := context.Background()

	admin := mustCreateAccount(t, db, "admin@example.com", "secret123", model.RoleAdmin)

	// 系统仅剩一个 admin 时拒绝删除
	err := svc.DeleteAccount(ctx, admin, admin.ID)
	if !errors.Is(err, ErrCannotDeleteAdmin) {
		t.Errorf("err = %v, want ErrCannotDeleteAdmin", err)
	}

	// 有第二个 admin 后允许删除
	admin2 := mustCreateAccount(t, db, "admin2@example.com", "secret123", model.RoleAdmin)
	if err := svc.DeleteAccount(ctx, admin, admin2.ID); err != nil {
		t.Errorf("删除第二个 admin 失败: %v", err)
	}
}

// ==================== 修改密码 ====================

func TestUserService_ChangePassword(t *testing.T) {
	svc, db := newUserServiceForTest(t)
	ctx := context.Background()

	account := mustCreateAccount(t, db, "user@example.com", "secret123", model.RoleSubscriber)

	// 旧密码错误
	err := svc.ChangePassword(ctx, account.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newsecret",
	})
	if !errors.Is(err, ErrInvalidOldPassword) {
		t.Errorf("err = %v, want ErrInvalidOldPassword", err)
	}

	// 正确修改后可用新密码登录
	err = svc.ChangePassword(ctx, account.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "secret123",
		NewPassword:     "newsecret",
	})
	if err != nil {
		t.Fatalf("修改密码失败: %v", err)
	}

	if _, _, err := svc.Login(ctx, &dto.LoginRequest{
		Email:    "user@example.com",
		Password: "newsecret",
	}); err != nil {
		t.Errorf("新密码登录失败: %v", err)
	}
	if _, _, err := svc.Login(ctx, &dto.LoginRequest{
		Email:    "user@example.com",
		Password: "secret123",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("旧密码仍可登录: err = %v", err)
	}
}
