package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"edumall_v1_202608/internal/model"
)

// ==================== 测试辅助 ====================

func setupAccountTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "连接测试数据库失败")

	require.NoError(t, db.AutoMigrate(&model.Account{}), "数据库迁移失败")
	return db
}

// ==================== 单元测试 ====================

func TestAccountRepo_GetByEmail_CaseInsensitive(t *testing.T) {
	db := setupAccountTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	err := repo.Create(ctx, &model.Account{
		Email:    "user@example.com",
		Password: "hash",
		Name:     "User",
		Role:     model.RoleSubscriber,
		IsActive: true,
	})
	require.NoError(t, err)

	// 任意大小写都能命中
	found, err := repo.GetByEmail(ctx, "USER@Example.COM")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "user@example.com", found.Email)

	// 未命中返回 nil, nil
	missing, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAccountRepo_GetByID_NotFound(t *testing.T) {
	db := setupAccountTestDB(t)
	repo := NewAccountRepository(db)

	// 不存在不报错，返回 nil
	found, err := repo.GetByID(context.Background(), 9999)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestAccountRepo_List_FilterByParent(t *testing.T) {
	db := setupAccountTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	parent := &model.Account{Email: "parent@example.com", Password: "h", Name: "Parent", Role: model.RoleManager, IsActive: true}
	require.NoError(t, repo.Create(ctx, parent))

	child := &model.Account{Email: "child@example.com", Password: "h", Name: "Child", Role: model.RoleSubscriber, ParentID: &parent.ID, IsActive: true}
	require.NoError(t, repo.Create(ctx, child))

	other := &model.Account{Email: "other@example.com", Password: "h", Name: "Other", Role: model.RoleSubscriber, IsActive: true}
	require.NoError(t, repo.Create(ctx, other))

	accounts, total, err := repo.List(ctx, AccountFilter{ParentID: &parent.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, accounts, 1)
	assert.Equal(t, "child@example.com", accounts[0].Email)
}

func TestAccountRepo_List_KeywordAndRole(t *testing.T) {
	db := setupAccountTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Account{Email: "alice@example.com", Password: "h", Name: "Alice", Role: model.RoleAdmin, IsActive: true}))
	require.NoError(t, repo.Create(ctx, &model.Account{Email: "bob@example.com", Password: "h", Name: "Bob", Role: model.RoleSubscriber, IsActive: true}))

	_, total, err := repo.List(ctx, AccountFilter{Keyword: "alice"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	_, total, err = repo.List(ctx, AccountFilter{Role: "subscriber"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestAccountRepo_Delete_SoftDelete(t *testing.T) {
	db := setupAccountTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	account := &model.Account{Email: "gone@example.com", Password: "h", Name: "Gone", Role: model.RoleSubscriber, IsActive: true}
	require.NoError(t, repo.Create(ctx, account))
	require.NoError(t, repo.Delete(ctx, account.ID))

	// 软删除后常规查询不可见
	found, err := repo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	// 但行还在库里
	var count int64
	db.Unscoped().Model(&model.Account{}).Where("id = ?", account.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestAccountRepo_ExistsByEmail(t *testing.T) {
	db := setupAccountTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Account{Email: "taken@example.com", Password: "h", Name: "T", Role: model.RoleSubscriber, IsActive: true}))

	exists, err := repo.ExistsByEmail(ctx, "Taken@EXAMPLE.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "free@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAccountRepo_ExistsByEmail_IncludesSoftDeleted(t *testing.T) {
	db := setupAccountTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	account := &model.Account{Email: "ghost@example.com", Password: "h", Name: "G", Role: model.RoleSubscriber, IsActive: true}
	require.NoError(t, repo.Create(ctx, account))
	require.NoError(t, repo.Delete(ctx, account.ID))

	// 软删行仍占用 email 唯一索引，存在性检查不能放过
	exists, err := repo.ExistsByEmail(ctx, "ghost@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestAccountRepo_CountByRole(t *testing.T) {
	db := setupAccountTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Account{Email: "a1@example.com", Password: "h", Name: "A1", Role: model.RoleAdmin, IsActive: true}))
	require.NoError(t, repo.Create(ctx, &model.Account{Email: "a2@example.com", Password: "h", Name: "A2", Role: model.RoleAdmin, IsActive: true}))
	require.NoError(t, repo.Create(ctx, &model.Account{Email: "s1@example.com", Password: "h", Name: "S1", Role: model.RoleSubscriber, IsActive: true}))

	count, err := repo.CountByRole(ctx, model.RoleAdmin)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
