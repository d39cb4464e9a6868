package model

import "testing"

// ==================== 权限判定 ====================

func TestAccount_CanDelegate(t *testing.T) {
	admin := &Account{Role: RoleAdmin}
	if !admin.CanDelegate() {
		t.Error("admin 应隐含委托权限")
	}

	delegator := &Account{Role: RoleManager, CanCreateSubAccounts: true}
	if !delegator.CanDelegate() {
		t.Error("带委托标记的账号应有委托权限")
	}

	plain := &Account{Role: RoleSubscriber}
	if plain.CanDelegate() {
		t.Error("普通账号不应有委托权限")
	}
}

func TestAccount_CanManage(t *testing.T) {
	admin := &Account{BaseModel: BaseModel{ID: 1}, Role: RoleAdmin}
	delegator := &Account{BaseModel: BaseModel{ID: 2}, Role: RoleManager, CanCreateSubAccounts: true}

	parentID := delegator.ID
	child := &Account{BaseModel: BaseModel{ID: 3}, Role: RoleSubscriber, ParentID: &parentID}
	orphan := &Account{BaseModel: BaseModel{ID: 4}, Role: RoleSubscriber}

	if !admin.CanManage(child) || !admin.CanManage(orphan) {
		t.Error("admin 可管理任何账号")
	}
	if !delegator.CanManage(child) {
		t.Error("委托人应能管理自己名下的账号")
	}
	if delegator.CanManage(orphan) {
		t.Error("委托人不应能管理无上级的账号")
	}

	otherParent := int64(99)
	stranger := &Account{BaseModel: BaseModel{ID: 5}, ParentID: &otherParent}
	if delegator.CanManage(stranger) {
		t.Error("委托人不应能管理别人名下的账号")
	}

	// 没有委托标记时即使 parent 指向自己也不能管理
	revoked := &Account{BaseModel: BaseModel{ID: 2}, Role: RoleManager}
	if revoked.CanManage(child) {
		t.Error("委托标记被收回后不应保留管理权")
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"User@Example.COM", "user@example.com"},
		{"  user@example.com  ", "user@example.com"},
		{"already@lower.io", "already@lower.io"},
	}
	for _, tt := range tests {
		if got := NormalizeEmail(tt.in); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{"admin", "manager", "subscriber"} {
		if !ValidRole(role) {
			t.Errorf("%s 应为合法角色", role)
		}
	}
	for _, role := range []string{"", "root", "Admin"} {
		if ValidRole(role) {
			t.Errorf("%s 不应为合法角色", role)
		}
	}
}
