package middleware

import (
	"testing"
	"time"
)

// ==================== Token 签发/解析 ====================

func TestSessionToken_RoundTrip(t *testing.T) {
	defer SetSessionConfig(DefaultSessionConfig())

	token, err := IssueSessionToken(42, "user@example.com", "subscriber")
	if err != nil {
		t.Fatalf("签发 Token 失败: %v", err)
	}

	claims, err := ParseSessionToken(token)
	if err != nil {
		t.Fatalf("解析 Token 失败: %v", err)
	}
	if claims.AccountID != 42 {
		t.Errorf("accountID = %d, want 42", claims.AccountID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("email = %s, want user@example.com", claims.Email)
	}
}

func TestSessionToken_Expired(t *testing.T) {
	defer SetSessionConfig(DefaultSessionConfig())

	// TTL 为负，签出即过期
	SetSessionConfig(&SessionConfig{
		SecretKey: "test-secret",
		TTL:       -time.Hour,
		Issuer:    "edumall",
	})

	token, err := IssueSessionToken(1, "user@example.com", "subscriber")
	if err != nil {
		t.Fatalf("签发 Token 失败: %v", err)
	}

	if _, err := ParseSessionToken(token); err == nil {
		t.Error("过期 Token 不应通过校验")
	}
}

func TestSessionToken_SecretRotation(t *testing.T) {
	defer SetSessionConfig(DefaultSessionConfig())

	SetSessionConfig(&SessionConfig{
		SecretKey: "old-secret",
		TTL:       time.Hour,
		Issuer:    "edumall",
	})
	token, err := IssueSessionToken(1, "user@example.com", "subscriber")
	if err != nil {
		t.Fatalf("签发 Token 失败: %v", err)
	}

	// 密钥轮换后旧 Token 全部失效
	SetSessionConfig(&SessionConfig{
		SecretKey: "new-secret",
		TTL:       time.Hour,
		Issuer:    "edumall",
	})
	if _, err := ParseSessionToken(token); err == nil {
		t.Error("密钥轮换后旧 Token 不应通过校验")
	}
}

func TestSessionToken_Malformed(t *testing.T) {
	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := ParseSessionToken(token); err == nil {
			t.Errorf("格式错误的 Token %q 不应通过校验", token)
		}
	}
}
