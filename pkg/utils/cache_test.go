package utils

import (
	"testing"
	"time"
)

func TestCache_SetGet(t *testing.T) {
	SetCache("k1", "v1", time.Minute)
	defer DeleteCache("k1")

	val, ok := GetCache("k1")
	if !ok || val != "v1" {
		t.Errorf("GetCache = %v,%v, want v1,true", val, ok)
	}
}

func TestCache_Expiration(t *testing.T) {
	// 负 TTL 保证已过期
	SetCache("k2", "v2", -2*time.Second)

	if _, ok := GetCache("k2"); ok {
		t.Error("过期条目不应命中")
	}
}

func TestCache_Delete(t *testing.T) {
	SetCache("k3", "v3", time.Minute)
	DeleteCache("k3")

	if _, ok := GetCache("k3"); ok {
		t.Error("删除后不应命中")
	}
}

func TestCache_GetOrSet(t *testing.T) {
	defer DeleteCache("k4")

	// 首次写入返回给定值
	if val := GetOrSetCache("k4", "first", time.Minute); val != "first" {
		t.Errorf("GetOrSetCache = %v, want first", val)
	}

	// 未过期时保留已有值
	if val := GetOrSetCache("k4", "second", time.Minute); val != "first" {
		t.Errorf("GetOrSetCache = %v, want first", val)
	}
}

func TestCache_GetOrSet_ReplacesExpired(t *testing.T) {
	defer DeleteCache("k5")

	SetCache("k5", "old", -2*time.Second)
	if val := GetOrSetCache("k5", "new", time.Minute); val != "new" {
		t.Errorf("GetOrSetCache = %v, want new", val)
	}
}

func TestCache_PurgeExpired(t *testing.T) {
	SetCache("stale", "x", -2*time.Second)
	SetCache("fresh", "y", time.Minute)
	defer DeleteCache("fresh")

	removed := PurgeExpired()
	if removed < 1 {
		t.Errorf("removed = %d, want >= 1", removed)
	}
	if _, ok := GetCache("fresh"); !ok {
		t.Error("未过期条目不应被清理")
	}
}
