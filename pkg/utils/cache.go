package utils

import (
	"sync"
	"time"
)

// 使用 sync.Map 保证并发安全
var (
	memoryCache sync.Map
)

// cacheItem 内部结构，包含值和过期时间
type cacheItem struct {
	value      any
	expiration int64 // UnixNano
}

// SetCache 设置缓存，ttl 到期后懒删除
// 目前用于限流计数窗口（见 middleware.ChatRateLimiter）
func SetCache(key string, value any, ttl time.Duration) {
	memoryCache.Store(key, cacheItem{
		value:      value,
		expiration: time.Now().Add(ttl).UnixNano(),
	})
}

// GetCache 获取缓存并验证是否过期
func GetCache(key string) (any, bool) {
	val, ok := memoryCache.Load(key)
	if !ok {
		return nil, false
	}

	item := val.(cacheItem)

	// 检查是否过期
	if time.Now().UnixNano() > item.expiration {
		memoryCache.Delete(key) // 懒删除
		return nil, false
	}

	return item.value, true
}

// GetOrSetCache 返回 key 上未过期的已有值；不存在或已过期时写入 value 并返回 value
func GetOrSetCache(key string, value any, ttl time.Duration) any {
	fresh := cacheItem{
		value:      value,
		expiration: time.Now().Add(ttl).UnixNano(),
	}

	for {
		actual, loaded := memoryCache.LoadOrStore(key, fresh)
		item := actual.(cacheItem)
		if !loaded || time.Now().UnixNano() <= item.expiration {
			return item.value
		}

		// 已有条目过期，删除后重试写入
		memoryCache.Delete(key)
	}
}

// DeleteCache 删除缓存 (用完即焚)
func DeleteCache(key string) {
	memoryCache.Delete(key)
}

// PurgeExpired 清理所有过期条目，由定时任务周期调用
func PurgeExpired() int {
	now := time.Now().UnixNano()
	removed := 0
	memoryCache.Range(func(key, val interface{}) bool {
		if item, ok := val.(cacheItem); ok && now > item.expiration {
			memoryCache.Delete(key)
			removed++
		}
		return true
	})
	return removed
}
