package repository

import (
	"context"
	"time"
)

// CacheRepository 短期键值存储，用于验证码、催办标记和管理员邮箱缓存。
type CacheRepository interface {
	// Get key 不存在时返回 ErrCacheMiss。
	Get(ctx context.Context, key string) (string, error)

	// Set ttl 为 0 表示不过期。
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	// SetNX 仅在 key 不存在时写入，返回是否写入成功。
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
}
