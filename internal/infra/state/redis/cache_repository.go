package redisstate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/lxKylin/meeting-room/internal/repository"
)

// RedisCacheRepository 是 CacheRepository 接口的 Redis 实现
type RedisCacheRepository struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisCacheRepository 创建 RedisCacheRepository 实例，keyPrefix 可以为空
func NewRedisCacheRepository(client *redis.Client, keyPrefix string) *RedisCacheRepository {
	if client == nil {
		panic("redis client cannot be nil for RedisCacheRepository")
	}
	return &RedisCacheRepository{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (r *RedisCacheRepository) key(k string) string {
	return r.keyPrefix + k
}

// Get 读取字符串值，key 不存在返回 ErrCacheMiss
func (r *RedisCacheRepository) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, r.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", repository.ErrCacheMiss
		}
		return "", fmt.Errorf("redis: get %s: %w", key, err)
	}
	return val, nil
}

// Set 写入字符串值
func (r *RedisCacheRepository) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis: set %s: %w", key, err)
	}
	return nil
}

// Delete 删除 key，不存在时不报错
func (r *RedisCacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("redis: del %s: %w", key, err)
	}
	return nil
}

// SetNX 原子地检查并写入
func (r *RedisCacheRepository) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, r.key(key), value, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis: setnx %s: %w", key, err)
	}
	return ok, nil
}
