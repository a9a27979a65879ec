package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"rosterhub/backend/pkg/redis"
)

// CompositeSource 按顺序尝试多个数据源，返回第一个成功的结果
// 典型组合：HTTP API 优先，本地 ICS 日历兜底
type CompositeSource struct {
	sources []Source
	logger  *zap.Logger
}

// NewCompositeSource 创建 CompositeSource
func NewCompositeSource(logger *zap.Logger, sources ...Source) *CompositeSource {
	return &CompositeSource{sources: sources, logger: logger}
}

// Lookup 依次查询各数据源
// 全部失败时返回最后一个错误，不伪造"非假日"结果
func (s *CompositeSource) Lookup(ctx context.Context, date time.Time) (Result, error) {
	var lastErr error
	for i, src := range s.sources {
		result, err := src.Lookup(ctx, date)
		if err == nil {
			if i > 0 {
				s.logger.Info("假日查询使用兜底数据源",
					zap.String("date", DateKey(date)),
					zap.Int("source_index", i),
				)
			}
			return result, nil
		}
		s.logger.Warn("假日数据源查询失败",
			zap.String("date", DateKey(date)),
			zap.Int("source_index", i),
			zap.Error(err),
		)
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("无可用假日数据源")
	}
	return Result{}, lastErr
}

// CachedSource 在任意 Source 外层叠加 Redis 缓存
// rdb 为 nil 时直接透传（与 Token 黑名单的降级策略一致）
type CachedSource struct {
	inner  Source
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedSource 创建 CachedSource
func NewCachedSource(inner Source, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedSource {
	return &CachedSource{inner: inner, rdb: rdb, ttl: ttl, logger: logger}
}

const cachePrefix = "holiday:"

// Lookup 先查缓存，未命中时查询内层数据源并回写
// 仅缓存成功结果；查询失败不落缓存，避免把临时故障固化为"非假日"
func (s *CachedSource) Lookup(ctx context.Context, date time.Time) (Result, error) {
	if s.rdb == nil {
		return s.inner.Lookup(ctx, date)
	}

	key := cachePrefix + DateKey(date)
	if raw, ok, err := s.rdb.GetString(ctx, key); err == nil && ok {
		var cached Result
		if jsonErr := json.Unmarshal([]byte(raw), &cached); jsonErr == nil {
			return cached, nil
		}
		// 缓存内容损坏时当作未命中
	}

	result, err := s.inner.Lookup(ctx, date)
	if err != nil {
		return Result{}, err
	}

	if raw, jsonErr := json.Marshal(result); jsonErr == nil {
		if setErr := s.rdb.SetString(ctx, key, string(raw), s.ttl); setErr != nil {
			s.logger.Warn("假日缓存写入失败", zap.Error(setErr))
		}
	}

	return result, nil
}
