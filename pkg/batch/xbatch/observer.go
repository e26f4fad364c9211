package xbatch

import (
	"context"
	"time"
)

// Stats 是一次批量求值的统计结果。
type Stats struct {
	// Rows 是本批处理的总行数。
	Rows int

	// Failed 是失败的行数。
	Failed int

	// Duration 是整批处理耗时。
	Duration time.Duration
}

// Observer 定义批量指标观测接口。
type Observer interface {
	// ObserveBatch 在一批处理结束后记录统计结果。
	ObserveBatch(ctx context.Context, component string, stats Stats)
}

// NoopObserver 是空实现。
type NoopObserver struct{}

// ObserveBatch 空实现，不做任何处理。
func (NoopObserver) ObserveBatch(_ context.Context, _ string, _ Stats) {}
