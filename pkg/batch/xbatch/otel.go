package xbatch

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	defaultInstrumentationName = "github.com/omeyang/ipkit/xbatch"

	metricRowsTotal     = "ipkit.batch.rows.total"
	metricBatchDuration = "ipkit.batch.duration"

	statusOK    = "ok"
	statusError = "error"
)

type otelConfig struct {
	instrumentationName string
	meterProvider       metric.MeterProvider
}

// OTelOption 定义 OTel Observer 的配置选项。
type OTelOption func(*otelConfig)

// WithInstrumentationName 设置 OTel instrumentation 名称。
func WithInstrumentationName(name string) OTelOption {
	return func(cfg *otelConfig) {
		if name != "" {
			cfg.instrumentationName = name
		}
	}
}

// WithMeterProvider 设置 MeterProvider。nil 时使用全局默认。
func WithMeterProvider(provider metric.MeterProvider) OTelOption {
	return func(cfg *otelConfig) {
		if provider != nil {
			cfg.meterProvider = provider
		}
	}
}

// otelObserver 是基于 OpenTelemetry 的 Observer 实现。
type otelObserver struct {
	rows     metric.Int64Counter
	duration metric.Float64Histogram
}

// NewOTelObserver 创建基于 OpenTelemetry 的批量指标观测器。
// 记录每批的行数（按 ok/error 状态分开计数）和整批耗时。
func NewOTelObserver(opts ...OTelOption) (Observer, error) {
	cfg := &otelConfig{
		instrumentationName: defaultInstrumentationName,
		meterProvider:       otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	meter := cfg.meterProvider.Meter(cfg.instrumentationName)

	rows, err := meter.Int64Counter(
		metricRowsTotal,
		metric.WithDescription("rows processed by batch evaluation"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("xbatch: create rows counter failed: %w", err)
	}

	duration, err := meter.Float64Histogram(
		metricBatchDuration,
		metric.WithDescription("batch evaluation duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("xbatch: create duration histogram failed: %w", err)
	}

	return &otelObserver{rows: rows, duration: duration}, nil
}

// ObserveBatch 记录一批的行计数和耗时指标。
func (o *otelObserver) ObserveBatch(ctx context.Context, component string, stats Stats) {
	if ctx == nil {
		ctx = context.Background()
	}
	comp := attribute.String("component", component)

	ok := int64(stats.Rows - stats.Failed)
	if ok > 0 {
		o.rows.Add(ctx, ok, metric.WithAttributes(comp, attribute.String("status", statusOK)))
	}
	if stats.Failed > 0 {
		o.rows.Add(ctx, int64(stats.Failed), metric.WithAttributes(comp, attribute.String("status", statusError)))
	}
	o.duration.Record(ctx, stats.Duration.Seconds(), metric.WithAttributes(comp))
}
