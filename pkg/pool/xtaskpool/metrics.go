package xtaskpool

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// 设计决策: 指标前缀使用 "xtaskpool.*"，与 OTel Meter scope name 保持一致
// （Meter("xtaskpool")），避免与 scope 名称产生冗余嵌套。
const (
	// metricNameSubmitTotal 任务提交次数计数器（含被拒绝的提交）
	metricNameSubmitTotal = "xtaskpool.submit.total"
	// metricNamePanicTotal 任务 panic 次数计数器
	metricNamePanicTotal = "xtaskpool.task.panic.total"
	// metricNameTaskDuration 任务执行耗时直方图
	metricNameTaskDuration = "xtaskpool.task.duration"
)

// 指标标签名
const (
	attrPool     = "pool"
	attrAccepted = "accepted"
)

// durationBuckets 任务执行耗时直方图的桶边界
var durationBuckets = []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1.0, 5.0, 30.0}

// metrics 池指标收集器。nil 接收者安全（不收集指标）。
type metrics struct {
	submitTotal  metric.Int64Counter
	panicTotal   metric.Int64Counter
	taskDuration metric.Float64Histogram
	poolAttr     attribute.KeyValue
}

// newMetrics 创建指标收集器。
// meterProvider 为 nil 时返回 nil（不收集指标）。
func newMetrics(mp metric.MeterProvider, poolName string) (*metrics, error) {
	if mp == nil {
		return nil, nil
	}

	meter := mp.Meter("xtaskpool")
	m := &metrics{
		poolAttr: attribute.String(attrPool, poolName),
	}

	var err error
	if m.submitTotal, err = meter.Int64Counter(metricNameSubmitTotal,
		metric.WithDescription("任务提交次数"), metric.WithUnit("{submit}")); err != nil {
		return nil, err
	}
	if m.panicTotal, err = meter.Int64Counter(metricNamePanicTotal,
		metric.WithDescription("任务 panic 次数"), metric.WithUnit("{panic}")); err != nil {
		return nil, err
	}
	if m.taskDuration, err = meter.Float64Histogram(metricNameTaskDuration,
		metric.WithDescription("任务执行耗时"), metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...)); err != nil {
		return nil, err
	}
	return m, nil
}

// recordSubmit 记录一次提交结果。
func (m *metrics) recordSubmit(ctx context.Context, accepted bool) {
	if m == nil {
		return
	}
	m.submitTotal.Add(ctx, 1, metric.WithAttributes(
		m.poolAttr,
		attribute.Bool(attrAccepted, accepted),
	))
}

// recordTask 记录一次任务执行。
func (m *metrics) recordTask(ctx context.Context, duration time.Duration, panicked bool) {
	if m == nil {
		return
	}
	if panicked {
		m.panicTotal.Add(ctx, 1, metric.WithAttributes(m.poolAttr))
	}
	m.taskDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(m.poolAttr))
}
