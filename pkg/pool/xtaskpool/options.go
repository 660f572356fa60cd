package xtaskpool

import (
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/metric"
)

const (
	// DefaultWorkers 默认 worker 数量。
	DefaultWorkers = 8

	// DefaultCapacity 默认队列容量。
	DefaultCapacity = 10000

	maxWorkers  = 1 << 16 // 65536
	maxCapacity = 1 << 24 // 16777216
)

// DrainPolicy 决定关闭时如何处理已入队未执行的任务。
type DrainPolicy int

const (
	// DrainAll 关闭时执行完队列中的残留任务后再退出（默认）。
	DrainAll DrainPolicy = iota

	// DiscardPending 关闭时丢弃队列中的残留任务。
	DiscardPending
)

// String 返回策略名称，用于日志和配置。
func (p DrainPolicy) String() string {
	switch p {
	case DrainAll:
		return "drain_all"
	case DiscardPending:
		return "discard_pending"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}

// Option 定义 Pool 可选配置函数类型。
type Option func(*options)

type options struct {
	workers       int
	capacity      int
	logger        *slog.Logger
	name          string
	meterProvider metric.MeterProvider
	drain         DrainPolicy
}

func defaultOptions() options {
	return options{
		workers:  DefaultWorkers,
		capacity: DefaultCapacity,
		logger:   slog.Default(),
		drain:    DrainAll,
	}
}

// WithWorkers 设置 worker 数量。
// 必须在 [1, 65536] 内，否则 New 返回 [ErrInvalidWorkers]。默认 8。
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithCapacity 设置任务队列容量。
// 必须在 [1, 16777216] 内，否则 New 返回 [ErrInvalidCapacity]。默认 10000。
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithLogger 设置自定义日志记录器。
// 默认使用 slog.Default()。传入 nil 将被忽略，保持使用默认值。
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithName 设置池名称，用于在多实例场景下区分日志和指标来源。
// 默认为空字符串。
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithMeterProvider 设置 OpenTelemetry MeterProvider，启用指标收集。
// 默认 nil（不收集指标）。
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		o.meterProvider = mp
	}
}

// WithDrainPolicy 设置关闭时残留任务的处理策略。默认 [DrainAll]。
func WithDrainPolicy(p DrainPolicy) Option {
	return func(o *options) {
		o.drain = p
	}
}

func (o *options) validate() error {
	if o.workers < 1 || o.workers > maxWorkers {
		return fmt.Errorf("%w: must be in [1, %d], got %d",
			ErrInvalidWorkers, maxWorkers, o.workers)
	}
	if o.capacity < 1 || o.capacity > maxCapacity {
		return fmt.Errorf("%w: must be in [1, %d], got %d",
			ErrInvalidCapacity, maxCapacity, o.capacity)
	}
	if o.drain != DrainAll && o.drain != DiscardPending {
		return fmt.Errorf("%w: got %d", ErrInvalidDrainPolicy, int(o.drain))
	}
	return nil
}
