package xtaskpool

import "errors"

var (
	// ErrInvalidWorkers 表示 worker 数量超出有效范围。
	ErrInvalidWorkers = errors.New("xtaskpool: invalid worker count")

	// ErrInvalidCapacity 表示队列容量超出有效范围。
	ErrInvalidCapacity = errors.New("xtaskpool: invalid queue capacity")

	// ErrInvalidDrainPolicy 表示关闭策略取值无效。
	ErrInvalidDrainPolicy = errors.New("xtaskpool: invalid drain policy")

	// ErrPoolStopped 表示池已停止。
	// 第二次 Close/Shutdown 以及停止后的 SubmitRetry 返回此错误。
	ErrPoolStopped = errors.New("xtaskpool: pool is stopped")

	// ErrQueueFull 表示任务队列已满。
	// 仅由 SubmitRetry 返回；Submit 用布尔值表达同一事实。
	ErrQueueFull = errors.New("xtaskpool: queue is full")

	// ErrNilContext 表示 context 参数为 nil。
	ErrNilContext = errors.New("xtaskpool: nil context")
)
