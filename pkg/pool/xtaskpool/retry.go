package xtaskpool

import (
	"context"
	"time"

	retry "github.com/avast/retry-go/v5"
)

const (
	// defaultSubmitAttempts SubmitRetry 默认尝试次数（包含首次）
	defaultSubmitAttempts uint = 5
	// defaultSubmitDelay SubmitRetry 默认基础退避间隔
	defaultSubmitDelay = 10 * time.Millisecond
)

// SubmitRetry 提交任务，队列满被拒绝时按退避策略重试。
// Submit 的非阻塞拒绝语义不变，重试发生在调用方 goroutine 中。
//
// 默认最多尝试 5 次、基础间隔 10ms（retry-go 默认指数退避），
// 可通过 opts 传入 retry-go 原生选项覆盖。
// 池已停止时立即返回 [ErrPoolStopped]（不重试）；
// 重试耗尽返回 [ErrQueueFull]；ctx 取消返回 ctx 错误。
func (p *Pool) SubmitRetry(ctx context.Context, task Task, opts ...retry.Option) error {
	if ctx == nil {
		return ErrNilContext
	}

	base := []retry.Option{
		retry.Context(ctx),
		retry.Attempts(defaultSubmitAttempts),
		retry.Delay(defaultSubmitDelay),
		retry.LastErrorOnly(true),
	}
	return retry.New(append(base, opts...)...).Do(func() error {
		if p.stopped.Load() {
			return retry.Unrecoverable(ErrPoolStopped)
		}
		if !p.Submit(task) {
			return ErrQueueFull
		}
		return nil
	})
}
