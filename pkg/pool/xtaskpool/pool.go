package xtaskpool

import (
	"context"
	"io"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/omeyang/xtask/pkg/util/xqueue"
)

// 编译时接口检查
var _ io.Closer = (*Pool)(nil)

// Pool 是固定规模的 worker 池。
// 固定数量的常驻 worker goroutine 从一个有界 FIFO 队列消费任务，
// 同时约束并发度（worker 数固定）和内存（队列深度有界）。
//
// 所有 worker 在 New 返回前全部就位（无惰性启动），
// 由池持有并在 Shutdown 时全部 join——不存在脱管的 worker。
type Pool struct {
	opts    options
	queue   *xqueue.Queue[Task]
	logger  *slog.Logger
	metrics *metrics

	wg      sync.WaitGroup
	stopped atomic.Bool
	done    chan struct{} // 所有 worker 退出后关闭
}

// New 创建并启动 worker 池。
// 配置无效时返回错误，此时没有任何 goroutine 被启动（无半成品池）。
func New(opts ...Option) (*Pool, error) {
	o := defaultOptions()
	for _, opt := range opts {
		// 与项目其他包一致：静默跳过 nil Option
		if opt == nil {
			continue
		}
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	q, err := xqueue.New[Task](o.capacity)
	if err != nil {
		return nil, err
	}
	m, err := newMetrics(o.meterProvider, o.name)
	if err != nil {
		return nil, err
	}

	p := &Pool{
		opts:    o,
		queue:   q,
		logger:  o.logger,
		metrics: m,
		done:    make(chan struct{}),
	}

	for range o.workers {
		p.wg.Add(1)
		go p.worker()
	}
	go func() {
		p.wg.Wait()
		close(p.done)
	}()
	return p, nil
}

// worker 是常驻工作循环：等待队列信号量、出队、在不持有队列锁的情况下执行。
// 队列关闭即终止信号；按关闭策略决定是否排空残留任务。
func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		task, err := p.queue.Dequeue(context.Background())
		if err != nil {
			break
		}
		p.runTask(task)
	}

	if p.opts.drain == DrainAll {
		for {
			task, ok := p.queue.TryDequeue()
			if !ok {
				break
			}
			p.runTask(task)
		}
	}
}

// runTask 执行单个任务。
// nil 任务被静默跳过；panic 被恢复并记录（含堆栈），
// 单个任务失败不杀死 worker，池的有效并发度保持不变。
func (p *Pool) runTask(task Task) {
	if task == nil {
		return
	}

	start := time.Now()
	panicked := false
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicked = true
				p.logger.Error("xtaskpool: task panic recovered",
					slog.String("pool", p.opts.name),
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())))
			}
		}()
		task.Execute()
	}()
	p.metrics.recordTask(context.Background(), time.Since(start), panicked)
}

// Submit 提交任务。
// 入队成功返回 true；队列满或池已停止返回 false——永不阻塞、永不 panic，
// 由调用方决定重试或丢弃。nil 任务会被接受并在执行阶段跳过。
//
// 任务所有权：提交成功后任务归队列持有，Execute 返回后池不再保留任何引用。
func (p *Pool) Submit(task Task) bool {
	if p.stopped.Load() {
		return false
	}

	ok := p.queue.TryEnqueue(task)
	p.metrics.recordSubmit(context.Background(), ok)
	if !ok && !p.stopped.Load() {
		p.logger.Warn("xtaskpool: queue full, task dropped",
			slog.String("pool", p.opts.name))
	}
	return ok
}

// Shutdown 停止池并等待所有 worker 退出。
// 关闭队列会释放所有阻塞在信号量等待中的 worker（等价于每个 worker 一次唤醒），
// 之后按 ctx 限时 join 全部 worker。残留任务按 WithDrainPolicy 处理。
//
// ctx 到期时返回 ctx 错误，残留 worker 仍在后台运行直到排空完成，
// 调用方可通过 Done() 等待它们最终退出。
// 第二次及后续调用返回 [ErrPoolStopped]。ctx 为 nil 时返回 [ErrNilContext]。
//
// 不可在任务内调用 Shutdown/Close，否则会死锁（worker 等待自身退出）。
func (p *Pool) Shutdown(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	if !p.stopped.CompareAndSwap(false, true) {
		return ErrPoolStopped
	}

	// Close 前入队的任务仍在缓冲区，由 worker 的排空路径处理
	_ = p.queue.Close()

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close 停止池并无限等待所有 worker 退出。
// 等价于 Shutdown(context.Background())。
func (p *Pool) Close() error {
	return p.Shutdown(context.Background())
}

// Done 返回所有 worker 退出后关闭的 channel。
// 用于 Shutdown 超时返回后等待残留 worker 最终完成。
func (p *Pool) Done() <-chan struct{} {
	return p.done
}

// Workers 返回 worker 数量。
func (p *Pool) Workers() int {
	return p.opts.workers
}

// Capacity 返回队列容量。
func (p *Pool) Capacity() int {
	return p.opts.capacity
}

// Name 返回池名称。
func (p *Pool) Name() string {
	return p.opts.name
}

// QueueLen 返回当前排队任务数（瞬时快照，仅用于监控）。
func (p *Pool) QueueLen() int {
	return p.queue.Len()
}
