package xqueue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/omeyang/xtask/pkg/util/xsema"
)

// 编译时接口检查
var _ io.Closer = (*Queue[any])(nil)

// Queue 是有界 FIFO 队列。
// 内部用互斥锁保护环形缓冲区，并用 xsema 计数信号量镜像待消费条目数：
// TryEnqueue 在追加后 Post 一次，Dequeue 先等待信号量再加锁取队首。
// 锁不对外暴露，正确性不依赖调用方的加解锁配对。
type Queue[T any] struct {
	mu   sync.Mutex
	buf  []T
	head int
	size int

	sem    *xsema.Semaphore
	closed atomic.Bool
}

// New 创建容量为 capacity 的队列。
// capacity 必须为正，否则返回 [ErrInvalidCapacity]。
func New[T any](capacity int) (*Queue[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	sem, err := xsema.New(0)
	if err != nil {
		return nil, err
	}
	return &Queue[T]{
		buf: make([]T, capacity),
		sem: sem,
	}, nil
}

// TryEnqueue 尝试入队。
// 队列满或已关闭时返回 false——非阻塞拒绝，无背压等待，由调用方决定重试或丢弃。
// 满队列是正常控制流结果，不是错误。
func (q *Queue[T]) TryEnqueue(v T) bool {
	if q.closed.Load() {
		return false
	}

	q.mu.Lock()
	if q.size == len(q.buf) {
		q.mu.Unlock()
		return false
	}
	q.buf[(q.head+q.size)%len(q.buf)] = v
	q.size++
	q.mu.Unlock()

	// 解锁之后、返回之前 Post：不在持锁期间做唤醒（缩短临界区），
	// 但必须在返回前完成，保证后续提交者观察到的长度相对并发消费者无竞态。
	// Post 仅在与 Close 竞态时失败，此时条目留在缓冲区，由 TryDequeue 排空路径回收。
	_ = q.sem.Post()
	return true
}

// Dequeue 阻塞等待并弹出队首条目。
// 内部处理虚假唤醒（信号量被唤醒但队列为空时继续等待），
// 因此返回 nil 错误时必然取到条目。
// 队列关闭后返回 [ErrClosed]；ctx 取消时返回 ctx.Err()。
// ctx 不得为 nil，否则 panic。
func (q *Queue[T]) Dequeue(ctx context.Context) (T, error) {
	var zero T
	if ctx == nil {
		panic("xqueue: nil Context")
	}

	for {
		if err := q.sem.WaitContext(ctx); err != nil {
			if errors.Is(err, xsema.ErrClosed) {
				return zero, ErrClosed
			}
			return zero, err
		}

		q.mu.Lock()
		if q.size == 0 {
			// 关闭唤醒或取消竞态遗留的计数：继续等待
			q.mu.Unlock()
			continue
		}
		v := q.buf[q.head]
		q.buf[q.head] = zero // 释放引用，避免滞留
		q.head = (q.head + 1) % len(q.buf)
		q.size--
		q.mu.Unlock()
		return v, nil
	}
}

// TryDequeue 非阻塞地弹出队首条目，队列为空时返回 false。
//
// 设计决策: 不与信号量配对消费。TryDequeue 服务于 Close 之后的排空
// （此时信号量已关闭，残留计数不再有观察者）；在未关闭的队列上混用
// TryDequeue 与 Dequeue 会使信号量计数偏离队列长度，属调用方错误。
func (q *Queue[T]) TryDequeue() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	if q.size == 0 {
		return zero, false
	}
	v := q.buf[q.head]
	q.buf[q.head] = zero
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	return v, true
}

// Len 返回当前长度（瞬时快照）。
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

// Cap 返回容量。
func (q *Queue[T]) Cap() int {
	return len(q.buf)
}

// Close 关闭队列：后续 TryEnqueue 返回 false，
// 所有阻塞在 Dequeue 的 goroutine 被释放并收到 [ErrClosed]。
// 已入队未消费的条目保留在缓冲区，可经 TryDequeue 排空。
// 第二次及后续调用返回 [ErrClosed]。
func (q *Queue[T]) Close() error {
	if !q.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	return q.sem.Close()
}
