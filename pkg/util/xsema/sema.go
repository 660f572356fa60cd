package xsema

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// 编译时接口检查
var _ io.Closer = (*Semaphore)(nil)

// waiter 表示一个阻塞在 Wait 上的 goroutine。
// granted 只在持有 Semaphore.mu 时由 Post 置位，随后 close(ready) 唤醒等待者。
// 取消路径通过 granted 判断许可是否已在取消的同一瞬间被授予，避免丢失计数。
type waiter struct {
	ready   chan struct{}
	granted bool
}

// Semaphore 是进程内计数信号量。
// 计数为 0 时 Wait 阻塞；Post 增加计数，若有等待者则精确唤醒一个（FIFO 次序）。
// 所有方法都是并发安全的。
type Semaphore struct {
	mu      sync.Mutex
	count   int
	waiters []*waiter
	closed  bool
	done    chan struct{} // Close 时关闭，释放所有等待者
}

// New 创建初始计数为 initial 的信号量。
// initial 必须非负，否则返回 [ErrNegativeInitial]。
func New(initial int) (*Semaphore, error) {
	if initial < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNegativeInitial, initial)
	}
	return &Semaphore{
		count: initial,
		done:  make(chan struct{}),
	}, nil
}

// Wait 阻塞直到计数大于 0，然后原子性地减一。
// 信号量被关闭时返回 [ErrClosed]（包括等待期间被关闭）。
func (s *Semaphore) Wait() error {
	return s.WaitContext(context.Background())
}

// WaitContext 与 Wait 相同，但支持 ctx 超时/取消。
// ctx 取消时返回 ctx.Err()。ctx 不得为 nil，否则 panic。
//
// 若取消与 Post 的授予同时发生，以授予为准返回 nil，
// 保证许可不会凭空消失（计数镜像不变量）。
func (s *Semaphore) WaitContext(ctx context.Context) error {
	if ctx == nil {
		panic("xsema: nil Context")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.count > 0 {
		s.count--
		s.mu.Unlock()
		return nil
	}
	w := &waiter{ready: make(chan struct{})}
	s.waiters = append(s.waiters, w)
	s.mu.Unlock()

	select {
	case <-w.ready:
		return nil
	case <-ctx.Done():
		return s.abandonWait(w, ctx.Err())
	case <-s.done:
		return s.abandonWait(w, ErrClosed)
	}
}

// abandonWait 处理等待被取消或信号量被关闭的退出路径。
// Post 可能恰好在同一瞬间授予了许可，此时视为获取成功。
func (s *Semaphore) abandonWait(w *waiter, cause error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w.granted {
		return nil
	}
	for i, cand := range s.waiters {
		if cand == w {
			s.waiters = append(s.waiters[:i], s.waiters[i+1:]...)
			break
		}
	}
	return cause
}

// TryWait 非阻塞地尝试减一。
// 计数大于 0 时减一并返回 true；计数为 0 或已关闭时返回 false。
func (s *Semaphore) TryWait() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.count == 0 {
		return false
	}
	s.count--
	return true
}

// Post 将计数加一。
// 若有 goroutine 阻塞在 Wait 中，则精确唤醒最早的一个（此时计数不变，
// 许可直接移交给被唤醒者）。已关闭时返回 [ErrClosed]。
func (s *Semaphore) Post() error {
	return s.PostN(1)
}

// PostN 将计数加 n，等价于连续 n 次 Post，但只加一次锁。
// n 必须为正，否则返回 [ErrInvalidCount]。
// 用于需要批量唤醒的场景（如关闭时每个消费者一次唤醒）。
func (s *Semaphore) PostN(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCount, n)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	for ; n > 0; n-- {
		if len(s.waiters) > 0 {
			w := s.waiters[0]
			s.waiters = s.waiters[1:]
			w.granted = true
			close(w.ready)
			continue
		}
		s.count++
	}
	return nil
}

// Value 返回当前计数（瞬时快照，仅用于监控和测试）。
// 并发场景下返回值可能立即过期。
func (s *Semaphore) Value() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Close 关闭信号量，释放所有阻塞中的等待者（它们收到 [ErrClosed]）。
// 第二次及后续调用返回 [ErrClosed]。
func (s *Semaphore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	s.closed = true
	s.waiters = nil
	close(s.done)
	return nil
}
