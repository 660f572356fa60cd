package xcond

import (
	"context"
	"sync"
	"time"
)

// Cond 是支持超时等待的条件变量。
// 与 sync.Cond 的差异仅在于提供 WaitContext/WaitTimeout；
// Wait/Signal/Broadcast 语义与 sync.Cond 一致。
//
// 调用 Wait 系列方法时必须持有 L；返回时（无论成功、超时还是取消）
// 均重新持有 L。
type Cond struct {
	// L 是条件关联的外部锁，Wait 挂起前释放、返回前重新获取。
	L sync.Locker

	mu      sync.Mutex // 保护 waiters
	waiters []chan struct{}
}

// New 创建关联锁 l 的条件变量。l 不得为 nil，否则 panic。
func New(l sync.Locker) *Cond {
	if l == nil {
		panic("xcond: nil Locker")
	}
	return &Cond{L: l}
}

// Wait 原子性地释放 L 并挂起当前 goroutine，直到被 Signal/Broadcast 唤醒，
// 返回前重新获取 L。
//
// 与 sync.Cond 相同，唤醒不保证条件成立，调用方应在循环中检查条件：
//
//	for !condition() {
//	    c.Wait()
//	}
func (c *Cond) Wait() {
	ch := c.enqueue()
	c.L.Unlock()
	<-ch
	c.L.Lock()
}

// WaitContext 与 Wait 相同，但支持 ctx 超时/取消，取消时返回 ctx.Err()。
// ctx 不得为 nil，否则 panic。任何返回路径都重新持有 L。
func (c *Cond) WaitContext(ctx context.Context) error {
	if ctx == nil {
		panic("xcond: nil Context")
	}
	ch := c.enqueue()
	c.L.Unlock()
	defer c.L.Lock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		c.abandon(ch)
		return ctx.Err()
	}
}

// WaitTimeout 与 Wait 相同，但最多等待 d。
// 被唤醒返回 true，超时返回 false（即原始原语的 timedwait 超时指示）。
func (c *Cond) WaitTimeout(d time.Duration) bool {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return c.WaitContext(ctx) == nil
}

// Signal 唤醒至多一个等待者（最早的一个）。无等待者时为空操作。
// 调用方无需持有 L。
func (c *Cond) Signal() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.waiters) == 0 {
		return
	}
	ch := c.waiters[0]
	c.waiters = c.waiters[1:]
	close(ch)
}

// Broadcast 唤醒所有等待者。调用方无需持有 L。
func (c *Cond) Broadcast() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, ch := range c.waiters {
		close(ch)
	}
	c.waiters = nil
}

func (c *Cond) enqueue() chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan struct{})
	c.waiters = append(c.waiters, ch)
	return ch
}

// abandon 取消一次等待。
// 若 Signal 已恰好选中该等待者（不在队列中），把唤醒转交给下一个等待者，
// 避免丢失唤醒。
func (c *Cond) abandon(ch chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, cand := range c.waiters {
		if cand == ch {
			c.waiters = append(c.waiters[:i], c.waiters[i+1:]...)
			return
		}
	}
	if len(c.waiters) > 0 {
		next := c.waiters[0]
		c.waiters = c.waiters[1:]
		close(next)
	}
}
