package xcond

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNewNilLockerPanics(t *testing.T) {
	assert.PanicsWithValue(t, "xcond: nil Locker", func() {
		New(nil)
	})
}

func TestSignalWakesOne(t *testing.T) {
	var mu sync.Mutex
	c := New(&mu)

	ready := false
	var woken atomic.Int32
	var wg sync.WaitGroup
	for range 3 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mu.Lock()
			for !ready {
				c.Wait()
			}
			mu.Unlock()
			woken.Add(1)
		}()
	}
	time.Sleep(50 * time.Millisecond)

	// 条件未变化时 Signal 唤醒一个等待者，它重新检查条件后继续等待
	c.Signal()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), woken.Load())

	mu.Lock()
	ready = true
	mu.Unlock()
	c.Broadcast()
	wg.Wait()
	assert.Equal(t, int32(3), woken.Load())
}

func TestBroadcastWakesAll(t *testing.T) {
	var mu sync.Mutex
	c := New(&mu)

	done := false
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mu.Lock()
			for !done {
				c.Wait()
			}
			mu.Unlock()
		}()
	}
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	done = true
	mu.Unlock()
	c.Broadcast()
	wg.Wait()
}

func TestWaitTimeout(t *testing.T) {
	var mu sync.Mutex
	c := New(&mu)

	mu.Lock()
	ok := c.WaitTimeout(50 * time.Millisecond)
	// 超时返回 false，且返回时重新持有锁
	mu.Unlock()
	assert.False(t, ok)
}

func TestWaitTimeoutSignaled(t *testing.T) {
	var mu sync.Mutex
	c := New(&mu)

	go func() {
		time.Sleep(20 * time.Millisecond)
		c.Signal()
	}()

	mu.Lock()
	ok := c.WaitTimeout(time.Second)
	mu.Unlock()
	assert.True(t, ok)
}

func TestWaitContextCancel(t *testing.T) {
	var mu sync.Mutex
	c := New(&mu)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	mu.Lock()
	err := c.WaitContext(ctx)
	mu.Unlock()
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWaitContextNilPanics(t *testing.T) {
	var mu sync.Mutex
	c := New(&mu)

	mu.Lock()
	defer mu.Unlock()
	assert.PanicsWithValue(t, "xcond: nil Context", func() {
		c.WaitContext(nil) //nolint:errcheck,staticcheck // 测试 nil ctx panic 行为
	})
}

// TestSignalHandoffOnTimeout 超时退出与 Signal 竞争时，唤醒转交给下一个等待者。
func TestSignalHandoffOnTimeout(t *testing.T) {
	var mu sync.Mutex
	c := New(&mu)

	// 第二个等待者：长等待，依赖转交的唤醒
	woken := make(chan struct{})
	go func() {
		mu.Lock()
		if c.WaitTimeout(5*time.Second) {
			close(woken)
		}
		mu.Unlock()
	}()
	time.Sleep(30 * time.Millisecond)

	// 第一个等待者：立即超时后，Signal 的唤醒不应丢失
	mu.Lock()
	c.WaitTimeout(time.Nanosecond)
	mu.Unlock()

	c.Signal()
	select {
	case <-woken:
	case <-time.After(time.Second):
		t.Fatal("handoff lost the wakeup")
	}
}

func TestSignalNoWaiters(t *testing.T) {
	var mu sync.Mutex
	c := New(&mu)

	// 无等待者时 Signal/Broadcast 是空操作，不应 panic
	c.Signal()
	c.Broadcast()
}
