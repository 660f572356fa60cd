package xsema

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNew(t *testing.T) {
	s, err := New(0)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Value())
	require.NoError(t, s.Close())

	s, err = New(3)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Value())
	require.NoError(t, s.Close())
}

func TestNewNegativeInitial(t *testing.T) {
	s, err := New(-1)
	assert.ErrorIs(t, err, ErrNegativeInitial)
	assert.Nil(t, s)
}

func TestWaitConsumesCount(t *testing.T) {
	s, err := New(2)
	require.NoError(t, err)
	defer s.Close() //nolint:errcheck // 测试清理

	require.NoError(t, s.Wait())
	require.NoError(t, s.Wait())
	assert.Equal(t, 0, s.Value())
}

func TestWaitBlocksUntilPost(t *testing.T) {
	s, err := New(0)
	require.NoError(t, err)
	defer s.Close() //nolint:errcheck // 测试清理

	woke := make(chan struct{})
	go func() {
		if err := s.Wait(); err == nil {
			close(woke)
		}
	}()

	// 没有 Post 之前不应被唤醒
	select {
	case <-woke:
		t.Fatal("Wait returned before Post")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, s.Post())

	select {
	case <-woke:
	case <-time.After(time.Second):
		t.Fatal("Wait not woken by Post")
	}
	assert.Equal(t, 0, s.Value())
}

func TestPostWakesExactlyOne(t *testing.T) {
	s, err := New(0)
	require.NoError(t, err)
	defer s.Close() //nolint:errcheck // 测试清理

	const waiters = 4
	var woken atomic.Int32
	started := make(chan struct{}, waiters)
	var wg sync.WaitGroup
	for range waiters {
		wg.Add(1)
		go func() {
			defer wg.Done()
			started <- struct{}{}
			if s.Wait() == nil {
				woken.Add(1)
			}
		}()
	}
	for range waiters {
		<-started
	}
	// 等待 goroutine 真正阻塞在 Wait 上
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, s.Post())
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), woken.Load())

	// 释放其余等待者
	require.NoError(t, s.PostN(waiters-1))
	wg.Wait()
	assert.Equal(t, int32(waiters), woken.Load())
	assert.Equal(t, 0, s.Value())
}

func TestTryWait(t *testing.T) {
	s, err := New(1)
	require.NoError(t, err)
	defer s.Close() //nolint:errcheck // 测试清理

	assert.True(t, s.TryWait())
	assert.False(t, s.TryWait())

	require.NoError(t, s.Post())
	assert.True(t, s.TryWait())
}

func TestPostNInvalidCount(t *testing.T) {
	s, err := New(0)
	require.NoError(t, err)
	defer s.Close() //nolint:errcheck // 测试清理

	assert.ErrorIs(t, s.PostN(0), ErrInvalidCount)
	assert.ErrorIs(t, s.PostN(-5), ErrInvalidCount)
}

func TestWaitContextCancel(t *testing.T) {
	s, err := New(0)
	require.NoError(t, err)
	defer s.Close() //nolint:errcheck // 测试清理

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err = s.WaitContext(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// 取消的等待者不应吞掉后续 Post 的计数
	require.NoError(t, s.Post())
	assert.Equal(t, 1, s.Value())
}

func TestWaitContextNilPanics(t *testing.T) {
	s, err := New(0)
	require.NoError(t, err)
	defer s.Close() //nolint:errcheck // 测试清理

	assert.PanicsWithValue(t, "xsema: nil Context", func() {
		s.WaitContext(nil) //nolint:errcheck,staticcheck // 测试 nil ctx panic 行为
	})
}

func TestCloseReleasesWaiters(t *testing.T) {
	s, err := New(0)
	require.NoError(t, err)

	const waiters = 3
	errs := make(chan error, waiters)
	for range waiters {
		go func() {
			errs <- s.Wait()
		}()
	}
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, s.Close())
	for range waiters {
		select {
		case err := <-errs:
			assert.ErrorIs(t, err, ErrClosed)
		case <-time.After(time.Second):
			t.Fatal("waiter not released by Close")
		}
	}
}

func TestCloseIdempotent(t *testing.T) {
	s, err := New(0)
	require.NoError(t, err)

	assert.NoError(t, s.Close())
	assert.ErrorIs(t, s.Close(), ErrClosed)
}

func TestOperationsAfterClose(t *testing.T) {
	s, err := New(1)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Wait(), ErrClosed)
	assert.ErrorIs(t, s.Post(), ErrClosed)
	assert.False(t, s.TryWait())
}

// TestCountMirrorInvariant 并发 Post/Wait 后计数与操作差值一致，
// 无重复计数也无丢失计数。
func TestCountMirrorInvariant(t *testing.T) {
	s, err := New(0)
	require.NoError(t, err)
	defer s.Close() //nolint:errcheck // 测试清理

	const (
		producers   = 4
		perProducer = 100
	)
	var wg sync.WaitGroup
	for range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perProducer {
				_ = s.Post()
			}
		}()
	}

	var consumed atomic.Int32
	for range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perProducer {
				if err := s.Wait(); err == nil {
					consumed.Add(1)
				}
			}
		}()
	}

	wg.Wait()
	assert.Equal(t, int32(producers*perProducer), consumed.Load())
	assert.Equal(t, 0, s.Value())
}
