package xqueue

import (
	"math"
	"testing"
)

func FuzzNew(f *testing.F) {
	f.Add(1)
	f.Add(0)
	f.Add(-1)
	f.Add(1024)
	f.Add(math.MaxInt32)

	f.Fuzz(func(t *testing.T, capacity int) {
		// 过大的容量会在 make 时耗尽内存，限制 fuzz 输入范围
		if capacity > 1<<20 {
			capacity = 1 << 20
		}
		q, err := New[int](capacity)
		if err != nil {
			// 非正容量应返回错误而非 panic
			if capacity > 0 {
				t.Fatalf("unexpected error for capacity=%d: %v", capacity, err)
			}
			return
		}
		defer q.Close() // fuzz 测试清理

		if got := q.Cap(); got != capacity {
			t.Fatalf("Cap() = %d, want %d", got, capacity)
		}
		for i := range min(capacity, 10) {
			q.TryEnqueue(i)
		}
	})
}
