package xqueue

import "errors"

var (
	// ErrClosed 表示队列已关闭。
	// Close 后调用 Dequeue 返回此错误；等待中的消费者也会收到此错误。
	ErrClosed = errors.New("xqueue: closed")

	// ErrInvalidCapacity 表示容量非正。
	ErrInvalidCapacity = errors.New("xqueue: capacity must be positive")
)
