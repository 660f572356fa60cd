package xsema

import "errors"

var (
	// ErrClosed 表示信号量已关闭。
	// Close 后调用 Wait/Post 返回此错误；等待中的 goroutine 也会收到此错误。
	ErrClosed = errors.New("xsema: closed")

	// ErrNegativeInitial 表示初始计数为负。
	ErrNegativeInitial = errors.New("xsema: negative initial count")

	// ErrInvalidCount 表示 PostN 的参数非正。
	ErrInvalidCount = errors.New("xsema: count must be positive")
)
