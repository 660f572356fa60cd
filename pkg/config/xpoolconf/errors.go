package xpoolconf

import "errors"

var (
	// ErrEmptyPath 表示文件路径为空。
	ErrEmptyPath = errors.New("xpoolconf: empty path")

	// ErrUnsupportedFormat 表示不支持的配置格式。
	ErrUnsupportedFormat = errors.New("xpoolconf: unsupported format")

	// ErrLoadFailed 表示配置加载失败。
	ErrLoadFailed = errors.New("xpoolconf: load failed")

	// ErrUnmarshalFailed 表示配置反序列化失败。
	ErrUnmarshalFailed = errors.New("xpoolconf: unmarshal failed")

	// ErrInvalidConfig 表示配置取值无效。
	ErrInvalidConfig = errors.New("xpoolconf: invalid config")
)
