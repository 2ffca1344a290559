package xalloc

import "errors"

// 地址池定义文件加载相关错误。
var (
	// ErrEmptyPath 表示地址池定义文件路径为空。
	ErrEmptyPath = errors.New("xalloc: empty pool file path")

	// ErrUnsupportedFormat 表示不支持的定义文件格式。
	ErrUnsupportedFormat = errors.New("xalloc: unsupported pool file format")

	// ErrLoadFailed 表示定义文件读取失败。
	ErrLoadFailed = errors.New("xalloc: failed to load pool file")

	// ErrParseFailed 表示定义文件解析失败。
	ErrParseFailed = errors.New("xalloc: failed to parse pool file")

	// ErrDuplicatePool 表示定义文件中出现同名地址池。
	ErrDuplicatePool = errors.New("xalloc: duplicate pool name")
)
