package xip

import (
	"errors"
	"fmt"
)

// 预定义错误变量，支持 errors.Is 判断。
//
// 整个库只有四类错误，所有失败路径都通过 fmt.Errorf("%w: ...") 包装
// 其中一类并附带具体原因。下游包（xalloc、xtrie）复用同一组错误变量，
// 调用方可以跨包统一分流。
var (
	// ErrParse 表示文本、数值或字节输入在解析边界处格式非法
	// （地址、CIDR、范围均适用）。
	ErrParse = errors.New("xip: invalid input")

	// ErrVersionMismatch 表示一次操作同时收到了 IPv4 和 IPv6 操作数。
	ErrVersionMismatch = errors.New("xip: IP version mismatch")

	// ErrOutOfRange 表示数值参数（前缀长度、位索引、位宽、地址运算结果）
	// 超出了合法定义域。
	ErrOutOfRange = errors.New("xip: value out of range")

	// ErrInvariant 表示类型正确的操作对当前状态没有定义
	// （如 IPv6 的广播地址、/31、/32 上排除边界的主机枚举）。
	ErrInvariant = errors.New("xip: operation undefined for this state")
)

// 包内统一的错误包装入口，保证每条失败路径都带上错误类别和具体原因。

func errParse(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrParse, fmt.Sprintf(format, args...))
}

func errVersionMismatch(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrVersionMismatch, fmt.Sprintf(format, args...))
}

func errOutOfRange(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrOutOfRange, fmt.Sprintf(format, args...))
}

func errInvariant(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
}
