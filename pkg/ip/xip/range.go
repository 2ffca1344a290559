package xip

import (
	"fmt"
	"math/big"
	"strings"
)

// Range 表示一个闭区间地址范围 [start, end]。
//
// 不变量：start <= end 且两端版本相同，由构造函数保证。
// Range 是不可变值类型，可直接比较（==）。零值表示无效范围。
type Range struct {
	start, end Addr
}

// RangeFrom 从起止地址创建范围。
// 两端版本不同返回 [ErrVersionMismatch]；start > end 或任一端无效
// 返回 [ErrInvariant]。
func RangeFrom(start, end Addr) (Range, error) {
	if !start.IsValid() || !end.IsValid() {
		return Range{}, errInvariant("range endpoints must be valid addresses")
	}
	if start.version != end.version {
		return Range{}, errVersionMismatch("range endpoints %s and %s", start, end)
	}
	if start.Compare(end) > 0 {
		return Range{}, errInvariant("range start %s is after end %s", start, end)
	}
	return Range{start: start, end: end}, nil
}

// ParseRange 从 "start-end" 格式解析范围（分隔符两侧的空白会被忽略，
// "start - end" 同样可以接受）。版本必须一致。
// 地址中不含 '-'，因此按第一个 '-' 拆分是安全的。
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	idx := strings.IndexByte(s, '-')
	if idx < 0 {
		return Range{}, errParse("range %q is missing '-'", s)
	}
	start, err := ParseAddr(s[:idx])
	if err != nil {
		return Range{}, fmt.Errorf("invalid range start: %w", err)
	}
	end, err := ParseAddr(s[idx+1:])
	if err != nil {
		return Range{}, fmt.Errorf("invalid range end: %w", err)
	}
	return RangeFrom(start, end)
}

// MustParseRange 类似 [ParseRange]，但解析失败时 panic。
// 仅用于包级变量初始化或测试。
func MustParseRange(s string) Range {
	r, err := ParseRange(s)
	if err != nil {
		panic(fmt.Sprintf("xip.MustParseRange(%q): %v", s, err))
	}
	return r
}

// IsValid 报告 r 是否为有效范围。零值 Range{} 返回 false。
func (r Range) IsValid() bool { return r.start.IsValid() }

// Start 返回范围起点。
func (r Range) Start() Addr { return r.start }

// End 返回范围终点（含）。
func (r Range) End() Addr { return r.end }

// Version 返回 IP 版本。无效范围返回 V0。
func (r Range) Version() Version { return r.start.version }

// Size 返回范围包含的地址数量（end - start + 1）。
// 无效范围返回零值 big.Int。
func (r Range) Size() *big.Int {
	if !r.IsValid() {
		return new(big.Int)
	}
	size := r.end.value.Sub(r.start.value).BigInt()
	return size.Add(size, big.NewInt(1))
}

// Contains 报告地址是否落在范围内。版本不同返回 false。
func (r Range) Contains(a Addr) bool {
	if !r.IsValid() || a.version != r.start.version {
		return false
	}
	return r.start.value.Cmp(a.value) <= 0 && a.value.Cmp(r.end.value) <= 0
}

// ContainsRange 报告另一个范围是否完整落在本范围内。
func (r Range) ContainsRange(o Range) bool {
	if !r.IsValid() || !o.IsValid() {
		return false
	}
	return r.Contains(o.start) && r.Contains(o.end)
}

// Overlaps 报告两个范围是否有交集。版本不同返回 false。
func (r Range) Overlaps(o Range) bool {
	if !r.IsValid() || !o.IsValid() || r.Version() != o.Version() {
		return false
	}
	return r.start.value.Cmp(o.end.value) <= 0 && o.start.value.Cmp(r.end.value) <= 0
}

// ToCIDRs 将范围分解为最小数量、恰好覆盖的 CIDR 块，按地址升序返回。
//
// 从起点开始反复取 [MaxAlignedBlock]：产出块、越过块尾，直到越过终点。
// 任何范围都可以这样表示为若干 CIDR 的并集。无效范围返回 nil。
func (r Range) ToCIDRs() []CIDR {
	if !r.IsValid() {
		return nil
	}
	version := r.Version()
	bits := version.Bits()
	var out []CIDR
	cur := r.start.value
	for {
		// 范围端点已受构造函数约束，cur <= end 恒成立，错误不可达。
		block, ok, _ := MaxAlignedBlock(cur, r.end.value, bits)
		if !ok {
			break
		}
		out = append(out, CIDR{
			addr:   Addr{value: block.Start, version: version},
			prefix: block.Prefix,
		})
		blockLast := block.Start.Or(hostMask(block.Prefix, bits))
		if blockLast.Cmp(r.end.value) >= 0 {
			break
		}
		cur = blockLast.Add(Uint128From64(1))
	}
	return out
}

// Equal 报告两个范围的端点是否完全相同。
func (r Range) Equal(o Range) bool { return r == o }

// String 返回 "start-end" 文本。无效范围返回空字符串。
func (r Range) String() string {
	if !r.IsValid() {
		return ""
	}
	return r.start.String() + "-" + r.end.String()
}
