package xip

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// CIDR 表示一个地址加前缀长度构成的 2 的幂对齐地址块。
//
// 存储的地址可以是块内任意地址，不要求等于网络地址；
// [CIDR.Network] 按需推导规范网络地址，[CIDR.Masked] 返回归一化副本。
// CIDR 是不可变值类型，可直接比较（==，按存储地址和前缀逐字段比较）。
type CIDR struct {
	addr   Addr
	prefix int
}

// CIDRFrom 从地址和前缀长度创建 CIDR。
// addr 无效返回 [ErrInvariant]；prefix 超出 [0, bits] 返回 [ErrOutOfRange]。
func CIDRFrom(addr Addr, prefix int) (CIDR, error) {
	if !addr.IsValid() {
		return CIDR{}, errInvariant("cannot build a CIDR from the zero Addr")
	}
	if prefix < 0 || prefix > addr.Bits() {
		return CIDR{}, errOutOfRange("prefix length %d (must be in [0, %d])", prefix, addr.Bits())
	}
	return CIDR{addr: addr, prefix: prefix}, nil
}

// ParseCIDR 从 "address/prefixLength" 格式解析 CIDR。
// 输入会自动去除首尾空白。前缀长度必须是不带前导零的十进制数，
// 且不超过地址位宽。所有解析失败返回 [ErrParse]。
func ParseCIDR(s string) (CIDR, error) {
	s = strings.TrimSpace(s)
	idx := strings.IndexByte(s, '/')
	if idx < 0 {
		return CIDR{}, errParse("CIDR %q is missing '/'", s)
	}
	addr, err := ParseAddr(s[:idx])
	if err != nil {
		return CIDR{}, err
	}
	prefix, err := parsePrefixLen(s[idx+1:], addr.Bits())
	if err != nil {
		return CIDR{}, err
	}
	return CIDR{addr: addr, prefix: prefix}, nil
}

// MustParseCIDR 类似 [ParseCIDR]，但解析失败时 panic。
// 仅用于包级变量初始化或测试。
func MustParseCIDR(s string) CIDR {
	c, err := ParseCIDR(s)
	if err != nil {
		panic(fmt.Sprintf("xip.MustParseCIDR(%q): %v", s, err))
	}
	return c
}

// parsePrefixLen 解析十进制前缀长度并校验上界。
func parsePrefixLen(p string, bits int) (int, error) {
	if p == "" {
		return 0, errParse("empty prefix length")
	}
	if len(p) > 1 && p[0] == '0' {
		return 0, errParse("prefix length %q has a leading zero", p)
	}
	if len(p) > 3 {
		return 0, errParse("prefix length %q too long", p)
	}
	n := 0
	for i := 0; i < len(p); i++ {
		c := p[i]
		if c < '0' || c > '9' {
			return 0, errParse("prefix length %q contains non-digit character %q", p, c)
		}
		n = n*10 + int(c-'0')
	}
	if n > bits {
		return 0, errParse("prefix length %d exceeds address width %d", n, bits)
	}
	return n, nil
}

// IsValid 报告 c 是否为有效 CIDR。零值 CIDR{} 返回 false。
func (c CIDR) IsValid() bool { return c.addr.IsValid() }

// Addr 返回构造时存储的地址（不一定是网络地址）。
func (c CIDR) Addr() Addr { return c.addr }

// Prefix 返回前缀长度。
func (c CIDR) Prefix() int { return c.prefix }

// Version 返回 IP 版本。
func (c CIDR) Version() Version { return c.addr.version }

// Bits 返回地址位宽。
func (c CIDR) Bits() int { return c.addr.Bits() }

// Mask 返回前缀掩码数值。无效 CIDR 返回零值。
func (c CIDR) Mask() Uint128 {
	if !c.IsValid() {
		return Uint128{}
	}
	return prefixMask(c.prefix, c.Bits())
}

// HostMask 返回主机掩码数值。无效 CIDR 返回零值。
func (c CIDR) HostMask() Uint128 {
	if !c.IsValid() {
		return Uint128{}
	}
	return hostMask(c.prefix, c.Bits())
}

// Network 返回块的规范网络地址（最低地址）。
// 无效 CIDR 返回零值 Addr。
func (c CIDR) Network() Addr {
	if !c.IsValid() {
		return Addr{}
	}
	return Addr{value: c.addr.value.And(c.Mask()), version: c.addr.version}
}

// last 返回块内最高地址。调用方保证 c 有效。
func (c CIDR) last() Addr {
	return Addr{value: c.addr.value.Or(c.HostMask()), version: c.addr.version}
}

// Broadcast 返回块的广播地址（最高地址）。
// IPv6 没有广播的概念，返回 [ErrInvariant]。
func (c CIDR) Broadcast() (Addr, error) {
	if !c.IsValid() {
		return Addr{}, errInvariant("zero CIDR has no broadcast address")
	}
	if c.Version() == V6 {
		return Addr{}, errInvariant("IPv6 has no broadcast address")
	}
	return c.last(), nil
}

// Masked 返回存储地址归一化为网络地址的副本。
func (c CIDR) Masked() CIDR {
	if !c.IsValid() {
		return CIDR{}
	}
	return CIDR{addr: c.Network(), prefix: c.prefix}
}

// Size 返回块内地址总数（2^(bits-prefix)）。无效 CIDR 返回零值 big.Int。
func (c CIDR) Size() *big.Int {
	if !c.IsValid() {
		return new(big.Int)
	}
	return new(big.Int).Lsh(big.NewInt(1), uint(c.Bits()-c.prefix))
}

// HostOption 配置主机边界的取舍。
type HostOption func(*hostOptions)

type hostOptions struct {
	edges *bool
}

// WithEdges 显式指定是否把网络/广播地址计入主机。
//
// 不指定时按默认规则：IPv6 或前缀 >= 位宽-1（/31、/32、/127、/128
// 的点对点情形）时计入边界，其余 IPv4 块排除网络和广播地址。
func WithEdges(include bool) HostOption {
	return func(o *hostOptions) {
		o.edges = &include
	}
}

// includeEdges 解析选项并套用默认规则。
func (c CIDR) includeEdges(opts []HostOption) bool {
	var o hostOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.edges != nil {
		return *o.edges
	}
	return c.Version() == V6 || c.prefix >= c.Bits()-1
}

// FirstHost 返回块内第一个主机地址。
// 排除边界时（见 [WithEdges]）为网络地址 +1；/31、/32、/127、/128
// 排除边界后没有可用主机，返回 [ErrInvariant]。
func (c CIDR) FirstHost(opts ...HostOption) (Addr, error) {
	if !c.IsValid() {
		return Addr{}, errInvariant("zero CIDR has no hosts")
	}
	if c.includeEdges(opts) {
		return c.Network(), nil
	}
	if c.prefix >= c.Bits()-1 {
		return Addr{}, errInvariant("%s has no usable host when edges are excluded", c)
	}
	// 前缀 < 位宽-1 时块内至少 4 个地址，+1 不会越界。
	first, _ := c.Network().Next()
	return first, nil
}

// LastHost 返回块内最后一个主机地址。
// 排除边界时为最高地址 -1；参见 [CIDR.FirstHost]。
func (c CIDR) LastHost(opts ...HostOption) (Addr, error) {
	if !c.IsValid() {
		return Addr{}, errInvariant("zero CIDR has no hosts")
	}
	if c.includeEdges(opts) {
		return c.last(), nil
	}
	if c.prefix >= c.Bits()-1 {
		return Addr{}, errInvariant("%s has no usable host when edges are excluded", c)
	}
	last, _ := c.last().Prev()
	return last, nil
}

// Contains 报告地址是否落在块内：(addr & mask) == network。
// 版本不同或任一方无效返回 false。
func (c CIDR) Contains(a Addr) bool {
	if !c.IsValid() || a.version != c.addr.version {
		return false
	}
	return a.value.And(c.Mask()) == c.Network().value
}

// ContainsCIDR 报告另一个块是否完整落在本块内：
// 其网络地址和最高地址（计入边界）都必须被本块包含。
func (c CIDR) ContainsCIDR(o CIDR) bool {
	if !c.IsValid() || !o.IsValid() {
		return false
	}
	return c.Contains(o.Network()) && c.Contains(o.last())
}

// Overlaps 报告两个块是否有交集。对称，前缀长度可以不同：
// 任一方的网络地址按另一方（可能更短）的掩码归约后相等即有交集。
func (c CIDR) Overlaps(o CIDR) bool {
	if !c.IsValid() || !o.IsValid() || c.Version() != o.Version() {
		return false
	}
	return c.Network().value.And(o.Mask()) == o.Network().value ||
		o.Network().value.And(c.Mask()) == c.Network().value
}

// Split 将块急切切分为若干子网并返回前 parts 个。
//
// 设 2^k 是 >= parts 的最小 2 的幂，则子块前缀为当前前缀 +k；
// parts 为 1 时返回归一化的自身。parts <= 0 或子块前缀超过位宽
// 返回 [ErrInvariant]。
//
// 注意：结果是急切物化的切片，IPv6 上传入巨大的 parts 会耗尽内存，
// 需要规模化枚举时直接使用惰性的 [CIDR.Subnets]。
func (c CIDR) Split(parts int) ([]CIDR, error) {
	if !c.IsValid() {
		return nil, errInvariant("cannot split the zero CIDR")
	}
	if parts <= 0 {
		return nil, errInvariant("split parts %d (must be positive)", parts)
	}
	// k 以位宽封顶，防止极端 parts 导致移位溢出；越界由下方前缀检查兜底。
	k := 0
	for k <= c.Bits() && 1<<uint(k) < parts {
		k++
	}
	if k == 0 {
		return []CIDR{c.Masked()}, nil
	}
	newPrefix := c.prefix + k
	if newPrefix > c.Bits() {
		return nil, errInvariant("splitting %s into %d parts needs prefix %d beyond width %d",
			c, parts, newPrefix, c.Bits())
	}
	seq, err := c.Subnets(newPrefix)
	if err != nil {
		return nil, err
	}
	out := make([]CIDR, 0, parts)
	for sub := range seq {
		out = append(out, sub)
		if len(out) == parts {
			break
		}
	}
	return out, nil
}

// Move 将块平移 n 个块步长（块大小的整数倍）。
// n 可以为负。平移后的块超出版本地址空间时返回 [ErrOutOfRange]。
func (c CIDR) Move(n int64) (CIDR, error) {
	if !c.IsValid() {
		return CIDR{}, errInvariant("cannot move the zero CIDR")
	}
	step := new(big.Int).Lsh(big.NewInt(1), uint(c.Bits()-c.prefix))
	offset := step.Mul(step, big.NewInt(n))
	moved := offset.Add(offset, c.Network().BigInt())
	if moved.Sign() < 0 {
		return CIDR{}, errOutOfRange("moving %s by %d steps underflows the address space", c, n)
	}
	addr, err := AddrFromBigInt(moved, c.Version())
	if err != nil {
		return CIDR{}, errOutOfRange("moving %s by %d steps overflows the address space", c, n)
	}
	return CIDR{addr: addr, prefix: c.prefix}, nil
}

// ToRange 返回块覆盖的完整地址范围 [网络地址, 最高地址]。
// 无效 CIDR 返回零值 Range。
func (c CIDR) ToRange() Range {
	if !c.IsValid() {
		return Range{}
	}
	return Range{start: c.Network(), end: c.last()}
}

// Equal 报告两个 CIDR 的存储地址和前缀是否完全相同。
// 同一个块的不同表示（存储地址不同）不相等，需要时先 [CIDR.Masked]。
func (c CIDR) Equal(o CIDR) bool { return c == o }

// String 返回 "address/prefixLength" 文本，使用存储地址。
// 无效 CIDR 返回空字符串。
func (c CIDR) String() string {
	if !c.IsValid() {
		return ""
	}
	return c.addr.String() + "/" + strconv.Itoa(c.prefix)
}
