package xalloc

import (
	"fmt"
	"math/big"

	"github.com/omeyang/ipkit/pkg/ip/xip"
)

// Allocator 在一个父 CIDR 块内做首次适配（first-fit）地址分配。
//
// 内部维护父块和已占用地址的规范化集合；每次分配/释放都整体替换
// 占用集合（不可变值的函数式更新），不在原地修改。
//
// Allocator 是可变容器，内部不加锁：多 goroutine 并发修改需要调用方
// 自行加锁，这是约定的使用契约。只读共享（构造后不再修改）是安全的。
type Allocator struct {
	parent xip.CIDR
	taken  xip.RangeSet
}

// New 创建分配器。taken 中的每个范围都必须完整落在 parent 的地址
// 跨度内，违反时返回 [xip.ErrParse]；版本混杂返回 [xip.ErrVersionMismatch]。
func New(parent xip.CIDR, taken ...xip.Range) (*Allocator, error) {
	if !parent.IsValid() {
		return nil, fmt.Errorf("%w: allocator parent must be a valid CIDR", xip.ErrInvariant)
	}
	set, err := xip.RangeSetOf(taken...)
	if err != nil {
		return nil, err
	}
	if !set.IsEmpty() && set.Version() != parent.Version() {
		return nil, fmt.Errorf("%w: parent is %s but taken ranges are %s",
			xip.ErrVersionMismatch, parent.Version(), set.Version())
	}
	span := parent.ToRange()
	for _, r := range set.Ranges() {
		if !span.ContainsRange(r) {
			return nil, fmt.Errorf("%w: taken range %s lies outside parent %s",
				xip.ErrParse, r, parent)
		}
	}
	return &Allocator{parent: parent, taken: set}, nil
}

// Parent 返回父块。
func (a *Allocator) Parent() xip.CIDR { return a.parent }

// Taken 返回已占用地址集合（不可变值，安全返回）。
func (a *Allocator) Taken() xip.RangeSet { return a.taken }

// Free 返回空闲地址集合：父块完整跨度减去已占用集合。
func (a *Allocator) Free() xip.RangeSet {
	full, _ := xip.RangeSetOf(a.parent.ToRange())
	// 占用集合的版本在构造与分配路径上已受校验，相减不会失败。
	free, _ := full.Subtract(a.taken)
	return free
}

// NextAvailable 返回第一个空闲地址，从父块的第一个可用主机地址
// 开始扫描（边界取舍按 [xip.CIDR.FirstHost] 的默认规则）。
// 没有空闲地址时返回 (零值, false)。只查询，不修改状态。
func (a *Allocator) NextAvailable() (xip.Addr, bool) {
	from, err := a.parent.FirstHost()
	if err != nil {
		return xip.Addr{}, false
	}
	return a.NextAvailableFrom(from)
}

// NextAvailableFrom 返回第一个 >= from 的空闲地址。
// from 版本不匹配或没有空闲地址时返回 (零值, false)。
func (a *Allocator) NextAvailableFrom(from xip.Addr) (xip.Addr, bool) {
	if from.Version() != a.parent.Version() {
		return xip.Addr{}, false
	}
	for _, r := range a.Free().Ranges() {
		if r.End().Compare(from) < 0 {
			continue
		}
		if r.Start().Compare(from) >= 0 {
			return r.Start(), true
		}
		// from 落在 r 内部。
		return from, true
	}
	return xip.Addr{}, false
}

// AllocateNext 分配并占用第一个空闲地址。
// 没有空闲地址时返回 (零值, false)。
func (a *Allocator) AllocateNext() (xip.Addr, bool) {
	addr, ok := a.NextAvailable()
	if !ok || !a.AllocateIP(addr) {
		return xip.Addr{}, false
	}
	return addr, true
}

// AllocateIP 占用单个地址。
// 地址在父块外或已被占用时返回 false，状态不变。
func (a *Allocator) AllocateIP(addr xip.Addr) bool {
	if !a.parent.Contains(addr) || a.taken.Contains(addr) {
		return false
	}
	a.taken = a.mergeRange(singleRange(addr))
	return true
}

// AllocateCIDR 占用一整个子块。
// 版本不匹配、块不完整落在父块内、或与既有占用有任何重叠时
// 返回 false，状态不变。
func (a *Allocator) AllocateCIDR(c xip.CIDR) bool {
	if c.Version() != a.parent.Version() || !a.parent.ContainsCIDR(c) {
		return false
	}
	block := c.ToRange()
	blockSet, _ := xip.RangeSetOf(block)
	overlap, _ := a.taken.Intersect(blockSet)
	if !overlap.IsEmpty() {
		return false
	}
	a.taken = a.mergeRange(block)
	return true
}

// ReleaseIP 释放单个地址。地址未被占用时返回 false。
func (a *Allocator) ReleaseIP(addr xip.Addr) bool {
	if !a.taken.Contains(addr) {
		return false
	}
	a.taken = a.subtractRange(singleRange(addr))
	return true
}

// ReleaseCIDR 释放一个子块覆盖的全部地址。
// 版本不匹配或块内没有任何已占用地址时返回 false。
// 块内只有部分地址被占用时同样全部释放并返回 true。
func (a *Allocator) ReleaseCIDR(c xip.CIDR) bool {
	if c.Version() != a.parent.Version() {
		return false
	}
	block := c.ToRange()
	blockSet, _ := xip.RangeSetOf(block)
	overlap, _ := a.taken.Intersect(blockSet)
	if overlap.IsEmpty() {
		return false
	}
	a.taken = a.subtractRange(block)
	return true
}

// FreeBlockOptions 配置空闲块搜索。
type FreeBlockOptions struct {
	// MinPrefix 只保留前缀长度 >= MinPrefix 的块（即不大于对应
	// 尺寸的块）。0 表示不过滤。
	MinPrefix int

	// MaxResults 结果数量上限。<= 0 表示不限量。
	MaxResults int
}

// FreeBlocks 返回空闲地址构成的对齐 CIDR 块，按地址升序。
// 每个空闲范围经最小覆盖分解（[xip.Range.ToCIDRs]）后按选项过滤。
func (a *Allocator) FreeBlocks(opts FreeBlockOptions) []xip.CIDR {
	var out []xip.CIDR
	for _, r := range a.Free().Ranges() {
		for _, c := range r.ToCIDRs() {
			if c.Prefix() < opts.MinPrefix {
				continue
			}
			out = append(out, c)
			if opts.MaxResults > 0 && len(out) >= opts.MaxResults {
				return out
			}
		}
	}
	return out
}

// Utilization 返回已占用地址数与父块总地址数之比。
//
// 总数超出 float64 可精确表示的整数范围（2^53）时，分子分母等量
// 右移直到分母放得下，比值近似不变。
func (a *Allocator) Utilization() float64 {
	taken := a.taken.Size()
	total := a.parent.Size()
	if shift := total.BitLen() - 53; shift > 0 {
		taken = new(big.Int).Rsh(taken, uint(shift))
		total = new(big.Int).Rsh(total, uint(shift))
	}
	// 父块至少含 1 个地址，右移后分母仍 >= 1。
	return float64(taken.Uint64()) / float64(total.Uint64())
}

// singleRange 构造单地址范围。调用方保证 addr 有效。
func singleRange(addr xip.Addr) xip.Range {
	r, _ := xip.RangeFrom(addr, addr)
	return r
}

// mergeRange 返回把 r 并入占用集合后的新集合。
// 调用方已保证版本一致，运算不会失败。
func (a *Allocator) mergeRange(r xip.Range) xip.RangeSet {
	rs, _ := xip.RangeSetOf(r)
	merged, _ := a.taken.Union(rs)
	return merged
}

// subtractRange 返回从占用集合中挖掉 r 后的新集合。
func (a *Allocator) subtractRange(r xip.Range) xip.RangeSet {
	rs, _ := xip.RangeSetOf(r)
	rest, _ := a.taken.Subtract(rs)
	return rest
}
