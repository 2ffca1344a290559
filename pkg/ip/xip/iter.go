package xip

import "iter"

// 惰性序列：Hosts/Subnets/IPs 都是拉取式、单遍的 [iter.Seq]，
// 每次调用方法返回全新的可重启序列，没有隐式缓存。
// IPv6 的大块（极端如 /0）地址数是天文数字，迭代器本身不设上限，
// 由调用方用 [CollectN] 之类的手段自行限量。

// Hosts 返回块内主机地址的惰性迭代器，升序逐个产出。
// 边界取舍规则与 [CIDR.FirstHost] 相同；排除边界后没有可用主机
// （/31、/32、/127、/128）返回 [ErrInvariant]。
func (c CIDR) Hosts(opts ...HostOption) (iter.Seq[Addr], error) {
	first, err := c.FirstHost(opts...)
	if err != nil {
		return nil, err
	}
	// FirstHost 成功时 LastHost 对相同选项必然成功。
	last, _ := c.LastHost(opts...)
	return addrSeq(first, last), nil
}

// Subnets 返回将块切分为前缀长度 newPrefix 的子块的惰性迭代器，
// 按网络地址升序产出 2^(newPrefix-prefix) 个子块，相邻子块相距
// 2^(bits-newPrefix)。newPrefix 必须严格大于当前前缀且不超过位宽，
// 否则返回 [ErrInvariant]。
func (c CIDR) Subnets(newPrefix int) (iter.Seq[CIDR], error) {
	if !c.IsValid() {
		return nil, errInvariant("cannot subnet the zero CIDR")
	}
	if newPrefix <= c.prefix || newPrefix > c.Bits() {
		return nil, errInvariant("subnet prefix %d (must be in (%d, %d])", newPrefix, c.prefix, c.Bits())
	}
	version := c.Version()
	bits := c.Bits()
	start := c.Network().value
	blockLast := c.last().value
	return func(yield func(CIDR) bool) {
		subHost := hostMask(newPrefix, bits)
		cur := start
		for {
			if !yield(CIDR{addr: Addr{value: cur, version: version}, prefix: newPrefix}) {
				return
			}
			subLast := cur.Or(subHost)
			if subLast.Cmp(blockLast) >= 0 {
				return
			}
			cur = subLast.Add(Uint128From64(1))
		}
	}, nil
}

// IPs 返回范围内全部地址的惰性迭代器，升序逐个产出。
// 无效范围返回空迭代器。
func (r Range) IPs() iter.Seq[Addr] {
	if !r.IsValid() {
		return func(yield func(Addr) bool) {}
	}
	return addrSeq(r.start, r.end)
}

// IPs 返回集合内全部地址的惰性迭代器，按成员范围顺序升序产出。
// limit > 0 时最多产出 limit 个地址；limit <= 0 表示不限量。
func (s RangeSet) IPs(limit int) iter.Seq[Addr] {
	ranges := s.ranges
	return func(yield func(Addr) bool) {
		count := 0
		for _, r := range ranges {
			for a := range addrSeq(r.start, r.end) {
				if limit > 0 && count >= limit {
					return
				}
				if !yield(a) {
					return
				}
				count++
			}
		}
	}
}

// addrSeq 返回 [from, to] 闭区间的升序地址迭代器。
// from > to 时为空迭代器。
func addrSeq(from, to Addr) iter.Seq[Addr] {
	return func(yield func(Addr) bool) {
		if from.Compare(to) > 0 {
			return
		}
		cur := from
		for {
			if !yield(cur) {
				return
			}
			if cur == to {
				return
			}
			// from <= to 且 cur < to，+1 不会越界。
			next, _ := cur.Next()
			cur = next
		}
	}
}

// CollectN 将迭代器中的元素收集到切片，最多收集 maxCount 个。
// maxCount <= 0 表示不限量（大范围枚举慎用，建议直接 [slices.Collect]）。
func CollectN[T any](seq iter.Seq[T], maxCount int) []T {
	var result []T
	if maxCount > 0 {
		// 预分配上限防止极端 maxCount 直接把内存打爆。
		result = make([]T, 0, min(maxCount, 1<<20))
	}
	count := 0
	for v := range seq {
		if maxCount > 0 && count >= maxCount {
			break
		}
		result = append(result, v)
		count++
	}
	return result
}
