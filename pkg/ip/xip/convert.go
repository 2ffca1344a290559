package xip

import (
	"net/netip"

	"go4.org/netipx"
)

// 与标准库 [net/netip] 和社区库 [go4.org/netipx] 的互转层。
// 生态中的大量代码以 netip.Addr / netip.Prefix / netipx.IPRange 为通货，
// 这里提供双向转换，既方便混用也作为测试中的交叉校验参照。

// AddrFromNetip 从 [netip.Addr] 创建地址。
//
// IPv4-mapped IPv6 地址（::ffff:a.b.c.d）按语义版本归一化为纯 IPv4，
// 与本库其余部分保持一致。无效地址返回 [ErrParse]。
//
// 设计决策: 携带 zone ID 的地址直接拒绝——本库的数值模型无法保留
// zone 信息，静默丢弃会导致范围/集合匹配误判。
func AddrFromNetip(a netip.Addr) (Addr, error) {
	if !a.IsValid() {
		return Addr{}, errParse("invalid netip.Addr")
	}
	if a.Zone() != "" {
		return Addr{}, errParse("IPv6 zone ID is not supported: %q", a.String())
	}
	if a.Is4() || a.Is4In6() {
		return AddrFrom4(a.Unmap().As4()), nil
	}
	return AddrFrom16(a.As16()), nil
}

// Netip 返回等值的 [netip.Addr]。无效地址返回 (零值, false)。
func (a Addr) Netip() (netip.Addr, bool) {
	switch a.version {
	case V4:
		b, _ := a.As4()
		return netip.AddrFrom4(b), true
	case V6:
		return netip.AddrFrom16(a.value.Bytes16()), true
	default:
		return netip.Addr{}, false
	}
}

// CIDRFromPrefix 从 [netip.Prefix] 创建 CIDR（保留存储地址，不归一化）。
// 无效 Prefix 返回 [ErrParse]。
func CIDRFromPrefix(p netip.Prefix) (CIDR, error) {
	if !p.IsValid() {
		return CIDR{}, errParse("invalid netip.Prefix")
	}
	addr, err := AddrFromNetip(p.Addr())
	if err != nil {
		return CIDR{}, err
	}
	return CIDRFrom(addr, p.Bits())
}

// NetipPrefix 返回等值的 [netip.Prefix]。无效 CIDR 返回 (零值, false)。
func (c CIDR) NetipPrefix() (netip.Prefix, bool) {
	addr, ok := c.addr.Netip()
	if !ok {
		return netip.Prefix{}, false
	}
	return netip.PrefixFrom(addr, c.prefix), true
}

// RangeFromIPRange 从 [netipx.IPRange] 创建范围。
// 无效 IPRange 返回 [ErrParse]。
func RangeFromIPRange(r netipx.IPRange) (Range, error) {
	if !r.IsValid() {
		return Range{}, errParse("invalid netipx.IPRange")
	}
	start, err := AddrFromNetip(r.From())
	if err != nil {
		return Range{}, err
	}
	end, err := AddrFromNetip(r.To())
	if err != nil {
		return Range{}, err
	}
	return RangeFrom(start, end)
}

// IPRange 返回等值的 [netipx.IPRange]。无效范围返回 (零值, false)。
func (r Range) IPRange() (netipx.IPRange, bool) {
	from, ok1 := r.start.Netip()
	to, ok2 := r.end.Netip()
	if !ok1 || !ok2 {
		return netipx.IPRange{}, false
	}
	return netipx.IPRangeFrom(from, to), true
}

// IPSet 返回等值的 [*netipx.IPSet]，便于与基于 netipx 的代码协作。
// 空集合返回空的 IPSet（非 nil）。
func (s RangeSet) IPSet() (*netipx.IPSet, error) {
	var b netipx.IPSetBuilder
	for _, r := range s.ranges {
		// 成员范围由构造函数保证有效，转换不会失败。
		ir, _ := r.IPRange()
		b.AddRange(ir)
	}
	set, err := b.IPSet()
	if err != nil {
		return nil, errParse("build IPSet: %v", err)
	}
	return set, nil
}

// RangeSetFromIPSet 从 [*netipx.IPSet] 创建集合。
// set 为 nil 返回空集合；版本混杂返回 [ErrVersionMismatch]。
func RangeSetFromIPSet(set *netipx.IPSet) (RangeSet, error) {
	if set == nil {
		return RangeSet{}, nil
	}
	ipRanges := set.Ranges()
	ranges := make([]Range, 0, len(ipRanges))
	for _, ir := range ipRanges {
		r, err := RangeFromIPRange(ir)
		if err != nil {
			return RangeSet{}, err
		}
		ranges = append(ranges, r)
	}
	return RangeSetOf(ranges...)
}
