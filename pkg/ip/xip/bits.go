package xip

// 位掩码数值核心：所有函数以显式位宽（32 或 128）为参数，
// 供地址、CIDR、范围各层复用。位宽非法或前缀越界返回 [ErrOutOfRange]。

// validWidth 报告 width 是否为受支持的地址位宽。
func validWidth(width int) bool {
	return width == BitsV4 || width == BitsV6
}

// onesOf 返回 width 位全 1 的值。调用方保证 width 合法。
func onesOf(width int) Uint128 {
	if width == BitsV6 {
		return Uint128{hi: ^uint64(0), lo: ^uint64(0)}
	}
	return Uint128{lo: 1<<32 - 1}
}

// checkMaskArgs 校验位宽和前缀长度。
func checkMaskArgs(prefix, width int) error {
	if !validWidth(width) {
		return errOutOfRange("bit width %d (must be 32 or 128)", width)
	}
	if prefix < 0 || prefix > width {
		return errOutOfRange("prefix length %d (must be in [0, %d])", prefix, width)
	}
	return nil
}

// checkValue 校验地址数值不超出 width 位。
func checkValue(v Uint128, width int) error {
	if v.Cmp(onesOf(width)) > 0 {
		return errOutOfRange("address value %s does not fit in %d bits", v, width)
	}
	return nil
}

// PrefixMask 返回高 prefix 位为 1、其余为 0 的前缀掩码（限定在 width 位内）。
func PrefixMask(prefix, width int) (Uint128, error) {
	if err := checkMaskArgs(prefix, width); err != nil {
		return Uint128{}, err
	}
	return prefixMask(prefix, width), nil
}

// HostMask 返回前缀掩码的按位补码（限定在 width 位内）。
func HostMask(prefix, width int) (Uint128, error) {
	if err := checkMaskArgs(prefix, width); err != nil {
		return Uint128{}, err
	}
	return hostMask(prefix, width), nil
}

// prefixMask 不做参数校验的前缀掩码。调用方保证参数合法。
func prefixMask(prefix, width int) Uint128 {
	ones := onesOf(width)
	return ones.Xor(ones.Rsh(uint(prefix)))
}

// hostMask 不做参数校验的主机掩码。调用方保证参数合法。
func hostMask(prefix, width int) Uint128 {
	return onesOf(width).Rsh(uint(prefix))
}

// NetworkOf 返回 v 与前缀掩码按位与的结果，即所在块的网络地址数值。
func NetworkOf(v Uint128, prefix, width int) (Uint128, error) {
	if err := checkMaskArgs(prefix, width); err != nil {
		return Uint128{}, err
	}
	if err := checkValue(v, width); err != nil {
		return Uint128{}, err
	}
	return v.And(prefixMask(prefix, width)), nil
}

// BroadcastOf 返回 v 与主机掩码按位或的结果，即所在块的最高地址数值。
func BroadcastOf(v Uint128, prefix, width int) (Uint128, error) {
	if err := checkMaskArgs(prefix, width); err != nil {
		return Uint128{}, err
	}
	if err := checkValue(v, width); err != nil {
		return Uint128{}, err
	}
	return v.Or(hostMask(prefix, width)), nil
}

// AlignedBlock 描述一个 2 的幂对齐、2 的幂大小的地址块。
// Start 是块首地址，Prefix 是块对应的前缀长度（块大小为 2^(width-Prefix)）。
type AlignedBlock struct {
	Prefix int
	Start  Uint128
}

// MaxAlignedBlock 返回完全落在 [start, end] 内、以 start 开头的最大对齐块。
//
// 从最大块（前缀 0）到最小块（前缀 width）依次尝试，返回第一个满足
// "start 是块大小的整数倍，且 start + 块大小 - 1 <= end" 的块。
// 这是范围转最小 CIDR 覆盖的基础构件。
//
// 仅当 end < start 时 ok 为 false；start <= end 时必然存在结果
// （最差情况为单地址块，前缀 = width）。
// 位宽非法或数值超出位宽返回 [ErrOutOfRange]。
func MaxAlignedBlock(start, end Uint128, width int) (block AlignedBlock, ok bool, err error) {
	if !validWidth(width) {
		return AlignedBlock{}, false, errOutOfRange("bit width %d (must be 32 or 128)", width)
	}
	if err := checkValue(start, width); err != nil {
		return AlignedBlock{}, false, err
	}
	if err := checkValue(end, width); err != nil {
		return AlignedBlock{}, false, err
	}
	if end.Cmp(start) < 0 {
		return AlignedBlock{}, false, nil
	}
	for p := 0; p <= width; p++ {
		hm := hostMask(p, width)
		// 对齐：start 的主机位全零；容纳：块尾不超过 end。
		if start.And(hm).IsZero() && start.Or(hm).Cmp(end) <= 0 {
			return AlignedBlock{Prefix: p, Start: start}, true, nil
		}
	}
	// start <= end 时 p == width 的单地址块必然命中，不会走到这里。
	return AlignedBlock{}, false, nil
}
