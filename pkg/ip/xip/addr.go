package xip

import (
	"math/big"
)

// Addr 表示一个 IPv4 或 IPv6 地址。
//
// Addr 是不可变值类型：
//   - 零值表示无效地址，IsValid() 返回 false
//   - 可直接比较（==）和用作 map key
//   - 并发安全，无需加锁
//
// 数值统一存放在 128 位无符号整数中，IPv4 使用低 32 位。
// 使用 [ParseAddr] 或 [MustParseAddr] 从文本创建，
// 或使用 AddrFrom* 系列构造函数从数值/字节创建。
type Addr struct {
	value   Uint128
	version Version
}

// AddrFrom4 从 4 字节数组创建 IPv4 地址。
func AddrFrom4(b [4]byte) Addr {
	v := uint64(b[0])<<24 | uint64(b[1])<<16 | uint64(b[2])<<8 | uint64(b[3])
	return Addr{value: Uint128{lo: v}, version: V4}
}

// AddrFrom16 从 16 字节数组创建 IPv6 地址。
// 不做 IPv4-mapped 归一化：::ffff:192.0.2.1 仍是 IPv6 地址。
func AddrFrom16(b [16]byte) Addr {
	return Addr{
		value:   Uint128{hi: beUint64(b[:8]), lo: beUint64(b[8:])},
		version: V6,
	}
}

// AddrFromUint32 从 uint32 创建 IPv4 地址（网络字节序数值）。
func AddrFromUint32(v uint32) Addr {
	return Addr{value: Uint128{lo: uint64(v)}, version: V4}
}

// AddrFromUint128 从 128 位数值和版本创建地址。
// IPv4 要求数值不超过 32 位，否则返回 [ErrOutOfRange]。
// 版本非法返回 [ErrOutOfRange]。
func AddrFromUint128(v Uint128, ver Version) (Addr, error) {
	if !ver.IsValid() {
		return Addr{}, errOutOfRange("invalid IP version %d", ver)
	}
	if err := checkValue(v, ver.Bits()); err != nil {
		return Addr{}, err
	}
	return Addr{value: v, version: ver}, nil
}

// AddrFromBigInt 从 [*big.Int] 和版本创建地址。
// v 为 nil、负数或超出版本位宽返回 [ErrOutOfRange]；版本非法返回 [ErrOutOfRange]。
func AddrFromBigInt(v *big.Int, ver Version) (Addr, error) {
	u, err := Uint128FromBigInt(v)
	if err != nil {
		return Addr{}, err
	}
	return AddrFromUint128(u, ver)
}

// AddrFromBytes 从字节切片创建地址。
// 长度 4 视为 IPv4，长度 16 视为 IPv6，其他长度返回 [ErrParse]。
func AddrFromBytes(b []byte) (Addr, error) {
	switch len(b) {
	case 4:
		return AddrFrom4([4]byte(b)), nil
	case 16:
		return AddrFrom16([16]byte(b)), nil
	default:
		return Addr{}, errParse("address must be 4 or 16 bytes, got %d", len(b))
	}
}

// IsValid 报告 a 是否为有效地址。零值 Addr{} 返回 false。
func (a Addr) IsValid() bool {
	return a.version.IsValid()
}

// Is4 报告 a 是否为 IPv4 地址。
func (a Addr) Is4() bool { return a.version == V4 }

// Is6 报告 a 是否为 IPv6 地址。
func (a Addr) Is6() bool { return a.version == V6 }

// Version 返回地址的 IP 版本。无效地址返回 V0。
func (a Addr) Version() Version { return a.version }

// Bits 返回地址位宽（IPv4 为 32，IPv6 为 128）。无效地址返回 0。
func (a Addr) Bits() int { return a.version.Bits() }

// Compare 比较两个地址。
// 返回值：-1 (a < b), 0 (a == b), 1 (a > b)。
// 不同版本时按版本排序（无效 < IPv4 < IPv6），版本相同时按数值比较。
func (a Addr) Compare(b Addr) int {
	switch {
	case a.version < b.version:
		return -1
	case a.version > b.version:
		return 1
	default:
		return a.value.Cmp(b.value)
	}
}

// Uint128 返回地址的 128 位数值（IPv4 在低 32 位）。
func (a Addr) Uint128() Uint128 { return a.value }

// Uint32 返回 IPv4 地址的 uint32 数值（网络字节序）。
// 非 IPv4 地址返回 (0, false)。
func (a Addr) Uint32() (uint32, bool) {
	if a.version != V4 {
		return 0, false
	}
	return uint32(a.value.lo), true
}

// BigInt 返回地址数值的 [*big.Int]。无效地址返回零值 big.Int。
func (a Addr) BigInt() *big.Int {
	if !a.IsValid() {
		return new(big.Int)
	}
	return a.value.BigInt()
}

// As4 返回 IPv4 地址的 4 字节表示。非 IPv4 地址返回零值和 false。
func (a Addr) As4() ([4]byte, bool) {
	if a.version != V4 {
		return [4]byte{}, false
	}
	v := uint32(a.value.lo)
	return [4]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}, true
}

// As16 返回 16 字节表示。IPv4 地址按 IPv4-mapped（::ffff:a.b.c.d）布局填充。
// 无效地址返回零值数组。
func (a Addr) As16() [16]byte {
	if !a.IsValid() {
		return [16]byte{}
	}
	if a.version == V4 {
		var b [16]byte
		b[10], b[11] = 0xff, 0xff
		v := uint32(a.value.lo)
		b[12], b[13], b[14], b[15] = byte(v>>24), byte(v>>16), byte(v>>8), byte(v)
		return b
	}
	return a.value.Bytes16()
}

// Bytes 返回地址的字节切片表示（IPv4 为 4 字节，IPv6 为 16 字节）。
// 返回副本，修改不影响原值。无效地址返回 nil。
func (a Addr) Bytes() []byte {
	switch a.version {
	case V4:
		b, _ := a.As4()
		return b[:]
	case V6:
		b := a.value.Bytes16()
		return b[:]
	default:
		return nil
	}
}

// Next 返回下一个地址（当前地址 +1）。
// 已是版本地址空间的最高地址时返回 [ErrOutOfRange]。
func (a Addr) Next() (Addr, error) {
	return a.Add(1)
}

// Prev 返回前一个地址（当前地址 -1）。
// 已是全零地址时返回 [ErrOutOfRange]。
func (a Addr) Prev() (Addr, error) {
	return a.Add(-1)
}

// Add 对地址数值做加法，delta 为负表示减法。
// 结果超出版本地址空间 [0, 2^bits-1] 时返回 [ErrOutOfRange]。
func (a Addr) Add(delta int64) (Addr, error) {
	if !a.IsValid() {
		return Addr{}, errInvariant("cannot do arithmetic on the zero Addr")
	}
	var (
		v      Uint128
		moved  uint64
		toward string
	)
	if delta >= 0 {
		var carry uint64
		v, carry = a.value.AddCarry(Uint128From64(uint64(delta)))
		moved, toward = carry, "overflow"
		if carry == 0 && a.version == V4 && v.Cmp(onesOf(BitsV4)) > 0 {
			moved = 1
		}
	} else {
		var borrow uint64
		// delta == math.MinInt64 时 -delta 溢出，先转 uint64 再取补。
		v, borrow = a.value.SubBorrow(Uint128From64(-uint64(delta)))
		moved, toward = borrow, "underflow"
	}
	if moved != 0 {
		return Addr{}, errOutOfRange("address %s %s by %d", a, toward, delta)
	}
	return Addr{value: v, version: a.version}, nil
}
