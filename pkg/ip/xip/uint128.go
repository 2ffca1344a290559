package xip

import (
	"math/big"
	"math/bits"
)

// Uint128 表示 128 位无符号整数，由两个 64 位字组成。
//
// Uint128 是不可变值类型：
//   - 可直接比较（==）和用作 map key
//   - 栈分配，零堆开销
//   - 所有运算返回新值，原值不变
//
// IPv4 地址的 32 位数值存放在低 32 位，高位为零。
type Uint128 struct {
	hi, lo uint64
}

// Uint128From64 从 uint64 创建 Uint128（高 64 位为零）。
func Uint128From64(v uint64) Uint128 {
	return Uint128{lo: v}
}

// Uint128FromWords 从高低两个 64 位字创建 Uint128。
func Uint128FromWords(hi, lo uint64) Uint128 {
	return Uint128{hi: hi, lo: lo}
}

// Uint128FromBigInt 从 [*big.Int] 创建 Uint128。
// v 为 nil、负数或超过 128 位时返回 [ErrOutOfRange]。
func Uint128FromBigInt(v *big.Int) (Uint128, error) {
	if v == nil {
		return Uint128{}, errOutOfRange("nil big.Int")
	}
	if v.Sign() < 0 || v.BitLen() > 128 {
		return Uint128{}, errOutOfRange("big.Int value %s does not fit in 128 bits", v)
	}
	var b [16]byte
	vBytes := v.Bytes()
	copy(b[16-len(vBytes):], vBytes)
	return Uint128{
		hi: beUint64(b[:8]),
		lo: beUint64(b[8:]),
	}, nil
}

// Hi 返回高 64 位。
func (x Uint128) Hi() uint64 { return x.hi }

// Lo 返回低 64 位。
func (x Uint128) Lo() uint64 { return x.lo }

// IsZero 报告 x 是否为零。
func (x Uint128) IsZero() bool {
	return x == Uint128{}
}

// Cmp 比较两个 Uint128。
// 返回值：-1 (x < y), 0 (x == y), 1 (x > y)。
func (x Uint128) Cmp(y Uint128) int {
	switch {
	case x.hi < y.hi:
		return -1
	case x.hi > y.hi:
		return 1
	case x.lo < y.lo:
		return -1
	case x.lo > y.lo:
		return 1
	default:
		return 0
	}
}

// Add 返回 x + y，按 128 位回绕（模 2^128）。
// 需要检测溢出时使用 [Uint128.AddCarry]。
func (x Uint128) Add(y Uint128) Uint128 {
	sum, _ := x.AddCarry(y)
	return sum
}

// AddCarry 返回 x + y 以及进位（0 或 1）。
func (x Uint128) AddCarry(y Uint128) (Uint128, uint64) {
	lo, carry := bits.Add64(x.lo, y.lo, 0)
	hi, carry := bits.Add64(x.hi, y.hi, carry)
	return Uint128{hi: hi, lo: lo}, carry
}

// Sub 返回 x - y，按 128 位回绕（模 2^128）。
// 需要检测下溢时使用 [Uint128.SubBorrow]。
func (x Uint128) Sub(y Uint128) Uint128 {
	diff, _ := x.SubBorrow(y)
	return diff
}

// SubBorrow 返回 x - y 以及借位（0 或 1）。
func (x Uint128) SubBorrow(y Uint128) (Uint128, uint64) {
	lo, borrow := bits.Sub64(x.lo, y.lo, 0)
	hi, borrow := bits.Sub64(x.hi, y.hi, borrow)
	return Uint128{hi: hi, lo: lo}, borrow
}

// And 返回按位与。
func (x Uint128) And(y Uint128) Uint128 {
	return Uint128{hi: x.hi & y.hi, lo: x.lo & y.lo}
}

// Or 返回按位或。
func (x Uint128) Or(y Uint128) Uint128 {
	return Uint128{hi: x.hi | y.hi, lo: x.lo | y.lo}
}

// Xor 返回按位异或。
func (x Uint128) Xor(y Uint128) Uint128 {
	return Uint128{hi: x.hi ^ y.hi, lo: x.lo ^ y.lo}
}

// Not 返回按位取反。
func (x Uint128) Not() Uint128 {
	return Uint128{hi: ^x.hi, lo: ^x.lo}
}

// Lsh 返回 x << k。k >= 128 时返回零。
func (x Uint128) Lsh(k uint) Uint128 {
	switch {
	case k >= 128:
		return Uint128{}
	case k >= 64:
		return Uint128{hi: x.lo << (k - 64)}
	default:
		// k < 64 时 x.lo >> (64-k) 在 k == 0 的边界下移位 64 位，
		// Go 规范保证结果为 0，无需单独分支。
		return Uint128{hi: x.hi<<k | x.lo>>(64-k), lo: x.lo << k}
	}
}

// Rsh 返回 x >> k。k >= 128 时返回零。
func (x Uint128) Rsh(k uint) Uint128 {
	switch {
	case k >= 128:
		return Uint128{}
	case k >= 64:
		return Uint128{lo: x.hi >> (k - 64)}
	default:
		return Uint128{hi: x.hi >> k, lo: x.lo>>k | x.hi<<(64-k)}
	}
}

// Bit 返回第 i 位的值（0 或 1），i == 0 为最低位。
// i 超出 [0, 128) 返回 0。
func (x Uint128) Bit(i int) uint64 {
	switch {
	case i < 0 || i >= 128:
		return 0
	case i >= 64:
		return (x.hi >> (i - 64)) & 1
	default:
		return (x.lo >> i) & 1
	}
}

// BigInt 返回等值的 [*big.Int]。
func (x Uint128) BigInt() *big.Int {
	v := new(big.Int).SetUint64(x.hi)
	v.Lsh(v, 64)
	return v.Or(v, new(big.Int).SetUint64(x.lo))
}

// Bytes16 返回大端序的 16 字节表示。
func (x Uint128) Bytes16() [16]byte {
	var b [16]byte
	bePutUint64(b[:8], x.hi)
	bePutUint64(b[8:], x.lo)
	return b
}

// String 返回十进制字符串表示。
func (x Uint128) String() string {
	return x.BigInt().String()
}

// beUint64 按大端序读取 8 字节。
func beUint64(b []byte) uint64 {
	return uint64(b[0])<<56 | uint64(b[1])<<48 | uint64(b[2])<<40 | uint64(b[3])<<32 |
		uint64(b[4])<<24 | uint64(b[5])<<16 | uint64(b[6])<<8 | uint64(b[7])
}

// bePutUint64 按大端序写入 8 字节。
func bePutUint64(b []byte, v uint64) {
	b[0] = byte(v >> 56)
	b[1] = byte(v >> 48)
	b[2] = byte(v >> 40)
	b[3] = byte(v >> 32)
	b[4] = byte(v >> 24)
	b[5] = byte(v >> 16)
	b[6] = byte(v >> 8)
	b[7] = byte(v)
}
