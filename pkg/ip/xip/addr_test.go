package xip

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddrConstructors(t *testing.T) {
	a4 := AddrFrom4([4]byte{10, 0, 0, 1})
	assert.True(t, a4.Is4())
	assert.Equal(t, "10.0.0.1", a4.String())

	u, ok := a4.Uint32()
	require.True(t, ok)
	assert.Equal(t, uint32(0x0a000001), u)

	a6 := AddrFrom16([16]byte{0x20, 0x01, 0x0d, 0xb8, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1})
	assert.True(t, a6.Is6())
	assert.Equal(t, "2001:db8::1", a6.String())

	// AddrFrom16 不做 mapped 归一化
	mapped := MustParseAddr("::ffff:192.0.2.1")
	assert.True(t, mapped.Is6())
}

func TestAddrFromUint128(t *testing.T) {
	a, err := AddrFromUint128(Uint128From64(0xc0a80101), V4)
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.1", a.String())

	// IPv4 数值超出 32 位
	_, err = AddrFromUint128(Uint128From64(1<<32), V4)
	assert.ErrorIs(t, err, ErrOutOfRange)

	// 版本非法
	_, err = AddrFromUint128(Uint128From64(1), V0)
	assert.ErrorIs(t, err, ErrOutOfRange)

	// IPv6 任意 128 位值都合法
	_, err = AddrFromUint128(Uint128FromWords(^uint64(0), ^uint64(0)), V6)
	assert.NoError(t, err)
}

func TestAddrFromBigInt(t *testing.T) {
	a, err := AddrFromBigInt(big.NewInt(0x7f000001), V4)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", a.String())

	_, err = AddrFromBigInt(big.NewInt(-1), V4)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = AddrFromBigInt(nil, V6)
	assert.ErrorIs(t, err, ErrOutOfRange)

	// 往返
	orig := MustParseAddr("2001:db8::42")
	back, err := AddrFromBigInt(orig.BigInt(), V6)
	require.NoError(t, err)
	assert.Equal(t, orig, back)
}

func TestAddrFromBytes(t *testing.T) {
	a, err := AddrFromBytes([]byte{192, 0, 2, 1})
	require.NoError(t, err)
	assert.True(t, a.Is4())

	b := make([]byte, 16)
	b[15] = 1
	a, err = AddrFromBytes(b)
	require.NoError(t, err)
	assert.Equal(t, "::1", a.String())

	_, err = AddrFromBytes([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrParse)

	_, err = AddrFromBytes(nil)
	assert.ErrorIs(t, err, ErrParse)
}

func TestAddrZeroValue(t *testing.T) {
	var zero Addr
	assert.False(t, zero.IsValid())
	assert.False(t, zero.Is4())
	assert.False(t, zero.Is6())
	assert.Equal(t, V0, zero.Version())
	assert.Equal(t, 0, zero.Bits())
	assert.Equal(t, "", zero.String())
	assert.Nil(t, zero.Bytes())
	assert.Equal(t, 0, zero.BigInt().Sign())
}

func TestAddrCompare(t *testing.T) {
	v4lo := MustParseAddr("10.0.0.1")
	v4hi := MustParseAddr("10.0.0.2")
	v6 := MustParseAddr("::1")

	assert.Equal(t, -1, v4lo.Compare(v4hi))
	assert.Equal(t, 1, v4hi.Compare(v4lo))
	assert.Equal(t, 0, v4lo.Compare(v4lo))

	// 版本优先：任何 IPv4 < 任何 IPv6，哪怕 IPv6 数值更小
	assert.Equal(t, -1, v4hi.Compare(v6))
	assert.Equal(t, 1, v6.Compare(v4hi))

	// 无效地址排最前
	assert.Equal(t, -1, Addr{}.Compare(v4lo))
}

func TestAddrAsBytes(t *testing.T) {
	a4 := MustParseAddr("192.0.2.1")
	b4, ok := a4.As4()
	require.True(t, ok)
	assert.Equal(t, [4]byte{192, 0, 2, 1}, b4)
	assert.Equal(t, []byte{192, 0, 2, 1}, a4.Bytes())

	// As16 把 IPv4 填入 mapped 布局
	b16 := a4.As16()
	assert.Equal(t, byte(0xff), b16[10])
	assert.Equal(t, byte(0xff), b16[11])
	assert.Equal(t, byte(192), b16[12])

	a6 := MustParseAddr("2001:db8::1")
	_, ok = a6.As4()
	assert.False(t, ok)
	_, ok = a6.Uint32()
	assert.False(t, ok)
	assert.Len(t, a6.Bytes(), 16)
}

func TestAddrNextPrev(t *testing.T) {
	a := MustParseAddr("10.0.0.255")
	next, err := a.Next()
	require.NoError(t, err)
	assert.Equal(t, "10.0.1.0", next.String())

	prev, err := next.Prev()
	require.NoError(t, err)
	assert.Equal(t, a, prev)

	// IPv4 上界
	_, err = MustParseAddr("255.255.255.255").Next()
	assert.ErrorIs(t, err, ErrOutOfRange)

	// 全零下界
	_, err = MustParseAddr("0.0.0.0").Prev()
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = MustParseAddr("::").Prev()
	assert.ErrorIs(t, err, ErrOutOfRange)

	// IPv6 上界
	_, err = MustParseAddr("ffff:ffff:ffff:ffff:ffff:ffff:ffff:ffff").Next()
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestAddrAdd(t *testing.T) {
	a := MustParseAddr("192.168.1.0")

	moved, err := a.Add(256)
	require.NoError(t, err)
	assert.Equal(t, "192.168.2.0", moved.String())

	back, err := moved.Add(-256)
	require.NoError(t, err)
	assert.Equal(t, a, back)

	// IPv4 溢出在 32 位边界检测，而不是 128 位
	_, err = MustParseAddr("255.255.255.0").Add(256)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = MustParseAddr("0.0.0.10").Add(-11)
	assert.ErrorIs(t, err, ErrOutOfRange)

	// 零值地址不可做算术
	_, err = Addr{}.Add(1)
	assert.ErrorIs(t, err, ErrInvariant)

	// IPv6 跨 64 位字的进位
	v6 := MustParseAddr("::ffff:ffff:ffff:ffff")
	next, err := v6.Add(1)
	require.NoError(t, err)
	assert.Equal(t, "0:0:0:1::", next.String())
}
