package xip

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddrStringIPv4(t *testing.T) {
	tests := []struct {
		name string
		addr Addr
		want string
	}{
		{name: "basic", addr: AddrFrom4([4]byte{192, 168, 1, 1}), want: "192.168.1.1"},
		{name: "zero", addr: AddrFromUint32(0), want: "0.0.0.0"},
		{name: "max", addr: AddrFromUint32(0xffffffff), want: "255.255.255.255"},
		{name: "single digit octets", addr: AddrFrom4([4]byte{1, 2, 3, 4}), want: "1.2.3.4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.addr.String())
		})
	}
}

func TestAddrStringIPv6Canonical(t *testing.T) {
	// RFC 5952：小写十六进制、去前导零、最长（并列取最左）零段压缩、
	// 单个零组不压缩。
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "leading zeros stripped", input: "2001:0db8:0000:0000:0000:0000:0000:0001", want: "2001:db8::1"},
		{name: "lowercase", input: "2001:DB8::ABCD", want: "2001:db8::abcd"},
		{name: "single zero group not compressed", input: "2001:db8:0:1:1:1:1:1", want: "2001:db8:0:1:1:1:1:1"},
		{name: "leftmost of two equal runs", input: "2001:0:0:1:0:0:0:1", want: "2001:0:0:1::1"},
		{name: "first run longer", input: "2001:0:0:0:1:0:0:1", want: "2001::1:0:0:1"},
		{name: "all zeros", input: "0:0:0:0:0:0:0:0", want: "::"},
		{name: "trailing run", input: "fe80:0:0:0:0:0:0:0", want: "fe80::"},
		{name: "leading run", input: "0:0:0:0:0:0:0:8", want: "::8"},
		{name: "no zero groups", input: "1:2:3:4:5:6:7:8", want: "1:2:3:4:5:6:7:8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MustParseAddr(tt.input).String())
		})
	}
}

func TestAddrStringMixedNotation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// IPv4-mapped 始终保持混合写法输出。
		{name: "mapped", input: "::ffff:192.0.2.1", want: "::ffff:192.0.2.1"},
		{name: "mapped zero", input: "::ffff:0.0.0.0", want: "::ffff:0.0.0.0"},
		// IPv4-compatible（低 32 位 > 1）同样保持混合写法。
		{name: "compatible", input: "::192.0.2.1", want: "::192.0.2.1"},
		{name: "compatible small", input: "::0.0.0.2", want: "::0.0.0.2"},
		// ::（全零）和 ::1（loopback）是保留写法，不按 compatible 输出。
		{name: "unspecified stays plain", input: "::", want: "::"},
		{name: "loopback stays plain", input: "::1", want: "::1"},
		// 第 6 组非零时不满足 compatible 形态。
		{name: "not compatible when group 5 set", input: "::a:1.2.3.4", want: "::a:102:304"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MustParseAddr(tt.input).String())
		})
	}
}

func TestAddrStringZeroValue(t *testing.T) {
	assert.Equal(t, "", Addr{}.String())
}

func TestAddrStringIdempotent(t *testing.T) {
	// 规范化输出再解析、再输出，必须得到同一字符串。
	inputs := []string{
		"2001:0db8:0000:0000:0000:0000:0000:0001",
		"2001:0:0:1:0:0:0:1",
		"::ffff:10.1.2.3",
		"::10.1.2.3",
		"0:0:0:0:0:0:0:0",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			once := MustParseAddr(in).String()
			twice := MustParseAddr(once).String()
			assert.Equal(t, once, twice)
		})
	}
}
