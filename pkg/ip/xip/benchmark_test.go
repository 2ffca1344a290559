package xip

import (
	"net/netip"
	"testing"
)

// =============================================================================
// 解析与格式化基准测试（对标 net/netip）
// =============================================================================

func BenchmarkParseAddr(b *testing.B) {
	b.Run("v4", func(b *testing.B) {
		for b.Loop() {
			_, _ = ParseAddr("192.168.1.1")
		}
	})
	b.Run("v6", func(b *testing.B) {
		for b.Loop() {
			_, _ = ParseAddr("2001:db8::1")
		}
	})
	b.Run("netip/v4", func(b *testing.B) {
		for b.Loop() {
			_, _ = netip.ParseAddr("192.168.1.1")
		}
	})
	b.Run("netip/v6", func(b *testing.B) {
		for b.Loop() {
			_, _ = netip.ParseAddr("2001:db8::1")
		}
	})
}

func BenchmarkAddrString(b *testing.B) {
	v4 := MustParseAddr("192.168.1.1")
	v6 := MustParseAddr("2001:db8::1")

	b.Run("v4", func(b *testing.B) {
		for b.Loop() {
			_ = v4.String()
		}
	})
	b.Run("v6", func(b *testing.B) {
		for b.Loop() {
			_ = v6.String()
		}
	})
}

// =============================================================================
// 核心运算基准测试
// =============================================================================

func BenchmarkCIDRContains(b *testing.B) {
	c := MustParseCIDR("10.0.0.0/8")
	addr := MustParseAddr("10.1.2.3")
	for b.Loop() {
		_ = c.Contains(addr)
	}
}

func BenchmarkRangeToCIDRs(b *testing.B) {
	r := MustParseRange("10.0.0.3-10.0.255.200")
	b.ReportAllocs()
	for b.Loop() {
		_ = r.ToCIDRs()
	}
}

func BenchmarkRangeSetContains(b *testing.B) {
	set, _ := ParseRangeSet([]string{
		"10.0.0.0/16", "10.2.0.0/16", "10.4.0.0/16", "10.6.0.0/16",
		"192.168.0.0/24", "192.168.2.0/24", "172.16.0.0/12",
	})
	addr := MustParseAddr("192.168.2.128")
	for b.Loop() {
		_ = set.Contains(addr)
	}
}

func BenchmarkRangeSetUnion(b *testing.B) {
	x, _ := ParseRangeSet([]string{"10.0.0.0/16", "10.2.0.0/16", "10.4.0.0/16"})
	y, _ := ParseRangeSet([]string{"10.1.0.0/16", "10.3.0.0/16", "10.5.0.0/16"})
	b.ReportAllocs()
	for b.Loop() {
		_, _ = x.Union(y)
	}
}
