package xtrie

import (
	"testing"

	"github.com/omeyang/ipkit/pkg/ip/xip"
)

// =============================================================================
// 最长前缀匹配基准测试
// =============================================================================

// benchTrie 构造一棵带分层路由的树。
func benchTrie(b *testing.B) *Trie[int] {
	b.Helper()
	tr, err := New[int](xip.V4)
	if err != nil {
		b.Fatal(err)
	}
	routes := []string{
		"0.0.0.0/0", "10.0.0.0/8", "10.1.0.0/16", "10.1.2.0/24",
		"172.16.0.0/12", "192.168.0.0/16", "192.168.1.0/24",
	}
	for i, s := range routes {
		if err := tr.Insert(xip.MustParseCIDR(s), i); err != nil {
			b.Fatal(err)
		}
	}
	return tr
}

func BenchmarkTrieLongestMatch(b *testing.B) {
	tr := benchTrie(b)

	b.Run("deep match", func(b *testing.B) {
		addr := xip.MustParseAddr("10.1.2.3")
		for b.Loop() {
			_, _, _ = tr.LongestMatch(addr)
		}
	})
	b.Run("default route", func(b *testing.B) {
		addr := xip.MustParseAddr("8.8.8.8")
		for b.Loop() {
			_, _, _ = tr.LongestMatch(addr)
		}
	})
}

func BenchmarkTrieInsert(b *testing.B) {
	c := xip.MustParseCIDR("10.1.2.0/24")
	for b.Loop() {
		tr, _ := New[int](xip.V4)
		_ = tr.Insert(c, 1)
	}
}

func BenchmarkCachedTrieLongestMatch(b *testing.B) {
	newCached := func(b *testing.B) *CachedTrie[int] {
		b.Helper()
		ct, err := NewCached[int](xip.V4, 1024)
		if err != nil {
			b.Fatal(err)
		}
		for i, s := range []string{"0.0.0.0/0", "10.0.0.0/8", "10.1.0.0/16", "10.1.2.0/24"} {
			if err := ct.Insert(xip.MustParseCIDR(s), i); err != nil {
				b.Fatal(err)
			}
		}
		return ct
	}

	b.Run("hot address", func(b *testing.B) {
		ct := newCached(b)
		addr := xip.MustParseAddr("10.1.2.3")
		_, _, _ = ct.LongestMatch(addr) // 预热缓存
		for b.Loop() {
			_, _, _ = ct.LongestMatch(addr)
		}
	})
	b.Run("rotating addresses", func(b *testing.B) {
		ct := newCached(b)
		addrs := make([]xip.Addr, 256)
		for i := range addrs {
			addrs[i] = xip.AddrFromUint32(uint32(10<<24 | 1<<16 | 2<<8 | i))
		}
		i := 0
		for b.Loop() {
			_, _, _ = ct.LongestMatch(addrs[i%len(addrs)])
			i++
		}
	})
}
