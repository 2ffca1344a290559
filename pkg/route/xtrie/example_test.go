package xtrie_test

import (
	"fmt"

	"github.com/omeyang/ipkit/pkg/ip/xip"
	"github.com/omeyang/ipkit/pkg/route/xtrie"
)

func ExampleTrie_LongestMatch() {
	tr, _ := xtrie.New[string](xip.V4)
	_ = tr.Insert(xip.MustParseCIDR("10.0.0.0/8"), "corp")
	_ = tr.Insert(xip.MustParseCIDR("10.1.0.0/16"), "branch")

	for _, s := range []string{"10.1.2.3", "10.2.2.2", "8.8.8.8"} {
		e, found, _ := tr.LongestMatch(xip.MustParseAddr(s))
		if !found {
			fmt.Printf("%s -> no route\n", s)
			continue
		}
		fmt.Printf("%s -> %s (%s)\n", s, e.Value, e.CIDR)
	}
	// Output:
	// 10.1.2.3 -> branch (10.1.0.0/16)
	// 10.2.2.2 -> corp (10.0.0.0/8)
	// 8.8.8.8 -> no route
}

func ExampleTrie_Remove() {
	tr, _ := xtrie.New[string](xip.V4)
	_ = tr.Insert(xip.MustParseCIDR("10.0.0.0/8"), "corp")
	_ = tr.Insert(xip.MustParseCIDR("10.1.0.0/16"), "branch")

	removed, _ := tr.Remove(xip.MustParseCIDR("10.1.0.0/16"))
	fmt.Println(removed)

	e, _, _ := tr.LongestMatch(xip.MustParseAddr("10.1.2.3"))
	fmt.Println(e.CIDR)
	// Output:
	// true
	// 10.0.0.0/8
}

func ExampleCachedTrie() {
	ct, _ := xtrie.NewCached[string](xip.V4, 1024)
	_ = ct.Insert(xip.MustParseCIDR("192.168.0.0/16"), "lan")

	addr := xip.MustParseAddr("192.168.1.1")
	e, _, _ := ct.LongestMatch(addr) // 走树并写入缓存
	fmt.Println(e.Value)

	e, _, _ = ct.LongestMatch(addr) // 命中缓存
	fmt.Println(e.Value, ct.CacheLen())
	// Output:
	// lan
	// lan 1
}
