package xtrie

import (
	"fmt"

	"github.com/omeyang/ipkit/pkg/ip/xip"
)

// Entry 一条前缀及其关联值。
type Entry[T any] struct {
	CIDR  xip.CIDR
	Value T
}

// node 二叉基数树节点。children[0] 是 0 比特分支，children[1] 是 1 比特分支。
// hasValue 为 true 时节点是一条已插入的前缀，network/prefix/value 有效。
type node[T any] struct {
	children [2]*node[T]
	hasValue bool
	value    T
	network  xip.Addr
	prefix   int
}

// Trie 按前缀比特逐位下降的二叉基数树，支持最长前缀匹配。
//
// 每棵树绑定一个 IP 版本，IPv4 深度至多 32，IPv6 至多 128。
// Trie 是可变容器，内部不加锁：并发修改需要调用方自行加锁，
// 需要带缓存的并发读场景见 [CachedTrie]。
type Trie[T any] struct {
	version xip.Version
	root    *node[T]
	count   int
}

// New 创建绑定 version 的空树。version 非法时返回 [xip.ErrOutOfRange]。
func New[T any](version xip.Version) (*Trie[T], error) {
	if !version.IsValid() {
		return nil, fmt.Errorf("%w: trie version must be V4 or V6, got %d", xip.ErrOutOfRange, uint8(version))
	}
	return &Trie[T]{version: version, root: &node[T]{}}, nil
}

// Version 返回树绑定的 IP 版本。
func (t *Trie[T]) Version() xip.Version { return t.version }

// Len 返回已插入的前缀数量。
func (t *Trie[T]) Len() int { return t.count }

// Insert 插入或覆盖一条前缀。c 先做 Masked 规范化，相同网络前缀的
// 二次插入只替换值，不增加计数。版本不匹配返回 [xip.ErrVersionMismatch]。
func (t *Trie[T]) Insert(c xip.CIDR, value T) error {
	if err := t.checkCIDR(c); err != nil {
		return err
	}
	c = c.Masked()

	n := t.root
	network := c.Network()
	for i := 0; i < c.Prefix(); i++ {
		b := bitAt(network, i)
		if n.children[b] == nil {
			n.children[b] = &node[T]{}
		}
		n = n.children[b]
	}
	if !n.hasValue {
		t.count++
	}
	n.hasValue = true
	n.value = value
	n.network = network
	n.prefix = c.Prefix()
	return nil
}

// Remove 删除一条前缀（按 Masked 后的网络前缀精确匹配），并剪掉
// 由此变空的路径。前缀存在且被删除时返回 true。
// 版本不匹配返回 [xip.ErrVersionMismatch]。
func (t *Trie[T]) Remove(c xip.CIDR) (bool, error) {
	if err := t.checkCIDR(c); err != nil {
		return false, err
	}
	c = c.Masked()

	// 记录路径以便回溯剪枝。
	network := c.Network()
	path := make([]*node[T], 0, c.Prefix()+1)
	n := t.root
	path = append(path, n)
	for i := 0; i < c.Prefix(); i++ {
		n = n.children[bitAt(network, i)]
		if n == nil {
			return false, nil
		}
		path = append(path, n)
	}
	if !n.hasValue {
		return false, nil
	}

	n.hasValue = false
	n.value = *new(T)
	t.count--

	// 自底向上剪掉既无值也无子节点的节点。根节点保留。
	for i := len(path) - 1; i > 0; i-- {
		cur := path[i]
		if cur.hasValue || cur.children[0] != nil || cur.children[1] != nil {
			break
		}
		path[i-1].children[bitAt(network, i-1)] = nil
	}
	return true, nil
}

// Get 精确查询一条前缀（按 Masked 后的网络前缀）。
// 版本不匹配返回 [xip.ErrVersionMismatch]。
func (t *Trie[T]) Get(c xip.CIDR) (T, bool, error) {
	var zero T
	if err := t.checkCIDR(c); err != nil {
		return zero, false, err
	}
	c = c.Masked()

	n := t.root
	network := c.Network()
	for i := 0; i < c.Prefix(); i++ {
		n = n.children[bitAt(network, i)]
		if n == nil {
			return zero, false, nil
		}
	}
	if !n.hasValue {
		return zero, false, nil
	}
	return n.value, true, nil
}

// LongestMatch 返回包含 addr 的最长（最具体）前缀。
// 没有任何前缀包含 addr 时返回 (零值, false, nil)。
// addr 版本不匹配返回 [xip.ErrVersionMismatch]。
func (t *Trie[T]) LongestMatch(addr xip.Addr) (Entry[T], bool, error) {
	if addr.Version() != t.version {
		return Entry[T]{}, false, fmt.Errorf("%w: trie holds %s prefixes, lookup address is %s",
			xip.ErrVersionMismatch, t.version, addr.Version())
	}

	var best Entry[T]
	found := false

	n := t.root
	for i := 0; ; i++ {
		if n.hasValue {
			c, err := xip.CIDRFrom(n.network, n.prefix)
			if err == nil {
				best = Entry[T]{CIDR: c, Value: n.value}
				found = true
			}
		}
		if i >= t.version.Bits() {
			break
		}
		n = n.children[bitAt(addr, i)]
		if n == nil {
			break
		}
	}
	return best, found, nil
}

// Contains 报告是否存在某条前缀包含 addr。
func (t *Trie[T]) Contains(addr xip.Addr) (bool, error) {
	_, ok, err := t.LongestMatch(addr)
	return ok, err
}

// Entries 返回全部前缀及其值，按前缀比特序（即网络地址升序，
// 同地址时短前缀在前）。
func (t *Trie[T]) Entries() []Entry[T] {
	out := make([]Entry[T], 0, t.count)
	var walk func(n *node[T])
	walk = func(n *node[T]) {
		if n == nil {
			return
		}
		if n.hasValue {
			if c, err := xip.CIDRFrom(n.network, n.prefix); err == nil {
				out = append(out, Entry[T]{CIDR: c, Value: n.value})
			}
		}
		walk(n.children[0])
		walk(n.children[1])
	}
	walk(t.root)
	return out
}

// CIDRs 返回全部前缀，顺序同 [Trie.Entries]。
func (t *Trie[T]) CIDRs() []xip.CIDR {
	entries := t.Entries()
	out := make([]xip.CIDR, len(entries))
	for i, e := range entries {
		out[i] = e.CIDR
	}
	return out
}

// checkCIDR 校验 c 对这棵树是否可用。
func (t *Trie[T]) checkCIDR(c xip.CIDR) error {
	if !c.IsValid() {
		return fmt.Errorf("%w: zero CIDR", xip.ErrInvariant)
	}
	if c.Version() != t.version {
		return fmt.Errorf("%w: trie holds %s prefixes, got %s", xip.ErrVersionMismatch, t.version, c.Version())
	}
	return nil
}

// bitAt 返回 addr 从最高位数起的第 i 个比特（i 从 0 开始）。
func bitAt(addr xip.Addr, i int) int {
	return int(addr.Uint128().Bit(addr.Bits() - 1 - i))
}
