package xtrie

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/omeyang/ipkit/pkg/ip/xip"
)

// maxCacheSize 缓存最大条目数上限。
const maxCacheSize = 1 << 24 // 16,777,216

// lookupResult 缓存的一次最长前缀匹配结果。
// found 为 false 表示该地址不命中任何前缀（负缓存）。
type lookupResult[T any] struct {
	entry Entry[T]
	found bool
}

// CachedTrie 在 [Trie] 之上加一层按地址键的 LRU 查询缓存。
//
// 设计决策: 路由查询表现出很强的地址局部性（同一批源/目的地址反复
// 出现），缓存整个匹配结果（含未命中的负结果）可以让热点查询完全
// 不走树。任何 Insert/Remove 都会整体清空缓存，保证查询结果与树的
// 当前内容一致。
//
// 与 [Trie] 不同，CachedTrie 的所有方法都是并发安全的。
type CachedTrie[T any] struct {
	mu    sync.RWMutex
	trie  *Trie[T]
	cache *lru.Cache[xip.Addr, lookupResult[T]]
}

// NewCached 创建带缓存的树。size 是缓存最大条目数，必须大于 0 且
// 不超过 16,777,216，违反时返回 [xip.ErrOutOfRange]。
func NewCached[T any](version xip.Version, size int) (*CachedTrie[T], error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: cache size must be positive, got %d", xip.ErrOutOfRange, size)
	}
	if size > maxCacheSize {
		return nil, fmt.Errorf("%w: cache size %d exceeds max %d", xip.ErrOutOfRange, size, maxCacheSize)
	}
	t, err := New[T](version)
	if err != nil {
		return nil, err
	}
	// size 已经校验过，lru.New 只在 size <= 0 时报错。
	cache, err := lru.New[xip.Addr, lookupResult[T]](size)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", xip.ErrOutOfRange, err)
	}
	return &CachedTrie[T]{trie: t, cache: cache}, nil
}

// Version 返回树绑定的 IP 版本。
func (ct *CachedTrie[T]) Version() xip.Version { return ct.trie.Version() }

// Len 返回已插入的前缀数量。
func (ct *CachedTrie[T]) Len() int {
	ct.mu.RLock()
	defer ct.mu.RUnlock()
	return ct.trie.Len()
}

// Insert 插入或覆盖一条前缀并清空查询缓存。
func (ct *CachedTrie[T]) Insert(c xip.CIDR, value T) error {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	if err := ct.trie.Insert(c, value); err != nil {
		return err
	}
	ct.cache.Purge()
	return nil
}

// Remove 删除一条前缀；删除成功时清空查询缓存。
func (ct *CachedTrie[T]) Remove(c xip.CIDR) (bool, error) {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	removed, err := ct.trie.Remove(c)
	if removed {
		ct.cache.Purge()
	}
	return removed, err
}

// LongestMatch 返回包含 addr 的最长前缀，优先走缓存。
// 未命中任何前缀的结果同样被缓存。
func (ct *CachedTrie[T]) LongestMatch(addr xip.Addr) (Entry[T], bool, error) {
	ct.mu.RLock()
	defer ct.mu.RUnlock()

	if res, ok := ct.cache.Get(addr); ok {
		return res.entry, res.found, nil
	}
	entry, found, err := ct.trie.LongestMatch(addr)
	if err != nil {
		return Entry[T]{}, false, err
	}
	// 查树和写缓存在同一把读锁下完成，Insert/Remove 的 Purge 持写锁，
	// 不可能交错出过期条目。
	ct.cache.Add(addr, lookupResult[T]{entry: entry, found: found})
	return entry, found, nil
}

// Contains 报告是否存在某条前缀包含 addr。
func (ct *CachedTrie[T]) Contains(addr xip.Addr) (bool, error) {
	_, ok, err := ct.LongestMatch(addr)
	return ok, err
}

// Get 精确查询一条前缀，不经过缓存。
func (ct *CachedTrie[T]) Get(c xip.CIDR) (T, bool, error) {
	ct.mu.RLock()
	defer ct.mu.RUnlock()
	return ct.trie.Get(c)
}

// Entries 返回全部前缀及其值，顺序同 [Trie.Entries]。
func (ct *CachedTrie[T]) Entries() []Entry[T] {
	ct.mu.RLock()
	defer ct.mu.RUnlock()
	return ct.trie.Entries()
}

// CacheLen 返回当前缓存的查询结果条数。
func (ct *CachedTrie[T]) CacheLen() int {
	ct.mu.RLock()
	defer ct.mu.RUnlock()
	return ct.cache.Len()
}
