// Package xtrie 提供按前缀比特组织的二叉基数树，支持最长前缀匹配（LPM）。
//
// xtrie 是泛型容器，值类型由调用方决定（下一跳、策略、任意元数据）：
//
//   - [Trie]：插入/删除/精确查询/最长前缀匹配/全量枚举
//   - [CachedTrie]：在 Trie 之上加按地址键的 LRU 查询缓存，并发安全
//
// # 快速示例
//
//	trie, err := xtrie.New[string](xip.V4)
//	if err != nil {
//	    return err
//	}
//	trie.Insert(xip.MustParseCIDR("10.0.0.0/8"), "core")
//	trie.Insert(xip.MustParseCIDR("10.1.0.0/16"), "branch")
//
//	entry, ok, _ := trie.LongestMatch(xip.MustParseAddr("10.1.2.3"))
//	// entry.CIDR = 10.1.0.0/16, entry.Value = "branch"
//
// # 设计决策
//
//   - 每棵树绑定一个 IP 版本：v4 与 v6 前缀没有共同的比特空间，
//     强行混存只会把版本错误推迟到查询时才暴露
//   - 插入前缀先做 [xip.CIDR.Masked] 规范化，同一网络前缀的二次
//     插入只替换值
//   - 删除后自底向上剪掉既无值也无子节点的路径，树的尺寸始终
//     与存量前缀成正比
//   - [Trie] 不加锁，由调用方决定并发策略；[CachedTrie] 用读写锁 +
//     [github.com/hashicorp/golang-lru/v2] 提供并发安全的热点查询，
//     任何修改整体清空缓存，保证查询结果与树内容一致
//
// # 错误处理
//
// 版本不匹配返回 [xip.ErrVersionMismatch]，零值 CIDR 返回
// [xip.ErrInvariant]，非法缓存尺寸返回 [xip.ErrOutOfRange]，
// 均可用 [errors.Is] 判断。查询不命中不是错误，用 bool 表示。
package xtrie
