// Package route 提供路由查询相关的子包。
//
// 子包列表：
//   - xtrie: 二叉基数树，最长前缀匹配（LPM），可选 LRU 查询缓存
//
// 设计原则：
//   - 泛型值类型，树结构与业务载荷解耦
//   - 基础容器不加锁，带缓存的包装提供并发安全
package route
