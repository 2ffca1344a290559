// Package xip 提供位精确的 IP 地址计算核心。
//
// xip 面向需要在最大 2^128 地址空间上做精确推理的工具
// （IPAM 系统、路由表模拟器、网络规划器），自底向上分为五层，
// 每一层都建立在下一层之上：
//
//   - uint128.go / bits.go: 128 位定宽整数与显式位宽（32/128）的
//     掩码运算——前缀/主机掩码、网络/最高地址、最大对齐块搜索
//   - addr.go / parse.go / format.go: 不可变地址值 [Addr]、严格的
//     文本文法解析与 RFC 5952 规范格式化（含 RFC 4291 混合写法）
//   - cidr.go / iter.go: [CIDR] 块——网络/广播、包含/重叠、切分、
//     平移，以及主机/子网的惰性 [iter.Seq] 枚举
//   - range.go: 闭区间 [Range] 与最小 CIDR 覆盖分解
//   - rangeset.go: 规范化区间集合 [RangeSet] 的并/交/差代数
//
// 上层容器（pkg/ipam/xalloc 的分配器、pkg/route/xtrie 的最长前缀
// 匹配树）构建在本包之上并复用本包的错误变量。
//
// # 快速示例
//
// 解析、规范化与网络计算：
//
//	c := xip.MustParseCIDR("192.168.1.0/24")
//	fmt.Println(c.Network())        // 192.168.1.0
//	b, _ := c.Broadcast()
//	fmt.Println(b)                  // 192.168.1.255
//	fmt.Println(c.Size())           // 256
//
//	a := xip.MustParseAddr("2001:0db8:0000:0000:0000:0000:0000:0001")
//	fmt.Println(a)                  // 2001:db8::1
//
// 范围代数：
//
//	set, _ := xip.ParseRangeSet([]string{
//	    "192.168.1.0/25",
//	    "192.168.1.128/25",      // 相邻，自动合并
//	})
//	fmt.Println(set.Len())          // 1
//	fmt.Println(set.Size())         // 256
//
// # 值语义与并发
//
// [Addr]、[CIDR]、[Range]、[RangeSet] 都是不可变值类型：每个运算
// 返回新实例，原值不变，可以在多个 goroutine 间只读共享而无需加锁。
// [Addr]、[CIDR]、[Range] 可直接比较（==）并用作 map key。
//
// 惰性序列（[CIDR.Hosts]、[CIDR.Subnets]、[Range.IPs]、[RangeSet.IPs]）
// 是拉取式、单遍的迭代器：每次调用方法得到全新的可重启序列，没有
// 隐式缓存；消费方停止迭代即可，没有清理义务。IPv6 大块的地址数是
// 天文数字，迭代器不设上限，由调用方自行限量（参见 [CollectN]）。
//
// # 文本文法
//
// [ParseAddr] 实现完整的地址文法而非委托标准库：
//   - IPv4 严格点分十进制：恰好 4 段、仅十进制数字、除 "0" 外
//     不允许前导零、数值 0–255
//   - IPv6 冒号十六进制：至多一个 "::" 压缩（必须顶替至少一组零，
//     出现第二个即拒绝），连续 3 个冒号直接拒绝，每组 1–4 位十六进制
//   - RFC 4291 混合写法：末段含 '.' 时尾巴按严格 IPv4 处理并折算
//     为 2 组，头部展开后必须恰好 6 组
//   - zone ID（'%'）一律拒绝：数值模型无法保留 zone 信息
//
// [Addr.String] 输出 RFC 5952 规范形式：小写十六进制、最长零组串
// 压缩（>= 2 组，并列取最左，单个零组不压缩）；IPv4-mapped 地址
// （::ffff:a.b.c.d）和低 32 位大于 1 的 IPv4-compatible 地址
// （::a.b.c.d）输出混合写法，"::" 和 "::1" 保持原样。
// 规范形式是不动点：解析后再格式化得到完全相同的字符串。
//
// # 错误处理
//
// 全库只有四类预定义错误，所有失败路径都包装其中一类并附带原因，
// 支持 errors.Is 跨包分流：
//
//	_, err := xip.ParseAddr("300.1.2.3")
//	if errors.Is(err, xip.ErrParse) {
//	    // 处理非法输入
//	}
//
//   - [ErrParse]: 解析边界处的非法文本/数值/字节输入
//   - [ErrVersionMismatch]: IPv4 与 IPv6 操作数混用
//   - [ErrOutOfRange]: 前缀长度、位宽、地址运算结果越界
//   - [ErrInvariant]: 类型正确但对当前状态没有定义的操作
//
// 库内不做任何恢复：每个操作要么完整成功并返回不可变结果，
// 要么失败且没有副作用。
//
// # 与 net/netip 的关系
//
// convert.go 提供与 [net/netip] 和 [go4.org/netipx] 的双向转换
// （[AddrFromNetip]、[Addr.Netip]、[RangeSet.IPSet] 等）。
// 注意两点语义差异：
//   - IPv4-mapped IPv6 地址经 [AddrFromNetip] 归一化为纯 IPv4
//   - 低 32 位大于 1 的 IPv4-compatible 地址（如 ::0.0.0.2）
//     本库输出混合写法，netip 输出 "::2"——数值相等，文本不同
//
// # Go 版本要求
//
// xip 使用 Go 1.23+ 的 [iter.Seq] 迭代器特性，与项目 go.mod 对齐。
package xip
