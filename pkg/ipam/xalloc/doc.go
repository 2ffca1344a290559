// Package xalloc 提供 CIDR 块内的首次适配地址分配器和地址池定义文件加载。
//
// xalloc 基于 [github.com/omeyang/ipkit/pkg/ip/xip] 的范围集合代数构建：
//
//   - [Allocator]：在父 CIDR 块内按地址升序做首次适配（first-fit）分配，
//     支持单地址和整块（CIDR）的申请与释放
//   - 空闲视图：[Allocator.Free]、[Allocator.FreeBlocks]、[Allocator.Utilization]
//   - [LoadPools] / [LoadPoolsFromBytes]：从 YAML/JSON 定义文件批量构建地址池
//   - [PoolWatcher]：监视定义文件变更并自动重建地址池集合
//
// # 快速示例
//
// 创建分配器并分配地址：
//
//	parent := xip.MustParseCIDR("192.168.1.0/24")
//	alloc, err := xalloc.New(parent)
//	if err != nil {
//	    return err
//	}
//	addr, ok := alloc.AllocateNext()  // 192.168.1.1
//
// 从定义文件加载地址池：
//
//	pools, err := xalloc.LoadPools("/etc/ipam/pools.yaml")
//	if err != nil {
//	    return err
//	}
//	office := pools["office"]
//	fmt.Printf("utilization: %.2f\n", office.Utilization())
//
// 定义文件格式（YAML）：
//
//	pools:
//	  - name: office
//	    cidr: 192.168.1.0/24
//	    taken:
//	      - 192.168.1.1
//	      - 192.168.1.10-192.168.1.20
//	      - 192.168.1.128/25
//
// # 设计决策
//
//   - 分配状态用 [xip.RangeSet] 表示而非逐地址位图：占用集合天然
//     规范化（有序、互不重叠、相邻合并），IPv6 大块也只占常数内存
//   - 每次分配/释放整体替换占用集合（不可变值的函数式更新），
//     失败路径不会留下半更新状态
//   - [Allocator.NextAvailable] 从父块的第一个可用主机地址开始扫描，
//     边界取舍遵循 [xip.CIDR.FirstHost] 的默认规则：IPv4 且前缀 < 31 时
//     跳过网络地址和广播地址，IPv6 与 /31、/32 包含边界
//   - Allocate*/Release* 返回 bool 而非 error：申请失败（已占用、越界）
//     是正常业务结果，不是异常
//
// # 并发语义
//
// [Allocator] 内部不加锁：多 goroutine 并发修改需要调用方自行加锁。
// 构造后只读共享是安全的。[PoolWatcher] 的 Start/Stop 并发安全。
//
// # 错误处理
//
// 构造与加载错误分两层：
//
//   - 地址语义错误来自 xip：[xip.ErrParse]、[xip.ErrVersionMismatch]、
//     [xip.ErrInvariant]
//   - 定义文件错误是本包哨兵：[ErrEmptyPath]、[ErrUnsupportedFormat]、
//     [ErrLoadFailed]、[ErrParseFailed]、[ErrDuplicatePool]
//
// 均可用 [errors.Is] 判断。
package xalloc
