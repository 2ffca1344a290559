// Package ipam 提供地址分配管理相关的子包。
//
// 子包列表：
//   - xalloc: CIDR 块内的首次适配地址分配器，地址池定义文件
//     （YAML/JSON）加载与变更监视
//
// 设计原则：
//   - 分配状态建立在 xip 的范围集合代数上，占用集合始终规范化
//   - 业务性失败（已占用、越界）用 bool 表示，结构性错误用哨兵
package ipam
