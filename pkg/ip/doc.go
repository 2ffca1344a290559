// Package ip 提供 IP 地址模型相关的子包。
//
// 子包列表：
//   - xip: IP 地址核心模型，128 位无符号整数运算、v4/v6 解析与
//     RFC 5952 规范化输出、CIDR 数学、地址范围与规范化范围集合代数、
//     与 net/netip + go4.org/netipx 的互转
//
// 设计原则：
//   - 不可变值类型，可比较、可做 map 键
//   - v4 与 v6 统一在同一套 128 位运算上，不做隐式版本转换
//   - 错误用哨兵 + errors.Is 判断
package ip
