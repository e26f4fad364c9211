// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xprefix: CIDR 前缀运算库，基于 net/netip + go4.org/netipx 的
//     规范化、解析、子网边界计算、包含判定与二进制编码
//
// 设计原则：
//   - 所有地址统一存储为 128 位形式，IPv4 以 IPv4-mapped 嵌入
//   - 构造即规范化，值在生命周期内保持不变式
//   - 哨兵错误 + errors.Is 的封闭错误分类
package util
