// Package xprefix 提供 CIDR 网络前缀算术库。
//
// xprefix 基于 Go 标准库 [net/netip] 和社区库 [go4.org/netipx] 构建，
// 提供 SQL 引擎（Presto 风格 IPPREFIX）语义的网络前缀类型 [Prefix]：
// 从 "ip/prefix" 文本或 (地址, 前缀长度) 构造规范化前缀，
// 并回答最小/最大地址、地址范围和子网包含关系等结构性查询。
//
// # 核心功能
//
//   - addr.go: 128 位统一地址模型，[IsIPv4Mapped] / [EffectiveBits] 判断函数
//   - prefix.go: [Prefix] 类型与 [New] 构造（构造时一次性掩码规范化）
//   - parse.go: [Parse] 严格解析 "ip/prefix" 文本，带错误分类
//   - subnet.go: [Prefix.Min] / [Prefix.Max] / [Prefix.Range] /
//     [Prefix.Contains] / [Prefix.ContainsPrefix] 子网算术
//   - format.go: [Prefix.String] 文本渲染（IPv4-mapped 显示为点分十进制）
//   - wire.go: 17 字节二进制布局（16 字节网络序地址 + 1 字节前缀长度）
//
// # 统一 128 位地址模型
//
// 所有地址统一存放在 128 位 IPv6 地址空间中；IPv4 地址使用标准的
// IPv4-mapped IPv6 形式（高 80 位为零、随后 16 位全一、低 32 位为 IPv4 地址）。
// 掩码运算、最大地址合成和文本渲染在"有效位宽"（IPv4-mapped 为 32，
// 否则为 128）内进行：IPv4-mapped 地址在 32 位空间掩码后重新嵌入
// IPv4-mapped 形式，避免误清除固定的 ::ffff: 标记位。
//
// # 快速示例
//
// 解析并查询：
//
//	p, _ := xprefix.Parse("192.168.1.5/24")
//	fmt.Println(p)        // 192.168.1.0/24（构造时已规范化）
//	fmt.Println(p.Max())  // 192.168.1.255
//
// 子网包含判断：
//
//	outer := xprefix.MustParse("10.0.0.0/8")
//	inner := xprefix.MustParse("10.1.0.0/16")
//	fmt.Println(outer.ContainsPrefix(inner))  // true
//	fmt.Println(inner.ContainsPrefix(outer))  // false
//
// # 设计决策
//
//   - [Prefix] 是不可变值类型，构造是唯一的掩码点；构造后即满足
//     "存储地址为网络基址"不变式，算术操作不再重新掩码、也不会失败
//   - 前缀长度 0 的全一最大地址直接按字节合成，不依赖
//     "左移全位宽再减一"的溢出回绕行为
//   - 所有解析失败返回结构化的 [*ParseError]，预定义错误变量支持
//     errors.Is 分类；[ParseError.Redact] 支持抑制诊断细节的宿主
//   - 拒绝包含 IPv6 zone ID 的输入（netipx 会静默丢弃 zone 信息，
//     导致后续包含查询误判）
//
// # 错误分类
//
// 解析错误为封闭分类，地址错误优先于掩码错误，掩码语法错误优先于位宽检查：
//
//	_, err := xprefix.Parse("10.0.0.0/33")
//	if errors.Is(err, xprefix.ErrMaskExceedsWidth) {
//	    var pe *xprefix.ParseError
//	    errors.As(err, &pe)
//	    fmt.Println(pe.Bits, pe.Width)  // 33 32
//	}
//
// # 二进制布局
//
// 与宿主列式存储兼容的固定布局：地址为 16 字节网络序（大端），
// 前缀值为地址字节后紧跟 1 字节前缀长度，共 17 字节。
// 见 [Prefix.MarshalBinary] / [Prefix.UnmarshalBinary]。
package xprefix
