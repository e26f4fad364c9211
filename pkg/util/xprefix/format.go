package xprefix

import "strconv"

// String 将规范化前缀渲染为 "ip/prefix" 文本。
// IPv4-mapped 地址渲染低 32 位的点分十进制形式，其余渲染标准 IPv6
// 文本形式；总是追加 '/' 和十进制前缀长度。
//
// 对任何 [Parse] 能产出的值，String 是其精确逆运算（往返后得到
// 逐字节相等的 Prefix），但文本不保证与原输入逐字符相同
// （IPv6 字面量会归一化，如 "2001:DB8::0/32" → "2001:db8::/32"）。
// 无效 Prefix 返回 "invalid Prefix"。
func (p Prefix) String() string {
	if !p.IsValid() {
		return "invalid Prefix"
	}
	var host string
	if p.addr.Is4In6() {
		host = p.addr.Unmap().String()
	} else {
		host = p.addr.String()
	}
	return host + "/" + strconv.Itoa(int(p.bits))
}
