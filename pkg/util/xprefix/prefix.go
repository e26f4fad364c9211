package xprefix

import (
	"cmp"
	"net/netip"
	"strconv"
)

// Prefix 是一个规范化的 CIDR 网络前缀：网络基址加前缀长度的不可变值对。
//
// 不变式（构造时建立，之后不再改变）：
//   - 存储地址总是 128 位形式，且为掩码后的网络基址——有效位宽内
//     前缀长度之外的所有位均为零；
//   - IPv4-mapped 地址的前缀长度不超过 32，其余不超过 128。
//
// 构造是唯一的掩码点；Prefix 构造后只读，可自由复制和跨 goroutine 共享。
// 零值 Prefix 无效。
type Prefix struct {
	addr netip.Addr
	bits uint8
}

// New 从地址和前缀长度构造规范化的 Prefix。
// 纯 IPv4 地址先嵌入为 IPv4-mapped IPv6 形式；bits 超出地址有效位宽
// （IPv4 为 32，IPv6 为 128）时返回 [ErrMaskExceedsWidth] 分类的错误。
func New(addr netip.Addr, bits int) (Prefix, error) {
	if !addr.IsValid() || addr.Zone() != "" {
		return Prefix{}, &ParseError{Kind: ErrInvalidAddress, Input: addr.String()}
	}
	if bits < 0 || bits > 255 {
		return Prefix{}, &ParseError{Kind: ErrInvalidMask, Input: strconv.Itoa(bits)}
	}
	width := EffectiveBits(addr)
	if bits > width {
		return Prefix{}, &ParseError{
			Kind:  ErrMaskExceedsWidth,
			Input: strconv.Itoa(bits),
			Bits:  bits,
			Width: width,
		}
	}
	return Prefix{
		addr: canonicalAddr(addr16(addr), uint8(bits)),
		bits: uint8(bits),
	}, nil
}

// Addr 返回规范化的网络基址（128 位形式）。
func (p Prefix) Addr() netip.Addr {
	return p.addr
}

// Bits 返回前缀长度。无效 Prefix 返回 -1。
func (p Prefix) Bits() int {
	if !p.IsValid() {
		return -1
	}
	return int(p.bits)
}

// IsValid 报告 p 是否为有效前缀。零值 Prefix 无效。
func (p Prefix) IsValid() bool {
	return p.addr.IsValid()
}

// IsIPv4Mapped 报告 p 的网络地址是否表示 IPv4 网络。
func (p Prefix) IsIPv4Mapped() bool {
	return p.addr.Is4In6()
}

// EffectiveBits 返回 p 的有效位宽：IPv4 网络为 32，IPv6 网络为 128。
// 无效 Prefix 返回 0。
func (p Prefix) EffectiveBits() int {
	return EffectiveBits(p.addr)
}

// Compare 按网络基址、再按前缀长度比较两个 Prefix。
// 返回负值、零或正值，可直接用于排序。
func (p Prefix) Compare(o Prefix) int {
	if c := p.addr.Compare(o.addr); c != 0 {
		return c
	}
	return cmp.Compare(p.bits, o.bits)
}
