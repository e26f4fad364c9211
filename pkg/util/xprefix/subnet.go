package xprefix

import (
	"net/netip"

	"go4.org/netipx"
)

// Min 返回网络的最小地址。
// 存储地址在构造时已掩码为网络基址，直接返回即可。
func (p Prefix) Min() netip.Addr {
	return p.addr
}

// Max 返回网络的最大地址：有效位宽内前缀长度之外的所有位置一。
//
// 前缀长度 0 时结果为有效位宽的全一值（32 或 128 个一）。
// 按字节直接合成，不使用"左移全位宽再减一"的公式——全位宽移位在
// 多数位表示中是未定义或溢出行为。
func (p Prefix) Max() netip.Addr {
	if !p.IsValid() {
		return netip.Addr{}
	}
	if p.addr.Is4In6() {
		return mappedFromUint32(addrUint32(p.addr) | ^mask32(p.bits))
	}
	a := p.addr.As16()
	for i := range a {
		keep := int(p.bits) - i*8
		switch {
		case keep >= 8:
			// 整字节落在网络部分
		case keep <= 0:
			a[i] = 0xff
		default:
			a[i] |= 0xff >> keep
		}
	}
	return netip.AddrFrom16(a)
}

// Range 返回网络的地址范围 [Min, Max]。
// 总有 Min <= Max，当且仅当前缀长度等于有效位宽时两者相等。
func (p Prefix) Range() (netip.Addr, netip.Addr) {
	return p.Min(), p.Max()
}

// IPRange 将网络的地址范围桥接为 [netipx.IPRange]，
// 便于接入 netipx 的集合与合并设施。无效 Prefix 返回零值。
func (p Prefix) IPRange() netipx.IPRange {
	if !p.IsValid() {
		return netipx.IPRange{}
	}
	return netipx.IPRangeFrom(p.Min(), p.Max())
}

// Contains 报告 addr 是否落在网络 p 内：将 addr 在 p 的有效位宽内
// 掩码到 p 的前缀长度，与网络基址比较相等。
//
// 纯 IPv4 候选地址先嵌入为 IPv4-mapped 形式。IPv4-mapped 网络只包含
// IPv4（含 mapped）候选；IPv6 网络把 IPv4-mapped 候选当作普通 128 位值
// 处理（因此 ::/0 包含一切，包括全部 mapped 地址）。
func (p Prefix) Contains(addr netip.Addr) bool {
	if !p.IsValid() || !addr.IsValid() || addr.Zone() != "" {
		return false
	}
	addr = addr16(addr)
	if p.addr.Is4In6() {
		if !addr.Is4In6() {
			return false
		}
		return addrUint32(addr)&mask32(p.bits) == addrUint32(p.addr)
	}
	return mask16(addr, p.bits) == p.addr
}

// ContainsPrefix 报告 o 是否是 p 的子网：o 的网络基址落在 p 内，
// 且 o 的前缀至少与 p 一样具体（o.Bits() >= p.Bits()）。
// 自反：任何前缀都是自身的子网；一般不对称。
func (p Prefix) ContainsPrefix(o Prefix) bool {
	if !o.IsValid() {
		return false
	}
	return p.Contains(o.addr) && o.bits >= p.bits
}
