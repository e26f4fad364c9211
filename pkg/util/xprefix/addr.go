package xprefix

import (
	"encoding/binary"
	"net/netip"
)

// IsIPv4Mapped 报告 addr 是否表示一个 IPv4 地址。
// 纯 IPv4 形式（Is4）与 IPv4-mapped IPv6 形式（Is4In6，即低端第 32–79 位
// 为 0xFFFF 且第 80–127 位为零）都视为 IPv4。
// 该判断决定后续算术按 32 位还是 128 位空间处理。
func IsIPv4Mapped(addr netip.Addr) bool {
	return addr.Is4() || addr.Is4In6()
}

// EffectiveBits 返回 addr 的有效位宽：IPv4（含 IPv4-mapped）为 32，
// 其余合法地址为 128。无效地址返回 0。
func EffectiveBits(addr netip.Addr) int {
	if IsIPv4Mapped(addr) {
		return 32
	}
	if addr.IsValid() {
		return 128
	}
	return 0
}

// addr16 将 addr 统一为 128 位（16 字节）形式。
// 纯 IPv4 地址嵌入为 IPv4-mapped IPv6；其余原样返回。
func addr16(addr netip.Addr) netip.Addr {
	if addr.Is4() {
		return netip.AddrFrom16(addr.As16())
	}
	return addr
}

// mask32 返回前 bits 位为一的 32 位网络掩码。
// bits == 0 直接返回 0，不经过会溢出的全位宽移位。
func mask32(bits uint8) uint32 {
	if bits == 0 {
		return 0
	}
	return ^uint32(0) << (32 - bits)
}

// addrUint32 返回 IPv4（含 IPv4-mapped）地址的低 32 位，网络字节序。
// 前置条件：addr.Is4() 或 addr.Is4In6()。
func addrUint32(addr netip.Addr) uint32 {
	b := addr.As4()
	return binary.BigEndian.Uint32(b[:])
}

// mappedFromUint32 将 32 位 IPv4 值重新嵌入 IPv4-mapped IPv6 形式，
// 保持固定的 ::ffff: 标记位不变。
func mappedFromUint32(v uint32) netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return netip.AddrFrom16(netip.AddrFrom4(b).As16())
}

// mask16 在完整的 128 位空间内将 addr 的前 bits 位之外的位全部清零。
// 前置条件：addr 为 16 字节形式，bits <= 128。
func mask16(addr netip.Addr, bits uint8) netip.Addr {
	a := addr.As16()
	for i := range a {
		keep := int(bits) - i*8
		switch {
		case keep >= 8:
			// 整字节落在网络部分，原样保留
		case keep <= 0:
			a[i] = 0
		default:
			a[i] &= 0xff << (8 - keep)
		}
	}
	return netip.AddrFrom16(a)
}

// canonicalAddr 在 addr 的有效位宽内清零前 bits 位之外的所有位。
// IPv4-mapped 地址在 32 位空间掩码后重新嵌入，避免清除 ::ffff: 标记位。
// 幂等：对已规范化的地址再次施加同样的掩码是恒等变换。
func canonicalAddr(addr netip.Addr, bits uint8) netip.Addr {
	if addr.Is4In6() {
		return mappedFromUint32(addrUint32(addr) & mask32(bits))
	}
	return mask16(addr, bits)
}
