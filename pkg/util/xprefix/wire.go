package xprefix

import (
	"net/netip"
)

// 宿主列式存储使用的固定二进制布局。
const (
	// WireAddrSize 是单个地址的布局大小：16 字节，网络字节序（大端）。
	WireAddrSize = 16

	// WireSize 是前缀值的布局大小：16 字节地址后紧跟 1 字节前缀长度。
	WireSize = 17
)

// AddrToWire 将地址编码为 16 字节网络序布局。
// 纯 IPv4 地址编码为 IPv4-mapped IPv6 形式。
func AddrToWire(addr netip.Addr) [WireAddrSize]byte {
	return addr16(addr).As16()
}

// AddrFromWire 从 16 字节网络序布局解码地址。
// 长度不符返回 [ErrUnsupportedConversion] 分类的错误。
func AddrFromWire(data []byte) (netip.Addr, error) {
	if len(data) != WireAddrSize {
		return netip.Addr{}, &ParseError{
			Kind:  ErrUnsupportedConversion,
			Input: "address wire value must be 16 bytes",
		}
	}
	var b [WireAddrSize]byte
	copy(b[:], data)
	return netip.AddrFrom16(b), nil
}

// MarshalBinary 将前缀编码为 17 字节布局：16 字节网络序地址加
// 1 字节前缀长度。无效 Prefix 返回错误。
func (p Prefix) MarshalBinary() ([]byte, error) {
	return p.AppendBinary(nil)
}

// AppendBinary 将 17 字节布局追加到 b 并返回扩展后的切片。
func (p Prefix) AppendBinary(b []byte) ([]byte, error) {
	if !p.IsValid() {
		return nil, &ParseError{
			Kind:  ErrUnsupportedConversion,
			Input: "cannot encode invalid Prefix",
		}
	}
	a := p.addr.As16()
	b = append(b, a[:]...)
	return append(b, p.bits), nil
}

// UnmarshalBinary 从 17 字节布局解码前缀。
// 经由 [New] 构造：前缀长度超出地址族位宽时返回 [ErrMaskExceedsWidth]，
// 未掩码的主机位被规范化清零。长度不符返回 [ErrUnsupportedConversion]。
func (p *Prefix) UnmarshalBinary(data []byte) error {
	if len(data) != WireSize {
		return &ParseError{
			Kind:  ErrUnsupportedConversion,
			Input: "prefix wire value must be 17 bytes",
		}
	}
	addr, err := AddrFromWire(data[:WireAddrSize])
	if err != nil {
		return err
	}
	np, err := New(addr, int(data[WireAddrSize]))
	if err != nil {
		return err
	}
	*p = np
	return nil
}

// MarshalText 实现 [encoding.TextMarshaler]，编码为 "ip/prefix" 文本。
// 零值 Prefix 编码为空串，与 netip 系列类型一致。
func (p Prefix) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return []byte(""), nil
	}
	return []byte(p.String()), nil
}

// UnmarshalText 实现 [encoding.TextUnmarshaler]，解析 "ip/prefix" 文本。
// 空输入还原为零值 Prefix。
func (p *Prefix) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*p = Prefix{}
		return nil
	}
	np, err := Parse(string(data))
	if err != nil {
		return err
	}
	*p = np
	return nil
}
