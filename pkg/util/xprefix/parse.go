package xprefix

import (
	"net/netip"
	"strconv"
	"strings"
)

// Parse 将 "ip/prefix" 文本解析为规范化的 [Prefix]。
//
// 校验顺序即错误优先级：
//  1. 缺少 '/' 分隔符 → [ErrMissingSlash]（不回退到全位宽默认掩码）；
//  2. 地址部分不是合法的 IPv4/IPv6 字面量 → [ErrInvalidAddress]；
//  3. 掩码部分不是 0–255 的十进制整数 → [ErrInvalidMask]；
//  4. 掩码数值超出实际解析出的地址族位宽 → [ErrMaskExceedsWidth]，
//     报告的上界为 32（IPv4 或 IPv4-mapped 字面量）或 128。
//
// 地址和掩码的合法性彼此独立检查：地址畸形时即使掩码同样越界，
// 也报告 [ErrInvalidAddress]；掩码语法错误优先于位宽检查。
//
// 设计决策: 拒绝包含 IPv6 zone ID 的地址（如 "fe80::1%eth0"）。
// zone 信息在包含查询与序列化中会被静默丢弃，属于高风险正确性问题。
func Parse(s string) (Prefix, error) {
	i := strings.IndexByte(s, '/')
	if i < 0 {
		return Prefix{}, &ParseError{Kind: ErrMissingSlash, Input: s}
	}
	addrPart, maskPart := s[:i], s[i+1:]

	addr, err := netip.ParseAddr(addrPart)
	if err != nil || addr.Zone() != "" {
		return Prefix{}, &ParseError{Kind: ErrInvalidAddress, Input: addrPart}
	}

	// 掩码先按 0–255 的绝对字节范围校验，再做地址族位宽检查。
	n, err := strconv.ParseUint(maskPart, 10, 8)
	if err != nil {
		return Prefix{}, &ParseError{Kind: ErrInvalidMask, Input: maskPart}
	}

	width := EffectiveBits(addr)
	if int(n) > width {
		return Prefix{}, &ParseError{
			Kind:  ErrMaskExceedsWidth,
			Input: maskPart,
			Bits:  int(n),
			Width: width,
		}
	}

	return Prefix{
		addr: canonicalAddr(addr16(addr), uint8(n)),
		bits: uint8(n),
	}, nil
}

// MustParse 与 [Parse] 相同，但失败时 panic。
// 用于测试和已知合法的字面量。
func MustParse(s string) Prefix {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}
