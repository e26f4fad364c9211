package xprefix

import (
	"errors"
	"net/netip"
	"testing"
)

// =============================================================================
// 解析/渲染往返模糊测试
// =============================================================================

func FuzzParseRoundTrip(f *testing.F) {
	f.Add("192.168.1.5/24")
	f.Add("0.0.0.0/0")
	f.Add("255.255.255.255/32")
	f.Add("2001:db8::1/32")
	f.Add("::/0")
	f.Add("::ffff:10.0.0.1/8")
	f.Add("10.0.0.0")
	f.Add("10.0.0.0/33")
	f.Add("banana/24")

	f.Fuzz(func(t *testing.T, s string) {
		p, err := Parse(s)
		if err != nil {
			// 失败必须是封闭分类之一，且绝不 panic
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Parse(%q) returned non-ParseError: %v", s, err)
			}
			switch pe.Kind {
			case ErrMissingSlash, ErrInvalidAddress, ErrInvalidMask, ErrMaskExceedsWidth:
			default:
				t.Fatalf("Parse(%q) returned unexpected kind: %v", s, pe.Kind)
			}
			return
		}

		// 往返律：format 后重新 parse 得到逐字节相等的前缀
		again, err := Parse(p.String())
		if err != nil {
			t.Fatalf("re-parse of %q (from %q) failed: %v", p.String(), s, err)
		}
		if p != again {
			t.Errorf("round-trip mismatch: %q → %v → %v", s, p, again)
		}

		// 不变式：存储地址已规范化，位宽约束成立
		if p.Addr() != canonicalAddr(p.Addr(), uint8(p.Bits())) {
			t.Errorf("Parse(%q): stored address not canonical", s)
		}
		if p.Bits() > p.EffectiveBits() {
			t.Errorf("Parse(%q): bits %d exceed width %d", s, p.Bits(), p.EffectiveBits())
		}
	})
}

// =============================================================================
// 子网算术性质模糊测试
// =============================================================================

func FuzzSubnetProperties(f *testing.F) {
	f.Add("10.0.0.1/8", "10.1.2.3")
	f.Add("2001:db8::/32", "2001:db8::1")
	f.Add("::/0", "255.255.255.255")
	f.Add("0.0.0.0/0", "::1")

	f.Fuzz(func(t *testing.T, prefixStr, addrStr string) {
		p, err := Parse(prefixStr)
		if err != nil {
			return
		}

		lo, hi := p.Range()
		if lo.Compare(hi) > 0 {
			t.Errorf("%v: min %v > max %v", p, lo, hi)
		}
		if (lo == hi) != (p.Bits() == p.EffectiveBits()) {
			t.Errorf("%v: min==max must hold iff full-width prefix", p)
		}
		if !p.Contains(lo) || !p.Contains(hi) {
			t.Errorf("%v must contain its own range bounds", p)
		}
		if !p.ContainsPrefix(p) {
			t.Errorf("%v must contain itself", p)
		}

		addr, err := netip.ParseAddr(addrStr)
		if err != nil || addr.Zone() != "" {
			return
		}
		// 包含者的范围必然覆盖被包含的地址
		if p.Contains(addr) {
			a16 := addr16(addr)
			if a16.Compare(lo) < 0 || a16.Compare(hi) > 0 {
				t.Errorf("%v contains %v but %v outside [%v, %v]", p, addr, a16, lo, hi)
			}
		}
	})
}

// =============================================================================
// 二进制布局往返模糊测试
// =============================================================================

func FuzzWireRoundTrip(f *testing.F) {
	seed, _ := MustParse("192.168.1.0/24").MarshalBinary()
	f.Add(seed)
	seed, _ = MustParse("2001:db8::/32").MarshalBinary()
	f.Add(seed)
	f.Add(make([]byte, 17))
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		var p Prefix
		if err := p.UnmarshalBinary(data); err != nil {
			return
		}
		out, err := p.MarshalBinary()
		if err != nil {
			t.Fatalf("marshal after unmarshal failed: %v", err)
		}
		// 编码规范化后再解码必须稳定
		var again Prefix
		if err := again.UnmarshalBinary(out); err != nil {
			t.Fatalf("re-unmarshal failed: %v", err)
		}
		if p != again {
			t.Errorf("wire round-trip mismatch: %v != %v", p, again)
		}
	})
}
