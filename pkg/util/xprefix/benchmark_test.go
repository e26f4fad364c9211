package xprefix

import (
	"net/netip"
	"testing"
)

// =============================================================================
// 解析基准测试
// =============================================================================

func BenchmarkParse(b *testing.B) {
	b.Run("IPv4", func(b *testing.B) {
		b.ReportAllocs()
		for b.Loop() {
			_, _ = Parse("192.168.1.5/24")
		}
	})
	b.Run("IPv6", func(b *testing.B) {
		b.ReportAllocs()
		for b.Loop() {
			_, _ = Parse("2001:db8::1/32")
		}
	})
	b.Run("invalid", func(b *testing.B) {
		b.ReportAllocs()
		for b.Loop() {
			_, _ = Parse("10.0.0.0/33")
		}
	})
}

// =============================================================================
// 子网算术基准测试
// =============================================================================

func BenchmarkSubnet(b *testing.B) {
	p4 := MustParse("10.0.0.0/8")
	p6 := MustParse("2001:db8::/32")
	addr4 := netip.MustParseAddr("10.1.2.3")
	addr6 := netip.MustParseAddr("2001:db8::1")

	b.Run("Max/IPv4", func(b *testing.B) {
		for b.Loop() {
			_ = p4.Max()
		}
	})
	b.Run("Max/IPv6", func(b *testing.B) {
		for b.Loop() {
			_ = p6.Max()
		}
	})
	b.Run("Contains/IPv4", func(b *testing.B) {
		for b.Loop() {
			_ = p4.Contains(addr4)
		}
	})
	b.Run("Contains/IPv6", func(b *testing.B) {
		for b.Loop() {
			_ = p6.Contains(addr6)
		}
	})
	b.Run("ContainsPrefix", func(b *testing.B) {
		inner := MustParse("10.1.0.0/16")
		for b.Loop() {
			_ = p4.ContainsPrefix(inner)
		}
	})
}

// =============================================================================
// 二进制布局基准测试
// =============================================================================

func BenchmarkWire(b *testing.B) {
	p := MustParse("192.168.1.0/24")
	data, _ := p.MarshalBinary()

	b.Run("MarshalBinary", func(b *testing.B) {
		b.ReportAllocs()
		for b.Loop() {
			_, _ = p.MarshalBinary()
		}
	})
	b.Run("UnmarshalBinary", func(b *testing.B) {
		b.ReportAllocs()
		var out Prefix
		for b.Loop() {
			_ = out.UnmarshalBinary(data)
		}
	})
}
