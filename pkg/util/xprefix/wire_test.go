package xprefix

import (
	"encoding/json"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefix_BinaryRoundTrip(t *testing.T) {
	for _, s := range []string{
		"192.168.1.0/24", "0.0.0.0/0", "10.0.0.1/32",
		"2001:db8::/32", "::/0", "2001:db8::1/128",
	} {
		p := MustParse(s)

		data, err := p.MarshalBinary()
		require.NoError(t, err, s)
		require.Len(t, data, WireSize, s)
		assert.Equal(t, byte(p.Bits()), data[WireAddrSize], s)

		var back Prefix
		require.NoError(t, back.UnmarshalBinary(data), s)
		assert.Equal(t, p, back, s)
	}
}

// 线上布局：16 字节网络序地址 + 1 字节前缀长度。
func TestPrefix_WireLayout(t *testing.T) {
	p := MustParse("192.168.1.0/24")
	data, err := p.MarshalBinary()
	require.NoError(t, err)

	want := append(make([]byte, 10), 0xff, 0xff, 192, 168, 1, 0, 24)
	assert.Equal(t, want, data)
}

func TestPrefix_UnmarshalBinary_Invalid(t *testing.T) {
	var p Prefix

	err := p.UnmarshalBinary(make([]byte, 16))
	assert.ErrorIs(t, err, ErrUnsupportedConversion)

	err = p.UnmarshalBinary(make([]byte, 18))
	assert.ErrorIs(t, err, ErrUnsupportedConversion)

	// IPv4-mapped 地址携带超出 32 的前缀长度
	data, err := MustParse("10.0.0.0/8").MarshalBinary()
	require.NoError(t, err)
	data[WireAddrSize] = 64
	assert.ErrorIs(t, p.UnmarshalBinary(data), ErrMaskExceedsWidth)

	// IPv6 地址携带超出 128 的前缀长度
	data, err = MustParse("2001:db8::/32").MarshalBinary()
	require.NoError(t, err)
	data[WireAddrSize] = 200
	assert.ErrorIs(t, p.UnmarshalBinary(data), ErrMaskExceedsWidth)
}

// 未掩码的主机位经由构造重新规范化，而非报错。
func TestPrefix_UnmarshalBinary_Canonicalizes(t *testing.T) {
	raw := AddrToWire(netip.MustParseAddr("192.168.1.77"))
	data := append(raw[:], 24)

	var p Prefix
	require.NoError(t, p.UnmarshalBinary(data))
	assert.Equal(t, "192.168.1.0/24", p.String())
}

func TestPrefix_MarshalBinary_Invalid(t *testing.T) {
	var zero Prefix
	_, err := zero.MarshalBinary()
	assert.ErrorIs(t, err, ErrUnsupportedConversion)
}

func TestPrefix_AppendBinary(t *testing.T) {
	p := MustParse("10.0.0.0/8")
	buf := []byte{0xde, 0xad}
	out, err := p.AppendBinary(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad}, out[:2])
	assert.Len(t, out, 2+WireSize)
}

func TestAddrWire(t *testing.T) {
	// 纯 IPv4 编码为 IPv4-mapped 形式
	w := AddrToWire(netip.MustParseAddr("192.168.1.1"))
	assert.Equal(t, [WireAddrSize]byte{10: 0xff, 11: 0xff, 12: 192, 13: 168, 14: 1, 15: 1}, w)

	back, err := AddrFromWire(w[:])
	require.NoError(t, err)
	assert.Equal(t, netip.MustParseAddr("::ffff:192.168.1.1"), back)

	_, err = AddrFromWire(w[:15])
	assert.ErrorIs(t, err, ErrUnsupportedConversion)
}

func TestPrefix_TextRoundTrip(t *testing.T) {
	p := MustParse("2001:db8::/32")

	text, err := p.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2001:db8::/32", string(text))

	var back Prefix
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, p, back)

	// 零值往返
	var zero Prefix
	text, err = zero.MarshalText()
	require.NoError(t, err)
	assert.Empty(t, text)
	require.NoError(t, back.UnmarshalText(text))
	assert.False(t, back.IsValid())
}

func TestPrefix_JSON(t *testing.T) {
	type rule struct {
		Net  Prefix `json:"net"`
		Note string `json:"note"`
	}

	in := rule{Net: MustParse("192.168.1.5/24"), Note: "lan"}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"net":"192.168.1.0/24","note":"lan"}`, string(data))

	var out rule
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in.Net, out.Net)

	assert.Error(t, json.Unmarshal([]byte(`{"net":"10.0.0.0"}`), &out))
}
