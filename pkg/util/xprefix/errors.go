package xprefix

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingSlash 表示输入缺少 '/' 分隔符。
	ErrMissingSlash = errors.New("xprefix: missing '/' separator")

	// ErrInvalidAddress 表示地址部分不是合法的 IPv4 或 IPv6 字面量。
	ErrInvalidAddress = errors.New("xprefix: invalid IP address")

	// ErrInvalidMask 表示掩码部分不是 0–255 范围内的非负十进制整数。
	ErrInvalidMask = errors.New("xprefix: invalid mask")

	// ErrMaskExceedsWidth 表示掩码数值超出地址族的位宽（IPv4 为 32，IPv6 为 128）。
	ErrMaskExceedsWidth = errors.New("xprefix: prefix length exceeds network bit count")

	// ErrUnsupportedConversion 表示请求的二进制/文本转换对给定的源/目标组合未定义。
	ErrUnsupportedConversion = errors.New("xprefix: unsupported conversion")
)

// ParseError 是解析或转换失败的结构化错误。
// Kind 为上方预定义错误变量之一，携带格式化用户消息所需的全部数据，
// 绝不只是一个裸字符串。
type ParseError struct {
	// Kind 是错误分类，总是预定义错误变量之一。
	Kind error

	// Input 是触发错误的子串（地址部分、掩码部分或整个输入）。
	Input string

	// Bits 是被拒绝的前缀长度数值（仅 ErrMaskExceedsWidth）。
	Bits int

	// Width 是被违反的位宽上界，32 或 128（仅 ErrMaskExceedsWidth）。
	Width int
}

// Error 返回详细模式的用户消息，包含触发错误的子串；
// ErrMaskExceedsWidth 同时包含被拒绝的数值和被违反的上界。
func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrMissingSlash:
		return fmt.Sprintf("xprefix: invalid CIDR %q: expected IP/PREFIX format", e.Input)
	case ErrInvalidAddress:
		return fmt.Sprintf("xprefix: invalid IP address %q", e.Input)
	case ErrInvalidMask:
		return fmt.Sprintf("xprefix: mask value %q not a valid mask", e.Input)
	case ErrMaskExceedsWidth:
		return fmt.Sprintf("xprefix: prefix length %d exceeds network bit count %d", e.Bits, e.Width)
	case ErrUnsupportedConversion:
		return fmt.Sprintf("xprefix: unsupported conversion: %s", e.Input)
	default:
		return e.Kind.Error()
	}
}

// Unwrap 返回错误分类，使 errors.Is 可按预定义错误变量分流。
func (e *ParseError) Unwrap() error {
	return e.Kind
}

// Redact 返回仅含分类、不含任何负载的错误，用于剥离诊断细节的宿主
// （抑制模式下只有错误种类可见）。
func (e *ParseError) Redact() error {
	return e.Kind
}
