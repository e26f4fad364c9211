package xsubnets

import "errors"

// 配置加载和解析相关错误。
var (
	// ErrEmptyPath 表示配置文件路径为空。
	ErrEmptyPath = errors.New("xsubnets: empty config path")

	// ErrUnsupportedFormat 表示不支持的配置格式。
	ErrUnsupportedFormat = errors.New("xsubnets: unsupported config format")

	// ErrLoadFailed 表示配置加载失败。
	ErrLoadFailed = errors.New("xsubnets: failed to load config")

	// ErrParseFailed 表示配置解析失败。
	ErrParseFailed = errors.New("xsubnets: failed to parse config")

	// ErrInvalidEntry 表示某个组内的 CIDR 条目非法。
	ErrInvalidEntry = errors.New("xsubnets: invalid subnet entry")
)
