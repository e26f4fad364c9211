package xsubnets

import (
	"fmt"
	"net/netip"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"go4.org/netipx"

	"github.com/omeyang/ipkit/pkg/util/xprefix"
)

// Format 定义配置文件格式。
type Format string

// 支持的配置格式。
const (
	// FormatYAML YAML 格式（推荐用于 K8s ConfigMap）。
	FormatYAML Format = "yaml"

	// FormatJSON JSON 格式。
	FormatJSON Format = "json"
)

// groupsKey 是配置中子网组映射的根键。
const groupsKey = "groups"

// group 是一个已解析的命名子网组。
type group struct {
	prefixes []xprefix.Prefix
	set      *netipx.IPSet
}

// Groups 是一组命名子网组。构建后只读，可跨 goroutine 共享。
type Groups struct {
	groups map[string]*group
}

// Load 从文件路径加载子网组配置。
// 根据文件扩展名自动检测格式（.yaml/.yml 或 .json）。
func Load(path string) (*Groups, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return LoadBytes(data, format)
}

// LoadBytes 从字节数据加载子网组配置。
// 需要显式指定格式，适用于 K8s ConfigMap 等场景。
// 空数据或缺少 groups 键时返回空的 Groups。
func LoadBytes(data []byte, format Format) (*Groups, error) {
	k := koanf.New(".")
	if len(data) > 0 {
		if err := loadData(k, data, format); err != nil {
			return nil, err
		}
	}

	var raw map[string][]string
	if err := k.Unmarshal(groupsKey, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}

	g := &Groups{groups: make(map[string]*group, len(raw))}
	for name, entries := range raw {
		grp, err := buildGroup(name, entries)
		if err != nil {
			return nil, err
		}
		g.groups[name] = grp
	}
	return g, nil
}

// buildGroup 解析一个组的全部 CIDR 条目并合并为 IPSet。
// 任一条目非法即整体失败：部分生效的规则集比加载失败更危险。
func buildGroup(name string, entries []string) (*group, error) {
	prefixes := make([]xprefix.Prefix, 0, len(entries))
	var b netipx.IPSetBuilder
	for i, entry := range entries {
		p, err := xprefix.Parse(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: group %q entry %d: %w", ErrInvalidEntry, name, i, err)
		}
		prefixes = append(prefixes, p)
		b.AddRange(p.IPRange())
	}
	set, err := b.IPSet()
	if err != nil {
		return nil, fmt.Errorf("%w: group %q: %w", ErrInvalidEntry, name, err)
	}
	return &group{prefixes: prefixes, set: set}, nil
}

// Len 返回组的数量。
func (g *Groups) Len() int {
	return len(g.groups)
}

// Names 返回全部组名，按字典序排序。
func (g *Groups) Names() []string {
	names := make([]string, 0, len(g.groups))
	for name := range g.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Group 返回指定组的规范化前缀列表，顺序与配置一致。
// 组不存在时返回 (nil, false)。
func (g *Groups) Group(name string) ([]xprefix.Prefix, bool) {
	grp, ok := g.groups[name]
	if !ok {
		return nil, false
	}
	return grp.prefixes, true
}

// Contains 报告 addr 是否落在指定组的任一子网内。
// 组不存在或地址无效返回 false。
// 纯 IPv4 地址先嵌入为 IPv4-mapped 形式，与 xprefix 的统一地址模型对齐。
func (g *Groups) Contains(name string, addr netip.Addr) bool {
	grp, ok := g.groups[name]
	if !ok || !addr.IsValid() || addr.Zone() != "" {
		return false
	}
	if addr.Is4() {
		addr = netip.AddrFrom16(addr.As16())
	}
	return grp.set.Contains(addr)
}

// ContainsPrefix 报告 p 是否是指定组中某个子网的子网。
func (g *Groups) ContainsPrefix(name string, p xprefix.Prefix) bool {
	grp, ok := g.groups[name]
	if !ok || !p.IsValid() {
		return false
	}
	for _, outer := range grp.prefixes {
		if outer.ContainsPrefix(p) {
			return true
		}
	}
	return false
}

// =============================================================================
// 内部辅助函数
// =============================================================================

// detectFormat 根据文件扩展名检测配置格式。
func detectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown extension %s", ErrUnsupportedFormat, ext)
	}
}

// loadData 加载数据到 koanf 实例。
func loadData(k *koanf.Koanf, data []byte, format Format) error {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return ErrUnsupportedFormat
	}

	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return fmt.Errorf("%w: %w", ErrParseFailed, err)
	}
	return nil
}
