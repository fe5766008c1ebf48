package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	lru "github.com/hashicorp/golang-lru/v2"

	"flatcfg/pkg/contract"
	"flatcfg/plugins/antfu"
	"flatcfg/plugins/command"
	"flatcfg/plugins/comments"
	"flatcfg/plugins/eslintjs"
	"flatcfg/plugins/importx"
	"flatcfg/plugins/jsdoc"
	"flatcfg/plugins/jsonc"
	"flatcfg/plugins/node"
	"flatcfg/plugins/perfectionist"
	pregexp "flatcfg/plugins/regexp"
	"flatcfg/plugins/svelte"
	"flatcfg/plugins/typescript"
	"flatcfg/plugins/unicorn"
	"flatcfg/plugins/unusedimports"
)

// DefaultCacheSize: 句柄缓存容量。
const DefaultCacheSize = 64

// NewPlugin 工厂签名：构造一个新的插件/解析器句柄。
type NewPlugin func() *contract.Plugin

// Entry: 注册表条目。
type Entry struct {
	New NewPlugin
	// Peer: 需由目标项目自行安装；探测不到即视为模块不存在。
	Peer bool
}

// Plugins 模块说明符到工厂的注册表（显式、零反射）。
var Plugins = map[string]Entry{
	// 内置规则
	eslintjs.Module: {New: eslintjs.New},
	// 规则插件
	antfu.Module:         {New: antfu.New},
	command.Module:       {New: command.New},
	comments.Module:      {New: comments.New},
	importx.Module:       {New: importx.New},
	jsdoc.Module:         {New: jsdoc.New},
	jsonc.Module:         {New: jsonc.New},
	node.Module:          {New: node.New},
	perfectionist.Module: {New: perfectionist.New},
	pregexp.Module:       {New: pregexp.New},
	typescript.Module:    {New: typescript.New},
	unicorn.Module:       {New: unicorn.New},
	unusedimports.Module: {New: unusedimports.New},
	svelte.Module:        {New: svelte.New, Peer: true},
	// 解析器
	typescript.ParserModule: {New: typescript.NewParser},
	jsonc.ParserModule:      {New: jsonc.NewParser},
	svelte.ParserModule:     {New: svelte.NewParser, Peer: true},
}

// Specifiers 返回已注册的模块说明符（排序）。
func Specifiers() []string {
	out := make([]string, 0, len(Plugins))
	for k := range Plugins {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Source: 静态链接的 PluginSource。
// 句柄按说明符缓存于 LRU（并发安全）；解析失败不缓存。
type Source struct {
	probe   contract.EnvironmentProbe
	plugins map[string]Entry
	cache   *lru.Cache[string, *contract.Plugin]
}

// NewSource 基于 Plugins 注册表构造 Source；probe 可为 nil（不做 peer 检查与版本填充）。
func NewSource(probe contract.EnvironmentProbe, size int) (*Source, error) {
	return NewSourceWith(probe, Plugins, size)
}

// NewSourceWith 使用自定义注册表构造 Source（测试与嵌入场景）。
func NewSourceWith(probe contract.EnvironmentProbe, plugins map[string]Entry, size int) (*Source, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[string, *contract.Plugin](size)
	if err != nil {
		return nil, fmt.Errorf("registry: cache: %w", err)
	}
	return &Source{probe: probe, plugins: plugins, cache: c}, nil
}

// Resolve 实现 contract.PluginSource。返回缓存句柄的副本，调用方可自由修改。
func (s *Source) Resolve(ctx context.Context, specifier string) (*contract.Plugin, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p, ok := s.cache.Get(specifier); ok {
		return p.Clone(), nil
	}
	e, ok := s.plugins[specifier]
	if !ok || e.New == nil {
		return nil, &contract.ModuleNotFoundError{Module: specifier}
	}
	pkg := PackageName(specifier)
	if e.Peer && (s.probe == nil || !s.probe.PackageExists(pkg)) {
		return nil, &contract.ModuleNotFoundError{Module: specifier}
	}
	p := e.New()
	if vp, ok := s.probe.(contract.VersionProbe); ok {
		if v, ok := vp.PackageVersion(pkg); ok {
			p.Version = v
		}
	}
	s.cache.Add(specifier, p)
	return p.Clone(), nil
}

// Len 返回当前缓存的句柄数。
func (s *Source) Len() int { return s.cache.Len() }

// PackageName 从模块说明符提取包名（"@scope/name/sub" -> "@scope/name"）。
func PackageName(specifier string) string {
	parts := strings.Split(specifier, "/")
	if strings.HasPrefix(specifier, "@") && len(parts) >= 2 {
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}

// CheckRange 校验句柄的已安装版本是否满足其声明范围；版本或范围未知时视为满足。
func CheckRange(p *contract.Plugin) error {
	if p == nil || p.Range == "" || p.Version == "" {
		return nil
	}
	c, err := semver.NewConstraint(p.Range)
	if err != nil {
		return fmt.Errorf("registry: %s: bad range %q: %w", p.Module, p.Range, err)
	}
	v, err := semver.NewVersion(p.Version)
	if err != nil {
		return fmt.Errorf("registry: %s: bad version %q: %w", p.Module, p.Version, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("registry: %s %s does not satisfy %s", p.Module, p.Version, p.Range)
	}
	return nil
}
