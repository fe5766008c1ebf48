package contract

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Plugin: 规则插件/解析器的不透明句柄。
// 组合层只转交句柄，不解读其内容；序列化时仅输出模块说明符，
// 由下游 lint 引擎自行加载真实模块。
type Plugin struct {
	// Module: 模块说明符（例如 "eslint-plugin-svelte"）。
	Module string
	// Meta: 展示名。
	Meta string
	// Version: 目标项目中已安装的版本；未知为空。
	Version string
	// Range: 期望的 peer 版本范围（semver 约束）；空表示不检查。
	Range string
	// Rules: 插件提供的规则短名（不含命名空间）；nil 表示未声明，不参与未知规则检查。
	Rules []string
	// Configs: 插件自带的命名规则表（键为插件自身命名空间下的完整规则键）。
	Configs map[string]Rules
	// Processors: 插件导出的处理器名。
	Processors []string
}

// HasRule 报告插件是否声明了 name。
func (p *Plugin) HasRule(name string) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Rules {
		if r == name {
			return true
		}
	}
	return false
}

// Clone 返回独立副本；规则表、规则名与处理器列表均不与原句柄共享。
func (p *Plugin) Clone() *Plugin {
	if p == nil {
		return nil
	}
	out := *p
	out.Rules = cloneStrings(p.Rules)
	out.Processors = cloneStrings(p.Processors)
	if p.Configs != nil {
		out.Configs = make(map[string]Rules, len(p.Configs))
		for k, v := range p.Configs {
			out.Configs[k] = v.Clone()
		}
	}
	return &out
}

// Config 返回命名规则表的副本；不存在时返回 nil。
func (p *Plugin) Config(name string) Rules {
	if p == nil {
		return nil
	}
	return p.Configs[name].Clone()
}

// Processor 返回 "<namespace>/<processor>" 形式的处理器引用。
func (p *Plugin) Processor(namespace, name string) (string, error) {
	if p != nil {
		for _, pr := range p.Processors {
			if pr == name {
				return namespace + "/" + name, nil
			}
		}
	}
	return "", fmt.Errorf("%w: processor %q not exported by %s", ErrInvalidInput, name, p.module())
}

func (p *Plugin) module() string {
	if p == nil {
		return "<nil>"
	}
	return p.Module
}

func (p *Plugin) String() string { return p.module() }

// MarshalJSON 输出模块说明符。
func (p *Plugin) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.module())
}

// UnmarshalJSON 从模块说明符构造句柄（用户片段中按名称引用插件）。
func (p *Plugin) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: plugin must be a module specifier string", ErrInvalidInput)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("%w: empty plugin specifier", ErrInvalidInput)
	}
	*p = Plugin{Module: s}
	return nil
}
