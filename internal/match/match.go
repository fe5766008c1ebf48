// Package match 以引擎的合并语义计算某个文件的生效配置，供诊断与测试使用。
//
// 语义：
//   - 仅含 ignores 的片段为全局排除；命中的文件（或其任一祖先目录）不受任何片段约束；
//   - 片段的 files 为空表示匹配所有文件，否则任一模式命中即匹配；
//   - 片段的 ignores 依序求值，"!" 前缀重新纳入；以 "/" 结尾的模式只匹配目录；
//   - 规则按键“后者覆盖前者”；仅给出级别的覆盖保留先前的选项。
package match

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"flatcfg/pkg/contract"
)

// Result: 单个文件的生效配置。
type Result struct {
	// Ignored: 被全局排除。
	Ignored bool
	// Fragments: 匹配的片段名（按序）。
	Fragments []string
	Rules     contract.Rules
	// Parser/Processor: 最后一个设置它们的片段给出的值。
	Parser    string
	Processor string
}

// Resolve 计算 p（相对项目根，"/" 分隔）的生效配置。
func Resolve(frags []contract.Fragment, p string) Result {
	p = contract.NormalizePath(p)
	res := Result{Rules: contract.Rules{}}
	var global []string
	for _, f := range frags {
		if f.IsGlobalIgnore() {
			global = append(global, f.Ignores...)
		}
	}
	if ignored(global, p) {
		res.Ignored = true
		return res
	}
	for _, f := range frags {
		if f.IsGlobalIgnore() || !Applies(f, p) {
			continue
		}
		res.Fragments = append(res.Fragments, f.Name)
		for k, v := range f.Rules {
			prev, ok := res.Rules[k]
			if ok && len(v.Options) == 0 && len(prev.Options) > 0 {
				v = contract.Rule(v.Severity, prev.Clone().Options...)
			}
			res.Rules[k] = v.Clone()
		}
		if f.LanguageOptions != nil && f.LanguageOptions.Parser != nil {
			res.Parser = f.LanguageOptions.Parser.Module
		}
		if f.Processor != "" {
			res.Processor = f.Processor
		}
	}
	return res
}

// Applies 报告片段 f 是否作用于 p（不考虑全局排除）。
func Applies(f contract.Fragment, p string) bool {
	p = contract.NormalizePath(p)
	if len(f.Files) > 0 && !anyMatch(f.Files, p) {
		return false
	}
	return !ignored(f.Ignores, p)
}

// Match 报告单个模式是否命中 p。
func Match(pattern, p string) bool {
	ok, err := doublestar.Match(pattern, p)
	return err == nil && ok
}

func anyMatch(patterns []string, p string) bool {
	for _, pat := range patterns {
		if Match(pat, p) {
			return true
		}
	}
	return false
}

// ignored 依序求值排除模式；文件本身或其祖先目录命中均视为命中。
func ignored(patterns []string, p string) bool {
	out := false
	for _, pat := range patterns {
		neg := strings.HasPrefix(pat, "!")
		pat = strings.TrimPrefix(pat, "!")
		dirOnly := strings.HasSuffix(pat, "/")
		pat = strings.TrimSuffix(pat, "/")
		if pat == "" {
			continue
		}
		hit := false
		if !dirOnly && Match(pat, p) {
			hit = true
		}
		for d := path.Dir(p); !hit && d != "." && d != "/"; d = path.Dir(d) {
			hit = Match(pat, d)
		}
		if hit {
			out = !neg
		}
	}
	return out
}
