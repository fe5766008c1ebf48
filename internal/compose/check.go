package compose

import (
	"sort"
	"strings"

	"flatcfg/pkg/contract"
	"flatcfg/plugins/eslintjs"
)

// UnknownRule: 无法由任何绑定插件提供的规则键。
type UnknownRule struct {
	Fragment string
	Key      string
	// Reason: "unbound"（命名空间未绑定）或 "undeclared"（插件未声明该规则）。
	Reason string
}

// UnknownRules 检查片段序列中的规则键。
// 命名空间绑定在整个序列内可见；声明为 off 的规则与未声明规则表的句柄不参与检查。
// 结果按片段顺序、再按键名排序。
func UnknownRules(frags []contract.Fragment) []UnknownRule {
	bound := map[string]*contract.Plugin{}
	for _, f := range frags {
		for ns, p := range f.Plugins {
			bound[ns] = p
		}
	}
	core := eslintjs.New()

	var out []UnknownRule
	for _, f := range frags {
		keys := make([]string, 0, len(f.Rules))
		for k := range f.Rules {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if f.Rules[k].Severity == contract.SeverityOff {
				continue
			}
			if reason := checkKey(k, bound, core); reason != "" {
				out = append(out, UnknownRule{Fragment: f.Name, Key: k, Reason: reason})
			}
		}
	}
	return out
}

func checkKey(key string, bound map[string]*contract.Plugin, core *contract.Plugin) string {
	if !strings.Contains(key, "/") {
		if core.HasRule(key) {
			return ""
		}
		return "undeclared"
	}
	ns := ""
	for b := range bound {
		if len(b) > len(ns) && strings.HasPrefix(key, b+"/") {
			ns = b
		}
	}
	if ns == "" {
		return "unbound"
	}
	p := bound[ns]
	if p == nil || p.Rules == nil || p.HasRule(key[len(ns)+1:]) {
		return ""
	}
	return "undeclared"
}
