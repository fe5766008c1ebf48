package compose

import (
	"fmt"
	"sort"
	"strings"

	"flatcfg/pkg/contract"
)

// DefaultRenames: 插件命名空间规范化表。
func DefaultRenames() map[string]string {
	return map[string]string{
		"@typescript-eslint": "ts",
		"import-x":           "import",
		"n":                  "node",
	}
}

// ChainRenames 将多张重命名表合成为一张，效果等同于依序应用。
// 合成结果中任一目标仍是来源（或落在来源命名空间之下）时返回 ErrRenameCycle，
// 因为此时重复应用会继续改写。
func ChainRenames(tables ...map[string]string) (map[string]string, error) {
	out := map[string]string{}
	for _, t := range tables {
		for from, to := range out {
			if next, ok := t[to]; ok {
				out[from] = next
			}
		}
		for from, to := range t {
			if _, ok := out[from]; !ok {
				out[from] = to
			}
		}
	}
	for from, to := range out {
		if from == to {
			delete(out, from)
		}
	}
	if err := checkIdempotent(out); err != nil {
		return nil, err
	}
	return out, nil
}

func checkIdempotent(table map[string]string) error {
	froms := make([]string, 0, len(table))
	for from := range table {
		froms = append(froms, from)
	}
	sort.Strings(froms)
	for _, from := range froms {
		to := table[from]
		if from == "" || to == "" {
			return fmt.Errorf("%w: empty namespace in %q -> %q", contract.ErrInvalidInput, from, to)
		}
		for _, src := range froms {
			if to == src || strings.HasPrefix(to, src+"/") {
				return fmt.Errorf("%w: %q -> %q is rewritten again by %q", contract.ErrRenameCycle, from, to, src)
			}
		}
	}
	return nil
}

// RenameFragments 原地改写插件绑定键与规则键；顺序不变。
func RenameFragments(frags []contract.Fragment, table map[string]string) {
	if len(table) == 0 {
		return
	}
	for i := range frags {
		renameFragment(&frags[i], table)
	}
}

func renameFragment(f *contract.Fragment, table map[string]string) {
	if len(f.Plugins) > 0 {
		out := make(map[string]*contract.Plugin, len(f.Plugins))
		var moved []string
		for ns, p := range f.Plugins {
			if _, ok := table[ns]; ok {
				moved = append(moved, ns)
				continue
			}
			out[ns] = p
		}
		sort.Strings(moved)
		for _, ns := range moved {
			out[table[ns]] = f.Plugins[ns]
		}
		f.Plugins = out
	}
	if len(f.Rules) > 0 {
		f.Rules = f.Rules.Renamed(table)
	}
}
