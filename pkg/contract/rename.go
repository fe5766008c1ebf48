package contract

import (
	"sort"
	"strings"
)

// RenameKey 按重命名表改写 "namespace/rule" 形式的规则键。
// 多个来源同时匹配时取最长者；不匹配时原样返回。
func RenameKey(key string, table map[string]string) string {
	best := ""
	for from := range table {
		if len(from) > len(best) && strings.HasPrefix(key, from+"/") {
			best = from
		}
	}
	if best == "" {
		return key
	}
	return table[best] + key[len(best):]
}

// Renamed 返回按重命名表改写键后的新表。
// 改写后与既有键冲突时，改写而来的键优先；多个来源改写到同一键时按来源键字典序取最后者。
func (r Rules) Renamed(table map[string]string) Rules {
	if r == nil {
		return nil
	}
	out := make(Rules, len(r))
	var moved []string
	for k, v := range r {
		if RenameKey(k, table) != k {
			moved = append(moved, k)
			continue
		}
		out[k] = v.Clone()
	}
	sort.Strings(moved)
	for _, k := range moved {
		out[RenameKey(k, table)] = r[k].Clone()
	}
	return out
}
