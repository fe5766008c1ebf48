package contract

import (
	"path"
	"strings"
)

// NormalizePath 规范化路径，统一为跨平台稳定的正斜杠相对形式。
// 规则：
// - 反斜杠转为正斜杠；
// - 清理多余分隔符与 . / .. 片段；
// - 去掉前导 "./"，保留绝对语义。
func NormalizePath(p string) string {
	s := path.Clean(strings.ReplaceAll(p, "\\", "/"))
	return strings.TrimPrefix(s, "./")
}
