// Package antfu 描述 eslint-plugin-antfu。
package antfu

import (
	"slices"

	"flatcfg/pkg/contract"
)

const Module = "eslint-plugin-antfu"

var rules = []string{
	"consistent-chaining", "consistent-list-newline", "curly", "if-newline",
	"import-dedupe", "indent-unindent", "no-import-dist", "no-import-node-modules-by-path",
	"no-top-level-await", "no-ts-export-equal", "top-level-function",
}

// New 构造插件句柄。
func New() *contract.Plugin {
	return &contract.Plugin{Module: Module, Meta: "antfu", Rules: slices.Clone(rules)}
}
