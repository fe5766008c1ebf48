// Package comments 描述 eslint-comments 指令规则插件。
package comments

import (
	"slices"

	"flatcfg/pkg/contract"
)

const Module = "@eslint-community/eslint-plugin-eslint-comments"

var rules = []string{
	"disable-enable-pair", "no-aggregating-enable", "no-duplicate-disable",
	"no-restricted-disable", "no-unlimited-disable", "no-unused-disable",
	"no-unused-enable", "no-use", "require-description",
}

// New 构造插件句柄。
func New() *contract.Plugin {
	return &contract.Plugin{Module: Module, Meta: "eslint-comments", Rules: slices.Clone(rules)}
}
