// Package unusedimports 描述 eslint-plugin-unused-imports。
package unusedimports

import "flatcfg/pkg/contract"

const Module = "eslint-plugin-unused-imports"

// New 构造插件句柄。
func New() *contract.Plugin {
	return &contract.Plugin{
		Module: Module,
		Meta:   "unused-imports",
		Rules:  []string{"no-unused-imports", "no-unused-vars"},
	}
}
