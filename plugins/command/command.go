// Package command 描述 eslint-plugin-command（注释触发的代码变换）。
package command

import "flatcfg/pkg/contract"

const Module = "eslint-plugin-command"

// New 构造插件句柄。
func New() *contract.Plugin {
	return &contract.Plugin{Module: Module, Meta: "command", Rules: []string{"command"}}
}
