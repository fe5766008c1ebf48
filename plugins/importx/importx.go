// Package importx 描述 eslint-plugin-import-x（绑定为 "import"）。
package importx

import (
	"slices"

	"flatcfg/pkg/contract"
)

const Module = "eslint-plugin-import-x"

var rules = []string{
	"consistent-type-specifier-style", "default", "dynamic-import-chunkname", "export",
	"exports-last", "extensions", "first", "group-exports", "imports-first",
	"max-dependencies", "named", "namespace", "newline-after-import", "no-absolute-path",
	"no-amd", "no-anonymous-default-export", "no-commonjs", "no-cycle", "no-default-export",
	"no-deprecated", "no-duplicates", "no-dynamic-require", "no-empty-named-blocks",
	"no-extraneous-dependencies", "no-import-module-exports", "no-internal-modules",
	"no-mutable-exports", "no-named-as-default", "no-named-as-default-member",
	"no-named-default", "no-named-export", "no-namespace", "no-nodejs-modules",
	"no-relative-packages", "no-relative-parent-imports", "no-rename-default",
	"no-restricted-paths", "no-self-import", "no-unassigned-import", "no-unresolved",
	"no-unused-modules", "no-useless-path-segments", "no-webpack-loader-syntax", "order",
	"prefer-default-export", "prefer-namespace-import", "unambiguous",
}

// New 构造插件句柄。
func New() *contract.Plugin {
	return &contract.Plugin{Module: Module, Meta: "import-x", Rules: slices.Clone(rules)}
}
