// Package perfectionist 描述 eslint-plugin-perfectionist。
package perfectionist

import (
	"slices"

	"flatcfg/pkg/contract"
)

const Module = "eslint-plugin-perfectionist"

var rules = []string{
	"sort-array-includes", "sort-classes", "sort-decorators", "sort-enums", "sort-exports",
	"sort-heritage-clauses", "sort-imports", "sort-interfaces", "sort-intersection-types",
	"sort-jsx-props", "sort-maps", "sort-modules", "sort-named-exports", "sort-named-imports",
	"sort-object-types", "sort-objects", "sort-sets", "sort-switch-case", "sort-union-types",
	"sort-variable-declarations",
}

// New 构造插件句柄。
func New() *contract.Plugin {
	return &contract.Plugin{Module: Module, Meta: "perfectionist", Rules: slices.Clone(rules)}
}
