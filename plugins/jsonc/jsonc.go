// Package jsonc 描述 eslint-plugin-jsonc 与 jsonc-eslint-parser。
package jsonc

import (
	"slices"

	"flatcfg/pkg/contract"
)

const (
	Module       = "eslint-plugin-jsonc"
	ParserModule = "jsonc-eslint-parser"
)

var rules = []string{
	"array-bracket-newline", "array-bracket-spacing", "array-element-newline",
	"auto", "comma-dangle", "comma-style", "indent", "key-name-casing", "key-spacing",
	"no-bigint-literals", "no-binary-expression", "no-binary-numeric-literals", "no-comments",
	"no-dupe-keys", "no-escape-sequence-in-identifier", "no-floating-decimal",
	"no-hexadecimal-numeric-literals", "no-infinity", "no-irregular-whitespace",
	"no-multi-str", "no-nan", "no-number-props", "no-numeric-separators",
	"no-octal", "no-octal-escape", "no-octal-numeric-literals", "no-parenthesized",
	"no-plus-sign", "no-regexp-literals", "no-sparse-arrays", "no-template-literals",
	"no-undefined-value", "no-unicode-codepoint-escapes", "no-useless-escape",
	"object-curly-newline", "object-curly-spacing", "object-property-newline",
	"quote-props", "quotes", "sort-array-values", "sort-keys", "space-unary-ops",
	"valid-json-number", "vue-custom-block/no-parsing-error",
}

// New 构造插件句柄。
func New() *contract.Plugin {
	return &contract.Plugin{Module: Module, Meta: "jsonc", Rules: slices.Clone(rules)}
}

// NewParser 构造解析器句柄。
func NewParser() *contract.Plugin {
	return &contract.Plugin{Module: ParserModule, Meta: "jsonc-eslint-parser"}
}
