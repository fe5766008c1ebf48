// Package jsdoc 描述 eslint-plugin-jsdoc。
package jsdoc

import (
	"slices"

	"flatcfg/pkg/contract"
)

const Module = "eslint-plugin-jsdoc"

var rules = []string{
	"check-access", "check-alignment", "check-examples", "check-indentation",
	"check-line-alignment", "check-param-names", "check-property-names", "check-syntax",
	"check-tag-names", "check-template-names", "check-types", "check-values",
	"convert-to-jsdoc-comments", "empty-tags", "implements-on-classes",
	"imports-as-dependencies", "informative-docs", "lines-before-block", "match-description",
	"match-name", "multiline-blocks", "no-bad-blocks", "no-blank-block-descriptions",
	"no-blank-blocks", "no-defaults", "no-missing-syntax", "no-multi-asterisks",
	"no-restricted-syntax", "no-types", "no-undefined-types", "require-asterisk-prefix",
	"require-description", "require-description-complete-sentence", "require-example",
	"require-file-overview", "require-hyphen-before-param-description", "require-jsdoc",
	"require-param", "require-param-description", "require-param-name", "require-param-type",
	"require-property", "require-returns", "require-returns-check", "require-returns-type",
	"require-throws", "require-yields", "require-yields-check", "sort-tags", "tag-lines",
	"text-escaping", "valid-types",
}

// New 构造插件句柄。
func New() *contract.Plugin {
	return &contract.Plugin{Module: Module, Meta: "jsdoc", Rules: slices.Clone(rules)}
}
