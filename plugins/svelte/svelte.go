// Package svelte 描述 eslint-plugin-svelte 与 svelte-eslint-parser。
// 插件需由目标项目自行安装（peer），版本需满足 Range。
package svelte

import (
	"slices"

	"flatcfg/pkg/contract"
)

const (
	Module       = "eslint-plugin-svelte"
	ParserModule = "svelte-eslint-parser"
	// Range: 支持的插件版本范围。
	Range = ">=2.35.0"
	// Processor: 组件处理器名。
	Processor = ".svelte"
)

var rules = []string{
	"block-lang", "button-has-type",
	"comment-directive", "consistent-selector-style", "derived-has-same-inputs-outputs",
	"experimental-require-slot-types", "experimental-require-strict-events", "first-attribute-linebreak",
	"html-closing-bracket-new-line", "html-closing-bracket-spacing", "html-quotes",
	"html-self-closing", "indent", "infinite-reactive-loop", "max-attributes-per-line",
	"mustache-spacing", "no-at-debug-tags", "no-at-html-tags", "no-dom-manipulating",
	"no-dupe-else-if-blocks", "no-dupe-on-directives", "no-dupe-style-properties",
	"no-dupe-use-directives", "no-dynamic-slot-name",
	"no-export-load-in-svelte-module-in-kit-pages", "no-extra-reactive-curlies",
	"no-goto-without-base", "no-ignored-unsubscribe", "no-immutable-reactive-statements",
	"no-inline-styles", "no-inner-declarations", "no-inspect", "no-not-function-handler",
	"no-object-in-text-mustaches", "no-reactive-functions", "no-reactive-literals",
	"no-reactive-reassign", "no-restricted-html-elements",
	"no-shorthand-style-property-overrides", "no-spaces-around-equal-signs-in-attribute",
	"no-store-async", "no-target-blank", "no-trailing-spaces",
	"no-unknown-style-directive-property", "no-unused-class-name", "no-unused-svelte-ignore",
	"no-useless-mustaches", "prefer-class-directive", "prefer-destructured-store-props",
	"prefer-style-directive", "require-each-key", "require-event-dispatcher-types",
	"require-optimized-style-attribute", "require-store-callbacks-use-set-param",
	"require-store-reactive-access", "require-stores-init", "shorthand-attribute",
	"shorthand-directive", "sort-attributes", "spaced-html-comment", "system",
	"valid-compile", "valid-each-key", "valid-prop-names-in-kit-pages",
}

// New 构造插件句柄。
func New() *contract.Plugin {
	return &contract.Plugin{
		Module:     Module,
		Meta:       "svelte",
		Range:      Range,
		Rules:      slices.Clone(rules),
		Processors: []string{Processor},
		Configs: map[string]contract.Rules{
			"flat/base": {
				"svelte/comment-directive": contract.Error(),
				"svelte/system":            contract.Error(),
			},
		},
	}
}

// NewParser 构造组件解析器句柄。
func NewParser() *contract.Plugin {
	return &contract.Plugin{Module: ParserModule, Meta: "svelte-eslint-parser"}
}
