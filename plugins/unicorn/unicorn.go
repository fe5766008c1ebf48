// Package unicorn 描述 eslint-plugin-unicorn。
package unicorn

import (
	"slices"

	"flatcfg/pkg/contract"
)

const Module = "eslint-plugin-unicorn"

// recommended: flat/recommended 中开启为 error 的规则。
var recommended = []string{
	"better-regex", "catch-error-name", "consistent-assert", "consistent-date-clone",
	"consistent-empty-array-spread", "consistent-existence-index-check",
	"consistent-function-scoping", "empty-brace-spaces", "error-message", "escape-case",
	"expiring-todo-comments", "explicit-length-check", "filename-case", "import-style",
	"new-for-builtins", "no-abusive-eslint-disable", "no-accessor-recursion",
	"no-anonymous-default-export", "no-array-callback-reference", "no-array-for-each",
	"no-array-method-this-argument", "no-array-reduce", "no-await-expression-member",
	"no-await-in-promise-methods", "no-console-spaces", "no-document-cookie",
	"no-empty-file", "no-for-loop", "no-hex-escape", "no-instanceof-builtins",
	"no-invalid-fetch-options", "no-invalid-remove-event-listener", "no-lonely-if",
	"no-magic-array-flat-depth", "no-named-default", "no-negated-condition",
	"no-negation-in-equality-check", "no-nested-ternary", "no-new-array", "no-new-buffer",
	"no-null", "no-object-as-default-parameter", "no-process-exit",
	"no-single-promise-in-promise-methods", "no-static-only-class", "no-thenable",
	"no-this-assignment", "no-typeof-undefined", "no-unnecessary-await",
	"no-unnecessary-polyfills", "no-unreadable-array-destructuring", "no-unreadable-iife",
	"no-useless-fallback-in-spread", "no-useless-length-check",
	"no-useless-promise-resolve-reject", "no-useless-spread", "no-useless-switch-case",
	"no-useless-undefined", "no-zero-fractions", "number-literal-case",
	"numeric-separators-style", "prefer-add-event-listener", "prefer-array-find",
	"prefer-array-flat", "prefer-array-flat-map", "prefer-array-index-of", "prefer-array-some",
	"prefer-at", "prefer-blob-reading-methods", "prefer-code-point", "prefer-date-now",
	"prefer-default-parameters", "prefer-dom-node-append", "prefer-dom-node-dataset",
	"prefer-dom-node-remove", "prefer-dom-node-text-content", "prefer-event-target",
	"prefer-export-from", "prefer-global-this", "prefer-includes", "prefer-keyboard-event-key",
	"prefer-logical-operator-over-ternary", "prefer-math-min-max", "prefer-math-trunc",
	"prefer-modern-dom-apis", "prefer-modern-math-apis", "prefer-module",
	"prefer-native-coercion-functions", "prefer-negative-index", "prefer-node-protocol",
	"prefer-number-properties", "prefer-object-from-entries", "prefer-optional-catch-binding",
	"prefer-prototype-methods", "prefer-query-selector", "prefer-reflect-apply",
	"prefer-regexp-test", "prefer-set-has", "prefer-set-size", "prefer-spread",
	"prefer-string-raw", "prefer-string-replace-all", "prefer-string-slice",
	"prefer-string-starts-ends-with", "prefer-string-trim-start-end",
	"prefer-structured-clone", "prefer-switch", "prefer-ternary", "prefer-top-level-await",
	"prefer-type-error", "prevent-abbreviations", "relative-url-style",
	"require-array-join-separator", "require-number-to-fixed-digits-argument",
	"switch-case-braces", "text-encoding-identifier-case", "throw-new-error",
}

// extra: 推荐集之外的规则。
var extra = []string{
	"consistent-destructuring", "custom-error-definition", "no-keyword-prefix",
	"no-unused-properties", "prefer-json-parse-buffer", "require-post-message-target-origin",
	"string-content",
}

// New 构造插件句柄。
func New() *contract.Plugin {
	rec := make(contract.Rules, len(recommended))
	for _, r := range recommended {
		rec["unicorn/"+r] = contract.Error()
	}
	return &contract.Plugin{
		Module:  Module,
		Meta:    "unicorn",
		Rules:   slices.Concat(recommended, extra),
		Configs: map[string]contract.Rules{"flat/recommended": rec},
	}
}
