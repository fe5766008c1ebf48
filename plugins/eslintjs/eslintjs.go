// Package eslintjs 描述引擎内置规则集（@eslint/js）。
// 内置规则不带命名空间，片段中直接以规则名引用。
package eslintjs

import (
	"slices"

	"flatcfg/pkg/contract"
)

// Module: 模块说明符。
const Module = "@eslint/js"

// rules: 内置规则名。
var rules = []string{
	"accessor-pairs", "array-callback-return", "arrow-body-style", "block-scoped-var",
	"camelcase", "class-methods-use-this", "complexity", "consistent-return", "consistent-this",
	"constructor-super", "curly", "default-case", "default-case-last", "default-param-last",
	"dot-notation", "eqeqeq", "for-direction", "func-name-matching", "func-names", "func-style",
	"getter-return", "grouped-accessor-pairs", "guard-for-in", "id-denylist", "id-length",
	"init-declarations", "logical-assignment-operators", "max-classes-per-file", "max-depth",
	"max-lines", "max-lines-per-function", "max-nested-callbacks", "max-params", "max-statements",
	"new-cap", "no-alert", "no-array-constructor", "no-async-promise-executor", "no-await-in-loop",
	"no-bitwise", "no-caller", "no-case-declarations", "no-class-assign", "no-compare-neg-zero",
	"no-cond-assign", "no-console", "no-const-assign", "no-constant-binary-expression",
	"no-constant-condition", "no-constructor-return", "no-continue", "no-control-regex",
	"no-debugger", "no-delete-var", "no-div-regex", "no-dupe-args", "no-dupe-class-members",
	"no-dupe-else-if", "no-dupe-keys", "no-duplicate-case", "no-duplicate-imports",
	"no-else-return", "no-empty", "no-empty-character-class", "no-empty-function",
	"no-empty-pattern", "no-empty-static-block", "no-eq-null", "no-eval", "no-ex-assign",
	"no-extend-native", "no-extra-bind", "no-extra-boolean-cast", "no-extra-label",
	"no-fallthrough", "no-func-assign", "no-global-assign", "no-implicit-coercion",
	"no-implicit-globals", "no-implied-eval", "no-import-assign", "no-inline-comments",
	"no-inner-declarations", "no-invalid-regexp", "no-invalid-this", "no-irregular-whitespace",
	"no-iterator", "no-label-var", "no-labels", "no-lone-blocks", "no-lonely-if", "no-loop-func",
	"no-loss-of-precision", "no-magic-numbers", "no-misleading-character-class",
	"no-multi-assign", "no-multi-str", "no-negated-condition", "no-nested-ternary", "no-new",
	"no-new-func", "no-new-native-nonconstructor", "no-new-wrappers",
	"no-nonoctal-decimal-escape", "no-obj-calls", "no-object-constructor", "no-octal",
	"no-octal-escape", "no-param-reassign", "no-plusplus", "no-promise-executor-return",
	"no-proto", "no-prototype-builtins", "no-redeclare", "no-regex-spaces",
	"no-restricted-exports", "no-restricted-globals", "no-restricted-imports",
	"no-restricted-properties", "no-restricted-syntax", "no-return-assign", "no-script-url",
	"no-self-assign", "no-self-compare", "no-sequences", "no-setter-return", "no-shadow",
	"no-shadow-restricted-names", "no-sparse-arrays", "no-template-curly-in-string",
	"no-ternary", "no-this-before-super", "no-throw-literal", "no-undef", "no-undef-init",
	"no-undefined", "no-underscore-dangle", "no-unexpected-multiline",
	"no-unmodified-loop-condition", "no-unneeded-ternary", "no-unreachable",
	"no-unreachable-loop", "no-unsafe-finally", "no-unsafe-negation",
	"no-unsafe-optional-chaining", "no-unused-expressions", "no-unused-labels",
	"no-unused-private-class-members", "no-unused-vars", "no-use-before-define",
	"no-useless-assignment", "no-useless-backreference", "no-useless-call", "no-useless-catch",
	"no-useless-computed-key", "no-useless-concat", "no-useless-constructor",
	"no-useless-escape", "no-useless-rename", "no-useless-return", "no-var", "no-void",
	"no-warning-comments", "no-with", "object-shorthand", "one-var", "operator-assignment",
	"prefer-arrow-callback", "prefer-const", "prefer-destructuring",
	"prefer-exponentiation-operator", "prefer-named-capture-group",
	"prefer-numeric-literals", "prefer-object-has-own", "prefer-object-spread",
	"prefer-promise-reject-errors", "prefer-regex-literals", "prefer-rest-params",
	"prefer-spread", "prefer-template", "radix", "require-atomic-updates", "require-await",
	"require-unicode-regexp", "require-yield", "sort-imports", "sort-keys", "sort-vars",
	"strict", "symbol-description", "unicode-bom", "use-isnan", "valid-typeof", "vars-on-top",
	"yoda",
}

// recommended: eslint:recommended。
var recommended = []string{
	"constructor-super", "for-direction", "getter-return", "no-async-promise-executor",
	"no-case-declarations", "no-class-assign", "no-compare-neg-zero", "no-cond-assign",
	"no-const-assign", "no-constant-binary-expression", "no-constant-condition",
	"no-control-regex", "no-debugger", "no-delete-var", "no-dupe-args", "no-dupe-class-members",
	"no-dupe-else-if", "no-dupe-keys", "no-duplicate-case", "no-empty",
	"no-empty-character-class", "no-empty-pattern", "no-empty-static-block", "no-ex-assign",
	"no-extra-boolean-cast", "no-fallthrough", "no-func-assign", "no-global-assign",
	"no-import-assign", "no-invalid-regexp", "no-irregular-whitespace", "no-loss-of-precision",
	"no-misleading-character-class", "no-new-native-nonconstructor",
	"no-nonoctal-decimal-escape", "no-obj-calls", "no-octal", "no-prototype-builtins",
	"no-redeclare", "no-regex-spaces", "no-self-assign", "no-setter-return",
	"no-shadow-restricted-names", "no-sparse-arrays", "no-this-before-super", "no-undef",
	"no-unexpected-multiline", "no-unreachable", "no-unsafe-finally", "no-unsafe-negation",
	"no-unsafe-optional-chaining", "no-unused-labels", "no-unused-private-class-members",
	"no-unused-vars", "no-useless-backreference", "no-useless-catch", "no-useless-escape",
	"no-with", "require-yield", "use-isnan", "valid-typeof",
}

// New 构造句柄。
func New() *contract.Plugin {
	rec := make(contract.Rules, len(recommended))
	for _, r := range recommended {
		rec[r] = contract.Error()
	}
	return &contract.Plugin{
		Module:  Module,
		Meta:    "eslint",
		Rules:   slices.Clone(rules),
		Configs: map[string]contract.Rules{"recommended": rec},
	}
}
