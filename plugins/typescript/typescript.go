// Package typescript 描述 typescript-eslint 插件与解析器。
package typescript

import (
	"slices"

	"flatcfg/pkg/contract"
)

const (
	// Module: 规则插件模块说明符。
	Module = "@typescript-eslint/eslint-plugin"
	// ParserModule: 解析器模块说明符。
	ParserModule = "@typescript-eslint/parser"
	// Namespace: 插件自身命名空间（配置表中的规则键以此为前缀）。
	Namespace = "@typescript-eslint"
)

var rules = []string{
	"adjacent-overload-signatures", "array-type", "await-thenable", "ban-ts-comment",
	"ban-tslint-comment", "class-literal-property-style", "class-methods-use-this",
	"consistent-generic-constructors", "consistent-indexed-object-style", "consistent-return",
	"consistent-type-assertions", "consistent-type-definitions", "consistent-type-exports",
	"consistent-type-imports", "default-param-last", "dot-notation",
	"explicit-function-return-type", "explicit-member-accessibility",
	"explicit-module-boundary-types", "init-declarations", "max-params", "member-ordering",
	"method-signature-style", "naming-convention", "no-array-constructor", "no-array-delete",
	"no-base-to-string", "no-confusing-non-null-assertion", "no-confusing-void-expression",
	"no-deprecated", "no-dupe-class-members", "no-duplicate-enum-values",
	"no-duplicate-type-constituents", "no-dynamic-delete", "no-empty-function",
	"no-empty-object-type", "no-explicit-any", "no-extra-non-null-assertion",
	"no-extraneous-class", "no-floating-promises", "no-for-in-array", "no-implied-eval",
	"no-import-type-side-effects", "no-inferrable-types", "no-invalid-this",
	"no-invalid-void-type", "no-loop-func", "no-magic-numbers", "no-meaningless-void-operator",
	"no-misused-new", "no-misused-promises", "no-misused-spread", "no-mixed-enums",
	"no-namespace", "no-non-null-asserted-nullish-coalescing",
	"no-non-null-asserted-optional-chain", "no-non-null-assertion", "no-redeclare",
	"no-redundant-type-constituents", "no-require-imports", "no-restricted-imports",
	"no-restricted-types", "no-shadow", "no-this-alias", "no-unnecessary-boolean-literal-compare",
	"no-unnecessary-condition", "no-unnecessary-parameter-property-assignment",
	"no-unnecessary-qualifier", "no-unnecessary-template-expression",
	"no-unnecessary-type-arguments", "no-unnecessary-type-assertion",
	"no-unnecessary-type-constraint", "no-unnecessary-type-parameters", "no-unsafe-argument",
	"no-unsafe-assignment", "no-unsafe-call", "no-unsafe-declaration-merging",
	"no-unsafe-enum-comparison", "no-unsafe-function-type", "no-unsafe-member-access",
	"no-unsafe-return", "no-unsafe-type-assertion", "no-unsafe-unary-minus",
	"no-unused-expressions", "no-unused-vars", "no-use-before-define",
	"no-useless-constructor", "no-useless-empty-export", "no-wrapper-object-types",
	"non-nullable-type-assertion-style", "only-throw-error", "parameter-properties",
	"prefer-as-const", "prefer-destructuring", "prefer-enum-initializers", "prefer-find",
	"prefer-for-of", "prefer-function-type", "prefer-includes", "prefer-literal-enum-member",
	"prefer-namespace-keyword", "prefer-nullish-coalescing", "prefer-optional-chain",
	"prefer-promise-reject-errors", "prefer-readonly", "prefer-readonly-parameter-types",
	"prefer-reduce-type-parameter", "prefer-regexp-exec", "prefer-return-this-type",
	"prefer-string-starts-ends-with", "promise-function-async", "related-getter-setter-pairs",
	"require-array-sort-compare", "require-await", "restrict-plus-operands",
	"restrict-template-expressions", "return-await", "strict-boolean-expressions",
	"switch-exhaustiveness-check", "triple-slash-reference", "unbound-method",
	"unified-signatures", "use-unknown-in-catch-callback-variable",
}

// strict: configs.strict（不含类型信息的部分）。
var strict = []string{
	"ban-ts-comment", "no-array-constructor", "no-duplicate-enum-values", "no-dynamic-delete",
	"no-empty-object-type", "no-explicit-any", "no-extra-non-null-assertion",
	"no-extraneous-class", "no-invalid-void-type", "no-misused-new", "no-namespace",
	"no-non-null-asserted-nullish-coalescing", "no-non-null-asserted-optional-chain",
	"no-non-null-assertion", "no-require-imports", "no-this-alias",
	"no-unnecessary-type-constraint", "no-unsafe-declaration-merging",
	"no-unsafe-function-type", "no-unused-expressions", "no-unused-vars",
	"no-useless-constructor", "no-wrapper-object-types", "prefer-as-const",
	"prefer-literal-enum-member", "prefer-namespace-keyword", "triple-slash-reference",
	"unified-signatures",
}

// eslintRecommended: 关闭与 TypeScript 编译器重复的内置规则，并开启若干 ES2015 规则。
func eslintRecommended() contract.Rules {
	r := contract.Rules{}
	for _, k := range []string{
		"constructor-super", "getter-return", "no-class-assign", "no-const-assign",
		"no-dupe-args", "no-dupe-class-members", "no-dupe-keys", "no-func-assign",
		"no-import-assign", "no-new-native-nonconstructor", "no-obj-calls", "no-redeclare",
		"no-setter-return", "no-this-before-super", "no-undef", "no-unreachable",
		"no-unsafe-negation", "no-with",
	} {
		r[k] = contract.Off()
	}
	for _, k := range []string{"no-var", "prefer-const", "prefer-rest-params", "prefer-spread"} {
		r[k] = contract.Error()
	}
	return r
}

// New 构造插件句柄。
func New() *contract.Plugin {
	st := make(contract.Rules, len(strict))
	for _, r := range strict {
		st[Namespace+"/"+r] = contract.Error()
	}
	return &contract.Plugin{
		Module: Module,
		Meta:   "typescript-eslint",
		Rules:  slices.Clone(rules),
		Configs: map[string]contract.Rules{
			"strict":             st,
			"eslint-recommended": eslintRecommended(),
		},
	}
}

// NewParser 构造解析器句柄。
func NewParser() *contract.Plugin {
	return &contract.Plugin{Module: ParserModule, Meta: "typescript-eslint/parser"}
}
