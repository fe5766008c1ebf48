// Package regexp 描述 eslint-plugin-regexp。
package regexp

import (
	"slices"

	"flatcfg/pkg/contract"
)

const Module = "eslint-plugin-regexp"

// recommended: flat/recommended（error 级）。
var recommended = []string{
	"confusing-quantifier", "control-character-escape", "match-any", "negation",
	"no-contradiction-with-assertion", "no-dupe-characters-character-class",
	"no-dupe-disjunctions", "no-empty-alternative", "no-empty-capturing-group",
	"no-empty-character-class", "no-empty-group", "no-empty-lookarounds-assertion",
	"no-empty-string-literal", "no-escape-backspace", "no-extra-lookaround-assertions",
	"no-invalid-regexp", "no-invisible-character", "no-lazy-ends", "no-legacy-features",
	"no-misleading-capturing-group", "no-misleading-unicode-character",
	"no-missing-g-flag", "no-non-standard-flag", "no-obscure-range",
	"no-optional-assertion", "no-potentially-useless-backreference", "no-super-linear-backtracking",
	"no-trivially-nested-assertion", "no-trivially-nested-quantifier", "no-unused-capturing-group",
	"no-useless-assertions", "no-useless-backreference", "no-useless-character-class",
	"no-useless-dollar-replacements", "no-useless-escape", "no-useless-flag",
	"no-useless-lazy", "no-useless-non-capturing-group", "no-useless-quantifier",
	"no-useless-range", "no-useless-set-operand", "no-useless-string-literal",
	"no-useless-two-nums-quantifier", "no-zero-quantifier", "optimal-lookaround-quantifier",
	"optimal-quantifier-concatenation", "prefer-character-class", "prefer-d", "prefer-plus-quantifier",
	"prefer-predefined-assertion", "prefer-question-quantifier", "prefer-range",
	"prefer-set-operation", "prefer-star-quantifier", "prefer-unicode-codepoint-escapes",
	"prefer-w", "simplify-set-operations", "sort-flags", "strict", "use-ignore-case",
}

var extra = []string{
	"grapheme-string-literal", "hexadecimal-escape", "letter-case", "no-control-character",
	"no-octal", "no-standalone-backslash", "prefer-escape-replacement-dollar-char",
	"prefer-lookaround", "prefer-named-backreference", "prefer-named-capture-group",
	"prefer-named-replacement", "prefer-quantifier", "prefer-regexp-exec",
	"prefer-regexp-test", "prefer-result-array-groups", "require-unicode-regexp",
	"require-unicode-sets-regexp", "sort-alternatives", "sort-character-class-elements",
	"unicode-escape", "unicode-property",
}

// New 构造插件句柄。
func New() *contract.Plugin {
	rec := make(contract.Rules, len(recommended))
	for _, r := range recommended {
		rec["regexp/"+r] = contract.Error()
	}
	return &contract.Plugin{
		Module:  Module,
		Meta:    "regexp",
		Rules:   slices.Concat(recommended, extra),
		Configs: map[string]contract.Rules{"flat/recommended": rec},
	}
}
