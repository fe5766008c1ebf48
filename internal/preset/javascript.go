package preset

import (
	"context"

	"flatcfg/pkg/contract"
	"flatcfg/plugins/antfu"
	"flatcfg/plugins/eslintjs"
	"flatcfg/plugins/unusedimports"
)

// JavascriptOptions: 基础语言规则选项。
type JavascriptOptions struct {
	// IsInEditor: 编辑器内运行时放宽会干扰编辑的规则。
	IsInEditor bool
	Overrides  contract.Rules
}

var browserGlobals = []string{
	"document", "navigator", "window", "self", "location", "history", "localStorage",
	"sessionStorage", "fetch", "Headers", "Request", "Response", "FormData", "Blob", "File",
	"URL", "URLSearchParams", "AbortController", "Event", "EventTarget", "CustomEvent",
	"HTMLElement", "Element", "Node", "MutationObserver", "IntersectionObserver",
	"ResizeObserver", "requestAnimationFrame", "cancelAnimationFrame", "setTimeout",
	"clearTimeout", "setInterval", "clearInterval", "queueMicrotask", "structuredClone",
	"console", "crypto", "performance", "TextDecoder", "TextEncoder", "WebSocket", "Worker",
}

var nodeGlobals = []string{
	"process", "Buffer", "global", "globalThis", "__dirname", "__filename", "require",
	"module", "exports", "setImmediate", "clearImmediate",
}

func globals() map[string]string {
	g := make(map[string]string, len(browserGlobals)+len(nodeGlobals))
	for _, k := range browserGlobals {
		g[k] = "readonly"
	}
	for _, k := range nodeGlobals {
		g[k] = "readonly"
	}
	return g
}

// Javascript: 语言基线（解析选项 + 内置规则）。
func Javascript(ctx context.Context, src contract.PluginSource, opts JavascriptOptions) ([]contract.Fragment, error) {
	ps, err := loadAll(ctx, src, "javascript", eslintjs.Module, antfu.Module, unusedimports.Module)
	if err != nil {
		return nil, err
	}
	js, pAntfu, pUnused := ps[0], ps[1], ps[2]

	editorLevel := contract.SeverityError
	if opts.IsInEditor {
		editorLevel = contract.SeverityWarn
	}

	rules := contract.Rules{
		"accessor-pairs":           contract.Error(obj{"enforceForClassMembers": true, "setWithoutGet": true}),
		"antfu/no-top-level-await": contract.Error(),
		"array-callback-return":    contract.Error(),
		"block-scoped-var":         contract.Error(),
		"default-case-last":        contract.Error(),
		"dot-notation":             contract.Error(obj{"allowKeywords": true}),
		"eqeqeq":                   contract.Error("smart"),
		"new-cap":                  contract.Error(obj{"capIsNew": false, "newIsCap": true, "properties": true}),
		"no-alert":                 contract.Error(),
		"no-array-constructor":     contract.Error(),
		"no-caller":                contract.Error(),
		"no-cond-assign":           contract.Error("always"),
		"no-console":               contract.Error(obj{"allow": []any{"warn", "error"}}),
		"no-empty":                 contract.Error(obj{"allowEmptyCatch": true}),
		"no-eval":                  contract.Error(),
		"no-extend-native":         contract.Error(),
		"no-extra-bind":            contract.Error(),
		"no-implied-eval":          contract.Error(),
		"no-iterator":              contract.Error(),
		"no-labels":                contract.Error(obj{"allowLoop": false, "allowSwitch": false}),
		"no-lone-blocks":           contract.Error(),
		"no-multi-str":             contract.Error(),
		"no-new":                   contract.Error(),
		"no-new-func":              contract.Error(),
		"no-new-wrappers":          contract.Error(),
		"no-octal-escape":          contract.Error(),
		"no-proto":                 contract.Error(),
		"no-redeclare":             contract.Error(obj{"builtinGlobals": false}),
		"no-restricted-globals": contract.Error(
			obj{"message": "Use `globalThis` instead.", "name": "global"},
			obj{"message": "Use `globalThis` instead.", "name": "self"},
		),
		"no-restricted-properties": contract.Error(
			obj{"message": "Use `Object.getPrototypeOf` or `Object.setPrototypeOf` instead.", "property": "__proto__"},
			obj{"message": "Use `Object.defineProperty` instead.", "property": "__defineGetter__"},
			obj{"message": "Use `Object.defineProperty` instead.", "property": "__defineSetter__"},
		),
		"no-restricted-syntax":         contract.Error("TSEnumDeclaration[const=true]", "TSExportAssignment"),
		"no-self-assign":               contract.Error(obj{"props": true}),
		"no-self-compare":              contract.Error(),
		"no-sequences":                 contract.Error(),
		"no-template-curly-in-string":  contract.Error(),
		"no-throw-literal":             contract.Error(),
		"no-undef-init":                contract.Error(),
		"no-unmodified-loop-condition": contract.Error(),
		"no-unneeded-ternary":          contract.Error(obj{"defaultAssignment": false}),
		"no-unreachable-loop":          contract.Error(),
		"no-unused-expressions": contract.Error(obj{
			"allowShortCircuit": true, "allowTaggedTemplates": true, "allowTernary": true,
		}),
		"no-unused-vars": contract.Error(obj{
			"args": "none", "caughtErrors": "none", "ignoreRestSiblings": true, "vars": "all",
		}),
		"no-use-before-define":             contract.Error(obj{"classes": false, "functions": false, "variables": true}),
		"no-useless-call":                  contract.Error(),
		"no-useless-computed-key":          contract.Error(),
		"no-useless-constructor":           contract.Error(),
		"no-useless-rename":                contract.Error(),
		"no-useless-return":                contract.Error(),
		"no-var":                           contract.Error(),
		"object-shorthand":                 contract.Error("always", obj{"avoidQuotes": true, "ignoreConstructors": false}),
		"one-var":                          contract.Error(obj{"initialized": "never"}),
		"prefer-arrow-callback":            contract.Error(obj{"allowNamedFunctions": false, "allowUnboundThis": true}),
		"prefer-const":                     contract.Rule(editorLevel, obj{"destructuring": "all", "ignoreReadBeforeAssign": true}),
		"prefer-exponentiation-operator":   contract.Error(),
		"prefer-promise-reject-errors":     contract.Error(),
		"prefer-regex-literals":            contract.Error(obj{"disallowRedundantWrapping": true}),
		"prefer-rest-params":               contract.Error(),
		"prefer-spread":                    contract.Error(),
		"prefer-template":                  contract.Error(),
		"symbol-description":               contract.Error(),
		"unicode-bom":                      contract.Error("never"),
		"unused-imports/no-unused-imports": contract.Rule(editorLevel),
		"unused-imports/no-unused-vars": contract.Error(obj{
			"args": "after-used", "argsIgnorePattern": "^_", "ignoreRestSiblings": true,
			"vars": "all", "varsIgnorePattern": "^_",
		}),
		"use-isnan":    contract.Error(obj{"enforceForIndexOf": true, "enforceForSwitchCase": true}),
		"valid-typeof": contract.Error(obj{"requireStringLiterals": true}),
		"vars-on-top":  contract.Error(),
		"yoda":         contract.Error("never"),
	}

	return []contract.Fragment{
		{
			Name: Name("javascript", "setup"),
			LanguageOptions: &contract.LanguageOptions{
				EcmaVersion: 2022,
				SourceType:  "module",
				Globals:     globals(),
				ParserOptions: obj{
					"ecmaFeatures": obj{"jsx": true},
					"ecmaVersion":  2022,
					"sourceType":   "module",
				},
			},
			LinterOptions: obj{"reportUnusedDisableDirectives": true},
		},
		{
			Name: Name("javascript", "rules"),
			Plugins: map[string]*contract.Plugin{
				"antfu":          pAntfu,
				"unused-imports": pUnused,
			},
			Rules: merge(js.Config("recommended"), rules, opts.Overrides),
		},
	}, nil
}
