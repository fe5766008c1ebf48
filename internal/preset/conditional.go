package preset

import (
	"context"
	"fmt"

	"flatcfg/pkg/contract"
	"flatcfg/pkg/globs"
	"flatcfg/plugins/jsonc"
	pregexp "flatcfg/plugins/regexp"
	"flatcfg/plugins/svelte"
	"flatcfg/plugins/typescript"
)

// JSX: 为 JSX/TSX 开启 jsx 解析特性。
func JSX() []contract.Fragment {
	return []contract.Fragment{{
		Name:  Name("jsx", "setup"),
		Files: []string{globs.JSX, globs.TSX},
		LanguageOptions: &contract.LanguageOptions{
			ParserOptions: obj{"ecmaFeatures": obj{"jsx": true}},
		},
	}}
}

// JSONCOptions: JSON 主题选项。
type JSONCOptions struct {
	Overrides contract.Rules
}

// JSONC: JSON/JSON5/JSONC 解析与规则。
func JSONC(ctx context.Context, src contract.PluginSource, opts JSONCOptions) ([]contract.Fragment, error) {
	ps, err := loadAll(ctx, src, "jsonc", jsonc.Module, jsonc.ParserModule)
	if err != nil {
		return nil, err
	}
	rules := contract.Rules{
		"jsonc/array-bracket-spacing":   contract.Error("never"),
		"jsonc/comma-dangle":            contract.Error("never"),
		"jsonc/comma-style":             contract.Error("last"),
		"jsonc/indent":                  contract.Error(2),
		"jsonc/key-spacing":             contract.Error(obj{"afterColon": true, "beforeColon": false}),
		"jsonc/object-curly-newline":    contract.Error(obj{"consistent": true, "multiline": true}),
		"jsonc/object-curly-spacing":    contract.Error("always"),
		"jsonc/object-property-newline": contract.Error(obj{"allowMultiplePropertiesPerLine": true}),
		"jsonc/quote-props":             contract.Error(),
		"jsonc/quotes":                  contract.Error(),
	}
	for _, r := range []string{
		"no-bigint-literals", "no-binary-expression", "no-binary-numeric-literals", "no-dupe-keys",
		"no-escape-sequence-in-identifier", "no-floating-decimal", "no-hexadecimal-numeric-literals",
		"no-infinity", "no-multi-str", "no-nan", "no-number-props", "no-numeric-separators",
		"no-octal", "no-octal-escape", "no-octal-numeric-literals", "no-parenthesized",
		"no-plus-sign", "no-regexp-literals", "no-sparse-arrays", "no-template-literals",
		"no-undefined-value", "no-unicode-codepoint-escapes", "no-useless-escape",
		"space-unary-ops", "valid-json-number", "vue-custom-block/no-parsing-error",
	} {
		rules["jsonc/"+r] = contract.Error()
	}
	return []contract.Fragment{
		{
			Name:    Name("jsonc", "setup"),
			Plugins: map[string]*contract.Plugin{"jsonc": ps[0]},
		},
		{
			Name:            Name("jsonc", "rules"),
			Files:           []string{globs.JSON, globs.JSON5, globs.JSONC},
			LanguageOptions: &contract.LanguageOptions{Parser: ps[1]},
			Rules:           merge(rules, opts.Overrides),
		},
	}, nil
}

func asc(pathPattern string) obj {
	return obj{"order": obj{"type": "asc"}, "pathPattern": pathPattern}
}

func order(pathPattern string, keys ...string) obj {
	o := make([]any, len(keys))
	for i, k := range keys {
		o[i] = k
	}
	return obj{"order": o, "pathPattern": pathPattern}
}

// SortPackageJSON: package.json 键排序。
func SortPackageJSON() []contract.Fragment {
	return []contract.Fragment{{
		Name:  Name("sort", "package-json"),
		Files: []string{"**/package.json"},
		Rules: contract.Rules{
			"jsonc/sort-array-values": contract.Error(asc("^files$")),
			"jsonc/sort-keys": contract.Error(
				order("^$",
					"publisher", "name", "displayName", "type", "version", "private",
					"packageManager", "description", "author", "contributors", "license",
					"funding", "homepage", "repository", "bugs", "keywords", "categories",
					"sideEffects", "exports", "main", "module", "unpkg", "jsdelivr", "types",
					"typesVersions", "bin", "icon", "files", "engines", "activationEvents",
					"contributes", "scripts", "peerDependencies", "peerDependenciesMeta",
					"dependencies", "optionalDependencies", "devDependencies", "pnpm",
					"overrides", "resolutions", "husky", "simple-git-hooks", "lint-staged",
					"eslintConfig",
				),
				asc("^(?:dev|peer|optional|bundled)?[Dd]ependencies(Meta)?$"),
				asc("^(?:resolutions|overrides|pnpm.overrides)$"),
				order("^exports.*$", "types", "import", "require", "default"),
				order("^(?:gitHooks|husky|simple-git-hooks)$",
					"pre-commit", "prepare-commit-msg", "commit-msg", "post-commit",
					"pre-rebase", "post-rewrite", "post-checkout", "post-merge", "pre-push",
					"pre-auto-gc",
				),
			),
		},
	}}
}

// SortTSConfig: tsconfig 键排序。
func SortTSConfig() []contract.Fragment {
	return []contract.Fragment{{
		Name:  Name("sort", "tsconfig-json"),
		Files: []string{"**/tsconfig.json", "**/tsconfig.*.json"},
		Rules: contract.Rules{
			"jsonc/sort-keys": contract.Error(
				order("^$", "extends", "compilerOptions", "references", "files", "include", "exclude"),
				order("^compilerOptions$",
					// 项目
					"incremental", "composite", "tsBuildInfoFile", "disableSourceOfProjectReferenceRedirect",
					"disableSolutionSearching", "disableReferencedProjectLoad",
					// 语言与环境
					"target", "jsx", "jsxFactory", "jsxFragmentFactory", "jsxImportSource", "lib",
					"moduleDetection", "noLib", "reactNamespace", "useDefineForClassFields",
					"emitDecoratorMetadata", "experimentalDecorators",
					// 模块
					"baseUrl", "rootDir", "rootDirs", "customConditions", "module", "moduleResolution",
					"moduleSuffixes", "noResolve", "paths", "resolveJsonModule", "resolvePackageJsonExports",
					"resolvePackageJsonImports", "typeRoots", "types", "allowArbitraryExtensions",
					"allowImportingTsExtensions", "allowUmdGlobalAccess",
					// JavaScript 支持
					"allowJs", "checkJs", "maxNodeModuleJsDepth",
					// 类型检查
					"strict", "strictBindCallApply", "strictFunctionTypes", "strictNullChecks",
					"strictPropertyInitialization", "allowUnreachableCode", "allowUnusedLabels",
					"alwaysStrict", "exactOptionalPropertyTypes", "noFallthroughCasesInSwitch",
					"noImplicitAny", "noImplicitOverride", "noImplicitReturns", "noImplicitThis",
					"noPropertyAccessFromIndexSignature", "noUncheckedIndexedAccess",
					"noUnusedLocals", "noUnusedParameters", "useUnknownInCatchVariables",
					// 输出
					"declaration", "declarationDir", "declarationMap", "downlevelIteration",
					"emitBOM", "emitDeclarationOnly", "importHelpers", "importsNotUsedAsValues",
					"inlineSourceMap", "inlineSources", "mapRoot", "newLine", "noEmit",
					"noEmitHelpers", "noEmitOnError", "outDir", "outFile", "preserveConstEnums",
					"preserveValueImports", "removeComments", "sourceMap", "sourceRoot",
					"stripInternal",
					// 互操作
					"allowSyntheticDefaultImports", "esModuleInterop", "forceConsistentCasingInFileNames",
					"isolatedDeclarations", "isolatedModules", "preserveSymlinks", "verbatimModuleSyntax",
					// 完整性
					"skipDefaultLibCheck", "skipLibCheck",
				),
			),
		},
	}}
}

// RegexpOptions: 正则规则选项。
type RegexpOptions struct {
	// Level: "error"（默认）或 "warn"；warn 时将推荐集的 error 降级。
	Level     contract.Severity
	Overrides contract.Rules
}

// Regexp: 正则表达式规则。
func Regexp(ctx context.Context, src contract.PluginSource, opts RegexpOptions) ([]contract.Fragment, error) {
	p, err := load(ctx, src, "regexp", pregexp.Module)
	if err != nil {
		return nil, err
	}
	switch opts.Level {
	case "", contract.SeverityError, contract.SeverityWarn:
	default:
		return nil, fmt.Errorf("%w: regexp level %q", contract.ErrInvalidInput, opts.Level)
	}
	rules := p.Config("flat/recommended")
	if opts.Level == contract.SeverityWarn {
		for k, v := range rules {
			if v.Severity == contract.SeverityError {
				v.Severity = contract.SeverityWarn
				rules[k] = v
			}
		}
	}
	return []contract.Fragment{{
		Name:    Name("regexp", "rules"),
		Plugins: map[string]*contract.Plugin{"regexp": p},
		Rules:   merge(rules, opts.Overrides),
	}}, nil
}

// SvelteOptions: 组件模板语言选项。
type SvelteOptions struct {
	Files []string
	// TypeScript: 为 <script lang="ts"> 指定子解析器。
	TypeScript bool
	Overrides  contract.Rules
}

// Svelte: setup（插件）与 rules（解析器、处理器、规则）。
// 插件需由目标项目安装；缺失时返回 MissingDependencyError{Feature: "svelte"}。
func Svelte(ctx context.Context, src contract.PluginSource, opts SvelteOptions) ([]contract.Fragment, error) {
	ps, err := loadAll(ctx, src, "svelte", svelte.Module, svelte.ParserModule)
	if err != nil {
		return nil, err
	}
	pSvelte, parser := ps[0], ps[1]
	var sub any
	if opts.TypeScript {
		tsParser, err := load(ctx, src, "svelte", typescript.ParserModule)
		if err != nil {
			return nil, err
		}
		sub = tsParser
	}
	processor, err := pSvelte.Processor("svelte", svelte.Processor)
	if err != nil {
		return nil, err
	}
	files := opts.Files
	if files == nil {
		files = []string{globs.Svelte}
	}

	rules := contract.Rules{
		"import/no-mutable-exports": contract.Off(),
		"no-inner-declarations":     contract.Off(),
		"no-nested-ternary":         contract.Off(),
		"no-undef":                  contract.Off(),
		"no-undef-init":             contract.Off(),
		"no-unused-vars": contract.Error(obj{
			"args":              "none", "caughtErrors": "none", "ignoreRestSiblings": true, "vars": "all",
			"varsIgnorePattern": `^(\$\$Props$|\$\$Events$|\$\$Slots$)`,
		}),
		"svelte/block-lang": contract.Error(obj{
			"enforceScriptPresent": true, "enforceStylePresent": false,
			"script":               "ts", "style": []any{"scss", nil},
		}),
		"svelte/comment-directive":       contract.Error(obj{"reportUnusedDisableDirectives": true}),
		"svelte/html-self-closing":       contract.Warn("all"),
		"unicorn/filename-case":          contract.Off(),
		"unicorn/no-useless-undefined":   contract.Off(),
		"unicorn/prefer-top-level-await": contract.Off(),
		"unused-imports/no-unused-vars": contract.Error(obj{
			"args":              "after-used", "argsIgnorePattern": "^_", "vars": "all",
			"varsIgnorePattern": `^(_|\$\$Props$|\$\$Events$|\$\$Slots$)`,
		}),
	}
	for _, r := range []string{
		"derived-has-same-inputs-outputs", "infinite-reactive-loop", "no-dupe-else-if-blocks",
		"no-dupe-on-directives", "no-dupe-style-properties", "no-dupe-use-directives",
		"no-dynamic-slot-name", "no-export-load-in-svelte-module-in-kit-pages",
		"no-ignored-unsubscribe", "no-immutable-reactive-statements", "no-inner-declarations",
		"no-not-function-handler", "no-object-in-text-mustaches", "no-reactive-functions",
		"no-reactive-literals", "no-reactive-reassign", "no-shorthand-style-property-overrides",
		"no-store-async", "no-target-blank", "no-unknown-style-directive-property",
		"no-unused-svelte-ignore", "prefer-class-directive", "prefer-destructured-store-props",
		"require-event-dispatcher-types", "require-store-callbacks-use-set-param",
		"require-store-reactive-access", "require-stores-init", "system", "valid-each-key",
		"valid-prop-names-in-kit-pages",
	} {
		rules["svelte/"+r] = contract.Error()
	}
	for _, r := range []string{
		"html-closing-bracket-spacing", "mustache-spacing", "no-at-debug-tags", "no-at-html-tags",
		"no-extra-reactive-curlies", "no-spaces-around-equal-signs-in-attribute",
		"no-trailing-spaces", "no-useless-mustaches", "require-optimized-style-attribute",
		"shorthand-attribute", "shorthand-directive", "sort-attributes", "spaced-html-comment",
	} {
		rules["svelte/"+r] = contract.Warn()
	}

	return []contract.Fragment{
		{
			Name:    Name("svelte", "setup"),
			Plugins: map[string]*contract.Plugin{"svelte": pSvelte},
		},
		{
			Name:  Name("svelte", "rules"),
			Files: append([]string(nil), files...),
			LanguageOptions: &contract.LanguageOptions{
				Parser: parser,
				ParserOptions: obj{
					"extraFileExtensions": []any{".svelte"},
					"parser":              sub,
				},
			},
			Processor: processor,
			Rules:     merge(rules, opts.Overrides),
		},
	}, nil
}
