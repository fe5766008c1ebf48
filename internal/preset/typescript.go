package preset

import (
	"context"

	"flatcfg/pkg/contract"
	"flatcfg/pkg/globs"
	"flatcfg/plugins/antfu"
	"flatcfg/plugins/typescript"
)

// TypeScriptOptions: TypeScript 主题选项。
type TypeScriptOptions struct {
	ComponentExts []string
	// Type: "app" | "lib"；lib 要求显式返回类型。
	Type string
	// TSConfigPath: 非空即启用类型感知分析。
	TSConfigPath string
	// RootDir: tsconfigRootDir。
	RootDir       string
	ParserOptions map[string]any

	Files            []string
	FilesTypeAware   []string
	IgnoresTypeAware []string

	Overrides          contract.Rules
	OverridesTypeAware contract.Rules
}

// TypeAware 报告是否启用类型感知分析。
func (o TypeScriptOptions) TypeAware() bool { return o.TSConfigPath != "" }

// ResolvedFiles 返回声明的源码模式（默认 TS/TSX + 组件扩展名）。
func (o TypeScriptOptions) ResolvedFiles() []string {
	if o.Files != nil {
		return append([]string(nil), o.Files...)
	}
	return append([]string{globs.TS, globs.TSX}, globs.Component(o.ComponentExts)...)
}

// ResolvedFilesTypeAware 返回类型感知模式（默认 TS/TSX）。
func (o TypeScriptOptions) ResolvedFilesTypeAware() []string {
	if o.FilesTypeAware != nil {
		return append([]string(nil), o.FilesTypeAware...)
	}
	return []string{globs.TS, globs.TSX}
}

// TypeAwarePartition 返回两个解析器片段的 files/ignores：
// 类型感知片段覆盖 filesTypeAware 减去 ignoresTypeAware；
// 普通片段覆盖其余 files（ignoresTypeAware 中的文件经 "!" 重新纳入）。
// 在 files 范围内二者互斥且并集完整。
func (o TypeScriptOptions) TypeAwarePartition() (awareFiles, awareIgnores, plainFiles, plainIgnores []string) {
	awareFiles = o.ResolvedFilesTypeAware()
	awareIgnores = append([]string(nil), o.IgnoresTypeAware...)
	plainFiles = o.ResolvedFiles()
	plainIgnores = append([]string(nil), awareFiles...)
	for _, ig := range o.IgnoresTypeAware {
		plainIgnores = append(plainIgnores, "!"+ig)
	}
	return
}

var typeAwareRules = contract.Rules{
	"dot-notation":                     contract.Off(),
	"no-implied-eval":                  contract.Off(),
	"ts/await-thenable":                contract.Error(),
	"ts/dot-notation":                  contract.Error(obj{"allowKeywords": true}),
	"ts/no-floating-promises":          contract.Error(),
	"ts/no-for-in-array":               contract.Error(),
	"ts/no-implied-eval":               contract.Error(),
	"ts/no-misused-promises":           contract.Error(),
	"ts/no-unnecessary-type-assertion": contract.Error(),
	"ts/no-unsafe-argument":            contract.Error(),
	"ts/no-unsafe-assignment":          contract.Error(),
	"ts/no-unsafe-call":                contract.Error(),
	"ts/no-unsafe-member-access":       contract.Error(),
	"ts/no-unsafe-return":              contract.Error(),
	"ts/promise-function-async":        contract.Error(),
	"ts/restrict-plus-operands":        contract.Error(),
	"ts/restrict-template-expressions": contract.Error(),
	"ts/unbound-method":                contract.Error(),
}

// 由 TypeScript 编译器自行检查的内置规则。
var compilerChecked = []string{
	"constructor-super", "getter-return", "no-const-assign", "no-dupe-args",
	"no-dupe-class-members", "no-dupe-keys", "no-func-assign", "no-obj-calls", "no-redeclare",
	"no-setter-return", "no-this-before-super", "no-undef", "no-unreachable",
	"no-unsafe-negation", "no-invalid-this",
}

// TypeScript: setup（仅插件）、解析器片段、规则片段，以及类型感知时的附加规则。
func TypeScript(ctx context.Context, src contract.PluginSource, opts TypeScriptOptions) ([]contract.Fragment, error) {
	ps, err := loadAll(ctx, src, "typescript", antfu.Module, typescript.Module, typescript.ParserModule)
	if err != nil {
		return nil, err
	}
	pAntfu, pTS, parser := ps[0], ps[1], ps[2]
	files := opts.ResolvedFiles()
	rename := map[string]string{typescript.Namespace: "ts"}

	exts := make([]any, 0, len(opts.ComponentExts))
	for _, e := range opts.ComponentExts {
		exts = append(exts, "."+e)
	}
	makeParser := func(typeAware bool, files, ignores []string) contract.Fragment {
		po := obj{
			"extraFileExtensions": exts,
			"sourceType":          "module",
		}
		sub := "parser"
		if typeAware {
			sub = "type-aware-parser"
			po["projectService"] = obj{
				"allowDefaultProject": []any{"./*.js"},
				"defaultProject":      opts.TSConfigPath,
			}
			po["tsconfigRootDir"] = opts.RootDir
		}
		for k, v := range opts.ParserOptions {
			po[k] = contract.CloneValue(v)
		}
		f := contract.Fragment{
			Name:  Name("typescript", sub),
			Files: files,
			LanguageOptions: &contract.LanguageOptions{
				Parser:        parser,
				ParserOptions: po,
			},
		}
		if len(ignores) > 0 {
			f.Ignores = ignores
		}
		return f
	}

	out := []contract.Fragment{{
		Name:    Name("typescript", "setup"),
		Plugins: map[string]*contract.Plugin{"antfu": pAntfu, "ts": pTS},
	}}
	if opts.TypeAware() {
		af, ai, pf, pi := opts.TypeAwarePartition()
		out = append(out, makeParser(true, af, ai), makeParser(false, pf, pi))
	} else {
		out = append(out, makeParser(false, files, nil))
	}

	custom := contract.Rules{
		"antfu/no-ts-export-equal":       contract.Error(),
		"default-param-last":             contract.Off(),
		"import/default":                 contract.Off(),
		"import/export":                  contract.Error(),
		"no-unused-expressions":          contract.Off(),
		"no-use-before-define":           contract.Off(),
		"no-useless-constructor":         contract.Off(),
		"ts/array-type":                  contract.Error(obj{"default": "array-simple"}),
		"ts/ban-ts-comment":              contract.Error(obj{"ts-expect-error": "allow-with-description"}),
		"ts/consistent-type-definitions": contract.Error("interface"),
		"ts/consistent-type-imports":     contract.Error(obj{"prefer": "type-imports"}),
		"ts/default-param-last":          contract.Error(),
		"ts/method-signature-style":      contract.Error("property"),
		"ts/no-dupe-class-members":       contract.Error(),
		"ts/no-explicit-any":             contract.Off(),
		"ts/no-invalid-void-type":        contract.Off(),
		"ts/no-non-null-assertion":       contract.Off(),
		"ts/no-redeclare":                contract.Error(),
		"ts/no-require-imports":          contract.Error(),
		"ts/no-unsafe-unary-minus":       contract.Error(),
		"ts/no-unused-expressions":       contract.Error(),
		"ts/no-unused-vars":              contract.Off(),
		"ts/no-use-before-define":        contract.Error(obj{"classes": false, "functions": false, "variables": true}),
		"ts/no-useless-empty-export":     contract.Error(),
		"ts/prefer-nullish-coalescing":   contract.Off(),
		"ts/unified-signatures":          contract.Error(obj{"ignoreDifferentlyNamedParameters": true}),
	}
	for _, r := range compilerChecked {
		custom[r] = contract.Off()
	}
	if opts.Type == "lib" {
		custom["ts/explicit-function-return-type"] = contract.Error(obj{
			"allowExpressions":          true,
			"allowHigherOrderFunctions": true,
			"allowIIFEs":                true,
		})
	}

	out = append(out, contract.Fragment{
		Name:  Name("typescript", "rules"),
		Files: files,
		Rules: merge(
			pTS.Config("eslint-recommended").Renamed(rename),
			pTS.Config("strict").Renamed(rename),
			custom,
			opts.Overrides,
		),
	})
	if opts.TypeAware() {
		aware := contract.Fragment{
			Name:  Name("typescript", "rules-type-aware"),
			Files: opts.ResolvedFilesTypeAware(),
			Rules: merge(typeAwareRules, opts.OverridesTypeAware),
		}
		if len(opts.IgnoresTypeAware) > 0 {
			aware.Ignores = append([]string(nil), opts.IgnoresTypeAware...)
		}
		out = append(out, aware)
	}
	return out, nil
}
