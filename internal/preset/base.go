package preset

import (
	"context"

	"flatcfg/pkg/contract"
	"flatcfg/pkg/globs"
	"flatcfg/plugins/antfu"
	"flatcfg/plugins/command"
	"flatcfg/plugins/comments"
	"flatcfg/plugins/importx"
	"flatcfg/plugins/jsdoc"
	"flatcfg/plugins/node"
	"flatcfg/plugins/perfectionist"
	"flatcfg/plugins/unicorn"
)

// Comments: eslint 指令注释卫生规则。
func Comments(ctx context.Context, src contract.PluginSource) ([]contract.Fragment, error) {
	p, err := load(ctx, src, "comments", comments.Module)
	if err != nil {
		return nil, err
	}
	return []contract.Fragment{{
		Name:    Name("eslint-comments", "rules"),
		Plugins: map[string]*contract.Plugin{"eslint-comments": p},
		Rules: contract.Rules{
			"eslint-comments/no-aggregating-enable": contract.Error(),
			"eslint-comments/no-duplicate-disable":  contract.Error(),
			"eslint-comments/no-unlimited-disable":  contract.Error(),
			"eslint-comments/no-unused-disable":     contract.Error(),
			"eslint-comments/no-unused-enable":      contract.Error(),
		},
	}}, nil
}

// Node: Node.js 运行时规则。
func Node(ctx context.Context, src contract.PluginSource) ([]contract.Fragment, error) {
	p, err := load(ctx, src, "node", node.Module)
	if err != nil {
		return nil, err
	}
	return []contract.Fragment{{
		Name:    Name("node", "rules"),
		Plugins: map[string]*contract.Plugin{"node": p},
		Rules: contract.Rules{
			"node/handle-callback-err":             contract.Error("^(err|error)$"),
			"node/no-deprecated-api":               contract.Error(),
			"node/no-exports-assign":               contract.Error(),
			"node/no-path-concat":                  contract.Error(),
			"node/prefer-global/buffer":            contract.Error("never"),
			"node/prefer-global/console":           contract.Error(),
			"node/prefer-global/process":           contract.Error("never"),
			"node/prefer-global/text-decoder":      contract.Error(),
			"node/prefer-global/text-encoder":      contract.Error(),
			"node/prefer-global/url":               contract.Error(),
			"node/prefer-global/url-search-params": contract.Error(),
			"node/process-exit-as-throw":           contract.Error(),
		},
	}}, nil
}

// JSDoc: 文档注释规则（均为 warn）。
func JSDoc(ctx context.Context, src contract.PluginSource) ([]contract.Fragment, error) {
	p, err := load(ctx, src, "jsdoc", jsdoc.Module)
	if err != nil {
		return nil, err
	}
	rules := contract.Rules{
		"jsdoc/check-tag-names":    contract.Warn(obj{"typed": true}),
		"jsdoc/no-undefined-types": contract.Off(),
	}
	for _, r := range []string{
		"check-access", "check-alignment", "check-indentation", "check-line-alignment",
		"check-param-names", "check-property-names", "check-syntax", "check-types",
		"check-values", "empty-tags", "implements-on-classes", "imports-as-dependencies",
		"multiline-blocks", "no-bad-blocks", "no-blank-block-descriptions", "no-blank-blocks",
		"no-defaults", "no-multi-asterisks", "no-types", "require-asterisk-prefix",
		"require-hyphen-before-param-description", "require-throws", "sort-tags", "tag-lines",
		"valid-types",
	} {
		rules["jsdoc/"+r] = contract.Warn()
	}
	return []contract.Fragment{{
		Name:    Name("jsdoc", "rules"),
		Plugins: map[string]*contract.Plugin{"jsdoc": p},
		Rules:   rules,
	}}, nil
}

// Imports: 导入卫生规则；bin 目录放宽 dist/node_modules 路径导入。
func Imports(ctx context.Context, src contract.PluginSource) ([]contract.Fragment, error) {
	ps, err := loadAll(ctx, src, "imports", antfu.Module, importx.Module)
	if err != nil {
		return nil, err
	}
	return []contract.Fragment{
		{
			Name:    Name("imports", "rules"),
			Plugins: map[string]*contract.Plugin{"antfu": ps[0], "import": ps[1]},
			Rules: contract.Rules{
				"antfu/import-dedupe":                  contract.Error(),
				"antfu/no-import-dist":                 contract.Error(),
				"antfu/no-import-node-modules-by-path": contract.Error(),

				"import/default":                     contract.Error(),
				"import/export":                      contract.Error(),
				"import/first":                       contract.Error(),
				"import/newline-after-import":        contract.Warn(obj{"considerComments": true}),
				"import/no-absolute-path":            contract.Error(),
				"import/no-amd":                      contract.Error(),
				"import/no-anonymous-default-export": contract.Error(),
				"import/no-commonjs":                 contract.Error(),
				"import/no-deprecated":               contract.Error(),
				"import/no-duplicates":               contract.Error(obj{"prefer-inline": true}),
				"import/no-empty-named-blocks":       contract.Error(),
				"import/no-import-module-exports":    contract.Error(),
				"import/no-mutable-exports":          contract.Error(),
				"import/no-named-as-default":         contract.Error(),
				"import/no-named-as-default-member":  contract.Error(),
				"import/no-named-default":            contract.Error(),
				"import/no-self-import":              contract.Error(),
				"import/no-unused-modules":           contract.Error(),
				"import/no-useless-path-segments":    contract.Error(),
				"no-duplicate-imports":               contract.Off(),
			},
		},
		{
			Name:  Name("imports", "disables", "bin"),
			Files: []string{"**/bin/**/*", "**/bin." + globs.SrcExt},
			Rules: contract.Rules{
				"antfu/no-import-dist":                 contract.Off(),
				"antfu/no-import-node-modules-by-path": contract.Off(),
			},
		},
	}, nil
}

// Unicorn: 代码质量规则（flat/recommended + 追加项）。
func Unicorn(ctx context.Context, src contract.PluginSource) ([]contract.Fragment, error) {
	p, err := load(ctx, src, "unicorn", unicorn.Module)
	if err != nil {
		return nil, err
	}
	return []contract.Fragment{{
		Name:    Name("unicorn", "rules"),
		Plugins: map[string]*contract.Plugin{"unicorn": p},
		Rules: merge(p.Config("flat/recommended"), contract.Rules{
			"unicorn/consistent-destructuring":           contract.Warn(),
			"unicorn/custom-error-definition":            contract.Error(),
			"unicorn/prefer-json-parse-buffer":           contract.Error(),
			"unicorn/require-post-message-target-origin": contract.Error(),
		}),
	}}, nil
}

// Command: 注释触发的一次性代码变换。
func Command(ctx context.Context, src contract.PluginSource) ([]contract.Fragment, error) {
	p, err := load(ctx, src, "command", command.Module)
	if err != nil {
		return nil, err
	}
	return []contract.Fragment{{
		Name:    Name("command", "rules"),
		Plugins: map[string]*contract.Plugin{"command": p},
		Rules:   contract.Rules{"command/command": contract.Error()},
	}}, nil
}

// Perfectionist: 导入/导出排序。
func Perfectionist(ctx context.Context, src contract.PluginSource) ([]contract.Fragment, error) {
	p, err := load(ctx, src, "perfectionist", perfectionist.Module)
	if err != nil {
		return nil, err
	}
	groups := []any{
		"svelte",
		[]any{
			"builtin", "external", "builtin-type", "external-type", "internal", "parent",
			"siblings", "side-effect", "side-effect-style", "index", "object", "style",
			"internal-type", "parent-type", "sibling-type", "index-type", "unknown",
		},
	}
	return []contract.Fragment{{
		Name:    Name("perfectionist", "setup"),
		Plugins: map[string]*contract.Plugin{"perfectionist": p},
		Rules: contract.Rules{
			"perfectionist/sort-exports": contract.Error(obj{"type": "natural"}),
			"perfectionist/sort-imports": contract.Error(obj{
				"customGroups": obj{
					"value": obj{
						"svelte": []any{"**/*.svelte", "./*.svelte", "../*.svelte", "../**/*.svelte"},
					},
				},
				"groups": groups,
				"type":   "natural",
			}),
		},
	}}, nil
}
