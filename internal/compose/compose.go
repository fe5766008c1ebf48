// Package compose 组合有序的配置片段序列：环境探测 → 基础片段 → 条件片段 →
// 覆盖片段 → 内联片段 → 用户片段 → 插件命名空间规范化。
//
// 并发：各主题构造互相独立，使用 errgroup 并发执行；结果按主题下标落槽后
// 依固定顺序展开，因此并发不影响顺序。多个主题失败时，按主题顺序取首个错误。
package compose

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"flatcfg/internal/preset"
	"flatcfg/pkg/contract"
	"flatcfg/pkg/registry"
)

// MaxParallelTopics: 同时构造的主题上限。
const MaxParallelTopics = 8

// topic: 一个主题的片段构造器。
type topic struct {
	name  string
	build func(ctx context.Context) ([]contract.Fragment, error)
}

// Compose 根据选项与环境产出组合结果。失败时不返回部分结果。
// user 中的来源在返回的 Composer 求值时才解析。
func Compose(ctx context.Context, env Env, opts Options, user ...Source) (*Composer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	env, err := env.withDefaults()
	if err != nil {
		return nil, err
	}
	feat := ResolveFeatures(env, opts)
	log := env.Logger
	timer := log.StartWithKV("compose", "compose", map[string]string{
		"features": strings.Join(feat.Names(), ","),
	})

	frags, err := runTopics(ctx, env, topics(env, opts, feat))
	if err != nil {
		timer.Fail(err)
		return nil, err
	}
	if opts.hasInline() {
		inline, err := inlineFragment(ctx, env, opts)
		if err != nil {
			timer.Fail(err)
			return nil, err
		}
		frags = append(frags, inline)
	}
	checkPeers(env, frags)

	c := New(Static(frags...))
	if len(user) > 0 {
		c.Append(user...)
	}
	if feat.Rename {
		c.RenamePlugins(DefaultRenames())
	}
	timer.Finish("compose", int64(len(frags)))
	return c, nil
}

// topics 按固定顺序列出本次需要构造的主题。
func topics(env Env, opts Options, feat Features) []topic {
	src := env.Plugins
	static := func(name string, fn func() []contract.Fragment) topic {
		return topic{name: name, build: func(context.Context) ([]contract.Fragment, error) { return fn(), nil }}
	}
	var ts []topic
	if feat.Gitignore {
		ts = append(ts, topic{name: "gitignore", build: func(context.Context) ([]contract.Fragment, error) {
			g := opts.Gitignore.Options
			return preset.Gitignore(env.Probe, preset.GitignoreOptions{Files: g.Files, Strict: g.Strict})
		}})
	}
	ts = append(ts,
		static("ignores", preset.Ignores),
		topic{name: "javascript", build: func(ctx context.Context) ([]contract.Fragment, error) {
			return preset.Javascript(ctx, src, preset.JavascriptOptions{
				IsInEditor: feat.IsInEditor,
				Overrides:  opts.Javascript.Overrides,
			})
		}},
		topic{name: "comments", build: withSource(src, preset.Comments)},
		topic{name: "node", build: withSource(src, preset.Node)},
		topic{name: "jsdoc", build: withSource(src, preset.JSDoc)},
		topic{name: "imports", build: withSource(src, preset.Imports)},
		topic{name: "unicorn", build: withSource(src, preset.Unicorn)},
		topic{name: "command", build: withSource(src, preset.Command)},
		topic{name: "perfectionist", build: withSource(src, preset.Perfectionist)},
	)
	if feat.TypeScript {
		o := opts.TypeScript.Options
		ts = append(ts, topic{name: "typescript", build: func(ctx context.Context) ([]contract.Fragment, error) {
			return preset.TypeScript(ctx, src, preset.TypeScriptOptions{
				ComponentExts:      opts.ComponentExts,
				Type:               opts.Type,
				TSConfigPath:       o.TSConfigPath,
				RootDir:            env.RootDir,
				ParserOptions:      o.ParserOptions,
				Files:              o.Files,
				FilesTypeAware:     o.FilesTypeAware,
				IgnoresTypeAware:   o.IgnoresTypeAware,
				Overrides:          o.Overrides,
				OverridesTypeAware: o.OverridesTypeAware,
			})
		}})
	}
	if feat.JSX {
		ts = append(ts, static("jsx", preset.JSX))
	}
	if feat.JSONC {
		ts = append(ts, topic{name: "jsonc", build: func(ctx context.Context) ([]contract.Fragment, error) {
			out, err := preset.JSONC(ctx, src, preset.JSONCOptions{Overrides: opts.JSONC.Options.Overrides})
			if err != nil {
				return nil, err
			}
			out = append(out, preset.SortPackageJSON()...)
			return append(out, preset.SortTSConfig()...), nil
		}})
	}
	if feat.Regexp {
		ts = append(ts, topic{name: "regexp", build: func(ctx context.Context) ([]contract.Fragment, error) {
			return preset.Regexp(ctx, src, preset.RegexpOptions{
				Level:     opts.Regexp.Options.Level,
				Overrides: opts.Regexp.Options.Overrides,
			})
		}})
	}
	if feat.Svelte {
		ts = append(ts, topic{name: "svelte", build: func(ctx context.Context) ([]contract.Fragment, error) {
			return preset.Svelte(ctx, src, preset.SvelteOptions{
				Files:      opts.Svelte.Options.Files,
				TypeScript: feat.TypeScript,
				Overrides:  opts.Svelte.Options.Overrides,
			})
		}})
	}
	return append(ts, static("disables", preset.Disables))
}

func withSource(src contract.PluginSource, fn func(context.Context, contract.PluginSource) ([]contract.Fragment, error)) func(context.Context) ([]contract.Fragment, error) {
	return func(ctx context.Context) ([]contract.Fragment, error) { return fn(ctx, src) }
}

// runTopics 并发构造各主题并按顺序展开。
// 不做兄弟取消：每个主题都会完成，错误结果与调度无关。
func runTopics(ctx context.Context, env Env, ts []topic) ([]contract.Fragment, error) {
	results := make([][]contract.Fragment, len(ts))
	errs := make([]error, len(ts))
	var g errgroup.Group
	g.SetLimit(MaxParallelTopics)
	for i, t := range ts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			env.Logger.DebugStart("compose", "topic", map[string]string{"topic": t.name})
			results[i], errs[i] = t.build(ctx)
			return nil
		})
	}
	_ = g.Wait()

	n := 0
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("compose %s: %w", ts[i].name, err)
		}
		n += len(results[i])
	}
	out := make([]contract.Fragment, 0, n)
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

// inlineFragment 由选项中的片段键构造一个片段；已注册的插件说明符替换为完整句柄。
func inlineFragment(ctx context.Context, env Env, opts Options) (contract.Fragment, error) {
	f := contract.Fragment{
		Name:          opts.Name,
		Rules:         opts.Rules.Clone(),
		LinterOptions: cloneMap(opts.LinterOptions),
		Processor:     opts.Processor,
		Settings:      cloneMap(opts.Settings),
	}
	if f.Name == "" {
		f.Name = preset.Name("inline")
	}
	if len(opts.Plugins) > 0 {
		f.Plugins = make(map[string]*contract.Plugin, len(opts.Plugins))
		for ns, p := range opts.Plugins {
			h, err := resolveHandle(ctx, env.Plugins, p)
			if err != nil {
				return contract.Fragment{}, err
			}
			f.Plugins[ns] = h
		}
	}
	if opts.LanguageOptions != nil {
		lo := opts.LanguageOptions.Clone()
		if lo.Parser != nil {
			h, err := resolveHandle(ctx, env.Plugins, lo.Parser)
			if err != nil {
				return contract.Fragment{}, err
			}
			lo.Parser = h
		}
		f.LanguageOptions = &lo
	}
	return f, nil
}

// resolveHandle: 注册表未收录的模块保留调用方给出的句柄（由引擎自行加载）。
func resolveHandle(ctx context.Context, src contract.PluginSource, p *contract.Plugin) (*contract.Plugin, error) {
	h, err := src.Resolve(ctx, p.Module)
	switch {
	case err == nil:
		return h, nil
	case errors.Is(err, contract.ErrModuleNotFound):
		return p, nil
	default:
		return nil, err
	}
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	return contract.CloneValue(m).(map[string]any)
}

// checkPeers 对声明了版本范围的句柄做一次检查；不满足时仅告警。
func checkPeers(env Env, frags []contract.Fragment) {
	seen := map[string]*contract.Plugin{}
	for _, f := range frags {
		for _, p := range f.Plugins {
			if p != nil && p.Range != "" {
				seen[p.Module] = p
			}
		}
		if f.LanguageOptions != nil && f.LanguageOptions.Parser != nil && f.LanguageOptions.Parser.Range != "" {
			seen[f.LanguageOptions.Parser.Module] = f.LanguageOptions.Parser
		}
	}
	mods := make([]string, 0, len(seen))
	for m := range seen {
		mods = append(mods, m)
	}
	sort.Strings(mods)
	for _, m := range mods {
		if err := registry.CheckRange(seen[m]); err != nil {
			env.Logger.Warn("compose", "peer version out of range", map[string]string{
				"module": m,
				"error":  err.Error(),
			})
		}
	}
}
