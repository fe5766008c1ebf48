package compose

import (
	"fmt"

	"flatcfg/internal/diag"
	"flatcfg/pkg/contract"
	"flatcfg/pkg/registry"
)

// Env: 组合期协作者。零值可用：探测器缺省视为空项目，插件源缺省为内置注册表。
type Env struct {
	Probe   contract.EnvironmentProbe
	Plugins contract.PluginSource
	Logger  *diag.Logger
	// RootDir: 类型感知分析的 tsconfigRootDir；空表示 "."。
	RootDir string
}

// editorEnv: 任一存在即视为在编辑器内运行（CI 除外）。
var editorEnv = []string{"VSCODE_PID", "VSCODE_CWD", "JETBRAINS_IDE", "VIM", "NVIM"}

type emptyProbe struct{}

func (emptyProbe) PackageExists(string) bool { return false }
func (emptyProbe) FileExists(string) bool    { return false }

func (e Env) withDefaults() (Env, error) {
	if e.Probe == nil {
		e.Probe = emptyProbe{}
	}
	if e.Plugins == nil {
		src, err := registry.NewSource(e.Probe, 0)
		if err != nil {
			return e, fmt.Errorf("compose: plugin source: %w", err)
		}
		e.Plugins = src
	}
	if e.RootDir == "" {
		e.RootDir = "."
	}
	return e, nil
}

// Features: 环境探测后的最终特性集合。
type Features struct {
	IsInEditor bool
	Gitignore  bool
	TypeScript bool
	TypeAware  bool
	JSX        bool
	JSONC      bool
	Regexp     bool
	Svelte     bool
	Rename     bool
}

// Names 按主题顺序列出启用的可选特性。
func (f Features) Names() []string {
	var out []string
	add := func(on bool, name string) {
		if on {
			out = append(out, name)
		}
	}
	add(f.Gitignore, "gitignore")
	add(f.TypeScript, "typescript")
	add(f.TypeAware, "type-aware")
	add(f.JSX, "jsx")
	add(f.JSONC, "jsonc")
	add(f.Regexp, "regexp")
	add(f.Svelte, "svelte")
	add(f.IsInEditor, "editor")
	return out
}

// ResolveFeatures 以选项为准，未设置的特性交由探测器决定。不缓存、不重试。
func ResolveFeatures(env Env, opts Options) Features {
	probe := env.Probe
	if probe == nil {
		probe = emptyProbe{}
	}
	f := Features{
		Gitignore:  opts.Gitignore.Resolve(probe.FileExists(".gitignore")),
		TypeScript: opts.TypeScript.Resolve(probe.PackageExists("typescript")),
		JSX:        opts.jsxEnabled(),
		JSONC:      opts.JSONC.Resolve(true),
		Regexp:     opts.Regexp.Resolve(true),
		Svelte:     opts.Svelte.Resolve(probe.PackageExists("svelte")),
		Rename:     opts.renameEnabled(),
	}
	f.TypeAware = f.TypeScript && opts.TypeScript.Options.TSConfigPath != ""
	if opts.IsInEditor != nil {
		f.IsInEditor = *opts.IsInEditor
	} else {
		f.IsInEditor = detectEditor(probe)
	}
	return f
}

func detectEditor(probe contract.EnvironmentProbe) bool {
	env, ok := probe.(contract.EnvLookup)
	if !ok {
		return false
	}
	if _, ci := env.LookupEnv("CI"); ci {
		return false
	}
	for _, k := range editorEnv {
		if _, ok := env.LookupEnv(k); ok {
			return true
		}
	}
	return false
}
