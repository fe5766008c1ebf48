package preset

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flatcfg/pkg/contract"
	"flatcfg/pkg/globs"
	"flatcfg/pkg/registry"
	"flatcfg/plugins/svelte"
)

type fakeProbe struct {
	pkgs  map[string]bool
	files map[string]string
}

func (f fakeProbe) PackageExists(name string) bool { return f.pkgs[name] }

func (f fakeProbe) FileExists(p string) bool {
	_, ok := f.files[p]
	return ok
}

func (f fakeProbe) ReadFile(p string) ([]byte, error) {
	s, ok := f.files[p]
	if !ok {
		return nil, os.ErrNotExist
	}
	return []byte(s), nil
}

func source(t *testing.T, probe contract.EnvironmentProbe) contract.PluginSource {
	t.Helper()
	s, err := registry.NewSource(probe, 0)
	require.NoError(t, err)
	return s
}

func names(frags []contract.Fragment) []string {
	out := make([]string, len(frags))
	for i, f := range frags {
		out[i] = f.Name
	}
	return out
}

// TestConvertIgnorePattern gitignore 模式到 glob 的转换。
func TestConvertIgnorePattern(t *testing.T) {
	cases := map[string]string{
		"node_modules": "**/node_modules",
		"dist/":        "**/dist/",
		"/build":       "build",
		"src/gen":      "src/gen",
		"*.log":        "**/*.log",
		"!keep.log":    "!**/keep.log",
		"!/root.txt":   "!root.txt",
		"logs/**":      "logs/**/*",
		"**/tmp":       "**/tmp",
		"**":           "**",
		"a{b}.txt":     `**/a\{b}.txt`,
		"fn(x).js":     `**/fn\(x).js`,
		`esc\{ok}.txt`:  `**/esc\{ok}.txt`,
		"trailing.md  ": "**/trailing.md",
	}
	for in, want := range cases {
		assert.Equal(t, want, ConvertIgnorePattern(in), in)
	}
}

// TestParseGitignore 跳过注释与空行，子目录模式相对化。
func TestParseGitignore(t *testing.T) {
	content := "# comment\n\nnode_modules\r\n\\#literal\n!important.log\n*.log  \n"
	assert.Equal(t,
		[]string{"**/node_modules", "**/#literal", "!**/important.log", "**/*.log"},
		ParseGitignore([]byte(content), "."))
	assert.Equal(t,
		[]string{"pkg/**/dist", "!pkg/**/keep"},
		ParseGitignore([]byte("dist\n!keep\n"), "pkg"))
}

// TestGitignore 读取探测器中的忽略文件；strict 时缺失报错。
func TestGitignore(t *testing.T) {
	probe := fakeProbe{files: map[string]string{".gitignore": "coverage\n/out\n"}}
	frags, err := Gitignore(probe, GitignoreOptions{})
	require.NoError(t, err)
	require.Len(t, frags, 1)
	assert.Equal(t, "flatcfg/gitignore", frags[0].Name)
	assert.Equal(t, []string{"**/coverage", "out"}, frags[0].Ignores)
	assert.True(t, frags[0].IsGlobalIgnore())

	frags, err = Gitignore(fakeProbe{}, GitignoreOptions{})
	require.NoError(t, err)
	assert.Empty(t, frags)

	_, err = Gitignore(fakeProbe{}, GitignoreOptions{Files: []string{".gitignore"}, Strict: true})
	assert.ErrorIs(t, err, contract.ErrInvalidInput)
}

// TestTypeScriptPlain 未提供 tsconfigPath 时只有一个普通解析器片段。
func TestTypeScriptPlain(t *testing.T) {
	frags, err := TypeScript(context.Background(), source(t, nil), TypeScriptOptions{ComponentExts: []string{"svelte"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"flatcfg/typescript/setup", "flatcfg/typescript/parser", "flatcfg/typescript/rules"}, names(frags))
	assert.Empty(t, frags[0].Files, "setup 片段不应带 files")
	assert.Equal(t, []string{globs.TS, globs.TSX, "**/*.svelte"}, frags[1].Files)
	assert.Equal(t, []any{".svelte"}, frags[1].LanguageOptions.ParserOptions["extraFileExtensions"])
	rules := frags[2].Rules
	assert.Contains(t, rules, "ts/no-require-imports")
	assert.Contains(t, rules, "ts/no-extraneous-class", "strict 配置应被重命名并并入")
	for k := range rules {
		assert.NotContains(t, k, "@typescript-eslint/")
	}
	assert.NotContains(t, rules, "ts/explicit-function-return-type")
}

// TestTypeScriptTypeAware 类型感知时输出两个解析器片段与附加规则。
func TestTypeScriptTypeAware(t *testing.T) {
	opts := TypeScriptOptions{
		Type:               "lib",
		TSConfigPath:       "tsconfig.json",
		RootDir:            "/proj",
		IgnoresTypeAware:   []string{"docs/**"},
		OverridesTypeAware: contract.Rules{"ts/no-floating-promises": contract.Warn()},
	}
	frags, err := TypeScript(context.Background(), source(t, nil), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"flatcfg/typescript/setup",
		"flatcfg/typescript/type-aware-parser",
		"flatcfg/typescript/parser",
		"flatcfg/typescript/rules",
		"flatcfg/typescript/rules-type-aware",
	}, names(frags))

	aware, plain := frags[1], frags[2]
	assert.Equal(t, []string{globs.TS, globs.TSX}, aware.Files)
	assert.Equal(t, []string{"docs/**"}, aware.Ignores)
	assert.Equal(t, []string{globs.TS, globs.TSX, "!docs/**"}, plain.Ignores)
	ps := aware.LanguageOptions.ParserOptions
	assert.Equal(t, "/proj", ps["tsconfigRootDir"])
	assert.Equal(t, "tsconfig.json", ps["projectService"].(map[string]any)["defaultProject"])
	assert.NotContains(t, plain.LanguageOptions.ParserOptions, "projectService")
	assert.Same(t, aware.LanguageOptions.Parser, plain.LanguageOptions.Parser)

	assert.Contains(t, frags[3].Rules, "ts/explicit-function-return-type")
	assert.Equal(t, contract.Warn(), frags[4].Rules["ts/no-floating-promises"])
}

// TestSvelteMissing 未安装插件时报 MissingDependency 且不返回片段。
func TestSvelteMissing(t *testing.T) {
	frags, err := Svelte(context.Background(), source(t, fakeProbe{}), SvelteOptions{})
	assert.Nil(t, frags)
	var md *contract.MissingDependencyError
	require.True(t, errors.As(err, &md), "err=%v", err)
	assert.Equal(t, "svelte", md.Feature)
	assert.Equal(t, svelte.Module, md.Package)
	assert.ErrorIs(t, err, contract.ErrModuleNotFound)
}

// TestSvelte 已安装时输出 setup 与 rules，并挂载处理器与子解析器。
func TestSvelte(t *testing.T) {
	probe := fakeProbe{pkgs: map[string]bool{svelte.Module: true, svelte.ParserModule: true}}
	frags, err := Svelte(context.Background(), source(t, probe), SvelteOptions{
		TypeScript: true,
		Overrides:  contract.Rules{"svelte/no-at-html-tags": contract.Off()},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"flatcfg/svelte/setup", "flatcfg/svelte/rules"}, names(frags))
	r := frags[1]
	assert.Equal(t, "svelte/.svelte", r.Processor)
	assert.Equal(t, []string{globs.Svelte}, r.Files)
	assert.Equal(t, svelte.ParserModule, r.LanguageOptions.Parser.Module)
	assert.Equal(t, "@typescript-eslint/parser", r.LanguageOptions.ParserOptions["parser"].(*contract.Plugin).Module)
	assert.Equal(t, contract.Off(), r.Rules["svelte/no-at-html-tags"])
}

// TestRegexpLevel warn 级别将推荐集的 error 降级。
func TestRegexpLevel(t *testing.T) {
	frags, err := Regexp(context.Background(), source(t, nil), RegexpOptions{Level: contract.SeverityWarn})
	require.NoError(t, err)
	require.NotEmpty(t, frags[0].Rules)
	for k, v := range frags[0].Rules {
		assert.Equal(t, contract.SeverityWarn, v.Severity, k)
	}
	_, err = Regexp(context.Background(), source(t, nil), RegexpOptions{Level: "loud"})
	assert.ErrorIs(t, err, contract.ErrInvalidInput)
}

// TestJavascriptEditor 编辑器内放宽未使用导入与 prefer-const。
func TestJavascriptEditor(t *testing.T) {
	src := source(t, nil)
	ci, err := Javascript(context.Background(), src, JavascriptOptions{})
	require.NoError(t, err)
	ed, err := Javascript(context.Background(), src, JavascriptOptions{
		IsInEditor: true,
		Overrides:  contract.Rules{"no-console": contract.Off()},
	})
	require.NoError(t, err)
	assert.Equal(t, contract.SeverityError, ci[1].Rules["unused-imports/no-unused-imports"].Severity)
	assert.Equal(t, contract.SeverityWarn, ed[1].Rules["unused-imports/no-unused-imports"].Severity)
	assert.Equal(t, contract.SeverityWarn, ed[1].Rules["prefer-const"].Severity)
	assert.Equal(t, contract.Off(), ed[1].Rules["no-console"])
	assert.Contains(t, ci[1].Rules, "no-with", "应包含 eslint 推荐规则")
}

// TestDisablesOrder 放宽片段顺序固定。
func TestDisablesOrder(t *testing.T) {
	assert.Equal(t, []string{
		"flatcfg/disables/scripts", "flatcfg/disables/cli", "flatcfg/disables/bin",
		"flatcfg/disables/dts", "flatcfg/disables/test", "flatcfg/disables/cjs",
		"flatcfg/disables/config-files",
	}, names(Disables()))
}

// TestLoadPassesThroughOtherErrors 非模块缺失错误原样返回。
func TestLoadPassesThroughOtherErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Comments(ctx, source(t, nil))
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, contract.ErrMissingDependency)
}
