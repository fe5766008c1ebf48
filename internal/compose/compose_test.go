package compose

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flatcfg/internal/match"
	"flatcfg/pkg/contract"
	"flatcfg/pkg/globs"
	"flatcfg/pkg/registry"
	"flatcfg/plugins/svelte"
	"flatcfg/plugins/typescript"
)

type fakeProbe struct {
	pkgs  map[string]bool
	files map[string]string
	env   map[string]string
	vers  map[string]string
}

func (f fakeProbe) PackageExists(name string) bool { return f.pkgs[name] }

func (f fakeProbe) FileExists(p string) bool {
	_, ok := f.files[p]
	return ok
}

func (f fakeProbe) ReadFile(p string) ([]byte, error) {
	s, ok := f.files[p]
	if !ok {
		return nil, errors.New("not found")
	}
	return []byte(s), nil
}

func (f fakeProbe) LookupEnv(k string) (string, bool) {
	v, ok := f.env[k]
	return v, ok
}

func (f fakeProbe) PackageVersion(name string) (string, bool) {
	v, ok := f.vers[name]
	return v, ok
}

func allOff() Options {
	no := false
	return Options{
		Gitignore:  Off[GitignoreOptions](),
		TypeScript: Off[TypeScriptOptions](),
		JSX:        &no,
		JSONC:      Off[JSONCOptions](),
		Regexp:     Off[RegexpOptions](),
		Svelte:     Off[SvelteOptions](),
	}
}

// svelteInstalled: 项目安装了 typescript、svelte 及其插件与解析器。
func svelteInstalled() map[string]bool {
	return map[string]bool{
		"typescript":        true,
		"svelte":            true,
		svelte.Module:       true,
		svelte.ParserModule: true,
	}
}

func names(frags []contract.Fragment) []string {
	out := make([]string, len(frags))
	for i, f := range frags {
		out[i] = f.Name
	}
	return out
}

func resolve(t *testing.T, env Env, opts Options, user ...Source) []contract.Fragment {
	t.Helper()
	c, err := Compose(context.Background(), env, opts, user...)
	require.NoError(t, err)
	frags, err := c.Fragments(context.Background())
	require.NoError(t, err)
	return frags
}

var unconditional = []string{
	"flatcfg/ignores",
	"flatcfg/javascript/setup",
	"flatcfg/javascript/rules",
	"flatcfg/eslint-comments/rules",
	"flatcfg/node/rules",
	"flatcfg/jsdoc/rules",
	"flatcfg/imports/rules",
	"flatcfg/imports/disables/bin",
	"flatcfg/unicorn/rules",
	"flatcfg/command/rules",
	"flatcfg/perfectionist/setup",
	"flatcfg/disables/scripts",
	"flatcfg/disables/cli",
	"flatcfg/disables/bin",
	"flatcfg/disables/dts",
	"flatcfg/disables/test",
	"flatcfg/disables/cjs",
	"flatcfg/disables/config-files",
}

// 所有可选特性关闭时只产出无条件片段，顺序固定。
func TestComposeAllOptionalDisabled(t *testing.T) {
	frags := resolve(t, Env{Probe: fakeProbe{pkgs: map[string]bool{"typescript": true, "svelte": true}}}, allOff())
	assert.Equal(t, unconditional, names(frags))
	for _, f := range frags {
		assert.NotContains(t, f.Name, "type-aware")
		assert.NotContains(t, f.Name, "svelte")
	}
}

// 默认选项在空项目中启用 jsx/jsonc/regexp，且 jsonc 只出现一次。
func TestComposeDefaultsEmptyProject(t *testing.T) {
	frags := resolve(t, Env{}, Options{})
	want := append([]string{}, unconditional[:11]...)
	want = append(want,
		"flatcfg/jsx/setup",
		"flatcfg/jsonc/setup",
		"flatcfg/jsonc/rules",
		"flatcfg/sort/package-json",
		"flatcfg/sort/tsconfig-json",
		"flatcfg/regexp/rules",
	)
	want = append(want, unconditional[11:]...)
	assert.Equal(t, want, names(frags))
}

// 环境探测：typescript/svelte/gitignore 随项目自动启用。
func TestComposeDetectsEnvironment(t *testing.T) {
	probe := fakeProbe{
		pkgs:  svelteInstalled(),
		files: map[string]string{".gitignore": "dist\n"},
	}
	got := names(resolve(t, Env{Probe: probe}, Options{}))
	assert.Equal(t, "flatcfg/gitignore", got[0])
	assert.Contains(t, got, "flatcfg/typescript/setup")
	assert.Contains(t, got, "flatcfg/typescript/parser")
	assert.NotContains(t, got, "flatcfg/typescript/type-aware-parser")
	assert.Contains(t, got, "flatcfg/svelte/rules")

	iTS, iSvelte, iDis := -1, -1, -1
	for i, n := range got {
		switch n {
		case "flatcfg/typescript/rules":
			iTS = i
		case "flatcfg/svelte/setup":
			iSvelte = i
		case "flatcfg/disables/scripts":
			iDis = i
		}
	}
	assert.True(t, iTS < iSvelte && iSvelte < iDis, "主题顺序错误: %v", got)
}

// 类型感知解析器片段在 files 范围内互斥且并集完整。
func TestTypeAwarePartition(t *testing.T) {
	opts := allOff()
	opts.ComponentExts = []string{"vue"}
	opts.TypeScript = With(TypeScriptOptions{
		TSConfigPath:     "tsconfig.json",
		IgnoresTypeAware: []string{"**/*.md/**", "scripts/**"},
	})
	frags := resolve(t, Env{}, opts)

	byName := map[string]contract.Fragment{}
	for _, f := range frags {
		byName[f.Name] = f
	}
	aware, ok := byName["flatcfg/typescript/type-aware-parser"]
	require.True(t, ok)
	plain, ok := byName["flatcfg/typescript/parser"]
	require.True(t, ok)
	setup := byName["flatcfg/typescript/setup"]
	assert.Empty(t, setup.Files)
	assert.Contains(t, byName, "flatcfg/typescript/rules-type-aware")

	declared := append([]string{globs.TS, globs.TSX}, globs.Component([]string{"vue"})...)
	paths := []string{
		"a.ts", "src/b.tsx", "src/deep/c.mts", "x.cts", "comp/App.vue",
		"README.md/snippet.ts", "scripts/build.ts", "scripts/x/y.tsx",
		"src/a.js", "docs/readme.md",
	}
	for _, p := range paths {
		inFiles := false
		for _, pat := range declared {
			inFiles = inFiles || match.Match(pat, p)
		}
		a, b := match.Applies(aware, p), match.Applies(plain, p)
		if inFiles {
			assert.True(t, a != b, "%s: aware=%v plain=%v", p, a, b)
		} else {
			assert.False(t, a || b, "%s 不应被解析器片段覆盖", p)
		}
	}
	assert.True(t, match.Applies(aware, "src/a.ts"))
	assert.True(t, match.Applies(plain, "scripts/build.ts"))
	assert.True(t, match.Applies(plain, "comp/App.vue"))
}

// 后出现的更窄片段在其范围内生效。
func TestLaterNarrowerFragmentWins(t *testing.T) {
	extra := contract.Fragment{
		Name:  "user/ts-console",
		Files: []string{"**/*.ts"},
		Rules: contract.Rules{"no-console": contract.Off()},
	}
	frags := resolve(t, Env{}, allOff(), Static(extra))

	ts := match.Resolve(frags, "src/a.ts")
	js := match.Resolve(frags, "src/a.js")
	assert.Equal(t, contract.SeverityOff, ts.Rules["no-console"].Severity)
	assert.Equal(t, contract.SeverityError, js.Rules["no-console"].Severity)
	assert.Equal(t, "user/ts-console", ts.Fragments[len(ts.Fragments)-1])
	assert.True(t, match.Resolve(frags, "node_modules/x/index.js").Ignored)
}

// 缺少 svelte 插件时失败并指明特性，不返回部分结果。
func TestSvelteMissingDependency(t *testing.T) {
	opts := allOff()
	opts.Svelte = On[SvelteOptions]()
	c, err := Compose(context.Background(), Env{Probe: fakeProbe{}}, opts)
	require.Error(t, err)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, contract.ErrMissingDependency)
	assert.ErrorIs(t, err, contract.ErrModuleNotFound)
	var md *contract.MissingDependencyError
	require.ErrorAs(t, err, &md)
	assert.Equal(t, "svelte", md.Feature)
	assert.Equal(t, svelte.Module, md.Package)
}

// Compose({}, extra) 等于默认序列加上末尾的 extra（仅做命名空间改写）。
func TestComposeWithExtraAppendsLast(t *testing.T) {
	base := resolve(t, Env{}, Options{})
	extra := contract.Fragment{
		Name:    "user/extra",
		Files:   []string{"**/*.js"},
		Plugins: map[string]*contract.Plugin{"n": {Module: "eslint-plugin-n"}},
		Rules:   contract.Rules{"n/no-sync": contract.Warn(), "@typescript-eslint/no-shadow": contract.Error()},
	}
	got := resolve(t, Env{}, Options{}, Static(extra))
	require.Len(t, got, len(base)+1)
	if diff := cmp.Diff(base, got[:len(base)]); diff != "" {
		t.Fatalf("默认序列被改变 (-want +got):\n%s", diff)
	}
	last := got[len(got)-1]
	assert.Equal(t, "user/extra", last.Name)
	assert.Contains(t, last.Plugins, "node")
	assert.Equal(t, contract.Rules{"node/no-sync": contract.Warn(), "ts/no-shadow": contract.Error()}, last.Rules)
	// 调用方的值未被修改
	assert.Contains(t, extra.Rules, "n/no-sync")
}

// 相同输入产出结构相同的结果。
func TestComposeDeterministic(t *testing.T) {
	probe := fakeProbe{pkgs: svelteInstalled(), files: map[string]string{".gitignore": "dist\n"}}
	opts := Options{TypeScript: With(TypeScriptOptions{TSConfigPath: "tsconfig.json"})}
	first := resolve(t, Env{Probe: probe}, opts)
	for i := 0; i < 5; i++ {
		again := resolve(t, Env{Probe: probe}, opts)
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("第 %d 次结果不同 (-first +again):\n%s", i, diff)
		}
	}
}

// 并发调用互不影响（共享同一插件源）。
func TestComposeConcurrentCalls(t *testing.T) {
	src, err := registry.NewSource(fakeProbe{}, 0)
	require.NoError(t, err)
	env := Env{Probe: fakeProbe{}, Plugins: src}
	want := names(resolve(t, env, Options{}))
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := Compose(context.Background(), env, Options{})
			if err != nil {
				errs <- err
				return
			}
			frags, err := c.Fragments(context.Background())
			if err != nil {
				errs <- err
				return
			}
			if diff := cmp.Diff(want, names(frags)); diff != "" {
				errs <- errors.New(diff)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}

type failingSource struct {
	inner contract.PluginSource
	fail  map[string]error
}

func (s failingSource) Resolve(ctx context.Context, spec string) (*contract.Plugin, error) {
	if err, ok := s.fail[spec]; ok {
		return nil, err
	}
	return s.inner.Resolve(ctx, spec)
}

// 多个主题失败时按主题顺序返回首个错误。
func TestComposeFirstErrorInTopicOrder(t *testing.T) {
	src, err := registry.NewSource(nil, 0)
	require.NoError(t, err)
	boom := errors.New("boom")
	fs := failingSource{inner: src, fail: map[string]error{
		typescript.Module:       boom,
		"eslint-plugin-regexp":  &contract.ModuleNotFoundError{Module: "eslint-plugin-regexp"},
		"eslint-plugin-unicorn": &contract.ModuleNotFoundError{Module: "eslint-plugin-unicorn"},
	}}
	opts := Options{TypeScript: On[TypeScriptOptions]()}
	for i := 0; i < 10; i++ {
		_, err := Compose(context.Background(), Env{Plugins: fs}, opts)
		var md *contract.MissingDependencyError
		require.ErrorAs(t, err, &md)
		assert.Equal(t, "unicorn", md.Feature)
		assert.NotErrorIs(t, err, boom)
	}
}

func TestComposeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Compose(ctx, Env{}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestComposeRejectsInvalidOptions(t *testing.T) {
	_, err := Compose(context.Background(), Env{}, Options{Files: []string{"**/*.js"}})
	assert.ErrorIs(t, err, contract.ErrInvalidInput)
	_, err = Compose(context.Background(), Env{}, Options{Type: "service"})
	assert.ErrorIs(t, err, contract.ErrInvalidInput)
	_, err = Compose(context.Background(), Env{}, Options{Regexp: With(RegexpOptions{Level: "off"})})
	assert.ErrorIs(t, err, contract.ErrInvalidInput)
}

// 内联片段位于覆盖片段之后、用户片段之前；已注册插件解析为完整句柄。
func TestInlineFragment(t *testing.T) {
	opts := allOff()
	opts.Rules = contract.Rules{"no-console": contract.Warn()}
	opts.Plugins = map[string]*contract.Plugin{
		"unicorn": {Module: "eslint-plugin-unicorn"},
		"custom":  {Module: "eslint-plugin-custom"},
	}
	frags := resolve(t, Env{}, opts, Static(contract.Fragment{Name: "user/last"}))
	n := len(frags)
	require.GreaterOrEqual(t, n, 2)
	inline := frags[n-2]
	assert.Equal(t, "flatcfg/inline", inline.Name)
	assert.Equal(t, "flatcfg/disables/config-files", frags[n-3].Name)
	assert.Equal(t, "user/last", frags[n-1].Name)
	assert.NotEmpty(t, inline.Plugins["unicorn"].Rules, "已注册插件应解析为完整句柄")
	assert.Equal(t, "eslint-plugin-custom", inline.Plugins["custom"].Module)
	assert.Nil(t, inline.Plugins["custom"].Rules)
}

// 关闭自动改写时保留原命名空间。
func TestNoRename(t *testing.T) {
	no := false
	opts := allOff()
	opts.AutoRenamePlugins = &no
	frags := resolve(t, Env{}, opts, Static(contract.Fragment{
		Name:  "user/n",
		Rules: contract.Rules{"n/no-sync": contract.Warn()},
	}))
	assert.Contains(t, frags[len(frags)-1].Rules, "n/no-sync")
}

// 编辑器环境：未设置 isInEditor 时由环境变量决定，CI 优先。
func TestResolveFeaturesEditor(t *testing.T) {
	assert.True(t, ResolveFeatures(Env{Probe: fakeProbe{env: map[string]string{"VSCODE_PID": "1"}}}, Options{}).IsInEditor)
	assert.False(t, ResolveFeatures(Env{Probe: fakeProbe{env: map[string]string{"NVIM": "x", "CI": "1"}}}, Options{}).IsInEditor)
	yes := true
	assert.True(t, ResolveFeatures(Env{Probe: fakeProbe{}}, Options{IsInEditor: &yes}).IsInEditor)

	frags := resolve(t, Env{Probe: fakeProbe{env: map[string]string{"JETBRAINS_IDE": "1"}}}, allOff())
	for _, f := range frags {
		if f.Name == "flatcfg/javascript/rules" {
			assert.Equal(t, contract.SeverityWarn, f.Rules["prefer-const"].Severity)
			return
		}
	}
	t.Fatal("未找到 javascript/rules")
}

func TestResolveFeaturesNames(t *testing.T) {
	f := ResolveFeatures(Env{Probe: fakeProbe{pkgs: map[string]bool{"typescript": true}}}, Options{
		TypeScript: With(TypeScriptOptions{TSConfigPath: "tsconfig.json"}),
	})
	assert.Equal(t, []string{"typescript", "type-aware", "jsx", "jsonc", "regexp"}, f.Names())
	assert.True(t, f.Rename)
}

// 版本不满足范围时仅告警，不失败。
func TestComposePeerRangeWarnsOnly(t *testing.T) {
	probe := fakeProbe{
		pkgs: svelteInstalled(),
		vers: map[string]string{"eslint-plugin-svelte": "1.0.0"},
	}
	opts := allOff()
	opts.Svelte = On[SvelteOptions]()
	frags := resolve(t, Env{Probe: probe}, opts)
	assert.Contains(t, names(frags), "flatcfg/svelte/setup")
}
