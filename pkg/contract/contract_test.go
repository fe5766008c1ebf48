package contract

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNormalizePath 验证路径规范化逻辑。
func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"系统分隔符", filepath.Join("a", "b", "c"), "a/b/c"},
		{"父目录", "./x/../y", "y"},
		{"空串", "", "."},
		{"Windows路径", "src\\main\\App.ts", "src/main/App.ts"},
		{"前导点斜杠", "./src/index.js", "src/index.js"},
		{"多余斜杠", "path//to///file.ts", "path/to/file.ts"},
		{"绝对路径", "/home/user/../admin/a.js", "/home/admin/a.js"},
		{"越界父目录", "a\\..\\..\\d", "../d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePath(tt.input); got != tt.expected {
				t.Fatalf("NormalizePath(%q) = %q, 预期 %q", tt.input, got, tt.expected)
			}
		})
	}
}

// TestParseSeverity 覆盖字符串与数值两种写法。
func TestParseSeverity(t *testing.T) {
	ok := map[any]Severity{
		"off":              SeverityOff,
		" Warn ":           SeverityWarn,
		"error":            SeverityError,
		0:                  SeverityOff,
		1:                  SeverityWarn,
		float64(2):         SeverityError,
		json.Number("1"):   SeverityWarn,
		json.Number("0"):   SeverityOff,
		json.Number("2.0"): SeverityError,
	}
	for in, want := range ok {
		got, err := ParseSeverity(in)
		require.NoError(t, err, "输入 %v", in)
		assert.Equal(t, want, got)
	}
	for _, bad := range []any{"fatal", 3, 1.5, nil, true, json.Number("1.5"), json.Number("3")} {
		_, err := ParseSeverity(bad)
		assert.ErrorIs(t, err, ErrInvalidInput, "输入 %v 应失败", bad)
	}
}

// TestRuleSettingJSON 序列化形态：无选项为字符串，有选项为数组。
func TestRuleSettingJSON(t *testing.T) {
	b, err := json.Marshal(Error())
	require.NoError(t, err)
	assert.JSONEq(t, `"error"`, string(b))

	b, err = json.Marshal(Warn("always", map[string]any{"x": true}))
	require.NoError(t, err)
	assert.JSONEq(t, `["warn","always",{"x":true}]`, string(b))

	var r RuleSetting
	var rs Rules
	require.NoError(t, json.Unmarshal([]byte(`[2, {"max": 3}]`), &r))
	assert.Equal(t, SeverityError, r.Severity)
	require.Len(t, r.Options, 1)
	assert.Equal(t, json.Number("3"), r.Options[0].(map[string]any)["max"])

	require.NoError(t, json.Unmarshal([]byte(`0`), &r))
	assert.Equal(t, Off(), r)

	require.NoError(t, json.Unmarshal([]byte(`{"a": 1, "b": [2, "always"]}`), &rs))
	assert.Equal(t, Warn(), rs["a"])
	assert.Equal(t, Error("always"), rs["b"])

	assert.ErrorIs(t, json.Unmarshal([]byte(`[]`), &r), ErrInvalidInput)
	assert.ErrorIs(t, json.Unmarshal([]byte(`"loud"`), &r), ErrInvalidInput)
}

// TestRulesWith 覆盖同名键且不修改原表。
func TestRulesWith(t *testing.T) {
	base := Rules{"a/x": Error(), "a/y": Warn()}
	over := Rules{"a/y": Off(), "a/z": Error()}
	got := base.With(over)
	assert.Equal(t, Rules{"a/x": Error(), "a/y": Off(), "a/z": Error()}, got)
	assert.Equal(t, Warn(), base["a/y"], "原表被修改")
}

// TestFragmentCloneIsolation 副本修改不影响原片段；插件句柄共享。
func TestFragmentCloneIsolation(t *testing.T) {
	p := &Plugin{Module: "eslint-plugin-x"}
	orig := Fragment{
		Name:    "x/setup",
		Files:   []string{"**/*.js"},
		Plugins: map[string]*Plugin{"x": p},
		Rules:   Rules{"x/a": Error(map[string]any{"list": []any{"k"}})},
		LanguageOptions: &LanguageOptions{
			Globals:       map[string]string{"window": "readonly"},
			ParserOptions: map[string]any{"project": true},
		},
		Settings: map[string]any{"nested": map[string]any{"k": 1}},
	}
	cp := orig.Clone()
	cp.Files[0] = "changed"
	cp.Rules["x/a"].Options[0].(map[string]any)["list"].([]any)[0] = "changed"
	cp.LanguageOptions.Globals["window"] = "writable"
	cp.Settings["nested"].(map[string]any)["k"] = 2
	cp.Plugins["x"].Module = "changed"
	delete(cp.Plugins, "x")

	assert.Equal(t, "**/*.js", orig.Files[0])
	assert.Equal(t, "k", orig.Rules["x/a"].Options[0].(map[string]any)["list"].([]any)[0])
	assert.Equal(t, "readonly", orig.LanguageOptions.Globals["window"])
	assert.Equal(t, 1, orig.Settings["nested"].(map[string]any)["k"])
	assert.Same(t, p, orig.Plugins["x"])
	assert.Equal(t, "eslint-plugin-x", p.Module)
	assert.NotSame(t, p, orig.Clone().Plugins["x"])
}

// TestPluginClone 副本的规则名与命名规则表独立于原句柄。
func TestPluginClone(t *testing.T) {
	p := &Plugin{
		Module:  "eslint-plugin-x",
		Rules:   []string{"a"},
		Configs: map[string]Rules{"recommended": {"x/a": Error()}},
	}
	cp := p.Clone()
	require.Equal(t, p, cp)
	cp.Rules[0] = "b"
	cp.Configs["recommended"]["x/a"] = Off()
	cp.Configs["strict"] = Rules{}
	assert.Equal(t, []string{"a"}, p.Rules)
	assert.Equal(t, Error(), p.Configs["recommended"]["x/a"])
	assert.NotContains(t, p.Configs, "strict")
	assert.Nil(t, (*Plugin)(nil).Clone())
}

// TestInvalidInput 已归类的错误不重复包装。
func TestInvalidInput(t *testing.T) {
	assert.NoError(t, InvalidInput(nil))
	err := InvalidInput(errors.New("boom"))
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "invalid input: boom", err.Error())
	assert.Same(t, err, InvalidInput(err))
	_, err = ParseSeverity("loud")
	assert.Equal(t, 1, strings.Count(InvalidInput(err).Error(), "invalid input"))
}

// TestFragmentJSON 插件句柄序列化为模块说明符，空字段省略。
func TestFragmentJSON(t *testing.T) {
	f := Fragment{
		Name:    "x/rules",
		Plugins: map[string]*Plugin{"x": {Module: "eslint-plugin-x", Rules: []string{"a"}}},
		Rules:   Rules{"x/a": Error()},
		LanguageOptions: &LanguageOptions{
			Parser: &Plugin{Module: "some-parser"},
		},
	}
	b, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"x/rules","plugins":{"x":"eslint-plugin-x"},"rules":{"x/a":"error"},"languageOptions":{"parser":"some-parser"}}`, string(b))

	var back Fragment
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, "eslint-plugin-x", back.Plugins["x"].Module)
	assert.Equal(t, "some-parser", back.LanguageOptions.Parser.Module)

	assert.Error(t, json.Unmarshal([]byte(`{"plugins":{"x":""}}`), &back))
}

// TestIsGlobalIgnore 只含 ignores 的片段才是全局排除。
func TestIsGlobalIgnore(t *testing.T) {
	assert.True(t, Fragment{Name: "g", Ignores: []string{"dist"}}.IsGlobalIgnore())
	assert.False(t, Fragment{Ignores: []string{"dist"}, Files: []string{"*.js"}}.IsGlobalIgnore())
	assert.False(t, Fragment{Ignores: []string{"dist"}, Rules: Rules{"a": Off()}}.IsGlobalIgnore())
	assert.False(t, Fragment{}.IsGlobalIgnore())
}

// TestPluginProcessor 处理器引用形如 namespace/name。
func TestPluginProcessor(t *testing.T) {
	p := &Plugin{Module: "eslint-plugin-svelte", Processors: []string{".svelte"}}
	ref, err := p.Processor("svelte", ".svelte")
	require.NoError(t, err)
	assert.Equal(t, "svelte/.svelte", ref)
	_, err = p.Processor("svelte", "other")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.False(t, p.HasRule("x"))
	assert.Nil(t, (*Plugin)(nil).Config("recommended"))
}

// TestMissingDependencyError 错误链同时暴露哨兵与底层原因。
func TestMissingDependencyError(t *testing.T) {
	cause := &ModuleNotFoundError{Module: "eslint-plugin-svelte"}
	err := error(&MissingDependencyError{Feature: "svelte", Package: "eslint-plugin-svelte", Err: cause})
	assert.ErrorIs(t, err, ErrMissingDependency)
	assert.ErrorIs(t, err, ErrModuleNotFound)
	var md *MissingDependencyError
	require.True(t, errors.As(err, &md))
	assert.Equal(t, "svelte", md.Feature)
	assert.Contains(t, err.Error(), `"eslint-plugin-svelte"`)
}

// TestRenameKey 最长前缀优先，仅匹配完整命名空间。
func TestRenameKey(t *testing.T) {
	table := map[string]string{"@typescript-eslint": "ts", "n": "node", "@scope": "s", "@scope/sub": "ss"}
	cases := map[string]string{
		"@typescript-eslint/no-explicit-any": "ts/no-explicit-any",
		"n/prefer-global/buffer":             "node/prefer-global/buffer",
		"no-console":                         "no-console",
		"node/no-sync":                       "node/no-sync",
		"@scope/sub/rule":                    "ss/rule",
		"@scope/rule":                        "s/rule",
		"ts/already":                         "ts/already",
	}
	for in, want := range cases {
		assert.Equal(t, want, RenameKey(in, table), in)
	}
	r := Rules{"n/a": Error(), "x/b": Warn()}.Renamed(table)
	assert.Equal(t, Rules{"node/a": Error(), "x/b": Warn()}, r)
}
