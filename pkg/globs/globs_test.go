package globs

import (
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/stretchr/testify/assert"
)

// TestPatternsValid 所有模式均可被 doublestar 解析。
func TestPatternsValid(t *testing.T) {
	all := append([]string{SrcExt, JS, JSX, TS, TSX, DTS, JSONC, Test}, AllSrc()...)
	all = append(all, Exclude()...)
	for _, p := range all {
		assert.True(t, doublestar.ValidatePattern(p), "非法模式 %s", p)
	}
}

// TestPatternsMatch 抽样验证花括号展开语义。
func TestPatternsMatch(t *testing.T) {
	cases := []struct {
		pattern string
		path    string
		want    bool
	}{
		{Src, "src/a.ts", true},
		{Src, "a.mjs", true},
		{Src, "src/deep/b.cjs", true},
		{Src, "a.json", false},
		{TS, "src/a.mts", true},
		{TS, "src/a.tsx", false},
		{TSX, "a.tsx", true},
		{DTS, "types/env.d.ts", true},
		{DTS, "types/env.ts", false},
		{Test, "src/a.test.ts", true},
		{Test, "src/a.spec.jsx", true},
		{Test, "src/a.ts", false},
		{Svelte, "src/App.svelte", true},
	}
	for _, c := range cases {
		got, err := doublestar.Match(c.pattern, c.path)
		assert.NoError(t, err)
		assert.Equal(t, c.want, got, "%s ~ %s", c.pattern, c.path)
	}
}

// TestComponent 扩展名映射为模式。
func TestComponent(t *testing.T) {
	assert.Equal(t, []string{"**/*.vue", "**/*.astro"}, Component([]string{"vue", "astro"}))
	assert.Empty(t, Component(nil))
}
