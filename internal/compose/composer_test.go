package compose

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flatcfg/pkg/contract"
)

func frag(name string, rules ...string) contract.Fragment {
	f := contract.Fragment{Name: name}
	if len(rules) > 0 {
		f.Rules = contract.Rules{}
		for _, r := range rules {
			f.Rules[r] = contract.Error()
		}
	}
	return f
}

func fragmentsOf(t *testing.T, c *Composer) []contract.Fragment {
	t.Helper()
	frags, err := c.Fragments(context.Background())
	require.NoError(t, err)
	return frags
}

func TestComposerEditing(t *testing.T) {
	c := New(Static(frag("a"), frag("b", "no-console", "n/no-sync"), frag("c"))).
		Prepend(Static(frag("first"))).
		InsertAfter("b", Static(frag("after-b"))).
		InsertBefore("a", Static(frag("before-a"))).
		Remove("c").
		Override("a", func(f *contract.Fragment) { f.Files = []string{"**/*.ts"} }).
		RemoveRules("no-console").
		Append(Static(frag("last")))
	frags := fragmentsOf(t, c)
	assert.Equal(t, []string{"first", "before-a", "a", "b", "after-b", "last"}, names(frags))
	assert.Equal(t, []string{"**/*.ts"}, frags[2].Files)
	assert.Equal(t, contract.Rules{"n/no-sync": contract.Error()}, frags[3].Rules)
}

// 未知名称在求值时失败。
func TestComposerUnknownName(t *testing.T) {
	for name, c := range map[string]*Composer{
		"insert-after":  New(Static(frag("a"))).InsertAfter("zzz", Static(frag("x"))),
		"insert-before": New(Static(frag("a"))).InsertBefore("zzz"),
		"override":      New(Static(frag("a"))).Override("zzz", func(*contract.Fragment) {}),
		"remove":        New(Static(frag("a"))).Remove("zzz"),
	} {
		_, err := c.Fragments(context.Background())
		assert.ErrorIs(t, err, contract.ErrFragmentNotFound, name)
	}
}

// 求值是惰性的；Clone 之后的编辑互不影响。
func TestComposerLazyAndClone(t *testing.T) {
	calls := 0
	src := SourceFunc(func(context.Context) ([]contract.Fragment, error) {
		calls++
		return []contract.Fragment{frag("dyn")}, nil
	})
	c := New(Static(frag("a"))).Append(src)
	assert.Equal(t, 0, calls)

	fork := c.Clone().Remove("a")
	assert.Equal(t, []string{"a", "dyn"}, names(fragmentsOf(t, c)))
	assert.Equal(t, []string{"dyn"}, names(fragmentsOf(t, fork)))
	assert.Equal(t, 2, calls)
}

func TestComposerSourceError(t *testing.T) {
	boom := errors.New("boom")
	c := New(SourceFunc(func(context.Context) ([]contract.Fragment, error) { return nil, boom }))
	_, err := c.Fragments(context.Background())
	assert.ErrorIs(t, err, boom)
}

// 嵌套组合：Composer 本身也是 Source。
func TestComposerNested(t *testing.T) {
	inner := New(Static(frag("x", "n/no-sync"))).RenamePlugins(map[string]string{"n": "node"})
	outer := New(Static(frag("a")), inner).RenamePlugins(map[string]string{"node": "nd"})
	frags := fragmentsOf(t, outer)
	assert.Equal(t, []string{"a", "x"}, names(frags))
	assert.Contains(t, frags[1].Rules, "nd/no-sync")
}

// 返回的片段与调用方的值不共享状态。
func TestComposerIsolation(t *testing.T) {
	f := frag("a", "no-console")
	c := New(Static(f))
	out := fragmentsOf(t, c)
	out[0].Rules["eqeqeq"] = contract.Error()
	assert.NotContains(t, f.Rules, "eqeqeq")
	again := fragmentsOf(t, c)
	assert.NotContains(t, again[0].Rules, "eqeqeq")
}

// 重命名在其他操作之后生效：RemoveRules 使用改写前的键。
func TestComposerRenameAppliedLast(t *testing.T) {
	c := New(Static(frag("a", "n/no-sync", "n/no-path-concat"))).
		RenamePlugins(DefaultRenames()).
		RemoveRules("n/no-path-concat")
	frags := fragmentsOf(t, c)
	assert.Equal(t, contract.Rules{"node/no-sync": contract.Error()}, frags[0].Rules)
}

func TestComposerRenameCycle(t *testing.T) {
	c := New(Static(frag("a"))).RenamePlugins(map[string]string{"a": "b", "b": "a"})
	_, err := c.Fragments(context.Background())
	assert.ErrorIs(t, err, contract.ErrRenameCycle)
}

func TestChainRenames(t *testing.T) {
	got, err := ChainRenames(DefaultRenames(), map[string]string{"ts": "typescript", "vue": "v"})
	require.NoError(t, err)
	want := map[string]string{
		"@typescript-eslint": "typescript",
		"import-x":           "import",
		"n":                  "node",
		"ts":                 "typescript",
		"vue":                "v",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	// 依序应用后回到原名的映射被消去。
	got, err = ChainRenames(map[string]string{"a": "b"}, map[string]string{"b": "a"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"b": "a"}, got)

	_, err = ChainRenames(map[string]string{"a": "a/b"})
	assert.ErrorIs(t, err, contract.ErrRenameCycle)
	_, err = ChainRenames(map[string]string{"": "x"})
	assert.ErrorIs(t, err, contract.ErrInvalidInput)
}

// 改写两次与改写一次结果相同。
func TestRenameIdempotent(t *testing.T) {
	frags := []contract.Fragment{{
		Name: "x",
		Plugins: map[string]*contract.Plugin{
			"@typescript-eslint": {Module: "@typescript-eslint/eslint-plugin"},
			"n":                  {Module: "eslint-plugin-n"},
			"import-x":           {Module: "eslint-plugin-import-x"},
			"unicorn":            {Module: "eslint-plugin-unicorn"},
		},
		Rules: contract.Rules{
			"@typescript-eslint/no-shadow": contract.Error(),
			"n/no-sync":                    contract.Warn(),
			"import-x/first":               contract.Error(),
			"node/no-sync":                 contract.Off(),
			"no-console":                   contract.Error(),
		},
	}}
	once := contract.CloneFragments(frags)
	RenameFragments(once, DefaultRenames())
	twice := contract.CloneFragments(once)
	RenameFragments(twice, DefaultRenames())
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("再次改写后结果变化 (-once +twice):\n%s", diff)
	}
	assert.Equal(t, contract.Rules{
		"ts/no-shadow": contract.Error(),
		"node/no-sync": contract.Warn(),
		"import/first": contract.Error(),
		"no-console":   contract.Error(),
	}, once[0].Rules)
	assert.ElementsMatch(t, []string{"ts", "node", "import", "unicorn"}, keys(once[0].Plugins))
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
