package compose

import (
	"context"
	"fmt"

	"flatcfg/pkg/contract"
)

// Source: 可产出片段的来源（静态片段、函数、或另一个 Composer）。
type Source interface {
	Fragments(ctx context.Context) ([]contract.Fragment, error)
}

// SourceFunc 将函数适配为 Source。
type SourceFunc func(ctx context.Context) ([]contract.Fragment, error)

func (f SourceFunc) Fragments(ctx context.Context) ([]contract.Fragment, error) { return f(ctx) }

type staticSource []contract.Fragment

// Static 以片段副本构造 Source；每次解析返回新的副本。
func Static(frags ...contract.Fragment) Source {
	return staticSource(contract.CloneFragments(frags))
}

func (s staticSource) Fragments(context.Context) ([]contract.Fragment, error) {
	return contract.CloneFragments(s), nil
}

type op func(ctx context.Context, frags []contract.Fragment) ([]contract.Fragment, error)

// Composer: 可链式编辑的片段序列，直到 Fragments 才求值。
// 方法修改接收者并返回自身；需要分叉时先 Clone。
// 重命名表在其他操作全部应用之后统一生效。
type Composer struct {
	ops     []op
	renames []map[string]string
}

// New 以若干来源构造 Composer。
func New(sources ...Source) *Composer {
	c := &Composer{}
	if len(sources) > 0 {
		c.Append(sources...)
	}
	return c
}

// Append 在末尾追加来源产出的片段。
func (c *Composer) Append(sources ...Source) *Composer {
	c.ops = append(c.ops, func(ctx context.Context, frags []contract.Fragment) ([]contract.Fragment, error) {
		add, err := collect(ctx, sources)
		if err != nil {
			return nil, err
		}
		return append(frags, add...), nil
	})
	return c
}

// Prepend 在开头插入来源产出的片段。
func (c *Composer) Prepend(sources ...Source) *Composer {
	c.ops = append(c.ops, func(ctx context.Context, frags []contract.Fragment) ([]contract.Fragment, error) {
		add, err := collect(ctx, sources)
		if err != nil {
			return nil, err
		}
		return append(add, frags...), nil
	})
	return c
}

// InsertAfter 在名为 name 的片段之后插入。
func (c *Composer) InsertAfter(name string, sources ...Source) *Composer {
	return c.insert(name, 1, sources)
}

// InsertBefore 在名为 name 的片段之前插入。
func (c *Composer) InsertBefore(name string, sources ...Source) *Composer {
	return c.insert(name, 0, sources)
}

func (c *Composer) insert(name string, offset int, sources []Source) *Composer {
	c.ops = append(c.ops, func(ctx context.Context, frags []contract.Fragment) ([]contract.Fragment, error) {
		i, err := indexOf(frags, name)
		if err != nil {
			return nil, err
		}
		add, err := collect(ctx, sources)
		if err != nil {
			return nil, err
		}
		at := i + offset
		out := make([]contract.Fragment, 0, len(frags)+len(add))
		out = append(out, frags[:at]...)
		out = append(out, add...)
		return append(out, frags[at:]...), nil
	})
	return c
}

// Override 就地修改名为 name 的片段。片段内的插件句柄为本次求值独有的副本。
func (c *Composer) Override(name string, fn func(*contract.Fragment)) *Composer {
	c.ops = append(c.ops, func(_ context.Context, frags []contract.Fragment) ([]contract.Fragment, error) {
		i, err := indexOf(frags, name)
		if err != nil {
			return nil, err
		}
		fn(&frags[i])
		return frags, nil
	})
	return c
}

// Remove 删除名为 name 的片段。
func (c *Composer) Remove(name string) *Composer {
	c.ops = append(c.ops, func(_ context.Context, frags []contract.Fragment) ([]contract.Fragment, error) {
		i, err := indexOf(frags, name)
		if err != nil {
			return nil, err
		}
		return append(frags[:i:i], frags[i+1:]...), nil
	})
	return c
}

// RemoveRules 从所有片段删除给定规则键（按最终键名，即重命名之前的键）。
func (c *Composer) RemoveRules(keys ...string) *Composer {
	c.ops = append(c.ops, func(_ context.Context, frags []contract.Fragment) ([]contract.Fragment, error) {
		for i := range frags {
			for _, k := range keys {
				delete(frags[i].Rules, k)
			}
		}
		return frags, nil
	})
	return c
}

// RenamePlugins 追加一张命名空间重命名表。
func (c *Composer) RenamePlugins(table map[string]string) *Composer {
	cp := make(map[string]string, len(table))
	for k, v := range table {
		cp[k] = v
	}
	c.renames = append(c.renames, cp)
	return c
}

// Clone 返回独立的 Composer；后续编辑互不影响。
func (c *Composer) Clone() *Composer {
	return &Composer{
		ops:     append([]op(nil), c.ops...),
		renames: append([]map[string]string(nil), c.renames...),
	}
}

// Fragments 依序应用全部操作并返回结果（调用方独占）。
func (c *Composer) Fragments(ctx context.Context) ([]contract.Fragment, error) {
	table, err := ChainRenames(c.renames...)
	if err != nil {
		return nil, err
	}
	var frags []contract.Fragment
	for _, o := range c.ops {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if frags, err = o(ctx, frags); err != nil {
			return nil, err
		}
	}
	RenameFragments(frags, table)
	return frags, nil
}

func collect(ctx context.Context, sources []Source) ([]contract.Fragment, error) {
	var out []contract.Fragment
	for _, s := range sources {
		if s == nil {
			continue
		}
		frags, err := s.Fragments(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, contract.CloneFragments(frags)...)
	}
	return out, nil
}

func indexOf(frags []contract.Fragment, name string) (int, error) {
	for i := range frags {
		if frags[i].Name == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", contract.ErrFragmentNotFound, name)
}
