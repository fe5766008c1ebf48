// Package preset 提供按主题划分的片段构造函数（规则表为叶子数据）。
// 每个主题通过 contract.PluginSource 解析所需句柄；解析失败统一上抛为
// *contract.MissingDependencyError。
package preset

import (
	"context"
	"errors"
	"strings"

	"flatcfg/pkg/contract"
	"flatcfg/pkg/registry"
)

// Namespace: 片段名前缀。
const Namespace = "flatcfg"

// Name 拼接片段名：flatcfg/<topic>/<subtopic>。
func Name(parts ...string) string {
	return Namespace + "/" + strings.Join(parts, "/")
}

// load 解析句柄；模块缺失时包装为 MissingDependencyError。
func load(ctx context.Context, src contract.PluginSource, feature, specifier string) (*contract.Plugin, error) {
	p, err := src.Resolve(ctx, specifier)
	if err != nil {
		if errors.Is(err, contract.ErrModuleNotFound) {
			return nil, &contract.MissingDependencyError{
				Feature: feature,
				Package: registry.PackageName(specifier),
				Err:     err,
			}
		}
		return nil, err
	}
	return p, nil
}

// loadAll 依序解析多个句柄；首个失败即返回。
func loadAll(ctx context.Context, src contract.PluginSource, feature string, specifiers ...string) ([]*contract.Plugin, error) {
	out := make([]*contract.Plugin, 0, len(specifiers))
	for _, s := range specifiers {
		p, err := load(ctx, src, feature, s)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// merge 依次合并规则表（后者覆盖前者）。
func merge(tables ...contract.Rules) contract.Rules {
	out := contract.Rules{}
	for _, t := range tables {
		for k, v := range t {
			out[k] = v.Clone()
		}
	}
	return out
}

// obj: 规则选项的简写。
type obj = map[string]any
