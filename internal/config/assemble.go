package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"flatcfg/internal/compose"
	"flatcfg/internal/diag"
	"flatcfg/internal/output"
	"flatcfg/pkg/contract"
)

// Plan: 装配结果，供 CLI 直接驱动一次组合。
type Plan struct {
	Options compose.Options
	// Sources: 用户片段来源（内联片段在前，片段文件按序在后；文件在求值时读取）。
	Sources []compose.Source
	Format  output.Format
	Root    string
	// Output: "-" 表示 stdout；相对路径以 Root 为基准。
	Output string
}

// Validate 对最小必要边界做静态校验。
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Root) == "" {
		return errors.New("config: root cannot be empty")
	}
	if strings.TrimSpace(cfg.Output) == "" {
		return errors.New("config: output cannot be empty")
	}
	if _, err := output.ParseFormat(cfg.Format); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if !diag.ValidLevel(cfg.Logging.Level) {
		return fmt.Errorf("config: logging.level %q not supported", cfg.Logging.Level)
	}
	for _, p := range cfg.FragmentFiles {
		if strings.TrimSpace(p) == "" {
			return errors.New("config: fragment file path cannot be empty")
		}
	}
	for i, f := range cfg.Fragments {
		if len(f.Rules) == 0 && len(f.Plugins) == 0 && len(f.Files) == 0 && len(f.Ignores) == 0 &&
			f.LanguageOptions == nil && len(f.LinterOptions) == 0 && f.Processor == "" && len(f.Settings) == 0 {
			return fmt.Errorf("config: fragments[%d] is empty", i)
		}
	}
	opts, err := compose.DecodeOptions(cfg.Options)
	if err != nil {
		return fmt.Errorf("config: options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("config: options: %w", err)
	}
	return nil
}

// Assemble 校验配置并构造组合所需的选项与来源。
// 严格 options 解析在此进行；rename 覆盖 options.autoRenamePlugins。
func Assemble(cfg Config) (Plan, error) {
	if err := Validate(cfg); err != nil {
		return Plan{}, err
	}
	opts, err := compose.DecodeOptions(cfg.Options)
	if err != nil {
		return Plan{}, err
	}
	if cfg.Rename != nil {
		v := *cfg.Rename
		opts.AutoRenamePlugins = &v
	}
	format, _ := output.ParseFormat(cfg.Format)

	var sources []compose.Source
	if len(cfg.Fragments) > 0 {
		sources = append(sources, compose.Static(cfg.Fragments...))
	}
	for _, p := range cfg.FragmentFiles {
		sources = append(sources, fileSource(strings.TrimSpace(p)))
	}
	root := strings.TrimSpace(cfg.Root)
	dest := strings.TrimSpace(cfg.Output)
	if dest != "-" && !filepath.IsAbs(dest) {
		dest = filepath.Join(root, dest)
	}
	return Plan{
		Options: opts,
		Sources: sources,
		Format:  format,
		Root:    root,
		Output:  dest,
	}, nil
}

// fileSource 在每次求值时重新读取片段文件（watch 模式下可感知修改）。
func fileSource(path string) compose.Source {
	return compose.SourceFunc(func(ctx context.Context) ([]contract.Fragment, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return LoadFragments(path)
	})
}
