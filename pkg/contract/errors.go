package contract

import (
	"errors"
	"fmt"
)

// 组合期最小错误分类。
var (
	// ErrMissingDependency: 显式/自动启用的特性所需的插件包不存在（致命）。
	ErrMissingDependency = errors.New("missing dependency")
	// ErrModuleNotFound: 插件模块无法加载；按 ErrMissingDependency 同等上抛。
	ErrModuleNotFound = errors.New("module not found")
	// ErrInvalidInput: 输入不满足契约（选项、片段或规则级别非法）。
	ErrInvalidInput = errors.New("invalid input")
	// ErrFragmentNotFound: 构建器按名称定位片段失败。
	ErrFragmentNotFound = errors.New("fragment not found")
	// ErrRenameCycle: 重命名表的目标同时也是来源，重复应用结果会变化。
	ErrRenameCycle = errors.New("rename table not idempotent")
)

// InvalidInput 以 ErrInvalidInput 包装 err；已是该类错误时原样返回。
func InvalidInput(err error) error {
	if err == nil || errors.Is(err, ErrInvalidInput) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

// ModuleNotFoundError: PluginSource 无法解析的模块说明符。
type ModuleNotFoundError struct {
	Module string
}

func (e *ModuleNotFoundError) Error() string {
	return fmt.Sprintf("module not found: %s", e.Module)
}

func (e *ModuleNotFoundError) Unwrap() error { return ErrModuleNotFound }

// MissingDependencyError 标识缺失依赖的特性与包名。
// errors.Is 同时匹配 ErrMissingDependency 与底层原因（例如 ErrModuleNotFound）。
type MissingDependencyError struct {
	Feature string
	Package string
	Err     error
}

func (e *MissingDependencyError) Error() string {
	msg := fmt.Sprintf("feature %q requires package %q which could not be found", e.Feature, e.Package)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MissingDependencyError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMissingDependency}
	}
	return []error{ErrMissingDependency, e.Err}
}
