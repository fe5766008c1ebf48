package diag

import (
	"context"
	"errors"
	"io/fs"
	"time"

	"flatcfg/pkg/contract"
)

// Code 是最小错误分类代码。
// 仅用于日志/指标汇总，与退出码解耦。
type Code string

const (
	CodeUnknown           Code = "unknown"
	CodeMissingDependency Code = "missing_dependency"
	CodeInvalidInput      Code = "invalid_input"
	CodeCancel            Code = "cancel"
	CodeIO                Code = "io"
)

// Classify 将错误归为最小分类。
// 说明：仅依赖哨兵错误与标准库错误类型，不做字符串匹配。
func Classify(err error) Code {
	if err == nil {
		return CodeUnknown
	}
	// 取消/超时优先
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return CodeCancel
	}
	if errors.Is(err, contract.ErrMissingDependency) || errors.Is(err, contract.ErrModuleNotFound) {
		return CodeMissingDependency
	}
	if errors.Is(err, contract.ErrInvalidInput) ||
		errors.Is(err, contract.ErrFragmentNotFound) ||
		errors.Is(err, contract.ErrRenameCycle) {
		return CodeInvalidInput
	}
	var perr *fs.PathError
	if errors.As(err, &perr) {
		return CodeIO
	}
	return CodeUnknown
}

// NowUTC 返回 RFC3339 UTC 时间字符串。
func NowUTC() string { return time.Now().UTC().Format(time.RFC3339) }
