package output

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
)

// WriterOptions: 最小必要选项。
type WriterOptions struct {
	// Atomic: 是否使用原子替换（同目录临时文件 + rename）。
	// 默认值：true。未提供该字段时采用原子写；显式 false 可关闭。
	Atomic *bool
	// PermFile/PermDir: 可选权限；为 0 表示使用默认。
	PermFile os.FileMode
	PermDir  os.FileMode
}

// Writer: 文件写出。内容未变化时不触碰目标文件（避免触发监听）。
type Writer struct {
	atomic bool
	permF  os.FileMode
	permD  os.FileMode
}

// NewWriter 创建 Writer；opts 可为 nil。
func NewWriter(opts *WriterOptions) *Writer {
	w := &Writer{atomic: true, permF: 0o644, permD: 0o755}
	if opts == nil {
		return w
	}
	if opts.Atomic != nil {
		w.atomic = *opts.Atomic
	}
	if opts.PermFile != 0 {
		w.permF = opts.PermFile
	}
	if opts.PermDir != 0 {
		w.permD = opts.PermDir
	}
	return w
}

// Write 将 data 写入 dest；返回是否实际写入。
func (w *Writer) Write(ctx context.Context, dest string, data []byte) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}
	if strings.TrimSpace(dest) == "" {
		return false, os.ErrInvalid
	}
	if old, err := os.ReadFile(dest); err == nil && bytes.Equal(old, data) {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(dest), w.permD); err != nil {
		return false, err
	}
	if w.atomic {
		return true, writeAtomic(dest, data, w.permF)
	}
	return true, os.WriteFile(dest, data, w.permF)
}
