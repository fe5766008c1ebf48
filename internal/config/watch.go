package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"flatcfg/internal/diag"
)

// DefaultDebounce: 连续变更合并为一次回调的静默窗口。
const DefaultDebounce = 300 * time.Millisecond

// Watch 监听 paths 的变更，静默 debounce 后调用 onChange；阻塞直到 ctx 结束。
// 监听父目录并按文件名过滤，以覆盖编辑器“写临时文件再改名”的保存方式。
// onChange 在 Watch 所在 goroutine 中串行执行。
func Watch(ctx context.Context, paths []string, debounce time.Duration, log *diag.Logger, onChange func()) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	want := make(map[string]bool, len(paths))
	dirs := map[string]bool{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		want[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for d := range dirs {
		if err := w.Add(d); err != nil {
			return fmt.Errorf("watch %s: %w", d, err)
		}
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !want[filepath.Clean(ev.Name)] {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			log.DebugStart("watch", "file changed", map[string]string{"path": ev.Name, "op": ev.Op.String()})
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch", "watcher error", map[string]string{"error": err.Error()})
		case <-timer.C:
			onChange()
		}
	}
}
