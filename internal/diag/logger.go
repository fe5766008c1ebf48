package diag

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger: 结构化日志器（zerolog）。单行 JSON，字段：
// level/ts/corr_id/comp/stage/code/dur_ms/count/kv/msg。
// nil *Logger 上的所有方法均为 no-op。
type Logger struct {
	zl zerolog.Logger
}

// NewLogger 以 level 初始化；w 为 nil 时写 stderr。
func NewLogger(corrID, level string, w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	zl := zerolog.New(w).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Str("corr_id", corrID).
		Logger()
	return &Logger{zl: zl}
}

// Nop 返回丢弃全部事件的日志器。
func Nop() *Logger { return &Logger{zl: zerolog.Nop()} }

// ParseLevel 解析 debug|info|warn|error；未知值回落 info。
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// ValidLevel 报告 s 是否为可识别的级别（空串视为默认）。
func ValidLevel(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "ts"
	zerolog.MessageFieldName = "msg"
}

func (l *Logger) event(lv zerolog.Level, comp, stage string) *zerolog.Event {
	return l.zl.WithLevel(lv).Str("comp", comp).Str("stage", stage)
}

func withKV(e *zerolog.Event, kv map[string]string) *zerolog.Event {
	if len(kv) == 0 {
		return e
	}
	d := zerolog.Dict()
	for k, v := range kv {
		d = d.Str(k, v)
	}
	return e.Dict("kv", d)
}

// Start 记录 start 事件；返回计时器用于 Finish。
func (l *Logger) Start(comp, msg string) *Timer {
	return l.StartWithKV(comp, msg, nil)
}

// StartWithKV 记录带键值的 start。
func (l *Logger) StartWithKV(comp, msg string, kv map[string]string) *Timer {
	if l == nil {
		return nil
	}
	withKV(l.event(zerolog.InfoLevel, comp, "start"), kv).Msg(msg)
	IncOp(comp, "start", "success")
	return &Timer{l: l, comp: comp, t0: time.Now()}
}

// DebugStart 输出调试级别的 start 类事件（仅在 level=debug 时生效）。
func (l *Logger) DebugStart(comp, msg string, kv map[string]string) {
	if l == nil {
		return
	}
	withKV(l.event(zerolog.DebugLevel, comp, "start"), kv).Msg(msg)
}

// Warn 记录告警（不中断流程）。
func (l *Logger) Warn(comp, msg string, kv map[string]string) {
	if l == nil {
		return
	}
	withKV(l.event(zerolog.WarnLevel, comp, "finish"), kv).Msg(msg)
}

// Error 记录 error 事件。
func (l *Logger) Error(comp string, code Code, msg string, durSince *time.Time) {
	l.ErrorWithKV(comp, code, msg, durSince, nil)
}

// ErrorWithKV 支持附带键值对（例如缺失的包名）。
func (l *Logger) ErrorWithKV(comp string, code Code, msg string, durSince *time.Time, kv map[string]string) {
	IncError(comp, string(code))
	if l == nil {
		return
	}
	e := l.event(zerolog.ErrorLevel, comp, "error").Str("code", string(code))
	if durSince != nil {
		e = e.Int64("dur_ms", time.Since(*durSince).Milliseconds())
	}
	withKV(e, kv).Msg(msg)
}

// InfoFinish 在已有起点的情况下记录 finish。
func (l *Logger) InfoFinish(comp, msg string, start time.Time, count int64) {
	if l == nil {
		return
	}
	dur := time.Since(start).Milliseconds()
	ObserveDuration(comp, "finish", dur)
	e := l.event(zerolog.InfoLevel, comp, "finish").Int64("dur_ms", dur)
	if count > 0 {
		e = e.Int64("count", count)
	}
	e.Msg(msg)
}

// Timer 用于 start→finish 计时。
type Timer struct {
	l    *Logger
	comp string
	t0   time.Time
}

// Finish 记录 finish；可选 count。
func (t *Timer) Finish(msg string, count int64) {
	if t == nil || t.l == nil {
		return
	}
	IncOp(t.comp, "finish", "success")
	t.l.InfoFinish(t.comp, msg, t.t0, count)
}

// Fail 按错误分类记录 error 并返回分类码。
func (t *Timer) Fail(err error) Code {
	code := Classify(err)
	if t == nil || t.l == nil {
		IncError("", string(code))
		return code
	}
	IncOp(t.comp, "finish", "error")
	t.l.Error(t.comp, code, err.Error(), &t.t0)
	return code
}
