package contract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Severity: 规则级别。
type Severity string

const (
	SeverityOff   Severity = "off"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Valid 报告是否为已知级别。
func (s Severity) Valid() bool {
	switch s {
	case SeverityOff, SeverityWarn, SeverityError:
		return true
	}
	return false
}

// ParseSeverity 接受 "off|warn|error" 以及数值 0|1|2。
func ParseSeverity(v any) (Severity, error) {
	switch x := v.(type) {
	case Severity:
		if x.Valid() {
			return x, nil
		}
	case string:
		s := Severity(strings.ToLower(strings.TrimSpace(x)))
		if s.Valid() {
			return s, nil
		}
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return severityFromInt(int(n), true)
		}
		if f, err := x.Float64(); err == nil {
			return ParseSeverity(f)
		}
	case float64:
		return severityFromInt(int(x), x == float64(int(x)))
	case int:
		return severityFromInt(x, true)
	}
	return "", fmt.Errorf("%w: severity %v", ErrInvalidInput, v)
}

func severityFromInt(n int, whole bool) (Severity, error) {
	if whole {
		switch n {
		case 0:
			return SeverityOff, nil
		case 1:
			return SeverityWarn, nil
		case 2:
			return SeverityError, nil
		}
	}
	return "", fmt.Errorf("%w: severity %d", ErrInvalidInput, n)
}

// RuleSetting: 级别 + 可选的规则专属选项。
// 选项为不透明负载；组合层只按键合并，从不解读其内容。
type RuleSetting struct {
	Severity Severity
	Options  []any
}

// Rule 构造 RuleSetting。
func Rule(sev Severity, opts ...any) RuleSetting {
	return RuleSetting{Severity: sev, Options: opts}
}

// Off/Warn/Error: 常用简写。
func Off() RuleSetting { return RuleSetting{Severity: SeverityOff} }
func Warn(opts ...any) RuleSetting { return Rule(SeverityWarn, opts...) }
func Error(opts ...any) RuleSetting { return Rule(SeverityError, opts...) }

// MarshalJSON: 无选项时输出 "error"，否则输出 ["error", opt...]。
func (r RuleSetting) MarshalJSON() ([]byte, error) {
	if len(r.Options) == 0 {
		return json.Marshal(string(r.Severity))
	}
	arr := make([]any, 0, len(r.Options)+1)
	arr = append(arr, string(r.Severity))
	arr = append(arr, r.Options...)
	return json.Marshal(arr)
}

// UnmarshalJSON 接受字符串、数字或数组形式。
func (r *RuleSetting) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch x := v.(type) {
	case []any:
		if len(x) == 0 {
			return fmt.Errorf("%w: empty rule setting", ErrInvalidInput)
		}
		sev, err := ParseSeverity(x[0])
		if err != nil {
			return err
		}
		r.Severity = sev
		r.Options = nil
		if len(x) > 1 {
			r.Options = x[1:]
		}
		return nil
	default:
		sev, err := ParseSeverity(x)
		if err != nil {
			return err
		}
		r.Severity = sev
		r.Options = nil
		return nil
	}
}

// Clone 深拷贝选项负载。
func (r RuleSetting) Clone() RuleSetting {
	out := RuleSetting{Severity: r.Severity}
	if len(r.Options) > 0 {
		out.Options = make([]any, len(r.Options))
		for i, o := range r.Options {
			out.Options[i] = CloneValue(o)
		}
	}
	return out
}

// Rules: 规则键（namespace/rule-name）到设置的映射。
type Rules map[string]RuleSetting

// Clone 深拷贝。
func (r Rules) Clone() Rules {
	if r == nil {
		return nil
	}
	out := make(Rules, len(r))
	for k, v := range r {
		out[k] = v.Clone()
	}
	return out
}

// With 返回 r 与 over 合并后的新表（over 覆盖同名键）。
func (r Rules) With(over Rules) Rules {
	out := make(Rules, len(r)+len(over))
	for k, v := range r {
		out[k] = v.Clone()
	}
	for k, v := range over {
		out[k] = v.Clone()
	}
	return out
}

// CloneValue 深拷贝 JSON 形态的值（map/slice 递归复制；插件句柄按引用共享）。
func CloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = CloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = CloneValue(e)
		}
		return out
	case []string:
		return append([]string(nil), x...)
	default:
		return v
	}
}
