package compose

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"flatcfg/pkg/contract"
)

// Toggle: 可选特性开关。JSON 接受 true/false 或对象（对象即启用并携带选项）。
// 未出现时 Set=false，由环境探测决定是否启用。
type Toggle[T any] struct {
	Set     bool
	Enabled bool
	// Object: 以对象形式提供。
	Object  bool
	Options T
}

// On/Off/With: 构造显式开关。
func On[T any]() Toggle[T] { return Toggle[T]{Set: true, Enabled: true} }
func Off[T any]() Toggle[T] { return Toggle[T]{Set: true} }
func With[T any](opts T) Toggle[T] {
	return Toggle[T]{Set: true, Enabled: true, Object: true, Options: opts}
}

// IsZero 供 omitzero 使用：未设置即为零值。
func (t Toggle[T]) IsZero() bool { return !t.Set }

// Resolve 返回最终启用状态；未设置时采用 detected。
func (t Toggle[T]) Resolve(detected bool) bool {
	if !t.Set {
		return detected
	}
	return t.Enabled
}

func (t Toggle[T]) MarshalJSON() ([]byte, error) {
	switch {
	case !t.Set:
		return []byte("null"), nil
	case t.Object:
		return json.Marshal(t.Options)
	default:
		return json.Marshal(t.Enabled)
	}
}

func (t *Toggle[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = Toggle[T]{}
		return nil
	}
	switch b[0] {
	case 't', 'f':
		var on bool
		if err := json.Unmarshal(b, &on); err != nil {
			return contract.InvalidInput(err)
		}
		*t = Toggle[T]{Set: true, Enabled: on}
		return nil
	case '{':
		var o T
		if err := decodeStrict(b, &o); err != nil {
			return err
		}
		*t = With(o)
		return nil
	}
	return fmt.Errorf("%w: expected boolean or object, got %s", contract.ErrInvalidInput, b)
}

// decodeStrict 严格解码：未知字段报错。
func decodeStrict(b []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return contract.InvalidInput(err)
	}
	return nil
}

// GitignoreOptions: 忽略文件转换。
type GitignoreOptions struct {
	Files  []string `json:"files,omitempty"`
	Strict bool     `json:"strict,omitempty"`
}

// JavascriptOptions: 基础语言规则。
type JavascriptOptions struct {
	Overrides contract.Rules `json:"overrides,omitempty"`
}

// TypeScriptOptions: TypeScript 支持。TSConfigPath 非空即启用类型感知。
type TypeScriptOptions struct {
	TSConfigPath       string         `json:"tsconfigPath,omitempty"`
	ParserOptions      map[string]any `json:"parserOptions,omitempty"`
	Files              []string       `json:"files,omitempty"`
	FilesTypeAware     []string       `json:"filesTypeAware,omitempty"`
	IgnoresTypeAware   []string       `json:"ignoresTypeAware,omitempty"`
	Overrides          contract.Rules `json:"overrides,omitempty"`
	OverridesTypeAware contract.Rules `json:"overridesTypeAware,omitempty"`
}

// JSONCOptions: JSON 家族文件。
type JSONCOptions struct {
	Overrides contract.Rules `json:"overrides,omitempty"`
}

// RegexpOptions: 正则规则；Level 为 error（默认）或 warn。
type RegexpOptions struct {
	Level     contract.Severity `json:"level,omitempty"`
	Overrides contract.Rules    `json:"overrides,omitempty"`
}

// SvelteOptions: 组件模板支持。
type SvelteOptions struct {
	Files     []string       `json:"files,omitempty"`
	Overrides contract.Rules `json:"overrides,omitempty"`
}

// Options: 组合选项集。特性开关之外的 name/plugins/rules 等键组成一个内联片段，
// 追加在内置片段之后、用户片段之前。
type Options struct {
	// AutoRenamePlugins: nil 视为 true。
	AutoRenamePlugins *bool    `json:"autoRenamePlugins,omitempty"`
	ComponentExts     []string `json:"componentExts,omitempty"`
	// Type: "app"（默认）或 "lib"。
	Type string `json:"type,omitempty"`
	// IsInEditor: nil 时由环境变量探测。
	IsInEditor *bool `json:"isInEditor,omitempty"`

	Gitignore  Toggle[GitignoreOptions]  `json:"gitignore,omitzero"`
	Javascript JavascriptOptions         `json:"javascript,omitzero"`
	TypeScript Toggle[TypeScriptOptions] `json:"typescript,omitzero"`
	JSX        *bool                     `json:"jsx,omitempty"`
	JSONC      Toggle[JSONCOptions]      `json:"jsonc,omitzero"`
	Regexp     Toggle[RegexpOptions]     `json:"regexp,omitzero"`
	Svelte     Toggle[SvelteOptions]     `json:"svelte,omitzero"`

	// 内联片段键
	Name            string                      `json:"name,omitempty"`
	Plugins         map[string]*contract.Plugin `json:"plugins,omitempty"`
	Rules           contract.Rules              `json:"rules,omitempty"`
	LanguageOptions *contract.LanguageOptions   `json:"languageOptions,omitempty"`
	LinterOptions   map[string]any              `json:"linterOptions,omitempty"`
	Processor       string                      `json:"processor,omitempty"`
	Settings        map[string]any              `json:"settings,omitempty"`

	// Files/Ignores 仅为给出明确错误而保留：不可内联注入。
	Files   []string `json:"files,omitempty"`
	Ignores []string `json:"ignores,omitempty"`
}

// DecodeOptions 严格解码 JSON 选项（未知键报错）。
func DecodeOptions(b []byte) (Options, error) {
	var o Options
	if len(bytes.TrimSpace(b)) == 0 {
		return o, nil
	}
	if err := decodeStrict(b, &o); err != nil {
		return Options{}, err
	}
	return o, nil
}

func (o Options) renameEnabled() bool {
	return o.AutoRenamePlugins == nil || *o.AutoRenamePlugins
}

func (o Options) jsxEnabled() bool { return o.JSX == nil || *o.JSX }

// hasInline 报告是否提供了任一内联片段键。
func (o Options) hasInline() bool {
	return o.Name != "" || len(o.Plugins) > 0 || len(o.Rules) > 0 || o.LanguageOptions != nil ||
		len(o.LinterOptions) > 0 || o.Processor != "" || len(o.Settings) > 0
}

// Validate 检查选项是否满足约束。
func (o Options) Validate() error {
	if len(o.Files) > 0 || len(o.Ignores) > 0 {
		return fmt.Errorf("%w: files/ignores cannot be set on the options object; pass a fragment instead", contract.ErrInvalidInput)
	}
	switch o.Type {
	case "", "app", "lib":
	default:
		return fmt.Errorf("%w: type must be app or lib, got %q", contract.ErrInvalidInput, o.Type)
	}
	for _, e := range o.ComponentExts {
		if strings.TrimSpace(e) == "" || strings.ContainsAny(e, "./*{},") {
			return fmt.Errorf("%w: component extension %q", contract.ErrInvalidInput, e)
		}
	}
	switch o.Regexp.Options.Level {
	case "", contract.SeverityError, contract.SeverityWarn:
	default:
		return fmt.Errorf("%w: regexp.level must be error or warn, got %q", contract.ErrInvalidInput, o.Regexp.Options.Level)
	}
	ts := o.TypeScript.Options
	if err := validatePatterns("typescript.files", ts.Files); err != nil {
		return err
	}
	if err := validatePatterns("typescript.filesTypeAware", ts.FilesTypeAware); err != nil {
		return err
	}
	if err := validatePatterns("typescript.ignoresTypeAware", ts.IgnoresTypeAware); err != nil {
		return err
	}
	if err := validatePatterns("svelte.files", o.Svelte.Options.Files); err != nil {
		return err
	}
	tables := []struct {
		where string
		rules contract.Rules
	}{
		{"rules", o.Rules},
		{"javascript.overrides", o.Javascript.Overrides},
		{"typescript.overrides", ts.Overrides},
		{"typescript.overridesTypeAware", ts.OverridesTypeAware},
		{"jsonc.overrides", o.JSONC.Options.Overrides},
		{"regexp.overrides", o.Regexp.Options.Overrides},
		{"svelte.overrides", o.Svelte.Options.Overrides},
	}
	for _, t := range tables {
		if err := validateRules(t.where, t.rules); err != nil {
			return err
		}
	}
	for _, ns := range sortedKeys(o.Plugins) {
		if p := o.Plugins[ns]; ns == "" || p == nil || p.Module == "" {
			return fmt.Errorf("%w: plugins.%s: empty binding", contract.ErrInvalidInput, ns)
		}
	}
	return nil
}

func validatePatterns(where string, patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(strings.TrimPrefix(p, "!")) {
			return fmt.Errorf("%w: %s: bad pattern %q", contract.ErrInvalidInput, where, p)
		}
	}
	return nil
}

func validateRules(where string, rules contract.Rules) error {
	for _, k := range sortedKeys(rules) {
		if v := rules[k]; k == "" || !v.Severity.Valid() {
			return fmt.Errorf("%w: %s: rule %q severity %q", contract.ErrInvalidInput, where, k, v.Severity)
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
