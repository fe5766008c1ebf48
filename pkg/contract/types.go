package contract

// Fragment: 命名的配置单元，由下游引擎按文件模式匹配后依序合并。
// 约束：
// - Rules 键在单个片段内唯一；
// - 跨片段的冲突由引擎按“后者覆盖前者”解决，组合层只负责确定性的顺序；
// - 组合层返回的片段不与调用方共享可变状态（插件句柄除外，句柄视为不可变）。
type Fragment struct {
	// Name: 诊断与构建器定位用；约定为 <namespace>/<topic>/<subtopic>。
	Name string `json:"name,omitempty"`
	// Files: 文件模式；为空表示适用于所有未被排除的文件。
	Files []string `json:"files,omitempty"`
	// Ignores: 排除模式，即使在 Files 内也会被否决；"!" 前缀表示重新纳入。
	Ignores []string `json:"ignores,omitempty"`
	// Plugins: 短命名空间到插件句柄。
	Plugins map[string]*Plugin `json:"plugins,omitempty"`
	// Rules: 完整规则键到设置。
	Rules Rules `json:"rules,omitempty"`

	// 以下字段组合层不解读。
	LanguageOptions *LanguageOptions `json:"languageOptions,omitempty"`
	LinterOptions   map[string]any   `json:"linterOptions,omitempty"`
	Processor       string           `json:"processor,omitempty"`
	Settings        map[string]any   `json:"settings,omitempty"`
}

// LanguageOptions: 解析器与运行环境配置（不透明）。
type LanguageOptions struct {
	EcmaVersion   any               `json:"ecmaVersion,omitempty"`
	SourceType    string            `json:"sourceType,omitempty"`
	Globals       map[string]string `json:"globals,omitempty"`
	Parser        *Plugin           `json:"parser,omitempty"`
	ParserOptions map[string]any    `json:"parserOptions,omitempty"`
}

// IsGlobalIgnore 报告片段是否只含 Ignores（引擎将其视为全局排除）。
func (f Fragment) IsGlobalIgnore() bool {
	return len(f.Ignores) > 0 && len(f.Files) == 0 && len(f.Plugins) == 0 && len(f.Rules) == 0 &&
		f.LanguageOptions == nil && len(f.LinterOptions) == 0 && f.Processor == "" && len(f.Settings) == 0
}

// Clone 深拷贝片段。
func (f Fragment) Clone() Fragment {
	out := Fragment{
		Name:      f.Name,
		Files:     cloneStrings(f.Files),
		Ignores:   cloneStrings(f.Ignores),
		Rules:     f.Rules.Clone(),
		Processor: f.Processor,
	}
	if f.Plugins != nil {
		out.Plugins = make(map[string]*Plugin, len(f.Plugins))
		for k, v := range f.Plugins {
			out.Plugins[k] = v.Clone()
		}
	}
	if f.LanguageOptions != nil {
		lo := f.LanguageOptions.Clone()
		out.LanguageOptions = &lo
	}
	out.LinterOptions = cloneMap(f.LinterOptions)
	out.Settings = cloneMap(f.Settings)
	return out
}

// Clone 深拷贝语言选项。
func (l LanguageOptions) Clone() LanguageOptions {
	out := LanguageOptions{
		EcmaVersion:   l.EcmaVersion,
		SourceType:    l.SourceType,
		Parser:        l.Parser.Clone(),
		ParserOptions: cloneMap(l.ParserOptions),
	}
	if l.Globals != nil {
		out.Globals = make(map[string]string, len(l.Globals))
		for k, v := range l.Globals {
			out.Globals[k] = v
		}
	}
	return out
}

// CloneFragments 深拷贝片段序列。
func CloneFragments(in []Fragment) []Fragment {
	if in == nil {
		return nil
	}
	out := make([]Fragment, len(in))
	for i, f := range in {
		out[i] = f.Clone()
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	return CloneValue(m).(map[string]any)
}
