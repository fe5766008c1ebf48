package config

import (
	"encoding/json"

	"flatcfg/pkg/contract"
)

// Config: 运行期只读配置（一次解析，运行期不变）。
// 使用 snake_case 键；未知字段在解析期失败。options 子树为组合选项（camelCase），
// 原样保留，在装配期严格解析。
type Config struct {
	// Root: 目标项目根目录（探测依赖与忽略文件的基准）。
	Root string `json:"root"`
	// Output: 输出文件；"-" 表示 stdout。
	Output  string  `json:"output"`
	Format  string  `json:"format"`
	Logging Logging `json:"logging"`
	// Rename: 覆盖 options.autoRenamePlugins；nil 表示沿用选项。
	Rename *bool `json:"rename,omitempty"`
	// MetricsOut: 指标 textfile 路径；空表示不输出。
	MetricsOut string `json:"metrics_out,omitempty"`

	Options json.RawMessage `json:"options,omitempty"`
	// Fragments: 追加在组合结果之后的内联片段。
	Fragments []contract.Fragment `json:"fragments,omitempty"`
	// FragmentFiles: 片段文件（JSONC/YAML），按序追加在 Fragments 之后。
	FragmentFiles []string `json:"fragment_files,omitempty"`
}

// Logging: 日志等级与可选的轮转目录。
type Logging struct {
	Level string `json:"level"`
	// Dir: 非空时写入该目录下的轮转文件，否则写 stderr。
	Dir string `json:"dir,omitempty"`
}
