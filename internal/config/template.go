package config

import (
	"encoding/json"

	"flatcfg/pkg/contract"
)

// DefaultTemplateConfig 返回一个“可运行”的默认配置模板：
// 特性开关全部交由环境探测，附带一个示例内联片段，输出 JSON 到项目根。
func DefaultTemplateConfig() Config {
	cfg := Defaults()
	cfg.Options = json.RawMessage(`{
  "autoRenamePlugins": true,
  "type": "app",
  "componentExts": [],
  "rules": {}
}`)
	cfg.Fragments = []contract.Fragment{{
		Name:  "project/overrides",
		Files: []string{"**/*.test.{js,ts}"},
		Rules: contract.Rules{"no-console": contract.Off()},
	}}
	cfg.FragmentFiles = []string{}
	return cfg
}
