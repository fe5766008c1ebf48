package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"flatcfg/pkg/contract"
)

// EnvPrefix: 环境变量覆盖前缀。
const EnvPrefix = "FLATCFG_"

// AutoNames: 工作目录下自动探测的配置文件名（按优先级）。
var AutoNames = []string{"flatcfg.jsonc", "flatcfg.json", "flatcfg.yaml", "flatcfg.yml"}

// Defaults 返回带有安全默认值的 Config 雏形。
func Defaults() Config {
	return Config{
		Root:    ".",
		Output:  "eslint.config.json",
		Format:  "json",
		Logging: Logging{Level: "info"},
	}
}

// Detect 返回 dir 下第一个存在的自动配置文件；无则返回空串。
func Detect(dir string) string {
	for _, n := range AutoNames {
		p := filepath.Join(dir, n)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	return ""
}

// Load 从文件路径或原始内容解析 Config（严格拒绝未知字段）。
// .yaml/.yml 按 YAML 解析，其余按 JSONC（允许注释与尾逗号）。
// raw 非空时优先，按 JSONC 解析。
func Load(path string, raw []byte) (Config, error) {
	var cfg Config
	js, err := readDocument(path, raw)
	if err != nil {
		return cfg, err
	}
	if err := decodeStrict(js, &cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", displayName(path, raw), err)
	}
	return cfg, nil
}

// LoadFragments 读取片段文件：单个片段对象或片段数组。
func LoadFragments(path string) ([]contract.Fragment, error) {
	js, err := readDocument(path, nil)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(js)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var f contract.Fragment
		if err := decodeStrict(trimmed, &f); err != nil {
			return nil, fmt.Errorf("fragments %s: %w", path, err)
		}
		return []contract.Fragment{f}, nil
	}
	var frags []contract.Fragment
	if err := decodeStrict(trimmed, &frags); err != nil {
		return nil, fmt.Errorf("fragments %s: %w", path, err)
	}
	return frags, nil
}

// readDocument 读取并归一化为 JSON。
func readDocument(path string, raw []byte) ([]byte, error) {
	switch {
	case len(raw) > 0:
		return jsonc.ToJSON(raw), nil
	case path != "":
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if isYAML(path) {
			return yamlToJSON(b)
		}
		return jsonc.ToJSON(b), nil
	default:
		return nil, errors.New("no config source provided")
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// yamlToJSON 经通用值转换，使 YAML 与 JSON 共用同一严格解码路径。
func yamlToJSON(b []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("%w: yaml: %v", contract.ErrInvalidInput, err)
	}
	if v == nil {
		return []byte("{}"), nil
	}
	js, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: yaml: %v", contract.ErrInvalidInput, err)
	}
	return js, nil
}

func decodeStrict(b []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return contract.InvalidInput(err)
	}
	return nil
}

func displayName(path string, raw []byte) string {
	if len(raw) > 0 {
		return "(inline)"
	}
	return path
}

// Merge 按优先级合并（后者覆盖前者）。
// 标量/字符串为“非空即替换”；options 原样替换；fragments 与 fragment_files 追加。
func Merge(base, over Config) Config {
	out := base
	if s := strings.TrimSpace(over.Root); s != "" {
		out.Root = s
	}
	if s := strings.TrimSpace(over.Output); s != "" {
		out.Output = s
	}
	if s := strings.TrimSpace(over.Format); s != "" {
		out.Format = s
	}
	if s := strings.TrimSpace(over.Logging.Level); s != "" {
		out.Logging.Level = s
	}
	if s := strings.TrimSpace(over.Logging.Dir); s != "" {
		out.Logging.Dir = s
	}
	if over.Rename != nil {
		v := *over.Rename
		out.Rename = &v
	}
	if s := strings.TrimSpace(over.MetricsOut); s != "" {
		out.MetricsOut = s
	}
	if len(over.Options) > 0 {
		out.Options = cloneRaw(over.Options)
	}
	if len(over.Fragments) > 0 {
		out.Fragments = append(contract.CloneFragments(out.Fragments), contract.CloneFragments(over.Fragments)...)
	}
	if len(over.FragmentFiles) > 0 {
		out.FragmentFiles = append(cloneStrings(out.FragmentFiles), over.FragmentFiles...)
	}
	return out
}

// EnvOverlay 从环境变量构建一个 Config 覆盖（仅解析有限键集合）。
// 前缀 FLATCFG_；支持 ROOT, OUTPUT, FORMAT, LOG_LEVEL, LOG_DIR, METRICS_OUT,
// FRAGMENT_FILES（逗号分隔）, OPTIONS_JSON, NO_RENAME。
// CONFIG_FILE/CONFIG_JSON 选择配置来源，由调用方处理。
func EnvOverlay(environ []string) (Config, error) {
	var over Config
	for _, kv := range environ {
		if !strings.HasPrefix(kv, EnvPrefix) {
			continue
		}
		eq := strings.IndexByte(kv, '=')
		if eq <= len(EnvPrefix) {
			continue
		}
		key := strings.TrimPrefix(kv[:eq], EnvPrefix)
		val := kv[eq+1:]
		switch key {
		case "ROOT":
			over.Root = strings.TrimSpace(val)
		case "OUTPUT":
			over.Output = strings.TrimSpace(val)
		case "FORMAT":
			over.Format = strings.TrimSpace(val)
		case "LOG_LEVEL":
			over.Logging.Level = strings.TrimSpace(val)
		case "LOG_DIR":
			over.Logging.Dir = strings.TrimSpace(val)
		case "METRICS_OUT":
			over.MetricsOut = strings.TrimSpace(val)
		case "FRAGMENT_FILES":
			over.FragmentFiles = splitComma(val)
		case "OPTIONS_JSON":
			// 空值视为未设置，避免清空配置文件中的选项
			if strings.TrimSpace(val) != "" {
				js := jsonc.ToJSON([]byte(val))
				if !json.Valid(js) {
					return Config{}, fmt.Errorf("%w: %sOPTIONS_JSON is not valid JSON", contract.ErrInvalidInput, EnvPrefix)
				}
				over.Options = js
			}
		case "NO_RENAME":
			if strings.TrimSpace(val) == "" {
				continue
			}
			b, ok := parseBool(val)
			if !ok {
				return Config{}, fmt.Errorf("%w: %sNO_RENAME=%q", contract.ErrInvalidInput, EnvPrefix, val)
			}
			rename := !b
			over.Rename = &rename
		}
	}
	return over, nil
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneRaw(in json.RawMessage) json.RawMessage {
	if len(in) == 0 {
		return nil
	}
	out := make([]byte, len(in))
	copy(out, in)
	return out
}

func splitComma(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
