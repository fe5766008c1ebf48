// Package output 将片段序列渲染为 JSON/YAML，并写出到文件（默认原子替换）。
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"flatcfg/pkg/contract"
)

// Format: 输出格式。
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat 解析格式名；空串为 json。
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: format %q (want json|yaml)", contract.ErrInvalidInput, s)
}

// Render 以引擎可读的键名编码片段序列；结尾带换行。
func Render(frags []contract.Fragment, f Format) ([]byte, error) {
	if frags == nil {
		frags = []contract.Fragment{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(frags); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	switch f {
	case FormatJSON, "":
		return buf.Bytes(), nil
	case FormatYAML:
		return toYAML(buf.Bytes())
	}
	return nil, fmt.Errorf("%w: format %q", contract.ErrInvalidInput, f)
}

// toYAML 经 yaml.Node 转换，保留 JSON 的键顺序并改用块样式。
func toYAML(js []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(js, &doc); err != nil {
		return nil, fmt.Errorf("render yaml: %w", err)
	}
	blockStyle(&doc)
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("render yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("render yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
