package preset

import (
	"bufio"
	"bytes"
	"fmt"
	"path"
	"strings"

	"flatcfg/pkg/contract"
	"flatcfg/pkg/globs"
)

// Ignores: 默认全局排除片段。
func Ignores() []contract.Fragment {
	return []contract.Fragment{{
		Name:    Name("ignores"),
		Ignores: globs.Exclude(),
	}}
}

// GitignoreOptions: .gitignore 转换选项。
type GitignoreOptions struct {
	// Files: 相对项目根的忽略文件；默认 [".gitignore"]。
	Files []string
	// Strict: 文件缺失时报错。
	Strict bool
}

// Gitignore 读取忽略文件并转换为全局排除片段；无有效模式时不产出片段。
func Gitignore(probe contract.EnvironmentProbe, opts GitignoreOptions) ([]contract.Fragment, error) {
	files := opts.Files
	if len(files) == 0 {
		files = []string{".gitignore"}
	}
	fr, _ := probe.(contract.FileReader)
	var patterns []string
	for _, f := range files {
		f = contract.NormalizePath(f)
		if fr == nil || !probe.FileExists(f) {
			if opts.Strict {
				return nil, fmt.Errorf("%w: ignore file %s not found", contract.ErrInvalidInput, f)
			}
			continue
		}
		b, err := fr.ReadFile(f)
		if err != nil {
			if opts.Strict {
				return nil, fmt.Errorf("gitignore: read %s: %w", f, err)
			}
			continue
		}
		patterns = append(patterns, ParseGitignore(b, path.Dir(f))...)
	}
	if len(patterns) == 0 {
		return nil, nil
	}
	return []contract.Fragment{{Name: Name("gitignore"), Ignores: patterns}}, nil
}

// ParseGitignore 将 .gitignore 内容转换为排除模式；dir 为该文件相对项目根的目录。
func ParseGitignore(content []byte, dir string) []string {
	var out []string
	sc := bufio.NewScanner(bytes.NewReader(content))
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, `\#`) {
			line = line[1:]
		}
		line = trimUnescapedSpace(line)
		if line == "" {
			continue
		}
		out = append(out, relativePattern(ConvertIgnorePattern(line), dir))
	}
	return out
}

// trimUnescapedSpace 去掉未转义的尾随空格。
func trimUnescapedSpace(s string) string {
	for strings.HasSuffix(s, " ") && !strings.HasSuffix(s, `\ `) {
		s = s[:len(s)-1]
	}
	return s
}

// ConvertIgnorePattern 将单条 gitignore 模式转换为 glob：
// - 不含斜杠（或仅以斜杠结尾）的模式在任意层级匹配，前缀 "**/"；
// - 去掉前导 "/"（锚定到根）；
// - 转义 "{" 与 "("，避免被当作 glob 语法；
// - 以 "/**" 结尾时追加 "/*"，只匹配目录内部。
func ConvertIgnorePattern(pattern string) string {
	neg := ""
	p := pattern
	if strings.HasPrefix(p, "!") {
		neg = "!"
		p = p[1:]
	}
	p = strings.TrimRight(p, " \t")
	switch p {
	case "", "**", "/**", "**/":
		return neg + p
	}
	slash := strings.Index(p, "/")
	prefix := ""
	if slash < 0 || slash == len(p)-1 {
		prefix = "**/"
	}
	body := p
	if slash == 0 {
		body = p[1:]
	}
	suffix := ""
	if strings.HasSuffix(p, "/**") {
		suffix = "/*"
	}
	return neg + prefix + escapeGlobGroups(body) + suffix
}

func escapeGlobGroups(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			b.WriteByte(c)
			i++
			b.WriteByte(s[i])
		case c == '{' || c == '(':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// relativePattern 将子目录忽略文件中的模式改写为相对项目根。
func relativePattern(p, dir string) string {
	if dir == "" || dir == "." {
		return p
	}
	neg := ""
	if strings.HasPrefix(p, "!") {
		neg = "!"
		p = p[1:]
	}
	return neg + dir + "/" + p
}
