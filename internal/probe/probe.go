// Package probe 基于 go-billy 文件系统实现 contract.EnvironmentProbe：
// 依赖包按 node 的解析方式在项目根及其祖先目录的 node_modules 中查找，
// 文件存在性仅针对项目根判断，环境变量在构造时快照。
package probe

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/tidwall/jsonc"

	"flatcfg/pkg/contract"
)

// FS: 文件系统探测器。
type FS struct {
	// dirs[0] 为项目根，其后依次为祖先目录。
	dirs []billy.Filesystem
	env  map[string]string
}

var (
	_ contract.EnvironmentProbe = (*FS)(nil)
	_ contract.VersionProbe     = (*FS)(nil)
	_ contract.FileReader       = (*FS)(nil)
	_ contract.EnvLookup        = (*FS)(nil)
)

// New 以 root 及其全部祖先目录构造探测器；environ 形如 os.Environ()。
func New(root string, environ []string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	st, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return nil, &fs.PathError{Op: "probe", Path: abs, Err: errors.New("not a directory")}
	}
	var dirs []billy.Filesystem
	for d := abs; ; d = filepath.Dir(d) {
		dirs = append(dirs, osfs.New(d))
		if filepath.Dir(d) == d {
			break
		}
	}
	return NewWith(dirs, environ), nil
}

// NewWith 以给定文件系统链构造探测器（测试可传入 memfs）。
func NewWith(dirs []billy.Filesystem, environ []string) *FS {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if ok && k != "" {
			env[k] = v
		}
	}
	return &FS{dirs: dirs, env: env}
}

func manifest(name string) string {
	return path.Join("node_modules", name, "package.json")
}

// PackageExists 报告 name 是否可从项目根解析。
func (p *FS) PackageExists(name string) bool {
	_, ok := p.find(name)
	return ok
}

func (p *FS) find(name string) (billy.Filesystem, bool) {
	if name == "" || strings.Contains(name, "..") {
		return nil, false
	}
	m := manifest(name)
	for _, d := range p.dirs {
		if st, err := d.Stat(m); err == nil && !st.IsDir() {
			return d, true
		}
	}
	return nil, false
}

// PackageVersion 读取已安装包 package.json 的 version 字段。
func (p *FS) PackageVersion(name string) (string, bool) {
	d, ok := p.find(name)
	if !ok {
		return "", false
	}
	b, err := util.ReadFile(d, manifest(name))
	if err != nil {
		return "", false
	}
	var pkg struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(jsonc.ToJSON(b), &pkg); err != nil || pkg.Version == "" {
		return "", false
	}
	return pkg.Version, true
}

// FileExists 报告项目根下的相对路径是否存在。
func (p *FS) FileExists(rel string) bool {
	if len(p.dirs) == 0 {
		return false
	}
	_, err := p.dirs[0].Stat(contract.NormalizePath(rel))
	return err == nil
}

// ReadFile 读取项目根下的文件。
func (p *FS) ReadFile(rel string) ([]byte, error) {
	if len(p.dirs) == 0 {
		return nil, &fs.PathError{Op: "read", Path: rel, Err: fs.ErrNotExist}
	}
	return util.ReadFile(p.dirs[0], contract.NormalizePath(rel))
}

// LookupEnv 查询构造时的环境快照。
func (p *FS) LookupEnv(key string) (string, bool) {
	v, ok := p.env[key]
	return v, ok
}
