package contract

import "context"

// EnvironmentProbe: 环境事实查询（纯读取，无缓存、无重试）。
// 不存在视为“未启用”，而非错误。
type EnvironmentProbe interface {
	// PackageExists 报告依赖包是否已安装在目标项目中。
	PackageExists(name string) bool
	// FileExists 报告项目根下的相对路径是否存在。
	FileExists(path string) bool
}

// VersionProbe: 可选扩展。实现该接口时可查询已安装包的版本，用于 peer 范围检查。
type VersionProbe interface {
	PackageVersion(name string) (string, bool)
}

// FileReader: 可选扩展。读取项目根下文件（例如 .gitignore）。
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// EnvLookup: 可选扩展。查询调用时刻的环境变量快照。
type EnvLookup interface {
	LookupEnv(key string) (string, bool)
}

// PluginSource: 按模块说明符解析插件句柄。
// 解析失败返回 *ModuleNotFoundError（errors.Is(err, ErrModuleNotFound)）。
type PluginSource interface {
	Resolve(ctx context.Context, specifier string) (*Plugin, error)
}
