package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"flatcfg/internal/compose"
	cfgpkg "flatcfg/internal/config"
	"flatcfg/internal/diag"
	"flatcfg/internal/match"
	"flatcfg/internal/output"
	"flatcfg/internal/probe"
	"flatcfg/pkg/contract"
)

// 退出码
const (
	exitOK      = 0
	exitFailure = 1
	exitCheck   = 2
	exitConfig  = 3
)

// logMaxBytes: 轮转日志单文件上限。
const logMaxBytes = 10 << 20

// 简化的 CLI：组合一次并写出，或按旗标打印诊断信息。
// 位置参数至多一个，为项目根目录（覆盖配置中的 root）。
func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type flags struct {
	config     string
	root       string
	out        string
	format     string
	fragments  []string
	noRename   bool
	logLevel   string
	logDir     string
	metricsOut string
	names      bool
	inspect    string
	check      bool
	watch      bool
	initDir    string
	status     bool
}

func run(args []string, stdout, stderr io.Writer) int {
	start := time.Now()
	corrID := uuid.NewString()
	// 在任何 ENV 读取前，尝试加载工作目录下的 .env（不覆盖已有 ENV）。
	if err := loadDotEnv(".env"); err != nil {
		fprintf(stderr, "提示：.env 读取失败（已跳过）：%v\n", err)
	}
	logger := diag.NewLogger(corrID, "info", stderr)

	var f flags
	fs := pflag.NewFlagSet("flatcfg", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&f.config, "config", "c", "", "配置文件（JSONC/YAML）；缺省探测 ./flatcfg.{jsonc,json,yaml,yml}")
	fs.StringVar(&f.root, "root", "", "项目根目录（覆盖配置）")
	fs.StringVarP(&f.out, "out", "o", "", "输出文件；- 表示 stdout（覆盖配置）")
	fs.StringVar(&f.format, "format", "", "输出格式 json|yaml（覆盖配置）")
	fs.StringArrayVar(&f.fragments, "fragment", nil, "追加片段文件（可重复）")
	fs.BoolVar(&f.noRename, "no-rename", false, "关闭插件命名空间规范化")
	fs.StringVar(&f.logLevel, "log-level", "", "日志级别 debug|info|warn|error（覆盖配置）")
	fs.StringVar(&f.logDir, "log-dir", "", "日志写入该目录下的轮转文件（默认 stderr）")
	fs.StringVar(&f.metricsOut, "metrics-out", "", "结束时写出 Prometheus textfile 指标")
	fs.BoolVar(&f.names, "names", false, "仅打印片段名（按序）")
	fs.StringVar(&f.inspect, "inspect", "", "打印某个文件（相对项目根）的生效配置")
	fs.BoolVar(&f.check, "check", false, "检查未知规则；存在时退出码 2")
	fs.BoolVarP(&f.watch, "watch", "w", false, "监听配置与项目文件，变更后重新生成")
	fs.StringVar(&f.initDir, "init-config", "", "在指定目录生成 flatcfg.json 与 .env 模板（不覆盖）；不带值时为当前目录")
	fs.BoolVar(&f.status, "status", true, "终端状态提示（stderr）")
	if err := fs.Parse(normalizeInitArg(args)); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitConfig
	}
	if fs.NArg() > 1 {
		fprintf(stderr, "参数过多: %v\n", fs.Args())
		return exitConfig
	}
	if fs.NArg() == 1 {
		f.root = fs.Arg(0)
	}

	// --init-config: 生成模板并退出
	if dir := strings.TrimSpace(f.initDir); dir != "" {
		if err := initConfig(dir); err != nil {
			fprintf(stderr, "生成默认配置失败: %v\n", err)
			logger.Error("cli", diag.Classify(err), "first error", &start)
			return exitConfig
		}
		return exitOK
	}

	load := func() (cfgpkg.Config, cfgpkg.Plan, string, error) {
		return loadConfig(f, fs)
	}
	cfg, plan, cfgPath, err := load()
	if err != nil {
		fprintf(stderr, "%v\n", err)
		var ve *validateError
		if errors.As(err, &ve) {
			_ = dumpConfig(stderr, ve.cfg)
		}
		logger.Error("cli", diag.Classify(err), "first error", &start)
		return exitConfig
	}

	// 使用最终配置中的日志级别与目标重建 logger
	logOut := stderr
	if dir := strings.TrimSpace(cfg.Logging.Dir); dir != "" {
		rf := diag.NewRotatingFile(dir, logMaxBytes)
		defer func() { _ = rf.Close() }()
		logOut = rf
	}
	logger = diag.NewLogger(corrID, cfg.Logging.Level, logOut)
	logger.DebugStart("config", "effective", map[string]string{
		"config":          cfgPath,
		"root":            plan.Root,
		"output":          plan.Output,
		"format":          string(plan.Format),
		"fragments_count": fmt.Sprintf("%d", len(plan.Sources)),
	})
	if cfg.MetricsOut != "" {
		defer func() {
			if err := diag.WriteMetrics(cfg.MetricsOut); err != nil {
				fprintf(stderr, "指标写出失败: %v\n", err)
			}
		}()
	}

	if plan.Output != "-" && !f.names && !f.check && f.inspect == "" {
		if err := preflightCheckOutputDir(plan.Output); err != nil {
			fprintf(stderr, "输出目录不可写或无法创建: %v\n", err)
			logger.Error("cli", diag.Classify(err), "first error", &start)
			return exitConfig
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), interruptSignals...)
	defer stop()

	term := diag.NewTerminal(stderr, f.status && !f.names && !f.check && f.inspect == "")
	r := &runner{stdout: stdout, stderr: stderr, logger: logger, term: term, writer: output.NewWriter(nil), flags: f}
	code := r.once(ctx, plan)
	if !f.watch || code == exitConfig {
		return code
	}

	paths := watchPaths(cfgPath, cfg, plan)
	term.Watching(paths)
	err = cfgpkg.Watch(ctx, paths, cfgpkg.DefaultDebounce, logger, func() {
		_, next, _, err := load()
		if err != nil {
			fprintf(stderr, "%v\n", err)
			logger.Error("cli", diag.Classify(err), "reload failed", nil)
			return
		}
		r.once(ctx, next)
	})
	if err != nil {
		fprintf(stderr, "监听失败: %v\n", err)
		return exitFailure
	}
	return exitOK
}

// validateError: 校验失败，附带有效配置供诊断。
type validateError struct {
	cfg cfgpkg.Config
	err error
}

func (e *validateError) Error() string { return fmt.Sprintf("配置校验失败: %v", e.err) }
func (e *validateError) Unwrap() error { return e.err }

// loadConfig 按优先级合并：默认值 < 配置文件 < ENV < CLI，然后校验并装配。
func loadConfig(f flags, fs *pflag.FlagSet) (cfgpkg.Config, cfgpkg.Plan, string, error) {
	// JSON 配置（文件或 ENV: FLATCFG_CONFIG_JSON）
	var raw []byte
	if s := os.Getenv(cfgpkg.EnvPrefix + "CONFIG_JSON"); s != "" {
		raw = []byte(s)
	}
	path := f.config
	if path == "" {
		path = os.Getenv(cfgpkg.EnvPrefix + "CONFIG_FILE")
	}
	if path == "" {
		path = cfgpkg.Detect(".")
	}

	cfg := cfgpkg.Defaults()
	if path != "" || len(raw) > 0 {
		base, err := cfgpkg.Load(path, raw)
		if err != nil {
			return cfg, cfgpkg.Plan{}, path, fmt.Errorf("配置解析失败: %w", err)
		}
		cfg = cfgpkg.Merge(cfg, base)
	}

	overEnv, err := cfgpkg.EnvOverlay(os.Environ())
	if err != nil {
		return cfg, cfgpkg.Plan{}, path, fmt.Errorf("环境变量解析失败: %w", err)
	}
	cfg = cfgpkg.Merge(cfg, overEnv)

	overCLI := cfgpkg.Config{
		Root:          f.root,
		Output:        f.out,
		Format:        f.format,
		Logging:       cfgpkg.Logging{Level: f.logLevel, Dir: f.logDir},
		MetricsOut:    f.metricsOut,
		FragmentFiles: f.fragments,
	}
	if fs.Changed("no-rename") {
		rename := !f.noRename
		overCLI.Rename = &rename
	}
	cfg = cfgpkg.Merge(cfg, overCLI)

	plan, err := cfgpkg.Assemble(cfg)
	if err != nil {
		return cfg, cfgpkg.Plan{}, path, &validateError{cfg: cfg, err: err}
	}
	return cfg, plan, path, nil
}

// runner: 单次组合与写出；watch 模式下串行复用。
type runner struct {
	stdout io.Writer
	stderr io.Writer
	logger *diag.Logger
	term   *diag.Terminal
	writer *output.Writer
	flags  flags
}

func (r *runner) once(ctx context.Context, plan cfgpkg.Plan) int {
	start := time.Now()
	pr, err := probe.New(plan.Root, os.Environ())
	if err != nil {
		fprintf(r.stderr, "项目根不可用: %v\n", err)
		r.logger.Error("cli", diag.Classify(err), "first error", &start)
		return exitConfig
	}
	env := compose.Env{Probe: pr, Logger: r.logger, RootDir: plan.Root}
	r.term.RunStart(compose.ResolveFeatures(env, plan.Options).Names())

	frags, err := compose.Compose(ctx, env, plan.Options, plan.Sources...)
	if err == nil {
		var out []contract.Fragment
		out, err = frags.Fragments(ctx)
		if err == nil {
			return r.emit(ctx, plan, out, start)
		}
	}
	r.fail(err, start, plan.Output)
	return exitFailure
}

func (r *runner) fail(err error, start time.Time, dest string) {
	code := diag.Classify(err)
	kv := map[string]string{}
	var md *contract.MissingDependencyError
	if errors.As(err, &md) {
		kv["feature"] = md.Feature
		kv["package"] = md.Package
	}
	r.logger.ErrorWithKV("cli", code, "first error", &start, kv)
	diag.IncOp("cli", "finish", "error")
	if !errors.Is(err, context.Canceled) {
		fprintf(r.stderr, "组合失败: %v\n", err)
	}
	r.term.RunFinish(false, 0, dest)
}

func (r *runner) emit(ctx context.Context, plan cfgpkg.Plan, frags []contract.Fragment, start time.Time) int {
	switch {
	case r.flags.names:
		for _, f := range frags {
			fprintf(r.stdout, "%s\n", f.Name)
		}
		return exitOK
	case r.flags.inspect != "":
		return r.inspect(frags)
	case r.flags.check:
		unknown := compose.UnknownRules(frags)
		for _, u := range unknown {
			fprintf(r.stdout, "%s: %s (%s)\n", u.Fragment, u.Key, u.Reason)
		}
		if len(unknown) > 0 {
			r.logger.Warn("check", "unknown rules", map[string]string{"count": fmt.Sprintf("%d", len(unknown))})
			return exitCheck
		}
		return exitOK
	}

	data, err := output.Render(frags, plan.Format)
	if err != nil {
		r.fail(err, start, plan.Output)
		return exitFailure
	}
	if plan.Output == "-" {
		if _, err := r.stdout.Write(data); err != nil {
			r.fail(err, start, plan.Output)
			return exitFailure
		}
	} else {
		changed, err := r.writer.Write(ctx, plan.Output, data)
		if err != nil {
			r.fail(err, start, plan.Output)
			return exitFailure
		}
		r.logger.DebugStart("output", "write", map[string]string{"dest": plan.Output, "changed": fmt.Sprintf("%t", changed)})
	}
	diag.IncOp("cli", "finish", "success")
	diag.ObserveDuration("cli", "finish", time.Since(start).Milliseconds())
	r.logger.InfoFinish("cli", "generated", start, int64(len(frags)))
	r.term.RunFinish(true, len(frags), plan.Output)
	return exitOK
}

// inspectResult: --inspect 的输出形态。
type inspectResult struct {
	Path      string         `json:"path"`
	Ignored   bool           `json:"ignored"`
	Fragments []string       `json:"fragments"`
	Rules     contract.Rules `json:"rules"`
	Parser    string         `json:"parser,omitempty"`
	Processor string         `json:"processor,omitempty"`
}

func (r *runner) inspect(frags []contract.Fragment) int {
	p := contract.NormalizePath(r.flags.inspect)
	res := match.Resolve(frags, p)
	out := inspectResult{
		Path:      p,
		Ignored:   res.Ignored,
		Fragments: res.Fragments,
		Rules:     res.Rules,
		Parser:    res.Parser,
		Processor: res.Processor,
	}
	if out.Fragments == nil {
		out.Fragments = []string{}
	}
	enc := json.NewEncoder(r.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fprintf(r.stderr, "输出失败: %v\n", err)
		return exitFailure
	}
	return exitOK
}

// watchPaths: 配置文件、片段文件与影响特性探测的项目文件。
func watchPaths(cfgPath string, cfg cfgpkg.Config, plan cfgpkg.Plan) []string {
	var out []string
	if cfgPath != "" {
		out = append(out, cfgPath)
	}
	out = append(out, cfg.FragmentFiles...)
	for _, name := range []string{".gitignore", "package.json"} {
		out = append(out, filepath.Join(plan.Root, name))
	}
	return out
}

func fprintf(w io.Writer, format string, a ...any) { _, _ = fmt.Fprintf(w, format, a...) }

func dumpConfig(w io.Writer, c cfgpkg.Config) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	_, _ = w.Write(append([]byte("有效配置:\n"), b...))
	_, _ = w.Write([]byte("\n"))
	return nil
}

func initConfig(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	// 已存在则跳过，不覆盖
	if err := writeConfig(filepath.Join(dir, "flatcfg.json"), cfgpkg.DefaultTemplateConfig()); err != nil && !os.IsExist(err) {
		return err
	}
	// .env 生成失败不影响配置模板
	if err := writeDotEnv(filepath.Join(dir, ".env")); err != nil {
		fprintf(os.Stderr, "提示：.env 生成失败（已跳过）：%v\n", err)
	}
	return nil
}

func writeConfig(path string, c cfgpkg.Config) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	// 不覆盖已存在文件
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(append(b, '\n'))
	return err
}

// loadDotEnv 读取 .env 并注入进程环境；文件不存在时忽略，不覆盖已存在的环境变量。
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// normalizeInitArg: 允许 --init-config 在未提供路径值时采用默认值当前目录 "."。
// 兼容以下形式：
//
//	--init-config                => 等价于 --init-config .
//	--init-config=out
//	--init-config out
//
// 仅在检测到“裸开关或后继为下一个开关”的情况下插入默认值。
func normalizeInitArg(args []string) []string {
	out := make([]string, 0, len(args)+1)
	for i, a := range args {
		out = append(out, a)
		if a == "--init-config" && (i == len(args)-1 || strings.HasPrefix(args[i+1], "-")) {
			out = append(out, ".")
		}
	}
	return out
}

// writeDotEnv 生成 .env 模板（若文件已存在则跳过）。
func writeDotEnv(path string) error {
	var b strings.Builder
	b.WriteString("# flatcfg .env 模板（由 --init-config 生成）\n")
	b.WriteString("# 优先级：CLI > ENV(.env) > 配置文件\n")
	b.WriteString("# 空值表示未设置。\n\n")

	b.WriteString("# 配置来源（可二选一）\n")
	b.WriteString("FLATCFG_CONFIG_FILE=\n")
	b.WriteString("FLATCFG_CONFIG_JSON=\n\n")

	b.WriteString("# 运行参数覆盖\n")
	for _, k := range []string{"ROOT", "OUTPUT", "FORMAT", "LOG_LEVEL", "LOG_DIR", "METRICS_OUT", "FRAGMENT_FILES", "OPTIONS_JSON", "NO_RENAME"} {
		b.WriteString(cfgpkg.EnvPrefix + k + "=\n")
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	_, err = f.WriteString(b.String())
	return err
}

// preflightCheckOutputDir: 启动前检查输出文件所在目录的可写性。
// 目录存在时尝试创建并删除临时文件；不存在时检查最近的已存在祖先目录。
func preflightCheckOutputDir(dest string) error {
	dir := filepath.Dir(dest)
	for {
		st, err := os.Stat(dir)
		if err == nil {
			if !st.IsDir() {
				return fmt.Errorf("路径存在但不是目录: %s", dir)
			}
			break
		}
		if !os.IsNotExist(err) {
			return err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return fmt.Errorf("无法确定父目录: %s", dir)
		}
		dir = parent
	}
	f, err := os.CreateTemp(dir, ".wcheck-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return nil
}
