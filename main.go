package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/CodMac/reflect-solver/classpath"
	"github.com/CodMac/reflect-solver/config"
	"github.com/CodMac/reflect-solver/core"
	"github.com/CodMac/reflect-solver/model"
	"github.com/CodMac/reflect-solver/output"
	"github.com/spf13/cobra"
)

const (
	MaxMermaidNodes = 200
	MaxMermaidEdges = 400
)

type rootOptions struct {
	ConfigPath string
	Verbose    bool
}

type scanOptions struct {
	SourcePath string
	Filter     string
	Jobs       int
	OutDir     string
	Format     string
	Level      int
}

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		exitWithError("执行失败", err)
	}
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "reflect-solver",
		Short:         "通过已编译的类元数据解析 Java 类型名",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "YAML 配置文件路径")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "输出调试日志")

	cmd.AddCommand(newResolveCommand(opts), newScanCommand(opts), newIndexCommand(opts))
	return cmd
}

func (o *rootOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.ConfigPath == "" {
		return config.Default(), nil
	}
	return config.Load(o.ConfigPath)
}

func newResolveCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve NAME...",
		Short: "通过解析链解析全限定类型名",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := root.logger(cmd.ErrOrStderr())
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			chain, closeChain, err := buildChain(cfg, logger)
			if err != nil {
				return err
			}
			defer closeChain()

			return resolveNames(cmd.OutOrStdout(), chain, args)
		},
	}
}

// resolveNames 逐个解析并打印结果；只有致命错误才会中止
func resolveNames(w io.Writer, chain *core.CombinedTypeSolver, names []string) error {
	for _, name := range names {
		ref, source, err := chain.SolveWithSource(name)
		if err != nil {
			return err
		}
		decl, ok := ref.Declaration()
		if !ok {
			fmt.Fprintf(w, "UNSOLVED %s\n", name)
			continue
		}
		fmt.Fprintf(w, "SOLVED %s (%s) via %s\n", decl.QualifiedName(), decl.Kind(), core.SolverName(source))
	}
	return nil
}

func newScanCommand(root *rootOptions) *cobra.Command {
	opts := &scanOptions{}
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "扫描 Java 源码中的类型引用并通过解析链解析",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			applyScanFlags(cmd, cfg, opts)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runScan(cmd.Context(), cmd.ErrOrStderr(), root.logger(cmd.ErrOrStderr()), cfg, opts)
		},
	}
	cmd.Flags().StringVar(&opts.SourcePath, "path", ".", "源码根路径")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "文件过滤正则")
	cmd.Flags().IntVar(&opts.Jobs, "jobs", 4, "并发数")
	cmd.Flags().StringVar(&opts.OutDir, "out-dir", "./output", "输出目录")
	cmd.Flags().StringVar(&opts.Format, "format", "jsonl", "格式: jsonl, mermaid")
	cmd.Flags().IntVar(&opts.Level, "level", 1, "过滤等级: 0(Raw), 1(Balanced), 2(Pure)")
	return cmd
}

// applyScanFlags 命令行显式给出的参数覆盖配置文件
func applyScanFlags(cmd *cobra.Command, cfg *config.Config, opts *scanOptions) {
	flags := cmd.Flags()
	if flags.Changed("jobs") || cfg.Scan.Jobs <= 0 {
		cfg.Scan.Jobs = opts.Jobs
	}
	if flags.Changed("out-dir") || cfg.Scan.OutDir == "" {
		cfg.Scan.OutDir = opts.OutDir
	}
	if flags.Changed("format") || cfg.Scan.Format == "" {
		cfg.Scan.Format = opts.Format
	}
	if flags.Changed("level") {
		cfg.Scan.Level = opts.Level
	}
	if flags.Changed("filter") {
		cfg.Scan.Filter = opts.Filter
	}
}

func runScan(ctx context.Context, progress io.Writer, logger *slog.Logger, cfg *config.Config, opts *scanOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	startTime := time.Now()

	// 1. 扫描文件
	fmt.Fprintf(progress, "[1/4] 🔍 正在扫描目录: %s\n", opts.SourcePath)
	files, err := scanFiles(opts.SourcePath, cfg.Scan.Filter, cfg.Scan.Lang)
	if err != nil {
		return fmt.Errorf("扫描文件失败: %w", err)
	}
	fmt.Fprintf(progress, "    找到 %d 个候选文件\n", len(files))

	chain, closeChain, err := buildChain(cfg, logger)
	if err != nil {
		return err
	}
	defer closeChain()

	// 2. 收集引用并通过解析链解析 (内部会自动进行 NoiseFilter)
	fmt.Fprintf(progress, "[2/4] ⚙️  正在解析类型引用 (Level: %d, 解析器: %d)...\n", cfg.Scan.Level, len(chain.Elements()))
	proc := NewFileProcessor(
		core.Language(cfg.Scan.Lang),
		cfg.Scan.Jobs,
		core.FilterLevel(cfg.Scan.Level),
		chain,
		logger,
	)
	resolutions, err := proc.ProcessFiles(ctx, opts.SourcePath, files)
	if err != nil {
		return fmt.Errorf("分析执行失败: %w", err)
	}

	// 3. 执行导出逻辑
	fmt.Fprintf(progress, "[3/4] 💾 正在写入结果文件...\n")
	path, nodes, edges, err := runExport(progress, cfg, resolutions)
	if err != nil {
		return fmt.Errorf("导出失败: %w", err)
	}

	fmt.Fprintf(progress, "    ✅ 完成: %s (记录/节点=%d, 边=%d)\n", path, nodes, edges)
	fmt.Fprintf(progress, "\n[4/4] ✨ 分析结束! 总耗时: %v\n", time.Since(startTime).Round(time.Millisecond))
	return nil
}

func runExport(progress io.Writer, cfg *config.Config, resolutions []*model.Resolution) (string, int, int, error) {
	format := cfg.Scan.Format
	if format == config.FormatMermaid && len(resolutions) > MaxMermaidEdges {
		fmt.Fprintf(progress, "    ⚠️  规模过大(%d 条引用)，Mermaid 渲染可能失败，自动降级为 jsonl\n", len(resolutions))
		format = config.FormatJSONL
	}

	exporter := output.NewExporter(cfg.Scan.OutDir, output.OutType(format))
	path, nodes, edges, err := exporter.Export(resolutions)
	if err == nil && format == config.FormatMermaid && nodes > MaxMermaidNodes {
		fmt.Fprintf(progress, "    ⚠️  节点数 %d 超过 %d，浏览器渲染可能较慢\n", nodes, MaxMermaidNodes)
	}
	return path, nodes, edges, err
}

func newIndexCommand(root *rootOptions) *cobra.Command {
	index := &cobra.Command{
		Use:   "index",
		Short: "管理持久化的类索引",
	}

	var from, db string
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "把 JSONL 类索引导入 badger 存储",
		RunE: func(cmd *cobra.Command, args []string) error {
			return importIndex(cmd.ErrOrStderr(), root.logger(cmd.ErrOrStderr()), from, db)
		},
	}
	importCmd.Flags().StringVar(&from, "from", "", "JSONL 类索引文件")
	importCmd.Flags().StringVar(&db, "db", "", "badger 数据目录")
	_ = importCmd.MarkFlagRequired("from")
	_ = importCmd.MarkFlagRequired("db")

	index.AddCommand(importCmd)
	return index
}

func importIndex(progress io.Writer, logger *slog.Logger, from, db string) error {
	classes, err := classpath.LoadJSONLFile(from)
	if err != nil {
		return err
	}
	store, err := classpath.Open(db, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Put(classes...); err != nil {
		return err
	}
	total, err := store.Count()
	if err != nil {
		return err
	}
	fmt.Fprintf(progress, "✅ 导入 %d 个类，索引中共 %d 个\n", len(classes), total)
	return nil
}

func scanFiles(root, filter, lang string) ([]string, error) {
	if filter == "" {
		filter = fmt.Sprintf(`.*\.%s$`, lang)
	}
	re, err := regexp.Compile(filter)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() && re.MatchString(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func exitWithError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "❌ %s: %v\n", msg, err)
	os.Exit(1)
}
