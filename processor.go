package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/CodMac/reflect-solver/core"
	"github.com/CodMac/reflect-solver/model"
	"github.com/CodMac/reflect-solver/parser"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const tracerName = "github.com/CodMac/reflect-solver"

type FileProcessor struct {
	Language    core.Language
	Concurrency int
	FilterLevel core.FilterLevel
	Chain       *core.CombinedTypeSolver
	Logger      *slog.Logger
}

func NewFileProcessor(lang core.Language, concurrency int, filterLevel core.FilterLevel, chain *core.CombinedTypeSolver, logger *slog.Logger) *FileProcessor {
	if concurrency <= 0 {
		concurrency = 4
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileProcessor{
		Language:    lang,
		Concurrency: concurrency,
		FilterLevel: filterLevel,
		Chain:       chain,
		Logger:      logger,
	}
}

func (fp *FileProcessor) ProcessFiles(ctx context.Context, rootPath string, filePaths []string) ([]*model.Resolution, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "processor.FileProcessor.ProcessFiles",
		trace.WithAttributes(
			attribute.String("lang", string(fp.Language)),
			attribute.Int("files", len(filePaths)),
			attribute.Int("jobs", fp.Concurrency),
		),
	)
	defer span.End()

	if fp.Chain == nil {
		return nil, fmt.Errorf("file processor: %w", core.ErrNilSolver)
	}
	collector, err := core.GetCollector(fp.Language)
	if err != nil {
		return nil, err
	}
	resolver, err := core.GetSymbolResolver(fp.Language)
	if err != nil {
		return nil, err
	}
	absRoot, _ := filepath.Abs(rootPath)

	var (
		mu      sync.Mutex
		results []*model.Resolution
	)

	// --- 阶段 1: 并行收集引用并逐个解析 ---
	err = fp.runParallel(ctx, filePaths, func(path string, p *parser.TreeSitterParser) error {
		root, source, err := p.ParseFile(path)
		if err != nil {
			return err
		}

		relPath := path
		if absPath, err := filepath.Abs(path); err == nil {
			if rPath, err := filepath.Rel(absRoot, absPath); err == nil {
				relPath = rPath
			}
		}

		fCtx, err := collector.CollectReferences(root, relPath, source)
		if err != nil {
			return err
		}

		resolved := make([]*model.Resolution, 0, len(fCtx.References))
		for _, ref := range fCtx.References {
			res, err := fp.resolveReference(resolver, fCtx, ref)
			if err != nil {
				return err
			}
			resolved = append(resolved, res)
		}

		mu.Lock()
		defer mu.Unlock()
		results = append(results, resolved...)
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "process files")
		return nil, err
	}

	// --- 阶段 2: 噪音过滤 ---
	filtered := fp.filterNoise(results)

	solved := 0
	for _, res := range results {
		if res.Solved {
			solved++
		}
	}
	span.SetAttributes(
		attribute.Int("references", len(results)),
		attribute.Int("references.solved", solved),
		attribute.Int("references.kept", len(filtered)),
	)
	fp.Logger.Info("files processed",
		slog.Int("files", len(filePaths)),
		slog.Int("references", len(results)),
		slog.Int("solved", solved),
		slog.Int("kept", len(filtered)))

	return filtered, nil
}

// resolveReference 依次尝试候选名，第一个被解析链解出的候选即为结果。
// 致命错误 (如类加载器不可用) 立即中止整个扫描。
func (fp *FileProcessor) resolveReference(resolver core.SymbolResolver, fCtx *core.FileContext, ref *model.TypeReference) (*model.Resolution, error) {
	res := &model.Resolution{
		Reference:  ref,
		Candidates: resolver.CandidateNames(fCtx, ref),
	}
	for _, candidate := range res.Candidates {
		sym, source, err := fp.Chain.SolveWithSource(candidate)
		if err != nil {
			return nil, fmt.Errorf("resolve %s at %s: %w", ref.Name, ref.FilePath, err)
		}
		decl, ok := sym.Declaration()
		if !ok {
			continue
		}
		res.Solved = true
		res.QualifiedName = decl.QualifiedName()
		res.BinaryName = decl.BinaryName()
		res.Kind = decl.Kind()
		if m, ok := decl.(interface{ Modifiers() []string }); ok {
			res.Modifiers = m.Modifiers()
		}
		res.Solver = core.SolverName(source)
		break
	}
	return res, nil
}

// filterNoise 调用语言特定的过滤器进行数据清洗
func (fp *FileProcessor) filterNoise(results []*model.Resolution) []*model.Resolution {
	if fp.FilterLevel == core.LevelRaw {
		return results
	}

	filter := core.GetNoiseFilter(fp.Language)
	filter.SetLevel(fp.FilterLevel)

	kept := make([]*model.Resolution, 0, len(results))
	for _, res := range results {
		if !filter.IsNoise(*res) {
			kept = append(kept, res)
		}
	}
	return kept
}

// runParallel 启动 Concurrency 个 worker，每个 worker 持有自己的解析器；
// 任一任务失败时取消其余任务并返回第一个错误
func (fp *FileProcessor) runParallel(ctx context.Context, paths []string, task func(string, *parser.TreeSitterParser) error) error {
	g, ctx := errgroup.WithContext(ctx)

	pathChan := make(chan string)
	g.Go(func() error {
		defer close(pathChan)
		for _, p := range paths {
			select {
			case pathChan <- p:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < fp.Concurrency; i++ {
		g.Go(func() error {
			p, err := parser.NewParser(fp.Language)
			if err != nil {
				return err
			}
			defer p.Close()

			for path := range pathChan {
				if err := task(path, p); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
