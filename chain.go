package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/CodMac/reflect-solver/config"
	"github.com/CodMac/reflect-solver/core"
	"github.com/CodMac/reflect-solver/x/java"
)

// buildChain 按配置顺序构建解析链。返回的 closer 释放所有持有资源的加载器 (如 badger)
func buildChain(cfg *config.Config, logger *slog.Logger) (*core.CombinedTypeSolver, func() error, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var closers []io.Closer
	closeAll := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i].Close(); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	chain, err := core.NewCombinedTypeSolver(logger)
	if err != nil {
		return nil, nil, err
	}

	for _, sc := range cfg.Solvers {
		if sc.Type != config.SolverTypeReflection {
			_ = closeAll()
			return nil, nil, fmt.Errorf("solver %s: unsupported type %q", sc.Name, sc.Type)
		}

		loader, err := core.NewLoader(sc.Loader, core.LoaderSpec{Path: sc.Path, CaseInsensitive: sc.CaseInsensitive}, logger)
		if err != nil {
			_ = closeAll()
			return nil, nil, fmt.Errorf("solver %s: %w", sc.Name, err)
		}
		if c, ok := loader.(io.Closer); ok {
			closers = append(closers, c)
		}

		solver := java.NewReflectionTypeSolver(sc.JreOnly,
			java.WithClassLoader(loader),
			java.WithName(sc.Name),
			java.WithLogger(logger.With(slog.String("solver", sc.Name))),
		)
		if err := chain.Add(solver); err != nil {
			_ = closeAll()
			return nil, nil, err
		}
		logger.Debug("solver wired",
			slog.String("solver", sc.Name),
			slog.String("loader", sc.Loader),
			slog.Bool("jreOnly", sc.JreOnly))
	}

	return chain, closeAll, nil
}
