package classpath

import (
	"log/slog"

	"github.com/CodMac/reflect-solver/core"
	"github.com/pkg/errors"
)

const (
	LoaderJSONL  = "jsonl"
	LoaderBadger = "badger"
)

func init() {
	core.RegisterLoaderFactory(LoaderJSONL, func(spec core.LoaderSpec, _ *slog.Logger) (core.ClassLoader, error) {
		if spec.Path == "" {
			return nil, errors.New("jsonl class loader requires a path")
		}
		loader, err := NewJSONLLoader(spec.Path, spec.CaseInsensitive)
		if err != nil {
			return nil, err
		}
		return loader, nil
	})
	core.RegisterLoaderFactory(LoaderBadger, func(spec core.LoaderSpec, logger *slog.Logger) (core.ClassLoader, error) {
		if spec.Path == "" {
			return nil, errors.New("badger class loader requires a path")
		}
		store, err := Open(spec.Path, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	})
}
