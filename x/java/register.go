package java

import (
	"log/slog"

	"github.com/CodMac/reflect-solver/core"
)

// LoaderPlatform 是平台类加载器在配置中的种类名
const LoaderPlatform = "platform"

func init() {
	core.RegisterCollector(core.LangJava, NewJavaCollector())
	core.RegisterSymbolResolver(core.LangJava, NewJavaSymbolResolver())
	core.RegisterNoiseFilter(core.LangJava, NewJavaNoiseFilter(core.LevelBalanced))
	core.RegisterLoaderFactory(LoaderPlatform, func(spec core.LoaderSpec, _ *slog.Logger) (core.ClassLoader, error) {
		return PlatformClassLoader(), nil
	})
}
