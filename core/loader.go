package core

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/CodMac/reflect-solver/model"
)

// LoadStatus 是宿主类型加载设施的结果种类，一个封闭集合
type LoadStatus int

const (
	LoadOK              LoadStatus = iota // 加载成功
	LoadNotFound                          // 类型确实不存在 (ClassNotFound)
	LoadLinkageMismatch                   // 大小写不敏感文件系统上的名称冲突 (wrong name)
	LoadUnavailable                       // 加载设施不可用，属于致命配置错误
)

func (s LoadStatus) String() string {
	switch s {
	case LoadOK:
		return "ok"
	case LoadNotFound:
		return "not_found"
	case LoadLinkageMismatch:
		return "linkage_mismatch"
	case LoadUnavailable:
		return "unavailable"
	}
	return fmt.Sprintf("LoadStatus(%d)", int(s))
}

// LoadResult 是一次 Load 调用的结果；仅当 Status == LoadOK 时 Class 非空
type LoadResult struct {
	Status LoadStatus
	Class  *model.ClassInfo
	Detail string
}

func Loaded(class *model.ClassInfo) LoadResult {
	return LoadResult{Status: LoadOK, Class: class}
}

func NotFound(name string) LoadResult {
	return LoadResult{Status: LoadNotFound, Detail: name}
}

// LinkageMismatch 记录请求名与实际找到的名称，例如 "com/x/Foo (wrong name: com/x/foo)"
func LinkageMismatch(requested, actual string) LoadResult {
	return LoadResult{Status: LoadLinkageMismatch, Detail: fmt.Sprintf("%s (wrong name: %s)", requested, actual)}
}

func Unavailable(reason string) LoadResult {
	return LoadResult{Status: LoadUnavailable, Detail: reason}
}

// ClassLoader 是宿主的类型加载设施：按全限定名加载一个已编译的类型
type ClassLoader interface {
	Load(name string) LoadResult
}

// --- 类加载器工厂注册 ---

// LoaderSpec 描述了如何构建一个 ClassLoader
type LoaderSpec struct {
	Path            string // 类索引路径 (jsonl 文件或 badger 目录)
	CaseInsensitive bool   // 是否模拟大小写不敏感的文件系统
}

// LoaderFactory 根据 LoaderSpec 创建 ClassLoader。
// 返回的加载器若实现了 io.Closer，由调用方负责关闭。
type LoaderFactory func(spec LoaderSpec, logger *slog.Logger) (ClassLoader, error)

var (
	loaderFactoryMap = make(map[string]LoaderFactory)
	loaderFactoryMu  sync.RWMutex
)

// RegisterLoaderFactory 注册一种类加载器 (platform / jsonl / badger)
func RegisterLoaderFactory(kind string, factory LoaderFactory) {
	loaderFactoryMu.Lock()
	defer loaderFactoryMu.Unlock()
	loaderFactoryMap[kind] = factory
}

// NewLoader 根据种类创建类加载器
func NewLoader(kind string, spec LoaderSpec, logger *slog.Logger) (ClassLoader, error) {
	loaderFactoryMu.RLock()
	factory, ok := loaderFactoryMap[kind]
	loaderFactoryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no class loader registered for kind: %s", kind)
	}
	return factory(spec, logger)
}

// HasLoaderFactory 判断某种类加载器是否已注册
func HasLoaderFactory(kind string) bool {
	loaderFactoryMu.RLock()
	defer loaderFactoryMu.RUnlock()
	_, ok := loaderFactoryMap[kind]
	return ok
}
