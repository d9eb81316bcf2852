package java

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/CodMac/reflect-solver/core"
	"github.com/CodMac/reflect-solver/model"
)

// ReflectionTypeSolver 通过宿主已加载的类型元数据解析类型，不需要源码。
//
// 它是解析链中的一个叶子：只回答自己的 TryToSolveType，递归查找时使用链的根。
// 除了构造时确定的字段和一次性设置的父节点外没有可变状态，也不做缓存，
// 可以被多个 goroutine 并发调用。
type ReflectionTypeSolver struct {
	core.Node

	name    string
	jreOnly bool
	loader  core.ClassLoader
	factory core.DeclarationFactory
	logger  *slog.Logger
}

type Option func(*ReflectionTypeSolver)

func WithClassLoader(loader core.ClassLoader) Option {
	return func(s *ReflectionTypeSolver) { s.loader = loader }
}

func WithDeclarationFactory(factory core.DeclarationFactory) Option {
	return func(s *ReflectionTypeSolver) { s.factory = factory }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *ReflectionTypeSolver) { s.logger = logger }
}

func WithName(name string) Option {
	return func(s *ReflectionTypeSolver) { s.name = name }
}

// WithParent 在构造时注入父节点，之后不能再调用 SetParent
func WithParent(parent core.TypeSolver) Option {
	return func(s *ReflectionTypeSolver) {
		if parent != nil {
			_ = s.SetParent(parent)
		}
	}
}

// NewReflectionTypeSolver 创建解析器。jreOnly 为 true 时只解析 java. / javax. 下的类型。
// 未提供 DeclarationFactory 时使用基于同一加载器的 ReflectionFactory。
func NewReflectionTypeSolver(jreOnly bool, opts ...Option) *ReflectionTypeSolver {
	s := &ReflectionTypeSolver{name: "reflection", jreOnly: jreOnly}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.factory == nil && s.loader != nil {
		s.factory = NewReflectionFactory(s.loader)
	}
	return s
}

// NewPlatformTypeSolver 只解析当前运行平台 (JRE) 的类型
func NewPlatformTypeSolver(opts ...Option) *ReflectionTypeSolver {
	opts = append([]Option{WithClassLoader(PlatformClassLoader()), WithName("jre")}, opts...)
	return NewReflectionTypeSolver(true, opts...)
}

func (s *ReflectionTypeSolver) Name() string { return s.name }

func (s *ReflectionTypeSolver) JreOnly() bool { return s.jreOnly }

func (s *ReflectionTypeSolver) TryToSolveType(name string) (model.SymbolReference[core.ReferenceTypeDeclaration], error) {
	s.MarkInUse()
	if s.jreOnly && !IsPlatformName(name) {
		return core.Unsolved(), nil
	}
	if s.loader == nil || s.factory == nil {
		return core.Unsolved(), fmt.Errorf("%w: %s was created without a usable class loader", core.ErrLoaderUnavailable, s.name)
	}

	res := s.loader.Load(name)
	switch res.Status {
	case core.LoadOK:
		root, err := s.Root(s)
		if err != nil {
			return core.Unsolved(), err
		}
		decl, err := s.factory.TypeDeclarationFor(res.Class, root)
		if err != nil {
			return core.Unsolved(), fmt.Errorf("declaration for %s: %w", res.Class.BinaryName, err)
		}
		return core.Solved(decl), nil

	case core.LoadLinkageMismatch:
		// 大小写冲突 (e.g. ConcreteSyntaxModel vs concretesyntaxmodel) 不可能是合法的内部类，直接视为未解析
		s.logger.Debug("class name collides case-insensitively",
			slog.String("solver", s.name),
			slog.String("name", name),
			slog.String("detail", res.Detail))
		return core.Unsolved(), nil

	case core.LoadNotFound:
		return s.solveAsMemberType(name)

	default:
		return core.Unsolved(), fmt.Errorf("%w: %s: %s", core.ErrLoaderUnavailable, s.name, res.Detail)
	}
}

// solveAsMemberType 把最后一段当作内部类名：先解析前缀，再在其内部类型中按短名称查找
func (s *ReflectionTypeSolver) solveAsMemberType(name string) (model.SymbolReference[core.ReferenceTypeDeclaration], error) {
	lastDot := strings.LastIndex(name, model.PackageSeparator)
	if lastDot == -1 {
		return core.Unsolved(), nil
	}
	parentName, childName := name[:lastDot], name[lastDot+1:]

	parentRef, err := s.TryToSolveType(parentName)
	if err != nil {
		return core.Unsolved(), err
	}
	parent, ok := parentRef.Declaration()
	if !ok {
		return core.Unsolved(), nil
	}

	internals, err := parent.InternalTypes()
	if err != nil {
		return core.Unsolved(), err
	}
	for _, inner := range internals {
		if inner.Name() == childName {
			return core.Solved(inner), nil
		}
	}
	return core.Unsolved(), nil
}
