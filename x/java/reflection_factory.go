package java

import (
	"fmt"
	"slices"

	"github.com/CodMac/reflect-solver/core"
	"github.com/CodMac/reflect-solver/model"
)

// ReflectionFactory 是默认的 DeclarationFactory：把 ClassInfo 包装为 ReflectionClassDeclaration
type ReflectionFactory struct {
	loader core.ClassLoader
}

func NewReflectionFactory(loader core.ClassLoader) *ReflectionFactory {
	return &ReflectionFactory{loader: loader}
}

func (f *ReflectionFactory) TypeDeclarationFor(class *model.ClassInfo, root core.TypeSolver) (core.ReferenceTypeDeclaration, error) {
	if class == nil {
		return nil, fmt.Errorf("nil class info")
	}
	if root == nil {
		return nil, core.ErrNilSolver
	}
	kind := class.Kind
	if kind == "" {
		kind = model.Class
	}
	if !kind.IsType() {
		return nil, fmt.Errorf("%s is not a reference type (kind %s)", class.BinaryName, kind)
	}
	return &ReflectionClassDeclaration{class: class, kind: kind, root: root, factory: f}, nil
}

// ReflectionClassDeclaration 是基于已加载类型元数据的声明句柄
type ReflectionClassDeclaration struct {
	class   *model.ClassInfo
	kind    model.ElementKind
	root    core.TypeSolver
	factory *ReflectionFactory
}

func (d *ReflectionClassDeclaration) Name() string            { return d.class.SimpleName() }
func (d *ReflectionClassDeclaration) QualifiedName() string   { return d.class.CanonicalName() }
func (d *ReflectionClassDeclaration) BinaryName() string      { return d.class.BinaryName }
func (d *ReflectionClassDeclaration) PackageName() string     { return d.class.PackageName() }
func (d *ReflectionClassDeclaration) Kind() model.ElementKind { return d.kind }
func (d *ReflectionClassDeclaration) String() string          { return d.QualifiedName() }

// Root 返回用于解析该声明内部引用的根解析器
func (d *ReflectionClassDeclaration) Root() core.TypeSolver { return d.root }

func (d *ReflectionClassDeclaration) ClassInfo() *model.ClassInfo { return d.class }

// Modifiers 返回类型修饰符的副本 (ClassIsPublic, ClassIsFinal ...)
func (d *ReflectionClassDeclaration) Modifiers() []string {
	return slices.Clone(d.class.Modifiers)
}

// InternalTypes 通过加载器加载直接声明的内部类；找不到的内部类被跳过，加载设施不可用则返回错误
func (d *ReflectionClassDeclaration) InternalTypes() ([]core.ReferenceTypeDeclaration, error) {
	result := make([]core.ReferenceTypeDeclaration, 0, len(d.class.DeclaredTypes))
	for _, nested := range d.class.DeclaredTypes {
		res := d.factory.loader.Load(nested)
		switch res.Status {
		case core.LoadOK:
			decl, err := d.factory.TypeDeclarationFor(res.Class, d.root)
			if err != nil {
				return nil, err
			}
			result = append(result, decl)
		case core.LoadNotFound, core.LoadLinkageMismatch:
			continue
		default:
			return nil, fmt.Errorf("%w: loading member %s of %s: %s", core.ErrLoaderUnavailable, nested, d.class.BinaryName, res.Detail)
		}
	}
	return result, nil
}

// SolveSuperTypes 通过根解析器解析父类与接口，因此会经过整条解析链
func (d *ReflectionClassDeclaration) SolveSuperTypes() ([]model.SymbolReference[core.ReferenceTypeDeclaration], error) {
	var names []string
	if d.class.SuperClass != "" {
		names = append(names, d.class.SuperClass)
	}
	names = append(names, d.class.Interfaces...)

	refs := make([]model.SymbolReference[core.ReferenceTypeDeclaration], 0, len(names))
	for _, n := range names {
		ref, err := d.root.TryToSolveType(model.BinaryToCanonical(n))
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}
