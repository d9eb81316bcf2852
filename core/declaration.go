package core

import "github.com/CodMac/reflect-solver/model"

// ReferenceTypeDeclaration 是已解析类型的声明句柄，结构细节由声明模型负责
type ReferenceTypeDeclaration interface {
	// Name 短名称 (内部类只取最后一段)
	Name() string
	// QualifiedName 点号形式的全限定名
	QualifiedName() string
	// BinaryName 二进制名 (内部类以 '$' 分隔)
	BinaryName() string
	PackageName() string
	Kind() model.ElementKind
	// InternalTypes 直接声明的内部类型。仅当加载设施不可用时返回错误
	InternalTypes() ([]ReferenceTypeDeclaration, error)
}

// DeclarationFactory 将加载得到的原始类型句柄包装为声明句柄。
// root 是解析链的根，声明用它解析自身内部引用 (父类、接口等)。
type DeclarationFactory interface {
	TypeDeclarationFor(class *model.ClassInfo, root TypeSolver) (ReferenceTypeDeclaration, error)
}
