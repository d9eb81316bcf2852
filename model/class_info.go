package model

import "strings"

const (
	// PackageSeparator 包名与类名之间的分隔符
	PackageSeparator = "."
	// NestedSeparator 二进制名中外部类与内部类之间的分隔符 (e.g., java.util.Map$Entry)
	NestedSeparator = "$"
)

// ClassInfo 是宿主类型加载设施返回的原始类型句柄（相当于已加载类的元数据），
// 也是类索引 (JSONL / Badger) 中的一条记录。
type ClassInfo struct {
	BinaryName     string      `json:"BinaryName"`               // BinaryName: 二进制名 (e.g., "java.util.Map$Entry")
	Kind           ElementKind `json:"Kind"`                     // Kind: 声明种类
	Modifiers      []string    `json:"Modifiers,omitempty"`      // Modifiers: 修饰符 (e.g., "public", "static", "abstract")
	SuperClass     string      `json:"SuperClass,omitempty"`     // SuperClass: 父类二进制名
	Interfaces     []string    `json:"Interfaces,omitempty"`     // Interfaces: 实现/继承的接口二进制名
	DeclaredTypes  []string    `json:"DeclaredTypes,omitempty"`  // DeclaredTypes: 直接声明的内部类二进制名
	ArtifactSource string      `json:"ArtifactSource,omitempty"` // ArtifactSource: 来源 (jar / jmod 路径)，仅用于展示
}

// PackageName 返回二进制名中的包部分
func (c *ClassInfo) PackageName() string {
	idx := strings.LastIndex(c.BinaryName, PackageSeparator)
	if idx == -1 {
		return ""
	}
	return c.BinaryName[:idx]
}

// SimpleName 返回类的短名称，内部类只取最后一段 (Map$Entry -> Entry)
func (c *ClassInfo) SimpleName() string {
	name := c.BinaryName
	if idx := strings.LastIndex(name, PackageSeparator); idx != -1 {
		name = name[idx+1:]
	}
	if idx := strings.LastIndex(name, NestedSeparator); idx != -1 {
		name = name[idx+1:]
	}
	return name
}

// CanonicalName 返回点号形式的全限定名 (java.util.Map$Entry -> java.util.Map.Entry)
func (c *ClassInfo) CanonicalName() string {
	return BinaryToCanonical(c.BinaryName)
}

// IsNested 判断是否为内部类
func (c *ClassInfo) IsNested() bool {
	pkg := c.PackageName()
	return strings.Contains(c.BinaryName[len(pkg):], NestedSeparator)
}

// BinaryToCanonical 将二进制名中的 '$' 替换为 '.'
func BinaryToCanonical(binaryName string) string {
	return strings.ReplaceAll(binaryName, NestedSeparator, PackageSeparator)
}
