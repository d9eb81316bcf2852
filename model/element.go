package model

// --- 类型声明种类 (Type Declaration Kinds) ---

// ElementKind 是表示类型声明种类的字符串常量
type ElementKind string

const (
	Class       ElementKind = "CLASS"      // 类
	Interface   ElementKind = "INTERFACE"  // 接口
	Enum        ElementKind = "ENUM"       // 枚举
	KAnnotation ElementKind = "ANNOTATION" // 注解类型 (@interface)
	Record      ElementKind = "RECORD"     // 记录类 (Java 16+)
	Unknown     ElementKind = "UNKNOWN"    // 未知类型
)

// IsType 判断 kind 是否为可被类型解析器返回的引用类型
func (k ElementKind) IsType() bool {
	switch k {
	case Class, Interface, Enum, KAnnotation, Record:
		return true
	}
	return false
}

// Location 描述了类型引用在源码中的位置
type Location struct {
	FilePath    string `json:"FilePath"`
	StartLine   int    `json:"StartLine"`
	EndLine     int    `json:"EndLine"`
	StartColumn int    `json:"StartColumn"`
	EndColumn   int    `json:"EndColumn"`
}

// TypeReference 描述了源码中出现的一处类型名引用（尚未解析）
type TypeReference struct {
	Name     string    `json:"Name"`               // Name: 源码中的原始写法 (e.g., "List", "Map.Entry", "java.util.List")
	FilePath string    `json:"FilePath"`           // FilePath: 所在文件 (相对于项目根目录)
	Location *Location `json:"Location,omitempty"` // Location: 引用位置
}
