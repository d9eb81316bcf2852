package model

// Resolution 是扫描输出的核心结构，描述了一处类型引用的解析结果
type Resolution struct {
	// Reference: 源码中的原始引用
	Reference *TypeReference `json:"Reference"`

	// Candidates: 根据 import / package 推导出的候选全限定名，按尝试顺序排列
	Candidates []string `json:"Candidates,omitempty"`

	// Solved: 是否有解析器给出了 Solved 结果
	Solved bool `json:"Solved"`

	// QualifiedName: 解析得到的点号形式全限定名 (仅 Solved 时)
	QualifiedName string `json:"QualifiedName,omitempty"`

	// BinaryName: 解析得到的二进制名 (仅 Solved 时)
	BinaryName string `json:"BinaryName,omitempty"`

	// Kind: 解析得到的声明种类 (仅 Solved 时)
	Kind ElementKind `json:"Kind,omitempty"`

	// Modifiers: 解析得到的类型修饰符 (声明能提供时)
	Modifiers []string `json:"Modifiers,omitempty"`

	// Solver: 给出结果的解析器名称
	Solver string `json:"Solver,omitempty"`
}
