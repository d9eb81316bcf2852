package core

import (
	"fmt"

	"github.com/CodMac/reflect-solver/model"
)

// --- 语言特有的符号限定接口 ---

type SymbolResolver interface {
	// BuildQualifiedName 根据父节点和当前名构建 QN
	// (Java 用 ".", C++ 用 "::")
	BuildQualifiedName(parentQN, name string) string

	// CandidateNames 把源码中的类型写法转换为有序的候选全限定名：处理导入、同包、通配符等逻辑。
	// 解析链按顺序尝试，第一个 Solved 结果胜出。
	CandidateNames(fc *FileContext, ref *model.TypeReference) []string
}

var symbolResolverMap = make(map[Language]SymbolResolver)

// RegisterSymbolResolver 注册一个语言与其对应的 SymbolResolver。
func RegisterSymbolResolver(lang Language, resolver SymbolResolver) {
	symbolResolverMap[lang] = resolver
}

// GetSymbolResolver 根据语言类型获取对应的 SymbolResolver 实例。
func GetSymbolResolver(lang Language) (SymbolResolver, error) {
	resolver, ok := symbolResolverMap[lang]
	if !ok {
		return nil, fmt.Errorf("no SymbolResolver for language: %s", lang)
	}

	return resolver, nil
}
