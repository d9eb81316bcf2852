package model

import (
	"errors"
	"fmt"
)

// Capability 表示调用方请求的声明能力，Unsolved 结果会携带它
type Capability string

const (
	// ReferenceType 请求一个引用类型声明 (类/接口/枚举/注解/记录)
	ReferenceType Capability = "ReferenceTypeDeclaration"
)

// ErrUnsolvedSymbol 在向未解析的引用索取声明时返回
var ErrUnsolvedSymbol = errors.New("unsolved symbol")

// SymbolReference 是一次解析的结果：Solved(声明) 或 Unsolved(请求的能力)。
// "找不到" 是数据而不是错误，解析链可以据此低成本地尝试下一个解析器。
type SymbolReference[T any] struct {
	declaration T
	solved      bool
	requested   Capability
}

// Solved 构建一个已解析的引用
func Solved[T any](decl T, requested Capability) SymbolReference[T] {
	return SymbolReference[T]{declaration: decl, solved: true, requested: requested}
}

// Unsolved 构建一个未解析的引用
func Unsolved[T any](requested Capability) SymbolReference[T] {
	return SymbolReference[T]{requested: requested}
}

func (r SymbolReference[T]) IsSolved() bool { return r.solved }

// RequestedCapability 返回调用方最初请求的能力
func (r SymbolReference[T]) RequestedCapability() Capability { return r.requested }

// Declaration 返回声明；未解析时第二个返回值为 false
func (r SymbolReference[T]) Declaration() (T, bool) {
	return r.declaration, r.solved
}

// CorrespondingDeclaration 返回声明；未解析时返回 ErrUnsolvedSymbol
func (r SymbolReference[T]) CorrespondingDeclaration() (T, error) {
	if !r.solved {
		var zero T
		return zero, fmt.Errorf("%w: requested %s", ErrUnsolvedSymbol, r.requested)
	}
	return r.declaration, nil
}

func (r SymbolReference[T]) String() string {
	if !r.solved {
		return fmt.Sprintf("Unsolved{%s}", r.requested)
	}
	return fmt.Sprintf("Solved{%v}", r.declaration)
}
