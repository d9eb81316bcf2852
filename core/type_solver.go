package core

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/CodMac/reflect-solver/model"
)

var (
	// ErrLoaderUnavailable 类加载设施不可用。这是致命配置错误，不能降级为 Unsolved
	ErrLoaderUnavailable = errors.New("class loader unavailable")
	// ErrParentAlreadySet 父节点只能设置一次
	ErrParentAlreadySet = errors.New("type solver parent already set")
	// ErrParentSetAfterUse 节点已参与解析后不允许再设置父节点
	ErrParentSetAfterUse = errors.New("type solver parent set after first resolution")
	// ErrParentCycle 父节点链存在环，无法确定根
	ErrParentCycle = errors.New("type solver parent chain contains a cycle")
	// ErrNilSolver 传入了空的解析器
	ErrNilSolver = errors.New("nil type solver")
)

// TypeSolver 是解析链中每个节点都要满足的契约。
//
// TryToSolveType 对 "找不到" 返回 Unsolved 结果而不是错误；
// 非空 error 只表示致命问题 (如 ErrLoaderUnavailable)，调用方必须向上传播。
type TypeSolver interface {
	TryToSolveType(name string) (model.SymbolReference[ReferenceTypeDeclaration], error)

	// Parent 返回父节点，没有则返回 nil
	Parent() TypeSolver

	// SetParent 设置父节点。只能在任何并发解析开始之前调用一次
	SetParent(parent TypeSolver) error
}

// Unsolved 是 TypeSolver 的 "找不到" 结果
func Unsolved() model.SymbolReference[ReferenceTypeDeclaration] {
	return model.Unsolved[ReferenceTypeDeclaration](model.ReferenceType)
}

// Solved 包装一个声明句柄
func Solved(decl ReferenceTypeDeclaration) model.SymbolReference[ReferenceTypeDeclaration] {
	return model.Solved(decl, model.ReferenceType)
}

// nodeState 把父节点与封存标记放在同一个原子值里，SetParent 与首次解析之间的竞争只有一个赢家
type nodeState struct {
	parent TypeSolver
	sealed bool
}

// Node 实现了父节点链接，供各解析器嵌入使用。
//
// 父节点是非拥有的关联，只用于确定根；生命周期由持有所有节点的解析链负责。
// 链接只能设置一次 (构造时注入或之后调用一次 SetParent)，且必须发生在节点第一次
// 参与解析之前。违反约束会返回错误而不是被静默接受。
type Node struct {
	state atomic.Pointer[nodeState]
}

func (n *Node) Parent() TypeSolver {
	st := n.state.Load()
	if st == nil {
		return nil
	}
	return st.parent
}

func (n *Node) SetParent(parent TypeSolver) error {
	if parent == nil {
		return ErrNilSolver
	}
	for {
		cur := n.state.Load()
		if cur != nil && cur.sealed {
			return ErrParentSetAfterUse
		}
		if cur != nil && cur.parent != nil {
			return ErrParentAlreadySet
		}
		if n.state.CompareAndSwap(cur, &nodeState{parent: parent}) {
			return nil
		}
	}
}

// MarkInUse 封存节点。解析器在 TryToSolveType 的第一步调用它，
// 此后 (包括解析仍在进行时) SetParent 返回 ErrParentSetAfterUse
func (n *Node) MarkInUse() {
	for {
		cur := n.state.Load()
		if cur != nil && cur.sealed {
			return
		}
		next := &nodeState{sealed: true}
		if cur != nil {
			next.parent = cur.parent
		}
		if n.state.CompareAndSwap(cur, next) {
			return
		}
	}
}

// InUse 报告节点是否已被封存
func (n *Node) InUse() bool {
	st := n.state.Load()
	return st != nil && st.sealed
}

// Root 沿父节点链向上查找没有父节点的祖先；self 是嵌入 Node 的解析器本身。
// 调用后节点被封存。
func (n *Node) Root(self TypeSolver) (TypeSolver, error) {
	n.MarkInUse()

	seen := map[TypeSolver]struct{}{self: {}}
	current := self
	for {
		parent := current.Parent()
		if parent == nil {
			return current, nil
		}
		if _, ok := seen[parent]; ok {
			return nil, fmt.Errorf("%w: %s", ErrParentCycle, SolverName(parent))
		}
		seen[parent] = struct{}{}
		current = parent
	}
}

// SolverName 返回解析器的展示名称，用于日志与指标标签
func SolverName(solver TypeSolver) string {
	if named, ok := solver.(interface{ Name() string }); ok {
		return named.Name()
	}
	return fmt.Sprintf("%T", solver)
}
