package core

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/CodMac/reflect-solver/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var chainLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "typesolver",
	Subsystem: "chain",
	Name:      "lookups_total",
	Help:      "Type lookups answered by each chain member, by outcome",
}, []string{"solver", "outcome"})

// CombinedTypeSolver 是解析链：按顺序询问各成员，返回第一个 Solved 结果。
// 构造时它把自己设为每个成员的父节点，从而成为成员内部递归查找使用的根。
type CombinedTypeSolver struct {
	Node

	name     string
	mu       sync.RWMutex
	elements []TypeSolver
	logger   *slog.Logger
}

func NewCombinedTypeSolver(logger *slog.Logger, solvers ...TypeSolver) (*CombinedTypeSolver, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &CombinedTypeSolver{name: "combined", logger: logger}
	for _, s := range solvers {
		if err := c.Add(s); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *CombinedTypeSolver) Name() string { return c.name }

// Add 追加一个成员并把链设为它的父节点
func (c *CombinedTypeSolver) Add(solver TypeSolver) error {
	if solver == nil {
		return ErrNilSolver
	}
	if err := solver.SetParent(c); err != nil {
		return fmt.Errorf("wire %s into chain: %w", SolverName(solver), err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.elements = append(c.elements, solver)
	return nil
}

// Elements 返回成员快照
func (c *CombinedTypeSolver) Elements() []TypeSolver {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]TypeSolver(nil), c.elements...)
}

func (c *CombinedTypeSolver) TryToSolveType(name string) (model.SymbolReference[ReferenceTypeDeclaration], error) {
	ref, _, err := c.SolveWithSource(name)
	return ref, err
}

// SolveWithSource 与 TryToSolveType 相同，额外返回给出 Solved 结果的成员
func (c *CombinedTypeSolver) SolveWithSource(name string) (model.SymbolReference[ReferenceTypeDeclaration], TypeSolver, error) {
	c.MarkInUse()
	for _, solver := range c.Elements() {
		label := SolverName(solver)

		ref, err := solver.TryToSolveType(name)
		if err != nil {
			chainLookupsTotal.WithLabelValues(label, "error").Inc()
			return Unsolved(), nil, fmt.Errorf("solver %s on %q: %w", label, name, err)
		}
		if ref.IsSolved() {
			chainLookupsTotal.WithLabelValues(label, "solved").Inc()
			return ref, solver, nil
		}
		chainLookupsTotal.WithLabelValues(label, "unsolved").Inc()
	}

	c.logger.Debug("type unsolved by chain", slog.String("name", name))
	return Unsolved(), nil, nil
}
