package core_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/CodMac/reflect-solver/core"
	"github.com/CodMac/reflect-solver/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDecl 是最小的声明句柄
type stubDecl struct{ qn string }

func (d stubDecl) Name() string            { return d.qn }
func (d stubDecl) QualifiedName() string   { return d.qn }
func (d stubDecl) BinaryName() string      { return d.qn }
func (d stubDecl) PackageName() string     { return "" }
func (d stubDecl) Kind() model.ElementKind { return model.Class }

func (d stubDecl) InternalTypes() ([]core.ReferenceTypeDeclaration, error) {
	return nil, nil
}

// stubSolver 只认识 known 中的名字；err 非空时所有查询都返回该错误
type stubSolver struct {
	core.Node
	name  string
	known map[string]bool
	err   error
	calls atomic.Int64

	// entered/release 非空时，解析在封存后停下等待 release
	entered chan struct{}
	release chan struct{}
}

func newStub(name string, known ...string) *stubSolver {
	s := &stubSolver{name: name, known: map[string]bool{}}
	for _, k := range known {
		s.known[k] = true
	}
	return s
}

func (s *stubSolver) Name() string { return s.name }

func (s *stubSolver) TryToSolveType(name string) (model.SymbolReference[core.ReferenceTypeDeclaration], error) {
	s.calls.Add(1)
	s.MarkInUse()
	if s.entered != nil {
		close(s.entered)
		<-s.release
	}
	if s.err != nil {
		return core.Unsolved(), s.err
	}
	if _, err := s.Root(s); err != nil {
		return core.Unsolved(), err
	}
	if s.known[name] {
		return core.Solved(stubDecl{qn: name}), nil
	}
	return core.Unsolved(), nil
}

func TestNode_RootWithoutParentIsSelf(t *testing.T) {
	s := newStub("leaf")
	assert.Nil(t, s.Parent())

	root, err := s.Root(s)
	require.NoError(t, err)
	assert.Same(t, s, root)
}

func TestNode_RootFollowsParents(t *testing.T) {
	top, mid, leaf := newStub("top"), newStub("mid"), newStub("leaf")
	require.NoError(t, mid.SetParent(top))
	require.NoError(t, leaf.SetParent(mid))

	root, err := leaf.Root(leaf)
	require.NoError(t, err)
	assert.Same(t, top, root)
	assert.Same(t, mid, leaf.Parent())
}

func TestNode_SetParentTwice(t *testing.T) {
	s := newStub("leaf")
	require.NoError(t, s.SetParent(newStub("a")))

	err := s.SetParent(newStub("b"))
	assert.ErrorIs(t, err, core.ErrParentAlreadySet)
	assert.Equal(t, "a", core.SolverName(s.Parent()))
}

func TestNode_SetParentAfterUse(t *testing.T) {
	s := newStub("leaf", "x.Y")
	_, err := s.TryToSolveType("x.Y")
	require.NoError(t, err)

	assert.ErrorIs(t, s.SetParent(newStub("late")), core.ErrParentSetAfterUse)
	assert.Nil(t, s.Parent())
}

func TestNode_SetParentAfterUnsolved(t *testing.T) {
	s := newStub("leaf")
	ref, err := s.TryToSolveType("x.Missing")
	require.NoError(t, err)
	require.False(t, ref.IsSolved())

	assert.True(t, s.InUse())
	assert.ErrorIs(t, s.SetParent(newStub("late")), core.ErrParentSetAfterUse)
	assert.Nil(t, s.Parent())
}

func TestNode_SetParentDuringResolve(t *testing.T) {
	s := newStub("leaf", "x.Y")
	s.entered = make(chan struct{})
	s.release = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := s.TryToSolveType("x.Y")
		done <- err
	}()

	<-s.entered
	assert.ErrorIs(t, s.SetParent(newStub("late")), core.ErrParentSetAfterUse)
	close(s.release)
	require.NoError(t, <-done)
	assert.Nil(t, s.Parent())
}

func TestNode_SetParentRacingFirstUse(t *testing.T) {
	for i := 0; i < 100; i++ {
		s := newStub("leaf")
		parent := newStub("p")

		var (
			wg     sync.WaitGroup
			setErr error
			root   core.TypeSolver
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			setErr = s.SetParent(parent)
		}()
		go func() {
			defer wg.Done()
			root, _ = s.Root(s)
		}()
		wg.Wait()

		// 两种结局之一：父节点先到并成为根，或者封存先到而父节点被拒绝
		if setErr == nil {
			assert.Same(t, parent, s.Parent())
		} else {
			assert.ErrorIs(t, setErr, core.ErrParentSetAfterUse)
			assert.Nil(t, s.Parent())
			assert.Same(t, s, root)
		}
	}
}

func TestNode_SetNilParent(t *testing.T) {
	s := newStub("leaf")
	assert.ErrorIs(t, s.SetParent(nil), core.ErrNilSolver)
}

func TestNode_ParentCycle(t *testing.T) {
	a, b := newStub("a"), newStub("b")
	require.NoError(t, a.SetParent(b))
	require.NoError(t, b.SetParent(a))

	_, err := a.Root(a)
	assert.ErrorIs(t, err, core.ErrParentCycle)

	// 环会作为致命错误从解析中传播出来
	_, err = a.TryToSolveType("x.Y")
	assert.ErrorIs(t, err, core.ErrParentCycle)
}

func TestNode_ConcurrentSetParentHasOneWinner(t *testing.T) {
	s := newStub("leaf")

	const n = 32
	var (
		wg       sync.WaitGroup
		winners  atomic.Int64
		rejected atomic.Int64
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.SetParent(newStub("p")); err == nil {
				winners.Add(1)
			} else {
				assert.ErrorIs(t, err, core.ErrParentAlreadySet)
				rejected.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, winners.Load())
	assert.EqualValues(t, n-1, rejected.Load())
}

func TestSolverName(t *testing.T) {
	assert.Equal(t, "leaf", core.SolverName(newStub("leaf")))

	chain, err := core.NewCombinedTypeSolver(nil)
	require.NoError(t, err)
	assert.Equal(t, "combined", core.SolverName(chain))
}
