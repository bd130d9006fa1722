package ferogram

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type InjectorSuite struct {
	suite.Suite
}

func TestInjectorSuite(t *testing.T) {
	suite.Run(t, new(InjectorSuite))
}

func (s *InjectorSuite) TestTakeConsumesOldestFirst() {
	in := NewInjector()
	in.Insert("first", "second", "third")

	for _, want := range []string{"first", "second", "third"} {
		got, ok := Take[string](in)
		s.Require().True(ok)
		s.Equal(want, got)
	}

	_, ok := Take[string](in)
	s.False(ok, "queue should be exhausted")
}

func (s *InjectorSuite) TestTypesAreIndependentQueues() {
	in := NewInjector()
	in.Insert("text", 1, "more", 2)

	n, ok := Take[int](in)
	s.Require().True(ok)
	s.Equal(1, n)

	str, ok := Take[string](in)
	s.Require().True(ok)
	s.Equal("text", str)
}

func (s *InjectorSuite) TestGetPeeksWithoutRemoving() {
	in := NewInjector()
	in.Insert("only")

	v, ok := Get[string](in)
	s.Require().True(ok)
	s.Equal("only", v)

	v, ok = Get[string](in)
	s.Require().True(ok, "Get must not consume")
	s.Equal("only", v)
}

func (s *InjectorSuite) TestInsertAsKeysInterfaceType() {
	in := NewInjector()
	client := &testClient{}
	InsertAs[Client](in, client)

	// The concrete type was not registered, only the interface.
	_, ok := Take[*testClient](in)
	s.False(ok)

	got, ok := Take[Client](in)
	s.Require().True(ok)
	s.Same(client, got.(*testClient))
}

func (s *InjectorSuite) TestMutateReplacesInPlace() {
	in := NewInjector()
	in.Insert(10, 20)

	s.True(Mutate(in, func(n int) int { return n + 1 }))

	n, ok := Take[int](in)
	s.Require().True(ok)
	s.Equal(11, n, "updated value keeps its queue position")

	n, ok = Take[int](in)
	s.Require().True(ok)
	s.Equal(20, n)
}

func (s *InjectorSuite) TestMutateReportsMiss() {
	in := NewInjector()
	s.False(Mutate(in, func(n int) int { return n }))
}

func (s *InjectorSuite) TestExtendPreservesOrderAndDrainsOther() {
	a := NewInjector()
	a.Insert("a1")
	b := NewInjector()
	b.Insert("b1", "b2")

	a.Extend(b)
	s.Zero(b.Len(), "extended injector should be drained")

	for _, want := range []string{"a1", "b1", "b2"} {
		got, ok := Take[string](a)
		s.Require().True(ok)
		s.Equal(want, got)
	}
}

func (s *InjectorSuite) TestExtendNilIsNoop() {
	in := NewInjector()
	in.Insert("x")
	in.Extend(nil)
	s.Equal(1, in.Len())
}

func (s *InjectorSuite) TestLenCountsDistinctTypes() {
	in := NewInjector()
	in.Insert("a", "b", 1)
	s.Equal(2, in.Len())
}

func (s *InjectorSuite) TestCloneSharesValuesNotQueues() {
	in := NewInjector()
	in.Insert("keep")

	c := in.clone()
	v, ok := Take[string](c)
	s.Require().True(ok)
	s.Equal("keep", v)

	v, ok = Take[string](in)
	s.Require().True(ok, "draining the clone must not drain the original")
	s.Equal("keep", v)
}

func (s *InjectorSuite) TestWithChains() {
	in := NewInjector().With("a").With(1)
	s.Equal(2, in.Len())
}
