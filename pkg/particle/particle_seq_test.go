package particle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snwfog/sequence.go/pkg/util"
)

var (
	b1 = New(Point{1, 1}, Vector{}, 1, Black)
	b2 = New(Point{2, 2}, Vector{10, 0}, 2, Blue)
	b3 = New(Point{3, 3}, Vector{}, 3, Green)
	b4 = New(Point{4, 4}, Vector{10, 20}, 4, Yellow)
	b5 = New(Point{5, 5}, Vector{0, -10}, 5, Red)
)

func seqOf(ps ...*Particle) *ParticleSeq {
	s := NewParticleSeq()
	for _, p := range ps {
		s.InsertAfter(p)
	}

	return s
}

// expect checks that walking on from the current element yields ps and then
// runs off the end.
func expect(t *testing.T, s *ParticleSeq, ps ...*Particle) {
	t.Helper()
	for i, p := range ps {
		got, err := s.Current()
		require.NoError(t, err, "element %d", i)
		assert.Same(t, p, got, "element %d", i)
		require.NoError(t, s.Advance())
	}
	assert.False(t, s.HasCurrent())
}

func TestLifecycle(t *testing.T) {
	s := NewParticleSeq()
	assert.True(t, s.AtEnd())
	assert.False(t, s.HasCurrent())

	s.InsertAfter(b1)
	assert.False(t, s.AtEnd())
	assert.True(t, s.HasCurrent())

	require.NoError(t, s.RemoveCurrent())
	assert.False(t, s.AtEnd())
	assert.False(t, s.HasCurrent())

	require.NoError(t, s.Advance())
	assert.True(t, s.AtEnd())
	assert.False(t, s.HasCurrent())
}

func TestPreconditions(t *testing.T) {
	s := seqOf(b1)
	require.NoError(t, s.Advance())
	assert.True(t, util.IsStateViolation(s.RemoveCurrent()))
	assert.True(t, util.IsStateViolation(s.Advance()))

	_, err := s.Current()
	assert.True(t, util.IsStateViolation(err))
	assert.Equal(t, 1, s.Len())
}

func TestNilParticle(t *testing.T) {
	s := NewParticleSeq()
	s.InsertBefore(b1)
	s.InsertBefore(nil)
	s.InsertBefore(b2)
	assert.Same(t, b2, mustCurrent(t, s))

	require.NoError(t, s.Advance())
	assert.True(t, s.HasCurrent())
	assert.Nil(t, mustCurrent(t, s))
	assert.Equal(t, "[(2,2), *<nil>, (1,1)]", s.String())
}

func mustCurrent(t *testing.T, s *ParticleSeq) *Particle {
	p, err := s.Current()
	require.NoError(t, err)
	return p
}

func TestRemoveThenAdvance(t *testing.T) {
	s := NewParticleSeq()
	s.InsertAfter(nil)
	s.InsertBefore(b4)
	s.InsertAfter(b5)
	require.NoError(t, s.Advance())
	assert.Nil(t, mustCurrent(t, s))

	require.NoError(t, s.RemoveCurrent())
	assert.False(t, s.AtEnd())
	require.NoError(t, s.Advance())
	assert.True(t, s.AtEnd())
}

func TestRemoveTwice(t *testing.T) {
	s := NewParticleSeq()
	s.InsertAfter(b2)
	s.InsertBefore(b3)
	s.InsertBefore(b4)
	require.NoError(t, s.RemoveCurrent())
	assert.False(t, s.HasCurrent())

	require.NoError(t, s.Advance())
	require.NoError(t, s.Advance())
	require.NoError(t, s.RemoveCurrent())
	assert.Equal(t, 1, s.Len())
}

func TestAppendPositionedAtTail(t *testing.T) {
	se := seqOf(b1)
	s := seqOf(b2, b3)

	s.Append(se)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 1, se.Len())
	expect(t, s, b3, b1)

	s.Start()
	assert.Same(t, b2, mustCurrent(t, s))
}

func TestAppendAtEnd(t *testing.T) {
	se := seqOf(b1)
	s := seqOf(b2, b3)
	require.NoError(t, s.Advance())

	s.Append(se)
	assert.False(t, s.HasCurrent())
	assert.Equal(t, 3, s.Len())
	assert.Same(t, b1, mustCurrent(t, se))

	s.Start()
	expect(t, s, b2, b3, b1)
}

func TestAppendOtherBeforeCurrent(t *testing.T) {
	se := NewParticleSeq()
	se.InsertAfter(b2)
	se.InsertBefore(b1)

	s := NewParticleSeq()
	s.InsertAfter(b4)
	s.InsertBefore(b3)

	s.Append(se)
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, 2, se.Len())
	expect(t, s, b3, b4, b1, b2)
}

func TestAppendBothAtEnd(t *testing.T) {
	se := NewParticleSeq()
	se.InsertBefore(b2)
	se.InsertBefore(b1)
	require.NoError(t, se.Advance())
	require.NoError(t, se.Advance())

	s := seqOf(b3, b4)
	require.NoError(t, s.Advance())

	s.Append(se)
	assert.False(t, s.HasCurrent())
	assert.False(t, se.HasCurrent())
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, 2, se.Len())

	s.Start()
	expect(t, s, b3, b4, b1, b2)
}

func TestAppendTwice(t *testing.T) {
	se := NewParticleSeq()
	for i := 0; i < 8; i++ {
		se.InsertAfter(b3)
		se.InsertAfter(b4)
		se.InsertAfter(b5)
	}
	assert.Equal(t, 24, se.Len())

	s := seqOf(b1, b2)
	s.Append(se)
	assert.Equal(t, 26, s.Len())
	assert.Same(t, b2, mustCurrent(t, s))
	require.NoError(t, s.Advance())
	assert.Same(t, b3, mustCurrent(t, s))

	s.Append(se)
	assert.Equal(t, 50, s.Len())

	s.Start()
	for _, p := range []*Particle{b1, b2, b3, b4, b5, b3, b4} {
		assert.Same(t, p, mustCurrent(t, s))
		require.NoError(t, s.Advance())
	}
}

func TestAppendThenInsert(t *testing.T) {
	se := seqOf(b1, b2)
	s := seqOf(b3, b4)

	s.Append(se)
	require.NoError(t, s.Advance())
	s.InsertAfter(b5)
	require.NoError(t, s.Advance())
	assert.Same(t, b2, mustCurrent(t, s))
	assert.Equal(t, 5, s.Len())

	assert.Equal(t, 2, se.Len())
	expect(t, se, b2)
	se.Start()
	assert.Same(t, b1, mustCurrent(t, se))
}

func TestAppendSelfEmpty(t *testing.T) {
	s := NewParticleSeq()
	s.Append(s)
	assert.False(t, s.HasCurrent())
	assert.Equal(t, 0, s.Len())
}

func TestAppendSelfSingle(t *testing.T) {
	s := seqOf(b1)
	s.Append(s)
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.HasCurrent())
	expect(t, s, b1, b1)
}

func TestAppendSelfAtEnd(t *testing.T) {
	s := seqOf(b1)
	require.NoError(t, s.Advance())
	s.Append(s)
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.HasCurrent())
}

func TestAppendSelfAtHead(t *testing.T) {
	s := NewParticleSeq()
	s.InsertAfter(b2)
	s.InsertBefore(b1)
	s.Append(s)
	assert.Equal(t, 4, s.Len())
	expect(t, s, b1, b2, b1, b2)
}

func TestAppendSelfRepeatedly(t *testing.T) {
	s := seqOf(b1, b2)
	s.Append(s)
	require.NoError(t, s.RemoveCurrent())
	s.InsertBefore(b3)
	expect(t, s, b3, b1, b2)

	s.Start()
	require.NoError(t, s.Advance())
	require.NoError(t, s.Advance())
	s.Append(s)
	assert.Equal(t, 8, s.Len())
	assert.True(t, s.HasCurrent())
	expect(t, s, b1, b2, b1, b3, b1, b2)
}

func TestCloneEmpty(t *testing.T) {
	c := NewParticleSeq().Clone()
	assert.False(t, c.HasCurrent())
	assert.Equal(t, 0, c.Len())
}

func TestCloneSharesParticles(t *testing.T) {
	s := seqOf(b1)
	c := s.Clone()

	assert.True(t, c.HasCurrent())
	assert.Same(t, mustCurrent(t, s), mustCurrent(t, c))
	expect(t, s, b1)
	expect(t, c, b1)
}

func TestCloneAfterInsertAfter(t *testing.T) {
	s := NewParticleSeq()
	s.InsertBefore(b2)
	s.InsertBefore(b1)
	require.NoError(t, s.Advance())
	s.InsertAfter(b3)

	c := s.Clone()
	expect(t, s, b3)
	expect(t, c, b3)

	s.Start()
	c.Start()
	expect(t, s, b1, b2, b3)
	expect(t, c, b1, b2, b3)
}

func TestCloneSnapshots(t *testing.T) {
	s := NewParticleSeq()
	s.InsertBefore(b1)
	c := s.Clone()
	s.InsertBefore(b2)
	assert.Same(t, b2, mustCurrent(t, s))
	assert.Same(t, b1, mustCurrent(t, c))

	c = s.Clone()
	s.InsertBefore(b3)
	assert.Same(t, b3, mustCurrent(t, s))
	assert.Same(t, b2, mustCurrent(t, c))
	assert.Equal(t, 2, c.Len())
}

func TestCloneAfterRemove(t *testing.T) {
	s := NewParticleSeq()
	s.InsertAfter(b1)
	s.InsertAfter(b3)
	s.InsertBefore(b2)
	require.NoError(t, s.RemoveCurrent())

	c := s.Clone()
	assert.Equal(t, 2, c.Len())
	assert.False(t, s.HasCurrent())
	assert.False(t, c.HasCurrent())

	require.NoError(t, s.Advance())
	require.NoError(t, c.Advance())
	assert.Same(t, b3, mustCurrent(t, s))
	assert.Same(t, b3, mustCurrent(t, c))
}

func TestCloneAfterRemoveHead(t *testing.T) {
	s := NewParticleSeq()
	s.InsertAfter(b4)
	s.InsertBefore(b5)
	s.InsertAfter(b1)
	require.NoError(t, s.RemoveCurrent())

	c := s.Clone()
	assert.False(t, s.HasCurrent())
	require.NoError(t, c.Advance())
	assert.Same(t, b4, mustCurrent(t, c))
}
