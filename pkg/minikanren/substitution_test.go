package minikanren

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstitutionExtend(t *testing.T) {
	s := NewSession()
	x, y := s.Var("x"), s.Var("y")

	empty := NewSubstitution()
	withX, ok := empty.Extend(x, NewAtom(1))
	require.True(t, ok)

	assert.Equal(t, 0, empty.Size(), "extending must not touch the original")
	assert.Nil(t, empty.Lookup(x))
	assert.Equal(t, 1, withX.Size())
	assert.True(t, withX.Lookup(x).Equal(NewAtom(1)))

	t.Run("single assignment", func(t *testing.T) {
		again, ok := withX.Extend(x, NewAtom(2))
		assert.False(t, ok)
		assert.Nil(t, again)
		assert.True(t, withX.Lookup(x).Equal(NewAtom(1)))
	})

	t.Run("sibling branches are independent", func(t *testing.T) {
		left, ok := withX.Extend(y, NewAtom("left"))
		require.True(t, ok)
		right, ok := withX.Extend(y, NewAtom("right"))
		require.True(t, ok)

		assert.True(t, left.Lookup(y).Equal(NewAtom("left")))
		assert.True(t, right.Lookup(y).Equal(NewAtom("right")))
		assert.Nil(t, withX.Lookup(y))
		assert.True(t, left.Lookup(x).Equal(NewAtom(1)))
		assert.True(t, right.Lookup(x).Equal(NewAtom(1)))
	})

	t.Run("self binding is a no-op", func(t *testing.T) {
		same, ok := empty.Extend(y, y)
		require.True(t, ok)
		assert.Equal(t, 0, same.Size())
	})
}

func TestSubstitutionWalk(t *testing.T) {
	s := NewSession()
	x, y, z := s.Var("x"), s.Var("y"), s.Var("z")

	sub := NewSubstitution()
	sub, _ = sub.Extend(x, y)
	sub, _ = sub.Extend(y, List(z, NewAtom(2)))

	walked := sub.Walk(x)
	assert.True(t, walked.Equal(List(z, NewAtom(2))), "walk follows chains to a non-variable")
	assert.True(t, sub.Walk(z).Equal(z), "unbound variables walk to themselves")

	sub, _ = sub.Extend(z, NewAtom(1))
	assert.True(t, sub.DeepWalk(x).Equal(List(NewAtom(1), NewAtom(2))))
}

func TestSubstitutionString(t *testing.T) {
	s := NewSession()
	x, y := s.Var("x"), s.Var("y")

	assert.Equal(t, "{}", NewSubstitution().String())

	sub, _ := NewSubstitution().Extend(y, NewAtom(2))
	sub, _ = sub.Extend(x, y)
	assert.Equal(t, "{_1=_y_2, _2=2}", sub.String())
}
