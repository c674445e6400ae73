package ordermap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsert_PreservesOrderAndFirstInsertWins(t *testing.T) {
	m := New[string, int]()
	m.Insert("b", 1)
	m.Insert("a", 2)
	m.Insert("b", 99) // should not overwrite

	assert.Equal(t, []string{"b", "a"}, m.Keys())
	v, ok := m.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestDelete_PreservesOrderOfRemainder(t *testing.T) {
	m := New[string, int]()
	m.Insert("a", 1)
	m.Insert("b", 2)
	m.Insert("c", 3)
	m.Delete("b")

	assert.Equal(t, []string{"a", "c"}, m.Keys())
	assert.False(t, m.Has("b"))
}

func TestDelete_Missing_NoOp(t *testing.T) {
	m := New[string, int]()
	m.Insert("a", 1)
	m.Delete("nonexistent")
	assert.Equal(t, []string{"a"}, m.Keys())
}

func TestUnion_OrdersLeftThenRight_LeftWinsOnConflict(t *testing.T) {
	left := New[string, int]()
	left.Insert("a", 1)
	left.Insert("b", 2)

	right := New[string, int]()
	right.Insert("b", 99)
	right.Insert("c", 3)

	out := Union(left, right)
	assert.Equal(t, []string{"a", "b", "c"}, out.Keys())
	v, _ := out.Get("b")
	assert.Equal(t, 2, v)
}

func TestUnion_NilOperandsAreEmpty(t *testing.T) {
	out := Union[string, int](nil, nil)
	assert.Equal(t, 0, out.Len())
}
