package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	r := New[string, int]()
	assert.NotNil(t, r)
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Keys())
}

func TestRegisterAndGet(t *testing.T) {
	r := New[string, int]()

	r.Register("one", 1)
	r.Register("two", 2)

	v, ok := r.Get("one")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = r.Get("three")
	assert.False(t, ok)
	assert.Equal(t, 0, v)
}

func TestRegister_PreservesInsertionOrder(t *testing.T) {
	r := New[string, int]()
	r.Register("c", 3)
	r.Register("a", 1)
	r.Register("b", 2)
	r.Register("c", 30) // overwrite keeps position

	assert.Equal(t, []string{"c", "a", "b"}, r.Keys())
	assert.Equal(t, []int{30, 1, 2}, r.Values())
}

func TestAdd_RejectsDuplicates(t *testing.T) {
	r := New[string, string]()

	require.NoError(t, r.Add("key", "first"))
	err := r.Add("key", "second")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate key key")

	v, _ := r.Get("key")
	assert.Equal(t, "first", v)
}

func TestDelete(t *testing.T) {
	r := New[string, int]()
	r.Register("a", 1)
	r.Register("b", 2)
	r.Register("c", 3)

	r.Delete("b")
	r.Delete("missing")

	assert.False(t, r.Has("b"))
	assert.Equal(t, []string{"a", "c"}, r.Keys())
	assert.Equal(t, 2, r.Len())
}

func TestRange_StopsEarly(t *testing.T) {
	r := New[string, int]()
	r.Register("a", 1)
	r.Register("b", 2)
	r.Register("c", 3)

	var seen []string
	r.Range(func(k string, _ int) bool {
		seen = append(seen, k)
		return k != "b"
	})

	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestRange_MutationDuringIteration(t *testing.T) {
	r := New[string, int]()
	r.Register("a", 1)
	r.Register("b", 2)

	count := 0
	r.Range(func(k string, _ int) bool {
		r.Register(k+"-copy", 0)
		count++
		return true
	})

	assert.Equal(t, 2, count)
	assert.Equal(t, 4, r.Len())
}

func TestClone_IsIndependent(t *testing.T) {
	r := New[string, int]()
	r.Register("a", 1)

	c := r.Clone()
	c.Register("b", 2)
	r.Register("z", 26)

	assert.Equal(t, []string{"a", "b"}, c.Keys())
	assert.Equal(t, []string{"a", "z"}, r.Keys())
}
