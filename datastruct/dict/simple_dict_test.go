package dict

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimpleDictBasic(t *testing.T) {
	d := NewSimpleDict()
	assert.True(t, d.IsEmpty())

	assert.NoError(t, d.Put("a", "1"))
	assert.NoError(t, d.Put("b", "2"))
	assert.Equal(t, int32(2), d.Len())
	assert.Equal(t, "1", d.Get("a", "x"))
	assert.Equal(t, "x", d.Get("missing", "x"))

	val, exists := d.Lookup("b")
	assert.True(t, exists)
	assert.Equal(t, "2", val)
	_, exists = d.Lookup("missing")
	assert.False(t, exists)

	assert.NoError(t, d.Put("a", "9"))
	assert.Equal(t, "9", d.Get("a", ""))
	assert.Equal(t, int32(2), d.Len())

	assert.ErrorIs(t, d.Put("", "v"), ErrEmptyKey)

	assert.NoError(t, d.Remove("a"))
	assert.ErrorIs(t, d.Remove("a"), ErrNotFound)
	assert.False(t, d.Has("a"))
	assert.True(t, d.Has("b"))

	assert.ElementsMatch(t, []string{"b"}, d.Keys())

	d.Clear()
	assert.True(t, d.IsEmpty())
}

func TestSimpleDictForEach(t *testing.T) {
	d := NewSimpleDict()
	for _, k := range []string{"a", "b", "c", "d"} {
		assert.NoError(t, d.Put(k, k))
	}
	count := 0
	d.ForEach(func(key, val string) bool {
		assert.Equal(t, key, val)
		count++
		return count < 2
	})
	assert.Equal(t, 2, count)
}
