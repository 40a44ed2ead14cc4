package queue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trapdoorsec/rinzler/pkg/queue"
)

func TestDeque_FIFOForOwner(t *testing.T) {
	d := queue.NewDeque[int]()
	d.PushBack(1)
	d.PushBack(2)
	d.PushBack(3)

	first, ok := d.PopFront()
	assert.True(t, ok)
	assert.Equal(t, 1, first)

	second, ok := d.PopFront()
	assert.True(t, ok)
	assert.Equal(t, 2, second)

	assert.Equal(t, 1, d.Len())
}

func TestDeque_ThiefPopsOppositeEnd(t *testing.T) {
	d := queue.NewDeque[string]()
	d.PushBack("a")
	d.PushBack("b")
	d.PushBack("c")

	stolen, ok := d.PopBack()
	assert.True(t, ok)
	assert.Equal(t, "c", stolen)

	owned, ok := d.PopFront()
	assert.True(t, ok)
	assert.Equal(t, "a", owned)
}

func TestDeque_EmptyPops(t *testing.T) {
	d := queue.NewDeque[int]()

	_, ok := d.PopFront()
	assert.False(t, ok)
	_, ok = d.PopBack()
	assert.False(t, ok)
}

func TestSet_AddIfAbsent(t *testing.T) {
	s := queue.NewSet[string]()

	assert.True(t, s.AddIfAbsent("http://example.com/"))
	assert.False(t, s.AddIfAbsent("http://example.com/"))
	assert.True(t, s.Contains("http://example.com/"))
	assert.Equal(t, 1, s.Size())

	s.Remove("http://example.com/")
	assert.False(t, s.Contains("http://example.com/"))
}
