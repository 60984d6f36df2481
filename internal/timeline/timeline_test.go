package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrepend_NewestFirst(t *testing.T) {
	var tl Timeline[string]
	tl.Prepend("a")
	tl.Prepend("b")
	tl.Prepend("c")

	assert.Equal(t, []string{"c", "b", "a"}, tl.Items())
	assert.Equal(t, 3, tl.Len())

	latest, ok := tl.Latest()
	assert.True(t, ok)
	assert.Equal(t, "c", latest)
}

func TestZeroValue(t *testing.T) {
	var tl Timeline[int]
	assert.Empty(t, tl.Items())
	assert.NotNil(t, tl.Items())
	_, ok := tl.Latest()
	assert.False(t, ok)
}

func TestItems_ReturnsCopy(t *testing.T) {
	var tl Timeline[int]
	tl.Prepend(1)
	items := tl.Items()
	items[0] = 99

	assert.Equal(t, []int{1}, tl.Items())
}

func TestFromOldest(t *testing.T) {
	tl := FromOldest([]int{1, 2, 3})
	assert.Equal(t, []int{3, 2, 1}, tl.Items())
}

func TestFilter(t *testing.T) {
	tl := FromOldest([]int{1, 2, 3, 4, 5})
	even := tl.Filter(func(n int) bool { return n%2 == 0 })
	assert.Equal(t, []int{4, 2}, even)
	assert.Empty(t, tl.Filter(func(int) bool { return false }))
}
