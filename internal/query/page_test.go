package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage_LastPartialPage(t *testing.T) {
	// 23 rows, size 10, page 3 -> 3 items, no next, has prev
	items := make([]int, 3)
	page := NewPage(items, 23, 3, 10)

	assert.Len(t, page.Items, 3)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, int64(23), page.TotalCount)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrev)
}

func TestNewPage_Empty(t *testing.T) {
	page := NewPage[string](nil, 0, 1, 10)

	assert.NotNil(t, page.Items)
	assert.Len(t, page.Items, 0)
	assert.Equal(t, 0, page.TotalPages)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrev)
}

func TestNewPage_BeyondLastPage(t *testing.T) {
	// page 5 of 23 rows: empty items, not an error
	page := NewPage([]int{}, 23, 5, 10)

	assert.Len(t, page.Items, 0)
	assert.Equal(t, 3, page.TotalPages)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrev)
}

func TestNewPage_ExactMultiple(t *testing.T) {
	page := NewPage(make([]int, 10), 20, 2, 10)

	assert.Equal(t, 2, page.TotalPages)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrev)
}

func TestNewPage_MiddlePage(t *testing.T) {
	page := NewPage(make([]int, 10), 23, 2, 10)

	assert.True(t, page.HasNext)
	assert.True(t, page.HasPrev)
}
