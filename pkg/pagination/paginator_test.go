package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlice_ThirteenItems(t *testing.T) {
	items := make([]int, 13)
	for i := range items {
		items[i] = i
	}

	first, got := Slice(items, "", DefaultPerPage)
	assert.Len(t, got, 10)
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 2, first.NumPages)
	assert.True(t, first.HasNext)
	assert.False(t, first.HasPrevious)

	second, got := Slice(items, "2", DefaultPerPage)
	assert.Equal(t, []int{10, 11, 12}, got)
	assert.False(t, second.HasNext)
	assert.True(t, second.HasPrevious)
	assert.Equal(t, 1, second.PreviousNumber())
	assert.Equal(t, 0, second.NextNumber())
}

func TestGetPage_Clamp(t *testing.T) {
	p := New(25, 10)

	tests := []struct {
		name   string
		raw    string
		number int
		offset int
		limit  int
	}{
		{name: "missing", raw: "", number: 1, offset: 0, limit: 10},
		{name: "not a number", raw: "abc", number: 1, offset: 0, limit: 10},
		{name: "zero", raw: "0", number: 1, offset: 0, limit: 10},
		{name: "negative", raw: "-4", number: 1, offset: 0, limit: 10},
		{name: "middle", raw: "2", number: 2, offset: 10, limit: 10},
		{name: "last", raw: "3", number: 3, offset: 20, limit: 5},
		{name: "past the end", raw: "99", number: 3, offset: 20, limit: 5},
		{name: "whitespace", raw: " 2 ", number: 2, offset: 10, limit: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := p.GetPage(tt.raw)
			assert.Equal(t, tt.number, page.Number)
			assert.Equal(t, tt.offset, page.Offset)
			assert.Equal(t, tt.limit, page.Limit)
			assert.Equal(t, 3, page.NumPages)
		})
	}
}

func TestGetPage_Empty(t *testing.T) {
	page := New(0, 10).GetPage("5")

	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.NumPages)
	assert.Equal(t, 0, page.Limit)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrevious)

	_, got := Slice([]string{}, "3", 10)
	assert.Empty(t, got)
}

func TestNew_DefaultsPerPage(t *testing.T) {
	assert.Equal(t, DefaultPerPage, New(5, 0).PerPage)
	assert.Equal(t, int64(0), New(-3, 10).Count)
}
