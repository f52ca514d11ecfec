// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/dishly/pkg/slice"
)

func TestMapFilter(t *testing.T) {
	assert.Equal(t, []string{"1", "2"}, slice.Map([]int{1, 2}, strconv.Itoa))
	assert.Equal(t, []int{2, 4}, slice.Filter([]int{1, 2, 3, 4}, func(n int) bool { return n%2 == 0 }))
	assert.Nil(t, slice.Map[int, string](nil, strconv.Itoa))
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, slice.Unique([]string{"a", "b", "a", "c", "b"}))
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{3, 4}, slice.Paginate(items, 2, 2))
	assert.Equal(t, []int{5}, slice.Paginate(items, 4, 10))
	assert.Empty(t, slice.Paginate(items, 10, 2))
	assert.Empty(t, slice.Paginate(items, -3, 2))
	assert.Empty(t, slice.Paginate(items, 1, 0))
	assert.Equal(t, []int{2, 3, 4, 5}, slice.Paginate(items, 1, math.MaxInt))
	assert.Empty(t, slice.Paginate[int](nil, 0, 10))
}
