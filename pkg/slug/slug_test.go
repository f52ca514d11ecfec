// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/dishly/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := map[string]string{
		"Bánh Mì":        "banh-mi",
		"  Crème brûlée ": "creme-brulee",
		"Mom's #1 Soup!": "mom-s-1-soup",
		"":               "",
	}
	for input, want := range tests {
		assert.Equal(t, want, slug.From(input), input)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "banh", slug.Truncate("banh-mi", 5))
	assert.Equal(t, "banh-mi", slug.Truncate("banh-mi", 20))
}
