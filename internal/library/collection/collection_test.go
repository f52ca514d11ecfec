// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/dishly/internal/library/collection"
	"github.com/taibuivan/dishly/internal/recipe/dish"
)

func TestShouldContain(t *testing.T) {
	statuses := []dish.Status{dish.StatusDraft, dish.StatusPending, dish.StatusApproved, dish.StatusRejected}

	for _, status := range statuses {
		t.Run(string(status), func(t *testing.T) {
			contain, managed := collection.ShouldContain(collection.SubtypeMyDishes, status)
			assert.True(t, managed)
			assert.True(t, contain)

			published, managed := collection.ShouldContain(collection.SubtypePublished, status)
			assert.True(t, managed)
			assert.Equal(t, status == dish.StatusApproved, published)

			private, managed := collection.ShouldContain(collection.SubtypePrivate, status)
			assert.True(t, managed)
			assert.NotEqual(t, published, private, "a dish is in exactly one of published and private")

			_, managed = collection.ShouldContain(collection.SubtypeLiked, status)
			assert.False(t, managed)
		})
	}
}
