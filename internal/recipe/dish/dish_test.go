// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dish_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dishly/internal/recipe/dish"
)

func TestNextStatus(t *testing.T) {
	tests := []struct {
		name    string
		current dish.Status
		action  dish.Action
		want    dish.Status
		wantErr bool
	}{
		{"submit draft", dish.StatusDraft, dish.ActionSubmitForReview, dish.StatusPending, false},
		{"submit pending again", dish.StatusPending, dish.ActionSubmitForReview, dish.StatusPending, false},
		{"submit approved", dish.StatusApproved, dish.ActionSubmitForReview, "", true},
		{"submit rejected", dish.StatusRejected, dish.ActionSubmitForReview, "", true},
		{"approve pending", dish.StatusPending, dish.ActionApprove, dish.StatusApproved, false},
		{"approve draft", dish.StatusDraft, dish.ActionApprove, "", true},
		{"reject pending", dish.StatusPending, dish.ActionReject, dish.StatusRejected, false},
		{"reject approved", dish.StatusApproved, dish.ActionReject, "", true},
		{"edit approved", dish.StatusApproved, dish.ActionEdit, dish.StatusPending, false},
		{"edit rejected", dish.StatusRejected, dish.ActionEdit, dish.StatusPending, false},
		{"edit draft", dish.StatusDraft, dish.ActionEdit, dish.StatusPending, false},
		{"private approved", dish.StatusApproved, dish.ActionMakePrivate, dish.StatusDraft, false},
		{"private pending", dish.StatusPending, dish.ActionMakePrivate, dish.StatusDraft, false},
		{"unknown action", dish.StatusDraft, dish.Action("publish"), "", true},
		{"unknown status", dish.Status("archived"), dish.ActionEdit, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dish.NextStatus(tt.current, tt.action)
			if tt.wantErr {
				require.ErrorIs(t, err, dish.ErrInvalidTransition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDish_VisibleTo(t *testing.T) {
	draft := &dish.Dish{OwnerID: "owner", Status: dish.StatusDraft}
	approved := &dish.Dish{OwnerID: "owner", Status: dish.StatusApproved}

	assert.True(t, draft.VisibleTo("owner", false))
	assert.True(t, draft.VisibleTo("someone", true))
	assert.False(t, draft.VisibleTo("someone", false))
	assert.False(t, draft.VisibleTo("", false))
	assert.True(t, approved.VisibleTo("", false))
}
