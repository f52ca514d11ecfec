// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package rating implements the like toggle on dishes.

A rating is binary. Value 1 is stored as a row keyed by (dish, user); value 0 is
the absence of that row, so there is no dislike state. Liking another user's
dish also files it in the liker's "liked" system collection.
*/
package rating

import "time"

// Rating values accepted by [Service.SetRating].
const (
	ValueNone  = 0
	ValueLiked = 1
)

// ratingTypeLike is the only stored rating type.
const ratingTypeLike = 1

// Rating is one user's like of one dish.
type Rating struct {
	DishID    string
	UserID    string
	UpdatedAt time.Time
}

// Summary is the like state of a dish as seen by one caller.
type Summary struct {
	DishID string `json:"dish_id"`
	Likes  int    `json:"likes"`
	Liked  bool   `json:"liked"`
}

// FieldValue is the validation field name of the rating value.
const FieldValue = "value"
