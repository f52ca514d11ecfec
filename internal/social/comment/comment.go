// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package comment implements discussion threads on dishes.
//
// Users remove their comments by tombstoning them: the row stays, its body is
// blanked. Rows are only hard-deleted together with their dish.
package comment

import "time"

// Comment is one message on a dish.
type Comment struct {
	ID        string    `json:"id"`
	DishID    string    `json:"dish_id"`
	UserID    string    `json:"user_id"`
	Body      string    `json:"body"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FieldBody is the validation field name of the comment text.
const FieldBody = "body"

// maxBodyLength bounds a comment in characters.
const maxBodyLength = 2000
