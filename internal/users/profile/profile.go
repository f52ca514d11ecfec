// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package profile provisions the public profile of a user on first sign-in.

Each profile carries a unique human-readable tag derived from the display name.
Tags are minted optimistically: insert a candidate, and on a uniqueness conflict
try another. After a bounded number of random candidates the service degrades to
a timestamp-seeded tag and finally to a long random suffix.
*/
package profile

import "time"

// Profile is the public identity of a user.
type Profile struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Tag         string    `json:"tag"`
	CreatedAt   time.Time `json:"created_at"`
}

// FieldDisplayName is the validation field name of the display name.
const FieldDisplayName = "display_name"

const (
	maxDisplayNameLength = 50
	maxTagBaseLength     = 20
	fallbackTagBase      = "cook"
)
