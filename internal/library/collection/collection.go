// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package collection owns user collections of dishes.

Two kinds exist. Custom collections are created and curated by the user. System
collections are provisioned automatically, one per [Subtype], and their membership
is derived: "my_dishes", "published" and "private" follow the status of the
user's own dishes, "liked" follows the rating toggle.

Membership of the derived subtypes is decided in one place, [ShouldContain], and
applied by [Syncer.Resync].
*/
package collection

import (
	"time"

	"github.com/taibuivan/dishly/internal/recipe/dish"
)

// # Kinds

// Type distinguishes user-curated from auto-maintained collections.
type Type string

const (
	TypeCustom Type = "custom"
	TypeSystem Type = "system"
)

// Subtype identifies one of the four system collections every user owns.
type Subtype string

const (
	SubtypeMyDishes  Subtype = "my_dishes"
	SubtypeLiked     Subtype = "liked"
	SubtypePublished Subtype = "published"
	SubtypePrivate   Subtype = "private"
)

// Subtypes lists every system subtype in provisioning order.
var Subtypes = []Subtype{SubtypeMyDishes, SubtypeLiked, SubtypePublished, SubtypePrivate}

// systemNames are the display names given to provisioned system collections.
var systemNames = map[Subtype]string{
	SubtypeMyDishes:  "My dishes",
	SubtypeLiked:     "Liked",
	SubtypePublished: "Published",
	SubtypePrivate:   "Private",
}

/*
ShouldContain decides whether a dish in status belongs in the subtype collection
of its owner.

Returns:
  - contain: the dish must be a member
  - managed: the subtype is derived from dish status at all ("liked" is not)
*/
func ShouldContain(subtype Subtype, status dish.Status) (contain, managed bool) {
	switch subtype {
	case SubtypeMyDishes:
		return true, true
	case SubtypePublished:
		return status == dish.StatusApproved, true
	case SubtypePrivate:
		return status == dish.StatusDraft || status == dish.StatusPending || status == dish.StatusRejected, true
	default:
		return false, false
	}
}

// # Entities

// Collection is a named list of dishes owned by one user.
type Collection struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Type          Type      `json:"type"`
	SystemSubtype *Subtype  `json:"system_subtype,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsSystem reports whether the collection is auto-maintained.
func (collection *Collection) IsSystem() bool {
	return collection.Type == TypeSystem
}

// Item is one dish in a collection, attributed to the collection owner.
type Item struct {
	CollectionID string    `json:"collection_id"`
	DishID       string    `json:"dish_id"`
	UserID       string    `json:"user_id"`
	AddedAt      time.Time `json:"added_at"`
}

// Input is the user-editable part of a custom collection.
type Input struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validation field names.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldDishID      = "dish_id"
)
