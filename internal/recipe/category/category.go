// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package category manages the fixed taxonomy dishes are tagged with.
package category

// Category is a browsable dish grouping (e.g. "Soup", "Dessert").
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	SortOrder int    `json:"sort_order"`
}

const (
	FieldName      = "name"
	FieldSortOrder = "sort_order"
)
