// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import "context"

// Repository defines persistence for categories.
type Repository interface {
	// List returns every category ordered for display.
	List(context context.Context) ([]*Category, error)

	// Missing returns the subset of ids that do not name a category.
	Missing(context context.Context, ids []string) ([]string, error)

	// Create inserts a category. A duplicate slug is a Conflict.
	Create(context context.Context, category *Category) error
}
