// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

import "context"

/*
Repository defines persistence for collections and their items.

Writes that may be repeated are idempotent: system provisioning and item
insertion skip rows that already exist, item removal succeeds when nothing
matched.
*/
type Repository interface {
	ListByUser(context context.Context, userID string) ([]*Collection, error)
	FindByID(context context.Context, id string) (*Collection, error)

	// SystemCollections returns the user's system collections keyed by subtype.
	// Missing subtypes are simply absent from the map.
	SystemCollections(context context.Context, userID string) (map[Subtype]string, error)

	// EnsureSystem inserts the given system collections, skipping any subtype
	// the user already owns.
	EnsureSystem(context context.Context, collections []*Collection) error

	Create(context context.Context, collection *Collection) error
	Update(context context.Context, collection *Collection) (*Collection, error)
	Delete(context context.Context, id string) error

	AddItem(context context.Context, item Item) error
	RemoveItem(context context.Context, collectionID, dishID string) error
	ListItems(context context.Context, collectionID string) ([]Item, error)
	DeleteItemsByCollection(context context.Context, collectionID string) error
	DeleteItemsByDish(context context.Context, dishID string) error
}
