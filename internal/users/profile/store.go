// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"context"

	"github.com/taibuivan/dishly/internal/platform/apperr"
	"github.com/taibuivan/dishly/internal/platform/database/schema"
	"github.com/taibuivan/dishly/internal/platform/dberr"
	"github.com/taibuivan/dishly/internal/platform/relstore"
)

// ErrNotFound is returned when the user has no profile yet.
var ErrNotFound = apperr.NotFound("Profile")

// Repository defines persistence for profiles.
type Repository interface {
	FindByUserID(context context.Context, userID string) (*Profile, error)

	// Insert fails with a Conflict when the user or the tag is already taken.
	Insert(context context.Context, profile *Profile) error
}

// StoreRepository implements [Repository] over the relation store.
type StoreRepository struct {
	store relstore.Store
}

// NewStoreRepository constructs a new [StoreRepository].
func NewStoreRepository(store relstore.Store) *StoreRepository {
	return &StoreRepository{store: store}
}

func (repository *StoreRepository) FindByUserID(context context.Context, userID string) (*Profile, error) {
	rows, err := repository.store.Select(context, schema.UsersProfile.Table,
		relstore.Where(relstore.Eq(schema.UsersProfile.UserID, userID)))
	if err != nil {
		return nil, dberr.Wrap(err, "find_profile")
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	row := rows[0]
	return &Profile{
		UserID:      row.String(schema.UsersProfile.UserID),
		DisplayName: row.String(schema.UsersProfile.DisplayName),
		Tag:         row.String(schema.UsersProfile.Tag),
		CreatedAt:   row.Time(schema.UsersProfile.CreatedAt),
	}, nil
}

func (repository *StoreRepository) Insert(context context.Context, profile *Profile) error {
	_, err := repository.store.Insert(context, schema.UsersProfile.Table, relstore.Row{
		schema.UsersProfile.UserID:      profile.UserID,
		schema.UsersProfile.DisplayName: profile.DisplayName,
		schema.UsersProfile.Tag:         profile.Tag,
		schema.UsersProfile.CreatedAt:   profile.CreatedAt,
	})
	return dberr.Wrap(err, "insert_profile")
}
