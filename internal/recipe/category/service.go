// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/dishly/internal/platform/apperr"
	"github.com/taibuivan/dishly/internal/platform/validate"
	"github.com/taibuivan/dishly/pkg/slug"
	"github.com/taibuivan/dishly/pkg/uuid"
)

// Service exposes category listing and the admin-only creation path.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns every category.
func (service *Service) List(context context.Context) ([]*Category, error) {
	return service.repo.List(context)
}

/*
EnsureExist fails with a validation error naming every id that is not a category.

It is called before any dish mutation so a bad payload never leaves rows behind.
*/
func (service *Service) EnsureExist(context context.Context, ids []string) error {
	missing, err := service.repo.Missing(context, ids)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return validate.RequiredError("category_ids", fmt.Sprintf("Unknown categories: %s", strings.Join(missing, ", ")))
	}
	return nil
}

// Create adds a category with a slug derived from its name.
func (service *Service) Create(context context.Context, name string, sortOrder int) (*Category, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, 80)
	validator.Range(FieldSortOrder, sortOrder, 0, 10000)

	category := &Category{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Slug:      slug.From(name),
		SortOrder: sortOrder,
	}
	validator.Custom(FieldName, category.Slug == "", "Must contain letters or digits")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, category); err != nil {
		if apperr.HasCode(err, apperr.CodeConflict) {
			return nil, apperr.Conflict("A category with this name already exists")
		}
		return nil, err
	}

	service.logger.Info("category_created",
		slog.String("category_id", category.ID),
		slog.String("slug", category.Slug),
	)
	return category, nil
}
