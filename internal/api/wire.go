// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"log/slog"

	"github.com/taibuivan/dishly/internal/library/collection"
	"github.com/taibuivan/dishly/internal/platform/relstore"
	"github.com/taibuivan/dishly/internal/platform/storage"
	"github.com/taibuivan/dishly/internal/recipe/category"
	"github.com/taibuivan/dishly/internal/recipe/deletion"
	"github.com/taibuivan/dishly/internal/recipe/dish"
	"github.com/taibuivan/dishly/internal/social/comment"
	"github.com/taibuivan/dishly/internal/social/rating"
	"github.com/taibuivan/dishly/internal/users/profile"
)

// # Domain Wiring

// Dependencies are the infrastructure pieces the domain services run on.
type Dependencies struct {
	Store  relstore.Store
	Logger *slog.Logger

	// Cache may be nil; every system collection lookup then hits the store.
	Cache collection.SystemCache

	// Uploader may be nil; the /uploads routes are then not mounted.
	Uploader storage.Uploader

	// ResyncOnModeration makes admin moderation refresh the owner's collections.
	ResyncOnModeration bool
}

// NewHandlers builds every repository, service and handler over one store.
func NewHandlers(deps Dependencies, health HealthDependencies) Handlers {
	logger := deps.Logger

	// 1. Repositories
	dishRepository := dish.NewStoreRepository(deps.Store)
	categoryRepository := category.NewStoreRepository(deps.Store)
	collectionRepository := collection.NewStoreRepository(deps.Store)
	ratingRepository := rating.NewStoreRepository(deps.Store)
	commentRepository := comment.NewStoreRepository(deps.Store)
	profileRepository := profile.NewStoreRepository(deps.Store)

	// 2. Services
	syncer := collection.NewSyncer(collectionRepository, deps.Cache, logger)
	categoryService := category.NewService(categoryRepository, logger)
	dishService := dish.NewService(dishRepository, categoryService, syncer, logger,
		dish.WithResyncOnModeration(deps.ResyncOnModeration),
	)
	orchestrator := deletion.NewOrchestrator(dishRepository, dishRepository, commentRepository, ratingRepository, collectionRepository, logger)

	handlers := Handlers{
		Dish:       dish.NewHandler(dishService),
		Deletion:   deletion.NewHandler(orchestrator),
		Category:   category.NewHandler(categoryService),
		Collection: collection.NewHandler(collection.NewService(collectionRepository, syncer, dishRepository, logger)),
		Rating:     rating.NewHandler(rating.NewService(ratingRepository, dishRepository, syncer, logger)),
		Comment:    comment.NewHandler(comment.NewService(commentRepository, dishRepository, logger)),
		Profile:    profile.NewHandler(profile.NewService(profileRepository, syncer, logger)),
	}

	if deps.Uploader != nil {
		handlers.Upload = storage.NewHandler(storage.NewImageService(deps.Uploader, logger))
	}

	handlers.Liveness, handlers.Readiness = NewHealthHandlers(health, logger)
	return handlers
}
