// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/dishly/internal/platform/middleware"
	requestutil "github.com/taibuivan/dishly/internal/platform/request"
	"github.com/taibuivan/dishly/internal/platform/respond"
)

// Handler implements the HTTP layer for profiles.
type Handler struct {
	service *Service
}

// NewHandler constructs a new profile [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the profile endpoints, mounted at /profile.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.get)
	router.Post("/", handler.provision)

	return router
}

// GET /api/v1/profile.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.Get(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}

type provisionRequest struct {
	DisplayName string `json:"display_name"`
}

/*
POST /api/v1/profile.

Called once after the first sign-in. Repeating it returns the existing profile.

Response:
  - 201: Profile created
  - 200: Profile already existed
  - 409: no unique tag could be minted
*/
func (handler *Handler) provision(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input provisionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, created, err := handler.service.Provision(request.Context(), userID, input.DisplayName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if created {
		respond.Created(writer, profile)
		return
	}
	respond.OK(writer, profile)
}
