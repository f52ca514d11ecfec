// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package rating

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/dishly/internal/platform/middleware"
	requestutil "github.com/taibuivan/dishly/internal/platform/request"
	"github.com/taibuivan/dishly/internal/platform/respond"
	"github.com/taibuivan/dishly/internal/platform/validate"
)

// Handler implements the HTTP layer for the like toggle.
type Handler struct {
	service *Service
}

// NewHandler constructs a new rating [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register attaches the rating endpoints under /dishes/{id}/rating.
func (handler *Handler) Register(router chi.Router) {
	router.Get("/dishes/{id}/rating", handler.summary)
	router.With(middleware.RequireAuth).Put("/dishes/{id}/rating", handler.set)
}

type setRatingRequest struct {
	Value *int `json:"value"`
}

/*
PUT /api/v1/dishes/{id}/rating.

Request: {"value": 0 | 1}

Response:
  - 200: Summary
  - 400: value missing or outside {0, 1}
  - 404: dish missing or not visible
*/
func (handler *Handler) set(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	id, err := requestutil.ID(request, "id", "Dish")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input setRatingRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.Value == nil {
		respond.Error(writer, request, validate.RequiredError(FieldValue, "This field is required"))
		return
	}

	summary, err := handler.service.SetRating(request.Context(), id, userID, *input.Value)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, summary)
}

// GET /api/v1/dishes/{id}/rating.
func (handler *Handler) summary(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id", "Dish")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, _ := requestutil.Caller(request)
	summary, err := handler.service.Summary(request.Context(), id, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, summary)
}
