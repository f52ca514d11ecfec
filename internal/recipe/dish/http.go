// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dish

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/dishly/internal/platform/middleware"
	requestutil "github.com/taibuivan/dishly/internal/platform/request"
	"github.com/taibuivan/dishly/internal/platform/respond"
	"github.com/taibuivan/dishly/internal/platform/sec"
)

// Handler implements the HTTP layer for the dish lifecycle.
type Handler struct {
	service *Service
}

// NewHandler constructs a new dish [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register attaches the dish endpoints to router. Paths are absolute because
// other packages add their own routes under /dishes/{id}.
func (handler *Handler) Register(router chi.Router) {
	router.Get("/dishes/{id}", handler.get)

	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)
		authed.Post("/dishes", handler.create)
		authed.Put("/dishes/{id}", handler.update)
		authed.Patch("/dishes/{id}/status", handler.updateStatus)
		authed.Post("/dishes/{id}/resync", handler.resync)
		authed.Get("/me/dishes", handler.listMine)
	})

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Patch("/admin/dishes/{id}/moderation", handler.moderate)
	})
}

/*
POST /api/v1/dishes.

Response:
  - 201: Dish (status draft)
  - 400: validation failure or unknown category
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	dish, err := handler.service.Create(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, dish)
}

/*
GET /api/v1/dishes/{id}.

Response:
  - 200: Dish with ingredients, steps and categories
  - 404: missing or not visible to the caller
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id", "Dish")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	callerID, isAdmin := requestutil.Caller(request)
	dish, err := handler.service.Get(request.Context(), id, callerID, isAdmin)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, dish)
}

/*
PUT /api/v1/dishes/{id}.

Response:
  - 200: Dish (status pending)
  - 403: visible dish owned by someone else
  - 404: missing dish
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
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

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	dish, err := handler.service.Update(request.Context(), id, userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, dish)
}

type updateStatusRequest struct {
	Action Action `json:"action"`
}

/*
PATCH /api/v1/dishes/{id}/status.

Request: {"action": "submit_for_review" | "make_private"}

Response:
  - 200: Dish
  - 409: transition not allowed from the current status
  - 502: status saved but collections not updated
*/
func (handler *Handler) updateStatus(writer http.ResponseWriter, request *http.Request) {
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

	var input updateStatusRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	dish, err := handler.service.UpdateStatus(request.Context(), id, userID, input.Action)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, dish)
}

// POST /api/v1/dishes/{id}/resync.
func (handler *Handler) resync(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id", "Dish")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	callerID, isAdmin := requestutil.Caller(request)
	if err := handler.service.Resync(request.Context(), id, callerID, isAdmin); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// GET /api/v1/me/dishes.
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	dishes, err := handler.service.ListByOwner(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, dishes)
}

/*
PATCH /api/v1/admin/dishes/{id}/moderation.

Request: {"status": "approved" | "rejected", "reason": "..."}

Response:
  - 200: Dish
  - 409: dish is not pending
*/
func (handler *Handler) moderate(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id", "Dish")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var decision Decision
	if err := requestutil.DecodeJSON(request, &decision); err != nil {
		respond.Error(writer, request, err)
		return
	}

	dish, err := handler.service.Moderate(request.Context(), id, decision)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, dish)
}
