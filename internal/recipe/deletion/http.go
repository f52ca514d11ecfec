// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deletion

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/dishly/internal/platform/middleware"
	requestutil "github.com/taibuivan/dishly/internal/platform/request"
	"github.com/taibuivan/dishly/internal/platform/respond"
	"github.com/taibuivan/dishly/internal/platform/sec"
)

// Handler implements the HTTP layer for dish deletion.
type Handler struct {
	orchestrator *Orchestrator
}

// NewHandler constructs a new deletion [Handler].
func NewHandler(orchestrator *Orchestrator) *Handler {
	return &Handler{orchestrator: orchestrator}
}

// Register attaches the owner and admin delete endpoints.
func (handler *Handler) Register(router chi.Router) {
	router.With(middleware.RequireAuth).Delete("/dishes/{id}", handler.deleteOwn)
	router.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/admin/dishes/{id}", handler.deleteAny)
}

/*
DELETE /api/v1/dishes/{id}.

Response:
  - 204: deleted
  - 403: visible dish owned by someone else
  - 404: missing dish
  - 502: stopped mid-sequence; repeating the request finishes it
*/
func (handler *Handler) deleteOwn(writer http.ResponseWriter, request *http.Request) {
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

	if _, err := handler.orchestrator.DeleteDish(request.Context(), id, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// DELETE /api/v1/admin/dishes/{id}.
func (handler *Handler) deleteAny(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id", "Dish")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.orchestrator.DeleteDishByAdmin(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
