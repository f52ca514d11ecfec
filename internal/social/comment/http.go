// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/dishly/internal/platform/middleware"
	requestutil "github.com/taibuivan/dishly/internal/platform/request"
	"github.com/taibuivan/dishly/internal/platform/respond"
	"github.com/taibuivan/dishly/pkg/pagination"
	"github.com/taibuivan/dishly/pkg/slice"
)

// Handler implements the HTTP layer for comments.
type Handler struct {
	service *Service
}

// NewHandler constructs a new comment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register attaches the dish-scoped comment endpoints.
func (handler *Handler) Register(router chi.Router) {
	router.Get("/dishes/{id}/comments", handler.list)
	router.With(middleware.RequireAuth).Post("/dishes/{id}/comments", handler.create)
}

// Routes returns the comment endpoints, mounted at /comments.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)
	router.Delete("/{id}", handler.delete)
	return router
}

// GET /api/v1/dishes/{id}/comments?page=&limit=.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	dishID, err := requestutil.ID(request, "id", "Dish")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	callerID, isAdmin := requestutil.Caller(request)
	comments, err := handler.service.List(request.Context(), dishID, callerID, isAdmin)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Threads are short; the page is cut in memory.
	params := pagination.FromRequest(request)
	page := slice.Paginate(comments, params.Offset(), params.Limit)
	respond.Paginated(writer, page, pagination.NewMeta(params.Page, params.Limit, len(comments)))
}

type createCommentRequest struct {
	Body string `json:"body"`
}

// POST /api/v1/dishes/{id}/comments.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	dishID, err := requestutil.ID(request, "id", "Dish")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createCommentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Create(request.Context(), dishID, userID, input.Body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, comment)
}

/*
DELETE /api/v1/comments/{id}.

Response:
  - 204: tombstoned (or already tombstoned)
  - 403: not the author and not an admin
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id", "Comment")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	callerID, isAdmin := requestutil.Caller(request)
	if err := handler.service.Delete(request.Context(), id, callerID, isAdmin); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
