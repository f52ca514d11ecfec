// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/dishly/internal/platform/constants"
	"github.com/taibuivan/dishly/internal/platform/middleware"
	requestutil "github.com/taibuivan/dishly/internal/platform/request"
	"github.com/taibuivan/dishly/internal/platform/respond"
	"github.com/taibuivan/dishly/internal/platform/validate"
)

// Handler implements the HTTP layer for uploads.
type Handler struct {
	service *ImageService
}

// NewHandler constructs a new upload [Handler].
func NewHandler(service *ImageService) *Handler {
	return &Handler{service: service}
}

// Routes returns the upload endpoints, mounted at /uploads.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)
	router.Post("/images", handler.uploadImage)
	return router
}

type uploadResponse struct {
	URL string `json:"url"`
}

/*
POST /api/v1/uploads/images.

Request: multipart/form-data with the image in field "file".

Response:
  - 201: {"url": "..."}
  - 400: missing, oversized or not an image
*/
func (handler *Handler) uploadImage(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxImageUploadBytes)
	file, _, err := request.FormFile(FieldFile)
	if err != nil {
		respond.Error(writer, request, validate.RequiredError(FieldFile, "An image up to 10 MB is required"))
		return
	}
	defer file.Close()

	url, err := handler.service.UploadImage(request.Context(), userID, file)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, uploadResponse{URL: url})
}
