// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/taibuivan/dishly/internal/platform/apperr"
	"github.com/taibuivan/dishly/internal/platform/validate"
	"github.com/taibuivan/dishly/pkg/uuid"
)

// Uploader stores an object and returns its public URL.
type Uploader interface {
	Upload(context context.Context, key string, body io.Reader, contentType string) (string, error)
}

// FieldFile is the multipart field carrying the image.
const FieldFile = "file"

// sniffLength is how many bytes [http.DetectContentType] looks at.
const sniffLength = 512

// extensions maps accepted image types to object key extensions.
var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageService validates and stores dish and step images.
type ImageService struct {
	uploader Uploader
	logger   *slog.Logger
}

// NewImageService constructs a new [ImageService].
func NewImageService(uploader Uploader, logger *slog.Logger) *ImageService {
	return &ImageService{uploader: uploader, logger: logger}
}

/*
UploadImage stores an image owned by userID.

Description: The type is sniffed from the content, not taken from the client.
Objects are keyed images/{userID}/{uuid}{ext}.

Returns:
  - string: public URL
  - error: Validation (not an accepted image), StoreError
*/
func (service *ImageService) UploadImage(context context.Context, userID string, body io.Reader) (string, error) {
	head := make([]byte, sniffLength)
	n, err := io.ReadFull(body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", validate.RequiredError(FieldFile, "The file could not be read")
	}
	head = head[:n]
	if n == 0 {
		return "", validate.RequiredError(FieldFile, "This field is required")
	}

	contentType := strings.SplitN(http.DetectContentType(head), ";", 2)[0]
	extension, ok := extensions[contentType]
	if !ok {
		return "", validate.RequiredError(FieldFile, "Must be a JPEG, PNG, GIF or WebP image")
	}

	key := path.Join("images", userID, uuid.New()+extension)
	url, err := service.uploader.Upload(context, key, io.MultiReader(bytes.NewReader(head), body), contentType)
	if err != nil {
		service.logger.ErrorContext(context, "image_upload_failed",
			slog.String("user_id", userID),
			slog.String("key", key),
			slog.Any("error", err),
		)
		return "", apperr.StoreError("The image could not be stored", err)
	}

	service.logger.InfoContext(context, "image_uploaded",
		slog.String("user_id", userID),
		slog.String("key", key),
	)
	return url, nil
}
