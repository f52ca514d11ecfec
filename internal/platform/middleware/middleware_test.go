// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/dishly/internal/platform/constants"
	"github.com/taibuivan/dishly/internal/platform/ctxutil"
	"github.com/taibuivan/dishly/internal/platform/middleware"
	"github.com/taibuivan/dishly/internal/platform/sec"
)

type stubVerifier map[string]*sec.AuthClaims

func (stub stubVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if claims, ok := stub[token]; ok {
		return claims, nil
	}
	return nil, errors.New("unknown token")
}

var verifier = stubVerifier{
	"member-token": {UserID: "cook-1", Role: string(sec.RoleMember)},
	"admin-token":  {UserID: "mod-1", Role: string(sec.RoleAdmin)},
}

func echoUser() http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if claims := ctxutil.GetAuthUser(request.Context()); claims != nil {
			_, _ = io.WriteString(writer, claims.UserID)
			return
		}
		_, _ = io.WriteString(writer, "anonymous")
	})
}

func serve(handler http.Handler, token string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func TestAuthenticate(t *testing.T) {
	handler := middleware.Authenticate(verifier)(echoUser())

	tests := []struct {
		name   string
		token  string
		status int
		body   string
	}{
		{name: "anonymous passes through", status: http.StatusOK, body: "anonymous"},
		{name: "valid token injects claims", token: "member-token", status: http.StatusOK, body: "cook-1"},
		{name: "unknown token is rejected", token: "forged", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serve(handler, tt.token)
			assert.Equal(t, tt.status, recorder.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, recorder.Body.String())
			}
		})
	}
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	handler := middleware.Authenticate(verifier)(echoUser())

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Token member-token")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRequireRole(t *testing.T) {
	handler := middleware.Authenticate(verifier)(middleware.RequireRole(sec.RoleAdmin)(echoUser()))

	assert.Equal(t, http.StatusUnauthorized, serve(handler, "").Code)
	assert.Equal(t, http.StatusForbidden, serve(handler, "member-token").Code)
	assert.Equal(t, http.StatusOK, serve(handler, "admin-token").Code)
}

func TestRequireAuth(t *testing.T) {
	handler := middleware.Authenticate(verifier)(middleware.RequireAuth(echoUser()))

	assert.Equal(t, http.StatusUnauthorized, serve(handler, "").Code)
	assert.Equal(t, http.StatusOK, serve(handler, "member-token").Code)
}

func TestRequestID(t *testing.T) {
	handler := middleware.RequestID()(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = io.WriteString(writer, ctxutil.GetRequestID(request.Context()))
	}))

	generated := serve(handler, "")
	assert.NotEmpty(t, generated.Body.String())
	assert.Equal(t, generated.Body.String(), generated.Header().Get(constants.HeaderXRequestID))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "upstream-id")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "upstream-id", recorder.Body.String())
}

func TestPanicRecovery(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	handler := middleware.PanicRecovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := serve(handler, "")
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

type devConfig bool

func (d devConfig) IsDevelopment() bool { return bool(d) }

func TestCORS(t *testing.T) {
	handler := middleware.CORS(devConfig(false), "https://partner.example")(echoUser())

	for origin, allowed := range map[string]bool{
		"https://www.dishly.app":  true,
		"https://partner.example": true,
		"https://evil.example":    false,
	} {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(constants.HeaderOrigin, origin)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		if allowed {
			assert.Equal(t, origin, recorder.Header().Get("Access-Control-Allow-Origin"), origin)
		} else {
			assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"), origin)
		}
	}
}
