// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// buildRouter mirrors the shape of the admin routes without services.
func buildRouter() *chi.Mux {
	ok := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}
	}

	router := chi.NewRouter()
	router.Post("/api/auth/login", ok("login"))
	router.Route("/api/users", func(r chi.Router) {
		r.Get("/", ok("list"))
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", ok("get"))
			r.Put("/", ok("put"))
			r.Patch("/deactivate", ok("deactivate"))
		})
	})
	router.MethodNotAllowed(CheckHTTPMethod())

	return router
}

func TestCheckHTTPMethod(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{name: "login post", method: http.MethodPost, path: "/api/auth/login", wantStatus: http.StatusOK, wantBody: "login"},
		{name: "login get", method: http.MethodGet, path: "/api/auth/login", wantStatus: http.StatusNotFound},
		{name: "list users", method: http.MethodGet, path: "/api/users", wantStatus: http.StatusOK, wantBody: "list"},
		{name: "list users delete", method: http.MethodDelete, path: "/api/users", wantStatus: http.StatusNotFound},
		{name: "update user", method: http.MethodPut, path: "/api/users/42", wantStatus: http.StatusOK, wantBody: "put"},
		{name: "delete user", method: http.MethodDelete, path: "/api/users/42", wantStatus: http.StatusNotFound},
		{name: "deactivate", method: http.MethodPatch, path: "/api/users/42/deactivate", wantStatus: http.StatusOK, wantBody: "deactivate"},
		{name: "deactivate post", method: http.MethodPost, path: "/api/users/42/deactivate", wantStatus: http.StatusNotFound},
		{name: "unknown route", method: http.MethodGet, path: "/api/orders", wantStatus: http.StatusNotFound},
	}

	router := buildRouter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rr.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rr.Body.String())
			}
		})
	}
}
