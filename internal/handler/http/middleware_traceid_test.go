package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/pos-backoffice/internal/config"
	"github.com/MKhiriev/pos-backoffice/internal/logger"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name          string
		requestHeader string
		wantReuse     bool
	}{
		{name: "caller trace id is reused", requestHeader: "till-42-req-7", wantReuse: true},
		{name: "missing trace id is generated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{logger: logger.Nop()}

			var called bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				assert.NotNil(t, zerolog.Ctx(r.Context()))
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.requestHeader != "" {
				req.Header.Set(traceIDHeader, tt.requestHeader)
			}
			rr := httptest.NewRecorder()

			h.withTraceID(next).ServeHTTP(rr, req)

			require.True(t, called)
			got := rr.Header().Get(traceIDHeader)
			if tt.wantReuse {
				assert.Equal(t, tt.requestHeader, got)
				return
			}
			_, err := uuid.Parse(got)
			assert.NoError(t, err)
		})
	}
}

func TestWithTraceID_UniquePerRequest(t *testing.T) {
	h := &Handler{logger: logger.Nop()}
	handler := h.withTraceID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		seen[rr.Header().Get(traceIDHeader)] = struct{}{}
	}

	assert.Len(t, seen, 50)
}

func TestWithTraceID_ReachesErrorResponses(t *testing.T) {
	d := newTestDeps(t, config.Server{})

	rr := doRequest(d.router, http.MethodGet, "/api/users", "", map[string]string{traceIDHeader: "abc"})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "abc", rr.Header().Get(traceIDHeader))
}
