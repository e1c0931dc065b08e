package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/pos-backoffice/internal/config"
	"github.com/MKhiriev/pos-backoffice/internal/logger"
	"github.com/MKhiriev/pos-backoffice/internal/metrics"
	"github.com/MKhiriev/pos-backoffice/internal/mock"
	"github.com/MKhiriev/pos-backoffice/internal/service"
	"github.com/MKhiriev/pos-backoffice/models"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/mock/gomock"
)

type testDeps struct {
	auth    *mock.MockAuthService
	users   *mock.MockUserService
	handler *Handler
	router  *chi.Mux
	reg     *prometheus.Registry
}

func newTestDeps(t *testing.T, cfg config.Server) testDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	auth := mock.NewMockAuthService(ctrl)
	users := mock.NewMockUserService(ctrl)
	reg := prometheus.NewRegistry()

	h := NewHandler(&service.Services{AuthService: auth, UserService: users}, cfg, metrics.NewCollector(reg), reg, logger.Nop())
	t.Cleanup(h.Close)

	return testDeps{auth: auth, users: users, handler: h, router: h.Init(), reg: reg}
}

func doRequest(router http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

var (
	adminUser = models.User{ID: "admin-1", Username: "root", Role: models.RoleAdmin, IsAdmin: true, IsActive: true}
	plainUser = models.User{ID: "u1", Username: "alice", Email: "alice@example.com", Role: models.RoleUser, IsActive: true}

	adminHeaders = map[string]string{"Authorization": "Bearer admin-token"}
)

// expectAdmin makes the auth and admin middleware accept adminHeaders.
func expectAdmin(d testDeps) {
	d.auth.EXPECT().ParseToken(gomock.Any(), "admin-token").Return(models.Token{UserID: adminUser.ID}, nil)
	d.auth.EXPECT().CurrentUser(gomock.Any(), adminUser.ID).Return(adminUser, nil)
}
