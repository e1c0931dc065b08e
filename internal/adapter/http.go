package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/pos-backoffice/internal/config"
	"github.com/MKhiriev/pos-backoffice/internal/logger"
	"github.com/MKhiriev/pos-backoffice/internal/utils"
	"github.com/MKhiriev/pos-backoffice/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu             sync.RWMutex
	token          string
	onUnauthorized func()

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the HTTP implementation of [ServerAdapter].
// adapterCfg.HTTPAddress may omit the scheme, in which case http is assumed.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	h := &httpServerAdapter{
		client: utils.NewHTTPClient(adapterCfg.RequestTimeout),
		logger: logger,
	}
	h.client.SetBaseURL(baseURL)
	h.client.OnAfterResponse(h.detectUnauthorized)

	return h, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) ClearToken() {
	h.SetToken("")
}

func (h *httpServerAdapter) OnUnauthorized(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onUnauthorized = fn
}

// detectUnauthorized fires the OnUnauthorized hook when a request carrying
// the current token is rejected with 401. Requests made with another token,
// such as a restore through Me, never fire it.
func (h *httpServerAdapter) detectUnauthorized(_ *resty.Client, resp *resty.Response) error {
	if resp.StatusCode() != http.StatusUnauthorized {
		return nil
	}

	h.mu.RLock()
	token, fn := h.token, h.onUnauthorized
	h.mu.RUnlock()

	if token == "" || fn == nil || resp.Request.Header.Get("Authorization") != bearer(token) {
		return nil
	}

	h.logger.Info().Str("url", resp.Request.URL).Msg("credential rejected by server")
	fn()
	return nil
}

func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.User, string, error) {
	var user models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&user).
		Post("/api/auth/login")
	if err != nil {
		return models.User{}, "", fmt.Errorf("%w: login request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, "", err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, "", fmt.Errorf("%w: login: %w", ErrMalformedResponse, err)
	}

	return user, token, nil
}

func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	var user models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&user).
		Post("/api/auth/register")
	if err != nil {
		return models.User{}, fmt.Errorf("%w: register request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (h *httpServerAdapter) Me(ctx context.Context, token string) (models.User, error) {
	var user models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Authorization", bearer(token)).
		SetResult(&user).
		Get("/api/auth/me")
	if err != nil {
		return models.User{}, fmt.Errorf("%w: me request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (h *httpServerAdapter) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User

	resp, err := h.authedRequest(ctx).
		SetResult(&users).
		Get("/api/users")
	if err != nil {
		return nil, fmt.Errorf("%w: list users request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return users, nil
}

func (h *httpServerAdapter) GetUser(ctx context.Context, userID string) (models.User, error) {
	var user models.User

	resp, err := h.authedRequest(ctx).
		SetPathParam("id", userID).
		SetResult(&user).
		Get("/api/users/{id}")
	if err != nil {
		return models.User{}, fmt.Errorf("%w: get user request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (h *httpServerAdapter) UpdateUser(ctx context.Context, update models.UserUpdate) (models.User, error) {
	var user models.User

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", update.ID).
		SetBody(update).
		SetResult(&user).
		Put("/api/users/{id}")
	if err != nil {
		return models.User{}, fmt.Errorf("%w: update user request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (h *httpServerAdapter) DeactivateUser(ctx context.Context, userID string) (models.User, error) {
	var user models.User

	resp, err := h.authedRequest(ctx).
		SetPathParam("id", userID).
		SetResult(&user).
		Patch("/api/users/{id}/deactivate")
	if err != nil {
		return models.User{}, fmt.Errorf("%w: deactivate user request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (h *httpServerAdapter) GenerateResetToken(ctx context.Context, userID string) (models.ResetToken, error) {
	var token models.ResetToken

	resp, err := h.authedRequest(ctx).
		SetPathParam("id", userID).
		SetResult(&token).
		Post("/api/users/{id}/reset-token")
	if err != nil {
		return models.ResetToken{}, fmt.Errorf("%w: reset token request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ResetToken{}, err
	}

	if token.Token == "" || token.ExpiresAt.IsZero() {
		return models.ResetToken{}, fmt.Errorf("%w: reset token without value or expiry", ErrMalformedResponse)
	}

	return token, nil
}

func (h *httpServerAdapter) SetPassword(ctx context.Context, userID string, req models.SetPasswordRequest) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", userID).
		SetBody(req).
		Put("/api/users/{id}/password")
	if err != nil {
		return fmt.Errorf("%w: set password request: %w", ErrTransport, err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", bearer(token))
	}
	return req
}

func bearer(token string) string {
	return "Bearer " + token
}
