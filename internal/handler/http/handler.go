package http

import (
	"time"

	"github.com/MKhiriev/pos-backoffice/internal/config"
	"github.com/MKhiriev/pos-backoffice/internal/logger"
	"github.com/MKhiriev/pos-backoffice/internal/metrics"
	"github.com/MKhiriev/pos-backoffice/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

const limiterCleanupInterval = 5 * time.Minute

type Handler struct {
	services *service.Services

	// loginLimiter is nil when login rate limiting is disabled.
	loginLimiter *RateLimiter

	metrics  metrics.Recorder
	gatherer prometheus.Gatherer

	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, recorder metrics.Recorder, gatherer prometheus.Gatherer, logger *logger.Logger) *Handler {
	h := &Handler{
		services:       services,
		metrics:        recorder,
		gatherer:       gatherer,
		requestTimeout: cfg.RequestTimeout,
		logger:         logger,
	}

	if cfg.LoginRatePerMinute > 0 {
		h.loginLimiter = NewRateLimiter(RateLimiterConfig{
			Rate:            rate.Limit(float64(cfg.LoginRatePerMinute) / 60),
			Burst:           max(cfg.LoginBurst, 1),
			CleanupInterval: limiterCleanupInterval,
		})
	}

	logger.Info().Msg("http handler created")
	return h
}

// Close stops background work started by the handler.
func (h *Handler) Close() {
	if h.loginLimiter != nil {
		h.loginLimiter.Stop()
	}
}
