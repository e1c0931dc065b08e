package handler

import (
	"github.com/MKhiriev/pos-backoffice/internal/config"
	"github.com/MKhiriev/pos-backoffice/internal/handler/http"
	"github.com/MKhiriev/pos-backoffice/internal/logger"
	"github.com/MKhiriev/pos-backoffice/internal/metrics"
	"github.com/MKhiriev/pos-backoffice/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers builds the transport handlers enabled by cfg. A nil gatherer
// disables the /metrics route.
func NewHandlers(services *service.Services, cfg config.Server, recorder metrics.Recorder, gatherer prometheus.Gatherer, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, cfg, recorder, gatherer, logger),
	}, nil
}

// Close releases resources held by the handlers.
func (h *Handlers) Close() {
	if h.HTTP != nil {
		h.HTTP.Close()
	}
}
