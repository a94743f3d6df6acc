package http

import (
	"github.com/MKhiriev/go-seed-api/internal/config"
	"github.com/MKhiriev/go-seed-api/internal/logger"
	"github.com/MKhiriev/go-seed-api/internal/service"
	"github.com/MKhiriev/go-seed-api/internal/validators"
)

type Handler struct {
	services  *service.Services
	validator validators.Validator
	metrics   *metrics

	cfg    config.Server
	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		validator: validators.NewRequestValidator(),
		metrics:   newMetrics(),
		cfg:       cfg,
		logger:    logger,
	}
}
