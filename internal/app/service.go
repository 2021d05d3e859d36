package app

import (
	"context"

	"invoice-service/internal/config"
	httpserver "invoice-service/internal/http"

	"go.uber.org/zap"
)

const serverAddrPrefix = ":"

// Service is the invoicing API process.
type Service struct {
	config *config.Config
	logger *zap.Logger
	server *httpserver.Server
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Service) Start() error {
	s.logger.Info("starting invoice service", zap.String("port", s.config.Server.Port))
	return s.server.Start(serverAddrPrefix + s.config.Server.Port)
}

// Shutdown gracefully shuts down the service
func (s *Service) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
