// Package handler aggregates the transport handlers of the application.
package handler

import (
	httphandler "github.com/social-memo/social-memo/internal/handler/http"
	"github.com/social-memo/social-memo/internal/logger"
	"github.com/social-memo/social-memo/internal/service"
)

type Handlers struct {
	HTTP *httphandler.Handler
}

func NewHandlers(services *service.Services, logger *logger.Logger) *Handlers {
	return &Handlers{
		HTTP: httphandler.NewHandler(services, logger),
	}
}
