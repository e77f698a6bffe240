package handler

import (
	"github.com/deppfellow/assignment-api/internal/server"
	"github.com/deppfellow/assignment-api/internal/service"
)

// Handlers groups all HTTP handlers.
type Handlers struct {
	Assignment *AssignmentHandler
	Health     *HealthHandler
	OpenAPI    *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Assignment: NewAssignmentHandler(s, services.Assignment),
		Health:     NewHealthHandler(s),
		OpenAPI:    NewOpenAPIHandler(s),
	}
}
