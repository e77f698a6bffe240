package service

import (
	"github.com/deppfellow/assignment-api/internal/repository"
	"github.com/deppfellow/assignment-api/internal/server"
)

// Services is a container for all service instances.
type Services struct {
	Assignment *AssignmentService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		Assignment: NewAssignmentService(repos.Assignment, s.Logger),
	}
}
