package repository

import (
	"github.com/deppfellow/assignment-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Assignment *AssignmentRepository
}

// NewRepositories builds every repository on the server's Query Executor.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Assignment: NewAssignmentRepository(s.DB.Executor),
	}
}
