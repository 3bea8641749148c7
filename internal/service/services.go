package service

import (
	"github.com/lostyu/test-vercel-phonebook-depo/internal/repository"
	"github.com/lostyu/test-vercel-phonebook-depo/internal/server"
)

// Services is a container for all business services.
type Services struct {
	Persons *PersonService
}

// NewService constructs every service from the shared server container and
// the repository container.
func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Persons: NewPersonService(s, repos.Persons),
	}, nil
}
