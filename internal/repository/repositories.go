package repository

import (
	"github.com/lostyu/test-vercel-phonebook-depo/internal/model"
	"github.com/lostyu/test-vercel-phonebook-depo/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Persons *PersonRepository
}

// NewRepositories constructs the repository container.
//
// The person store is seeded with the fixed startup entries; nothing
// survives a restart.
func NewRepositories(s *server.Server) *Repositories {
	persons := NewPersonRepository(model.SeedPersons())

	s.Logger.Debug().
		Int("records", persons.Count()).
		Msg("person store seeded")

	return &Repositories{
		Persons: persons,
	}
}
