// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// It parses requests, handles input validation using the
// validation package, and calls the appropriate service layer.
package handler

import (
	"github.com/lostyu/test-vercel-phonebook-depo/internal/repository"
	"github.com/lostyu/test-vercel-phonebook-depo/internal/server"
	"github.com/lostyu/test-vercel-phonebook-depo/internal/service"
)

// Handlers is a container that groups all HTTP handlers, so router setup
// passes one object around instead of many.
type Handlers struct {
	Health  *HealthHandler  // Health serves the service health endpoint.
	OpenAPI *OpenAPIHandler // OpenAPI serves API documentation.
	Info    *InfoHandler    // Info serves the phonebook summary page.
	Person  *PersonHandler  // Person serves the /api/persons resource.
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, repos *repository.Repositories, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s, repos.Persons),
		OpenAPI: NewOpenAPIHandler(s),
		Info:    NewInfoHandler(s, services.Persons),
		Person:  NewPersonHandler(s, services.Persons),
	}
}
