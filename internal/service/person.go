package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/lostyu/test-vercel-phonebook-depo/internal/errs"
	"github.com/lostyu/test-vercel-phonebook-depo/internal/model"
	"github.com/lostyu/test-vercel-phonebook-depo/internal/repository"
	"github.com/lostyu/test-vercel-phonebook-depo/internal/server"
)

// PersonService implements the phonebook operations on top of the record store.
//
// Every write runs inside PersonRepository.Mutate, so the existence check,
// id assignment and collection rebuild of one request never interleave with
// another request's.
type PersonService struct {
	server  *server.Server
	persons *repository.PersonRepository

	// now is the clock used by Info.
	now func() time.Time
}

// Info is the aggregate the /info page renders.
type Info struct {
	Count int
	Time  time.Time
}

// NewPersonService constructs a PersonService.
func NewPersonService(s *server.Server, persons *repository.PersonRepository) *PersonService {
	return &PersonService{
		server:  s,
		persons: persons,
		now:     time.Now,
	}
}

// logger returns the request-scoped logger carried by ctx, falling back to
// the application logger outside a request.
func (ps *PersonService) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return ps.server.Logger
}

// GenerateID returns one more than the largest id in persons, or 1 when
// persons is empty.
func GenerateID(persons []model.Person) int {
	maxID := 0
	for _, p := range persons {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	return maxID + 1
}

// NameExists reports whether any person carries exactly name.
// The comparison is case-sensitive.
func NameExists(persons []model.Person, name string) bool {
	for _, p := range persons {
		if p.Name == name {
			return true
		}
	}
	return false
}

// Info reports the current record count and server time.
func (ps *PersonService) Info(ctx context.Context) Info {
	return Info{
		Count: ps.persons.Count(),
		Time:  ps.now(),
	}
}

// List returns every person in insertion order.
func (ps *PersonService) List(ctx context.Context) []model.Person {
	return ps.persons.All()
}

// Get returns the person with the given id.
func (ps *PersonService) Get(ctx context.Context, id int) (model.Person, error) {
	person, ok := ps.persons.FindByID(id)
	if !ok {
		return model.Person{}, errs.NewNotFoundError(errs.MessagePersonNotFound, nil)
	}
	return person, nil
}

// Create adds a person with a freshly generated id.
//
// A name that is already present is rejected and the store is left unchanged.
func (ps *PersonService) Create(ctx context.Context, name, number string) (model.Person, error) {
	var created model.Person

	err := ps.persons.Mutate(func(current []model.Person) ([]model.Person, error) {
		if NameExists(current, name) {
			return nil, errs.NewBadRequestError(errs.MessageNameNotUnique, nil, nil)
		}

		created = model.Person{
			ID:     GenerateID(current),
			Name:   name,
			Number: number,
		}

		next := make([]model.Person, 0, len(current)+1)
		next = append(next, current...)
		return append(next, created), nil
	})
	if err != nil {
		return model.Person{}, err
	}

	ps.logger(ctx).Info().
		Int("person_id", created.ID).
		Msg("person created")

	return created, nil
}

// UpdateNumber replaces the number of the person with the given id.
// Name and position in the collection are kept.
func (ps *PersonService) UpdateNumber(ctx context.Context, id int, number string) (model.Person, error) {
	var updated model.Person

	err := ps.persons.Mutate(func(current []model.Person) ([]model.Person, error) {
		found := false
		next := make([]model.Person, len(current))

		for i, p := range current {
			if p.ID == id {
				p.Number = number
				updated = p
				found = true
			}
			next[i] = p
		}

		if !found {
			return nil, errs.NewNotFoundError(errs.MessagePersonNotFound, nil)
		}
		return next, nil
	})
	if err != nil {
		return model.Person{}, err
	}

	ps.logger(ctx).Info().
		Int("person_id", updated.ID).
		Msg("person number updated")

	return updated, nil
}

// Delete removes the person with the given id.
//
// A missing id yields a 404 without a body.
func (ps *PersonService) Delete(ctx context.Context, id int) error {
	err := ps.persons.Mutate(func(current []model.Person) ([]model.Person, error) {
		next := make([]model.Person, 0, len(current))
		for _, p := range current {
			if p.ID != id {
				next = append(next, p)
			}
		}

		if len(next) == len(current) {
			return nil, errs.NewEmptyNotFoundError()
		}
		return next, nil
	})
	if err != nil {
		return err
	}

	ps.logger(ctx).Info().
		Int("person_id", id).
		Msg("person deleted")

	return nil
}
