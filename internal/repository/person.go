package repository

import (
	"sync"

	"github.com/lostyu/test-vercel-phonebook-depo/internal/model"
)

// PersonRepository is the in-memory record store for phonebook entries.
//
// The backing slice is never modified in place: every write installs a
// freshly built slice. Reads return copies.
type PersonRepository struct {
	mu      sync.RWMutex
	persons []model.Person
}

// NewPersonRepository creates a store holding a copy of seed.
func NewPersonRepository(seed []model.Person) *PersonRepository {
	return &PersonRepository{persons: clone(seed)}
}

// All returns every person in insertion order.
func (r *PersonRepository) All() []model.Person {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return clone(r.persons)
}

// FindByID returns the person with the given id.
func (r *PersonRepository) FindByID(id int) (model.Person, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.persons {
		if p.ID == id {
			return p, true
		}
	}
	return model.Person{}, false
}

// Count returns the number of stored persons.
func (r *PersonRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.persons)
}

// Replace swaps the whole collection for a copy of persons.
func (r *PersonRepository) Replace(persons []model.Person) {
	next := clone(persons)

	r.mu.Lock()
	r.persons = next
	r.mu.Unlock()
}

// Mutate runs fn with the current collection while holding the write lock
// and installs the collection fn returns. If fn fails the store is left
// untouched.
//
// fn must treat current as read-only and build a new slice for its result.
func (r *PersonRepository) Mutate(fn func(current []model.Person) ([]model.Person, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next, err := fn(r.persons)
	if err != nil {
		return err
	}

	r.persons = next
	return nil
}

func clone(persons []model.Person) []model.Person {
	out := make([]model.Person, len(persons))
	copy(out, persons)
	return out
}
