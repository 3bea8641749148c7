package service

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lostyu/test-vercel-phonebook-depo/internal/config"
	"github.com/lostyu/test-vercel-phonebook-depo/internal/errs"
	"github.com/lostyu/test-vercel-phonebook-depo/internal/model"
	"github.com/lostyu/test-vercel-phonebook-depo/internal/repository"
	"github.com/lostyu/test-vercel-phonebook-depo/internal/server"
)

func newTestService(t *testing.T, seed []model.Person) (*PersonService, *repository.PersonRepository) {
	t.Helper()

	logger := zerolog.Nop()
	s, err := server.New(&config.Config{}, &logger, nil)
	require.NoError(t, err)

	repo := repository.NewPersonRepository(seed)
	return NewPersonService(s, repo), repo
}

func requireHTTPError(t *testing.T, err error, status int) *errs.HTTPError {
	t.Helper()

	require.Error(t, err)
	httpErr, ok := err.(*errs.HTTPError)
	require.True(t, ok, "expected *errs.HTTPError, got %T", err)
	assert.Equal(t, status, httpErr.Status)
	return httpErr
}

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name    string
		persons []model.Person
		want    int
	}{
		{"empty", nil, 1},
		{"seed", model.SeedPersons(), 5},
		{"gap", []model.Person{{ID: 2}, {ID: 9}, {ID: 4}}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateID(tt.persons))
		})
	}
}

func TestNameExists(t *testing.T) {
	persons := model.SeedPersons()

	assert.True(t, NameExists(persons, "Ada Lovelace"))
	assert.False(t, NameExists(persons, "ada lovelace"))
	assert.False(t, NameExists(nil, "Ada Lovelace"))
}

func TestPersonService_Create(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t, model.SeedPersons())

	created, err := svc.Create(ctx, "New Person", "000")
	require.NoError(t, err)
	assert.Equal(t, model.Person{ID: 5, Name: "New Person", Number: "000"}, created)
	assert.Equal(t, 5, repo.Count())

	got, err := svc.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestPersonService_CreateDuplicateName(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t, model.SeedPersons())

	_, err := svc.Create(ctx, "Mary Poppendieck", "1")
	httpErr := requireHTTPError(t, err, http.StatusBadRequest)
	assert.Equal(t, errs.MessageNameNotUnique, httpErr.Message)
	assert.Equal(t, model.SeedPersons(), repo.All())
}

func TestPersonService_CreateIntoEmptyStore(t *testing.T) {
	svc, _ := newTestService(t, nil)

	created, err := svc.Create(context.Background(), "First", "1")
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
}

func TestPersonService_GetNotFound(t *testing.T) {
	svc, _ := newTestService(t, model.SeedPersons())

	_, err := svc.Get(context.Background(), 42)
	httpErr := requireHTTPError(t, err, http.StatusNotFound)
	assert.Equal(t, errs.MessagePersonNotFound, httpErr.Message)
}

func TestPersonService_UpdateNumber(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t, model.SeedPersons())

	updated, err := svc.UpdateNumber(ctx, 2, "555")
	require.NoError(t, err)
	assert.Equal(t, model.Person{ID: 2, Name: "Ada Lovelace", Number: "555"}, updated)

	all := repo.All()
	assert.Equal(t, updated, all[1], "update keeps position")
}

func TestPersonService_UpdateNumberMissing(t *testing.T) {
	svc, repo := newTestService(t, model.SeedPersons())

	_, err := svc.UpdateNumber(context.Background(), 99, "555")
	requireHTTPError(t, err, http.StatusNotFound)
	assert.Equal(t, model.SeedPersons(), repo.All())
}

func TestPersonService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t, model.SeedPersons())

	require.NoError(t, svc.Delete(ctx, 3))
	assert.Equal(t, 3, repo.Count())

	_, err := svc.Get(ctx, 3)
	requireHTTPError(t, err, http.StatusNotFound)

	err = svc.Delete(ctx, 3)
	httpErr := requireHTTPError(t, err, http.StatusNotFound)
	assert.True(t, httpErr.Empty)
}

func TestPersonService_IDAfterDeletingMax(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, model.SeedPersons())

	require.NoError(t, svc.Delete(ctx, 4))

	created, err := svc.Create(ctx, "Someone", "1")
	require.NoError(t, err)
	assert.Equal(t, 4, created.ID)
}

func TestPersonService_Info(t *testing.T) {
	svc, _ := newTestService(t, model.SeedPersons())
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	info := svc.Info(context.Background())
	assert.Equal(t, Info{Count: 4, Time: fixed}, info)
}

func TestPersonService_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t, model.SeedPersons())

	const n = 30
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Create(ctx, fmt.Sprintf("Person %d", i), "1")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	all := repo.All()
	require.Len(t, all, 4+n)

	ids := make(map[int]bool)
	for _, p := range all {
		assert.False(t, ids[p.ID], "duplicate id %d", p.ID)
		ids[p.ID] = true
	}
}

func TestPersonService_ConcurrentSameName(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t, model.SeedPersons())

	const n = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Create(ctx, "Racer", "1"); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, 5, repo.Count())
}
