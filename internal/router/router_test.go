package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lostyu/test-vercel-phonebook-depo/internal/config"
	"github.com/lostyu/test-vercel-phonebook-depo/internal/handler"
	"github.com/lostyu/test-vercel-phonebook-depo/internal/model"
	"github.com/lostyu/test-vercel-phonebook-depo/internal/repository"
	"github.com/lostyu/test-vercel-phonebook-depo/internal/server"
	"github.com/lostyu/test-vercel-phonebook-depo/internal/service"
)

type testApp struct {
	echo  *echo.Echo
	repos *repository.Repositories
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<div id=\"root\"></div>"), 0o644))

	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "0",
			CORSAllowedOrigins: []string{"*"},
			StaticDir:          staticDir,
		},
		RateLimit: config.RateLimitConfig{Enabled: false},
	}

	logger := zerolog.Nop()
	s, err := server.New(cfg, &logger, nil)
	require.NoError(t, err)

	repos := repository.NewRepositories(s)
	services, err := service.NewService(s, repos)
	require.NoError(t, err)

	return &testApp{
		echo:  NewRouter(s, handler.NewHandlers(s, repos, services)),
		repos: repos,
	}
}

func (a *testApp) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

func decodePerson(t *testing.T, rec *httptest.ResponseRecorder) model.Person {
	t.Helper()

	var p model.Person
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

func TestScenario(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/api/persons", `{"name":"Mary Poppendieck","number":"1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"name must be unique"}`, rec.Body.String())

	rec = app.do(http.MethodPost, "/api/persons", `{"name":"New Person","number":"000"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.Person{ID: 5, Name: "New Person", Number: "000"}, decodePerson(t, rec))

	rec = app.do(http.MethodGet, "/api/persons/5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.Person{ID: 5, Name: "New Person", Number: "000"}, decodePerson(t, rec))

	rec = app.do(http.MethodDelete, "/api/persons/5", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = app.do(http.MethodGet, "/api/persons/5", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Person not found"}`, rec.Body.String())
}

func TestListPersons(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/api/persons", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var persons []model.Person
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &persons))
	assert.Equal(t, model.SeedPersons(), persons)
}

func TestListPersons_Empty(t *testing.T) {
	app := newTestApp(t)
	app.repos.Persons.Replace(nil)

	rec := app.do(http.MethodGet, "/api/persons", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetPerson(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name   string
		target string
		status int
		body   string
	}{
		{"found", "/api/persons/1", http.StatusOK, `{"id":1,"name":"Arto Hellas","number":"040-123456"}`},
		{"unknown id", "/api/persons/99", http.StatusNotFound, `{"error":"Person not found"}`},
		{"non-numeric id", "/api/persons/abc", http.StatusBadRequest, `{"error":"Invalid ID format (must be a number)"}`},
		{"decimal form of an id", "/api/persons/1.0", http.StatusOK, `{"id":1,"name":"Arto Hellas","number":"040-123456"}`},
		{"exponent form of an id", "/api/persons/4e0", http.StatusOK, `{"id":4,"name":"Mary Poppendieck","number":"39-23-6423122"}`},
		{"fractional id", "/api/persons/1.5", http.StatusNotFound, `{"error":"Person not found"}`},
		{"id beyond int range", "/api/persons/99999999999999999999", http.StatusNotFound, `{"error":"Person not found"}`},
		{"NaN id", "/api/persons/NaN", http.StatusBadRequest, `{"error":"Invalid ID format (must be a number)"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(http.MethodGet, tt.target, "")
			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestCreatePerson_RejectsWithoutChangingStore(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing name", `{"number":"1"}`, `{"error":"number or name missing"}`},
		{"missing number", `{"name":"Someone"}`, `{"error":"number or name missing"}`},
		{"empty name", `{"name":"","number":"1"}`, `{"error":"number or name missing"}`},
		{"duplicate name", `{"name":"Arto Hellas","number":"1"}`, `{"error":"name must be unique"}`},
		{"malformed json", `{"name":`, `{"error":"malformed request body"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)

			rec := app.do(http.MethodPost, "/api/persons", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, tt.want, rec.Body.String())
			assert.Equal(t, model.SeedPersons(), app.repos.Persons.All())
		})
	}
}

func TestCreatePerson_NonJSONBodyCountsAsMissingFields(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/persons", strings.NewReader("name=Ann&number=1"))
	req.Header.Set(echo.HeaderContentType, echo.MIMETextPlain)
	rec := httptest.NewRecorder()
	app.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"number or name missing"}`, rec.Body.String())
	assert.Equal(t, model.SeedPersons(), app.repos.Persons.All())
}

func TestCreatePerson_IsCaseSensitive(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/api/persons", `{"name":"arto hellas","number":"1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, decodePerson(t, rec).ID)
}

func TestCreatePerson_IDFollowsMaximum(t *testing.T) {
	app := newTestApp(t)
	app.repos.Persons.Replace([]model.Person{{ID: 7, Name: "A", Number: "1"}, {ID: 3, Name: "B", Number: "2"}})

	rec := app.do(http.MethodPost, "/api/persons", `{"name":"C","number":"3"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 8, decodePerson(t, rec).ID)

	app.repos.Persons.Replace(nil)

	rec = app.do(http.MethodPost, "/api/persons", `{"name":"D","number":"4"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decodePerson(t, rec).ID)
}

func TestUpdateNumber(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPut, "/api/persons/2", `{"name":"Ignored","number":"555"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.Person{ID: 2, Name: "Ada Lovelace", Number: "555"}, decodePerson(t, rec))

	rec = app.do(http.MethodGet, "/api/persons/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.Person{ID: 2, Name: "Ada Lovelace", Number: "555"}, decodePerson(t, rec))

	// Position in the collection is kept.
	assert.Equal(t, 2, app.repos.Persons.All()[1].ID)
}

func TestUpdateNumber_Errors(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name   string
		target string
		body   string
		status int
		want   string
	}{
		{"unknown id", "/api/persons/99", `{"number":"1"}`, http.StatusNotFound, `{"error":"Person not found"}`},
		{"non-numeric id", "/api/persons/abc", `{"number":"1"}`, http.StatusNotFound, `{"error":"Person not found"}`},
		{"fractional id", "/api/persons/1.5", `{"number":"1"}`, http.StatusNotFound, `{"error":"Person not found"}`},
		{"missing number", "/api/persons/1", `{"name":"Arto Hellas"}`, http.StatusBadRequest, `{"error":"number missing"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(http.MethodPut, tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.want, rec.Body.String())
		})
	}

	assert.Equal(t, model.SeedPersons(), app.repos.Persons.All())
}

func TestWriteRoutes_AcceptDecimalIDs(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPut, "/api/persons/2.0", `{"number":"555"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.Person{ID: 2, Name: "Ada Lovelace", Number: "555"}, decodePerson(t, rec))

	rec = app.do(http.MethodDelete, "/api/persons/3.0", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, found := app.repos.Persons.FindByID(3)
	assert.False(t, found)
}

func TestDeletePerson_Errors(t *testing.T) {
	app := newTestApp(t)

	for _, target := range []string{"/api/persons/99", "/api/persons/abc", "/api/persons/2.5"} {
		t.Run(target, func(t *testing.T) {
			rec := app.do(http.MethodDelete, target, "")
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Empty(t, rec.Body.String())
		})
	}

	assert.Len(t, app.repos.Persons.All(), 4)
}

func TestInfo_ReflectsCurrentCount(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/info", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "<p>Phonebook has info for 4 people</p><p>"))

	require.Equal(t, http.StatusOK, app.do(http.MethodPost, "/api/persons", `{"name":"Fifth","number":"5"}`).Code)

	rec = app.do(http.MethodGet, "/info", "")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "<p>Phonebook has info for 5 people</p><p>"))
}

func TestUnknownEndpoint(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/api/unknown"},
		{http.MethodPatch, "/api/persons/1"},
		{http.MethodPost, "/info"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := app.do(tt.method, tt.target, "")
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.JSONEq(t, `{"error":"unknownEndpoint"}`, rec.Body.String())
		})
	}
}

func TestStaticAssets(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<div id="root"></div>`)
}

func TestSystemRoutes(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var health map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, "test", health["environment"])
	assert.EqualValues(t, 4, health["checks"].(map[string]interface{})["store"].(map[string]interface{})["records"])

	rec = app.do(http.MethodGet, "/docs", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Body.String(), "/docs/openapi.json")

	rec = app.do(http.MethodGet, "/docs/openapi.json", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, json.Valid(rec.Body.Bytes()))
}

func TestResponsesCarryRequestID(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/api/persons", "")
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}
