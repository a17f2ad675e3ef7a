// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/libris/internal/api"
	"github.com/taibuivan/libris/internal/auth"
	"github.com/taibuivan/libris/internal/catalog/book"
	"github.com/taibuivan/libris/internal/catalog/book/booktest"
	"github.com/taibuivan/libris/internal/platform/config"
	"github.com/taibuivan/libris/internal/platform/constants"
	"github.com/taibuivan/libris/internal/platform/sec"
)

type testServer struct {
	t      *testing.T
	router http.Handler
	tokens *sec.TokenService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.Config{ServerPort: "0", Environment: "test"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokens, err := sec.NewTokenService("integration-secret", constants.AuthIssuer)
	require.NoError(t, err)

	check, err := auth.StaticCredentials("admin", "password")
	require.NoError(t, err)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{})
	bookService := book.NewService(booktest.NewMemoryRepository(), logger)

	router := api.NewRouter(ctx, cfg, logger, tokens, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(auth.NewService(check, tokens, nil, constants.AccessTokenTTL, logger)),
		Book:      book.NewHandler(bookService),
	})

	return &testServer{t: t, router: router, tokens: tokens}
}

func (s *testServer) do(method, target, body, token string) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	request := httptest.NewRequest(method, target, reader)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, request)
	return recorder
}

func (s *testServer) login() string {
	s.t.Helper()

	recorder := s.do(http.MethodPost, "/login", `{"username":"admin","password":"password"}`, "")
	require.Equal(s.t, http.StatusOK, recorder.Code)

	var token string
	require.NoError(s.t, json.Unmarshal(recorder.Body.Bytes(), &token))
	return token
}

func (s *testServer) create(token, body string) book.Book {
	s.t.Helper()

	recorder := s.do(http.MethodPost, "/books", body, token)
	require.Equal(s.t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var created book.Book
	require.NoError(s.t, json.Unmarshal(recorder.Body.Bytes(), &created))
	return created
}

func decodeBooks(t *testing.T, recorder *httptest.ResponseRecorder) []book.Book {
	t.Helper()
	var books []book.Book
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &books))
	return books
}

// # Scenarios

func TestScenario_LoginWithValidCredentials(t *testing.T) {
	s := newTestServer(t)

	recorder := s.do(http.MethodPost, "/login", `{"username":"admin","password":"password"}`, "")
	assert.Equal(t, http.StatusOK, recorder.Code)

	var token string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &token))
	assert.NotEmpty(t, token)
}

func TestScenario_LoginWithWrongPassword(t *testing.T) {
	s := newTestServer(t)

	recorder := s.do(http.MethodPost, "/login", `{"username":"admin","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, recorder.Body.String())
}

func TestScenario_CreateBook(t *testing.T) {
	s := newTestServer(t)
	before := time.Now().Add(-time.Second)

	created := s.create(s.login(), `{"title":"The Hobbit","author":"J.R.R. Tolkien","published_year":1937}`)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "The Hobbit", created.Title)
	assert.Equal(t, "J.R.R. Tolkien", created.Author)
	require.NotNil(t, created.PublishedYear)
	assert.Equal(t, 1937, *created.PublishedYear)
	assert.WithinRange(t, created.CreatedAt, before, time.Now().Add(time.Second))
}

func TestScenario_SearchByTitleAndAuthor(t *testing.T) {
	s := newTestServer(t)
	token := s.login()

	s.create(token, `{"title":"Rust in Action","author":"Tim"}`)
	s.create(token, `{"title":"Programming Rust","author":"Jim"}`)
	s.create(token, `{"title":"Rust Cookbook","author":"Vignesh"}`)

	recorder := s.do(http.MethodGet, "/books/search?title=Rust&author=Vignesh", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	books := decodeBooks(t, recorder)
	require.Len(t, books, 1)
	assert.Equal(t, "Vignesh", books[0].Author)
}

func TestScenario_UpdateWithEmptyTitle(t *testing.T) {
	s := newTestServer(t)
	token := s.login()
	created := s.create(token, `{"title":"Dune","author":"Frank Herbert"}`)

	recorder := s.do(http.MethodPut, "/books/"+created.ID, `{"title":""}`, token)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "title: Title cannot be empty")
}

func TestScenario_DeleteThenGet(t *testing.T) {
	s := newTestServer(t)
	token := s.login()
	created := s.create(token, `{"title":"Dune","author":"Frank Herbert"}`)

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/books/"+created.ID, "", token).Code)

	recorder := s.do(http.MethodGet, "/books/"+created.ID, "", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.JSONEq(t, `{"error":"Book not found"}`, recorder.Body.String())
}

// # Properties

func TestMutationsRequireValidBearerToken(t *testing.T) {
	s := newTestServer(t)
	token := s.login()
	created := s.create(token, `{"title":"Dune","author":"Frank Herbert"}`)

	expired, err := s.tokens.GenerateAccessToken("admin", -time.Minute)
	require.NoError(t, err)

	foreignService, err := sec.NewTokenService("some-other-secret", constants.AuthIssuer)
	require.NoError(t, err)
	foreign, err := foreignService.GenerateAccessToken("admin", time.Hour)
	require.NoError(t, err)

	headers := map[string]string{
		"missing":        "",
		"wrong_scheme":   "Token " + token,
		"no_scheme":      token,
		"garbage":        "Bearer garbage",
		"expired":        "Bearer " + expired,
		"bad_signature":  "Bearer " + foreign,
		"lowercase_auth": "bearer " + token,
	}

	routes := []struct {
		method string
		target string
		body   string
	}{
		{http.MethodPost, "/books", `{"title":"T","author":"A"}`},
		{http.MethodPut, "/books/" + created.ID, `{"title":"T"}`},
		{http.MethodDelete, "/books/" + created.ID, ""},
	}

	for name, header := range headers {
		for _, route := range routes {
			t.Run(name+"_"+route.method, func(t *testing.T) {
				var reader io.Reader
				if route.body != "" {
					reader = strings.NewReader(route.body)
				}
				request := httptest.NewRequest(route.method, route.target, reader)
				if header != "" {
					request.Header.Set("Authorization", header)
				}

				recorder := httptest.NewRecorder()
				s.router.ServeHTTP(recorder, request)

				assert.Equal(t, http.StatusUnauthorized, recorder.Code)
				assert.JSONEq(t, `{"error":"Unauthorized"}`, recorder.Body.String())
			})
		}
	}

	// Nothing was changed by the rejected requests.
	recorder := s.do(http.MethodGet, "/books", "", "")
	books := decodeBooks(t, recorder)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
}

func TestReadsArePublic(t *testing.T) {
	s := newTestServer(t)
	created := s.create(s.login(), `{"title":"Dune","author":"Frank Herbert"}`)

	for _, target := range []string{"/books", "/books/" + created.ID, "/books/search", "/books/search?author=herbert"} {
		assert.Equal(t, http.StatusOK, s.do(http.MethodGet, target, "", "").Code, target)
	}
}

func TestSearchWithoutFiltersReturnsEverything(t *testing.T) {
	s := newTestServer(t)
	token := s.login()
	for _, title := range []string{"A", "B", "C"} {
		s.create(token, `{"title":"`+title+`","author":"X"}`)
	}

	all := decodeBooks(t, s.do(http.MethodGet, "/books", "", ""))
	searched := decodeBooks(t, s.do(http.MethodGet, "/books/search", "", ""))
	assert.Len(t, all, 3)
	assert.Equal(t, all, searched)
}

func TestSearchIntersectsFilters(t *testing.T) {
	s := newTestServer(t)
	token := s.login()
	s.create(token, `{"title":"Rust in Action","author":"Tim"}`)
	s.create(token, `{"title":"Go in Action","author":"Bill"}`)
	s.create(token, `{"title":"Rust Cookbook","author":"Tim"}`)

	byTitle := decodeBooks(t, s.do(http.MethodGet, "/books/search?title=Action", "", ""))
	byAuthor := decodeBooks(t, s.do(http.MethodGet, "/books/search?author=Tim", "", ""))
	both := decodeBooks(t, s.do(http.MethodGet, "/books/search?title=Action&author=Tim", "", ""))

	var intersection []book.Book
	for _, a := range byTitle {
		for _, b := range byAuthor {
			if a.ID == b.ID {
				intersection = append(intersection, a)
			}
		}
	}
	assert.Equal(t, intersection, both)
	require.Len(t, both, 1)
	assert.Equal(t, "Rust in Action", both[0].Title)
}

func TestUpdatePreservesIdentity(t *testing.T) {
	s := newTestServer(t)
	token := s.login()
	created := s.create(token, `{"title":"Draft","author":"Someone","published_year":2000}`)

	for _, body := range []string{
		`{"title":"Final"}`,
		`{"author":"Someone Else"}`,
		`{"published_year":2001}`,
		`{"title":"Final 2","author":"Another","published_year":2002}`,
		`{}`,
	} {
		recorder := s.do(http.MethodPut, "/books/"+created.ID, body, token)
		require.Equal(t, http.StatusOK, recorder.Code, body)

		var updated book.Book
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &updated))
		assert.Equal(t, created.ID, updated.ID, body)
		assert.True(t, created.CreatedAt.Equal(updated.CreatedAt), body)
	}
}

func TestUpdateUnknownBook(t *testing.T) {
	s := newTestServer(t)

	recorder := s.do(http.MethodPut, "/books/0190c2d5-0000-7000-8000-000000000000", `{"title":"X"}`, s.login())
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestDeleteUnknownBookIsNoContent(t *testing.T) {
	s := newTestServer(t)

	recorder := s.do(http.MethodDelete, "/books/0190c2d5-0000-7000-8000-000000000000", "", s.login())
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestValidationListsEveryField(t *testing.T) {
	s := newTestServer(t)

	recorder := s.do(http.MethodPost, "/books", `{"title":" ","author":"","published_year":-1}`, s.login())
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t,
		"title: Title cannot be empty; author: Author cannot be empty; published_year: Published year cannot be negative",
		body["error"],
	)
}

// # Infrastructure

func TestResponsesCarryRequestID(t *testing.T) {
	s := newTestServer(t)

	recorder := s.do(http.MethodGet, "/books", "", "")
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	recorder := s.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"status":"ok"}`, recorder.Body.String())
}

func TestReadiness(t *testing.T) {
	healthy := func(context.Context) error { return nil }
	broken := func(context.Context) error { return errors.New("dial tcp: connection refused") }

	tests := []struct {
		name   string
		deps   api.HealthDependencies
		status int
		body   string
	}{
		{"all_healthy", api.HealthDependencies{CheckDatabase: healthy, CheckCache: healthy}, http.StatusOK,
			`{"status":"ready","checks":[{"name":"postgres","ok":true},{"name":"redis","ok":true}]}`},
		{"redis_not_configured", api.HealthDependencies{CheckDatabase: healthy}, http.StatusOK,
			`{"status":"ready","checks":[{"name":"postgres","ok":true}]}`},
		{"database_down", api.HealthDependencies{CheckDatabase: broken}, http.StatusServiceUnavailable,
			`{"status":"degraded","checks":[{"name":"postgres","ok":false,"error":"unavailable"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, readiness := api.NewHealthHandlers(tt.deps)

			recorder := httptest.NewRecorder()
			readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.status, recorder.Code)
			assert.JSONEq(t, tt.body, recorder.Body.String())
		})
	}
}
