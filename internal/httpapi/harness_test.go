// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package httpapi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"

	"github.com/cinedex/cinedex/internal/access"
	"github.com/cinedex/cinedex/internal/auth"
	authmocks "github.com/cinedex/cinedex/internal/auth/mocks"
	"github.com/cinedex/cinedex/internal/catalog"
	catalogmocks "github.com/cinedex/cinedex/internal/catalog/mocks"
	"github.com/cinedex/cinedex/internal/httpapi"
)

// harness wires a complete server over mock repositories, so requests
// travel the real middleware, services, and access control.
type harness struct {
	server *httpapi.Server
	issuer *auth.JWTIssuer

	users     *authmocks.MockUserRepository
	resetRepo *authmocks.MockPasswordResetRepository
	hasher    *authmocks.MockPasswordHasher
	mailer    *authmocks.MockMailer
	films     *catalogmocks.MockFilmRepository
	ratings   *catalogmocks.MockRatingRepository
	comments  *catalogmocks.MockCommentRepository
	favorites *catalogmocks.MockFavoriteRepository
}

func newHarness(t *testing.T, mutate ...func(*httpapi.Config)) *harness {
	t.Helper()

	h, cfg := newTestConfig(t)
	for _, m := range mutate {
		m(&cfg)
	}

	server, err := httpapi.NewServer(cfg)
	require.NoError(t, err)
	h.server = server
	return h
}

// newTestConfig builds the mock-backed services and a server config
// without assembling the server, so tests can probe NewServer itself.
func newTestConfig(t *testing.T) (*harness, httpapi.Config) {
	t.Helper()

	h := &harness{
		users:     authmocks.NewMockUserRepository(t),
		resetRepo: authmocks.NewMockPasswordResetRepository(t),
		hasher:    authmocks.NewMockPasswordHasher(t),
		mailer:    authmocks.NewMockMailer(t),
		films:     catalogmocks.NewMockFilmRepository(t),
		ratings:   catalogmocks.NewMockRatingRepository(t),
		comments:  catalogmocks.NewMockCommentRepository(t),
		favorites: catalogmocks.NewMockFavoriteRepository(t),
	}

	issuer, err := auth.NewJWTIssuer([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)
	h.issuer = issuer

	authSvc, err := auth.NewAuthService(h.users, h.resetRepo, h.hasher, issuer)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	resetSvc, err := auth.NewPasswordResetService(h.users, h.resetRepo, h.hasher, authmocks.TxPassthrough{}, h.mailer, logger)
	require.NoError(t, err)

	accessControl := access.NewStaticAccessControl(catalog.NewOwnerResolver(h.films, h.comments))
	catalogSvc := catalog.NewService(catalog.ServiceConfig{
		FilmRepo:      h.films,
		CommentRepo:   h.comments,
		FavoriteRepo:  h.favorites,
		AccessControl: accessControl,
	})
	ratingSvc := catalog.NewRatingService(catalog.RatingServiceConfig{
		RatingRepo:    h.ratings,
		FilmRepo:      h.films,
		AccessControl: accessControl,
	})

	cfg := httpapi.Config{
		Addr:    "127.0.0.1:0",
		Auth:    authSvc,
		Resets:  resetSvc,
		Catalog: catalogSvc,
		Ratings: ratingSvc,
		Logger:  logger,
	}
	return h, cfg
}

// do runs a request through the assembled router without a listener.
func (h *harness) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.server.Handler().ServeHTTP(rec, req)
	return rec
}

// doRaw is do with a verbatim body, for malformed-JSON cases.
func (h *harness) doRaw(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.server.Handler().ServeHTTP(rec, req)
	return rec
}

func (h *harness) tokenFor(t *testing.T, user *auth.User) string {
	t.Helper()
	token, err := h.issuer.Issue(user)
	require.NoError(t, err)
	return token
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), "body: %s", rec.Body.String())
}

// errMessage pulls the message out of the error envelope.
func errMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	decodeJSON(t, rec, &body)
	return body.Message
}

// errField pulls details.field out of the error envelope.
func errField(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Details struct {
			Field string `json:"field"`
		} `json:"details"`
	}
	decodeJSON(t, rec, &body)
	return body.Details.Field
}

func memberUser() *auth.User {
	now := time.Now().UTC().Truncate(time.Second)
	return &auth.User{
		ID:           ulid.Make(),
		Email:        "viewer@example.com",
		Name:         "Viewer",
		PasswordHash: "$argon2id$stored",
		Role:         "member",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func adminUser() *auth.User {
	u := memberUser()
	u.Email = "admin@example.com"
	u.Name = "Admin"
	u.Role = "admin"
	return u
}

func sampleFilm(createdBy ulid.ULID) *catalog.Film {
	now := time.Now().UTC().Truncate(time.Second)
	return &catalog.Film{
		ID:          ulid.Make(),
		Title:       "Blade Runner",
		Synopsis:    "A blade runner must pursue replicants.",
		ReleaseYear: 1982,
		Genres:      []string{"sci-fi", "noir"},
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
