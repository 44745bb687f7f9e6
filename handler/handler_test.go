package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/emzola/critica/config"
	"github.com/emzola/critica/data"
	"github.com/emzola/critica/internal/jsonlog"
	"github.com/emzola/critica/service"
	"github.com/jellydator/ttlcache/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tokens handed out by the stub service. All are well-formed 26-byte values so
// they pass the plaintext check in the authenticate middleware.
const (
	userToken  = "USERUSERUSERUSERUSERUSER26"
	adminToken = "ADMINADMINADMINADMINADMIN2"
)

// stubService is a canned implementation of service.Service for exercising
// routing, middleware and status code mapping.
type stubService struct {
	title   *data.Title
	revoked bool
}

func (s *stubService) CreateCategory(name, slug string) (*data.Category, error) {
	return &data.Category{Name: name, Slug: slug}, nil
}

func (s *stubService) ListCategories(search string, filters data.Filters) ([]*data.Category, data.Metadata, error) {
	return []*data.Category{}, data.Metadata{}, nil
}

func (s *stubService) DeleteCategory(slug string) error {
	return service.ErrRecordNotFound
}

func (s *stubService) CreateGenre(name, slug string) (*data.Genre, error) {
	return &data.Genre{Name: name, Slug: slug}, nil
}

func (s *stubService) ListGenres(search string, filters data.Filters) ([]*data.Genre, data.Metadata, error) {
	return []*data.Genre{}, data.Metadata{}, nil
}

func (s *stubService) DeleteGenre(slug string) error {
	return service.ErrRecordNotFound
}

func (s *stubService) CreateTitle(name string, year int32, description, categorySlug string, genreSlugs []string) (*data.Title, error) {
	if name == "" {
		return nil, &service.ValidationError{Fields: map[string]string{"name": "must be provided"}}
	}
	s.title = &data.Title{ID: 1, Name: name, Year: year, Description: description}
	return s.title, nil
}

func (s *stubService) GetTitle(titleID int64) (*data.Title, error) {
	if s.title == nil || titleID != s.title.ID {
		return nil, service.ErrRecordNotFound
	}
	return s.title, nil
}

func (s *stubService) UpdateTitle(titleID int64, name *string, year *int32, description, categorySlug *string, genreSlugs []string) (*data.Title, error) {
	return nil, service.ErrRecordNotFound
}

func (s *stubService) DeleteTitle(titleID int64) error {
	return service.ErrRecordNotFound
}

func (s *stubService) ListTitles(name, categorySlug, genreSlug string, year int, filters data.Filters) ([]*data.Title, data.Metadata, error) {
	return []*data.Title{}, data.Metadata{}, nil
}

func (s *stubService) CreateReview(titleID int64, author *data.User, text string, score int8) (*data.Review, error) {
	return nil, service.ErrRecordNotFound
}

func (s *stubService) GetReview(titleID, reviewID int64) (*data.Review, error) {
	return nil, service.ErrRecordNotFound
}

func (s *stubService) UpdateReview(titleID, reviewID int64, user *data.User, text *string, score *int8) (*data.Review, error) {
	return nil, service.ErrRecordNotFound
}

func (s *stubService) DeleteReview(titleID, reviewID int64, user *data.User) error {
	return service.ErrRecordNotFound
}

func (s *stubService) ListReviews(titleID int64, filters data.Filters) ([]*data.Review, data.Metadata, error) {
	return nil, data.Metadata{}, service.ErrRecordNotFound
}

func (s *stubService) CreateComment(titleID, reviewID int64, author *data.User, text string) (*data.Comment, error) {
	return nil, service.ErrRecordNotFound
}

func (s *stubService) GetComment(titleID, reviewID, commentID int64) (*data.Comment, error) {
	return nil, service.ErrRecordNotFound
}

func (s *stubService) UpdateComment(titleID, reviewID, commentID int64, user *data.User, text *string) (*data.Comment, error) {
	return nil, service.ErrRecordNotFound
}

func (s *stubService) DeleteComment(titleID, reviewID, commentID int64, user *data.User) error {
	return service.ErrRecordNotFound
}

func (s *stubService) ListComments(titleID, reviewID int64, filters data.Filters) ([]*data.Comment, data.Metadata, error) {
	return nil, data.Metadata{}, service.ErrRecordNotFound
}

func (s *stubService) SignupUser(username, email string) (*data.User, error) {
	if username == "me" {
		return nil, &service.ValidationError{Fields: map[string]string{"username": "the username 'me' is reserved"}}
	}
	return &data.User{ID: 3, Username: username, Email: email, Role: data.RoleUser}, nil
}

func (s *stubService) CreateUser(username, email, firstName, lastName, bio string, role data.Role) (*data.User, error) {
	return &data.User{ID: 4, Username: username, Email: email, Role: role}, nil
}

func (s *stubService) GetUser(username string) (*data.User, error) {
	return nil, service.ErrRecordNotFound
}

func (s *stubService) UpdateUser(username string, email, firstName, lastName, bio *string, role *data.Role) (*data.User, error) {
	return nil, service.ErrRecordNotFound
}

func (s *stubService) DeleteUser(username string) error {
	return service.ErrRecordNotFound
}

func (s *stubService) ListUsers(search string, filters data.Filters) ([]*data.User, data.Metadata, error) {
	return []*data.User{}, data.Metadata{}, nil
}

func (s *stubService) GetUserForToken(tokenScope string, tokenPlaintext string) (*data.User, error) {
	switch tokenPlaintext {
	case userToken:
		if s.revoked {
			return nil, service.ErrRecordNotFound
		}
		return &data.User{ID: 1, Username: "reader", Role: data.RoleUser}, nil
	case adminToken:
		return &data.User{ID: 2, Username: "boss", Role: data.RoleAdmin}, nil
	}
	return nil, service.ErrRecordNotFound
}

func (s *stubService) CreateAccessToken(username string, confirmationCode string) (*data.Token, error) {
	if username == "ghost" {
		return nil, service.ErrRecordNotFound
	}
	return nil, &service.ValidationError{Fields: map[string]string{"confirmation_code": "invalid or expired confirmation code"}}
}

func (s *stubService) DeleteAccessTokens(userID int64) error {
	s.revoked = true
	return nil
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	logger := jsonlog.New(io.Discard, jsonlog.LevelOff)
	cache := ttlcache.New(ttlcache.WithTTL[string, *data.User](30 * time.Minute))
	return New(config.Config{}, logger, cache, &stubService{}).Routes()
}

func do(t *testing.T, h http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.RemoteAddr = "10.0.0.1:5000"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthcheck(t *testing.T) {
	h := newTestHandler(t)
	rec := do(t, h, http.MethodGet, "/v1/healthcheck", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "available")
}

func TestSingleCategoryGetIsMethodNotAllowed(t *testing.T) {
	h := newTestHandler(t)
	rec := do(t, h, http.MethodGet, "/v1/categories/films", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAnonymousWriteIsForbidden(t *testing.T) {
	h := newTestHandler(t)
	rec := do(t, h, http.MethodPost, "/v1/titles", "", `{"name":"Solaris","year":1972,"genre":["drama"]}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestNonAdminWriteIsForbidden(t *testing.T) {
	h := newTestHandler(t)
	rec := do(t, h, http.MethodPost, "/v1/titles", userToken, `{"name":"Solaris","year":1972,"genre":["drama"]}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminCreatesTitle(t *testing.T) {
	h := newTestHandler(t)
	rec := do(t, h, http.MethodPost, "/v1/titles", adminToken, `{"name":"Solaris","year":1972,"genre":["drama"]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/v1/titles/1", rec.Header().Get("Location"))
}

func TestValidationFailureIsBadRequest(t *testing.T) {
	h := newTestHandler(t)
	rec := do(t, h, http.MethodPost, "/v1/titles", adminToken, `{"name":"","year":1972,"genre":["drama"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "must be provided")
}

func TestMalformedBearerTokenIsUnauthorized(t *testing.T) {
	h := newTestHandler(t)
	rec := do(t, h, http.MethodGet, "/v1/titles", "short", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUnknownTitleIsNotFound(t *testing.T) {
	h := newTestHandler(t)
	rec := do(t, h, http.MethodGet, "/v1/titles/42", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUsersMe(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodGet, "/v1/users/me", userToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "reader")

	// Plain users cannot look up other accounts
	rec = do(t, h, http.MethodGet, "/v1/users/boss", userToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The caller's own account is not deletable through the alias
	rec = do(t, h, http.MethodDelete, "/v1/users/me", adminToken, "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRevokedTokenStopsAuthenticating(t *testing.T) {
	h := newTestHandler(t)

	// Prime the token cache with a successful request
	rec := do(t, h, http.MethodGet, "/v1/users/me", userToken, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodDelete, "/v1/auth/token", userToken, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	// The cached entry must be gone along with the token
	rec = do(t, h, http.MethodGet, "/v1/users/me", userToken, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSignupStatusCodes(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/v1/auth/signup", "", `{"username":"reader","email":"reader@example.com"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/v1/auth/signup", "", `{"username":"me","email":"me@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown username on token exchange is a 404
	rec = do(t, h, http.MethodPost, "/v1/auth/token", "", `{"username":"ghost","confirmation_code":"ABCDEFGHIJKLMNOPQRSTUVWXYZ"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
