package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-service/internal/jwt"
	"github.com/sbilibin2017/gw-user-service/internal/middlewares"
	"github.com/sbilibin2017/gw-user-service/internal/models"
	"github.com/sbilibin2017/gw-user-service/internal/password"
	"github.com/sbilibin2017/gw-user-service/internal/repositories"
	"github.com/sbilibin2017/gw-user-service/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memStore keeps users in memory with the same contract as the SQL repositories.
type memStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.UserDB
}

func (s *memStore) GetByUsernameOrEmail(_ context.Context, username, email *string) (*models.UserDB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if (username != nil && u.Username == strings.ToLower(*username)) ||
			(email != nil && u.Email == strings.ToLower(*email)) {
			snapshot := *u
			return &snapshot, nil
		}
	}
	return nil, nil
}

func (s *memStore) GetByID(_ context.Context, userID uuid.UUID) (*models.UserDB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, nil
	}
	snapshot := *u
	return &snapshot, nil
}

func (s *memStore) Create(_ context.Context, nu models.NewUser) (*models.UserDB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == nu.Username || u.Email == nu.Email {
			return nil, repositories.ErrUniqueViolation
		}
	}
	u := &models.UserDB{
		UserID:     uuid.New(),
		Username:   nu.Username,
		Email:      nu.Email,
		FullName:   nu.FullName,
		Avatar:     nu.Avatar,
		CoverImage: nu.CoverImage,
		Password:   nu.Password,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	s.users[u.UserID] = u
	snapshot := *u
	return &snapshot, nil
}

func (s *memStore) SetRefreshToken(_ context.Context, userID uuid.UUID, digest *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.RefreshToken = digest
	return nil
}

func (s *memStore) RotateRefreshToken(_ context.Context, userID uuid.UUID, currentDigest, nextDigest string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok || u.RefreshToken == nil || *u.RefreshToken != currentDigest {
		return repositories.ErrStaleRefreshToken
	}
	u.RefreshToken = &nextDigest
	return nil
}

func (s *memStore) UpdatePassword(_ context.Context, userID uuid.UUID, digest string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Password = digest
	return nil
}

type memDenylist struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func (d *memDenylist) Revoke(_ context.Context, tokenID string, _ time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[tokenID] = true
	return nil
}

func (d *memDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.revoked[tokenID], nil
}

type localUploader struct{}

func (localUploader) Upload(_ context.Context, localPath string) (string, error) {
	defer os.Remove(localPath)
	return "http://cdn.local/media/" + uuid.NewString() + ".png", nil
}

func newFlowRouter(t *testing.T) http.Handler {
	t.Helper()

	store := &memStore{users: map[uuid.UUID]*models.UserDB{}}
	tokens := jwt.New(jwt.WithAccessSecret("access-secret"), jwt.WithRefreshSecret("refresh-secret"))
	auth := services.NewAuthService(store, store, tokens, password.New(bcrypt.MinCost),
		&memDenylist{revoked: map[string]bool{}}, localUploader{}, nil)

	cookies := CookieConfig{}
	uploads := testUploads(t)

	r := chi.NewRouter()
	r.Route("/api/v1/users", func(r chi.Router) {
		r.Post("/register", NewRegisterHandler(auth, uploads))
		r.Post("/login", NewLoginHandler(auth, cookies))
		r.Post("/refresh-token", NewRefreshTokenHandler(auth, cookies))

		r.Group(func(r chi.Router) {
			r.Use(middlewares.AuthMiddleware(tokens, auth))
			r.Post("/logout", NewLogoutHandler(auth, middlewares.GetClaimsFromContext, cookies))
			r.Post("/current-user", NewCurrentUserHandler(middlewares.GetUserFromContext))
		})
	})
	return r
}

func TestUserSessionFlow(t *testing.T) {
	router := newFlowRouter(t)

	do := func(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	// register
	body, contentType := multipartBody(t,
		map[string]string{"fullName": "Alice", "email": "Alice@X.com", "username": "alice", "password": "pw123"},
		map[string]string{"avatar": "me.png"},
	)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", body)
	req.Header.Set("Content-Type", contentType)
	rr := do(req)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	// same email, different casing
	body, contentType = multipartBody(t,
		map[string]string{"fullName": "Other", "email": "ALICE@x.com", "username": "other", "password": "pw"},
		map[string]string{"avatar": "me.png"},
	)
	req = httptest.NewRequest(http.MethodPost, "/api/v1/users/register", body)
	req.Header.Set("Content-Type", contentType)
	assert.Equal(t, http.StatusConflict, do(req).Code)

	// login
	rr = do(httptest.NewRequest(http.MethodPost, "/api/v1/users/login",
		bytes.NewBufferString(`{"username":"alice","password":"pw123"}`)))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	access := cookieByName(rr, "accessToken")
	refresh := cookieByName(rr, "refreshToken")
	require.NotNil(t, access)
	require.NotNil(t, refresh)

	// wrong password
	rr = do(httptest.NewRequest(http.MethodPost, "/api/v1/users/login",
		bytes.NewBufferString(`{"username":"alice","password":"wrong"}`)))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Nil(t, cookieByName(rr, "accessToken"))

	// authenticated request
	rr = do(httptest.NewRequest(http.MethodPost, "/api/v1/users/current-user", nil), access)
	assert.Equal(t, http.StatusOK, rr.Code)

	// logout
	rr = do(httptest.NewRequest(http.MethodPost, "/api/v1/users/logout", nil), access)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	cleared := cookieByName(rr, "accessToken")
	require.NotNil(t, cleared)
	assert.Less(t, cleared.MaxAge, 0)

	// old refresh token no longer works
	rr = do(httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh-token", nil), refresh)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// old access token is revoked
	rr = do(httptest.NewRequest(http.MethodPost, "/api/v1/users/current-user", nil), access)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestUserSessionFlow_RefreshRotation(t *testing.T) {
	router := newFlowRouter(t)

	body, contentType := multipartBody(t,
		map[string]string{"fullName": "Bob", "email": "bob@x.com", "username": "bob", "password": "pw123"},
		map[string]string{"avatar": "me.png"},
	)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/users/login",
		bytes.NewBufferString(`{"email":"BOB@x.com","password":"pw123"}`)))
	require.Equal(t, http.StatusOK, rr.Code)
	original := cookieByName(rr, "refreshToken")
	require.NotNil(t, original)

	refreshWith := func(c *http.Cookie) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh-token", nil)
		req.AddCookie(c)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	first := refreshWith(original)
	require.Equal(t, http.StatusOK, first.Code)
	rotated := cookieByName(first, "refreshToken")
	require.NotNil(t, rotated)
	assert.NotEqual(t, original.Value, rotated.Value)

	assert.Equal(t, http.StatusUnauthorized, refreshWith(original).Code)
	assert.Equal(t, http.StatusOK, refreshWith(rotated).Code)
}
