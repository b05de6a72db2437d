package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"library-catalog/internal/api"
	"library-catalog/internal/apperror"
	"library-catalog/internal/database"
	"library-catalog/internal/middleware"
	"library-catalog/internal/model"
	"library-catalog/internal/service"
	"library-catalog/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func restore() {
	newUser = service.NewUser
	createUser = store.CreateUser
	authenticate = service.Authenticate
	storeUserLookup = service.StoreUserLookup
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = api.NewValidator()
	return e
}

func newTokens(t *testing.T) *service.TokenManager {
	t.Helper()
	m, err := service.NewTokenManager(service.TokenConfig{Secret: "handler-secret", TTL: time.Minute})
	require.NoError(t, err)
	return m
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

type failingIssuer struct{}

func (failingIssuer) Issue(service.TokenClaims, time.Duration) (string, time.Time, error) {
	return "", time.Time{}, errors.New("sign")
}

func (failingIssuer) TTL() time.Duration { return time.Minute }

func TestRegisterHandler(t *testing.T) {
	t.Cleanup(restore)
	e := newEcho()
	tokens := newTokens(t)

	registered := map[string]bool{}
	createUser = func(ctx context.Context, db database.Querier, u *model.User) (*model.User, error) {
		if registered[u.Username] {
			return nil, apperror.ErrDuplicateRegistration
		}
		registered[u.Username] = true
		u.ID = len(registered)
		u.CreatedAt = time.Now()
		return u, nil
	}

	t.Run("created", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/register",
			`{"username":"alice","email":"alice@example.com","password":"wonderland"}`), rec)
		require.NoError(t, RegisterHandler(&database.FakeDB{}, tokens)(c))
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp api.TokenResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "bearer", resp.TokenType)
		require.Equal(t, int64(60), resp.ExpiresIn)
		claims, err := tokens.Verify(resp.AccessToken)
		require.NoError(t, err)
		require.Equal(t, "alice", claims.Subject)
		require.Equal(t, model.RoleUser, claims.Role)
	})

	t.Run("duplicate", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/register",
			`{"username":"alice","email":"other@example.com","password":"wonderland"}`), rec)
		require.NoError(t, RegisterHandler(&database.FakeDB{}, tokens)(c))
		require.Equal(t, http.StatusConflict, rec.Code)
		require.Contains(t, rec.Body.String(), string(apperror.CodeDuplicateRegistration))
	})

	t.Run("admin role", func(t *testing.T) {
		var created *model.User
		prev := createUser
		createUser = func(ctx context.Context, db database.Querier, u *model.User) (*model.User, error) {
			created = u
			return prev(ctx, db, u)
		}
		defer func() { createUser = prev }()

		rec := httptest.NewRecorder()
		c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/register",
			`{"username":"root","email":"root@example.com","password":"toor123","role":"admin"}`), rec)
		require.NoError(t, RegisterHandler(&database.FakeDB{}, tokens)(c))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Equal(t, model.RoleAdmin, created.Role)
		require.True(t, created.IsAdmin)
	})

	t.Run("validation", func(t *testing.T) {
		for _, body := range []string{
			`{"username":"bob","email":"not-an-email","password":"secret1"}`,
			`{"username":"bob","email":"bob@example.com"}`,
			`{"username":"bob","email":"bob@example.com","password":"secret1","role":"superuser"}`,
			`{"username":`,
		} {
			rec := httptest.NewRecorder()
			c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/register", body), rec)
			require.NoError(t, RegisterHandler(&database.FakeDB{}, tokens)(c))
			require.Equal(t, http.StatusBadRequest, rec.Code, body)
		}
	})

	t.Run("password over bcrypt byte limit", func(t *testing.T) {
		body := `{"username":"erin","email":"erin@example.com","password":"` + strings.Repeat("é", 60) + `"}`
		rec := httptest.NewRecorder()
		c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/register", body), rec)
		require.NoError(t, RegisterHandler(&database.FakeDB{}, tokens)(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), string(apperror.CodeBadRequest))
		require.Contains(t, rec.Body.String(), "72 bytes")
		require.False(t, registered["erin"])
	})

	t.Run("hash failure", func(t *testing.T) {
		newUser = func(string, string, string, model.Role) (*model.User, error) { return nil, errors.New("bcrypt") }
		defer func() { newUser = service.NewUser }()
		rec := httptest.NewRecorder()
		c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/register",
			`{"username":"carol","email":"carol@example.com","password":"secret1"}`), rec)
		require.NoError(t, RegisterHandler(&database.FakeDB{}, tokens)(c))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.NotContains(t, rec.Body.String(), "bcrypt")
	})

	t.Run("token failure", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/register",
			`{"username":"dave","email":"dave@example.com","password":"secret1"}`), rec)
		require.NoError(t, RegisterHandler(&database.FakeDB{}, failingIssuer{})(c))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestLoginHandler(t *testing.T) {
	t.Cleanup(restore)
	e := newEcho()
	tokens := newTokens(t)

	alice, err := service.NewUser("alice", "alice@example.com", "wonderland", model.RoleUser)
	require.NoError(t, err)
	storeUserLookup = func(database.Querier) service.UserLookup {
		return func(ctx context.Context, username string) (*model.User, error) {
			if username == "alice" {
				return alice, nil
			}
			return nil, apperror.ErrNotFound
		}
	}

	formRequest := func(username, password string) *http.Request {
		form := url.Values{"username": {username}, "password": {password}}
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		return req
	}

	t.Run("form ok", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, LoginHandler(&database.FakeDB{}, tokens)(e.NewContext(formRequest("alice", "wonderland"), rec)))
		require.Equal(t, http.StatusOK, rec.Code)
		var resp api.TokenResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		claims, err := tokens.Verify(resp.AccessToken)
		require.NoError(t, err)
		require.Equal(t, "alice", claims.Subject)
	})

	t.Run("json ok", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/login", `{"username":"alice","password":"wonderland"}`), rec)
		require.NoError(t, LoginHandler(&database.FakeDB{}, tokens)(c))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("failures are indistinguishable", func(t *testing.T) {
		wrong := httptest.NewRecorder()
		require.NoError(t, LoginHandler(&database.FakeDB{}, tokens)(e.NewContext(formRequest("alice", "Wonderland"), wrong)))
		unknown := httptest.NewRecorder()
		require.NoError(t, LoginHandler(&database.FakeDB{}, tokens)(e.NewContext(formRequest("mallory", "wonderland"), unknown)))

		require.Equal(t, http.StatusUnauthorized, wrong.Code)
		require.Equal(t, wrong.Code, unknown.Code)
		require.Equal(t, wrong.Body.String(), unknown.Body.String())
		require.Equal(t, "Bearer", wrong.Header().Get("WWW-Authenticate"))
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, LoginHandler(&database.FakeDB{}, tokens)(e.NewContext(formRequest("alice", ""), rec)))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("lookup failure", func(t *testing.T) {
		authenticate = func(context.Context, service.UserLookup, string, string) (*model.User, error) {
			return nil, errors.New("db down")
		}
		defer func() { authenticate = service.Authenticate }()
		rec := httptest.NewRecorder()
		require.NoError(t, LoginHandler(&database.FakeDB{}, tokens)(e.NewContext(formRequest("alice", "wonderland"), rec)))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestMeHandler(t *testing.T) {
	e := newEcho()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil), rec)
	require.NoError(t, MeHandler()(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil), rec)
	c.Set(middleware.ContextUserKey, &model.User{ID: 4, Username: "alice", Email: "alice@example.com", PasswordHash: "hash", Role: model.RoleUser})
	require.NoError(t, MeHandler()(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotContains(t, rec.Body.String(), "hash")

	var resp api.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 4, resp.ID)
	require.Equal(t, "user", resp.Role)
}
