package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tickoff/config"
	"tickoff/infras/jwt"
	"tickoff/infras/otel/mocks"
	authService "tickoff/internal/domains/auth/service"
	todoRepository "tickoff/internal/domains/todo/repository"
	todoService "tickoff/internal/domains/todo/service"
	userRepository "tickoff/internal/domains/user/repository"
	authHandler "tickoff/internal/handlers/auth"
	todoHandler "tickoff/internal/handlers/todo"
	"tickoff/internal/testutil"
	cacheMocks "tickoff/shared/cache/mocks"
	"tickoff/shared/identifier"
	transportHttp "tickoff/transport/http"
	"tickoff/transport/http/middleware"
	"tickoff/transport/http/router"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.DB.Backend = config.BackendPostgres
	cfg.JWT.Secret = "a-test-secret-that-is-long-enough"
	cfg.JWT.Issuer = "tickoff"
	cfg.JWT.Audience = "tickoff-clients"

	return cfg
}

func newServer(t *testing.T) http.Handler {
	t.Helper()

	cfg := testConfig()
	ot := mocks.NewOtel()
	conn := testutil.NewConnection(t)
	jwtService := jwt.New(cfg)

	users := userRepository.NewPostgres(conn, ot)
	todos := todoRepository.NewPostgres(conn, ot)

	auth := middleware.NewAuthMiddleware(jwtService, identifier.New(cfg), ot)

	r := router.New(router.DomainHandlers{
		Auth: authHandler.New(authService.New(users, ot, jwtService), ot),
		Todo: todoHandler.New(todoService.New(todos, ot), auth, ot),
	})

	app := middleware.NewAppMiddleware(ot, cfg, cacheMocks.NewMockRedisCache(gomock.NewController(t)))

	return transportHttp.New(cfg, r, app, transportHttp.Resources{}).Handler()
}

type client struct {
	t      *testing.T
	server http.Handler
	token  string
}

func (c *client) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	rec := httptest.NewRecorder()
	c.server.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))

	return out
}

type loginBody struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

type todoBody struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsComplete bool   `json:"is_complete"`
	OwnerID    string `json:"owner_id"`
}

func signIn(t *testing.T, server http.Handler, username string) *client {
	t.Helper()

	anonymous := &client{t: t, server: server}
	credentials := `{"username":"` + username + `","password":"pw"}`

	rec := anonymous.do(http.MethodPost, "/api/auth/register", credentials)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = anonymous.do(http.MethodPost, "/api/auth/login", credentials)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	login := decode[loginBody](t, rec)
	require.NotEmpty(t, login.Token)

	return &client{t: t, server: server, token: login.Token}
}

func TestAuthFlow(t *testing.T) {
	server := newServer(t)
	anonymous := &client{t: t, server: server}

	rec := anonymous.do(http.MethodPost, "/api/auth/register", `{"username":"alice","password":"pw"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"1","username":"alice"}`, rec.Body.String())

	rec = anonymous.do(http.MethodPost, "/api/auth/register", `{"username":"alice","password":"other"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Username already exists."}`, rec.Body.String())

	rec = anonymous.do(http.MethodPost, "/api/auth/register", `{"username":"","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = anonymous.do(http.MethodPost, "/api/auth/login", `{"username":"alice","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid username or password."}`, rec.Body.String())

	rec = anonymous.do(http.MethodPost, "/api/auth/login", `{"username":"nobody","password":"pw"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid username or password."}`, rec.Body.String())

	rec = anonymous.do(http.MethodPost, "/api/auth/login", `{"username":"alice","password":"pw"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	login := decode[loginBody](t, rec)
	assert.Equal(t, "1", login.ID)
	assert.Equal(t, "alice", login.Username)
	assert.NotEmpty(t, login.Token)
}

func TestTodoRequiresToken(t *testing.T) {
	server := newServer(t)

	rec := (&client{t: t, server: server}).do(http.MethodGet, "/api/todoitems", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = (&client{t: t, server: server, token: "not-a-token"}).do(http.MethodGet, "/api/todoitems", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTodoIsolation(t *testing.T) {
	server := newServer(t)
	alice := signIn(t, server, "alice")
	bob := signIn(t, server, "bob")

	rec := alice.do(http.MethodPost, "/api/todoitems", `{"name":"Buy milk","id":"42","owner_id":"2"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "/api/todoitems/1", rec.Header().Get("Location"))

	created := decode[todoBody](t, rec)
	assert.Equal(t, todoBody{ID: "1", Name: "Buy milk", IsComplete: false, OwnerID: "1"}, created)

	rec = alice.do(http.MethodGet, "/api/todoitems", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]todoBody](t, rec), 1)

	rec = bob.do(http.MethodGet, "/api/todoitems", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = bob.do(http.MethodGet, "/api/todoitems/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Todo item not found."}`, rec.Body.String())

	rec = bob.do(http.MethodPut, "/api/todoitems/1", `{"id":"1","name":"Mine now","is_complete":true,"owner_id":"2"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = bob.do(http.MethodDelete, "/api/todoitems/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = alice.do(http.MethodGet, "/api/todoitems/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Buy milk", decode[todoBody](t, rec).Name)
}

func TestTodoCreateIgnoresClientIdentity(t *testing.T) {
	server := newServer(t)
	alice := signIn(t, server, "alice")
	signIn(t, server, "bob")

	rec := alice.do(http.MethodPost, "/api/todoitems", `{"name":"x","id":{"forged":true},"owner_id":{"forged":true}}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, todoBody{ID: "1", Name: "x", OwnerID: "1"}, decode[todoBody](t, rec))

	rec = alice.do(http.MethodPost, "/api/todoitems", `{"name":"y","owner_id":"2"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "1", decode[todoBody](t, rec).OwnerID)
}

func TestTodoUpdateAndDelete(t *testing.T) {
	server := newServer(t)
	alice := signIn(t, server, "alice")

	rec := alice.do(http.MethodPost, "/api/todoitems", `{"name":"Buy milk"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = alice.do(http.MethodPut, "/api/todoitems/1", `{"id":"2","name":"Buy milk","is_complete":true,"owner_id":"1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = alice.do(http.MethodPut, "/api/todoitems/1", `{"id":"1","name":"Buy milk","is_complete":true,"owner_id":"9"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = alice.do(http.MethodPut, "/api/todoitems/1", `{"id":"1","name":"Buy oat milk","is_complete":true,"owner_id":"1"}`)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	assert.Empty(t, rec.Body.String())

	rec = alice.do(http.MethodGet, "/api/todoitems/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, todoBody{ID: "1", Name: "Buy oat milk", IsComplete: true, OwnerID: "1"}, decode[todoBody](t, rec))

	rec = alice.do(http.MethodGet, "/api/todoitems?is_complete=false", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = alice.do(http.MethodDelete, "/api/todoitems/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = alice.do(http.MethodDelete, "/api/todoitems/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = alice.do(http.MethodGet, "/api/todoitems/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = alice.do(http.MethodGet, "/api/todoitems/abc", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	rec := (&client{t: t, server: newServer(t)}).do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"OK"}`, rec.Body.String())
}

func TestRelease(t *testing.T) {
	t.Run("closes every resource", func(t *testing.T) {
		conn := testutil.NewConnection(t)
		client := goRedis.NewClient(&goRedis.Options{Addr: "127.0.0.1:0"})

		server := transportHttp.New(testConfig(), router.Router{}, nil, transportHttp.Resources{
			Postgres: conn,
			Redis:    client,
			Otel:     mocks.NewOtel(),
		})

		require.NoError(t, server.Release(context.Background()))

		assert.Error(t, conn.Write.Ping())
		assert.ErrorIs(t, client.Ping(context.Background()).Err(), goRedis.ErrClosed)
	})

	t.Run("nothing to release", func(t *testing.T) {
		server := transportHttp.New(testConfig(), router.Router{}, nil, transportHttp.Resources{})

		assert.NoError(t, server.Release(context.Background()))
	})
}
