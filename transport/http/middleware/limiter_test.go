package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tickoff/config"
	"tickoff/infras/otel/mocks"
	cacheMocks "tickoff/shared/cache/mocks"
	"tickoff/transport/http/middleware"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func limiterConfig(enable bool) *config.Config {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = enable
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	return cfg
}

func serve(handler http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/todoitems", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	req.Header.Set("User-Agent", "curl/8.5")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimit(t *testing.T) {
	t.Run("disabled never touches the store", func(t *testing.T) {
		store := cacheMocks.NewMockRedisCache(gomock.NewController(t))

		handler := middleware.NewAppMiddleware(mocks.NewOtel(), limiterConfig(false), store).RateLimit()(okHandler())

		assert.Equal(t, http.StatusOK, serve(handler).Code)
	})

	t.Run("within and over the limit", func(t *testing.T) {
		store := cacheMocks.NewMockRedisCache(gomock.NewController(t))

		const key = "limiter:203.0.113.7:curl/8.5"

		gomock.InOrder(
			store.EXPECT().Increment(gomock.Any(), key, 60).Return(int64(1), nil),
			store.EXPECT().Increment(gomock.Any(), key, 60).Return(int64(2), nil),
			store.EXPECT().Increment(gomock.Any(), key, 60).Return(int64(3), nil),
		)

		handler := middleware.NewAppMiddleware(mocks.NewOtel(), limiterConfig(true), store).RateLimit()(okHandler())

		first := serve(handler)
		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

		assert.Equal(t, http.StatusOK, serve(handler).Code)

		third := serve(handler)
		assert.Equal(t, http.StatusTooManyRequests, third.Code)
		assert.Equal(t, "0", third.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("store failure lets requests through", func(t *testing.T) {
		store := cacheMocks.NewMockRedisCache(gomock.NewController(t))
		store.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).Return(int64(0), errors.New("connection refused"))

		handler := middleware.NewAppMiddleware(mocks.NewOtel(), limiterConfig(true), store).RateLimit()(okHandler())

		assert.Equal(t, http.StatusOK, serve(handler).Code)
	})
}

func TestTracing(t *testing.T) {
	handler := middleware.NewAppMiddleware(mocks.NewOtel(), limiterConfig(false), nil).Tracing(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}),
	)

	assert.Equal(t, http.StatusTeapot, serve(handler).Code)
}
