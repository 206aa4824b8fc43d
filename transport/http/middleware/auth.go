package middleware

import (
	"context"
	"errors"
	"net/http"

	"tickoff/infras/jwt"
	"tickoff/infras/otel"
	"tickoff/shared/constant"
	"tickoff/shared/failure"
	"tickoff/shared/identifier"
	"tickoff/transport/http/response"

	"github.com/rs/zerolog/log"
)

const (
	MessageMissingHeader = "Missing authorization header"
	MessageInvalidHeader = "Invalid authorization header format"
	MessageExpiredToken  = "Token has expired"
	MessageInvalidToken  = "Invalid token"
	MessageInvalidUserID = "Invalid User ID format in claims."
)

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
}

type authImpl struct {
	jwtService jwt.JWT
	codec      identifier.Codec
	otel       otel.Otel
}

// NewAuthMiddleware creates the bearer token middleware. codec decides which
// user_id claims name a user of the configured store.
func NewAuthMiddleware(jwtService jwt.JWT, codec identifier.Codec, otel otel.Otel) Auth {
	return &authImpl{
		jwtService: jwtService,
		codec:      codec,
		otel:       otel,
	}
}

// Auth validates the bearer token and puts the caller's identity in the
// request context. Every failure is a 401.
func (m *authImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       request.URL.Path,
			"http.method":     request.Method,
		})

		reject := func(message string) {
			err := failure.Unauthorized(message)
			scope.TraceError(err)
			scope.End()

			response.WithError(writer, err)
		}

		tokenString, err := jwt.ExtractTokenFromHeader(request.Header.Get(constant.RequestHeaderAuthorization))
		if errors.Is(err, jwt.ErrMissingHeader) {
			reject(MessageMissingHeader)

			return
		}

		if err != nil {
			reject(MessageInvalidHeader)

			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				reject(MessageExpiredToken)

				return
			}

			log.Debug().Err(err).Msg("rejected bearer token")
			reject(MessageInvalidToken)

			return
		}

		if !m.codec.Valid(claims.UserID) {
			log.Warn().Str("user_id", claims.UserID).Str("username", claims.Subject).Msg("token carries an unusable user id")
			reject(MessageInvalidUserID)

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, constant.ContextKeyUsername, claims.Subject)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.ID)

		scope.End()

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// UserID returns the authenticated caller, or "" outside Auth.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return id
}

func Username(ctx context.Context) string {
	name, _ := ctx.Value(constant.ContextKeyUsername).(string)

	return name
}
