package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type contextKey string

const (
	SessionEmailKey contextKey = "session_email"
	SessionNameKey  contextKey = "session_name"
)

// SessionMiddleware validates the bearer session token on dashboard routes.
// The token is the whole authorization model: holding a valid one means the
// session is signed in. Anything else is 401 "session invalid".
func SessionMiddleware(jwtSecret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Debug("Missing authorization header")
				RespondWithError(w, http.StatusUnauthorized, "session invalid")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.Debug("Invalid authorization header format")
				RespondWithError(w, http.StatusUnauthorized, "session invalid")
				return
			}

			token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil {
				logger.Debug("Session token validation failed", zap.Error(err))
				if errors.Is(err, jwt.ErrTokenExpired) {
					RespondWithError(w, http.StatusUnauthorized, "session expired")
				} else {
					RespondWithError(w, http.StatusUnauthorized, "session invalid")
				}
				return
			}
			if !token.Valid {
				RespondWithError(w, http.StatusUnauthorized, "session invalid")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				logger.Error("Failed to extract claims from session token")
				RespondWithError(w, http.StatusUnauthorized, "session invalid")
				return
			}

			email, ok := claims["email"].(string)
			if !ok {
				logger.Error("Missing email in session token claims")
				RespondWithError(w, http.StatusUnauthorized, "session invalid")
				return
			}
			name, _ := claims["name"].(string)

			ctx := context.WithValue(r.Context(), SessionEmailKey, email)
			ctx = context.WithValue(ctx, SessionNameKey, name)

			logger.Debug("Session authenticated", zap.String("email", email))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSessionEmail extracts the signed-in email from the request context.
func GetSessionEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(SessionEmailKey).(string)
	return email, ok
}
