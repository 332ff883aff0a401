package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	profiledomain "money-tracker-go/internal/domain/profile"
	"money-tracker-go/pkg/logger"
)

type TokenParser interface {
	Parse(raw string) (*profiledomain.Claims, error)
}

// TokenAuth authenticates requests by the bearer session token issued at login.
type TokenAuth struct {
	tokens TokenParser
	log    logger.Logger
}

type contextKey int

const profileIDKey contextKey = iota

func NewTokenAuth(tokens TokenParser, log logger.Logger) *TokenAuth {
	return &TokenAuth{
		tokens: tokens,
		log:    log,
	}
}

func (a *TokenAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w)
			return
		}

		claims, err := a.tokens.Parse(token)
		if err != nil {
			a.log.BusinessError("auth.token: rejected", err, "path", r.URL.Path)
			unauthorized(w)
			return
		}

		ctx := WithProfile(r.Context(), claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
}

func WithProfile(ctx context.Context, profileID string) context.Context {
	return context.WithValue(ctx, profileIDKey, profileID)
}

func ProfileIDFromContext(ctx context.Context) (string, bool) {
	value := ctx.Value(profileIDKey)
	profileID, ok := value.(string)
	if !ok || profileID == "" {
		return "", false
	}
	return profileID, true
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
