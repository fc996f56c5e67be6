package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iqbalrsyd/reog-commerce/internal/models"
)

type contextKey string

const userContextKey contextKey = "user"

// Claims are the JWT claims carried by an access token
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Auth validates and decodes bearer tokens
type Auth struct {
	secret []byte
}

// NewAuth creates the auth middleware with the given signing secret
func NewAuth(secret string) *Auth {
	return &Auth{secret: []byte(secret)}
}

// parseToken validates the bearer token and returns its claims
func (a *Auth) parseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// bearerToken extracts the token from the Authorization header
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// Required rejects requests without a valid bearer token
func (a *Auth) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := bearerToken(r)
		if tokenString == "" {
			writeUnauthorized(w)
			return
		}
		claims, err := a.parseToken(tokenString)
		if err != nil {
			writeUnauthorized(w)
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Optional decodes a bearer token when present but lets anonymous
// requests through. Detail pages use this so view counters only move for
// identified readers.
func (a *Auth) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tokenString := bearerToken(r); tokenString != "" {
			if claims, err := a.parseToken(tokenString); err == nil {
				ctx := context.WithValue(r.Context(), userContextKey, claims)
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// UserIDFromContext returns the authenticated user's id, or "" for
// anonymous requests
func UserIDFromContext(ctx context.Context) string {
	claims, ok := ctx.Value(userContextKey).(*Claims)
	if !ok {
		return ""
	}
	return claims.UserID
}

// WithUserID returns a context carrying the given user id, used by tests
// and internal callers
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userContextKey, &Claims{UserID: userID})
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprintf(w, `{"success":false,"message":"authentication required","error":{"code":%q}}`, models.ErrorCode(models.ErrUnauthorized))
}
