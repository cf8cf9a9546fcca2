// Package auth handles operator login against the POS API and the local
// session tokens that gate every other endpoint.
package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"posdesk/cache"
)

const sessionTTL = 12 * time.Hour

// Claims is the payload of a local session token. Hotels carries the
// authorized scope so the client can render its hotel picker without another
// round trip.
type Claims struct {
	Username string   `json:"username"`
	Hotels   []string `json:"hotels"`
	jwt.RegisteredClaims
}

// MintToken signs a local session token with the per-install secret.
func MintToken(store *cache.Store, username string, hotels []string) (string, error) {
	secret, err := store.SessionSecret()
	if err != nil {
		return "", fmt.Errorf("failed to load session secret: %w", err)
	}

	now := time.Now()
	claims := Claims{
		Username: username,
		Hotels:   hotels,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Authenticate rejects requests without a valid Bearer session token.
func Authenticate(store *cache.Store, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		secret, err := store.SessionSecret()
		if err != nil {
			http.Error(w, "session secret unavailable", http.StatusInternalServerError)
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		next(w, r)
	}
}
