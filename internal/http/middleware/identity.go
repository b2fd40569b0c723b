package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wolfman30/appointment-assistant/internal/identity"
)

// UserIDHeader names the acting user when no bearer token is sent.
const UserIDHeader = "X-User-Id"

// Identity resolves the acting user and stores it in the request context.
// A bearer token is verified as an HMAC-signed JWT whose subject is the
// user id; a bad token is rejected with 401. Without a token the
// X-User-Id header is used, then defaultUserID. Tokens are ignored when
// secret is empty.
func Identity(secret, defaultUserID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := defaultUserID
			if header := strings.TrimSpace(r.Header.Get(UserIDHeader)); header != "" {
				userID = header
			}

			if auth := r.Header.Get("Authorization"); secret != "" && strings.HasPrefix(auth, "Bearer ") {
				subject, err := subjectFromToken(strings.TrimPrefix(auth, "Bearer "), secret)
				if err != nil {
					http.Error(w, "invalid token", http.StatusUnauthorized)
					return
				}
				userID = subject
			}

			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(identity.WithUserID(r.Context(), userID)))
		})
	}
}

func subjectFromToken(tokenString, secret string) (string, error) {
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Subject == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return claims.Subject, nil
}
