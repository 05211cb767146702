package middleware

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const userIDContextKey = contextKey("userID")

var errInvalidSubject = errors.New("token subject is not a user id")

// Authenticate validates an HS256 bearer token and stores its subject as the
// user id of the request.
func Authenticate(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Authorization")

			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				unauthorized(w, r, "You must be authenticated to access this resource")
				return
			}

			userID, err := ParseUserID(raw, secret)
			if err != nil {
				unauthorized(w, r, "Invalid or expired authentication token")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUserID(r.Context(), userID)))
		})
	}
}

// ParseUserID verifies the token signature and expiry and returns the user id
// held in the sub claim. Numeric and string subjects are both accepted.
func ParseUserID(raw, secret string) (int, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errInvalidSubject
	}

	var userID int

	switch sub := claims["sub"].(type) {
	case float64:
		if sub != math.Trunc(sub) || sub > math.MaxInt32 {
			return 0, errInvalidSubject
		}
		userID = int(sub)
	case string:
		userID, err = strconv.Atoi(sub)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", errInvalidSubject, err)
		}
	default:
		return 0, errInvalidSubject
	}

	if userID < 1 {
		return 0, errInvalidSubject
	}

	return userID, nil
}

func ContextWithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

func UserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDContextKey).(int)
	return userID, ok
}

func unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, r, http.StatusUnauthorized, message, nil)
}
