package middleware

import (
	"net/http"
	"strings"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/ctchan-dev/ctchan/internal/jwt"
	"github.com/ctchan-dev/ctchan/internal/logger"
	"github.com/ctchan-dev/ctchan/internal/utils"
)

// Auth guards the moderation routes. There is a single admin role: a valid
// token with the admin claim is the whole authorization model.
type Auth struct {
	jwtService jwt.JwtService
}

func NewAuth(jwtService jwt.JwtService) *Auth {
	return &Auth{jwtService: jwtService}
}

var (
	errNoToken       = errorString("no token")
	errInvalidClaims = errorString("invalid claims")
)

type errorString string

func (e errorString) Error() string { return string(e) }

// extractAdmin validates the token from the cookie (browser clients) or the
// Authorization header (API clients) and checks the admin claim.
func (a *Auth) extractAdmin(r *http.Request) error {
	var tokenString string
	accessCookie, err := r.Cookie("accessToken")
	if err == nil {
		tokenString = accessCookie.Value
	} else if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		tokenString = token
	}

	if tokenString == "" {
		return errNoToken
	}

	token, err := a.jwtService.DecodeToken(tokenString)
	if err != nil {
		return err
	}

	claims, ok := token.Claims.(gojwt.MapClaims)
	if !ok {
		return errInvalidClaims
	}
	isAdmin, ok := claims["admin"].(bool)
	if !ok || !isAdmin {
		return errInvalidClaims
	}
	return nil
}

// IsAdmin reports whether the request carries a valid admin token. For
// handlers that change behavior for moderators instead of rejecting outright.
func (a *Auth) IsAdmin(r *http.Request) bool {
	return a.extractAdmin(r) == nil
}

// AdminOnly returns middleware that rejects requests without a valid admin token.
func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := a.extractAdmin(r); err != nil {
				switch err {
				case errNoToken:
					http.Error(w, "Please sign-in", http.StatusUnauthorized)
				case errInvalidClaims:
					logger.Log.Error("invalid jwt claims")
					http.Error(w, "Invalid token", http.StatusUnauthorized)
				default:
					utils.WriteErrorAndStatusCode(w, err)
				}
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
