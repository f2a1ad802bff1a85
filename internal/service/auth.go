package service

import (
	"golang.org/x/crypto/bcrypt"

	internal_errors "github.com/ctchan-dev/ctchan/internal/errors"
	"github.com/ctchan-dev/ctchan/internal/jwt"
	"github.com/ctchan-dev/ctchan/internal/logger"
)

type AuthService interface {
	Login(password string) (string, error)
}

// Auth exchanges the moderation password for a signed token. There are no
// user accounts; posting is anonymous and only moderation authenticates.
type Auth struct {
	jwt          jwt.JwtService
	passwordHash []byte
}

func NewAuth(jwt jwt.JwtService, passwordHash []byte) AuthService {
	return &Auth{jwt, passwordHash}
}

func (a *Auth) Login(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		logger.Log.Warn("failed admin login attempt")
		return "", &internal_errors.ErrorWithStatusCode{Message: "Invalid credentials", StatusCode: 401}
	}
	return a.jwt.NewToken()
}
