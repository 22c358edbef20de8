package service

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/postling-dev/postling/internal/domain"
	"github.com/postling-dev/postling/internal/errors"
	"github.com/postling-dev/postling/internal/logger"
)

type AuthStorage interface {
	UserByEmail(email string) (domain.User, error)
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

// Auth checks credentials and issues session tokens. Accounts that have not
// completed email verification cannot log in.
type Auth struct {
	storage AuthStorage
	jwt     Jwt
}

func NewAuth(storage AuthStorage, jwt Jwt) *Auth {
	return &Auth{
		storage: storage,
		jwt:     jwt,
	}
}

func (a *Auth) Login(email, password string) (string, error) {
	user, err := a.storage.UserByEmail(email)
	if err != nil {
		if errors.IsNotFound(err) {
			// to not leak existing users
			return "", &errors.ErrorWithStatusCode{Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(password)); err != nil {
		logger.Log.Error("password verification failed", "error", err)
		return "", &errors.ErrorWithStatusCode{Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	}

	if !user.Enabled {
		return "", &errors.ErrorWithStatusCode{Message: "Please verify your email address before logging in", StatusCode: http.StatusForbidden}
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		logger.Log.Error("failed to create jwt token", "user_id", user.Id, "error", err)
		return "", err
	}

	return token, nil
}
