package service

import (
	"net/http"
	"time"

	"github.com/postling-dev/postling/internal/domain"
	"github.com/postling-dev/postling/internal/errors"
	"github.com/postling-dev/postling/internal/logger"
)

type VerificationStorage interface {
	TokenWithUser(value string) (domain.VerificationToken, domain.User, error)
	DeleteToken(value string) error
	EnableUser(id domain.UserId) error
}

// Verification consumes a token from a confirmation link and activates the
// bound account. Tokens are single-use: a consumed or expired token is
// indistinguishable from one that never existed.
type Verification struct {
	storage VerificationStorage
}

func NewVerification(storage VerificationStorage) *Verification {
	return &Verification{storage: storage}
}

func invalidToken() error {
	return &errors.ErrorWithStatusCode{Message: "Invalid verification token", StatusCode: http.StatusNotFound}
}

// Verify activates the account bound to the token and consumes the token.
// An unknown, expired or already-used token reports not found and mutates
// nothing.
func (v *Verification) Verify(tokenValue string) (domain.User, error) {
	token, user, err := v.storage.TokenWithUser(tokenValue)
	if err != nil {
		if errors.IsNotFound(err) {
			return domain.User{}, invalidToken()
		}
		return domain.User{}, err
	}

	if token.Expires.Before(time.Now().UTC()) {
		// Expired tokens are cleaned up on sight.
		if err := v.storage.DeleteToken(tokenValue); err != nil {
			logger.Log.Warn("failed to delete expired verification token", "error", err)
		}
		return domain.User{}, invalidToken()
	}

	if err := v.storage.EnableUser(user.Id); err != nil {
		return domain.User{}, err
	}

	if err := v.storage.DeleteToken(tokenValue); err != nil {
		// A concurrent verify may have consumed it first. The account is
		// enabled either way.
		logger.Log.Warn("failed to delete consumed verification token", "token_user", user.Id, "error", err)
	}

	user.Enabled = true
	return user, nil
}
