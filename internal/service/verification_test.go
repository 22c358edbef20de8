package service

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postling-dev/postling/internal/domain"
	internal_errors "github.com/postling-dev/postling/internal/errors"
)

// --- Mocks ---

type MockVerificationStorage struct {
	TokenWithUserFunc func(value string) (domain.VerificationToken, domain.User, error)
	DeleteTokenFunc   func(value string) error
	EnableUserFunc    func(id domain.UserId) error

	enabled []domain.UserId
	deleted []string
}

func (m *MockVerificationStorage) TokenWithUser(value string) (domain.VerificationToken, domain.User, error) {
	if m.TokenWithUserFunc != nil {
		return m.TokenWithUserFunc(value)
	}
	return domain.VerificationToken{}, domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "Token not found", StatusCode: http.StatusNotFound}
}

func (m *MockVerificationStorage) DeleteToken(value string) error {
	if m.DeleteTokenFunc != nil {
		return m.DeleteTokenFunc(value)
	}
	m.deleted = append(m.deleted, value)
	return nil
}

func (m *MockVerificationStorage) EnableUser(id domain.UserId) error {
	if m.EnableUserFunc != nil {
		return m.EnableUserFunc(id)
	}
	m.enabled = append(m.enabled, id)
	return nil
}

func validTokenStorage(value string, user domain.User) *MockVerificationStorage {
	return &MockVerificationStorage{
		TokenWithUserFunc: func(v string) (domain.VerificationToken, domain.User, error) {
			if v != value {
				return domain.VerificationToken{}, domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "Token not found", StatusCode: http.StatusNotFound}
			}
			return domain.VerificationToken{Token: value, UserId: user.Id, Expires: time.Now().UTC().Add(time.Hour)}, user, nil
		},
	}
}

func TestVerify(t *testing.T) {
	t.Run("activates user and consumes token", func(t *testing.T) {
		storage := validTokenStorage("tok", domain.User{Id: 7, Email: "a@x.com"})
		verification := NewVerification(storage)

		user, err := verification.Verify("tok")

		require.NoError(t, err)
		assert.Equal(t, int64(7), user.Id)
		assert.True(t, user.Enabled)
		assert.Equal(t, []domain.UserId{7}, storage.enabled)
		assert.Equal(t, []string{"tok"}, storage.deleted)
	})

	t.Run("unknown token", func(t *testing.T) {
		storage := &MockVerificationStorage{}
		verification := NewVerification(storage)

		_, err := verification.Verify("never-issued")

		require.Error(t, err)
		assert.True(t, internal_errors.IsNotFound(err))
		assert.Empty(t, storage.enabled)
		assert.Empty(t, storage.deleted)
	})

	t.Run("expired token", func(t *testing.T) {
		storage := &MockVerificationStorage{
			TokenWithUserFunc: func(v string) (domain.VerificationToken, domain.User, error) {
				return domain.VerificationToken{Token: v, UserId: 7, Expires: time.Now().UTC().Add(-time.Minute)},
					domain.User{Id: 7}, nil
			},
		}
		verification := NewVerification(storage)

		_, err := verification.Verify("stale")

		require.Error(t, err)
		assert.True(t, internal_errors.IsNotFound(err))
		assert.Empty(t, storage.enabled)
	})

	t.Run("enable failure propagates", func(t *testing.T) {
		mockErr := errors.New("db down")
		storage := validTokenStorage("tok", domain.User{Id: 7})
		storage.EnableUserFunc = func(domain.UserId) error { return mockErr }
		verification := NewVerification(storage)

		_, err := verification.Verify("tok")

		require.ErrorIs(t, err, mockErr)
	})

	t.Run("delete race after enable is tolerated", func(t *testing.T) {
		storage := validTokenStorage("tok", domain.User{Id: 7})
		storage.DeleteTokenFunc = func(string) error {
			return &internal_errors.ErrorWithStatusCode{Message: "Token not found for deletion", StatusCode: http.StatusNotFound}
		}
		verification := NewVerification(storage)

		user, err := verification.Verify("tok")

		require.NoError(t, err)
		assert.True(t, user.Enabled)
	})
}
